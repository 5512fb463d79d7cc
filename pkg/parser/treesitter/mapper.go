package treesitter

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/yaklabco/tsreprint/internal/jsstr"
	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/source"
)

// mapper converts a tree-sitter concrete syntax tree into the shared node
// model. Ranges are the byte ranges tree-sitter reports; parentheses are
// recorded as a flag on the inner node.
type mapper struct {
	buf      *source.Buffer
	comments []*ast.Comment
	verbatim []source.Range
}

func newMapper(buf *source.Buffer) *mapper {
	return &mapper{buf: buf}
}

// collect gathers every comment and every multi-line string or template
// under node.
func (m *mapper) collect(node *tree_sitter.Node) {
	switch node.Kind() {
	case "comment":
		m.comment(node)
		return
	case "string", "template_string":
		if r := m.rng(node); strings.ContainsAny(r.Text(), "\r\n") {
			m.verbatim = append(m.verbatim, r)
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		m.collect(node.Child(i))
	}
}

func (m *mapper) comment(node *tree_sitter.Node) {
	r := m.rng(node)
	text := r.Text()

	switch {
	case strings.HasPrefix(text, "//"):
		m.comments = append(m.comments, &ast.Comment{Kind: ast.CommentLine, Value: text[2:], Range: r})
	case strings.HasPrefix(text, "/*") && strings.HasSuffix(text, "*/") && len(text) >= 4:
		m.comments = append(m.comments, &ast.Comment{Kind: ast.CommentBlock, Value: text[2 : len(text)-2], Range: r})
	}
}

func (m *mapper) rng(node *tree_sitter.Node) source.Range {
	return m.buf.NewRange(int(node.StartByte()), int(node.EndByte()))
}

func (m *mapper) text(node *tree_sitter.Node) string {
	return m.buf.Slice(int(node.StartByte()), int(node.EndByte()))
}

func (m *mapper) at(n *ast.Node, node *tree_sitter.Node) *ast.Node {
	n.Range = m.rng(node)
	return n
}

func (m *mapper) span(n *ast.Node, from, to *tree_sitter.Node) *ast.Node {
	n.Range = m.buf.NewRange(int(from.StartByte()), int(to.EndByte()))
	return n
}

// opaque keeps node as source text.
func (m *mapper) opaque(node *tree_sitter.Node) *ast.Node {
	return m.at(ast.New(ast.Opaque).Set("text", m.text(node)).Set("grammar", node.Kind()), node)
}

// named returns the named children of node other than comments.
func named(node *tree_sitter.Node) []*tree_sitter.Node {
	var out []*tree_sitter.Node
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child != nil && child.Kind() != "comment" {
			out = append(out, child)
		}
	}

	return out
}

// hasToken reports whether node has an anonymous child spelled token.
func hasToken(node *tree_sitter.Node, token string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); !child.IsNamed() && child.Kind() == token {
			return true
		}
	}

	return false
}

func countTokens(node *tree_sitter.Node, token string) int {
	count := 0
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); !child.IsNamed() && child.Kind() == token {
			count++
		}
	}

	return count
}

func hasChild(node *tree_sitter.Node, kind string) bool {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if node.NamedChild(i).Kind() == kind {
			return true
		}
	}

	return false
}

func (m *mapper) program(root *tree_sitter.Node) *ast.Node {
	body := []*ast.Node{}
	program := ast.New(ast.Program)

	for _, child := range named(root) {
		if child.Kind() == "hash_bang_line" {
			program.Set("interpreter", strings.TrimPrefix(m.text(child), "#!"))
			continue
		}
		body = append(body, m.statement(child))
	}

	program.Set("body", body)
	program.Range = m.buf.NewRange(0, m.buf.Len())

	return program
}

func (m *mapper) statements(node *tree_sitter.Node) []*ast.Node {
	out := []*ast.Node{}
	for _, child := range named(node) {
		out = append(out, m.statement(child))
	}

	return out
}

func (m *mapper) statement(node *tree_sitter.Node) *ast.Node {
	if node.IsError() || node.HasError() {
		return m.opaque(node)
	}

	switch node.Kind() {
	case "expression_statement":
		children := named(node)
		if len(children) != 1 {
			return m.opaque(node)
		}
		return m.at(ast.NewExpressionStatement(m.expression(children[0])), node)

	case "lexical_declaration", "variable_declaration":
		return m.declaration(node)

	case "return_statement", "throw_statement":
		return m.argumentStatement(node)

	case "if_statement":
		return m.ifStatement(node)

	case "while_statement":
		return m.at(ast.New(ast.WhileStatement).
			Set("test", m.condition(node.ChildByFieldName("condition"))).
			Set("body", m.statement(node.ChildByFieldName("body"))), node)

	case "statement_block":
		return m.at(ast.New(ast.BlockStatement).Set("body", m.statements(node)), node)

	case "empty_statement":
		return m.at(ast.New(ast.EmptyStatement), node)

	case "break_statement", "continue_statement":
		kind := ast.BreakStatement
		if node.Kind() == "continue_statement" {
			kind = ast.ContinueStatement
		}
		n := ast.New(kind)
		if label := node.ChildByFieldName("label"); label != nil {
			n.Set("label", m.at(ast.NewIdentifier(m.text(label)), label))
		}
		return m.at(n, node)

	case "function_declaration":
		return m.function(node, ast.FunctionDeclaration)

	default:
		return m.opaque(node)
	}
}

func (m *mapper) declaration(node *tree_sitter.Node) *ast.Node {
	kind := "var"
	if field := node.ChildByFieldName("kind"); field != nil {
		kind = m.text(field)
	}

	var declarators []*ast.Node
	for _, child := range named(node) {
		if child.Kind() != "variable_declarator" {
			return m.opaque(node)
		}
		declarators = append(declarators, m.declarator(child))
	}
	if len(declarators) == 0 {
		return m.opaque(node)
	}

	return m.at(ast.New(ast.VariableDeclaration).Set("kind", kind).Set("declarations", declarators), node)
}

func (m *mapper) declarator(node *tree_sitter.Node) *ast.Node {
	name := node.ChildByFieldName("name")
	typ := node.ChildByFieldName("type")
	if name == nil || name.Kind() != "identifier" || hasToken(node, "!") {
		return m.opaque(node)
	}

	id := m.binding(name, typ)
	n := ast.New(ast.VariableDeclarator).Set("id", id)
	if value := node.ChildByFieldName("value"); value != nil {
		n.Set("init", m.expression(value))
	}

	return m.at(n, node)
}

// binding maps an identifier with an optional type annotation. The range
// of the identifier covers the annotation.
func (m *mapper) binding(name, typ *tree_sitter.Node) *ast.Node {
	id := m.at(ast.NewIdentifier(m.text(name)), name)
	if typ != nil {
		id.Set("typeAnnotation", m.annotation(typ))
		m.span(id, name, typ)
	}

	return id
}

// annotation maps the type inside a ": T" annotation.
func (m *mapper) annotation(node *tree_sitter.Node) *ast.Node {
	if children := named(node); node.Kind() == "type_annotation" && len(children) == 1 {
		return m.opaque(children[0])
	}

	return m.opaque(node)
}

func (m *mapper) argumentStatement(node *tree_sitter.Node) *ast.Node {
	kind := ast.ReturnStatement
	if node.Kind() == "throw_statement" {
		kind = ast.ThrowStatement
	}

	n := ast.New(kind)
	switch children := named(node); len(children) {
	case 0:
	case 1:
		n.Set("argument", m.expression(children[0]))
	default:
		return m.opaque(node)
	}

	if kind == ast.ThrowStatement && n.Child("argument") == nil {
		return m.opaque(node)
	}

	return m.at(n, node)
}

func (m *mapper) ifStatement(node *tree_sitter.Node) *ast.Node {
	n := ast.New(ast.IfStatement).
		Set("test", m.condition(node.ChildByFieldName("condition"))).
		Set("consequent", m.statement(node.ChildByFieldName("consequence")))

	if alternative := node.ChildByFieldName("alternative"); alternative != nil {
		children := named(alternative)
		if len(children) != 1 {
			return m.opaque(node)
		}
		n.Set("alternate", m.statement(children[0]))
	}

	return m.at(n, node)
}

// condition maps the parenthesized test of a control statement. The
// parentheses belong to the statement.
func (m *mapper) condition(node *tree_sitter.Node) *ast.Node {
	if node.Kind() == "parenthesized_expression" {
		if children := named(node); len(children) == 1 {
			return m.expression(children[0])
		}
	}

	return m.opaque(node)
}

func (m *mapper) function(node *tree_sitter.Node, kind ast.Kind) *ast.Node {
	body := node.ChildByFieldName("body")
	params := node.ChildByFieldName("parameters")
	if body == nil || params == nil || hasToken(node, "*") {
		return m.opaque(node)
	}

	n := ast.New(kind).
		Set("params", m.params(params)).
		Set("body", m.at(ast.New(ast.BlockStatement).Set("body", m.statements(body)), body))
	if hasToken(node, "async") {
		n.Set("async", true)
	}
	if name := node.ChildByFieldName("name"); name != nil {
		n.Set("id", m.at(ast.NewIdentifier(m.text(name)), name))
	}
	if typeParams := node.ChildByFieldName("type_parameters"); typeParams != nil {
		n.Set("typeParameters", m.opaques(typeParams))
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		n.Set("returnType", m.annotation(ret))
	}

	return m.at(n, node)
}

// opaques keeps every named child of node as source text.
func (m *mapper) opaques(node *tree_sitter.Node) []*ast.Node {
	out := []*ast.Node{}
	for _, child := range named(node) {
		out = append(out, m.opaque(child))
	}

	return out
}

func (m *mapper) params(node *tree_sitter.Node) []*ast.Node {
	out := []*ast.Node{}
	for _, child := range named(node) {
		out = append(out, m.param(child))
	}

	return out
}

func (m *mapper) param(node *tree_sitter.Node) *ast.Node {
	switch node.Kind() {
	case "identifier":
		return m.at(ast.NewIdentifier(m.text(node)), node)

	case "assignment_pattern":
		left, right := node.ChildByFieldName("left"), node.ChildByFieldName("right")
		if left == nil || right == nil || left.Kind() != "identifier" {
			return m.opaque(node)
		}
		return m.at(ast.New(ast.AssignmentPattern).
			Set("left", m.at(ast.NewIdentifier(m.text(left)), left)).
			Set("right", m.expression(right)), node)

	case "required_parameter", "optional_parameter":
		pattern := node.ChildByFieldName("pattern")
		typ := node.ChildByFieldName("type")
		value := node.ChildByFieldName("value")

		expected := 1
		if typ != nil {
			expected++
		}
		if value != nil {
			expected++
		}
		if pattern == nil || pattern.Kind() != "identifier" || len(named(node)) != expected || hasToken(node, "readonly") {
			return m.opaque(node)
		}

		id := m.binding(pattern, typ)
		if node.Kind() == "optional_parameter" {
			if value != nil {
				return m.opaque(node)
			}
			id.Set("optional", true)
			m.at(id, node)
		}
		if value == nil {
			return id
		}

		return m.at(ast.New(ast.AssignmentPattern).Set("left", id).Set("right", m.expression(value)), node)

	default:
		return m.opaque(node)
	}
}

func (m *mapper) expression(node *tree_sitter.Node) *ast.Node {
	if node.IsError() || node.HasError() || node.IsMissing() {
		return m.opaque(node)
	}

	switch node.Kind() {
	case "identifier", "property_identifier", "shorthand_property_identifier", "undefined":
		return m.at(ast.NewIdentifier(m.text(node)), node)
	case "this":
		return m.at(ast.New(ast.ThisExpression), node)
	case "super":
		return m.at(ast.New(ast.Super), node)
	case "true", "false":
		return m.at(ast.NewBool(node.Kind() == "true"), node)
	case "null":
		return m.at(ast.NewNull(), node)
	case "number":
		return m.number(node)
	case "string":
		return m.str(node)
	case "regex":
		return m.regex(node)
	case "parenthesized_expression":
		return m.parenthesized(node)
	case "call_expression":
		return m.call(node)
	case "new_expression":
		return m.newExpression(node)
	case "member_expression", "subscript_expression":
		return m.member(node)
	case "binary_expression":
		return m.binary(node)
	case "unary_expression":
		return m.unary(node)
	case "update_expression":
		return m.update(node)
	case "assignment_expression", "augmented_assignment_expression":
		return m.assignment(node)
	case "ternary_expression":
		return m.at(ast.New(ast.ConditionalExpression).
			Set("test", m.expression(node.ChildByFieldName("condition"))).
			Set("consequent", m.expression(node.ChildByFieldName("consequence"))).
			Set("alternate", m.expression(node.ChildByFieldName("alternative"))), node)
	case "await_expression", "spread_element", "non_null_expression":
		return m.wrapper(node)
	case "as_expression", "satisfies_expression":
		return m.typeCast(node)
	case "array":
		return m.array(node)
	case "object":
		return m.object(node)
	case "arrow_function":
		return m.arrow(node)
	default:
		return m.opaque(node)
	}
}

func (m *mapper) number(node *tree_sitter.Node) *ast.Node {
	raw := m.text(node)

	value, ok := jsstr.ParseNumber(raw)
	if !ok {
		return m.opaque(node)
	}

	return m.at(ast.NewNumber(value).Set("raw", raw), node)
}

func (m *mapper) str(node *tree_sitter.Node) *ast.Node {
	raw := m.text(node)

	value, err := jsstr.Unquote(raw)
	if err != nil {
		return m.opaque(node)
	}

	return m.at(ast.NewString(value).Set("raw", raw), node)
}

func (m *mapper) regex(node *tree_sitter.Node) *ast.Node {
	pattern := node.ChildByFieldName("pattern")
	if pattern == nil {
		return m.opaque(node)
	}

	n := ast.New(ast.RegExpLiteral).Set("pattern", m.text(pattern))
	if flags := node.ChildByFieldName("flags"); flags != nil {
		n.Set("flags", m.text(flags))
	}

	return m.at(n, node)
}

func (m *mapper) parenthesized(node *tree_sitter.Node) *ast.Node {
	children := named(node)
	if len(children) != 1 {
		return m.opaque(node)
	}

	inner := m.expression(children[0])
	if inner.Is(ast.Opaque) {
		return m.opaque(node)
	}
	inner.Parenthesized = true

	return inner
}

func (m *mapper) arguments(node *tree_sitter.Node) ([]*ast.Node, bool) {
	if node.Kind() != "arguments" {
		return nil, false
	}

	out := []*ast.Node{}
	for _, child := range named(node) {
		out = append(out, m.expression(child))
	}

	return out, true
}

func (m *mapper) call(node *tree_sitter.Node) *ast.Node {
	callee := node.ChildByFieldName("function")
	args := node.ChildByFieldName("arguments")
	if callee == nil || args == nil || node.ChildByFieldName("type_arguments") != nil || hasChild(node, "optional_chain") {
		return m.opaque(node)
	}

	list, ok := m.arguments(args)
	if !ok {
		return m.opaque(node)
	}

	return m.at(ast.NewCall(m.expression(callee), list...), node)
}

func (m *mapper) newExpression(node *tree_sitter.Node) *ast.Node {
	callee := node.ChildByFieldName("constructor")
	if callee == nil || node.ChildByFieldName("type_arguments") != nil {
		return m.opaque(node)
	}

	n := ast.New(ast.NewExpression).Set("callee", m.expression(callee))
	if args := node.ChildByFieldName("arguments"); args != nil {
		list, ok := m.arguments(args)
		if !ok {
			return m.opaque(node)
		}
		n.Set("arguments", list)
	}

	return m.at(n, node)
}

func (m *mapper) member(node *tree_sitter.Node) *ast.Node {
	object := node.ChildByFieldName("object")
	if object == nil || hasChild(node, "optional_chain") {
		return m.opaque(node)
	}

	n := ast.New(ast.MemberExpression).Set("object", m.expression(object))

	if node.Kind() == "subscript_expression" {
		index := node.ChildByFieldName("index")
		if index == nil {
			return m.opaque(node)
		}
		return m.at(n.Set("computed", true).Set("property", m.expression(index)), node)
	}

	property := node.ChildByFieldName("property")
	if property == nil || property.Kind() != "property_identifier" {
		return m.opaque(node)
	}

	return m.at(n.Set("property", m.at(ast.NewIdentifier(m.text(property)), property)), node)
}

func (m *mapper) binary(node *tree_sitter.Node) *ast.Node {
	left, operator, right := node.ChildByFieldName("left"), node.ChildByFieldName("operator"), node.ChildByFieldName("right")
	if left == nil || operator == nil || right == nil || left.Kind() == "private_property_identifier" {
		return m.opaque(node)
	}

	return m.at(ast.NewBinary(operator.Kind(), m.expression(left), m.expression(right)), node)
}

func (m *mapper) unary(node *tree_sitter.Node) *ast.Node {
	operator, argument := node.ChildByFieldName("operator"), node.ChildByFieldName("argument")
	if operator == nil || argument == nil {
		return m.opaque(node)
	}

	return m.at(ast.New(ast.UnaryExpression).
		Set("operator", operator.Kind()).
		Set("argument", m.expression(argument)), node)
}

func (m *mapper) update(node *tree_sitter.Node) *ast.Node {
	operator, argument := node.ChildByFieldName("operator"), node.ChildByFieldName("argument")
	if operator == nil || argument == nil {
		return m.opaque(node)
	}

	n := ast.New(ast.UpdateExpression).
		Set("operator", operator.Kind()).
		Set("argument", m.expression(argument))
	if operator.StartByte() < argument.StartByte() {
		n.Set("prefix", true)
	}

	return m.at(n, node)
}

func (m *mapper) assignment(node *tree_sitter.Node) *ast.Node {
	left, right := node.ChildByFieldName("left"), node.ChildByFieldName("right")
	if left == nil || right == nil {
		return m.opaque(node)
	}

	operator := "="
	if field := node.ChildByFieldName("operator"); field != nil {
		operator = field.Kind()
	}

	return m.at(ast.New(ast.AssignmentExpression).
		Set("left", m.expression(left)).
		Set("operator", operator).
		Set("right", m.expression(right)), node)
}

//nolint:gochecknoglobals // Read-only lookup table.
var wrapperKinds = map[string]ast.Kind{
	"await_expression":    ast.AwaitExpression,
	"spread_element":      ast.SpreadElement,
	"non_null_expression": ast.TSNonNullExpression,
}

// wrapper maps a node around a single operand.
func (m *mapper) wrapper(node *tree_sitter.Node) *ast.Node {
	children := named(node)
	if len(children) != 1 {
		return m.opaque(node)
	}

	kind := wrapperKinds[node.Kind()]
	field := "argument"
	if kind == ast.TSNonNullExpression {
		field = "expression"
	}

	return m.at(ast.New(kind).Set(field, m.expression(children[0])), node)
}

func (m *mapper) typeCast(node *tree_sitter.Node) *ast.Node {
	children := named(node)
	if len(children) != 2 {
		return m.opaque(node)
	}

	kind := ast.TSAsExpression
	if node.Kind() == "satisfies_expression" {
		kind = ast.TSSatisfiesExpression
	}

	return m.at(ast.New(kind).
		Set("expression", m.expression(children[0])).
		Set("typeAnnotation", m.opaque(children[1])), node)
}

func (m *mapper) array(node *tree_sitter.Node) *ast.Node {
	children := named(node)
	if countTokens(node, ",") > len(children) {
		// Holes.
		return m.opaque(node)
	}

	elements := []*ast.Node{}
	for _, child := range children {
		elements = append(elements, m.expression(child))
	}

	return m.at(ast.New(ast.ArrayExpression).Set("elements", elements), node)
}

func (m *mapper) object(node *tree_sitter.Node) *ast.Node {
	properties := []*ast.Node{}

	for _, child := range named(node) {
		switch child.Kind() {
		case "pair":
			property, ok := m.pair(child)
			if !ok {
				return m.opaque(node)
			}
			properties = append(properties, property)

		case "shorthand_property_identifier":
			name := m.text(child)
			properties = append(properties, m.at(ast.New(ast.ObjectProperty).
				Set("shorthand", true).
				Set("key", m.at(ast.NewIdentifier(name), child)).
				Set("value", m.at(ast.NewIdentifier(name), child)), child))

		case "spread_element":
			properties = append(properties, m.wrapper(child))

		default:
			return m.opaque(node)
		}
	}

	return m.at(ast.New(ast.ObjectExpression).Set("properties", properties), node)
}

func (m *mapper) pair(node *tree_sitter.Node) (*ast.Node, bool) {
	key, value := node.ChildByFieldName("key"), node.ChildByFieldName("value")
	if key == nil || value == nil {
		return nil, false
	}

	n := ast.New(ast.ObjectProperty).Set("value", m.expression(value))

	switch key.Kind() {
	case "property_identifier":
		n.Set("key", m.at(ast.NewIdentifier(m.text(key)), key))
	case "string":
		n.Set("key", m.str(key))
	case "number":
		n.Set("key", m.number(key))
	case "computed_property_name":
		children := named(key)
		if len(children) != 1 {
			return nil, false
		}
		n.Set("computed", true).Set("key", m.expression(children[0]))
	default:
		return nil, false
	}

	return m.at(n, node), true
}

func (m *mapper) arrow(node *tree_sitter.Node) *ast.Node {
	body := node.ChildByFieldName("body")
	if body == nil || node.ChildByFieldName("type_parameters") != nil {
		return m.opaque(node)
	}

	n := ast.New(ast.ArrowFunctionExpression)
	if hasToken(node, "async") {
		n.Set("async", true)
	}

	switch {
	case node.ChildByFieldName("parameter") != nil:
		param := node.ChildByFieldName("parameter")
		n.Set("params", []*ast.Node{m.param(param)})
	case node.ChildByFieldName("parameters") != nil:
		n.Set("params", m.params(node.ChildByFieldName("parameters")))
	default:
		return m.opaque(node)
	}

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		n.Set("returnType", m.annotation(ret))
	}

	if body.Kind() == "statement_block" {
		n.Set("body", m.at(ast.New(ast.BlockStatement).Set("body", m.statements(body)), body))
	} else {
		n.Set("body", m.expression(body))
	}

	return m.at(n, node)
}
