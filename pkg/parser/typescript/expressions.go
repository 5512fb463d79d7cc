package typescript

import (
	"strings"

	"github.com/yaklabco/tsreprint/internal/jsstr"
	"github.com/yaklabco/tsreprint/pkg/ast"
)

func (p *parser) parseExpression() *ast.Node {
	start := p.tok.start
	expr := p.parseAssign()
	if !p.is(",") {
		return expr
	}

	list := []*ast.Node{expr}
	for p.eat(",") {
		list = append(list, p.parseAssign())
	}

	return p.finish(ast.New(ast.SequenceExpression).Set("expressions", list), start)
}

func (p *parser) parseAssign() *ast.Node {
	if p.isName("yield") && p.scope.inGenerator {
		return p.parseYield()
	}
	if arrow := p.tryArrow(); arrow != nil {
		return arrow
	}

	start := p.tok.start
	left := p.parseConditional()

	p.rescanGreater()
	if p.tok.kind != tokPunct || !assignOperators[p.tok.value] {
		return left
	}

	operator := p.tok.value
	if operator == "=" {
		left = p.toPattern(left)
	} else if !simpleTarget(left) {
		p.failAt(left.Range.Start, "invalid left-hand side in assignment")
	}
	p.next()

	right := p.parseAssign()

	return p.finish(ast.New(ast.AssignmentExpression).
		Set("left", left).Set("operator", operator).Set("right", right), start)
}

func simpleTarget(n *ast.Node) bool {
	switch n.Kind {
	case ast.Identifier, ast.MemberExpression:
		return true
	case ast.TSNonNullExpression, ast.TSAsExpression, ast.TSSatisfiesExpression, ast.TSTypeAssertion:
		return simpleTarget(n.Child("expression"))
	default:
		return false
	}
}

func (p *parser) parseYield() *ast.Node {
	start := p.tok.start
	p.next()

	n := ast.New(ast.YieldExpression)
	if p.tok.newlineBefore {
		return p.finish(n, start)
	}
	if p.eat("*") {
		n.Set("delegate", true)
		n.Set("argument", p.parseAssign())
		return p.finish(n, start)
	}
	if p.startsExpression() {
		n.Set("argument", p.parseAssign())
	}

	return p.finish(n, start)
}

func (p *parser) startsExpression() bool {
	switch p.tok.kind {
	case tokEOF:
		return false
	case tokPunct:
		switch p.tok.value {
		case ")", "]", "}", ",", ";", ":", "=>", "=", "?":
			return false
		}
		_, binary := binaryOperators[p.tok.value]
		return !binary || p.tok.value == "+" || p.tok.value == "-" || p.tok.value == "<" || p.tok.value == "/"
	case tokName:
		return !p.isName("in") && !p.isName("of") && !p.isName("instanceof")
	default:
		return true
	}
}

type arrowHead struct {
	async      bool
	typeParams []*ast.Node
	params     []*ast.Node
	returnType *ast.Node
}

// tryArrow parses an arrow function when the upcoming tokens form an arrow
// head, and returns nil otherwise.
func (p *parser) tryArrow() *ast.Node {
	if !p.is("(") && !p.is("<") && p.tok.kind != tokName {
		return nil
	}
	if p.tok.kind == tokName && !p.isName("async") {
		next := p.peek()
		if !peekIs(next, "=>") || next.newlineBefore {
			return nil
		}
	}

	start := p.tok.start
	var head arrowHead
	if !p.try(func() { head = p.parseArrowHead() }) {
		return nil
	}

	return p.parseArrowBody(head, start)
}

func (p *parser) parseArrowHead() arrowHead {
	var head arrowHead

	if p.isName("async") {
		next := p.peek()
		if !next.newlineBefore && (next.kind == tokName || peekIs(next, "(") || peekIs(next, "<")) {
			p.next()
			head.async = true
		}
	}

	if p.tok.kind == tokName {
		head.params = []*ast.Node{p.parseBindingIdentifier()}
	} else {
		if p.is("<") {
			p.requireTypeScript("type parameters")
			head.typeParams = p.parseTypeParameters()
		}
		if !p.is("(") {
			p.unexpected()
		}
		head.params = p.parseParams()
		if p.is(":") {
			head.returnType = p.parseReturnType()
		}
	}

	if !p.is("=>") || p.tok.newlineBefore {
		p.unexpected()
	}
	p.next()

	return head
}

func (p *parser) parseArrowBody(head arrowHead, start int) *ast.Node {
	n := ast.New(ast.ArrowFunctionExpression).
		Set("async", head.async).
		Set("typeParameters", head.typeParams).
		Set("params", emptyIfNil(head.params)).
		Set("returnType", head.returnType)
	if !head.async {
		n.Set("async", nil)
	}

	inner := scope{inFunction: true, inAsync: head.async}
	p.withScope(inner, func() {
		if p.is("{") {
			n.Set("body", p.parseBlock())
			return
		}
		n.Set("body", p.parseAssign())
	})

	return p.finish(n, start)
}

func emptyIfNil(list []*ast.Node) []*ast.Node {
	if list == nil {
		return []*ast.Node{}
	}

	return list
}

func (p *parser) parseConditional() *ast.Node {
	start := p.tok.start
	test := p.parseBinary(precNone)
	if !p.is("?") {
		return test
	}
	p.next()

	consequent := p.withIn(p.parseAssign)
	p.expect(":")
	alternate := p.parseAssign()

	return p.finish(ast.New(ast.ConditionalExpression).
		Set("test", test).Set("consequent", consequent).Set("alternate", alternate), start)
}

// binaryOperator returns the operator at the current token and its
// precedence, or "" when the token does not continue a binary expression.
func (p *parser) binaryOperator() (string, int) {
	switch p.tok.kind {
	case tokName:
		if p.tok.escaped {
			return "", precNone
		}
		switch p.tok.value {
		case "instanceof":
			return "instanceof", precCompare
		case "in":
			if !p.noIn {
				return "in", precCompare
			}
		case "as", "satisfies":
			if p.typescript() && !p.tok.newlineBefore {
				return p.tok.value, precCompare
			}
		}
	case tokPunct:
		p.rescanGreater()
		if prec, ok := binaryOperators[p.tok.value]; ok {
			return p.tok.value, prec
		}
	}

	return "", precNone
}

func (p *parser) parseBinary(minPrec int) *ast.Node {
	start := p.tok.start
	left := p.parseUnary()

	for {
		operator, prec := p.binaryOperator()
		if operator == "" || prec <= minPrec {
			return left
		}
		p.next()

		if operator == "as" || operator == "satisfies" {
			kind := ast.TSAsExpression
			if operator == "satisfies" {
				kind = ast.TSSatisfiesExpression
			}

			var typ *ast.Node
			if operator == "as" && p.isName("const") {
				constStart := p.tok.start
				p.next()
				name := p.finish(ast.NewIdentifier("const"), constStart)
				typ = p.finish(ast.New(ast.TSTypeReference).Set("typeName", name), constStart)
			} else {
				typ = p.parseType()
			}

			left = p.finish(ast.New(kind).Set("expression", left).Set("typeAnnotation", typ), start)
			continue
		}

		var right *ast.Node
		if operator == "**" {
			right = p.parseBinary(prec - 1)
		} else {
			right = p.parseBinary(prec)
		}

		kind := ast.BinaryExpression
		if operator == "&&" || operator == "||" || operator == "??" {
			kind = ast.LogicalExpression
		}
		left = p.finish(ast.New(kind).Set("left", left).Set("operator", operator).Set("right", right), start)
	}
}

func (p *parser) parseUnary() *ast.Node {
	start := p.tok.start

	switch {
	case p.is("!") || p.is("~") || p.is("+") || p.is("-") ||
		p.isName("typeof") || p.isName("void") || p.isName("delete"):
		operator := p.tok.value
		p.next()
		arg := p.parseUnary()
		return p.finish(ast.New(ast.UnaryExpression).Set("operator", operator).Set("argument", arg), start)

	case p.is("++") || p.is("--"):
		operator := p.tok.value
		p.next()
		arg := p.parseUnary()
		if !simpleTarget(arg) {
			p.failAt(arg.Range.Start, "invalid operand for %s", operator)
		}
		return p.finish(ast.New(ast.UpdateExpression).
			Set("operator", operator).Set("prefix", true).Set("argument", arg), start)

	case p.is("<") && p.typescript():
		p.next()
		typ := p.parseType()
		p.expect(">")
		expr := p.parseUnary()
		return p.finish(ast.New(ast.TSTypeAssertion).Set("typeAnnotation", typ).Set("expression", expr), start)

	case p.isName("await") && p.awaitAllowed():
		p.next()
		arg := p.parseUnary()
		return p.finish(ast.New(ast.AwaitExpression).Set("argument", arg), start)
	}

	expr := p.parseLeftHandSide()
	if (p.is("++") || p.is("--")) && !p.tok.newlineBefore {
		if !simpleTarget(expr) {
			p.failAt(expr.Range.Start, "invalid operand for %s", p.tok.value)
		}
		operator := p.tok.value
		p.next()
		return p.finish(ast.New(ast.UpdateExpression).
			Set("operator", operator).Set("argument", expr), start)
	}

	return expr
}

func (p *parser) awaitAllowed() bool {
	if p.scope.inAsync {
		return true
	}
	if p.scope.inFunction {
		return false
	}

	next := p.peek()
	if next.newlineBefore || next.kind == tokEOF {
		return false
	}
	if next.kind == tokPunct {
		switch next.value {
		case ")", "]", "}", ",", ";", ":", "=", ".", "=>", "?.":
			return false
		}
	}

	return true
}

func (p *parser) parseLeftHandSide() *ast.Node {
	start := p.tok.start

	var expr *ast.Node
	switch {
	case p.isName("new"):
		expr = p.parseNew()
	case p.isName("super"):
		p.next()
		expr = p.finish(ast.New(ast.Super), start)
	case p.isName("import"):
		expr = p.parseImportExpression()
	default:
		expr = p.parsePrimary()
	}

	return p.parseChain(expr, start, false)
}

func (p *parser) parseImportExpression() *ast.Node {
	start := p.tok.start
	p.next()

	if p.eat(".") {
		meta := p.finish(ast.NewIdentifier("import"), start)
		property := p.parseIdentifierName()
		return p.finish(ast.New(ast.MetaProperty).Set("meta", meta).Set("property", property), start)
	}
	if !p.is("(") {
		p.unexpected()
	}

	return p.finish(ast.New(ast.Import), start)
}

func (p *parser) parseNew() *ast.Node {
	start := p.tok.start
	p.next()

	if p.eat(".") {
		meta := p.finish(ast.NewIdentifier("new"), start)
		property := p.parseIdentifierName()
		if property.Str("name") != "target" {
			p.failAt(property.Range.Start, "the only valid meta property for new is new.target")
		}
		return p.finish(ast.New(ast.MetaProperty).Set("meta", meta).Set("property", property), start)
	}

	calleeStart := p.tok.start
	var callee *ast.Node
	switch {
	case p.isName("new"):
		callee = p.parseNew()
	case p.isName("import"):
		p.failAt(p.tok.start, "cannot use new with import")
	default:
		callee = p.parsePrimary()
	}
	callee = p.parseChain(callee, calleeStart, true)

	n := ast.New(ast.NewExpression).Set("callee", callee)
	if p.is("<") && p.typescript() {
		var args []*ast.Node
		if p.try(func() { args = p.parseTypeArguments() }) {
			n.Set("typeArguments", args)
		}
	}
	if p.is("(") {
		n.Set("arguments", p.parseArguments())
	}

	return p.finish(n, start)
}

// parseChain parses member accesses, calls, tagged templates and non-null
// assertions following expr. In noCalls mode it stops before a call, which
// is how the callee of new is delimited.
func (p *parser) parseChain(expr *ast.Node, start int, noCalls bool) *ast.Node {
	optionalChain := false
	member := func() ast.Kind {
		if optionalChain {
			return ast.OptionalMemberExpression
		}
		return ast.MemberExpression
	}
	call := func() ast.Kind {
		if optionalChain {
			return ast.OptionalCallExpression
		}
		return ast.CallExpression
	}

	for {
		switch {
		case p.is("."):
			p.next()
			property := p.parsePropertyName()
			expr = p.finish(ast.New(member()).Set("object", expr).Set("property", property), start)

		case p.is("?."):
			if noCalls {
				p.failAt(p.tok.start, "optional chain is not allowed in a new expression")
			}
			p.next()
			optionalChain = true

			switch {
			case p.is("("):
				args := p.parseArguments()
				expr = p.finish(ast.New(ast.OptionalCallExpression).
					Set("callee", expr).Set("optional", true).Set("arguments", args), start)
			case p.is("<"):
				p.requireTypeScript("type arguments")
				typeArgs := p.parseTypeArguments()
				args := p.parseArguments()
				expr = p.finish(ast.New(ast.OptionalCallExpression).
					Set("callee", expr).Set("optional", true).
					Set("typeArguments", typeArgs).Set("arguments", args), start)
			case p.is("["):
				p.next()
				property := p.withIn(p.parseExpression)
				p.expect("]")
				expr = p.finish(ast.New(ast.OptionalMemberExpression).
					Set("object", expr).Set("optional", true).Set("computed", true).
					Set("property", property), start)
			default:
				property := p.parsePropertyName()
				expr = p.finish(ast.New(ast.OptionalMemberExpression).
					Set("object", expr).Set("optional", true).Set("property", property), start)
			}

		case p.is("["):
			p.next()
			property := p.withIn(p.parseExpression)
			p.expect("]")
			expr = p.finish(ast.New(member()).
				Set("object", expr).Set("computed", true).Set("property", property), start)

		case p.is("!") && !p.tok.newlineBefore && p.typescript():
			p.next()
			expr = p.finish(ast.New(ast.TSNonNullExpression).Set("expression", expr), start)

		case p.is("(") && !noCalls:
			args := p.parseArguments()
			expr = p.finish(ast.New(call()).Set("callee", expr).Set("arguments", args), start)

		case p.tok.kind == tokTemplate:
			if optionalChain {
				p.failAt(p.tok.start, "tagged template cannot be used in an optional chain")
			}
			quasi := p.parseTemplate(false)
			expr = p.finish(ast.New(ast.TaggedTemplateExpression).Set("tag", expr).Set("quasi", quasi), start)

		case p.is("<") && p.typescript() && !noCalls:
			var typeArgs []*ast.Node
			ok := p.try(func() {
				typeArgs = p.parseTypeArguments()
				if !p.is("(") && p.tok.kind != tokTemplate {
					p.unexpected()
				}
			})
			if !ok {
				return expr
			}

			if p.tok.kind == tokTemplate {
				quasi := p.parseTemplate(false)
				expr = p.finish(ast.New(ast.TaggedTemplateExpression).
					Set("tag", expr).Set("typeArguments", typeArgs).Set("quasi", quasi), start)
				continue
			}

			args := p.parseArguments()
			expr = p.finish(ast.New(call()).
				Set("callee", expr).Set("typeArguments", typeArgs).Set("arguments", args), start)

		default:
			return expr
		}
	}
}

func (p *parser) parseArguments() []*ast.Node {
	p.expect("(")

	args := []*ast.Node{}
	for !p.is(")") {
		if p.is("...") {
			start := p.tok.start
			p.next()
			arg := p.withIn(p.parseAssign)
			args = append(args, p.finish(ast.New(ast.SpreadElement).Set("argument", arg), start))
		} else {
			args = append(args, p.withIn(p.parseAssign))
		}
		if !p.is(")") {
			p.expect(",")
		}
	}
	p.expect(")")

	return args
}

func (p *parser) parsePrimary() *ast.Node {
	start := p.tok.start

	switch p.tok.kind {
	case tokName:
		if !p.tok.escaped {
			switch p.tok.value {
			case "this":
				p.next()
				return p.finish(ast.New(ast.ThisExpression), start)
			case "null":
				p.next()
				return p.finish(ast.New(ast.NullLiteral), start)
			case "true", "false":
				value := p.tok.value == "true"
				p.next()
				return p.finish(ast.NewBool(value), start)
			case "function":
				return p.parseFunction(start, false, false, true)
			case "class":
				return p.parseClass(start, nil, false, false, false)
			case "async":
				next := p.peek()
				if peekName(next, "function") && !next.newlineBefore {
					p.next()
					return p.parseFunction(start, true, false, true)
				}
			}
		}
		return p.parseIdentifierReference()

	case tokNumber:
		return p.parseNumber()

	case tokBigInt:
		raw := strings.ReplaceAll(strings.TrimSuffix(p.tok.value, "n"), "_", "")
		p.next()
		return p.finish(ast.New(ast.BigIntLiteral).Set("value", raw), start)

	case tokString:
		return p.parseString()

	case tokTemplate:
		return p.parseTemplate(false)

	case tokPrivateName:
		name := p.tok.value
		p.next()
		if !p.isName("in") {
			p.failAt(start, "private name #%s is only valid before 'in'", name)
		}
		return p.finish(ast.New(ast.PrivateName).Set("name", name), start)

	case tokPunct:
		switch p.tok.value {
		case "(":
			p.next()
			expr := p.withIn(p.parseExpression)
			p.expect(")")
			expr.Parenthesized = true
			return expr
		case "[":
			return p.parseArrayLiteral()
		case "{":
			return p.parseObjectLiteral()
		case "/", "/=":
			return p.parseRegExp()
		case "@":
			decorators := p.parseDecorators()
			if !p.isName("class") {
				p.failAt(p.tok.start, "decorators must precede a class")
			}
			return p.parseClass(start, decorators, false, false, false)
		}
	}

	p.unexpected()

	return nil
}

func (p *parser) parseNumber() *ast.Node {
	start := p.tok.start
	raw := p.tok.value

	value, ok := jsstr.ParseNumber(raw)
	if !ok {
		p.failAt(start, "invalid number %s", raw)
	}
	p.next()

	return p.finish(ast.NewNumber(value).Set("raw", raw), start)
}

func (p *parser) parseString() *ast.Node {
	start := p.tok.start
	raw := p.tok.value

	value, err := jsstr.Unquote(raw)
	if err != nil {
		p.failAt(start, "invalid string literal: %v", err)
	}
	p.next()

	n := p.finish(ast.NewString(value).Set("raw", raw), start)
	p.markVerbatim(n)

	return n
}

func (p *parser) parseRegExp() *ast.Node {
	start := p.tok.start
	p.rescanRegExp()

	raw := p.tok.value
	end := strings.LastIndexByte(raw, '/')
	p.next()

	return p.finish(ast.New(ast.RegExpLiteral).
		Set("pattern", raw[1:end]).Set("flags", raw[end+1:]), start)
}

// parseTemplate parses a template literal whose substitutions are
// expressions, or types when inType is set.
func (p *parser) parseTemplate(inType bool) *ast.Node {
	start := p.tok.start

	var (
		quasis      []*ast.Node
		expressions []*ast.Node
	)
	for {
		if p.tok.kind != tokTemplate {
			p.unexpected()
		}

		elemStart := p.tok.start + 1
		element := ast.New(ast.TemplateElement).Set("raw", p.tok.value)
		element.Range = p.buf.NewRange(elemStart, elemStart+len(p.tok.value))
		quasis = append(quasis, element)

		tail := p.tok.tail
		p.next()
		if tail {
			break
		}

		if inType {
			expressions = append(expressions, p.parseType())
		} else {
			expressions = append(expressions, p.withIn(p.parseExpression))
		}
		p.rescanTemplate()
	}

	n := p.finish(ast.New(ast.TemplateLiteral).Set("quasis", quasis).Set("expressions", expressions), start)
	p.markVerbatim(n)

	return n
}

func (p *parser) parseArrayLiteral() *ast.Node {
	start := p.tok.start
	p.expect("[")

	elements := []*ast.Node{}
	for !p.is("]") {
		if p.is(",") {
			p.next()
			elements = append(elements, nil)
			continue
		}

		var element *ast.Node
		if p.is("...") {
			spreadStart := p.tok.start
			p.next()
			arg := p.withIn(p.parseAssign)
			element = p.finish(ast.New(ast.SpreadElement).Set("argument", arg), spreadStart)
		} else {
			element = p.withIn(p.parseAssign)
		}
		elements = append(elements, element)

		if !p.is("]") {
			p.expect(",")
		}
	}
	p.expect("]")

	return p.finish(ast.New(ast.ArrayExpression).Set("elements", elements), start)
}

func (p *parser) parseObjectLiteral() *ast.Node {
	start := p.tok.start
	p.expect("{")

	properties := []*ast.Node{}
	for !p.is("}") {
		properties = append(properties, p.parseObjectMember())
		if !p.is("}") {
			p.expect(",")
		}
	}
	p.expect("}")

	return p.finish(ast.New(ast.ObjectExpression).Set("properties", properties), start)
}

// memberNameFollows reports whether the token after a get, set, async or
// modifier word continues a member, making the word a keyword rather than
// the member's own name.
func memberNameFollows(next token) bool {
	switch next.kind {
	case tokEOF:
		return false
	case tokPunct:
		return next.value == "[" || next.value == "*" || next.value == "{"
	default:
		return true
	}
}

func (p *parser) parseObjectMember() *ast.Node {
	start := p.tok.start

	if p.is("...") {
		p.next()
		arg := p.withIn(p.parseAssign)
		return p.finish(ast.New(ast.SpreadElement).Set("argument", arg), start)
	}

	isAsync := false
	if p.isName("async") {
		next := p.peek()
		if !next.newlineBefore && memberNameFollows(next) {
			p.next()
			isAsync = true
		}
	}
	generator := p.eat("*")

	kind := ""
	if !isAsync && !generator && (p.isName("get") || p.isName("set")) && memberNameFollows(p.peek()) {
		kind = p.tok.value
		p.next()
	}

	key, computed := p.parsePropertyKey()

	if isAsync || generator || kind != "" || p.is("(") || p.is("<") {
		if kind == "" {
			kind = "method"
		}
		n := ast.New(ast.ObjectMethod).
			Set("kind", kind).Set("key", key).Set("computed", computed).
			Set("async", isAsync).Set("generator", generator)
		clearFalse(n, "computed", "async", "generator")
		p.parseFunctionRest(n, isAsync, generator, false)
		return p.finish(n, start)
	}

	if p.eat(":") {
		value := p.withIn(p.parseAssign)
		n := ast.New(ast.ObjectProperty).Set("key", key).Set("computed", computed).Set("value", value)
		clearFalse(n, "computed")
		return p.finish(n, start)
	}

	if computed || !key.Is(ast.Identifier) {
		p.failAt(p.tok.start, "':' expected, found %s", p.tok)
	}

	value := ast.NewIdentifier(key.Str("name"))
	value.Range = key.Range
	if p.is("=") {
		p.next()
		def := p.withIn(p.parseAssign)
		value = p.finish(ast.New(ast.AssignmentPattern).Set("left", value).Set("right", def), start)
	}

	return p.finish(ast.New(ast.ObjectProperty).
		Set("shorthand", true).Set("key", key).Set("value", value), start)
}

// clearFalse removes boolean fields that are false so that freshly parsed
// nodes carry only meaningful flags.
func clearFalse(n *ast.Node, names ...string) {
	for _, name := range names {
		if !n.Bool(name) {
			n.Set(name, nil)
		}
	}
}

// parsePropertyKey parses an object or class member key.
func (p *parser) parsePropertyKey() (*ast.Node, bool) {
	start := p.tok.start

	switch p.tok.kind {
	case tokPunct:
		if p.is("[") {
			p.next()
			key := p.withIn(p.parseAssign)
			p.expect("]")
			return key, true
		}
	case tokString:
		return p.parseString(), false
	case tokNumber:
		return p.parseNumber(), false
	case tokBigInt:
		raw := strings.TrimSuffix(p.tok.value, "n")
		p.next()
		return p.finish(ast.New(ast.BigIntLiteral).Set("value", raw), start), false
	case tokPrivateName:
		name := p.tok.value
		p.next()
		return p.finish(ast.New(ast.PrivateName).Set("name", name), start), false
	case tokName:
		return p.parseIdentifierName(), false
	}

	p.failAt(p.tok.start, "property name expected, found %s", p.tok)

	return nil, false
}

// parsePropertyName parses the name after a dot: any identifier name,
// including reserved words, or a private name.
func (p *parser) parsePropertyName() *ast.Node {
	if p.tok.kind == tokPrivateName {
		start := p.tok.start
		name := p.tok.value
		p.next()
		return p.finish(ast.New(ast.PrivateName).Set("name", name), start)
	}

	return p.parseIdentifierName()
}

// parseIdentifierName accepts any name, reserved or not.
func (p *parser) parseIdentifierName() *ast.Node {
	if p.tok.kind != tokName {
		p.failAt(p.tok.start, "identifier expected, found %s", p.tok)
	}

	start := p.tok.start
	name := p.tok.value
	p.next()

	return p.finish(ast.NewIdentifier(name), start)
}

func (p *parser) parseIdentifierReference() *ast.Node {
	if p.tok.kind != tokName {
		p.unexpected()
	}
	if reservedWords[p.tok.value] && !p.tok.escaped {
		p.failAt(p.tok.start, "unexpected keyword '%s'", p.tok.value)
	}

	return p.parseIdentifierName()
}

// toPattern converts an expression parsed before = or in a for-in/of head
// into the equivalent assignment target.
func (p *parser) toPattern(n *ast.Node) *ast.Node {
	switch n.Kind {
	case ast.ObjectExpression:
		out := ast.New(ast.ObjectPattern)
		out.Range, out.Parenthesized = n.Range, n.Parenthesized

		properties := n.List("properties")
		converted := make([]*ast.Node, len(properties))
		for idx, prop := range properties {
			switch prop.Kind {
			case ast.SpreadElement:
				if idx != len(properties)-1 {
					p.failAt(prop.Range.Start, "rest element must be last")
				}
				rest := ast.New(ast.RestElement).Set("argument", p.toPattern(prop.Child("argument")))
				rest.Range = prop.Range
				converted[idx] = rest
			case ast.ObjectProperty:
				prop.Set("value", p.toPattern(prop.Child("value")))
				converted[idx] = prop
			default:
				p.failAt(prop.Range.Start, "invalid destructuring target")
			}
		}

		return out.Set("properties", converted)

	case ast.ArrayExpression:
		out := ast.New(ast.ArrayPattern)
		out.Range, out.Parenthesized = n.Range, n.Parenthesized

		elements := n.List("elements")
		converted := make([]*ast.Node, len(elements))
		for idx, elem := range elements {
			switch {
			case elem == nil:
			case elem.Is(ast.SpreadElement):
				rest := ast.New(ast.RestElement).Set("argument", p.toPattern(elem.Child("argument")))
				rest.Range = elem.Range
				converted[idx] = rest
			default:
				converted[idx] = p.toPattern(elem)
			}
		}

		return out.Set("elements", converted)

	case ast.AssignmentExpression:
		if n.Str("operator") != "=" {
			p.failAt(n.Range.Start, "invalid destructuring target")
		}
		out := ast.New(ast.AssignmentPattern).
			Set("left", p.toPattern(n.Child("left"))).
			Set("right", n.Child("right"))
		out.Range = n.Range

		return out

	case ast.Identifier, ast.MemberExpression, ast.ObjectPattern, ast.ArrayPattern,
		ast.AssignmentPattern, ast.RestElement, ast.TSNonNullExpression, ast.TSAsExpression,
		ast.TSSatisfiesExpression, ast.TSTypeAssertion:
		return n

	default:
		p.failAt(n.Range.Start, "invalid assignment target")
		return nil
	}
}
