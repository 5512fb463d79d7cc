package printer

import "github.com/yaklabco/tsreprint/pkg/ast"

// Expression precedence levels, lowest first.
const (
	precLowest = iota
	precComma
	precSpread
	precYield
	precAssign
	precConditional
	precNullish
	precLogicalOr
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquals
	precCompare
	precShift
	precAdd
	precMultiply
	precExponent
	precPrefix
	precPostfix
	precMember
	precPrimary
)

// Type precedence levels, lowest first.
const (
	typePrecFunction = iota
	typePrecUnion
	typePrecIntersection
	typePrecOperator
	typePrecPostfix
	typePrecPrimary
)

var binaryPrecedence = map[string]int{
	"??":         precNullish,
	"||":         precLogicalOr,
	"&&":         precLogicalAnd,
	"|":          precBitwiseOr,
	"^":          precBitwiseXor,
	"&":          precBitwiseAnd,
	"==":         precEquals,
	"!=":         precEquals,
	"===":        precEquals,
	"!==":        precEquals,
	"<":          precCompare,
	">":          precCompare,
	"<=":         precCompare,
	">=":         precCompare,
	"in":         precCompare,
	"instanceof": precCompare,
	"<<":         precShift,
	">>":         precShift,
	">>>":        precShift,
	"+":          precAdd,
	"-":          precAdd,
	"*":          precMultiply,
	"/":          precMultiply,
	"%":          precMultiply,
	"**":         precExponent,
}

// Precedence returns the binding strength of an expression node.
func Precedence(n *ast.Node) int {
	switch n.Kind {
	case ast.SequenceExpression:
		return precComma
	case ast.YieldExpression:
		return precYield
	case ast.AssignmentExpression, ast.ArrowFunctionExpression:
		return precAssign
	case ast.ConditionalExpression:
		return precConditional
	case ast.BinaryExpression, ast.LogicalExpression:
		if prec, ok := binaryPrecedence[n.Str("operator")]; ok {
			return prec
		}
		return precLowest
	case ast.TSAsExpression, ast.TSSatisfiesExpression:
		return precCompare
	case ast.UnaryExpression, ast.AwaitExpression, ast.TSTypeAssertion:
		return precPrefix
	case ast.UpdateExpression:
		if n.Bool("prefix") {
			return precPrefix
		}
		return precPostfix
	case ast.CallExpression, ast.OptionalCallExpression, ast.NewExpression,
		ast.MemberExpression, ast.OptionalMemberExpression,
		ast.TaggedTemplateExpression, ast.TSNonNullExpression:
		return precMember
	default:
		return precPrimary
	}
}

func typePrecedence(n *ast.Node) int {
	switch n.Kind {
	case ast.TSFunctionType, ast.TSConstructorType, ast.TSConditionalType:
		return typePrecFunction
	case ast.TSUnionType:
		return typePrecUnion
	case ast.TSIntersectionType:
		return typePrecIntersection
	case ast.TSTypeOperator, ast.TSInferType:
		return typePrecOperator
	case ast.TSArrayType, ast.TSIndexedAccessType, ast.TSOptionalType:
		return typePrecPostfix
	default:
		return typePrecPrimary
	}
}

// NeedsParens reports whether n must be wrapped in parentheses when printed
// at the end of path.
func NeedsParens(path Path, n *ast.Node) bool {
	if len(path) == 0 || n == nil {
		return false
	}

	step := path.Parent()
	if step.Node == nil {
		return false
	}

	if ast.CategoryOf(n.Kind) == ast.CategoryType {
		return typeNeedsParens(step, n)
	}

	switch n.Kind {
	case ast.ObjectExpression, ast.FunctionExpression, ast.ClassExpression:
		if startsStatement(path, n) {
			return true
		}
	case ast.AssignmentExpression:
		// A pattern cannot be parenthesized on its own: ({} = x), not ({}) = x.
		if left := n.Child("left"); left != nil && left.Is(ast.ObjectPattern) && !left.Parenthesized && startsStatement(path, n) {
			return true
		}
	case ast.MemberExpression:
		if startsWithLetBracket(n) && startsStatement(path, n) {
			return true
		}
	}
	if n.Kind == ast.ObjectExpression && startsArrowBody(path, n) {
		return true
	}
	if n.Is(ast.BinaryExpression) && n.Str("operator") == "in" && insideForInit(path) {
		return true
	}

	return exprNeedsParens(step, n)
}

func exprNeedsParens(step Step, n *ast.Node) bool {
	parent, field := step.Node, step.Field
	prec := Precedence(n)

	switch parent.Kind {
	case ast.BinaryExpression, ast.LogicalExpression:
		return operandNeedsParens(parent, field, n, prec)

	case ast.UnaryExpression, ast.AwaitExpression:
		return prec < precPrefix

	case ast.TSTypeAssertion:
		return field == "expression" && prec < precPrefix

	case ast.UpdateExpression:
		return prec < precPostfix

	case ast.MemberExpression, ast.OptionalMemberExpression:
		if field != "object" {
			return parent.Bool("computed") && prec <= precComma
		}
		if n.Is(ast.NumericLiteral) {
			return true
		}
		if parent.Is(ast.MemberExpression) && isOptionalChain(n) {
			return true
		}
		return prec < precMember

	case ast.CallExpression, ast.OptionalCallExpression:
		if field == "callee" {
			if parent.Is(ast.CallExpression) && isOptionalChain(n) {
				return true
			}
			return prec < precMember
		}
		return prec <= precComma

	case ast.NewExpression:
		if field == "callee" {
			return prec < precMember || containsCall(n)
		}
		return prec <= precComma

	case ast.TaggedTemplateExpression:
		if field == "tag" {
			return prec < precMember || isOptionalChain(n)
		}
		return false

	case ast.TSNonNullExpression:
		return prec < precMember

	case ast.TSAsExpression, ast.TSSatisfiesExpression:
		return field == "expression" && prec < precCompare

	case ast.ConditionalExpression:
		if field == "test" {
			return prec <= precConditional
		}
		return prec <= precComma

	case ast.ClassDeclaration, ast.ClassExpression:
		return field == "superClass" && prec < precMember

	case ast.Decorator:
		return !decoratorExpression(n)

	case ast.SpreadElement, ast.RestElement:
		return prec <= precComma

	case ast.ExportDefaultDeclaration:
		return prec <= precComma

	case ast.SequenceExpression, ast.ArrowFunctionExpression, ast.AssignmentExpression,
		ast.VariableDeclarator, ast.AssignmentPattern, ast.ObjectProperty, ast.ArrayExpression,
		ast.ClassProperty, ast.TSEnumMember, ast.YieldExpression, ast.ForOfStatement,
		ast.TemplateLiteral:
		return prec <= precComma

	default:
		return false
	}
}

func operandNeedsParens(parent *ast.Node, field string, n *ast.Node, prec int) bool {
	operator := parent.Str("operator")
	parentPrec := binaryPrecedence[operator]

	if n.Is(ast.TSAsExpression, ast.TSSatisfiesExpression) {
		return true
	}
	if n.Is(ast.LogicalExpression) && mixesNullish(operator, n.Str("operator")) {
		return true
	}

	if operator == "**" {
		if field == "left" {
			return prec <= parentPrec || prec == precPrefix
		}
		return prec < parentPrec
	}

	if field == "left" {
		return prec < parentPrec
	}

	return prec <= parentPrec
}

func mixesNullish(outer, inner string) bool {
	if outer == inner {
		return false
	}

	return outer == "??" || inner == "??"
}

func isOptionalChain(n *ast.Node) bool {
	return n.Is(ast.OptionalMemberExpression, ast.OptionalCallExpression)
}

func containsCall(n *ast.Node) bool {
	for n != nil {
		switch n.Kind {
		case ast.CallExpression, ast.OptionalCallExpression:
			return true
		case ast.MemberExpression, ast.OptionalMemberExpression:
			n = n.Child("object")
		case ast.TaggedTemplateExpression:
			n = n.Child("tag")
		case ast.TSNonNullExpression:
			n = n.Child("expression")
		default:
			return false
		}
	}

	return false
}

func decoratorExpression(n *ast.Node) bool {
	switch n.Kind {
	case ast.Identifier:
		return true
	case ast.MemberExpression:
		return !n.Bool("computed") && decoratorExpression(n.Child("object"))
	case ast.CallExpression:
		return decoratorExpression(n.Child("callee"))
	default:
		return false
	}
}

// leftmostField names the field holding the first token of a node.
func leftmostField(n *ast.Node) string {
	switch n.Kind {
	case ast.CallExpression, ast.OptionalCallExpression:
		return "callee"
	case ast.MemberExpression, ast.OptionalMemberExpression:
		return "object"
	case ast.BinaryExpression, ast.LogicalExpression, ast.AssignmentExpression:
		return "left"
	case ast.ConditionalExpression:
		return "test"
	case ast.SequenceExpression:
		return "expressions"
	case ast.TaggedTemplateExpression:
		return "tag"
	case ast.TSAsExpression, ast.TSSatisfiesExpression, ast.TSNonNullExpression:
		return "expression"
	case ast.UpdateExpression:
		if !n.Bool("prefix") {
			return "argument"
		}
	}

	return ""
}

// startsStatement reports whether n would be the first token of an
// expression statement or an export default declaration. An enclosing
// parenthesized node supplies the first token itself.
func startsStatement(path Path, n *ast.Node) bool {
	for idx := len(path) - 1; idx >= 0; idx-- {
		step := path[idx]
		switch step.Node.Kind {
		case ast.ExpressionStatement:
			return true
		case ast.ExportDefaultDeclaration:
			return !n.Is(ast.ObjectExpression)
		}

		if step.Field != leftmostField(step.Node) || step.Index > 0 || step.Node.Parenthesized {
			return false
		}
	}

	return false
}

func startsArrowBody(path Path, n *ast.Node) bool {
	for idx := len(path) - 1; idx >= 0; idx-- {
		step := path[idx]
		if step.Node.Is(ast.ArrowFunctionExpression) {
			return step.Field == "body"
		}
		if step.Field != leftmostField(step.Node) || step.Index > 0 || step.Node.Parenthesized {
			return false
		}
	}

	return false
}

func insideForInit(path Path) bool {
	for idx := len(path) - 1; idx >= 0; idx-- {
		step := path[idx]
		switch step.Node.Kind {
		case ast.ForStatement:
			return step.Field == "init"
		case ast.FunctionExpression, ast.ArrowFunctionExpression, ast.ClassExpression,
			ast.ObjectExpression, ast.ArrayExpression, ast.CallExpression, ast.NewExpression:
			return false
		}
		if step.Node.Parenthesized {
			return false
		}
	}

	return false
}

// startsWithLetBracket reports whether n prints as "let[", which at the
// start of a statement reads as a declaration.
func startsWithLetBracket(n *ast.Node) bool {
	if !n.Bool("computed") {
		return false
	}
	object := n.Child("object")

	return object != nil && object.Is(ast.Identifier) && !object.Parenthesized && object.Str("name") == "let"
}

func typeNeedsParens(step Step, n *ast.Node) bool {
	prec := typePrecedence(n)

	switch step.Node.Kind {
	case ast.TSUnionType:
		return prec <= typePrecUnion
	case ast.TSIntersectionType:
		return prec <= typePrecIntersection
	case ast.TSTypeOperator:
		return prec < typePrecOperator
	case ast.TSArrayType, ast.TSOptionalType:
		return prec < typePrecPostfix
	case ast.TSIndexedAccessType:
		return step.Field == "objectType" && prec < typePrecPostfix
	case ast.TSRestType:
		return prec < typePrecOperator
	case ast.TSConditionalType:
		return (step.Field == "checkType" || step.Field == "extendsType") && prec == typePrecFunction
	default:
		return false
	}
}
