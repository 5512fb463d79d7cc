package ast

import (
	"math"
	"strconv"
)

// NewIdentifier builds an Identifier.
func NewIdentifier(name string) *Node {
	return New(Identifier).Set("name", name)
}

// NewString builds a StringLiteral with no raw spelling.
func NewString(value string) *Node {
	return New(StringLiteral).Set("value", value)
}

// NewNumber builds a NumericLiteral with no raw spelling.
func NewNumber(value float64) *Node {
	return New(NumericLiteral).Set("value", value)
}

// NewBool builds a BooleanLiteral.
func NewBool(value bool) *Node {
	return New(BooleanLiteral).Set("value", value)
}

// NewNull builds a NullLiteral.
func NewNull() *Node {
	return New(NullLiteral)
}

// NewKeywordType builds a TSKeywordType such as number or string.
func NewKeywordType(name string) *Node {
	return New(TSKeywordType).Set("name", name)
}

// NewTypeReference builds a TSTypeReference to a plain name.
func NewTypeReference(name string, args ...*Node) *Node {
	ref := New(TSTypeReference).Set("typeName", NewIdentifier(name))
	if len(args) > 0 {
		ref.Set("typeArguments", args)
	}

	return ref
}

// NewExpressionStatement wraps expr in a statement.
func NewExpressionStatement(expr *Node) *Node {
	return New(ExpressionStatement).Set("expression", expr)
}

// NewCall builds a call expression.
func NewCall(callee *Node, args ...*Node) *Node {
	return New(CallExpression).Set("callee", callee).Set("arguments", args)
}

// NewMember builds a non-computed member access such as a.b.
func NewMember(object *Node, property string) *Node {
	return New(MemberExpression).Set("object", object).Set("property", NewIdentifier(property))
}

// NewBinary builds a binary expression. Logical operators produce a
// LogicalExpression.
func NewBinary(operator string, left, right *Node) *Node {
	kind := BinaryExpression
	if operator == "&&" || operator == "||" || operator == "??" {
		kind = LogicalExpression
	}

	return New(kind).Set("left", left).Set("operator", operator).Set("right", right)
}

// NewVariable builds a single-declarator variable declaration.
func NewVariable(kind string, id, init *Node) *Node {
	decl := New(VariableDeclarator).Set("id", id).Set("init", init)

	return New(VariableDeclaration).Set("kind", kind).Set("declarations", []*Node{decl})
}

// NumberRaw formats value the way a freshly printed literal would be.
func NumberRaw(value float64) string {
	if math.Trunc(value) == value && math.Abs(value) < 1e21 {
		return strconv.FormatFloat(value, 'f', 0, 64)
	}

	return strconv.FormatFloat(value, 'g', -1, 64)
}
