package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/printer"
)

func id(name string) *ast.Node { return ast.NewIdentifier(name) }

func TestNeedsParens(t *testing.T) {
	t.Parallel()

	sum := func() *ast.Node { return ast.NewBinary("+", id("a"), id("b")) }

	tests := []struct {
		name   string
		parent *ast.Node
		field  string
		child  *ast.Node
		want   bool
	}{
		{
			name:   "lower precedence left operand",
			parent: ast.NewBinary("*", id("x"), id("c")),
			field:  "left",
			child:  sum(),
			want:   true,
		},
		{
			name:   "higher precedence operand",
			parent: ast.NewBinary("+", id("x"), id("c")),
			field:  "left",
			child:  ast.NewBinary("*", id("a"), id("b")),
		},
		{
			name:   "same precedence left operand",
			parent: ast.NewBinary("-", id("x"), id("c")),
			field:  "left",
			child:  ast.NewBinary("-", id("a"), id("b")),
		},
		{
			name:   "same precedence right operand",
			parent: ast.NewBinary("-", id("x"), id("c")),
			field:  "right",
			child:  ast.NewBinary("-", id("a"), id("b")),
			want:   true,
		},
		{
			name:   "exponent right operand",
			parent: ast.NewBinary("**", id("x"), id("c")),
			field:  "right",
			child:  ast.NewBinary("**", id("a"), id("b")),
		},
		{
			name:   "exponent left operand",
			parent: ast.NewBinary("**", id("x"), id("c")),
			field:  "left",
			child:  ast.NewBinary("**", id("a"), id("b")),
			want:   true,
		},
		{
			name:   "unary base of exponent",
			parent: ast.NewBinary("**", id("x"), id("c")),
			field:  "left",
			child:  ast.New(ast.UnaryExpression).Set("operator", "-").Set("argument", id("a")),
			want:   true,
		},
		{
			name:   "nullish mixed with logical or",
			parent: ast.NewBinary("??", id("x"), id("c")),
			field:  "left",
			child:  ast.NewBinary("||", id("a"), id("b")),
			want:   true,
		},
		{
			name:   "member of numeric literal",
			parent: ast.NewMember(ast.NewNumber(1), "toString"),
			field:  "object",
			child:  ast.NewNumber(1),
			want:   true,
		},
		{
			name:   "member of call",
			parent: ast.NewMember(ast.NewCall(id("f")), "x"),
			field:  "object",
			child:  ast.NewCall(id("f")),
		},
		{
			name:   "member of sum",
			parent: ast.NewMember(id("x"), "length"),
			field:  "object",
			child:  sum(),
			want:   true,
		},
		{
			name:   "sequence as call argument",
			parent: ast.NewCall(id("f"), id("x")),
			field:  "arguments",
			child:  ast.New(ast.SequenceExpression).Set("expressions", []*ast.Node{id("a"), id("b")}),
			want:   true,
		},
		{
			name:   "conditional as conditional test",
			parent: ast.New(ast.ConditionalExpression).Set("test", id("x")).Set("consequent", id("y")).Set("alternate", id("z")),
			field:  "test",
			child:  ast.New(ast.ConditionalExpression).Set("test", id("a")).Set("consequent", id("b")).Set("alternate", id("c")),
			want:   true,
		},
		{
			name:   "as expression inside binary",
			parent: ast.NewBinary("+", id("x"), id("c")),
			field:  "left",
			child:  ast.New(ast.TSAsExpression).Set("expression", id("a")).Set("typeAnnotation", ast.NewKeywordType("number")),
			want:   true,
		},
		{
			name:   "call inside new callee",
			parent: ast.New(ast.NewExpression).Set("callee", id("x")),
			field:  "callee",
			child:  ast.NewMember(ast.NewCall(id("f")), "Thing"),
			want:   true,
		},
		{
			name:   "union inside array type",
			parent: ast.New(ast.TSArrayType).Set("elementType", ast.NewKeywordType("string")),
			field:  "elementType",
			child:  ast.New(ast.TSUnionType).Set("types", []*ast.Node{ast.NewKeywordType("string"), ast.NewKeywordType("number")}),
			want:   true,
		},
		{
			name:   "function type inside union",
			parent: ast.New(ast.TSUnionType).Set("types", []*ast.Node{ast.NewKeywordType("string")}),
			field:  "types",
			child:  ast.New(ast.TSFunctionType).Set("params", []*ast.Node{}).Set("returnType", ast.NewKeywordType("void")),
			want:   true,
		},
		{
			name:   "keyword type inside union",
			parent: ast.New(ast.TSUnionType).Set("types", []*ast.Node{ast.NewKeywordType("string")}),
			field:  "types",
			child:  ast.NewKeywordType("number"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			index := -1
			if tt.field == "arguments" || tt.field == "types" {
				index = 0
			}
			path := printer.Path{{Node: tt.parent, Field: tt.field, Index: index}}
			assert.Equal(t, tt.want, printer.NeedsParens(path, tt.child))
		})
	}
}

func TestNeedsParens_StatementStart(t *testing.T) {
	t.Parallel()

	object := ast.New(ast.ObjectExpression).Set("properties", []*ast.Node{})
	member := ast.NewMember(object, "x")
	stmt := ast.NewExpressionStatement(member)

	path := printer.Path{
		{Node: stmt, Field: "expression", Index: -1},
		{Node: member, Field: "object", Index: -1},
	}
	assert.True(t, printer.NeedsParens(path, object))

	decl := ast.NewVariable("const", id("x"), member)
	path = printer.Path{
		{Node: decl.List("declarations")[0], Field: "init", Index: -1},
		{Node: member, Field: "object", Index: -1},
	}
	assert.False(t, printer.NeedsParens(path, object))

	arrow := ast.New(ast.ArrowFunctionExpression).Set("params", []*ast.Node{}).Set("body", object)
	path = printer.Path{{Node: arrow, Field: "body", Index: -1}}
	assert.True(t, printer.NeedsParens(path, object))

	assert.False(t, printer.NeedsParens(nil, object))
}

func TestNeedsParens_InInsideForInit(t *testing.T) {
	t.Parallel()

	in := ast.NewBinary("in", id("a"), id("b"))
	loop := ast.New(ast.ForStatement).Set("init", in).Set("body", ast.New(ast.BlockStatement))
	assert.True(t, printer.NeedsParens(printer.Path{{Node: loop, Field: "init", Index: -1}}, in))

	call := ast.NewCall(id("f"), in)
	path := printer.Path{
		{Node: loop, Field: "init", Index: -1},
		{Node: call, Field: "arguments", Index: 0},
	}
	assert.False(t, printer.NeedsParens(path, in))
}

func TestPrecedence(t *testing.T) {
	t.Parallel()

	assert.Less(t, printer.Precedence(ast.NewBinary("+", id("a"), id("b"))),
		printer.Precedence(ast.NewBinary("*", id("a"), id("b"))))
	assert.Less(t, printer.Precedence(ast.NewBinary("||", id("a"), id("b"))),
		printer.Precedence(ast.NewBinary("&&", id("a"), id("b"))))
	assert.Greater(t, printer.Precedence(ast.NewCall(id("f"))), printer.Precedence(ast.NewBinary("+", id("a"), id("b"))))
	assert.Equal(t, printer.Precedence(id("x")), printer.Precedence(ast.NewString("x")))
}
