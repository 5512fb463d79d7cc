package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/source"
)

func TestNodeFields(t *testing.T) {
	t.Parallel()

	decl := ast.NewVariable("let", ast.NewIdentifier("decimal"), ast.NewNumber(6))

	assert.Equal(t, "let", decl.Str("kind"))
	require.Len(t, decl.List("declarations"), 1)

	declarator := decl.List("declarations")[0]
	assert.Equal(t, "decimal", declarator.Child("id").Str("name"))
	assert.InDelta(t, 6.0, declarator.Child("init").Num("value"), 0)
	assert.Equal(t, []string{"kind", "declarations"}, decl.FieldNames())

	declarator.Set("init", nil)
	assert.False(t, declarator.Has("init"))
	assert.Nil(t, declarator.Child("init"))

	declarator.Set("init", (*ast.Node)(nil))
	assert.False(t, declarator.Has("init"))

	lit := ast.New(ast.NumericLiteral).Set("value", 3)
	assert.InDelta(t, 3.0, lit.Num("value"), 0)

	assert.Panics(t, func() { ast.New(ast.Identifier).Set("name", struct{}{}) })
}

func TestNodeChildren(t *testing.T) {
	t.Parallel()

	arr := ast.New(ast.ArrayExpression).Set("elements", []*ast.Node{
		ast.NewNumber(1), nil, ast.NewNumber(3),
	})

	refs := arr.Children()
	require.Len(t, refs, 2)
	assert.Equal(t, "elements", refs[0].Field)
	assert.Equal(t, 0, refs[0].Index)
	assert.Equal(t, 2, refs[1].Index)
}

func TestNodeCloneIsDeep(t *testing.T) {
	t.Parallel()

	orig := ast.NewCall(ast.NewIdentifier("f"), ast.NewString("x"))
	orig.AddComment(ast.NewLineComment(" note"))

	dup := orig.Clone()
	if diff := cmp.Diff(ast.Dump(orig), ast.Dump(dup)); diff != "" {
		t.Errorf("clone dump mismatch (-orig +clone):\n%s", diff)
	}

	dup.List("arguments")[0].Set("value", "y")
	dup.Comments[0].Value = " changed"

	assert.Equal(t, "x", orig.List("arguments")[0].Str("value"))
	assert.Equal(t, " note", orig.Comments[0].Value)
}

func TestNodeString(t *testing.T) {
	t.Parallel()

	buf := source.New("", "let a;\nlet b;")
	n := ast.New(ast.VariableDeclaration)
	n.Range = buf.NewRange(7, 13)

	assert.Equal(t, "VariableDeclaration@2:1", n.String())
	assert.Equal(t, "let b;", n.Text())
	assert.Equal(t, "Identifier", ast.NewIdentifier("x").String())

	var missing *ast.Node
	assert.Equal(t, "<nil>", missing.String())
	assert.False(t, missing.Is(ast.Identifier))
}

func TestFileCapture(t *testing.T) {
	t.Parallel()

	buf := source.New("a.ts", "x;")
	ident := ast.NewIdentifier("x")
	root := ast.New(ast.Program).Set("body", []*ast.Node{ast.NewExpressionStatement(ident)})

	file := ast.NewFile(buf, root, nil, nil)
	assert.Nil(t, file.Original(ident))

	file.Capture()
	snap := file.Original(ident)
	require.NotNil(t, snap)
	assert.NotSame(t, ident, snap)

	ident.Set("name", "y")
	assert.Equal(t, "x", snap.Str("name"))
	assert.Equal(t, ast.Program, file.OriginalRoot().Kind)
	assert.Nil(t, file.Original(ast.NewIdentifier("z")))
}

func TestWalk(t *testing.T) {
	t.Parallel()

	expr := ast.NewBinary("+", ast.NewIdentifier("a"), ast.NewBinary("*", ast.NewIdentifier("b"), ast.NewIdentifier("c")))

	var kinds []ast.Kind
	require.NoError(t, ast.Walk(expr, func(n *ast.Node) error {
		kinds = append(kinds, n.Kind)
		return nil
	}))
	assert.Equal(t, []ast.Kind{
		ast.BinaryExpression, ast.Identifier, ast.BinaryExpression, ast.Identifier, ast.Identifier,
	}, kinds)

	var visited int
	require.NoError(t, ast.Walk(expr, func(n *ast.Node) error {
		visited++
		if n != expr && n.Kind == ast.BinaryExpression {
			return ast.ErrSkipChildren
		}
		return nil
	}))
	assert.Equal(t, 3, visited)

	assert.Len(t, ast.FindAll(expr, ast.Identifier), 3)
	found := ast.Find(expr, func(n *ast.Node) bool { return n.Str("name") == "c" })
	require.NotNil(t, found)

	var depth int
	require.NoError(t, ast.WalkWithParents(expr, func(n *ast.Node, parents []*ast.Node) error {
		if n == found {
			depth = len(parents)
		}
		return nil
	}))
	assert.Equal(t, 2, depth)
}

func TestDump(t *testing.T) {
	t.Parallel()

	decl := ast.NewVariable("const", ast.NewIdentifier("a"), ast.NewNumber(1))

	want := "(VariableDeclaration kind=\"const\")\n" +
		"  declarations[0]: (VariableDeclarator)\n" +
		"    id: (Identifier name=\"a\")\n" +
		"    init: (NumericLiteral value=1)\n"
	assert.Equal(t, want, ast.Dump(decl))

	m := ast.ToMap(decl)
	assert.Equal(t, "VariableDeclaration", m["type"])
	assert.Len(t, m["declarations"], 1)
}
