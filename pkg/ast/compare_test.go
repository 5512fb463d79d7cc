package ast_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/source"
)

func TestEquivalent(t *testing.T) {
	t.Parallel()

	withRaw := func(value float64, raw string) *ast.Node {
		return ast.NewNumber(value).Set("raw", raw)
	}

	tests := []struct {
		name string
		a, b *ast.Node
		want bool
	}{
		{
			name: "same identifiers",
			a:    ast.NewIdentifier("a"),
			b:    ast.NewIdentifier("a"),
			want: true,
		},
		{
			name: "different names",
			a:    ast.NewIdentifier("a"),
			b:    ast.NewIdentifier("b"),
		},
		{
			name: "different kinds",
			a:    ast.NewIdentifier("a"),
			b:    ast.NewString("a"),
		},
		{
			name: "raw spelling ignored",
			a:    withRaw(61453, "0xf00d"),
			b:    withRaw(61453, "61453"),
			want: true,
		},
		{
			name: "numbers compare by value",
			a:    withRaw(1, "1"),
			b:    withRaw(2, "2"),
		},
		{
			name: "list order matters",
			a:    ast.NewCall(ast.NewIdentifier("f"), ast.NewNumber(1), ast.NewNumber(2)),
			b:    ast.NewCall(ast.NewIdentifier("f"), ast.NewNumber(2), ast.NewNumber(1)),
		},
		{
			name: "list length matters",
			a:    ast.NewCall(ast.NewIdentifier("f"), ast.NewNumber(1)),
			b:    ast.NewCall(ast.NewIdentifier("f")),
		},
		{
			name: "absent list equals empty list",
			a:    ast.New(ast.CallExpression).Set("callee", ast.NewIdentifier("f")),
			b:    ast.NewCall(ast.NewIdentifier("f")),
			want: true,
		},
		{
			name: "nil against node",
			a:    nil,
			b:    ast.NewIdentifier("a"),
		},
		{
			name: "both nil",
			want: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := ast.Equivalent(testCase.a, testCase.b)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestEquivalentNaN(t *testing.T) {
	t.Parallel()

	ok, err := ast.Equivalent(ast.NewNumber(math.NaN()), ast.NewNumber(math.NaN()))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ast.Equivalent(ast.NewNumber(math.NaN()), ast.NewNumber(1))
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, ast.SameNumber(math.NaN(), math.NaN()))
	assert.True(t, ast.SameNumber(0, math.Copysign(0, -1)))
	assert.False(t, ast.SameNumber(math.Inf(1), math.Inf(-1)))
}

func TestEquivalentIgnoresPositions(t *testing.T) {
	t.Parallel()

	bufA := source.New("", "a")
	bufB := source.New("", "  a")

	a := ast.NewIdentifier("a")
	a.Range = bufA.NewRange(0, 1)
	b := ast.NewIdentifier("a")
	b.Range = bufB.NewRange(2, 3)
	b.Parenthesized = true

	ok, err := ast.Equivalent(a, b)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompareComments(t *testing.T) {
	t.Parallel()

	lead := &ast.Comment{Kind: ast.CommentLine, Value: " x", Placement: ast.Leading}
	trail := &ast.Comment{Kind: ast.CommentLine, Value: " x", Placement: ast.Trailing}

	a := ast.NewIdentifier("a").AddComment(lead)
	b := ast.NewIdentifier("a").AddComment(trail)

	diff, err := ast.Compare(a, b, ast.CompareOptions{})
	require.NoError(t, err)
	assert.Nil(t, diff, "placement is not compared by text")

	diff, err = ast.Compare(a, b, ast.CompareOptions{Comments: ast.CommentsExact})
	require.NoError(t, err)
	require.NotNil(t, diff)

	bare := ast.NewIdentifier("a")
	diff, err = ast.Compare(a, bare, ast.CompareOptions{})
	require.NoError(t, err)
	require.NotNil(t, diff)
	assert.Contains(t, diff.Reason, "1 comments vs 0")

	diff, err = ast.Compare(a, bare, ast.CompareOptions{SkipRootOuterComments: true})
	require.NoError(t, err)
	assert.Nil(t, diff)

	diff, err = ast.Compare(a, bare, ast.CompareOptions{Comments: ast.CommentsIgnored})
	require.NoError(t, err)
	assert.Nil(t, diff)
}

func TestCompareBlockCommentIndentation(t *testing.T) {
	t.Parallel()

	a := ast.NewIdentifier("a").AddComment(ast.NewBlockComment("*\n   * doc\n   "))
	b := ast.NewIdentifier("a").AddComment(ast.NewBlockComment("*\n * doc\n "))

	ok, err := ast.Equivalent(a, b)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCompareReportsPath(t *testing.T) {
	t.Parallel()

	a := ast.New(ast.Program).Set("body", []*ast.Node{
		ast.NewVariable("let", ast.NewIdentifier("d"), ast.NewNumber(6)),
	})
	b := a.Clone()
	b.List("body")[0].List("declarations")[0].Set("init", ast.NewNumber(7))

	diff, err := ast.Compare(a, b, ast.CompareOptions{})
	require.NoError(t, err)
	require.NotNil(t, diff)
	assert.Equal(t, "body[0].declarations[0].init.value", diff.Path)
	assert.Equal(t, "6 vs 7", diff.Reason)

	assert.Equal(t, "body[0].declarations[0].init.value: 6 vs 7", ast.Explain(a, b))
	assert.Empty(t, ast.Explain(a, a.Clone()))
}

func TestMalformedNodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		node   *ast.Node
		field  string
		reason string
	}{
		{
			name:   "unknown kind",
			node:   ast.New("Bogus"),
			reason: "unknown kind",
		},
		{
			name:   "missing required field",
			node:   ast.New(ast.ExpressionStatement),
			field:  "expression",
			reason: "required field missing",
		},
		{
			name:   "unknown field",
			node:   ast.NewIdentifier("a").Set("colour", "red"),
			field:  "colour",
			reason: "not a field of this kind",
		},
		{
			name:   "wrong shape",
			node:   ast.NewIdentifier("a").Set("optional", "yes"),
			field:  "optional",
			reason: "expected bool, got string",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := ast.Equivalent(testCase.node, testCase.node.Clone())
			require.Error(t, err)

			var malformed *ast.MalformedNodeError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, testCase.field, malformed.Field)
			assert.Equal(t, testCase.reason, malformed.Reason)

			require.Error(t, ast.Validate(ast.NewExpressionStatement(testCase.node)))
		})
	}
}

func TestRegisterCustomKind(t *testing.T) {
	t.Parallel()

	const kind ast.Kind = "TestPipelineExpression"
	require.NoError(t, ast.Register(kind, ast.CategoryExpression,
		ast.NodeField("left").Require(), ast.NodeField("right").Require()))
	require.Error(t, ast.Register(kind, ast.CategoryExpression))
	require.Error(t, ast.Register(ast.Identifier, ast.CategoryExpression))

	n := ast.New(kind).Set("left", ast.NewIdentifier("a")).Set("right", ast.NewIdentifier("f"))
	require.NoError(t, ast.Validate(n))
	assert.Equal(t, ast.CategoryExpression, ast.CategoryOf(kind))
	assert.Contains(t, ast.Kinds(), kind)
}

func TestCommentNormalized(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "// note", ast.NewLineComment(" note").Normalized())
	assert.Equal(t,
		ast.NewBlockComment("*\n   * a\n   ").Normalized(),
		ast.NewBlockComment("*\n * a\n ").Normalized(),
	)
	assert.Equal(t, "/*\n* a\n*/", ast.NewBlockComment("\n  * a\n").Normalized())
}
