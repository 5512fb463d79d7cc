package treesitter_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/parser/treesitter"
	"github.com/yaklabco/tsreprint/pkg/parser/typescript"
	"github.com/yaklabco/tsreprint/pkg/patcher"
	"github.com/yaklabco/tsreprint/pkg/printer"
	"github.com/yaklabco/tsreprint/pkg/syntaxcheck"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()

	file, err := treesitter.New(treesitter.FlavorTypeScript).Parse(context.Background(), "test.ts", []byte(src))
	require.NoError(t, err)
	require.NoError(t, ast.Validate(file.Root))

	return file
}

func reprint(t *testing.T, file *ast.File) string {
	t.Helper()

	result, err := patcher.Reprint(file, printer.DefaultOptions())
	require.NoError(t, err)

	return result.Code
}

func TestParse_StatementKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want ast.Kind
	}{
		{"let a = 1;", ast.VariableDeclaration},
		{"var a, b = 2;", ast.VariableDeclaration},
		{"function f(a: number, b = 1): void {}", ast.FunctionDeclaration},
		{"async function f() {}", ast.FunctionDeclaration},
		{"if (a) b(); else c();", ast.IfStatement},
		{"while (a) {}", ast.WhileStatement},
		{"{ a(); }", ast.BlockStatement},
		{";", ast.EmptyStatement},
		{"foo(a, ...b);", ast.ExpressionStatement},
		{"class A {}", ast.Opaque},
		{"declare function f(): void;", ast.Opaque},
		{"for (;;) {}", ast.Opaque},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			body := parse(t, tt.src).Root.List("body")
			require.Len(t, body, 1)
			assert.Equal(t, tt.want, body[0].Kind)
		})
	}
}

func TestParse_MatchesHandParser(t *testing.T) {
	t.Parallel()

	sources := []string{
		"const x = a.b(c, 1 + 2) * -d;\n",
		"if (x) {\n  y = [1, 'two', { k: v, w }];\n} else z++;\n",
		"let s = a ? b : c;\nwhile (ok) {\n  break;\n}\n",
		"const f = async (a, b) => { await g(a); };\nnew Thing(f);\n",
		"x += o[k] && !p;\n",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			want, err := typescript.New(typescript.FlavorTypeScript).Parse(context.Background(), "test.ts", []byte(src))
			require.NoError(t, err)

			got := parse(t, src)

			equal, err := ast.Equivalent(want.Root, got.Root)
			require.NoError(t, err)
			assert.True(t, equal, ast.Explain(want.Root, got.Root))
		})
	}
}

func TestParse_Parenthesized(t *testing.T) {
	t.Parallel()

	stmt := parse(t, "(a + b) * c;").Root.List("body")[0]
	left := stmt.Child("expression").Child("left")

	assert.Equal(t, ast.BinaryExpression, left.Kind)
	assert.True(t, left.Parenthesized)
	assert.Equal(t, "a + b", left.Text())
}

func TestParse_Comments(t *testing.T) {
	t.Parallel()

	file := parse(t, "// lead\nfoo(); /* tail */\n")

	stmt := file.Root.List("body")[0]
	require.Len(t, stmt.Comments, 2)

	assert.Equal(t, ast.CommentLine, stmt.Comments[0].Kind)
	assert.Equal(t, " lead", stmt.Comments[0].Value)
	assert.Equal(t, ast.Leading, stmt.Comments[0].Placement)

	assert.Equal(t, ast.CommentBlock, stmt.Comments[1].Kind)
	assert.Equal(t, " tail ", stmt.Comments[1].Value)
	assert.Equal(t, ast.Trailing, stmt.Comments[1].Placement)
}

func TestParse_Interpreter(t *testing.T) {
	t.Parallel()

	file := parse(t, "#!/usr/bin/env node\nmain();\n")

	assert.Equal(t, "/usr/bin/env node", file.Root.Str("interpreter"))
	assert.Len(t, file.Root.List("body"), 1)
}

func TestParse_RecoversFromErrors(t *testing.T) {
	t.Parallel()

	src := "let a = 1 +;\nfoo(a);\n"
	file := parse(t, src)

	opaque := ast.Find(file.Root, func(n *ast.Node) bool { return n.Is(ast.Opaque) })
	require.NotNil(t, opaque)
	assert.Equal(t, opaque.Text(), opaque.Str("text"))

	assert.Equal(t, src, reprint(t, file))

	callee := ast.Find(file.Root, func(n *ast.Node) bool {
		return n.Is(ast.Identifier) && n.Str("name") == "foo"
	})
	require.NotNil(t, callee)
	callee.Set("name", "bar")

	assert.Equal(t, "let a = 1 +;\nbar(a);\n", reprint(t, file))
}

func TestParse_OpaqueMoves(t *testing.T) {
	t.Parallel()

	file := parse(t, "class A {\n  m() {}\n}\nfoo();\n")
	body := file.Root.List("body")
	require.Len(t, body, 2)
	require.Equal(t, ast.Opaque, body[0].Kind)

	file.Root.Set("body", []*ast.Node{body[1], body[0]})

	assert.Equal(t, "foo();\nclass A {\n  m() {}\n}\n", reprint(t, file))
}

func TestParse_FreshOpaquePrintsText(t *testing.T) {
	t.Parallel()

	file := parse(t, "foo();\n")
	stmt := ast.New(ast.Opaque).Set("text", "enum E { A }").Set("grammar", "enum_declaration")
	file.Root.Set("body", append(file.Root.List("body"), stmt))

	assert.Equal(t, "foo();\nenum E { A }\n", reprint(t, file))
}

func TestParse_Strict(t *testing.T) {
	t.Parallel()

	_, err := treesitter.New(treesitter.FlavorTypeScript, treesitter.WithStrict(true)).
		Parse(context.Background(), "broken.ts", []byte("let a = 1 +;\n"))

	var syntaxErr *syntaxcheck.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "broken.ts", syntaxErr.Path)
	assert.Equal(t, 1, syntaxErr.Line)
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := treesitter.New(treesitter.FlavorJavaScript).Parse(ctx, "a.js", []byte("a();"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestNew_Flavor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, treesitter.FlavorJavaScript, treesitter.New(treesitter.FlavorJavaScript).Flavor())
	assert.Equal(t, treesitter.FlavorTypeScript, treesitter.New("cobol").Flavor())
}
