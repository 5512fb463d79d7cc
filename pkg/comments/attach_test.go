package comments_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/comments"
	"github.com/yaklabco/tsreprint/pkg/parser/typescript"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()

	file, err := typescript.New(typescript.FlavorTypeScript).Parse(context.Background(), "attach.ts", []byte(src))
	require.NoError(t, err)

	return file
}

func TestAttach_Placement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		anchor    func(root *ast.Node) *ast.Node
		placement ast.Placement
		ownLine   bool
	}{
		{
			name: "own line before statement",
			src:  "// note\nlet a = 1;\n",
			anchor: func(root *ast.Node) *ast.Node {
				return root.List("body")[0]
			},
			placement: ast.Leading,
			ownLine:   true,
		},
		{
			name: "end of line",
			src:  "let a = 1; // note\nlet b = 2;\n",
			anchor: func(root *ast.Node) *ast.Node {
				return root.List("body")[0]
			},
			placement: ast.Trailing,
		},
		{
			name: "inline before expression",
			src:  "let a = /* note */ 1;\n",
			anchor: func(root *ast.Node) *ast.Node {
				return root.List("body")[0].List("declarations")[0].Child("init")
			},
			placement: ast.Leading,
		},
		{
			name: "inside empty object",
			src:  "let a = { /* note */ };\n",
			anchor: func(root *ast.Node) *ast.Node {
				return root.List("body")[0].List("declarations")[0].Child("init")
			},
			placement: ast.Dangling,
		},
		{
			name: "after last member",
			src:  "class A {\n  x = 1;\n  // note\n}\n",
			anchor: func(root *ast.Node) *ast.Node {
				return root.List("body")[0].Child("body").List("body")[0]
			},
			placement: ast.Trailing,
			ownLine:   true,
		},
		{
			name: "empty program",
			src:  "// only\n",
			anchor: func(root *ast.Node) *ast.Node {
				return root
			},
			placement: ast.Dangling,
			ownLine:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			file := parse(t, tt.src)
			require.Len(t, file.Comments, 1)

			comment := file.Comments[0]
			want := tt.anchor(file.Root)
			assert.Same(t, want, file.Anchor(comment))
			assert.Contains(t, want.Comments, comment)
			assert.Equal(t, tt.placement, comment.Placement)
			assert.Equal(t, tt.ownLine, comment.OwnLine)
		})
	}
}

func TestAttach_EveryCommentOnce(t *testing.T) {
	t.Parallel()

	src := `/** Docs. */
export function f(a /* first */, b) {
  // body
  return a + b; // sum
}
/* tail */
`
	file := parse(t, src)
	require.Len(t, file.Comments, 5)

	var attached []*ast.Comment
	_ = ast.Walk(file.Root, func(n *ast.Node) error {
		attached = append(attached, n.Comments...)
		return nil
	})
	assert.ElementsMatch(t, file.Comments, attached)
}

func TestAttach_Idempotent(t *testing.T) {
	t.Parallel()

	file := parse(t, "a(); // one\n// two\nb();\n")

	first := comments.Attach(file.Root, file.Comments)
	second := comments.Attach(file.Root, file.Comments)
	assert.Equal(t, first, second)

	body := file.Root.List("body")
	assert.Len(t, body[0].Comments, 1)
	assert.Len(t, body[1].Comments, 1)
}

func TestAttach_NilRoot(t *testing.T) {
	t.Parallel()

	assert.Empty(t, comments.Attach(nil, []*ast.Comment{ast.NewLineComment(" x")}))
}
