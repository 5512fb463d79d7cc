package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/fix"
	"github.com/yaklabco/tsreprint/pkg/source"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{
			name:    "no edits",
			content: "let a = 1;",
			want:    "let a = 1;",
		},
		{
			name:    "replace literal",
			content: "let decimal: number = 6;",
			edits:   []fix.TextEdit{{StartOffset: 22, EndOffset: 23, NewText: "7"}},
			want:    "let decimal: number = 7;",
		},
		{
			name:    "insert parentheses",
			content: "a + b * c",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 0, NewText: "("},
				{StartOffset: 5, EndOffset: 5, NewText: ")"},
			},
			want: "(a + b) * c",
		},
		{
			name:    "delete statement",
			content: "a();\nb();\n",
			edits:   []fix.TextEdit{{StartOffset: 5, EndOffset: 10}},
			want:    "a();\n",
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 2, NewText: "XX"},
				{StartOffset: 2, EndOffset: 4, NewText: "YY"},
				{StartOffset: 4, EndOffset: 6, NewText: "ZZ"},
			},
			want: "XXYYZZ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, fix.ApplyEdits(tt.content, tt.edits))
		})
	}
}

func TestApplyAll_SortsFirst(t *testing.T) {
	t.Parallel()

	got, err := fix.ApplyAll("abc", []fix.TextEdit{
		{StartOffset: 2, EndOffset: 3, NewText: "Z"},
		{StartOffset: 0, EndOffset: 1, NewText: "X"},
	})
	require.NoError(t, err)
	assert.Equal(t, "XbZ", got)

	_, err = fix.ApplyAll("abc", []fix.TextEdit{{StartOffset: 0, EndOffset: 9}})
	var invalid *fix.ValidationError
	assert.ErrorAs(t, err, &invalid)
}

func TestEditBuilder(t *testing.T) {
	t.Parallel()

	buf := source.New("a.ts", "let decimal: number = 6;\nfoo(bar);\n")

	b := fix.NewEditBuilder(buf.Content())
	b.Replace(buf.NewRange(22, 23), "7")
	b.Replace(buf.NewRange(25, 34), "foo(bar);")
	b.Insert(buf.Len(), "baz();\n")
	require.Equal(t, 3, b.Len())

	out, edits, err := b.Apply()
	require.NoError(t, err)
	assert.Equal(t, "let decimal: number = 7;\nfoo(bar);\nbaz();\n", out)
	assert.Equal(t, []fix.TextEdit{
		{StartOffset: 22, EndOffset: 23, NewText: "7"},
		{StartOffset: 35, EndOffset: 35, NewText: "baz();\n"},
	}, edits)
	assert.Len(t, b.Edits(), 3)
}

func TestEditBuilder_Conflict(t *testing.T) {
	t.Parallel()

	b := fix.NewEditBuilder("abcdef")
	b.ReplaceRange(0, 3, "x")
	b.Delete(2, 4)

	_, _, err := b.Apply()
	var conflict *fix.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 0, conflict.Edit1.StartOffset)
	assert.Equal(t, 2, conflict.Edit2.StartOffset)
}

func TestTextEdit(t *testing.T) {
	t.Parallel()

	buf := source.New("", "abcdef")
	edit := fix.Replace(buf.NewRange(1, 4), "XY")

	assert.Equal(t, 3, edit.Removed())
	assert.Equal(t, -1, edit.Delta())
	assert.Equal(t, `[1:4] "XY"`, edit.String())
}
