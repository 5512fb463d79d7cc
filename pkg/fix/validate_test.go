package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/fix"
)

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edit    fix.TextEdit
		wantMsg string
	}{
		{name: "valid", edit: fix.TextEdit{StartOffset: 0, EndOffset: 5}},
		{name: "insert at end", edit: fix.TextEdit{StartOffset: 5, EndOffset: 5, NewText: "!"}},
		{name: "negative start", edit: fix.TextEdit{StartOffset: -1, EndOffset: 2}, wantMsg: "start offset is negative"},
		{name: "reversed", edit: fix.TextEdit{StartOffset: 3, EndOffset: 2}, wantMsg: "end offset is before start offset"},
		{name: "past end", edit: fix.TextEdit{StartOffset: 0, EndOffset: 6}, wantMsg: "exceeds content length 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateEdits([]fix.TextEdit{tt.edit}, 5)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			var invalid *fix.ValidationError
			require.ErrorAs(t, err, &invalid)
			assert.Contains(t, invalid.Error(), tt.wantMsg)
		})
	}
}

func TestSortEdits_KeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{
		{StartOffset: 4, EndOffset: 4, NewText: "b"},
		{StartOffset: 0, EndOffset: 2, NewText: "x"},
		{StartOffset: 4, EndOffset: 4, NewText: "c"},
	}
	fix.SortEdits(edits)

	assert.Equal(t, []fix.TextEdit{
		{StartOffset: 0, EndOffset: 2, NewText: "x"},
		{StartOffset: 4, EndOffset: 4, NewText: "b"},
		{StartOffset: 4, EndOffset: 4, NewText: "c"},
	}, edits)
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	original := []fix.TextEdit{
		{StartOffset: 6, EndOffset: 8},
		{StartOffset: 0, EndOffset: 2},
	}

	prepared, err := fix.PrepareEdits(original, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, prepared[0].StartOffset)
	assert.Equal(t, 6, original[0].StartOffset, "input must not be reordered")

	_, err = fix.PrepareEdits([]fix.TextEdit{
		{StartOffset: 0, EndOffset: 5},
		{StartOffset: 4, EndOffset: 6},
	}, 10)
	var conflict *fix.ConflictError
	assert.ErrorAs(t, err, &conflict)

	prepared, err = fix.PrepareEdits(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, prepared)
}

func TestMinimize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edit    fix.TextEdit
		want    []fix.TextEdit
	}{
		{
			name:    "unchanged text is dropped",
			content: "foo(bar);",
			edit:    fix.TextEdit{StartOffset: 0, EndOffset: 9, NewText: "foo(bar);"},
		},
		{
			name:    "shared prefix and suffix are trimmed",
			content: "let decimal: number = 6;",
			edit:    fix.TextEdit{StartOffset: 0, EndOffset: 24, NewText: "let decimal: number = 7;"},
			want:    []fix.TextEdit{{StartOffset: 22, EndOffset: 23, NewText: "7"}},
		},
		{
			name:    "pure insertion",
			content: "a * c",
			edit:    fix.TextEdit{StartOffset: 0, EndOffset: 5, NewText: "a * b * c"},
			want:    []fix.TextEdit{{StartOffset: 4, EndOffset: 4, NewText: "b * "}},
		},
		{
			name:    "multi-byte runes are not split",
			content: "\"\u00e9\"",
			edit:    fix.TextEdit{StartOffset: 0, EndOffset: 4, NewText: "\"\u00e8\""},
			want:    []fix.TextEdit{{StartOffset: 1, EndOffset: 3, NewText: "\u00e8"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fix.Minimize(tt.content, []fix.TextEdit{tt.edit})
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t,
				fix.ApplyEdits(tt.content, []fix.TextEdit{tt.edit}),
				fix.ApplyEdits(tt.content, got))
		})
	}
}
