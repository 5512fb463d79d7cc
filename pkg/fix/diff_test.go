package fix_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/fix"
)

func TestUnifiedDiff(t *testing.T) {
	t.Parallel()

	diff, err := fix.UnifiedDiff("/src/f.ts", "a\nb\nc\n", "a\nx\nc\n")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(diff, "--- a/src/f.ts\n+++ b/src/f.ts\n"), diff)
	assert.Contains(t, diff, "@@ -1,3 +1,3 @@\n a\n-b\n+x\n c\n")

	diff, err = fix.UnifiedDiff("f.ts", "same\n", "same\n")
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestColorizeDiff_KeepsText(t *testing.T) {
	t.Parallel()

	diff, err := fix.UnifiedDiff("f.ts", "let a = 1;\n", "let a = 2;\n")
	require.NoError(t, err)

	colored := fix.ColorizeDiff(diff)
	for _, line := range []string{"--- a/f.ts", "+++ b/f.ts", "-let a = 1;", "+let a = 2;"} {
		assert.Contains(t, colored, line)
	}
}

func TestChangedSpans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		original string
		modified string
		want     []fix.Span
	}{
		{
			name:     "equal",
			original: "let a = 1;",
			modified: "let a = 1;",
		},
		{
			name:     "single literal",
			original: "let decimal: number = 6;",
			modified: "let decimal: number = 7;",
			want:     []fix.Span{{Offset: 22, Deleted: "6", Inserted: "7"}},
		},
		{
			name:     "insertion",
			original: "f(a);",
			modified: "f(a, b);",
			want:     []fix.Span{{Offset: 3, Inserted: ", b"}},
		},
		{
			name:     "deletion",
			original: "a;\nb;\n",
			modified: "a;\n",
			want:     []fix.Span{{Offset: 3, Deleted: "b;\n"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fix.ChangedSpans(tt.original, tt.modified)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	stats := fix.Measure("let decimal: number = 6;", "let decimal: number = 42;")
	assert.Equal(t, 1, stats.Spans)
	assert.Equal(t, 3, stats.Changed())

	assert.Equal(t, fix.Stats{}, fix.Measure("x", "x"))
}

func FuzzChangedSpans(f *testing.F) {
	f.Add("", "")
	f.Add("hello", "hello")
	f.Add("hello", "world")
	f.Add("a\nb\nc\n", "a\nx\nc\n")
	f.Add("let decimal: number = 6;", "let decimal: number = 7;")
	f.Add("\u00e9t\u00e9", "ete")

	f.Fuzz(func(t *testing.T, original, modified string) {
		if !utf8.ValidString(original) || !utf8.ValidString(modified) {
			t.Skip()
		}

		spans := fix.ChangedSpans(original, modified)
		if original == modified {
			if len(spans) != 0 {
				t.Fatalf("spans for equal texts: %v", spans)
			}
			return
		}

		edits := make([]fix.TextEdit, len(spans))
		for idx, span := range spans {
			edits[idx] = span.Edit()
		}

		got, err := fix.ApplyAll(original, edits)
		if err != nil {
			t.Fatalf("ApplyAll: %v", err)
		}
		if got != modified {
			t.Fatalf("spans rebuild %q, want %q", got, modified)
		}
	})
}
