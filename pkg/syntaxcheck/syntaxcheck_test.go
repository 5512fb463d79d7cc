package syntaxcheck_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/syntaxcheck"
)

func TestLanguageFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path   string
		flavor string
		want   syntaxcheck.Language
	}{
		{"a.ts", "javascript", syntaxcheck.TypeScript},
		{"a.tsx", "", syntaxcheck.TSX},
		{"a.mjs", "typescript", syntaxcheck.JavaScript},
		{"input.js", "", syntaxcheck.JavaScript},
		{"README.md", "javascript", syntaxcheck.JavaScript},
		{"README.md", "typescript", syntaxcheck.TypeScript},
		{"", "", syntaxcheck.TypeScript},
	}

	for _, tt := range tests {
		t.Run(tt.path+" "+tt.flavor, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, syntaxcheck.LanguageFor(tt.path, tt.flavor))
		})
	}
}

func TestChecker_Valid(t *testing.T) {
	t.Parallel()

	checker := syntaxcheck.New("typescript")

	sources := []string{
		"let decimal: number = 6;\n",
		"function f<T, U>(a: T, b: U): void {\n  let c: number;\n}\n",
		"enum Color {\n  Red = 1,\n  Green\n}\n",
		"",
	}

	for _, src := range sources {
		require.NoError(t, checker.Check(context.Background(), "ok.ts", []byte(src)), "source %q", src)
	}
}

func TestChecker_Invalid(t *testing.T) {
	t.Parallel()

	err := syntaxcheck.New("typescript").Check(context.Background(), "bad.ts", []byte("ok();\nif (a {\n"))
	require.Error(t, err)

	var syntaxErr *syntaxcheck.SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, "bad.ts", syntaxErr.Path)
	assert.Equal(t, syntaxcheck.TypeScript, syntaxErr.Language)
	assert.GreaterOrEqual(t, syntaxErr.Line, 2)
}

func TestChecker_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := syntaxcheck.New("typescript").Check(ctx, "a.ts", []byte("x;"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestDump(t *testing.T) {
	t.Parallel()

	out, err := syntaxcheck.Dump([]byte("x;"), syntaxcheck.JavaScript)
	require.NoError(t, err)
	assert.Contains(t, out, "(program")
	assert.Contains(t, out, "identifier")
}
