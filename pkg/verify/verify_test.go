package verify_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/parser/typescript"
	"github.com/yaklabco/tsreprint/pkg/reprint"
	"github.com/yaklabco/tsreprint/pkg/verify"
)

func TestSource_Passes(t *testing.T) {
	t.Parallel()

	sources := []string{
		"let   a=1",
		"// header\nfunction f(a: number, b?: string): void {\n  return;\n}\n",
		"enum Color {\n  Red = 1,\n  Green\n}\n",
		"interface Square<T> extends Shape<T> {\n  sideLength: number;\n}\n",
		"const a = b as U as V;\n",
	}

	for _, src := range sources {
		report, err := verify.Source(context.Background(), "case.ts", []byte(src), verify.DefaultOptions())
		require.NoError(t, err, "source %q", src)
		assert.NotEmpty(t, report.Pretty)
	}
}

func TestSource_ParseErrorIsReturnedUnchanged(t *testing.T) {
	t.Parallel()

	_, err := verify.Source(context.Background(), "bad.ts", []byte("if (a {}"), verify.DefaultOptions())

	var parseErr *typescript.ParseError
	require.ErrorAs(t, err, &parseErr)

	var roundTrip *reprint.RoundTripError
	assert.False(t, errors.As(err, &roundTrip))
}

func TestSource_NormalizeNewlines(t *testing.T) {
	t.Parallel()

	opts := verify.DefaultOptions()
	opts.NormalizeNewlines = true

	report, err := verify.Source(context.Background(), "crlf.ts", []byte("a();\r\nb();\r\n"), opts)
	require.NoError(t, err)
	assert.Equal(t, "a();\nb();\n", report.Pretty)
}

type rejectAll struct{}

var errRejected = errors.New("rejected")

func (rejectAll) Check(context.Context, string, []byte) error { return errRejected }

func TestSource_SyntaxStage(t *testing.T) {
	t.Parallel()

	opts := verify.DefaultOptions()
	opts.Syntax = rejectAll{}

	_, err := verify.Source(context.Background(), "a.ts", []byte("x;"), opts)

	var roundTrip *reprint.RoundTripError
	require.ErrorAs(t, err, &roundTrip)
	assert.Equal(t, reprint.StageSyntax, roundTrip.Stage)
	require.ErrorIs(t, err, errRejected)

	opts.Pretty = false
	_, err = verify.Source(context.Background(), "a.ts", []byte("x;"), opts)
	require.NoError(t, err)
}

// semicolonless only accepts source without semicolons, so that pretty
// printed output fails to parse again.
type semicolonless struct{}

func (semicolonless) Parse(ctx context.Context, path string, content []byte) (*ast.File, error) {
	if bytes.ContainsRune(content, ';') {
		return nil, errors.New("semicolons are not allowed")
	}

	return typescript.New(typescript.FlavorTypeScript).Parse(ctx, path, content)
}

func TestSource_ReparseStage(t *testing.T) {
	t.Parallel()

	reprint.RegisterParser("semicolonless", func(bool) reprint.Parser { return semicolonless{} })

	opts := verify.DefaultOptions()
	opts.Reprint.Parser = "semicolonless"

	_, err := verify.Source(context.Background(), "a.ts", []byte("let   a=1\n"), opts)

	var roundTrip *reprint.RoundTripError
	require.ErrorAs(t, err, &roundTrip)
	assert.Equal(t, reprint.StageReparse, roundTrip.Stage)
	assert.Contains(t, roundTrip.Error(), "semicolons are not allowed")
}

func TestTree(t *testing.T) {
	t.Parallel()

	file, err := reprint.Parse(context.Background(), "a.ts", []byte("// keep\nconst total = price * count;\n"), reprint.DefaultOptions())
	require.NoError(t, err)

	decl := file.Root.List("body")[0].List("declarations")[0]
	decl.Set("init", ast.NewBinary("+", decl.Child("init"), ast.NewNumber(1)))
	decl.Child("init").AddComment(ast.NewBlockComment(" adjusted "))

	result, err := verify.Tree(context.Background(), file, verify.DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, result.Code, "// keep\n")
	assert.Contains(t, result.Code, "/* adjusted */")
	assert.Contains(t, result.Code, "price * count + 1")
}
