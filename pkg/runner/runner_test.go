package runner_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/reprint"
	"github.com/yaklabco/tsreprint/pkg/runner"
	"github.com/yaklabco/tsreprint/pkg/verify"
)

var update = flag.Bool("update", false, "rewrite golden files")

func options(dir string) runner.Options {
	return runner.Options{
		WorkingDir:           dir,
		Verify:               verify.DefaultOptions(),
		MaxParseFailureRatio: runner.DefaultMaxParseFailureRatio,
	}
}

func statuses(t *testing.T, dir string, result *runner.Result) string {
	t.Helper()

	var sb strings.Builder
	for _, c := range result.Cases() {
		rel, err := filepath.Rel(dir, c.Name)
		require.NoError(t, err)
		fmt.Fprintf(&sb, "%s %s\n", c.Status, filepath.ToSlash(rel))
	}

	return sb.String()
}

func TestRunner_Fixtures(t *testing.T) {
	t.Parallel()

	dir, err := filepath.Abs(filepath.Join("testdata", "fixtures"))
	require.NoError(t, err)

	result, err := runner.New().Run(context.Background(), options(dir))
	require.NoError(t, err)

	got := statuses(t, dir, result)
	golden := filepath.Join("testdata", "golden", "fixtures.txt")

	if *update {
		require.NoError(t, os.WriteFile(golden, []byte(got), 0o644))
	}

	want, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Equal(t, string(want), got)

	assert.Equal(t, 6, result.Stats.FilesDiscovered)
	assert.Equal(t, 7, result.Stats.Cases)
	assert.Equal(t, 5, result.Stats.Passed)
	assert.Equal(t, 1, result.Stats.ExpectedFailures)
	assert.Equal(t, 1, result.Stats.ParseFailures)
	assert.Empty(t, result.Errors)
	assert.False(t, result.HasFailures())
}

func TestRunner_ParseFailureGate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"good.ts":   "let decimal: number = 6;\n",
		"broken.ts": "return 1;\n",
	})

	opts := options(dir)
	result, err := runner.New().Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	var gate *runner.TooManyParseFailuresError
	require.ErrorAs(t, result.Errors[0], &gate)
	assert.Equal(t, 1, gate.Failures)
	assert.Equal(t, 2, gate.Cases)
	assert.Contains(t, gate.Error(), "return outside of a function")
	assert.True(t, result.HasFailures())
	assert.InDelta(t, 0.5, result.Stats.ParseFailureRatio(), 1e-9)

	opts.MaxParseFailureRatio = 0.5
	result, err = runner.New().Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.False(t, result.HasFailures())
}

func TestRunner_SidecarMismatchIsParseFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"case/input.js":     "return 1;\n",
		"case/options.json": `{"throws": "something else"}`,
	})

	result, err := runner.New().Run(context.Background(), options(dir))
	require.NoError(t, err)

	cases := result.Cases()
	require.Len(t, cases, 1)
	assert.Equal(t, runner.StatusParseFailure, cases[0].Status)
	assert.Equal(t, reprint.ParserJavaScript, cases[0].Flavor)
}

func TestRunner_InvalidSidecar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"case/input.ts":     "x;\n",
		"case/options.json": `{"throws":`,
	})

	result, err := runner.New().Run(context.Background(), options(dir))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.True(t, result.HasFailures())
}

// rejectMarked fails code that calls reject.
type rejectMarked struct{}

func (rejectMarked) Check(_ context.Context, _ string, code []byte) error {
	if bytes.Contains(code, []byte("reject(")) {
		return errors.New("marked")
	}
	return nil
}

func TestRunner_RoundTripFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"ok.ts":       "accept();\n",
		"rejected.ts": "reject();\n",
	})

	opts := options(dir)
	opts.Verify.Syntax = rejectMarked{}

	result, err := runner.New().Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.Passed)
	assert.Equal(t, 1, result.Stats.Failed)
	assert.True(t, result.HasFailures())

	var roundTrip *reprint.RoundTripError
	failed := result.Cases()[1]
	require.ErrorAs(t, failed.Error, &roundTrip)
	assert.Equal(t, reprint.StageSyntax, roundTrip.Stage)
}

func TestRunner_SerialAndParallelAgree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := make(map[string]string)
	for i := range 12 {
		files[fmt.Sprintf("f%02d.ts", i)] = fmt.Sprintf("let v%d: number = %d;\n", i, i)
	}
	files["bad.ts"] = "return 1;\n"
	writeTree(t, dir, files)

	serial := options(dir)
	serial.Jobs = 1
	parallel := options(dir)
	parallel.Jobs = 4

	one, err := runner.New().Run(context.Background(), serial)
	require.NoError(t, err)
	many, err := runner.New().Run(context.Background(), parallel)
	require.NoError(t, err)

	assert.Equal(t, statuses(t, dir, one), statuses(t, dir, many))
	assert.Equal(t, one.Stats, many.Stats)
}

func TestRunner_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New().Run(context.Background(), options(t.TempDir()))
	require.NoError(t, err)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
}

func TestRunner_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.ts": "x;\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New().Run(ctx, options(dir))
	require.ErrorIs(t, err, context.Canceled)
}

func TestResult_HasFailures(t *testing.T) {
	t.Parallel()

	var nilResult *runner.Result
	assert.False(t, nilResult.HasFailures())
	assert.Nil(t, nilResult.Cases())

	assert.True(t, (&runner.Result{Stats: runner.Stats{Failed: 1}}).HasFailures())
	assert.True(t, (&runner.Result{Errors: []error{errors.New("x")}}).HasFailures())
	assert.False(t, (&runner.Result{Stats: runner.Stats{ParseFailures: 1, Cases: 10}}).HasFailures())
}

func TestLoadSidecar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	sidecar, err := runner.LoadSidecar(filepath.Join(dir, "input.js"))
	require.NoError(t, err)
	assert.Nil(t, sidecar)
	assert.False(t, sidecar.Expects(errors.New("x")))

	writeTree(t, dir, map[string]string{"options.json": `{"throws": "boom"}`})
	sidecar, err = runner.LoadSidecar(filepath.Join(dir, "input.js"))
	require.NoError(t, err)
	require.NotNil(t, sidecar)
	assert.Equal(t, "boom", sidecar.Throws)
	assert.True(t, sidecar.Expects(errors.New("boom")))
	assert.False(t, sidecar.Expects(errors.New("bang")))
	assert.False(t, sidecar.Expects(nil))
}
