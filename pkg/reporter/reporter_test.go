package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/analysis"
	"github.com/yaklabco/tsreprint/pkg/parser/typescript"
	"github.com/yaklabco/tsreprint/pkg/reporter"
	"github.com/yaklabco/tsreprint/pkg/reprint"
	"github.com/yaklabco/tsreprint/pkg/runner"
)

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path:  "/work/a.ts",
				Cases: []runner.CaseOutcome{{Name: "/work/a.ts", Status: runner.StatusPassed}},
			},
			{
				Path: "/work/b.ts",
				Cases: []runner.CaseOutcome{{
					Name:   "/work/b.ts",
					Status: runner.StatusFailed,
					Error: &reprint.RoundTripError{
						Stage:  reprint.StageIdentity,
						Path:   "/work/b.ts",
						Reason: "output differs in 1 place(s)",
						Diff:   "--- /work/b.ts\n+++ /work/b.ts\n@@ -1 +1 @@\n-a;\n+b;\n",
					},
				}},
			},
			{
				Path: "/work/c.js",
				Cases: []runner.CaseOutcome{{
					Name:   "/work/c.js",
					Status: runner.StatusParseFailure,
					Error:  &typescript.ParseError{Path: "/work/c.js", Line: 2, Column: 3, Message: "unexpected '}'"},
				}},
			},
		},
		Stats: runner.Stats{FilesDiscovered: 3, Cases: 3, Passed: 1, Failed: 1, ParseFailures: 1},
	}
}

func newReporter(t *testing.T, buf *bytes.Buffer, format reporter.Format, mutate func(*reporter.Options)) reporter.Reporter {
	t.Helper()

	opts := reporter.Options{
		Writer:      buf,
		Format:      format,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  "/work",
	}
	if mutate != nil {
		mutate(&opts)
	}

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	return rep
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatText, nil).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	want := "b.ts (1 failing)\n" +
		"  failed  b.ts  output differs in 1 place(s)  [reprint-identity]\n" +
		"\n" +
		"c.js (1 failing)\n" +
		"  parse-failure  c.js (2:3)  unexpected '}'\n" +
		"\n" +
		"1 failed, 1 passed, 1 parse failure in 3 files\n"
	assert.Equal(t, want, buf.String())
}

func TestTextReporter_DiffAndPassed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := newReporter(t, &buf, reporter.FormatText, func(opts *reporter.Options) {
		opts.ShowDiff = true
		opts.ShowPassed = true
		opts.Verbose = true
	})

	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "  passed  a.ts\n")
	assert.Contains(t, out, "    -a;\n    +b;\n")
	assert.Contains(t, out, "Round trip failed")
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatText, nil).Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "No files to check.\n", buf.String())
}

func TestTextReporter_RunErrors(t *testing.T) {
	t.Parallel()

	result := sampleResult()
	result.Files = append(result.Files, runner.FileOutcome{Path: "/work/d.ts", Error: errors.New("denied")})
	result.Errors = []error{errors.New("2 of 4 sources failed to parse")}

	var buf bytes.Buffer
	_, err := newReporter(t, &buf, reporter.FormatText, nil).Report(context.Background(), result)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "d.ts: error: denied\n")
	assert.Contains(t, buf.String(), "2 of 4 sources failed to parse\n")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatJSON, nil).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var report analysis.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	assert.Equal(t, analysis.ReportVersion, report.Version)
	assert.Equal(t, 3, report.Totals.Cases)
	require.Len(t, report.Cases, 3)
	assert.Equal(t, "a.ts", report.Cases[0].Name)
	assert.Equal(t, string(reprint.StageIdentity), report.Cases[1].Stage)
	assert.Equal(t, 2, report.Cases[2].Line)
	require.Len(t, report.ByStage, 2)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := newReporter(t, &buf, reporter.FormatJSON, func(opts *reporter.Options) { opts.Compact = true })

	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatDiff, nil).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	want := "diff b.ts (reprint-identity)\n" +
		"--- /work/b.ts\n+++ /work/b.ts\n@@ -1 +1 @@\n-a;\n+b;\n" +
		"\n" +
		"1 source differs\n"
	assert.Equal(t, want, buf.String())
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatSummary, nil).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "Stages Summary")
	assert.Contains(t, out, "reprint-identity")
	assert.Contains(t, out, "Files Summary")
	assert.Contains(t, out, "c.js")
	assert.Contains(t, out, "Total: 3 cases (1 failed, 1 parse failures, 33%) in 3 files")
}

func TestSummaryReporter_AllPassed(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{{
			Path:  "/work/a.ts",
			Cases: []runner.CaseOutcome{{Name: "/work/a.ts", Status: runner.StatusPassed}},
		}},
	}

	var buf bytes.Buffer
	count, err := newReporter(t, &buf, reporter.FormatSummary, nil).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "All sources round-trip (1 cases in 1 files)\n", buf.String())
}
