// Package reporter renders the results of a verification run.
package reporter

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/tsreprint/pkg/analysis"
	"github.com/yaklabco/tsreprint/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of failed and unparsable sources and any
	// write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer presents an analysis.Report. Formats that only need aggregated
// data implement Renderer and are wrapped by New.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// Format names an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatDiff    Format = "diff"
	FormatSummary Format = "summary"
)

func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	_, ok := formats[f]
	return ok
}

// formats maps each format to its constructor.
//
//nolint:gochecknoglobals // Read-only lookup table.
var formats = map[Format]func(Options) Reporter{
	FormatText: func(opts Options) Reporter { return NewTextReporter(opts) },
	FormatDiff: func(opts Options) Reporter { return NewDiffReporter(opts) },
	FormatJSON: func(opts Options) Reporter {
		return analyzed(NewJSONRenderer(opts), opts, true)
	},
	FormatSummary: func(opts Options) Reporter {
		return analyzed(NewSummaryRenderer(opts), opts, false)
	},
}

// Formats returns the supported formats, sorted.
func Formats() []Format {
	out := make([]Format, 0, len(formats))
	for f := range formats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// ParseFormat parses a format name. The empty string means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}

	format := Format(strings.ToLower(name))
	if !format.IsValid() {
		names := make([]string, 0, len(formats))
		for _, f := range Formats() {
			names = append(names, string(f))
		}
		return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(names, ", "))
	}

	return format, nil
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	build, ok := formats[format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return build(opts), nil
}

// analysisReporter analyzes a result and hands it to a Renderer.
type analysisReporter struct {
	renderer Renderer
	opts     analysis.Options
}

func analyzed(renderer Renderer, opts Options, includePassed bool) *analysisReporter {
	sortBy := opts.SortBy
	if !sortBy.IsValid() {
		sortBy = analysis.SortByCount
	}

	return &analysisReporter{
		renderer: renderer,
		opts: analysis.Options{
			IncludeCases:   true,
			IncludePassed:  includePassed,
			IncludeByFile:  true,
			IncludeByStage: true,
			SortBy:         sortBy,
			SortDesc:       true,
			WorkingDir:     opts.WorkingDir,
		},
	}
}

// Report implements Reporter.
func (r *analysisReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, r.opts)
	if err := r.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Problems(), nil
}
