package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/tsreprint/internal/ui/pretty"
	"github.com/yaklabco/tsreprint/pkg/runner"
)

// TextReporter formats results as styled terminal output, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		var shown []runner.CaseOutcome
		failing := 0
		for _, c := range file.Cases {
			if c.Status == runner.StatusFailed || c.Status == runner.StatusParseFailure {
				failing++
			}
			if c.Status != runner.StatusPassed || r.opts.ShowPassed {
				c.Name = displayPath(c.Name, r.opts.WorkingDir)
				shown = append(shown, c)
			}
		}
		if len(shown) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, failing))
		for _, c := range shown {
			fmt.Fprint(r.bw, r.styles.FormatCase(c, r.opts.ShowDiff))
		}
		fmt.Fprintln(r.bw)
	}

	for _, runErr := range result.Errors {
		fmt.Fprintln(r.bw, r.styles.Error.Render(runErr.Error()))
	}

	if r.opts.ShowSummary {
		if r.opts.Verbose {
			fmt.Fprint(r.bw, r.styles.FormatSummary(result))
		} else {
			fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
		}
	}

	return result.Stats.Failed + result.Stats.ParseFailures, nil
}

// displayPath makes path relative to workDir when possible.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}
