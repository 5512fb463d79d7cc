package reporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/tsreprint/internal/ui/pretty"
	"github.com/yaklabco/tsreprint/pkg/reprint"
	"github.com/yaklabco/tsreprint/pkg/runner"
)

// DiffReporter prints the diffs of failed identity and idempotence checks.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter. It returns the number of diffs written.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var written int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		for _, c := range file.Cases {
			var roundTrip *reprint.RoundTripError
			if !errors.As(c.Error, &roundTrip) || roundTrip.Diff == "" {
				continue
			}

			written++
			r.writeDiff(displayPath(c.Name, r.opts.WorkingDir), roundTrip)
		}
	}

	if written > 0 && r.opts.ShowSummary {
		word := "sources differ"
		if written == 1 {
			word = "source differs"
		}
		fmt.Fprintf(r.out, "%d %s\n", written, word)
	}

	return written, nil
}

func (r *DiffReporter) writeDiff(name string, roundTrip *reprint.RoundTripError) {
	header := fmt.Sprintf("diff %s (%s)", name, roundTrip.Stage)
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(header))
	fmt.Fprint(r.out, r.styles.FormatDiff(strings.TrimSuffix(roundTrip.Diff, "\n"), ""))
	fmt.Fprintln(r.out)
}
