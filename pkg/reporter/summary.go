package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/tsreprint/internal/ui/pretty"
	"github.com/yaklabco/tsreprint/pkg/analysis"
)

// Table layout constants for summary output.
const (
	maxTableWidth  = 90
	minTableWidth  = 50
	stageColWidth  = 24
	numColWidth    = 8
	fileNumColumns = 3
	separatorRune  = "\u2500"
	ellipsis       = "\u2026"
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// truncateLeft keeps the end of s, which for paths is the informative part.
func truncateLeft(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return ellipsis + s[len(s)-(width-1):]
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
	width  int
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	width := min(pretty.TerminalWidth(opts.Writer), maxTableWidth)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
		width:  max(width, minTableWidth),
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	totals := report.Totals
	if totals.Problems() == 0 && totals.FilesErrored == 0 && len(totals.RunErrors) == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("All sources round-trip")+
			r.styles.Dim.Render(fmt.Sprintf(" (%d cases in %d files)", totals.Cases, totals.Files)))
		return nil
	}

	r.renderStageTable(report.ByStage)
	fmt.Fprintln(r.out)
	r.renderFileTable(report.ByFile)
	fmt.Fprintln(r.out)

	for _, runErr := range totals.RunErrors {
		fmt.Fprintln(r.out, r.styles.Error.Render(runErr))
	}
	r.renderTotals(totals)

	return nil
}

func (r *SummaryRenderer) separator() string {
	return r.styles.Rule.Render(strings.Repeat(separatorRune, r.width))
}

func (r *SummaryRenderer) renderStageTable(stages []analysis.StageAnalysis) {
	if len(stages) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Stages Summary"))
	fmt.Fprintln(r.out, r.separator())
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.Heading.Render(padRight("Stage", stageColWidth)),
		r.styles.Heading.Render(padLeft("Failures", numColWidth)),
		r.styles.Heading.Render(padLeft("Files", numColWidth)),
	)
	fmt.Fprintln(r.out, r.separator())

	for _, stage := range stages {
		name := padRight(stage.Stage, stageColWidth)
		if stage.Stage == analysis.StageParse {
			name = r.styles.ParseRow.Render(name)
		} else {
			name = r.styles.FailedRow.Render(name)
		}

		fmt.Fprintf(r.out, "%s %s %s\n",
			name,
			padLeft(strconv.Itoa(stage.Failures), numColWidth),
			padLeft(strconv.Itoa(len(stage.Files)), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fileColWidth := r.width - fileNumColumns*(numColWidth+1)

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.separator())
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.Heading.Render(padRight("File", fileColWidth)),
		r.styles.Heading.Render(padLeft("Cases", numColWidth)),
		r.styles.Heading.Render(padLeft("Failed", numColWidth)),
		r.styles.Heading.Render(padLeft("Parse", numColWidth)),
	)
	fmt.Fprintln(r.out, r.separator())

	for _, file := range files {
		path := padRight(truncateLeft(file.Path, fileColWidth-1), fileColWidth)
		switch {
		case file.Error != "" || file.Failed > 0:
			path = r.styles.FailedRow.Render(path)
		case file.ParseFailures > 0:
			path = r.styles.ParseRow.Render(path)
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			path,
			padLeft(strconv.Itoa(file.Cases), numColWidth),
			padLeft(strconv.Itoa(file.Failed), numColWidth),
			padLeft(strconv.Itoa(file.ParseFailures), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	parts := []string{fmt.Sprintf("%d cases", totals.Cases)}

	var breakdown []string
	if totals.Failed > 0 {
		breakdown = append(breakdown, r.styles.Error.Render(fmt.Sprintf("%d failed", totals.Failed)))
	}
	if totals.ParseFailures > 0 {
		breakdown = append(breakdown, r.styles.Warning.Render(
			fmt.Sprintf("%d parse failures, %.0f%%", totals.ParseFailures, totals.ParseFailureRatio*100)))
	}
	if totals.FilesErrored > 0 {
		breakdown = append(breakdown, r.styles.Error.Render(fmt.Sprintf("%d unreadable", totals.FilesErrored)))
	}
	if len(breakdown) > 0 {
		parts[0] += " (" + strings.Join(breakdown, ", ") + ")"
	}

	parts = append(parts, fmt.Sprintf("in %d files", totals.Files))

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+strings.Join(parts, " "))
}
