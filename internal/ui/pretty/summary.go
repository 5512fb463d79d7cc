package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/tsreprint/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "1 failed, 11 passed, 2 parse failures in 9 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.Cases == 0 && stats.FilesErrored == 0 {
		return s.Dim.Render(fmt.Sprintf("No sources checked (%d %s discovered)",
			stats.FilesDiscovered, plural(stats.FilesDiscovered, wordFile, wordFiles))) + "\n"
	}

	var parts []string
	if stats.Failed > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.Failed)))
	}
	if stats.Failed == 0 && stats.FilesErrored == 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d passed", stats.Passed)))
	} else {
		parts = append(parts, fmt.Sprintf("%d passed", stats.Passed))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s unreadable",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}
	if stats.ExpectedFailures > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d expected %s",
			stats.ExpectedFailures, plural(stats.ExpectedFailures, "failure", "failures"))))
	}
	if stats.ParseFailures > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d parse %s",
			stats.ParseFailures, plural(stats.ParseFailures, "failure", "failures"))))
	}

	return fmt.Sprintf("%s in %d %s\n", strings.Join(parts, ", "),
		stats.FilesDiscovered, plural(stats.FilesDiscovered, wordFile, wordFiles))
}

// FormatSummary formats the statistics of result as a summary block.
func (s *Styles) FormatSummary(result *runner.Result) string {
	var stats runner.Stats
	if result != nil {
		stats = result.Stats
	}

	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files unreadable:    " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Sources:             " +
		s.SummaryValue.Render(strconv.Itoa(stats.Cases)) + "\n")
	builder.WriteString("    Passed:            " +
		s.Success.Render(strconv.Itoa(stats.Passed)) + "\n")
	if stats.Failed > 0 {
		builder.WriteString("    Failed:            " +
			s.Error.Render(strconv.Itoa(stats.Failed)) + "\n")
	}
	if stats.ExpectedFailures > 0 {
		builder.WriteString("    Expected failures: " +
			s.Dim.Render(strconv.Itoa(stats.ExpectedFailures)) + "\n")
	}
	if stats.ParseFailures > 0 {
		builder.WriteString("    Parse failures:    " +
			s.Warning.Render(fmt.Sprintf("%d (%.0f%%)", stats.ParseFailures, stats.ParseFailureRatio()*100)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case result.HasFailures():
		builder.WriteString(s.Failure.Render("Round trip failed"))
	case stats.ParseFailures > 0:
		builder.WriteString(s.Warning.Render("Round trip passed with parse failures"))
	default:
		builder.WriteString(s.Success.Render("Round trip passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
