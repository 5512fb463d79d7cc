package pretty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/tsreprint/pkg/parser/typescript"
	"github.com/yaklabco/tsreprint/pkg/reprint"
	"github.com/yaklabco/tsreprint/pkg/runner"
)

// FormatStatus returns a styled status label.
func (s *Styles) FormatStatus(status runner.Status) string {
	switch status {
	case runner.StatusPassed:
		return s.Success.Render(string(status))
	case runner.StatusFailed:
		return s.Error.Render(string(status))
	case runner.StatusParseFailure:
		return s.Warning.Render(string(status))
	case runner.StatusExpectedFailure:
		return s.Dim.Render(string(status))
	default:
		return string(status)
	}
}

// FormatCase formats one case for terminal output. With showDiff set, the
// diff carried by a failed identity check is printed below it.
func (s *Styles) FormatCase(c runner.CaseOutcome, showDiff bool) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("  %s  %s", s.FormatStatus(c.Status), s.FilePath.Render(c.Name)))

	if c.Error == nil {
		builder.WriteString("\n")
		return builder.String()
	}

	var (
		parseErr   *typescript.ParseError
		roundTrip  *reprint.RoundTripError
		message    = c.Error.Error()
		stage, pos string
	)
	switch {
	case errors.As(c.Error, &roundTrip):
		stage = string(roundTrip.Stage)
		message = roundTrip.Reason
		if message == "" && roundTrip.Err != nil {
			message = roundTrip.Err.Error()
		}
	case errors.As(c.Error, &parseErr):
		pos = fmt.Sprintf("%d:%d", parseErr.Line, parseErr.Column)
		message = parseErr.Message
	}

	if pos != "" {
		builder.WriteString(" " + s.Location.Render("("+pos+")"))
	}
	builder.WriteString("  " + s.Message.Render(message))
	if stage != "" {
		builder.WriteString("  " + s.Stage.Render("["+stage+"]"))
	}
	builder.WriteString("\n")

	if showDiff && roundTrip != nil && roundTrip.Diff != "" {
		builder.WriteString(s.FormatDiff(roundTrip.Diff, "    "))
	}

	return builder.String()
}

// FormatDiff styles a unified diff line by line, prefixing each with
// indent.
func (s *Styles) FormatDiff(diff, indent string) string {
	var builder strings.Builder

	for line := range strings.SplitSeq(strings.TrimSuffix(diff, "\n"), "\n") {
		var styled string
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			styled = s.DiffHeader.Render(line)
		case strings.HasPrefix(line, "@@"):
			styled = s.DiffHunk.Render(line)
		case strings.HasPrefix(line, "+"):
			styled = s.DiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			styled = s.DiffRemove.Render(line)
		default:
			styled = s.DiffContext.Render(line)
		}
		builder.WriteString(indent + styled + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, failing int) string {
	header := s.FilePath.Render(path)
	if failing > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d failing)", failing))
	}
	return header
}
