// Package pretty renders harness output with lipgloss styles.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultTermWidth is used when the output is not a terminal.
const DefaultTermWidth = 100

// ANSI palette indexes.
const (
	colorGray    = "8"
	colorRed     = "9"
	colorGreen   = "10"
	colorYellow  = "11"
	colorBlue    = "12"
	colorMagenta = "13"
	colorCyan    = "14"
)

// Styles holds the renderers for every piece of CLI output. With color
// disabled every style renders text unchanged.
type Styles struct {
	// Case status.
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	// One failing case: path, position, failing stage, reason.
	FilePath lipgloss.Style
	Location lipgloss.Style
	Stage    lipgloss.Style
	Message  lipgloss.Style

	// Unified diffs between expected and printed code.
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary blocks and the per-stage and per-file tables.
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Heading      lipgloss.Style
	FailedRow    lipgloss.Style
	ParseRow     lipgloss.Style
	Rule         lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns the styles for the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	p := palette{enabled: colorEnabled}

	return &Styles{
		Error:   p.bold(colorRed),
		Warning: p.bold(colorYellow),
		Info:    p.bold(colorBlue),
		Success: p.bold(colorGreen),
		Failure: p.bold(colorRed),

		FilePath: p.bold(""),
		Location: p.fg(colorGray),
		Stage:    p.fg(colorMagenta),
		Message:  p.fg(""),

		DiffHeader:  p.bold(""),
		DiffHunk:    p.fg(colorCyan),
		DiffAdd:     p.fg(colorGreen),
		DiffRemove:  p.fg(colorRed),
		DiffContext: p.fg(colorGray),

		SummaryTitle: p.bold(""),
		SummaryValue: p.fg(""),
		Heading:      p.bold("7"),
		FailedRow:    p.fg(colorRed),
		ParseRow:     p.fg(colorYellow),
		Rule:         p.fg(colorGray),

		Dim:  p.fg(colorGray),
		Bold: p.bold(""),
	}
}

// palette builds styles that collapse to plain text when color is off.
type palette struct {
	enabled bool
}

func (p palette) fg(color string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if p.enabled && color != "" {
		style = style.Foreground(lipgloss.Color(color))
	}
	return style
}

func (p palette) bold(color string) lipgloss.Style {
	if !p.enabled {
		return lipgloss.NewStyle()
	}
	return p.fg(color).Bold(true)
}

// IsColorEnabled resolves a --color mode ("always", "never" or "auto") for
// writer. Auto enables color for terminals unless NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := writer.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// TerminalWidth returns the width of the terminal behind writer, or
// DefaultTermWidth.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return DefaultTermWidth
}
