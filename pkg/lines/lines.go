// Package lines implements the indentation-aware text value exchanged by
// printing routines.
//
// A Lines value is a sequence of lines, each with an indentation level kept
// apart from its text, so that a multi-line fragment can be nested inside
// another and re-indented as a unit. The first line of a fragment continues
// whatever text it is concatenated onto; the indentation of later lines is
// relative to the line the fragment starts on.
package lines

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/tsreprint/pkg/source"
)

// Line is a single line of a Lines value.
type Line struct {
	// Indent is the indentation in columns.
	Indent int

	// Text is the line content after the indentation.
	Text string

	// Lead is the original leading whitespace of a line copied from source.
	// It is reproduced verbatim whenever the final indentation equals
	// its width.
	Lead      string
	leadWidth int

	// Locked lines are emitted exactly as Text, ignoring Indent. They come
	// from the inside of multi-line template literals and strings.
	Locked bool

	// LineComment is set when Text ends with a // comment.
	LineComment bool
}

// Lines is an immutable sequence of lines.
type Lines struct {
	lines []Line
}

// Empty returns a Lines with no lines at all.
func Empty() Lines {
	return Lines{}
}

// Newline returns the line break fragment.
func Newline() Lines {
	return Lines{lines: []Line{{}, {}}}
}

// FromString splits s on line breaks. The leading whitespace of every line
// becomes its indentation.
func FromString(s string, tabWidth int) Lines {
	if s == "" {
		return Lines{}
	}

	parts := strings.Split(s, "\n")
	out := make([]Line, len(parts))
	for idx, part := range parts {
		out[idx] = parseLine(strings.TrimSuffix(part, "\r"), tabWidth, 0)
	}

	return Lines{lines: out}
}

// Text builds a single-line fragment from s, which must not contain line
// breaks. Leading spaces are kept as text.
func Text(s string) Lines {
	if s == "" {
		return Lines{}
	}

	return Lines{lines: []Line{{Text: s}}}
}

// Verbatim splits s on line breaks and locks every line after the first, so
// later re-indentation leaves them untouched.
func Verbatim(s string) Lines {
	if s == "" {
		return Lines{}
	}

	parts := strings.Split(s, "\n")
	out := make([]Line, len(parts))
	for idx, part := range parts {
		out[idx] = Line{Text: strings.TrimSuffix(part, "\r"), Locked: idx > 0}
	}

	return Lines{lines: out}
}

// SourceOptions controls FromSource.
type SourceOptions struct {
	TabWidth int

	// Base is subtracted from the indentation of every line after the
	// first, making it relative to the line the fragment is placed on.
	Base int

	// Verbatim ranges lock the lines that start inside them.
	Verbatim []source.Range
}

// FromSource copies buf[start:end]. The first line is kept as raw text
// unless start is at the beginning of a line.
func FromSource(buf *source.Buffer, start, end int, opts SourceOptions) Lines {
	text := buf.Slice(start, end)
	if text == "" {
		return Lines{}
	}

	parts := strings.Split(text, "\n")
	out := make([]Line, len(parts))

	offset := start
	for idx, part := range parts {
		part = strings.TrimSuffix(part, "\r")

		switch {
		case idx == 0 && buf.LineStart(start) != start:
			out[idx] = Line{Text: part}
		case locked(opts.Verbatim, offset):
			out[idx] = Line{Text: part, Locked: true}
		default:
			out[idx] = parseLine(part, opts.TabWidth, opts.Base)
		}

		offset += len(parts[idx]) + 1
	}

	return Lines{lines: out}
}

func locked(ranges []source.Range, offset int) bool {
	for _, rng := range ranges {
		if rng.Start < offset && offset < rng.End {
			return true
		}
	}

	return false
}

func parseLine(raw string, tabWidth, base int) Line {
	text := strings.TrimLeft(raw, " \t")
	lead := raw[:len(raw)-len(text)]
	width := source.Width(lead, tabWidth)

	return Line{
		Indent:    width - base,
		Text:      text,
		Lead:      lead,
		leadWidth: width,
	}
}

// Len returns the number of lines.
func (l Lines) Len() int { return len(l.lines) }

// IsEmpty reports whether l holds no text at all.
func (l Lines) IsEmpty() bool {
	for _, line := range l.lines {
		if line.Text != "" {
			return false
		}
	}

	return true
}

// IsMultiline reports whether l spans more than one line.
func (l Lines) IsMultiline() bool { return len(l.lines) > 1 }

// Line returns the line at index idx.
func (l Lines) Line(idx int) Line { return l.lines[idx] }

// LastLineComment reports whether l ends inside a // comment.
func (l Lines) LastLineComment() bool {
	return len(l.lines) > 0 && l.lines[len(l.lines)-1].LineComment
}

// MarkLineComment flags the last line as ending with a // comment.
func (l Lines) MarkLineComment() Lines {
	if len(l.lines) == 0 {
		return l
	}

	out := l.clone()
	out.lines[len(out.lines)-1].LineComment = true

	return out
}

func (line Line) width() int {
	if line.Locked {
		return utf8.RuneCountInString(line.Text)
	}

	return max(0, line.Indent) + utf8.RuneCountInString(line.Text)
}

// Width returns the widest line in columns.
func (l Lines) Width() int {
	widest := 0
	for _, line := range l.lines {
		widest = max(widest, line.width())
	}

	return widest
}

// FirstLineWidth returns the width of the first line.
func (l Lines) FirstLineWidth() int {
	if len(l.lines) == 0 {
		return 0
	}

	return l.lines[0].width()
}

// LastLineWidth returns the width of the last line.
func (l Lines) LastLineWidth() int {
	if len(l.lines) == 0 {
		return 0
	}

	return l.lines[len(l.lines)-1].width()
}

func (l Lines) clone() Lines {
	return Lines{lines: append([]Line(nil), l.lines...)}
}

// Indent shifts every unlocked line by n columns.
func (l Lines) Indent(n int) Lines {
	return l.shift(n, 0)
}

// IndentTail shifts every unlocked line but the first by n columns.
func (l Lines) IndentTail(n int) Lines {
	return l.shift(n, 1)
}

func (l Lines) shift(n, from int) Lines {
	if n == 0 || len(l.lines) <= from {
		return l
	}

	out := l.clone()
	for idx := from; idx < len(out.lines); idx++ {
		if !out.lines[idx].Locked {
			out.lines[idx].Indent += n
		}
	}

	return out
}

// Concat appends parts in order. The first line of each part continues the
// last line of the text before it; text after a // comment starts a new line.
func Concat(parts ...Lines) Lines {
	var out []Line

	for _, part := range parts {
		if len(part.lines) == 0 {
			continue
		}
		if len(out) == 0 {
			out = append(out, part.lines...)
			continue
		}

		last := out[len(out)-1]
		first := part.lines[0]

		switch {
		case last.LineComment && first.Text != "":
			first.Indent += last.Indent
			first.Lead, first.leadWidth = "", 0
			out = append(out, first)
		case last.Text == "" && !last.Locked:
			out[len(out)-1] = mergeAtLineStart(last, first)
		default:
			last.Text += inlineLead(first) + first.Text
			last.LineComment = first.LineComment
			out[len(out)-1] = last
		}

		out = append(out, part.lines[1:]...)
	}

	return Lines{lines: out}
}

func mergeAtLineStart(last, first Line) Line {
	merged := first
	merged.Indent = last.Indent + first.Indent

	switch {
	case first.Indent == 0 && first.Lead == "":
		merged.Lead, merged.leadWidth = last.Lead, last.leadWidth
	case last.Indent == 0 && last.Lead == "":
	default:
		merged.Lead, merged.leadWidth = "", 0
	}

	return merged
}

func inlineLead(line Line) string {
	if line.Indent <= 0 {
		return ""
	}
	if line.Lead != "" && line.leadWidth == line.Indent {
		return line.Lead
	}

	return strings.Repeat(" ", line.Indent)
}

// Join concatenates items with sep between each pair.
func Join(sep Lines, items []Lines) Lines {
	parts := make([]Lines, 0, 2*len(items))
	for idx, item := range items {
		if idx > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, item)
	}

	return Concat(parts...)
}

// RenderOptions controls String.
type RenderOptions struct {
	TabWidth       int
	UseTabs        bool
	LineTerminator string
}

// String renders l as text.
func (l Lines) String(opts RenderOptions) string {
	terminator := opts.LineTerminator
	if terminator == "" {
		terminator = "\n"
	}

	var sb strings.Builder
	for idx, line := range l.lines {
		if idx > 0 {
			sb.WriteString(terminator)
		}
		sb.WriteString(renderLine(line, opts))
	}

	return sb.String()
}

func renderLine(line Line, opts RenderOptions) string {
	if line.Locked {
		return line.Text
	}

	indent := max(0, line.Indent)
	if line.Lead != "" && line.leadWidth == indent {
		return line.Lead + line.Text
	}
	if line.Text == "" {
		return ""
	}

	return indentation(indent, opts) + line.Text
}

func indentation(width int, opts RenderOptions) string {
	if !opts.UseTabs {
		return strings.Repeat(" ", width)
	}

	tabWidth := opts.TabWidth
	if tabWidth < 1 {
		tabWidth = source.DefaultTabWidth
	}

	return strings.Repeat("\t", width/tabWidth) + strings.Repeat(" ", width%tabWidth)
}
