// Package source holds the immutable original text of a parsed file together
// with its offset <-> line/column index.
//
// Every range produced by a parser points into exactly one Buffer. Buffers are
// never mutated after construction, so they can be shared freely between
// goroutines.
package source

import (
	"sort"
	"strings"
)

// DefaultTabWidth is used to measure indentation when no width is given.
const DefaultTabWidth = 4

// Buffer is the original text of one parse call.
type Buffer struct {
	path    string
	content string
	lines   []LineInfo
}

// LineInfo holds metadata for a single line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For the last line without a trailing newline this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of content).
	EndOffset int
}

// New creates a Buffer for content. Path may be empty for in-memory text.
func New(path, content string) *Buffer {
	return &Buffer{
		path:    path,
		content: content,
		lines:   buildLines(content),
	}
}

// buildLines constructs line metadata, handling both LF and CRLF endings.
func buildLines(content string) []LineInfo {
	var lines []LineInfo
	lineStart := 0

	for idx := 0; idx < len(content); idx++ {
		if content[idx] != '\n' {
			continue
		}

		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// Path returns the file path the buffer was created for.
func (b *Buffer) Path() string { return b.path }

// Content returns the full original text.
func (b *Buffer) Content() string { return b.content }

// Len returns the content length in bytes.
func (b *Buffer) Len() int { return len(b.content) }

// LineCount returns the number of lines. Empty content has one empty line.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns metadata for a 1-based line number.
func (b *Buffer) Line(line int) (LineInfo, bool) {
	if line < 1 || line > len(b.lines) {
		return LineInfo{}, false
	}

	return b.lines[line-1], true
}

// Slice returns content[start:end], clamped to the buffer.
func (b *Buffer) Slice(start, end int) string {
	start = max(0, min(start, len(b.content)))
	end = max(start, min(end, len(b.content)))

	return b.content[start:end]
}

// lineIndex returns the 0-based index of the line containing offset.
func (b *Buffer) lineIndex(offset int) int {
	idx := sort.Search(len(b.lines), func(i int) bool {
		return b.lines[i].EndOffset > offset
	})
	if idx >= len(b.lines) {
		idx = len(b.lines) - 1
	}

	return idx
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Column counts bytes. Returns (0, 0) if the offset is out of range.
func (b *Buffer) LineAt(offset int) (int, int) {
	if offset < 0 || offset > len(b.content) {
		return 0, 0
	}

	idx := b.lineIndex(offset)

	return idx + 1, offset - b.lines[idx].StartOffset + 1
}

// Offset converts 1-based line and column numbers to a byte offset.
func (b *Buffer) Offset(line, col int) (int, bool) {
	info, ok := b.Line(line)
	if !ok || col < 1 {
		return 0, false
	}

	offset := info.StartOffset + col - 1
	if offset > info.NewlineStart {
		return 0, false
	}

	return offset, true
}

// LineContent returns the text of a 1-based line without its terminator.
func (b *Buffer) LineContent(line int) string {
	info, ok := b.Line(line)
	if !ok {
		return ""
	}

	return b.content[info.StartOffset:info.NewlineStart]
}

// LineStart returns the offset of the first byte of the line containing offset.
func (b *Buffer) LineStart(offset int) int {
	return b.lines[b.lineIndex(max(0, offset))].StartOffset
}

// LeadingWhitespace returns the indentation of the line containing offset.
func (b *Buffer) LeadingWhitespace(offset int) string {
	info := b.lines[b.lineIndex(max(0, offset))]
	text := b.content[info.StartOffset:info.NewlineStart]

	return text[:len(text)-len(strings.TrimLeft(text, " \t"))]
}

// IndentAt returns the indentation width, in columns, of the line containing
// offset.
func (b *Buffer) IndentAt(offset, tabWidth int) int {
	return Width(b.LeadingWhitespace(offset), tabWidth)
}

// StartsLine reports whether only whitespace precedes offset on its line.
func (b *Buffer) StartsLine(offset int) bool {
	start := b.LineStart(offset)

	return strings.TrimLeft(b.content[start:offset], " \t") == ""
}

// LineTerminator returns the line ending used by the first line break, or
// "\n" when the content has none.
func (b *Buffer) LineTerminator() string {
	if len(b.lines) < 2 {
		return "\n"
	}

	info := b.lines[0]

	return b.content[info.NewlineStart:info.EndOffset]
}

// Width measures leading whitespace in columns, expanding tabs to the next
// multiple of tabWidth.
func Width(whitespace string, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}

	col := 0
	for _, ch := range whitespace {
		if ch == '\t' {
			col += tabWidth - col%tabWidth
			continue
		}
		col++
	}

	return col
}
