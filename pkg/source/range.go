package source

import "fmt"

// Range is a half-open byte range [Start, End) inside a specific Buffer.
// The zero value is an absent range, as carried by freshly built nodes.
type Range struct {
	Buffer *Buffer
	Start  int
	End    int
}

// NewRange returns the range [start, end) of b.
func (b *Buffer) NewRange(start, end int) Range {
	return Range{Buffer: b, Start: start, End: end}
}

// IsValid reports whether the range points into a buffer.
func (r Range) IsValid() bool {
	return r.Buffer != nil && r.Start >= 0 && r.Start <= r.End && r.End <= r.Buffer.Len()
}

// Len returns the length of the range in bytes.
func (r Range) Len() int {
	return r.End - r.Start
}

// Text returns the original text covered by the range.
func (r Range) Text() string {
	if !r.IsValid() {
		return ""
	}

	return r.Buffer.content[r.Start:r.End]
}

// Contains reports whether other lies within r in the same buffer.
func (r Range) Contains(other Range) bool {
	return r.Buffer != nil && r.Buffer == other.Buffer &&
		r.Start <= other.Start && other.End <= r.End
}

// Position is a 1-based line and column.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has positive values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// StartPosition returns the line/column of the range start.
func (r Range) StartPosition() Position {
	if r.Buffer == nil {
		return Position{}
	}

	line, col := r.Buffer.LineAt(r.Start)

	return Position{Line: line, Column: col}
}

// EndPosition returns the line/column of the range end.
func (r Range) EndPosition() Position {
	if r.Buffer == nil {
		return Position{}
	}

	line, col := r.Buffer.LineAt(r.End)

	return Position{Line: line, Column: col}
}

func (r Range) String() string {
	if !r.IsValid() {
		return "<no range>"
	}

	return fmt.Sprintf("%s-%s", r.StartPosition(), r.EndPosition())
}
