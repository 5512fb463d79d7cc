package fix

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// UnifiedDiff renders a unified diff turning original into modified. It
// returns an empty string when the texts are equal.
func UnifiedDiff(path, original, modified string) (string, error) {
	if original == modified {
		return "", nil
	}

	path = strings.TrimPrefix(path, "/")
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(modified),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	})
	if err != nil {
		return "", fmt.Errorf("unified diff: %w", err)
	}

	return diff, nil
}

// ColorizeDiff colours the removed, added and hunk header lines of a
// unified diff. Colouring follows color.NoColor.
func ColorizeDiff(diff string) string {
	var (
		deletedColor = color.New(color.FgRed)
		addedColor   = color.New(color.FgGreen)
		hunkColor    = color.New(color.FgCyan)
		headerColor  = color.New(color.Bold)
	)

	out := new(strings.Builder)
	for line := range strings.SplitSeq(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			headerColor.Fprintln(out, line)
		case strings.HasPrefix(line, "-"):
			deletedColor.Fprintln(out, line)
		case strings.HasPrefix(line, "+"):
			addedColor.Fprintln(out, line)
		case strings.HasPrefix(line, "@"):
			hunkColor.Fprintln(out, line)
		default:
			fmt.Fprintln(out, line)
		}
	}

	return out.String()
}

// Span is one contiguous change between two texts.
type Span struct {
	// Offset is the byte index of the change in the original text.
	Offset int

	// Deleted is the original text removed at Offset.
	Deleted string

	// Inserted is the text that takes its place.
	Inserted string
}

// Edit converts the span to an edit of the original text.
func (s Span) Edit() TextEdit {
	return TextEdit{StartOffset: s.Offset, EndOffset: s.Offset + len(s.Deleted), NewText: s.Inserted}
}

// ChangedSpans returns the character-level changes that turn original into
// modified, with adjacent deletions and insertions merged into one span.
func ChangedSpans(original, modified string) []Span {
	if original == modified {
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(original, modified, false)

	var (
		spans   []Span
		current *Span
		offset  int
	)
	flush := func() {
		if current != nil {
			spans = append(spans, *current)
			current = nil
		}
	}

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			offset += len(d.Text)
		case diffmatchpatch.DiffDelete:
			if current == nil {
				current = &Span{Offset: offset}
			}
			current.Deleted += d.Text
			offset += len(d.Text)
		case diffmatchpatch.DiffInsert:
			if current == nil {
				current = &Span{Offset: offset}
			}
			current.Inserted += d.Text
		}
	}
	flush()

	return spans
}

// Stats summarizes the changes between two texts.
type Stats struct {
	Spans    int
	Deleted  int
	Inserted int
}

// Changed reports the number of bytes touched on either side.
func (s Stats) Changed() int {
	return s.Deleted + s.Inserted
}

// Measure computes change statistics between original and modified.
func Measure(original, modified string) Stats {
	var stats Stats
	for _, span := range ChangedSpans(original, modified) {
		stats.Spans++
		stats.Deleted += len(span.Deleted)
		stats.Inserted += len(span.Inserted)
	}

	return stats
}
