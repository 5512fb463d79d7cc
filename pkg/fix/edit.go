// Package fix describes source patches: byte-range replacements of the
// original text, as produced by the patcher and applied to the buffer.
package fix

import (
	"fmt"

	"github.com/yaklabco/tsreprint/pkg/source"
)

// TextEdit replaces a byte range of the original text.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Replace returns an edit that replaces r with text.
func Replace(r source.Range, text string) TextEdit {
	return TextEdit{StartOffset: r.Start, EndOffset: r.End, NewText: text}
}

// Removed returns the number of original bytes the edit replaces.
func (e TextEdit) Removed() int {
	return e.EndOffset - e.StartOffset
}

// Delta returns the change in length caused by the edit.
func (e TextEdit) Delta() int {
	return len(e.NewText) - e.Removed()
}

func (e TextEdit) String() string {
	return fmt.Sprintf("[%d:%d] %q", e.StartOffset, e.EndOffset, e.NewText)
}

// EditBuilder accumulates edits against one original text.
type EditBuilder struct {
	content string
	edits   []TextEdit
}

// NewEditBuilder creates a builder for edits of content.
func NewEditBuilder(content string) *EditBuilder {
	return &EditBuilder{content: content}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.edits = append(b.edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Replace adds an edit that replaces r with newText.
func (b *EditBuilder) Replace(r source.Range, newText string) {
	b.ReplaceRange(r.Start, r.End, newText)
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// Len returns the number of edits added so far.
func (b *EditBuilder) Len() int {
	return len(b.edits)
}

// Edits returns the edits as added.
func (b *EditBuilder) Edits() []TextEdit {
	return append([]TextEdit(nil), b.edits...)
}

// Build trims every edit to the bytes it really changes, drops edits that
// change nothing, then validates and sorts the rest.
func (b *EditBuilder) Build() ([]TextEdit, error) {
	prepared, err := PrepareEdits(b.edits, len(b.content))
	if err != nil {
		return nil, err
	}

	return Minimize(b.content, prepared), nil
}

// Apply builds the edits and applies them to the original text.
func (b *EditBuilder) Apply() (string, []TextEdit, error) {
	edits, err := b.Build()
	if err != nil {
		return "", nil, err
	}

	return ApplyEdits(b.content, edits), edits, nil
}
