package patcher

import (
	"sort"
	"strings"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/fix"
	"github.com/yaklabco/tsreprint/pkg/printer"
	"github.com/yaklabco/tsreprint/pkg/source"
)

// splice patches a statement list whose elements were inserted, removed or
// reordered. The longest run of original elements still in their original
// order stays where it is; every other original element is deleted with its
// line, and every other current element is inserted on a line of its own
// next to the nearest kept element.
func (p *Patcher) splice(path printer.Path, parent *ast.Node, field string, items, snapshots []*ast.Node) ([]fix.TextEdit, bool, error) {
	if len(snapshots) == 0 {
		return nil, false, nil
	}

	slots := make([]source.Range, len(snapshots))
	index := make(map[*ast.Node]int, len(snapshots))
	for idx, snapshot := range snapshots {
		if snapshot == nil {
			return nil, false, nil
		}

		slot, ok := p.slotRange(snapshot)
		if !ok {
			return nil, false, nil
		}
		slots[idx] = slot

		if live := p.file.Live(snapshot); live != nil {
			index[live] = idx
		}
	}

	origins := make([]int, len(items))
	for idx, item := range items {
		origin, ok := index[item]
		if !ok {
			origin = -1
		}
		origins[idx] = origin
	}

	kept := longestIncreasing(origins)
	if len(kept) == 0 {
		return p.replaceAll(path, parent, field, items, slots)
	}

	keptOrigins := make(map[int]bool, len(kept))
	for idx := range kept {
		keptOrigins[origins[idx]] = true
	}

	var edits []fix.TextEdit
	for idx, slot := range slots {
		if !keptOrigins[idx] {
			edits = append(edits, p.deleteLine(slot))
		}
	}
	edits = p.trimTail(edits, slots, keptOrigins)

	var pending []int
	anchor := -1
	for idx, item := range items {
		childPath := path.Child(parent, field, idx)

		if !kept[idx] {
			if anchor < 0 {
				pending = append(pending, idx)
				continue
			}

			edit, err := p.insertAfter(childPath, item, slots[anchor])
			if err != nil {
				return nil, false, err
			}
			edits = append(edits, edit)

			continue
		}

		origin := origins[idx]
		if len(pending) > 0 {
			before, err := p.insertBefore(path, parent, field, items, pending, slots[origin])
			if err != nil {
				return nil, false, err
			}
			edits = append(edits, before)
			pending = nil
		}
		anchor = origin

		sub, ok, err := p.patchField(childPath, item, snapshots[origin])
		if err != nil || !ok {
			return nil, false, err
		}
		edits = append(edits, sub...)

		// A statement ended by a line break may only stay unterminated
		// before the statement that followed it in the source.
		if next := idx + 1; next < len(items) && !(kept[next] && origins[next] == origin+1) && !p.terminated(item) {
			edits = append(edits, fix.TextEdit{StartOffset: item.Range.End, EndOffset: item.Range.End, NewText: ";"})
		}
	}

	return edits, true, nil
}

// trimTail extends the deletion of a trailing run of removed elements over
// the blank lines that separated the run from the last kept element, so
// that no blank lines are left dangling at the end of the list.
func (p *Patcher) trimTail(edits []fix.TextEdit, slots []source.Range, kept map[int]bool) []fix.TextEdit {
	first := len(slots)
	for first > 0 && !kept[first-1] {
		first--
	}
	if first == 0 || first == len(slots) {
		return edits
	}

	content := p.buf.Content()
	from := slots[first-1].End
	eol := strings.IndexByte(content[from:], '\n')
	if eol < 0 {
		return edits
	}
	from += eol + 1

	for idx, edit := range edits {
		if edit.StartOffset == p.buf.LineStart(slots[first].Start) && from < edit.StartOffset &&
			strings.TrimSpace(content[from:edit.StartOffset]) == "" {
			edits[idx].StartOffset = from
		}
	}

	return edits
}

// replaceAll swaps the whole original run of elements for the current ones.
func (p *Patcher) replaceAll(path printer.Path, parent *ast.Node, field string, items []*ast.Node, slots []source.Range) ([]fix.TextEdit, bool, error) {
	start, end := slots[0].Start, slots[len(slots)-1].End
	if len(items) == 0 {
		edits := make([]fix.TextEdit, len(slots))
		for idx, slot := range slots {
			edits[idx] = p.deleteLine(slot)
		}

		return edits, true, nil
	}

	indent := p.buf.IndentAt(start, p.opts.TabWidth)
	separator := p.opts.LineTerminator + p.buf.LeadingWhitespace(start)

	texts := make([]string, len(items))
	for idx, item := range items {
		printed, err := p.printChild(path.Child(parent, field, idx), item)
		if err != nil {
			return nil, false, err
		}
		texts[idx] = p.render(printed, indent)
	}

	return []fix.TextEdit{{StartOffset: start, EndOffset: end, NewText: strings.Join(texts, separator)}}, true, nil
}

// insertAfter places item on a new line below the element occupying anchor.
func (p *Patcher) insertAfter(path printer.Path, item *ast.Node, anchor source.Range) (fix.TextEdit, error) {
	printed, err := p.printChild(path, item)
	if err != nil {
		return fix.TextEdit{}, err
	}

	text := p.opts.LineTerminator + p.buf.LeadingWhitespace(anchor.Start) +
		p.render(printed, p.buf.IndentAt(anchor.Start, p.opts.TabWidth))

	return fix.TextEdit{StartOffset: anchor.End, EndOffset: anchor.End, NewText: text}, nil
}

// insertBefore places the pending items in front of the element occupying
// anchor: on lines of their own when the anchor starts its line, inline
// otherwise.
func (p *Patcher) insertBefore(
	path printer.Path, parent *ast.Node, field string, items []*ast.Node, pending []int, anchor source.Range,
) (fix.TextEdit, error) {
	lead := p.buf.LeadingWhitespace(anchor.Start)
	indent := p.buf.IndentAt(anchor.Start, p.opts.TabWidth)
	ownLine := p.buf.StartsLine(anchor.Start)

	var sb strings.Builder
	for _, idx := range pending {
		printed, err := p.printChild(path.Child(parent, field, idx), items[idx])
		if err != nil {
			return fix.TextEdit{}, err
		}

		text := p.render(printed, indent)
		if ownLine {
			sb.WriteString(lead + text + p.opts.LineTerminator)
		} else {
			sb.WriteString(text + " ")
		}
	}

	at := anchor.Start
	if ownLine {
		at = p.buf.LineStart(anchor.Start)
	}

	return fix.TextEdit{StartOffset: at, EndOffset: at, NewText: sb.String()}, nil
}

// deleteLine removes slot together with its line when nothing else shares
// that line, or with the blanks that follow it otherwise.
func (p *Patcher) deleteLine(slot source.Range) fix.TextEdit {
	content := p.buf.Content()
	start, end := slot.Start, slot.End

	rest := content[end:]
	eol := strings.IndexByte(rest, '\n')
	if eol >= 0 {
		rest = rest[:eol]
	}

	if p.buf.StartsLine(start) && strings.TrimSpace(rest) == "" {
		start = p.buf.LineStart(start)
		if eol >= 0 {
			return fix.TextEdit{StartOffset: start, EndOffset: end + eol + 1}
		}

		return fix.TextEdit{StartOffset: start, EndOffset: len(content)}
	}

	for end < len(content) && (content[end] == ' ' || content[end] == '\t') {
		end++
	}

	return fix.TextEdit{StartOffset: start, EndOffset: end}
}

// longestIncreasing returns the positions of a longest strictly increasing
// subsequence of the non-negative values in seq.
func longestIncreasing(seq []int) map[int]bool {
	var (
		tails []int // positions in seq of the smallest tail for each length
		prev  = make([]int, len(seq))
	)

	for idx, value := range seq {
		prev[idx] = -1
		if value < 0 {
			continue
		}

		length := sort.Search(len(tails), func(i int) bool { return seq[tails[i]] >= value })
		if length > 0 {
			prev[idx] = tails[length-1]
		}
		if length == len(tails) {
			tails = append(tails, idx)
		} else {
			tails[length] = idx
		}
	}

	out := make(map[int]bool, len(tails))
	if len(tails) == 0 {
		return out
	}
	for idx := tails[len(tails)-1]; idx >= 0; idx = prev[idx] {
		out[idx] = true
	}

	return out
}
