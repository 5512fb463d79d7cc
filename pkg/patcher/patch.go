package patcher

import (
	"strings"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/fix"
	"github.com/yaklabco/tsreprint/pkg/printer"
	"github.com/yaklabco/tsreprint/pkg/source"
)

// statementLists names the list fields whose elements sit on lines of their
// own. Elements of these lists may be inserted, removed or reordered
// without reprinting the parent.
var statementLists = map[ast.Kind]string{
	ast.Program:        "body",
	ast.BlockStatement: "body",
	ast.StaticBlock:    "body",
	ast.TSModuleBlock:  "body",
	ast.ClassBody:      "body",
	ast.SwitchCase:     "consequent",
}

// patchNode returns the edits that turn the original text of n into its
// current state. It reports false when n has to be printed instead. n must
// still be the node that was parsed at n.Range.
func (p *Patcher) patchNode(path printer.Path, n *ast.Node) ([]fix.TextEdit, bool, error) {
	original := p.file.Original(n)
	if original == nil || original.Kind != n.Kind || !p.inBuffer(n.Range) {
		return nil, false, nil
	}
	if !ast.SameComments(n.CommentsWith(ast.Dangling), original.CommentsWith(ast.Dangling), true) {
		return nil, false, nil
	}

	schema, ok := ast.Lookup(n.Kind)
	if !ok {
		return nil, false, nil
	}

	var edits []fix.TextEdit
	for _, spec := range schema.Fields {
		var (
			sub []fix.TextEdit
			ok  bool
			err error
		)

		switch spec.Type {
		case ast.FieldNode:
			sub, ok, err = p.patchField(path.Child(n, spec.Name, -1), n.Child(spec.Name), original.Child(spec.Name))
		case ast.FieldList:
			sub, ok, err = p.patchList(path, n, spec.Name, n.List(spec.Name), original.List(spec.Name))
		default:
			ok = sameScalar(spec, n, original)
		}
		if err != nil || !ok {
			return nil, false, err
		}

		edits = append(edits, sub...)
	}

	return edits, true, nil
}

// patchField handles one child slot. current is the node in the slot now,
// snapshot the captured state of the node that filled it originally.
func (p *Patcher) patchField(path printer.Path, current, snapshot *ast.Node) ([]fix.TextEdit, bool, error) {
	switch {
	case current == nil && snapshot == nil:
		return nil, true, nil
	case current == nil || snapshot == nil:
		return nil, false, nil
	}

	if p.file.Live(snapshot) == current {
		if p.inPlace(path, current, snapshot) {
			edits, ok, err := p.patchNode(path, current)
			if err != nil || ok {
				return edits, ok, err
			}
			if p.inBuffer(snapshot.Range) {
				return p.replaceBody(path, current, snapshot.Range)
			}
		}
	} else {
		same, err := p.rebuilt(path, current, snapshot)
		if err != nil || same {
			return nil, same, err
		}
	}

	slot, ok := p.slotRange(snapshot)
	if !ok {
		return nil, false, nil
	}

	return p.replace(path, current, slot)
}

// inPlace reports whether the text around node, its comments and
// parentheses, can stay as it is.
func (p *Patcher) inPlace(path printer.Path, node, snapshot *ast.Node) bool {
	if node.Parenthesized != snapshot.Parenthesized {
		return false
	}
	if !snapshot.Parenthesized && printer.NeedsParens(path, node) {
		return false
	}

	return ast.SameComments(outer(node), outer(snapshot), true)
}

// rebuilt reports whether current, a node that did not fill this slot when
// the source was parsed, is equivalent to the node that did, so that the
// original text still represents it.
func (p *Patcher) rebuilt(path printer.Path, current, snapshot *ast.Node) (bool, error) {
	if !snapshot.Parenthesized && (current.Parenthesized || printer.NeedsParens(path, current)) {
		return false, nil
	}
	if !ast.SameComments(outer(current), outer(snapshot), true) {
		return false, nil
	}

	diff, err := ast.Compare(current, snapshot, ast.CompareOptions{Comments: ast.CommentsExact, SkipRootOuterComments: true})
	if err != nil {
		return false, err
	}

	return diff == nil, nil
}

func outer(n *ast.Node) []*ast.Comment {
	return append(n.CommentsWith(ast.Leading), n.CommentsWith(ast.Trailing)...)
}

// replace prints node into slot.
func (p *Patcher) replace(path printer.Path, node *ast.Node, slot source.Range) ([]fix.TextEdit, bool, error) {
	printed, err := p.printChild(path, node)
	if err != nil {
		return nil, false, err
	}

	text := p.render(printed, p.buf.IndentAt(slot.Start, p.opts.TabWidth))

	return []fix.TextEdit{fix.Replace(slot, text)}, true, nil
}

// replaceBody prints node into the original range of its own text. The
// parentheses and comments around that range stay as they are.
func (p *Patcher) replaceBody(path printer.Path, node *ast.Node, own source.Range) ([]fix.TextEdit, bool, error) {
	printed, err := p.printBody(path, node)
	if err != nil {
		return nil, false, err
	}

	text := p.render(printed, p.buf.IndentAt(own.Start, p.opts.TabWidth))

	return []fix.TextEdit{fix.Replace(own, text)}, true, nil
}

func (p *Patcher) patchList(path printer.Path, parent *ast.Node, field string, items, snapshots []*ast.Node) ([]fix.TextEdit, bool, error) {
	statements := statementLists[parent.Kind] == field

	if len(items) == len(snapshots) {
		edits, ok, err := p.patchPairs(path, parent, field, items, snapshots, statements)
		if err != nil || ok {
			return edits, ok, err
		}
	}

	if !statements {
		return nil, false, nil
	}

	return p.splice(path, parent, field, items, snapshots)
}

// patchPairs patches a list element by element. With movesFail set it gives
// up on an element that was parsed elsewhere, so that splice can treat the
// move as such.
func (p *Patcher) patchPairs(
	path printer.Path, parent *ast.Node, field string, items, snapshots []*ast.Node, movesFail bool,
) ([]fix.TextEdit, bool, error) {
	var edits []fix.TextEdit
	for idx, item := range items {
		snapshot := snapshots[idx]
		if movesFail && item != nil && snapshot != nil && p.file.Original(item) != nil && p.file.Live(snapshot) != item {
			return nil, false, nil
		}

		sub, ok, err := p.patchField(path.Child(parent, field, idx), item, snapshot)
		if err != nil || !ok {
			return nil, false, err
		}
		edits = append(edits, sub...)
	}

	return edits, true, nil
}

func sameScalar(spec ast.FieldSpec, a, b *ast.Node) bool {
	switch spec.Type {
	case ast.FieldString:
		return a.Str(spec.Name) == b.Str(spec.Name)
	case ast.FieldBool:
		return a.Bool(spec.Name) == b.Bool(spec.Name)
	case ast.FieldNumber:
		return ast.SameNumber(a.Num(spec.Name), b.Num(spec.Name))
	default:
		return true
	}
}

// slotRange returns the original extent of the node captured as snapshot,
// widened to its comments and to its parentheses. Comments may sit on
// either side of a parenthesis.
func (p *Patcher) slotRange(snapshot *ast.Node) (source.Range, bool) {
	if !p.inBuffer(snapshot.Range) {
		return source.Range{}, false
	}

	comments := outer(snapshot)
	for _, comment := range comments {
		if !p.inBuffer(comment.Range) {
			return source.Range{}, false
		}
	}

	start, end := snapshot.Range.Start, snapshot.Range.End
	if snapshot.Parenthesized {
		content := p.buf.Content()
		open, closing := p.skipBack(start, comments)-1, p.skipForward(end, comments)
		if open < 0 || content[open] != '(' || closing >= len(content) || content[closing] != ')' {
			return source.Range{}, false
		}
		start, end = open, closing+1
	}

	for _, comment := range comments {
		start = min(start, comment.Range.Start)
		end = max(end, comment.Range.End)
	}

	return p.buf.NewRange(start, end), true
}

// skipBack moves from offset towards the start of the source over
// whitespace and over any of comments.
func (p *Patcher) skipBack(offset int, comments []*ast.Comment) int {
	content := p.buf.Content()
	for {
		offset = len(strings.TrimRight(content[:offset], " \t\r\n"))

		moved := false
		for _, comment := range comments {
			if comment.Range.End == offset {
				offset, moved = comment.Range.Start, true
			}
		}
		if !moved {
			return offset
		}
	}
}

// skipForward moves from offset towards the end of the source over
// whitespace and over any of comments.
func (p *Patcher) skipForward(offset int, comments []*ast.Comment) int {
	content := p.buf.Content()
	for {
		offset = len(content) - len(strings.TrimLeft(content[offset:], " \t\r\n"))

		moved := false
		for _, comment := range comments {
			if comment.Range.Start == offset {
				offset, moved = comment.Range.End, true
			}
		}
		if !moved {
			return offset
		}
	}
}
