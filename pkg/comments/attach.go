// Package comments anchors raw source comments to the nodes of a freshly
// parsed tree.
package comments

import (
	"slices"
	"strings"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/source"
)

// Attach anchors each comment to exactly one node under root and returns the
// anchor of every comment.
//
// For each comment the smallest node enclosing it is found, together with
// the closest children before and after it:
//
//   - a comment on the same line as the preceding child, with the following
//     child (if any) on a later line, trails the preceding child;
//   - otherwise it leads the following child;
//   - with no following child it trails the preceding child;
//   - with neither it dangles inside the enclosing node.
//
// Comments already anchored to nodes are cleared first, so running Attach
// twice over the same input gives the same result.
func Attach(root *ast.Node, comments []*ast.Comment) map[*ast.Comment]*ast.Node {
	anchors := make(map[*ast.Comment]*ast.Node, len(comments))
	if root == nil {
		return anchors
	}

	_ = ast.Walk(root, func(n *ast.Node) error {
		n.Comments = nil
		return nil
	})

	ordered := slices.Clone(comments)
	slices.SortStableFunc(ordered, func(a, b *ast.Comment) int {
		return a.Range.Start - b.Range.Start
	})

	for _, comment := range ordered {
		if !comment.Range.IsValid() {
			continue
		}

		anchor := place(root, comment)
		anchor.Comments = append(anchor.Comments, comment)
		anchors[comment] = anchor
	}

	return anchors
}

// place decides placement for one comment and returns its anchor.
func place(root *ast.Node, comment *ast.Comment) *ast.Node {
	buf := comment.Range.Buffer
	enclosing, preceding, following := locate(root, comment.Range)

	comment.OwnLine = startsOwnLine(buf, comment.Range)

	switch {
	case preceding != nil && sameLine(buf, preceding.Range.End, comment.Range.Start) &&
		(following == nil || !sameLine(buf, comment.Range.End, following.Range.Start)):
		comment.Placement = ast.Trailing
		return preceding
	case following != nil:
		comment.Placement = ast.Leading
		return following
	case preceding != nil:
		comment.Placement = ast.Trailing
		return preceding
	default:
		comment.Placement = ast.Dangling
		return enclosing
	}
}

// locate descends from root to the smallest node whose range encloses r and
// returns it with its nearest children on either side of r.
func locate(root *ast.Node, r source.Range) (*ast.Node, *ast.Node, *ast.Node) {
	enclosing := root

	for {
		children := positioned(enclosing)

		var inner, preceding, following *ast.Node
		for _, child := range children {
			switch {
			case child.Range.Start <= r.Start && r.End <= child.Range.End:
				inner = child
			case child.Range.End <= r.Start:
				preceding = child
			case child.Range.Start >= r.End && following == nil:
				following = child
			}
			if inner != nil {
				break
			}
		}

		if inner == nil {
			return enclosing, preceding, following
		}
		enclosing = inner
	}
}

// positioned returns the children of n that carry ranges, sorted by start.
func positioned(n *ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, ref := range n.Children() {
		if ref.Node.HasRange() {
			out = append(out, ref.Node)
		}
	}

	slices.SortStableFunc(out, func(a, b *ast.Node) int {
		if a.Range.Start != b.Range.Start {
			return a.Range.Start - b.Range.Start
		}
		return b.Range.End - a.Range.End
	})

	return out
}

func sameLine(buf *source.Buffer, from, to int) bool {
	if from > to {
		from, to = to, from
	}

	return !strings.Contains(buf.Slice(from, to), "\n")
}

// startsOwnLine reports whether only whitespace precedes the comment on its
// line and only whitespace follows it up to the line end.
func startsOwnLine(buf *source.Buffer, r source.Range) bool {
	if !buf.StartsLine(r.Start) {
		return false
	}

	line, _ := buf.LineAt(r.End)
	info, _ := buf.Line(line)

	return strings.TrimSpace(buf.Slice(r.End, info.NewlineStart)) == ""
}
