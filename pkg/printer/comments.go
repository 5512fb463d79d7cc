package printer

import (
	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/lines"
)

// decorate wraps body with the leading and trailing comments of n.
func (c *Context) decorate(n *ast.Node, body lines.Lines) lines.Lines {
	if n == nil || len(n.Comments) == 0 {
		return body
	}

	var parts []lines.Lines
	for _, comment := range n.CommentsWith(ast.Leading) {
		parts = append(parts, c.Comment(comment))
		if comment.Kind == ast.CommentLine || comment.OwnLine || comment.IsMultiline() {
			parts = append(parts, lines.Newline())
		} else {
			parts = append(parts, lines.Text(" "))
		}
	}

	parts = append(parts, body)

	for _, comment := range n.CommentsWith(ast.Trailing) {
		if comment.OwnLine {
			parts = append(parts, lines.Newline())
		} else {
			parts = append(parts, lines.Text(" "))
		}
		parts = append(parts, c.Comment(comment))
	}

	return lines.Concat(parts...)
}

// Dangling prints the dangling comments of n one per line and marks them as
// placed, so the generic fallback does not print them again.
func (c *Context) Dangling(n *ast.Node) lines.Lines {
	c.consumed[n] = true

	dangling := n.CommentsWith(ast.Dangling)
	items := make([]lines.Lines, len(dangling))
	for idx, comment := range dangling {
		items[idx] = c.Comment(comment)
	}

	return lines.Join(lines.Newline(), items)
}

// HasDangling reports whether n carries dangling comments.
func (c *Context) HasDangling(n *ast.Node) bool {
	return len(n.CommentsWith(ast.Dangling)) > 0
}

// Comment prints a single comment. Comments that came from the source keep
// the relative indentation of their continuation lines.
func (c *Context) Comment(comment *ast.Comment) lines.Lines {
	var out lines.Lines

	rng := comment.Range
	if rng.IsValid() && rng.Buffer.Slice(rng.Start, rng.End) == comment.Text() {
		out = lines.FromSource(rng.Buffer, rng.Start, rng.End, lines.SourceOptions{
			TabWidth: c.opts.TabWidth,
			Base:     rng.Buffer.IndentAt(rng.Start, c.opts.TabWidth),
		})
	} else {
		out = lines.FromString(comment.Text(), c.opts.TabWidth)
	}

	if comment.Kind == ast.CommentLine {
		out = out.MarkLineComment()
	}

	return out
}
