package ast

import (
	"fmt"
	"strings"

	"github.com/yaklabco/tsreprint/pkg/source"
)

// CommentKind distinguishes line comments from block comments.
type CommentKind uint8

// Comment kinds.
const (
	CommentLine CommentKind = iota
	CommentBlock
)

func (k CommentKind) String() string {
	if k == CommentBlock {
		return "block"
	}
	return "line"
}

// Placement says where a comment sits relative to its anchor node.
type Placement uint8

// Placements.
const (
	// Leading comments precede the anchor.
	Leading Placement = iota
	// Trailing comments follow the anchor.
	Trailing
	// Dangling comments sit inside an anchor that has no child to attach
	// them to, such as an empty block.
	Dangling
)

func (p Placement) String() string {
	switch p {
	case Leading:
		return "leading"
	case Trailing:
		return "trailing"
	case Dangling:
		return "dangling"
	default:
		return fmt.Sprintf("Placement(%d)", uint8(p))
	}
}

// Comment is a single source comment.
type Comment struct {
	Kind CommentKind

	// Value is the comment body without its delimiters.
	Value string

	// Range is the comment's extent in the source, absent for comments
	// added by callers.
	Range source.Range

	Placement Placement

	// OwnLine is set when the comment starts its own line.
	OwnLine bool
}

// NewLineComment builds a fresh // comment.
func NewLineComment(value string) *Comment {
	return &Comment{Kind: CommentLine, Value: value}
}

// NewBlockComment builds a fresh /* */ comment.
func NewBlockComment(value string) *Comment {
	return &Comment{Kind: CommentBlock, Value: value}
}

// Text renders the comment with its delimiters.
func (c *Comment) Text() string {
	if c.Kind == CommentLine {
		return "//" + c.Value
	}

	return "/*" + c.Value + "*/"
}

// Normalized is Text with the indentation of continuation lines removed.
// Two comments that only differ by re-indentation normalize alike.
func (c *Comment) Normalized() string {
	if c.Kind == CommentLine {
		return c.Text()
	}

	return "/*" + normalizeBody(c.Value) + "*/"
}

// IsMultiline reports whether the rendered comment spans several lines.
func (c *Comment) IsMultiline() bool {
	return c.Kind == CommentBlock && strings.Contains(c.Value, "\n")
}

func (c *Comment) String() string {
	return fmt.Sprintf("%s %q", c.Placement, c.Text())
}

// CommentsWith returns the comments of n with the given placement.
func (n *Node) CommentsWith(placement Placement) []*Comment {
	var out []*Comment
	for _, comment := range n.Comments {
		if comment.Placement == placement {
			out = append(out, comment)
		}
	}

	return out
}

// AddComment anchors a comment to n.
func (n *Node) AddComment(comment *Comment) *Node {
	n.Comments = append(n.Comments, comment)
	return n
}
