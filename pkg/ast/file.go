package ast

import "github.com/yaklabco/tsreprint/pkg/source"

// File is the result of one parse call: the source buffer, the tree built
// over it and the raw comment stream.
type File struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Buffer is the original text. Every range in Root points into it.
	Buffer *source.Buffer

	// Root is the Program node.
	Root *Node

	// Comments holds every comment of the source in position order.
	Comments []*Comment

	// Verbatim lists ranges whose lines must never be re-indented, such as
	// the body of a multi-line template literal.
	Verbatim []source.Range

	originals map[*Node]*Node
	live      map[*Node]*Node
	anchors   map[*Comment]*Node
}

// NewFile assembles a File. Call Capture once comments are attached to
// record the tree as the original for later reprinting.
func NewFile(buf *source.Buffer, root *Node, comments []*Comment, verbatim []source.Range) *File {
	return &File{
		Path:     buf.Path(),
		Buffer:   buf,
		Root:     root,
		Comments: comments,
		Verbatim: verbatim,
	}
}

// Capture snapshots the current tree. Nodes keep their identity; Original
// maps each of them to a frozen copy of its state at capture time.
func (f *File) Capture() {
	f.originals = make(map[*Node]*Node)
	clone(f.Root, f.originals)

	f.live = make(map[*Node]*Node, len(f.originals))
	for node, snapshot := range f.originals {
		f.live[snapshot] = node
	}
}

// Original returns the captured state of n, or nil if n did not exist when
// the file was captured.
func (f *File) Original(n *Node) *Node {
	if f == nil || f.originals == nil {
		return nil
	}

	return f.originals[n]
}

// Live is the inverse of Original: it returns the node whose captured state
// is snapshot.
func (f *File) Live(snapshot *Node) *Node {
	if f == nil || f.live == nil {
		return nil
	}

	return f.live[snapshot]
}

// OriginalRoot returns the captured copy of the root.
func (f *File) OriginalRoot() *Node {
	return f.Original(f.Root)
}

// SetAnchors records which node each comment was attached to.
func (f *File) SetAnchors(anchors map[*Comment]*Node) {
	f.anchors = anchors
}

// Anchor returns the node a comment was attached to at parse time.
func (f *File) Anchor(comment *Comment) *Node {
	if f == nil {
		return nil
	}

	return f.anchors[comment]
}
