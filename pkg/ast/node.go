// Package ast defines the node model shared by parsers, the printer and the
// patcher: a tagged-variant tree whose nodes carry a kind, a field map laid
// out by a per-kind schema, an optional range into the original source and
// the comments anchored to them.
package ast

import (
	"fmt"
	"slices"

	"github.com/yaklabco/tsreprint/pkg/source"
)

// Node is one syntax tree node.
//
// Field values are *Node, []*Node, string, bool or float64. An absent field
// reads as the zero value of its shape. Lists may hold nil elements for
// elisions such as array holes.
type Node struct {
	// Kind identifies what type of node this is.
	Kind Kind

	// Range is the node's extent in the source it was parsed from. It is the
	// zero Range for nodes built by callers.
	Range source.Range

	// Comments anchored to this node, in source order.
	Comments []*Comment

	// Parenthesized is set by parsers when the source wrapped the node in
	// parentheses. It is formatting detail and never compared.
	Parenthesized bool

	fields map[string]any
}

// New creates a node of the given kind with no fields set.
func New(kind Kind) *Node {
	return &Node{Kind: kind}
}

// Set stores value under name and returns n for chaining. Ints are stored as
// float64; a nil node, nil list, or nil value removes the field.
func (n *Node) Set(name string, value any) *Node {
	switch val := value.(type) {
	case nil:
		delete(n.fields, name)
		return n
	case *Node:
		if val == nil {
			delete(n.fields, name)
			return n
		}
	case []*Node:
		if val == nil {
			delete(n.fields, name)
			return n
		}
	case int:
		value = float64(val)
	case string, bool, float64:
	default:
		panic(fmt.Sprintf("ast: unsupported value %T for field %s.%s", value, n.Kind, name))
	}

	if n.fields == nil {
		n.fields = make(map[string]any)
	}
	n.fields[name] = value

	return n
}

// Get returns the raw value stored under name.
func (n *Node) Get(name string) (any, bool) {
	if n == nil {
		return nil, false
	}

	val, ok := n.fields[name]

	return val, ok
}

// Has reports whether name is set.
func (n *Node) Has(name string) bool {
	_, ok := n.Get(name)
	return ok
}

// Child returns the node stored under name, or nil.
func (n *Node) Child(name string) *Node {
	val, _ := n.Get(name)
	child, _ := val.(*Node)

	return child
}

// List returns the node list stored under name.
func (n *Node) List(name string) []*Node {
	val, _ := n.Get(name)
	list, _ := val.([]*Node)

	return list
}

// Str returns the string stored under name.
func (n *Node) Str(name string) string {
	val, _ := n.Get(name)
	str, _ := val.(string)

	return str
}

// Bool returns the boolean stored under name.
func (n *Node) Bool(name string) bool {
	val, _ := n.Get(name)
	b, _ := val.(bool)

	return b
}

// Num returns the number stored under name.
func (n *Node) Num(name string) float64 {
	val, _ := n.Get(name)
	num, _ := val.(float64)

	return num
}

// Is reports whether n is non-nil and of one of the given kinds.
func (n *Node) Is(kinds ...Kind) bool {
	return n != nil && slices.Contains(kinds, n.Kind)
}

// FieldNames returns the names of set fields: schema fields first in schema
// order, then any unknown fields sorted by name.
func (n *Node) FieldNames() []string {
	if n == nil || len(n.fields) == 0 {
		return nil
	}

	names := make([]string, 0, len(n.fields))
	seen := make(map[string]bool, len(n.fields))

	if schema, ok := Lookup(n.Kind); ok {
		for _, spec := range schema.Fields {
			if _, set := n.fields[spec.Name]; set {
				names = append(names, spec.Name)
				seen[spec.Name] = true
			}
		}
	}

	var extra []string
	for name := range n.fields {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)

	return append(names, extra...)
}

// ChildRef locates a child node inside its parent.
type ChildRef struct {
	Field string
	// Index is the position inside a list field, or -1 for single fields.
	Index int
	Node  *Node
}

// Children returns the non-nil child nodes of n in schema order.
func (n *Node) Children() []ChildRef {
	var refs []ChildRef

	for _, name := range n.FieldNames() {
		switch val := n.fields[name].(type) {
		case *Node:
			refs = append(refs, ChildRef{Field: name, Index: -1, Node: val})
		case []*Node:
			for idx, child := range val {
				if child != nil {
					refs = append(refs, ChildRef{Field: name, Index: idx, Node: child})
				}
			}
		}
	}

	return refs
}

// HasRange reports whether n carries a valid source range.
func (n *Node) HasRange() bool {
	return n != nil && n.Range.IsValid()
}

// Text returns the original source text of n, or "" for fresh nodes.
func (n *Node) Text() string {
	if !n.HasRange() {
		return ""
	}

	return n.Range.Text()
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.HasRange() {
		return fmt.Sprintf("%s@%s", n.Kind, n.Range.StartPosition())
	}

	return string(n.Kind)
}

// Clone returns a deep copy of n. Comments are copied too.
func (n *Node) Clone() *Node {
	return clone(n, nil)
}

func clone(n *Node, seen map[*Node]*Node) *Node {
	if n == nil {
		return nil
	}

	out := &Node{
		Kind:          n.Kind,
		Range:         n.Range,
		Parenthesized: n.Parenthesized,
	}
	if seen != nil {
		seen[n] = out
	}

	for _, comment := range n.Comments {
		dup := *comment
		out.Comments = append(out.Comments, &dup)
	}

	if len(n.fields) > 0 {
		out.fields = make(map[string]any, len(n.fields))
	}
	for name, val := range n.fields {
		switch typed := val.(type) {
		case *Node:
			out.fields[name] = clone(typed, seen)
		case []*Node:
			list := make([]*Node, len(typed))
			for idx, child := range typed {
				list[idx] = clone(child, seen)
			}
			out.fields[name] = list
		default:
			out.fields[name] = val
		}
	}

	return out
}
