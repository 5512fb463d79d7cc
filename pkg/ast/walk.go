package ast

import "errors"

// ErrSkipChildren may be returned from a WalkFunc to skip the node's children.
var ErrSkipChildren = errors.New("skip children")

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal of the tree starting at root, visiting
// children in schema order.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		return err
	}

	for _, ref := range root.Children() {
		if err := Walk(ref.Node, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// VisitFunc is called with a node and the path of ancestors leading to it.
type VisitFunc func(n *Node, parents []*Node) error

// WalkWithParents performs a pre-order traversal passing each node's
// ancestors, nearest last.
func WalkWithParents(root *Node, visit VisitFunc) error {
	var walk func(n *Node, parents []*Node) error
	walk = func(n *Node, parents []*Node) error {
		if err := visit(n, parents); err != nil {
			if errors.Is(err, ErrSkipChildren) {
				return nil
			}
			return err
		}

		parents = append(parents, n)
		for _, ref := range n.Children() {
			if err := walk(ref.Node, parents); err != nil {
				return err
			}
		}

		return nil
	}

	if root == nil {
		return nil
	}

	return walk(root, nil)
}

// Find returns the first node in pre-order for which match returns true.
func Find(root *Node, match func(*Node) bool) *Node {
	var found *Node

	errFound := errors.New("found")
	_ = Walk(root, func(n *Node) error {
		if match(n) {
			found = n
			return errFound
		}
		return nil
	})

	return found
}

// FindAll returns every node of the given kind in pre-order.
func FindAll(root *Node, kind Kind) []*Node {
	var out []*Node

	_ = Walk(root, func(n *Node) error {
		if n.Kind == kind {
			out = append(out, n)
		}
		return nil
	})

	return out
}

// AllComments returns every comment anchored anywhere in the tree, in tree
// order.
func AllComments(root *Node) []*Comment {
	var out []*Comment

	_ = Walk(root, func(n *Node) error {
		out = append(out, n.Comments...)
		return nil
	})

	return out
}
