package ast

import (
	"fmt"
	"math"
	"strings"
)

// CommentMode selects how Compare treats comments.
type CommentMode uint8

// Comment comparison modes.
const (
	// CommentsByText compares anchored comments by kind and body, in order.
	CommentsByText CommentMode = iota
	// CommentsExact additionally compares placement and own-line flags.
	CommentsExact
	// CommentsIgnored skips comments entirely.
	CommentsIgnored
)

// CompareOptions tunes Compare.
type CompareOptions struct {
	Comments CommentMode

	// SkipRootOuterComments ignores the leading and trailing comments of the
	// two roots. Their dangling comments are still compared.
	SkipRootOuterComments bool
}

// Difference describes the first mismatch found by Compare.
type Difference struct {
	// Path locates the mismatch, for example "body[2].declarations[0].init".
	Path   string
	Reason string
}

func (d *Difference) String() string {
	if d.Path == "" {
		return d.Reason
	}

	return d.Path + ": " + d.Reason
}

// Equivalent reports whether a and b are structurally equal, ignoring
// ranges, parenthesization, raw literal spellings and comment positions.
// Malformed input yields a *MalformedNodeError.
func Equivalent(a, b *Node) (bool, error) {
	diff, err := Compare(a, b, CompareOptions{})
	if err != nil {
		return false, err
	}

	return diff == nil, nil
}

// Explain describes the first structural difference between a and b, or
// returns "" when they are equivalent.
func Explain(a, b *Node) string {
	diff, err := Compare(a, b, CompareOptions{})
	switch {
	case err != nil:
		return err.Error()
	case diff == nil:
		return ""
	default:
		return diff.String()
	}
}

// Compare walks a and b in lockstep and returns the first difference, or
// nil when they are equivalent under opts.
func Compare(a, b *Node, opts CompareOptions) (*Difference, error) {
	cmp := comparer{opts: opts}

	return cmp.nodes(a, b, nil, true)
}

type comparer struct {
	opts CompareOptions
}

func pathString(path []string) string {
	return strings.Join(path, "")
}

func (c *comparer) diff(path []string, format string, args ...any) *Difference {
	return &Difference{
		Path:   strings.TrimPrefix(pathString(path), "."),
		Reason: fmt.Sprintf(format, args...),
	}
}

func (c *comparer) nodes(a, b *Node, path []string, root bool) (*Difference, error) {
	if a == nil || b == nil {
		if a == b {
			return nil, nil
		}
		return c.diff(path, "%s vs %s", a, b), nil
	}

	schemaA, err := checkShape(a)
	if err != nil {
		return nil, err
	}
	if _, err := checkShape(b); err != nil {
		return nil, err
	}

	if a.Kind != b.Kind {
		return c.diff(path, "kind %s vs %s", a.Kind, b.Kind), nil
	}

	if d := c.comments(a, b, path, root); d != nil {
		return d, nil
	}

	for _, spec := range schemaA.Fields {
		if spec.Meta {
			continue
		}

		fieldPath := append(path[:len(path):len(path)], "."+spec.Name)
		switch spec.Type {
		case FieldNode:
			if d, err := c.nodes(a.Child(spec.Name), b.Child(spec.Name), fieldPath, false); d != nil || err != nil {
				return d, err
			}
		case FieldList:
			if d, err := c.lists(a.List(spec.Name), b.List(spec.Name), fieldPath); d != nil || err != nil {
				return d, err
			}
		case FieldString:
			if a.Str(spec.Name) != b.Str(spec.Name) {
				return c.diff(fieldPath, "%q vs %q", a.Str(spec.Name), b.Str(spec.Name)), nil
			}
		case FieldBool:
			if a.Bool(spec.Name) != b.Bool(spec.Name) {
				return c.diff(fieldPath, "%t vs %t", a.Bool(spec.Name), b.Bool(spec.Name)), nil
			}
		case FieldNumber:
			if !SameNumber(a.Num(spec.Name), b.Num(spec.Name)) {
				return c.diff(fieldPath, "%v vs %v", a.Num(spec.Name), b.Num(spec.Name)), nil
			}
		}
	}

	return nil, nil
}

func (c *comparer) lists(a, b []*Node, path []string) (*Difference, error) {
	if len(a) != len(b) {
		return c.diff(path, "length %d vs %d", len(a), len(b)), nil
	}

	for idx := range a {
		elemPath := append(path[:len(path):len(path)], fmt.Sprintf("[%d]", idx))
		if d, err := c.nodes(a[idx], b[idx], elemPath, false); d != nil || err != nil {
			return d, err
		}
	}

	return nil, nil
}

func (c *comparer) comments(a, b *Node, path []string, root bool) *Difference {
	if c.opts.Comments == CommentsIgnored {
		return nil
	}

	pick := func(n *Node) []*Comment {
		if !root || !c.opts.SkipRootOuterComments {
			return n.Comments
		}
		return n.CommentsWith(Dangling)
	}

	ca, cb := pick(a), pick(b)
	if len(ca) != len(cb) {
		return c.diff(path, "%d comments vs %d", len(ca), len(cb))
	}

	for idx := range ca {
		if !SameComment(ca[idx], cb[idx], c.opts.Comments == CommentsExact) {
			return c.diff(path, "comment %s vs %s", ca[idx], cb[idx])
		}
	}

	return nil
}

// SameComment compares two comments by kind and body, and by placement
// when exact is set.
func SameComment(a, b *Comment, exact bool) bool {
	if a.Kind != b.Kind || normalizeBody(a.Value) != normalizeBody(b.Value) {
		return false
	}
	if exact {
		return a.Placement == b.Placement && a.OwnLine == b.OwnLine
	}

	return true
}

// SameComments compares two comment lists element-wise.
func SameComments(a, b []*Comment, exact bool) bool {
	if len(a) != len(b) {
		return false
	}
	for idx := range a {
		if !SameComment(a[idx], b[idx], exact) {
			return false
		}
	}

	return true
}

// normalizeBody drops the indentation of continuation lines, which moves
// when a block comment is re-indented.
func normalizeBody(value string) string {
	if !strings.Contains(value, "\n") {
		return value
	}

	lines := strings.Split(value, "\n")
	for idx := 1; idx < len(lines); idx++ {
		lines[idx] = strings.TrimLeft(strings.TrimRight(lines[idx], "\r"), " \t")
	}

	return strings.Join(lines, "\n")
}

// SameNumber reports whether two numeric literal values are the same
// value. NaN equals NaN.
func SameNumber(x, y float64) bool {
	return x == y || (math.IsNaN(x) && math.IsNaN(y))
}
