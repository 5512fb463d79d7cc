package ast

import (
	"fmt"

	"github.com/yaklabco/tsreprint/pkg/source"
)

// MalformedNodeError reports a node that violates its kind's schema. It
// indicates a bug in the code that built the tree.
type MalformedNodeError struct {
	Kind   Kind
	Field  string
	Range  source.Range
	Reason string
}

func (e *MalformedNodeError) Error() string {
	where := ""
	if e.Range.IsValid() {
		where = " at " + e.Range.StartPosition().String()
	}
	if e.Field != "" {
		return fmt.Sprintf("malformed %s node%s: field %q: %s", e.Kind, where, e.Field, e.Reason)
	}

	return fmt.Sprintf("malformed %s node%s: %s", e.Kind, where, e.Reason)
}

func malformed(n *Node, field, reason string) *MalformedNodeError {
	return &MalformedNodeError{Kind: n.Kind, Field: field, Range: n.Range, Reason: reason}
}

// checkShape validates the fields of a single node against its schema.
func checkShape(n *Node) (*Schema, error) {
	schema, ok := Lookup(n.Kind)
	if !ok {
		return nil, malformed(n, "", "unknown kind")
	}

	for name, val := range n.fields {
		spec, known := schema.Field(name)
		if !known {
			return nil, malformed(n, name, "not a field of this kind")
		}

		var okType bool
		switch val.(type) {
		case *Node:
			okType = spec.Type == FieldNode
		case []*Node:
			okType = spec.Type == FieldList
		case string:
			okType = spec.Type == FieldString
		case bool:
			okType = spec.Type == FieldBool
		case float64:
			okType = spec.Type == FieldNumber
		}
		if !okType {
			return nil, malformed(n, name, fmt.Sprintf("expected %s, got %T", spec.Type, val))
		}
	}

	for _, spec := range schema.Fields {
		if !spec.Required {
			continue
		}
		if _, set := n.fields[spec.Name]; !set {
			return nil, malformed(n, spec.Name, "required field missing")
		}
	}

	return schema, nil
}

// Validate checks every node under root against its schema and returns the
// first violation as a *MalformedNodeError.
func Validate(root *Node) error {
	return Walk(root, func(n *Node) error {
		_, err := checkShape(n)
		return err
	})
}
