package ast

import (
	"fmt"
	"slices"
	"sync"
)

// FieldType is the value shape a field holds.
type FieldType uint8

// Field value shapes.
const (
	FieldNode FieldType = iota + 1
	FieldList
	FieldString
	FieldBool
	FieldNumber
)

func (t FieldType) String() string {
	switch t {
	case FieldNode:
		return "node"
	case FieldList:
		return "list"
	case FieldString:
		return "string"
	case FieldBool:
		return "bool"
	case FieldNumber:
		return "number"
	default:
		return fmt.Sprintf("FieldType(%d)", uint8(t))
	}
}

// Category groups kinds by grammar family.
type Category uint8

// Grammar families.
const (
	CategoryOther Category = iota
	CategoryExpression
	CategoryStatement
	CategoryType
	CategoryPattern
)

// FieldSpec describes one field of a kind.
type FieldSpec struct {
	Name     string
	Type     FieldType
	Required bool

	// Meta fields record source spelling (such as a literal's raw text).
	// They are ignored by Compare.
	Meta bool
}

// Schema lists the fields of a kind in source order.
type Schema struct {
	Kind     Kind
	Category Category
	Fields   []FieldSpec

	index map[string]int
}

// Field returns the spec for name.
func (s *Schema) Field(name string) (FieldSpec, bool) {
	idx, ok := s.index[name]
	if !ok {
		return FieldSpec{}, false
	}

	return s.Fields[idx], true
}

// SchemaRegistry maps kinds to their schemas.
type SchemaRegistry struct {
	mu     sync.RWMutex
	byKind map[Kind]*Schema
}

// NewSchemaRegistry creates an empty registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{byKind: make(map[Kind]*Schema)}
}

// Register adds a schema for kind. Registering a kind twice is an error.
func (r *SchemaRegistry) Register(kind Kind, category Category, fields ...FieldSpec) error {
	if kind == "" {
		return fmt.Errorf("register schema: empty kind")
	}

	schema := &Schema{
		Kind:     kind,
		Category: category,
		Fields:   slices.Clone(fields),
		index:    make(map[string]int, len(fields)),
	}
	for idx, field := range fields {
		if _, dup := schema.index[field.Name]; dup {
			return fmt.Errorf("register schema %s: duplicate field %q", kind, field.Name)
		}
		schema.index[field.Name] = idx
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKind[kind]; exists {
		return fmt.Errorf("register schema %s: kind already registered", kind)
	}
	r.byKind[kind] = schema

	return nil
}

// Lookup returns the schema for kind.
func (r *SchemaRegistry) Lookup(kind Kind) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.byKind[kind]

	return schema, ok
}

// Kinds returns all registered kinds sorted by name.
func (r *SchemaRegistry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.byKind))
	for kind := range r.byKind {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)

	return kinds
}

//nolint:gochecknoglobals // Process-wide schema table shared by parsers and printers.
var schemas = newBuiltinRegistry()

// Register adds a custom kind to the process-wide schema table.
func Register(kind Kind, category Category, fields ...FieldSpec) error {
	return schemas.Register(kind, category, fields...)
}

// Lookup returns the schema of a kind from the process-wide table.
func Lookup(kind Kind) (*Schema, bool) {
	return schemas.Lookup(kind)
}

// Kinds returns every kind in the process-wide table.
func Kinds() []Kind {
	return schemas.Kinds()
}

// CategoryOf returns the grammar family of kind, or CategoryOther when the
// kind is unknown.
func CategoryOf(kind Kind) Category {
	schema, ok := Lookup(kind)
	if !ok {
		return CategoryOther
	}

	return schema.Category
}

// Field spec helpers.

// NodeField declares a single child field.
func NodeField(name string) FieldSpec { return FieldSpec{Name: name, Type: FieldNode} }

// ListField declares a child list field.
func ListField(name string) FieldSpec { return FieldSpec{Name: name, Type: FieldList} }

// StringField declares a string field.
func StringField(name string) FieldSpec { return FieldSpec{Name: name, Type: FieldString} }

// BoolField declares a boolean field.
func BoolField(name string) FieldSpec { return FieldSpec{Name: name, Type: FieldBool} }

// NumberField declares a numeric field.
func NumberField(name string) FieldSpec { return FieldSpec{Name: name, Type: FieldNumber} }

// Require marks the field as mandatory.
func (f FieldSpec) Require() FieldSpec {
	f.Required = true
	return f
}

// AsMeta marks the field as formatting-only.
func (f FieldSpec) AsMeta() FieldSpec {
	f.Meta = true
	return f
}
