package printer

import (
	"fmt"

	"github.com/yaklabco/tsreprint/pkg/ast"
)

// UnsupportedNodeKindError is returned when no print rule is registered for
// a node kind.
type UnsupportedNodeKindError struct {
	Kind ast.Kind
}

func (e *UnsupportedNodeKindError) Error() string {
	return fmt.Sprintf("no print rule for node kind %q", e.Kind)
}
