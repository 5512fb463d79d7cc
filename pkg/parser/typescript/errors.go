package typescript

import "fmt"

// ParseError reports source text the grammar does not accept.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}

	return fmt.Sprintf("%s (%d:%d)", e.Message, e.Line, e.Column)
}

// bailout carries a ParseError up the stack of the recursive descent.
type bailout struct {
	err *ParseError
}
