package reprint

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/parser/treesitter"
	"github.com/yaklabco/tsreprint/pkg/parser/typescript"
)

// Parser turns source text into a File whose tree is captured for
// reprinting.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*ast.File, error)
}

// ParserFactory creates a Parser. strict disables newline-based statement
// termination for grammars that support it; the tree-sitter parser instead
// rejects input it had to recover from.
type ParserFactory func(strict bool) Parser

// Built-in parser names.
const (
	ParserTypeScript = typescript.FlavorTypeScript
	ParserJavaScript = typescript.FlavorJavaScript

	// ParserTreeSitter recovers from syntax errors and keeps what it cannot
	// model as opaque source text. The grammar follows the file extension.
	ParserTreeSitter = "treesitter"
)

//nolint:gochecknoglobals // parser registry shared by all callers
var (
	parsersMu sync.RWMutex
	parsers   = map[string]ParserFactory{
		ParserTypeScript: flavorFactory(typescript.FlavorTypeScript),
		ParserJavaScript: flavorFactory(typescript.FlavorJavaScript),
		ParserTreeSitter: func(strict bool) Parser {
			return treesitter.New(treesitter.FlavorTypeScript, treesitter.WithStrict(strict))
		},
	}
)

func flavorFactory(flavor string) ParserFactory {
	return func(strict bool) Parser {
		return typescript.New(flavor, typescript.WithStrict(strict))
	}
}

// UnknownParserError is returned when Options.Parser names no registered
// parser.
type UnknownParserError struct {
	Name string
}

func (e *UnknownParserError) Error() string {
	return fmt.Sprintf("unknown parser %q", e.Name)
}

// RegisterParser makes a parser available under name, replacing any parser
// registered under the same name.
func RegisterParser(name string, factory ParserFactory) {
	parsersMu.Lock()
	defer parsersMu.Unlock()

	parsers[name] = factory
}

// Parsers returns the registered parser names in sorted order.
func Parsers() []string {
	parsersMu.RLock()
	defer parsersMu.RUnlock()

	names := make([]string, 0, len(parsers))
	for name := range parsers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// NewParser creates the parser registered under name.
func NewParser(name string, strict bool) (Parser, error) {
	parsersMu.RLock()
	factory, ok := parsers[name]
	parsersMu.RUnlock()

	if !ok {
		return nil, &UnknownParserError{Name: name}
	}

	return factory(strict), nil
}
