// Package treesitter provides a permissive Parser implementation backed by
// the tree-sitter TypeScript and JavaScript grammars.
//
// Tree-sitter recovers from syntax errors, so input the hand-written parser
// rejects still yields a tree. The concrete syntax tree is mapped onto the
// shared node model: common statements and expressions become regular
// nodes, everything else, recovered input included, becomes an Opaque node
// that keeps its source text. Opaque nodes reprint unchanged and can be
// moved, removed or replaced like any other node.
package treesitter

import (
	"context"
	"fmt"
	"slices"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/comments"
	"github.com/yaklabco/tsreprint/pkg/source"
	"github.com/yaklabco/tsreprint/pkg/syntaxcheck"
)

// Grammar flavors.
const (
	FlavorTypeScript = "typescript"
	FlavorJavaScript = "javascript"
)

// Parser parses with tree-sitter.
type Parser struct {
	flavor string
	strict bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithStrict makes Parse fail with a *syntaxcheck.SyntaxError when
// tree-sitter had to recover from an error, instead of keeping the
// recovered text as opaque nodes.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// New creates a parser. flavor picks the grammar for paths whose extension
// does not. Unknown flavors parse as TypeScript.
func New(flavor string, opts ...Option) *Parser {
	if flavor != FlavorJavaScript {
		flavor = FlavorTypeScript
	}

	parser := &Parser{flavor: flavor}
	for _, opt := range opts {
		opt(parser)
	}

	return parser
}

// Flavor returns the configured flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse builds a File from content. Comments are attached to the tree and
// the tree is captured as the original for reprinting.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*ast.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	if p.strict {
		if err := syntaxcheck.New(p.flavor).Check(ctx, path, content); err != nil {
			return nil, err
		}
	}

	buf := source.New(path, string(content))
	m := newMapper(buf)

	var root *ast.Node
	err := syntaxcheck.WithTree(syntaxcheck.LanguageFor(path, p.flavor), content, func(node *tree_sitter.Node) error {
		m.collect(node)
		root = m.program(node)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	slices.SortFunc(m.comments, func(a, b *ast.Comment) int {
		return a.Range.Start - b.Range.Start
	})

	file := ast.NewFile(buf, root, m.comments, m.verbatim)
	file.SetAnchors(comments.Attach(root, m.comments))
	file.Capture()

	return file, nil
}
