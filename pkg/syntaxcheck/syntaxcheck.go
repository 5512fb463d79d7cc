// Package syntaxcheck validates code with the tree-sitter grammars, a
// parser independent of the one the reprinter relies on.
package syntaxcheck

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Language selects a tree-sitter grammar.
type Language int

// Grammars.
const (
	TypeScript Language = iota
	TSX
	JavaScript
)

func (l Language) String() string {
	switch l {
	case TypeScript:
		return "typescript"
	case TSX:
		return "tsx"
	case JavaScript:
		return "javascript"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// ErrNoTree is returned when tree-sitter produces no tree.
var ErrNoTree = errors.New("tree-sitter returned no tree")

// SyntaxError locates the first error node tree-sitter reports.
type SyntaxError struct {
	Path     string
	Language Language
	Line     int
	Column   int

	// Node is "ERROR" for unexpected input or "missing <token>" for a
	// token tree-sitter had to invent.
	Node string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s rejects the code (%s)", e.Path, e.Line, e.Column, e.Language, e.Node)
}

// LanguageFor picks the grammar for path. Paths without a telling
// extension use flavor ("javascript" or anything else for TypeScript).
func LanguageFor(path, flavor string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsx":
		return TSX
	case ".ts", ".mts", ".cts":
		return TypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return JavaScript
	}

	if flavor == "javascript" {
		return JavaScript
	}

	return TypeScript
}

// Checker validates code for one parser flavor.
type Checker struct {
	flavor string
}

// New creates a Checker. flavor decides the grammar for paths whose
// extension does not.
func New(flavor string) *Checker {
	return &Checker{flavor: flavor}
}

// Check parses code and returns a *SyntaxError for the first error node.
func (c *Checker) Check(ctx context.Context, path string, code []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("syntax check cancelled: %w", err)
	}

	lang := LanguageFor(path, c.flavor)

	return WithTree(lang, code, func(root *tree_sitter.Node) error {
		bad := firstError(root)
		if bad == nil {
			return nil
		}

		pos := bad.StartPosition()
		node := "ERROR"
		if bad.IsMissing() {
			node = "missing " + bad.Kind()
		}

		return &SyntaxError{
			Path:     path,
			Language: lang,
			Line:     int(pos.Row) + 1,
			Column:   int(pos.Column) + 1,
			Node:     node,
		}
	})
}

// Dump returns the S-expression of the tree-sitter parse of code.
func Dump(code []byte, lang Language) (string, error) {
	var out string
	err := WithTree(lang, code, func(root *tree_sitter.Node) error {
		out = root.ToSexp()
		return nil
	})

	return out, err
}

// WithTree parses code with the grammar for lang and calls fn with the root
// of the tree. The tree is released when fn returns.
func WithTree(lang Language, code []byte, fn func(root *tree_sitter.Node) error) error {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tree_sitter.NewLanguage(grammar(lang))); err != nil {
		return fmt.Errorf("setting language: %w", err)
	}

	tree := parser.Parse(code, nil)
	if tree == nil {
		return ErrNoTree
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return ErrNoTree
	}

	return fn(root)
}

func grammar(lang Language) unsafe.Pointer {
	switch lang {
	case JavaScript:
		return tree_sitter_javascript.Language()
	case TSX:
		return tree_sitter_typescript.LanguageTSX()
	default:
		return tree_sitter_typescript.LanguageTypescript()
	}
}

// firstError returns the first error or missing node in document order.
func firstError(node *tree_sitter.Node) *tree_sitter.Node {
	if node == nil {
		return nil
	}
	if node.IsError() || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		if bad := firstError(node.Child(i)); bad != nil {
			return bad
		}
	}

	return node
}
