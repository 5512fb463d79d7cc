// Package reprint is the public entry point: it parses source into a tree,
// reprints a modified tree with minimal changes, and pretty prints fresh
// trees.
package reprint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/tsreprint/internal/logging"
	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/fix"
	"github.com/yaklabco/tsreprint/pkg/patcher"
	"github.com/yaklabco/tsreprint/pkg/printer"
)

// ErrNilNode is returned by PrettyPrint for a nil node.
var ErrNilNode = errors.New("nil node")

// Options configures parsing and printing.
type Options struct {
	// Parser names a registered parser. Empty means typescript.
	Parser string

	// Strict disables newline-based statement termination.
	Strict bool

	// Printer formats freshly printed code.
	Printer printer.Options
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Parser:  ParserTypeScript,
		Printer: printer.DefaultOptions(),
	}
}

// Result is the output of Print and PrettyPrint.
type Result struct {
	Code string

	// Edits turn the original source into Code. Empty for PrettyPrint.
	Edits []fix.TextEdit

	Stats patcher.Stats
}

// Parse parses content with the parser named in opts. Parse errors are
// returned unchanged.
func Parse(ctx context.Context, path string, content []byte, opts Options) (*ast.File, error) {
	name := opts.Parser
	if name == "" {
		name = ParserTypeScript
	}

	parser, err := NewParser(name, opts.Strict)
	if err != nil {
		return nil, err
	}

	file, err := parser.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("parsed",
		logging.FieldPath, path,
		logging.FieldParser, name,
		logging.FieldBytes, len(content),
	)

	return file, nil
}

// Print reprints file. Text of subtrees the caller did not change is copied
// from the original source; everything else is printed with opts.Printer.
func Print(ctx context.Context, file *ast.File, opts Options) (Result, error) {
	result, err := patcher.New(file, opts.Printer).Reprint()
	if err != nil {
		return Result{}, fmt.Errorf("print: %w", err)
	}

	logging.FromContext(ctx).Debug("reprinted",
		logging.FieldPath, file.Path,
		logging.FieldEdits, len(result.Edits),
		logging.FieldReused, result.Stats.Reused,
		logging.FieldReprinted, result.Stats.Reprinted,
		logging.FieldPatched, result.Stats.Patched,
	)

	return Result{Code: result.Code, Edits: result.Edits, Stats: result.Stats}, nil
}

// PrettyPrint prints node from scratch with opts.Printer, ignoring any
// source text it was parsed from. A printed Program ends with a line
// terminator.
func PrettyPrint(ctx context.Context, node *ast.Node, opts Options) (Result, error) {
	if node == nil {
		return Result{}, ErrNilNode
	}

	code, err := printer.New(opts.Printer).PrintString(node)
	if err != nil {
		return Result{}, fmt.Errorf("pretty print: %w", err)
	}

	if node.Kind == ast.Program && code != "" {
		terminator := opts.Printer.LineTerminator
		if terminator == "" {
			terminator = "\n"
		}
		code += terminator
	}

	logging.FromContext(ctx).Debug("pretty printed",
		logging.FieldBytes, len(code),
	)

	return Result{Code: code, Stats: patcher.Stats{Reprinted: 1}}, nil
}
