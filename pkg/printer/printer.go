// Package printer renders syntax trees as text from scratch.
//
// Printing is rule driven: every node kind has a Rule that turns the node
// into lines.Lines, asking the Context to print its children. The Context
// tracks the path from the root so that rules and the parenthesization
// logic can inspect ancestors, and it emits the comments attached to each
// child around the printed body.
package printer

import (
	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/lines"
)

// Step is one edge of a Path: a node and the field through which the walk
// descended from it.
type Step struct {
	Node  *ast.Node
	Field string

	// Index is the list position within Field, or -1 for node fields.
	Index int
}

// Path lists the ancestors of a node, outermost first.
type Path []Step

// Parent returns the innermost step, or a zero Step for an empty path.
func (p Path) Parent() Step {
	if len(p) == 0 {
		return Step{Index: -1}
	}

	return p[len(p)-1]
}

// Child returns a copy of p extended by one step.
func (p Path) Child(n *ast.Node, field string, index int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)

	return append(out, Step{Node: n, Field: field, Index: index})
}

// ReuseFunc lets a caller substitute the printed body of a node, typically
// with text copied from the original source. It reports false to let the
// printer print the node itself.
type ReuseFunc func(path Path, n *ast.Node) (lines.Lines, bool, error)

// Printer prints nodes with a fixed set of options.
type Printer struct {
	opts     Options
	registry *Registry
	reuse    ReuseFunc
}

// Option configures a Printer.
type Option func(*Printer)

// WithRegistry replaces the default rule registry.
func WithRegistry(registry *Registry) Option {
	return func(p *Printer) {
		p.registry = registry
	}
}

// WithReuse installs a hook consulted before printing each child node.
func WithReuse(reuse ReuseFunc) Option {
	return func(p *Printer) {
		p.reuse = reuse
	}
}

// New creates a Printer.
func New(opts Options, options ...Option) *Printer {
	printer := &Printer{opts: opts, registry: DefaultRegistry}
	for _, opt := range options {
		opt(printer)
	}

	return printer
}

// Options returns the printer's options.
func (p *Printer) Options() Options {
	return p.opts
}

// Print validates n and prints it with its outer comments.
func (p *Printer) Print(n *ast.Node) (lines.Lines, error) {
	if err := p.opts.Validate(); err != nil {
		return lines.Empty(), err
	}
	if err := ast.Validate(n); err != nil {
		return lines.Empty(), err
	}

	return p.PrintAt(nil, n)
}

// PrintString prints n and renders the result.
func (p *Printer) PrintString(n *ast.Node) (string, error) {
	out, err := p.Print(n)
	if err != nil {
		return "", err
	}

	return p.opts.Render(out), nil
}

// PrintAt prints n, located at path, with its outer comments but without
// parentheses. The tree is not validated.
func (p *Printer) PrintAt(path Path, n *ast.Node) (lines.Lines, error) {
	ctx := p.newContext(path)
	out := ctx.decorate(n, ctx.generic(n))

	return out, ctx.err
}

// PrintBody prints n, located at path, without its outer comments and
// without parentheses. The tree is not validated.
func (p *Printer) PrintBody(path Path, n *ast.Node) (lines.Lines, error) {
	ctx := p.newContext(path)
	out := ctx.generic(n)

	return out, ctx.err
}

// Enclose wraps body, the printed form of n located at path, in the
// parentheses and outer comments it needs there.
func (p *Printer) Enclose(path Path, n *ast.Node, body lines.Lines) lines.Lines {
	return p.newContext(path).enclose(n, body)
}

func (p *Printer) newContext(path Path) *Context {
	return &Context{
		printer:  p,
		opts:     p.opts,
		path:     append(Path(nil), path...),
		consumed: make(map[*ast.Node]bool),
	}
}
