// Package patcher reprints a parsed and possibly modified tree with as few
// textual changes to the original source as it can.
//
// Unchanged subtrees are copied from the source. A node whose children
// changed in place is patched: only the text of the changed children is
// replaced, and the punctuation and whitespace around them survive. Nodes
// that cannot be patched are printed by the printer, which in turn copies
// every unchanged descendant from the source.
package patcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/fix"
	"github.com/yaklabco/tsreprint/pkg/lines"
	"github.com/yaklabco/tsreprint/pkg/printer"
	"github.com/yaklabco/tsreprint/pkg/source"
)

// ErrNoRoot is returned for a file without a root node.
var ErrNoRoot = errors.New("file has no root node")

// Stats counts how output was produced.
type Stats struct {
	// Reused is the number of subtrees copied from the original source by
	// the printer's reuse hook.
	Reused int

	// Reprinted is the number of nodes printed from scratch.
	Reprinted int

	// Patched reports whether the output is the original text with edits
	// applied, as opposed to a reprint of the whole root.
	Patched bool
}

// Result is the output of Reprint.
type Result struct {
	// Code is the reprinted source.
	Code string

	// Edits turn the original text into Code. They are sorted and trimmed
	// to the bytes that actually change.
	Edits []fix.TextEdit

	Stats Stats
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithRegistry prints with registry instead of the default rule set.
func WithRegistry(registry *printer.Registry) Option {
	return func(p *Patcher) {
		p.registry = registry
	}
}

// Patcher reprints one file.
type Patcher struct {
	file     *ast.File
	buf      *source.Buffer
	opts     printer.Options
	registry *printer.Registry
	printer  *printer.Printer
	stats    Stats
}

// New creates a Patcher for file. Freshly printed code follows opts, except
// that line breaks always use the terminator of the original source.
func New(file *ast.File, opts printer.Options, options ...Option) *Patcher {
	p := &Patcher{file: file, opts: opts, registry: printer.DefaultRegistry}
	for _, opt := range options {
		opt(p)
	}

	if file != nil && file.Buffer != nil {
		p.buf = file.Buffer
		p.opts.LineTerminator = file.Buffer.LineTerminator()
	}
	p.printer = printer.New(p.opts, printer.WithRegistry(p.registry), printer.WithReuse(p.reuse))

	return p
}

// Reprint reprints file with default printer options.
func Reprint(file *ast.File, opts printer.Options) (Result, error) {
	return New(file, opts).Reprint()
}

// Reprint produces the source for the current state of the tree.
func (p *Patcher) Reprint() (Result, error) {
	if p.file == nil || p.file.Root == nil {
		return Result{}, ErrNoRoot
	}
	if err := p.opts.Validate(); err != nil {
		return Result{}, err
	}
	if err := ast.Validate(p.file.Root); err != nil {
		return Result{}, err
	}

	p.stats = Stats{}
	root := p.file.Root

	if p.buf != nil && p.file.Original(root) != nil && p.inBuffer(root.Range) {
		edits, ok, err := p.patchNode(nil, root)
		if err != nil {
			return Result{}, err
		}
		if ok {
			return p.applyEdits(edits)
		}
	}

	return p.reprintRoot()
}

func (p *Patcher) applyEdits(edits []fix.TextEdit) (Result, error) {
	builder := fix.NewEditBuilder(p.buf.Content())
	for _, edit := range edits {
		builder.ReplaceRange(edit.StartOffset, edit.EndOffset, edit.NewText)
	}

	code, applied, err := builder.Apply()
	if err != nil {
		return Result{}, fmt.Errorf("apply patch: %w", err)
	}

	p.stats.Patched = true

	return Result{Code: code, Edits: applied, Stats: p.stats}, nil
}

func (p *Patcher) reprintRoot() (Result, error) {
	out, err := p.printer.Print(p.file.Root)
	if err != nil {
		return Result{}, err
	}
	p.stats.Reprinted++

	code := p.opts.Render(out)
	if p.buf == nil {
		return Result{Code: code, Stats: p.stats}, nil
	}

	original := p.buf.Content()
	if code != "" && strings.HasSuffix(original, "\n") {
		code += p.opts.LineTerminator
	}

	edits := fix.Minimize(original, []fix.TextEdit{{StartOffset: 0, EndOffset: len(original), NewText: code}})

	return Result{Code: code, Edits: edits, Stats: p.stats}, nil
}

// reuse is the printer hook: a node whose subtree, dangling comments
// included, still matches its captured state prints as its original text.
// A statement that relied on semicolon insertion gets its semicolon, since
// whatever is printed after it may not be what followed it originally.
func (p *Patcher) reuse(path printer.Path, n *ast.Node) (lines.Lines, bool, error) {
	original := p.file.Original(n)
	if original == nil || !p.inBuffer(n.Range) {
		return lines.Empty(), false, nil
	}

	diff, err := ast.Compare(n, original, ast.CompareOptions{
		Comments:              ast.CommentsExact,
		SkipRootOuterComments: true,
	})
	if err != nil || diff != nil {
		return lines.Empty(), false, err
	}

	p.stats.Reused++

	out := lines.FromSource(p.buf, n.Range.Start, n.Range.End, lines.SourceOptions{
		TabWidth: p.opts.TabWidth,
		Base:     p.buf.IndentAt(n.Range.Start, p.opts.TabWidth),
		Verbatim: p.file.Verbatim,
	})
	if len(path) > 0 && statementSlot(path.Parent()) && !p.terminated(n) {
		out = lines.Concat(out, lines.Text(";"))
	}

	return out, true, nil
}

// printChild prints n for the position at the end of path, with the
// parentheses and comments it needs there.
func (p *Patcher) printChild(path printer.Path, n *ast.Node) (lines.Lines, error) {
	body, err := p.printBody(path, n)
	if err != nil {
		return lines.Empty(), err
	}

	return p.printer.Enclose(path, n, body), nil
}

// printBody prints n for the position at the end of path without its
// parentheses and comments, which stay in the source around it.
func (p *Patcher) printBody(path printer.Path, n *ast.Node) (lines.Lines, error) {
	body, ok, err := p.reuse(path, n)
	if err != nil || ok {
		return body, err
	}

	body, err = p.printer.PrintBody(path, n)
	if err != nil {
		return lines.Empty(), err
	}
	p.stats.Reprinted++

	return body, nil
}

// render converts printed lines placed on a line indented by base columns.
func (p *Patcher) render(l lines.Lines, base int) string {
	return p.opts.Render(l.IndentTail(base))
}

func (p *Patcher) inBuffer(r source.Range) bool {
	return r.Buffer == p.buf && r.IsValid()
}
