package printer

import (
	"fmt"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/lines"
)

// Context carries the state of one print call. Rules use it to print
// children and to inspect their ancestors.
type Context struct {
	printer *Printer
	opts    Options
	path    Path
	err     error

	// consumed records nodes whose dangling comments a rule already placed.
	consumed map[*ast.Node]bool

	lastMultiline bool
}

// Options returns the print options.
func (c *Context) Options() Options {
	return c.opts
}

// Path returns the ancestors of the node being printed.
func (c *Context) Path() Path {
	return c.path
}

// Parent returns the innermost ancestor step.
func (c *Context) Parent() Step {
	return c.path.Parent()
}

// Fail records err. Only the first error is kept; printing stops producing
// output once an error is recorded.
func (c *Context) Fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Failf records a formatted error.
func (c *Context) Failf(format string, args ...any) {
	c.Fail(fmt.Errorf(format, args...))
}

// Err returns the recorded error.
func (c *Context) Err() error {
	return c.err
}

// Field prints the node stored in field of n, or nothing when it is absent.
func (c *Context) Field(n *ast.Node, field string) lines.Lines {
	return c.Print(n, field, -1, n.Child(field))
}

// List prints every element of a list field. Nil elements print empty.
func (c *Context) List(n *ast.Node, field string) []lines.Lines {
	items := n.List(field)
	out := make([]lines.Lines, len(items))
	for idx, item := range items {
		out[idx] = c.Print(n, field, idx, item)
	}

	return out
}

// Print prints child, found under field of parent, with its comments and
// any parentheses it needs in that position.
func (c *Context) Print(parent *ast.Node, field string, index int, child *ast.Node) lines.Lines {
	if child == nil || c.err != nil {
		return lines.Empty()
	}

	c.path = append(c.path, Step{Node: parent, Field: field, Index: index})
	defer func() { c.path = c.path[:len(c.path)-1] }()

	body := c.body(child)
	c.lastMultiline = body.IsMultiline()

	return c.enclose(child, body)
}

// enclose adds the parentheses and outer comments n needs at the current
// path. Leading comments after a keyword that a line break would end are
// moved inside a pair of parentheses, which then also stand for the
// node's own.
func (c *Context) enclose(n *ast.Node, body lines.Lines) lines.Lines {
	guarded := CommentGuarded(c.path, n)
	if NeedsParens(c.path, n) || (n.Parenthesized && !guarded) {
		body = lines.Concat(lines.Text("("), body, lines.Text(")"))
	}

	body = c.decorate(n, body)
	if guarded {
		body = concat(text("("), newline(), c.Indent(body), newline(), text(")"))
	}

	return body
}

// CommentGuarded reports whether n, printed at the end of path, has leading
// comments and follows return, throw or yield. A line comment there would
// end the statement early.
func CommentGuarded(path Path, n *ast.Node) bool {
	if len(path) == 0 || n == nil || len(n.CommentsWith(ast.Leading)) == 0 {
		return false
	}

	step := path.Parent()
	if step.Node == nil || step.Field != "argument" {
		return false
	}

	return step.Node.Is(ast.ReturnStatement, ast.ThrowStatement, ast.YieldExpression)
}

func (c *Context) body(n *ast.Node) lines.Lines {
	if c.printer.reuse != nil {
		out, ok, err := c.printer.reuse(c.path, n)
		if err != nil {
			c.Fail(err)
			return lines.Empty()
		}
		if ok {
			return out
		}
	}

	return c.generic(n)
}

func (c *Context) generic(n *ast.Node) lines.Lines {
	if n == nil || c.err != nil {
		return lines.Empty()
	}

	rule, ok := c.printer.registry.Lookup(n.Kind)
	if !ok {
		c.Fail(&UnsupportedNodeKindError{Kind: n.Kind})
		return lines.Empty()
	}

	out := rule(c, n)
	if !c.consumed[n] && len(n.CommentsWith(ast.Dangling)) > 0 {
		out = lines.Concat(out, lines.Text(" "), c.Dangling(n))
	}

	return out
}
