package printer

import (
	"strings"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/lines"
)

func text(s string) lines.Lines { return lines.Text(s) }

func concat(parts ...lines.Lines) lines.Lines { return lines.Concat(parts...) }

func newline() lines.Lines { return lines.Newline() }

func join(sep string, items []lines.Lines) lines.Lines {
	return lines.Join(lines.Text(sep), items)
}

func when(cond bool, s string) lines.Lines {
	if !cond {
		return lines.Empty()
	}

	return lines.Text(s)
}

func prefixed(prefix string, l lines.Lines) lines.Lines {
	if l.IsEmpty() {
		return l
	}

	return concat(text(prefix), l)
}

// Indent shifts l by one indentation level.
func (c *Context) Indent(l lines.Lines) lines.Lines {
	return l.Indent(c.opts.TabWidth)
}

// Block wraps inner in braces, one level deeper, or prints {} when inner is
// empty.
func (c *Context) Block(inner lines.Lines) lines.Lines {
	if inner.IsEmpty() {
		return text("{}")
	}

	return c.Enclose("{", "}", inner)
}

// Enclose puts inner on its own lines between opening and closing, one level
// deeper.
func (c *Context) Enclose(opening, closing string, inner lines.Lines) lines.Lines {
	return concat(text(opening), newline(), c.Indent(inner), newline(), text(closing))
}

// Statements prints a list of statements or class members. Multi-line items
// are separated from their neighbours by a blank line. Dangling comments of
// n follow the items.
func (c *Context) Statements(n *ast.Node, field string) lines.Lines {
	var parts []lines.Lines

	prevMultiline := false
	for idx, item := range n.List(field) {
		printed := c.Print(n, field, idx, item)
		multiline := c.lastMultiline
		if printed.IsEmpty() {
			continue
		}

		if len(parts) > 0 {
			parts = append(parts, newline())
			if multiline || prevMultiline {
				parts = append(parts, newline())
			}
		}
		parts = append(parts, printed)
		prevMultiline = multiline
	}

	if c.HasDangling(n) {
		if len(parts) > 0 {
			parts = append(parts, newline())
		}
		parts = append(parts, c.Dangling(n))
	}

	return concat(parts...)
}

// Members prints items one per line, each followed by suffix.
func (c *Context) Members(n *ast.Node, field, suffix string, lastSuffix bool) lines.Lines {
	items := c.List(n, field)

	parts := make([]lines.Lines, 0, len(items))
	for idx, item := range items {
		if idx < len(items)-1 || lastSuffix {
			item = concat(item, text(suffix))
		}
		parts = append(parts, item)
	}

	if c.HasDangling(n) {
		parts = append(parts, c.Dangling(n))
	}

	return lines.Join(newline(), parts)
}

// Wrapped prints items between opening and closing, on one line when they fit
// within the wrap column and none spans several lines, otherwise one per
// line.
func (c *Context) Wrapped(opening, closing string, items []lines.Lines, trailingComma bool) lines.Lines {
	if len(items) == 0 {
		return text(opening + closing)
	}

	oneLine := join(", ", items)
	if !oneLine.IsMultiline() && !oneLine.LastLineComment() &&
		oneLine.Width()+len(opening)+len(closing) <= c.opts.WrapColumn {
		return concat(text(opening), oneLine, text(closing))
	}

	return c.broken(opening, closing, items, trailingComma)
}

func (c *Context) broken(opening, closing string, items []lines.Lines, trailingComma bool) lines.Lines {
	body := lines.Join(concat(text(","), newline()), items)
	if trailingComma && c.opts.TrailingComma {
		body = concat(body, text(","))
	}

	return concat(text(opening), newline(), c.Indent(body), newline(), text(closing))
}

// Params prints the parameter list of a function-like node.
func (c *Context) Params(n *ast.Node) lines.Lines {
	params := n.List("params")
	trailing := len(params) == 0 || !params[len(params)-1].Is(ast.RestElement)

	return c.Wrapped("(", ")", c.List(n, "params"), trailing)
}

// Arguments prints a call argument list. A trailing function or object
// literal that spans several lines hugs the parentheses when the arguments
// before it fit on one line.
func (c *Context) Arguments(n *ast.Node) lines.Lines {
	args := n.List("arguments")
	items := c.List(n, "arguments")
	if len(items) == 0 {
		return text("()")
	}

	last := len(items) - 1
	if items[last].IsMultiline() && huggable(args[last]) {
		head := join(", ", items[:last])
		if !head.IsMultiline() && !head.LastLineComment() && head.Width() <= c.opts.WrapColumn {
			if last > 0 {
				head = concat(head, text(", "))
			}
			return concat(text("("), head, items[last], text(")"))
		}
	}

	trailing := !args[last].Is(ast.SpreadElement)

	return c.Wrapped("(", ")", items, trailing)
}

func huggable(n *ast.Node) bool {
	if len(n.Comments) > 0 {
		return false
	}

	return n.Is(ast.FunctionExpression, ast.ArrowFunctionExpression, ast.ObjectExpression, ast.ArrayExpression)
}

// TypeParams prints <...> for the typeParameters list of n.
func (c *Context) TypeParams(n *ast.Node) lines.Lines {
	if len(n.List("typeParameters")) == 0 {
		return lines.Empty()
	}

	return c.Wrapped("<", ">", c.List(n, "typeParameters"), false)
}

// TypeArgs prints <...> for a list of type arguments.
func (c *Context) TypeArgs(n *ast.Node, field string) lines.Lines {
	if len(n.List(field)) == 0 {
		return lines.Empty()
	}

	return c.Wrapped("<", ">", c.List(n, field), false)
}

// Annotation prints ": T" for the type stored in field, or nothing.
func (c *Context) Annotation(n *ast.Node, field string) lines.Lines {
	if n.Child(field) == nil {
		return lines.Empty()
	}

	return concat(text(": "), c.Field(n, field))
}

// Key prints a property key, in brackets when computed.
func (c *Context) Key(n *ast.Node) lines.Lines {
	if n.Bool("computed") {
		return concat(text("["), c.Field(n, "key"), text("]"))
	}

	return c.Field(n, "key")
}

// Decorators prints the decorators of n, each on its own line or, inline,
// followed by a space.
func (c *Context) Decorators(n *ast.Node, inline bool) lines.Lines {
	items := c.List(n, "decorators")
	if len(items) == 0 {
		return lines.Empty()
	}

	parts := make([]lines.Lines, 0, 2*len(items))
	for _, item := range items {
		parts = append(parts, item)
		if inline {
			parts = append(parts, text(" "))
		} else {
			parts = append(parts, newline())
		}
	}

	return concat(parts...)
}

// Modifiers prints the class member modifiers of n in canonical order.
func (c *Context) Modifiers(n *ast.Node) lines.Lines {
	var words []string
	if n.Bool("declare") {
		words = append(words, "declare")
	}
	if access := n.Str("accessibility"); access != "" {
		words = append(words, access)
	}
	if n.Bool("static") {
		words = append(words, "static")
	}
	if n.Bool("abstract") {
		words = append(words, "abstract")
	}
	if n.Bool("override") {
		words = append(words, "override")
	}
	if n.Bool("readonly") {
		words = append(words, "readonly")
	}
	if len(words) == 0 {
		return lines.Empty()
	}

	return text(strings.Join(words, " ") + " ")
}

// Clause prints the body of a control statement: blocks stay on the same
// line, other statements move to the next line, one level deeper.
func (c *Context) Clause(n *ast.Node, field string) lines.Lines {
	body := n.Child(field)
	printed := c.Field(n, field)
	if body != nil && body.Is(ast.BlockStatement) {
		return concat(text(" "), printed)
	}
	if body != nil && body.Is(ast.EmptyStatement) {
		return printed
	}

	return concat(newline(), c.Indent(printed))
}
