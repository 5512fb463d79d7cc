package printer

import (
	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/lines"
)

//nolint:gochecknoinits // Built-in rules register themselves.
func init() {
	registerAll(map[ast.Kind]Rule{
		ast.Program:             printProgram,
		ast.BlockStatement:      printBlock,
		ast.StaticBlock:         printStaticBlock,
		ast.ExpressionStatement: printExpressionStatement,
		ast.EmptyStatement:      printKeyword(";"),
		ast.DebuggerStatement:   printKeyword("debugger;"),
		ast.VariableDeclaration: printVariableDeclaration,
		ast.VariableDeclarator:  printVariableDeclarator,
		ast.ReturnStatement:     printArgumentStatement("return"),
		ast.ThrowStatement:      printArgumentStatement("throw"),
		ast.IfStatement:         printIf,
		ast.ForStatement:        printFor,
		ast.ForInStatement:      printForIn,
		ast.ForOfStatement:      printForOf,
		ast.WhileStatement:      printWhile,
		ast.DoWhileStatement:    printDoWhile,
		ast.BreakStatement:      printJump("break"),
		ast.ContinueStatement:   printJump("continue"),
		ast.TryStatement:        printTry,
		ast.CatchClause:         printCatch,
		ast.SwitchStatement:     printSwitch,
		ast.SwitchCase:          printSwitchCase,
		ast.LabeledStatement:    printLabeled,
		ast.Opaque:              printOpaque,
	})
}

// printOpaque prints kept source text as it was. Comments inside it are
// part of the text.
func printOpaque(c *Context, n *ast.Node) lines.Lines {
	c.consumed[n] = true

	if n.HasRange() && n.Text() == n.Str("text") {
		buf := n.Range.Buffer
		return lines.FromSource(buf, n.Range.Start, n.Range.End, lines.SourceOptions{
			TabWidth: c.opts.TabWidth,
			Base:     buf.IndentAt(n.Range.Start, c.opts.TabWidth),
		})
	}

	return lines.FromString(n.Str("text"), c.opts.TabWidth)
}

func printKeyword(keyword string) Rule {
	return func(_ *Context, _ *ast.Node) lines.Lines {
		return text(keyword)
	}
}

func printProgram(c *Context, n *ast.Node) lines.Lines {
	body := c.Statements(n, "body")
	if interpreter := n.Str("interpreter"); interpreter != "" {
		return lines.Join(newline(), []lines.Lines{text("#!" + interpreter), body})
	}

	return body
}

func printBlock(c *Context, n *ast.Node) lines.Lines {
	return c.Block(c.Statements(n, "body"))
}

func printStaticBlock(c *Context, n *ast.Node) lines.Lines {
	return concat(text("static "), c.Block(c.Statements(n, "body")))
}

func printExpressionStatement(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Field(n, "expression"), text(";"))
}

func printVariableDeclaration(c *Context, n *ast.Node) lines.Lines {
	head := concat(when(n.Bool("declare"), "declare "), text(n.Str("kind")+" "))

	declarators := c.List(n, "declarations")
	body := join(", ", declarators)
	if len(declarators) > 1 && body.IsMultiline() {
		body = lines.Join(concat(text(","), newline()), declarators).IndentTail(c.opts.TabWidth)
	}

	out := concat(head, body)
	if !inForHead(c.Parent()) {
		out = concat(out, text(";"))
	}

	return out
}

func inForHead(step Step) bool {
	if step.Node == nil {
		return false
	}

	switch step.Node.Kind {
	case ast.ForStatement:
		return step.Field == "init"
	case ast.ForInStatement, ast.ForOfStatement:
		return step.Field == "left"
	default:
		return false
	}
}

func printVariableDeclarator(c *Context, n *ast.Node) lines.Lines {
	out := c.Field(n, "id")
	if n.Child("init") != nil {
		out = concat(out, text(" = "), c.Field(n, "init"))
	}

	return out
}

func printArgumentStatement(keyword string) Rule {
	return func(c *Context, n *ast.Node) lines.Lines {
		if n.Child("argument") == nil {
			return text(keyword + ";")
		}

		return concat(text(keyword+" "), c.Field(n, "argument"), text(";"))
	}
}

func printIf(c *Context, n *ast.Node) lines.Lines {
	out := concat(text("if ("), c.Field(n, "test"), text(")"), c.Clause(n, "consequent"))

	alternate := n.Child("alternate")
	if alternate == nil {
		return out
	}

	if n.Child("consequent").Is(ast.BlockStatement) {
		out = concat(out, text(" else"))
	} else {
		out = concat(out, newline(), text("else"))
	}

	if alternate.Is(ast.IfStatement) {
		return concat(out, text(" "), c.Field(n, "alternate"))
	}

	return concat(out, c.Clause(n, "alternate"))
}

func printFor(c *Context, n *ast.Node) lines.Lines {
	return concat(
		text("for ("),
		c.Field(n, "init"),
		text(";"),
		prefixed(" ", c.Field(n, "test")),
		text(";"),
		prefixed(" ", c.Field(n, "update")),
		text(")"),
		c.Clause(n, "body"),
	)
}

func printForIn(c *Context, n *ast.Node) lines.Lines {
	return concat(
		text("for ("), c.Field(n, "left"), text(" in "), c.Field(n, "right"), text(")"),
		c.Clause(n, "body"),
	)
}

func printForOf(c *Context, n *ast.Node) lines.Lines {
	return concat(
		text("for"), when(n.Bool("await"), " await"),
		text(" ("), c.Field(n, "left"), text(" of "), c.Field(n, "right"), text(")"),
		c.Clause(n, "body"),
	)
}

func printWhile(c *Context, n *ast.Node) lines.Lines {
	return concat(text("while ("), c.Field(n, "test"), text(")"), c.Clause(n, "body"))
}

func printDoWhile(c *Context, n *ast.Node) lines.Lines {
	out := concat(text("do"), c.Clause(n, "body"))
	if n.Child("body").Is(ast.BlockStatement) {
		out = concat(out, text(" "))
	} else {
		out = concat(out, newline())
	}

	return concat(out, text("while ("), c.Field(n, "test"), text(");"))
}

func printJump(keyword string) Rule {
	return func(c *Context, n *ast.Node) lines.Lines {
		return concat(text(keyword), prefixed(" ", c.Field(n, "label")), text(";"))
	}
}

func printTry(c *Context, n *ast.Node) lines.Lines {
	out := concat(text("try "), c.Field(n, "block"))
	if n.Child("handler") != nil {
		out = concat(out, text(" "), c.Field(n, "handler"))
	}
	if n.Child("finalizer") != nil {
		out = concat(out, text(" finally "), c.Field(n, "finalizer"))
	}

	return out
}

func printCatch(c *Context, n *ast.Node) lines.Lines {
	out := text("catch ")
	if n.Child("param") != nil {
		out = concat(out, text("("), c.Field(n, "param"), text(") "))
	}

	return concat(out, c.Field(n, "body"))
}

func printSwitch(c *Context, n *ast.Node) lines.Lines {
	head := concat(text("switch ("), c.Field(n, "discriminant"), text(") "))

	cases := c.List(n, "cases")
	if c.HasDangling(n) {
		cases = append(cases, c.Dangling(n))
	}

	return concat(head, c.Block(lines.Join(newline(), cases)))
}

func printSwitchCase(c *Context, n *ast.Node) lines.Lines {
	var out lines.Lines
	if n.Child("test") != nil {
		out = concat(text("case "), c.Field(n, "test"), text(":"))
	} else {
		out = text("default:")
	}

	consequent := n.List("consequent")
	switch {
	case len(consequent) == 1 && consequent[0].Is(ast.BlockStatement):
		return concat(out, text(" "), c.Statements(n, "consequent"))
	case len(consequent) > 0 || c.HasDangling(n):
		return concat(out, newline(), c.Indent(c.Statements(n, "consequent")))
	default:
		return out
	}
}

func printLabeled(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Field(n, "label"), text(": "), c.Field(n, "body"))
}
