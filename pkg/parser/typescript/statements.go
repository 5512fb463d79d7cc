package typescript

import (
	"github.com/yaklabco/tsreprint/pkg/ast"
)

func (p *parser) parseStatement() *ast.Node {
	start := p.tok.start

	switch p.tok.kind {
	case tokPunct:
		switch p.tok.value {
		case "{":
			return p.parseBlock()
		case ";":
			p.next()
			return p.finish(ast.New(ast.EmptyStatement), start)
		case "@":
			return p.parseDecorated(start)
		}

	case tokName:
		if p.tok.escaped {
			break
		}
		if stmt := p.parseKeywordStatement(start); stmt != nil {
			return stmt
		}
		if peekIs(p.peek(), ":") && !reservedWords[p.tok.value] {
			label := p.parseIdentifierName()
			p.expect(":")
			body := p.parseStatement()
			return p.finish(ast.New(ast.LabeledStatement).Set("label", label).Set("body", body), start)
		}
	}

	expr := p.withIn(p.parseExpression)
	p.semicolon()

	return p.finish(ast.NewExpressionStatement(expr), start)
}

// parseKeywordStatement parses statements introduced by a word. It returns
// nil when the word starts an expression instead.
func (p *parser) parseKeywordStatement(start int) *ast.Node {
	next := p.peek()

	switch p.tok.value {
	case "var", "const":
		if p.tok.value == "const" && peekName(next, "enum") {
			p.next()
			return p.parseEnum(start, false, true)
		}
		decl := p.parseVariable(start, false)
		p.semicolon()
		p.extend(decl)
		return decl

	case "let":
		if next.kind == tokName || peekIs(next, "[") || peekIs(next, "{") {
			decl := p.parseVariable(start, false)
			p.semicolon()
			p.extend(decl)
			return decl
		}

	case "function":
		return p.parseFunction(start, false, false, false)

	case "async":
		if peekName(next, "function") && !next.newlineBefore {
			p.next()
			return p.parseFunction(start, true, false, false)
		}

	case "class":
		return p.parseClass(start, nil, true, false, false)

	case "if":
		return p.parseIf(start)
	case "for":
		return p.parseFor(start)

	case "while":
		p.next()
		test := p.parseParenExpression()
		body := p.parseStatement()
		return p.finish(ast.New(ast.WhileStatement).Set("test", test).Set("body", body), start)

	case "do":
		p.next()
		body := p.parseStatement()
		p.expectName("while")
		test := p.parseParenExpression()
		p.eat(";")
		return p.finish(ast.New(ast.DoWhileStatement).Set("body", body).Set("test", test), start)

	case "return":
		if !p.scope.inFunction {
			p.failAt(start, "return outside of a function")
		}
		p.next()
		n := ast.New(ast.ReturnStatement)
		if !p.endsStatement() {
			n.Set("argument", p.withIn(p.parseExpression))
		}
		p.semicolon()
		return p.finish(n, start)

	case "break", "continue":
		kind := ast.BreakStatement
		if p.tok.value == "continue" {
			kind = ast.ContinueStatement
		}
		p.next()
		n := ast.New(kind)
		if p.tok.kind == tokName && !p.tok.newlineBefore {
			n.Set("label", p.parseIdentifierReference())
		}
		p.semicolon()
		return p.finish(n, start)

	case "throw":
		p.next()
		if p.tok.newlineBefore {
			p.failAt(p.tok.start, "illegal newline after throw")
		}
		arg := p.withIn(p.parseExpression)
		p.semicolon()
		return p.finish(ast.New(ast.ThrowStatement).Set("argument", arg), start)

	case "try":
		return p.parseTry(start)
	case "switch":
		return p.parseSwitch(start)

	case "debugger":
		p.next()
		p.semicolon()
		return p.finish(ast.New(ast.DebuggerStatement), start)

	case "import":
		if !peekIs(next, "(") && !peekIs(next, ".") {
			return p.parseImport(start)
		}

	case "export":
		return p.parseExport(start, nil)

	case "with":
		p.failAt(start, "with statements are not supported")
	}

	if p.typescript() {
		return p.parseDeclarationStatement(start, next)
	}

	return nil
}

// parseDeclarationStatement parses TypeScript-only declarations that start
// with a contextual keyword.
func (p *parser) parseDeclarationStatement(start int, next token) *ast.Node {
	if next.newlineBefore {
		return nil
	}

	switch p.tok.value {
	case "type":
		if next.kind == tokName {
			p.next()
			return p.parseTypeAlias(start, false)
		}
	case "interface":
		if next.kind == tokName {
			p.next()
			return p.parseInterface(start, false)
		}
	case "enum":
		if next.kind == tokName {
			return p.parseEnum(start, false, false)
		}
	case "namespace", "module":
		if next.kind == tokName || (p.tok.value == "module" && next.kind == tokString) {
			return p.parseModule(start, false)
		}
	case "abstract":
		if peekName(next, "class") {
			p.next()
			return p.parseClass(start, nil, true, false, true)
		}
	case "declare":
		if next.kind == tokName {
			p.next()
			return p.parseDeclare(start)
		}
	}

	return nil
}

// parseDeclare parses the declaration after the declare keyword.
func (p *parser) parseDeclare(start int) *ast.Node {
	switch {
	case p.isName("var") || p.isName("let") || p.isName("const"):
		if p.isName("const") && peekName(p.peek(), "enum") {
			p.next()
			return p.parseEnum(start, true, true)
		}
		decl := p.parseVariable(start, true)
		p.semicolon()
		p.extend(decl)
		return decl
	case p.isName("function"):
		return p.parseFunction(start, false, true, false)
	case p.isName("async"):
		p.next()
		return p.parseFunction(start, true, true, false)
	case p.isName("class"):
		return p.parseClass(start, nil, true, true, false)
	case p.isName("abstract"):
		p.next()
		return p.parseClass(start, nil, true, true, true)
	case p.isName("type"):
		p.next()
		return p.parseTypeAlias(start, true)
	case p.isName("interface"):
		p.next()
		return p.parseInterface(start, true)
	case p.isName("enum"):
		return p.parseEnum(start, true, false)
	case p.isName("namespace") || p.isName("module") || p.isName("global"):
		return p.parseModule(start, true)
	}

	p.failAt(p.tok.start, "declaration expected after declare, found %s", p.tok)

	return nil
}

func (p *parser) endsStatement() bool {
	return p.is(";") || p.is("}") || p.tok.kind == tokEOF || (p.tok.newlineBefore && !p.strict)
}

func (p *parser) parseBlock() *ast.Node {
	start := p.tok.start
	body := p.parseBraced()

	return p.finish(ast.New(ast.BlockStatement).Set("body", body), start)
}

// parseBraced parses { statements }.
func (p *parser) parseBraced() []*ast.Node {
	p.expect("{")

	body := []*ast.Node{}
	for !p.is("}") {
		if p.tok.kind == tokEOF {
			p.failAt(p.tok.start, "'}' expected, found end of file")
		}
		body = append(body, p.parseStatement())
	}
	p.expect("}")

	return body
}

func (p *parser) parseParenExpression() *ast.Node {
	p.expect("(")
	expr := p.withIn(p.parseExpression)
	p.expect(")")

	return expr
}

// parseVariable parses a declaration list without the terminating
// semicolon.
func (p *parser) parseVariable(start int, declare bool) *ast.Node {
	kind := p.tok.value
	p.next()

	var declarations []*ast.Node
	for {
		declarations = append(declarations, p.parseDeclarator())
		if !p.eat(",") {
			break
		}
	}

	n := ast.New(ast.VariableDeclaration).Set("kind", kind).Set("declarations", declarations)
	if declare {
		n.Set("declare", true)
	}

	return p.finish(n, start)
}

func (p *parser) parseDeclarator() *ast.Node {
	start := p.tok.start
	id := p.parseBindingTarget()

	n := ast.New(ast.VariableDeclarator)
	if p.is("!") && p.typescript() {
		p.next()
		n.Set("definite", true)
	}
	if p.is(":") {
		p.requireTypeScript("type annotations")
		p.next()
		id.Set("typeAnnotation", p.parseType())
		p.extend(id)
	}
	n.Set("id", id)

	if p.eat("=") {
		n.Set("init", p.parseAssign())
	}

	return p.finish(n, start)
}

func (p *parser) parseIf(start int) *ast.Node {
	p.next()
	test := p.parseParenExpression()
	consequent := p.parseStatement()

	n := ast.New(ast.IfStatement).Set("test", test).Set("consequent", consequent)
	if p.eatName("else") {
		n.Set("alternate", p.parseStatement())
	}

	return p.finish(n, start)
}

func (p *parser) parseFor(start int) *ast.Node {
	p.next()

	isAwait := false
	if p.isName("await") && (p.scope.inAsync || !p.scope.inFunction) {
		p.next()
		isAwait = true
	}
	p.expect("(")

	var init *ast.Node
	switch {
	case p.is(";"):
	case p.isName("var") || p.isName("const") ||
		(p.isName("let") && (p.peek().kind == tokName || peekIs(p.peek(), "[") || peekIs(p.peek(), "{"))):
		declStart := p.tok.start
		init = p.withNoIn(func() *ast.Node { return p.parseVariable(declStart, false) })
	default:
		init = p.withNoIn(p.parseExpression)
	}

	if init != nil && (p.isName("of") || p.isName("in")) {
		kind := ast.ForInStatement
		if p.isName("of") {
			kind = ast.ForOfStatement
		}
		if !init.Is(ast.VariableDeclaration) {
			init = p.toPattern(init)
		}
		p.next()

		var right *ast.Node
		if kind == ast.ForOfStatement {
			right = p.withIn(p.parseAssign)
		} else {
			right = p.withIn(p.parseExpression)
		}
		p.expect(")")
		body := p.parseStatement()

		n := ast.New(kind).Set("left", init).Set("right", right).Set("body", body)
		if isAwait {
			n.Set("await", true)
		}
		return p.finish(n, start)
	}
	if isAwait {
		p.failAt(p.tok.start, "for await requires an of clause")
	}

	n := ast.New(ast.ForStatement).Set("init", init)
	p.expect(";")
	if !p.is(";") {
		n.Set("test", p.withIn(p.parseExpression))
	}
	p.expect(";")
	if !p.is(")") {
		n.Set("update", p.withIn(p.parseExpression))
	}
	p.expect(")")
	n.Set("body", p.parseStatement())

	return p.finish(n, start)
}

func (p *parser) parseTry(start int) *ast.Node {
	p.next()
	block := p.parseBlock()

	n := ast.New(ast.TryStatement).Set("block", block)
	if p.isName("catch") {
		catchStart := p.tok.start
		p.next()

		clause := ast.New(ast.CatchClause)
		if p.eat("(") {
			param := p.parseBindingTarget()
			if p.is(":") {
				p.next()
				param.Set("typeAnnotation", p.parseType())
				p.extend(param)
			}
			p.expect(")")
			clause.Set("param", param)
		}
		clause.Set("body", p.parseBlock())
		n.Set("handler", p.finish(clause, catchStart))
	}
	if p.eatName("finally") {
		n.Set("finalizer", p.parseBlock())
	}
	if n.Child("handler") == nil && n.Child("finalizer") == nil {
		p.failAt(p.tok.start, "catch or finally expected, found %s", p.tok)
	}

	return p.finish(n, start)
}

func (p *parser) parseSwitch(start int) *ast.Node {
	p.next()
	discriminant := p.parseParenExpression()
	p.expect("{")

	cases := []*ast.Node{}
	for !p.is("}") {
		caseStart := p.tok.start
		sc := ast.New(ast.SwitchCase)
		switch {
		case p.eatName("case"):
			sc.Set("test", p.withIn(p.parseExpression))
		case p.eatName("default"):
		default:
			p.failAt(p.tok.start, "'case' or 'default' expected, found %s", p.tok)
		}
		p.expect(":")

		consequent := []*ast.Node{}
		for !p.is("}") && !p.isName("case") && !p.isName("default") {
			if p.tok.kind == tokEOF {
				p.failAt(p.tok.start, "'}' expected, found end of file")
			}
			consequent = append(consequent, p.parseStatement())
		}
		sc.Set("consequent", consequent)
		cases = append(cases, p.finish(sc, caseStart))
	}
	p.expect("}")

	return p.finish(ast.New(ast.SwitchStatement).Set("discriminant", discriminant).Set("cases", cases), start)
}
