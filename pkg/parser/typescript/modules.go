package typescript

import (
	"github.com/yaklabco/tsreprint/pkg/ast"
)

// typeModifierFollows reports whether a type keyword at the current token
// marks a type-only import or export rather than naming a binding.
func (p *parser) typeModifierFollows() bool {
	if !p.isName("type") || !p.typescript() {
		return false
	}

	next := p.peek()
	switch {
	case peekIs(next, "{") || peekIs(next, "*"):
		return true
	case next.kind == tokName:
		return !peekName(next, "from") || p.lookahead(func() bool {
			p.next()
			p.next()
			return p.isName("from")
		})
	default:
		return false
	}
}

func (p *parser) parseImport(start int) *ast.Node {
	p.expectName("import")

	n := ast.New(ast.ImportDeclaration)
	if p.tok.kind == tokString {
		n.Set("source", p.parseString())
		p.semicolon()
		return p.finish(n, start)
	}

	if p.typeModifierFollows() {
		p.next()
		n.Set("importKind", "type")
	}

	if p.tok.kind == tokName && peekIs(p.peek(), "=") {
		return p.parseImportEquals(start, n.Str("importKind"), false)
	}

	specifiers := []*ast.Node{}
	if p.tok.kind == tokName {
		specStart := p.tok.start
		local := p.parseBindingIdentifier()
		specifiers = append(specifiers, p.finish(ast.New(ast.ImportDefaultSpecifier).Set("local", local), specStart))
		if !p.eat(",") {
			return p.finishImport(n, specifiers, start)
		}
	}

	switch {
	case p.is("*"):
		specStart := p.tok.start
		p.next()
		p.expectName("as")
		local := p.parseBindingIdentifier()
		specifiers = append(specifiers, p.finish(ast.New(ast.ImportNamespaceSpecifier).Set("local", local), specStart))
	case p.is("{"):
		p.next()
		for !p.is("}") {
			specifiers = append(specifiers, p.parseImportSpecifier())
			if !p.is("}") {
				p.expect(",")
			}
		}
		p.expect("}")
	default:
		p.failAt(p.tok.start, "import specifier expected, found %s", p.tok)
	}

	return p.finishImport(n, specifiers, start)
}

func (p *parser) finishImport(n *ast.Node, specifiers []*ast.Node, start int) *ast.Node {
	p.expectName("from")
	if p.tok.kind != tokString {
		p.failAt(p.tok.start, "module specifier expected, found %s", p.tok)
	}
	n.Set("specifiers", specifiers).Set("source", p.parseString())
	p.semicolon()

	return p.finish(n, start)
}

func (p *parser) parseImportSpecifier() *ast.Node {
	start := p.tok.start
	n := ast.New(ast.ImportSpecifier)

	if p.isName("type") && p.typescript() {
		next := p.peek()
		if next.kind == tokName || next.kind == tokString {
			if !peekName(next, "as") || p.lookahead(func() bool {
				p.next()
				p.next()
				return p.tok.kind == tokName
			}) {
				p.next()
				n.Set("importKind", "type")
			}
		}
	}

	n.Set("imported", p.parseModuleExportName())
	if p.eatName("as") {
		n.Set("local", p.parseBindingIdentifier())
	} else if !n.Child("imported").Is(ast.Identifier) {
		p.failAt(p.tok.start, "'as' expected, found %s", p.tok)
	}

	return p.finish(n, start)
}

func (p *parser) parseModuleExportName() *ast.Node {
	if p.tok.kind == tokString {
		return p.parseString()
	}

	return p.parseIdentifierName()
}

func (p *parser) parseImportEquals(start int, importKind string, isExport bool) *ast.Node {
	n := ast.New(ast.TSImportEqualsDeclaration).Set("id", p.parseBindingIdentifier())
	if importKind != "" {
		n.Set("importKind", importKind)
	}
	if isExport {
		n.Set("isExport", true)
	}
	p.expect("=")

	if p.isName("require") && peekIs(p.peek(), "(") {
		refStart := p.tok.start
		p.next()
		p.expect("(")
		if p.tok.kind != tokString {
			p.failAt(p.tok.start, "module specifier expected, found %s", p.tok)
		}
		expr := p.parseString()
		p.expect(")")
		n.Set("moduleReference", p.finish(ast.New(ast.TSExternalModuleReference).Set("expression", expr), refStart))
	} else {
		n.Set("moduleReference", p.parseEntityName())
	}
	p.semicolon()

	return p.finish(n, start)
}

// parseExport parses an export statement. Decorators already consumed
// before the export keyword belong to the exported class.
func (p *parser) parseExport(start int, decorators []*ast.Node) *ast.Node {
	p.expectName("export")

	if decorators != nil {
		kind := ast.ExportNamedDeclaration
		if p.eatName("default") {
			kind = ast.ExportDefaultDeclaration
		}
		abstract := p.eatName("abstract")
		decl := p.parseClass(start, decorators, true, false, abstract)
		return p.finish(ast.New(kind).Set("declaration", decl), start)
	}

	switch {
	case p.is("="):
		p.requireTypeScript("export assignments")
		p.next()
		expr := p.withIn(p.parseExpression)
		p.semicolon()
		return p.finish(ast.New(ast.TSExportAssignment).Set("expression", expr), start)

	case p.isName("as"):
		p.requireTypeScript("namespace exports")
		p.next()
		p.expectName("namespace")
		id := p.parseBindingIdentifier()
		p.semicolon()
		return p.finish(ast.New(ast.TSNamespaceExportDeclaration).Set("id", id), start)

	case p.isName("import") && p.typescript():
		p.next()
		importKind := ""
		if p.isName("type") && p.peek().kind == tokName {
			p.next()
			importKind = "type"
		}
		return p.parseImportEquals(start, importKind, true)

	case p.isName("default"):
		p.next()
		decl := p.parseExportDefault()
		return p.finish(ast.New(ast.ExportDefaultDeclaration).Set("declaration", decl), start)

	case p.is("*") || p.is("{") || p.isName("type") && p.typescript() && (peekIs(p.peek(), "{") || peekIs(p.peek(), "*")):
		return p.parseExportFrom(start)
	}

	declStart := p.tok.start
	decl := p.parseStatement()
	switch decl.Kind {
	case ast.VariableDeclaration, ast.FunctionDeclaration, ast.TSDeclareFunction, ast.ClassDeclaration,
		ast.TSTypeAliasDeclaration, ast.TSInterfaceDeclaration, ast.TSEnumDeclaration, ast.TSModuleDeclaration:
	default:
		p.failAt(declStart, "declaration expected after export")
	}

	return p.finish(ast.New(ast.ExportNamedDeclaration).Set("declaration", decl), start)
}

func (p *parser) parseExportDefault() *ast.Node {
	start := p.tok.start

	switch {
	case p.isName("function"):
		return p.parseFunction(start, false, false, false)
	case p.isName("async") && peekName(p.peek(), "function") && !p.peek().newlineBefore:
		p.next()
		return p.parseFunction(start, true, false, false)
	case p.isName("class"):
		return p.parseClass(start, nil, true, false, false)
	case p.is("@"):
		decorators := p.parseDecorators()
		abstract := p.eatName("abstract")
		return p.parseClass(start, decorators, true, false, abstract)
	case p.isName("abstract") && peekName(p.peek(), "class"):
		p.next()
		return p.parseClass(start, nil, true, false, true)
	case p.isName("interface") && p.typescript() && p.peek().kind == tokName:
		p.next()
		return p.parseInterface(start, false)
	}

	expr := p.withIn(p.parseAssign)
	p.semicolon()

	return expr
}

func (p *parser) parseExportFrom(start int) *ast.Node {
	exportKind := ""
	if p.isName("type") {
		p.next()
		exportKind = "type"
	}

	if p.eat("*") {
		n := ast.New(ast.ExportAllDeclaration)
		if exportKind != "" {
			n.Set("exportKind", exportKind)
		}
		if p.eatName("as") {
			n.Set("exported", p.parseModuleExportName())
		}
		p.expectName("from")
		if p.tok.kind != tokString {
			p.failAt(p.tok.start, "module specifier expected, found %s", p.tok)
		}
		n.Set("source", p.parseString())
		p.semicolon()
		return p.finish(n, start)
	}

	p.expect("{")
	specifiers := []*ast.Node{}
	for !p.is("}") {
		specifiers = append(specifiers, p.parseExportSpecifier())
		if !p.is("}") {
			p.expect(",")
		}
	}
	p.expect("}")

	n := ast.New(ast.ExportNamedDeclaration).Set("specifiers", specifiers)
	if exportKind != "" {
		n.Set("exportKind", exportKind)
	}
	if p.eatName("from") {
		if p.tok.kind != tokString {
			p.failAt(p.tok.start, "module specifier expected, found %s", p.tok)
		}
		n.Set("source", p.parseString())
	}
	p.semicolon()

	return p.finish(n, start)
}

func (p *parser) parseExportSpecifier() *ast.Node {
	start := p.tok.start
	n := ast.New(ast.ExportSpecifier)

	if p.isName("type") && p.typescript() {
		next := p.peek()
		if (next.kind == tokName || next.kind == tokString) && !peekName(next, "as") {
			p.next()
			n.Set("exportKind", "type")
		}
	}

	n.Set("local", p.parseModuleExportName())
	if p.eatName("as") {
		n.Set("exported", p.parseModuleExportName())
	}

	return p.finish(n, start)
}

// TypeScript declarations.

// parseTypeAlias parses the rest of a type alias after the type keyword.
func (p *parser) parseTypeAlias(start int, declare bool) *ast.Node {
	n := ast.New(ast.TSTypeAliasDeclaration).Set("id", p.parseBindingIdentifier())
	if declare {
		n.Set("declare", true)
	}
	if p.is("<") {
		n.Set("typeParameters", p.parseTypeParameters())
	}
	p.expect("=")
	n.Set("typeAnnotation", p.parseType())
	p.semicolon()

	return p.finish(n, start)
}

// parseInterface parses the rest of an interface after its keyword.
func (p *parser) parseInterface(start int, declare bool) *ast.Node {
	n := ast.New(ast.TSInterfaceDeclaration).Set("id", p.parseBindingIdentifier())
	if declare {
		n.Set("declare", true)
	}
	if p.is("<") {
		n.Set("typeParameters", p.parseTypeParameters())
	}
	if p.eatName("extends") {
		n.Set("extends", p.parseHeritageList())
	}

	bodyStart := p.tok.start
	members := p.parseTypeMembers()
	n.Set("body", p.finish(ast.New(ast.TSInterfaceBody).Set("body", members), bodyStart))

	return p.finish(n, start)
}

// parseEnum parses an enum starting at the enum keyword.
func (p *parser) parseEnum(start int, declare, isConst bool) *ast.Node {
	p.requireTypeScript("enums")
	p.expectName("enum")

	n := ast.New(ast.TSEnumDeclaration).Set("id", p.parseBindingIdentifier())
	if declare {
		n.Set("declare", true)
	}
	if isConst {
		n.Set("const", true)
	}

	p.expect("{")
	members := []*ast.Node{}
	for !p.is("}") {
		memberStart := p.tok.start

		var id *ast.Node
		switch p.tok.kind {
		case tokString:
			id = p.parseString()
		case tokName:
			id = p.parseIdentifierName()
		default:
			p.failAt(p.tok.start, "enum member name expected, found %s", p.tok)
		}

		member := ast.New(ast.TSEnumMember).Set("id", id)
		if p.eat("=") {
			member.Set("initializer", p.withIn(p.parseAssign))
		}
		members = append(members, p.finish(member, memberStart))

		if !p.is("}") {
			p.expect(",")
		}
	}
	p.expect("}")
	n.Set("members", members)

	return p.finish(n, start)
}

// parseModule parses a namespace, module or global declaration starting
// at its keyword.
func (p *parser) parseModule(start int, declare bool) *ast.Node {
	kind := p.tok.value
	n := ast.New(ast.TSModuleDeclaration).Set("kind", kind)
	if declare {
		n.Set("declare", true)
	}

	if kind == "global" {
		n.Set("id", p.parseIdentifierName())
		n.Set("body", p.parseModuleBlock())
		return p.finish(n, start)
	}
	p.next()

	if p.tok.kind == tokString {
		n.Set("id", p.parseString())
		if p.is("{") {
			n.Set("body", p.parseModuleBlock())
		} else {
			p.semicolon()
		}
		return p.finish(n, start)
	}

	n.Set("id", p.parseBindingIdentifier())
	n.Set("body", p.parseModuleRest())

	return p.finish(n, start)
}

// parseModuleRest parses the block of a namespace, or the remaining
// segments of a dotted name as nested declarations.
func (p *parser) parseModuleRest() *ast.Node {
	if !p.eat(".") {
		return p.parseModuleBlock()
	}

	start := p.tok.start
	n := ast.New(ast.TSModuleDeclaration).Set("id", p.parseBindingIdentifier())
	n.Set("body", p.parseModuleRest())

	return p.finish(n, start)
}

func (p *parser) parseModuleBlock() *ast.Node {
	start := p.tok.start

	var body []*ast.Node
	p.withScope(scope{}, func() {
		body = p.parseBraced()
	})

	return p.finish(ast.New(ast.TSModuleBlock).Set("body", body), start)
}
