package typescript

import (
	"github.com/yaklabco/tsreprint/pkg/ast"
)

func (p *parser) withConditional(allowed bool, fn func() *ast.Node) *ast.Node {
	saved := p.noConditional
	p.noConditional = !allowed
	defer func() { p.noConditional = saved }()

	return fn()
}

func (p *parser) parseType() *ast.Node {
	start := p.tok.start

	if p.is("<") || p.is("(") && p.isFunctionTypeStart() {
		n := ast.New(ast.TSFunctionType)
		p.parseTypeSignature(n)
		return p.finish(n, start)
	}
	if p.isName("new") || p.isName("abstract") && peekName(p.peek(), "new") {
		n := ast.New(ast.TSConstructorType)
		if p.eatName("abstract") {
			n.Set("abstract", true)
		}
		p.expectName("new")
		p.parseTypeSignature(n)
		return p.finish(n, start)
	}

	check := p.parseUnionType()
	if p.noConditional || !p.isName("extends") || p.tok.newlineBefore {
		return check
	}
	p.next()

	extends := p.withConditional(false, p.parseType)
	p.expect("?")
	trueType := p.withConditional(true, p.parseType)
	p.expect(":")
	falseType := p.withConditional(true, p.parseType)

	return p.finish(ast.New(ast.TSConditionalType).
		Set("checkType", check).Set("extendsType", extends).
		Set("trueType", trueType).Set("falseType", falseType), start)
}

// isFunctionTypeStart tells a parenthesized type from the parameter list
// of a function type.
func (p *parser) isFunctionTypeStart() bool {
	return p.lookahead(func() bool {
		p.parseParams()
		return p.is("=>")
	})
}

// parseTypeSignature parses "<T>(params) => R" into n.
func (p *parser) parseTypeSignature(n *ast.Node) {
	if p.is("<") {
		n.Set("typeParameters", p.parseTypeParameters())
	}
	n.Set("params", p.parseParams())
	p.expect("=>")
	n.Set("returnType", p.withConditional(true, p.parseTypeOrPredicate))
}

func (p *parser) parseUnionType() *ast.Node {
	return p.parseTypeList("|", ast.TSUnionType, p.parseIntersectionType)
}

func (p *parser) parseIntersectionType() *ast.Node {
	return p.parseTypeList("&", ast.TSIntersectionType, p.parseTypeOperator)
}

// parseTypeList parses operands separated by op, allowing a leading op.
// A single operand is returned as is.
func (p *parser) parseTypeList(op string, kind ast.Kind, operand func() *ast.Node) *ast.Node {
	start := p.tok.start
	p.eat(op)

	types := []*ast.Node{operand()}
	for p.eat(op) {
		types = append(types, operand())
	}
	if len(types) == 1 {
		return types[0]
	}

	return p.finish(ast.New(kind).Set("types", types), start)
}

func (p *parser) parseTypeOperator() *ast.Node {
	start := p.tok.start

	if p.isName("keyof") || p.isName("unique") || p.isName("readonly") {
		next := p.peek()
		if next.kind != tokEOF && !peekIs(next, ")") && !peekIs(next, ",") && !peekIs(next, "]") &&
			!peekIs(next, ">") && !peekIs(next, "=") && !peekIs(next, ";") && !peekIs(next, "|") && !peekIs(next, "&") {
			operator := p.tok.value
			p.next()
			operand := p.parseTypeOperator()
			return p.finish(ast.New(ast.TSTypeOperator).Set("operator", operator).Set("typeAnnotation", operand), start)
		}
	}

	if p.isName("infer") && p.peek().kind == tokName {
		p.next()
		paramStart := p.tok.start
		param := ast.New(ast.TSTypeParameter).Set("name", p.parseIdentifierName().Str("name"))
		if p.isName("extends") {
			var constraint *ast.Node
			p.try(func() {
				p.next()
				constraint = p.withConditional(false, p.parseType)
				if p.is("?") && !p.noConditional {
					p.unexpected()
				}
			})
			param.Set("constraint", constraint)
		}
		p.finish(param, paramStart)
		return p.finish(ast.New(ast.TSInferType).Set("typeParameter", param), start)
	}

	return p.parsePostfixType()
}

func (p *parser) parsePostfixType() *ast.Node {
	start := p.tok.start
	typ := p.parsePrimaryType()

	for p.is("[") && !p.tok.newlineBefore {
		p.next()
		if p.eat("]") {
			typ = p.finish(ast.New(ast.TSArrayType).Set("elementType", typ), start)
			continue
		}

		index := p.withConditional(true, p.parseType)
		p.expect("]")
		typ = p.finish(ast.New(ast.TSIndexedAccessType).Set("objectType", typ).Set("indexType", index), start)
	}

	return typ
}

func (p *parser) parsePrimaryType() *ast.Node {
	start := p.tok.start

	switch p.tok.kind {
	case tokName:
		next := p.peek()
		switch {
		case keywordTypes[p.tok.value] && !peekIs(next, "."):
			name := p.tok.value
			p.next()
			return p.finish(ast.NewKeywordType(name), start)
		case p.isName("this"):
			p.next()
			return p.finish(ast.New(ast.TSThisType), start)
		case p.isName("true") || p.isName("false"):
			value := p.isName("true")
			p.next()
			literal := p.finish(ast.NewBool(value), start)
			return p.finish(ast.New(ast.TSLiteralType).Set("literal", literal), start)
		case p.isName("typeof"):
			p.next()
			n := ast.New(ast.TSTypeQuery)
			if p.isName("import") {
				n.Set("exprName", p.parseImportType())
			} else {
				n.Set("exprName", p.parseEntityName())
			}
			if p.is("<") && !p.tok.newlineBefore {
				n.Set("typeArguments", p.parseTypeArguments())
			}
			return p.finish(n, start)
		case p.isName("import") && peekIs(next, "("):
			return p.parseImportType()
		}

		n := ast.New(ast.TSTypeReference).Set("typeName", p.parseEntityName())
		if p.is("<") && !p.tok.newlineBefore {
			n.Set("typeArguments", p.parseTypeArguments())
		}
		return p.finish(n, start)

	case tokString:
		literal := p.parseString()
		return p.finish(ast.New(ast.TSLiteralType).Set("literal", literal), start)

	case tokNumber:
		literal := p.parseNumber()
		return p.finish(ast.New(ast.TSLiteralType).Set("literal", literal), start)

	case tokBigInt:
		literal := p.parsePrimary()
		return p.finish(ast.New(ast.TSLiteralType).Set("literal", literal), start)

	case tokTemplate:
		literal := p.parseTemplate(true)
		return p.finish(ast.New(ast.TSLiteralType).Set("literal", literal), start)

	case tokPunct:
		switch p.tok.value {
		case "-":
			p.next()
			var arg *ast.Node
			switch p.tok.kind {
			case tokNumber:
				arg = p.parseNumber()
			case tokBigInt:
				arg = p.parsePrimary()
			default:
				p.failAt(p.tok.start, "number expected, found %s", p.tok)
			}
			literal := p.finish(ast.New(ast.UnaryExpression).Set("operator", "-").Set("argument", arg), start)
			return p.finish(ast.New(ast.TSLiteralType).Set("literal", literal), start)
		case "(":
			p.next()
			typ := p.withConditional(true, p.parseType)
			p.expect(")")
			typ.Parenthesized = true
			return typ
		case "[":
			return p.parseTupleType()
		case "{":
			if p.isMappedTypeStart() {
				return p.parseMappedType()
			}
			members := p.parseTypeMembers()
			return p.finish(ast.New(ast.TSTypeLiteral).Set("members", members), start)
		}
	}

	p.failAt(p.tok.start, "type expected, found %s", p.tok)

	return nil
}

// parseEntityName parses a possibly qualified type name such as A.B.C.
func (p *parser) parseEntityName() *ast.Node {
	start := p.tok.start
	name := p.parseIdentifierName()

	for p.is(".") {
		p.next()
		right := p.parseIdentifierName()
		name = p.finish(ast.New(ast.TSQualifiedName).Set("left", name).Set("right", right), start)
	}

	return name
}

func (p *parser) parseImportType() *ast.Node {
	start := p.tok.start
	p.expectName("import")
	p.expect("(")
	if p.tok.kind != tokString {
		p.failAt(p.tok.start, "module specifier expected, found %s", p.tok)
	}
	argument := p.parseString()
	p.expect(")")

	n := ast.New(ast.TSImportType).Set("argument", argument)
	if p.eat(".") {
		n.Set("qualifier", p.parseEntityName())
	}
	if p.is("<") && !p.tok.newlineBefore {
		n.Set("typeArguments", p.parseTypeArguments())
	}

	return p.finish(n, start)
}

func (p *parser) parseTupleType() *ast.Node {
	start := p.tok.start
	p.expect("[")

	elements := []*ast.Node{}
	p.withConditional(true, func() *ast.Node {
		for !p.is("]") {
			elements = append(elements, p.parseTupleElement())
			if !p.is("]") {
				p.expect(",")
			}
		}
		return nil
	})
	p.expect("]")

	return p.finish(ast.New(ast.TSTupleType).Set("elementTypes", elements), start)
}

func (p *parser) parseTupleElement() *ast.Node {
	start := p.tok.start
	rest := p.eat("...")

	var element *ast.Node
	if p.tok.kind == tokName && (peekIs(p.peek(), ":") || peekIs(p.peek(), "?") && p.namedTupleOptional()) {
		label := p.parseIdentifierName()
		member := ast.New(ast.TSNamedTupleMember).Set("label", label)
		if p.eat("?") {
			member.Set("optional", true)
		}
		p.expect(":")
		member.Set("elementType", p.parseType())
		element = p.finish(member, start)
		if rest {
			element.Range = p.buf.NewRange(label.Range.Start, element.Range.End)
		}
	} else {
		element = p.parseType()
		if !rest && p.is("?") {
			p.next()
			element = p.finish(ast.New(ast.TSOptionalType).Set("typeAnnotation", element), start)
		}
	}

	if rest {
		return p.finish(ast.New(ast.TSRestType).Set("typeAnnotation", element), start)
	}

	return element
}

// namedTupleOptional reports whether "name?" is followed by a colon.
func (p *parser) namedTupleOptional() bool {
	return p.lookahead(func() bool {
		p.next()
		p.next()
		return p.is(":")
	})
}

func (p *parser) isMappedTypeStart() bool {
	return p.lookahead(func() bool {
		p.expect("{")
		if p.is("+") || p.is("-") {
			p.next()
			if !p.isName("readonly") {
				return false
			}
		}
		p.eatName("readonly")
		if !p.eat("[") || p.tok.kind != tokName {
			return false
		}
		p.next()
		return p.isName("in")
	})
}

// mappedModifier reads an optional +/- prefix followed by word.
func (p *parser) mappedModifier(word string) string {
	switch {
	case p.is("+") || p.is("-"):
		sign := p.tok.value
		p.next()
		if word == "?" {
			p.expect("?")
		} else {
			p.expectName(word)
		}
		return sign
	case word == "?" && p.eat("?"):
		return "true"
	case word != "?" && p.eatName(word):
		return "true"
	default:
		return ""
	}
}

func (p *parser) parseMappedType() *ast.Node {
	start := p.tok.start
	p.expect("{")

	n := ast.New(ast.TSMappedType)
	if readonly := p.mappedModifier("readonly"); readonly != "" {
		n.Set("readonly", readonly)
	}

	p.expect("[")
	paramStart := p.tok.start
	name := p.parseIdentifierName().Str("name")
	p.expectName("in")
	constraint := p.withConditional(true, p.parseType)
	param := ast.New(ast.TSTypeParameter).Set("name", name).Set("constraint", constraint)
	n.Set("typeParameter", p.finish(param, paramStart))
	if p.eatName("as") {
		n.Set("nameType", p.withConditional(true, p.parseType))
	}
	p.expect("]")

	if optional := p.mappedModifier("?"); optional != "" {
		n.Set("optional", optional)
	}
	if p.eat(":") {
		n.Set("typeAnnotation", p.withConditional(true, p.parseType))
	}
	if !p.eat(";") {
		p.eat(",")
	}
	p.expect("}")

	return p.finish(n, start)
}

// parseTypeMembers parses the braced members of an interface or type
// literal.
func (p *parser) parseTypeMembers() []*ast.Node {
	p.expect("{")

	members := []*ast.Node{}
	p.withConditional(true, func() *ast.Node {
		for !p.is("}") {
			if p.tok.kind == tokEOF {
				p.failAt(p.tok.start, "'}' expected, found end of file")
			}

			member := p.parseTypeMember()
			if !p.eat(";") && !p.eat(",") && !p.is("}") && !p.tok.newlineBefore {
				p.failAt(p.tok.start, "';' expected, found %s", p.tok)
			}
			p.extend(member)
			members = append(members, member)
		}
		return nil
	})
	p.expect("}")

	return members
}

func (p *parser) parseTypeMember() *ast.Node {
	start := p.tok.start

	if p.is("(") || p.is("<") {
		n := ast.New(ast.TSCallSignatureDeclaration)
		p.parseMemberSignature(n)
		return p.finish(n, start)
	}
	if p.isName("new") && (peekIs(p.peek(), "(") || peekIs(p.peek(), "<")) {
		p.next()
		n := ast.New(ast.TSConstructSignatureDeclaration)
		p.parseMemberSignature(n)
		return p.finish(n, start)
	}

	readonly := false
	if p.isName("readonly") && p.modifierFollows() {
		p.next()
		readonly = true
	}

	if p.is("[") && p.isIndexSignature() {
		sig := p.parseIndexSignature(start)
		if readonly {
			sig.Set("readonly", true)
		}
		return sig
	}

	kind := "method"
	if (p.isName("get") || p.isName("set")) && p.modifierFollows() {
		kind = p.tok.value
		p.next()
	}

	key, computed := p.parsePropertyKey()
	optional := p.eat("?")

	if kind != "method" || p.is("(") || p.is("<") {
		n := ast.New(ast.TSMethodSignature).Set("kind", kind).Set("key", key)
		if computed {
			n.Set("computed", true)
		}
		if optional {
			n.Set("optional", true)
		}
		p.parseMemberSignature(n)
		return p.finish(n, start)
	}

	n := ast.New(ast.TSPropertySignature).Set("key", key)
	if readonly {
		n.Set("readonly", true)
	}
	if computed {
		n.Set("computed", true)
	}
	if optional {
		n.Set("optional", true)
	}
	if p.eat(":") {
		n.Set("typeAnnotation", p.parseType())
	}

	return p.finish(n, start)
}

// parseMemberSignature parses "<T>(params): R" into n.
func (p *parser) parseMemberSignature(n *ast.Node) {
	if p.is("<") {
		n.Set("typeParameters", p.parseTypeParameters())
	}
	n.Set("params", p.parseParams())
	if p.eat(":") {
		n.Set("returnType", p.parseTypeOrPredicate())
	}
}

func (p *parser) parseTypeParameters() []*ast.Node {
	p.expect("<")

	var params []*ast.Node
	for !p.is(">") {
		start := p.tok.start
		n := ast.New(ast.TSTypeParameter)
		for _, modifier := range []string{"const", "in", "out"} {
			if p.isName(modifier) && p.peek().kind == tokName {
				p.next()
				n.Set(modifier, true)
			}
		}

		n.Set("name", p.parseBindingIdentifier().Str("name"))
		if p.eatName("extends") {
			n.Set("constraint", p.withConditional(true, p.parseType))
		}
		if p.eat("=") {
			n.Set("default", p.withConditional(true, p.parseType))
		}
		params = append(params, p.finish(n, start))

		if !p.is(">") {
			p.expect(",")
		}
	}
	if len(params) == 0 {
		p.failAt(p.tok.start, "type parameter list cannot be empty")
	}
	p.expect(">")

	return params
}

func (p *parser) parseTypeArguments() []*ast.Node {
	p.expect("<")

	var args []*ast.Node
	p.withConditional(true, func() *ast.Node {
		for !p.is(">") {
			args = append(args, p.parseType())
			if !p.is(">") {
				p.expect(",")
			}
		}
		return nil
	})
	if len(args) == 0 {
		p.failAt(p.tok.start, "type argument list cannot be empty")
	}
	p.expect(">")

	return args
}
