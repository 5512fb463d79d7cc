package typescript

import (
	"github.com/yaklabco/tsreprint/pkg/ast"
)

func (p *parser) parseBindingIdentifier() *ast.Node {
	if p.tok.kind != tokName {
		p.failAt(p.tok.start, "identifier expected, found %s", p.tok)
	}
	if reservedWords[p.tok.value] && !p.tok.escaped {
		p.failAt(p.tok.start, "unexpected keyword '%s'", p.tok.value)
	}

	return p.parseIdentifierName()
}

// parseBindingTarget parses an identifier or a destructuring pattern.
func (p *parser) parseBindingTarget() *ast.Node {
	switch {
	case p.is("{"):
		return p.parseObjectPattern()
	case p.is("["):
		return p.parseArrayPattern()
	default:
		return p.parseBindingIdentifier()
	}
}

// parseBindingElement parses a binding target with an optional default.
func (p *parser) parseBindingElement() *ast.Node {
	start := p.tok.start
	target := p.parseBindingTarget()
	if !p.eat("=") {
		return target
	}

	def := p.withIn(p.parseAssign)

	return p.finish(ast.New(ast.AssignmentPattern).Set("left", target).Set("right", def), start)
}

func (p *parser) parseObjectPattern() *ast.Node {
	start := p.tok.start
	p.expect("{")

	properties := []*ast.Node{}
	for !p.is("}") {
		propStart := p.tok.start

		if p.eat("...") {
			arg := p.parseBindingIdentifier()
			properties = append(properties, p.finish(ast.New(ast.RestElement).Set("argument", arg), propStart))
			if !p.is("}") {
				p.failAt(p.tok.start, "rest element must be last")
			}
			break
		}

		key, computed := p.parsePropertyKey()
		prop := ast.New(ast.ObjectProperty).Set("key", key)
		if computed {
			prop.Set("computed", true)
		}

		switch {
		case p.eat(":"):
			prop.Set("value", p.parseBindingElement())
		case !computed && key.Is(ast.Identifier):
			value := ast.NewIdentifier(key.Str("name"))
			value.Range = key.Range
			if p.eat("=") {
				def := p.withIn(p.parseAssign)
				value = p.finish(ast.New(ast.AssignmentPattern).Set("left", value).Set("right", def), propStart)
			}
			prop.Set("shorthand", true).Set("value", value)
		default:
			p.failAt(p.tok.start, "':' expected, found %s", p.tok)
		}
		properties = append(properties, p.finish(prop, propStart))

		if !p.is("}") {
			p.expect(",")
		}
	}
	p.expect("}")

	return p.finish(ast.New(ast.ObjectPattern).Set("properties", properties), start)
}

func (p *parser) parseArrayPattern() *ast.Node {
	start := p.tok.start
	p.expect("[")

	elements := []*ast.Node{}
	for !p.is("]") {
		if p.eat(",") {
			elements = append(elements, nil)
			continue
		}

		elemStart := p.tok.start
		if p.eat("...") {
			arg := p.parseBindingTarget()
			elements = append(elements, p.finish(ast.New(ast.RestElement).Set("argument", arg), elemStart))
		} else {
			elements = append(elements, p.parseBindingElement())
		}

		if !p.is("]") {
			p.expect(",")
		}
	}
	p.expect("]")

	return p.finish(ast.New(ast.ArrayPattern).Set("elements", elements), start)
}

// Parameters.

func (p *parser) parseParams() []*ast.Node {
	p.expect("(")

	params := []*ast.Node{}
	for !p.is(")") {
		params = append(params, p.parseParam())
		if !p.is(")") {
			p.expect(",")
		}
	}
	p.expect(")")

	return params
}

var accessibilityWords = map[string]bool{"public": true, "private": true, "protected": true}

// modifierFollows reports whether the word at the current token is used
// as a modifier, that is, another member or parameter name follows it.
func (p *parser) modifierFollows() bool {
	next := p.peek()
	if next.newlineBefore {
		return false
	}

	switch next.kind {
	case tokName, tokString, tokNumber, tokPrivateName:
		return true
	case tokPunct:
		return next.value == "[" || next.value == "{" || next.value == "*" || next.value == "..."
	default:
		return false
	}
}

func (p *parser) parseParam() *ast.Node {
	start := p.tok.start

	var decorators []*ast.Node
	if p.is("@") {
		decorators = p.parseDecorators()
	}

	var property *ast.Node
	for p.typescript() && p.tok.kind == tokName && !p.tok.escaped && p.modifierFollows() {
		word := p.tok.value
		if !accessibilityWords[word] && word != "readonly" && word != "override" {
			break
		}
		if property == nil {
			property = ast.New(ast.TSParameterProperty)
		}
		if accessibilityWords[word] {
			property.Set("accessibility", word)
		} else {
			property.Set(word, true)
		}
		p.next()
	}

	paramStart := p.tok.start
	var param *ast.Node
	if p.eat("...") {
		arg := p.parseBindingTarget()
		param = ast.New(ast.RestElement).Set("argument", arg)
		p.parseParamSuffix(param)
		param = p.finish(param, paramStart)
	} else {
		var target *ast.Node
		if p.isName("this") {
			target = p.parseIdentifierName()
		} else {
			target = p.parseBindingTarget()
		}
		p.parseParamSuffix(target)
		p.extend(target)

		param = target
		if p.eat("=") {
			def := p.withIn(p.parseAssign)
			param = p.finish(ast.New(ast.AssignmentPattern).Set("left", target).Set("right", def), paramStart)
		}
	}

	if property != nil {
		property.Set("parameter", param).Set("decorators", decorators)
		return p.finish(property, start)
	}
	if decorators != nil {
		param.Set("decorators", decorators)
		param.Range = p.buf.NewRange(start, param.Range.End)
	}

	return param
}

// parseParamSuffix parses the optional marker and annotation of a
// parameter.
func (p *parser) parseParamSuffix(param *ast.Node) {
	if p.is("?") {
		p.requireTypeScript("optional parameters")
		p.next()
		param.Set("optional", true)
	}
	if p.is(":") {
		p.requireTypeScript("type annotations")
		p.next()
		param.Set("typeAnnotation", p.parseType())
	}
}

// parseReturnType parses ": T" after a parameter list, including type
// predicates.
func (p *parser) parseReturnType() *ast.Node {
	p.requireTypeScript("return types")
	p.expect(":")

	return p.parseTypeOrPredicate()
}

func (p *parser) parseTypeOrPredicate() *ast.Node {
	start := p.tok.start

	if p.isName("asserts") {
		next := p.peek()
		if (next.kind == tokName) && !next.newlineBefore {
			p.next()
			n := ast.New(ast.TSTypePredicate).Set("asserts", true).Set("parameterName", p.parsePredicateName())
			if p.eatName("is") {
				n.Set("typeAnnotation", p.parseType())
			}
			return p.finish(n, start)
		}
	}

	if p.tok.kind == tokName {
		next := p.peek()
		if peekName(next, "is") && !next.newlineBefore {
			name := p.parsePredicateName()
			p.next()
			typ := p.parseType()
			return p.finish(ast.New(ast.TSTypePredicate).Set("parameterName", name).Set("typeAnnotation", typ), start)
		}
	}

	return p.parseType()
}

func (p *parser) parsePredicateName() *ast.Node {
	if p.isName("this") {
		start := p.tok.start
		p.next()
		return p.finish(ast.New(ast.TSThisType), start)
	}

	return p.parseIdentifierName()
}

// Functions.

// parseFunction parses a function declaration or expression starting at
// the function keyword. Declarations without a body become
// TSDeclareFunction nodes.
func (p *parser) parseFunction(start int, isAsync, declare, expression bool) *ast.Node {
	p.expectName("function")
	generator := p.eat("*")

	kind := ast.FunctionDeclaration
	if expression {
		kind = ast.FunctionExpression
	}
	n := ast.New(kind)
	if declare {
		n.Set("declare", true)
	}
	if isAsync {
		n.Set("async", true)
	}
	if generator {
		n.Set("generator", true)
	}

	if p.tok.kind == tokName && !p.is("(") {
		n.Set("id", p.parseBindingIdentifier())
	} else if !expression && !p.is("(") && !p.is("<") {
		p.failAt(p.tok.start, "function name expected, found %s", p.tok)
	}

	p.parseFunctionRest(n, isAsync, generator, !expression)
	if n.Child("body") == nil {
		n.Kind = ast.TSDeclareFunction
		p.semicolon()
	}

	return p.finish(n, start)
}

// parseFunctionRest parses type parameters, parameters, return type and
// body into n. When bodyOptional is set and no body follows, n is left
// without one.
func (p *parser) parseFunctionRest(n *ast.Node, isAsync, generator, bodyOptional bool) {
	inner := scope{inFunction: true, inAsync: isAsync, inGenerator: generator}

	p.withScope(inner, func() {
		if p.is("<") {
			p.requireTypeScript("type parameters")
			n.Set("typeParameters", p.parseTypeParameters())
		}
		n.Set("params", p.parseParams())
		if p.is(":") {
			n.Set("returnType", p.parseReturnType())
		}

		if bodyOptional && !p.is("{") && p.typescript() {
			return
		}
		n.Set("body", p.parseBlock())
	})
}

// Decorators and classes.

func (p *parser) parseDecorators() []*ast.Node {
	var decorators []*ast.Node
	for p.is("@") {
		start := p.tok.start
		p.next()

		var expr *ast.Node
		if p.is("(") {
			expr = p.parsePrimary()
		} else {
			exprStart := p.tok.start
			expr = p.parseIdentifierReference()
			for p.eat(".") {
				property := p.parsePropertyName()
				expr = p.finish(ast.New(ast.MemberExpression).Set("object", expr).Set("property", property), exprStart)
			}
			if p.is("(") {
				args := p.parseArguments()
				expr = p.finish(ast.New(ast.CallExpression).Set("callee", expr).Set("arguments", args), exprStart)
			}
		}

		decorators = append(decorators, p.finish(ast.New(ast.Decorator).Set("expression", expr), start))
	}

	return decorators
}

// parseDecorated parses a statement that starts with decorators: a class,
// possibly exported.
func (p *parser) parseDecorated(start int) *ast.Node {
	decorators := p.parseDecorators()

	switch {
	case p.isName("export"):
		return p.parseExport(start, decorators)
	case p.isName("class"):
		return p.parseClass(start, decorators, true, false, false)
	case p.isName("abstract") && peekName(p.peek(), "class"):
		p.next()
		return p.parseClass(start, decorators, true, false, true)
	}

	p.failAt(p.tok.start, "decorators must precede a class, found %s", p.tok)

	return nil
}

// parseClass parses a class starting at the class keyword. The range of
// the result starts at start, which covers any decorators and modifiers
// already consumed.
func (p *parser) parseClass(start int, decorators []*ast.Node, declaration, declare, abstract bool) *ast.Node {
	p.expectName("class")

	kind := ast.ClassExpression
	if declaration {
		kind = ast.ClassDeclaration
	}
	n := ast.New(kind).Set("decorators", decorators)
	if declare {
		n.Set("declare", true)
	}
	if abstract {
		n.Set("abstract", true)
	}

	if p.tok.kind == tokName && !p.isName("extends") && !p.isName("implements") {
		n.Set("id", p.parseBindingIdentifier())
	}
	if p.is("<") {
		p.requireTypeScript("type parameters")
		n.Set("typeParameters", p.parseTypeParameters())
	}
	if p.eatName("extends") {
		n.Set("superClass", p.parseLeftHandSide())
		if p.is("<") && p.typescript() {
			n.Set("superTypeArguments", p.parseTypeArguments())
		}
	}
	if p.eatName("implements") {
		p.requireTypeScript("implements clauses")
		n.Set("implements", p.parseHeritageList())
	}

	n.Set("body", p.parseClassBody())

	return p.finish(n, start)
}

// parseHeritageList parses a comma-separated list of type names with
// optional type arguments, as used by implements and interface extends.
func (p *parser) parseHeritageList() []*ast.Node {
	var list []*ast.Node
	for {
		start := p.tok.start
		expr := p.parseEntityName()
		n := ast.New(ast.TSExpressionWithTypeArguments).Set("expression", expr)
		if p.is("<") {
			n.Set("typeArguments", p.parseTypeArguments())
		}
		list = append(list, p.finish(n, start))

		if !p.eat(",") {
			return list
		}
	}
}

func (p *parser) parseClassBody() *ast.Node {
	start := p.tok.start
	p.expect("{")

	body := []*ast.Node{}
	for !p.is("}") {
		if p.eat(";") {
			continue
		}
		if p.tok.kind == tokEOF {
			p.failAt(p.tok.start, "'}' expected, found end of file")
		}
		body = append(body, p.parseClassMember())
	}
	p.expect("}")

	return p.finish(ast.New(ast.ClassBody).Set("body", body), start)
}

var classModifiers = map[string]bool{
	"declare": true, "public": true, "private": true, "protected": true,
	"static": true, "abstract": true, "override": true, "readonly": true,
}

func (p *parser) parseClassMember() *ast.Node {
	start := p.tok.start

	var decorators []*ast.Node
	if p.is("@") {
		decorators = p.parseDecorators()
	}

	member := ast.New(ast.ClassProperty)
	for p.tok.kind == tokName && !p.tok.escaped && classModifiers[p.tok.value] && p.modifierFollows() {
		word := p.tok.value
		if word == "static" && peekIs(p.peek(), "{") {
			break
		}
		if word != "static" {
			p.requireTypeScript("'" + word + "' modifiers")
		}
		if accessibilityWords[word] {
			member.Set("accessibility", word)
		} else {
			member.Set(word, true)
		}
		p.next()
	}

	if p.isName("static") && peekIs(p.peek(), "{") && decorators == nil {
		p.next()
		body := p.withScopeResult(scope{inFunction: true}, p.parseBraced)
		return p.finish(ast.New(ast.StaticBlock).Set("body", body), start)
	}

	if p.is("[") && p.typescript() && p.isIndexSignature() {
		sig := p.parseIndexSignature(start)
		if member.Bool("static") {
			sig.Set("static", true)
		}
		if member.Bool("readonly") {
			sig.Set("readonly", true)
		}
		p.eat(";")
		p.extend(sig)
		return sig
	}

	isAsync := false
	if p.isName("async") && p.modifierFollows() && !peekIs(p.peek(), "{") {
		p.next()
		isAsync = true
	}
	generator := p.eat("*")

	kind := ""
	if !isAsync && !generator && (p.isName("get") || p.isName("set")) && p.modifierFollows() && !peekIs(p.peek(), "{") {
		kind = p.tok.value
		p.next()
	}

	key, computed := p.parsePropertyKey()
	member.Set("decorators", decorators).Set("key", key)
	if computed {
		member.Set("computed", true)
	}
	if p.is("?") {
		p.requireTypeScript("optional members")
		p.next()
		member.Set("optional", true)
	}

	if isAsync || generator || kind != "" || p.is("(") || p.is("<") {
		if kind == "" {
			kind = "method"
			if !computed && key.Is(ast.Identifier) && key.Str("name") == "constructor" {
				kind = "constructor"
			}
		}
		member.Kind = ast.ClassMethod
		member.Set("kind", kind)
		if isAsync {
			member.Set("async", true)
		}
		if generator {
			member.Set("generator", true)
		}
		if member.Bool("readonly") {
			p.failAt(key.Range.Start, "methods cannot be readonly")
		}

		p.parseFunctionRest(member, isAsync, generator, true)
		if member.Child("body") == nil {
			member.Kind = ast.TSDeclareMethod
			p.semicolon()
		}
		return p.finish(member, start)
	}

	if p.is("!") && p.typescript() {
		p.next()
		member.Set("definite", true)
	}
	if p.is(":") {
		p.requireTypeScript("type annotations")
		p.next()
		member.Set("typeAnnotation", p.parseType())
	}
	if p.eat("=") {
		var value *ast.Node
		p.withScope(scope{inFunction: true}, func() {
			value = p.parseAssign()
		})
		member.Set("value", value)
	}
	p.semicolon()

	return p.finish(member, start)
}

func (p *parser) withScopeResult(inner scope, fn func() []*ast.Node) []*ast.Node {
	var out []*ast.Node
	p.withScope(inner, func() { out = fn() })

	return out
}

// isIndexSignature looks past [ for "name:" which only an index signature
// can start with.
func (p *parser) isIndexSignature() bool {
	return p.lookahead(func() bool {
		p.next()
		if p.tok.kind != tokName {
			return false
		}
		p.next()
		return p.is(":")
	})
}

func (p *parser) parseIndexSignature(start int) *ast.Node {
	p.expect("[")

	var params []*ast.Node
	for !p.is("]") {
		paramStart := p.tok.start
		name := p.parseIdentifierName()
		p.expect(":")
		name.Set("typeAnnotation", p.parseType())
		params = append(params, p.finish(name, paramStart))
		if !p.is("]") {
			p.expect(",")
		}
	}
	p.expect("]")

	n := ast.New(ast.TSIndexSignature).Set("params", params)
	if p.is(":") {
		p.next()
		n.Set("typeAnnotation", p.parseType())
	}

	return p.finish(n, start)
}
