package printer

import (
	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/lines"
)

//nolint:gochecknoinits // Built-in rules register themselves.
func init() {
	registerAll(map[ast.Kind]Rule{
		ast.FunctionDeclaration:     printFunction,
		ast.FunctionExpression:      printFunction,
		ast.TSDeclareFunction:       printFunction,
		ast.ArrowFunctionExpression: printArrow,
		ast.ObjectMethod:            printMethod,
		ast.ClassMethod:             printMethod,
		ast.TSDeclareMethod:         printMethod,
		ast.ClassDeclaration:        printClass,
		ast.ClassExpression:         printClass,
		ast.ClassBody:               printClassBody,
		ast.ClassProperty:           printClassProperty,
		ast.TSIndexSignature:        printIndexSignature,
		ast.TSParameterProperty:     printParameterProperty,
	})
}

// Signature prints type parameters, parameters and return type.
func (c *Context) Signature(n *ast.Node) lines.Lines {
	return concat(c.TypeParams(n), c.Params(n), c.Annotation(n, "returnType"))
}

func printFunction(c *Context, n *ast.Node) lines.Lines {
	head := concat(
		when(n.Bool("declare"), "declare "),
		when(n.Bool("async"), "async "),
		text("function"),
		when(n.Bool("generator"), "*"),
		prefixed(" ", c.Field(n, "id")),
		c.Signature(n),
	)

	if n.Is(ast.TSDeclareFunction) {
		return concat(head, text(";"))
	}

	return concat(head, text(" "), c.Field(n, "body"))
}

func printArrow(c *Context, n *ast.Node) lines.Lines {
	var params lines.Lines
	if bareArrowParam(n) {
		params = c.List(n, "params")[0]
	} else {
		params = c.Signature(n)
	}

	return concat(when(n.Bool("async"), "async "), params, text(" => "), c.Field(n, "body"))
}

func bareArrowParam(n *ast.Node) bool {
	params := n.List("params")
	if len(params) != 1 || len(n.List("typeParameters")) > 0 || n.Child("returnType") != nil {
		return false
	}

	param := params[0]

	return param.Is(ast.Identifier) && !param.Bool("optional") && param.Child("typeAnnotation") == nil &&
		len(param.List("decorators")) == 0 && len(param.Comments) == 0
}

func printMethod(c *Context, n *ast.Node) lines.Lines {
	kind := n.Str("kind")

	out := concat(
		c.Decorators(n, false),
		c.Modifiers(n),
		when(n.Bool("async"), "async "),
		when(n.Bool("generator"), "*"),
		when(kind == "get" || kind == "set", kind+" "),
		c.Key(n),
		when(n.Bool("optional"), "?"),
		c.Signature(n),
	)

	if n.Is(ast.TSDeclareMethod) {
		return concat(out, text(";"))
	}

	return concat(out, text(" "), c.Field(n, "body"))
}

func printClass(c *Context, n *ast.Node) lines.Lines {
	parts := []lines.Lines{
		c.Decorators(n, false),
		when(n.Bool("declare"), "declare "),
		when(n.Bool("abstract"), "abstract "),
		text("class"),
		prefixed(" ", c.Field(n, "id")),
		c.TypeParams(n),
	}

	if n.Child("superClass") != nil {
		parts = append(parts, text(" extends "), c.Field(n, "superClass"), c.TypeArgs(n, "superTypeArguments"))
	}
	if len(n.List("implements")) > 0 {
		parts = append(parts, text(" implements "), join(", ", c.List(n, "implements")))
	}

	parts = append(parts, text(" "), c.Field(n, "body"))

	return concat(parts...)
}

func printClassBody(c *Context, n *ast.Node) lines.Lines {
	return c.Block(c.Statements(n, "body"))
}

func printClassProperty(c *Context, n *ast.Node) lines.Lines {
	out := concat(
		c.Decorators(n, false),
		c.Modifiers(n),
		c.Key(n),
		when(n.Bool("optional"), "?"),
		when(n.Bool("definite"), "!"),
		c.Annotation(n, "typeAnnotation"),
	)
	if n.Child("value") != nil {
		out = concat(out, text(" = "), c.Field(n, "value"))
	}

	return concat(out, text(";"))
}

func printIndexSignature(c *Context, n *ast.Node) lines.Lines {
	out := concat(
		when(n.Bool("static"), "static "),
		when(n.Bool("readonly"), "readonly "),
		text("["), join(", ", c.List(n, "params")), text("]"),
		c.Annotation(n, "typeAnnotation"),
	)
	if c.Parent().Node.Is(ast.ClassBody) {
		out = concat(out, text(";"))
	}

	return out
}

func printParameterProperty(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Decorators(n, true), c.Modifiers(n), c.Field(n, "parameter"))
}
