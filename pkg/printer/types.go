package printer

import (
	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/lines"
)

//nolint:gochecknoinits // Built-in rules register themselves.
func init() {
	registerAll(map[ast.Kind]Rule{
		ast.TSTypeAliasDeclaration:          printTypeAlias,
		ast.TSInterfaceDeclaration:          printInterface,
		ast.TSInterfaceBody:                 printInterfaceBody,
		ast.TSEnumDeclaration:               printEnum,
		ast.TSEnumMember:                    printEnumMember,
		ast.TSModuleDeclaration:             printModuleDeclaration,
		ast.TSModuleBlock:                   printModuleBlock,
		ast.TSTypeReference:                 printTypeReference,
		ast.TSQualifiedName:                 printQualifiedName,
		ast.TSKeywordType:                   printKeywordType,
		ast.TSThisType:                      printKeyword("this"),
		ast.TSArrayType:                     printArrayType,
		ast.TSTupleType:                     printTupleType,
		ast.TSNamedTupleMember:              printNamedTupleMember,
		ast.TSOptionalType:                  printOptionalType,
		ast.TSRestType:                      printRestType,
		ast.TSUnionType:                     printTypeList(" | "),
		ast.TSIntersectionType:              printTypeList(" & "),
		ast.TSLiteralType:                   printLiteralType,
		ast.TSFunctionType:                  printFunctionType,
		ast.TSConstructorType:               printFunctionType,
		ast.TSTypeLiteral:                   printTypeLiteral,
		ast.TSPropertySignature:             printPropertySignature,
		ast.TSMethodSignature:               printMethodSignature,
		ast.TSCallSignatureDeclaration:      printCallSignature,
		ast.TSConstructSignatureDeclaration: printConstructSignature,
		ast.TSMappedType:                    printMappedType,
		ast.TSIndexedAccessType:             printIndexedAccessType,
		ast.TSTypeOperator:                  printTypeOperator,
		ast.TSTypeQuery:                     printTypeQuery,
		ast.TSConditionalType:               printConditionalType,
		ast.TSInferType:                     printInferType,
		ast.TSTypePredicate:                 printTypePredicate,
		ast.TSTypeParameter:                 printTypeParameter,
		ast.TSExpressionWithTypeArguments:   printExpressionWithTypeArguments,
		ast.TSImportType:                    printImportType,
	})
}

func printTypeAlias(c *Context, n *ast.Node) lines.Lines {
	return concat(
		when(n.Bool("declare"), "declare "),
		text("type "), c.Field(n, "id"), c.TypeParams(n),
		text(" = "), c.Field(n, "typeAnnotation"), text(";"),
	)
}

func printInterface(c *Context, n *ast.Node) lines.Lines {
	out := concat(
		when(n.Bool("declare"), "declare "),
		text("interface "), c.Field(n, "id"), c.TypeParams(n),
	)
	if len(n.List("extends")) > 0 {
		out = concat(out, text(" extends "), join(", ", c.List(n, "extends")))
	}

	return concat(out, text(" "), c.Field(n, "body"))
}

func printInterfaceBody(c *Context, n *ast.Node) lines.Lines {
	return c.Block(c.Members(n, "body", ";", true))
}

func printEnum(c *Context, n *ast.Node) lines.Lines {
	return concat(
		when(n.Bool("declare"), "declare "),
		when(n.Bool("const"), "const "),
		text("enum "), c.Field(n, "id"), text(" "),
		c.Block(c.Members(n, "members", ",", c.opts.TrailingComma)),
	)
}

func printEnumMember(c *Context, n *ast.Node) lines.Lines {
	out := c.Field(n, "id")
	if n.Child("initializer") != nil {
		out = concat(out, text(" = "), c.Field(n, "initializer"))
	}

	return out
}

func printModuleDeclaration(c *Context, n *ast.Node) lines.Lines {
	parent := c.Parent()
	nested := parent.Node.Is(ast.TSModuleDeclaration) && parent.Field == "body"

	var out lines.Lines
	if !nested {
		kind := n.Str("kind")
		if kind == "" {
			kind = "namespace"
		}

		out = when(n.Bool("declare"), "declare ")
		if kind != "global" {
			out = concat(out, text(kind+" "))
		}
	}
	out = concat(out, c.Field(n, "id"))

	body := n.Child("body")
	switch {
	case body == nil:
		return concat(out, text(";"))
	case body.Is(ast.TSModuleDeclaration):
		return concat(out, text("."), c.Field(n, "body"))
	default:
		return concat(out, text(" "), c.Field(n, "body"))
	}
}

func printModuleBlock(c *Context, n *ast.Node) lines.Lines {
	return c.Block(c.Statements(n, "body"))
}

func printTypeReference(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Field(n, "typeName"), c.TypeArgs(n, "typeArguments"))
}

func printQualifiedName(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Field(n, "left"), text("."), c.Field(n, "right"))
}

func printKeywordType(_ *Context, n *ast.Node) lines.Lines {
	return text(n.Str("name"))
}

func printArrayType(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Field(n, "elementType"), text("[]"))
}

func printTupleType(c *Context, n *ast.Node) lines.Lines {
	return c.Wrapped("[", "]", c.List(n, "elementTypes"), false)
}

func printNamedTupleMember(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Field(n, "label"), when(n.Bool("optional"), "?"), text(": "), c.Field(n, "elementType"))
}

func printOptionalType(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Field(n, "typeAnnotation"), text("?"))
}

func printRestType(c *Context, n *ast.Node) lines.Lines {
	return concat(text("..."), c.Field(n, "typeAnnotation"))
}

func printTypeList(sep string) Rule {
	return func(c *Context, n *ast.Node) lines.Lines {
		return join(sep, c.List(n, "types"))
	}
}

func printLiteralType(c *Context, n *ast.Node) lines.Lines {
	return c.Field(n, "literal")
}

func printFunctionType(c *Context, n *ast.Node) lines.Lines {
	var head lines.Lines
	if n.Is(ast.TSConstructorType) {
		head = concat(when(n.Bool("abstract"), "abstract "), text("new "))
	}

	return concat(head, c.TypeParams(n), c.Params(n), text(" => "), c.Field(n, "returnType"))
}

func printTypeLiteral(c *Context, n *ast.Node) lines.Lines {
	return c.Block(c.Members(n, "members", ",", false))
}

func printPropertySignature(c *Context, n *ast.Node) lines.Lines {
	return concat(
		when(n.Bool("readonly"), "readonly "),
		c.Key(n), when(n.Bool("optional"), "?"),
		c.Annotation(n, "typeAnnotation"),
	)
}

func printMethodSignature(c *Context, n *ast.Node) lines.Lines {
	kind := n.Str("kind")

	return concat(
		when(kind == "get" || kind == "set", kind+" "),
		c.Key(n), when(n.Bool("optional"), "?"),
		c.Signature(n),
	)
}

func printCallSignature(c *Context, n *ast.Node) lines.Lines {
	return c.Signature(n)
}

func printConstructSignature(c *Context, n *ast.Node) lines.Lines {
	return concat(text("new"), c.Signature(n))
}

func modifierToken(value, word string) string {
	switch value {
	case "":
		return ""
	case "+", "-":
		return value + word
	default:
		return word
	}
}

func printMappedType(c *Context, n *ast.Node) lines.Lines {
	param := n.Child("typeParameter")

	readonly := modifierToken(n.Str("readonly"), "readonly")
	if readonly != "" {
		readonly += " "
	}

	member := concat(
		text(readonly+"["),
		text(param.Str("name")), text(" in "),
		c.Print(param, "constraint", -1, param.Child("constraint")),
	)
	if n.Child("nameType") != nil {
		member = concat(member, text(" as "), c.Field(n, "nameType"))
	}
	member = concat(member, text("]"), text(modifierToken(n.Str("optional"), "?")))
	if n.Child("typeAnnotation") != nil {
		member = concat(member, text(": "), c.Field(n, "typeAnnotation"))
	}

	return c.Block(concat(member, text(";")))
}

func printIndexedAccessType(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Field(n, "objectType"), text("["), c.Field(n, "indexType"), text("]"))
}

func printTypeOperator(c *Context, n *ast.Node) lines.Lines {
	return concat(text(n.Str("operator")+" "), c.Field(n, "typeAnnotation"))
}

func printTypeQuery(c *Context, n *ast.Node) lines.Lines {
	return concat(text("typeof "), c.Field(n, "exprName"), c.TypeArgs(n, "typeArguments"))
}

func printConditionalType(c *Context, n *ast.Node) lines.Lines {
	return concat(
		c.Field(n, "checkType"), text(" extends "), c.Field(n, "extendsType"),
		text(" ? "), c.Field(n, "trueType"),
		text(" : "), c.Field(n, "falseType"),
	)
}

func printInferType(c *Context, n *ast.Node) lines.Lines {
	return concat(text("infer "), c.Field(n, "typeParameter"))
}

func printTypePredicate(c *Context, n *ast.Node) lines.Lines {
	out := concat(when(n.Bool("asserts"), "asserts "), c.Field(n, "parameterName"))
	if n.Child("typeAnnotation") != nil {
		out = concat(out, text(" is "), c.Field(n, "typeAnnotation"))
	}

	return out
}

func printTypeParameter(c *Context, n *ast.Node) lines.Lines {
	out := concat(
		when(n.Bool("const"), "const "),
		when(n.Bool("in"), "in "),
		when(n.Bool("out"), "out "),
		text(n.Str("name")),
	)
	if n.Child("constraint") != nil {
		out = concat(out, text(" extends "), c.Field(n, "constraint"))
	}
	if n.Child("default") != nil {
		out = concat(out, text(" = "), c.Field(n, "default"))
	}

	return out
}

func printExpressionWithTypeArguments(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Field(n, "expression"), c.TypeArgs(n, "typeArguments"))
}

func printImportType(c *Context, n *ast.Node) lines.Lines {
	out := concat(text("import("), c.Field(n, "argument"), text(")"))
	if n.Child("qualifier") != nil {
		out = concat(out, text("."), c.Field(n, "qualifier"))
	}

	return concat(out, c.TypeArgs(n, "typeArguments"))
}
