package printer

import (
	"math"
	"strings"

	"github.com/yaklabco/tsreprint/internal/jsstr"
	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/lines"
)

//nolint:gochecknoinits // Built-in rules register themselves.
func init() {
	registerAll(map[ast.Kind]Rule{
		ast.Identifier:               printIdentifier,
		ast.PrivateName:              printPrivateName,
		ast.StringLiteral:            printStringLiteral,
		ast.NumericLiteral:           printNumericLiteral,
		ast.BigIntLiteral:            printBigInt,
		ast.BooleanLiteral:           printBoolean,
		ast.NullLiteral:              printKeyword("null"),
		ast.RegExpLiteral:            printRegExp,
		ast.TemplateLiteral:          printTemplate,
		ast.TemplateElement:          printTemplateElement,
		ast.TaggedTemplateExpression: printTaggedTemplate,
		ast.ThisExpression:           printKeyword("this"),
		ast.Super:                    printKeyword("super"),
		ast.Import:                   printKeyword("import"),
		ast.MetaProperty:             printMetaProperty,
		ast.ArrayExpression:          printArray,
		ast.ObjectExpression:         printObject,
		ast.ObjectProperty:           printProperty,
		ast.SpreadElement:            printSpread,
		ast.UnaryExpression:          printUnary,
		ast.UpdateExpression:         printUpdate,
		ast.BinaryExpression:         printBinary,
		ast.LogicalExpression:        printBinary,
		ast.AssignmentExpression:     printBinary,
		ast.ConditionalExpression:    printConditional,
		ast.CallExpression:           printCall,
		ast.OptionalCallExpression:   printCall,
		ast.NewExpression:            printNew,
		ast.MemberExpression:         printMember,
		ast.OptionalMemberExpression: printMember,
		ast.SequenceExpression:       printSequence,
		ast.YieldExpression:          printYield,
		ast.AwaitExpression:          printAwait,
		ast.TSAsExpression:           printAs("as"),
		ast.TSSatisfiesExpression:    printAs("satisfies"),
		ast.TSTypeAssertion:          printTypeAssertion,
		ast.TSNonNullExpression:      printNonNull,
		ast.ObjectPattern:            printObjectPattern,
		ast.ArrayPattern:             printArrayPattern,
		ast.RestElement:              printRest,
		ast.AssignmentPattern:        printAssignmentPattern,
		ast.Decorator:                printDecorator,
	})
}

func printIdentifier(c *Context, n *ast.Node) lines.Lines {
	parent := c.Parent()
	definite := parent.Node.Is(ast.VariableDeclarator) && parent.Field == "id" && parent.Node.Bool("definite")

	return concat(
		c.Decorators(n, true),
		text(n.Str("name")),
		when(n.Bool("optional"), "?"),
		when(definite, "!"),
		c.Annotation(n, "typeAnnotation"),
	)
}

func printPrivateName(_ *Context, n *ast.Node) lines.Lines {
	return text("#" + n.Str("name"))
}

func printStringLiteral(c *Context, n *ast.Node) lines.Lines {
	value := n.Str("value")
	if raw := n.Str("raw"); raw != "" {
		if decoded, err := jsstr.Unquote(raw); err == nil && decoded == value {
			return lines.Verbatim(raw)
		}
	}

	return text(jsstr.Quote(value, c.quoteFor(value)))
}

func (c *Context) quoteFor(value string) byte {
	switch c.opts.Quote {
	case QuoteSingle:
		return '\''
	case QuoteAuto:
		if strings.Count(value, `"`) > strings.Count(value, "'") {
			return '\''
		}
		return '"'
	default:
		return '"'
	}
}

func printNumericLiteral(_ *Context, n *ast.Node) lines.Lines {
	value := n.Num("value")
	if raw := n.Str("raw"); raw != "" {
		if parsed, ok := jsstr.ParseNumber(raw); ok && parsed == value {
			return text(raw)
		}
	}

	switch {
	case math.IsNaN(value):
		return text("NaN")
	case math.IsInf(value, 1):
		return text("Infinity")
	case math.IsInf(value, -1):
		return text("-Infinity")
	default:
		return text(ast.NumberRaw(value))
	}
}

func printBigInt(_ *Context, n *ast.Node) lines.Lines {
	return text(n.Str("value") + "n")
}

func printBoolean(_ *Context, n *ast.Node) lines.Lines {
	if n.Bool("value") {
		return text("true")
	}

	return text("false")
}

func printRegExp(_ *Context, n *ast.Node) lines.Lines {
	return text("/" + n.Str("pattern") + "/" + n.Str("flags"))
}

func printTemplate(c *Context, n *ast.Node) lines.Lines {
	quasis := c.List(n, "quasis")
	expressions := c.List(n, "expressions")

	parts := []lines.Lines{text("`")}
	for idx, quasi := range quasis {
		parts = append(parts, quasi)
		if idx < len(expressions) {
			parts = append(parts, text("${"), expressions[idx], text("}"))
		}
	}
	parts = append(parts, text("`"))

	return concat(parts...)
}

func printTemplateElement(_ *Context, n *ast.Node) lines.Lines {
	return lines.Verbatim(n.Str("raw"))
}

func printTaggedTemplate(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Field(n, "tag"), c.TypeArgs(n, "typeArguments"), c.Field(n, "quasi"))
}

func printMetaProperty(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Field(n, "meta"), text("."), c.Field(n, "property"))
}

// Elements prints an array literal or pattern body. Holes print empty and a
// trailing hole keeps its comma.
func (c *Context) Elements(n *ast.Node) lines.Lines {
	elements := n.List("elements")
	items := c.List(n, "elements")
	if len(items) == 0 {
		if c.HasDangling(n) {
			return c.Enclose("[", "]", c.Dangling(n))
		}
		return text("[]")
	}

	trailingHole := elements[len(elements)-1] == nil

	oneLine := join(", ", items)
	if !oneLine.IsMultiline() && !oneLine.LastLineComment() && oneLine.Width()+2 <= c.opts.WrapColumn {
		return concat(text("["), oneLine, when(trailingHole, ","), text("]"))
	}

	body := lines.Join(concat(text(","), newline()), items)
	switch {
	case trailingHole:
		body = concat(body, text(","))
	case c.opts.TrailingComma && !elements[len(elements)-1].Is(ast.RestElement, ast.SpreadElement):
		body = concat(body, text(","))
	}

	return concat(text("["), newline(), c.Indent(body), newline(), text("]"))
}

func printArray(c *Context, n *ast.Node) lines.Lines {
	return c.Elements(n)
}

func printObject(c *Context, n *ast.Node) lines.Lines {
	if len(n.List("properties")) == 0 && !c.HasDangling(n) {
		return text("{}")
	}

	return c.Block(c.Members(n, "properties", ",", c.opts.TrailingComma))
}

func printProperty(c *Context, n *ast.Node) lines.Lines {
	if n.Bool("shorthand") && shorthandHolds(n) {
		return c.Field(n, "value")
	}

	return concat(c.Key(n), text(": "), c.Field(n, "value"))
}

// shorthandHolds reports whether a property flagged shorthand can still be
// written that way after edits to its key or value.
func shorthandHolds(n *ast.Node) bool {
	key := n.Child("key")
	if n.Bool("computed") || !key.Is(ast.Identifier) {
		return false
	}

	value := n.Child("value")
	if value.Is(ast.AssignmentPattern) {
		value = value.Child("left")
	}

	return value.Is(ast.Identifier) && value.Str("name") == key.Str("name") &&
		value.Child("typeAnnotation") == nil && len(key.Comments) == 0
}

func printSpread(c *Context, n *ast.Node) lines.Lines {
	return concat(text("..."), c.Field(n, "argument"))
}

func printUnary(c *Context, n *ast.Node) lines.Lines {
	operator := n.Str("operator")
	arg := c.Field(n, "argument")

	switch operator {
	case "typeof", "void", "delete":
		return concat(text(operator+" "), arg)
	}

	if (operator == "+" || operator == "-") && arg.Len() > 0 && strings.HasPrefix(arg.Line(0).Text, operator) {
		return concat(text(operator+" "), arg)
	}

	return concat(text(operator), arg)
}

func printUpdate(c *Context, n *ast.Node) lines.Lines {
	operator := n.Str("operator")
	if n.Bool("prefix") {
		return concat(text(operator), c.Field(n, "argument"))
	}

	return concat(c.Field(n, "argument"), text(operator))
}

func printBinary(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Field(n, "left"), text(" "+n.Str("operator")+" "), c.Field(n, "right"))
}

func printConditional(c *Context, n *ast.Node) lines.Lines {
	return concat(
		c.Field(n, "test"),
		text(" ? "), c.Field(n, "consequent"),
		text(" : "), c.Field(n, "alternate"),
	)
}

func printCall(c *Context, n *ast.Node) lines.Lines {
	return concat(
		c.Field(n, "callee"),
		when(n.Bool("optional"), "?."),
		c.TypeArgs(n, "typeArguments"),
		c.Arguments(n),
	)
}

func printNew(c *Context, n *ast.Node) lines.Lines {
	return concat(text("new "), c.Field(n, "callee"), c.TypeArgs(n, "typeArguments"), c.Arguments(n))
}

func printMember(c *Context, n *ast.Node) lines.Lines {
	object := c.Field(n, "object")
	property := c.Field(n, "property")

	switch {
	case n.Bool("computed"):
		return concat(object, when(n.Bool("optional"), "?."), text("["), property, text("]"))
	case n.Bool("optional"):
		return concat(object, text("?."), property)
	default:
		return concat(object, text("."), property)
	}
}

func printSequence(c *Context, n *ast.Node) lines.Lines {
	return join(", ", c.List(n, "expressions"))
}

func printYield(c *Context, n *ast.Node) lines.Lines {
	return concat(text("yield"), when(n.Bool("delegate"), "*"), prefixed(" ", c.Field(n, "argument")))
}

func printAwait(c *Context, n *ast.Node) lines.Lines {
	return concat(text("await "), c.Field(n, "argument"))
}

func printAs(keyword string) Rule {
	return func(c *Context, n *ast.Node) lines.Lines {
		return concat(c.Field(n, "expression"), text(" "+keyword+" "), c.Field(n, "typeAnnotation"))
	}
}

func printTypeAssertion(c *Context, n *ast.Node) lines.Lines {
	return concat(text("<"), c.Field(n, "typeAnnotation"), text("> "), c.Field(n, "expression"))
}

func printNonNull(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Field(n, "expression"), text("!"))
}

func printObjectPattern(c *Context, n *ast.Node) lines.Lines {
	items := c.List(n, "properties")

	var body lines.Lines
	switch {
	case len(items) == 0 && c.HasDangling(n):
		body = c.Block(c.Dangling(n))
	case len(items) == 0:
		body = text("{}")
	default:
		opening, closing := "{", "}"
		if c.opts.ObjectCurlySpacing {
			opening, closing = "{ ", " }"
		}
		body = c.Wrapped(opening, closing, items, false)
		if body.IsMultiline() {
			body = c.broken("{", "}", items, false)
		}
	}

	return concat(
		c.Decorators(n, true), body,
		when(n.Bool("optional"), "?"), c.Annotation(n, "typeAnnotation"),
	)
}

func printArrayPattern(c *Context, n *ast.Node) lines.Lines {
	return concat(
		c.Decorators(n, true), c.Elements(n),
		when(n.Bool("optional"), "?"), c.Annotation(n, "typeAnnotation"),
	)
}

func printRest(c *Context, n *ast.Node) lines.Lines {
	return concat(
		c.Decorators(n, true), text("..."), c.Field(n, "argument"),
		when(n.Bool("optional"), "?"), c.Annotation(n, "typeAnnotation"),
	)
}

func printAssignmentPattern(c *Context, n *ast.Node) lines.Lines {
	return concat(c.Decorators(n, true), c.Field(n, "left"), text(" = "), c.Field(n, "right"))
}

func printDecorator(c *Context, n *ast.Node) lines.Lines {
	return concat(text("@"), c.Field(n, "expression"))
}
