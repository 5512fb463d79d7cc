package printer

import (
	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/lines"
)

//nolint:gochecknoinits // Built-in rules register themselves.
func init() {
	registerAll(map[ast.Kind]Rule{
		ast.ImportDeclaration:            printImport,
		ast.ImportSpecifier:              printImportSpecifier,
		ast.ImportDefaultSpecifier:       printLocal(""),
		ast.ImportNamespaceSpecifier:     printLocal("* as "),
		ast.ExportNamedDeclaration:       printExportNamed,
		ast.ExportSpecifier:              printExportSpecifier,
		ast.ExportDefaultDeclaration:     printExportDefault,
		ast.ExportAllDeclaration:         printExportAll,
		ast.TSExportAssignment:           printExportAssignment,
		ast.TSImportEqualsDeclaration:    printImportEquals,
		ast.TSExternalModuleReference:    printExternalModuleReference,
		ast.TSNamespaceExportDeclaration: printNamespaceExport,
	})
}

func (c *Context) braces(items []lines.Lines) lines.Lines {
	if len(items) == 0 {
		return text("{}")
	}

	opening, closing := "{", "}"
	if c.opts.ObjectCurlySpacing {
		opening, closing = "{ ", " }"
	}

	out := c.Wrapped(opening, closing, items, false)
	if out.IsMultiline() {
		out = c.broken("{", "}", items, true)
	}

	return out
}

func typeKeyword(kind string) lines.Lines {
	return when(kind == "type" || kind == "typeof", kind+" ")
}

func printImport(c *Context, n *ast.Node) lines.Lines {
	specifiers := n.List("specifiers")
	out := concat(text("import "), typeKeyword(n.Str("importKind")))
	if len(specifiers) == 0 {
		return concat(out, c.Field(n, "source"), text(";"))
	}

	var (
		heads []lines.Lines
		named []lines.Lines
	)
	for idx, spec := range specifiers {
		printed := c.Print(n, "specifiers", idx, spec)
		if spec.Is(ast.ImportSpecifier) {
			named = append(named, printed)
		} else {
			heads = append(heads, printed)
		}
	}
	if len(named) > 0 {
		heads = append(heads, c.braces(named))
	}

	return concat(out, join(", ", heads), text(" from "), c.Field(n, "source"), text(";"))
}

func printImportSpecifier(c *Context, n *ast.Node) lines.Lines {
	out := concat(typeKeyword(n.Str("importKind")), c.Field(n, "imported"))

	local := n.Child("local")
	if local != nil && !sameName(n.Child("imported"), local) {
		out = concat(out, text(" as "), c.Field(n, "local"))
	}

	return out
}

func sameName(a, b *ast.Node) bool {
	return a.Is(ast.Identifier) && b.Is(ast.Identifier) && a.Str("name") == b.Str("name") &&
		len(b.Comments) == 0
}

func printLocal(prefix string) Rule {
	return func(c *Context, n *ast.Node) lines.Lines {
		return concat(text(prefix), c.Field(n, "local"))
	}
}

func printExportNamed(c *Context, n *ast.Node) lines.Lines {
	out := text("export ")
	if n.Child("declaration") != nil {
		return concat(out, c.Field(n, "declaration"))
	}

	out = concat(out, typeKeyword(n.Str("exportKind")), c.braces(c.List(n, "specifiers")))
	if n.Child("source") != nil {
		out = concat(out, text(" from "), c.Field(n, "source"))
	}

	return concat(out, text(";"))
}

func printExportSpecifier(c *Context, n *ast.Node) lines.Lines {
	out := concat(typeKeyword(n.Str("exportKind")), c.Field(n, "local"))

	exported := n.Child("exported")
	if exported != nil && !sameName(n.Child("local"), exported) {
		out = concat(out, text(" as "), c.Field(n, "exported"))
	}

	return out
}

func printExportDefault(c *Context, n *ast.Node) lines.Lines {
	out := concat(text("export default "), c.Field(n, "declaration"))

	switch n.Child("declaration").Kind {
	case ast.FunctionDeclaration, ast.ClassDeclaration, ast.TSDeclareFunction, ast.TSInterfaceDeclaration:
		return out
	default:
		return concat(out, text(";"))
	}
}

func printExportAll(c *Context, n *ast.Node) lines.Lines {
	out := concat(text("export "), typeKeyword(n.Str("exportKind")), text("*"))
	if n.Child("exported") != nil {
		out = concat(out, text(" as "), c.Field(n, "exported"))
	}

	return concat(out, text(" from "), c.Field(n, "source"), text(";"))
}

func printExportAssignment(c *Context, n *ast.Node) lines.Lines {
	return concat(text("export = "), c.Field(n, "expression"), text(";"))
}

func printImportEquals(c *Context, n *ast.Node) lines.Lines {
	return concat(
		when(n.Bool("isExport"), "export "),
		text("import "), typeKeyword(n.Str("importKind")),
		c.Field(n, "id"), text(" = "), c.Field(n, "moduleReference"), text(";"),
	)
}

func printExternalModuleReference(c *Context, n *ast.Node) lines.Lines {
	return concat(text("require("), c.Field(n, "expression"), text(")"))
}

func printNamespaceExport(c *Context, n *ast.Node) lines.Lines {
	return concat(text("export as namespace "), c.Field(n, "id"), text(";"))
}
