package patcher

import (
	"strings"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/printer"
)

// statementSlot reports whether step holds a statement: an element of a
// statement list or the body of a compound statement.
func statementSlot(step printer.Step) bool {
	if step.Node == nil {
		return false
	}
	if field, ok := statementLists[step.Node.Kind]; ok && field == step.Field {
		return true
	}

	switch step.Node.Kind {
	case ast.IfStatement:
		return step.Field == "consequent" || step.Field == "alternate"
	case ast.ForStatement, ast.ForInStatement, ast.ForOfStatement, ast.WhileStatement,
		ast.DoWhileStatement, ast.LabeledStatement:
		return step.Field == "body"
	default:
		return false
	}
}

// terminated reports whether the source text of statement n ends in a way
// that no following statement can continue: with a semicolon or with the
// closing brace of a block. Nodes without source text are printed, and the
// printer always terminates.
func (p *Patcher) terminated(n *ast.Node) bool {
	if n == nil || !p.inBuffer(n.Range) {
		return true
	}
	if strings.HasSuffix(n.Range.Text(), ";") {
		return true
	}

	switch n.Kind {
	case ast.BlockStatement, ast.EmptyStatement, ast.FunctionDeclaration, ast.ClassDeclaration,
		ast.TryStatement, ast.SwitchStatement, ast.StaticBlock, ast.ClassMethod,
		ast.TSInterfaceDeclaration, ast.TSEnumDeclaration:
		return true
	case ast.TSModuleDeclaration:
		return n.Child("body") != nil
	case ast.Opaque:
		return strings.HasSuffix(n.Range.Text(), "}")
	case ast.IfStatement:
		if alternate := n.Child("alternate"); alternate != nil {
			return p.terminated(alternate)
		}
		return p.terminated(n.Child("consequent"))
	case ast.ForStatement, ast.ForInStatement, ast.ForOfStatement, ast.WhileStatement, ast.LabeledStatement:
		return p.terminated(n.Child("body"))
	case ast.ExportNamedDeclaration, ast.ExportDefaultDeclaration:
		declaration := n.Child("declaration")
		if declaration.Is(ast.FunctionExpression, ast.ClassExpression) {
			return true
		}
		return declaration != nil && p.terminated(declaration)
	default:
		return false
	}
}
