package typescript_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/parser/typescript"
)

func parse(t *testing.T, src string) *ast.File {
	t.Helper()

	file, err := typescript.New(typescript.FlavorTypeScript).Parse(context.Background(), "test.ts", []byte(src))
	require.NoError(t, err)
	require.NoError(t, ast.Validate(file.Root))

	return file
}

// first returns the first statement of the program.
func first(t *testing.T, src string) *ast.Node {
	t.Helper()

	body := parse(t, src).Root.List("body")
	require.NotEmpty(t, body)

	return body[0]
}

// expr returns the expression of a single expression statement.
func expr(t *testing.T, src string) *ast.Node {
	t.Helper()

	stmt := first(t, src)
	require.Equal(t, ast.ExpressionStatement, stmt.Kind)

	return stmt.Child("expression")
}

func TestParse_StatementKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want ast.Kind
	}{
		{"let a = 1;", ast.VariableDeclaration},
		{"const enum E { A }", ast.TSEnumDeclaration},
		{"function f() {}", ast.FunctionDeclaration},
		{"function f(): void;", ast.TSDeclareFunction},
		{"async function f() {}", ast.FunctionDeclaration},
		{"class A {}", ast.ClassDeclaration},
		{"abstract class A {}", ast.ClassDeclaration},
		{"if (a) b(); else c();", ast.IfStatement},
		{"for (;;) {}", ast.ForStatement},
		{"for (const k in o) {}", ast.ForInStatement},
		{"for (const v of list) {}", ast.ForOfStatement},
		{"while (x) x--;", ast.WhileStatement},
		{"do x++; while (x < 3)", ast.DoWhileStatement},
		{"try {} catch {}", ast.TryStatement},
		{"switch (x) { case 1: break; default: }", ast.SwitchStatement},
		{"outer: for (;;) break outer;", ast.LabeledStatement},
		{"debugger;", ast.DebuggerStatement},
		{";", ast.EmptyStatement},
		{"{}", ast.BlockStatement},
		{"import a from \"a\";", ast.ImportDeclaration},
		{"import \"side-effect\";", ast.ImportDeclaration},
		{"import fs = require(\"fs\");", ast.TSImportEqualsDeclaration},
		{"export const a = 1;", ast.ExportNamedDeclaration},
		{"export default a;", ast.ExportDefaultDeclaration},
		{"export * from \"a\";", ast.ExportAllDeclaration},
		{"export = a;", ast.TSExportAssignment},
		{"export as namespace Lib;", ast.TSNamespaceExportDeclaration},
		{"type A = string;", ast.TSTypeAliasDeclaration},
		{"interface A { b: string }", ast.TSInterfaceDeclaration},
		{"enum E { A = 1, B }", ast.TSEnumDeclaration},
		{"namespace A.B { }", ast.TSModuleDeclaration},
		{"declare module \"m\";", ast.TSModuleDeclaration},
		{"declare global { }", ast.TSModuleDeclaration},
		{"declare const x: number;", ast.VariableDeclaration},
		{"let\nx = 1", ast.VariableDeclaration},
		{"type = 1;", ast.ExpressionStatement},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, first(t, tt.src).Kind)
		})
	}
}

func TestParse_DeclaratorRanges(t *testing.T) {
	t.Parallel()

	stmt := first(t, "let decimal: number = 6;")
	assert.Equal(t, "let decimal: number = 6;", stmt.Text())

	decl := stmt.List("declarations")[0]
	id := decl.Child("id")
	assert.Equal(t, "decimal: number", id.Text())
	assert.Equal(t, "decimal", id.Str("name"))
	assert.Equal(t, "number", id.Child("typeAnnotation").Str("name"))

	init := decl.Child("init")
	assert.Equal(t, ast.NumericLiteral, init.Kind)
	assert.InDelta(t, 6.0, init.Num("value"), 0)
	assert.Equal(t, "6", init.Text())
}

func TestParse_Parentheses(t *testing.T) {
	t.Parallel()

	n := expr(t, "(a + b) * c;")
	require.Equal(t, ast.BinaryExpression, n.Kind)
	assert.Equal(t, "*", n.Str("operator"))

	left := n.Child("left")
	assert.True(t, left.Parenthesized)
	assert.Equal(t, "a + b", left.Text())
	assert.False(t, n.Child("right").Parenthesized)
}

func TestParse_Precedence(t *testing.T) {
	t.Parallel()

	n := expr(t, "a || b && c;")
	assert.Equal(t, ast.LogicalExpression, n.Kind)
	assert.Equal(t, "||", n.Str("operator"))
	assert.Equal(t, "&&", n.Child("right").Str("operator"))

	n = expr(t, "a ** b ** c;")
	assert.Equal(t, "a", n.Child("left").Str("name"))
	assert.Equal(t, "**", n.Child("right").Str("operator"))

	n = expr(t, "a - b - c;")
	assert.Equal(t, "-", n.Child("left").Str("operator"))

	n = expr(t, "x >>>= a >> b;")
	assert.Equal(t, ast.AssignmentExpression, n.Kind)
	assert.Equal(t, ">>>=", n.Str("operator"))
	assert.Equal(t, ">>", n.Child("right").Str("operator"))

	n = expr(t, "a ? b : c ? d : e;")
	assert.Equal(t, ast.ConditionalExpression, n.Child("alternate").Kind)

	n = expr(t, "value as unknown as string;")
	assert.Equal(t, ast.TSAsExpression, n.Kind)
	assert.Equal(t, ast.TSAsExpression, n.Child("expression").Kind)

	n = expr(t, "config satisfies Config;")
	assert.Equal(t, ast.TSSatisfiesExpression, n.Kind)
}

func TestParse_RegExpAndDivision(t *testing.T) {
	t.Parallel()

	n := expr(t, "a / b / c;")
	assert.Equal(t, ast.BinaryExpression, n.Kind)
	assert.Equal(t, ast.BinaryExpression, n.Child("left").Kind)

	n = expr(t, "x = /ab+c/gi;")
	re := n.Child("right")
	require.Equal(t, ast.RegExpLiteral, re.Kind)
	assert.Equal(t, "ab+c", re.Str("pattern"))
	assert.Equal(t, "gi", re.Str("flags"))
}

func TestParse_Templates(t *testing.T) {
	t.Parallel()

	n := expr(t, "tag`a${b}c${d}`;")
	require.Equal(t, ast.TaggedTemplateExpression, n.Kind)

	quasi := n.Child("quasi")
	quasis := quasi.List("quasis")
	require.Len(t, quasis, 3)
	assert.Equal(t, "a", quasis[0].Str("raw"))
	assert.Equal(t, "c", quasis[1].Str("raw"))
	assert.Empty(t, quasis[2].Str("raw"))
	assert.Len(t, quasi.List("expressions"), 2)
	assert.Equal(t, "c", quasis[1].Text())
}

func TestParse_MultilineTemplateIsVerbatim(t *testing.T) {
	t.Parallel()

	file := parse(t, "const s = `one\n  two`;\n")
	require.Len(t, file.Verbatim, 1)
	assert.Equal(t, "`one\n  two`", file.Verbatim[0].Text())
}

func TestParse_Arrows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src    string
		params int
		async  bool
	}{
		{"x => x;", 1, false},
		{"(a, b) => a + b;", 2, false},
		{"async (a) => await a;", 1, true},
		{"async x => x;", 1, true},
		{"(): void => {};", 0, false},
		{"<T,>(value: T): T => value;", 1, false},
		{"({ a, b }: Props) => a;", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			n := expr(t, tt.src)
			require.Equal(t, ast.ArrowFunctionExpression, n.Kind)
			assert.Len(t, n.List("params"), tt.params)
			assert.Equal(t, tt.async, n.Bool("async"))
		})
	}

	n := expr(t, "(a, b);")
	assert.Equal(t, ast.SequenceExpression, n.Kind)
	assert.True(t, n.Parenthesized)

	n = expr(t, "async(a);")
	assert.Equal(t, ast.CallExpression, n.Kind)
}

func TestParse_TypeArgumentsInCalls(t *testing.T) {
	t.Parallel()

	n := expr(t, "f<string>(x);")
	require.Equal(t, ast.CallExpression, n.Kind)
	assert.Len(t, n.List("typeArguments"), 1)

	n = expr(t, "a < b;")
	assert.Equal(t, ast.BinaryExpression, n.Kind)

	n = expr(t, "new Map<string, number>();")
	require.Equal(t, ast.NewExpression, n.Kind)
	assert.Len(t, n.List("typeArguments"), 2)
}

func TestParse_OptionalChains(t *testing.T) {
	t.Parallel()

	n := expr(t, "a?.b.c;")
	require.Equal(t, ast.OptionalMemberExpression, n.Kind)
	assert.False(t, n.Bool("optional"))

	inner := n.Child("object")
	assert.Equal(t, ast.OptionalMemberExpression, inner.Kind)
	assert.True(t, inner.Bool("optional"))

	n = expr(t, "f?.(x);")
	assert.Equal(t, ast.OptionalCallExpression, n.Kind)

	n = expr(t, "a!.b;")
	assert.Equal(t, ast.TSNonNullExpression, n.Child("object").Kind)
}

func TestParse_Objects(t *testing.T) {
	t.Parallel()

	n := expr(t, "({ a, b: 1, [c]: 2, ...d, get e() { return 1; }, async *f() {} });")
	require.Equal(t, ast.ObjectExpression, n.Kind)

	props := n.List("properties")
	require.Len(t, props, 6)
	assert.True(t, props[0].Bool("shorthand"))
	assert.NotSame(t, props[0].Child("key"), props[0].Child("value"))
	assert.True(t, props[2].Bool("computed"))
	assert.Equal(t, ast.SpreadElement, props[3].Kind)
	assert.Equal(t, "get", props[4].Str("kind"))
	assert.True(t, props[5].Bool("async"))
	assert.True(t, props[5].Bool("generator"))
}

func TestParse_DestructuringAssignment(t *testing.T) {
	t.Parallel()

	n := expr(t, "[a, , ...rest] = list;")
	left := n.Child("left")
	require.Equal(t, ast.ArrayPattern, left.Kind)

	elements := left.List("elements")
	require.Len(t, elements, 3)
	assert.Nil(t, elements[1])
	assert.Equal(t, ast.RestElement, elements[2].Kind)

	n = expr(t, "({ a = 1, b: { c } } = obj);")
	assert.True(t, n.Parenthesized)
	pattern := n.Child("left")
	require.Equal(t, ast.ObjectPattern, pattern.Kind)
	assert.Equal(t, ast.AssignmentPattern, pattern.List("properties")[0].Child("value").Kind)
	assert.Equal(t, ast.ObjectPattern, pattern.List("properties")[1].Child("value").Kind)
}

func TestParse_Classes(t *testing.T) {
	t.Parallel()

	src := `@sealed
export class Point<T> extends Base<T> implements Shape {
  static origin = new Point(0, 0);
  private readonly x!: number;
  #secret = 1;
  [key: string]: unknown;
  constructor(public y: number, @inject() z?: string) {
    super();
  }
  get size(): number { return 1; }
  abstract area(): number;
  static { init(); }
}
`
	export := first(t, src)
	require.Equal(t, ast.ExportNamedDeclaration, export.Kind)
	assert.Equal(t, 0, export.Range.Start)

	class := export.Child("declaration")
	require.Equal(t, ast.ClassDeclaration, class.Kind)
	assert.Len(t, class.List("decorators"), 1)
	assert.Equal(t, 0, class.Range.Start)
	assert.Len(t, class.List("superTypeArguments"), 1)
	assert.Len(t, class.List("implements"), 1)

	members := class.Child("body").List("body")
	require.Len(t, members, 8)

	assert.True(t, members[0].Bool("static"))
	assert.Equal(t, "private", members[1].Str("accessibility"))
	assert.True(t, members[1].Bool("readonly"))
	assert.True(t, members[1].Bool("definite"))
	assert.Equal(t, ast.PrivateName, members[2].Child("key").Kind)
	assert.Equal(t, ast.TSIndexSignature, members[3].Kind)

	ctor := members[4]
	assert.Equal(t, "constructor", ctor.Str("kind"))
	params := ctor.List("params")
	require.Len(t, params, 2)
	assert.Equal(t, ast.TSParameterProperty, params[0].Kind)
	assert.Len(t, params[1].List("decorators"), 1)
	assert.True(t, params[1].Bool("optional"))
	assert.Equal(t, "@inject() z?: string", params[1].Text())

	assert.Equal(t, "get", members[5].Str("kind"))
	assert.Equal(t, ast.TSDeclareMethod, members[6].Kind)
	assert.Equal(t, ast.StaticBlock, members[7].Kind)
}

func TestParse_Types(t *testing.T) {
	t.Parallel()

	typeOf := func(src string) *ast.Node {
		stmt := first(t, src)
		require.Equal(t, ast.TSTypeAliasDeclaration, stmt.Kind)
		return stmt.Child("typeAnnotation")
	}

	tests := []struct {
		src  string
		want ast.Kind
	}{
		{"type A = string | number;", ast.TSUnionType},
		{"type A = | 'a' | 'b';", ast.TSUnionType},
		{"type A = B & C;", ast.TSIntersectionType},
		{"type A = string[];", ast.TSArrayType},
		{"type A = T['key'];", ast.TSIndexedAccessType},
		{"type A = [a: string, b?: number, ...rest: boolean[]];", ast.TSTupleType},
		{"type A = (a: string) => void;", ast.TSFunctionType},
		{"type A = new () => Foo;", ast.TSConstructorType},
		{"type A = { a: string; b(): void };", ast.TSTypeLiteral},
		{"type A = { readonly [K in keyof T]?: T[K] };", ast.TSMappedType},
		{"type A<T> = T extends string ? 'yes' : 'no';", ast.TSConditionalType},
		{"type A = keyof T;", ast.TSTypeOperator},
		{"type A = typeof value;", ast.TSTypeQuery},
		{"type A = import('./mod').Thing;", ast.TSImportType},
		{"type A = -1;", ast.TSLiteralType},
		{"type A = `prefix-${string}`;", ast.TSLiteralType},
		{"type A = Promise<Array<string>>;", ast.TSTypeReference},
		{"type A = ns.Inner;", ast.TSTypeReference},
		{"type A = (string | number)[];", ast.TSArrayType},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, typeOf(tt.src).Kind)
		})
	}

	mapped := typeOf("type A = { -readonly [K in Keys as `get${K}`]-?: T };")
	assert.Equal(t, "-", mapped.Str("readonly"))
	assert.Equal(t, "-", mapped.Str("optional"))
	assert.NotNil(t, mapped.Child("nameType"))

	cond := typeOf("type A<T> = T extends Array<infer U extends string> ? U : never;")
	infer := cond.Child("extendsType").List("typeArguments")[0]
	require.Equal(t, ast.TSInferType, infer.Kind)
	assert.Equal(t, "U", infer.Child("typeParameter").Str("name"))
	assert.NotNil(t, infer.Child("typeParameter").Child("constraint"))
}

func TestParse_TypePredicates(t *testing.T) {
	t.Parallel()

	fn := first(t, "function isString(x: unknown): x is string { return true; }")
	pred := fn.Child("returnType")
	require.Equal(t, ast.TSTypePredicate, pred.Kind)
	assert.False(t, pred.Bool("asserts"))

	fn = first(t, "function check(x: unknown): asserts x {}")
	pred = fn.Child("returnType")
	require.Equal(t, ast.TSTypePredicate, pred.Kind)
	assert.True(t, pred.Bool("asserts"))
	assert.Nil(t, pred.Child("typeAnnotation"))
}

func TestParse_ModuleForms(t *testing.T) {
	t.Parallel()

	imp := first(t, `import def, { a, b as c, type D } from "mod";`)
	specifiers := imp.List("specifiers")
	require.Len(t, specifiers, 4)
	assert.Equal(t, ast.ImportDefaultSpecifier, specifiers[0].Kind)
	assert.Equal(t, "c", specifiers[2].Child("local").Str("name"))
	assert.Equal(t, "type", specifiers[3].Str("importKind"))

	imp = first(t, `import type { A } from "mod";`)
	assert.Equal(t, "type", imp.Str("importKind"))

	imp = first(t, `import * as ns from "mod";`)
	assert.Equal(t, ast.ImportNamespaceSpecifier, imp.List("specifiers")[0].Kind)

	exp := first(t, `export { a as default, b } from "mod";`)
	assert.Len(t, exp.List("specifiers"), 2)
	assert.NotNil(t, exp.Child("source"))

	exp = first(t, `export default class {}`)
	assert.Equal(t, ast.ClassDeclaration, exp.Child("declaration").Kind)

	ns := first(t, "namespace A.B.C { export const x = 1; }")
	inner := ns.Child("body")
	require.Equal(t, ast.TSModuleDeclaration, inner.Kind)
	assert.Equal(t, ast.TSModuleDeclaration, inner.Child("body").Kind)
}

func TestParse_AutomaticSemicolons(t *testing.T) {
	t.Parallel()

	body := parse(t, "a = 1\nb = 2\nreturnValue()\n").Root.List("body")
	assert.Len(t, body, 3)

	body = parse(t, "function f() {\n  return\n  42\n}\n").Root.List("body")
	fn := body[0].Child("body").List("body")
	require.Len(t, fn, 2)
	assert.Nil(t, fn[0].Child("argument"))

	body = parse(t, "x\n++y").Root.List("body")
	require.Len(t, body, 2)
	assert.Equal(t, ast.UpdateExpression, body[1].Child("expression").Kind)
}

func TestParse_Strict(t *testing.T) {
	t.Parallel()

	p := typescript.New(typescript.FlavorTypeScript, typescript.WithStrict(true))
	assert.True(t, p.Strict())

	_, err := p.Parse(context.Background(), "a.ts", []byte("a = 1\nb = 2\n"))
	require.Error(t, err)

	_, err = p.Parse(context.Background(), "a.ts", []byte("if (a) { b() }\n"))
	require.NoError(t, err)
}

func TestParse_Interpreter(t *testing.T) {
	t.Parallel()

	file := parse(t, "#!/usr/bin/env node\nrun();\n")
	assert.Equal(t, "/usr/bin/env node", file.Root.Str("interpreter"))
	assert.Len(t, file.Root.List("body"), 1)
}

func TestParse_Comments(t *testing.T) {
	t.Parallel()

	file := parse(t, "// leading\nfoo(); // trailing\n/* last */\n")
	require.Len(t, file.Comments, 3)

	stmt := file.Root.List("body")[0]
	require.Len(t, stmt.Comments, 3)
	assert.Equal(t, ast.Leading, stmt.Comments[0].Placement)
	assert.Equal(t, ast.Trailing, stmt.Comments[1].Placement)
	assert.Equal(t, ast.Trailing, stmt.Comments[2].Placement)
	assert.Same(t, stmt, file.Anchor(file.Comments[0]))

	file = parse(t, "function f() {\n  // nothing here\n}\n")
	block := file.Root.List("body")[0].Child("body")
	require.Len(t, block.Comments, 1)
	assert.Equal(t, ast.Dangling, block.Comments[0].Placement)
}

func TestParse_CommentsSurviveBacktracking(t *testing.T) {
	t.Parallel()

	file := parse(t, "const f = (/* a */ x, y) + 1;\n")
	assert.Len(t, file.Comments, 1)
}

func TestParse_CapturesOriginals(t *testing.T) {
	t.Parallel()

	file := parse(t, "let a = 1;")
	decl := file.Root.List("body")[0]

	original := file.Original(decl)
	require.NotNil(t, original)
	assert.NotSame(t, decl, original)
	assert.Equal(t, decl.Range, original.Range)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"unclosed block", "function f() {\n", 2, "'}' expected"},
		{"missing paren", "if (a {}", 1, "')' expected"},
		{"bad assignment", "1 = 2;", 1, "invalid assignment target"},
		{"keyword as name", "let class = 1;", 1, "unexpected keyword"},
		{"unterminated string", "x = 'abc\n", 1, ""},
		{"return at top level", "return 1;", 1, "return outside"},
		{"try without handler", "try {}\nx;", 2, "catch or finally expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := typescript.New(typescript.FlavorTypeScript).Parse(context.Background(), "bad.ts", []byte(tt.src))
			require.Error(t, err)

			var parseErr *typescript.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.line, parseErr.Line)
			assert.Equal(t, "bad.ts", parseErr.Path)
			assert.Contains(t, parseErr.Message, tt.msg)
		})
	}
}

func TestParse_JavaScriptRejectsTypes(t *testing.T) {
	t.Parallel()

	p := typescript.New(typescript.FlavorJavaScript)
	assert.Equal(t, typescript.FlavorJavaScript, p.Flavor())

	_, err := p.Parse(context.Background(), "a.js", []byte("let a: number = 1;"))
	require.Error(t, err)

	file, err := p.Parse(context.Background(), "a.js", []byte("let a = b < c;"))
	require.NoError(t, err)
	assert.Len(t, file.Root.List("body"), 1)
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := typescript.New(typescript.FlavorTypeScript).Parse(ctx, "a.ts", []byte("x;"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
