package ast

// Kind is the type tag of a node. Built-in kinds follow the ESTree/Babel
// naming used by JavaScript tooling; custom grammars register their own.
type Kind string

func (k Kind) String() string { return string(k) }

// Program and literals.
const (
	Program        Kind = "Program"
	Identifier     Kind = "Identifier"
	PrivateName    Kind = "PrivateName"
	StringLiteral  Kind = "StringLiteral"
	NumericLiteral Kind = "NumericLiteral"
	BigIntLiteral  Kind = "BigIntLiteral"
	BooleanLiteral Kind = "BooleanLiteral"
	NullLiteral    Kind = "NullLiteral"
	RegExpLiteral  Kind = "RegExpLiteral"
)

// Expressions.
const (
	TemplateLiteral          Kind = "TemplateLiteral"
	TemplateElement          Kind = "TemplateElement"
	TaggedTemplateExpression Kind = "TaggedTemplateExpression"
	ThisExpression           Kind = "ThisExpression"
	Super                    Kind = "Super"
	Import                   Kind = "Import"
	MetaProperty             Kind = "MetaProperty"
	ArrayExpression          Kind = "ArrayExpression"
	ObjectExpression         Kind = "ObjectExpression"
	ObjectProperty           Kind = "ObjectProperty"
	ObjectMethod             Kind = "ObjectMethod"
	SpreadElement            Kind = "SpreadElement"
	FunctionExpression       Kind = "FunctionExpression"
	ArrowFunctionExpression  Kind = "ArrowFunctionExpression"
	ClassExpression          Kind = "ClassExpression"
	UnaryExpression          Kind = "UnaryExpression"
	UpdateExpression         Kind = "UpdateExpression"
	BinaryExpression         Kind = "BinaryExpression"
	LogicalExpression        Kind = "LogicalExpression"
	AssignmentExpression     Kind = "AssignmentExpression"
	ConditionalExpression    Kind = "ConditionalExpression"
	CallExpression           Kind = "CallExpression"
	OptionalCallExpression   Kind = "OptionalCallExpression"
	NewExpression            Kind = "NewExpression"
	MemberExpression         Kind = "MemberExpression"
	OptionalMemberExpression Kind = "OptionalMemberExpression"
	SequenceExpression       Kind = "SequenceExpression"
	YieldExpression          Kind = "YieldExpression"
	AwaitExpression          Kind = "AwaitExpression"
	TSAsExpression           Kind = "TSAsExpression"
	TSSatisfiesExpression    Kind = "TSSatisfiesExpression"
	TSTypeAssertion          Kind = "TSTypeAssertion"
	TSNonNullExpression      Kind = "TSNonNullExpression"
)

// Patterns and parameters.
const (
	ObjectPattern       Kind = "ObjectPattern"
	ArrayPattern        Kind = "ArrayPattern"
	RestElement         Kind = "RestElement"
	AssignmentPattern   Kind = "AssignmentPattern"
	TSParameterProperty Kind = "TSParameterProperty"
	Decorator           Kind = "Decorator"
)

// Statements.
const (
	ExpressionStatement Kind = "ExpressionStatement"
	BlockStatement      Kind = "BlockStatement"
	EmptyStatement      Kind = "EmptyStatement"
	DebuggerStatement   Kind = "DebuggerStatement"
	VariableDeclaration Kind = "VariableDeclaration"
	VariableDeclarator  Kind = "VariableDeclarator"
	FunctionDeclaration Kind = "FunctionDeclaration"
	TSDeclareFunction   Kind = "TSDeclareFunction"
	ReturnStatement     Kind = "ReturnStatement"
	IfStatement         Kind = "IfStatement"
	ForStatement        Kind = "ForStatement"
	ForInStatement      Kind = "ForInStatement"
	ForOfStatement      Kind = "ForOfStatement"
	WhileStatement      Kind = "WhileStatement"
	DoWhileStatement    Kind = "DoWhileStatement"
	BreakStatement      Kind = "BreakStatement"
	ContinueStatement   Kind = "ContinueStatement"
	ThrowStatement      Kind = "ThrowStatement"
	TryStatement        Kind = "TryStatement"
	CatchClause         Kind = "CatchClause"
	SwitchStatement     Kind = "SwitchStatement"
	SwitchCase          Kind = "SwitchCase"
	LabeledStatement    Kind = "LabeledStatement"
)

// Classes.
const (
	ClassDeclaration Kind = "ClassDeclaration"
	ClassBody        Kind = "ClassBody"
	ClassProperty    Kind = "ClassProperty"
	ClassMethod      Kind = "ClassMethod"
	TSDeclareMethod  Kind = "TSDeclareMethod"
	TSIndexSignature Kind = "TSIndexSignature"
	StaticBlock      Kind = "StaticBlock"
)

// Modules.
const (
	ImportDeclaration            Kind = "ImportDeclaration"
	ImportSpecifier              Kind = "ImportSpecifier"
	ImportDefaultSpecifier       Kind = "ImportDefaultSpecifier"
	ImportNamespaceSpecifier     Kind = "ImportNamespaceSpecifier"
	ExportNamedDeclaration       Kind = "ExportNamedDeclaration"
	ExportSpecifier              Kind = "ExportSpecifier"
	ExportDefaultDeclaration     Kind = "ExportDefaultDeclaration"
	ExportAllDeclaration         Kind = "ExportAllDeclaration"
	TSExportAssignment           Kind = "TSExportAssignment"
	TSImportEqualsDeclaration    Kind = "TSImportEqualsDeclaration"
	TSExternalModuleReference    Kind = "TSExternalModuleReference"
	TSNamespaceExportDeclaration Kind = "TSNamespaceExportDeclaration"
)

// TypeScript declarations.
const (
	TSTypeAliasDeclaration Kind = "TSTypeAliasDeclaration"
	TSInterfaceDeclaration Kind = "TSInterfaceDeclaration"
	TSInterfaceBody        Kind = "TSInterfaceBody"
	TSEnumDeclaration      Kind = "TSEnumDeclaration"
	TSEnumMember           Kind = "TSEnumMember"
	TSModuleDeclaration    Kind = "TSModuleDeclaration"
	TSModuleBlock          Kind = "TSModuleBlock"
)

// Types.
const (
	TSTypeReference                 Kind = "TSTypeReference"
	TSQualifiedName                 Kind = "TSQualifiedName"
	TSKeywordType                   Kind = "TSKeywordType"
	TSThisType                      Kind = "TSThisType"
	TSArrayType                     Kind = "TSArrayType"
	TSTupleType                     Kind = "TSTupleType"
	TSNamedTupleMember              Kind = "TSNamedTupleMember"
	TSOptionalType                  Kind = "TSOptionalType"
	TSRestType                      Kind = "TSRestType"
	TSUnionType                     Kind = "TSUnionType"
	TSIntersectionType              Kind = "TSIntersectionType"
	TSLiteralType                   Kind = "TSLiteralType"
	TSFunctionType                  Kind = "TSFunctionType"
	TSConstructorType               Kind = "TSConstructorType"
	TSTypeLiteral                   Kind = "TSTypeLiteral"
	TSPropertySignature             Kind = "TSPropertySignature"
	TSMethodSignature               Kind = "TSMethodSignature"
	TSCallSignatureDeclaration      Kind = "TSCallSignatureDeclaration"
	TSConstructSignatureDeclaration Kind = "TSConstructSignatureDeclaration"
	TSMappedType                    Kind = "TSMappedType"
	TSIndexedAccessType             Kind = "TSIndexedAccessType"
	TSTypeOperator                  Kind = "TSTypeOperator"
	TSTypeQuery                     Kind = "TSTypeQuery"
	TSConditionalType               Kind = "TSConditionalType"
	TSInferType                     Kind = "TSInferType"
	TSTypePredicate                 Kind = "TSTypePredicate"
	TSTypeParameter                 Kind = "TSTypeParameter"
	TSExpressionWithTypeArguments   Kind = "TSExpressionWithTypeArguments"
	TSImportType                    Kind = "TSImportType"
)

// Opaque holds source text a permissive parser kept without modelling it,
// such as a construct it does not map or input it had to recover from.
const Opaque Kind = "Opaque"

func newBuiltinRegistry() *SchemaRegistry {
	reg := NewSchemaRegistry()
	add := func(kind Kind, category Category, fields ...FieldSpec) {
		if err := reg.Register(kind, category, fields...); err != nil {
			panic(err)
		}
	}

	expr, stmt, typ, pat, other := CategoryExpression, CategoryStatement, CategoryType, CategoryPattern, CategoryOther

	node, list := NodeField, ListField
	str, flag, num := StringField, BoolField, NumberField

	functionFields := func(withBody bool) []FieldSpec {
		fields := []FieldSpec{
			flag("async"), flag("generator"),
			node("id"), list("typeParameters"), list("params"), node("returnType"),
		}
		if withBody {
			fields = append(fields, node("body").Require())
		}
		return fields
	}
	classFields := []FieldSpec{
		list("decorators"), flag("declare"), flag("abstract"),
		node("id"), list("typeParameters"),
		node("superClass"), list("superTypeArguments"), list("implements"),
		node("body").Require(),
	}
	memberModifiers := []FieldSpec{
		list("decorators"), flag("declare"), str("accessibility"), flag("static"),
		flag("abstract"), flag("override"),
	}
	methodFields := func(withBody bool) []FieldSpec {
		fields := append([]FieldSpec{}, memberModifiers...)
		fields = append(fields,
			flag("async"), flag("generator"), str("kind"),
			node("key").Require(), flag("computed"), flag("optional"),
			list("typeParameters"), list("params"), node("returnType"),
		)
		if withBody {
			fields = append(fields, node("body").Require())
		}
		return fields
	}
	signature := []FieldSpec{list("typeParameters"), list("params"), node("returnType")}

	add(Program, other, str("interpreter"), list("body"))

	add(Identifier, expr, list("decorators"), str("name").Require(), flag("optional"), node("typeAnnotation"))
	add(PrivateName, expr, str("name").Require())
	add(StringLiteral, expr, str("value"), str("raw").AsMeta())
	add(NumericLiteral, expr, num("value"), str("raw").AsMeta())
	add(BigIntLiteral, expr, str("value").Require())
	add(BooleanLiteral, expr, flag("value"))
	add(NullLiteral, expr)
	add(RegExpLiteral, expr, str("pattern"), str("flags"))

	add(TemplateLiteral, expr, list("quasis").Require(), list("expressions"))
	add(TemplateElement, other, str("raw"))
	add(TaggedTemplateExpression, expr, node("tag").Require(), list("typeArguments"), node("quasi").Require())
	add(ThisExpression, expr)
	add(Super, expr)
	add(Import, expr)
	add(MetaProperty, expr, node("meta").Require(), node("property").Require())
	add(ArrayExpression, expr, list("elements"))
	add(ObjectExpression, expr, list("properties"))
	add(ObjectProperty, other, flag("computed"), flag("shorthand"), node("key").Require(), node("value").Require())
	add(ObjectMethod, other, methodFields(true)...)
	add(SpreadElement, other, node("argument").Require())
	add(FunctionExpression, expr, functionFields(true)...)
	add(ArrowFunctionExpression, expr, flag("async"), list("typeParameters"), list("params"), node("returnType"), node("body").Require())
	add(ClassExpression, expr, classFields...)
	add(UnaryExpression, expr, str("operator").Require(), node("argument").Require())
	add(UpdateExpression, expr, str("operator").Require(), flag("prefix"), node("argument").Require())
	add(BinaryExpression, expr, node("left").Require(), str("operator").Require(), node("right").Require())
	add(LogicalExpression, expr, node("left").Require(), str("operator").Require(), node("right").Require())
	add(AssignmentExpression, expr, node("left").Require(), str("operator").Require(), node("right").Require())
	add(ConditionalExpression, expr, node("test").Require(), node("consequent").Require(), node("alternate").Require())
	add(CallExpression, expr, node("callee").Require(), list("typeArguments"), list("arguments"))
	add(OptionalCallExpression, expr, node("callee").Require(), flag("optional"), list("typeArguments"), list("arguments"))
	add(NewExpression, expr, node("callee").Require(), list("typeArguments"), list("arguments"))
	add(MemberExpression, expr, node("object").Require(), flag("computed"), node("property").Require())
	add(OptionalMemberExpression, expr, node("object").Require(), flag("optional"), flag("computed"), node("property").Require())
	add(SequenceExpression, expr, list("expressions").Require())
	add(YieldExpression, expr, flag("delegate"), node("argument"))
	add(AwaitExpression, expr, node("argument").Require())
	add(TSAsExpression, expr, node("expression").Require(), node("typeAnnotation").Require())
	add(TSSatisfiesExpression, expr, node("expression").Require(), node("typeAnnotation").Require())
	add(TSTypeAssertion, expr, node("typeAnnotation").Require(), node("expression").Require())
	add(TSNonNullExpression, expr, node("expression").Require())

	add(ObjectPattern, pat, list("decorators"), list("properties"), flag("optional"), node("typeAnnotation"))
	add(ArrayPattern, pat, list("decorators"), list("elements"), flag("optional"), node("typeAnnotation"))
	add(RestElement, pat, list("decorators"), node("argument").Require(), flag("optional"), node("typeAnnotation"))
	add(AssignmentPattern, pat, list("decorators"), node("left").Require(), node("right").Require())
	add(TSParameterProperty, pat, list("decorators"), str("accessibility"), flag("override"), flag("readonly"), node("parameter").Require())
	add(Decorator, other, node("expression").Require())

	add(ExpressionStatement, stmt, node("expression").Require())
	add(BlockStatement, stmt, list("body"))
	add(EmptyStatement, stmt)
	add(DebuggerStatement, stmt)
	add(VariableDeclaration, stmt, flag("declare"), str("kind").Require(), list("declarations").Require())
	add(VariableDeclarator, other, node("id").Require(), flag("definite"), node("init"))
	add(FunctionDeclaration, stmt, append([]FieldSpec{flag("declare")}, functionFields(true)...)...)
	add(TSDeclareFunction, stmt, append([]FieldSpec{flag("declare")}, functionFields(false)...)...)
	add(ReturnStatement, stmt, node("argument"))
	add(IfStatement, stmt, node("test").Require(), node("consequent").Require(), node("alternate"))
	add(ForStatement, stmt, node("init"), node("test"), node("update"), node("body").Require())
	add(ForInStatement, stmt, node("left").Require(), node("right").Require(), node("body").Require())
	add(ForOfStatement, stmt, flag("await"), node("left").Require(), node("right").Require(), node("body").Require())
	add(WhileStatement, stmt, node("test").Require(), node("body").Require())
	add(DoWhileStatement, stmt, node("body").Require(), node("test").Require())
	add(BreakStatement, stmt, node("label"))
	add(ContinueStatement, stmt, node("label"))
	add(ThrowStatement, stmt, node("argument").Require())
	add(TryStatement, stmt, node("block").Require(), node("handler"), node("finalizer"))
	add(CatchClause, other, node("param"), node("body").Require())
	add(SwitchStatement, stmt, node("discriminant").Require(), list("cases"))
	add(SwitchCase, other, node("test"), list("consequent"))
	add(LabeledStatement, stmt, node("label").Require(), node("body").Require())

	add(ClassDeclaration, stmt, classFields...)
	add(ClassBody, other, list("body"))
	add(ClassProperty, other, append(append([]FieldSpec{}, memberModifiers...),
		flag("readonly"), node("key").Require(), flag("computed"), flag("optional"), flag("definite"),
		node("typeAnnotation"), node("value"))...)
	add(ClassMethod, other, methodFields(true)...)
	add(TSDeclareMethod, other, methodFields(false)...)
	add(TSIndexSignature, other, flag("static"), flag("readonly"), list("params"), node("typeAnnotation"))
	add(StaticBlock, other, list("body"))

	add(ImportDeclaration, stmt, str("importKind"), list("specifiers"), node("source").Require())
	add(ImportSpecifier, other, str("importKind"), node("imported").Require(), node("local"))
	add(ImportDefaultSpecifier, other, node("local").Require())
	add(ImportNamespaceSpecifier, other, node("local").Require())
	add(ExportNamedDeclaration, stmt, str("exportKind"), node("declaration"), list("specifiers"), node("source"))
	add(ExportSpecifier, other, str("exportKind"), node("local").Require(), node("exported"))
	add(ExportDefaultDeclaration, stmt, node("declaration").Require())
	add(ExportAllDeclaration, stmt, str("exportKind"), node("exported"), node("source").Require())
	add(TSExportAssignment, stmt, node("expression").Require())
	add(TSImportEqualsDeclaration, stmt, flag("isExport"), str("importKind"), node("id").Require(), node("moduleReference").Require())
	add(TSExternalModuleReference, other, node("expression").Require())
	add(TSNamespaceExportDeclaration, stmt, node("id").Require())

	add(TSTypeAliasDeclaration, stmt, flag("declare"), node("id").Require(), list("typeParameters"), node("typeAnnotation").Require())
	add(TSInterfaceDeclaration, stmt, flag("declare"), node("id").Require(), list("typeParameters"), list("extends"), node("body").Require())
	add(TSInterfaceBody, other, list("body"))
	add(TSEnumDeclaration, stmt, flag("declare"), flag("const"), node("id").Require(), list("members"))
	add(TSEnumMember, other, node("id").Require(), node("initializer"))
	add(TSModuleDeclaration, stmt, flag("declare"), str("kind"), node("id").Require(), node("body"))
	add(TSModuleBlock, other, list("body"))

	add(TSTypeReference, typ, node("typeName").Require(), list("typeArguments"))
	add(TSQualifiedName, other, node("left").Require(), node("right").Require())
	add(TSKeywordType, typ, str("name").Require())
	add(TSThisType, typ)
	add(TSArrayType, typ, node("elementType").Require())
	add(TSTupleType, typ, list("elementTypes"))
	add(TSNamedTupleMember, typ, node("label").Require(), flag("optional"), node("elementType").Require())
	add(TSOptionalType, typ, node("typeAnnotation").Require())
	add(TSRestType, typ, node("typeAnnotation").Require())
	add(TSUnionType, typ, list("types").Require())
	add(TSIntersectionType, typ, list("types").Require())
	add(TSLiteralType, typ, node("literal").Require())
	add(TSFunctionType, typ, signature...)
	add(TSConstructorType, typ, append([]FieldSpec{flag("abstract")}, signature...)...)
	add(TSTypeLiteral, typ, list("members"))
	add(TSPropertySignature, other, flag("readonly"), node("key").Require(), flag("computed"), flag("optional"), node("typeAnnotation"))
	add(TSMethodSignature, other, str("kind"), node("key").Require(), flag("computed"), flag("optional"),
		list("typeParameters"), list("params"), node("returnType"))
	add(TSCallSignatureDeclaration, other, signature...)
	add(TSConstructSignatureDeclaration, other, signature...)
	add(TSMappedType, typ, str("readonly"), node("typeParameter").Require(), node("nameType"), str("optional"), node("typeAnnotation"))
	add(TSIndexedAccessType, typ, node("objectType").Require(), node("indexType").Require())
	add(TSTypeOperator, typ, str("operator").Require(), node("typeAnnotation").Require())
	add(TSTypeQuery, typ, node("exprName").Require(), list("typeArguments"))
	add(TSConditionalType, typ, node("checkType").Require(), node("extendsType").Require(), node("trueType").Require(), node("falseType").Require())
	add(TSInferType, typ, node("typeParameter").Require())
	add(TSTypePredicate, typ, flag("asserts"), node("parameterName").Require(), node("typeAnnotation"))
	add(TSTypeParameter, other, flag("const"), flag("in"), flag("out"), str("name").Require(), node("constraint"), node("default"))
	add(TSExpressionWithTypeArguments, other, node("expression").Require(), list("typeArguments"))
	add(TSImportType, typ, node("argument").Require(), node("qualifier"), list("typeArguments"))

	add(Opaque, other, str("text").Require(), str("grammar").AsMeta())

	return reg
}
