package typescript

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokPrivateName
	tokNumber
	tokBigInt
	tokString
	tokTemplate
	tokRegExp
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokName:
		return "identifier"
	case tokPrivateName:
		return "private name"
	case tokNumber, tokBigInt:
		return "number"
	case tokString:
		return "string"
	case tokTemplate:
		return "template"
	case tokRegExp:
		return "regular expression"
	default:
		return "punctuation"
	}
}

type token struct {
	kind tokenKind

	// value is the decoded name, the punctuator, or the raw literal text.
	// For templates it is the raw text of the span between delimiters.
	value string

	start int
	end   int

	newlineBefore bool

	// escaped marks names spelled with \u escapes; they never act as
	// keywords.
	escaped bool

	// tail marks a template span closed by a backtick.
	tail bool
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of file"
	case tokPunct, tokName:
		return "'" + t.value + "'"
	default:
		return t.kind.String()
	}
}

// punctuators is ordered longest first. A lone > is always its own token;
// the expression parser joins >>, >= and friends when it needs them.
var punctuators = []string{
	"...", "===", "!==", "**=", "<<=", "&&=", "||=", "??=",
	"=>", "==", "!=", "<=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"++", "--", "<<", "&&", "||", "??", "?.", "**",
	"{", "}", "(", ")", "[", "]", ";", ",", "<", ">", "+", "-", "*", "/", "%",
	"&", "|", "^", "!", "~", "?", ":", "=", "@", ".",
}

var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true, "with": true,
}

var keywordTypes = map[string]bool{
	"any": true, "unknown": true, "number": true, "string": true, "boolean": true,
	"bigint": true, "symbol": true, "object": true, "never": true, "void": true,
	"undefined": true, "null": true,
}

var assignOperators = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "<<=": true, ">>=": true, ">>>=": true, "&=": true, "|=": true,
	"^=": true, "&&=": true, "||=": true, "??=": true,
}

// Binary operator precedences; higher binds tighter.
const (
	precNone = iota
	precNullish
	precLogicalOr
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquals
	precCompare
	precShift
	precAdd
	precMultiply
	precExponent
)

var binaryOperators = map[string]int{
	"??": precNullish, "||": precLogicalOr, "&&": precLogicalAnd,
	"|": precBitwiseOr, "^": precBitwiseXor, "&": precBitwiseAnd,
	"==": precEquals, "!=": precEquals, "===": precEquals, "!==": precEquals,
	"<": precCompare, ">": precCompare, "<=": precCompare, ">=": precCompare,
	"<<": precShift, ">>": precShift, ">>>": precShift,
	"+": precAdd, "-": precAdd,
	"*": precMultiply, "/": precMultiply, "%": precMultiply,
	"**": precExponent,
}
