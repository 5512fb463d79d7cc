package typescript

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/source"
)

// lexer produces one token at a time. It never decides between division
// and regular expressions or between > and >>; the parser re-scans those
// when the grammar calls for it.
type lexer struct {
	buf *source.Buffer
	src string
	pos int

	// comments are keyed by start offset so re-scanning after a failed
	// speculative parse does not record a comment twice.
	comments map[int]*ast.Comment

	fail func(offset int, format string, args ...any)
}

func newLexer(buf *source.Buffer, fail func(offset int, format string, args ...any)) *lexer {
	return &lexer{
		buf:      buf,
		src:      buf.Content(),
		comments: make(map[int]*ast.Comment),
		fail:     fail,
	}
}

// interpreter consumes a leading #! line.
func (l *lexer) interpreter() string {
	if !strings.HasPrefix(l.src, "#!") {
		return ""
	}

	end := strings.IndexAny(l.src, "\r\n")
	if end < 0 {
		end = len(l.src)
	}
	l.pos = end

	return l.src[2:end]
}

func (l *lexer) scan() token {
	newline := l.skipTrivia()

	tok := token{start: l.pos, newlineBefore: newline}
	if l.pos >= len(l.src) {
		tok.kind = tokEOF
		tok.end = l.pos
		return tok
	}

	ch, size := utf8.DecodeRuneInString(l.src[l.pos:])
	switch {
	case isIdentStart(ch) || ch == '\\':
		tok.kind = tokName
		tok.value, tok.escaped = l.scanName()
	case ch == '#':
		l.pos += size
		if l.pos >= len(l.src) {
			l.fail(tok.start, "unexpected character '#'")
		}
		next, _ := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentStart(next) && next != '\\' {
			l.fail(tok.start, "unexpected character '#'")
		}
		tok.kind = tokPrivateName
		tok.value, tok.escaped = l.scanName()
	case isDigit(ch) || (ch == '.' && l.pos+1 < len(l.src) && isDigit(rune(l.src[l.pos+1]))):
		tok.kind = l.scanNumber()
		tok.value = l.src[tok.start:l.pos]
	case ch == '"' || ch == '\'':
		tok.kind = tokString
		l.scanString(byte(ch))
		tok.value = l.src[tok.start:l.pos]
	case ch == '`':
		l.pos++
		return l.scanTemplate(tok.start, newline)
	default:
		tok.kind = tokPunct
		tok.value = l.scanPunct()
	}

	tok.end = l.pos

	return tok
}

// skipTrivia skips whitespace and comments and reports whether a line
// terminator was crossed.
func (l *lexer) skipTrivia() bool {
	newline := false

	for l.pos < len(l.src) {
		ch, size := utf8.DecodeRuneInString(l.src[l.pos:])
		switch {
		case isLineTerminator(ch):
			newline = true
			l.pos += size
		case ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f' || ch == '\u00a0' || ch == '\ufeff' ||
			(ch > utf8.RuneSelf && unicode.Is(unicode.Zs, ch)):
			l.pos += size
		case strings.HasPrefix(l.src[l.pos:], "//"):
			l.lineComment()
		case strings.HasPrefix(l.src[l.pos:], "/*"):
			if l.blockComment() {
				newline = true
			}
		default:
			return newline
		}
	}

	return newline
}

func (l *lexer) lineComment() {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.src) {
		ch, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if isLineTerminator(ch) {
			break
		}
		l.pos += size
	}

	l.record(ast.CommentLine, start, l.src[start+2:l.pos])
}

func (l *lexer) blockComment() bool {
	start := l.pos
	end := strings.Index(l.src[start+2:], "*/")
	if end < 0 {
		l.fail(start, "unterminated comment")
	}
	l.pos = start + 2 + end + 2

	value := l.src[start+2 : l.pos-2]
	l.record(ast.CommentBlock, start, value)

	return strings.ContainsAny(value, "\n\r\u2028\u2029")
}

func (l *lexer) record(kind ast.CommentKind, start int, value string) {
	if _, seen := l.comments[start]; seen {
		return
	}

	l.comments[start] = &ast.Comment{
		Kind:  kind,
		Value: value,
		Range: l.buf.NewRange(start, l.pos),
	}
}

func (l *lexer) scanName() (string, bool) {
	var (
		sb      strings.Builder
		escaped bool
	)

	for l.pos < len(l.src) {
		ch, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if ch == '\\' {
			decoded := l.scanIdentEscape()
			sb.WriteRune(decoded)
			escaped = true
			continue
		}
		if !isIdentPart(ch) {
			break
		}
		sb.WriteRune(ch)
		l.pos += size
	}

	return sb.String(), escaped
}

func (l *lexer) scanIdentEscape() rune {
	start := l.pos
	if !strings.HasPrefix(l.src[l.pos:], "\\u") {
		l.fail(start, "invalid escape in identifier")
	}
	l.pos += 2

	var digits string
	if strings.HasPrefix(l.src[l.pos:], "{") {
		end := strings.IndexByte(l.src[l.pos:], '}')
		if end < 0 {
			l.fail(start, "invalid escape in identifier")
		}
		digits = l.src[l.pos+1 : l.pos+end]
		l.pos += end + 1
	} else {
		if l.pos+4 > len(l.src) {
			l.fail(start, "invalid escape in identifier")
		}
		digits = l.src[l.pos : l.pos+4]
		l.pos += 4
	}

	var value rune
	for _, digit := range digits {
		value = value*16 + rune(hexValue(digit))
		if hexValue(digit) < 0 || value > unicode.MaxRune {
			l.fail(start, "invalid escape in identifier")
		}
	}
	if digits == "" {
		l.fail(start, "invalid escape in identifier")
	}

	return value
}

func (l *lexer) scanNumber() tokenKind {
	start := l.pos

	if l.src[l.pos] == '0' && l.pos+1 < len(l.src) && strings.ContainsRune("xXoObB", rune(l.src[l.pos+1])) {
		l.pos += 2
		digitsStart := l.pos
		for l.pos < len(l.src) && (hexValue(rune(l.src[l.pos])) >= 0 || l.src[l.pos] == '_') {
			l.pos++
		}
		if l.pos == digitsStart {
			l.fail(start, "hexadecimal, octal or binary digit expected")
		}
	} else {
		l.digits()
		if l.pos < len(l.src) && l.src[l.pos] == '.' {
			l.pos++
			l.digits()
		}
		if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
			l.pos++
			if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
				l.pos++
			}
			if l.pos >= len(l.src) || !isDigit(rune(l.src[l.pos])) {
				l.fail(start, "digit expected in exponent")
			}
			l.digits()
		}
	}

	kind := tokNumber
	if l.pos < len(l.src) && l.src[l.pos] == 'n' {
		l.pos++
		kind = tokBigInt
	}

	if l.pos < len(l.src) {
		next, _ := utf8.DecodeRuneInString(l.src[l.pos:])
		if isIdentStart(next) || isDigit(next) {
			l.fail(l.pos, "identifier directly after number")
		}
	}

	return kind
}

func (l *lexer) digits() {
	for l.pos < len(l.src) && (isDigit(rune(l.src[l.pos])) || l.src[l.pos] == '_') {
		l.pos++
	}
}

func (l *lexer) scanString(quote byte) {
	start := l.pos
	l.pos++

	for l.pos < len(l.src) {
		switch ch := l.src[l.pos]; ch {
		case quote:
			l.pos++
			return
		case '\\':
			l.pos++
			if strings.HasPrefix(l.src[l.pos:], "\r\n") {
				l.pos += 2
			} else if l.pos < len(l.src) {
				_, size := utf8.DecodeRuneInString(l.src[l.pos:])
				l.pos += size
			}
		case '\n', '\r':
			l.fail(start, "unterminated string literal")
		default:
			l.pos++
		}
	}

	l.fail(start, "unterminated string literal")
}

// scanTemplate reads a template span starting at l.pos, just after a
// backtick or the } closing a substitution. start is the offset of that
// delimiter.
func (l *lexer) scanTemplate(start int, newline bool) token {
	tok := token{kind: tokTemplate, start: start, newlineBefore: newline}
	spanStart := l.pos

	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '`':
			tok.value = l.src[spanStart:l.pos]
			tok.tail = true
			l.pos++
			tok.end = l.pos
			return tok
		case '$':
			if strings.HasPrefix(l.src[l.pos:], "${") {
				tok.value = l.src[spanStart:l.pos]
				l.pos += 2
				tok.end = l.pos
				return tok
			}
			l.pos++
		case '\\':
			l.pos += 2
		default:
			l.pos++
		}
	}

	l.fail(start, "unterminated template literal")

	return tok
}

// scanRegExp reads a regular expression literal starting at l.pos, which
// must be a slash.
func (l *lexer) scanRegExp(newline bool) token {
	start := l.pos
	l.pos++

	inClass := false
	for {
		if l.pos >= len(l.src) {
			l.fail(start, "unterminated regular expression")
		}

		ch, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if isLineTerminator(ch) {
			l.fail(start, "unterminated regular expression")
		}
		l.pos += size

		switch {
		case ch == '\\':
			if l.pos < len(l.src) {
				_, next := utf8.DecodeRuneInString(l.src[l.pos:])
				l.pos += next
			}
		case ch == '[':
			inClass = true
		case ch == ']':
			inClass = false
		case ch == '/' && !inClass:
			for l.pos < len(l.src) {
				flag, flagSize := utf8.DecodeRuneInString(l.src[l.pos:])
				if !isIdentPart(flag) {
					break
				}
				l.pos += flagSize
			}
			return token{kind: tokRegExp, value: l.src[start:l.pos], start: start, end: l.pos, newlineBefore: newline}
		}
	}
}

func (l *lexer) scanPunct() string {
	rest := l.src[l.pos:]
	for _, punct := range punctuators {
		if strings.HasPrefix(rest, punct) {
			// ?. followed by a digit is a conditional and a number.
			if punct == "?." && len(rest) > 2 && isDigit(rune(rest[2])) {
				continue
			}
			l.pos += len(punct)
			return punct
		}
	}

	ch, _ := utf8.DecodeRuneInString(rest)
	l.fail(l.pos, "unexpected character %q", ch)

	return ""
}

func isLineTerminator(ch rune) bool {
	return ch == '\n' || ch == '\r' || ch == '\u2028' || ch == '\u2029'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func hexValue(ch rune) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10
	default:
		return -1
	}
}

func isIdentStart(ch rune) bool {
	if ch < utf8.RuneSelf {
		return ch == '$' || ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
	}

	return unicode.IsLetter(ch) || unicode.Is(unicode.Nl, ch)
}

func isIdentPart(ch rune) bool {
	if isIdentStart(ch) || isDigit(ch) {
		return true
	}
	if ch < utf8.RuneSelf {
		return false
	}

	return ch == '\u200c' || ch == '\u200d' ||
		unicode.In(ch, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}
