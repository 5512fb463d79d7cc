// Package typescript parses TypeScript and JavaScript source into the
// shared node model.
//
// The parser is a hand-written recursive descent over an on-demand lexer.
// Ambiguous constructs such as arrow function heads and type argument
// lists are parsed speculatively: the attempt runs against a saved state
// and the state is restored if it fails. Every node records its byte range;
// parentheses are recorded as a flag on the inner node and are not part of
// its range. Comments are collected separately and anchored to nodes once
// the tree is built.
package typescript

import (
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/tsreprint/pkg/ast"
	"github.com/yaklabco/tsreprint/pkg/comments"
	"github.com/yaklabco/tsreprint/pkg/source"
)

// Grammar flavors.
const (
	FlavorTypeScript = "typescript"
	FlavorJavaScript = "javascript"
)

// Parser parses one flavor of the language.
type Parser struct {
	flavor string
	strict bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithStrict disables newline-based semicolon insertion: only a closing
// brace or the end of input may end a statement without a semicolon.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// New creates a parser for the given flavor. Unknown flavors parse as
// TypeScript.
func New(flavor string, opts ...Option) *Parser {
	if flavor != FlavorJavaScript {
		flavor = FlavorTypeScript
	}

	parser := &Parser{flavor: flavor}
	for _, opt := range opts {
		opt(parser)
	}

	return parser
}

// Flavor returns the configured flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Strict reports whether newline-based semicolon insertion is disabled.
func (p *Parser) Strict() bool {
	return p.strict
}

// Parse builds a File from content. Comments are attached to the tree and
// the tree is captured as the original for reprinting.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (file *ast.File, err error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	buf := source.New(path, string(content))
	state := newParser(buf, p.flavor, p.strict)

	defer func() {
		if r := recover(); r != nil {
			bail, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			file, err = nil, bail.err
		}
	}()

	root := state.parseProgram()

	commentList := state.commentList()
	file = ast.NewFile(buf, root, commentList, state.verbatim)
	file.SetAnchors(comments.Attach(root, commentList))
	file.Capture()

	return file, nil
}

// scope holds the function context that decides how await and yield parse.
type scope struct {
	inFunction  bool
	inAsync     bool
	inGenerator bool
}

type parser struct {
	buf    *source.Buffer
	flavor string
	strict bool

	lex     *lexer
	tok     token
	prevEnd int

	scope         scope
	noIn          bool
	noConditional bool

	verbatim []source.Range
}

func newParser(buf *source.Buffer, flavor string, strict bool) *parser {
	p := &parser{buf: buf, flavor: flavor, strict: strict}
	p.lex = newLexer(buf, p.failAt)

	return p
}

func (p *parser) commentList() []*ast.Comment {
	list := make([]*ast.Comment, 0, len(p.lex.comments))
	for _, comment := range p.lex.comments {
		list = append(list, comment)
	}
	slices.SortFunc(list, func(a, b *ast.Comment) int {
		return a.Range.Start - b.Range.Start
	})

	return list
}

// Errors and speculation.

func (p *parser) failAt(offset int, format string, args ...any) {
	line, col := p.buf.LineAt(offset)
	panic(bailout{err: &ParseError{
		Path:    p.buf.Path(),
		Line:    line,
		Column:  col,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	}})
}

func (p *parser) unexpected() {
	p.failAt(p.tok.start, "unexpected %s", p.tok)
}

type parserState struct {
	pos      int
	tok      token
	prevEnd  int
	verbatim int
	noIn     bool
	noCond   bool
	scope    scope
}

func (p *parser) save() parserState {
	return parserState{
		pos:      p.lex.pos,
		tok:      p.tok,
		prevEnd:  p.prevEnd,
		verbatim: len(p.verbatim),
		noIn:     p.noIn,
		noCond:   p.noConditional,
		scope:    p.scope,
	}
}

func (p *parser) restore(state parserState) {
	p.lex.pos = state.pos
	p.tok = state.tok
	p.prevEnd = state.prevEnd
	p.verbatim = p.verbatim[:state.verbatim]
	p.noIn = state.noIn
	p.noConditional = state.noCond
	p.scope = state.scope
}

// try runs fn speculatively. On a parse error the state is rolled back and
// try reports false.
func (p *parser) try(fn func()) (ok bool) {
	saved := p.save()

	defer func() {
		if r := recover(); r != nil {
			if _, isBailout := r.(bailout); !isBailout {
				panic(r)
			}
			p.restore(saved)
			ok = false
		}
	}()

	fn()

	return true
}

// lookahead evaluates fn and always rolls back.
func (p *parser) lookahead(fn func() bool) (ok bool) {
	saved := p.save()

	defer func() {
		if r := recover(); r != nil {
			if _, isBailout := r.(bailout); !isBailout {
				panic(r)
			}
			ok = false
		}
		p.restore(saved)
	}()

	return fn()
}

// Tokens.

func (p *parser) next() {
	p.prevEnd = p.tok.end
	p.tok = p.lex.scan()
}

// peek returns the token after the current one.
func (p *parser) peek() token {
	pos := p.lex.pos
	tok := p.lex.scan()
	p.lex.pos = pos

	return tok
}

func (p *parser) is(punct string) bool {
	return p.tok.kind == tokPunct && p.tok.value == punct
}

// isName reports whether the current token is the unescaped word.
func (p *parser) isName(word string) bool {
	return p.tok.kind == tokName && !p.tok.escaped && p.tok.value == word
}

func (p *parser) eat(punct string) bool {
	if p.is(punct) {
		p.next()
		return true
	}

	return false
}

func (p *parser) eatName(word string) bool {
	if p.isName(word) {
		p.next()
		return true
	}

	return false
}

func (p *parser) expect(punct string) {
	if !p.eat(punct) {
		p.failAt(p.tok.start, "'%s' expected, found %s", punct, p.tok)
	}
}

func (p *parser) expectName(word string) {
	if !p.eatName(word) {
		p.failAt(p.tok.start, "'%s' expected, found %s", word, p.tok)
	}
}

func peekIs(tok token, punct string) bool {
	return tok.kind == tokPunct && tok.value == punct
}

func peekName(tok token, word string) bool {
	return tok.kind == tokName && !tok.escaped && tok.value == word
}

// semicolon ends a statement, applying automatic semicolon insertion.
func (p *parser) semicolon() {
	if p.eat(";") {
		return
	}
	if p.is("}") || p.tok.kind == tokEOF {
		return
	}
	if p.tok.newlineBefore && !p.strict {
		return
	}

	p.failAt(p.tok.start, "';' expected, found %s", p.tok)
}

// rescanGreater joins a > token with the characters right after it into
// >=, >>, >>=, >>> or >>>=.
func (p *parser) rescanGreater() {
	if !p.is(">") {
		return
	}

	rest := p.lex.src[p.tok.end:]
	for _, suffix := range []string{">>=", ">>", ">=", ">", "="} {
		if len(rest) >= len(suffix) && rest[:len(suffix)] == suffix {
			p.tok.value = ">" + suffix
			p.tok.end += len(suffix)
			p.lex.pos = p.tok.end
			return
		}
	}
}

func (p *parser) rescanRegExp() {
	p.lex.pos = p.tok.start
	p.tok = p.lex.scanRegExp(p.tok.newlineBefore)
}

func (p *parser) rescanTemplate() {
	if !p.is("}") {
		p.failAt(p.tok.start, "'}' expected in template literal, found %s", p.tok)
	}

	p.lex.pos = p.tok.start + 1
	p.tok = p.lex.scanTemplate(p.tok.start, p.tok.newlineBefore)
}

// Context switches.

func (p *parser) withIn(fn func() *ast.Node) *ast.Node {
	saved := p.noIn
	p.noIn = false
	defer func() { p.noIn = saved }()

	return fn()
}

func (p *parser) withNoIn(fn func() *ast.Node) *ast.Node {
	saved := p.noIn
	p.noIn = true
	defer func() { p.noIn = saved }()

	return fn()
}

func (p *parser) withScope(inner scope, fn func()) {
	saved, savedIn := p.scope, p.noIn
	p.scope, p.noIn = inner, false
	defer func() { p.scope, p.noIn = saved, savedIn }()

	fn()
}

func (p *parser) typescript() bool {
	return p.flavor == FlavorTypeScript
}

func (p *parser) requireTypeScript(what string) {
	if !p.typescript() {
		p.failAt(p.tok.start, "%s is only allowed in TypeScript", what)
	}
}

// Nodes.

func (p *parser) finish(n *ast.Node, start int) *ast.Node {
	n.Range = p.buf.NewRange(start, p.prevEnd)
	return n
}

// extend stretches the range of n to the end of the previous token.
func (p *parser) extend(n *ast.Node) {
	n.Range = p.buf.NewRange(n.Range.Start, p.prevEnd)
}

func (p *parser) markVerbatim(n *ast.Node) {
	for _, ch := range n.Range.Text() {
		if ch == '\n' || ch == '\r' {
			p.verbatim = append(p.verbatim, n.Range)
			return
		}
	}
}

func (p *parser) parseProgram() *ast.Node {
	interpreter := p.lex.interpreter()
	p.next()

	var body []*ast.Node
	for p.tok.kind != tokEOF {
		body = append(body, p.parseStatement())
	}

	program := ast.New(ast.Program).Set("body", body)
	if interpreter != "" {
		program.Set("interpreter", interpreter)
	}
	program.Range = p.buf.NewRange(0, p.buf.Len())

	return program
}
