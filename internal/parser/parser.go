package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/lexer"
)

type Option func(*options)

type options struct {
	filename string
}

// WithFilename configures the parser to attribute all emitted spans to the
// provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// Parser implements a recursive descent parser for Quill with operator
// precedence climbing for infix expressions. Invariants:
//   - Lookahead: curTok is the token currently under examination and
//     peekTok the next one; both are views into the pre-lexed token
//     buffer, so checkpoints (mark/resetTo) are plain saved cursor
//     positions. Every parse function is entered with curTok at the first
//     token of its construct and returns with curTok at the last token;
//     the caller advances.
//   - Diagnostics: errors is an append-only accumulator of recoverable
//     diagnostics. Speculative parses (tryParse) are the only place the
//     accumulator is truncated, and only back to the length captured at
//     the checkpoint.
//   - Spans: AST node spans are composed via mergeSpan so that a parent
//     span always covers its children.
type Parser struct {
	toks []lexer.Token
	pos  int

	curTok  lexer.Token
	peekTok lexer.Token

	errors    []ParseError
	lexErrors []lexer.LexerError

	filename string
}

// New returns a parser initialised with the provided source input. The
// whole input is lexed up front: several bracket forms are disambiguated
// multiple tokens in, and the pre-lexed buffer makes arbitrary finite
// lookahead and backtracking checkpoints cheap.
func New(input string, opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	lx := lexer.New(input)
	if cfg.filename != "" {
		lx.SetFilename(cfg.filename)
	}

	var toks []lexer.Token
	for {
		tok := lx.NextToken()
		toks = append(toks, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}

	p := &Parser{
		toks:      toks,
		lexErrors: lx.Errors,
		filename:  cfg.filename,
	}
	p.syncWindow()

	return p
}

// Parse is a convenience wrapper: it parses one source unit and returns
// the module alongside all diagnostics. If the diagnostics contain any
// error severity entry the module must be treated as unusable.
func Parse(input string, opts ...Option) (*ast.Module, []diag.Diagnostic) {
	p := New(input, opts...)
	mod := p.ParseModule()
	return mod, p.Diagnostics()
}

// Errors returns all recoverable parse errors that were encountered.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// LexErrors returns the lexing failures for the unit, all of which are fatal.
func (p *Parser) LexErrors() []lexer.LexerError {
	return p.lexErrors
}

// Diagnostics returns lexer and parser diagnostics in one list.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	diags := make([]diag.Diagnostic, 0, len(p.lexErrors)+len(p.errors))
	for _, e := range p.lexErrors {
		diags = append(diags, e.ToDiagnostic())
	}
	for _, e := range p.errors {
		diags = append(diags, e.ToDiagnostic())
	}
	return diags
}

// ParseModule parses a full source unit and returns its AST. When lexing
// failed the character stream is untrustworthy and no parse is attempted;
// the caller sees the lexer diagnostics and a nil module.
func (p *Parser) ParseModule() *ast.Module {
	if len(p.lexErrors) > 0 {
		return nil
	}

	mod := ast.NewModule(p.curTok.Span)

	p.skipSeparators()

	if p.curTok.Type == lexer.MODULE {
		start := p.curTok.Span
		if p.expectPeek(lexer.UPPER_IDENT) {
			mod.Name = ast.NewIdent(p.curTok.Text, p.curTok.Span)
			mod.SetSpan(mergeSpan(start, p.curTok.Span))
			p.nextToken()
			if !lexer.IsSeparator(p.curTok.Type) && p.curTok.Type != lexer.EOF {
				p.reportError("expected newline or ';' after module header", p.curTok.Span)
			}
		} else {
			p.nextToken()
		}
		p.skipSeparators()
	}

	for p.curTok.Type != lexer.EOF {
		prevTok := p.curTok
		decls := p.parseDecl()
		for _, decl := range decls {
			appendDecl(mod, decl)
			mod.SetSpan(mergeSpan(mod.Span(), decl.Span()))
		}

		if len(decls) == 0 && p.curTok.Type != lexer.EOF {
			p.recoverDecl(p.curTok)
			// Recovery stops at a separator, consumed below, or at a
			// keyword starting the next declaration. A fresh keyword
			// re-enters the loop; one that itself failed to parse is
			// skipped so the loop always advances.
			if isDeclStart(p.curTok.Type) && !sameTokenPosition(p.curTok, prevTok) {
				continue
			}
		}

		p.nextToken()
		p.skipSeparators()
	}

	mod.SetSpan(mergeSpan(mod.Span(), p.curTok.Span))

	return mod
}

// appendDecl adds decl to the module, folding a term definition clause
// into the immediately preceding definition when it shares the head name.
// Grouping stops at the first intervening non-definition declaration.
func appendDecl(mod *ast.Module, decl ast.Decl) {
	def, ok := decl.(*ast.TermDef)
	if ok && len(mod.Decls) > 0 {
		if prev, ok := mod.Decls[len(mod.Decls)-1].(*ast.TermDef); ok && prev.Name.Name == def.Name.Name {
			prev.Clauses = append(prev.Clauses, def.Clauses...)
			prev.SetSpan(mergeSpan(prev.Span(), def.Span()))
			return
		}
	}
	if len(mod.Decls) > 0 {
		bindAnnotation(mod.Decls[len(mod.Decls)-1], decl)
	}
	mod.Decls = append(mod.Decls, decl)
}

// bindAnnotation fills a preceding bare `@ Type` annotation with the
// name of the declaration it annotates, so the standalone form yields
// the same tree as `name @ Type`.
func bindAnnotation(prev, next ast.Node) {
	ann, ok := prev.(*ast.TypeAnnotation)
	if !ok || ann.Name != nil {
		return
	}
	switch d := next.(type) {
	case *ast.TermDef:
		ann.Name = ast.NewIdent(d.Name.Name, d.Name.Span())
	case *ast.DataDef:
		ann.Name = ast.NewIdent(d.Name.Name, d.Name.Span())
	}
}

// syncWindow refreshes curTok/peekTok from the cursor position.
func (p *Parser) syncWindow() {
	last := len(p.toks) - 1
	if p.pos > last {
		p.pos = last
	}
	p.curTok = p.toks[p.pos]
	if p.pos+1 <= last {
		p.peekTok = p.toks[p.pos+1]
	} else {
		p.peekTok = p.toks[last]
	}
}

// nextToken advances the parser's token window.
func (p *Parser) nextToken() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	p.syncWindow()
}

// peekAt returns the token n positions ahead of curTok (peekAt(0) is
// curTok itself); past the end it returns the EOF token.
func (p *Parser) peekAt(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		i = len(p.toks) - 1
	}
	return p.toks[i]
}

// mark captures a backtracking checkpoint: the cursor position plus the
// diagnostic count, so a failed speculative parse leaves no trace.
type checkpoint struct {
	pos    int
	errlen int
}

func (p *Parser) mark() checkpoint {
	return checkpoint{pos: p.pos, errlen: len(p.errors)}
}

func (p *Parser) resetTo(c checkpoint) {
	p.pos = c.pos
	p.errors = p.errors[:c.errlen]
	p.syncWindow()
}

// tryParse runs fn speculatively: when fn reports failure the token
// cursor and the diagnostic accumulator are restored to the checkpoint.
func (p *Parser) tryParse(fn func() bool) bool {
	c := p.mark()
	if fn() {
		return true
	}
	p.resetTo(c)
	return false
}

// expectPeek asserts that the peek token matches the provided type and
// promotes it into curTok on success.
func (p *Parser) expectPeek(tt lexer.TokenType) bool {
	if p.peekTok.Type == tt {
		p.nextToken()
		return true
	}

	p.reportExpected("'"+string(tt)+"'", p.peekTok)
	return false
}

// skipSeparators consumes a run of newline/semicolon separator tokens.
func (p *Parser) skipSeparators() {
	for lexer.IsSeparator(p.curTok.Type) {
		p.nextToken()
	}
}

// peekPastSeparators returns the first non-separator token at or after
// peekTok, without advancing.
func (p *Parser) peekPastSeparators() lexer.Token {
	n := 1
	for lexer.IsSeparator(p.peekAt(n).Type) {
		n++
	}
	return p.peekAt(n)
}

// adjacent reports whether b starts exactly where a ends, with no
// intervening space. `Ctor[` is record syntax only under adjacency.
func adjacent(a, b lexer.Token) bool {
	return a.Span.End == b.Span.Start
}

// mergeSpan returns a span covering both start and end. Callers pass the
// earliest span first; spans are half-open.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if span.Filename == "" {
		span.Filename = end.Filename
	}

	if span.Line == 0 && end.Line != 0 {
		span.Line = end.Line
		span.Column = end.Column
		span.Start = end.Start
	}

	if end.End > span.End {
		span.End = end.End
	}

	return span
}
