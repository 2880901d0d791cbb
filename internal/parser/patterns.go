package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/lexer"
)

// startsPatternAtom reports whether tok can begin an atomic pattern, the
// shape allowed as a constructor or definition argument.
func startsPatternAtom(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.LOWER_IDENT, lexer.UPPER_IDENT,
		lexer.INT, lexer.FLOAT, lexer.STRING, lexer.CHAR,
		lexer.LPAREN, lexer.LBRACE:
		return true
	}
	return false
}

// parsePattern parses a pattern in application position: a constructor
// may be applied to atomic argument patterns, `Some x`.
func (p *Parser) parsePattern() ast.Pattern {
	if p.curTok.Type != lexer.UPPER_IDENT {
		return p.parsePatternAtom()
	}
	name := ast.NewIdent(p.curTok.Text, p.curTok.Span)
	if p.peekTok.Type == lexer.LBRACKET && adjacent(p.curTok, p.peekTok) {
		return p.parseCtorFieldsPat(name)
	}
	var args []ast.Pattern
	end := name.Span()
	for startsPatternAtom(p.peekTok) {
		p.nextToken()
		arg := p.parsePatternAtom()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		end = arg.Span()
	}
	return ast.NewCtorPat(name, args, nil, mergeSpan(name.Span(), end))
}

func (p *Parser) parsePatternAtom() ast.Pattern {
	switch p.curTok.Type {
	case lexer.LOWER_IDENT:
		if p.curTok.Text == "_" {
			return ast.NewWildcardPat(p.curTok.Span)
		}
		name := ast.NewIdent(p.curTok.Text, p.curTok.Span)
		return ast.NewVarPat(name, name.Span())
	case lexer.UPPER_IDENT:
		name := ast.NewIdent(p.curTok.Text, p.curTok.Span)
		if p.peekTok.Type == lexer.LBRACKET && adjacent(p.curTok, p.peekTok) {
			return p.parseCtorFieldsPat(name)
		}
		return ast.NewCtorPat(name, nil, nil, name.Span())
	case lexer.INT:
		return ast.NewLitPat(ast.NewIntLit(p.curTok.Text, p.curTok.Span), p.curTok.Span)
	case lexer.FLOAT:
		return ast.NewLitPat(ast.NewFloatLit(p.curTok.Text, p.curTok.Span), p.curTok.Span)
	case lexer.STRING:
		return ast.NewLitPat(ast.NewStringLit(p.curTok.Value, p.curTok.Span), p.curTok.Span)
	case lexer.CHAR:
		return ast.NewLitPat(ast.NewCharLit(p.curTok.Value, p.curTok.Span), p.curTok.Span)
	case lexer.LPAREN:
		return p.parseParenPat()
	case lexer.LBRACE:
		return p.parseBracePat()
	default:
		p.reportExpected("a pattern", p.curTok)
		return nil
	}
}

// parseParenPat handles grouping, the unit pattern '()' and tuple
// patterns.
func (p *Parser) parseParenPat() ast.Pattern {
	start := p.curTok.Span
	p.nextToken()
	if p.curTok.Type == lexer.RPAREN {
		return ast.NewTuplePat(nil, mergeSpan(start, p.curTok.Span))
	}
	first := p.parsePattern()
	if first == nil {
		return nil
	}
	if p.peekTok.Type == lexer.COMMA {
		elems := []ast.Pattern{first}
		for p.peekTok.Type == lexer.COMMA {
			p.nextToken()
			p.nextToken()
			elem := p.parsePattern()
			if elem == nil {
				return nil
			}
			elems = append(elems, elem)
		}
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
		return ast.NewTuplePat(elems, mergeSpan(start, p.curTok.Span))
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return first
}

// parseBracePat parses a list pattern `{a, b}` or a cons pattern
// `{head | tail}`.
func (p *Parser) parseBracePat() ast.Pattern {
	start := p.curTok.Span
	p.nextToken()
	if p.curTok.Type == lexer.RBRACE {
		return ast.NewListPat(nil, mergeSpan(start, p.curTok.Span))
	}
	first := p.parsePattern()
	if first == nil {
		return nil
	}
	if p.peekTok.Type == lexer.PIPE {
		p.nextToken()
		p.nextToken()
		tail := p.parsePattern()
		if tail == nil {
			return nil
		}
		if !p.expectPeek(lexer.RBRACE) {
			return nil
		}
		return ast.NewConsPat(first, tail, mergeSpan(start, p.curTok.Span))
	}
	elems := []ast.Pattern{first}
	for p.peekTok.Type == lexer.COMMA {
		p.nextToken()
		p.nextToken()
		elem := p.parsePattern()
		if elem == nil {
			return nil
		}
		elems = append(elems, elem)
	}
	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return ast.NewListPat(elems, mergeSpan(start, p.curTok.Span))
}

// parseCtorFieldsPat parses the bracketed argument list of a
// constructor pattern, `Circle[radius = r]` or the punned
// `Circle[radius]`. Positional arguments are also accepted,
// `Pair[a, b]`, but cannot be mixed with named or punned fields.
// Entered with curTok at the constructor name, peek at its '['.
func (p *Parser) parseCtorFieldsPat(name *ast.Ident) ast.Pattern {
	p.nextToken() // '['
	sawNamed := false
	var args []ast.Pattern
	fields, _ := parseDelimited(p, delimitedConfig{
		Closing:    lexer.RBRACKET,
		Comma:      true,
		Newline:    true,
		AllowEmpty: true,
		ElementMsg: "expected a field pattern",
	}, func(idx int) (*ast.FieldPat, bool) {
		if p.curTok.Type == lexer.LOWER_IDENT && p.curTok.Text != "_" {
			fieldName := ast.NewIdent(p.curTok.Text, p.curTok.Span)
			switch {
			case p.peekTok.Type == lexer.ASSIGN:
				p.nextToken() // '='
				p.nextToken()
				pat := p.parsePattern()
				if pat == nil {
					return nil, false
				}
				sawNamed = true
				return ast.NewFieldPat(fieldName, pat, false, mergeSpan(fieldName.Span(), pat.Span())), true
			case p.peekTok.Type == lexer.COMMA || p.peekTok.Type == lexer.RBRACKET ||
				lexer.IsSeparator(p.peekTok.Type):
				sawNamed = true
				pun := ast.NewVarPat(ast.NewIdent(fieldName.Name, fieldName.Span()), fieldName.Span())
				return ast.NewFieldPat(fieldName, pun, true, fieldName.Span()), true
			}
		}
		pat := p.parsePattern()
		if pat == nil {
			return nil, false
		}
		if sawNamed {
			p.reportErrorCode(diag.CodeMalformedFieldPun,
				"expected a named field pattern ('name = pattern') or a field pun (bare name)",
				pat.Span())
		}
		args = append(args, pat)
		return nil, true
	})

	kept := fields[:0]
	for _, f := range fields {
		if f != nil {
			kept = append(kept, f)
		}
	}
	if len(args) > 0 && len(kept) > 0 {
		p.reportErrorCode(diag.CodeMalformedFieldPun,
			"positional and named constructor arguments cannot be mixed",
			p.curTok.Span)
	}
	return ast.NewCtorPat(name, args, kept, mergeSpan(name.Span(), p.curTok.Span))
}
