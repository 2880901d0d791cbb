package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/lexer"
)

// parseTypeExpr parses a full type expression, including a leading
// constraint context `Eq a => ...` or `(Eq a, Show a) => ...`.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	if !p.typeHasConstraintArrow() {
		return p.parseArrowType()
	}

	start := p.curTok.Span
	var constraints []ast.TypeExpr
	if p.curTok.Type == lexer.LPAREN {
		cs, ok := parseDelimited(p, delimitedConfig{
			Closing:    lexer.RPAREN,
			Comma:      true,
			ElementMsg: "expected a constraint",
		}, func(idx int) (ast.TypeExpr, bool) {
			c := p.parseAppType()
			return c, c != nil
		})
		if !ok {
			return nil
		}
		constraints = cs
	} else {
		c := p.parseAppType()
		if c == nil {
			return nil
		}
		constraints = []ast.TypeExpr{c}
	}
	if !p.expectPeek(lexer.FATARROW) {
		return nil
	}
	p.nextToken()
	typ := p.parseTypeExpr()
	if typ == nil {
		return nil
	}
	return ast.NewQualType(constraints, typ, mergeSpan(start, typ.Span()))
}

// typeHasConstraintArrow scans ahead for a '=>' at the current depth
// before anything that would end the type. Constraints only appear at
// the front, so a '->' at the same depth settles the question first.
func (p *Parser) typeHasConstraintArrow() bool {
	depth := 0
	for i := 0; ; i++ {
		tok := p.peekAt(i)
		switch tok.Type {
		case lexer.LBRACKET, lexer.LBRACE, lexer.LPAREN:
			depth++
		case lexer.RBRACKET, lexer.RBRACE, lexer.RPAREN:
			if depth == 0 {
				return false
			}
			depth--
		case lexer.FATARROW:
			if depth == 0 {
				return true
			}
		case lexer.ARROW, lexer.ASSIGN, lexer.BIND, lexer.COLON, lexer.COMMA,
			lexer.NEWLINE, lexer.SEMICOLON, lexer.EOF:
			if depth == 0 {
				return false
			}
		}
	}
}

// parseArrowType parses a function type; '->' associates to the right.
func (p *Parser) parseArrowType() ast.TypeExpr {
	left := p.parseAppType()
	if left == nil {
		return nil
	}
	if p.peekTok.Type == lexer.ARROW {
		p.nextToken()
		p.nextToken()
		right := p.parseArrowType()
		if right == nil {
			return nil
		}
		return ast.NewArrowType(left, right, mergeSpan(left.Span(), right.Span()))
	}
	return left
}

func startsTypeAtom(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.LOWER_IDENT, lexer.UPPER_IDENT, lexer.LPAREN:
		return true
	}
	return false
}

// parseAppType parses type application, `Result e a`; application
// associates to the left. An effect type may stand at the head.
func (p *Parser) parseAppType() ast.TypeExpr {
	fn := p.parseTypeAtom()
	if fn == nil {
		return nil
	}
	for startsTypeAtom(p.peekTok) {
		p.nextToken()
		arg := p.parseTypeAtom()
		if arg == nil {
			return nil
		}
		fn = ast.NewAppType(fn, arg, mergeSpan(fn.Span(), arg.Span()))
	}
	return fn
}

func (p *Parser) parseTypeAtom() ast.TypeExpr {
	switch p.curTok.Type {
	case lexer.LOWER_IDENT:
		name := ast.NewIdent(p.curTok.Text, p.curTok.Span)
		return ast.NewVarType(name, name.Span())
	case lexer.UPPER_IDENT:
		name := ast.NewIdent(p.curTok.Text, p.curTok.Span)
		return ast.NewConType(name, name.Span())
	case lexer.LPAREN:
		return p.parseParenType()
	case lexer.LBRACKET:
		return p.parseEffectType()
	default:
		p.reportExpected("a type", p.curTok)
		return nil
	}
}

// parseParenType handles grouping, the unit type '()' and tuple types.
func (p *Parser) parseParenType() ast.TypeExpr {
	start := p.curTok.Span
	p.nextToken()
	if p.curTok.Type == lexer.RPAREN {
		return ast.NewTupleType(nil, mergeSpan(start, p.curTok.Span))
	}
	first := p.parseTypeExpr()
	if first == nil {
		return nil
	}
	if p.peekTok.Type == lexer.COMMA {
		elems := []ast.TypeExpr{first}
		for p.peekTok.Type == lexer.COMMA {
			p.nextToken()
			p.nextToken()
			elem := p.parseTypeExpr()
			if elem == nil {
				return nil
			}
			elems = append(elems, elem)
		}
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
		return ast.NewTupleType(elems, mergeSpan(start, p.curTok.Span))
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return first
}

// parseEffectType parses `[Effect args..., row] Result`. A bare
// lowercase entry is the row variable; it must be unique and come last.
func (p *Parser) parseEffectType() ast.TypeExpr {
	start := p.curTok.Span
	entries, ok := parseDelimited(p, delimitedConfig{
		Closing:    lexer.RBRACKET,
		Comma:      true,
		AllowEmpty: true,
		ElementMsg: "expected an effect",
	}, func(idx int) (ast.TypeExpr, bool) {
		entry := p.parseAppType()
		return entry, entry != nil
	})
	if !ok {
		return nil
	}

	var effects []ast.TypeExpr
	var row *ast.Ident
	for i, entry := range entries {
		v, isVar := entry.(*ast.VarType)
		if !isVar {
			effects = append(effects, entry)
			continue
		}
		switch {
		case i != len(entries)-1:
			p.reportErrorCode(diag.CodeInvalidEffectRow,
				"a row variable must be the last entry of an effect row", v.Span())
		case row != nil:
			p.reportErrorCode(diag.CodeInvalidEffectRow,
				"an effect row may name at most one row variable", v.Span())
		default:
			row = v.Name
		}
	}

	if !startsTypeAtom(p.peekTok) {
		p.reportExpected("a result type after the effect row", p.peekTok)
		return ast.NewEffectType(effects, row, nil, mergeSpan(start, p.curTok.Span))
	}
	p.nextToken()
	result := p.parseAppType()
	if result == nil {
		return nil
	}
	return ast.NewEffectType(effects, row, result, mergeSpan(start, result.Span()))
}
