package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/lexer"
)

// Binary operator precedence, lowest binds loosest. All infix operators
// associate to the left. Operators outside this table parse at sumPrec
// and are left for name resolution to reject.
const (
	orPrec      = 1
	andPrec     = 2
	equalPrec   = 3
	comparePrec = 4
	concatPrec  = 5
	sumPrec     = 6
	productPrec = 7
)

var binaryPrec = map[string]int{
	"||": orPrec,
	"&&": andPrec,
	"==": equalPrec,
	"!=": equalPrec,
	"<":  comparePrec,
	">":  comparePrec,
	"<=": comparePrec,
	">=": comparePrec,
	"++": concatPrec,
	"+":  sumPrec,
	"-":  sumPrec,
	"*":  productPrec,
	"/":  productPrec,
	"%":  productPrec,
}

func infixPrecedence(op string) int {
	if prec, ok := binaryPrec[op]; ok {
		return prec
	}
	return sumPrec
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinaryExpr(1)
}

func (p *Parser) parseBinaryExpr(minPrec int) ast.Expr {
	left := p.parseUnaryExpr()
	if left == nil {
		return nil
	}
	for p.peekTok.Type == lexer.OP {
		prec := infixPrecedence(p.peekTok.Text)
		if prec < minPrec {
			break
		}
		op := p.peekTok.Text
		p.nextToken() // the operator
		p.nextToken() // first token of the right operand
		right := p.parseBinaryExpr(prec + 1)
		if right == nil {
			return nil
		}
		left = ast.NewBinaryExpr(op, left, right, mergeSpan(left.Span(), right.Span()))
	}
	return left
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	if p.curTok.Type == lexer.OP && (p.curTok.Text == "-" || p.curTok.Text == "!") {
		opTok := p.curTok
		p.nextToken()
		operand := p.parseUnaryExpr()
		if operand == nil {
			return nil
		}
		return ast.NewUnaryExpr(opTok.Text, operand, mergeSpan(opTok.Span, operand.Span()))
	}
	return p.parseApplication()
}

// startsAtom reports whether tok can begin an application argument.
// Function application is juxtaposition, so the argument list ends at the
// first token that cannot start an atom.
func startsAtom(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.LOWER_IDENT, lexer.UPPER_IDENT,
		lexer.INT, lexer.FLOAT, lexer.STRING, lexer.CHAR,
		lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
		return true
	}
	return false
}

func (p *Parser) parseApplication() ast.Expr {
	fn := p.parsePostfixExpr()
	if fn == nil {
		return nil
	}
	for startsAtom(p.peekTok) {
		p.nextToken()
		arg := p.parsePostfixExpr()
		if arg == nil {
			return nil
		}
		fn = ast.NewApplyExpr(fn, arg, mergeSpan(fn.Span(), arg.Span()))
	}
	return fn
}

// parsePostfixExpr parses an atom followed by any number of '.' suffixes:
// '.field' projects a field and '.[fields]' is a functional record update.
func (p *Parser) parsePostfixExpr() ast.Expr {
	expr := p.parseAtom()
	for expr != nil && p.peekTok.Type == lexer.DOT {
		p.nextToken() // the '.'
		switch p.peekTok.Type {
		case lexer.LOWER_IDENT:
			p.nextToken()
			field := ast.NewIdent(p.curTok.Text, p.curTok.Span)
			expr = ast.NewFieldAccess(expr, field, mergeSpan(expr.Span(), p.curTok.Span))
		case lexer.LBRACKET:
			p.nextToken()
			fields, _ := p.parseRecordFields(false)
			expr = ast.NewRecordUpdate(expr, fields, mergeSpan(expr.Span(), p.curTok.Span))
		default:
			p.reportExpected("a field name or '[' after '.'", p.peekTok)
			return expr
		}
	}
	return expr
}

func (p *Parser) parseAtom() ast.Expr {
	switch p.curTok.Type {
	case lexer.INT:
		return ast.NewIntLit(p.curTok.Text, p.curTok.Span)
	case lexer.FLOAT:
		return ast.NewFloatLit(p.curTok.Text, p.curTok.Span)
	case lexer.STRING:
		return ast.NewStringLit(p.curTok.Value, p.curTok.Span)
	case lexer.CHAR:
		return ast.NewCharLit(p.curTok.Value, p.curTok.Span)
	case lexer.LOWER_IDENT:
		return ast.NewIdent(p.curTok.Text, p.curTok.Span)
	case lexer.UPPER_IDENT:
		ctor := ast.NewIdent(p.curTok.Text, p.curTok.Span)
		if p.peekTok.Type == lexer.LBRACKET && adjacent(p.curTok, p.peekTok) {
			p.nextToken()
			fields, _ := p.parseRecordFields(true)
			return ast.NewRecordExpr(ctor, fields, mergeSpan(ctor.Span(), p.curTok.Span))
		}
		return ctor
	case lexer.DOT:
		// '.[fields]' with no target is an update lambda.
		if p.peekTok.Type == lexer.LBRACKET && adjacent(p.curTok, p.peekTok) {
			start := p.curTok.Span
			p.nextToken()
			fields, _ := p.parseRecordFields(false)
			return ast.NewUpdateLambda(fields, mergeSpan(start, p.curTok.Span))
		}
		p.reportExpected("'[' after '.'", p.peekTok)
		return nil
	case lexer.LPAREN:
		return p.parseParenExpr()
	case lexer.LBRACKET:
		return p.parseBracketExpr()
	case lexer.LBRACE:
		return p.parseBraceExpr()
	case lexer.IF:
		return p.parseIfExpr(false)
	case lexer.CASE:
		return p.parseCaseExpr()
	default:
		p.reportExpected("an expression", p.curTok)
		return nil
	}
}

// parseParenExpr handles grouping, the unit value '()' and tuples.
func (p *Parser) parseParenExpr() ast.Expr {
	start := p.curTok.Span
	p.nextToken()
	if p.curTok.Type == lexer.RPAREN {
		return ast.NewTupleExpr(nil, mergeSpan(start, p.curTok.Span))
	}
	first := p.parseExpr()
	if first == nil {
		return nil
	}
	if p.peekTok.Type == lexer.COMMA {
		elems := []ast.Expr{first}
		for p.peekTok.Type == lexer.COMMA {
			p.nextToken()
			p.nextToken()
			elem := p.parseExpr()
			if elem == nil {
				return nil
			}
			elems = append(elems, elem)
		}
		if !p.expectPeek(lexer.RPAREN) {
			return nil
		}
		return ast.NewTupleExpr(elems, mergeSpan(start, p.curTok.Span))
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return first
}

// parseRecordFields parses the field list of a record construction,
// update or update lambda. Entered with curTok at '[', returns with
// curTok at ']'. Positional arguments are only legal in constructions
// and never after a named or punned field.
func (p *Parser) parseRecordFields(allowPositional bool) ([]*ast.RecordField, bool) {
	sawNamed := false
	return parseDelimited(p, delimitedConfig{
		Closing:    lexer.RBRACKET,
		Comma:      true,
		Newline:    true,
		AllowEmpty: true,
		ElementMsg: "expected a record field",
	}, func(idx int) (*ast.RecordField, bool) {
		if p.curTok.Type == lexer.LOWER_IDENT {
			name := ast.NewIdent(p.curTok.Text, p.curTok.Span)
			switch {
			case p.peekTok.Type == lexer.ASSIGN:
				p.nextToken() // '='
				p.nextToken()
				value := p.parseExpr()
				if value == nil {
					return nil, false
				}
				sawNamed = true
				return ast.NewRecordField(name, value, false, mergeSpan(name.Span(), value.Span())), true
			case p.peekTok.Type == lexer.COMMA || p.peekTok.Type == lexer.RBRACKET ||
				lexer.IsSeparator(p.peekTok.Type):
				// Bare lowercase identifier is always a field pun.
				sawNamed = true
				return ast.NewRecordField(name, ast.NewIdent(name.Name, name.Span()), true, name.Span()), true
			}
		}
		value := p.parseExpr()
		if value == nil {
			return nil, false
		}
		if !allowPositional || sawNamed {
			p.reportErrorCode(diag.CodeMalformedFieldPun,
				"expected a named field ('name = expr') or a field pun (bare name)",
				value.Span())
		}
		return ast.NewRecordField(nil, value, false, value.Span()), true
	})
}
