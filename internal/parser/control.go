package parser

import (
	"fmt"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/lexer"
)

// parseIfExpr parses a multi-way conditional: a mandatory `cond: branch`,
// further arms separated by newlines only, and a final `else branch`. In
// expression position a missing else is an error; in statement position
// (stmtPos) the else may be omitted and the conditional's value is
// discarded.
func (p *Parser) parseIfExpr(stmtPos bool) ast.Expr {
	start := p.curTok.Span
	var arms []*ast.IfArm
	var els ast.Expr

	p.nextToken()
	cond := p.parseExpr()
	if cond == nil {
		return nil
	}
	if !p.expectPeek(lexer.COLON) {
		return nil
	}
	p.nextToken()
	body := p.parseExpr()
	if body == nil {
		return nil
	}
	arms = append(arms, ast.NewIfArm(cond, body, mergeSpan(cond.Span(), body.Span())))

	for {
		if p.peekTok.Type == lexer.ELSE {
			p.nextToken() // 'else'
			p.nextToken()
			els = p.parseExpr()
			if els == nil {
				return nil
			}
			break
		}
		if p.peekTok.Type != lexer.NEWLINE {
			break
		}

		// A newline may continue the conditional with another arm or an
		// else, or it may end it. Commit only when a full `cond:` head
		// parses; otherwise the newline belongs to the surrounding block.
		cp := p.mark()
		p.nextToken()
		for p.curTok.Type == lexer.NEWLINE {
			p.nextToken()
		}
		if p.curTok.Type == lexer.ELSE {
			p.nextToken()
			els = p.parseExpr()
			if els == nil {
				return nil
			}
			break
		}

		var armCond ast.Expr
		ok := p.tryParse(func() bool {
			c := p.parseExpr()
			if c == nil || p.peekTok.Type != lexer.COLON {
				return false
			}
			armCond = c
			return true
		})
		if !ok {
			p.resetTo(cp)
			break
		}
		p.nextToken() // ':'
		p.nextToken()
		armBody := p.parseExpr()
		if armBody == nil {
			return nil
		}
		arms = append(arms, ast.NewIfArm(armCond, armBody, mergeSpan(armCond.Span(), armBody.Span())))
	}

	end := arms[len(arms)-1].Span()
	if els != nil {
		end = els.Span()
	}
	span := mergeSpan(start, end)
	if els == nil && !stmtPos {
		p.reportErrorCode(diag.CodeMissingElseBranch,
			"a conditional in value position needs an else branch", span)
	}
	return ast.NewIfExpr(arms, els, span)
}

// parseCaseExpr parses `case scrut1: scrut2: ... : [clauses]`. Every
// clause must carry exactly one pattern per scrutinee.
func (p *Parser) parseCaseExpr() ast.Expr {
	start := p.curTok.Span
	var scrutinees []ast.Expr

	for {
		p.nextToken()
		scrut := p.parseExpr()
		if scrut == nil {
			return nil
		}
		scrutinees = append(scrutinees, scrut)
		if !p.expectPeek(lexer.COLON) {
			return nil
		}
		if p.peekTok.Type == lexer.LBRACKET {
			break
		}
	}

	p.nextToken() // '['
	var clauses []*ast.CaseClause
	p.nextToken()
	p.skipSeparators()
	for p.curTok.Type != lexer.RBRACKET && p.curTok.Type != lexer.EOF {
		prevTok := p.curTok
		clause := p.parseCaseClause(len(scrutinees))
		if clause != nil {
			clauses = append(clauses, clause)
			p.nextToken()
		} else {
			p.recoverStatement(prevTok)
		}
		p.skipSeparators()
	}
	if p.curTok.Type != lexer.RBRACKET {
		p.reportExpected("']'", p.curTok)
	}
	return ast.NewCaseExpr(scrutinees, clauses, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseCaseClause(arity int) *ast.CaseClause {
	pats := p.parseClauseParams()
	body := p.parseExpr()
	if body == nil {
		return nil
	}
	span := body.Span()
	if len(pats) > 0 {
		span = mergeSpan(pats[0].Span(), span)
	}
	if len(pats) != arity {
		p.reportErrorCode(diag.CodeArityMismatch,
			fmt.Sprintf("case clause has %d pattern(s) but the case has %d scrutinee(s)",
				len(pats), arity),
			span)
	}
	return ast.NewCaseClause(pats, body, span)
}
