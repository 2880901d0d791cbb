package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/lexer"
)

// bracketForm is the grammatical role a '[' turned out to play.
type bracketForm int

const (
	bracketBlock bracketForm = iota
	bracketLambda
	bracketSection
	bracketAccessor
	bracketAmbiguous
)

// classifyBracket decides what a '[' opens by scanning ahead at the
// bracket's own nesting depth, without consuming anything. The decision
// tokens, in the order they settle the question:
//
//	'.' first            accessor lambda  [.field]
//	operator first       operator section [+ 1]
//	'if'/'case' first    scoping block (a clause head is a pattern)
//	operand op ']'       operator section [n *]
//	':' at depth 0       function literal (lambda, case lambda, handler)
//	'=', '=!', separator scoping block
//	']' with no decision scoping block (single expression)
//
// Only an unclosed bracket is genuinely unclassifiable.
func (p *Parser) classifyBracket() bracketForm {
	i := 1 // peekAt(1) is the first token after '[' when curTok is '['
	for lexer.IsSeparator(p.peekAt(i).Type) {
		i++
	}
	first := p.peekAt(i)

	switch first.Type {
	case lexer.DOT:
		return bracketAccessor
	case lexer.OP, lexer.PIPE:
		return bracketSection
	case lexer.RBRACKET:
		return bracketBlock // empty brackets; the block parser reports it
	case lexer.IF, lexer.CASE:
		// A clause head is a pattern and can never start with these
		// keywords; their ':' belongs to the statement itself.
		return bracketBlock
	}

	// Left section: exactly one simple operand, an operator, ']'.
	if isSectionOperand(first.Type) &&
		isSectionOp(p.peekAt(i+1).Type) &&
		p.peekAt(i+2).Type == lexer.RBRACKET {
		return bracketSection
	}

	depth := 0
	for j := i; ; j++ {
		tok := p.peekAt(j)
		switch tok.Type {
		case lexer.LBRACKET, lexer.LBRACE, lexer.LPAREN:
			depth++
		case lexer.RBRACKET, lexer.RBRACE, lexer.RPAREN:
			if depth == 0 {
				return bracketBlock
			}
			depth--
		case lexer.COLON:
			if depth == 0 {
				return bracketLambda
			}
		case lexer.ASSIGN, lexer.BIND, lexer.NEWLINE, lexer.SEMICOLON:
			if depth == 0 {
				return bracketBlock
			}
		case lexer.EOF:
			return bracketAmbiguous
		}
	}
}

func isSectionOperand(tt lexer.TokenType) bool {
	switch tt {
	case lexer.LOWER_IDENT, lexer.UPPER_IDENT,
		lexer.INT, lexer.FLOAT, lexer.STRING, lexer.CHAR:
		return true
	}
	return false
}

func isSectionOp(tt lexer.TokenType) bool {
	return tt == lexer.OP || tt == lexer.PIPE
}

// parseBracketExpr dispatches a '[' in expression position to the form
// the classifier settled on. Entered with curTok at '[', returns with
// curTok at ']'.
func (p *Parser) parseBracketExpr() ast.Expr {
	switch p.classifyBracket() {
	case bracketAccessor:
		return p.parseAccessorLambda()
	case bracketSection:
		return p.parseSectionExpr()
	case bracketLambda:
		return p.parseLambdaExpr()
	case bracketBlock:
		return p.parseBlockExpr()
	default:
		p.reportErrorCode(diag.CodeAmbiguousBracketForm,
			"cannot determine what this '[' opens: the bracket is never closed",
			p.curTok.Span)
		p.recoverStatement(p.curTok)
		return nil
	}
}

// parseAccessorLambda parses `[.field]`.
func (p *Parser) parseAccessorLambda() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // '.'
	if p.curTok.Type != lexer.DOT {
		p.reportExpected("'.'", p.curTok)
		return nil
	}
	if !p.expectPeek(lexer.LOWER_IDENT) {
		return nil
	}
	field := ast.NewIdent(p.curTok.Text, p.curTok.Span)
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return ast.NewAccessorLambda(field, mergeSpan(start, p.curTok.Span))
}

// parseSectionExpr parses an operator section: `[+]`, `[+ 1]` binds the
// right operand, `[1 +]` binds the left.
func (p *Parser) parseSectionExpr() ast.Expr {
	start := p.curTok.Span
	p.nextToken()

	if isSectionOp(p.curTok.Type) {
		op := p.curTok.Text
		if p.peekTok.Type == lexer.RBRACKET {
			p.nextToken()
			return ast.NewSectionExpr(op, nil, nil, mergeSpan(start, p.curTok.Span))
		}
		p.nextToken()
		operand := p.parseApplication()
		if operand == nil {
			return nil
		}
		if !p.expectPeek(lexer.RBRACKET) {
			return nil
		}
		return ast.NewSectionExpr(op, nil, operand, mergeSpan(start, p.curTok.Span))
	}

	operand := p.parseAtom()
	if operand == nil {
		return nil
	}
	p.nextToken()
	if !isSectionOp(p.curTok.Type) {
		p.reportExpected("an operator", p.curTok)
		return nil
	}
	op := p.curTok.Text
	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}
	return ast.NewSectionExpr(op, operand, nil, mergeSpan(start, p.curTok.Span))
}

// parseLambdaExpr parses a bracketed function literal: one or more
// clauses separated by newlines or semicolons. A clause whose head
// contains a '|' before its ':' is an effect-handler clause.
func (p *Parser) parseLambdaExpr() ast.Expr {
	start := p.curTok.Span
	var clauses []ast.FnClause

	p.nextToken()
	p.skipSeparators()
	for p.curTok.Type != lexer.RBRACKET && p.curTok.Type != lexer.EOF {
		prevTok := p.curTok
		clause := p.parseFnClause()
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
	return ast.NewLambdaExpr(clauses, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseFnClause() ast.FnClause {
	if p.clauseHasPipe() {
		return p.parseHandlerClause()
	}
	params := p.parseClauseParams()
	body := p.parseExpr()
	if body == nil {
		return nil
	}
	if len(params) == 0 {
		p.reportError("a function clause needs at least one 'pattern:' before its body", body.Span())
	}
	span := body.Span()
	if len(params) > 0 {
		span = mergeSpan(params[0].Span(), span)
	}
	return ast.NewLambdaClause(params, body, span)
}

// clauseHasPipe scans the clause head for a '|' at the current depth
// before the first ':'. That shape can only be a handler clause.
func (p *Parser) clauseHasPipe() bool {
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
		case lexer.PIPE:
			if depth == 0 {
				return true
			}
		case lexer.COLON, lexer.NEWLINE, lexer.SEMICOLON, lexer.EOF:
			if depth == 0 {
				return false
			}
		}
	}
}

// parseHandlerClause parses `op arg... | k: body`.
func (p *Parser) parseHandlerClause() ast.FnClause {
	if p.curTok.Type != lexer.LOWER_IDENT {
		p.reportExpected("an effect operation name", p.curTok)
		return nil
	}
	op := ast.NewIdent(p.curTok.Text, p.curTok.Span)

	var args []ast.Pattern
	for startsPatternAtom(p.peekTok) {
		p.nextToken()
		arg := p.parsePatternAtom()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}

	if !p.expectPeek(lexer.PIPE) {
		return nil
	}
	if !p.expectPeek(lexer.LOWER_IDENT) {
		return nil
	}
	cont := ast.NewIdent(p.curTok.Text, p.curTok.Span)
	if !p.expectPeek(lexer.COLON) {
		return nil
	}
	p.nextToken()
	body := p.parseExpr()
	if body == nil {
		return nil
	}
	return ast.NewHandlerClause(op, args, cont, body, mergeSpan(op.Span(), body.Span()))
}

// parseClauseParams parses the `pattern:` prefixes of a clause. Each
// segment is committed as a parameter only when a whole pattern is
// followed by ':'; otherwise the position is rolled back and the segment
// is the clause body. Returns with curTok at the first body token.
func (p *Parser) parseClauseParams() []ast.Pattern {
	var params []ast.Pattern
	for {
		var pat ast.Pattern
		ok := p.tryParse(func() bool {
			q := p.parsePattern()
			if q == nil {
				return false
			}
			if p.peekTok.Type != lexer.COLON {
				return false
			}
			pat = q
			return true
		})
		if !ok {
			return params
		}
		p.nextToken() // ':'
		p.nextToken() // first token of the next segment
		params = append(params, pat)
	}
}

// parseBlockExpr parses a scoping block: local statements separated by
// newlines or semicolons, ending in the expression the block evaluates
// to. Entered with curTok at '[', returns with curTok at ']'.
func (p *Parser) parseBlockExpr() ast.Expr {
	start := p.curTok.Span
	errsBefore := len(p.errors)
	var stmts []ast.Stmt
	var tail ast.Expr

	p.nextToken()
	p.skipSeparators()
	for p.curTok.Type != lexer.RBRACKET && p.curTok.Type != lexer.EOF {
		prevTok := p.curTok
		itemStmts, expr := p.parseBlockItem()
		switch {
		case expr != nil:
			if p.peekPastSeparators().Type == lexer.RBRACKET {
				if ifExpr, isIf := expr.(*ast.IfExpr); isIf && ifExpr.Else == nil {
					p.reportErrorCode(diag.CodeMissingElseBranch,
						"a conditional in value position needs an else branch",
						expr.Span())
				}
				tail = expr
			} else {
				stmts = append(stmts, ast.NewExprStmt(expr, expr.Span()))
			}
			p.nextToken()
		case len(itemStmts) > 0:
			for _, s := range itemStmts {
				stmts = appendStmt(stmts, s)
			}
			p.nextToken()
		default:
			p.recoverStatement(prevTok)
		}
		p.skipSeparators()
	}

	if p.curTok.Type != lexer.RBRACKET {
		p.reportExpected("']'", p.curTok)
	} else if tail == nil && len(p.errors) == errsBefore {
		p.reportError("a block must end with an expression", p.curTok.Span)
	}
	return ast.NewBlockExpr(stmts, tail, mergeSpan(start, p.curTok.Span))
}

// appendStmt appends a statement, merging consecutive clauses of the
// same local definition into one multi-clause TermDef.
func appendStmt(stmts []ast.Stmt, stmt ast.Stmt) []ast.Stmt {
	def, isDef := stmt.(*ast.TermDef)
	if isDef && len(stmts) > 0 {
		if prev, ok := stmts[len(stmts)-1].(*ast.TermDef); ok && prev.Name.Name == def.Name.Name {
			prev.Clauses = append(prev.Clauses, def.Clauses...)
			prev.SetSpan(mergeSpan(prev.Span(), def.Span()))
			return stmts
		}
	}
	if len(stmts) > 0 {
		bindAnnotation(stmts[len(stmts)-1], stmt)
	}
	return append(stmts, stmt)
}

// parseBlockItem parses one block statement. It returns either
// statements (definitions, binds, annotations) or a bare expression,
// which the caller turns into the tail or an expression statement.
func (p *Parser) parseBlockItem() ([]ast.Stmt, ast.Expr) {
	switch p.curTok.Type {
	case lexer.AT:
		ann := p.parseAnnotation(nil)
		if ann == nil {
			return nil, nil
		}
		return []ast.Stmt{ann}, nil
	case lexer.LOWER_IDENT:
		if p.peekTok.Type == lexer.AT {
			decls := p.parseNamedAnnotation()
			stmts := make([]ast.Stmt, 0, len(decls))
			for _, d := range decls {
				stmt, ok := d.(ast.Stmt)
				if !ok {
					return nil, nil
				}
				stmts = append(stmts, stmt)
			}
			if len(stmts) == 0 {
				return nil, nil
			}
			return stmts, nil
		}

		var def *ast.TermDef
		if p.tryParse(func() bool {
			def = p.parseTermClause()
			return def != nil
		}) {
			return []ast.Stmt{def}, nil
		}
	}

	// `pattern =! expr` binds the result of an effectful computation.
	var bind *ast.BindStmt
	if p.tryParse(func() bool {
		pat := p.parsePattern()
		if pat == nil || p.peekTok.Type != lexer.BIND {
			return false
		}
		p.nextToken() // '=!'
		p.nextToken()
		value := p.parseExpr()
		if value == nil {
			return false
		}
		bind = ast.NewBindStmt(pat, value, mergeSpan(pat.Span(), value.Span()))
		return true
	}) {
		return []ast.Stmt{bind}, nil
	}

	expr := p.parseStmtExpr()
	if expr == nil {
		return nil, nil
	}
	return nil, expr
}

// parseStmtExpr parses an expression in statement position, where a
// conditional may omit its else branch.
func (p *Parser) parseStmtExpr() ast.Expr {
	if p.curTok.Type == lexer.IF {
		return p.parseIfExpr(true)
	}
	return p.parseExpr()
}

// parseBraceExpr parses a '{' construct: a list literal, a cons cell
// `{head | tail}`, or a comprehension led by 'for' or 'if'. Entered with
// curTok at '{', returns with curTok at '}'.
func (p *Parser) parseBraceExpr() ast.Expr {
	start := p.curTok.Span

	i := 1
	for lexer.IsSeparator(p.peekAt(i).Type) {
		i++
	}
	next := p.peekAt(i)
	if next.Type == lexer.FOR || next.Type == lexer.IF {
		return p.parseComprehension()
	}
	if p.braceHasPipe() {
		return p.parseConsExpr()
	}

	elems, _ := parseDelimited(p, delimitedConfig{
		Closing:    lexer.RBRACE,
		Comma:      true,
		AllowEmpty: true,
		ElementMsg: "expected a list element",
	}, func(idx int) (ast.Expr, bool) {
		elem := p.parseExpr()
		return elem, elem != nil
	})
	return ast.NewListExpr(elems, mergeSpan(start, p.curTok.Span))
}

// braceHasPipe scans for a '|' at the brace's own depth before '}'.
func (p *Parser) braceHasPipe() bool {
	depth := 0
	for i := 1; ; i++ {
		tok := p.peekAt(i)
		switch tok.Type {
		case lexer.LBRACKET, lexer.LBRACE, lexer.LPAREN:
			depth++
		case lexer.RBRACKET, lexer.RBRACE, lexer.RPAREN:
			if depth == 0 {
				return false
			}
			depth--
		case lexer.PIPE:
			if depth == 0 {
				return true
			}
		case lexer.EOF:
			return false
		}
	}
}

// parseConsExpr parses `{head | tail}`.
func (p *Parser) parseConsExpr() ast.Expr {
	start := p.curTok.Span
	p.nextToken()
	p.skipSeparators()
	head := p.parseExpr()
	if head == nil {
		return nil
	}
	if !p.expectPeek(lexer.PIPE) {
		return nil
	}
	p.nextToken()
	p.skipSeparators()
	tail := p.parseExpr()
	if tail == nil {
		return nil
	}
	for lexer.IsSeparator(p.peekTok.Type) {
		p.nextToken()
	}
	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return ast.NewConsExpr(head, tail, mergeSpan(start, p.curTok.Span))
}

// parseComprehension parses `{for pat in source ... : body}`: any
// interleaving of 'for' generators and 'if' filters, then the first ':'
// at the brace's own depth separates the clauses from the body.
func (p *Parser) parseComprehension() ast.Expr {
	start := p.curTok.Span
	var clauses []ast.CompClause

	p.nextToken()
	for {
		p.skipSeparators()
		switch p.curTok.Type {
		case lexer.FOR:
			forSpan := p.curTok.Span
			p.nextToken()
			pat := p.parsePattern()
			if pat == nil {
				return nil
			}
			if !p.expectPeek(lexer.IN) {
				return nil
			}
			p.nextToken()
			source := p.parseExpr()
			if source == nil {
				return nil
			}
			clauses = append(clauses, ast.NewCompFor(pat, source, mergeSpan(forSpan, source.Span())))
		case lexer.IF:
			ifSpan := p.curTok.Span
			p.nextToken()
			cond := p.parseExpr()
			if cond == nil {
				return nil
			}
			clauses = append(clauses, ast.NewCompIf(cond, mergeSpan(ifSpan, cond.Span())))
		case lexer.COLON:
		default:
			p.reportExpected("'for', 'if' or ':'", p.curTok)
			return nil
		}
		if p.curTok.Type == lexer.COLON {
			break
		}
		if p.peekTok.Type == lexer.COLON {
			p.nextToken() // ':'
			break
		}
		p.nextToken()
	}

	p.nextToken()
	p.skipSeparators()
	body := p.parseExpr()
	if body == nil {
		return nil
	}
	for lexer.IsSeparator(p.peekTok.Type) {
		p.nextToken()
	}
	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}
	return ast.NewComprehension(clauses, body, mergeSpan(start, p.curTok.Span))
}
