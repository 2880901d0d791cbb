package parser

import (
	"fmt"

	"github.com/quill-lang/quill/internal/diag"
	"github.com/quill-lang/quill/internal/lexer"
)

// ParseError captures a recoverable parsing error with location context.
type ParseError struct {
	Message  string
	Span     lexer.Span
	Severity diag.Severity
	Code     diag.Code
	Help     string
}

// ToDiagnostic converts a parse error into a shared diagnostic structure.
func (e ParseError) ToDiagnostic() diag.Diagnostic {
	code := e.Code
	if code == "" {
		code = diag.CodeUnexpectedToken
	}
	return diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: e.Severity,
		Code:     code,
		Message:  e.Message,
		Help:     e.Help,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// emitParseDiagnostic records a recoverable diagnostic without aborting
// parsing. Call sites supply the best-effort span available at the
// failure site.
func (p *Parser) emitParseDiagnostic(msg string, span lexer.Span, severity diag.Severity, code diag.Code) {
	if span.Filename == "" && p.filename != "" {
		span.Filename = p.filename
	}

	p.errors = append(p.errors, ParseError{
		Message:  msg,
		Span:     span,
		Severity: severity,
		Code:     code,
	})
}

// reportError reports a plain unexpected-token error.
func (p *Parser) reportError(msg string, span lexer.Span) {
	p.emitParseDiagnostic(msg, span, diag.SeverityError, diag.CodeUnexpectedToken)
}

// reportErrorCode reports an error with an explicit diagnostic code.
func (p *Parser) reportErrorCode(code diag.Code, msg string, span lexer.Span) {
	p.emitParseDiagnostic(msg, span, diag.SeverityError, code)
}

// reportExpected reports that one of a specific token set was expected at
// found's position.
func (p *Parser) reportExpected(expected string, found lexer.Token) {
	text := found.Text
	if text == "" {
		text = string(found.Type)
	}
	msg := fmt.Sprintf("expected %s, found `%s`", expected, text)
	p.reportError(msg, found.Span)
}

func sameTokenPosition(a, b lexer.Token) bool {
	return a.Type == b.Type && a.Span.Start == b.Span.Start && a.Span.End == b.Span.End
}

func isDeclStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.DATA, lexer.EFFECT, lexer.TYPECLASS, lexer.INSTANCE, lexer.AT:
		return true
	default:
		return false
	}
}

// recoverDecl skips tokens until a plausible declaration boundary: a
// statement separator at the current depth, or a token that can only
// start a declaration.
func (p *Parser) recoverDecl(prev lexer.Token) {
	if p.curTok.Type == lexer.EOF {
		return
	}

	// A declaration keyword at the failure point belongs to the next
	// declaration; the caller decides whether to skip it.
	if sameTokenPosition(p.curTok, prev) && !isDeclStart(p.curTok.Type) {
		p.nextToken()
	}

	for p.curTok.Type != lexer.EOF {
		if lexer.IsSeparator(p.curTok.Type) || isDeclStart(p.curTok.Type) {
			return
		}
		p.nextToken()
	}
}

// recoverStatement performs local recovery inside a bracketed construct:
// it skips forward to the next statement separator or closing delimiter
// at the current nesting depth so one malformed statement does not
// swallow the rest of the block's diagnostics.
func (p *Parser) recoverStatement(prev lexer.Token) {
	if sameTokenPosition(p.curTok, prev) && p.curTok.Type != lexer.EOF {
		p.nextToken()
	}

	depth := 0
	for p.curTok.Type != lexer.EOF {
		switch p.curTok.Type {
		case lexer.LBRACKET, lexer.LBRACE, lexer.LPAREN:
			depth++
		case lexer.RBRACKET, lexer.RBRACE, lexer.RPAREN:
			if depth == 0 {
				return
			}
			depth--
		case lexer.NEWLINE, lexer.SEMICOLON:
			if depth == 0 {
				return
			}
		}
		p.nextToken()
	}
}
