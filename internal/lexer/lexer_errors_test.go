package lexer

import (
	"testing"

	"github.com/quill-lang/quill/internal/diag"
)

func lexToEOF(input string) *Lexer {
	l := New(input)
	for {
		if tok := l.NextToken(); tok.Type == EOF {
			return l
		}
	}
}

func requireErrorKind(t *testing.T, l *Lexer, kind LexerErrorKind) LexerError {
	t.Helper()
	if len(l.Errors) == 0 {
		t.Fatalf("expected a lexer error of kind %v, got none", kind)
	}
	for _, err := range l.Errors {
		if err.Kind == kind {
			return err
		}
	}
	t.Fatalf("expected a lexer error of kind %v, got %v", kind, l.Errors)
	return LexerError{}
}

func TestErrors_UnterminatedString(t *testing.T) {
	l := lexToEOF(`x = "never closed`)
	requireErrorKind(t, l, ErrUnterminatedString)
}

func TestErrors_NewlineInString(t *testing.T) {
	l := lexToEOF("x = \"broken\nrest")
	requireErrorKind(t, l, ErrUnterminatedString)
}

func TestErrors_UnterminatedChar(t *testing.T) {
	l := lexToEOF(`c = 'a`)
	requireErrorKind(t, l, ErrUnterminatedChar)
}

func TestErrors_EmptyCharLiteral(t *testing.T) {
	l := lexToEOF(`c = ''`)
	requireErrorKind(t, l, ErrUnterminatedChar)
}

func TestErrors_UnterminatedBlockComment(t *testing.T) {
	l := lexToEOF("### never closed\nx = 1")
	requireErrorKind(t, l, ErrUnterminatedBlockComment)
}

func TestErrors_InvalidEscape(t *testing.T) {
	l := lexToEOF(`s = "bad \q escape"`)
	requireErrorKind(t, l, ErrInvalidEscape)
}

func TestErrors_InvalidNumber(t *testing.T) {
	tests := []string{
		`x = 0x`,
		`x = 0b`,
		`x = 1e`,
		`x = 12abc`,
	}
	for _, input := range tests {
		l := lexToEOF(input)
		requireErrorKind(t, l, ErrInvalidNumber)
	}
}

func TestErrors_IllegalRune(t *testing.T) {
	l := lexToEOF("x = `")
	err := requireErrorKind(t, l, ErrIllegalRune)
	if err.Span.Line != 1 {
		t.Fatalf("error attributed to line %d, expected 1", err.Span.Line)
	}
}

func TestErrors_ToDiagnostic(t *testing.T) {
	tests := []struct {
		input string
		kind  LexerErrorKind
		code  diag.Code
	}{
		{`x = "oops`, ErrUnterminatedString, diag.CodeLexUnterminatedString},
		{`c = 'a`, ErrUnterminatedChar, diag.CodeLexUnterminatedChar},
		{"### oops", ErrUnterminatedBlockComment, diag.CodeLexUnterminatedBlockComment},
		{`s = "\q"`, ErrInvalidEscape, diag.CodeLexInvalidEscape},
		{`n = 0x`, ErrInvalidNumber, diag.CodeLexInvalidNumber},
		{"x = `", ErrIllegalRune, diag.CodeLexIllegalRune},
	}

	for _, tt := range tests {
		l := lexToEOF(tt.input)
		err := requireErrorKind(t, l, tt.kind)
		d := err.ToDiagnostic()
		if d.Code != tt.code {
			t.Errorf("input %q: diagnostic code %q, expected %q", tt.input, d.Code, tt.code)
		}
		if d.Stage != diag.StageLexer {
			t.Errorf("input %q: diagnostic stage %q, expected lexer stage", tt.input, d.Stage)
		}
		if d.Severity != diag.SeverityError {
			t.Errorf("input %q: diagnostic severity %q, expected error", tt.input, d.Severity)
		}
	}
}
