package lexer

import (
	"testing"
)

func TestNextToken_Basic(t *testing.T) {
	input := `add x y = x + y`

	tests := []struct {
		expectedType TokenType
		expectedText string
	}{
		{LOWER_IDENT, "add"},
		{LOWER_IDENT, "x"},
		{LOWER_IDENT, "y"},
		{ASSIGN, "="},
		{LOWER_IDENT, "x"},
		{OP, "+"},
		{LOWER_IDENT, "y"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Text != tt.expectedText {
			t.Fatalf("tests[%d] - text wrong. expected=%q, got=%q",
				i, tt.expectedText, tok.Text)
		}
	}
}

func TestNextToken_ReservedSpellings(t *testing.T) {
	input := `= =! -> => | == != <= >= ++ && ||`

	tests := []struct {
		expectedType TokenType
		expectedText string
	}{
		{ASSIGN, "="},
		{BIND, "=!"},
		{ARROW, "->"},
		{FATARROW, "=>"},
		{PIPE, "|"},
		{OP, "=="},
		{OP, "!="},
		{OP, "<="},
		{OP, ">="},
		{OP, "++"},
		{OP, "&&"},
		{OP, "||"},
		{EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}
		if tok.Text != tt.expectedText {
			t.Fatalf("tests[%d] - text wrong. expected=%q, got=%q",
				i, tt.expectedText, tok.Text)
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	input := `if else case data effect typeclass instance for in module`

	expected := []TokenType{
		IF, ELSE, CASE, DATA, EFFECT, TYPECLASS, INSTANCE, FOR, IN, MODULE, EOF,
	}

	l := New(input)
	for i, typ := range expected {
		tok := l.NextToken()
		if tok.Type != typ {
			t.Fatalf("step %d - expected token %q, got %q", i, typ, tok.Type)
		}
	}
}

func TestNextToken_UpperVsLowerIdent(t *testing.T) {
	input := `Some none State x9 Circle _`

	tests := []struct {
		expectedType TokenType
		expectedText string
	}{
		{UPPER_IDENT, "Some"},
		{LOWER_IDENT, "none"},
		{UPPER_IDENT, "State"},
		{LOWER_IDENT, "x9"},
		{UPPER_IDENT, "Circle"},
		{LOWER_IDENT, "_"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Text != tt.expectedText {
			t.Fatalf("tests[%d] - expected (%q, %q), got (%q, %q)",
				i, tt.expectedType, tt.expectedText, tok.Type, tok.Text)
		}
	}
}

func TestNextToken_Numbers(t *testing.T) {
	input := `42 3.14 1e9 2.5e-3 0xFF 0b1010 1_000_000`

	tests := []struct {
		expectedType TokenType
		expectedText string
	}{
		{INT, "42"},
		{FLOAT, "3.14"},
		{FLOAT, "1e9"},
		{FLOAT, "2.5e-3"},
		{INT, "0xFF"},
		{INT, "0b1010"},
		{INT, "1_000_000"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Text != tt.expectedText {
			t.Fatalf("tests[%d] - expected (%q, %q), got (%q, %q)",
				i, tt.expectedType, tt.expectedText, tok.Type, tok.Text)
		}
	}
	if len(l.Errors) != 0 {
		t.Fatalf("expected no lexer errors, got %v", l.Errors)
	}
}

func TestNextToken_StringsAndChars(t *testing.T) {
	input := `"hello" "a\nb" 'x' '\t'`

	tests := []struct {
		expectedType  TokenType
		expectedValue string
	}{
		{STRING, "hello"},
		{STRING, "a\nb"},
		{CHAR, "x"},
		{CHAR, "\t"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}
		if tok.Value != tt.expectedValue {
			t.Fatalf("tests[%d] - value wrong. expected=%q, got=%q",
				i, tt.expectedValue, tok.Value)
		}
	}
	if len(l.Errors) != 0 {
		t.Fatalf("expected no lexer errors, got %v", l.Errors)
	}
}

func collectTypes(l *Lexer) []TokenType {
	var types []TokenType
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == EOF {
			return types
		}
	}
}

func typesEqual(t *testing.T, got, want []TokenType) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d - expected %q, got %q (full stream %v)", i, want[i], got[i], got)
		}
	}
}

func TestNewlines_SignificantAtTopLevel(t *testing.T) {
	l := New("x = 1\ny = 2")
	typesEqual(t, collectTypes(l), []TokenType{
		LOWER_IDENT, ASSIGN, INT, NEWLINE, LOWER_IDENT, ASSIGN, INT, EOF,
	})
}

func TestNewlines_SuppressedInsideParens(t *testing.T) {
	l := New("f (1 +\n 2)")
	typesEqual(t, collectTypes(l), []TokenType{
		LOWER_IDENT, LPAREN, INT, OP, INT, RPAREN, EOF,
	})
}

func TestNewlines_SignificantInsideBrackets(t *testing.T) {
	l := New("[x = 1\nx]")
	typesEqual(t, collectTypes(l), []TokenType{
		LBRACKET, LOWER_IDENT, ASSIGN, INT, NEWLINE, LOWER_IDENT, RBRACKET, EOF,
	})
}

func TestNewlines_SignificantInsideBraces(t *testing.T) {
	l := New("{1,\n2}")
	typesEqual(t, collectTypes(l), []TokenType{
		LBRACE, INT, COMMA, NEWLINE, INT, RBRACE, EOF,
	})
}

func TestNewlines_ParenInsideBracketSuppresses(t *testing.T) {
	// The innermost open delimiter decides; a '(' inside '[' suppresses
	// newlines again.
	l := New("[f (1\n2)\ng]")
	typesEqual(t, collectTypes(l), []TokenType{
		LBRACKET, LOWER_IDENT, LPAREN, INT, INT, RPAREN, NEWLINE, LOWER_IDENT, RBRACKET, EOF,
	})
}

func TestSemicolon_AlwaysSeparates(t *testing.T) {
	l := New("(a; b)")
	typesEqual(t, collectTypes(l), []TokenType{
		LPAREN, LOWER_IDENT, SEMICOLON, LOWER_IDENT, RPAREN, EOF,
	})
}

func TestComments_LineCommentKeepsNewline(t *testing.T) {
	l := New("x = 1 # trailing note\ny = 2")
	typesEqual(t, collectTypes(l), []TokenType{
		LOWER_IDENT, ASSIGN, INT, NEWLINE, LOWER_IDENT, ASSIGN, INT, EOF,
	})
}

func TestComments_DoubleHashIsLineComment(t *testing.T) {
	l := New("## doc-ish comment\nx = 1")
	typesEqual(t, collectTypes(l), []TokenType{
		NEWLINE, LOWER_IDENT, ASSIGN, INT, EOF,
	})
}

func TestComments_BlockCommentDiscardsContent(t *testing.T) {
	l := New("x = ### anything\n[ { ( ### 1")
	typesEqual(t, collectTypes(l), []TokenType{
		LOWER_IDENT, ASSIGN, INT, EOF,
	})
	if len(l.Errors) != 0 {
		t.Fatalf("expected no lexer errors, got %v", l.Errors)
	}
}

func TestComments_BlockCommentDoesNotNest(t *testing.T) {
	// The first '###' after the opener closes the comment; the rest of
	// the input is lexed normally.
	l := New("### outer ### x")
	typesEqual(t, collectTypes(l), []TokenType{
		LOWER_IDENT, EOF,
	})
}

func TestSpans_TrackLinesAndColumns(t *testing.T) {
	l := New("a\n bc")

	tok := l.NextToken()
	if tok.Span.Line != 1 || tok.Span.Column != 1 {
		t.Fatalf("first token at %d:%d, expected 1:1", tok.Span.Line, tok.Span.Column)
	}
	l.NextToken() // newline
	tok = l.NextToken()
	if tok.Text != "bc" {
		t.Fatalf("expected token bc, got %q", tok.Text)
	}
	if tok.Span.Line != 2 || tok.Span.Column != 2 {
		t.Fatalf("bc at %d:%d, expected 2:2", tok.Span.Line, tok.Span.Column)
	}
	if got := l.input[tok.Span.Start:tok.Span.End]; string(got) != "bc" {
		t.Fatalf("span offsets select %q, expected bc", string(got))
	}
}
