package lexer

import (
	"testing"
)

func lexAll(l *Lexer) []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func TestTrivia_LosslessReconstruction(t *testing.T) {
	inputs := []string{
		"add x y = x + y\n",
		"x = 1 # note\ny = 2",
		"## heading\nmain = [\n  a = 1\n  a + 1\n]\n",
		"f = (1 +\n 2)",
		"s = \"he\\tllo\"  \t 'c'",
		"### block\nwith lines ### x = 1",
		"pairs = {for x in xs: x}",
	}

	for _, input := range inputs {
		l := NewWithTrivia(input)
		var rebuilt string
		for _, tok := range lexAll(l) {
			rebuilt += tok.Text
		}
		if rebuilt != input {
			t.Errorf("trivia stream did not reconstruct input.\nexpected: %q\ngot:      %q", input, rebuilt)
		}
	}
}

func TestTrivia_EmitsWhitespaceAndComments(t *testing.T) {
	l := NewWithTrivia("x = 1 # note\ny")

	expected := []TokenType{
		LOWER_IDENT, WHITESPACE, ASSIGN, WHITESPACE, INT, WHITESPACE,
		LINE_COMMENT, NEWLINE, LOWER_IDENT, EOF,
	}

	toks := lexAll(l)
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(toks), toks)
	}
	for i, typ := range expected {
		if toks[i].Type != typ {
			t.Fatalf("token %d - expected %q, got %q", i, typ, toks[i].Type)
		}
	}
}

func TestTrivia_NewlinesEmittedInsideParens(t *testing.T) {
	// Trivia mode keeps even suppressed newlines so downstream tooling
	// sees every source byte.
	l := NewWithTrivia("(1\n2)")

	var sawNewline bool
	for _, tok := range lexAll(l) {
		if tok.Type == NEWLINE {
			sawNewline = true
		}
	}
	if !sawNewline {
		t.Fatal("expected a NEWLINE trivia token inside parentheses")
	}
}

func TestTrivia_SpansCoverInputContiguously(t *testing.T) {
	input := "main = [ x = 1; x ] ## done"
	l := NewWithTrivia(input)

	next := 0
	for _, tok := range lexAll(l) {
		if tok.Type == EOF {
			break
		}
		if tok.Span.Start != next {
			t.Fatalf("token %q starts at %d, expected %d", tok.Text, tok.Span.Start, next)
		}
		next = tok.Span.End
	}
	if next != len([]rune(input)) {
		t.Fatalf("final token ends at %d, expected %d", next, len([]rune(input)))
	}
}
