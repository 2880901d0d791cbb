package diag

import (
	"strings"
	"testing"
)

func TestDiagnostic_Builders(t *testing.T) {
	span := Span{Filename: "a.q", Line: 3, Column: 5, Start: 20, End: 25}
	d := Diagnostic{
		Stage:    StageParser,
		Severity: SeverityError,
		Code:     CodeUnexpectedToken,
		Message:  "expected ']'",
		Span:     span,
	}.
		WithPrimarySpan(span, "opened here").
		WithNote("brackets must balance").
		WithHelp("add a closing ']'")

	if len(d.LabeledSpans) != 1 || d.LabeledSpans[0].Label != "opened here" {
		t.Fatalf("labeled span not attached: %+v", d.LabeledSpans)
	}
	if len(d.Notes) != 1 || d.Notes[0] != "brackets must balance" {
		t.Fatalf("note not attached: %+v", d.Notes)
	}
	if d.Help != "add a closing ']'" {
		t.Fatalf("help not attached: %q", d.Help)
	}
}

func TestSpan_String(t *testing.T) {
	s := Span{Filename: "a.q", Line: 3, Column: 5}
	if got := s.String(); got != "a.q:3:5" {
		t.Fatalf("span string %q", got)
	}
}

func TestHasErrors(t *testing.T) {
	diags := []Diagnostic{
		{Severity: SeverityWarning},
		{Severity: SeverityNote},
	}
	if HasErrors(diags) {
		t.Fatal("warnings and notes are not errors")
	}
	diags = append(diags, Diagnostic{Severity: SeverityError})
	if !HasErrors(diags) {
		t.Fatal("expected HasErrors to report the error entry")
	}
}

func TestFormatter_RendersSnippetWithUnderline(t *testing.T) {
	src := "area r = [sq = r * r\nsq *]\n"

	var out strings.Builder
	f := NewFormatter(&out)
	f.SetSource("shapes.q", src)

	f.Format(Diagnostic{
		Stage:    StageParser,
		Severity: SeverityError,
		Code:     CodeUnexpectedToken,
		Message:  "expected an expression",
		Span:     Span{Filename: "shapes.q", Line: 2, Column: 5, Start: 25, End: 26},
	})

	rendered := out.String()
	for _, want := range []string{
		"error",
		"PARSE_UNEXPECTED_TOKEN",
		"expected an expression",
		"shapes.q:2:5",
		"sq *]",
		"^",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendered diagnostic missing %q:\n%s", want, rendered)
		}
	}
}

func TestFormatter_FallsBackWithoutSource(t *testing.T) {
	var out strings.Builder
	f := NewFormatter(&out)

	f.Format(Diagnostic{
		Stage:    StageLexer,
		Severity: SeverityError,
		Code:     CodeLexUnterminatedString,
		Message:  "unterminated string literal",
	})

	rendered := out.String()
	if !strings.Contains(rendered, "unterminated string literal") {
		t.Fatalf("fallback rendering missing message:\n%s", rendered)
	}
}

func TestFormatter_PrintsHelpAndNotes(t *testing.T) {
	var out strings.Builder
	f := NewFormatter(&out)
	f.SetSource("a.q", "x = if a: 1\n")

	f.Format(Diagnostic{
		Stage:    StageParser,
		Severity: SeverityError,
		Code:     CodeMissingElseBranch,
		Message:  "a conditional in value position needs an else branch",
		Span:     Span{Filename: "a.q", Line: 1, Column: 5, Start: 4, End: 11},
	}.WithHelp("add a final `else branch`"))

	rendered := out.String()
	if !strings.Contains(rendered, "help") || !strings.Contains(rendered, "else branch") {
		t.Fatalf("help not rendered:\n%s", rendered)
	}
}
