package diag

import "fmt"

// Stage identifies which front-end phase produced the diagnostic.
type Stage string

const (
	StageLexer  Stage = "lexer"
	StageParser Stage = "parser"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// LabeledSpan represents a span with an optional label.
type LabeledSpan struct {
	Span  Span
	Label string // optional label (e.g. "expected ':' here")
	Style string // "primary" or "secondary" - primary spans are emphasized
}

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors; all of these are fatal for the containing source unit.
	CodeLexUnterminatedString       Code = "LEX_UNTERMINATED_STRING"
	CodeLexUnterminatedChar         Code = "LEX_UNTERMINATED_CHAR"
	CodeLexUnterminatedBlockComment Code = "LEX_UNTERMINATED_BLOCK_COMMENT"
	CodeLexInvalidEscape            Code = "LEX_INVALID_ESCAPE"
	CodeLexInvalidNumber            Code = "LEX_INVALID_NUMBER"
	CodeLexIllegalRune              Code = "LEX_ILLEGAL_RUNE"

	// Parser errors
	CodeUnexpectedToken      Code = "PARSE_UNEXPECTED_TOKEN"
	CodeAmbiguousBracketForm Code = "PARSE_AMBIGUOUS_BRACKET_FORM"
	CodeArityMismatch        Code = "PARSE_ARITY_MISMATCH"
	CodeMissingElseBranch    Code = "PARSE_MISSING_ELSE_BRANCH"
	CodeInvalidEffectRow     Code = "PARSE_INVALID_EFFECT_ROW"
	CodeMalformedFieldPun    Code = "PARSE_MALFORMED_FIELD_PUN"
)

// Span represents a location in source code.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

// String returns a human-readable representation of the span.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid returns true if the span has valid location information.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a front-end diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span // primary span
	// LabeledSpans allows multiple spans with labels; the first is treated
	// as primary, the rest as secondary.
	LabeledSpans []LabeledSpan
	Notes        []string // additional notes to display
	Help         string   // help text, may include code
}

// WithLabeledSpan adds a labeled span to the diagnostic.
func (d Diagnostic) WithLabeledSpan(span Span, label string, style string) Diagnostic {
	if style == "" {
		style = "primary"
	}
	d.LabeledSpans = append(d.LabeledSpans, LabeledSpan{
		Span:  span,
		Label: label,
		Style: style,
	})
	return d
}

// WithPrimarySpan adds a primary labeled span.
func (d Diagnostic) WithPrimarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "primary")
}

// WithSecondarySpan adds a secondary labeled span.
func (d Diagnostic) WithSecondarySpan(span Span, label string) Diagnostic {
	return d.WithLabeledSpan(span, label, "secondary")
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// HasErrors reports whether any diagnostic carries error severity. A unit
// whose diagnostics contain errors must not proceed to the renamer stage.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
