package parser

import (
	"testing"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
)

// parseModule parses input and fails the test on any diagnostic.
func parseModule(t *testing.T, input string) *ast.Module {
	t.Helper()
	mod, diags := Parse(input)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", input, diags)
	}
	if mod == nil {
		t.Fatalf("no module produced for %q", input)
	}
	return mod
}

// parseWithErrors parses input expecting at least one error diagnostic.
func parseWithErrors(t *testing.T, input string) []diag.Diagnostic {
	t.Helper()
	_, diags := Parse(input)
	if !diag.HasErrors(diags) {
		t.Fatalf("expected diagnostics for %q, got none", input)
	}
	return diags
}

func expectDump(t *testing.T, input, want string) {
	t.Helper()
	mod := parseModule(t, input)
	if got := ast.Dump(mod); got != want {
		t.Errorf("dump mismatch for %q\nexpected: %s\ngot:      %s", input, want, got)
	}
}

func expectErrorCode(t *testing.T, diags []diag.Diagnostic, code diag.Code) {
	t.Helper()
	for _, d := range diags {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("expected a %s diagnostic, got %v", code, diags)
}

func TestParse_ModuleHeader(t *testing.T) {
	mod := parseModule(t, "module Geometry\narea r = r * r")
	if mod.Name == nil || mod.Name.Name != "Geometry" {
		t.Fatalf("module name not parsed: %+v", mod.Name)
	}
	if len(mod.Decls) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(mod.Decls))
	}
}

func TestParse_ModuleHeaderOptional(t *testing.T) {
	mod := parseModule(t, "x = 1")
	if mod.Name != nil {
		t.Fatalf("expected anonymous module, got %q", mod.Name.Name)
	}
}

func TestParse_SimpleDefinition(t *testing.T) {
	expectDump(t, "add x y = x + y",
		"(module _ (def add (clause (x y) (+ x y))))")
}

func TestParse_ClauseGrouping(t *testing.T) {
	input := "fact 0 = 1\nfact n = n * fact (n - 1)"
	expectDump(t, input,
		"(module _ (def fact (clause ((lit 0)) 1) (clause (n) (* n (apply fact (- n 1))))))")
}

func TestParse_ClauseGroupingStopsAtOtherName(t *testing.T) {
	input := "f 0 = 1\ng 0 = 2\nf n = 3"
	mod := parseModule(t, input)
	if len(mod.Decls) != 3 {
		t.Fatalf("expected 3 declarations (grouping must not skip g), got %d", len(mod.Decls))
	}
}

func TestParse_StandaloneAnnotation(t *testing.T) {
	input := "x @ Int\nx = 1"
	expectDump(t, input,
		"(module _ (annot x Int) (def x (clause () 1)))")
}

func TestParse_BareAnnotation(t *testing.T) {
	// A bare `@ Type` takes its name from the declaration it annotates.
	expectDump(t, "@ Int\nx = 1",
		"(module _ (annot x Int) (def x (clause () 1)))")

	// With nothing following, the annotation stays unnamed.
	expectDump(t, "@ Int", "(module _ (annot _ Int))")
}

func TestParse_AnnotationFormsAgree(t *testing.T) {
	// All three spellings of an annotated definition produce the same
	// pair of declarations.
	want := ast.Dump(parseModule(t, "x @ Int = 1"))
	for _, input := range []string{"x @ Int\nx = 1", "@ Int\nx = 1"} {
		if got := ast.Dump(parseModule(t, input)); got != want {
			t.Errorf("annotation forms diverge for %q\nexpected: %s\ngot:      %s", input, want, got)
		}
	}
}

func TestParse_SameLineAnnotationSugar(t *testing.T) {
	// `x @ Int = 1` must produce the same two declarations as the
	// standalone annotation followed by the definition.
	sugar := parseModule(t, "x @ Int = 1")
	spelled := parseModule(t, "x @ Int\nx = 1")
	if got, want := ast.Dump(sugar), ast.Dump(spelled); got != want {
		t.Errorf("sugar form diverges:\nsugar:    %s\nspelled:  %s", got, want)
	}

	if len(sugar.Decls) != 2 {
		t.Fatalf("expected 2 declarations from sugar form, got %d", len(sugar.Decls))
	}
	ann, ok := sugar.Decls[0].(*ast.TypeAnnotation)
	if !ok {
		t.Fatalf("first declaration is %T, expected annotation", sugar.Decls[0])
	}
	if !ann.SameLine {
		t.Error("annotation from sugar form should be marked same-line")
	}
}

func TestParse_SeparatorsBetweenDecls(t *testing.T) {
	// Semicolons and newlines are interchangeable separators.
	a := parseModule(t, "x = 1; y = 2")
	b := parseModule(t, "x = 1\ny = 2")
	if ast.Dump(a) != ast.Dump(b) {
		t.Errorf("separator forms diverge: %s vs %s", ast.Dump(a), ast.Dump(b))
	}
}

func TestParse_CommentsAreTransparent(t *testing.T) {
	plain := parseModule(t, "x = 1\ny = 2")
	commented := parseModule(t, "# leading\nx = 1 # trailing\n### block ### y = 2")
	if ast.Dump(plain) != ast.Dump(commented) {
		t.Errorf("comments changed the parse:\nplain:     %s\ncommented: %s",
			ast.Dump(plain), ast.Dump(commented))
	}
}

func TestParse_RecoversAcrossBadDecls(t *testing.T) {
	input := "f = )\ng = 1\nh = )\nk = 2"
	mod, diags := Parse(input)
	if mod == nil {
		t.Fatal("expected a module despite errors")
	}
	if len(diags) < 2 {
		t.Fatalf("expected at least 2 diagnostics, got %d: %v", len(diags), diags)
	}

	var names []string
	for _, decl := range mod.Decls {
		if def, ok := decl.(*ast.TermDef); ok {
			names = append(names, def.Name.Name)
		}
	}
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	if !found["g"] || !found["k"] {
		t.Fatalf("recovery lost good declarations; parsed %v", names)
	}
}

func TestParse_RecoveryKeepsFollowingKeywordDecl(t *testing.T) {
	// Recovery stops at a declaration keyword without consuming it, so a
	// well-formed declaration right after a malformed one survives.
	inputs := []string{
		"foo bar data X = [A]",
		"@ data X = [A]",
	}
	for _, input := range inputs {
		mod, diags := Parse(input)
		if mod == nil {
			t.Fatalf("expected a module despite errors for %q", input)
		}
		if !diag.HasErrors(diags) {
			t.Fatalf("expected diagnostics for %q, got none", input)
		}
		var data *ast.DataDef
		for _, decl := range mod.Decls {
			if d, ok := decl.(*ast.DataDef); ok {
				data = d
			}
		}
		if data == nil || data.Name.Name != "X" {
			t.Fatalf("recovery lost the data declaration in %q; got %s", input, ast.Dump(mod))
		}
	}
}

func TestParse_LexErrorsSuppressParse(t *testing.T) {
	mod, diags := Parse(`x = "unterminated`)
	if mod != nil {
		t.Fatal("expected no module when lexing failed")
	}
	expectErrorCode(t, diags, diag.CodeLexUnterminatedString)
}

func TestParse_FilenameOnDiagnostics(t *testing.T) {
	_, diags := Parse("f = )", WithFilename("main.q"))
	if len(diags) == 0 {
		t.Fatal("expected diagnostics")
	}
	for _, d := range diags {
		if d.Span.Filename != "main.q" {
			t.Fatalf("diagnostic span filename %q, expected main.q", d.Span.Filename)
		}
	}
}

func TestParse_BindStatement(t *testing.T) {
	input := "run = [x =! ask; x + 1]"
	expectDump(t, input,
		"(module _ (def run (clause () (block (bind x ask) (+ x 1)))))")
}

func TestParse_LocalClauseGrouping(t *testing.T) {
	input := "f = [go 0 = 1; go n = go (n - 1); go 9]"
	mod := parseModule(t, input)
	def := mod.Decls[0].(*ast.TermDef)
	block := def.Clauses[0].Body.(*ast.BlockExpr)
	if len(block.Stmts) != 1 {
		t.Fatalf("expected the two go clauses to merge into 1 statement, got %d", len(block.Stmts))
	}
	local, ok := block.Stmts[0].(*ast.TermDef)
	if !ok || len(local.Clauses) != 2 {
		t.Fatalf("expected a 2-clause local definition, got %+v", block.Stmts[0])
	}
}
