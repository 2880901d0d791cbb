package parser

import (
	"testing"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diag"
)

func TestBrackets_SingleParamLambda(t *testing.T) {
	expectDump(t, "inc = [x: x + 1]",
		"(module _ (def inc (clause () (fn (clause (x) (+ x 1))))))")
}

func TestBrackets_TwoParamLambda(t *testing.T) {
	expectDump(t, "add = [x: y: x + y]",
		"(module _ (def add (clause () (fn (clause (x y) (+ x y))))))")
}

func TestBrackets_CaseLambdaClauses(t *testing.T) {
	input := "orZero = [Some a: a; None: 0]"
	expectDump(t, input,
		"(module _ (def orZero (clause () (fn (clause ((pcon Some a)) a) (clause ((pcon None)) 0)))))")
}

func TestBrackets_ScopingBlock(t *testing.T) {
	input := "area r = [sq = r * r; sq * 3]"
	expectDump(t, input,
		"(module _ (def area (clause (r) (block (def sq (clause () (* r r))) (* sq 3)))))")
}

func TestBrackets_BlockWithNewlines(t *testing.T) {
	input := "main = [\n  a = 1\n  b = 2\n  a + b\n]"
	expectDump(t, input,
		"(module _ (def main (clause () (block (def a (clause () 1)) (def b (clause () 2)) (+ a b)))))")
}

func TestBrackets_BlockAnnotationBindsToLocalDef(t *testing.T) {
	// A bare `@ Type` statement takes its name from the local definition
	// that follows, like its top-level counterpart.
	input := "f = [\n  @ Int\n  x = 1\n  x\n]"
	expectDump(t, input,
		"(module _ (def f (clause () (block (annot x Int) (def x (clause () 1)) x))))")
}

func TestBrackets_BlockMustEndInExpression(t *testing.T) {
	diags := parseWithErrors(t, "main = [x = 1]")
	expectErrorCode(t, diags, diag.CodeUnexpectedToken)
}

func TestBrackets_SectionForms(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"f = [+]", "(module _ (def f (clause () (section + _ _))))"},
		{"f = [+ 1]", "(module _ (def f (clause () (section + _ 1))))"},
		{"f = [1 +]", "(module _ (def f (clause () (section + 1 _))))"},
		{"f = [* n]", "(module _ (def f (clause () (section * _ n))))"},
		{"f = [== 0]", "(module _ (def f (clause () (section == _ 0))))"},
	}
	for _, tt := range tests {
		expectDump(t, tt.input, tt.want)
	}
}

func TestBrackets_AccessorLambda(t *testing.T) {
	expectDump(t, "radii = map [.radius] shapes",
		"(module _ (def radii (clause () (apply (apply map (accessor radius)) shapes))))")
}

func TestBrackets_UpdateLambda(t *testing.T) {
	expectDump(t, "reset = .[count = 0]",
		"(module _ (def reset (clause () (update-fn (field count 0)))))")
}

func TestBrackets_RecordUpdate(t *testing.T) {
	expectDump(t, "moved = p.[x = p.x + 1]",
		"(module _ (def moved (clause () (update p (field x (+ (get p x) 1))))))")
}

func TestBrackets_HandlerClauses(t *testing.T) {
	input := "h = [get u | k: k 1; x: x]"
	expectDump(t, input,
		"(module _ (def h (clause () (fn (handler get (u) k (apply k 1)) (clause (x) x)))))")
}

func TestBrackets_SingleExpressionBlock(t *testing.T) {
	// No decision token before ']' makes it a block with just a tail.
	expectDump(t, "v = [1 + 2]",
		"(module _ (def v (clause () (block (+ 1 2)))))")
}

func TestBrackets_PipeInNestedPatternStaysLambda(t *testing.T) {
	// The '|' inside the brace pattern is below the clause's own depth,
	// so the clause is an ordinary lambda clause, not a handler.
	input := "f = [{h | t}: h]"
	expectDump(t, input,
		"(module _ (def f (clause () (fn (clause ((pcons h t)) h)))))")
}

func TestBrackets_ClassifierIsDeterministic(t *testing.T) {
	// Same bracket prefixes, different decision tokens.
	tests := []struct {
		input string
		check func(expr ast.Expr) bool
	}{
		{"f = [x: x]", func(e ast.Expr) bool { _, ok := e.(*ast.LambdaExpr); return ok }},
		{"f = [x = 1; x]", func(e ast.Expr) bool { _, ok := e.(*ast.BlockExpr); return ok }},
		{"f = [x]", func(e ast.Expr) bool { _, ok := e.(*ast.BlockExpr); return ok }},
		{"f = [x +]", func(e ast.Expr) bool { _, ok := e.(*ast.SectionExpr); return ok }},
		{"f = [.x]", func(e ast.Expr) bool { _, ok := e.(*ast.AccessorLambda); return ok }},
	}

	for _, tt := range tests {
		mod := parseModule(t, tt.input)
		def := mod.Decls[0].(*ast.TermDef)
		body := def.Clauses[0].Body
		if !tt.check(body) {
			t.Errorf("input %q classified as %T", tt.input, body)
		}
	}
}

func TestBrackets_UnclosedIsAmbiguous(t *testing.T) {
	diags := parseWithErrors(t, "f = [x y")
	expectErrorCode(t, diags, diag.CodeAmbiguousBracketForm)
}

func TestRecords_ConstructionPositional(t *testing.T) {
	expectDump(t, "c = Circle 1.5",
		"(module _ (def c (clause () (apply Circle 1.5))))")
}

func TestRecords_ConstructionNamed(t *testing.T) {
	expectDump(t, "c = Circle[radius = 1.5]",
		"(module _ (def c (clause () (record Circle (field radius 1.5)))))")
}

func TestRecords_PunIsAlwaysAPun(t *testing.T) {
	expectDump(t, "c = Circle[radius]",
		"(module _ (def c (clause () (record Circle (pun radius)))))")
}

func TestRecords_AdjacencyDecidesRecordSyntax(t *testing.T) {
	// With a space, '[' starts a block argument instead of record syntax.
	expectDump(t, "c = Circle [radius]",
		"(module _ (def c (clause () (apply Circle (block radius)))))")
}

func TestRecords_PositionalBracketArgs(t *testing.T) {
	expectDump(t, "p = Pair[1, 2]",
		"(module _ (def p (clause () (record Pair (pos 1) (pos 2)))))")
}

func TestRecords_PositionalAfterNamedRejected(t *testing.T) {
	diags := parseWithErrors(t, "c = Circle[radius = 1, 2]")
	expectErrorCode(t, diags, diag.CodeMalformedFieldPun)
}

func TestRecords_UpdateRejectsPositional(t *testing.T) {
	diags := parseWithErrors(t, "q = p.[1]")
	expectErrorCode(t, diags, diag.CodeMalformedFieldPun)
}

func TestBraces_ListLiteral(t *testing.T) {
	expectDump(t, "xs = {1, 2, 3}",
		"(module _ (def xs (clause () (list 1 2 3))))")
}

func TestBraces_EmptyList(t *testing.T) {
	expectDump(t, "xs = {}",
		"(module _ (def xs (clause () (list))))")
}

func TestBraces_ConsCell(t *testing.T) {
	expectDump(t, "ys = {h | t}",
		"(module _ (def ys (clause () (cons h t))))")
}

func TestBraces_Comprehension(t *testing.T) {
	input := "pairs = {for x in xs for y in ys if x > y: x + y}"
	expectDump(t, input,
		"(module _ (def pairs (clause () (comp (for x xs) (for y ys) (filter (> x y)) (+ x y)))))")
}

func TestBraces_ComprehensionNewlineTolerant(t *testing.T) {
	input := "pairs = {for x in xs\nif x > 0:\nx}"
	expectDump(t, input,
		"(module _ (def pairs (clause () (comp (for x xs) (filter (> x 0)) x))))")
}
