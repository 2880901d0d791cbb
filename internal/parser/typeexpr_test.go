package parser

import (
	"testing"

	"github.com/quill-lang/quill/internal/diag"
)

func annotDump(want string) string {
	return "(module _ (annot f " + want + "))"
}

func TestTypes_ArrowIsRightAssociative(t *testing.T) {
	expectDump(t, "f @ a -> b -> c", annotDump("(-> a (-> b c))"))
}

func TestTypes_ApplicationIsLeftAssociative(t *testing.T) {
	expectDump(t, "f @ Result e a", annotDump("(tapp (tapp Result e) a)"))
}

func TestTypes_ParensGroup(t *testing.T) {
	expectDump(t, "f @ (a -> b) -> List a -> List b",
		annotDump("(-> (-> a b) (-> (tapp List a) (tapp List b)))"))
}

func TestTypes_UnitAndTupleTypes(t *testing.T) {
	expectDump(t, "f @ (Int, Bool) -> ()",
		annotDump("(-> (ttuple Int Bool) (ttuple))"))
}

func TestTypes_SingleConstraint(t *testing.T) {
	expectDump(t, "f @ Eq a => a -> a -> Bool",
		annotDump("(qual ((tapp Eq a)) (-> a (-> a Bool)))"))
}

func TestTypes_ConstraintList(t *testing.T) {
	expectDump(t, "f @ (Eq a, Show a) => a -> Text",
		annotDump("(qual ((tapp Eq a) (tapp Show a)) (-> a Text))"))
}

func TestTypes_EffectRow(t *testing.T) {
	expectDump(t, "f @ [State Int, e] Int",
		annotDump("(eff ((tapp State Int)) ..e Int)"))
}

func TestTypes_EffectRowPure(t *testing.T) {
	expectDump(t, "f @ [] Int", annotDump("(eff () Int)"))
}

func TestTypes_EffectRowInArrow(t *testing.T) {
	expectDump(t, "f @ () -> [IO] ()",
		annotDump("(-> (ttuple) (eff (IO) (ttuple)))"))
}

func TestTypes_EffectRowVarNotLast(t *testing.T) {
	diags := parseWithErrors(t, "f @ [e, State Int] Int")
	expectErrorCode(t, diags, diag.CodeInvalidEffectRow)
}

func TestTypes_EffectRowTwoVars(t *testing.T) {
	diags := parseWithErrors(t, "f @ [e, f] Int")
	expectErrorCode(t, diags, diag.CodeInvalidEffectRow)
}

func TestTypes_AnnotationStopsAtSeparator(t *testing.T) {
	input := "f @ Int -> Int\ng = 1"
	mod := parseModule(t, input)
	if len(mod.Decls) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(mod.Decls))
	}
}
