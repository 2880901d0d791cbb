package ast

import (
	"fmt"
	"strings"
	"testing"

	"github.com/quill-lang/quill/internal/lexer"
)

// sampleModule builds
//
//	module M
//	f y = 1 + y
//
// by hand, so traversal order can be asserted without the parser.
func sampleModule() *Module {
	var sp lexer.Span
	body := NewBinaryExpr("+", NewIntLit("1", sp), NewIdent("y", sp), sp)
	clause := NewDefClause([]Pattern{NewVarPat(NewIdent("y", sp), sp)}, body, sp)
	def := NewTermDef(NewIdent("f", sp), []*DefClause{clause}, sp)

	mod := NewModule(sp)
	mod.Name = NewIdent("M", sp)
	mod.Decls = append(mod.Decls, def)
	return mod
}

func kindOf(n Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

func TestWalk_VisitOrder(t *testing.T) {
	var got []string
	Walk(sampleModule(), func(n Node) bool {
		got = append(got, kindOf(n))
		return true
	})

	want := []string{
		"Module", "Ident", // module header
		"TermDef", "Ident", // definition head
		"DefClause", "VarPat", "Ident", // parameter
		"BinaryExpr", "IntLit", "Ident", // body, left to right
	}
	if len(got) != len(want) {
		t.Fatalf("visited %d nodes, expected %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visit %d is %s, expected %s (full order %v)", i, got[i], want[i], got)
		}
	}
}

func TestWalk_FalsePrunesSubtree(t *testing.T) {
	var got []string
	Walk(sampleModule(), func(n Node) bool {
		got = append(got, kindOf(n))
		_, isClause := n.(*DefClause)
		return !isClause
	})

	// The clause's parameter and body are never visited.
	for _, kind := range got {
		if kind == "VarPat" || kind == "BinaryExpr" {
			t.Fatalf("pruned subtree was visited: %v", got)
		}
	}
	if got[len(got)-1] != "DefClause" {
		t.Fatalf("traversal should stop inside the clause: %v", got)
	}
}

func TestWalk_NilNodeIsNoop(t *testing.T) {
	called := false
	Walk(nil, func(Node) bool { called = true; return true })
	if called {
		t.Fatal("callback invoked for nil node")
	}
}
