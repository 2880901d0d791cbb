package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a node as a compact s-expression, ignoring spans. It is
// the debugging surface used by the CLI and by structural assertions in
// tests; it is not a source formatter.
func Dump(node Node) string {
	var b strings.Builder
	dump(&b, node)
	return b.String()
}

func dump(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("_")

	case *Ident:
		b.WriteString(n.Name)

	case *Module:
		b.WriteString("(module ")
		if n.Name != nil {
			b.WriteString(n.Name.Name)
		} else {
			b.WriteString("_")
		}
		for _, decl := range n.Decls {
			b.WriteString(" ")
			dump(b, decl)
		}
		b.WriteString(")")

	case *TermDef:
		fmt.Fprintf(b, "(def %s", n.Name.Name)
		for _, clause := range n.Clauses {
			b.WriteString(" ")
			dump(b, clause)
		}
		b.WriteString(")")

	case *DefClause:
		b.WriteString("(clause (")
		dumpList(b, toNodes(n.Params))
		b.WriteString(") ")
		dump(b, n.Body)
		b.WriteString(")")

	case *TypeAnnotation:
		b.WriteString("(annot ")
		if n.Name != nil {
			b.WriteString(n.Name.Name)
		} else {
			b.WriteString("_")
		}
		b.WriteString(" ")
		dump(b, n.Type)
		b.WriteString(")")

	case *DataDef:
		fmt.Fprintf(b, "(data %s (", n.Name.Name)
		dumpList(b, identNodes(n.Params))
		b.WriteString(")")
		for _, ctor := range n.Ctors {
			b.WriteString(" ")
			dump(b, ctor)
		}
		b.WriteString(")")

	case *CtorSpec:
		fmt.Fprintf(b, "(ctor %s", n.Name.Name)
		for _, typ := range n.Positional {
			b.WriteString(" ")
			dump(b, typ)
		}
		for _, field := range n.Fields {
			b.WriteString(" ")
			dump(b, field)
		}
		b.WriteString(")")

	case *FieldSpec:
		fmt.Fprintf(b, "(field %s ", n.Name.Name)
		dump(b, n.Type)
		if n.Default != nil {
			b.WriteString(" ")
			dump(b, n.Default)
		}
		b.WriteString(")")

	case *EffectDef:
		fmt.Fprintf(b, "(effect %s (", n.Name.Name)
		dumpList(b, identNodes(n.Params))
		b.WriteString(")")
		for _, op := range n.Ops {
			b.WriteString(" ")
			dump(b, op)
		}
		b.WriteString(")")

	case *OpSpec:
		fmt.Fprintf(b, "(op %s ", n.Name.Name)
		dump(b, n.Type)
		b.WriteString(")")

	case *TypeClassDef:
		fmt.Fprintf(b, "(typeclass %s %s", n.Name.Name, n.Param.Name)
		for _, member := range n.Members {
			b.WriteString(" ")
			dump(b, member)
		}
		b.WriteString(")")

	case *InstanceDef:
		fmt.Fprintf(b, "(instance %s ", n.Class.Name)
		dump(b, n.Head)
		for _, member := range n.Members {
			b.WriteString(" ")
			dump(b, member)
		}
		b.WriteString(")")

	case *BindStmt:
		b.WriteString("(bind ")
		dump(b, n.Pat)
		b.WriteString(" ")
		dump(b, n.Value)
		b.WriteString(")")

	case *ExprStmt:
		dump(b, n.Expr)

	case *IntLit:
		b.WriteString(n.Text)

	case *FloatLit:
		b.WriteString(n.Text)

	case *StringLit:
		b.WriteString(strconv.Quote(n.Value))

	case *CharLit:
		b.WriteString("'" + n.Value + "'")

	case *ApplyExpr:
		b.WriteString("(apply ")
		dump(b, n.Fn)
		b.WriteString(" ")
		dump(b, n.Arg)
		b.WriteString(")")

	case *BinaryExpr:
		fmt.Fprintf(b, "(%s ", n.Op)
		dump(b, n.Left)
		b.WriteString(" ")
		dump(b, n.Right)
		b.WriteString(")")

	case *UnaryExpr:
		fmt.Fprintf(b, "(%s ", n.Op)
		dump(b, n.Operand)
		b.WriteString(")")

	case *IfExpr:
		b.WriteString("(if")
		for _, arm := range n.Arms {
			b.WriteString(" ")
			dump(b, arm)
		}
		if n.Else != nil {
			b.WriteString(" ")
			dump(b, n.Else)
		}
		b.WriteString(")")

	case *IfArm:
		b.WriteString("(arm ")
		dump(b, n.Cond)
		b.WriteString(" ")
		dump(b, n.Body)
		b.WriteString(")")

	case *BlockExpr:
		b.WriteString("(block")
		for _, stmt := range n.Stmts {
			b.WriteString(" ")
			dump(b, stmt)
		}
		if n.Tail != nil {
			b.WriteString(" ")
			dump(b, n.Tail)
		}
		b.WriteString(")")

	case *CaseExpr:
		b.WriteString("(case (")
		dumpList(b, exprNodes(n.Scrutinees))
		b.WriteString(")")
		for _, clause := range n.Clauses {
			b.WriteString(" ")
			dump(b, clause)
		}
		b.WriteString(")")

	case *CaseClause:
		b.WriteString("(clause (")
		dumpList(b, toNodes(n.Pats))
		b.WriteString(") ")
		dump(b, n.Body)
		b.WriteString(")")

	case *LambdaExpr:
		b.WriteString("(fn")
		for _, clause := range n.Clauses {
			b.WriteString(" ")
			dump(b, clause)
		}
		b.WriteString(")")

	case *LambdaClause:
		b.WriteString("(clause (")
		dumpList(b, toNodes(n.Params))
		b.WriteString(") ")
		dump(b, n.Body)
		b.WriteString(")")

	case *HandlerClause:
		fmt.Fprintf(b, "(handler %s (", n.Op.Name)
		dumpList(b, toNodes(n.Args))
		fmt.Fprintf(b, ") %s ", n.Cont.Name)
		dump(b, n.Body)
		b.WriteString(")")

	case *ListExpr:
		b.WriteString("(list")
		for _, elem := range n.Elems {
			b.WriteString(" ")
			dump(b, elem)
		}
		b.WriteString(")")

	case *ConsExpr:
		b.WriteString("(cons ")
		dump(b, n.Head)
		b.WriteString(" ")
		dump(b, n.Tail)
		b.WriteString(")")

	case *Comprehension:
		b.WriteString("(comp")
		for _, clause := range n.Clauses {
			b.WriteString(" ")
			dump(b, clause)
		}
		b.WriteString(" ")
		dump(b, n.Body)
		b.WriteString(")")

	case *CompFor:
		b.WriteString("(for ")
		dump(b, n.Pat)
		b.WriteString(" ")
		dump(b, n.Source)
		b.WriteString(")")

	case *CompIf:
		b.WriteString("(filter ")
		dump(b, n.Cond)
		b.WriteString(")")

	case *TupleExpr:
		b.WriteString("(tuple")
		for _, elem := range n.Elems {
			b.WriteString(" ")
			dump(b, elem)
		}
		b.WriteString(")")

	case *RecordExpr:
		fmt.Fprintf(b, "(record %s", n.Ctor.Name)
		for _, field := range n.Fields {
			b.WriteString(" ")
			dump(b, field)
		}
		b.WriteString(")")

	case *RecordField:
		switch {
		case n.Pun:
			fmt.Fprintf(b, "(pun %s)", n.Name.Name)
		case n.Name != nil:
			fmt.Fprintf(b, "(field %s ", n.Name.Name)
			dump(b, n.Value)
			b.WriteString(")")
		default:
			b.WriteString("(pos ")
			dump(b, n.Value)
			b.WriteString(")")
		}

	case *RecordUpdate:
		b.WriteString("(update ")
		dump(b, n.Target)
		for _, field := range n.Fields {
			b.WriteString(" ")
			dump(b, field)
		}
		b.WriteString(")")

	case *UpdateLambda:
		b.WriteString("(update-fn")
		for _, field := range n.Fields {
			b.WriteString(" ")
			dump(b, field)
		}
		b.WriteString(")")

	case *FieldAccess:
		b.WriteString("(get ")
		dump(b, n.Target)
		fmt.Fprintf(b, " %s)", n.Field.Name)

	case *AccessorLambda:
		fmt.Fprintf(b, "(accessor %s)", n.Field.Name)

	case *SectionExpr:
		fmt.Fprintf(b, "(section %s ", n.Op)
		dump(b, n.Left)
		b.WriteString(" ")
		dump(b, n.Right)
		b.WriteString(")")

	case *WildcardPat:
		b.WriteString("_")

	case *VarPat:
		b.WriteString(n.Name.Name)

	case *LitPat:
		b.WriteString("(lit ")
		dump(b, n.Lit)
		b.WriteString(")")

	case *CtorPat:
		fmt.Fprintf(b, "(pcon %s", n.Name.Name)
		for _, arg := range n.Args {
			b.WriteString(" ")
			dump(b, arg)
		}
		for _, field := range n.Fields {
			b.WriteString(" ")
			dump(b, field)
		}
		b.WriteString(")")

	case *FieldPat:
		if n.Pun {
			fmt.Fprintf(b, "(pun %s)", n.Name.Name)
		} else {
			fmt.Fprintf(b, "(field %s ", n.Name.Name)
			dump(b, n.Pat)
			b.WriteString(")")
		}

	case *ConsPat:
		b.WriteString("(pcons ")
		dump(b, n.Head)
		b.WriteString(" ")
		dump(b, n.Tail)
		b.WriteString(")")

	case *ListPat:
		b.WriteString("(plist")
		for _, elem := range n.Elems {
			b.WriteString(" ")
			dump(b, elem)
		}
		b.WriteString(")")

	case *TuplePat:
		b.WriteString("(ptuple")
		for _, elem := range n.Elems {
			b.WriteString(" ")
			dump(b, elem)
		}
		b.WriteString(")")

	case *VarType:
		b.WriteString(n.Name.Name)

	case *ConType:
		b.WriteString(n.Name.Name)

	case *AppType:
		b.WriteString("(tapp ")
		dump(b, n.Fn)
		b.WriteString(" ")
		dump(b, n.Arg)
		b.WriteString(")")

	case *ArrowType:
		b.WriteString("(-> ")
		dump(b, n.Param)
		b.WriteString(" ")
		dump(b, n.Result)
		b.WriteString(")")

	case *TupleType:
		b.WriteString("(ttuple")
		for _, elem := range n.Elems {
			b.WriteString(" ")
			dump(b, elem)
		}
		b.WriteString(")")

	case *EffectType:
		b.WriteString("(eff (")
		dumpList(b, toNodes(n.Effects))
		b.WriteString(")")
		if n.Row != nil {
			fmt.Fprintf(b, " ..%s", n.Row.Name)
		}
		b.WriteString(" ")
		dump(b, n.Result)
		b.WriteString(")")

	case *QualType:
		b.WriteString("(qual (")
		dumpList(b, toNodes(n.Constraints))
		b.WriteString(") ")
		dump(b, n.Type)
		b.WriteString(")")

	default:
		fmt.Fprintf(b, "(?%T)", node)
	}
}

func dumpList(b *strings.Builder, nodes []Node) {
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(" ")
		}
		dump(b, n)
	}
}

func toNodes[T Node](items []T) []Node {
	nodes := make([]Node, len(items))
	for i, item := range items {
		nodes[i] = item
	}
	return nodes
}

func identNodes(idents []*Ident) []Node {
	return toNodes(idents)
}

func exprNodes(exprs []Expr) []Node {
	return toNodes(exprs)
}
