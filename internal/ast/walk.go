package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Module:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		for _, decl := range n.Decls {
			Walk(decl, fn)
		}

	case *TermDef:
		Walk(n.Name, fn)
		for _, clause := range n.Clauses {
			Walk(clause, fn)
		}

	case *DefClause:
		for _, param := range n.Params {
			Walk(param, fn)
		}
		Walk(n.Body, fn)

	case *TypeAnnotation:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		Walk(n.Type, fn)

	case *DataDef:
		Walk(n.Name, fn)
		for _, param := range n.Params {
			Walk(param, fn)
		}
		for _, ctor := range n.Ctors {
			Walk(ctor, fn)
		}

	case *CtorSpec:
		Walk(n.Name, fn)
		for _, typ := range n.Positional {
			Walk(typ, fn)
		}
		for _, field := range n.Fields {
			Walk(field, fn)
		}

	case *FieldSpec:
		Walk(n.Name, fn)
		Walk(n.Type, fn)
		if n.Default != nil {
			Walk(n.Default, fn)
		}

	case *EffectDef:
		Walk(n.Name, fn)
		for _, param := range n.Params {
			Walk(param, fn)
		}
		for _, op := range n.Ops {
			Walk(op, fn)
		}

	case *OpSpec:
		Walk(n.Name, fn)
		Walk(n.Type, fn)

	case *TypeClassDef:
		Walk(n.Name, fn)
		if n.Param != nil {
			Walk(n.Param, fn)
		}
		for _, member := range n.Members {
			Walk(member, fn)
		}

	case *InstanceDef:
		Walk(n.Class, fn)
		Walk(n.Head, fn)
		for _, member := range n.Members {
			Walk(member, fn)
		}

	case *BindStmt:
		Walk(n.Pat, fn)
		Walk(n.Value, fn)

	case *ExprStmt:
		Walk(n.Expr, fn)

	case *ApplyExpr:
		Walk(n.Fn, fn)
		Walk(n.Arg, fn)

	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *UnaryExpr:
		Walk(n.Operand, fn)

	case *IfExpr:
		for _, arm := range n.Arms {
			Walk(arm, fn)
		}
		if n.Else != nil {
			Walk(n.Else, fn)
		}

	case *IfArm:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)

	case *BlockExpr:
		for _, stmt := range n.Stmts {
			Walk(stmt, fn)
		}
		if n.Tail != nil {
			Walk(n.Tail, fn)
		}

	case *CaseExpr:
		for _, scrut := range n.Scrutinees {
			Walk(scrut, fn)
		}
		for _, clause := range n.Clauses {
			Walk(clause, fn)
		}

	case *CaseClause:
		for _, pat := range n.Pats {
			Walk(pat, fn)
		}
		Walk(n.Body, fn)

	case *LambdaExpr:
		for _, clause := range n.Clauses {
			Walk(clause, fn)
		}

	case *LambdaClause:
		for _, param := range n.Params {
			Walk(param, fn)
		}
		Walk(n.Body, fn)

	case *HandlerClause:
		Walk(n.Op, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
		Walk(n.Cont, fn)
		Walk(n.Body, fn)

	case *ListExpr:
		for _, elem := range n.Elems {
			Walk(elem, fn)
		}

	case *ConsExpr:
		Walk(n.Head, fn)
		Walk(n.Tail, fn)

	case *Comprehension:
		for _, clause := range n.Clauses {
			Walk(clause, fn)
		}
		Walk(n.Body, fn)

	case *CompFor:
		Walk(n.Pat, fn)
		Walk(n.Source, fn)

	case *CompIf:
		Walk(n.Cond, fn)

	case *TupleExpr:
		for _, elem := range n.Elems {
			Walk(elem, fn)
		}

	case *RecordExpr:
		Walk(n.Ctor, fn)
		for _, field := range n.Fields {
			Walk(field, fn)
		}

	case *RecordField:
		if n.Name != nil {
			Walk(n.Name, fn)
		}
		if n.Value != nil {
			Walk(n.Value, fn)
		}

	case *RecordUpdate:
		Walk(n.Target, fn)
		for _, field := range n.Fields {
			Walk(field, fn)
		}

	case *UpdateLambda:
		for _, field := range n.Fields {
			Walk(field, fn)
		}

	case *FieldAccess:
		Walk(n.Target, fn)
		Walk(n.Field, fn)

	case *AccessorLambda:
		Walk(n.Field, fn)

	case *SectionExpr:
		if n.Left != nil {
			Walk(n.Left, fn)
		}
		if n.Right != nil {
			Walk(n.Right, fn)
		}

	case *VarPat:
		Walk(n.Name, fn)

	case *LitPat:
		Walk(n.Lit, fn)

	case *CtorPat:
		Walk(n.Name, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
		for _, field := range n.Fields {
			Walk(field, fn)
		}

	case *FieldPat:
		Walk(n.Name, fn)
		if n.Pat != nil {
			Walk(n.Pat, fn)
		}

	case *ConsPat:
		Walk(n.Head, fn)
		Walk(n.Tail, fn)

	case *ListPat:
		for _, elem := range n.Elems {
			Walk(elem, fn)
		}

	case *TuplePat:
		for _, elem := range n.Elems {
			Walk(elem, fn)
		}

	case *VarType:
		Walk(n.Name, fn)

	case *ConType:
		Walk(n.Name, fn)

	case *AppType:
		Walk(n.Fn, fn)
		Walk(n.Arg, fn)

	case *ArrowType:
		Walk(n.Param, fn)
		Walk(n.Result, fn)

	case *TupleType:
		for _, elem := range n.Elems {
			Walk(elem, fn)
		}

	case *EffectType:
		for _, eff := range n.Effects {
			Walk(eff, fn)
		}
		if n.Row != nil {
			Walk(n.Row, fn)
		}
		Walk(n.Result, fn)

	case *QualType:
		for _, c := range n.Constraints {
			Walk(c, fn)
		}
		Walk(n.Type, fn)
	}
}
