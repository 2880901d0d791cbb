package ast

import "github.com/quill-lang/quill/internal/lexer"

// IntLit represents an integer literal.
type IntLit struct {
	Text string
	span lexer.Span
}

// Span returns the literal span.
func (l *IntLit) Span() lexer.Span { return l.span }

// NewIntLit constructs an integer literal node.
func NewIntLit(text string, span lexer.Span) *IntLit {
	return &IntLit{Text: text, span: span}
}

func (*IntLit) exprNode() {}

// FloatLit represents a floating point literal.
type FloatLit struct {
	Text string
	span lexer.Span
}

// Span returns the literal span.
func (l *FloatLit) Span() lexer.Span { return l.span }

// NewFloatLit constructs a float literal node.
func NewFloatLit(text string, span lexer.Span) *FloatLit {
	return &FloatLit{Text: text, span: span}
}

func (*FloatLit) exprNode() {}

// StringLit represents a string literal; Value holds the decoded text.
type StringLit struct {
	Value string
	span  lexer.Span
}

// Span returns the literal span.
func (l *StringLit) Span() lexer.Span { return l.span }

// NewStringLit constructs a string literal node.
func NewStringLit(value string, span lexer.Span) *StringLit {
	return &StringLit{Value: value, span: span}
}

func (*StringLit) exprNode() {}

// CharLit represents a character literal; Value holds the decoded text.
type CharLit struct {
	Value string
	span  lexer.Span
}

// Span returns the literal span.
func (l *CharLit) Span() lexer.Span { return l.span }

// NewCharLit constructs a character literal node.
func NewCharLit(value string, span lexer.Span) *CharLit {
	return &CharLit{Value: value, span: span}
}

func (*CharLit) exprNode() {}

// ApplyExpr represents curried function application; `f x y` parses as
// Apply(Apply(f, x), y).
type ApplyExpr struct {
	Fn   Expr
	Arg  Expr
	span lexer.Span
}

// Span returns the application span.
func (e *ApplyExpr) Span() lexer.Span { return e.span }

// NewApplyExpr constructs an application node.
func NewApplyExpr(fn, arg Expr, span lexer.Span) *ApplyExpr {
	return &ApplyExpr{Fn: fn, Arg: arg, span: span}
}

func (*ApplyExpr) exprNode() {}

// BinaryExpr represents a binary infix operator use, resolved against the
// fixed precedence table.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *BinaryExpr) Span() lexer.Span { return e.span }

// NewBinaryExpr constructs a binary expression node.
func NewBinaryExpr(op string, left, right Expr, span lexer.Span) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right, span: span}
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr represents a prefix operator use (`-x`, `!ready`).
type UnaryExpr struct {
	Op      string
	Operand Expr
	span    lexer.Span
}

// Span returns the expression span.
func (e *UnaryExpr) Span() lexer.Span { return e.span }

// NewUnaryExpr constructs a unary expression node.
func NewUnaryExpr(op string, operand Expr, span lexer.Span) *UnaryExpr {
	return &UnaryExpr{Op: op, Operand: operand, span: span}
}

func (*UnaryExpr) exprNode() {}

// IfArm is one `cond: branch` pair of a multi-way conditional.
type IfArm struct {
	Cond Expr
	Body Expr
	span lexer.Span
}

// Span returns the arm span.
func (a *IfArm) Span() lexer.Span { return a.span }

// NewIfArm constructs a conditional arm.
func NewIfArm(cond, body Expr, span lexer.Span) *IfArm {
	return &IfArm{Cond: cond, Body: body, span: span}
}

// IfExpr represents a multi-way conditional. Else is nil only for the
// statement form; in expression position the parser rejects a missing
// else branch.
type IfExpr struct {
	Arms []*IfArm
	Else Expr
	span lexer.Span
}

// Span returns the conditional span.
func (e *IfExpr) Span() lexer.Span { return e.span }

// NewIfExpr constructs a conditional node.
func NewIfExpr(arms []*IfArm, els Expr, span lexer.Span) *IfExpr {
	return &IfExpr{Arms: arms, Else: els, span: span}
}

func (*IfExpr) exprNode() {}

// BlockExpr represents a bracketed scoping block: ordered statements plus
// a trailing expression whose value is the block's value.
type BlockExpr struct {
	Stmts []Stmt
	Tail  Expr
	span  lexer.Span
}

// Span returns the block span.
func (b *BlockExpr) Span() lexer.Span { return b.span }

// NewBlockExpr constructs a block expression node.
func NewBlockExpr(stmts []Stmt, tail Expr, span lexer.Span) *BlockExpr {
	return &BlockExpr{Stmts: stmts, Tail: tail, span: span}
}

// SetSpan updates the block span.
func (b *BlockExpr) SetSpan(span lexer.Span) {
	b.span = span
}

func (*BlockExpr) exprNode() {}

// BindStmt represents an effectful sequencing statement `pattern =! expr`.
type BindStmt struct {
	Pat   Pattern
	Value Expr
	span  lexer.Span
}

// Span returns the statement span.
func (s *BindStmt) Span() lexer.Span { return s.span }

// NewBindStmt constructs a bind statement node.
func NewBindStmt(pat Pattern, value Expr, span lexer.Span) *BindStmt {
	return &BindStmt{Pat: pat, Value: value, span: span}
}

func (*BindStmt) stmtNode() {}

// ExprStmt represents a bare expression statement whose value is
// discarded.
type ExprStmt struct {
	Expr Expr
	span lexer.Span
}

// Span returns the statement span.
func (s *ExprStmt) Span() lexer.Span { return s.span }

// NewExprStmt constructs an expression statement node.
func NewExprStmt(expr Expr, span lexer.Span) *ExprStmt {
	return &ExprStmt{Expr: expr, span: span}
}

func (*ExprStmt) stmtNode() {}

// CaseClause is one clause of a case expression: exactly one pattern per
// scrutinee, then the branch body.
type CaseClause struct {
	Pats []Pattern
	Body Expr
	span lexer.Span
}

// Span returns the clause span.
func (c *CaseClause) Span() lexer.Span { return c.span }

// NewCaseClause constructs a case clause.
func NewCaseClause(pats []Pattern, body Expr, span lexer.Span) *CaseClause {
	return &CaseClause{Pats: pats, Body: body, span: span}
}

// CaseExpr represents `case scrut1: scrut2: ... : [clauses]`.
type CaseExpr struct {
	Scrutinees []Expr
	Clauses    []*CaseClause
	span       lexer.Span
}

// Span returns the case span.
func (e *CaseExpr) Span() lexer.Span { return e.span }

// NewCaseExpr constructs a case expression node.
func NewCaseExpr(scrutinees []Expr, clauses []*CaseClause, span lexer.Span) *CaseExpr {
	return &CaseExpr{Scrutinees: scrutinees, Clauses: clauses, span: span}
}

func (*CaseExpr) exprNode() {}

// FnClause is a clause of a bracketed function literal: either an
// ordinary pattern-matching clause or an effect-handler clause.
type FnClause interface {
	Node
	fnClauseNode()
}

// LambdaClause is an ordinary clause `pat: pat: ... : body`.
type LambdaClause struct {
	Params []Pattern
	Body   Expr
	span   lexer.Span
}

// Span returns the clause span.
func (c *LambdaClause) Span() lexer.Span { return c.span }

// NewLambdaClause constructs a lambda clause.
func NewLambdaClause(params []Pattern, body Expr, span lexer.Span) *LambdaClause {
	return &LambdaClause{Params: params, Body: body, span: span}
}

func (*LambdaClause) fnClauseNode() {}

// HandlerClause is a suspended-computation clause of an effect handler:
// an operation-application pattern paired with its continuation
// identifier, `op args | k: body`. A completed computation is matched by
// an ordinary LambdaClause with a single pattern.
type HandlerClause struct {
	Op   *Ident
	Args []Pattern
	Cont *Ident
	Body Expr
	span lexer.Span
}

// Span returns the clause span.
func (c *HandlerClause) Span() lexer.Span { return c.span }

// NewHandlerClause constructs a handler clause.
func NewHandlerClause(op *Ident, args []Pattern, cont *Ident, body Expr, span lexer.Span) *HandlerClause {
	return &HandlerClause{Op: op, Args: args, Cont: cont, Body: body, span: span}
}

func (*HandlerClause) fnClauseNode() {}

// LambdaExpr represents a bracketed function literal with one or more
// clauses; a case lambda is the general form and a single-clause lambda
// the common case. Handler clauses may be mixed with ordinary clauses to
// form an effect handler.
type LambdaExpr struct {
	Clauses []FnClause
	span    lexer.Span
}

// Span returns the lambda span.
func (e *LambdaExpr) Span() lexer.Span { return e.span }

// NewLambdaExpr constructs a lambda expression node.
func NewLambdaExpr(clauses []FnClause, span lexer.Span) *LambdaExpr {
	return &LambdaExpr{Clauses: clauses, span: span}
}

func (*LambdaExpr) exprNode() {}

// ListExpr represents a list literal `{a, b, c}`.
type ListExpr struct {
	Elems []Expr
	span  lexer.Span
}

// Span returns the list span.
func (e *ListExpr) Span() lexer.Span { return e.span }

// NewListExpr constructs a list literal node.
func NewListExpr(elems []Expr, span lexer.Span) *ListExpr {
	return &ListExpr{Elems: elems, span: span}
}

func (*ListExpr) exprNode() {}

// ConsExpr represents a cons cell `{head | tail}`.
type ConsExpr struct {
	Head Expr
	Tail Expr
	span lexer.Span
}

// Span returns the cons span.
func (e *ConsExpr) Span() lexer.Span { return e.span }

// NewConsExpr constructs a cons cell node.
func NewConsExpr(head, tail Expr, span lexer.Span) *ConsExpr {
	return &ConsExpr{Head: head, Tail: tail, span: span}
}

func (*ConsExpr) exprNode() {}

// CompClause is a generator or filter clause of a list comprehension.
type CompClause interface {
	Node
	compClauseNode()
}

// CompFor is a generator clause `for pat in expr`.
type CompFor struct {
	Pat    Pattern
	Source Expr
	span   lexer.Span
}

// Span returns the clause span.
func (c *CompFor) Span() lexer.Span { return c.span }

// NewCompFor constructs a generator clause.
func NewCompFor(pat Pattern, source Expr, span lexer.Span) *CompFor {
	return &CompFor{Pat: pat, Source: source, span: span}
}

func (*CompFor) compClauseNode() {}

// CompIf is a filter clause `if expr`.
type CompIf struct {
	Cond Expr
	span lexer.Span
}

// Span returns the clause span.
func (c *CompIf) Span() lexer.Span { return c.span }

// NewCompIf constructs a filter clause.
func NewCompIf(cond Expr, span lexer.Span) *CompIf {
	return &CompIf{Cond: cond, span: span}
}

func (*CompIf) compClauseNode() {}

// Comprehension represents a list comprehension
// `{for x in xs if x > 0: x * x}`.
type Comprehension struct {
	Clauses []CompClause
	Body    Expr
	span    lexer.Span
}

// Span returns the comprehension span.
func (e *Comprehension) Span() lexer.Span { return e.span }

// NewComprehension constructs a comprehension node.
func NewComprehension(clauses []CompClause, body Expr, span lexer.Span) *Comprehension {
	return &Comprehension{Clauses: clauses, Body: body, span: span}
}

func (*Comprehension) exprNode() {}

// TupleExpr represents a tuple `(a, b)`.
type TupleExpr struct {
	Elems []Expr
	span  lexer.Span
}

// Span returns the tuple span.
func (e *TupleExpr) Span() lexer.Span { return e.span }

// NewTupleExpr constructs a tuple node.
func NewTupleExpr(elems []Expr, span lexer.Span) *TupleExpr {
	return &TupleExpr{Elems: elems, span: span}
}

func (*TupleExpr) exprNode() {}

// RecordField is one argument of a record construction or update. A nil
// Name means a positional argument; Pun marks the bare-identifier field
// pun form.
type RecordField struct {
	Name  *Ident
	Value Expr
	Pun   bool
	span  lexer.Span
}

// Span returns the field span.
func (f *RecordField) Span() lexer.Span { return f.span }

// NewRecordField constructs a record field node.
func NewRecordField(name *Ident, value Expr, pun bool, span lexer.Span) *RecordField {
	return &RecordField{Name: name, Value: value, Pun: pun, span: span}
}

// RecordExpr represents record construction `Ctor[...]` with either
// ordered positional arguments or named/punned field assignments.
type RecordExpr struct {
	Ctor   *Ident
	Fields []*RecordField
	span   lexer.Span
}

// Span returns the construction span.
func (e *RecordExpr) Span() lexer.Span { return e.span }

// NewRecordExpr constructs a record construction node.
func NewRecordExpr(ctor *Ident, fields []*RecordField, span lexer.Span) *RecordExpr {
	return &RecordExpr{Ctor: ctor, Fields: fields, span: span}
}

func (*RecordExpr) exprNode() {}

// RecordUpdate represents a record update `target.[field = expr, ...]`.
type RecordUpdate struct {
	Target Expr
	Fields []*RecordField
	span   lexer.Span
}

// Span returns the update span.
func (e *RecordUpdate) Span() lexer.Span { return e.span }

// NewRecordUpdate constructs a record update node.
func NewRecordUpdate(target Expr, fields []*RecordField, span lexer.Span) *RecordUpdate {
	return &RecordUpdate{Target: target, Fields: fields, span: span}
}

func (*RecordUpdate) exprNode() {}

// UpdateLambda represents a record-update lambda `.[field = expr, ...]`.
type UpdateLambda struct {
	Fields []*RecordField
	span   lexer.Span
}

// Span returns the lambda span.
func (e *UpdateLambda) Span() lexer.Span { return e.span }

// NewUpdateLambda constructs an update lambda node.
func NewUpdateLambda(fields []*RecordField, span lexer.Span) *UpdateLambda {
	return &UpdateLambda{Fields: fields, span: span}
}

func (*UpdateLambda) exprNode() {}

// FieldAccess represents a field access `target.field`.
type FieldAccess struct {
	Target Expr
	Field  *Ident
	span   lexer.Span
}

// Span returns the access span.
func (e *FieldAccess) Span() lexer.Span { return e.span }

// NewFieldAccess constructs a field access node.
func NewFieldAccess(target Expr, field *Ident, span lexer.Span) *FieldAccess {
	return &FieldAccess{Target: target, Field: field, span: span}
}

func (*FieldAccess) exprNode() {}

// AccessorLambda represents an accessor lambda `[.field]`.
type AccessorLambda struct {
	Field *Ident
	span  lexer.Span
}

// Span returns the lambda span.
func (e *AccessorLambda) Span() lexer.Span { return e.span }

// NewAccessorLambda constructs an accessor lambda node.
func NewAccessorLambda(field *Ident, span lexer.Span) *AccessorLambda {
	return &AccessorLambda{Field: field, span: span}
}

func (*AccessorLambda) exprNode() {}

// SectionExpr represents an operator section: `[+]` with both operands
// open, `[1 +]` left-applied, `[+ 1]` right-applied.
type SectionExpr struct {
	Op    string
	Left  Expr // nil when the left operand is open
	Right Expr // nil when the right operand is open
	span  lexer.Span
}

// Span returns the section span.
func (e *SectionExpr) Span() lexer.Span { return e.span }

// NewSectionExpr constructs an operator section node.
func NewSectionExpr(op string, left, right Expr, span lexer.Span) *SectionExpr {
	return &SectionExpr{Op: op, Left: left, Right: right, span: span}
}

func (*SectionExpr) exprNode() {}
