package ast

import "github.com/quill-lang/quill/internal/lexer"

// VarType is a type variable (lowercase identifier).
type VarType struct {
	Name *Ident
	span lexer.Span
}

// Span returns the type span.
func (t *VarType) Span() lexer.Span { return t.span }

// NewVarType constructs a type variable node.
func NewVarType(name *Ident, span lexer.Span) *VarType {
	return &VarType{Name: name, span: span}
}

func (*VarType) typeNode() {}

// ConType is a type constructor reference (uppercase identifier).
type ConType struct {
	Name *Ident
	span lexer.Span
}

// Span returns the type span.
func (t *ConType) Span() lexer.Span { return t.span }

// NewConType constructs a type constructor node.
func NewConType(name *Ident, span lexer.Span) *ConType {
	return &ConType{Name: name, span: span}
}

func (*ConType) typeNode() {}

// AppType is a left-associative type application; `State Int` parses as
// App(Con State, Con Int).
type AppType struct {
	Fn   TypeExpr
	Arg  TypeExpr
	span lexer.Span
}

// Span returns the type span.
func (t *AppType) Span() lexer.Span { return t.span }

// NewAppType constructs a type application node.
func NewAppType(fn, arg TypeExpr, span lexer.Span) *AppType {
	return &AppType{Fn: fn, Arg: arg, span: span}
}

func (*AppType) typeNode() {}

// ArrowType is a right-associative function type `a -> b`.
type ArrowType struct {
	Param  TypeExpr
	Result TypeExpr
	span   lexer.Span
}

// Span returns the type span.
func (t *ArrowType) Span() lexer.Span { return t.span }

// NewArrowType constructs a function type node.
func NewArrowType(param, result TypeExpr, span lexer.Span) *ArrowType {
	return &ArrowType{Param: param, Result: result, span: span}
}

func (*ArrowType) typeNode() {}

// TupleType is a tuple type `(a, b)`.
type TupleType struct {
	Elems []TypeExpr
	span  lexer.Span
}

// Span returns the type span.
func (t *TupleType) Span() lexer.Span { return t.span }

// NewTupleType constructs a tuple type node.
func NewTupleType(elems []TypeExpr, span lexer.Span) *TupleType {
	return &TupleType{Elems: elems, span: span}
}

func (*TupleType) typeNode() {}

// EffectType is an effect computation type `[Eff1, Eff2, e] Result`.
// Row, when present, is the trailing row variable standing for zero or
// more additional effects; the parser enforces that it appears only last
// and at most once.
type EffectType struct {
	Effects []TypeExpr
	Row     *Ident // nil for a closed effect row
	Result  TypeExpr
	span    lexer.Span
}

// Span returns the type span.
func (t *EffectType) Span() lexer.Span { return t.span }

// NewEffectType constructs an effect computation type node.
func NewEffectType(effects []TypeExpr, row *Ident, result TypeExpr, span lexer.Span) *EffectType {
	return &EffectType{Effects: effects, Row: row, Result: result, span: span}
}

func (*EffectType) typeNode() {}

// QualType is a type qualified by a constraint context,
// `(Eq a, Show a) => a -> String`.
type QualType struct {
	Constraints []TypeExpr
	Type        TypeExpr
	span        lexer.Span
}

// Span returns the type span.
func (t *QualType) Span() lexer.Span { return t.span }

// NewQualType constructs a qualified type node.
func NewQualType(constraints []TypeExpr, typ TypeExpr, span lexer.Span) *QualType {
	return &QualType{Constraints: constraints, Type: typ, span: span}
}

func (*QualType) typeNode() {}
