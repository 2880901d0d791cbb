package ast

import "github.com/quill-lang/quill/internal/lexer"

// TermDef represents a term definition, grouped from one or more
// consecutive clauses sharing the same head name:
//
//	fact 0 = 1
//	fact n = n * fact (n - 1)
//
// A TermDef also occurs as a statement inside a scoping block.
type TermDef struct {
	Name    *Ident
	Clauses []*DefClause
	span    lexer.Span
}

// Span returns the definition span.
func (d *TermDef) Span() lexer.Span { return d.span }

// NewTermDef constructs a term definition node.
func NewTermDef(name *Ident, clauses []*DefClause, span lexer.Span) *TermDef {
	return &TermDef{
		Name:    name,
		Clauses: clauses,
		span:    span,
	}
}

// SetSpan updates the definition span.
func (d *TermDef) SetSpan(span lexer.Span) {
	d.span = span
}

func (*TermDef) declNode() {}
func (*TermDef) stmtNode() {}

// DefClause is one clause of a term definition: parameter patterns plus a
// guard-free body.
type DefClause struct {
	Params []Pattern
	Body   Expr
	span   lexer.Span
}

// Span returns the clause span.
func (c *DefClause) Span() lexer.Span { return c.span }

// NewDefClause constructs a definition clause.
func NewDefClause(params []Pattern, body Expr, span lexer.Span) *DefClause {
	return &DefClause{
		Params: params,
		Body:   body,
		span:   span,
	}
}

// TypeAnnotation attaches a type to a definition. A standalone annotation
// (`@ Type` or `name @ Type` on its own line) binds to the next
// declaration; the same-line form `name @ Type = expr` desugars into an
// annotation followed by a zero-parameter definition.
type TypeAnnotation struct {
	Name     *Ident // nil for the bare `@ Type` form
	Type     TypeExpr
	SameLine bool // true for the `name @ Type = expr` sugar
	span     lexer.Span
}

// Span returns the annotation span.
func (d *TypeAnnotation) Span() lexer.Span { return d.span }

// NewTypeAnnotation constructs a type annotation node.
func NewTypeAnnotation(name *Ident, typ TypeExpr, sameLine bool, span lexer.Span) *TypeAnnotation {
	return &TypeAnnotation{
		Name:     name,
		Type:     typ,
		SameLine: sameLine,
		span:     span,
	}
}

func (*TypeAnnotation) declNode() {}
func (*TypeAnnotation) stmtNode() {}

// DataDef represents a datatype definition.
type DataDef struct {
	Name   *Ident
	Params []*Ident
	Ctors  []*CtorSpec
	span   lexer.Span
}

// Span returns the definition span.
func (d *DataDef) Span() lexer.Span { return d.span }

// NewDataDef constructs a datatype definition node.
func NewDataDef(name *Ident, params []*Ident, ctors []*CtorSpec, span lexer.Span) *DataDef {
	return &DataDef{
		Name:   name,
		Params: params,
		Ctors:  ctors,
		span:   span,
	}
}

func (*DataDef) declNode() {}

// CtorSpec is one constructor of a datatype: either positional field
// types or named field specs. Implicit marks the constructor synthesized
// for the single-constructor record shorthand
// `data Point = [x @ Real; y @ Real]`, which shares the type's name.
type CtorSpec struct {
	Name       *Ident
	Positional []TypeExpr
	Fields     []*FieldSpec
	Implicit   bool
	span       lexer.Span
}

// Span returns the constructor spec span.
func (c *CtorSpec) Span() lexer.Span { return c.span }

// NewCtorSpec constructs a constructor spec node.
func NewCtorSpec(name *Ident, positional []TypeExpr, fields []*FieldSpec, implicit bool, span lexer.Span) *CtorSpec {
	return &CtorSpec{Name: name, Positional: positional, Fields: fields, Implicit: implicit, span: span}
}

// FieldSpec is a named constructor field with an optional default.
type FieldSpec struct {
	Name    *Ident
	Type    TypeExpr
	Default Expr // nil when the field has no default
	span    lexer.Span
}

// Span returns the field spec span.
func (f *FieldSpec) Span() lexer.Span { return f.span }

// NewFieldSpec constructs a field spec node.
func NewFieldSpec(name *Ident, typ TypeExpr, def Expr, span lexer.Span) *FieldSpec {
	return &FieldSpec{
		Name:    name,
		Type:    typ,
		Default: def,
		span:    span,
	}
}

// EffectDef represents an algebraic effect definition: a name, type
// parameters and the signatures of its operations.
type EffectDef struct {
	Name   *Ident
	Params []*Ident
	Ops    []*OpSpec
	span   lexer.Span
}

// Span returns the definition span.
func (d *EffectDef) Span() lexer.Span { return d.span }

// NewEffectDef constructs an effect definition node.
func NewEffectDef(name *Ident, params []*Ident, ops []*OpSpec, span lexer.Span) *EffectDef {
	return &EffectDef{
		Name:   name,
		Params: params,
		Ops:    ops,
		span:   span,
	}
}

func (*EffectDef) declNode() {}

// OpSpec is one effect operation signature.
type OpSpec struct {
	Name *Ident
	Type TypeExpr
	span lexer.Span
}

// Span returns the operation spec span.
func (o *OpSpec) Span() lexer.Span { return o.span }

// NewOpSpec constructs an operation spec node.
func NewOpSpec(name *Ident, typ TypeExpr, span lexer.Span) *OpSpec {
	return &OpSpec{Name: name, Type: typ, span: span}
}

// TypeClassDef represents a typeclass definition. Members are either
// signatures (*TypeAnnotation) or default-bodied clauses (*TermDef).
type TypeClassDef struct {
	Name    *Ident
	Param   *Ident
	Members []Decl
	span    lexer.Span
}

// Span returns the definition span.
func (d *TypeClassDef) Span() lexer.Span { return d.span }

// NewTypeClassDef constructs a typeclass definition node.
func NewTypeClassDef(name, param *Ident, members []Decl, span lexer.Span) *TypeClassDef {
	return &TypeClassDef{
		Name:    name,
		Param:   param,
		Members: members,
		span:    span,
	}
}

func (*TypeClassDef) declNode() {}

// InstanceDef represents a typeclass instance: the class name, the head
// type the instance is for, and the member clauses.
type InstanceDef struct {
	Class   *Ident
	Head    TypeExpr
	Members []*TermDef
	span    lexer.Span
}

// Span returns the definition span.
func (d *InstanceDef) Span() lexer.Span { return d.span }

// NewInstanceDef constructs an instance definition node.
func NewInstanceDef(class *Ident, head TypeExpr, members []*TermDef, span lexer.Span) *InstanceDef {
	return &InstanceDef{
		Class:   class,
		Head:    head,
		Members: members,
		span:    span,
	}
}

func (*InstanceDef) declNode() {}
