package ast

import "github.com/quill-lang/quill/internal/lexer"

// WildcardPat matches anything without binding: `_`.
type WildcardPat struct {
	span lexer.Span
}

// Span returns the pattern span.
func (p *WildcardPat) Span() lexer.Span { return p.span }

// NewWildcardPat constructs a wildcard pattern.
func NewWildcardPat(span lexer.Span) *WildcardPat {
	return &WildcardPat{span: span}
}

func (*WildcardPat) patternNode() {}

// VarPat binds a variable.
type VarPat struct {
	Name *Ident
	span lexer.Span
}

// Span returns the pattern span.
func (p *VarPat) Span() lexer.Span { return p.span }

// NewVarPat constructs a variable pattern.
func NewVarPat(name *Ident, span lexer.Span) *VarPat {
	return &VarPat{Name: name, span: span}
}

func (*VarPat) patternNode() {}

// LitPat matches a literal value. Lit is one of the literal expression
// nodes (IntLit, FloatLit, StringLit, CharLit).
type LitPat struct {
	Lit  Expr
	span lexer.Span
}

// Span returns the pattern span.
func (p *LitPat) Span() lexer.Span { return p.span }

// NewLitPat constructs a literal pattern.
func NewLitPat(lit Expr, span lexer.Span) *LitPat {
	return &LitPat{Lit: lit, span: span}
}

func (*LitPat) patternNode() {}

// FieldPat is a named field sub-pattern of a constructor pattern; Pun
// marks the bare-identifier pun form.
type FieldPat struct {
	Name *Ident
	Pat  Pattern
	Pun  bool
	span lexer.Span
}

// Span returns the field pattern span.
func (p *FieldPat) Span() lexer.Span { return p.span }

// NewFieldPat constructs a field pattern node.
func NewFieldPat(name *Ident, pat Pattern, pun bool, span lexer.Span) *FieldPat {
	return &FieldPat{Name: name, Pat: pat, Pun: pun, span: span}
}

// CtorPat matches a constructor application, with either ordered
// sub-patterns (`Some a`) or named field patterns (`Circle[radius = r]`).
type CtorPat struct {
	Name   *Ident
	Args   []Pattern
	Fields []*FieldPat
	span   lexer.Span
}

// Span returns the pattern span.
func (p *CtorPat) Span() lexer.Span { return p.span }

// NewCtorPat constructs a constructor pattern.
func NewCtorPat(name *Ident, args []Pattern, fields []*FieldPat, span lexer.Span) *CtorPat {
	return &CtorPat{Name: name, Args: args, Fields: fields, span: span}
}

func (*CtorPat) patternNode() {}

// ConsPat matches a cons cell `{head | tail}`.
type ConsPat struct {
	Head Pattern
	Tail Pattern
	span lexer.Span
}

// Span returns the pattern span.
func (p *ConsPat) Span() lexer.Span { return p.span }

// NewConsPat constructs a cons pattern.
func NewConsPat(head, tail Pattern, span lexer.Span) *ConsPat {
	return &ConsPat{Head: head, Tail: tail, span: span}
}

func (*ConsPat) patternNode() {}

// ListPat matches a list of fixed length `{a, b}`.
type ListPat struct {
	Elems []Pattern
	span  lexer.Span
}

// Span returns the pattern span.
func (p *ListPat) Span() lexer.Span { return p.span }

// NewListPat constructs a list pattern.
func NewListPat(elems []Pattern, span lexer.Span) *ListPat {
	return &ListPat{Elems: elems, span: span}
}

func (*ListPat) patternNode() {}

// TuplePat matches a tuple `(a, b)`.
type TuplePat struct {
	Elems []Pattern
	span  lexer.Span
}

// Span returns the pattern span.
func (p *TuplePat) Span() lexer.Span { return p.span }

// NewTuplePat constructs a tuple pattern.
func NewTuplePat(elems []Pattern, span lexer.Span) *TuplePat {
	return &TuplePat{Elems: elems, span: span}
}

func (*TuplePat) patternNode() {}
