package ast

import "github.com/quill-lang/quill/internal/lexer"

// Node represents any AST node with an associated source span. Nodes are
// constructed once by the parser and are immutable thereafter; the whole
// tree is handed to the renamer, which must not observe mutation.
type Node interface {
	Span() lexer.Span
}

// Expr represents an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement inside a scoping block.
type Stmt interface {
	Node
	stmtNode()
}

// Decl represents a module-level declaration.
type Decl interface {
	Node
	declNode()
}

// Pattern represents a pattern node.
type Pattern interface {
	Node
	patternNode()
}

// TypeExpr represents a type annotation expression.
type TypeExpr interface {
	Node
	typeNode()
}

// Module represents a parsed source unit: an optional `module Name`
// header plus an ordered list of top-level declarations. The module
// exclusively owns its declaration tree.
type Module struct {
	Name  *Ident // nil when the unit has no module header
	Decls []Decl
	span  lexer.Span
}

// Span returns the span covering the entire module.
func (m *Module) Span() lexer.Span { return m.span }

// NewModule constructs a module node with the provided span.
func NewModule(span lexer.Span) *Module {
	return &Module{span: span}
}

// SetSpan updates the module span.
func (m *Module) SetSpan(span lexer.Span) {
	m.span = span
}

// Ident represents an identifier. The case of the first rune decides
// whether it names a constructor/type (upper) or a term/variable (lower);
// both share this node and the renamer tells them apart.
type Ident struct {
	Name string
	span lexer.Span
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// NewIdent constructs an identifier node.
func NewIdent(name string, span lexer.Span) *Ident {
	return &Ident{
		Name: name,
		span: span,
	}
}

// exprNode marks Ident as an expression.
func (*Ident) exprNode() {}
