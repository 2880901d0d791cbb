package parser

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/lexer"
)

// parseDecl parses one top-level declaration. Entered with curTok at the
// declaration's first token, returns with curTok at its last. The
// same-line annotated definition `name @ Type = expr` desugars into two
// declarations, which is why a slice comes back.
func (p *Parser) parseDecl() []ast.Decl {
	switch p.curTok.Type {
	case lexer.DATA:
		if d := p.parseDataDef(); d != nil {
			return []ast.Decl{d}
		}
		return nil
	case lexer.EFFECT:
		if d := p.parseEffectDef(); d != nil {
			return []ast.Decl{d}
		}
		return nil
	case lexer.TYPECLASS:
		if d := p.parseTypeClassDef(); d != nil {
			return []ast.Decl{d}
		}
		return nil
	case lexer.INSTANCE:
		if d := p.parseInstanceDef(); d != nil {
			return []ast.Decl{d}
		}
		return nil
	case lexer.AT:
		if ann := p.parseAnnotation(nil); ann != nil {
			return []ast.Decl{ann}
		}
		return nil
	case lexer.MODULE:
		p.reportError("the module header must be the first declaration", p.curTok.Span)
		return nil
	case lexer.LOWER_IDENT:
		if p.peekTok.Type == lexer.AT {
			return p.parseNamedAnnotation()
		}
		if def := p.parseTermClause(); def != nil {
			return []ast.Decl{def}
		}
		return nil
	default:
		p.reportExpected("a declaration", p.curTok)
		return nil
	}
}

// parseAnnotation parses `@ Type`, which binds to the declaration that
// follows it. name is non-nil for the `name @ Type` form.
func (p *Parser) parseAnnotation(name *ast.Ident) *ast.TypeAnnotation {
	start := p.curTok.Span
	if name != nil {
		start = name.Span()
	}
	p.nextToken()
	typ := p.parseTypeExpr()
	if typ == nil {
		return nil
	}
	return ast.NewTypeAnnotation(name, typ, false, mergeSpan(start, typ.Span()))
}

// parseNamedAnnotation parses `name @ Type` and its same-line sugar
// `name @ Type = expr`, which stands for the annotation plus a
// zero-parameter definition.
func (p *Parser) parseNamedAnnotation() []ast.Decl {
	name := ast.NewIdent(p.curTok.Text, p.curTok.Span)
	p.nextToken() // '@'
	ann := p.parseAnnotation(name)
	if ann == nil {
		return nil
	}
	if p.peekTok.Type != lexer.ASSIGN {
		return []ast.Decl{ann}
	}

	ann.SameLine = true
	p.nextToken() // '='
	p.nextToken()
	body := p.parseExpr()
	if body == nil {
		return []ast.Decl{ann}
	}
	defName := ast.NewIdent(name.Name, name.Span())
	clause := ast.NewDefClause(nil, body, body.Span())
	def := ast.NewTermDef(defName, []*ast.DefClause{clause}, mergeSpan(name.Span(), body.Span()))
	return []ast.Decl{ann, def}
}

// parseTermClause parses one definition clause, `name pat... = body`.
// Entered with curTok at the head name; the head is followed by atomic
// parameter patterns, '=' and the body expression. Consecutive clauses
// of the same name are merged by the module loop, which also owns
// recovery when a clause fails.
func (p *Parser) parseTermClause() *ast.TermDef {
	name := ast.NewIdent(p.curTok.Text, p.curTok.Span)
	var params []ast.Pattern
	for startsPatternAtom(p.peekTok) {
		p.nextToken()
		pat := p.parsePatternAtom()
		if pat == nil {
			return nil
		}
		params = append(params, pat)
	}
	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	p.nextToken()
	body := p.parseExpr()
	if body == nil {
		return nil
	}
	span := mergeSpan(name.Span(), body.Span())
	clause := ast.NewDefClause(params, body, span)
	return ast.NewTermDef(name, []*ast.DefClause{clause}, span)
}

// memberList is the delimitedConfig shared by every structured
// definition body: newline, comma and semicolon separate members
// interchangeably.
func memberList(msg string) delimitedConfig {
	return delimitedConfig{
		Closing:    lexer.RBRACKET,
		Comma:      true,
		Newline:    true,
		ElementMsg: msg,
	}
}

// parseDataDef parses `data Name params = [ctor specs]`. When every
// member is a bare field spec the body is the single-constructor record
// shorthand and an implicit constructor sharing the type's name is
// synthesized.
func (p *Parser) parseDataDef() ast.Decl {
	start := p.curTok.Span
	if !p.expectPeek(lexer.UPPER_IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Text, p.curTok.Span)
	params := p.parseTypeParams()
	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	if !p.expectPeek(lexer.LBRACKET) {
		return nil
	}

	var ctors []*ast.CtorSpec
	var bare []*ast.FieldSpec
	_, ok := parseDelimited(p, memberList("expected a constructor or field spec"),
		func(idx int) (struct{}, bool) {
			switch p.curTok.Type {
			case lexer.UPPER_IDENT:
				ctor := p.parseCtorSpec()
				if ctor == nil {
					return struct{}{}, false
				}
				ctors = append(ctors, ctor)
			case lexer.LOWER_IDENT:
				field := p.parseFieldSpec()
				if field == nil {
					return struct{}{}, false
				}
				bare = append(bare, field)
			default:
				p.reportExpected("a constructor or field spec", p.curTok)
				return struct{}{}, false
			}
			return struct{}{}, true
		})
	if !ok && len(ctors) == 0 && len(bare) == 0 {
		return nil
	}

	if len(bare) > 0 {
		if len(ctors) > 0 {
			p.reportError("a datatype cannot mix constructors with bare field specs", p.curTok.Span)
		} else {
			implicit := ast.NewIdent(name.Name, name.Span())
			span := mergeSpan(bare[0].Span(), bare[len(bare)-1].Span())
			ctors = append(ctors, ast.NewCtorSpec(implicit, nil, bare, true, span))
		}
	}
	return ast.NewDataDef(name, params, ctors, mergeSpan(start, p.curTok.Span))
}

func (p *Parser) parseTypeParams() []*ast.Ident {
	var params []*ast.Ident
	for p.peekTok.Type == lexer.LOWER_IDENT {
		p.nextToken()
		params = append(params, ast.NewIdent(p.curTok.Text, p.curTok.Span))
	}
	return params
}

// parseCtorSpec parses one constructor: positional field types,
// `Circle Real`, or a bracketed named-field list, `Circle[radius @ Real]`.
func (p *Parser) parseCtorSpec() *ast.CtorSpec {
	name := ast.NewIdent(p.curTok.Text, p.curTok.Span)

	if p.peekTok.Type == lexer.LBRACKET && adjacent(p.curTok, p.peekTok) {
		p.nextToken()
		fields, ok := parseDelimited(p, memberList("expected a field spec"),
			func(idx int) (*ast.FieldSpec, bool) {
				field := p.parseFieldSpec()
				return field, field != nil
			})
		if !ok && len(fields) == 0 {
			return nil
		}
		return ast.NewCtorSpec(name, nil, fields, false, mergeSpan(name.Span(), p.curTok.Span))
	}

	var positional []ast.TypeExpr
	end := name.Span()
	for startsTypeAtom(p.peekTok) || p.peekTok.Type == lexer.LBRACKET {
		p.nextToken()
		typ := p.parseTypeAtom()
		if typ == nil {
			return nil
		}
		positional = append(positional, typ)
		end = typ.Span()
	}
	return ast.NewCtorSpec(name, positional, nil, false, mergeSpan(name.Span(), end))
}

// parseFieldSpec parses `name @ Type` with an optional `= default`.
func (p *Parser) parseFieldSpec() *ast.FieldSpec {
	name := ast.NewIdent(p.curTok.Text, p.curTok.Span)
	if !p.expectPeek(lexer.AT) {
		return nil
	}
	p.nextToken()
	typ := p.parseTypeExpr()
	if typ == nil {
		return nil
	}
	var def ast.Expr
	end := typ.Span()
	if p.peekTok.Type == lexer.ASSIGN {
		p.nextToken()
		p.nextToken()
		def = p.parseExpr()
		if def == nil {
			return nil
		}
		end = def.Span()
	}
	return ast.NewFieldSpec(name, typ, def, mergeSpan(name.Span(), end))
}

// parseEffectDef parses `effect Name params = [op signatures]`.
func (p *Parser) parseEffectDef() ast.Decl {
	start := p.curTok.Span
	if !p.expectPeek(lexer.UPPER_IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Text, p.curTok.Span)
	params := p.parseTypeParams()
	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	if !p.expectPeek(lexer.LBRACKET) {
		return nil
	}

	ops, ok := parseDelimited(p, memberList("expected an operation signature"),
		func(idx int) (*ast.OpSpec, bool) {
			if p.curTok.Type != lexer.LOWER_IDENT {
				p.reportExpected("an operation name", p.curTok)
				return nil, false
			}
			opName := ast.NewIdent(p.curTok.Text, p.curTok.Span)
			if !p.expectPeek(lexer.AT) {
				return nil, false
			}
			p.nextToken()
			typ := p.parseTypeExpr()
			if typ == nil {
				return nil, false
			}
			return ast.NewOpSpec(opName, typ, mergeSpan(opName.Span(), typ.Span())), true
		})
	if !ok && len(ops) == 0 {
		return nil
	}
	return ast.NewEffectDef(name, params, ops, mergeSpan(start, p.curTok.Span))
}

// parseTypeClassDef parses `typeclass Name param = [members]` where a
// member is either a signature `name @ Type` or a default clause
// `name pat... = body`.
func (p *Parser) parseTypeClassDef() ast.Decl {
	start := p.curTok.Span
	if !p.expectPeek(lexer.UPPER_IDENT) {
		return nil
	}
	name := ast.NewIdent(p.curTok.Text, p.curTok.Span)
	if !p.expectPeek(lexer.LOWER_IDENT) {
		return nil
	}
	param := ast.NewIdent(p.curTok.Text, p.curTok.Span)
	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	if !p.expectPeek(lexer.LBRACKET) {
		return nil
	}

	var members []ast.Decl
	_, ok := parseDelimited(p, memberList("expected a signature or default clause"),
		func(idx int) (struct{}, bool) {
			if p.curTok.Type != lexer.LOWER_IDENT {
				p.reportExpected("a member name", p.curTok)
				return struct{}{}, false
			}
			if p.peekTok.Type == lexer.AT {
				memberName := ast.NewIdent(p.curTok.Text, p.curTok.Span)
				p.nextToken() // '@'
				ann := p.parseAnnotation(memberName)
				if ann == nil {
					return struct{}{}, false
				}
				members = append(members, ann)
				return struct{}{}, true
			}
			def := p.parseTermClause()
			if def == nil {
				return struct{}{}, false
			}
			members = appendMemberDef(members, def)
			return struct{}{}, true
		})
	if !ok && len(members) == 0 {
		return nil
	}
	return ast.NewTypeClassDef(name, param, members, mergeSpan(start, p.curTok.Span))
}

// appendMemberDef merges consecutive clauses of the same member name,
// mirroring top-level clause grouping.
func appendMemberDef(members []ast.Decl, def *ast.TermDef) []ast.Decl {
	if len(members) > 0 {
		if prev, ok := members[len(members)-1].(*ast.TermDef); ok && prev.Name.Name == def.Name.Name {
			prev.Clauses = append(prev.Clauses, def.Clauses...)
			prev.SetSpan(mergeSpan(prev.Span(), def.Span()))
			return members
		}
	}
	return append(members, def)
}

// parseInstanceDef parses `instance Class Head = [clauses]`.
func (p *Parser) parseInstanceDef() ast.Decl {
	start := p.curTok.Span
	if !p.expectPeek(lexer.UPPER_IDENT) {
		return nil
	}
	class := ast.NewIdent(p.curTok.Text, p.curTok.Span)
	p.nextToken()
	head := p.parseAppType()
	if head == nil {
		return nil
	}
	if !p.expectPeek(lexer.ASSIGN) {
		return nil
	}
	if !p.expectPeek(lexer.LBRACKET) {
		return nil
	}

	var members []*ast.TermDef
	_, ok := parseDelimited(p, memberList("expected a method clause"),
		func(idx int) (struct{}, bool) {
			if p.curTok.Type != lexer.LOWER_IDENT {
				p.reportExpected("a method name", p.curTok)
				return struct{}{}, false
			}
			def := p.parseTermClause()
			if def == nil {
				return struct{}{}, false
			}
			if len(members) > 0 && members[len(members)-1].Name.Name == def.Name.Name {
				prev := members[len(members)-1]
				prev.Clauses = append(prev.Clauses, def.Clauses...)
				prev.SetSpan(mergeSpan(prev.Span(), def.Span()))
			} else {
				members = append(members, def)
			}
			return struct{}{}, true
		})
	if !ok && len(members) == 0 {
		return nil
	}
	return ast.NewInstanceDef(class, head, members, mergeSpan(start, p.curTok.Span))
}
