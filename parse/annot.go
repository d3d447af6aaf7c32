package parse

import (
	"strings"

	"github.com/andrewchambers/ccspec/cpp"
)

// parseAnnotationItem reads a whole //@ or /*@ */ annotation standing as
// an item. A contract found on its own becomes a *Specification item.
func (p *parser) parseAnnotationItem() Node {
	start := p.expect(cpp.ANNOT_START).Pos
	t := p.curt
	var n spanner
	switch {
	case t.Is("Extern") && p.nextt.Is("Coq"):
		n = p.parseExtern()
	case t.Is("Import") && p.nextt.Is("Coq"):
		p.next()
		coq := p.curt
		p.next()
		for p.curt.Kind != cpp.ANNOT_END && p.curt.Kind != cpp.EOF {
			p.next()
		}
		text := string(p.src[coq.End.Offset:p.curt.Pos.Offset])
		n = &ImportCoqAnnotation{Module: strings.TrimSpace(text)}
	case t.Is("include") && p.nextt.Is("strategies"):
		p.next()
		p.next()
		if p.curt.Kind != cpp.STRING {
			p.error("expected strategy file name got %s", p.curt.Kind)
		}
		n = &IncludeStrategyAnnotation{Path: p.literal("string_literal")}
	case t.Kind == cpp.DO:
		p.next()
		n = &DoAnnotation{Scope: p.ident("scope_identifier")}
	case t.Is("Inv"), t.Is("Assert") && p.nextt.Is("Inv"):
		if t.Is("Assert") {
			p.next()
		}
		p.next()
		inv := &InvariantAnnotation{Assertion: p.parseAssertion()}
		inv.Scopes = p.parseScopes()
		n = inv
	case p.specificationAhead():
		n = p.parseSpecificationBody()
	default:
		n = p.parseAssertionAnnotation()
	}
	p.expect(cpp.ANNOT_END)
	n.setSpan(p.spanFrom(start))
	return n
}

// specificationAhead reports whether the annotation body at curt is a
// contract: [name [<= parent]] followed by With or Require.
func (p *parser) specificationAhead() bool {
	i := 0
	if p.peek(i).Kind == cpp.IDENT {
		i++
		if p.peek(i).Kind == cpp.LEQ && p.peek(i+1).Kind == cpp.IDENT {
			i += 2
		}
	}
	t := p.peek(i)
	return t.Is("With") || t.Is("Require")
}

// parseScopes reads an optional "by" clause.
func (p *parser) parseScopes() []*Ident {
	if !p.curt.Is("by") {
		return nil
	}
	p.next()
	var out []*Ident
	for p.curt.Kind == cpp.IDENT {
		out = append(out, p.ident("scope_identifier"))
	}
	if len(out) == 0 {
		p.error("expected scope name got %s", p.curt.Kind)
	}
	return out
}

func (p *parser) parseAssertionAnnotation() spanner {
	n := &AssertionAnnotation{}
	plain := true
	if p.curt.Is("Given") {
		plain = false
		p.next()
		for p.curt.Kind != ',' {
			n.Ghosts = append(n.Ghosts, p.parseTermDeclInfer())
		}
		p.next()
	}
	if p.curt.Is("Assert") {
		plain = false
		p.next()
	}
	n.Assertion = p.parseAssertion()
	if p.curt.Kind == cpp.MARK {
		plain = false
		p.next()
		n.Mark = p.ident("mark_identifier")
	}
	n.Scopes = p.parseScopes()
	if !p.curt.Is("which") {
		return n
	}
	if !plain {
		p.error("which implies cannot follow Given, Assert or @mark")
	}
	p.next()
	p.expectWord("implies")
	w := &WhichImpliesAnnotation{Precondition: n.Assertion, PreScopes: n.Scopes}
	w.Postcondition = p.parseAssertion()
	w.PostScopes = p.parseScopes()
	return w
}

// parseTermDeclInfer reads a binder whose type may be left to inference,
// a bare name or a (x y : T) group.
func (p *parser) parseTermDeclInfer() Node {
	if p.curt.Kind == '(' {
		return p.parseTermDecl()
	}
	return p.ident("definitional_identifier")
}

func (p *parser) parseTermDecl() *TermDecl {
	start := p.expect('(').Pos
	n := &TermDecl{}
	for p.curt.Kind == cpp.IDENT {
		n.Variables = append(n.Variables, p.ident("definitional_identifier"))
	}
	if len(n.Variables) == 0 {
		p.error("expected variable name got %s", p.curt.Kind)
	}
	p.expect(':')
	n.Type = p.parseFullAType()
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseATypeDecl() *ATypeDecl {
	start := p.expect('(').Pos
	n := &ATypeDecl{}
	for p.curt.Kind == cpp.IDENT {
		n.Variables = append(n.Variables, p.ident("definitional_identifier"))
	}
	if len(n.Variables) == 0 {
		p.error("expected type variable name got %s", p.curt.Kind)
	}
	p.expect(cpp.COLONCOLON)
	n.KindOf = p.parseKind()
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseImplicitATypeDecl() *ImplicitATypeDecl {
	start := p.expect('{').Pos
	n := &ImplicitATypeDecl{}
	for p.curt.Kind == cpp.IDENT {
		n.Variables = append(n.Variables, p.ident("definitional_identifier"))
	}
	if len(n.Variables) == 0 {
		p.error("expected type variable name got %s", p.curt.Kind)
	}
	if p.curt.Kind == cpp.COLONCOLON {
		p.next()
		n.KindOf = p.parseKind()
	}
	p.expect('}')
	n.span = p.spanFrom(start)
	return n
}

// parseSpecification reads a contract annotation attached to a function.
func (p *parser) parseSpecification() *Specification {
	start := p.expect(cpp.ANNOT_START).Pos
	n := p.parseSpecificationBody()
	p.expect(cpp.ANNOT_END)
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseSpecificationBody() *Specification {
	n := &Specification{}
	if p.curt.Kind == cpp.IDENT {
		n.Name = p.ident("spec_identifier")
		if p.curt.Kind == cpp.LEQ {
			p.next()
			n.Parent = p.ident("spec_identifier")
		} else if !p.curt.Is("With") && !p.curt.Is("Require") {
			return n
		}
	}
	if p.curt.Is("With") {
		p.next()
		for p.curt.Kind == '{' {
			n.TypeVariables = append(n.TypeVariables, p.parseImplicitATypeDecl())
		}
		for p.curt.Kind == cpp.IDENT || p.curt.Kind == '(' {
			n.Variables = append(n.Variables, p.parseTermDeclInfer())
		}
	}
	p.expectWord("Require")
	n.Precondition = p.parseAssertion()
	p.expectWord("Ensure")
	n.Postcondition = p.parseAssertion()
	return n
}

// parseVirtualArgument reads the /*@ where ... */ annotation following a
// call.
func (p *parser) parseVirtualArgument() *VirtualArgument {
	start := p.expect(cpp.ANNOT_START).Pos
	p.expectWord("where")
	n := &VirtualArgument{}
	if p.curt.Kind == '(' {
		p.next()
		n.Scope = p.ident("scope_identifier")
		p.expect(')')
	}
	for p.curt.Kind == cpp.IDENT && p.nextt.Kind == '=' {
		astart := p.curt.Pos
		a := &TermArgument{Parameter: p.ident("identifier")}
		p.next()
		a.Argument = p.parseAssertion()
		a.span = p.spanFrom(astart)
		n.TermArguments = append(n.TermArguments, a)
		if p.curt.Kind != ',' {
			break
		}
		p.next()
	}
	if p.curt.Kind == ';' {
		p.next()
		for p.curt.Kind == cpp.IDENT {
			astart := p.curt.Pos
			a := &ATypeArgument{Parameter: p.ident("identifier")}
			p.expect('=')
			a.Argument = p.parseAType()
			a.span = p.spanFrom(astart)
			n.TypeArguments = append(n.TypeArguments, a)
			if p.curt.Kind != ',' {
				break
			}
			p.next()
		}
	}
	n.Hints = p.parseScopes()
	p.expect(cpp.ANNOT_END)
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseExtern() spanner {
	p.expectWord("Extern")
	p.expectWord("Coq")
	switch {
	case p.curt.Is("Field"):
		p.next()
		n := &ExternFieldAnnotation{}
		for p.curt.Kind == '(' {
			n.Decls = append(n.Decls, p.parseTermDecl())
		}
		if len(n.Decls) == 0 {
			p.error("expected field declaration got %s", p.curt.Kind)
		}
		return n
	case p.curt.Is("Record"):
		return p.parseExternRecord()
	case p.curt.Kind == cpp.IDENT && p.nextt.Kind == cpp.DEFINE_ASSIGN:
		n := &ExternAliasAnnotation{Variable: p.ident("identifier")}
		p.next()
		n.Type = p.parseAType()
		return n
	case p.curt.Kind == '(' && p.typeExternAhead():
		n := &ExternTypeAnnotation{}
		for p.curt.Kind == '(' {
			n.Decls = append(n.Decls, p.parseATypeDecl())
		}
		return n
	case p.curt.Kind == '(':
		n := &ExternTermAnnotation{}
		for p.curt.Kind == '(' {
			n.Decls = append(n.Decls, p.parseTermDecl())
		}
		return n
	}
	p.error("expected extern declaration got %s %q", p.curt.Kind, p.curt.Val)
	return nil
}

// typeExternAhead tells (T U :: *) from (x y : T).
func (p *parser) typeExternAhead() bool {
	i := 1
	for p.peek(i).Kind == cpp.IDENT {
		i++
	}
	return p.peek(i).Kind == cpp.COLONCOLON
}

func (p *parser) parseExternRecord() spanner {
	p.expectWord("Record")
	n := &ExternRecordAnnotation{Record: p.ident("identifier")}
	for {
		if p.curt.Kind == cpp.IDENT {
			n.Parameters = append(n.Parameters, p.ident("definitional_identifier"))
			continue
		}
		if p.curt.Kind == '(' {
			n.Parameters = append(n.Parameters, p.parseATypeDecl())
			continue
		}
		break
	}
	if p.curt.Kind == '=' {
		p.next()
		n.Constructor = p.ident("identifier")
	}
	p.expect('{')
	for p.curt.Kind == cpp.IDENT {
		start := p.curt.Pos
		f := &RecordField{Field: p.ident("identifier")}
		p.expect(':')
		f.Type = p.parseFullAType()
		p.expect(';')
		f.span = p.spanFrom(start)
		n.Fields = append(n.Fields, f)
	}
	p.expect('}')
	return n
}

// Kinds

func (p *parser) parseKind() KindExpr {
	start := p.curt.Pos
	var k KindExpr
	switch p.curt.Kind {
	case '*':
		t := p.curt
		p.next()
		k = &StarKind{base: base{tokSpan(t)}}
	case '(':
		p.next()
		n := &ParenKind{Inner: p.parseKind()}
		p.expect(')')
		n.span = p.spanFrom(start)
		k = n
	default:
		p.error("expected kind got %s", p.curt.Kind)
	}
	if p.curt.Kind != cpp.IMPLIES {
		return k
	}
	p.next()
	n := &ArrowKind{Left: k, Right: p.parseKind()}
	n.span = p.spanFrom(start)
	return n
}

// Types

func (p *parser) parseFullAType() *FullAType {
	start := p.curt.Pos
	n := &FullAType{}
	if p.curt.Kind == '{' {
		for p.curt.Kind == '{' {
			n.Parameters = append(n.Parameters, p.parseImplicitATypeDecl())
		}
		p.expect(cpp.ARROW)
	}
	n.Body = p.parseAType()
	n.span = p.spanFrom(start)
	return n
}

// parseAType reads an arrow type, arrows associate to the right.
func (p *parser) parseAType() AType {
	l := p.parseATypeApply()
	if p.curt.Kind != cpp.ARROW {
		return l
	}
	p.next()
	r := p.parseAType()
	n := &ArrowAType{Left: l, Right: r}
	n.span = spanOf(l, r)
	return n
}

func (p *parser) parseATypeApply() AType {
	l := p.parseATypeAtom()
	for p.startsATypeAtom() {
		r := p.parseATypeAtom()
		n := &ApplyAType{Left: l, Right: r}
		n.span = spanOf(l, r)
		l = n
	}
	return l
}

func (p *parser) startsATypeAtom() bool {
	t := p.curt
	switch {
	case t.Kind == cpp.IDENT, t.Kind == '(':
		return true
	case t.Kind == cpp.PRIMITIVE:
		return t.Val == "bool"
	case t.Kind == cpp.ANNOT_KEYWORD:
		_, ok := baseATypeKinds[t.Val]
		return ok
	}
	return false
}

func (p *parser) parseATypeAtom() AType {
	t := p.curt
	switch {
	case t.Kind == cpp.IDENT:
		return p.ident("identifier")
	case t.Kind == '(':
		p.next()
		n := &ParenAType{Inner: p.parseAType()}
		p.expect(')')
		n.span = p.spanFrom(t.Pos)
		return n
	case p.startsATypeAtom():
		p.next()
		return &BaseAType{base: base{tokSpan(t)}, Name: t.Val}
	}
	p.error("expected type got %s %q", t.Kind, t.Val)
	return nil
}
