package parse

import "github.com/andrewchambers/ccspec/cpp"

func binaryAssertion(l Node, op *cpp.Token, r Node) Node {
	n := &BinaryAssertion{Left: l.(Assertion), Op: op.Val, Right: r.(Assertion)}
	n.span = spanOf(l, r)
	return n
}

// assertionSuffix builds the typed and old value forms, whose right hand
// side is a type or a mark rather than an assertion.
func (p *parser) assertionSuffix(l Node, op *cpp.Token) Node {
	if op.Kind == ':' {
		n := &TypedAssertion{Argument: l.(Assertion), Type: p.parseAType()}
		n.span = p.spanFrom(l.Span().Start)
		return n
	}
	n := &OldmarkAssertion{Argument: l.(Assertion), Mark: p.ident("mark_identifier")}
	n.span = p.spanFrom(l.Span().Start)
	return p.parseAssertionPostfix(n)
}

func (p *parser) parseAssertion() Assertion {
	return p.climb(p.assertOps, PrecDefault).(Assertion)
}

// isClauseWord reports annotation keywords that end an assertion rather
// than name something in it.
func isClauseWord(t *cpp.Token) bool {
	switch t.Val {
	case "Require", "Ensure", "With", "Given", "Assert", "Inv", "by", "which", "implies", "where":
		return t.Kind == cpp.ANNOT_KEYWORD
	}
	return false
}

func (p *parser) parseAssertionOperand() Assertion {
	t := p.curt
	start := t.Pos
	switch {
	case t.Kind == '!', t.Kind == '~', t.Kind == '-', t.Kind == '+':
		p.next()
		n := &UnaryAssertion{Op: t.Val, Argument: p.climb(p.assertOps, PrecUnary).(Assertion)}
		n.span = p.spanFrom(start)
		return n
	case t.Kind == '*', t.Kind == '&':
		p.next()
		n := &PointerAssertion{Op: t.Val, Argument: p.climb(p.assertOps, PrecCast).(Assertion)}
		n.span = p.spanFrom(start)
		return n
	case t.Kind == '(':
		if p.assertionCastAhead() {
			return p.choose(conflictTypeAssertion,
				alternative{
					probe: func() bool {
						p.next()
						p.parseTypeDescriptor()
						return p.curt.Kind == ')'
					},
					parse: func() Node { return p.parseCastAssertion() },
				},
				alternative{parse: func() Node { return p.parseParenAssertion() }}).(Assertion)
		}
		return p.parseParenAssertion()
	case t.Kind == cpp.SIZEOF:
		p.next()
		p.expect('(')
		n := &SizeofAssertion{Type: p.parseTypeDescriptor()}
		p.expect(')')
		n.span = p.spanFrom(start)
		return n
	case t.Is("forall"), t.Is("exists"):
		p.next()
		n := &QuantifiedAssertion{Op: t.Val}
		for p.curt.Kind != ',' {
			n.Variables = append(n.Variables, p.parseQuantifiedBinder())
		}
		if len(n.Variables) == 0 {
			p.error("expected bound variable got %s", p.curt.Kind)
		}
		p.next()
		n.Argument = p.parseAssertion()
		n.span = p.spanFrom(start)
		return n
	case t.Kind == cpp.HASH:
		return p.parseAssertionPostfix(p.parseShadow())
	case t.Kind == cpp.ANNOT_KEYWORD:
		if _, ok := constAssertionKinds[t.Val]; ok {
			p.next()
			return p.parseAssertionPostfix(&ConstAssertion{base: base{tokSpan(t)}, Name: t.Val})
		}
		switch t.Val {
		case "data_at":
			return p.parseDataAt()
		case "undef_data_at":
			return p.parseUndefDataAt()
		case "field_address":
			return p.parseFieldAddress()
		}
	case t.Kind == cpp.INT_CONSTANT, t.Kind == cpp.FLOAT_CONSTANT:
		return p.parseAssertionPostfix(p.literal("number_literal"))
	}
	if isWord(t) && !isClauseWord(t) {
		p.next()
		return p.parseAssertionPostfix(&Ident{base: base{tokSpan(t)}, kind: "identifier", Name: t.Val})
	}
	if t.Kind == cpp.ANNOT_END {
		p.error("expected assertion got end of annotation")
	}
	p.error("expected assertion got %s %q", t.Kind, t.Val)
	return nil
}

func (p *parser) parseShadow() Assertion {
	start := p.expect(cpp.HASH).Pos
	n := &ShadowAssertion{}
	if p.curt.Kind == cpp.HASH {
		n.Inner = p.parseShadow()
	} else {
		n.Inner = p.ident("identifier")
	}
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseQuantifiedBinder() Node {
	switch p.curt.Kind {
	case '(':
		return p.parseTermDecl()
	case '[':
		start := p.curt.Pos
		p.next()
		n := &BracketExistDecl{}
		for p.curt.Kind == cpp.IDENT {
			n.Variables = append(n.Variables, p.ident("definitional_identifier"))
		}
		if len(n.Variables) == 0 {
			p.error("expected variable name got %s", p.curt.Kind)
		}
		if p.curt.Kind == ':' {
			p.next()
			n.Type = p.parseFullAType()
		}
		p.expect(']')
		n.span = p.spanFrom(start)
		return n
	}
	return p.ident("definitional_identifier")
}

// assertionCastAhead is castAhead for assertions. The annotation language
// has no statement context, so only a type keyword, a known type name, or
// an unknown name followed by stars and ')' opens a cast.
func (p *parser) assertionCastAhead() bool {
	t := p.nextt
	if p.startsTypeName(t) {
		return true
	}
	if t.Kind != cpp.IDENT || p.types.isOrdinary(t.Val) {
		return false
	}
	i := 2
	for p.peek(i).Kind == '*' {
		i++
	}
	return i > 2 && p.peek(i).Kind == ')'
}

func (p *parser) parseCastAssertion() Assertion {
	start := p.expect('(').Pos
	n := &CastAssertion{Type: p.parseTypeDescriptor()}
	p.expect(')')
	n.Value = p.climb(p.assertOps, PrecCast).(Assertion)
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseParenAssertion() Assertion {
	start := p.expect('(').Pos
	n := &ParenAssertion{Inner: p.parseAssertion()}
	p.expect(')')
	n.span = p.spanFrom(start)
	return p.parseAssertionPostfix(n)
}

func (p *parser) parseAssertionPostfix(x Assertion) Assertion {
	start := x.Span().Start
	for {
		t := p.curt
		switch t.Kind {
		case '[':
			p.next()
			n := &SubscriptAssertion{Argument: x, Index: p.parseAssertion()}
			p.expect(']')
			n.span = p.spanFrom(start)
			x = n
		case '(':
			n := &CallAssertion{Function: x, Arguments: p.parseAssertionArguments()}
			n.span = p.spanFrom(start)
			x = n
		case '.', cpp.ARROW:
			p.next()
			n := &FieldAssertion{Argument: x, Op: t.Val, Field: p.ident("field_identifier")}
			n.span = p.spanFrom(start)
			x = n
		default:
			return x
		}
	}
}

func (p *parser) parseAssertionArguments() *AssertionArgumentList {
	start := p.expect('(').Pos
	n := &AssertionArgumentList{}
	for p.curt.Kind != ')' {
		n.Arguments = append(n.Arguments, p.parseAssertion())
		if p.curt.Kind != ',' {
			break
		}
		p.next()
	}
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

// argCount counts the top level arguments of the parenthesized list at
// curt without consuming it.
func (p *parser) argCount() int {
	depth, count := 0, 1
	for i := 0; ; i++ {
		switch p.peek(i).Kind {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return count
			}
		case ',':
			if depth == 1 {
				count++
			}
		case cpp.ANNOT_END, cpp.EOF:
			return count
		}
	}
}

// The memory predicates take an optional type argument, present exactly
// when the argument count says so.

func (p *parser) parseDataAt() Assertion {
	start := p.curt.Pos
	p.next()
	typed := p.argCount() == 3
	p.expect('(')
	n := &DataAtAssertion{Address: p.parseAssertion()}
	p.expect(',')
	if typed {
		n.Type = p.parseTypeDescriptor()
		p.expect(',')
	}
	n.Value = p.parseAssertion()
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseUndefDataAt() Assertion {
	start := p.curt.Pos
	p.next()
	p.expect('(')
	n := &UndefDataAtAssertion{Address: p.parseAssertion()}
	if p.curt.Kind == ',' {
		p.next()
		n.Type = p.parseTypeDescriptor()
	}
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseFieldAddress() Assertion {
	start := p.curt.Pos
	p.next()
	typed := p.argCount() == 3
	p.expect('(')
	n := &FieldAddressAssertion{Pointer: p.parseAssertion()}
	p.expect(',')
	if typed {
		n.Type = p.parseTypeDescriptor()
		p.expect(',')
	}
	n.Field = p.ident("field_identifier")
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}
