package parse

import "github.com/andrewchambers/ccspec/cpp"

func (p *parser) initClimbers() {
	p.exprOps = &climber{
		table:   ExpressionPrecedence,
		operand: func() Node { return p.parseUnary() },
		binary:  binaryExpr,
	}
	p.ppOps = &climber{
		table:   ExpressionPrecedence,
		operand: func() Node { return p.parsePreprocOperand() },
		binary:  binaryExpr,
	}
	p.assertOps = &climber{
		table:   AssertionPrecedence,
		operand: func() Node { return p.parseAssertionOperand() },
		binary:  binaryAssertion,
		suffix:  p.assertionSuffix,
	}
}

func binaryExpr(l Node, op *cpp.Token, r Node) Node {
	n := &BinaryExpr{Left: l.(Expr), Op: op.Val, Right: r.(Expr)}
	n.span = spanOf(l, r)
	return n
}

func isAssignOp(k cpp.TokenKind) bool {
	switch k {
	case '=', cpp.ADD_ASSIGN, cpp.SUB_ASSIGN, cpp.MUL_ASSIGN, cpp.QUO_ASSIGN,
		cpp.REM_ASSIGN, cpp.AND_ASSIGN, cpp.OR_ASSIGN, cpp.XOR_ASSIGN,
		cpp.SHL_ASSIGN, cpp.SHR_ASSIGN:
		return true
	}
	return false
}

// parseCommaExpr reads an expression that may be a comma expression.
func (p *parser) parseCommaExpr() Expr {
	l := p.parseExpr()
	if p.curt.Kind != ',' {
		return l
	}
	p.next()
	r := p.parseCommaExpr()
	n := &CommaExpr{Left: l, Right: r}
	n.span = spanOf(l, r)
	return n
}

// parseExpr reads an assignment expression, the C expression without the
// comma operator.
func (p *parser) parseExpr() Expr {
	l := p.parseConditional()
	if !isAssignOp(p.curt.Kind) {
		return l
	}
	op := p.curt
	p.next()
	r := p.parseExpr()
	n := &AssignExpr{Left: l, Op: op.Val, Right: r}
	n.span = spanOf(l, r)
	return n
}

func (p *parser) parseConditional() Expr {
	cond := p.climb(p.exprOps, PrecLogicalOr).(Expr)
	if p.curt.Kind != '?' {
		return cond
	}
	p.next()
	n := &ConditionalExpr{Condition: cond}
	if p.curt.Kind != ':' {
		n.Consequence = p.parseCommaExpr()
	}
	p.expect(':')
	n.Alternative = p.parseConditional()
	n.span = p.spanFrom(cond.Span().Start)
	return n
}

func (p *parser) parseUnary() Expr {
	t := p.curt
	start := t.Pos
	switch t.Kind {
	case '!', '~', '-', '+':
		p.next()
		n := &UnaryExpr{Op: t.Val, Argument: p.parseUnary()}
		n.span = p.spanFrom(start)
		return n
	case '*', '&':
		p.next()
		n := &PointerExpr{Op: t.Val, Argument: p.parseUnary()}
		n.span = p.spanFrom(start)
		return n
	case cpp.INC, cpp.DEC:
		p.next()
		n := &UpdateExpr{Prefix: true, Op: t.Val, Argument: p.parseUnary()}
		n.span = p.spanFrom(start)
		return n
	case cpp.SIZEOF:
		p.next()
		n := &SizeofExpr{}
		if p.curt.Kind == '(' && p.startsTypeName(p.nextt) {
			// Keyed apart from the cast probe at the same parenthesis.
			typed := p.probe(conflictTypeExpression, 1, func() bool {
				p.next()
				p.parseTypeDescriptor()
				p.expect(')')
				return p.curt.Kind != '{'
			})
			if typed {
				p.next()
				n.Type = p.parseTypeDescriptor()
				p.expect(')')
				n.span = p.spanFrom(start)
				return n
			}
		}
		n.Value = p.parseUnary()
		n.span = p.spanFrom(start)
		return n
	case cpp.ALIGNOF:
		p.next()
		p.expect('(')
		n := &AlignofExpr{Type: p.parseTypeDescriptor()}
		p.expect(')')
		n.span = p.spanFrom(start)
		return n
	case cpp.OFFSETOF:
		p.next()
		p.expect('(')
		n := &OffsetofExpr{Type: p.parseTypeDescriptor()}
		p.expect(',')
		n.Member = p.ident("field_identifier")
		p.expect(')')
		n.span = p.spanFrom(start)
		return n
	case cpp.EXTENSION:
		p.next()
		n := &ExtensionExpr{Value: p.parseUnary()}
		n.span = p.spanFrom(start)
		return n
	case '(':
		return p.parseParenOrCast()
	}
	return p.parsePostfix(p.parsePrimary())
}

// castAhead reports whether the '(' at curt looks like it opens a type
// name. Identifiers the oracle does not know count when followed by
// stars and ')', or by ')' and something only an operand can start with.
func (p *parser) castAhead() bool {
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
	if p.peek(i).Kind != ')' {
		return false
	}
	if i > 2 {
		return true
	}
	switch p.peek(i + 1).Kind {
	case cpp.IDENT, cpp.INT_CONSTANT, cpp.FLOAT_CONSTANT, cpp.CHAR_CONSTANT, cpp.STRING,
		'~', '!', cpp.SIZEOF, cpp.TRUE, cpp.FALSE, cpp.NULL:
		return true
	}
	return false
}

func (p *parser) parseParenOrCast() Expr {
	if p.nextt.Kind == '{' {
		start := p.curt.Pos
		p.next()
		n := &ParenExpr{Inner: p.parseCompoundStatement()}
		p.expect(')')
		n.span = p.spanFrom(start)
		return p.parsePostfix(n)
	}
	if p.castAhead() {
		return p.choose(conflictTypeExpression,
			alternative{
				probe: func() bool {
					p.next()
					p.parseTypeDescriptor()
					return p.curt.Kind == ')'
				},
				parse: func() Node { return p.parseCast() },
			},
			alternative{parse: func() Node { return p.parsePostfix(p.parseParenExpr()) }}).(Expr)
	}
	return p.parsePostfix(p.parseParenExpr())
}

func (p *parser) parseCast() Expr {
	start := p.expect('(').Pos
	td := p.parseTypeDescriptor()
	p.expect(')')
	if p.curt.Kind == '{' {
		n := &CompoundLiteralExpr{Type: td, Value: p.parseInitializerList()}
		n.span = p.spanFrom(start)
		return p.parsePostfix(n)
	}
	n := &CastExpr{Type: td, Value: p.parseUnary()}
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseParenExpr() *ParenExpr {
	start := p.expect('(').Pos
	n := &ParenExpr{Inner: p.parseCommaExpr()}
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parsePostfix(x Expr) Expr {
	start := x.Span().Start
	for {
		t := p.curt
		switch t.Kind {
		case '[':
			p.next()
			n := &SubscriptExpr{Argument: x, Index: p.parseCommaExpr()}
			p.expect(']')
			n.span = p.spanFrom(start)
			x = n
		case '(':
			n := &CallExpr{Function: x, Arguments: p.parseArgumentList()}
			if p.curt.Kind == cpp.ANNOT_START && p.nextt.Is("where") {
				n.VirtualArguments = p.parseVirtualArgument()
			}
			n.span = p.spanFrom(start)
			x = n
		case '.', cpp.ARROW:
			p.next()
			n := &FieldExpr{Argument: x, Op: t.Val, Field: p.ident("field_identifier")}
			n.span = p.spanFrom(start)
			x = n
		case cpp.INC, cpp.DEC:
			p.next()
			n := &UpdateExpr{Op: t.Val, Argument: x}
			n.span = p.spanFrom(start)
			x = n
		default:
			return x
		}
	}
}

func (p *parser) parseArgumentList() *ArgumentList {
	start := p.expect('(').Pos
	n := &ArgumentList{}
	for p.curt.Kind != ')' {
		if p.curt.Kind == '{' {
			n.Arguments = append(n.Arguments, p.parseCompoundStatement())
		} else {
			n.Arguments = append(n.Arguments, p.parseExpr())
		}
		if p.curt.Kind != ',' {
			break
		}
		p.next()
	}
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parsePrimary() Expr {
	t := p.curt
	switch t.Kind {
	case cpp.IDENT:
		if p.nextt.Kind == cpp.STRING {
			return p.parseStringExpr()
		}
		return p.ident("identifier")
	case cpp.INT_CONSTANT, cpp.FLOAT_CONSTANT:
		return p.literal("number_literal")
	case cpp.CHAR_CONSTANT:
		return p.literal("char_literal")
	case cpp.STRING:
		return p.parseStringExpr()
	case cpp.TRUE:
		return p.literal("true")
	case cpp.FALSE:
		return p.literal("false")
	case cpp.NULL:
		return p.literal("null")
	case cpp.GENERIC:
		return p.parseGeneric()
	case cpp.ASM:
		return p.parseGnuAsm()
	}
	if p.attrDepth > 0 && isWord(t) {
		return p.wordIdent("identifier")
	}
	if t.Kind == cpp.EOF {
		p.error("expected expression got end of input")
	}
	p.error("expected expression got %s %q", t.Kind, t.Val)
	return nil
}

// parseStringExpr reads a string literal, or a concatenated string when
// more strings or string macros follow.
func (p *parser) parseStringExpr() Expr {
	start := p.curt.Pos
	var parts []Node
	for {
		switch {
		case p.curt.Kind == cpp.STRING:
			parts = append(parts, p.literal("string_literal"))
			continue
		case p.curt.Kind == cpp.IDENT && (len(parts) > 0 || p.nextt.Kind == cpp.STRING):
			parts = append(parts, p.ident("identifier"))
			continue
		}
		break
	}
	switch len(parts) {
	case 0:
		p.error("expected string got %s", p.curt.Kind)
	case 1:
		if s, ok := parts[0].(*Literal); ok {
			return s
		}
	}
	n := &ConcatenatedString{Parts: parts}
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseGeneric() Expr {
	start := p.expect(cpp.GENERIC).Pos
	p.expect('(')
	n := &GenericExpr{Items: []Node{p.parseExpr()}}
	for p.curt.Kind == ',' {
		p.next()
		n.Items = append(n.Items, p.parseTypeDescriptor())
		p.expect(':')
		n.Items = append(n.Items, p.parseExpr())
	}
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

func isAsmQualifier(t *cpp.Token) bool {
	switch t.Val {
	case "volatile", "__volatile__", "__volatile", "inline", "__inline__", "goto":
		return t.Kind != cpp.STRING
	}
	return false
}

func (p *parser) parseGnuAsm() *GnuAsmExpr {
	start := p.expect(cpp.ASM).Pos
	n := &GnuAsmExpr{}
	for isAsmQualifier(p.curt) {
		n.Qualifiers = append(n.Qualifiers, p.keyword("gnu_asm_qualifier"))
	}
	p.expect('(')
	n.AssemblyCode = p.parseStringExpr()
	// A '::' closes an empty section and opens the next one.
	for section := 0; section < 4 && (p.curt.Kind == ':' || p.curt.Kind == cpp.COLONCOLON); section++ {
		sstart := p.curt.Pos
		if p.curt.Kind == cpp.COLONCOLON {
			section++
		}
		p.next()
		switch section {
		case 0:
			n.OutputOperands = p.parseAsmOperands(sstart, false)
		case 1:
			n.InputOperands = p.parseAsmOperands(sstart, true)
		case 2:
			l := &GnuAsmClobberList{}
			for p.curt.Kind == cpp.STRING {
				l.Registers = append(l.Registers, p.parseStringExpr())
				if p.curt.Kind != ',' {
					break
				}
				p.next()
			}
			l.span = p.spanFrom(sstart)
			n.Clobbers = l
		case 3:
			l := &GnuAsmGotoList{}
			for p.curt.Kind == cpp.IDENT {
				l.Labels = append(l.Labels, p.ident("identifier"))
				if p.curt.Kind != ',' {
					break
				}
				p.next()
			}
			l.span = p.spanFrom(sstart)
			n.GotoLabels = l
		}
	}
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseAsmOperands(start cpp.FilePos, input bool) *GnuAsmOperandList {
	l := &GnuAsmOperandList{Input: input}
	for p.curt.Kind == '[' || p.curt.Kind == cpp.STRING {
		ostart := p.curt.Pos
		op := &GnuAsmOperand{Input: input}
		if p.curt.Kind == '[' {
			p.next()
			op.Symbol = p.ident("identifier")
			p.expect(']')
		}
		if p.curt.Kind != cpp.STRING {
			p.error("expected asm constraint got %s", p.curt.Kind)
		}
		op.Constraint = p.literal("string_literal")
		p.expect('(')
		op.Value = p.parseCommaExpr()
		p.expect(')')
		op.span = p.spanFrom(ostart)
		l.Operands = append(l.Operands, op)
		if p.curt.Kind != ',' {
			break
		}
		p.next()
	}
	l.span = p.spanFrom(start)
	return l
}
