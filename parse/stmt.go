package parse

import "github.com/andrewchambers/ccspec/cpp"

func (p *parser) parseStatement() Stmt {
	t := p.curt
	start := t.Pos
	switch t.Kind {
	case '{':
		return p.parseCompoundStatement()
	case cpp.IF:
		return p.parseIf()
	case cpp.SWITCH:
		p.next()
		n := &SwitchStmt{Condition: p.parseParenCondition(), Body: p.parseCompoundStatement()}
		n.span = p.spanFrom(start)
		return n
	case cpp.CASE, cpp.DEFAULT:
		return p.parseCase()
	case cpp.WHILE:
		p.next()
		n := &WhileStmt{Condition: p.parseParenCondition(), Body: p.parseStatement()}
		n.span = p.spanFrom(start)
		return n
	case cpp.DO:
		p.next()
		n := &DoStmt{Body: p.parseStatement()}
		p.expect(cpp.WHILE)
		n.Condition = p.parseParenCondition()
		p.expect(';')
		n.span = p.spanFrom(start)
		return n
	case cpp.FOR:
		return p.parseFor()
	case cpp.RETURN:
		p.next()
		n := &ReturnStmt{}
		if p.curt.Kind != ';' {
			n.Value = p.parseCommaExpr()
		}
		p.expect(';')
		n.span = p.spanFrom(start)
		return n
	case cpp.BREAK, cpp.CONTINUE, cpp.SEH_LEAVE:
		kind := map[cpp.TokenKind]string{
			cpp.BREAK:     "break_statement",
			cpp.CONTINUE:  "continue_statement",
			cpp.SEH_LEAVE: "seh_leave_statement",
		}[t.Kind]
		p.next()
		p.expect(';')
		return &JumpStmt{base: base{p.spanFrom(start)}, kind: kind}
	case cpp.GOTO:
		p.next()
		n := &GotoStmt{Label: p.ident("statement_identifier")}
		p.expect(';')
		n.span = p.spanFrom(start)
		return n
	case cpp.SEH_TRY:
		return p.parseSehTry()
	case ';':
		p.next()
		return &ExprStmt{base: base{tokSpan(t)}}
	case '[':
		if p.nextt.Kind == '[' {
			n := &AttributedStmt{}
			for p.curt.Kind == '[' && p.nextt.Kind == '[' {
				n.Attributes = append(n.Attributes, p.parseAttributeDeclaration())
			}
			n.Body = p.parseStatement()
			n.span = p.spanFrom(start)
			return n
		}
	case cpp.IDENT:
		if p.nextt.Kind == ':' {
			n := &LabeledStmt{Label: p.ident("statement_identifier")}
			p.next()
			if p.startsDeclaration() {
				n.Body = p.parseDeclaration(false)
			} else {
				n.Body = p.parseStatement()
			}
			n.span = p.spanFrom(start)
			return n
		}
	}
	n := &ExprStmt{X: p.parseCommaExpr()}
	p.expect(';')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseParenCondition() *ParenExpr {
	if p.curt.Kind != '(' {
		p.error("expected '(' got %s", p.curt.Kind)
	}
	return p.parseParenExpr()
}

func (p *parser) parseCompoundStatement() *CompoundStmt {
	start := p.expect('{').Pos
	p.types.push()
	n := &CompoundStmt{Items: p.parseItems(ctxBlock)}
	p.types.pop()
	p.expect('}')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseIf() Stmt {
	start := p.expect(cpp.IF).Pos
	n := &IfStmt{Condition: p.parseParenCondition(), Consequence: p.parseStatement()}
	if p.curt.Kind == cpp.ELSE {
		estart := p.curt.Pos
		p.next()
		e := &ElseClause{Body: p.parseStatement()}
		e.span = p.spanFrom(estart)
		n.Alternative = e
	}
	n.span = p.spanFrom(start)
	return n
}

// parseCase reads a label and the items up to the next label or the end
// of the switch body.
func (p *parser) parseCase() Stmt {
	start := p.curt.Pos
	n := &CaseStmt{}
	if p.curt.Kind == cpp.CASE {
		p.next()
		n.Value = p.parseExpr()
	} else {
		p.expect(cpp.DEFAULT)
	}
	p.expect(':')
	n.Body = p.parseItems(ctxCase)
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseFor() Stmt {
	start := p.expect(cpp.FOR).Pos
	p.expect('(')
	p.types.push()
	n := &ForStmt{}
	if p.startsDeclaration() {
		n.Initializer = p.parseDeclaration(false)
	} else {
		if p.curt.Kind != ';' {
			n.Initializer = p.parseCommaExpr()
		}
		p.expect(';')
	}
	if p.curt.Kind != ';' {
		n.Condition = p.parseCommaExpr()
	}
	p.expect(';')
	if p.curt.Kind != ')' {
		n.Update = p.parseCommaExpr()
	}
	p.expect(')')
	n.Body = p.parseStatement()
	p.types.pop()
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseSehTry() Stmt {
	start := p.expect(cpp.SEH_TRY).Pos
	n := &SehTryStmt{Body: p.parseCompoundStatement()}
	hstart := p.curt.Pos
	switch p.curt.Kind {
	case cpp.SEH_EXCEPT:
		p.next()
		h := &SehExceptClause{Filter: p.parseParenCondition(), Body: p.parseCompoundStatement()}
		h.span = p.spanFrom(hstart)
		n.Handler = h
	case cpp.SEH_FINALLY:
		p.next()
		h := &SehFinallyClause{Body: p.parseCompoundStatement()}
		h.span = p.spanFrom(hstart)
		n.Handler = h
	default:
		p.error("expected __except or __finally got %s", p.curt.Kind)
	}
	n.span = p.spanFrom(start)
	return n
}
