package parse

import (
	"fmt"

	"github.com/andrewchambers/ccspec/cpp"
)

// parsePreproc reads a directive at curt. Conditional blocks hold items of
// the context they appear in.
func (p *parser) parsePreproc(ctx itemContext) Node {
	t := p.curt
	switch name := directiveName(t); name {
	case "include":
		return p.parseInclude()
	case "define":
		return p.parseDefine()
	case "if":
		return p.parsePreprocIf(ctx)
	case "ifdef", "ifndef":
		return p.parsePreprocIfdef(ctx)
	case "else", "elif", "elifdef", "elifndef", "endif":
		p.error("#%s without #if", name)
	}
	return p.parsePreprocCall()
}

func (p *parser) endDirective() {
	if p.curt.Kind == cpp.PP_ARG {
		p.error("unexpected text after directive: %q", p.curt.Val)
	}
	p.expect(cpp.END_DIRECTIVE)
}

func (p *parser) parseInclude() Node {
	start := p.expect(cpp.DIRECTIVE).Pos
	n := &PreprocInclude{}
	switch p.curt.Kind {
	case cpp.STRING:
		n.Path = p.literal("string_literal")
	case cpp.HEADER:
		n.Path = p.literal("system_lib_string")
	case cpp.IDENT:
		id := p.ident("identifier")
		if p.curt.Kind == '(' {
			call := &CallExpr{Function: id, Arguments: p.parsePreprocArguments()}
			call.span = p.spanFrom(id.span.Start)
			n.Path = call
		} else {
			n.Path = id
		}
	default:
		p.error("expected include path got %s", p.curt.Kind)
	}
	p.endDirective()
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseDefine() Node {
	start := p.expect(cpp.DIRECTIVE).Pos
	name := p.ident("identifier")
	if p.curt.Kind == '(' && p.curt.Trivia == "" {
		n := &PreprocFunctionDef{Name: name, Parameters: p.parsePreprocParams()}
		if p.curt.Kind == cpp.PP_ARG {
			n.Value = p.literal("preproc_arg")
		}
		p.expect(cpp.END_DIRECTIVE)
		n.span = p.spanFrom(start)
		return n
	}
	n := &PreprocDef{Name: name}
	if p.curt.Kind == cpp.PP_ARG {
		n.Value = p.literal("preproc_arg")
	}
	p.expect(cpp.END_DIRECTIVE)
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parsePreprocParams() *PreprocParams {
	start := p.expect('(').Pos
	n := &PreprocParams{}
	for p.curt.Kind != ')' {
		if p.curt.Kind == cpp.ELLIPSIS {
			p.next()
			n.Variadic = true
			break
		}
		n.Params = append(n.Params, p.wordIdent("identifier"))
		if p.curt.Kind == cpp.ELLIPSIS {
			p.next()
			n.Variadic = true
			break
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

func (p *parser) parsePreprocCall() Node {
	start := p.curt.Pos
	n := &PreprocCall{Directive: p.literal("preproc_directive")}
	if p.curt.Kind == cpp.PP_ARG {
		n.Argument = p.literal("preproc_arg")
	}
	p.expect(cpp.END_DIRECTIVE)
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parsePreprocIf(ctx itemContext) Node {
	open := p.expect(cpp.DIRECTIVE)
	n := &PreprocIf{Condition: p.parsePreprocExpr()}
	p.endDirective()
	p.ppDepth++
	n.Items = p.parseItems(ctx)
	n.Alternative = p.parsePreprocAlternative(ctx)
	p.ppDepth--
	p.closeConditional(open)
	n.span = p.spanFrom(open.Pos)
	return n
}

func (p *parser) parsePreprocIfdef(ctx itemContext) Node {
	open := p.expect(cpp.DIRECTIVE)
	n := &PreprocIfdef{Directive: directiveName(open), Name: p.wordIdent("identifier")}
	p.endDirective()
	p.ppDepth++
	n.Items = p.parseItems(ctx)
	n.Alternative = p.parsePreprocAlternative(ctx)
	p.ppDepth--
	p.closeConditional(open)
	n.span = p.spanFrom(open.Pos)
	return n
}

// parsePreprocAlternative reads the #else or #elif chain of a conditional,
// or returns nil.
func (p *parser) parsePreprocAlternative(ctx itemContext) Node {
	if p.curt.Kind != cpp.DIRECTIVE {
		return nil
	}
	t := p.curt
	switch name := directiveName(t); name {
	case "else":
		p.next()
		if p.curt.Kind == cpp.PP_ARG {
			p.next()
		}
		p.expect(cpp.END_DIRECTIVE)
		n := &PreprocElse{Items: p.parseItems(ctx)}
		n.span = p.spanFrom(t.Pos)
		return n
	case "elif":
		p.next()
		n := &PreprocElif{Condition: p.parsePreprocExpr()}
		p.endDirective()
		n.Items = p.parseItems(ctx)
		n.Alternative = p.parsePreprocAlternative(ctx)
		n.span = p.spanFrom(t.Pos)
		return n
	case "elifdef", "elifndef":
		p.next()
		n := &PreprocElifdef{Directive: name, Name: p.wordIdent("identifier")}
		p.endDirective()
		n.Items = p.parseItems(ctx)
		n.Alternative = p.parsePreprocAlternative(ctx)
		n.span = p.spanFrom(t.Pos)
		return n
	}
	return nil
}

// closeConditional consumes the #endif of the conditional opened by open.
// Running into the end of input is reported without giving up the block.
func (p *parser) closeConditional(open *cpp.Token) {
	if p.curt.Kind == cpp.EOF {
		err := cpp.ErrorLoc{
			Kind: cpp.UnterminatedPreprocessorBlock,
			Err:  fmt.Errorf("#%s at %s is never closed with #endif", directiveName(open), open.Pos),
			Pos:  p.curt.Pos,
		}
		if p.speculating > 0 {
			panic(parseErrorBreakOut{err})
		}
		p.report(err)
		return
	}
	if p.curt.Kind != cpp.DIRECTIVE || directiveName(p.curt) != "endif" {
		p.error("expected #endif for #%s at %s got %s", directiveName(open), open.Pos, p.curt.Kind)
	}
	p.next()
	if p.curt.Kind == cpp.PP_ARG {
		p.next()
	}
	p.expect(cpp.END_DIRECTIVE)
}

func (p *parser) parsePreprocExpr() Expr {
	return p.climb(p.ppOps, PrecLogicalOr).(Expr)
}

func (p *parser) parsePreprocOperand() Expr {
	t := p.curt
	start := t.Pos
	switch t.Kind {
	case cpp.INT_CONSTANT, cpp.FLOAT_CONSTANT:
		return p.literal("number_literal")
	case cpp.CHAR_CONSTANT:
		return p.literal("char_literal")
	case '!', '~', '-', '+':
		p.next()
		n := &UnaryExpr{Op: t.Val, Argument: p.parsePreprocOperand()}
		n.span = p.spanFrom(start)
		return n
	case '(':
		p.next()
		n := &ParenExpr{Inner: p.parsePreprocExpr()}
		p.expect(')')
		n.span = p.spanFrom(start)
		return n
	}
	if !isWord(t) {
		p.error("expected preprocessor expression got %s", t.Kind)
	}
	if t.Val == "defined" {
		p.next()
		n := &PreprocDefined{}
		if p.curt.Kind == '(' {
			p.next()
			n.Name = p.wordIdent("identifier")
			p.expect(')')
		} else {
			n.Name = p.wordIdent("identifier")
		}
		n.span = p.spanFrom(start)
		return n
	}
	id := p.wordIdent("identifier")
	if p.curt.Kind != '(' {
		return id
	}
	n := &CallExpr{Function: id, Arguments: p.parsePreprocArguments()}
	n.span = p.spanFrom(start)
	return n
}

// parsePreprocArguments reads a macro call argument list, each argument a
// preprocessor expression.
func (p *parser) parsePreprocArguments() *ArgumentList {
	start := p.expect('(').Pos
	n := &ArgumentList{}
	for p.curt.Kind != ')' {
		n.Arguments = append(n.Arguments, p.parsePreprocExpr())
		if p.curt.Kind != ',' {
			break
		}
		p.next()
	}
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}
