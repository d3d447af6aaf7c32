package parse

import (
	"fmt"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/andrewchambers/ccspec/cpp"
)

// Config controls a parse. The zero value is ready to use.
type Config struct {
	// TypeNames are identifiers known to name types before the input is
	// read, typically typedefs declared in headers that are not part of it.
	TypeNames []string
	// Debug appends the parser stack to syntax errors.
	Debug bool
	// MaxErrors stops recording syntax errors once that many were seen.
	// Zero means no limit.
	MaxErrors int
}

type parser struct {
	cfg   Config
	src   []byte
	fname string
	// toks is the token stream without ERROR tokens, pos indexes curt.
	toks        []*cpp.Token
	pos         int
	curt, nextt *cpp.Token
	// prev is the last consumed token, node spans end at prev.End.
	prev  *cpp.Token
	types *oracle
	errs  cpp.ErrorList
	// Non zero inside lookahead, errors unwind to the probe instead of being
	// recorded.
	speculating int
	// Depth of #if blocks being parsed.
	ppDepth int
	// Non zero inside attribute arguments, where keywords are names.
	attrDepth int

	exprOps, assertOps, ppOps *climber

	// probed caches lookahead outcomes at ambiguity points, probes counts
	// the lookaheads actually run.
	probed map[probeKey]bool
	probes int
}

type parseErrorBreakOut struct {
	err cpp.ErrorLoc
}

// Parse reads a whole source buffer. A tree is always returned, syntax
// errors leave ERROR nodes behind. The error, if not nil, is a
// cpp.ErrorList holding every lexical and syntax error ordered by position.
func Parse(fname string, src []byte, cfg Config) (*TranslationUnit, error) {
	all, lexErrs := cpp.Tokenize(fname, src)
	p := newParser(fname, src, all, cfg)
	tu := p.parseTranslationUnit()
	tu.Tokens = all
	tu.src = src

	errs := append(cpp.ErrorList{}, lexErrs...)
	errs = append(errs, p.errs...)
	sort.SliceStable(errs, func(i, j int) bool {
		return errs[i].Pos.Offset < errs[j].Pos.Offset
	})
	return tu, errs.Err()
}

func newParser(fname string, src []byte, all []*cpp.Token, cfg Config) *parser {
	p := &parser{
		cfg:    cfg,
		src:    src,
		fname:  fname,
		types:  newOracle(cfg.TypeNames),
		probed: make(map[probeKey]bool),
	}
	for _, t := range all {
		if t.Kind != cpp.ERROR {
			p.toks = append(p.toks, t)
		}
	}
	p.initClimbers()
	p.seek(0)
	return p
}

func (p *parser) errorPos(m string, pos cpp.FilePos, vals ...interface{}) {
	err := fmt.Errorf("syntax error: "+m, vals...)
	if p.cfg.Debug {
		err = fmt.Errorf("%s\n%s", err, debug.Stack())
	}
	panic(parseErrorBreakOut{cpp.ErrorLoc{Kind: cpp.SyntaxError, Err: err, Pos: pos}})
}

func (p *parser) error(m string, vals ...interface{}) {
	p.errorPos(m, p.curt.Pos, vals...)
}

func (p *parser) unexpected() {
	if p.curt.Kind == cpp.EOF {
		p.error("unexpected end of input")
	}
	p.error("unexpected %s %q", p.curt.Kind, p.curt.Val)
}

func (p *parser) expect(k cpp.TokenKind) *cpp.Token {
	t := p.curt
	if t.Kind != k {
		p.error("expected %s got %s", k, t.Kind)
	}
	p.next()
	return t
}

// expectWord consumes the annotation keyword kw.
func (p *parser) expectWord(kw string) {
	if !p.curt.Is(kw) {
		p.error("expected %s got %q", kw, p.curt.Val)
	}
	p.next()
}

func (p *parser) next() {
	p.prev = p.curt
	p.seek(p.pos + 1)
}

func (p *parser) seek(pos int) {
	p.pos = pos
	p.curt = p.peek(0)
	p.nextt = p.peek(1)
}

// peek returns the token n places after curt, the stream ends with EOF
// repeated forever.
func (p *parser) peek(n int) *cpp.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		i = len(p.toks) - 1
	}
	return p.toks[i]
}

// spanFrom covers start up to the last consumed token.
func (p *parser) spanFrom(start cpp.FilePos) Span {
	return Span{start, p.prev.End}
}

func tokSpan(t *cpp.Token) Span {
	return Span{t.Pos, t.End}
}

func spanOf(first, last Node) Span {
	return Span{first.Span().Start, last.Span().End}
}

// lookahead runs fn speculatively and reports its answer. The tokens and
// the oracle are always put back, a syntax error counts as false.
func (p *parser) lookahead(fn func() bool) (ok bool) {
	pos, prev, mark := p.pos, p.prev, p.types.mark()
	depth, attrDepth := p.ppDepth, p.attrDepth
	p.speculating++
	defer func() {
		p.speculating--
		if e := recover(); e != nil {
			if _, isBreak := e.(parseErrorBreakOut); !isBreak {
				panic(e)
			}
			ok = false
		}
		p.seek(pos)
		p.prev = prev
		p.types.rollback(mark)
		p.ppDepth, p.attrDepth = depth, attrDepth
	}()
	return fn()
}

func (p *parser) report(err cpp.ErrorLoc) {
	if p.cfg.MaxErrors > 0 && len(p.errs) >= p.cfg.MaxErrors {
		return
	}
	p.errs = append(p.errs, err)
}

// item parses one list item with fn. A syntax error is recorded and the
// tokens up to the next synchronization point become an ERROR node.
func (p *parser) item(fn func() Node) (n Node) {
	start := p.pos
	cur, depth, attrDepth := p.types.cur, p.ppDepth, p.attrDepth
	defer func() {
		e := recover()
		if e == nil {
			return
		}
		peb, ok := e.(parseErrorBreakOut)
		if !ok || p.speculating > 0 {
			panic(e)
		}
		p.report(peb.err)
		p.types.reset(cur)
		p.ppDepth, p.attrDepth = depth, attrDepth
		n = p.skip(start)
	}()
	return fn()
}

// skip resumes after a syntax error in the item starting at toks[start]. It
// stops at a ';' or at the '}' closing the braces opened by the item, before
// a '}' closing an enclosing block, and before a directive or annotation.
// Annotations and directives are skipped to their end.
func (p *parser) skip(start int) Node {
	first := p.toks[start]
	switch first.Kind {
	case cpp.ANNOT_START:
		p.skipTo(cpp.ANNOT_END)
	case cpp.DIRECTIVE:
		p.skipTo(cpp.END_DIRECTIVE)
	default:
		p.skipBraces(start)
	}
	if p.pos == start && p.curt.Kind != cpp.EOF {
		p.next()
	}
	if p.pos == start {
		return &ErrorNode{base: base{Span{first.Pos, first.Pos}}}
	}
	n := &ErrorNode{base: base{p.spanFrom(first.Pos)}}
	n.Text = string(p.src[first.Pos.Offset:p.prev.End.Offset])
	return n
}

func (p *parser) skipTo(k cpp.TokenKind) {
	for p.curt.Kind != cpp.EOF {
		t := p.curt
		p.next()
		if t.Kind == k {
			return
		}
	}
}

func (p *parser) skipBraces(start int) {
	depth := 0
	for i := start; i < p.pos; i++ {
		switch p.toks[i].Kind {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}
	for p.curt.Kind != cpp.EOF {
		switch p.curt.Kind {
		case ';':
			if depth == 0 {
				p.next()
				return
			}
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.next()
				if p.curt.Kind == ';' {
					p.next()
				}
				return
			}
		case cpp.DIRECTIVE, cpp.ANNOT_START:
			if depth == 0 {
				return
			}
		}
		p.next()
	}
}

// The contexts an item list can appear in. Preprocessor blocks take the
// context of the list they are in.
type itemContext int

const (
	ctxTopLevel itemContext = iota
	ctxBlock
	ctxCase
	ctxField
	ctxEnum
)

// itemsEnd reports whether the item list of ctx ends at curt.
func (p *parser) itemsEnd(ctx itemContext) bool {
	switch p.curt.Kind {
	case cpp.EOF:
		return true
	case cpp.DIRECTIVE:
		return p.ppDepth > 0 && isConditionalContinuation(directiveName(p.curt))
	case '}':
		return ctx != ctxTopLevel
	case cpp.CASE, cpp.DEFAULT:
		return ctx == ctxCase
	}
	return false
}

func (p *parser) parseItems(ctx itemContext) []Node {
	var items []Node
	for !p.itemsEnd(ctx) {
		items = append(items, p.item(func() Node {
			return p.parseItem(ctx)
		}))
	}
	return items
}

func (p *parser) parseItem(ctx itemContext) Node {
	switch ctx {
	case ctxEnum:
		return p.parseEnumItem()
	case ctxField:
		if p.curt.Kind == cpp.DIRECTIVE {
			return p.parsePreproc(ctx)
		}
		return p.parseFieldDeclaration()
	case ctxTopLevel:
		if p.curt.Kind == '}' {
			p.error("unbalanced '}'")
		}
	}
	return p.parseBlockItem(ctx)
}

func (p *parser) parseTranslationUnit() *TranslationUnit {
	tu := &TranslationUnit{}
	for p.curt.Kind != cpp.EOF {
		tu.Items = append(tu.Items, p.item(func() Node {
			return p.parseItem(ctxTopLevel)
		}))
		p.types.commit()
	}
	tu.span = Span{cpp.FilePos{File: p.fname, Line: 1, Col: 1}, p.curt.Pos}
	return tu
}

func directiveName(t *cpp.Token) string {
	return strings.TrimLeft(t.Val, "# \t")
}

func isConditionalContinuation(name string) bool {
	switch name {
	case "else", "elif", "elifdef", "elifndef", "endif":
		return true
	}
	return false
}
