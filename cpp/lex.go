package cpp

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"modernc.org/token"
)

type lexMode int

const (
	modeCode lexMode = iota
	modeDirective
	modeAnnotLine
	modeAnnotBlock
)

// Lexer splits a source buffer into tokens. It is pull based, each call
// to Next lexes just enough input to produce the next token.
//
// Nothing is ever discarded: whitespace, line continuations and comments
// are attached to the following token as trivia.
type Lexer struct {
	name string
	src  []byte
	file *token.File
	nl   int

	pos         int
	markedPos   int
	triviaStart int
	// At the beginning of a line not including whitespace.
	bol bool
	// Set once the EOF token was produced.
	done bool
	// The rest of the current directive line is raw text.
	wantArg bool
	// Only set between #include and its newline.
	inInclude bool
	// Offset of the /*@ that opened the current block annotation.
	annotStart int

	modes    []lexMode
	queue    []*Token
	errs     ErrorList
	reported int
}

// Lex prepares a lexer over src. fname is used for error messages when
// showing the source location.
// No preprocessing is done, this is just pure reading of the unprocessed
// source file.
func Lex(fname string, src []byte) *Lexer {
	lx := new(Lexer)
	lx.name = fname
	lx.src = src
	lx.file = token.NewFile(fname, len(src))
	for i, c := range src {
		if c == '\n' {
			lx.nl++
			lx.file.AddLine(i + 1)
		}
	}
	lx.bol = true
	lx.modes = []lexMode{modeCode}
	return lx
}

// Tokenize lexes the whole of src, the returned slice always ends with EOF.
func Tokenize(fname string, src []byte) ([]*Token, ErrorList) {
	lx := Lex(fname, src)
	var toks []*Token
	for {
		tok, _ := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return toks, lx.Errors()
}

// Next returns the next token and the first lexical error found since the
// previous call, if any. Once EOF is reached it keeps returning EOF.
func (lx *Lexer) Next() (*Token, error) {
	for len(lx.queue) == 0 {
		if lx.done {
			pos := lx.posAt(len(lx.src))
			return &Token{Kind: EOF, Pos: pos, End: pos}, nil
		}
		lx.lex()
	}
	tok := lx.queue[0]
	lx.queue = lx.queue[1:]
	var err error
	if lx.reported < len(lx.errs) {
		err = lx.errs[lx.reported]
		lx.reported = len(lx.errs)
	}
	return tok, err
}

// Errors returns every lexical error found so far.
func (lx *Lexer) Errors() ErrorList {
	return lx.errs
}

func (lx *Lexer) mode() lexMode {
	return lx.modes[len(lx.modes)-1]
}

func (lx *Lexer) push(m lexMode) {
	lx.modes = append(lx.modes, m)
}

func (lx *Lexer) pop() {
	if len(lx.modes) > 1 {
		lx.modes = lx.modes[:len(lx.modes)-1]
	}
}

func (lx *Lexer) inAnnotation() bool {
	m := lx.mode()
	return m == modeAnnotLine || m == modeAnnotBlock
}

func (lx *Lexer) posAt(off int) FilePos {
	p := lx.file.Position(lx.file.Pos(off))
	ret := FilePos{File: lx.name, Line: p.Line, Col: p.Column, Offset: off}
	// The line table has no entry for a line that starts at the very end.
	if off == len(lx.src) && off > 0 && lx.src[off-1] == '\n' {
		ret.Line = lx.nl + 1
		ret.Col = 1
	}
	return ret
}

func (lx *Lexer) markPos() {
	lx.markedPos = lx.pos
}

func (lx *Lexer) sendTok(kind TokenKind) {
	tok := &Token{
		Kind:   kind,
		Val:    string(lx.src[lx.markedPos:lx.pos]),
		Pos:    lx.posAt(lx.markedPos),
		End:    lx.posAt(lx.pos),
		Trivia: string(lx.src[lx.triviaStart:lx.markedPos]),
	}
	lx.triviaStart = lx.pos
	switch kind {
	case END_DIRECTIVE:
		lx.bol = true
	case ANNOT_END:
		lx.bol = tok.Val != "*/"
	default:
		lx.bol = false
	}
	lx.queue = append(lx.queue, tok)
}

func (lx *Lexer) errorAt(off int, m string, vals ...interface{}) {
	lx.errs.Add(LexError, lx.posAt(off), m, vals...)
}

func (lx *Lexer) peekAt(n int) byte {
	if lx.pos+n >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+n]
}

func (lx *Lexer) peek() byte {
	return lx.peekAt(0)
}

func (lx *Lexer) atEOF() bool {
	return lx.pos >= len(lx.src)
}

// newlineLen reports the size of the line ending at the read position.
func (lx *Lexer) newlineLen() int {
	switch {
	case lx.peek() == '\n':
		return 1
	case lx.peek() == '\r' && lx.peekAt(1) == '\n':
		return 2
	}
	return 0
}

// continuationLen reports the size of a backslash newline at the read position.
func (lx *Lexer) continuationLen() int {
	if lx.peek() != '\\' {
		return 0
	}
	switch {
	case lx.peekAt(1) == '\n':
		return 2
	case lx.peekAt(1) == '\r' && lx.peekAt(2) == '\n':
		return 3
	}
	return 0
}

func (lx *Lexer) lex() {
	for {
		lx.markPos()
		if lx.atEOF() {
			switch lx.mode() {
			case modeDirective:
				lx.endDirective()
				lx.sendTok(END_DIRECTIVE)
				return
			case modeAnnotLine:
				lx.pop()
				lx.sendTok(ANNOT_END)
				return
			case modeAnnotBlock:
				lx.errorAt(lx.pos, "unterminated annotation opened at %s", lx.posAt(lx.annotStart))
				lx.pop()
				lx.sendTok(ANNOT_END)
				return
			}
			lx.sendTok(EOF)
			lx.done = true
			return
		}
		if n := lx.newlineLen(); n != 0 {
			lx.pos += n
			switch lx.mode() {
			case modeDirective:
				lx.endDirective()
				lx.sendTok(END_DIRECTIVE)
				return
			case modeAnnotLine:
				lx.pop()
				lx.sendTok(ANNOT_END)
				return
			}
			lx.bol = true
			continue
		}
		if n := lx.continuationLen(); n != 0 {
			lx.pos += n
			continue
		}
		first := lx.peek()
		second := lx.peekAt(1)
		switch {
		case isWhiteSpace(rune(first)):
			lx.pos++
			continue
		case first == '/' && second == '/':
			if lx.peekAt(2) == '@' && lx.mode() == modeCode {
				lx.pos += 3
				lx.sendTok(ANNOT_START)
				lx.push(modeAnnotLine)
				return
			}
			lx.skipLineComment()
			continue
		case first == '/' && second == '*':
			if lx.peekAt(2) == '@' && lx.mode() == modeCode {
				lx.annotStart = lx.pos
				lx.pos += 3
				lx.sendTok(ANNOT_START)
				lx.push(modeAnnotBlock)
				return
			}
			lx.skipBlockComment()
			continue
		case first == '*' && second == '/' && lx.mode() == modeAnnotBlock:
			lx.pos += 2
			lx.pop()
			lx.sendTok(ANNOT_END)
			return
		case lx.mode() == modeDirective && lx.wantArg:
			lx.readPPArg()
			return
		}
		lx.readToken()
		return
	}
}

func (lx *Lexer) skipLineComment() {
	lx.pos += 2
	for !lx.atEOF() {
		if n := lx.continuationLen(); n != 0 {
			lx.pos += n
			continue
		}
		if lx.newlineLen() != 0 {
			return
		}
		lx.pos++
	}
}

func (lx *Lexer) skipBlockComment() {
	start := lx.pos
	end := bytes.Index(lx.src[lx.pos+2:], []byte("*/"))
	if end < 0 {
		lx.pos = len(lx.src)
		lx.errorAt(lx.pos, "unclosed comment opened at %s", lx.posAt(start))
		return
	}
	lx.pos += 2 + end + 2
}

func (lx *Lexer) endDirective() {
	lx.pop()
	lx.wantArg = false
	lx.inInclude = false
}

func (lx *Lexer) readToken() {
	first := lx.peek()
	switch {
	case first == '#' && lx.bol && lx.mode() == modeCode:
		lx.readDirective()
	case lx.literalPrefixLen() != 0:
		n := lx.literalPrefixLen()
		if lx.peekAt(n) == '"' {
			lx.readCString(n)
		} else {
			lx.readCChar(n)
		}
	case isValidIdentStart(lx.peekRune()):
		lx.readIdentOrKeyword()
	case isNumeric(rune(first)) || (first == '.' && isNumeric(rune(lx.peekAt(1)))):
		lx.readConstantIntOrFloat()
	case first == '"':
		lx.readCString(0)
	case first == '\'':
		lx.readCChar(0)
	case first == '<' && lx.inInclude:
		lx.readHeaderInclude()
	default:
		lx.readPunctuation()
	}
}

func (lx *Lexer) punct(kind TokenKind, n int) {
	lx.pos += n
	lx.sendTok(kind)
}

func (lx *Lexer) readPunctuation() {
	first := lx.peek()
	second := lx.peekAt(1)
	third := lx.peekAt(2)
	annot := lx.inAnnotation()
	switch first {
	case '#':
		lx.punct(HASH, 1)
	case '!':
		switch second {
		case '=':
			lx.punct(NEQ, 2)
		default:
			lx.punct(NOT, 1)
		}
	case '?':
		lx.punct(QUESTION, 1)
	case ':':
		switch {
		case second == ':':
			lx.punct(COLONCOLON, 2)
		case second == '=' && annot:
			lx.punct(DEFINE_ASSIGN, 2)
		default:
			lx.punct(COLON, 1)
		}
	case '(':
		lx.punct(LPAREN, 1)
	case ')':
		lx.punct(RPAREN, 1)
	case '{':
		lx.punct(LBRACE, 1)
	case '}':
		lx.punct(RBRACE, 1)
	case '[':
		lx.punct(LBRACK, 1)
	case ']':
		lx.punct(RBRACK, 1)
	case '<':
		switch {
		case second == '<' && third == '=':
			lx.punct(SHL_ASSIGN, 3)
		case second == '<':
			lx.punct(SHL, 2)
		case second == '=' && third == '>' && annot:
			lx.punct(IFF, 3)
		case second == '=':
			lx.punct(LEQ, 2)
		default:
			lx.punct(LSS, 1)
		}
	case '>':
		switch {
		case second == '>' && third == '=':
			lx.punct(SHR_ASSIGN, 3)
		case second == '>':
			lx.punct(SHR, 2)
		case second == '=':
			lx.punct(GEQ, 2)
		default:
			lx.punct(GTR, 1)
		}
	case '+':
		switch second {
		case '+':
			lx.punct(INC, 2)
		case '=':
			lx.punct(ADD_ASSIGN, 2)
		default:
			lx.punct(ADD, 1)
		}
	case '.':
		if second == '.' && third == '.' {
			lx.punct(ELLIPSIS, 3)
		} else {
			lx.punct(PERIOD, 1)
		}
	case '~':
		lx.punct(BNOT, 1)
	case '^':
		switch second {
		case '=':
			lx.punct(XOR_ASSIGN, 2)
		default:
			lx.punct(XOR, 1)
		}
	case '-':
		switch second {
		case '>':
			lx.punct(ARROW, 2)
		case '-':
			lx.punct(DEC, 2)
		case '=':
			lx.punct(SUB_ASSIGN, 2)
		default:
			lx.punct(SUB, 1)
		}
	case ',':
		lx.punct(COMMA, 1)
	case '*':
		switch second {
		case '=':
			lx.punct(MUL_ASSIGN, 2)
		default:
			lx.punct(MUL, 1)
		}
	case '/':
		switch second {
		case '=':
			lx.punct(QUO_ASSIGN, 2)
		default:
			lx.punct(QUO, 1)
		}
	case '%':
		switch second {
		case '=':
			lx.punct(REM_ASSIGN, 2)
		default:
			lx.punct(REM, 1)
		}
	case '|':
		switch second {
		case '|':
			lx.punct(LOR, 2)
		case '=':
			lx.punct(OR_ASSIGN, 2)
		default:
			lx.punct(OR, 1)
		}
	case '&':
		switch second {
		case '&':
			lx.punct(LAND, 2)
		case '=':
			lx.punct(AND_ASSIGN, 2)
		default:
			lx.punct(AND, 1)
		}
	case '=':
		switch {
		case second == '=':
			lx.punct(EQL, 2)
		case second == '>' && annot:
			lx.punct(IMPLIES, 2)
		default:
			lx.punct(ASSIGN, 1)
		}
	case ';':
		lx.punct(SEMICOLON, 1)
	case '@':
		if !annot {
			lx.badChar()
			return
		}
		if bytes.HasPrefix(lx.src[lx.pos:], []byte("@mark")) && !isValidIdentTail(lx.runeAt(lx.pos+5)) {
			lx.punct(MARK, 5)
			return
		}
		lx.punct(AT, 1)
	default:
		lx.badChar()
	}
}

func (lx *Lexer) badChar() {
	r, sz := utf8.DecodeRune(lx.src[lx.pos:])
	lx.errorAt(lx.pos, "invalid character %q", r)
	lx.pos += sz
	lx.sendTok(ERROR)
}

func (lx *Lexer) readDirective() {
	lx.pos++
	for lx.peek() == ' ' || lx.peek() == '\t' {
		lx.pos++
	}
	nameStart := lx.pos
	for isValidIdentTail(rune(lx.peek())) && lx.peek() != '$' {
		lx.pos++
	}
	directive := string(lx.src[nameStart:lx.pos])
	if directive == "" {
		// A lone # is a null directive, anything after it is raw text.
		lx.pos = lx.markedPos + 1
	}
	lx.sendTok(DIRECTIVE)
	lx.push(modeDirective)
	switch directive {
	case "include":
		lx.inInclude = true
	case "define":
		lx.readDefine()
	case "if", "elif", "ifdef", "ifndef", "elifdef", "elifndef":
	default:
		lx.wantArg = true
	}
}

// skipDirectiveSpace moves over trivia that cannot end the directive line.
func (lx *Lexer) skipDirectiveSpace() {
	for !lx.atEOF() {
		switch {
		case lx.peek() == ' ' || lx.peek() == '\t' || lx.peek() == '\f' || lx.peek() == '\v':
			lx.pos++
		case lx.peek() == '\r' && lx.peekAt(1) != '\n':
			lx.pos++
		case lx.continuationLen() != 0:
			lx.pos += lx.continuationLen()
		case lx.peek() == '/' && lx.peekAt(1) == '*':
			lx.skipBlockComment()
		default:
			return
		}
	}
}

func (lx *Lexer) readDefine() {
	lx.skipDirectiveSpace()
	lx.markPos()
	if !isValidIdentStart(lx.peekRune()) {
		lx.wantArg = true
		return
	}
	lx.scanWord()
	lx.sendTok(IDENT)
	//Distinguish between a funclike macro
	//and a regular macro.
	if lx.peek() == '(' {
		lx.markPos()
		lx.punct(LPAREN, 1)
		for {
			lx.skipDirectiveSpace()
			lx.markPos()
			if lx.atEOF() || lx.newlineLen() != 0 {
				return
			}
			switch {
			case lx.peek() == ')':
				lx.punct(RPAREN, 1)
				lx.wantArg = true
				return
			case lx.peek() == ',':
				lx.punct(COMMA, 1)
			case bytes.HasPrefix(lx.src[lx.pos:], []byte("...")):
				lx.punct(ELLIPSIS, 3)
			case isValidIdentStart(lx.peekRune()):
				lx.scanWord()
				lx.sendTok(IDENT)
			default:
				lx.wantArg = true
				return
			}
		}
	}
	lx.wantArg = true
}

// readPPArg reads raw text up to the end of the line, following line
// continuations and stopping before a comment. Trailing blanks are left
// to the trivia of the newline.
func (lx *Lexer) readPPArg() {
	lx.wantArg = false
	end := lx.pos
	for !lx.atEOF() {
		if n := lx.continuationLen(); n != 0 {
			lx.pos += n
			continue
		}
		if lx.newlineLen() != 0 {
			break
		}
		if lx.peek() == '/' && (lx.peekAt(1) == '*' || lx.peekAt(1) == '/') {
			break
		}
		lx.pos++
		if !isWhiteSpace(rune(lx.src[lx.pos-1])) {
			end = lx.pos
		}
	}
	lx.pos = end
	lx.sendTok(PP_ARG)
}

func (lx *Lexer) readHeaderInclude() {
	lx.inInclude = false
	i := lx.pos + 1
	for i < len(lx.src) {
		switch lx.src[i] {
		case '\n':
			lx.punct(LSS, 1)
			return
		case '\\':
			if i+1 < len(lx.src) && lx.src[i+1] == '>' {
				i++
			}
		case '>':
			lx.pos = i + 1
			lx.sendTok(HEADER)
			return
		}
		i++
	}
	lx.punct(LSS, 1)
}

func (lx *Lexer) runeAt(off int) rune {
	if off >= len(lx.src) {
		return 0
	}
	r, _ := utf8.DecodeRune(lx.src[off:])
	return r
}

func (lx *Lexer) peekRune() rune {
	return lx.runeAt(lx.pos)
}

// literalPrefixLen returns the length of an L u U u8 encoding prefix
// directly followed by a quote, or zero.
func (lx *Lexer) literalPrefixLen() int {
	quote := func(c byte) bool { return c == '"' || c == '\'' }
	switch lx.peek() {
	case 'L', 'U':
		if quote(lx.peekAt(1)) {
			return 1
		}
	case 'u':
		if quote(lx.peekAt(1)) {
			return 1
		}
		if lx.peekAt(1) == '8' && quote(lx.peekAt(2)) {
			return 2
		}
	}
	return 0
}

func (lx *Lexer) scanWord() {
	for !lx.atEOF() {
		r, sz := utf8.DecodeRune(lx.src[lx.pos:])
		if !isValidIdentTail(r) {
			break
		}
		lx.pos += sz
	}
}

func (lx *Lexer) readIdentOrKeyword() {
	lx.scanWord()
	str := string(lx.src[lx.markedPos:lx.pos])
	if lx.inAnnotation() && annotKeywordLUT[str] {
		lx.sendTok(ANNOT_KEYWORD)
		return
	}
	tokType, ok := keywordLUT[str]
	if !ok {
		tokType = IDENT
	}
	lx.sendTok(tokType)
}

func (lx *Lexer) readDigits(hex bool) {
	for {
		c := rune(lx.peek())
		switch {
		case isNumeric(c) || (hex && isHexDigit(c)):
			lx.pos++
		case c == '\'' && (isNumeric(rune(lx.peekAt(1))) || (hex && isHexDigit(rune(lx.peekAt(1))))):
			lx.pos++
		default:
			return
		}
	}
}

func (lx *Lexer) readConstantIntOrFloat() {
	tokType := TokenKind(INT_CONSTANT)
	hex := false
	if lx.peek() == '0' {
		switch lx.peekAt(1) {
		case 'x', 'X':
			hex = true
			lx.pos += 2
		case 'b', 'B':
			lx.pos += 2
		}
	}
	lx.readDigits(hex)
	if lx.peek() == '.' {
		tokType = FLOAT_CONSTANT
		lx.pos++
		lx.readDigits(hex)
	}
	exp := lx.peek()
	if (!hex && (exp == 'e' || exp == 'E')) || exp == 'p' || exp == 'P' {
		n := 1
		if lx.peekAt(1) == '+' || lx.peekAt(1) == '-' {
			n = 2
		}
		if isNumeric(rune(lx.peekAt(n))) {
			tokType = FLOAT_CONSTANT
			lx.pos += n
			lx.readDigits(false)
		}
	}
	for {
		switch lx.peek() {
		case 'u', 'U', 'l', 'L', 'w', 'W', 'f', 'F', 'b', 'B', 'd', 'D':
			lx.pos++
			continue
		}
		break
	}
	if isValidIdentStart(lx.peekRune()) || isNumeric(lx.peekRune()) {
		lx.errorAt(lx.pos, "invalid suffix on constant %s", string(lx.src[lx.markedPos:lx.pos]))
		lx.scanWord()
	}
	lx.sendTok(tokType)
}

func (lx *Lexer) readQuoted(prefix int, quote byte, kind TokenKind, what string) {
	lx.pos += prefix + 1
	for {
		if lx.atEOF() || lx.newlineLen() != 0 {
			lx.errorAt(lx.markedPos, "unterminated %s literal", what)
			lx.sendTok(kind)
			return
		}
		switch lx.peek() {
		case '\\':
			if n := lx.continuationLen(); n != 0 {
				lx.pos += n
				continue
			}
			lx.pos++
			if !lx.atEOF() && lx.newlineLen() == 0 {
				_, sz := utf8.DecodeRune(lx.src[lx.pos:])
				lx.pos += sz
			}
		case quote:
			lx.pos++
			lx.sendTok(kind)
			return
		default:
			lx.pos++
		}
	}
}

func (lx *Lexer) readCString(prefix int) {
	lx.readQuoted(prefix, '"', STRING, "string")
}

func (lx *Lexer) readCChar(prefix int) {
	lx.readQuoted(prefix, '\'', CHAR_CONSTANT, "char")
}

func isValidIdentTail(b rune) bool {
	return isValidIdentStart(b) || isNumeric(b) || unicode.IsDigit(b) || unicode.Is(unicode.Mn, b)
}

func isValidIdentStart(b rune) bool {
	return b == '_' || b == '$' || isAlpha(b) || (b >= utf8.RuneSelf && unicode.IsLetter(b))
}

func isAlpha(b rune) bool {
	if b >= 'a' && b <= 'z' {
		return true
	}
	if b >= 'A' && b <= 'Z' {
		return true
	}
	return false
}

func isWhiteSpace(b rune) bool {
	return b == ' ' || b == '\r' || b == '\n' || b == '\t' || b == '\f' || b == '\v'
}

func isNumeric(b rune) bool {
	if b >= '0' && b <= '9' {
		return true
	}
	return false
}

func isHexDigit(b rune) bool {
	return isNumeric(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

var lineEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`)

// Dump renders tokens one per line as kind:val:line:col.
func Dump(toks []*Token) string {
	var buf bytes.Buffer
	for _, tok := range toks {
		fmt.Fprintf(&buf, "%s:%s:%d:%d\n", tok.Kind, lineEscaper.Replace(tok.Val), tok.Pos.Line, tok.Pos.Col)
	}
	return buf.String()
}
