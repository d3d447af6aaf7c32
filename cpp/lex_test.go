package cpp

import (
	"bufio"
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
)

func sourceToExpectFile(s string) string {
	return s[0:len(s)-2] + ".exp"
}

func lexTestCase(t *testing.T, cfile string, expectfile string) {
	src, err := os.ReadFile(cfile)
	if err != nil {
		t.Fatal(err)
	}
	ef, err := os.Open(expectfile)
	if err != nil {
		t.Fatal(err)
	}
	defer ef.Close()
	scanner := bufio.NewScanner(ef)
	toks, errs := Tokenize(cfile, src)
	if len(errs) != 0 {
		t.Errorf("Testfile %s failed because %s", cfile, errs)
		return
	}
	got := strings.Split(strings.TrimSuffix(Dump(toks), "\n"), "\n")
	for i, tokS := range got {
		expectedTokS := ""
		if scanner.Scan() {
			expectedTokS = scanner.Text()
		}
		if tokS != expectedTokS {
			if expectedTokS == "" {
				t.Errorf("Test failed %s - extra token %s", cfile, tokS)
			} else {
				t.Errorf("Test failed %s: token %d got %s expected %s ", cfile, i, tokS, expectedTokS)
			}
			return
		}
	}
	if scanner.Scan() {
		t.Errorf("Test failed %s - missing token %s", cfile, scanner.Text())
	}
}

func TestLexer(t *testing.T) {
	info, err := os.ReadDir("lextests")
	if err != nil {
		t.Fatal(err)
	}
	for i := range info {
		filename := info[i].Name()
		if !strings.HasSuffix(filename, ".c") {
			continue
		}
		expectPath := sourceToExpectFile(filename)
		lexTestCase(t, "lextests/"+filename, "lextests/"+expectPath)
	}
}

func kinds(toks []*Token) []TokenKind {
	var ret []TokenKind
	for _, tok := range toks {
		ret = append(ret, tok.Kind)
	}
	return ret
}

var kindTestCases = []struct {
	src      string
	expected []TokenKind
}{
	{"", []TokenKind{EOF}},
	{"a <<= b >>= c", []TokenKind{IDENT, SHL_ASSIGN, IDENT, SHR_ASSIGN, IDENT, EOF}},
	{"x ^= 1; y /= 2;", []TokenKind{IDENT, XOR_ASSIGN, INT_CONSTANT, SEMICOLON, IDENT, QUO_ASSIGN, INT_CONSTANT, SEMICOLON, EOF}},
	{"f(a, ...)", []TokenKind{IDENT, LPAREN, IDENT, COMMA, ELLIPSIS, RPAREN, EOF}},
	{"[[gnu::noreturn]]", []TokenKind{LBRACK, LBRACK, IDENT, COLONCOLON, QUALIFIER, RBRACK, RBRACK, EOF}},
	{"a => b", []TokenKind{IDENT, ASSIGN, GTR, IDENT, EOF}},
	{"//@ a => b <=> c\n", []TokenKind{ANNOT_START, IDENT, IMPLIES, IDENT, IFF, IDENT, ANNOT_END, EOF}},
	{"/*@ x @ pre @mark m := y */", []TokenKind{ANNOT_START, IDENT, AT, IDENT, MARK, IDENT, DEFINE_ASSIGN, IDENT, ANNOT_END, EOF}},
	{"forall emp", []TokenKind{IDENT, IDENT, EOF}},
	{"/*@ forall emp */ forall", []TokenKind{ANNOT_START, ANNOT_KEYWORD, ANNOT_KEYWORD, ANNOT_END, IDENT, EOF}},
	{"//@ Require emp", []TokenKind{ANNOT_START, ANNOT_KEYWORD, ANNOT_KEYWORD, ANNOT_END, EOF}},
	{"unsigned long int size_t", []TokenKind{UNSIGNED, LONG, PRIMITIVE, PRIMITIVE, EOF}},
	{"__attribute__((x)) __declspec(y) __cdecl __uptr", []TokenKind{ATTRIBUTE, LPAREN, LPAREN, IDENT, RPAREN, RPAREN, DECLSPEC, LPAREN, IDENT, RPAREN, CALL_MODIFIER, PTR_MODIFIER, EOF}},
	{"L'a' u8\"s\" U\"t\" u'c'", []TokenKind{CHAR_CONSTANT, STRING, STRING, CHAR_CONSTANT, EOF}},
	{"#ifdef X\n#else junk\n#endif", []TokenKind{DIRECTIVE, IDENT, END_DIRECTIVE, DIRECTIVE, PP_ARG, END_DIRECTIVE, DIRECTIVE, END_DIRECTIVE, EOF}},
	{"#pragma once\nint", []TokenKind{DIRECTIVE, PP_ARG, END_DIRECTIVE, PRIMITIVE, EOF}},
	{"#define A 1 \\\n + 2\nA", []TokenKind{DIRECTIVE, IDENT, PP_ARG, END_DIRECTIVE, IDENT, EOF}},
	{"#define F (x)\n", []TokenKind{DIRECTIVE, IDENT, PP_ARG, END_DIRECTIVE, EOF}},
	{"#define MAX(a, b) ((a) > (b) ? (a) : (b))\nint", []TokenKind{DIRECTIVE, IDENT, LPAREN, IDENT, COMMA, IDENT, RPAREN, PP_ARG, END_DIRECTIVE, PRIMITIVE, EOF}},
	{"#define V(...)\n", []TokenKind{DIRECTIVE, IDENT, LPAREN, ELLIPSIS, RPAREN, END_DIRECTIVE, EOF}},
	{"# ", []TokenKind{DIRECTIVE, END_DIRECTIVE, EOF}},
	{"#   \nx", []TokenKind{DIRECTIVE, END_DIRECTIVE, IDENT, EOF}},
	{"# 1 \"a.c\"\n", []TokenKind{DIRECTIVE, PP_ARG, END_DIRECTIVE, EOF}},
	{"a # b", []TokenKind{IDENT, HASH, IDENT, EOF}},
	{"x /* c */ y // d\nz", []TokenKind{IDENT, IDENT, IDENT, EOF}},
}

func TestTokenKinds(t *testing.T) {
	for _, tc := range kindTestCases {
		toks, errs := Tokenize("test.c", []byte(tc.src))
		if len(errs) != 0 {
			t.Errorf("lexing %q failed: %s", tc.src, errs)
			continue
		}
		got := kinds(toks)
		if repr.String(got) != repr.String(tc.expected) {
			t.Errorf("lexing %q got %v expected %v", tc.src, got, tc.expected)
		}
	}
}

func TestDirectiveText(t *testing.T) {
	toks, errs := Tokenize("test.c", []byte("  #  define  F(a,b)  a ## b  /* c */\n"))
	if len(errs) != 0 {
		t.Fatal(errs)
	}
	if toks[0].Kind != DIRECTIVE || toks[0].Val != "#  define" {
		t.Fatalf("bad directive token %s", repr.String(toks[0]))
	}
	var arg *Token
	for _, tok := range toks {
		if tok.Kind == PP_ARG {
			arg = tok
		}
	}
	if arg == nil || arg.Val != "a ## b" {
		t.Fatalf("bad macro body %s", repr.String(toks))
	}
}

var roundTripSources = []string{
	"",
	"int main(void) {\n\treturn 0;\n}\n",
	"a \\\n b /* x */ c // y\r\n d",
	"#include \"x.h\"\n#if A\n  int x;\n#endif /* A */\n",
	"void f(int n)\n//@ Require n > 0 Ensure __return == n\n{\n}\n",
	"/*@ Extern Coq (f : Z -> Z)\n  (g : nat) */\nint y;",
	"char *s = L\"a\\\"b\" \"c\";\n",
	"x = 'a' + '\\n';",
	"weird ` char",
	"/* never closed",
	"\"never closed\nx",
	"# ",
	"#\t\n#define MAX(a, b) a\n",
}

func TestRoundTrip(t *testing.T) {
	for _, src := range roundTripSources {
		toks, _ := Tokenize("test.c", []byte(src))
		var sb strings.Builder
		for _, tok := range toks {
			sb.WriteString(tok.Trivia)
			sb.WriteString(tok.Val)
		}
		if sb.String() != src {
			t.Errorf("round trip of %q gave %q", src, sb.String())
		}
	}
}

func TestPositions(t *testing.T) {
	src := "a\n  bb\n"
	toks, _ := Tokenize("pos.c", []byte(src))
	expected := []FilePos{
		{File: "pos.c", Line: 1, Col: 1, Offset: 0},
		{File: "pos.c", Line: 2, Col: 3, Offset: 4},
		{File: "pos.c", Line: 3, Col: 1, Offset: 7},
	}
	for i, pos := range expected {
		if toks[i].Pos != pos {
			t.Errorf("token %d at %s expected %s", i, repr.String(toks[i].Pos), repr.String(pos))
		}
	}
	if toks[1].End.Offset != 6 || toks[1].End.Col != 5 {
		t.Errorf("bad end position %s", repr.String(toks[1].End))
	}
}

func TestUnterminatedComment(t *testing.T) {
	src := "int x; /* open\nmore"
	toks, errs := Tokenize("c.c", []byte(src))
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %s", repr.String(errs))
	}
	if errs[0].Kind != LexError {
		t.Errorf("expected a lex error, got %s", errs[0].Kind)
	}
	if errs[0].Pos.Offset != len(src) {
		t.Errorf("error at %d expected end of input %d", errs[0].Pos.Offset, len(src))
	}
	if !strings.Contains(errs[0].Error(), "c.c:1:8") {
		t.Errorf("error should name the opening position: %s", errs[0])
	}
	if toks[len(toks)-1].Kind != EOF {
		t.Errorf("stream does not end in EOF")
	}
}

var lexErrorTestCases = []struct {
	src    string
	offset int
}{
	{"\"abc\nx", 0},
	{"x 'a", 2},
	{"int ` y", 4},
	{"/*@ emp", 7},
	{"12abc", 2},
}

func TestUnterminatedAnnotation(t *testing.T) {
	_, errs := Tokenize("a.c", []byte("int x;\n  /*@ Assert emp\n"))
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %s", repr.String(errs))
	}
	if !strings.Contains(errs[0].Error(), "opened at a.c:2:3") {
		t.Errorf("error should name the opening position: %s", errs[0])
	}
}

func TestLexErrors(t *testing.T) {
	for _, tc := range lexErrorTestCases {
		_, errs := Tokenize("e.c", []byte(tc.src))
		if len(errs) != 1 {
			t.Errorf("lexing %q expected one error, got %v", tc.src, errs)
			continue
		}
		if errs[0].Pos.Offset != tc.offset {
			t.Errorf("lexing %q error at %d expected %d", tc.src, errs[0].Pos.Offset, tc.offset)
		}
	}
}

func TestNextAfterEOF(t *testing.T) {
	lx := Lex("n.c", []byte("x"))
	for i := 0; i < 4; i++ {
		tok, err := lx.Next()
		if err != nil {
			t.Fatal(err)
		}
		if i > 0 && tok.Kind != EOF {
			t.Fatalf("expected EOF, got %s", tok.Kind)
		}
	}
}

func FuzzLex(f *testing.F) {
	for _, src := range roundTripSources {
		f.Add(src)
	}
	f.Fuzz(func(t *testing.T, src string) {
		toks, _ := Tokenize("fuzz.c", []byte(src))
		var sb strings.Builder
		for _, tok := range toks {
			sb.WriteString(tok.Trivia)
			sb.WriteString(tok.Val)
		}
		if sb.String() != src {
			t.Fatalf("round trip of %q gave %q", src, sb.String())
		}
	})
}
