package parse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// FuzzParse checks that any input yields a tree without panicking and that
// the token stream still covers the source exactly.
func FuzzParse(f *testing.F) {
	for _, tc := range loadCorpus(f) {
		f.Add(tc.Input)
	}
	paths, _ := filepath.Glob("parsetests/*.c")
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			f.Fatal(err)
		}
		f.Add(string(src))
	}
	for _, src := range []string{
		"",
		"{",
		"int f(",
		"/*@",
		"//@ Assert",
		"#if\n",
		"int x = (int",
		"void f() { //@ forall , }",
		"struct { int",
		"((((((((",
		"# ",
		"#   \nint x;",
		"#define MAX(a, b) ((a) > (b) ? (a) : (b))\n",
		"void f(int (*p)(int (*p)(int (*p)(int (*p)(int)))));",
		"static M(M(M(M(M(x)))));",
	} {
		f.Add(src)
	}
	f.Fuzz(func(t *testing.T, src string) {
		tu, _ := Parse("fuzz.c", []byte(src), Config{MaxErrors: 10})
		if tu == nil {
			t.Fatalf("no tree for %q", src)
		}
		var sb strings.Builder
		for _, tok := range tu.Tokens {
			sb.WriteString(tok.Trivia)
			sb.WriteString(tok.Val)
		}
		if sb.String() != src {
			t.Fatalf("round trip of %q gave %q", src, sb.String())
		}
	})
}
