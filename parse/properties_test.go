package parse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/andrewchambers/ccspec/cpp"
)

func TestDeterministic(t *testing.T) {
	paths, err := filepath.Glob("parsetests/*.c")
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		a, _ := Parse(path, src, Config{})
		b, _ := Parse(path, src, Config{})
		if Sexp(a) != Sexp(b) {
			t.Errorf("%s parsed differently the second time", path)
		}
	}
}

func TestEmptyInput(t *testing.T) {
	tu, err := Parse("empty.c", nil, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tu.Items) != 0 {
		t.Errorf("got %s", Sexp(tu))
	}
}

func TestUnterminatedCommentOnce(t *testing.T) {
	src := "int x;\n/* never closed\n"
	_, errs := parseErrors(t, src, Config{})
	if len(errs) != 1 || errs[0].Kind != cpp.LexError {
		t.Fatalf("got %s", repr.String(errs))
	}
	if errs[0].Pos.Offset != len(src) {
		t.Errorf("reported at %d expected %d", errs[0].Pos.Offset, len(src))
	}
}

func TestSwitchFallthrough(t *testing.T) {
	tu := mustParse(t, "void s(int v) { switch(v){case 1: f(); case 2: g(); break; default: h();} }")
	sw := FindAll(tu, "switch_statement")
	if len(sw) != 1 {
		t.Fatalf("got %s", Sexp(tu))
	}
	cases := sw[0].(*SwitchStmt).Body.Items
	if len(cases) != 3 {
		t.Fatalf("got %d groups: %s", len(cases), Sexp(sw[0]))
	}
	sizes := []int{1, 2, 1}
	for i, c := range cases {
		cs, ok := c.(*CaseStmt)
		if !ok {
			t.Fatalf("item %d is %s", i, c.Kind())
		}
		if len(cs.Body) != sizes[i] {
			t.Errorf("group %d has %d statements expected %d", i, len(cs.Body), sizes[i])
		}
	}
	if cases[2].(*CaseStmt).Value != nil {
		t.Error("default carries a value")
	}
}

func TestInvariantScopes(t *testing.T) {
	tu := mustParse(t, "void w(int x) {\n  //@ Inv x >= 0 by foo\n  while (x) x--;\n}\n")
	inv := FindAll(tu, "invariant_annotation")
	if len(inv) != 1 {
		t.Fatalf("got %s", Sexp(tu))
	}
	n := inv[0].(*InvariantAnnotation)
	if render(n.Assertion) != "(x >= 0)" {
		t.Errorf("assertion %s", render(n.Assertion))
	}
	if len(n.Scopes) != 1 || n.Scopes[0].Name != "foo" {
		t.Errorf("scopes %s", repr.String(n.Scopes))
	}
}

func TestSpecificationParts(t *testing.T) {
	tu := mustParse(t, "//@ f <= base With {T} (n : nat) Require n > 0 Ensure __return >= n\n")
	if len(tu.Items) != 1 {
		t.Fatalf("got %s", Sexp(tu))
	}
	s, ok := tu.Items[0].(*Specification)
	if !ok {
		t.Fatalf("got %s", Sexp(tu))
	}
	if s.Name.Name != "f" || s.Parent.Name != "base" {
		t.Errorf("name %s parent %s", s.Name.Name, s.Parent.Name)
	}
	if len(s.TypeVariables) != 1 || s.TypeVariables[0].Variables[0].Name != "T" {
		t.Errorf("type variables %s", repr.String(s.TypeVariables))
	}
	if len(s.Variables) != 1 || tu.Text(s.Variables[0]) != "(n : nat)" {
		t.Errorf("variables %s", Sexp(s))
	}
	if render(s.Precondition) != "(n > 0)" || render(s.Postcondition) != "(__return >= n)" {
		t.Errorf("got %s and %s", render(s.Precondition), render(s.Postcondition))
	}
}

func TestQuantifierScope(t *testing.T) {
	got := render(assertedExpr(t, "forall x, x > 0 => x >= 1"))
	if got != "(forall x, ((x > 0) => (x >= 1)))" {
		t.Errorf("got %s", got)
	}
}

func TestAttributeOnDeclaration(t *testing.T) {
	tu := mustParse(t, "__attribute__((noreturn)) void f(void);\n")
	d, ok := tu.Items[0].(*Declaration)
	if !ok || len(d.Modifiers) != 1 || d.Modifiers[0].Kind() != "attribute_specifier" {
		t.Fatalf("got %s", Sexp(tu))
	}
	if len(FindAll(Field(d, "declarator")[0], "attribute_specifier")) != 0 {
		t.Errorf("attribute attached to the declarator: %s", Sexp(tu))
	}
}

func TestParenthesizedName(t *testing.T) {
	tu := mustParse(t, "int g(x);\n")
	expected := "(declaration type: (primitive_type) declarator: (function_declarator declarator: (identifier) " +
		"parameters: (parameter_list (parameter_declaration type: (type_identifier)))))"
	if got := Sexp(tu.Items[0]); got != expected {
		t.Errorf("got %s expected %s", got, expected)
	}
	params := FindAll(tu, "parameter_declaration")
	if len(params) != 1 || tu.Text(params[0]) != "x" {
		t.Errorf("parameters %s", Sexp(tu))
	}

	tu = mustParse(t, "typedef int T;\nT (x);\n")
	d, ok := tu.Items[1].(*Declaration)
	if !ok || d.Type.Kind() != "type_identifier" {
		t.Fatalf("got %s", Sexp(tu))
	}
	if len(FindAll(d, "parenthesized_declarator")) != 1 || len(FindAll(d, "function_declarator")) != 0 {
		t.Errorf("T (x) should declare x: %s", Sexp(d))
	}

	tu = mustParse(t, "void f(int T) { T (x); }\n")
	if len(FindAll(tu, "call_expression")) != 1 {
		t.Errorf("a variable followed by (x) should be a call: %s", Sexp(tu))
	}
}

// probeCount parses src and reports how many lookaheads ran.
func probeCount(t *testing.T, src string) int {
	t.Helper()
	toks, lexErrs := cpp.Tokenize("nest.c", []byte(src))
	if len(lexErrs) != 0 {
		t.Fatal(lexErrs)
	}
	p := newParser("nest.c", []byte(src), toks, Config{})
	p.parseTranslationUnit()
	return p.probes
}

func TestNestedDeclaratorsLinear(t *testing.T) {
	nested := map[string]func(n int) string{
		"parameters": func(n int) string {
			return "void f(" + strings.Repeat("int (*p)(", n) + "int" + strings.Repeat(")", n) + ");\n"
		},
		"macro types": func(n int) string {
			return "static " + strings.Repeat("M(", n) + "x" + strings.Repeat(")", n) + ";\n"
		},
		"sizeof": func(n int) string {
			return "int s = " + strings.Repeat("sizeof(int[", n) + "1" + strings.Repeat("])", n) + ";\n"
		},
	}
	for name, gen := range nested {
		small := probeCount(t, gen(16))
		large := probeCount(t, gen(64))
		if large > 4*small+8 || large > 8*64 {
			t.Errorf("%s: %d lookaheads at depth 16, %d at depth 64", name, small, large)
		}
	}
	tu := mustParse(t, "void f(int (*p)(int (*q)(int)));\n")
	if n := len(FindAll(tu, "function_declarator")); n != 3 {
		t.Errorf("got %d function declarators in %s", n, Sexp(tu))
	}
}

func TestMacroAnnotationArguments(t *testing.T) {
	tu := mustParse(t, "void f(struct s *s) LOCKS(&m) REQUIRES(s->mu, \"w\") { }\n")
	fd := FindAll(tu, "function_declarator")[0].(*FunctionDeclarator)
	if len(fd.Attributes) != 2 {
		t.Fatalf("got %s", Sexp(fd))
	}
	for _, kind := range []string{"pointer_expression", "field_expression", "string_literal"} {
		if len(FindAll(fd, kind)) != 1 {
			t.Errorf("no %s in %s", kind, Sexp(fd))
		}
	}
	if len(FindAll(tu, "ERROR")) != 0 {
		t.Errorf("got %s", Sexp(tu))
	}
}

func TestDirectiveLines(t *testing.T) {
	tu := mustParse(t, "# \n#define MAX(a, b) ((a) > (b) ? (a) : (b))\n#\nint x;\n")
	if len(FindAll(tu, "preproc_function_def")) != 1 || len(FindAll(tu, "preproc_params")) != 1 {
		t.Errorf("got %s", Sexp(tu))
	}
	if len(FindAll(tu, "declaration")) != 1 {
		t.Errorf("got %s", Sexp(tu))
	}
}
