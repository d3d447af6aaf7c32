package parse

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/andrewchambers/ccspec/cpp"
)

func mustParse(t *testing.T, src string) *TranslationUnit {
	t.Helper()
	tu, err := Parse("test.c", []byte(src), Config{})
	if err != nil {
		t.Fatalf("parsing %q failed: %s", src, err)
	}
	return tu
}

func parseErrors(t *testing.T, src string, cfg Config) (*TranslationUnit, cpp.ErrorList) {
	t.Helper()
	tu, err := Parse("test.c", []byte(src), cfg)
	if tu == nil {
		t.Fatalf("no tree for %q", src)
	}
	if err == nil {
		return tu, nil
	}
	var errs cpp.ErrorList
	if !errors.As(err, &errs) {
		t.Fatalf("expected an ErrorList, got %T", err)
	}
	return tu, errs
}

func parseTestCase(t *testing.T, path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Parse(path, src, Config{})
	if err != nil {
		t.Fatal(err)
	}
}

func TestParser(t *testing.T) {
	info, err := os.ReadDir("parsetests")
	if err != nil {
		t.Fatal(err)
	}
	for i := range info {
		filename := info[i].Name()
		if !strings.HasSuffix(filename, ".c") {
			continue
		}
		parseTestCase(t, "parsetests/"+filename)
	}
}

func TestRecovery(t *testing.T) {
	tu, errs := parseErrors(t, "int x = ;\nint y;\n", Config{})
	if len(errs) != 1 || errs[0].Kind != cpp.SyntaxError {
		t.Fatalf("expected one syntax error, got %s", repr.String(errs))
	}
	if errs[0].Pos.Line != 1 || errs[0].Pos.Col != 9 {
		t.Errorf("error at %s expected test.c:1:9", errs[0].Pos)
	}
	if len(tu.Items) != 2 {
		t.Fatalf("expected 2 items got %d", len(tu.Items))
	}
	if tu.Items[0].Kind() != "ERROR" || tu.Items[1].Kind() != "declaration" {
		t.Errorf("got %s", Sexp(tu))
	}
	if text := tu.Items[0].(*ErrorNode).Text; text != "int x = ;" {
		t.Errorf("error node covers %q", text)
	}
}

func TestRecoveryInsideBlock(t *testing.T) {
	src := "void f() {\n  x = ) ;\n  y = 1;\n}\nint z;\n"
	tu, errs := parseErrors(t, src, Config{})
	if len(errs) != 1 {
		t.Fatalf("expected one error got %s", repr.String(errs))
	}
	expected := "(translation_unit (function_definition type: (primitive_type) " +
		"declarator: (function_declarator declarator: (identifier) parameters: (parameter_list)) " +
		"body: (compound_statement (ERROR) (expression_statement (assignment_expression " +
		"left: (identifier) right: (number_literal))))) " +
		"(declaration type: (primitive_type) declarator: (identifier)))"
	if got := Sexp(tu); got != expected {
		t.Errorf("got %s expected %s", got, expected)
	}
}

func TestUnbalancedBrace(t *testing.T) {
	tu, errs := parseErrors(t, "}\nint a;\n", Config{})
	if len(errs) != 1 {
		t.Fatalf("expected one error got %s", repr.String(errs))
	}
	if len(tu.Items) != 2 || tu.Items[1].Kind() != "declaration" {
		t.Errorf("got %s", Sexp(tu))
	}
}

func TestUnterminatedConditional(t *testing.T) {
	src := "#if A\nint x;\n"
	tu, errs := parseErrors(t, src, Config{})
	if len(errs) != 1 {
		t.Fatalf("expected one error got %s", repr.String(errs))
	}
	if errs[0].Kind != cpp.UnterminatedPreprocessorBlock {
		t.Errorf("got %s expected %s", errs[0].Kind, cpp.UnterminatedPreprocessorBlock)
	}
	if errs[0].Pos.Offset != len(src) {
		t.Errorf("reported at %d expected end of input %d", errs[0].Pos.Offset, len(src))
	}
	if !strings.Contains(errs[0].Error(), "test.c:1:1") {
		t.Errorf("error does not name the opening directive: %s", errs[0])
	}
	expected := "(translation_unit (preproc_if condition: (identifier) " +
		"(declaration type: (primitive_type) declarator: (identifier))))"
	if got := Sexp(tu); got != expected {
		t.Errorf("got %s expected %s", got, expected)
	}
}

func TestStrayEndif(t *testing.T) {
	tu, errs := parseErrors(t, "#endif\nint a;\n", Config{})
	if len(errs) != 1 || errs[0].Kind != cpp.SyntaxError {
		t.Fatalf("expected one syntax error got %s", repr.String(errs))
	}
	if len(tu.Items) != 2 || tu.Items[1].Kind() != "declaration" {
		t.Errorf("got %s", Sexp(tu))
	}
}

func TestLexErrorsReported(t *testing.T) {
	_, errs := parseErrors(t, "int a = 1;\nint ` b;\n", Config{})
	found := false
	for _, e := range errs {
		if e.Kind == cpp.LexError {
			found = true
		}
	}
	if !found {
		t.Errorf("no lex error in %s", repr.String(errs))
	}
}

func TestMaxErrors(t *testing.T) {
	src := "int = ;\nint = ;\nint = ;\nint ok;\n"
	tu, errs := parseErrors(t, src, Config{MaxErrors: 2})
	if len(errs) != 2 {
		t.Errorf("got %d errors expected 2", len(errs))
	}
	last := tu.Items[len(tu.Items)-1]
	if last.Kind() != "declaration" {
		t.Errorf("parsing stopped early: %s", Sexp(tu))
	}
	_, errs = parseErrors(t, src, Config{})
	if len(errs) != 3 {
		t.Errorf("got %d errors expected 3", len(errs))
	}
}

func TestDebugStack(t *testing.T) {
	_, errs := parseErrors(t, "int = ;", Config{Debug: true})
	if len(errs) != 1 {
		t.Fatalf("expected one error got %s", repr.String(errs))
	}
	if !strings.Contains(errs[0].Error(), "goroutine") {
		t.Errorf("expected a stack trace in %s", errs[0])
	}
}

func TestErrorsOrdered(t *testing.T) {
	_, errs := parseErrors(t, "int = ;\nint ` x;\nint = ;\n", Config{})
	for i := 1; i < len(errs); i++ {
		if errs[i].Pos.Offset < errs[i-1].Pos.Offset {
			t.Fatalf("errors out of order: %s", errs)
		}
	}
}
