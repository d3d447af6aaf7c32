package parse

import (
	"strings"
	"testing"

	"github.com/alecthomas/repr"
)

func TestTreeAccess(t *testing.T) {
	src := "int f(int a) { return a + 1; }\n"
	tu := mustParse(t, src)
	fn := tu.Items[0]
	if fn.Kind() != "function_definition" {
		t.Fatalf("got %s", Sexp(tu))
	}
	body := Field(fn, "body")
	if len(body) != 1 || body[0].Kind() != "compound_statement" {
		t.Fatalf("body field gave %s", repr.String(body))
	}
	if got := tu.Text(body[0]); got != "{ return a + 1; }" {
		t.Errorf("body text %q", got)
	}
	decl := Field(fn, "declarator")[0]
	if got := FieldText(decl, "declarator"); got != "f" {
		t.Errorf("function name %q", got)
	}
	if got := FieldText(fn, "type"); got != "int" {
		t.Errorf("return type %q", got)
	}
	bin := FindAll(tu, "binary_expression")
	if len(bin) != 1 {
		t.Fatalf("found %d binary expressions", len(bin))
	}
	if got := FieldText(bin[0], "operator"); got != "+" {
		t.Errorf("operator %q", got)
	}
	if got := FieldText(bin[0], "right"); got != "1" {
		t.Errorf("right operand %q", got)
	}
	if FieldText(bin[0], "nosuchfield") != "" {
		t.Error("text for a missing field")
	}
	kids := Children(bin[0])
	if len(kids) != 2 || tu.Text(kids[0]) != "a" {
		t.Errorf("children %s", repr.String(kids))
	}
	if !IsExpression(bin[0]) || IsStatement(bin[0]) {
		t.Error("binary_expression misclassified")
	}
	if !IsStatement(body[0]) || !IsDeclarator(decl) || !IsTypeSpecifier(Field(fn, "type")[0]) {
		t.Error("node misclassified")
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	tu := mustParse(t, "int a = 1 + 2; int b = 3;\n")
	var kinds []string
	Walk(tu, func(n Node) bool {
		kinds = append(kinds, n.Kind())
		return n.Kind() != "init_declarator"
	})
	expected := "translation_unit declaration primitive_type init_declarator " +
		"declaration primitive_type init_declarator"
	if got := strings.Join(kinds, " "); got != expected {
		t.Errorf("got %s expected %s", got, expected)
	}
}

func TestAnnotationClassification(t *testing.T) {
	src := `/*@ Extern Coq (f : Z -> Z) */
/*@ Extern Coq (U :: * => *) */
void g(int *p) {
  //@ Assert (int) f(1) == #x @ pre
  /*@ Inv emp */
  while (1) {}
}
`
	tu := mustParse(t, src)
	var annots, asserts, atypes, kinds int
	Walk(tu, func(n Node) bool {
		if IsAnnotation(n) {
			annots++
		}
		if IsAssertion(n) && n.Kind() != "identifier" && n.Kind() != "number_literal" {
			asserts++
		}
		if IsAType(n) && n.Kind() != "identifier" {
			atypes++
		}
		if IsKind(n) {
			kinds++
		}
		return true
	})
	if annots != 4 {
		t.Errorf("got %d annotations expected 4: %s", annots, Sexp(tu))
	}
	if atypes != 3 {
		t.Errorf("got %d atypes expected 3", atypes)
	}
	if kinds != 3 {
		t.Errorf("got %d kinds expected 3", kinds)
	}
	if asserts == 0 {
		t.Error("no assertions classified")
	}
	if len(FindAll(tu, "extern_type_annotation")) != 1 || len(FindAll(tu, "extern_term_annotation")) != 1 {
		t.Errorf("extern annotations: %s", Sexp(tu))
	}
	if len(FindAll(tu, "shadow_assertion")) != 1 || len(FindAll(tu, "cast_assertion")) != 1 {
		t.Errorf("assertion forms: %s", Sexp(tu))
	}
}

func TestSupertypesKnown(t *testing.T) {
	for _, super := range []string{
		"expression", "statement", "assertion", "annotation", "kind", "atype",
		"type_specifier", "_declarator", "_field_declarator", "_type_declarator",
		"_abstract_declarator",
	} {
		if len(Supertypes[super]) == 0 {
			t.Errorf("no members for %s", super)
		}
	}
	if Is(nil, "expression") {
		t.Error("nil node is an expression")
	}
}

func TestTokensRoundTrip(t *testing.T) {
	for _, tc := range loadCorpus(t) {
		tu := mustParse(t, tc.Input)
		var sb strings.Builder
		for _, tok := range tu.Tokens {
			sb.WriteString(tok.Trivia)
			sb.WriteString(tok.Val)
		}
		if sb.String() != tc.Input {
			t.Errorf("%s: round trip gave %q", tc.Name, sb.String())
		}
	}
}

// Every node lies within its parent and siblings come in source order.
func TestSpansNest(t *testing.T) {
	var check func(t *testing.T, n Node)
	check = func(t *testing.T, n Node) {
		ps := n.Span()
		last := -1
		for _, c := range Children(n) {
			cs := c.Span()
			if cs.Start.Offset < ps.Start.Offset || cs.End.Offset > ps.End.Offset {
				t.Fatalf("%s %d-%d escapes %s %d-%d", c.Kind(), cs.Start.Offset, cs.End.Offset,
					n.Kind(), ps.Start.Offset, ps.End.Offset)
			}
			if cs.Start.Offset < last {
				t.Fatalf("%s out of order under %s", c.Kind(), n.Kind())
			}
			last = cs.Start.Offset
			check(t, c)
		}
	}
	for _, tc := range loadCorpus(t) {
		t.Run(tc.Name, func(t *testing.T) {
			tu, err := Parse("test.c", []byte(tc.Input), Config{TypeNames: tc.TypeNames})
			if err != nil {
				t.Fatal(err)
			}
			check(t, tu)
		})
	}
}

func TestConflictTable(t *testing.T) {
	if len(Conflicts) != 12 {
		t.Errorf("got %d conflict classes", len(Conflicts))
	}
	for i, c := range Conflicts {
		if len(c.Productions) == 0 || len(c.Productions) > 2 {
			t.Errorf("class %d has %d productions", i, len(c.Productions))
		}
		if strings.HasPrefix(c.Rule.String(), "TieBreak(") {
			t.Errorf("class %d has no rule", i)
		}
	}
	if TieBreak(99).String() != "TieBreak(99)" {
		t.Errorf("got %s", TieBreak(99))
	}
}

func TestChooseBounded(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("extra alternative accepted")
		}
	}()
	p := &parser{}
	alt := alternative{probe: func() bool { return true }, parse: func() Node { return nil }}
	p.choose(conflictEnum, alt, alt)
}

func TestPrettyString(t *testing.T) {
	tu := mustParse(t, "int x;\n")
	if s := PrettyString(tu.Items[0]); !strings.Contains(s, "Declarators") {
		t.Errorf("got %s", s)
	}
	if s := PrettyString(tu.Tokens[0]); !strings.Contains(s, "test.c:1:1") || !strings.Contains(s, `"int"`) {
		t.Errorf("got %s", s)
	}
}
