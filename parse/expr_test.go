package parse

import (
	"fmt"
	"testing"

	"github.com/andrewchambers/ccspec/cpp"
)

// render prints an expression or assertion fully parenthesized so
// grouping can be compared as text.
func render(n Node) string {
	switch n := n.(type) {
	case *Ident:
		return n.Name
	case *Literal:
		return n.Val
	case *ConstAssertion:
		return n.Name
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", render(n.Left), n.Op, render(n.Right))
	case *AssignExpr:
		return fmt.Sprintf("(%s %s %s)", render(n.Left), n.Op, render(n.Right))
	case *BinaryAssertion:
		return fmt.Sprintf("(%s %s %s)", render(n.Left), n.Op, render(n.Right))
	case *UnaryExpr:
		return fmt.Sprintf("(%s%s)", n.Op, render(n.Argument))
	case *PointerExpr:
		return fmt.Sprintf("(%s%s)", n.Op, render(n.Argument))
	case *UnaryAssertion:
		return fmt.Sprintf("(%s%s)", n.Op, render(n.Argument))
	case *PointerAssertion:
		return fmt.Sprintf("(%s%s)", n.Op, render(n.Argument))
	case *UpdateExpr:
		if n.Prefix {
			return fmt.Sprintf("(%s%s)", n.Op, render(n.Argument))
		}
		return fmt.Sprintf("(%s%s)", render(n.Argument), n.Op)
	case *CastExpr:
		return fmt.Sprintf("(cast %s)", render(n.Value))
	case *CastAssertion:
		return fmt.Sprintf("(cast %s)", render(n.Value))
	case *ConditionalExpr:
		if n.Consequence == nil {
			return fmt.Sprintf("(%s ?: %s)", render(n.Condition), render(n.Alternative))
		}
		return fmt.Sprintf("(%s ? %s : %s)", render(n.Condition), render(n.Consequence), render(n.Alternative))
	case *ParenExpr:
		return render(n.Inner)
	case *ParenAssertion:
		return render(n.Inner)
	case *TypedAssertion:
		return fmt.Sprintf("(%s : %s)", render(n.Argument), render(n.Type))
	case *BaseAType:
		return n.Name
	case *OldmarkAssertion:
		return fmt.Sprintf("(%s @ %s)", render(n.Argument), n.Mark.Name)
	case *QuantifiedAssertion:
		vars := ""
		for i, v := range n.Variables {
			if i > 0 {
				vars += " "
			}
			vars += render(v)
		}
		return fmt.Sprintf("(%s %s, %s)", n.Op, vars, render(n.Argument))
	}
	return n.Kind()
}

func returnedExpr(t *testing.T, src string) Expr {
	t.Helper()
	tu := mustParse(t, "int f() { return "+src+"; }")
	rets := FindAll(tu, "return_statement")
	if len(rets) != 1 {
		t.Fatalf("expected one return in %s", Sexp(tu))
	}
	return rets[0].(*ReturnStmt).Value
}

func assertedExpr(t *testing.T, src string) Assertion {
	t.Helper()
	tu := mustParse(t, "void f() {\n  //@ Assert "+src+"\n}\n")
	anns := FindAll(tu, "assertion_annotation")
	if len(anns) != 1 {
		t.Fatalf("expected one assertion in %s", Sexp(tu))
	}
	return anns[0].(*AssertionAnnotation).Assertion
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		src, expected string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a - b - c", "((a - b) - c)"},
		{"a || b && c", "(a || (b && c))"},
		{"a = b = c", "(a = (b = c))"},
		{"a += b", "(a += b)"},
		{"a ? b : c ? d : e", "(a ? b : (c ? d : e))"},
		{"a ?: b", "(a ?: b)"},
		{"-a * b", "((-a) * b)"},
		{"*p++", "(*(p++))"},
		{"++i + 1", "((++i) + 1)"},
		{"a << 1 + 2", "(a << (1 + 2))"},
		{"a & b == c", "(a & (b == c))"},
		{"a | b ^ c & d", "(a | (b ^ (c & d)))"},
		{"a < b == c > d", "((a < b) == (c > d))"},
		{"(int)a + b", "((cast a) + b)"},
		{"(a + b) * c", "((a + b) * c)"},
	}
	for _, tc := range tests {
		got := render(returnedExpr(t, tc.src))
		if got != tc.expected {
			t.Errorf("%s: got %s expected %s", tc.src, got, tc.expected)
		}
	}
}

func TestAssertionPrecedence(t *testing.T) {
	tests := []struct {
		src, expected string
	}{
		{"a => b => c", "((a => b) => c)"},
		{"a && b => c", "((a && b) => c)"},
		{"a => b || c", "(a => (b || c))"},
		{"a <=> b", "(a <=> b)"},
		{"x + 1 : Z", "((x + 1) : Z)"},
		{"a < b : Z", "(a < (b : Z))"},
		{"x @ pre + 1", "((x @ pre) + 1)"},
		{"x + y @ pre", "(x + (y @ pre))"},
		{"forall x, a => b", "(forall x, (a => b))"},
		{"-a * b", "((-a) * b)"},
		{"*p == 1", "((*p) == 1)"},
		{"emp * emp", "(emp * emp)"},
	}
	for _, tc := range tests {
		got := render(assertedExpr(t, tc.src))
		if got != tc.expected {
			t.Errorf("%s: got %s expected %s", tc.src, got, tc.expected)
		}
	}
}

func TestPrecedenceTables(t *testing.T) {
	levels := func(table map[cpp.TokenKind]Operator) map[string]int {
		m := make(map[string]int)
		for _, op := range table {
			m[op.Spelling] = op.Prec
		}
		return m
	}
	c := levels(ExpressionPrecedence)
	if !(c["*"] > c["+"] && c["+"] > c["<<"] && c["<<"] > c["<"] && c["<"] > c["=="] &&
		c["=="] > c["&"] && c["&"] > c["^"] && c["^"] > c["|"] && c["|"] > c["&&"] && c["&&"] > c["||"]) {
		t.Errorf("expression levels out of order: %v", c)
	}
	a := levels(AssertionPrecedence)
	if a["=>"] != PrecConnective || a["<=>"] != PrecConnective {
		t.Errorf("connectives at %d and %d", a["=>"], a["<=>"])
	}
	if a[":"] != PrecTyped || a["@"] != PrecOldmark {
		t.Errorf("typed at %d, old value at %d", a[":"], a["@"])
	}
	if !AssertionPrecedence[cpp.AT].Suffix || ExpressionPrecedence[cpp.COLON].Spelling != "" {
		t.Errorf("suffix operators misplaced")
	}
	if a["||"] <= a["=>"] || a["*"] <= a[":"] {
		t.Errorf("assertion levels out of order: %v", a)
	}
}

func TestCastOracle(t *testing.T) {
	tests := []struct {
		src   string
		types []string
		kind  string
	}{
		{"int f(int x) { return (T)x; }", nil, "cast_expression"},
		{"int f(int x) { return (T *)x; }", nil, "cast_expression"},
		{"int f(int x) { return (T)-x; }", nil, "binary_expression"},
		{"int f(int x) { return (T)-x; }", []string{"T"}, "cast_expression"},
		{"int f(int x, int T) { return (T)-x; }", []string{"T"}, "binary_expression"},
		{"int f(int x, int y) { return (y)(x); }", nil, "call_expression"},
		{"typedef int T; int f(int x) { return (T)+x; }", nil, "cast_expression"},
	}
	for _, tc := range tests {
		tu, err := Parse("test.c", []byte(tc.src), Config{TypeNames: tc.types})
		if err != nil {
			t.Fatalf("%s: %s", tc.src, err)
		}
		ret := FindAll(tu, "return_statement")[0].(*ReturnStmt)
		if got := ret.Value.Kind(); got != tc.kind {
			t.Errorf("%s with %v: got %s expected %s", tc.src, tc.types, Sexp(ret), tc.kind)
		}
	}
}

func TestSizeof(t *testing.T) {
	tests := []struct {
		src, expected string
	}{
		{"sizeof(int)", "(sizeof_expression type: (type_descriptor type: (primitive_type)))"},
		{"sizeof(int *)", "(sizeof_expression type: (type_descriptor type: (primitive_type) " +
			"declarator: (abstract_pointer_declarator)))"},
		{"sizeof x", "(sizeof_expression value: (identifier))"},
		{"sizeof(x) * 2", "(binary_expression left: (sizeof_expression value: " +
			"(parenthesized_expression (identifier))) right: (number_literal))"},
		{"sizeof(struct s)", "(sizeof_expression type: (type_descriptor type: " +
			"(struct_specifier name: (type_identifier))))"},
	}
	for _, tc := range tests {
		if got := Sexp(returnedExpr(t, tc.src)); got != tc.expected {
			t.Errorf("%s: got %s expected %s", tc.src, got, tc.expected)
		}
	}
}

func TestScopedTypeNames(t *testing.T) {
	src := `typedef int T;
void f(void) {
  int T;
  T * x;
}
void g(void) {
  T * y;
}
`
	tu := mustParse(t, src)
	fns := FindAll(tu, "function_definition")
	if len(fns) != 2 {
		t.Fatalf("got %s", Sexp(tu))
	}
	if len(FindAll(fns[0], "binary_expression")) != 1 {
		t.Errorf("shadowed typedef still declares: %s", Sexp(fns[0]))
	}
	if len(FindAll(fns[1], "pointer_declarator")) != 1 {
		t.Errorf("typedef not restored after block: %s", Sexp(fns[1]))
	}
}
