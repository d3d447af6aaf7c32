package parse

import (
	"reflect"
	"sort"
	"strings"

	"github.com/andrewchambers/ccspec/cpp"
	"modernc.org/strutil"
)

var nodeType = reflect.TypeOf((*Node)(nil)).Elem()

// child is a node together with the field name it is stored under, the
// name is empty for unnamed children.
type child struct {
	field string
	node  Node
}

func collect(v reflect.Value, out []child) []child {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		fv := v.Field(i)
		if sf.Anonymous && fv.Kind() == reflect.Struct {
			out = collect(fv, out)
			continue
		}
		name := sf.Tag.Get("field")
		switch fv.Kind() {
		case reflect.Slice:
			for j := 0; j < fv.Len(); j++ {
				if n, ok := asNode(fv.Index(j)); ok {
					out = append(out, child{name, n})
				}
			}
		default:
			if n, ok := asNode(fv); ok {
				out = append(out, child{name, n})
			}
		}
	}
	return out
}

func asNode(v reflect.Value) (Node, bool) {
	switch v.Kind() {
	case reflect.Interface, reflect.Ptr:
		if v.IsNil() {
			return nil, false
		}
	default:
		return nil, false
	}
	if v.Kind() == reflect.Interface {
		v = v.Elem()
		if v.Kind() == reflect.Ptr && v.IsNil() {
			return nil, false
		}
	}
	if !v.Type().Implements(nodeType) {
		return nil, false
	}
	n, ok := v.Interface().(Node)
	return n, ok
}

func children(n Node) []child {
	v := reflect.ValueOf(n)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return nil
	}
	out := collect(v.Elem(), nil)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].node.Span().Start.Offset < out[j].node.Span().Start.Offset
	})
	return out
}

// Children returns the direct children of n in document order.
func Children(n Node) []Node {
	var ret []Node
	for _, c := range children(n) {
		ret = append(ret, c.node)
	}
	return ret
}

// Field returns the children of n stored under the grammar field name,
// in document order.
func Field(n Node, name string) []Node {
	var ret []Node
	for _, c := range children(n) {
		if c.field == name {
			ret = append(ret, c.node)
		}
	}
	return ret
}

// FieldText returns the text of a field that holds a token rather than a
// node, such as the operator of a binary expression, or the spelling of
// an identifier or literal child. It returns "" when there is no such field.
func FieldText(n Node, name string) string {
	v := reflect.ValueOf(n)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ""
	}
	if s, ok := textField(v.Elem(), name); ok {
		return s
	}
	for _, c := range Field(n, name) {
		switch c := c.(type) {
		case *Ident:
			return c.Name
		case *Literal:
			return c.Val
		case *PrimitiveType:
			return c.Name
		}
	}
	return ""
}

func textField(v reflect.Value, name string) (string, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			if s, ok := textField(v.Field(i), name); ok {
				return s, true
			}
			continue
		}
		if sf.Type.Kind() == reflect.String && sf.Tag.Get("field") == name {
			return v.Field(i).String(), true
		}
	}
	return "", false
}

// Walk calls fn for n and its descendants in document order, fn returning
// false skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range children(n) {
		Walk(c.node, fn)
	}
}

// FindAll returns every node under root, root included, of the given kind.
func FindAll(root Node, kind string) []Node {
	var ret []Node
	Walk(root, func(n Node) bool {
		if n.Kind() == kind {
			ret = append(ret, n)
		}
		return true
	})
	return ret
}

// Supertypes lists the member kinds of every supertype category.
var Supertypes = map[string][]string{
	"expression": {
		"binary_expression", "conditional_expression", "assignment_expression",
		"unary_expression", "update_expression", "cast_expression",
		"pointer_expression", "sizeof_expression", "alignof_expression",
		"offsetof_expression", "generic_expression", "subscript_expression",
		"call_expression", "field_expression", "compound_literal_expression",
		"identifier", "number_literal", "string_literal", "concatenated_string",
		"true", "false", "null", "char_literal", "parenthesized_expression",
		"gnu_asm_expression", "extension_expression",
	},
	"statement": {
		"case_statement", "attributed_statement", "labeled_statement",
		"compound_statement", "expression_statement", "if_statement",
		"switch_statement", "do_statement", "while_statement", "for_statement",
		"return_statement", "break_statement", "continue_statement",
		"goto_statement", "seh_try_statement", "seh_leave_statement",
	},
	"assertion": {
		"unary_assertion", "binary_assertion", "cast_assertion",
		"pointer_assertion", "sizeof_assertion", "subscript_assertion",
		"call_assertion", "field_assertion", "identifier", "number_literal",
		"parenthesized_assertion", "typed_assertion", "quantified_assertion",
		"emp_assertion", "underline_return_assertion", "int_max_assertion",
		"int_min_assertion", "oldmark_assertion", "shadow_assertion",
		"data_at_assertion", "undef_data_at_assertion", "field_address_assertion",
	},
	"annotation": {
		"assertion_annotation", "invariant_annotation", "which_implies_annotation",
		"do_annotation", "extern_term_annotation", "extern_type_annotation",
		"import_coq_annotation", "include_strategy_annotation",
		"extern_alias_annotation", "extern_field_annotation",
		"extern_record_annotation",
	},
	"kind": {"star_kind", "arrow_kind", "parenthesized_kind"},
	"atype": {
		"z_atype", "nat_atype", "bool_atype", "list_atype", "prod_atype",
		"prop_atype", "assertion_atype", "identifier", "arrow_atype",
		"apply_atype", "parenthesized_atype",
	},
	"type_specifier": {
		"struct_specifier", "union_specifier", "enum_specifier",
		"macro_type_specifier", "sized_type_specifier", "primitive_type",
		"type_identifier",
	},
	"_declarator": {
		"attributed_declarator", "pointer_declarator", "function_declarator",
		"array_declarator", "parenthesized_declarator", "identifier",
	},
	"_field_declarator": {
		"attributed_declarator", "pointer_declarator", "function_declarator",
		"array_declarator", "parenthesized_declarator", "field_identifier",
	},
	"_type_declarator": {
		"attributed_declarator", "pointer_declarator", "function_declarator",
		"array_declarator", "parenthesized_declarator", "type_identifier",
		"primitive_type",
	},
	"_abstract_declarator": {
		"abstract_pointer_declarator", "abstract_function_declarator",
		"abstract_array_declarator", "abstract_parenthesized_declarator",
	},
}

var supertypeSets = map[string]map[string]bool{}

func init() {
	for super, kinds := range Supertypes {
		set := make(map[string]bool, len(kinds))
		for _, k := range kinds {
			set[k] = true
		}
		supertypeSets[super] = set
	}
}

// Is reports whether n is a member of the supertype category super, one of
// the keys of Supertypes.
func Is(n Node, super string) bool {
	return n != nil && supertypeSets[super][n.Kind()]
}

func IsExpression(n Node) bool    { return Is(n, "expression") }
func IsStatement(n Node) bool     { return Is(n, "statement") }
func IsAssertion(n Node) bool     { return Is(n, "assertion") }
func IsAnnotation(n Node) bool    { return Is(n, "annotation") }
func IsKind(n Node) bool          { return Is(n, "kind") }
func IsAType(n Node) bool         { return Is(n, "atype") }
func IsTypeSpecifier(n Node) bool { return Is(n, "type_specifier") }

// IsDeclarator reports membership of any of the three concrete declarator
// families.
func IsDeclarator(n Node) bool {
	return Is(n, "_declarator") || Is(n, "_field_declarator") || Is(n, "_type_declarator")
}

func IsAbstractDeclarator(n Node) bool { return Is(n, "_abstract_declarator") }

// Sexp renders n as an S-expression with field names, in the style of
// tree-sitter test corpora. Token text is left out.
func Sexp(n Node) string {
	var sb strings.Builder
	writeSexp(&sb, n)
	return sb.String()
}

func writeSexp(sb *strings.Builder, n Node) {
	sb.WriteByte('(')
	sb.WriteString(n.Kind())
	for _, c := range children(n) {
		sb.WriteByte(' ')
		if c.field != "" {
			sb.WriteString(c.field)
			sb.WriteString(": ")
		}
		writeSexp(sb, c.node)
	}
	sb.WriteByte(')')
}

var printHooks = strutil.PrettyPrintHooks{
	reflect.TypeOf(cpp.FilePos{}): func(f strutil.Formatter, v interface{}, prefix, suffix string) {
		pos := v.(cpp.FilePos)
		if pos.Line == 0 {
			return
		}
		f.Format(prefix)
		f.Format("%d:%d", pos.Line, pos.Col)
		f.Format(suffix)
	},
	reflect.TypeOf(&cpp.Token{}): func(f strutil.Formatter, v interface{}, prefix, suffix string) {
		t := v.(*cpp.Token)
		f.Format(prefix)
		f.Format("%v: %s %q", t.Pos, t.Kind, t.Val)
		f.Format(suffix)
	},
}

// PrettyString returns a formatted representation of things produced by
// this package.
func PrettyString(v interface{}) string {
	return strutil.PrettyString(v, "", "", printHooks)
}
