package parse

// Annotations are the //@ and /*@ */ comments carrying the specification
// language.

type AssertionAnnotation struct {
	base
	// Ghost variables introduced with Given, definitional identifiers and
	// *TermDecl groups.
	Ghosts    []Node    `field:"ghost"`
	Assertion Assertion `field:"assertion"`
	Mark      *Ident    `field:"mark"`
	Scopes    []*Ident  `field:"scope"`
}

func (*AssertionAnnotation) Kind() string { return "assertion_annotation" }

type InvariantAnnotation struct {
	base
	Assertion Assertion `field:"assertion"`
	Scopes    []*Ident  `field:"scope"`
}

func (*InvariantAnnotation) Kind() string { return "invariant_annotation" }

type WhichImpliesAnnotation struct {
	base
	Precondition  Assertion `field:"precondition"`
	PreScopes     []*Ident  `field:"scope"`
	Postcondition Assertion `field:"postcondition"`
	PostScopes    []*Ident  `field:"scope"`
}

func (*WhichImpliesAnnotation) Kind() string { return "which_implies_annotation" }

type DoAnnotation struct {
	base
	Scope *Ident
}

func (*DoAnnotation) Kind() string { return "do_annotation" }

type ExternTermAnnotation struct {
	base
	Decls []*TermDecl
}

func (*ExternTermAnnotation) Kind() string { return "extern_term_annotation" }

type ExternTypeAnnotation struct {
	base
	Decls []*ATypeDecl
}

func (*ExternTypeAnnotation) Kind() string { return "extern_type_annotation" }

type ImportCoqAnnotation struct {
	base
	// The raw module path text.
	Module string
}

func (*ImportCoqAnnotation) Kind() string { return "import_coq_annotation" }

type IncludeStrategyAnnotation struct {
	base
	Path *Literal
}

func (*IncludeStrategyAnnotation) Kind() string { return "include_strategy_annotation" }

type ExternAliasAnnotation struct {
	base
	Variable *Ident `field:"variable"`
	Type     AType  `field:"type"`
}

func (*ExternAliasAnnotation) Kind() string { return "extern_alias_annotation" }

type ExternFieldAnnotation struct {
	base
	Decls []*TermDecl
}

func (*ExternFieldAnnotation) Kind() string { return "extern_field_annotation" }

type ExternRecordAnnotation struct {
	base
	Record *Ident `field:"record"`
	// Definitional identifiers and *ATypeDecl groups.
	Parameters  []Node         `field:"parameter"`
	Constructor *Ident         `field:"constructor"`
	Fields      []*RecordField `field:"fields"`
}

func (*ExternRecordAnnotation) Kind() string { return "extern_record_annotation" }

func (*AssertionAnnotation) annotationNode()       {}
func (*InvariantAnnotation) annotationNode()       {}
func (*WhichImpliesAnnotation) annotationNode()    {}
func (*DoAnnotation) annotationNode()              {}
func (*ExternTermAnnotation) annotationNode()      {}
func (*ExternTypeAnnotation) annotationNode()      {}
func (*ImportCoqAnnotation) annotationNode()       {}
func (*IncludeStrategyAnnotation) annotationNode() {}
func (*ExternAliasAnnotation) annotationNode()     {}
func (*ExternFieldAnnotation) annotationNode()     {}
func (*ExternRecordAnnotation) annotationNode()    {}

// Specification is a function contract. A contract made of only a name
// refers to a contract declared elsewhere.
type Specification struct {
	base
	Name          *Ident               `field:"name"`
	Parent        *Ident               `field:"parent"`
	TypeVariables []*ImplicitATypeDecl `field:"type_variables"`
	// Definitional identifiers and *TermDecl groups.
	Variables     []Node    `field:"variables"`
	Precondition  Assertion `field:"precondition"`
	Postcondition Assertion `field:"postcondition"`
}

func (*Specification) Kind() string { return "specification" }

// VirtualArgument instantiates the contract of a callee at a call site.
type VirtualArgument struct {
	base
	Scope         *Ident           `field:"scope"`
	TermArguments []*TermArgument  `field:"term_arguments"`
	TypeArguments []*ATypeArgument `field:"type_argument"`
	Hints         []*Ident
}

func (*VirtualArgument) Kind() string { return "virtual_argument" }

type TermDecl struct {
	base
	Variables []*Ident   `field:"variable"`
	Type      *FullAType `field:"type"`
}

func (*TermDecl) Kind() string { return "term_decl" }

type ATypeDecl struct {
	base
	Variables []*Ident `field:"variable"`
	KindOf    KindExpr `field:"kind"`
}

func (*ATypeDecl) Kind() string { return "atype_decl" }

// ImplicitATypeDecl is a {T U :: kind} binder, the kind may be omitted.
type ImplicitATypeDecl struct {
	base
	Variables []*Ident `field:"variable"`
	KindOf    KindExpr `field:"kind"`
}

func (*ImplicitATypeDecl) Kind() string { return "implicit_atype_decl" }

type TermArgument struct {
	base
	Parameter *Ident    `field:"parameter"`
	Argument  Assertion `field:"argument"`
}

func (*TermArgument) Kind() string { return "term_argument" }

type ATypeArgument struct {
	base
	Parameter *Ident `field:"parameter"`
	Argument  AType  `field:"argument"`
}

func (*ATypeArgument) Kind() string { return "atype_argument" }

type RecordField struct {
	base
	Field *Ident     `field:"field"`
	Type  *FullAType `field:"type"`
}

func (*RecordField) Kind() string { return "record_field" }

// BracketExistDecl is a [x y : T] binder of a quantifier.
type BracketExistDecl struct {
	base
	Variables []*Ident   `field:"variable"`
	Type      *FullAType `field:"type"`
}

func (*BracketExistDecl) Kind() string { return "bracket_exist_decl" }

// Kinds

type StarKind struct {
	base
}

func (*StarKind) Kind() string { return "star_kind" }

type ArrowKind struct {
	base
	Left  KindExpr `field:"left"`
	Right KindExpr `field:"right"`
}

func (*ArrowKind) Kind() string { return "arrow_kind" }

type ParenKind struct {
	base
	Inner KindExpr
}

func (*ParenKind) Kind() string { return "parenthesized_kind" }

func (*StarKind) kindNode()  {}
func (*ArrowKind) kindNode() {}
func (*ParenKind) kindNode() {}

// Types

// BaseAType is one of the built in types Z, nat, bool, list, prod, Prop
// and Assertion.
type BaseAType struct {
	base
	Name string
}

var baseATypeKinds = map[string]string{
	"Z":         "z_atype",
	"nat":       "nat_atype",
	"bool":      "bool_atype",
	"list":      "list_atype",
	"prod":      "prod_atype",
	"Prop":      "prop_atype",
	"Assertion": "assertion_atype",
}

func (n *BaseAType) Kind() string { return baseATypeKinds[n.Name] }

type ArrowAType struct {
	base
	Left  AType `field:"left"`
	Right AType `field:"right"`
}

func (*ArrowAType) Kind() string { return "arrow_atype" }

type ApplyAType struct {
	base
	Left  AType `field:"left"`
	Right AType `field:"right"`
}

func (*ApplyAType) Kind() string { return "apply_atype" }

type ParenAType struct {
	base
	Inner AType
}

func (*ParenAType) Kind() string { return "parenthesized_atype" }

// FullAType is an atype with optional implicit binders, {T} -> list T.
type FullAType struct {
	base
	Parameters []*ImplicitATypeDecl `field:"parameter"`
	Body       AType                `field:"body"`
}

func (*FullAType) Kind() string { return "full_atype" }

func (*BaseAType) atypeNode()  {}
func (*ArrowAType) atypeNode() {}
func (*ApplyAType) atypeNode() {}
func (*ParenAType) atypeNode() {}

// Assertions

type UnaryAssertion struct {
	base
	Op       string    `field:"operator"`
	Argument Assertion `field:"argument"`
}

func (*UnaryAssertion) Kind() string { return "unary_assertion" }

type BinaryAssertion struct {
	base
	Left  Assertion `field:"left"`
	Op    string    `field:"operator"`
	Right Assertion `field:"right"`
}

func (*BinaryAssertion) Kind() string { return "binary_assertion" }

type CastAssertion struct {
	base
	Type  *TypeDescriptor `field:"type"`
	Value Assertion       `field:"value"`
}

func (*CastAssertion) Kind() string { return "cast_assertion" }

type PointerAssertion struct {
	base
	Op       string    `field:"operator"`
	Argument Assertion `field:"argument"`
}

func (*PointerAssertion) Kind() string { return "pointer_assertion" }

type SizeofAssertion struct {
	base
	Type *TypeDescriptor `field:"type"`
}

func (*SizeofAssertion) Kind() string { return "sizeof_assertion" }

type SubscriptAssertion struct {
	base
	Argument Assertion `field:"argument"`
	Index    Assertion `field:"index"`
}

func (*SubscriptAssertion) Kind() string { return "subscript_assertion" }

type CallAssertion struct {
	base
	Function  Assertion              `field:"function"`
	Arguments *AssertionArgumentList `field:"arguments"`
}

func (*CallAssertion) Kind() string { return "call_assertion" }

type AssertionArgumentList struct {
	base
	Arguments []Assertion
}

func (*AssertionArgumentList) Kind() string { return "assertion_argument_list" }

type FieldAssertion struct {
	base
	Argument Assertion `field:"argument"`
	Op       string    `field:"operator"`
	Field    *Ident    `field:"field"`
}

func (*FieldAssertion) Kind() string { return "field_assertion" }

type ParenAssertion struct {
	base
	Inner Assertion
}

func (*ParenAssertion) Kind() string { return "parenthesized_assertion" }

type QuantifiedAssertion struct {
	base
	Op string `field:"operator"`
	// Definitional identifiers, *TermDecl and *BracketExistDecl binders.
	Variables []Node    `field:"variables"`
	Argument  Assertion `field:"argument"`
}

func (*QuantifiedAssertion) Kind() string { return "quantified_assertion" }

// ConstAssertion is emp, __return, INT_MAX or INT_MIN.
type ConstAssertion struct {
	base
	Name string
}

var constAssertionKinds = map[string]string{
	"emp":      "emp_assertion",
	"__return": "underline_return_assertion",
	"INT_MAX":  "int_max_assertion",
	"INT_MIN":  "int_min_assertion",
}

func (n *ConstAssertion) Kind() string { return constAssertionKinds[n.Name] }

type TypedAssertion struct {
	base
	Argument Assertion `field:"argument"`
	Type     AType     `field:"type"`
}

func (*TypedAssertion) Kind() string { return "typed_assertion" }

// ShadowAssertion is #x, Inner is an identifier or another shadow.
type ShadowAssertion struct {
	base
	Inner Assertion
}

func (*ShadowAssertion) Kind() string { return "shadow_assertion" }

// OldmarkAssertion is e @ mark, the value of e at the program point
// labelled mark.
type OldmarkAssertion struct {
	base
	Argument Assertion `field:"argument"`
	Mark     *Ident    `field:"mark"`
}

func (*OldmarkAssertion) Kind() string { return "oldmark_assertion" }

type DataAtAssertion struct {
	base
	Address Assertion       `field:"address"`
	Type    *TypeDescriptor `field:"type"`
	Value   Assertion       `field:"value"`
}

func (*DataAtAssertion) Kind() string { return "data_at_assertion" }

type UndefDataAtAssertion struct {
	base
	Address Assertion       `field:"address"`
	Type    *TypeDescriptor `field:"type"`
}

func (*UndefDataAtAssertion) Kind() string { return "undef_data_at_assertion" }

type FieldAddressAssertion struct {
	base
	Pointer Assertion       `field:"pointer"`
	Type    *TypeDescriptor `field:"type"`
	Field   *Ident          `field:"field"`
}

func (*FieldAddressAssertion) Kind() string { return "field_address_assertion" }

func (*UnaryAssertion) assertionNode()        {}
func (*BinaryAssertion) assertionNode()       {}
func (*CastAssertion) assertionNode()         {}
func (*PointerAssertion) assertionNode()      {}
func (*SizeofAssertion) assertionNode()       {}
func (*SubscriptAssertion) assertionNode()    {}
func (*CallAssertion) assertionNode()         {}
func (*FieldAssertion) assertionNode()        {}
func (*ParenAssertion) assertionNode()        {}
func (*QuantifiedAssertion) assertionNode()   {}
func (*ConstAssertion) assertionNode()        {}
func (*TypedAssertion) assertionNode()        {}
func (*ShadowAssertion) assertionNode()       {}
func (*OldmarkAssertion) assertionNode()      {}
func (*DataAtAssertion) assertionNode()       {}
func (*UndefDataAtAssertion) assertionNode()  {}
func (*FieldAddressAssertion) assertionNode() {}
