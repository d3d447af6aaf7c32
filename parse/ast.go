package parse

import "github.com/andrewchambers/ccspec/cpp"

// Span is the source range of a node. End is exclusive.
type Span struct {
	Start cpp.FilePos
	End   cpp.FilePos
}

// Node is implemented by every tree node. Children are reached through
// the exported fields of the concrete node types, see Children and Field.
type Node interface {
	Kind() string
	Span() Span
}

type base struct {
	span Span
}

func (b *base) Span() Span { return b.span }

func (b *base) setSpan(s Span) { b.span = s }

type spanner interface {
	Node
	setSpan(Span)
}

// The supertype categories. Each is closed, the marker methods are
// unexported so only this package adds members.

type Expr interface {
	Node
	exprNode()
}

type Stmt interface {
	Node
	stmtNode()
}

type Assertion interface {
	Node
	assertionNode()
}

type Annotation interface {
	Node
	annotationNode()
}

// KindExpr classifies type level binders of the annotation language.
type KindExpr interface {
	Node
	kindNode()
}

// AType is a type of the annotation language.
type AType interface {
	Node
	atypeNode()
}

type TypeSpecifier interface {
	Node
	typeSpecifierNode()
}

// Declarator covers the plain, field and type declarator families.
type Declarator interface {
	Node
	declaratorNode()
}

type AbstractDeclarator interface {
	Node
	abstractDeclaratorNode()
}

// TranslationUnit is the root of every parse.
type TranslationUnit struct {
	base
	Items []Node
	// Every token of the input including the final EOF, their Trivia and
	// Val concatenated give back the source.
	Tokens []*cpp.Token
	src    []byte
}

func (*TranslationUnit) Kind() string { return "translation_unit" }

// Text returns the source text covered by n.
func (tu *TranslationUnit) Text(n Node) string {
	s := n.Span()
	return string(tu.src[s.Start.Offset:s.End.Offset])
}

// ErrorNode covers tokens skipped while recovering from a syntax error.
type ErrorNode struct {
	base
	Text string
}

func (*ErrorNode) Kind() string { return "ERROR" }

// Ident is an identifier. The one type serves every identifier alias,
// Kind is identifier, field_identifier, type_identifier,
// statement_identifier, mark_identifier, scope_identifier,
// spec_identifier or definitional_identifier.
type Ident struct {
	base
	kind string
	Name string
}

func (n *Ident) Kind() string { return n.kind }

func (*Ident) exprNode()          {}
func (*Ident) assertionNode()     {}
func (*Ident) atypeNode()         {}
func (*Ident) typeSpecifierNode() {}
func (*Ident) declaratorNode()    {}

// Literal keeps the exact spelling of number_literal, char_literal,
// string_literal, system_lib_string, true, false, null, preproc_arg and
// preproc_directive tokens.
type Literal struct {
	base
	kind string
	Val  string
}

func (n *Literal) Kind() string { return n.kind }

func (*Literal) exprNode()      {}
func (*Literal) assertionNode() {}

type PrimitiveType struct {
	base
	Name string
}

func (*PrimitiveType) Kind() string { return "primitive_type" }

func (*PrimitiveType) typeSpecifierNode() {}
func (*PrimitiveType) declaratorNode()    {}

// Keyword is a node made of one keyword: storage_class_specifier,
// type_qualifier, ms_call_modifier, ms_pointer_modifier,
// gnu_asm_qualifier and variadic_parameter.
type Keyword struct {
	base
	kind string
	Val  string
}

func (n *Keyword) Kind() string { return n.kind }

// Declarations

// Specifiers is the declaration specifier sequence shared by definitions,
// declarations, fields and parameters. Modifiers holds storage classes,
// qualifiers, attributes and calling conventions in source order.
type Specifiers struct {
	Modifiers []Node
	Type      TypeSpecifier `field:"type"`
}

type FunctionDefinition struct {
	base
	Specifiers
	Declarator    Declarator     `field:"declarator"`
	Specification *Specification `field:"specification"`
	// Parameter declarations of an old style definition.
	Declarations []*Declaration
	Body         *CompoundStmt `field:"body"`
}

func (*FunctionDefinition) Kind() string { return "function_definition" }

type Declaration struct {
	base
	Specifiers
	// Each is a Declarator or an *InitDeclarator.
	Declarators []Node `field:"declarator"`
	// Calling conventions and asm labels attached to the declarators.
	Extras []Node
}

func (*Declaration) Kind() string { return "declaration" }

type InitDeclarator struct {
	base
	Declarator Declarator `field:"declarator"`
	// An Expr or an *InitializerList.
	Value Node `field:"value"`
}

func (*InitDeclarator) Kind() string { return "init_declarator" }

type TypeDefinition struct {
	base
	Qualifiers  []Node
	Type        TypeSpecifier `field:"type"`
	Declarators []Declarator  `field:"declarator"`
	Attributes  []*AttributeSpecifier
}

func (*TypeDefinition) Kind() string { return "type_definition" }

type LinkageSpecification struct {
	base
	Value *Literal `field:"value"`
	Body  Node     `field:"body"`
}

func (*LinkageSpecification) Kind() string { return "linkage_specification" }

type DeclarationList struct {
	base
	Items []Node
}

func (*DeclarationList) Kind() string { return "declaration_list" }

type TypeDescriptor struct {
	base
	Qualifiers []Node
	Type       TypeSpecifier      `field:"type"`
	Declarator AbstractDeclarator `field:"declarator"`
}

func (*TypeDescriptor) Kind() string { return "type_descriptor" }

type AlignasQualifier struct {
	base
	// An Expr or a *TypeDescriptor.
	Argument Node
}

func (*AlignasQualifier) Kind() string { return "alignas_qualifier" }

// Type specifiers

// StructSpecifier is a struct_specifier or a union_specifier.
type StructSpecifier struct {
	base
	Union      bool
	Attributes []Node
	Name       *Ident                `field:"name"`
	Body       *FieldDeclarationList `field:"body"`
}

func (n *StructSpecifier) Kind() string {
	if n.Union {
		return "union_specifier"
	}
	return "struct_specifier"
}

func (*StructSpecifier) typeSpecifierNode() {}

type EnumSpecifier struct {
	base
	Name           *Ident          `field:"name"`
	UnderlyingType *PrimitiveType  `field:"underlying_type"`
	Body           *EnumeratorList `field:"body"`
	Attribute      *AttributeSpecifier
}

func (*EnumSpecifier) Kind() string { return "enum_specifier" }

func (*EnumSpecifier) typeSpecifierNode() {}

type MacroTypeSpecifier struct {
	base
	Name *Ident          `field:"name"`
	Type *TypeDescriptor `field:"type"`
}

func (*MacroTypeSpecifier) Kind() string { return "macro_type_specifier" }

func (*MacroTypeSpecifier) typeSpecifierNode() {}

type SizedTypeSpecifier struct {
	base
	// signed, unsigned, long and short in source order.
	Modifiers  []string
	Qualifiers []Node
	Type       TypeSpecifier `field:"type"`
}

func (*SizedTypeSpecifier) Kind() string { return "sized_type_specifier" }

func (*SizedTypeSpecifier) typeSpecifierNode() {}

type FieldDeclarationList struct {
	base
	Items []Node
}

func (*FieldDeclarationList) Kind() string { return "field_declaration_list" }

type FieldDeclaration struct {
	base
	Specifiers
	Declarators []Declarator `field:"declarator"`
	Bitfields   []*BitfieldClause
	Attribute   *AttributeSpecifier
}

func (*FieldDeclaration) Kind() string { return "field_declaration" }

type BitfieldClause struct {
	base
	Width Expr
}

func (*BitfieldClause) Kind() string { return "bitfield_clause" }

type EnumeratorList struct {
	base
	Items []Node
}

func (*EnumeratorList) Kind() string { return "enumerator_list" }

type Enumerator struct {
	base
	Name  *Ident `field:"name"`
	Value Expr   `field:"value"`
}

func (*Enumerator) Kind() string { return "enumerator" }

type ParameterList struct {
	base
	// *ParameterDeclaration, variadic_parameter keywords, identifiers of an
	// old style list, or a single *CompoundStmt for macro arguments.
	Parameters []Node
}

func (*ParameterList) Kind() string { return "parameter_list" }

type ParameterDeclaration struct {
	base
	Specifiers
	// A Declarator or an AbstractDeclarator.
	Declarator Node `field:"declarator"`
	Attributes []*AttributeSpecifier
}

func (*ParameterDeclaration) Kind() string { return "parameter_declaration" }

// Declarators

type AttributedDeclarator struct {
	base
	Declarator Declarator
	Attributes []*AttributeDeclaration
}

func (*AttributedDeclarator) Kind() string { return "attributed_declarator" }

func (*AttributedDeclarator) declaratorNode() {}

type PointerDeclarator struct {
	base
	Based *MsBasedModifier
	// ms_pointer_modifier keywords and type qualifiers.
	Modifiers  []Node
	Declarator Declarator `field:"declarator"`
}

func (*PointerDeclarator) Kind() string { return "pointer_declarator" }

func (*PointerDeclarator) declaratorNode() {}

type FunctionDeclarator struct {
	base
	Declarator    Declarator     `field:"declarator"`
	Parameters    *ParameterList `field:"parameters"`
	Specification *Specification `field:"specification"`
	Asm           *GnuAsmExpr
	// Attribute specifiers and macro annotations after the parameters.
	Attributes []Node
}

func (*FunctionDeclarator) Kind() string { return "function_declarator" }

func (*FunctionDeclarator) declaratorNode() {}

type ArrayDeclarator struct {
	base
	Declarator Declarator `field:"declarator"`
	Qualifiers []Node
	Static     bool
	// Star marks a [*] variable length array of unspecified size.
	Star bool
	Size Expr `field:"size"`
}

func (*ArrayDeclarator) Kind() string { return "array_declarator" }

func (*ArrayDeclarator) declaratorNode() {}

type ParenthesizedDeclarator struct {
	base
	CallModifier *Keyword
	Declarator   Declarator
}

func (*ParenthesizedDeclarator) Kind() string { return "parenthesized_declarator" }

func (*ParenthesizedDeclarator) declaratorNode() {}

type AbstractPointerDeclarator struct {
	base
	Modifiers  []Node
	Declarator AbstractDeclarator `field:"declarator"`
}

func (*AbstractPointerDeclarator) Kind() string { return "abstract_pointer_declarator" }

func (*AbstractPointerDeclarator) abstractDeclaratorNode() {}

type AbstractFunctionDeclarator struct {
	base
	Declarator AbstractDeclarator `field:"declarator"`
	Parameters *ParameterList     `field:"parameters"`
}

func (*AbstractFunctionDeclarator) Kind() string { return "abstract_function_declarator" }

func (*AbstractFunctionDeclarator) abstractDeclaratorNode() {}

type AbstractArrayDeclarator struct {
	base
	Declarator AbstractDeclarator `field:"declarator"`
	Qualifiers []Node
	Static     bool
	Star       bool
	Size       Expr `field:"size"`
}

func (*AbstractArrayDeclarator) Kind() string { return "abstract_array_declarator" }

func (*AbstractArrayDeclarator) abstractDeclaratorNode() {}

type AbstractParenthesizedDeclarator struct {
	base
	CallModifier *Keyword
	Declarator   AbstractDeclarator
}

func (*AbstractParenthesizedDeclarator) Kind() string {
	return "abstract_parenthesized_declarator"
}

func (*AbstractParenthesizedDeclarator) abstractDeclaratorNode() {}

// Attributes and platform modifiers

type AttributeSpecifier struct {
	base
	Arguments *ArgumentList
}

func (*AttributeSpecifier) Kind() string { return "attribute_specifier" }

type Attribute struct {
	base
	Prefix    *Ident `field:"prefix"`
	Name      *Ident `field:"name"`
	Arguments *ArgumentList
}

func (*Attribute) Kind() string { return "attribute" }

// AttributeDeclaration is a [[...]] list.
type AttributeDeclaration struct {
	base
	Attributes []*Attribute
}

func (*AttributeDeclaration) Kind() string { return "attribute_declaration" }

type MsDeclspecModifier struct {
	base
	Name *Ident
}

func (*MsDeclspecModifier) Kind() string { return "ms_declspec_modifier" }

type MsBasedModifier struct {
	base
	Arguments *ArgumentList
}

func (*MsBasedModifier) Kind() string { return "ms_based_modifier" }
