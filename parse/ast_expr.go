package parse

type CommaExpr struct {
	base
	Left  Expr `field:"left"`
	Right Expr `field:"right"`
}

func (*CommaExpr) Kind() string { return "comma_expression" }

type ConditionalExpr struct {
	base
	Condition Expr `field:"condition"`
	// Nil for the GNU a ?: b form.
	Consequence Expr `field:"consequence"`
	Alternative Expr `field:"alternative"`
}

func (*ConditionalExpr) Kind() string { return "conditional_expression" }

type AssignExpr struct {
	base
	Left  Expr   `field:"left"`
	Op    string `field:"operator"`
	Right Expr   `field:"right"`
}

func (*AssignExpr) Kind() string { return "assignment_expression" }

// PointerExpr is a dereference or an address-of.
type PointerExpr struct {
	base
	Op       string `field:"operator"`
	Argument Expr   `field:"argument"`
}

func (*PointerExpr) Kind() string { return "pointer_expression" }

type UnaryExpr struct {
	base
	Op       string `field:"operator"`
	Argument Expr   `field:"argument"`
}

func (*UnaryExpr) Kind() string { return "unary_expression" }

type BinaryExpr struct {
	base
	Left  Expr   `field:"left"`
	Op    string `field:"operator"`
	Right Expr   `field:"right"`
}

func (*BinaryExpr) Kind() string { return "binary_expression" }

type UpdateExpr struct {
	base
	Prefix   bool
	Op       string `field:"operator"`
	Argument Expr   `field:"argument"`
}

func (*UpdateExpr) Kind() string { return "update_expression" }

type CastExpr struct {
	base
	Type  *TypeDescriptor `field:"type"`
	Value Expr            `field:"value"`
}

func (*CastExpr) Kind() string { return "cast_expression" }

// SizeofExpr has either a Value or a Type.
type SizeofExpr struct {
	base
	Value Expr            `field:"value"`
	Type  *TypeDescriptor `field:"type"`
}

func (*SizeofExpr) Kind() string { return "sizeof_expression" }

type AlignofExpr struct {
	base
	Type *TypeDescriptor `field:"type"`
}

func (*AlignofExpr) Kind() string { return "alignof_expression" }

type OffsetofExpr struct {
	base
	Type   *TypeDescriptor `field:"type"`
	Member *Ident          `field:"member"`
}

func (*OffsetofExpr) Kind() string { return "offsetof_expression" }

// GenericExpr is a _Generic selection. Items holds the controlling
// expression followed by type descriptor and expression pairs.
type GenericExpr struct {
	base
	Items []Node
}

func (*GenericExpr) Kind() string { return "generic_expression" }

type SubscriptExpr struct {
	base
	Argument Expr `field:"argument"`
	Index    Expr `field:"index"`
}

func (*SubscriptExpr) Kind() string { return "subscript_expression" }

type CallExpr struct {
	base
	Function         Expr             `field:"function"`
	Arguments        *ArgumentList    `field:"arguments"`
	VirtualArguments *VirtualArgument `field:"virtual_arguments"`
}

func (*CallExpr) Kind() string { return "call_expression" }

type ArgumentList struct {
	base
	// Expressions, or compound statements passed to macros.
	Arguments []Node
}

func (*ArgumentList) Kind() string { return "argument_list" }

type FieldExpr struct {
	base
	Argument Expr   `field:"argument"`
	Op       string `field:"operator"`
	Field    *Ident `field:"field"`
}

func (*FieldExpr) Kind() string { return "field_expression" }

type CompoundLiteralExpr struct {
	base
	Type  *TypeDescriptor  `field:"type"`
	Value *InitializerList `field:"value"`
}

func (*CompoundLiteralExpr) Kind() string { return "compound_literal_expression" }

type ParenExpr struct {
	base
	// An Expr, a *CommaExpr or a *CompoundStmt for statement expressions.
	Inner Node
}

func (*ParenExpr) Kind() string { return "parenthesized_expression" }

type ExtensionExpr struct {
	base
	Value Expr
}

func (*ExtensionExpr) Kind() string { return "extension_expression" }

// ConcatenatedString is a run of adjacent string literals, possibly mixed
// with identifiers naming string macros.
type ConcatenatedString struct {
	base
	Parts []Node
}

func (*ConcatenatedString) Kind() string { return "concatenated_string" }

type GnuAsmExpr struct {
	base
	Qualifiers     []*Keyword
	AssemblyCode   Expr               `field:"assembly_code"`
	OutputOperands *GnuAsmOperandList `field:"output_operands"`
	InputOperands  *GnuAsmOperandList `field:"input_operands"`
	Clobbers       *GnuAsmClobberList `field:"clobbers"`
	GotoLabels     *GnuAsmGotoList    `field:"goto_labels"`
}

func (*GnuAsmExpr) Kind() string { return "gnu_asm_expression" }

type GnuAsmOperandList struct {
	base
	Input    bool
	Operands []*GnuAsmOperand `field:"operand"`
}

func (n *GnuAsmOperandList) Kind() string {
	if n.Input {
		return "gnu_asm_input_operand_list"
	}
	return "gnu_asm_output_operand_list"
}

type GnuAsmOperand struct {
	base
	Input      bool
	Symbol     *Ident   `field:"symbol"`
	Constraint *Literal `field:"constraint"`
	Value      Expr     `field:"value"`
}

func (n *GnuAsmOperand) Kind() string {
	if n.Input {
		return "gnu_asm_input_operand"
	}
	return "gnu_asm_output_operand"
}

type GnuAsmClobberList struct {
	base
	Registers []Expr `field:"register"`
}

func (*GnuAsmClobberList) Kind() string { return "gnu_asm_clobber_list" }

type GnuAsmGotoList struct {
	base
	Labels []*Ident `field:"label"`
}

func (*GnuAsmGotoList) Kind() string { return "gnu_asm_goto_list" }

// Preprocessor conditions only.
type PreprocDefined struct {
	base
	Name *Ident
}

func (*PreprocDefined) Kind() string { return "preproc_defined" }

// Initializers

type InitializerList struct {
	base
	// Expressions, *InitializerPair and nested *InitializerList.
	Items []Node
}

func (*InitializerList) Kind() string { return "initializer_list" }

type InitializerPair struct {
	base
	// Designators, or a single field_identifier for the GNU f: v form.
	Designators []Node `field:"designator"`
	Value       Node   `field:"value"`
}

func (*InitializerPair) Kind() string { return "initializer_pair" }

type SubscriptDesignator struct {
	base
	Index Expr
}

func (*SubscriptDesignator) Kind() string { return "subscript_designator" }

type SubscriptRangeDesignator struct {
	base
	Start Expr `field:"start"`
	End   Expr `field:"end"`
}

func (*SubscriptRangeDesignator) Kind() string { return "subscript_range_designator" }

type FieldDesignator struct {
	base
	Field *Ident
}

func (*FieldDesignator) Kind() string { return "field_designator" }

func (*CommaExpr) exprNode()           {}
func (*ConditionalExpr) exprNode()     {}
func (*AssignExpr) exprNode()          {}
func (*PointerExpr) exprNode()         {}
func (*UnaryExpr) exprNode()           {}
func (*BinaryExpr) exprNode()          {}
func (*UpdateExpr) exprNode()          {}
func (*CastExpr) exprNode()            {}
func (*SizeofExpr) exprNode()          {}
func (*AlignofExpr) exprNode()         {}
func (*OffsetofExpr) exprNode()        {}
func (*GenericExpr) exprNode()         {}
func (*SubscriptExpr) exprNode()       {}
func (*CallExpr) exprNode()            {}
func (*FieldExpr) exprNode()           {}
func (*CompoundLiteralExpr) exprNode() {}
func (*ParenExpr) exprNode()           {}
func (*ExtensionExpr) exprNode()       {}
func (*ConcatenatedString) exprNode()  {}
func (*GnuAsmExpr) exprNode()          {}
func (*PreprocDefined) exprNode()      {}
