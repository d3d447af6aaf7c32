package parse

type CompoundStmt struct {
	base
	Items []Node
}

func (*CompoundStmt) Kind() string { return "compound_statement" }

type ExprStmt struct {
	base
	// Nil for the empty statement.
	X Expr
}

func (*ExprStmt) Kind() string { return "expression_statement" }

type IfStmt struct {
	base
	Condition   *ParenExpr  `field:"condition"`
	Consequence Stmt        `field:"consequence"`
	Alternative *ElseClause `field:"alternative"`
}

func (*IfStmt) Kind() string { return "if_statement" }

type ElseClause struct {
	base
	Body Stmt
}

func (*ElseClause) Kind() string { return "else_clause" }

type SwitchStmt struct {
	base
	Condition *ParenExpr    `field:"condition"`
	Body      *CompoundStmt `field:"body"`
}

func (*SwitchStmt) Kind() string { return "switch_statement" }

// CaseStmt is a case or default label together with every statement up to
// the next label, so fallthrough is visible in the tree.
type CaseStmt struct {
	base
	// Nil for default.
	Value Expr `field:"value"`
	Body  []Node
}

func (*CaseStmt) Kind() string { return "case_statement" }

type WhileStmt struct {
	base
	Condition *ParenExpr `field:"condition"`
	Body      Stmt       `field:"body"`
}

func (*WhileStmt) Kind() string { return "while_statement" }

type DoStmt struct {
	base
	Body      Stmt       `field:"body"`
	Condition *ParenExpr `field:"condition"`
}

func (*DoStmt) Kind() string { return "do_statement" }

type ForStmt struct {
	base
	// A *Declaration or an Expr.
	Initializer Node `field:"initializer"`
	Condition   Expr `field:"condition"`
	Update      Expr `field:"update"`
	Body        Stmt `field:"body"`
}

func (*ForStmt) Kind() string { return "for_statement" }

type ReturnStmt struct {
	base
	Value Expr
}

func (*ReturnStmt) Kind() string { return "return_statement" }

// JumpStmt is break, continue or __leave.
type JumpStmt struct {
	base
	kind string
}

func (n *JumpStmt) Kind() string { return n.kind }

type GotoStmt struct {
	base
	Label *Ident `field:"label"`
}

func (*GotoStmt) Kind() string { return "goto_statement" }

type LabeledStmt struct {
	base
	Label *Ident `field:"label"`
	// A Stmt or a *Declaration.
	Body Node
}

func (*LabeledStmt) Kind() string { return "labeled_statement" }

type AttributedStmt struct {
	base
	Attributes []*AttributeDeclaration
	Body       Stmt
}

func (*AttributedStmt) Kind() string { return "attributed_statement" }

type SehTryStmt struct {
	base
	Body *CompoundStmt `field:"body"`
	// *SehExceptClause or *SehFinallyClause.
	Handler Node
}

func (*SehTryStmt) Kind() string { return "seh_try_statement" }

type SehExceptClause struct {
	base
	Filter *ParenExpr    `field:"filter"`
	Body   *CompoundStmt `field:"body"`
}

func (*SehExceptClause) Kind() string { return "seh_except_clause" }

type SehFinallyClause struct {
	base
	Body *CompoundStmt `field:"body"`
}

func (*SehFinallyClause) Kind() string { return "seh_finally_clause" }

func (*CompoundStmt) stmtNode()   {}
func (*ExprStmt) stmtNode()       {}
func (*IfStmt) stmtNode()         {}
func (*SwitchStmt) stmtNode()     {}
func (*CaseStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()      {}
func (*DoStmt) stmtNode()         {}
func (*ForStmt) stmtNode()        {}
func (*ReturnStmt) stmtNode()     {}
func (*JumpStmt) stmtNode()       {}
func (*GotoStmt) stmtNode()       {}
func (*LabeledStmt) stmtNode()    {}
func (*AttributedStmt) stmtNode() {}
func (*SehTryStmt) stmtNode()     {}

// Preprocessor structure. Nothing is expanded, the nodes only record
// where directives are.

type PreprocInclude struct {
	base
	// A string literal, system_lib_string, identifier or call.
	Path Node `field:"path"`
}

func (*PreprocInclude) Kind() string { return "preproc_include" }

type PreprocDef struct {
	base
	Name  *Ident   `field:"name"`
	Value *Literal `field:"value"`
}

func (*PreprocDef) Kind() string { return "preproc_def" }

type PreprocFunctionDef struct {
	base
	Name       *Ident         `field:"name"`
	Parameters *PreprocParams `field:"parameters"`
	Value      *Literal       `field:"value"`
}

func (*PreprocFunctionDef) Kind() string { return "preproc_function_def" }

type PreprocParams struct {
	base
	// Identifiers, Variadic records a trailing "...".
	Params   []*Ident
	Variadic bool
}

func (*PreprocParams) Kind() string { return "preproc_params" }

// PreprocCall is any other directive with its raw argument text.
type PreprocCall struct {
	base
	Directive *Literal `field:"directive"`
	Argument  *Literal `field:"argument"`
}

func (*PreprocCall) Kind() string { return "preproc_call" }

type PreprocIf struct {
	base
	Condition Expr `field:"condition"`
	Items     []Node
	// *PreprocElse, *PreprocElif or *PreprocElifdef.
	Alternative Node `field:"alternative"`
}

func (*PreprocIf) Kind() string { return "preproc_if" }

// PreprocIfdef is #ifdef or #ifndef, Directive tells which.
type PreprocIfdef struct {
	base
	Directive   string
	Name        *Ident `field:"name"`
	Items       []Node
	Alternative Node `field:"alternative"`
}

func (*PreprocIfdef) Kind() string { return "preproc_ifdef" }

type PreprocElse struct {
	base
	Items []Node
}

func (*PreprocElse) Kind() string { return "preproc_else" }

type PreprocElif struct {
	base
	Condition   Expr `field:"condition"`
	Items       []Node
	Alternative Node `field:"alternative"`
}

func (*PreprocElif) Kind() string { return "preproc_elif" }

type PreprocElifdef struct {
	base
	Directive   string
	Name        *Ident `field:"name"`
	Items       []Node
	Alternative Node `field:"alternative"`
}

func (*PreprocElifdef) Kind() string { return "preproc_elifdef" }
