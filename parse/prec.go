package parse

import "github.com/andrewchambers/ccspec/cpp"

// Binding powers, loosest first. Both operator tables use the same scale.
const (
	PrecParenDeclarator = -10
	PrecAssignment      = -2
	PrecConditional     = -1
	PrecDefault         = 0
	PrecQuantifier      = 1
	PrecConnective      = 2
	PrecLogicalOr       = 3
	PrecLogicalAnd      = 4
	PrecInclusiveOr     = 5
	PrecExclusiveOr     = 6
	PrecBitwiseAnd      = 7
	PrecEqual           = 8
	PrecRelational      = 9
	PrecOffsetof        = 10
	PrecShift           = 11
	PrecTyped           = 12
	PrecAdd             = 13
	PrecMultiply        = 14
	PrecCast            = 15
	PrecSizeof          = 16
	PrecUnary           = 17
	PrecOldmark         = 18
	PrecCall            = 19
	PrecField           = 20
	PrecSubscript       = 21
)

type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
)

// Operator is an infix entry of a precedence table. A Suffix operator takes
// a right hand side that is not an operand of the same table, such as the
// type of a typed assertion.
type Operator struct {
	Spelling string
	Prec     int
	Assoc    Assoc
	Suffix   bool
}

func binop(s string, prec int) Operator { return Operator{Spelling: s, Prec: prec} }

var cBinops = map[cpp.TokenKind]Operator{
	cpp.LOR:  binop("||", PrecLogicalOr),
	cpp.LAND: binop("&&", PrecLogicalAnd),
	cpp.OR:   binop("|", PrecInclusiveOr),
	cpp.XOR:  binop("^", PrecExclusiveOr),
	cpp.AND:  binop("&", PrecBitwiseAnd),
	cpp.EQL:  binop("==", PrecEqual),
	cpp.NEQ:  binop("!=", PrecEqual),
	cpp.LSS:  binop("<", PrecRelational),
	cpp.GTR:  binop(">", PrecRelational),
	cpp.LEQ:  binop("<=", PrecRelational),
	cpp.GEQ:  binop(">=", PrecRelational),
	cpp.SHL:  binop("<<", PrecShift),
	cpp.SHR:  binop(">>", PrecShift),
	cpp.ADD:  binop("+", PrecAdd),
	cpp.SUB:  binop("-", PrecAdd),
	cpp.MUL:  binop("*", PrecMultiply),
	cpp.QUO:  binop("/", PrecMultiply),
	cpp.REM:  binop("%", PrecMultiply),
}

// ExpressionPrecedence is the binary operator table of C expressions and
// preprocessor conditions. Comma, assignment and the conditional operator
// sit below it and are parsed structurally.
var ExpressionPrecedence = cBinops

// AssertionPrecedence is the operator table of the assertion language: the
// C binary operators plus the logical connectives, the typed form and the
// old value mark.
var AssertionPrecedence = map[cpp.TokenKind]Operator{}

func init() {
	for k, op := range cBinops {
		AssertionPrecedence[k] = op
	}
	AssertionPrecedence[cpp.IMPLIES] = binop("=>", PrecConnective)
	AssertionPrecedence[cpp.IFF] = binop("<=>", PrecConnective)
	AssertionPrecedence[cpp.COLON] = Operator{Spelling: ":", Prec: PrecTyped, Suffix: true}
	AssertionPrecedence[cpp.AT] = Operator{Spelling: "@", Prec: PrecOldmark, Suffix: true}
}

// climber is one instantiation of the precedence climbing loop: a table and
// the callbacks building the operand and operator nodes.
type climber struct {
	table   map[cpp.TokenKind]Operator
	operand func() Node
	binary  func(left Node, op *cpp.Token, right Node) Node
	suffix  func(left Node, op *cpp.Token) Node
}

// climb is the precedence climbing algorithm. Operators binding looser than
// min are left for the caller.
func (p *parser) climb(c *climber, min int) Node {
	l := c.operand()
	for {
		t := p.curt
		op, ok := c.table[t.Kind]
		if !ok || op.Prec < min {
			break
		}
		p.next()
		if op.Suffix {
			l = c.suffix(l, t)
			continue
		}
		next := op.Prec + 1
		if op.Assoc == AssocRight {
			next = op.Prec
		}
		r := p.climb(c, next)
		l = c.binary(l, t, r)
	}
	return l
}
