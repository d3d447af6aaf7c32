package parse

import "fmt"

// TieBreak is the rule deciding between the productions of an ambiguity
// class.
type TieBreak int

const (
	// A declarator is preferred over an expression in declaration contexts.
	PreferDeclarator TieBreak = iota + 1
	// A function declarator is preferred over an abstract declarator
	// followed by a call, and over the old style parameter list.
	PreferFunctionDeclarator
	// The most specific named production is preferred over a macro shaped
	// fallback such as macro_type_specifier.
	PreferSpecific
)

func (r TieBreak) String() string {
	switch r {
	case PreferDeclarator:
		return "prefer declarator"
	case PreferFunctionDeclarator:
		return "prefer function declarator"
	case PreferSpecific:
		return "prefer specific production"
	}
	return fmt.Sprintf("TieBreak(%d)", int(r))
}

// Conflict is one closed ambiguity class of the grammar. At a choice point
// of the class at most len(Productions) alternatives are ever attempted.
type Conflict struct {
	Productions []string
	Rule        TieBreak
}

type conflictID int

const (
	conflictTypeDeclarator conflictID = iota
	conflictDeclaratorMacroType
	conflictTypeExpression
	conflictSizedType
	conflictAttributedStatement
	conflictEnum
	conflictOldStyleParams
	conflictFunctionDeclarator
	conflictBlockItem
	conflictTopLevelItem
	conflictExtension
	conflictTypeAssertion
)

// Conflicts lists every ambiguity class with the rule resolving it.
var Conflicts = []Conflict{
	conflictTypeDeclarator:      {[]string{"type_specifier", "_declarator"}, PreferDeclarator},
	conflictDeclaratorMacroType: {[]string{"_declarator", "macro_type_specifier"}, PreferSpecific},
	conflictTypeExpression:      {[]string{"type_specifier", "expression"}, PreferDeclarator},
	conflictSizedType:           {[]string{"sized_type_specifier", "type_identifier"}, PreferDeclarator},
	conflictAttributedStatement: {[]string{"_declaration_modifiers", "attributed_statement"}, PreferDeclarator},
	conflictEnum:                {[]string{"enum_specifier"}, PreferSpecific},
	conflictOldStyleParams:      {[]string{"parameter_list", "_old_style_parameter_list"}, PreferFunctionDeclarator},
	conflictFunctionDeclarator:  {[]string{"function_declarator", "_function_declaration_declarator"}, PreferFunctionDeclarator},
	conflictBlockItem:           {[]string{"_block_item", "statement"}, PreferDeclarator},
	conflictTopLevelItem:        {[]string{"_top_level_item", "_top_level_statement"}, PreferDeclarator},
	conflictExtension:           {[]string{"type_qualifier", "extension_expression"}, PreferDeclarator},
	conflictTypeAssertion:       {[]string{"type_specifier", "assertion"}, PreferDeclarator},
}

// alternative is one production at an ambiguity point. probe runs
// speculatively and says whether to take it, parse then runs for real.
type alternative struct {
	probe func() bool
	parse func() Node
}

// probeKey names one probe run. A probe only depends on the tokens ahead
// and on the parser state captured here, so its outcome can be reused.
type probeKey struct {
	id        conflictID
	alt       int
	pos       int
	epoch     int
	types     uint64
	ppDepth   int
	attrDepth int
}

// choose resolves an ambiguity point. Alternatives are given in preference
// order, the last one needs no probe and is taken when every other probe
// fails. Probe outcomes are memoized, nested choice points inside a probe
// are decided once per position.
func (p *parser) choose(id conflictID, alts ...alternative) Node {
	if len(alts) > len(Conflicts[id].Productions) {
		panic(fmt.Sprintf("internal error: %d alternatives for %v", len(alts), Conflicts[id].Productions))
	}
	for i, alt := range alts[:len(alts)-1] {
		if p.probe(id, i, alt.probe) {
			return alt.parse()
		}
	}
	return alts[len(alts)-1].parse()
}

func (p *parser) probe(id conflictID, alt int, fn func() bool) bool {
	epoch, sum := p.types.state()
	k := probeKey{id, alt, p.pos, epoch, sum, p.ppDepth, p.attrDepth}
	if ok, seen := p.probed[k]; seen {
		return ok
	}
	p.probes++
	ok := p.lookahead(fn)
	p.probed[k] = ok
	return ok
}
