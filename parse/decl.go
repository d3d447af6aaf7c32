package parse

import (
	"github.com/andrewchambers/ccspec/cpp"
)

func (p *parser) ident(kind string) *Ident {
	t := p.expect(cpp.IDENT)
	return &Ident{base: base{tokSpan(t)}, kind: kind, Name: t.Val}
}

// isWord reports whether t is spelled like an identifier. Keywords count,
// attribute names and macro names may reuse them.
func isWord(t *cpp.Token) bool {
	return t.Kind == cpp.IDENT || t.Kind >= cpp.EXTERN
}

// wordIdent accepts an identifier or any keyword spelled like one.
func (p *parser) wordIdent(kind string) *Ident {
	t := p.curt
	if !isWord(t) {
		p.error("expected identifier got %s", t.Kind)
	}
	p.next()
	return &Ident{base: base{tokSpan(t)}, kind: kind, Name: t.Val}
}

func (p *parser) literal(kind string) *Literal {
	t := p.curt
	p.next()
	return &Literal{base: base{tokSpan(t)}, kind: kind, Val: t.Val}
}

func (p *parser) keyword(kind string) *Keyword {
	t := p.curt
	p.next()
	return &Keyword{base: base{tokSpan(t)}, kind: kind, Val: t.Val}
}

func isTypeQualifier(k cpp.TokenKind) bool {
	switch k {
	case cpp.QUALIFIER, cpp.EXTENSION, cpp.ALIGNAS:
		return true
	}
	return false
}

func isSizeModifier(k cpp.TokenKind) bool {
	switch k {
	case cpp.SIGNED, cpp.UNSIGNED, cpp.LONG, cpp.SHORT:
		return true
	}
	return false
}

// isTypeKeyword reports whether k can only begin a type specifier.
func isTypeKeyword(k cpp.TokenKind) bool {
	switch k {
	case cpp.STRUCT, cpp.UNION, cpp.ENUM, cpp.PRIMITIVE:
		return true
	}
	return isSizeModifier(k)
}

// isModifierKeyword reports whether k begins a declaration modifier.
func isModifierKeyword(k cpp.TokenKind) bool {
	switch k {
	case cpp.EXTERN, cpp.STATIC, cpp.STORAGE, cpp.ATTRIBUTE, cpp.DECLSPEC, cpp.CALL_MODIFIER:
		return true
	}
	return isTypeQualifier(k)
}

// startsTypeName reports whether t begins a type descriptor.
func (p *parser) startsTypeName(t *cpp.Token) bool {
	switch {
	case isTypeKeyword(t.Kind), t.Kind == cpp.QUALIFIER, t.Kind == cpp.ALIGNAS:
		return true
	case t.Kind == cpp.IDENT:
		return p.types.isType(t.Val)
	}
	return false
}

// startsDeclaration reports whether curt can only begin a declaration.
func (p *parser) startsDeclaration() bool {
	t := p.curt
	switch {
	case t.Kind == cpp.EXTENSION:
		n := p.nextt
		return n.Kind != cpp.EXTENSION && (isTypeKeyword(n.Kind) || isModifierKeyword(n.Kind) ||
			n.Kind == cpp.IDENT && p.types.isType(n.Val))
	case isModifierKeyword(t.Kind), isTypeKeyword(t.Kind):
		return true
	case t.Kind == cpp.IDENT:
		return p.types.isType(t.Val) && p.nextt.Kind != ':'
	}
	return false
}

// ambiguousDeclaration reports an identifier the oracle does not know
// followed by something a declarator can start with.
func (p *parser) ambiguousDeclaration() bool {
	t := p.curt
	if t.Kind != cpp.IDENT || p.types.isOrdinary(t.Val) || p.types.isType(t.Val) {
		return false
	}
	switch p.nextt.Kind {
	case cpp.IDENT, '*', cpp.QUALIFIER, cpp.CALL_MODIFIER, cpp.ATTRIBUTE, cpp.BASED:
		return true
	}
	return false
}

// atDeclaratorEnd reports whether curt can follow a complete declarator.
func (p *parser) atDeclaratorEnd() bool {
	switch p.curt.Kind {
	case ';', ',', '=', '{', ')', ':', cpp.ATTRIBUTE, cpp.ASM, cpp.ANNOT_START:
		return true
	}
	return false
}

func (p *parser) parseBlockItem(ctx itemContext) Node {
	t := p.curt
	switch {
	case t.Kind == cpp.DIRECTIVE:
		return p.parsePreproc(ctx)
	case t.Kind == cpp.ANNOT_START:
		return p.parseAnnotationItem()
	case t.Kind == cpp.TYPEDEF, t.Kind == cpp.EXTENSION && p.nextt.Kind == cpp.TYPEDEF:
		return p.parseTypeDefinition()
	case t.Kind == cpp.EXTERN && p.nextt.Kind == cpp.STRING:
		return p.parseLinkageSpecification()
	case t.Kind == '[' && p.nextt.Kind == '[':
		return p.choose(conflictAttributedStatement,
			alternative{
				probe: func() bool {
					for p.curt.Kind == '[' && p.nextt.Kind == '[' {
						p.parseAttributeDeclaration()
					}
					return p.startsDeclaration() || p.ambiguousDeclaration()
				},
				parse: func() Node { return p.parseDeclaration(true) },
			},
			alternative{parse: func() Node { return p.parseStatement() }})
	case t.Kind == cpp.IDENT && p.nextt.Kind == ':':
		return p.parseStatement()
	case p.startsDeclaration():
		return p.parseDeclaration(true)
	case p.ambiguousDeclaration():
		id := conflictBlockItem
		if ctx == ctxTopLevel {
			id = conflictTopLevelItem
		}
		return p.choose(id,
			alternative{
				probe: func() bool {
					if p.parseSpecifiers().Type == nil {
						return false
					}
					p.parseFirstDeclarator()
					return p.atDeclaratorEnd()
				},
				parse: func() Node { return p.parseDeclaration(true) },
			},
			alternative{parse: func() Node { return p.parseStatement() }})
	}
	return p.parseStatement()
}

// Specifiers

func (p *parser) parseSpecifiers() Specifiers {
	var s Specifiers
	for {
		t := p.curt
		switch {
		case t.Kind == cpp.EXTERN, t.Kind == cpp.STATIC, t.Kind == cpp.STORAGE:
			s.Modifiers = append(s.Modifiers, p.keyword("storage_class_specifier"))
		case isTypeQualifier(t.Kind):
			s.Modifiers = append(s.Modifiers, p.parseTypeQualifier())
		case t.Kind == cpp.ATTRIBUTE:
			s.Modifiers = append(s.Modifiers, p.parseAttributeSpecifier())
		case t.Kind == '[' && p.nextt.Kind == '[':
			s.Modifiers = append(s.Modifiers, p.parseAttributeDeclaration())
		case t.Kind == cpp.DECLSPEC:
			s.Modifiers = append(s.Modifiers, p.parseDeclspec())
		case t.Kind == cpp.CALL_MODIFIER && s.Type == nil:
			s.Modifiers = append(s.Modifiers, p.keyword("ms_call_modifier"))
		case s.Type == nil && (isTypeKeyword(t.Kind) || t.Kind == cpp.IDENT):
			s.Type = p.parseTypeSpecifier()
		default:
			return s
		}
	}
}

func (p *parser) parseTypeQualifier() Node {
	if p.curt.Kind != cpp.ALIGNAS {
		return p.keyword("type_qualifier")
	}
	start := p.curt.Pos
	p.next()
	p.expect('(')
	n := &AlignasQualifier{}
	if p.startsTypeName(p.curt) {
		n.Argument = p.parseTypeDescriptor()
	} else {
		n.Argument = p.parseExpr()
	}
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseTypeQualifiers(out []Node) []Node {
	for isTypeQualifier(p.curt.Kind) {
		out = append(out, p.parseTypeQualifier())
	}
	return out
}

func (p *parser) parseTypeSpecifier() TypeSpecifier {
	t := p.curt
	switch t.Kind {
	case cpp.STRUCT, cpp.UNION:
		return p.parseStruct()
	case cpp.ENUM:
		return p.parseEnum()
	case cpp.SIGNED, cpp.UNSIGNED, cpp.LONG, cpp.SHORT:
		return p.parseSizedType()
	case cpp.PRIMITIVE:
		if isSizeModifier(p.nextt.Kind) {
			return p.parseSizedType()
		}
		p.next()
		return &PrimitiveType{base: base{tokSpan(t)}, Name: t.Val}
	case cpp.IDENT:
		if p.nextt.Kind == '(' && !p.types.isType(t.Val) {
			return p.choose(conflictDeclaratorMacroType,
				alternative{
					probe: func() bool {
						p.next()
						p.parseDeclarator(declPlain)
						return p.atDeclaratorEnd()
					},
					parse: func() Node { return p.ident("type_identifier") },
				},
				alternative{parse: func() Node { return p.parseMacroType() }}).(TypeSpecifier)
		}
		return p.ident("type_identifier")
	}
	p.error("expected type specifier got %s", t.Kind)
	return nil
}

func (p *parser) parseMacroType() *MacroTypeSpecifier {
	start := p.curt.Pos
	n := &MacroTypeSpecifier{Name: p.ident("identifier")}
	p.expect('(')
	n.Type = p.parseTypeDescriptor()
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

// parseSizedType reads signed, unsigned, long and short in any order mixed
// with at most one base type. An identifier is the base type only when the
// oracle knows it as one, otherwise it is left for the declarator.
func (p *parser) parseSizedType() TypeSpecifier {
	start := p.curt.Pos
	n := &SizedTypeSpecifier{}
	for {
		t := p.curt
		switch {
		case isSizeModifier(t.Kind):
			n.Modifiers = append(n.Modifiers, t.Val)
			p.next()
			continue
		case t.Kind == cpp.PRIMITIVE && n.Type == nil:
			p.next()
			n.Type = &PrimitiveType{base: base{tokSpan(t)}, Name: t.Val}
			continue
		case t.Kind == cpp.IDENT && n.Type == nil && p.types.isType(t.Val):
			n.Type = p.ident("type_identifier")
			continue
		case isTypeQualifier(t.Kind) && p.qualifiedSizeAhead():
			n.Qualifiers = p.parseTypeQualifiers(n.Qualifiers)
			continue
		}
		break
	}
	n.span = p.spanFrom(start)
	return n
}

// qualifiedSizeAhead reports whether the qualifiers at curt are followed by
// more of a sized type, as in unsigned const int.
func (p *parser) qualifiedSizeAhead() bool {
	i := 0
	for isTypeQualifier(p.peek(i).Kind) && p.peek(i).Kind != cpp.ALIGNAS {
		i++
	}
	t := p.peek(i)
	return isSizeModifier(t.Kind) || t.Kind == cpp.PRIMITIVE
}

func (p *parser) parseStruct() TypeSpecifier {
	start := p.curt.Pos
	n := &StructSpecifier{Union: p.curt.Kind == cpp.UNION}
	p.next()
	for {
		switch p.curt.Kind {
		case cpp.ATTRIBUTE:
			n.Attributes = append(n.Attributes, p.parseAttributeSpecifier())
			continue
		case cpp.DECLSPEC:
			n.Attributes = append(n.Attributes, p.parseDeclspec())
			continue
		}
		break
	}
	if p.curt.Kind == cpp.IDENT {
		n.Name = p.ident("type_identifier")
	}
	if p.curt.Kind == '{' {
		n.Body = p.parseFieldDeclarationList()
	} else if n.Name == nil {
		p.error("expected struct name or body got %s", p.curt.Kind)
	}
	if p.curt.Kind == cpp.ATTRIBUTE {
		n.Attributes = append(n.Attributes, p.parseAttributeSpecifier())
	}
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseFieldDeclarationList() *FieldDeclarationList {
	start := p.expect('{').Pos
	n := &FieldDeclarationList{Items: p.parseItems(ctxField)}
	p.expect('}')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseFieldDeclaration() Node {
	start := p.curt.Pos
	n := &FieldDeclaration{Specifiers: p.parseSpecifiers()}
	if n.Type == nil {
		p.error("expected field type got %s", p.curt.Kind)
	}
	for p.curt.Kind != ';' && p.curt.Kind != cpp.ATTRIBUTE {
		if p.curt.Kind != ':' {
			n.Declarators = append(n.Declarators, p.parseDeclarator(declField))
		}
		if p.curt.Kind == ':' {
			bstart := p.curt.Pos
			p.next()
			b := &BitfieldClause{Width: p.parseExpr()}
			b.span = p.spanFrom(bstart)
			n.Bitfields = append(n.Bitfields, b)
		}
		if p.curt.Kind != ',' {
			break
		}
		p.next()
	}
	if p.curt.Kind == cpp.ATTRIBUTE {
		n.Attribute = p.parseAttributeSpecifier()
	}
	p.expect(';')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseEnum() TypeSpecifier {
	start := p.expect(cpp.ENUM).Pos
	n := &EnumSpecifier{}
	if p.curt.Kind == cpp.IDENT {
		n.Name = p.ident("type_identifier")
		if p.curt.Kind == ':' && p.nextt.Kind == cpp.PRIMITIVE {
			p.next()
			t := p.curt
			p.next()
			n.UnderlyingType = &PrimitiveType{base: base{tokSpan(t)}, Name: t.Val}
		}
	}
	if p.curt.Kind == '{' {
		n.Body = p.parseEnumeratorList()
	} else if n.Name == nil {
		p.error("expected enum name or body got %s", p.curt.Kind)
	}
	if p.curt.Kind == cpp.ATTRIBUTE {
		n.Attribute = p.parseAttributeSpecifier()
	}
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseEnumeratorList() *EnumeratorList {
	start := p.expect('{').Pos
	n := &EnumeratorList{Items: p.parseItems(ctxEnum)}
	p.expect('}')
	n.span = p.spanFrom(start)
	return n
}

// parseEnumItem reads one enumerator and the comma after it.
func (p *parser) parseEnumItem() Node {
	if p.curt.Kind == cpp.DIRECTIVE {
		return p.parsePreproc(ctxEnum)
	}
	start := p.curt.Pos
	n := &Enumerator{Name: p.ident("identifier")}
	if p.curt.Kind == '=' {
		p.next()
		n.Value = p.parseExpr()
	}
	n.span = p.spanFrom(start)
	p.types.define(n.Name.Name, symOrdinary)
	switch p.curt.Kind {
	case ',':
		p.next()
	case '}', cpp.DIRECTIVE:
	default:
		p.error("expected ',' or '}' got %s", p.curt.Kind)
	}
	return n
}

// Declarations and definitions

// parseDeclaration reads a declaration, or a function definition when
// definitions are allowed and the first declarator is followed by a body.
func (p *parser) parseDeclaration(allowDefinition bool) Node {
	start := p.curt.Pos
	specs := p.parseSpecifiers()
	if specs.Type == nil {
		p.error("expected a type got %s", p.curt.Kind)
	}
	if p.curt.Kind == ';' {
		p.next()
		if len(specs.Modifiers) == 0 {
			return specs.Type
		}
		n := &Declaration{Specifiers: specs}
		n.span = p.spanFrom(start)
		return n
	}
	n := &Declaration{Specifiers: specs}
	for first := true; ; first = false {
		var callMod Node
		if p.curt.Kind == cpp.CALL_MODIFIER {
			callMod = p.keyword("ms_call_modifier")
		}
		var d Declarator
		if first {
			d = p.parseFirstDeclarator()
		} else {
			d = p.parseDeclarator(declPlain)
		}
		if first && allowDefinition && p.startsBody(d) {
			if callMod != nil {
				specs.Modifiers = append(specs.Modifiers, callMod)
			}
			return p.parseFunctionDefinition(start, specs, d)
		}
		if callMod != nil {
			n.Extras = append(n.Extras, callMod)
		}
		p.types.define(declaratorName(d), symOrdinary)
		var item Node = d
		for p.curt.Kind == cpp.ASM || p.curt.Kind == cpp.ATTRIBUTE {
			if p.curt.Kind == cpp.ASM {
				n.Extras = append(n.Extras, p.parseGnuAsm())
			} else {
				n.Extras = append(n.Extras, p.parseAttributeSpecifier())
			}
		}
		if p.curt.Kind == '=' {
			p.next()
			init := &InitDeclarator{Declarator: d, Value: p.parseInitializer()}
			init.span = Span{d.Span().Start, p.prev.End}
			item = init
		}
		n.Declarators = append(n.Declarators, item)
		if p.curt.Kind != ',' {
			break
		}
		p.next()
	}
	p.expect(';')
	n.span = p.spanFrom(start)
	return n
}

// startsBody reports whether a function body, possibly preceded by a
// specification or old style parameter declarations, follows declarator d.
func (p *parser) startsBody(d Declarator) bool {
	switch p.curt.Kind {
	case '{':
		return true
	case cpp.ANNOT_START:
		i := 1
		for k := p.peek(i).Kind; k != cpp.ANNOT_END && k != cpp.EOF; k = p.peek(i).Kind {
			i++
		}
		return p.peek(i+1).Kind == '{'
	}
	f := innermostFunction(d)
	return f != nil && isOldStyle(f.Parameters) && p.startsDeclaration()
}

func (p *parser) parseFunctionDefinition(start cpp.FilePos, specs Specifiers, d Declarator) *FunctionDefinition {
	n := &FunctionDefinition{Specifiers: specs, Declarator: d}
	p.types.define(declaratorName(d), symOrdinary)
	if p.curt.Kind == cpp.ANNOT_START {
		n.Specification = p.parseSpecification()
	}
	for p.curt.Kind != '{' {
		decl, ok := p.parseDeclaration(false).(*Declaration)
		if !ok {
			p.error("expected parameter declaration got %s", p.curt.Kind)
		}
		n.Declarations = append(n.Declarations, decl)
	}
	p.types.push()
	if f := innermostFunction(d); f != nil {
		for _, param := range f.Parameters.Parameters {
			switch param := param.(type) {
			case *ParameterDeclaration:
				if d, ok := param.Declarator.(Declarator); ok {
					p.types.define(declaratorName(d), symOrdinary)
				}
			case *Ident:
				p.types.define(param.Name, symOrdinary)
			}
		}
	}
	n.Body = p.parseCompoundStatement()
	p.types.pop()
	n.span = p.spanFrom(start)
	return n
}

// innermostFunction returns the function declarator closest to the
// declared name, the one whose parameters are in scope in a body.
func innermostFunction(d Declarator) *FunctionDeclarator {
	var found *FunctionDeclarator
	for d != nil {
		switch n := d.(type) {
		case *FunctionDeclarator:
			found = n
			d = n.Declarator
		case *PointerDeclarator:
			d = n.Declarator
		case *ParenthesizedDeclarator:
			d = n.Declarator
		case *AttributedDeclarator:
			d = n.Declarator
		case *ArrayDeclarator:
			d = n.Declarator
		default:
			return found
		}
	}
	return found
}

func declaratorName(d Declarator) string {
	for d != nil {
		switch n := d.(type) {
		case *Ident:
			return n.Name
		case *PrimitiveType:
			return n.Name
		case *FunctionDeclarator:
			d = n.Declarator
		case *PointerDeclarator:
			d = n.Declarator
		case *ParenthesizedDeclarator:
			d = n.Declarator
		case *AttributedDeclarator:
			d = n.Declarator
		case *ArrayDeclarator:
			d = n.Declarator
		default:
			return ""
		}
	}
	return ""
}

func isOldStyle(l *ParameterList) bool {
	if l == nil {
		return false
	}
	for _, param := range l.Parameters {
		if _, ok := param.(*Ident); !ok {
			return false
		}
	}
	return len(l.Parameters) > 0
}

// parseFirstDeclarator reads the first declarator of a declaration. An
// identifier list followed by declarations is an old style definition,
// tried only when the prototype reading cannot continue.
func (p *parser) parseFirstDeclarator() Declarator {
	if !p.oldStyleAhead() {
		return p.parseDeclarator(declPlain)
	}
	return p.choose(conflictOldStyleParams,
		alternative{
			probe: func() bool {
				p.parseDeclarator(declPlain)
				return !p.startsDeclaration()
			},
			parse: func() Node { return p.parseDeclarator(declPlain) },
		},
		alternative{parse: func() Node { return p.parseOldStyleDeclarator() }}).(Declarator)
}

// oldStyleAhead matches *name(a, b, c) followed by something a
// declaration can start with.
func (p *parser) oldStyleAhead() bool {
	i := 0
	for p.peek(i).Kind == '*' || p.peek(i).Kind == cpp.QUALIFIER {
		i++
	}
	if p.peek(i).Kind != cpp.IDENT || p.peek(i+1).Kind != '(' || p.peek(i+2).Kind != cpp.IDENT {
		return false
	}
	i += 2
	for {
		if p.peek(i).Kind != cpp.IDENT {
			return false
		}
		i++
		if p.peek(i).Kind != ',' {
			break
		}
		i++
	}
	if p.peek(i).Kind != ')' {
		return false
	}
	t := p.peek(i + 1)
	return isTypeKeyword(t.Kind) || isModifierKeyword(t.Kind) || t.Kind == cpp.IDENT
}

func (p *parser) parseOldStyleDeclarator() Declarator {
	start := p.curt.Pos
	if p.curt.Kind == '*' {
		p.next()
		n := &PointerDeclarator{}
		n.Modifiers = p.parseTypeQualifiers(nil)
		n.Declarator = p.parseOldStyleDeclarator()
		n.span = p.spanFrom(start)
		return n
	}
	n := &FunctionDeclarator{Declarator: p.ident("identifier")}
	pstart := p.expect('(').Pos
	params := &ParameterList{}
	for {
		params.Parameters = append(params.Parameters, p.ident("identifier"))
		if p.curt.Kind != ',' {
			break
		}
		p.next()
	}
	p.expect(')')
	params.span = p.spanFrom(pstart)
	n.Parameters = params
	n.span = p.spanFrom(start)
	return n
}

// Declarators

// declFlavor picks the identifier a declarator names: a variable, a
// struct field or a typedef.
type declFlavor int

const (
	declPlain declFlavor = iota
	declField
	declType
)

func (f declFlavor) identKind() string {
	switch f {
	case declField:
		return "field_identifier"
	case declType:
		return "type_identifier"
	}
	return "identifier"
}

func (p *parser) parseDeclarator(f declFlavor) Declarator {
	start := p.curt.Pos
	if p.curt.Kind == '*' || p.curt.Kind == cpp.BASED {
		n := &PointerDeclarator{}
		if p.curt.Kind == cpp.BASED {
			n.Based = p.parseBasedModifier()
		}
		p.expect('*')
		for p.curt.Kind == cpp.PTR_MODIFIER || isTypeQualifier(p.curt.Kind) {
			if p.curt.Kind == cpp.PTR_MODIFIER {
				n.Modifiers = append(n.Modifiers, p.keyword("ms_pointer_modifier"))
			} else {
				n.Modifiers = append(n.Modifiers, p.parseTypeQualifier())
			}
		}
		n.Declarator = p.parseDeclarator(f)
		n.span = p.spanFrom(start)
		return n
	}
	var d Declarator
	switch t := p.curt; {
	case t.Kind == cpp.IDENT:
		d = p.ident(f.identKind())
	case t.Kind == cpp.PRIMITIVE && f == declType:
		p.next()
		d = &PrimitiveType{base: base{tokSpan(t)}, Name: t.Val}
	case t.Kind == '(':
		p.next()
		n := &ParenthesizedDeclarator{}
		if p.curt.Kind == cpp.CALL_MODIFIER {
			n.CallModifier = p.keyword("ms_call_modifier")
		}
		n.Declarator = p.parseDeclarator(f)
		p.expect(')')
		n.span = p.spanFrom(start)
		d = n
	default:
		p.error("expected declarator got %s", t.Kind)
	}
	return p.parseDeclaratorTail(d, f)
}

func (p *parser) parseDeclaratorTail(d Declarator, f declFlavor) Declarator {
	start := d.Span().Start
	for {
		switch {
		case p.curt.Kind == '[' && p.nextt.Kind == '[':
			n := &AttributedDeclarator{Declarator: d}
			for p.curt.Kind == '[' && p.nextt.Kind == '[' {
				n.Attributes = append(n.Attributes, p.parseAttributeDeclaration())
			}
			n.span = p.spanFrom(start)
			d = n
		case p.curt.Kind == '[':
			p.next()
			n := &ArrayDeclarator{Declarator: d}
			n.Qualifiers, n.Static = p.parseArrayQualifiers()
			n.Star, n.Size = p.parseArraySize()
			p.expect(']')
			n.span = p.spanFrom(start)
			d = n
		case p.curt.Kind == '(':
			n := &FunctionDeclarator{Declarator: d, Parameters: p.parseParameterList()}
			if f == declPlain {
				if p.curt.Kind == cpp.ANNOT_START && !p.nextt.Is("where") {
					n.Specification = p.parseSpecification()
				}
				if p.curt.Kind == cpp.ASM {
					n.Asm = p.parseGnuAsm()
				}
				n.Attributes = p.parseFunctionAttributes()
			} else {
				for p.curt.Kind == cpp.ATTRIBUTE {
					n.Attributes = append(n.Attributes, p.parseAttributeSpecifier())
				}
			}
			n.span = p.spanFrom(start)
			d = n
		default:
			return d
		}
	}
}

// parseFunctionAttributes reads the attribute specifiers after a parameter
// list, and the macro annotations such as NOEXCEPT or LOCKS(m) that sit
// between a prototype and a function body.
func (p *parser) parseFunctionAttributes() []Node {
	var out []Node
	for {
		switch {
		case p.curt.Kind == cpp.ATTRIBUTE:
			out = append(out, p.parseAttributeSpecifier())
		case p.curt.Kind == '[' && p.nextt.Kind == '[':
			out = append(out, p.parseAttributeDeclaration())
		case p.curt.Kind == cpp.IDENT && p.macroAnnotationsAhead():
			id := p.ident("identifier")
			if p.curt.Kind != '(' {
				out = append(out, id)
				continue
			}
			call := &CallExpr{Function: id, Arguments: p.parseArgumentList()}
			call.span = p.spanFrom(id.span.Start)
			out = append(out, call)
		default:
			return out
		}
	}
}

// macroAnnotationsAhead reports whether curt starts a run of identifiers
// and identifier calls ending at a function body.
func (p *parser) macroAnnotationsAhead() bool {
	i := 0
	for p.peek(i).Kind == cpp.IDENT && !p.types.isType(p.peek(i).Val) {
		i++
		if p.peek(i).Kind != '(' {
			continue
		}
		depth := 0
		for {
			switch p.peek(i).Kind {
			case '(':
				depth++
			case ')':
				depth--
			case cpp.EOF, ';', '{', '}':
				return false
			}
			i++
			if depth == 0 {
				break
			}
		}
	}
	return i > 0 && p.peek(i).Kind == '{'
}

func (p *parser) parseArrayQualifiers() ([]Node, bool) {
	var quals []Node
	static := false
	for {
		switch {
		case p.curt.Kind == cpp.STATIC:
			static = true
			p.next()
		case isTypeQualifier(p.curt.Kind):
			quals = append(quals, p.parseTypeQualifier())
		default:
			return quals, static
		}
	}
}

func (p *parser) parseArraySize() (bool, Expr) {
	switch {
	case p.curt.Kind == '*' && p.nextt.Kind == ']':
		p.next()
		return true, nil
	case p.curt.Kind == ']':
		return false, nil
	}
	return false, p.parseExpr()
}

// parseAbstractDeclarator returns nil when no abstract declarator follows.
func (p *parser) parseAbstractDeclarator() AbstractDeclarator {
	start := p.curt.Pos
	if p.curt.Kind == '*' {
		p.next()
		n := &AbstractPointerDeclarator{}
		for p.curt.Kind == cpp.PTR_MODIFIER || isTypeQualifier(p.curt.Kind) {
			if p.curt.Kind == cpp.PTR_MODIFIER {
				n.Modifiers = append(n.Modifiers, p.keyword("ms_pointer_modifier"))
			} else {
				n.Modifiers = append(n.Modifiers, p.parseTypeQualifier())
			}
		}
		n.Declarator = p.parseAbstractDeclarator()
		n.span = p.spanFrom(start)
		return n
	}
	var d AbstractDeclarator
	if p.curt.Kind == '(' {
		switch p.nextt.Kind {
		case '*', '(', '[', cpp.CALL_MODIFIER:
			p.next()
			n := &AbstractParenthesizedDeclarator{}
			if p.curt.Kind == cpp.CALL_MODIFIER {
				n.CallModifier = p.keyword("ms_call_modifier")
			}
			n.Declarator = p.parseAbstractDeclarator()
			if n.Declarator == nil {
				p.error("expected abstract declarator got %s", p.curt.Kind)
			}
			p.expect(')')
			n.span = p.spanFrom(start)
			d = n
		}
	}
	for {
		switch p.curt.Kind {
		case '[':
			p.next()
			n := &AbstractArrayDeclarator{Declarator: d}
			n.Qualifiers, n.Static = p.parseArrayQualifiers()
			n.Star, n.Size = p.parseArraySize()
			p.expect(']')
			n.span = p.spanFrom(start)
			d = n
		case '(':
			n := &AbstractFunctionDeclarator{Declarator: d, Parameters: p.parseParameterList()}
			n.span = p.spanFrom(start)
			d = n
		default:
			return d
		}
	}
}

func (p *parser) parseParameterList() *ParameterList {
	start := p.expect('(').Pos
	n := &ParameterList{}
	if p.curt.Kind == '{' {
		n.Parameters = append(n.Parameters, p.parseCompoundStatement())
	}
	for p.curt.Kind != ')' && p.curt.Kind != '{' {
		if p.curt.Kind == cpp.ELLIPSIS {
			n.Parameters = append(n.Parameters, p.keyword("variadic_parameter"))
		} else {
			n.Parameters = append(n.Parameters, p.parseParameterDeclaration())
		}
		if p.curt.Kind != ',' {
			break
		}
		p.next()
	}
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseParameterDeclaration() *ParameterDeclaration {
	start := p.curt.Pos
	n := &ParameterDeclaration{Specifiers: p.parseSpecifiers()}
	if n.Type == nil {
		p.error("expected parameter type got %s", p.curt.Kind)
	}
	switch p.curt.Kind {
	case cpp.IDENT:
		n.Declarator = p.parseDeclarator(declPlain)
	case '*', '(', cpp.BASED:
		n.Declarator = p.choose(conflictFunctionDeclarator,
			alternative{
				probe: func() bool {
					p.parseDeclarator(declPlain)
					switch p.curt.Kind {
					case ',', ')', cpp.ATTRIBUTE:
						return true
					}
					return false
				},
				parse: func() Node { return p.parseDeclarator(declPlain) },
			},
			alternative{parse: func() Node { return p.parseAbstractDeclarator() }})
	case '[':
		n.Declarator = p.parseAbstractDeclarator()
	}
	for p.curt.Kind == cpp.ATTRIBUTE {
		n.Attributes = append(n.Attributes, p.parseAttributeSpecifier())
	}
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseTypeDescriptor() *TypeDescriptor {
	start := p.curt.Pos
	n := &TypeDescriptor{}
	n.Qualifiers = p.parseTypeQualifiers(nil)
	n.Type = p.parseTypeSpecifier()
	n.Qualifiers = p.parseTypeQualifiers(n.Qualifiers)
	n.Declarator = p.parseAbstractDeclarator()
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseTypeDefinition() Node {
	start := p.curt.Pos
	n := &TypeDefinition{}
	if p.curt.Kind == cpp.EXTENSION {
		p.next()
	}
	p.expect(cpp.TYPEDEF)
	for isTypeQualifier(p.curt.Kind) || p.curt.Kind == cpp.ATTRIBUTE {
		if p.curt.Kind == cpp.ATTRIBUTE {
			n.Qualifiers = append(n.Qualifiers, p.parseAttributeSpecifier())
		} else {
			n.Qualifiers = append(n.Qualifiers, p.parseTypeQualifier())
		}
	}
	n.Type = p.parseTypeSpecifier()
	n.Qualifiers = p.parseTypeQualifiers(n.Qualifiers)
	for {
		d := p.parseDeclarator(declType)
		p.types.define(declaratorName(d), symTypeName)
		n.Declarators = append(n.Declarators, d)
		if p.curt.Kind != ',' {
			break
		}
		p.next()
	}
	for p.curt.Kind == cpp.ATTRIBUTE {
		n.Attributes = append(n.Attributes, p.parseAttributeSpecifier())
	}
	p.expect(';')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseLinkageSpecification() Node {
	start := p.expect(cpp.EXTERN).Pos
	n := &LinkageSpecification{Value: p.literal("string_literal")}
	if p.curt.Kind == '{' {
		lstart := p.curt.Pos
		p.next()
		l := &DeclarationList{Items: p.parseItems(ctxBlock)}
		p.expect('}')
		l.span = p.spanFrom(lstart)
		n.Body = l
	} else {
		n.Body = p.parseDeclaration(true)
	}
	n.span = p.spanFrom(start)
	return n
}

// Initializers

func (p *parser) parseInitializer() Node {
	if p.curt.Kind == '{' {
		return p.parseInitializerList()
	}
	return p.parseExpr()
}

func (p *parser) parseInitializerList() *InitializerList {
	start := p.expect('{').Pos
	n := &InitializerList{}
	for p.curt.Kind != '}' {
		var item Node
		switch {
		case p.curt.Kind == '[', p.curt.Kind == '.':
			item = p.parseInitializerPair()
		case p.curt.Kind == cpp.IDENT && p.nextt.Kind == ':':
			pstart := p.curt.Pos
			pair := &InitializerPair{Designators: []Node{p.ident("field_identifier")}}
			p.next()
			pair.Value = p.parseInitializer()
			pair.span = p.spanFrom(pstart)
			item = pair
		default:
			item = p.parseInitializer()
		}
		n.Items = append(n.Items, item)
		if p.curt.Kind != ',' {
			break
		}
		p.next()
	}
	p.expect('}')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseInitializerPair() *InitializerPair {
	start := p.curt.Pos
	n := &InitializerPair{}
	for p.curt.Kind == '[' || p.curt.Kind == '.' {
		dstart := p.curt.Pos
		if p.curt.Kind == '.' {
			p.next()
			d := &FieldDesignator{Field: p.ident("field_identifier")}
			d.span = p.spanFrom(dstart)
			n.Designators = append(n.Designators, d)
			continue
		}
		p.next()
		x := p.parseExpr()
		if p.curt.Kind == cpp.ELLIPSIS {
			p.next()
			d := &SubscriptRangeDesignator{Start: x, End: p.parseExpr()}
			p.expect(']')
			d.span = p.spanFrom(dstart)
			n.Designators = append(n.Designators, d)
			continue
		}
		p.expect(']')
		d := &SubscriptDesignator{Index: x}
		d.span = p.spanFrom(dstart)
		n.Designators = append(n.Designators, d)
	}
	p.expect('=')
	n.Value = p.parseInitializer()
	n.span = p.spanFrom(start)
	return n
}
