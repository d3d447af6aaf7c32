package parse

import "github.com/andrewchambers/ccspec/cpp"

// parseAttributeSpecifier reads __attribute__((...)). Attribute arguments
// may name keywords, __attribute__((const)) is common.
func (p *parser) parseAttributeSpecifier() *AttributeSpecifier {
	start := p.expect(cpp.ATTRIBUTE).Pos
	p.expect('(')
	p.attrDepth++
	n := &AttributeSpecifier{Arguments: p.parseArgumentList()}
	p.attrDepth--
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

// parseAttributeDeclaration reads a [[...]] list.
func (p *parser) parseAttributeDeclaration() *AttributeDeclaration {
	start := p.expect('[').Pos
	p.expect('[')
	n := &AttributeDeclaration{}
	for {
		n.Attributes = append(n.Attributes, p.parseAttribute())
		if p.curt.Kind != ',' {
			break
		}
		p.next()
	}
	p.expect(']')
	p.expect(']')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseAttribute() *Attribute {
	start := p.curt.Pos
	n := &Attribute{}
	name := p.wordIdent("identifier")
	if p.curt.Kind == cpp.COLONCOLON {
		p.next()
		n.Prefix = name
		name = p.wordIdent("identifier")
	}
	n.Name = name
	if p.curt.Kind == '(' {
		p.attrDepth++
		n.Arguments = p.parseArgumentList()
		p.attrDepth--
	}
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseDeclspec() *MsDeclspecModifier {
	start := p.expect(cpp.DECLSPEC).Pos
	p.expect('(')
	n := &MsDeclspecModifier{Name: p.wordIdent("identifier")}
	p.expect(')')
	n.span = p.spanFrom(start)
	return n
}

func (p *parser) parseBasedModifier() *MsBasedModifier {
	start := p.expect(cpp.BASED).Pos
	n := &MsBasedModifier{Arguments: p.parseArgumentList()}
	n.span = p.spanFrom(start)
	return n
}
