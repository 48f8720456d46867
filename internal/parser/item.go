package parser

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/source"
	"strata/internal/token"
)

// atItemStart reports whether the next tokens begin a declaration.
func (p *Parser) atItemStart() bool {
	switch p.peek().Kind {
	case token.KwStruct, token.KwClass, token.KwProtocol, token.KwExtension,
		token.KwFunc, token.KwInit, token.KwDeinit, token.KwSubscript,
		token.KwVar, token.KwLet, token.At:
		return true
	default:
		return false
	}
}

func (p *Parser) parseItem() ast.ItemID {
	start := p.peek().Span
	attrs := p.parseAttrs()

	var id ast.ItemID
	switch p.peek().Kind {
	case token.KwStruct:
		id = p.parseNominal(ast.ItemStruct)
	case token.KwClass:
		id = p.parseNominal(ast.ItemClass)
	case token.KwProtocol:
		id = p.parseNominal(ast.ItemProtocol)
	case token.KwExtension:
		id = p.parseNominal(ast.ItemExtension)
	case token.KwFunc, token.KwInit, token.KwDeinit:
		id = p.parseFunc(attrs)
	case token.KwSubscript:
		id = p.parseSubscript()
	case token.KwVar, token.KwLet:
		id = p.parseBinding(attrs)
	default:
		got := p.peek()
		p.errorAt(got.Span, diag.SynExpectedDecl,
			"expected a declaration after attributes")
		return ast.NoItemID
	}

	// The item span covers leading attributes so that attribute positions
	// nest inside the declaration they decorate.
	if id.IsValid() && len(attrs) > 0 {
		item := p.arenas.Item(id)
		item.Span = start.Cover(item.Span)
	}
	return id
}

// parseAttrs consumes a run of @attributes preceding a declaration.
func (p *Parser) parseAttrs() []ast.AttrID {
	var attrs []ast.AttrID
	for p.at(token.At) {
		atTok := p.advance()
		nameTok, ok := p.expect(token.Ident)
		if !ok {
			break
		}
		attr := ast.Attr{
			Kind:     ast.AttrCustom,
			Name:     p.intern(nameTok),
			NameSpan: nameTok.Span,
		}
		if nameTok.Text == "specialize" {
			attr.Kind = ast.AttrSpecialize
		}
		if lp, ok := p.eat(token.LParen); ok {
			argsStart := lp.Span
			for !p.at(token.RParen) && !p.at(token.EOF) {
				// Attribute arguments may be `label: expr` pairs.
				if p.at(token.Ident) || p.at(token.Underscore) {
					save := p.peek()
					p.advance()
					if _, isPair := p.eat(token.Colon); !isPair {
						// Not a label; reinterpret the ident as an expression.
						id := p.intern(save)
						expr := p.parsePostfix(p.arenas.NewIdent(save.Span, id))
						attr.Args = append(attr.Args, expr)
						if _, more := p.eat(token.Comma); !more {
							break
						}
						continue
					}
				}
				attr.Args = append(attr.Args, p.parseExpr())
				if _, more := p.eat(token.Comma); !more {
					break
				}
			}
			p.expect(token.RParen)
			attr.ArgsSpan = p.spanFrom(argsStart)
		}
		attr.Span = p.spanFrom(atTok.Span)
		attrs = append(attrs, p.arenas.NewAttr(attr))
	}
	return attrs
}

func (p *Parser) parseNominal(kind ast.ItemKind) ast.ItemID {
	kw := p.advance()
	data := ast.NominalItem{}

	if nameTok, ok := p.expect(token.Ident); ok {
		data.Name = p.intern(nameTok)
		data.NameSpan = nameTok.Span
	}
	if kind != ast.ItemExtension {
		data.GenericParams = p.parseGenericParams()
	}
	data.WhereSpan = p.parseWhereClause()

	if lb, ok := p.expect(token.LBrace); ok {
		bodyStart := lb.Span
		p.eatSemis()
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			before := p.peek()
			if member := p.parseItem(); member.IsValid() {
				data.Members = append(data.Members, member)
			}
			if p.peek() == before && p.peek().Kind != token.EOF {
				p.advance()
			}
			p.eatSemis()
		}
		p.expect(token.RBrace)
		data.BodySpan = p.spanFrom(bodyStart)
	}

	return p.arenas.NewNominal(kind, p.spanFrom(kw.Span), data)
}

// parseGenericParams parses `<T: Bound, U>` if present.
func (p *Parser) parseGenericParams() []ast.GenericParamID {
	if !p.at(token.Lt) {
		return nil
	}
	p.advance()
	var out []ast.GenericParamID
	for !p.at(token.Gt) && !p.at(token.EOF) {
		nameTok, ok := p.expect(token.Ident)
		if !ok {
			break
		}
		gp := ast.GenericParam{
			Name:     p.intern(nameTok),
			NameSpan: nameTok.Span,
		}
		if _, hasBound := p.eat(token.Colon); hasBound {
			if boundTok, ok := p.expect(token.Ident); ok {
				gp.Bound = p.intern(boundTok)
				gp.BoundSpan = boundTok.Span
			}
		}
		gp.Span = p.spanFrom(nameTok.Span)
		out = append(out, p.arenas.NewGenericParam(gp))
		if _, more := p.eat(token.Comma); !more {
			break
		}
	}
	p.expect(token.Gt)
	return out
}

// parseWhereClause consumes a trailing where clause and returns its span,
// or the zero span when absent. Constraint contents are opaque to scoping
// beyond the names they mention.
func (p *Parser) parseWhereClause() source.Span {
	kw, ok := p.eat(token.KwWhere)
	if !ok {
		return source.Span{}
	}
	for {
		p.withNoBrace(func() { p.parseExpr() })
		if _, more := p.eat(token.Comma); !more {
			break
		}
	}
	return p.spanFrom(kw.Span)
}

func (p *Parser) parseFunc(attrs []ast.AttrID) ast.ItemID {
	kw := p.advance()
	var kind ast.ItemKind
	switch kw.Kind {
	case token.KwInit:
		kind = ast.ItemInit
	case token.KwDeinit:
		kind = ast.ItemDeinit
	default:
		kind = ast.ItemFunc
	}

	data := ast.FuncItem{Attrs: attrs}
	if kind == ast.ItemFunc {
		if nameTok, ok := p.expect(token.Ident); ok {
			data.Name = p.intern(nameTok)
			data.NameSpan = nameTok.Span
		}
		data.GenericParams = p.parseGenericParams()
	}
	if kind != ast.ItemDeinit {
		data.Params, data.ParamsSpan = p.parseParamList()
	}
	if _, hasArrow := p.eat(token.Arrow); hasArrow {
		p.expect(token.Ident)
	}
	data.WhereSpan = p.parseWhereClause()

	if p.at(token.LBrace) {
		data.Body = p.parseBrace()
	}
	return p.arenas.NewFunc(kind, p.spanFrom(kw.Span), data)
}

// parseParamList parses `(name: Type = default, ...)`.
func (p *Parser) parseParamList() ([]ast.ParamID, source.Span) {
	lp, ok := p.expect(token.LParen)
	if !ok {
		return nil, source.Span{}
	}
	var out []ast.ParamID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		nameTok, ok := p.expect(token.Ident)
		if !ok {
			break
		}
		param := ast.Param{
			Name:     p.intern(nameTok),
			NameSpan: nameTok.Span,
		}
		if _, hasType := p.eat(token.Colon); hasType {
			if typeTok, ok := p.expect(token.Ident); ok {
				param.TypeName = p.intern(typeTok)
				param.TypeSpan = typeTok.Span
			}
		}
		if _, hasDefault := p.eat(token.Assign); hasDefault {
			param.Default = p.parseExpr()
		}
		param.Span = p.spanFrom(nameTok.Span)
		out = append(out, p.arenas.NewParam(param))
		if _, more := p.eat(token.Comma); !more {
			break
		}
	}
	p.expect(token.RParen)
	return out, p.spanFrom(lp.Span)
}

func (p *Parser) parseSubscript() ast.ItemID {
	kw := p.advance()
	data := ast.SubscriptItem{}
	data.Params, data.ParamsSpan = p.parseParamList()

	if lb, ok := p.expect(token.LBrace); ok {
		bodyStart := lb.Span
		p.eatSemis()
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			switch p.peek().Kind {
			case token.KwGet:
				p.advance()
				data.GetBody = p.parseBrace()
			case token.KwSet:
				p.advance()
				data.SetBody = p.parseBrace()
			default:
				got := p.peek()
				p.errorAt(got.Span, diag.SynUnexpectedToken,
					"expected 'get' or 'set' in subscript body")
				p.advance()
			}
			p.eatSemis()
		}
		p.expect(token.RBrace)
		data.BodySpan = p.spanFrom(bodyStart)
	}
	return p.arenas.NewSubscript(p.spanFrom(kw.Span), data)
}

func (p *Parser) parseBinding(attrs []ast.AttrID) ast.ItemID {
	kw := p.advance()
	data := ast.BindingItem{
		IsVar:  kw.Kind == token.KwVar,
		Attrs:  attrs,
		KwSpan: kw.Span,
	}

	for {
		entryStart := p.peek().Span
		entry := ast.PatternEntry{
			Pat: p.parsePattern(),
		}
		hasType := false
		if _, ok := p.eat(token.Colon); ok {
			hasType = true
			p.expect(token.Ident)
		}
		if _, hasInit := p.eat(token.Assign); hasInit {
			// Initializers may be closures; accessors cannot follow.
			entry.Init = p.parseExpr()
		} else if hasType && p.at(token.LBrace) {
			entry.GetBody, entry.SetBody = p.parseAccessors()
		}
		entry.Span = p.spanFrom(entryStart)
		data.Entries = append(data.Entries, p.arenas.NewPatternEntry(entry))
		if _, more := p.eat(token.Comma); !more {
			break
		}
	}
	return p.arenas.NewBinding(p.spanFrom(kw.Span), data)
}

// parseAccessors parses `{ get { } set { } }` after a binding entry.
func (p *Parser) parseAccessors() (get, set ast.StmtID) {
	p.expect(token.LBrace)
	p.eatSemis()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.KwGet:
			p.advance()
			get = p.parseBrace()
		case token.KwSet:
			p.advance()
			set = p.parseBrace()
		default:
			got := p.peek()
			p.errorAt(got.Span, diag.SynUnexpectedToken,
				"expected 'get' or 'set' in accessor block")
			p.advance()
		}
		p.eatSemis()
	}
	p.expect(token.RBrace)
	return get, set
}
