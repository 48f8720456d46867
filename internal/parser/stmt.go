package parser

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/token"
)

func (p *Parser) parseStmt() ast.StmtID {
	switch p.peek().Kind {
	case token.LBrace:
		return p.parseBrace()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwGuard:
		return p.parseGuard()
	case token.KwRepeat:
		return p.parseRepeat()
	case token.KwFor:
		return p.parseFor()
	case token.KwDo:
		return p.parseDo()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwReturn:
		kw := p.advance()
		value := ast.NoExprID
		if p.atExprStart() {
			value = p.parseExpr()
		}
		return p.arenas.NewReturn(p.spanFrom(kw.Span), value)
	default:
		if p.atItemStart() {
			start := p.peek().Span
			item := p.parseItem()
			if !item.IsValid() {
				return ast.NoStmtID
			}
			return p.arenas.NewItemStmt(p.spanFrom(start), item)
		}
		start := p.peek().Span
		expr := p.parseExpr()
		if !expr.IsValid() {
			return ast.NoStmtID
		}
		return p.arenas.NewExprStmt(p.spanFrom(start), expr)
	}
}

// parseBrace parses `{ stmts }` into a brace statement.
func (p *Parser) parseBrace() ast.StmtID {
	lb, ok := p.expect(token.LBrace)
	if !ok {
		return ast.NoStmtID
	}
	var stmts []ast.StmtID
	p.eatSemis()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.peek()
		if stmt := p.parseStmt(); stmt.IsValid() {
			stmts = append(stmts, stmt)
		}
		if p.peek() == before && p.peek().Kind != token.EOF {
			p.advance()
		}
		p.eatSemis()
	}
	p.expect(token.RBrace)
	return p.arenas.NewBrace(p.spanFrom(lb.Span), stmts)
}

// parseConditions parses a comma-separated condition list. Closure literals
// are suppressed so the following brace reads as the statement body.
func (p *Parser) parseConditions() []ast.ConditionID {
	var out []ast.ConditionID
	for {
		start := p.peek().Span
		cond := ast.Condition{}
		if _, isLet := p.eat(token.KwLet); isLet {
			cond.Pat = p.parsePattern()
			p.expect(token.Assign)
			cond.Init = p.parseExprNoBrace()
		} else {
			expr := p.parseExprNoBrace()
			// `y = b(x)` continues the binding list without repeating
			// `let`; reinterpret the assignment as a binding clause.
			if pat, init, ok := p.assignAsBinding(expr); ok {
				cond.Pat = pat
				cond.Init = init
			} else {
				cond.Init = expr
			}
		}
		cond.Span = p.spanFrom(start)
		out = append(out, p.arenas.NewCondition(cond))
		if _, more := p.eat(token.Comma); !more {
			return out
		}
	}
}

// assignAsBinding unwraps a top-level `name = expr` assignment into a
// name pattern and its initializer.
func (p *Parser) assignAsBinding(expr ast.ExprID) (ast.PatternID, ast.ExprID, bool) {
	bin, ok := p.arenas.Binary(expr)
	if !ok || bin.Op != ast.OpAssign {
		return ast.NoPatternID, ast.NoExprID, false
	}
	ident, ok := p.arenas.Ident(bin.LHS)
	if !ok {
		return ast.NoPatternID, ast.NoExprID, false
	}
	pat := p.arenas.NewPattern(ast.Pattern{
		Kind: ast.PatternName,
		Span: p.arenas.Expr(bin.LHS).Span,
		Name: ident.Name,
	})
	return pat, bin.RHS, true
}

func (p *Parser) parseIf() ast.StmtID {
	kw := p.advance()
	data := ast.IfStmt{
		Conds: p.parseConditions(),
		Then:  p.parseBrace(),
	}
	if _, hasElse := p.eat(token.KwElse); hasElse {
		if p.at(token.KwIf) {
			data.Else = p.parseIf()
		} else {
			data.Else = p.parseBrace()
		}
	}
	return p.arenas.NewIf(p.spanFrom(kw.Span), data)
}

func (p *Parser) parseWhile() ast.StmtID {
	kw := p.advance()
	data := ast.WhileStmt{
		Conds: p.parseConditions(),
		Body:  p.parseBrace(),
	}
	return p.arenas.NewWhile(p.spanFrom(kw.Span), data)
}

func (p *Parser) parseGuard() ast.StmtID {
	kw := p.advance()
	data := ast.GuardStmt{
		Conds: p.parseConditions(),
	}
	p.expect(token.KwElse)
	data.Else = p.parseBrace()
	return p.arenas.NewGuard(p.spanFrom(kw.Span), data)
}

func (p *Parser) parseRepeat() ast.StmtID {
	kw := p.advance()
	data := ast.RepeatStmt{
		Body: p.parseBrace(),
	}
	p.expect(token.KwWhile)
	data.Cond = p.parseExprNoBrace()
	return p.arenas.NewRepeat(p.spanFrom(kw.Span), data)
}

func (p *Parser) parseFor() ast.StmtID {
	kw := p.advance()
	data := ast.ForStmt{
		Pat: p.parsePattern(),
	}
	p.expect(token.KwIn)
	data.Sequence = p.parseExprNoBrace()
	data.Body = p.parseBrace()
	return p.arenas.NewFor(p.spanFrom(kw.Span), data)
}

func (p *Parser) parseDo() ast.StmtID {
	kw := p.advance()
	data := ast.DoStmt{
		Body: p.parseBrace(),
	}
	for p.at(token.KwCatch) {
		catchKw := p.advance()
		clause := ast.CatchClause{}
		if !p.at(token.LBrace) {
			clause.Pat = p.parsePattern()
		}
		clause.Body = p.parseBrace()
		clause.Span = p.spanFrom(catchKw.Span)
		data.Catches = append(data.Catches, p.arenas.NewCatchClause(clause))
	}
	return p.arenas.NewDo(p.spanFrom(kw.Span), data)
}

func (p *Parser) parseSwitch() ast.StmtID {
	kw := p.advance()
	data := ast.SwitchStmt{
		Subject: p.parseExprNoBrace(),
	}
	p.expect(token.LBrace)
	p.eatSemis()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.peek().Kind {
		case token.KwCase, token.KwDefault:
			data.Cases = append(data.Cases, p.parseSwitchCase())
		default:
			got := p.peek()
			p.errorAt(got.Span, diag.SynUnexpectedToken,
				"expected 'case' or 'default' in switch body")
			p.advance()
		}
		p.eatSemis()
	}
	p.expect(token.RBrace)
	return p.arenas.NewSwitch(p.spanFrom(kw.Span), data)
}

func (p *Parser) parseSwitchCase() ast.SwitchCaseID {
	kw := p.advance()
	data := ast.SwitchCase{IsDefault: kw.Kind == token.KwDefault}
	if !data.IsDefault {
		// `case let x:` binds; `case literal:` matches.
		if _, isLet := p.eat(token.KwLet); isLet {
			data.Pat = p.parsePattern()
		} else {
			p.parseExprNoBrace()
		}
	}
	colon, _ := p.expect(token.Colon)
	bodyStart := colon.Span
	for !p.at(token.KwCase) && !p.at(token.KwDefault) &&
		!p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.peek()
		if stmt := p.parseStmt(); stmt.IsValid() {
			data.Stmts = append(data.Stmts, stmt)
		}
		if p.peek() == before && p.peek().Kind != token.EOF {
			p.advance()
		}
		p.eatSemis()
	}
	data.BodySpan = p.spanFrom(bodyStart)
	data.Span = p.spanFrom(kw.Span)
	return p.arenas.NewSwitchCase(data)
}

func (p *Parser) parsePattern() ast.PatternID {
	switch p.peek().Kind {
	case token.Underscore:
		tok := p.advance()
		return p.arenas.NewPattern(ast.Pattern{Kind: ast.PatternWildcard, Span: tok.Span})
	case token.Ident:
		tok := p.advance()
		return p.arenas.NewPattern(ast.Pattern{
			Kind: ast.PatternName,
			Span: tok.Span,
			Name: p.intern(tok),
		})
	case token.LParen:
		lp := p.advance()
		var elems []ast.PatternID
		for !p.at(token.RParen) && !p.at(token.EOF) {
			elems = append(elems, p.parsePattern())
			if _, more := p.eat(token.Comma); !more {
				break
			}
		}
		p.expect(token.RParen)
		return p.arenas.NewPattern(ast.Pattern{
			Kind:  ast.PatternTuple,
			Span:  p.spanFrom(lp.Span),
			Elems: elems,
		})
	default:
		got := p.peek()
		p.errorAt(got.Span, diag.SynExpectedPattern, "expected a pattern")
		return ast.NoPatternID
	}
}
