package parser

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/token"
)

func (p *Parser) atExprStart() bool {
	switch p.peek().Kind {
	case token.Ident, token.IntLit, token.StringLit, token.KwTrue,
		token.KwFalse, token.LParen:
		return true
	case token.LBrace:
		return !p.noBrace
	default:
		return false
	}
}

func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinary(0)
}

// parseExprNoBrace parses an expression with closure literals suppressed,
// so a following `{` belongs to the surrounding statement.
func (p *Parser) parseExprNoBrace() ast.ExprID {
	var out ast.ExprID
	p.withNoBrace(func() { out = p.parseExpr() })
	return out
}

func (p *Parser) withNoBrace(fn func()) {
	saved := p.noBrace
	p.noBrace = true
	fn()
	p.noBrace = saved
}

// Binding powers, loosest first. Assignment is right-associative.
func bindingPower(op ast.BinaryOp) (left, right uint8) {
	switch op {
	case ast.OpAssign:
		return 2, 1
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpGt:
		return 3, 4
	case ast.OpAdd, ast.OpSub:
		return 5, 6
	case ast.OpMul, ast.OpDiv:
		return 7, 8
	default:
		return 0, 0
	}
}

func binaryOpFor(kind token.Kind) ast.BinaryOp {
	switch kind {
	case token.Assign:
		return ast.OpAssign
	case token.EqEq:
		return ast.OpEq
	case token.BangEq:
		return ast.OpNe
	case token.Lt:
		return ast.OpLt
	case token.Gt:
		return ast.OpGt
	case token.Plus:
		return ast.OpAdd
	case token.Minus:
		return ast.OpSub
	case token.Star:
		return ast.OpMul
	case token.Slash:
		return ast.OpDiv
	default:
		return ast.OpInvalid
	}
}

func (p *Parser) parseBinary(minPower uint8) ast.ExprID {
	start := p.peek().Span
	lhs := p.parsePostfix(p.parsePrimary())
	for {
		op := binaryOpFor(p.peek().Kind)
		if op == ast.OpInvalid {
			return lhs
		}
		left, right := bindingPower(op)
		if left <= minPower {
			return lhs
		}
		p.advance()
		rhs := p.parseBinary(right)
		lhs = p.arenas.NewBinary(p.spanFrom(start), op, lhs, rhs)
	}
}

func (p *Parser) parsePostfix(base ast.ExprID) ast.ExprID {
	if !base.IsValid() {
		return base
	}
	start := p.arenas.Expr(base).Span
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			nameTok, ok := p.expect(token.Ident)
			if !ok {
				return base
			}
			base = p.arenas.NewMember(p.spanFrom(start), base, p.intern(nameTok))
		case token.LParen:
			p.advance()
			var args []ast.ExprID
			for !p.at(token.RParen) && !p.at(token.EOF) {
				// Call arguments may be labeled: `f(x: 1)`.
				if p.at(token.Ident) {
					save := p.advance()
					if _, isLabel := p.eat(token.Colon); isLabel {
						args = append(args, p.parseExpr())
					} else {
						id := p.intern(save)
						arg := p.parsePostfix(p.arenas.NewIdent(save.Span, id))
						args = append(args, p.finishBinary(arg))
					}
				} else {
					args = append(args, p.parseExpr())
				}
				if _, more := p.eat(token.Comma); !more {
					break
				}
			}
			p.expect(token.RParen)
			base = p.arenas.NewCall(p.spanFrom(start), base, args)
		default:
			return base
		}
	}
}

// finishBinary continues binary parsing for an already-parsed operand.
func (p *Parser) finishBinary(lhs ast.ExprID) ast.ExprID {
	for {
		op := binaryOpFor(p.peek().Kind)
		if op == ast.OpInvalid {
			return lhs
		}
		_, right := bindingPower(op)
		p.advance()
		start := p.arenas.Expr(lhs).Span
		rhs := p.parseBinary(right)
		lhs = p.arenas.NewBinary(p.spanFrom(start), op, lhs, rhs)
	}
}

func (p *Parser) parsePrimary() ast.ExprID {
	switch p.peek().Kind {
	case token.Ident:
		tok := p.advance()
		return p.arenas.NewIdent(tok.Span, p.intern(tok))
	case token.IntLit:
		tok := p.advance()
		return p.arenas.NewIntLit(tok.Span)
	case token.StringLit:
		tok := p.advance()
		return p.arenas.NewStringLit(tok.Span)
	case token.KwTrue, token.KwFalse:
		tok := p.advance()
		return p.arenas.NewBoolLit(tok.Span)
	case token.LParen:
		lp := p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen)
		return p.arenas.NewParen(p.spanFrom(lp.Span), inner)
	case token.LBrace:
		if p.noBrace {
			break
		}
		return p.parseClosure()
	}
	got := p.peek()
	p.errorAt(got.Span, diag.SynExpectedExpr, "expected an expression")
	return ast.NoExprID
}

// parseClosure parses `{ [captures] (params) in stmts }` or `{ stmts }`.
// Inside the body closures are allowed again regardless of outer context.
func (p *Parser) parseClosure() ast.ExprID {
	lb := p.advance()
	data := ast.ClosureExpr{}

	if p.at(token.LBracket) {
		p.advance()
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			nameTok, ok := p.expect(token.Ident)
			if !ok {
				break
			}
			capture := ast.Capture{
				Name:     p.intern(nameTok),
				NameSpan: nameTok.Span,
			}
			if _, hasInit := p.eat(token.Assign); hasInit {
				capture.Init = p.parseExpr()
			}
			capture.Span = p.spanFrom(nameTok.Span)
			data.Captures = append(data.Captures, p.arenas.NewCapture(capture))
			if _, more := p.eat(token.Comma); !more {
				break
			}
		}
		p.expect(token.RBracket)
	}

	if p.at(token.LParen) {
		data.Params, _ = p.parseParamList()
		if inTok, ok := p.expect(token.KwIn); ok {
			data.HasIn = true
			data.InSpan = inTok.Span
		}
	} else if len(data.Captures) > 0 {
		if inTok, ok := p.eat(token.KwIn); ok {
			data.HasIn = true
			data.InSpan = inTok.Span
		}
	}

	saved := p.noBrace
	p.noBrace = false
	p.eatSemis()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.peek()
		if stmt := p.parseStmt(); stmt.IsValid() {
			data.Stmts = append(data.Stmts, stmt)
		}
		if p.peek() == before && p.peek().Kind != token.EOF {
			p.advance()
		}
		p.eatSemis()
	}
	p.noBrace = saved
	p.expect(token.RBrace)
	return p.arenas.NewClosure(p.spanFrom(lb.Span), data)
}
