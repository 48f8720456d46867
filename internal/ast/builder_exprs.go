package ast

import (
	"strata/internal/source"
)

func (b *Builder) Expr(id ExprID) *Expr {
	return b.ExprsArena.Get(uint32(id))
}

func (b *Builder) newExpr(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(b.ExprsArena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

func (b *Builder) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := PayloadID(b.Idents.Allocate(IdentExpr{Name: name}))
	return b.newExpr(ExprIdent, span, payload)
}

func (b *Builder) Ident(id ExprID) (*IdentExpr, bool) {
	expr := b.Expr(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return b.Idents.Get(uint32(expr.Payload)), true
}

// NewIntLit / NewStringLit / NewBoolLit carry no payload beyond the span.
func (b *Builder) NewIntLit(span source.Span) ExprID {
	return b.newExpr(ExprIntLit, span, NoPayloadID)
}

func (b *Builder) NewStringLit(span source.Span) ExprID {
	return b.newExpr(ExprStringLit, span, NoPayloadID)
}

func (b *Builder) NewBoolLit(span source.Span) ExprID {
	return b.newExpr(ExprBoolLit, span, NoPayloadID)
}

func (b *Builder) NewMember(span source.Span, base ExprID, name source.StringID) ExprID {
	payload := PayloadID(b.Members.Allocate(MemberExpr{Base: base, Name: name}))
	return b.newExpr(ExprMember, span, payload)
}

func (b *Builder) Member(id ExprID) (*MemberExpr, bool) {
	expr := b.Expr(id)
	if expr == nil || expr.Kind != ExprMember {
		return nil, false
	}
	return b.Members.Get(uint32(expr.Payload)), true
}

func (b *Builder) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	payload := PayloadID(b.Calls.Allocate(CallExpr{Callee: callee, Args: args}))
	return b.newExpr(ExprCall, span, payload)
}

func (b *Builder) Call(id ExprID) (*CallExpr, bool) {
	expr := b.Expr(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return b.Calls.Get(uint32(expr.Payload)), true
}

func (b *Builder) NewBinary(span source.Span, op BinaryOp, lhs, rhs ExprID) ExprID {
	payload := PayloadID(b.Binaries.Allocate(BinaryExpr{Op: op, LHS: lhs, RHS: rhs}))
	return b.newExpr(ExprBinary, span, payload)
}

func (b *Builder) Binary(id ExprID) (*BinaryExpr, bool) {
	expr := b.Expr(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return b.Binaries.Get(uint32(expr.Payload)), true
}

func (b *Builder) NewParen(span source.Span, inner ExprID) ExprID {
	payload := PayloadID(b.Parens.Allocate(ParenExpr{Inner: inner}))
	return b.newExpr(ExprParen, span, payload)
}

func (b *Builder) Paren(id ExprID) (*ParenExpr, bool) {
	expr := b.Expr(id)
	if expr == nil || expr.Kind != ExprParen {
		return nil, false
	}
	return b.Parens.Get(uint32(expr.Payload)), true
}

func (b *Builder) NewClosure(span source.Span, data ClosureExpr) ExprID {
	payload := PayloadID(b.Closures.Allocate(data))
	return b.newExpr(ExprClosure, span, payload)
}

func (b *Builder) Closure(id ExprID) (*ClosureExpr, bool) {
	expr := b.Expr(id)
	if expr == nil || expr.Kind != ExprClosure {
		return nil, false
	}
	return b.Closures.Get(uint32(expr.Payload)), true
}

func (b *Builder) NewCapture(data Capture) CaptureID {
	return CaptureID(b.Captures.Allocate(data))
}

func (b *Builder) Capture(id CaptureID) *Capture {
	return b.Captures.Get(uint32(id))
}
