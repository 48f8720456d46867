package ast

import (
	"strata/internal/source"
)

// ExprKind discriminates expression nodes.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprIdent
	ExprIntLit
	ExprStringLit
	ExprBoolLit
	ExprMember
	ExprCall
	ExprBinary
	ExprParen
	ExprClosure
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "ident"
	case ExprIntLit:
		return "int"
	case ExprStringLit:
		return "string"
	case ExprBoolLit:
		return "bool"
	case ExprMember:
		return "member"
	case ExprCall:
		return "call"
	case ExprBinary:
		return "binary"
	case ExprParen:
		return "paren"
	case ExprClosure:
		return "closure"
	default:
		return "invalid"
	}
}

// Expr is the header shared by all expressions.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// IdentExpr is a bare name reference.
type IdentExpr struct {
	Name source.StringID
}

// MemberExpr is `base.name`.
type MemberExpr struct {
	Base ExprID
	Name source.StringID
}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Callee ExprID
	Args   []ExprID
}

// BinaryOp is the small fixed operator set.
type BinaryOp uint8

const (
	OpInvalid BinaryOp = iota
	OpAssign
	OpEq
	OpNe
	OpLt
	OpGt
	OpAdd
	OpSub
	OpMul
	OpDiv
)

// BinaryExpr is `lhs op rhs`.
type BinaryExpr struct {
	Op  BinaryOp
	LHS ExprID
	RHS ExprID
}

// ParenExpr is a parenthesized sub-expression.
type ParenExpr struct {
	Inner ExprID
}

// Capture is one `[name = initializer]` capture-list element. The
// initializer is evaluated outside the closure; the name is bound inside.
type Capture struct {
	Name     source.StringID
	NameSpan source.Span
	Init     ExprID // NoExprID for shorthand `[name]`
	Span     source.Span
}

// ClosureExpr is `{ [captures] (params) in stmts }`. When HasIn is false
// the parameter list is empty and the body still needs its own scope for
// implicit parameter names.
type ClosureExpr struct {
	Captures []CaptureID
	Params   []ParamID
	HasIn    bool
	InSpan   source.Span // zero when HasIn is false
	Stmts    []StmtID
}
