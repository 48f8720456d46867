package ast

import (
	"strata/internal/source"
)

// StmtKind discriminates statement nodes.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtBrace
	StmtExpr
	StmtReturn
	StmtItem // nested declaration in statement position
	StmtIf
	StmtWhile
	StmtGuard
	StmtRepeat
	StmtFor
	StmtDo
	StmtSwitch
)

func (k StmtKind) String() string {
	switch k {
	case StmtBrace:
		return "brace"
	case StmtExpr:
		return "expr"
	case StmtReturn:
		return "return"
	case StmtItem:
		return "item"
	case StmtIf:
		return "if"
	case StmtWhile:
		return "while"
	case StmtGuard:
		return "guard"
	case StmtRepeat:
		return "repeat"
	case StmtFor:
		return "for"
	case StmtDo:
		return "do"
	case StmtSwitch:
		return "switch"
	default:
		return "invalid"
	}
}

// Stmt is the header shared by all statements.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// BraceStmt is an explicit { ... } block.
type BraceStmt struct {
	Stmts []StmtID
}

// ExprStmt wraps an expression in statement position.
type ExprStmt struct {
	Expr ExprID
}

// ReturnStmt returns an optional value.
type ReturnStmt struct {
	Value ExprID
}

// ItemStmt hosts a local declaration (var/let/func/nested type).
type ItemStmt struct {
	Item ItemID
}

// Condition is one element of an if/while/guard condition list: either a
// boolean expression or a `let pattern = initializer` binding.
type Condition struct {
	Pat  PatternID // NoPatternID for plain boolean conditions
	Init ExprID    // binding initializer, or the boolean expression itself
	Span source.Span
}

// IsBinding reports whether the condition introduces pattern bindings.
func (c *Condition) IsBinding() bool {
	return c.Pat.IsValid()
}

// IfStmt models `if cond-list { } else ...`; Else is a brace or another if.
type IfStmt struct {
	Conds []ConditionID
	Then  StmtID
	Else  StmtID // NoStmtID when absent
}

// WhileStmt models `while cond-list { }`.
type WhileStmt struct {
	Conds []ConditionID
	Body  StmtID
}

// GuardStmt models `guard cond-list else { }`. Names bound by the
// conditions are visible to the code following the guard, not to Else.
type GuardStmt struct {
	Conds []ConditionID
	Else  StmtID
}

// RepeatStmt models `repeat { } while cond`.
type RepeatStmt struct {
	Body StmtID
	Cond ExprID
}

// ForStmt models `for pattern in sequence { }`.
type ForStmt struct {
	Pat      PatternID
	Sequence ExprID
	Body     StmtID
}

// DoStmt models `do { } catch ...` with zero or more catch clauses.
type DoStmt struct {
	Body    StmtID
	Catches []CatchClauseID
}

// CatchClause binds either its pattern or the implicit `error` constant.
type CatchClause struct {
	Pat  PatternID // NoPatternID for a bare catch
	Body StmtID
	Span source.Span
}

// SwitchStmt models `switch subject { case ... }`.
type SwitchStmt struct {
	Subject ExprID
	Cases   []SwitchCaseID
}

// SwitchCase is one `case pattern:` (or `default:`) with its statements.
type SwitchCase struct {
	Pat       PatternID // NoPatternID for default
	Stmts     []StmtID
	Span      source.Span
	BodySpan  source.Span // statements after the colon
	IsDefault bool
}
