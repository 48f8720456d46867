package ast

import (
	"strata/internal/source"
)

func (b *Builder) NewBrace(span source.Span, stmts []StmtID) StmtID {
	payload := PayloadID(b.Braces.Allocate(BraceStmt{Stmts: stmts}))
	return b.newStmt(StmtBrace, span, payload)
}

func (b *Builder) Brace(id StmtID) (*BraceStmt, bool) {
	stmt := b.Stmt(id)
	if stmt == nil || stmt.Kind != StmtBrace {
		return nil, false
	}
	return b.Braces.Get(uint32(stmt.Payload)), true
}

func (b *Builder) NewExprStmt(span source.Span, expr ExprID) StmtID {
	payload := PayloadID(b.ExprStmts.Allocate(ExprStmt{Expr: expr}))
	return b.newStmt(StmtExpr, span, payload)
}

func (b *Builder) ExprStmt(id StmtID) (*ExprStmt, bool) {
	stmt := b.Stmt(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return b.ExprStmts.Get(uint32(stmt.Payload)), true
}

func (b *Builder) NewReturn(span source.Span, value ExprID) StmtID {
	payload := PayloadID(b.Returns.Allocate(ReturnStmt{Value: value}))
	return b.newStmt(StmtReturn, span, payload)
}

func (b *Builder) Return(id StmtID) (*ReturnStmt, bool) {
	stmt := b.Stmt(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return b.Returns.Get(uint32(stmt.Payload)), true
}

func (b *Builder) NewItemStmt(span source.Span, item ItemID) StmtID {
	payload := PayloadID(b.ItemStmts.Allocate(ItemStmt{Item: item}))
	return b.newStmt(StmtItem, span, payload)
}

func (b *Builder) ItemStmt(id StmtID) (*ItemStmt, bool) {
	stmt := b.Stmt(id)
	if stmt == nil || stmt.Kind != StmtItem {
		return nil, false
	}
	return b.ItemStmts.Get(uint32(stmt.Payload)), true
}

func (b *Builder) NewCondition(data Condition) ConditionID {
	return ConditionID(b.Conds.Allocate(data))
}

func (b *Builder) Condition(id ConditionID) *Condition {
	return b.Conds.Get(uint32(id))
}

func (b *Builder) NewIf(span source.Span, data IfStmt) StmtID {
	payload := PayloadID(b.Ifs.Allocate(data))
	return b.newStmt(StmtIf, span, payload)
}

func (b *Builder) If(id StmtID) (*IfStmt, bool) {
	stmt := b.Stmt(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil, false
	}
	return b.Ifs.Get(uint32(stmt.Payload)), true
}

func (b *Builder) NewWhile(span source.Span, data WhileStmt) StmtID {
	payload := PayloadID(b.Whiles.Allocate(data))
	return b.newStmt(StmtWhile, span, payload)
}

func (b *Builder) While(id StmtID) (*WhileStmt, bool) {
	stmt := b.Stmt(id)
	if stmt == nil || stmt.Kind != StmtWhile {
		return nil, false
	}
	return b.Whiles.Get(uint32(stmt.Payload)), true
}

func (b *Builder) NewGuard(span source.Span, data GuardStmt) StmtID {
	payload := PayloadID(b.Guards.Allocate(data))
	return b.newStmt(StmtGuard, span, payload)
}

func (b *Builder) Guard(id StmtID) (*GuardStmt, bool) {
	stmt := b.Stmt(id)
	if stmt == nil || stmt.Kind != StmtGuard {
		return nil, false
	}
	return b.Guards.Get(uint32(stmt.Payload)), true
}

func (b *Builder) NewRepeat(span source.Span, data RepeatStmt) StmtID {
	payload := PayloadID(b.Repeats.Allocate(data))
	return b.newStmt(StmtRepeat, span, payload)
}

func (b *Builder) Repeat(id StmtID) (*RepeatStmt, bool) {
	stmt := b.Stmt(id)
	if stmt == nil || stmt.Kind != StmtRepeat {
		return nil, false
	}
	return b.Repeats.Get(uint32(stmt.Payload)), true
}

func (b *Builder) NewFor(span source.Span, data ForStmt) StmtID {
	payload := PayloadID(b.Fors.Allocate(data))
	return b.newStmt(StmtFor, span, payload)
}

func (b *Builder) For(id StmtID) (*ForStmt, bool) {
	stmt := b.Stmt(id)
	if stmt == nil || stmt.Kind != StmtFor {
		return nil, false
	}
	return b.Fors.Get(uint32(stmt.Payload)), true
}

func (b *Builder) NewDo(span source.Span, data DoStmt) StmtID {
	payload := PayloadID(b.Dos.Allocate(data))
	return b.newStmt(StmtDo, span, payload)
}

func (b *Builder) Do(id StmtID) (*DoStmt, bool) {
	stmt := b.Stmt(id)
	if stmt == nil || stmt.Kind != StmtDo {
		return nil, false
	}
	return b.Dos.Get(uint32(stmt.Payload)), true
}

func (b *Builder) NewCatchClause(data CatchClause) CatchClauseID {
	return CatchClauseID(b.Catches.Allocate(data))
}

func (b *Builder) CatchClause(id CatchClauseID) *CatchClause {
	return b.Catches.Get(uint32(id))
}

func (b *Builder) NewSwitch(span source.Span, data SwitchStmt) StmtID {
	payload := PayloadID(b.Switches.Allocate(data))
	return b.newStmt(StmtSwitch, span, payload)
}

func (b *Builder) Switch(id StmtID) (*SwitchStmt, bool) {
	stmt := b.Stmt(id)
	if stmt == nil || stmt.Kind != StmtSwitch {
		return nil, false
	}
	return b.Switches.Get(uint32(stmt.Payload)), true
}

func (b *Builder) NewSwitchCase(data SwitchCase) SwitchCaseID {
	return SwitchCaseID(b.Cases.Allocate(data))
}

func (b *Builder) SwitchCase(id SwitchCaseID) *SwitchCase {
	return b.Cases.Get(uint32(id))
}

func (b *Builder) NewPattern(data Pattern) PatternID {
	return PatternID(b.Patterns.Allocate(data))
}

func (b *Builder) Pattern(id PatternID) *Pattern {
	return b.Patterns.Get(uint32(id))
}
