package scopes

import (
	"strata/internal/ast"
)

// expandBody materializes the statement list of a brace-backed scope
// (function/method/accessor/closure bodies, plain braces, and condition
// body-use scopes).
func (t *Tree) expandBody(id ScopeID) {
	s := t.Get(id)
	brace, ok := t.ast.Brace(s.Stmt)
	if !ok {
		return
	}
	t.expandStmtList(id, brace.Stmts, s.childless.End)
}

// expandStmtList walks statements in order. Bindings and guards own the
// remainder of the region: their scopes wrap the trailing statements, so
// the walk stops and defers the rest to the new scope.
func (t *Tree) expandStmtList(parent ScopeID, stmts []ast.StmtID, regionEnd uint32) {
	for i, sid := range stmts {
		stmt := t.ast.Stmt(sid)
		switch stmt.Kind {
		case ast.StmtItem:
			payload, ok := t.ast.ItemStmt(sid)
			if !ok {
				continue
			}
			if t.ast.Item(payload.Item).Kind == ast.ItemBinding {
				t.createChainedBinding(parent, payload.Item, stmts[i+1:], regionEnd)
				return
			}
			t.createItemScopes(parent, payload.Item)
		case ast.StmtGuard:
			deepest := t.createGuardScopes(parent, sid)
			if stmt.Span.End < regionEnd {
				t.create(parent, Scope{
					Kind:         ScopeGuardUse,
					Stmt:         sid,
					LookupParent: deepest,
					Rest:         stmts[i+1:],
					childless:    t.span(stmt.Span.End, regionEnd),
				})
			}
			return
		default:
			t.createStmtScopes(parent, sid)
		}
	}
}

// createStmtScopes creates the scope (if any) for one statement. A
// statement whose subtree declares nothing folds into the parent's
// ignored range instead.
func (t *Tree) createStmtScopes(parent ScopeID, sid ast.StmtID) {
	stmt := t.ast.Stmt(sid)
	switch stmt.Kind {
	case ast.StmtBrace:
		t.create(parent, Scope{Kind: ScopeBrace, Stmt: sid, childless: stmt.Span})
	case ast.StmtIf:
		t.create(parent, Scope{Kind: ScopeIfStmt, Stmt: sid, childless: stmt.Span})
	case ast.StmtWhile:
		t.create(parent, Scope{Kind: ScopeWhileStmt, Stmt: sid, childless: stmt.Span})
	case ast.StmtGuard:
		// Reached only for a guard outside a statement list (no trailing
		// region to bind into).
		t.createGuardScopes(parent, sid)
	case ast.StmtRepeat:
		t.create(parent, Scope{Kind: ScopeRepeatStmt, Stmt: sid, childless: stmt.Span})
	case ast.StmtFor:
		t.create(parent, Scope{Kind: ScopeForStmt, Stmt: sid, childless: stmt.Span})
	case ast.StmtDo:
		t.create(parent, Scope{Kind: ScopeDoStmt, Stmt: sid, childless: stmt.Span})
	case ast.StmtSwitch:
		t.create(parent, Scope{Kind: ScopeSwitchStmt, Stmt: sid, childless: stmt.Span})
	case ast.StmtItem:
		if payload, ok := t.ast.ItemStmt(sid); ok {
			t.createItemScopes(parent, payload.Item)
		}
	case ast.StmtExpr:
		payload, ok := t.ast.ExprStmt(sid)
		if !ok || t.createExprScopes(parent, payload.Expr) == 0 {
			t.addIgnored(parent, stmt.Span)
		}
	case ast.StmtReturn:
		payload, ok := t.ast.Return(sid)
		if !ok || t.createExprScopes(parent, payload.Value) == 0 {
			t.addIgnored(parent, stmt.Span)
		}
	case ast.StmtInvalid:
	}
}

// createConditionScopes builds the clause chain for a condition list and
// returns the deepest scope, which body-use scopes adopt as their lookup
// parent. Clause N+1 nests inside clause N's pattern-use scope, so each
// initializer sees exactly the bindings of the clauses before it.
func (t *Tree) createConditionScopes(parent ScopeID, conds []ast.ConditionID) ScopeID {
	if len(conds) == 0 {
		return parent
	}
	listEnd := t.ast.Condition(conds[len(conds)-1]).Span.End

	cur := parent
	prevClause := NoScopeID
	for i, cid := range conds {
		cond := t.ast.Condition(cid)
		clause := t.create(cur, Scope{
			Kind:      ScopeConditionClause,
			Clause:    idx32(i),
			Conds:     conds,
			expanded:  true,
			childless: t.span(cond.Span.Start, listEnd),
		})
		if prevClause.IsValid() {
			t.Get(prevClause).NextClause = clause
		}
		prevClause = clause
		t.createExprScopes(clause, cond.Init)

		cur = clause
		if cond.IsBinding() {
			cur = t.create(clause, Scope{
				Kind:      ScopeConditionPatternUse,
				Clause:    idx32(i),
				Conds:     conds,
				expanded:  true,
				childless: t.span(cond.Span.End, listEnd),
			})
		}
	}
	return cur
}

func (t *Tree) expandIf(id ScopeID) {
	s := t.Get(id)
	data, ok := t.ast.If(s.Stmt)
	if !ok {
		return
	}
	deepest := t.createConditionScopes(id, data.Conds)
	t.createConditionBody(id, deepest, data.Then)
	if data.Else.IsValid() {
		// The else branch never sees the condition bindings.
		t.createStmtScopes(id, data.Else)
	}
}

func (t *Tree) expandWhile(id ScopeID) {
	s := t.Get(id)
	data, ok := t.ast.While(s.Stmt)
	if !ok {
		return
	}
	deepest := t.createConditionScopes(id, data.Conds)
	t.createConditionBody(id, deepest, data.Body)
}

// createConditionBody hosts a then/loop body. Its text sits after the
// condition list, outside the clause chain's ranges, so the lookup parent
// jumps to the deepest clause scope.
func (t *Tree) createConditionBody(stmtScope, deepest ScopeID, body ast.StmtID) {
	if !body.IsValid() {
		return
	}
	lookup := NoScopeID
	if deepest != stmtScope {
		lookup = deepest
	}
	t.create(stmtScope, Scope{
		Kind:         ScopeConditionBodyUse,
		Stmt:         body,
		LookupParent: lookup,
		childless:    t.ast.Stmt(body).Span,
	})
}

// createGuardScopes builds the guard's clause chain and else branch and
// returns the deepest clause scope for the trailing use region.
func (t *Tree) createGuardScopes(parent ScopeID, sid ast.StmtID) ScopeID {
	stmt := t.ast.Stmt(sid)
	data, ok := t.ast.Guard(sid)
	if !ok {
		return parent
	}
	guard := t.create(parent, Scope{
		Kind:      ScopeGuardStmt,
		Stmt:      sid,
		expanded:  true,
		childless: stmt.Span,
	})
	deepest := t.createConditionScopes(guard, data.Conds)
	if data.Else.IsValid() {
		// The else branch runs when the conditions fail; the bindings are
		// not in scope there, so it hangs off the guard itself.
		t.createStmtScopes(guard, data.Else)
	}
	if deepest == guard {
		return parent
	}
	return deepest
}

func (t *Tree) expandRepeat(id ScopeID) {
	s := t.Get(id)
	data, ok := t.ast.Repeat(s.Stmt)
	if !ok {
		return
	}
	if data.Body.IsValid() {
		t.createStmtScopes(id, data.Body)
	}
	t.createExprScopes(id, data.Cond)
}

func (t *Tree) expandFor(id ScopeID) {
	s := t.Get(id)
	data, ok := t.ast.For(s.Stmt)
	if !ok {
		return
	}
	// The sequence resolves outside the element bindings.
	t.createExprScopes(id, data.Sequence)
	if !data.Body.IsValid() {
		return
	}
	pat := t.create(id, Scope{
		Kind:      ScopeForPattern,
		Stmt:      s.Stmt,
		expanded:  true,
		childless: t.ast.Stmt(data.Body).Span,
	})
	t.createStmtScopes(pat, data.Body)
}

func (t *Tree) expandDo(id ScopeID) {
	s := t.Get(id)
	data, ok := t.ast.Do(s.Stmt)
	if !ok {
		return
	}
	if data.Body.IsValid() {
		t.createStmtScopes(id, data.Body)
	}
	for _, catchID := range data.Catches {
		clause := t.ast.CatchClause(catchID)
		catch := t.create(id, Scope{
			Kind:      ScopeCatchClause,
			Catch:     catchID,
			expanded:  true,
			childless: clause.Span,
		})
		if clause.Body.IsValid() {
			t.createStmtScopes(catch, clause.Body)
		}
	}
}

func (t *Tree) expandSwitch(id ScopeID) {
	s := t.Get(id)
	data, ok := t.ast.Switch(s.Stmt)
	if !ok {
		return
	}
	t.createExprScopes(id, data.Subject)
	for _, caseID := range data.Cases {
		clause := t.ast.SwitchCase(caseID)
		t.create(id, Scope{
			Kind:      ScopeCaseClause,
			Case:      caseID,
			childless: clause.Span,
		})
	}
}

func (t *Tree) expandCase(id ScopeID) {
	s := t.Get(id)
	clause := t.ast.SwitchCase(s.Case)
	end := s.childless.End
	if !clause.BodySpan.Empty() {
		end = clause.BodySpan.End
	}
	t.expandStmtList(id, clause.Stmts, end)
}
