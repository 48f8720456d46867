package scopes

import (
	"strata/internal/ast"
)

// createExprScopes walks an expression and creates scopes for every
// closure literal found. Returns the number of scopes created so callers
// can fold scope-free statements into ignored ranges.
func (t *Tree) createExprScopes(parent ScopeID, id ast.ExprID) int {
	if !id.IsValid() {
		return 0
	}
	expr := t.ast.Expr(id)
	switch expr.Kind {
	case ast.ExprClosure:
		t.createClosureScopes(parent, id)
		return 1
	case ast.ExprMember:
		if payload, ok := t.ast.Member(id); ok {
			return t.createExprScopes(parent, payload.Base)
		}
	case ast.ExprCall:
		payload, ok := t.ast.Call(id)
		if !ok {
			return 0
		}
		n := t.createExprScopes(parent, payload.Callee)
		for _, arg := range payload.Args {
			n += t.createExprScopes(parent, arg)
		}
		return n
	case ast.ExprBinary:
		payload, ok := t.ast.Binary(id)
		if !ok {
			return 0
		}
		return t.createExprScopes(parent, payload.LHS) +
			t.createExprScopes(parent, payload.RHS)
	case ast.ExprParen:
		if payload, ok := t.ast.Paren(id); ok {
			return t.createExprScopes(parent, payload.Inner)
		}
	case ast.ExprIdent, ast.ExprIntLit, ast.ExprStringLit, ast.ExprBoolLit,
		ast.ExprInvalid:
	}
	return 0
}

// createClosureScopes builds the three visibility windows of a closure:
// capture initializers evaluate outside everything, the params scope
// carries capture and parameter names, and the body scope hosts the
// statements.
func (t *Tree) createClosureScopes(parent ScopeID, id ast.ExprID) {
	expr := t.ast.Expr(id)
	data, ok := t.ast.Closure(id)
	if !ok {
		return
	}
	closure := t.create(parent, Scope{
		Kind:      ScopeClosure,
		Expr:      id,
		expanded:  true,
		childless: expr.Span,
	})

	paramsStart := expr.Span.Start
	for _, captureID := range data.Captures {
		capture := t.ast.Capture(captureID)
		t.createExprScopes(closure, capture.Init)
		if capture.Span.End > paramsStart {
			paramsStart = capture.Span.End
		}
	}

	params := t.create(closure, Scope{
		Kind:      ScopeClosureParams,
		Expr:      id,
		expanded:  true,
		childless: t.span(paramsStart, expr.Span.End),
	})

	bodyStart := paramsStart
	if data.HasIn && !data.InSpan.Empty() {
		bodyStart = data.InSpan.End
	}
	t.create(params, Scope{
		Kind:      ScopeClosureBody,
		Expr:      id,
		childless: t.span(bodyStart, expr.Span.End),
	})
}
