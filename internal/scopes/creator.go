package scopes

import (
	"fmt"

	"fortio.org/safecast"

	"strata/internal/ast"
)

func idx32(i int) uint32 {
	v, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("scope index overflow: %w", err))
	}
	return v
}

// expandFileEntries processes top-level entries in order. A guard hands
// the remaining entries to its use scope and stops the walk, mirroring
// the statement-list driver.
func (t *Tree) expandFileEntries(parent ScopeID, entries []ast.FileEntry, regionEnd uint32) {
	for i, entry := range entries {
		switch {
		case entry.Item.IsValid():
			t.createItemScopes(parent, entry.Item)
		case entry.Stmt.IsValid():
			stmt := t.ast.Stmt(entry.Stmt)
			tlc := t.create(parent, Scope{
				Kind:      ScopeTopLevelCode,
				Stmt:      entry.Stmt,
				childless: stmt.Span,
			})
			if stmt.Kind == ast.StmtGuard {
				t.Get(tlc).expanded = true
				deepest := t.createGuardScopes(tlc, entry.Stmt)
				if stmt.Span.End < regionEnd {
					t.create(parent, Scope{
						Kind:         ScopeGuardUse,
						Stmt:         entry.Stmt,
						LookupParent: deepest,
						RestEntries:  entries[i+1:],
						childless:    t.span(stmt.Span.End, regionEnd),
					})
				}
				return
			}
		}
	}
}

func (t *Tree) expandGuardUse(id ScopeID) {
	s := t.Get(id)
	if s.RestEntries != nil {
		t.expandFileEntries(id, s.RestEntries, s.childless.End)
		return
	}
	t.expandStmtList(id, s.Rest, s.childless.End)
}

// createItemScopes creates the scope family for one declaration. Context
// (type body, top level, statement scope) is derived from the parent
// scope where it matters.
func (t *Tree) createItemScopes(parent ScopeID, itemID ast.ItemID) {
	item := t.ast.Item(itemID)
	switch {
	case item.Kind.IsNominal():
		t.createNominalScopes(parent, itemID)
	case item.Kind.IsFunctionLike():
		t.createFunctionScopes(parent, itemID)
	case item.Kind == ast.ItemSubscript:
		t.createSubscriptScopes(parent, itemID)
	case item.Kind == ast.ItemBinding:
		t.createUnorderedBinding(parent, itemID)
	}
}

// --- nominal types and extensions ---

func (t *Tree) createNominalScopes(parent ScopeID, itemID ast.ItemID) {
	item := t.ast.Item(itemID)
	t.create(parent, Scope{
		Kind:      scopeKindForItem(item.Kind),
		Portion:   PortionWhole,
		Item:      itemID,
		childless: item.Span,
	})
}

// expandNominalWhole attaches the generic parameter chain and, inside its
// innermost link, the where and body portions.
func (t *Tree) expandNominalWhole(id ScopeID) {
	s := t.Get(id)
	item := t.ast.Item(s.Item)
	data, ok := t.ast.Nominal(s.Item)
	if !ok {
		return
	}

	inner := id
	for i, gpID := range data.GenericParams {
		gp := t.ast.GenericParam(gpID)
		inner = t.create(inner, Scope{
			Kind:      ScopeGenericParams,
			Item:      s.Item,
			GP:        idx32(i),
			expanded:  true,
			childless: t.span(gp.NameSpan.Start, item.Span.End),
		})
	}
	if !data.WhereSpan.Empty() {
		t.create(inner, Scope{
			Kind:      s.Kind,
			Portion:   PortionWhere,
			Item:      s.Item,
			expanded:  true,
			childless: data.WhereSpan,
		})
	}
	if !data.BodySpan.Empty() {
		t.create(inner, Scope{
			Kind:      s.Kind,
			Portion:   PortionBody,
			Item:      s.Item,
			childless: data.BodySpan,
		})
	}
}

func (t *Tree) expandNominalBody(id ScopeID) {
	s := t.Get(id)
	data, ok := t.ast.Nominal(s.Item)
	if !ok {
		return
	}
	for _, member := range data.Members {
		t.createItemScopes(id, member)
	}
}

// --- functions ---

func (t *Tree) createFunctionScopes(parent ScopeID, itemID ast.ItemID) {
	item := t.ast.Item(itemID)
	t.create(parent, Scope{
		Kind:      ScopeFunctionDecl,
		Item:      itemID,
		childless: item.Span,
	})
}

func (t *Tree) expandFunctionDecl(id ScopeID) {
	s := t.Get(id)
	item := t.ast.Item(s.Item)
	data, ok := t.ast.Func(s.Item)
	if !ok {
		return
	}

	// Specialize attributes come first in source order; their lookup
	// parent is patched to the innermost generic scope below.
	var attrScopes []ScopeID
	for _, attrID := range data.Attrs {
		attr := t.ast.Attr(attrID)
		if attr.Kind != ast.AttrSpecialize {
			continue
		}
		sp := t.create(id, Scope{
			Kind:      ScopeSpecializeAttr,
			Item:      s.Item,
			Attr:      attrID,
			expanded:  true,
			childless: attr.Span,
		})
		for _, arg := range attr.Args {
			t.createExprScopes(sp, arg)
		}
		attrScopes = append(attrScopes, sp)
	}

	inner := id
	for i, gpID := range data.GenericParams {
		gp := t.ast.GenericParam(gpID)
		inner = t.create(inner, Scope{
			Kind:      ScopeGenericParams,
			Item:      s.Item,
			GP:        idx32(i),
			expanded:  true,
			childless: t.span(gp.NameSpan.Start, item.Span.End),
		})
	}
	if inner != id {
		for _, sp := range attrScopes {
			t.Get(sp).LookupParent = inner
		}
	}

	bodyParent := inner
	if !data.ParamsSpan.Empty() {
		pl := t.create(inner, Scope{
			Kind:      ScopeParameterList,
			Item:      s.Item,
			expanded:  true,
			childless: t.span(data.ParamsSpan.Start, item.Span.End),
		})
		t.createDefaultArgScopes(pl, id, data.Params)
		bodyParent = pl
	}
	if data.Body.IsValid() {
		kind := ScopeFunctionBody
		if t.enclosedByTypeBody(id) {
			kind = ScopeMethodBody
		}
		t.create(bodyParent, Scope{
			Kind:      kind,
			Item:      s.Item,
			Stmt:      data.Body,
			childless: t.ast.Stmt(data.Body).Span,
		})
	}
}

// enclosedByTypeBody reports whether the declaration scope sits directly
// inside a nominal body portion, which makes its body a method body.
func (t *Tree) enclosedByTypeBody(id ScopeID) bool {
	parent := t.Get(id).Parent
	if !parent.IsValid() {
		return false
	}
	p := t.Get(parent)
	return p.Kind.IsNominalFamily() && p.Portion == PortionBody
}

// createDefaultArgScopes isolates each default parameter value. The
// lookup parent skips past the whole function so neither sibling
// parameters nor generic parameters are visible, matching evaluation at
// the call site.
func (t *Tree) createDefaultArgScopes(pl, decl ScopeID, params []ast.ParamID) {
	outside := t.Get(decl).Parent
	for _, paramID := range params {
		param := t.ast.Param(paramID)
		if !param.Default.IsValid() {
			continue
		}
		da := t.create(pl, Scope{
			Kind:         ScopeDefaultArgument,
			Item:         t.Get(decl).Item,
			Param:        paramID,
			LookupParent: outside,
			expanded:     true,
			childless:    t.ast.Expr(param.Default).Span,
		})
		t.createExprScopes(da, param.Default)
	}
}

// --- subscripts ---

func (t *Tree) createSubscriptScopes(parent ScopeID, itemID ast.ItemID) {
	item := t.ast.Item(itemID)
	t.create(parent, Scope{
		Kind:      ScopeSubscriptDecl,
		Item:      itemID,
		childless: item.Span,
	})
}

func (t *Tree) expandSubscriptDecl(id ScopeID) {
	s := t.Get(id)
	item := t.ast.Item(s.Item)
	data, ok := t.ast.Subscript(s.Item)
	if !ok {
		return
	}

	bodyParent := id
	if !data.ParamsSpan.Empty() {
		pl := t.create(id, Scope{
			Kind:      ScopeParameterList,
			Item:      s.Item,
			expanded:  true,
			childless: t.span(data.ParamsSpan.Start, item.Span.End),
		})
		t.createDefaultArgScopes(pl, id, data.Params)
		bodyParent = pl
	}
	t.createAccessorScopes(bodyParent, s.Item, data.GetBody, data.SetBody)
}

// createAccessorScopes attaches get/set bodies. The setter binds the
// implicit newValue name.
func (t *Tree) createAccessorScopes(parent ScopeID, itemID ast.ItemID, get, set ast.StmtID) {
	if get.IsValid() {
		t.create(parent, Scope{
			Kind:      ScopeAccessorBody,
			Item:      itemID,
			Stmt:      get,
			childless: t.ast.Stmt(get).Span,
		})
	}
	if set.IsValid() {
		t.create(parent, Scope{
			Kind:      ScopeAccessorBody,
			Item:      itemID,
			Stmt:      set,
			IsSetter:  true,
			childless: t.ast.Stmt(set).Span,
		})
	}
}

// --- pattern bindings ---

// createUnorderedBinding creates entry scopes for type-body and top-level
// bindings. Entries do not chain: member visibility is unordered and
// answered elsewhere (self-type search, file root).
func (t *Tree) createUnorderedBinding(parent ScopeID, itemID ast.ItemID) {
	item := t.ast.Item(itemID)
	data, ok := t.ast.Binding(itemID)
	if !ok {
		return
	}
	for i, entryID := range data.Entries {
		entry := t.ast.PatternEntry(entryID)
		span := entry.Span
		if i == 0 {
			// The first entry's scope absorbs the keyword and attributes.
			span = t.span(item.Span.Start, entry.Span.End)
		}
		t.create(parent, Scope{
			Kind:      ScopePatternEntryDecl,
			Item:      itemID,
			Entry:     idx32(i),
			childless: span,
		})
	}
}

// createChainedBinding starts the statement-scope matryoshka: the first
// entry's scope covers everything to the end of the region, and trailing
// statements are deferred into the use scope.
func (t *Tree) createChainedBinding(parent ScopeID, itemID ast.ItemID, rest []ast.StmtID, regionEnd uint32) {
	item := t.ast.Item(itemID)
	if _, ok := t.ast.Binding(itemID); !ok {
		return
	}
	t.create(parent, Scope{
		Kind:      ScopePatternEntryDecl,
		Item:      itemID,
		Entry:     0,
		Chained:   true,
		Rest:      rest,
		childless: t.span(item.Span.Start, regionEnd),
	})
}

func (t *Tree) expandPatternEntryDecl(id ScopeID) {
	s := t.Get(id)
	data, ok := t.ast.Binding(s.Item)
	if !ok || int(s.Entry) >= len(data.Entries) {
		return
	}
	entry := t.ast.PatternEntry(data.Entries[s.Entry])

	// Custom attributes decorate the whole binding; they hang off the
	// first entry, whose range covers their text.
	if s.Entry == 0 {
		for _, attrID := range data.Attrs {
			attr := t.ast.Attr(attrID)
			if attr.Kind != ast.AttrCustom {
				continue
			}
			wrap := t.create(id, Scope{
				Kind:      ScopeAttachedWrapper,
				Item:      s.Item,
				Attr:      attrID,
				expanded:  true,
				childless: attr.Span,
			})
			for _, arg := range attr.Args {
				t.createExprScopes(wrap, arg)
			}
		}
	}

	if entry.Init.IsValid() {
		// A stored-property initializer inside a type body cannot reach
		// the implicit self type's members.
		init := t.create(id, Scope{
			Kind:      ScopePatternEntryInit,
			Item:      s.Item,
			Entry:     s.Entry,
			NoSelf:    t.enclosedByTypeBody(id),
			expanded:  true,
			childless: t.ast.Expr(entry.Init).Span,
		})
		t.createExprScopes(init, entry.Init)
	}
	t.createAccessorScopes(id, s.Item, entry.GetBody, entry.SetBody)

	if s.Chained && entry.Span.End < s.childless.End {
		t.create(id, Scope{
			Kind:      ScopePatternEntryUse,
			Item:      s.Item,
			Entry:     s.Entry,
			Rest:      s.Rest,
			childless: t.span(entry.Span.End, s.childless.End),
		})
	}
}

// expandPatternEntryUse continues the chain with the next entry, or, past
// the last entry, materializes the deferred statements.
func (t *Tree) expandPatternEntryUse(id ScopeID) {
	s := t.Get(id)
	data, ok := t.ast.Binding(s.Item)
	if !ok {
		return
	}
	next := int(s.Entry) + 1
	if next < len(data.Entries) {
		entry := t.ast.PatternEntry(data.Entries[next])
		t.create(id, Scope{
			Kind:      ScopePatternEntryDecl,
			Item:      s.Item,
			Entry:     idx32(next),
			Chained:   true,
			Rest:      s.Rest,
			childless: t.span(entry.Span.Start, s.childless.End),
		})
		return
	}
	t.expandStmtList(id, s.Rest, s.childless.End)
}
