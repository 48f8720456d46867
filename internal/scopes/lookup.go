package scopes

import (
	"strata/internal/ast"
	"strata/internal/source"
)

// Visibility classifies how a declaration is reachable from the lookup
// position.
type Visibility uint8

const (
	// VisLocal: parameters, pattern bindings, captures, loop and catch
	// variables, local functions and types.
	VisLocal Visibility = iota
	// VisGenericParam: a generic parameter of an enclosing declaration.
	VisGenericParam
	// VisMember: a member of the implicit self type.
	VisMember
	// VisTopLevel: a file-level declaration, visible unordered.
	VisTopLevel
)

func (v Visibility) String() string {
	switch v {
	case VisGenericParam:
		return "generic-param"
	case VisMember:
		return "member"
	case VisTopLevel:
		return "top-level"
	default:
		return "local"
	}
}

// Cascade is the tri-state answer to "would a new name at an outer level
// invalidate this lookup". It starts Unknown and is refined by the scopes
// the walk passes through: function-like bodies pin it to No, the file
// root to Yes.
type Cascade uint8

const (
	CascadeUnknown Cascade = iota
	CascadeYes
	CascadeNo
)

func (c Cascade) String() string {
	switch c {
	case CascadeYes:
		return "cascading"
	case CascadeNo:
		return "non-cascading"
	default:
		return "unknown"
	}
}

// Binding is one declaration reported to a consumer.
type Binding struct {
	Name source.StringID
	Span source.Span // the declared name's span
	Item ast.ItemID  // declaring item, when one exists
	Pat  ast.PatternID
}

// DeclConsumer receives declarations in innermost-first, declaration
// order. Returning true stops the walk.
type DeclConsumer interface {
	Found(b Binding, vis Visibility) bool
}

// Start optionally disambiguates the starting scope when several scopes
// share the lookup position (accessor bodies, condition chains). The walk
// begins at the innermost enclosing scope whose payload matches.
type Start struct {
	Item ast.ItemID
	Stmt ast.StmtID
	Expr ast.ExprID
}

func (st Start) empty() bool {
	return !st.Item.IsValid() && !st.Stmt.IsValid() && !st.Expr.IsValid()
}

func (st Start) matches(s *Scope) bool {
	if st.Item.IsValid() && s.Item == st.Item {
		return true
	}
	if st.Stmt.IsValid() && s.Stmt == st.Stmt {
		return true
	}
	return st.Expr.IsValid() && s.Expr == st.Expr
}

// Unqualified walks outward from the innermost scope at the byte offset,
// reporting every declaration named name to the consumer. Passing
// source.NoStringID reports everything in scope. The returned cascade is
// the refined tri-state for dependency tracking.
func Unqualified(t *Tree, name source.StringID, at uint32, start Start, cascade Cascade, consumer DeclConsumer) Cascade {
	cur := t.InnermostAt(at)
	if !start.empty() {
		for probe := cur; probe.IsValid(); probe = t.Get(probe).Parent {
			if start.matches(t.Get(probe)) {
				cur = probe
				break
			}
		}
	}

	// haveAlreadyLookedHere: a type reached through several of its
	// portions answers the member search once.
	searched := ast.NoItemID
	// Crossing out of a nominal declaration blocks the enclosing type's
	// members, generic parameters, and locals; only the file root still
	// answers past the barrier.
	barrier := false
	noSelf := false

	for cur.IsValid() {
		s := t.Get(cur)
		cascade = refineCascade(s, cascade)
		if s.NoSelf {
			noSelf = true
		}

		if !barrier || s.Kind == ScopeFile {
			for _, b := range t.localBindings(cur) {
				if name != source.NoStringID && b.Name != name {
					continue
				}
				if consumer.Found(b, visibilityOf(s)) {
					return cascade
				}
			}
		}

		if !barrier && !noSelf && s.Kind.IsNominalFamily() && s.Item != searched {
			searched = s.Item
			if t.reportMembers(s.Item, name, consumer) {
				return cascade
			}
		}

		if s.Kind.IsNominalFamily() && s.Portion == PortionWhole {
			barrier = true
		}
		cur = t.lookupParent(cur)
	}
	return cascade
}

// Resolve is the string-keyed convenience wrapper around Unqualified.
func Resolve(t *Tree, name string, at uint32, consumer DeclConsumer) Cascade {
	return Unqualified(t, t.ast.Strings.Intern(name), at, Start{}, CascadeUnknown, consumer)
}

func refineCascade(s *Scope, c Cascade) Cascade {
	if c != CascadeUnknown {
		return c
	}
	switch s.Kind {
	case ScopeFunctionBody, ScopeMethodBody, ScopeAccessorBody,
		ScopeClosureBody, ScopeDefaultArgument:
		return CascadeNo
	case ScopeFile:
		return CascadeYes
	default:
		return c
	}
}

func visibilityOf(s *Scope) Visibility {
	switch s.Kind {
	case ScopeGenericParams:
		return VisGenericParam
	case ScopeFile:
		return VisTopLevel
	default:
		return VisLocal
	}
}

// reportMembers answers the implicit self-type search: every member the
// nominal declaration introduces, in declaration order. For an extension
// the self type is the extended declaration, so its members answer too.
func (t *Tree) reportMembers(itemID ast.ItemID, name source.StringID, consumer DeclConsumer) bool {
	data, ok := t.ast.Nominal(itemID)
	if !ok {
		return false
	}
	if t.reportMemberList(data.Members, name, consumer) {
		return true
	}
	if t.ast.Item(itemID).Kind == ast.ItemExtension {
		if target, ok := t.ast.Nominal(t.extendedTarget(data.Name)); ok {
			return t.reportMemberList(target.Members, name, consumer)
		}
	}
	return false
}

func (t *Tree) reportMemberList(members []ast.ItemID, name source.StringID, consumer DeclConsumer) bool {
	for _, member := range members {
		for _, b := range t.itemNames(member) {
			if name != source.NoStringID && b.Name != name {
				continue
			}
			if consumer.Found(b, VisMember) {
				return true
			}
		}
	}
	return false
}

// extendedTarget resolves an extension's name against the file's
// top-level nominal declarations.
func (t *Tree) extendedTarget(name source.StringID) ast.ItemID {
	if name == source.NoStringID {
		return ast.NoItemID
	}
	for _, entry := range t.ast.File(t.file).Entries {
		if !entry.Item.IsValid() {
			continue
		}
		item := t.ast.Item(entry.Item)
		if !item.Kind.IsNominal() || item.Kind == ast.ItemExtension {
			continue
		}
		if data, ok := t.ast.Nominal(entry.Item); ok && data.Name == name {
			return entry.Item
		}
	}
	return ast.NoItemID
}

// itemNames lists the names one declaration introduces into its
// surrounding namespace. Subscripts, initializers, and deinitializers
// introduce none.
func (t *Tree) itemNames(itemID ast.ItemID) []Binding {
	item := t.ast.Item(itemID)
	switch {
	case item.Kind.IsNominal() && item.Kind != ast.ItemExtension:
		data, ok := t.ast.Nominal(itemID)
		if !ok || data.Name == source.NoStringID {
			return nil
		}
		return []Binding{{Name: data.Name, Span: data.NameSpan, Item: itemID}}
	case item.Kind == ast.ItemFunc:
		data, ok := t.ast.Func(itemID)
		if !ok || data.Name == source.NoStringID {
			return nil
		}
		return []Binding{{Name: data.Name, Span: data.NameSpan, Item: itemID}}
	case item.Kind == ast.ItemBinding:
		data, ok := t.ast.Binding(itemID)
		if !ok {
			return nil
		}
		var out []Binding
		for _, entryID := range data.Entries {
			entry := t.ast.PatternEntry(entryID)
			for _, bn := range t.ast.BoundNames(entry.Pat, nil) {
				out = append(out, Binding{Name: bn.Name, Span: bn.Span, Item: itemID, Pat: bn.Pat})
			}
		}
		return out
	}
	return nil
}

// localBindings lists the names a single scope introduces, in declaration
// order. The dump uses the same answer the lookup walk sees.
func (t *Tree) localBindings(id ScopeID) []Binding {
	s := t.Get(id)
	switch s.Kind {
	case ScopeFile:
		var out []Binding
		for _, entry := range t.ast.File(t.file).Entries {
			if entry.Item.IsValid() {
				out = append(out, t.itemNames(entry.Item)...)
			}
		}
		return out

	case ScopeGenericParams:
		gp := t.genericParam(s)
		if gp == nil || gp.Name == source.NoStringID {
			return nil
		}
		return []Binding{{Name: gp.Name, Span: gp.NameSpan, Item: s.Item}}

	case ScopeParameterList:
		return t.paramNames(t.declParams(s.Item), s.Item)

	case ScopeClosureParams:
		data, ok := t.ast.Closure(s.Expr)
		if !ok {
			return nil
		}
		var out []Binding
		for _, captureID := range data.Captures {
			capture := t.ast.Capture(captureID)
			out = append(out, Binding{Name: capture.Name, Span: capture.NameSpan})
		}
		return append(out, t.paramNames(data.Params, ast.NoItemID)...)

	case ScopePatternEntryUse:
		data, ok := t.ast.Binding(s.Item)
		if !ok || int(s.Entry) >= len(data.Entries) {
			return nil
		}
		entry := t.ast.PatternEntry(data.Entries[s.Entry])
		out := t.patternNames(entry.Pat, s.Item)
		// The chain links share one tail; only the last entry's use scope
		// materializes it, so only that scope reports its declarations.
		if int(s.Entry)+1 == len(data.Entries) {
			out = append(out, t.itemStmtNames(s.Rest)...)
		}
		return out

	case ScopeConditionPatternUse:
		if int(s.Clause) >= len(s.Conds) {
			return nil
		}
		cond := t.ast.Condition(s.Conds[s.Clause])
		return t.patternNames(cond.Pat, ast.NoItemID)

	case ScopeForPattern:
		data, ok := t.ast.For(s.Stmt)
		if !ok {
			return nil
		}
		return t.patternNames(data.Pat, ast.NoItemID)

	case ScopeCatchClause:
		clause := t.ast.CatchClause(s.Catch)
		if clause.Pat.IsValid() {
			return t.patternNames(clause.Pat, ast.NoItemID)
		}
		// A bare catch binds the implicit error constant over its body.
		return []Binding{{Name: t.ast.Strings.Intern("error"), Span: clause.Span}}

	case ScopeCaseClause:
		clause := t.ast.SwitchCase(s.Case)
		out := t.patternNames(clause.Pat, ast.NoItemID)
		return append(out, t.itemStmtNames(clause.Stmts)...)

	case ScopeAccessorBody:
		var out []Binding
		if s.IsSetter {
			out = append(out, Binding{Name: t.ast.Strings.Intern("newValue"), Span: s.childless, Item: s.Item})
		}
		return t.appendBraceItemNames(out, s.Stmt)

	case ScopeFunctionBody, ScopeMethodBody, ScopeBrace, ScopeConditionBodyUse:
		return t.appendBraceItemNames(nil, s.Stmt)

	case ScopeClosureBody:
		data, ok := t.ast.Closure(s.Expr)
		if !ok {
			return nil
		}
		return t.itemStmtNames(data.Stmts)

	case ScopeGuardUse:
		if s.RestEntries != nil {
			var out []Binding
			for _, entry := range s.RestEntries {
				if entry.Item.IsValid() && t.ast.Item(entry.Item).Kind != ast.ItemBinding {
					out = append(out, t.itemNames(entry.Item)...)
				}
			}
			return out
		}
		return t.itemStmtNames(s.Rest)
	}
	return nil
}

func (t *Tree) genericParam(s *Scope) *ast.GenericParam {
	item := t.ast.Item(s.Item)
	var list []ast.GenericParamID
	switch {
	case item.Kind.IsNominal():
		if data, ok := t.ast.Nominal(s.Item); ok {
			list = data.GenericParams
		}
	case item.Kind.IsFunctionLike():
		if data, ok := t.ast.Func(s.Item); ok {
			list = data.GenericParams
		}
	}
	if int(s.GP) >= len(list) {
		return nil
	}
	return t.ast.GenericParam(list[s.GP])
}

func (t *Tree) declParams(itemID ast.ItemID) []ast.ParamID {
	item := t.ast.Item(itemID)
	switch {
	case item.Kind.IsFunctionLike():
		if data, ok := t.ast.Func(itemID); ok {
			return data.Params
		}
	case item.Kind == ast.ItemSubscript:
		if data, ok := t.ast.Subscript(itemID); ok {
			return data.Params
		}
	}
	return nil
}

func (t *Tree) paramNames(params []ast.ParamID, itemID ast.ItemID) []Binding {
	var out []Binding
	for _, paramID := range params {
		param := t.ast.Param(paramID)
		if param.Name == source.NoStringID {
			continue
		}
		out = append(out, Binding{Name: param.Name, Span: param.NameSpan, Item: itemID})
	}
	return out
}

func (t *Tree) patternNames(pat ast.PatternID, itemID ast.ItemID) []Binding {
	if !pat.IsValid() {
		return nil
	}
	var out []Binding
	for _, bn := range t.ast.BoundNames(pat, nil) {
		out = append(out, Binding{Name: bn.Name, Span: bn.Span, Item: itemID, Pat: bn.Pat})
	}
	return out
}

func (t *Tree) appendBraceItemNames(out []Binding, braceID ast.StmtID) []Binding {
	brace, ok := t.ast.Brace(braceID)
	if !ok {
		return out
	}
	return append(out, t.itemStmtNames(brace.Stmts)...)
}

// itemStmtNames reports local functions and types declared in a statement
// run, stopping where a binding or guard hands the remainder to a deeper
// scope (that scope reports its own tail).
func (t *Tree) itemStmtNames(stmts []ast.StmtID) []Binding {
	var out []Binding
	for _, sid := range stmts {
		stmt := t.ast.Stmt(sid)
		if stmt.Kind == ast.StmtGuard {
			return out
		}
		if stmt.Kind != ast.StmtItem {
			continue
		}
		payload, ok := t.ast.ItemStmt(sid)
		if !ok {
			continue
		}
		if t.ast.Item(payload.Item).Kind == ast.ItemBinding {
			return out
		}
		out = append(out, t.itemNames(payload.Item)...)
	}
	return out
}
