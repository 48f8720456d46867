package scopes

import (
	"strata/internal/ast"
	"strata/internal/source"
)

// Scope is one node of the scope tree. Nodes live in the Tree's arena and
// refer to each other by ScopeID; which payload fields are meaningful
// depends on Kind.
type Scope struct {
	Kind    ScopeKind
	Portion Portion // nominal-family kinds only

	Parent ScopeID
	// LookupParent, when valid, replaces Parent during lookup walks. It
	// implements the non-lexical jumps: guard-use and condition-body-use
	// scopes resolve inside the condition chain, specialize attributes
	// resolve inside the generic parameter chain, and default arguments
	// resolve outside their function.
	LookupParent ScopeID
	// NextClause links a condition clause to its successor in the list.
	NextClause ScopeID
	Children   []ScopeID

	Item  ast.ItemID
	Stmt  ast.StmtID
	Expr  ast.ExprID
	Attr  ast.AttrID
	Case  ast.SwitchCaseID
	Catch ast.CatchClauseID
	Param ast.ParamID
	// Entry indexes into the binding item's entry list; GP into the
	// declaration's generic parameter list; Clause into Conds.
	Entry  uint32
	GP     uint32
	Clause uint32
	Conds  []ast.ConditionID

	// Rest holds the statements (or file entries) that follow a binding or
	// guard and therefore belong inside its use scope.
	Rest        []ast.StmtID
	RestEntries []ast.FileEntry

	// Chained marks a pattern entry created at statement scope, where
	// entries nest and bound names cover the remainder of the region.
	Chained bool
	// NoSelf marks a stored-property initializer: lookups passing through
	// it must not consult the implicit self type's members.
	NoSelf   bool
	IsSetter bool

	// childless is the range the scope covers on its own; ignored widens
	// it with spans of scope-free children; cached memoizes the union of
	// childless, ignored, and all child ranges.
	childless  source.Span
	ignored    source.Span
	hasIgnored bool
	cached     source.Span
	cachedOK   bool
	expanded   bool
}

// OwnSpan returns the scope's range without child contributions. Use
// Tree.SpanOf for the full covering range.
func (s *Scope) OwnSpan() source.Span { return s.childless }

// Expanded reports whether the scope's children have been materialized.
func (s *Scope) Expanded() bool { return s.expanded }
