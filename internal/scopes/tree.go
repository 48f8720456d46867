package scopes

import (
	"strata/internal/ast"
	"strata/internal/source"
)

// Tree is the scope tree for one file. Construction is cheap: only the
// root exists until a query walks into a region, at which point the scopes
// along the path are materialized. Expansion is idempotent and the AST is
// immutable, so a fully expanded tree is identical no matter which queries
// drove it there.
type Tree struct {
	nodes *ast.Arena[Scope]
	ast   *ast.Builder
	file  ast.FileID
	root  ScopeID
}

// NewTree creates an unexpanded tree. fileSpan must cover the entire
// source text, not just the parsed entries, so that every position has an
// innermost scope.
func NewTree(builder *ast.Builder, file ast.FileID, fileSpan source.Span) *Tree {
	t := &Tree{
		nodes: ast.NewArena[Scope](1 << 6),
		ast:   builder,
		file:  file,
	}
	t.root = ScopeID(t.nodes.Allocate(Scope{
		Kind:      ScopeFile,
		childless: fileSpan,
	}))
	return t
}

func (t *Tree) Root() ScopeID { return t.root }

// AST returns the builder the tree was constructed over.
func (t *Tree) AST() *ast.Builder { return t.ast }

// File returns the AST file the tree describes.
func (t *Tree) File() ast.FileID { return t.file }

// Len reports the number of scopes materialized so far.
func (t *Tree) Len() int { return int(t.nodes.Len()) }

// Get returns the scope node, or nil for NoScopeID.
func (t *Tree) Get(id ScopeID) *Scope {
	return t.nodes.Get(uint32(id))
}

// span builds a range within the tree's file.
func (t *Tree) span(start, end uint32) source.Span {
	return source.Span{File: t.Get(t.root).childless.File, Start: start, End: end}
}

// create allocates a scope as the next child of parent and invalidates the
// memoized ranges along the ancestor chain.
func (t *Tree) create(parent ScopeID, s Scope) ScopeID {
	s.Parent = parent
	id := ScopeID(t.nodes.Allocate(s))
	p := t.Get(parent)
	p.Children = append(p.Children, id)
	t.invalidate(parent)
	return id
}

// addIgnored records the span of a child node that produces no scope of
// its own, widening the parent's covering range.
func (t *Tree) addIgnored(parent ScopeID, span source.Span) {
	if span.Empty() {
		return
	}
	s := t.Get(parent)
	if s.hasIgnored {
		s.ignored = s.ignored.Cover(span)
	} else {
		s.ignored = span
		s.hasIgnored = true
	}
	t.invalidate(parent)
}

func (t *Tree) invalidate(id ScopeID) {
	for id.IsValid() {
		s := t.Get(id)
		if !s.cachedOK {
			return
		}
		s.cachedOK = false
		id = s.Parent
	}
}

// SpanOf returns the memoized covering range: the scope's own range
// widened by ignored nodes and every child's covering range.
func (t *Tree) SpanOf(id ScopeID) source.Span {
	s := t.Get(id)
	if s.cachedOK {
		return s.cached
	}
	span := s.childless
	if s.hasIgnored {
		span = span.Cover(s.ignored)
	}
	for _, child := range s.Children {
		span = span.Cover(t.SpanOf(child))
	}
	s.cached = span
	s.cachedOK = true
	return span
}

// InnermostAt descends to the deepest scope whose range contains the byte
// offset, expanding lazily along the way. Ranges are closed at their start
// offset, so on a boundary shared by a child and the remainder of its
// parent the child wins.
func (t *Tree) InnermostAt(off uint32) ScopeID {
	cur := t.root
	for {
		t.Expand(cur)
		next := NoScopeID
		for _, child := range t.Get(cur).Children {
			if t.SpanOf(child).Contains(off) {
				next = child
				break
			}
		}
		if !next.IsValid() {
			return cur
		}
		cur = next
	}
}

// ExpandAll materializes the entire tree.
func (t *Tree) ExpandAll() {
	// Expansion appends scopes, so a plain index walk reaches every node.
	for i := uint32(1); i <= t.nodes.Len(); i++ {
		t.Expand(ScopeID(i))
	}
}

// Expand materializes the direct children of one scope. Kinds whose
// children were attached by the parent's expansion are created with the
// expanded flag already set, so this is a no-op for them.
func (t *Tree) Expand(id ScopeID) {
	s := t.Get(id)
	if s.expanded {
		return
	}
	s.expanded = true

	switch s.Kind {
	case ScopeFile:
		t.expandFileEntries(id, t.ast.File(t.file).Entries, s.childless.End)
	case ScopeTopLevelCode:
		t.createStmtScopes(id, s.Stmt)
	case ScopeStructDecl, ScopeClassDecl, ScopeProtocolDecl, ScopeExtensionDecl:
		switch s.Portion {
		case PortionWhole:
			t.expandNominalWhole(id)
		case PortionBody:
			t.expandNominalBody(id)
		case PortionWhere:
			// Constraint text declares nothing.
		}
	case ScopeFunctionDecl:
		t.expandFunctionDecl(id)
	case ScopeSubscriptDecl:
		t.expandSubscriptDecl(id)
	case ScopeFunctionBody, ScopeMethodBody, ScopeAccessorBody,
		ScopeBrace, ScopeConditionBodyUse:
		t.expandBody(id)
	case ScopeClosureBody:
		if data, ok := t.ast.Closure(s.Expr); ok {
			t.expandStmtList(id, data.Stmts, s.childless.End)
		}
	case ScopePatternEntryDecl:
		t.expandPatternEntryDecl(id)
	case ScopePatternEntryUse:
		t.expandPatternEntryUse(id)
	case ScopeGuardUse:
		t.expandGuardUse(id)
	case ScopeIfStmt:
		t.expandIf(id)
	case ScopeWhileStmt:
		t.expandWhile(id)
	case ScopeRepeatStmt:
		t.expandRepeat(id)
	case ScopeForStmt:
		t.expandFor(id)
	case ScopeDoStmt:
		t.expandDo(id)
	case ScopeSwitchStmt:
		t.expandSwitch(id)
	case ScopeCaseClause:
		t.expandCase(id)
	default:
		// Leaf or eagerly populated.
	}
}

// lookupParent returns the scope consulted after id during a lookup walk.
func (t *Tree) lookupParent(id ScopeID) ScopeID {
	s := t.Get(id)
	if s.LookupParent.IsValid() {
		return s.LookupParent
	}
	return s.Parent
}
