package scopes

import (
	"fmt"
)

// Verify checks the structural invariants over every materialized scope:
// parent links are consistent, children sort by position and do not
// overlap, every child's range nests inside its parent's, lookup parents
// are real scopes, and memoized ranges match a recomputation. Intended
// for tests and debug builds; the walk itself never needs it.
func (t *Tree) Verify() error {
	n := t.nodes.Len()
	for i := uint32(1); i <= n; i++ {
		id := ScopeID(i)
		s := t.Get(id)
		span := t.SpanOf(id)

		if id != t.root && !s.Parent.IsValid() {
			return fmt.Errorf("scope %d (%s): orphaned", id, s.Kind)
		}
		if s.LookupParent == id {
			return fmt.Errorf("scope %d (%s): lookup parent is itself", id, s.Kind)
		}
		if s.LookupParent.IsValid() && t.Get(s.LookupParent) == nil {
			return fmt.Errorf("scope %d (%s): dangling lookup parent", id, s.Kind)
		}

		prevEnd := span.Start
		for j, child := range s.Children {
			c := t.Get(child)
			if c.Parent != id {
				return fmt.Errorf("scope %d: child %d has parent %d", id, child, c.Parent)
			}
			childSpan := t.SpanOf(child)
			if !span.ContainsSpan(childSpan) {
				return fmt.Errorf("scope %d (%s): child %d (%s) range %v escapes %v",
					id, s.Kind, child, c.Kind, childSpan, span)
			}
			if j > 0 && childSpan.Start < prevEnd && !childSpan.Empty() {
				return fmt.Errorf("scope %d (%s): child %d (%s) overlaps predecessor at %v",
					id, s.Kind, child, c.Kind, childSpan)
			}
			if childSpan.End > prevEnd {
				prevEnd = childSpan.End
			}
		}

		// Recompute the covering range from scratch.
		fresh := s.childless
		if s.hasIgnored {
			fresh = fresh.Cover(s.ignored)
		}
		for _, child := range s.Children {
			fresh = fresh.Cover(t.SpanOf(child))
		}
		if fresh != span {
			return fmt.Errorf("scope %d (%s): cached range %v, recomputed %v",
				id, s.Kind, span, fresh)
		}
	}
	return nil
}

// MustVerify panics on the first violated invariant.
func (t *Tree) MustVerify() {
	if err := t.Verify(); err != nil {
		panic(err)
	}
}
