package scopes

import (
	"fmt"
	"io"
	"strings"

	"strata/internal/source"
)

// Dump writes the fully expanded tree as an indented listing, one scope
// per line: kind, portion when meaningful, covering range, and the names
// the scope introduces.
func Dump(t *Tree, w io.Writer) error {
	t.ExpandAll()
	return t.dumpScope(w, t.root, 0)
}

func (t *Tree) dumpScope(w io.Writer, id ScopeID, depth int) error {
	s := t.Get(id)
	span := t.SpanOf(id)

	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(s.Kind.String())
	if s.Kind.IsNominalFamily() {
		fmt.Fprintf(&sb, "(%s)", s.Portion)
	}
	fmt.Fprintf(&sb, " [%d..%d)", span.Start, span.End)

	if name := t.scopeTitle(s); name != "" {
		sb.WriteString(" ")
		sb.WriteString(name)
	}
	if names := t.boundNameList(id); names != "" {
		fmt.Fprintf(&sb, " binds{%s}", names)
	}
	if s.LookupParent.IsValid() {
		fmt.Fprintf(&sb, " lookup->%d", s.LookupParent)
	}
	sb.WriteString("\n")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	for _, child := range s.Children {
		if err := t.dumpScope(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Bindings returns the names a scope introduces, in declaration order.
func (t *Tree) Bindings(id ScopeID) []Binding {
	return t.localBindings(id)
}

// Title names the declaration a scope belongs to, when it has one.
func (t *Tree) Title(id ScopeID) string {
	return t.scopeTitle(t.Get(id))
}

// scopeTitle names the declaration a scope belongs to, when it has one.
func (t *Tree) scopeTitle(s *Scope) string {
	if !s.Item.IsValid() {
		return ""
	}
	switch s.Kind {
	case ScopeStructDecl, ScopeClassDecl, ScopeProtocolDecl, ScopeExtensionDecl:
		if data, ok := t.ast.Nominal(s.Item); ok {
			return t.ast.Strings.MustLookup(data.Name)
		}
	case ScopeFunctionDecl:
		item := t.ast.Item(s.Item)
		if data, ok := t.ast.Func(s.Item); ok && data.Name != source.NoStringID {
			return t.ast.Strings.MustLookup(data.Name)
		}
		return item.Kind.String()
	}
	return ""
}

func (t *Tree) boundNameList(id ScopeID) string {
	bindings := t.localBindings(id)
	if len(bindings) == 0 {
		return ""
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, t.ast.Strings.MustLookup(b.Name))
	}
	return strings.Join(parts, " ")
}
