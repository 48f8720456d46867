// Package ui renders scope trees and diagnostics for the terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"strata/internal/scopes"
	"strata/internal/source"
)

// TreeOptions controls the scope-tree renderer.
type TreeOptions struct {
	// Color enables ANSI styling.
	Color bool
	// MaxWidth truncates long lines; zero disables truncation.
	MaxWidth int
	// Positions switches the range column from byte offsets to
	// line:col pairs resolved against fs.
	Positions bool
}

type treePalette struct {
	kind    lipgloss.Style
	nominal lipgloss.Style
	title   lipgloss.Style
	span    lipgloss.Style
	binds   lipgloss.Style
	arrow   lipgloss.Style
}

func newTreePalette(color bool) treePalette {
	if !color {
		plain := lipgloss.NewStyle()
		return treePalette{plain, plain, plain, plain, plain, plain}
	}
	return treePalette{
		kind:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		nominal: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		title:   lipgloss.NewStyle().Bold(true),
		span:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		binds:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		arrow:   lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	}
}

// RenderTree writes the fully expanded scope tree as an indented
// listing, one scope per line.
func RenderTree(w io.Writer, t *scopes.Tree, fs *source.FileSet, opts TreeOptions) error {
	t.ExpandAll()
	r := treeRenderer{tree: t, fs: fs, opts: opts, pal: newTreePalette(opts.Color)}
	return r.scope(w, t.Root(), 0)
}

type treeRenderer struct {
	tree *scopes.Tree
	fs   *source.FileSet
	opts TreeOptions
	pal  treePalette
}

func (r *treeRenderer) scope(w io.Writer, id scopes.ScopeID, depth int) error {
	s := r.tree.Get(id)

	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))

	kindStyle := r.pal.kind
	if s.Kind.IsNominalFamily() {
		kindStyle = r.pal.nominal
	}
	sb.WriteString(kindStyle.Render(s.Kind.String()))
	if s.Kind.IsNominalFamily() {
		sb.WriteString(kindStyle.Render(fmt.Sprintf("(%s)", s.Portion)))
	}
	sb.WriteString(" ")
	sb.WriteString(r.pal.span.Render(r.rangeOf(id)))

	if title := r.tree.Title(id); title != "" {
		sb.WriteString(" ")
		sb.WriteString(r.pal.title.Render(title))
	}
	if names := r.bindList(id); names != "" {
		sb.WriteString(" ")
		sb.WriteString(r.pal.binds.Render("binds{" + names + "}"))
	}
	if s.LookupParent.IsValid() {
		sb.WriteString(" ")
		sb.WriteString(r.pal.arrow.Render(fmt.Sprintf("lookup->%d", s.LookupParent)))
	}

	line := sb.String()
	// Truncation only applies to unstyled output; cutting a styled line
	// would split escape sequences.
	if !r.opts.Color && r.opts.MaxWidth > 0 && runewidth.StringWidth(line) > r.opts.MaxWidth {
		line = runewidth.Truncate(line, r.opts.MaxWidth, "…")
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}

	for _, child := range s.Children {
		if err := r.scope(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (r *treeRenderer) rangeOf(id scopes.ScopeID) string {
	span := r.tree.SpanOf(id)
	if r.opts.Positions && r.fs != nil {
		start, end := r.fs.Resolve(span)
		return fmt.Sprintf("%d:%d..%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("[%d..%d)", span.Start, span.End)
}

func (r *treeRenderer) bindList(id scopes.ScopeID) string {
	bindings := r.tree.Bindings(id)
	if len(bindings) == 0 {
		return ""
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, r.tree.AST().Strings.MustLookup(b.Name))
	}
	return strings.Join(parts, " ")
}
