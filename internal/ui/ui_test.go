package ui

import (
	"strings"
	"testing"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/lexer"
	"strata/internal/parser"
	"strata/internal/scopes"
	"strata/internal/source"
)

func buildTree(t *testing.T, src string) (*scopes.Tree, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("ui.sta", []byte(src))
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(fs.Get(id)), builder, parser.Options{})
	if res.Bag.HasErrors() {
		t.Fatalf("parse diagnostics: %+v", res.Bag.Items())
	}
	return scopes.NewTree(builder, res.File, fs.Span(id)), fs
}

func TestRenderTreePlain(t *testing.T) {
	tree, fs := buildTree(t, `
struct S {
	var x = 0
	func f(a: Int) { use(a, x) }
}
`)
	var sb strings.Builder
	if err := RenderTree(&sb, tree, fs, TreeOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"file", "struct(whole)", "struct(body)", "S", "binds{a}"} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTreePositions(t *testing.T) {
	tree, fs := buildTree(t, "func f() { use(0) }\n")
	var sb strings.Builder
	if err := RenderTree(&sb, tree, fs, TreeOptions{Positions: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(sb.String(), "1:1") {
		t.Fatalf("positions missing:\n%s", sb.String())
	}
}

func TestRenderTreeTruncates(t *testing.T) {
	tree, fs := buildTree(t, `let averyveryverylongname = 1`)
	var sb strings.Builder
	if err := RenderTree(&sb, tree, fs, TreeOptions{MaxWidth: 12}); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		if len([]rune(line)) > 13 {
			t.Fatalf("line not truncated: %q", line)
		}
	}
}

func TestPrintDiagnosticsUnderlinesSpan(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("err.sta", []byte("let x = 1\nlet y ~ 2\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  "unexpected token",
		Primary:  source.Span{File: id, Start: 16, End: 17},
	})

	var sb strings.Builder
	PrintDiagnostics(&sb, bag, fs, false)
	out := sb.String()
	if !strings.Contains(out, "err.sta:2:7: error[2001]: unexpected token") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "let y ~ 2") {
		t.Fatalf("missing context line:\n%s", out)
	}
	if !strings.Contains(out, "      ^") {
		t.Fatalf("missing caret:\n%s", out)
	}
}
