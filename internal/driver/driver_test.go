package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"strata/internal/scopes"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestBuildSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main.sta", `
struct Point {
	var x = 0
	func norm() -> Int { return x }
}
`)

	res, err := Build(path, Options{Verify: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if res.Tree == nil || res.Tree.Len() < 4 {
		t.Fatalf("scope tree too small: %+v", res.Tree)
	}
}

func TestBuildReportsSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "broken.sta", `func f( {`)

	res, err := Build(path, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("expected syntax diagnostics")
	}
}

func TestBuildDirFansOut(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.sta", `let a = 1`)
	writeSource(t, dir, "nested/b.sta", `func fb() { use(0) }`)
	writeSource(t, dir, "ignored.txt", `not strata`)

	results, err := BuildDir(context.Background(), dir, Options{Jobs: 2, Verify: true})
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected two results, got %d", len(results))
	}
	// ListSourceFiles sorts, so a.sta comes first.
	if filepath.Base(results[0].Path) != "a.sta" {
		t.Fatalf("unexpected order: %s", results[0].Path)
	}
	for _, res := range results {
		if res.Tree == nil {
			t.Fatalf("%s: missing scope tree", res.Path)
		}
		if got := res.Tree.Get(res.Tree.Root()).Kind; got != scopes.ScopeFile {
			t.Fatalf("%s: root kind %v", res.Path, got)
		}
	}
}

func TestBuildDirEmpty(t *testing.T) {
	results, err := BuildDir(context.Background(), t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("BuildDir: %v", err)
	}
	if results != nil {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
