package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %s, want it under %s", path, root)
	}
}

func TestFindManifestAbsent(t *testing.T) {
	_, ok, err := FindManifest(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("found a manifest in an empty tree")
	}
}

func TestLoadValidatesPackageName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[package]\n")
	if _, _, err := Load(root); err == nil {
		t.Fatalf("expected missing [package].name error")
	}

	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname = \"demo\"\n")
	m, ok, err := Load(root)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("name = %q", m.Config.Package.Name)
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
}

func TestSourceDirsDefaultToRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname = \"demo\"\n")
	m, _, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	dirs, err := m.SourceDirs()
	if err != nil {
		t.Fatalf("SourceDirs: %v", err)
	}
	if len(dirs) != 1 || dirs[0] != root {
		t.Fatalf("dirs = %v", dirs)
	}
}

func TestSourceDirsResolveAndValidate(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName),
		"[package]\nname = \"demo\"\n[sources]\ndirs = [\"src\"]\n")
	if err := os.MkdirAll(filepath.Join(root, "src"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, _, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	dirs, err := m.SourceDirs()
	if err != nil {
		t.Fatalf("SourceDirs: %v", err)
	}
	if len(dirs) != 1 || dirs[0] != filepath.Join(root, "src") {
		t.Fatalf("dirs = %v", dirs)
	}

	m.Config.Sources.Dirs = []string{"../outside"}
	if _, err := m.SourceDirs(); err == nil {
		t.Fatalf("expected an escape error for ../outside")
	}
}
