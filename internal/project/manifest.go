// Package project locates and parses strata.toml, the per-project
// manifest that names the package and lists its source directories.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the upward search looks for.
const ManifestName = "strata.toml"

// Manifest is a loaded strata.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the TOML layout of strata.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Sources SourcesConfig `toml:"sources"`
}

// PackageConfig is the [package] section.
type PackageConfig struct {
	Name string `toml:"name"`
}

// SourcesConfig is the [sources] section. Dirs are relative to the
// manifest's directory; an absent section means the root itself.
type SourcesConfig struct {
	Dirs []string `toml:"dirs"`
}

// FindManifest walks up from startDir to locate strata.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load discovers and parses the nearest manifest above startDir. The
// second return value reports whether a manifest was found at all.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses a manifest file and validates the required keys.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	return cfg, nil
}

// SourceDirs resolves the manifest's source directories to absolute
// paths, validating that each stays inside the project root.
func (m *Manifest) SourceDirs() ([]string, error) {
	dirs := m.Config.Sources.Dirs
	if len(dirs) == 0 {
		return []string{m.Root}, nil
	}
	resolved := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if filepath.IsAbs(dir) {
			return nil, fmt.Errorf("%s: [sources].dirs entry %q must be relative", m.Path, dir)
		}
		clean := filepath.Clean(filepath.FromSlash(dir))
		full := filepath.Join(m.Root, clean)
		if !pathWithin(m.Root, full) {
			return nil, fmt.Errorf("%s: [sources].dirs entry %q escapes the project root", m.Path, dir)
		}
		info, err := os.Stat(full)
		if err != nil {
			return nil, fmt.Errorf("%s: [sources].dirs entry %q: %w", m.Path, dir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s: [sources].dirs entry %q is not a directory", m.Path, dir)
		}
		resolved = append(resolved, full)
	}
	if len(resolved) == 0 {
		return []string{m.Root}, nil
	}
	return resolved, nil
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
