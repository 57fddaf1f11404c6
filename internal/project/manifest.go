// Package project locates and parses the graft.toml manifest. The manifest
// supplies defaults the CLI uses when flags are absent.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const manifestName = "graft.toml"

// Manifest is a parsed graft.toml plus where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Preprocess PreprocessConfig `toml:"preprocess"`
}

// PreprocessConfig is the [preprocess] table.
type PreprocessConfig struct {
	// Root is the merge entry point, relative to the manifest directory.
	Root     string `toml:"root"`
	MaxDepth int    `toml:"max_depth"`
	Jobs     int    `toml:"jobs"`
}

// Find walks up from startDir to locate graft.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
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

// Load finds and parses the nearest manifest. ok=false means none exists,
// which is not an error.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := parse(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func parse(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("preprocess") {
		return Config{}, fmt.Errorf("%s: missing [preprocess]", path)
	}
	if !meta.IsDefined("preprocess", "root") || strings.TrimSpace(cfg.Preprocess.Root) == "" {
		return Config{}, fmt.Errorf("%s: missing [preprocess].root", path)
	}
	if cfg.Preprocess.MaxDepth < 0 {
		return Config{}, fmt.Errorf("%s: [preprocess].max_depth must be non-negative", path)
	}
	if cfg.Preprocess.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [preprocess].jobs must be non-negative", path)
	}
	return cfg, nil
}

// RootURL resolves the manifest's root entry against the manifest directory.
func (m *Manifest) RootURL() string {
	if filepath.IsAbs(m.Config.Preprocess.Root) {
		return m.Config.Preprocess.Root
	}
	return filepath.Join(m.Root, m.Config.Preprocess.Root)
}
