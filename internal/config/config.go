package config

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/monoctl/monoctl/internal/filesystem"
)

// FileName is the workspace configuration file, looked up at the
// workspace root.
const FileName = "monoctl.toml"

// Config is the workspace-level configuration.
type Config struct {
	// IgnoreProjects lists project names excluded from the workspace
	// before assembly.
	IgnoreProjects []string `toml:"ignore_projects"`

	// IgnorePaths lists path prefixes, relative to the workspace root,
	// whose projects are excluded before assembly.
	IgnorePaths []string `toml:"ignore_paths"`
}

// Load reads the configuration from the workspace root. A missing file
// yields the zero configuration; a malformed one is an error.
func Load(fs filesystem.FileSystem, rootPath string) (Config, error) {
	path := filepath.Join(rootPath, FileName)
	if !fs.Exists(path) {
		return Config{}, nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}
