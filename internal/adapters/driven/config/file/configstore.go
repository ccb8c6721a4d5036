// Package file provides the TOML configuration file for the annotation
// CLI. Configuration is read at startup by the composition root; no
// core service depends on it.
package file

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

// Config holds the user-adjustable settings.
type Config struct {
	// DataDir is where the SQLite workspace lives.
	// Empty means the store default (~/.annotate/data).
	DataDir string `toml:"data_dir"`

	// DefaultLabels overrides the built-in label set for new
	// workspaces.
	DefaultLabels []string `toml:"default_labels"`

	// CaseInsensitive is the default for gazetteer rule matching.
	CaseInsensitive bool `toml:"case_insensitive"`
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() Config {
	return Config{
		DefaultLabels:   append([]string(nil), domain.DefaultLabels...),
		CaseInsensitive: true,
	}
}

// Path returns the config file location: <configDir>/config.toml, or
// ~/.annotate/config.toml when configDir is empty.
func Path(configDir string) (string, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".annotate")
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads the config file, falling back to defaults when it does
// not exist.
func Load(configDir string) (Config, error) {
	cfg := DefaultConfig()

	path, err := Path(configDir)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	if len(cfg.DefaultLabels) == 0 {
		cfg.DefaultLabels = append([]string(nil), domain.DefaultLabels...)
	}
	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func Save(configDir string, cfg Config) error {
	path, err := Path(configDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
