// Package config loads engine configuration from a tagdex.toml file, with
// defaults for every knob and an environment override for the checkpoint
// database location.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// ManifestName is the configuration file searched for near the documents
const ManifestName = "tagdex.toml"

// EnvDBPath overrides the checkpoint database path when set
const EnvDBPath = "TAGDEX_DB_PATH"

// Duration is a time.Duration that decodes from TOML strings like "30s"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config is the full engine configuration
type Config struct {
	Index   IndexConfig   `toml:"index"`
	Budget  BudgetConfig  `toml:"budget"`
	Storage StorageConfig `toml:"storage"`
}

// IndexConfig controls the index section contents
type IndexConfig struct {
	// SectionName is the level-1 heading that demarcates the index region
	SectionName string `toml:"section_name"`
	// MaxEntryText bounds the visible length of rendered entry text
	MaxEntryText int `toml:"max_entry_text"`
	// FlushEvery bounds the number of writes buffered between flushes
	FlushEvery int `toml:"flush_every"`
}

// BudgetConfig sets the per-phase time budgets. A zero budget disables
// suspension for that phase.
type BudgetConfig struct {
	Gather Duration `toml:"gather"`
	Write  Duration `toml:"write"`
}

// StorageConfig locates the checkpoint store
type StorageConfig struct {
	Path string `toml:"path"`
}

// Default returns the configuration used when no manifest exists
func Default() Config {
	return Config{
		Index: IndexConfig{
			SectionName:  "Tags",
			MaxEntryText: 240,
			FlushEvery:   25,
		},
		Budget: BudgetConfig{
			Gather: Duration{40 * time.Second},
			Write:  Duration{40 * time.Second},
		},
		Storage: StorageConfig{
			Path: "~/.tagdex/checkpoints.db",
		},
	}
}

// Load decodes a manifest file over the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadOrDefault searches startDir and its parents for a manifest and falls
// back to the defaults when none exists
func LoadOrDefault(startDir string) (Config, error) {
	path, ok, err := findManifest(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return Load(path)
}

// findManifest walks from startDir to the filesystem root looking for the
// manifest
func findManifest(startDir string) (string, bool, error) {
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

func (c *Config) applyEnv() {
	if p := os.Getenv(EnvDBPath); p != "" {
		c.Storage.Path = p
	}
}

// DBPath returns the checkpoint database path with ~ expanded, creating
// the parent directory if needed
func (c Config) DBPath() (string, error) {
	path := c.Storage.Path
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create database directory: %w", err)
	}
	return path, nil
}
