package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pkgshift/internal/toolchain"
)

// Config captures optional operator settings. The tool runs fine without a
// config file; everything here has a default.
type Config struct {
	Version int `yaml:"version"`

	// TargetRoot is the default destination root, overridable by --target.
	TargetRoot string `yaml:"target_root"`

	// Disabled lists tool-chain names excluded from detection and
	// configuration.
	Disabled []string `yaml:"disabled"`

	// ExtraLegacyPaths appends candidate legacy cache directories per
	// tool-chain, consulted after the built-in ones.
	ExtraLegacyPaths map[string][]string `yaml:"extra_legacy_paths"`

	Log LogConfig `yaml:"log"`
}

// LogConfig controls the rotated run log.
type LogConfig struct {
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version: 1,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads the config file at path. A missing file yields the defaults; a
// malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	for _, name := range c.Disabled {
		if _, ok := toolchain.Lookup(name); !ok {
			return fmt.Errorf("disabled references unknown tool-chain %q", name)
		}
	}
	for name := range c.ExtraLegacyPaths {
		if _, ok := toolchain.Lookup(name); !ok {
			return fmt.Errorf("extra_legacy_paths references unknown tool-chain %q", name)
		}
	}
	return nil
}

// Apply filters disabled tool-chains out of specs and appends any extra
// legacy paths, preserving registry order.
func (c Config) Apply(specs []toolchain.Spec) []toolchain.Spec {
	disabled := make(map[string]bool, len(c.Disabled))
	for _, name := range c.Disabled {
		disabled[name] = true
	}

	out := make([]toolchain.Spec, 0, len(specs))
	for _, spec := range specs {
		if disabled[spec.Name] {
			continue
		}
		if extra := c.ExtraLegacyPaths[spec.Name]; len(extra) > 0 {
			spec.LegacyTemplates = append(append([]string{}, spec.LegacyTemplates...), extra...)
		}
		out = append(out, spec)
	}
	return out
}
