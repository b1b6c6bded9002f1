// Package config resolves the blade-code configuration from defaults,
// optional files, and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Los-Altos/blade-code/internal/env"
)

// Config captures the bladectl settings resolved from defaults, optional
// files, and environment overrides.
type Config struct {
	// OutputDir is the default directory for batch persistence when the
	// --output-dir flag is not given. Empty disables persistence.
	OutputDir string
	// Pretty selects the human-readable report rendering by default.
	Pretty bool
	// UpdaterBaseURL overrides the manifest endpoint used by self-update.
	UpdaterBaseURL string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{}
}

// Load resolves the configuration using defaults, configuration files, and
// environment overrides. The lookup order for configuration files is:
//  1. ~/.blade-code/config.toml (TOML)
//  2. ./blade.yml (YAML)
//
// Environment variables prefixed with BLADE_ have the highest precedence.
func Load() (Config, error) {
	cfg := Default()

	if err := loadHomeConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadLocalConfig(&cfg); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}

func loadHomeConfig(cfg *Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	path := filepath.Join(home, ".blade-code", "config.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyFileConfig(cfg, data, "toml"); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func loadLocalConfig(cfg *Config) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}
	path := filepath.Join(wd, "blade.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyFileConfig(cfg, data, "yaml"); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

type fileConfig struct {
	OutputDir      *string
	Pretty         *bool
	UpdaterBaseURL *string
}

func applyFileConfig(cfg *Config, data []byte, format string) error {
	var sep string
	switch format {
	case "yaml":
		sep = ":"
	case "toml":
		sep = "="
	default:
		return fmt.Errorf("unsupported format %q", format)
	}

	fc, err := parseFlat(data, sep)
	if err != nil {
		return err
	}

	if fc.OutputDir != nil {
		cfg.OutputDir = strings.TrimSpace(*fc.OutputDir)
	}
	if fc.Pretty != nil {
		cfg.Pretty = *fc.Pretty
	}
	if fc.UpdaterBaseURL != nil {
		cfg.UpdaterBaseURL = strings.TrimSpace(*fc.UpdaterBaseURL)
	}
	return nil
}

// parseFlat handles the flat key/value subset of YAML and TOML that blade
// config files use. Unknown keys are ignored.
func parseFlat(data []byte, sep string) (fileConfig, error) {
	var fc fileConfig
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		parts := strings.SplitN(trimmed, sep, 2)
		if len(parts) != 2 {
			return fileConfig{}, fmt.Errorf("invalid config line: %q", trimmed)
		}
		key := strings.TrimSpace(parts[0])
		value := trimQuotes(strings.TrimSpace(parts[1]))
		switch key {
		case "output_dir":
			fc.OutputDir = &value
		case "pretty":
			parsed, err := parseBool(value)
			if err != nil {
				return fileConfig{}, err
			}
			fc.Pretty = &parsed
		case "updater_base_url":
			fc.UpdaterBaseURL = &value
		}
	}
	return fc, nil
}

func applyEnvOverrides(cfg *Config) {
	if val, ok := env.Lookup("BLADE_OUT", "B64_OUT"); ok && strings.TrimSpace(val) != "" {
		cfg.OutputDir = strings.TrimSpace(val)
	}
	if val, ok := env.Lookup("BLADE_PRETTY", "B64_PRETTY"); ok {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			cfg.Pretty = parsed
		}
	}
	if val, ok := env.Lookup("BLADE_UPDATER_BASE_URL", "B64_UPDATER_BASE_URL"); ok && strings.TrimSpace(val) != "" {
		cfg.UpdaterBaseURL = strings.TrimSpace(val)
	}
}

func parseBool(val string) (bool, error) {
	v := strings.TrimSpace(strings.ToLower(val))
	switch v {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean: %s", val)
	}
}

func trimQuotes(val string) string {
	if len(val) >= 2 {
		if (strings.HasPrefix(val, "\"") && strings.HasSuffix(val, "\"")) ||
			(strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'")) {
			return val[1 : len(val)-1]
		}
	}
	return val
}
