package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names a config file when --config is not given.
const EnvConfigPath = "ORCHID_ATELIER_CONFIG"

// FileName is the config file looked up in the working and config dirs.
const FileName = "atelier.yaml"

// Load builds the config: defaults, then the first config file found, then
// CLI flags. The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns the first existing candidate, or "".
func findConfigFile() string {
	for _, path := range []string{
		FileName,
		filepath.Join(ConfigDir(), FileName),
	} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "OrchidAtelier")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "OrchidAtelier")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "orchid-atelier")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "orchid-atelier")
	}
}

// loadFromFile merges a YAML file over cfg. Unknown keys are rejected so a
// misspelt setting does not silently keep its default.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
