// Package config loads the keynav keymap configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/keynav/pkg/tui"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default config file location
const EnvConfigPath = "KEYNAV_CONFIG"

// Keys names the navigation keys, in KeyEventFromString notation
type Keys struct {
	Forward  string `yaml:"forward"`
	Backward string `yaml:"backward"`
	Reset    string `yaml:"reset"`
}

// Config is the on-disk configuration
type Config struct {
	Keys Keys   `yaml:"keys"`
	Mode string `yaml:"mode"` // binding mode: normal, insert or global
}

// Default returns the built-in configuration
func Default() *Config {
	km := tui.DefaultKeymap()
	return &Config{
		Keys: Keys{
			Forward:  km.Forward.String(),
			Backward: km.Backward.String(),
			Reset:    km.Reset.String(),
		},
		Mode: string(tui.ModeNormal),
	}
}

// DefaultPath returns the config file path.
// Priority order: 1) KEYNAV_CONFIG env var, 2) ~/.keynav/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".keynav", "config.yaml"), nil
}

// Load reads the config file at path, or DefaultPath when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML config bytes. Fields left out keep
// their default values.
func Parse(data []byte) (*Config, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		return Default(), nil
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if _, err := cfg.Keymap(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Keymap parses the configured keys into a validated tui.Keymap
func (c *Config) Keymap() (tui.Keymap, error) {
	km, err := tui.ParseKeymap(c.Keys.Forward, c.Keys.Backward, c.Keys.Reset)
	if err != nil {
		return tui.Keymap{}, err
	}
	return km, nil
}

// BindingMode returns the keyboard mode the navigation keys are bound in
func (c *Config) BindingMode() tui.Mode {
	if c.Mode == "" {
		return tui.ModeNormal
	}
	return tui.Mode(c.Mode)
}

// Save writes the config as YAML, creating the parent directory
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
