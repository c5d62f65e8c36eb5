package config

import (
	"fmt"
	"os"
	"path/filepath"

	"turnsmith/internal/logging"

	"gopkg.in/yaml.v3"
)

// Config holds all turnsmith configuration. It is intentionally small:
// the reconstructor has one knob worth persisting (where it writes) and
// one subsystem worth configuring (logging).
type Config struct {
	// OutputDir is the default output root used when the CLI's
	// --output-dir flag is not given.
	OutputDir string `yaml:"output_dir"`

	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns turnsmith's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "reconstructed_project",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "turnsmith.log",
		},
	}
}

// Load reads configuration from a YAML file at path. A missing file is
// not an error — DefaultConfig is returned instead, with environment
// overrides still applied.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	logging.DriverDebug("loading config from: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Driver("config file not found, using defaults: %s", path)
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes configuration to a YAML file at path, creating any missing
// parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides on top of
// whatever was loaded from disk (or the built-in defaults).
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("TURNSMITH_OUTPUT_DIR"); dir != "" {
		c.OutputDir = dir
	}
	if level := os.Getenv("TURNSMITH_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks the configuration for obviously unusable values.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}
