package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Workspace-relative locations.
const (
	StateDir       = ".gusto"
	ConfigFileName = "config.yaml"
	HistoryDBName  = "history.db"
	LogsDirName    = "logs"
)

// Config holds all gusto configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Rendering of solutions
	Output OutputConfig `yaml:"output"`

	// Creative prompt defaults
	Prompt PromptConfig `yaml:"prompt"`

	// Solution history database
	History HistoryConfig `yaml:"history"`

	// Batch command settings
	Batch BatchConfig `yaml:"batch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// PromptConfig configures prompt mode.
type PromptConfig struct {
	// DefaultMedium is used when --medium is not given: photo, video, music, art, poem or auto.
	DefaultMedium string `yaml:"default_medium"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "gusto",
		Version: "1.0.0",

		Output: OutputConfig{
			Format:   FormatText,
			WordWrap: 80,
		},

		Prompt: PromptConfig{
			DefaultMedium: "auto",
		},

		History: HistoryConfig{
			Enabled:      false,
			DatabasePath: filepath.Join(StateDir, HistoryDBName),
			ListLimit:    20,
		},

		Batch: BatchConfig{
			Concurrency: 4,
		},

		Logging: LoggingConfig{
			Level:     "info",
			DebugMode: false,
		},
	}
}

// DefaultPath returns <workspace>/.gusto/config.yaml.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, StateDir, ConfigFileName)
}

// Load loads configuration from a YAML file. A missing file yields the defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ValidMedia lists accepted prompt.default_medium values.
var ValidMedia = []string{"auto", "photo", "video", "music", "art", "poem"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if !contains(ValidMedia, c.Prompt.DefaultMedium) {
		return fmt.Errorf("invalid prompt.default_medium: %q (valid: %v)", c.Prompt.DefaultMedium, ValidMedia)
	}
	if err := c.Batch.Validate(); err != nil {
		return err
	}
	if c.History.Enabled && c.History.DatabasePath == "" {
		return fmt.Errorf("history.database_path is required when history is enabled")
	}
	if c.History.ListLimit < 1 {
		return fmt.Errorf("history.list_limit must be >= 1")
	}
	return nil
}

// HistoryPath resolves the history database path against the workspace.
func (c *Config) HistoryPath(workspace string) string {
	if filepath.IsAbs(c.History.DatabasePath) || c.History.DatabasePath == ":memory:" {
		return c.History.DatabasePath
	}
	return filepath.Join(workspace, c.History.DatabasePath)
}

// LogsDir returns the directory for category log files.
func LogsDir(workspace string) string {
	return filepath.Join(workspace, StateDir, LogsDirName)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
