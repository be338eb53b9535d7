package config

import "gusto/internal/logging"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level"`                // debug, info, warn, error
	DebugMode  bool            `yaml:"debug_mode"`           // Master toggle - false = no logging (production)
	JSONFormat bool            `yaml:"json_format"`          // One JSON object per line
	Categories map[string]bool `yaml:"categories,omitempty"` // Per-category toggles
}

// Settings converts the section for logging.Initialize.
func (c *LoggingConfig) Settings() logging.Settings {
	return logging.Settings{
		DebugMode:  c.DebugMode,
		Level:      c.Level,
		JSONFormat: c.JSONFormat,
		Categories: c.Categories,
	}
}
