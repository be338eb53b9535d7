package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides holds the environment variables that win over the YAML file.
// Pointer fields stay nil when the variable is unset or empty.
type envOverrides struct {
	Format           string `env:"GUSTO_FORMAT"`
	Medium           string `env:"GUSTO_MEDIUM"`
	HistoryDB        string `env:"GUSTO_HISTORY_DB"`
	History          *bool  `env:"GUSTO_HISTORY"`
	BatchConcurrency *int   `env:"GUSTO_BATCH_CONCURRENCY"`
	Debug            *bool  `env:"GUSTO_DEBUG"`
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.Format != "" {
		c.Output.Format = o.Format
	}
	if o.Medium != "" {
		c.Prompt.DefaultMedium = o.Medium
	}
	if o.HistoryDB != "" {
		c.History.DatabasePath = o.HistoryDB
		c.History.Enabled = true
	}
	if o.History != nil {
		c.History.Enabled = *o.History
	}
	if o.BatchConcurrency != nil {
		c.Batch.Concurrency = *o.BatchConcurrency
	}
	if o.Debug != nil {
		c.Logging.DebugMode = *o.Debug
		if *o.Debug {
			c.Logging.Level = "debug"
		}
	}
	return nil
}
