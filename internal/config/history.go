package config

import "fmt"

// HistoryConfig configures the solution history database.
type HistoryConfig struct {
	// Record every solution to SQLite
	Enabled bool `yaml:"enabled"`

	// Relative paths resolve against the workspace
	DatabasePath string `yaml:"database_path"`

	// Default row count for `gusto history`
	ListLimit int `yaml:"list_limit"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	// Max problems solved in parallel
	Concurrency int `yaml:"concurrency"`
}

// Validate checks the batch section.
func (b BatchConfig) Validate() error {
	if b.Concurrency < 1 {
		return fmt.Errorf("batch.concurrency must be >= 1")
	}
	return nil
}
