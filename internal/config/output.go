package config

import "fmt"

// Output formats.
const (
	FormatText     = "text"
	FormatStyled   = "styled"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// ValidFormats lists all supported output formats.
var ValidFormats = []string{FormatText, FormatStyled, FormatMarkdown, FormatJSON}

// OutputConfig controls how solutions are printed.
type OutputConfig struct {
	Format   string `yaml:"format"`    // text, styled, markdown, json
	WordWrap int    `yaml:"word_wrap"` // markdown wrap width, 0 disables wrapping
}

// Validate checks the output section.
func (o OutputConfig) Validate() error {
	if !contains(ValidFormats, o.Format) {
		return fmt.Errorf("invalid output.format: %q (valid: %v)", o.Format, ValidFormats)
	}
	if o.WordWrap < 0 {
		return fmt.Errorf("output.word_wrap must be >= 0")
	}
	return nil
}
