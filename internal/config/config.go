// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	CSV        string `json:"csv,omitempty"`        // Path to the objectives CSV export
	Output     string `json:"output,omitempty"`     // Path for the generated Markdown review
	Vocab      string `json:"vocab,omitempty"`      // Path to a custom extraction vocabulary JSON
	Affinities string `json:"affinities,omitempty"` // Path to a custom category-to-section affinity JSON

	// Person overrides
	Role string `json:"role,omitempty"` // Role level, e.g. "SDE2"; inferred from titles when empty

	// Limits
	MaxChars    int `json:"max_chars,omitempty"`    // Maximum characters per bullet
	PrefixWords int `json:"prefix_words,omitempty"` // Opening-prefix width for uniqueness checks
	TimeoutSecs int `json:"timeout_secs,omitempty"` // Per-section generation timeout in seconds

	// Behavior
	APIKey  string `json:"api_key,omitempty"` // Gemini API key
	Verbose bool   `json:"verbose,omitempty"` // Print detailed stage information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.MaxChars < 0 {
		return fmt.Errorf("config error: 'max_chars' must be non-negative")
	}
	if c.PrefixWords < 0 {
		return fmt.Errorf("config error: 'prefix_words' must be non-negative")
	}
	if c.TimeoutSecs < 0 {
		return fmt.Errorf("config error: 'timeout_secs' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.CSV != "" {
		if _, err := os.Stat(c.CSV); os.IsNotExist(err) {
			return fmt.Errorf("config error: csv file not found: %s", c.CSV)
		}
	}
	if c.Vocab != "" {
		if _, err := os.Stat(c.Vocab); os.IsNotExist(err) {
			return fmt.Errorf("config error: vocabulary file not found: %s", c.Vocab)
		}
	}
	if c.Affinities != "" {
		if _, err := os.Stat(c.Affinities); os.IsNotExist(err) {
			return fmt.Errorf("config error: affinities file not found: %s", c.Affinities)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.CSV == "" {
		result.CSV = defaults.CSV
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Vocab == "" {
		result.Vocab = defaults.Vocab
	}
	if result.Affinities == "" {
		result.Affinities = defaults.Affinities
	}
	if result.Role == "" {
		result.Role = defaults.Role
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}

	// Int fields: use default if zero
	if result.MaxChars == 0 {
		result.MaxChars = defaults.MaxChars
	}
	if result.PrefixWords == 0 {
		result.PrefixWords = defaults.PrefixWords
	}
	if result.TimeoutSecs == 0 {
		result.TimeoutSecs = defaults.TimeoutSecs
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
