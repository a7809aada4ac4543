package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harrison/dirsh/internal/logger"
	"github.com/harrison/dirsh/internal/search"
)

// Config represents dirsh configuration options
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFile, when set, receives a copy of every log line
	LogFile string `yaml:"log_file"`

	// ShowHidden is the initial hidden-entry visibility
	ShowHidden bool `yaml:"show_hidden"`

	// PermissionMatch is the default comparison for find -p (exact, all)
	PermissionMatch string `yaml:"permission_match"`

	// Color controls ANSI output (auto, always, never)
	Color string `yaml:"color"`

	// Prompt is appended to the working directory in the interactive prompt
	Prompt string `yaml:"prompt"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:        "warn",
		LogFile:         "",
		ShowHidden:      false,
		PermissionMatch: "exact",
		Color:           "auto",
		Prompt:          "> ",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointers distinguish "absent" from an explicit zero value
	type yamlConfig struct {
		LogLevel        *string `yaml:"log_level"`
		LogFile         *string `yaml:"log_file"`
		ShowHidden      *bool   `yaml:"show_hidden"`
		PermissionMatch *string `yaml:"permission_match"`
		Color           *string `yaml:"color"`
		Prompt          *string `yaml:"prompt"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.LogLevel != nil {
		cfg.LogLevel = *yamlCfg.LogLevel
	}
	if yamlCfg.LogFile != nil {
		expanded, err := ExpandHome(*yamlCfg.LogFile)
		if err != nil {
			return nil, err
		}
		cfg.LogFile = expanded
	}
	if yamlCfg.ShowHidden != nil {
		cfg.ShowHidden = *yamlCfg.ShowHidden
	}
	if yamlCfg.PermissionMatch != nil {
		cfg.PermissionMatch = *yamlCfg.PermissionMatch
	}
	if yamlCfg.Color != nil {
		cfg.Color = *yamlCfg.Color
	}
	if yamlCfg.Prompt != nil {
		cfg.Prompt = *yamlCfg.Prompt
	}

	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, showHidden *bool, noColor *bool) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if showHidden != nil {
		c.ShowHidden = *showHidden
	}
	if noColor != nil && *noColor {
		c.Color = "never"
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if _, err := search.ParsePermissionMatch(c.PermissionMatch); err != nil {
		return fmt.Errorf("invalid permission_match: %w", err)
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	return nil
}

// PermissionMode returns the parsed permission_match value. Call Validate first.
func (c *Config) PermissionMode() search.PermissionMatch {
	mode, _ := search.ParsePermissionMatch(c.PermissionMatch)
	return mode
}
