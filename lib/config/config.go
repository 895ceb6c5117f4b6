// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local use: lenient conversion.
	Development Environment = "development"
	// Production enables strict conversion unless overridden.
	Production Environment = "production"
)

// Encodings lists the text encodings bureau-textconv reads and writes.
var Encodings = []string{"utf8", "utf16le", "utf16be", "utf32le", "utf32be"}

// Config is the configuration for bureau-textconv.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// Convert configures the convert, count, and inspect subcommands.
	Convert ConvertConfig `yaml:"convert"`

	// Secret configures the secret subcommand.
	Secret SecretConfig `yaml:"secret"`

	// Log configures the command logger.
	Log LogConfig `yaml:"log"`

	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Convert *ConvertConfig `yaml:"convert,omitempty"`
	Secret  *SecretConfig  `yaml:"secret,omitempty"`
	Log     *LogConfig     `yaml:"log,omitempty"`
}

// ConvertConfig configures plain-text conversion.
type ConvertConfig struct {
	// From is the default input encoding. Default: utf8
	From string `yaml:"from"`

	// To is the default output encoding. Default: utf16le
	To string `yaml:"to"`

	// Strict rejects unpaired surrogates (including lone low
	// surrogates) and invalid UTF-8 instead of substituting U+FFFD.
	// Default: false (development), true (production)
	Strict *bool `yaml:"strict,omitempty"`
}

// SecretConfig configures the secret subcommand.
type SecretConfig struct {
	// Recipients are age1... public keys the secret is sealed to when
	// no --recipient flag is given.
	Recipients []string `yaml:"recipients"`

	// RecipientsFile is a file of age1... keys, one per line. Blank
	// lines and # comments are ignored.
	RecipientsFile string `yaml:"recipients_file"`
}

// LogConfig configures the command logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given and the
// base onto which a file is loaded.
func Default() *Config {
	return &Config{
		Environment: Development,
		Convert: ConvertConfig{
			From: "utf8",
			To:   "utf16le",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by BUREAU_TEXTCONV_CONFIG.
// If the variable is unset, Load returns Default.
func Load() (*Config, error) {
	configPath := os.Getenv("BUREAU_TEXTCONV_CONFIG")
	if configPath == "" {
		cfg := Default()
		cfg.applyEnvironmentOverrides()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path on top of
// Default. Files ending in .json or .jsonc may carry comments and
// trailing commas; they are parsed with the same field names as YAML.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".json", ".jsonc":
		// JSON is a subset of YAML once comments and trailing commas
		// are stripped.
		data = jsonc.ToJSON(data)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// IsStrict reports whether strict conversion is enabled.
func (c *Config) IsStrict() bool {
	return c.Convert.Strict != nil && *c.Convert.Strict
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		if c.Convert.Strict == nil {
			strict := true
			c.Convert.Strict = &strict
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Convert != nil {
		if overrides.Convert.From != "" {
			c.Convert.From = overrides.Convert.From
		}
		if overrides.Convert.To != "" {
			c.Convert.To = overrides.Convert.To
		}
		if overrides.Convert.Strict != nil {
			c.Convert.Strict = overrides.Convert.Strict
		}
	}

	if overrides.Secret != nil {
		if len(overrides.Secret.Recipients) > 0 {
			c.Secret.Recipients = overrides.Secret.Recipients
		}
		if overrides.Secret.RecipientsFile != "" {
			c.Secret.RecipientsFile = overrides.Secret.RecipientsFile
		}
	}

	if overrides.Log != nil && overrides.Log.Level != "" {
		c.Log.Level = overrides.Log.Level
	}
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Secret.RecipientsFile = expandVars(c.Secret.RecipientsFile, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}
	if !slices.Contains(Encodings, c.Convert.From) {
		errs = append(errs, fmt.Errorf("convert.from must be one of: %v", Encodings))
	}
	if !slices.Contains(Encodings, c.Convert.To) {
		errs = append(errs, fmt.Errorf("convert.to must be one of: %v", Encodings))
	}
	for _, recipient := range c.Secret.Recipients {
		if !strings.HasPrefix(recipient, "age1") {
			errs = append(errs, fmt.Errorf("secret.recipients: %q is not an age1... public key", recipient))
		}
	}
	levels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levels))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// RecipientKeys returns the configured recipients plus any read from
// RecipientsFile.
func (c *Config) RecipientKeys() ([]string, error) {
	keys := slices.Clone(c.Secret.Recipients)
	if c.Secret.RecipientsFile == "" {
		return keys, nil
	}

	data, err := os.ReadFile(c.Secret.RecipientsFile)
	if err != nil {
		return nil, fmt.Errorf("reading recipients file: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keys = append(keys, line)
	}
	return keys, nil
}
