// Package config provides YAML configuration parsing for the admin client
// CLI.
//
// This package enables running the admin client as a standalone binary with
// a configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	base_url: https://gupshup.example.com
//	csrf_token: ${GUPSHUP_CSRF_TOKEN}
//	timeout: 10s
//	retry_attempts: 3
//	retry_base_delay: 1s
//	max_concurrent: 5
//	poll_interval: 30s
//	poll_max_interval: 5m
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// minPollInterval is the minimum allowed live-update polling interval.
// This prevents accidental DoS of the admin backend with overly aggressive
// polling.
const minPollInterval = 5 * time.Second

// Defaults applied by Parse when the corresponding field is absent.
const (
	defaultTimeout         = 10 * time.Second
	defaultRetryAttempts   = 3
	defaultRetryBaseDelay  = 1 * time.Second
	defaultMaxConcurrent   = 5
	defaultPollInterval    = 30 * time.Second
	defaultPollMaxInterval = 5 * time.Minute
)

// Config is the root configuration structure for the admin client CLI.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// BaseURL is the scheme and host of the GupShup deployment.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	BaseURL string `yaml:"base_url"`

	// PathPrefix overrides the admin API path prefix.
	// Defaults to the SDK default ("/admin-panel/api/").
	PathPrefix string `yaml:"path_prefix"`

	// CSRFToken is the CSRF token attached to every request.
	// Supports environment variable substitution. When empty, the client
	// bootstraps a token from the login page cookie.
	CSRFToken string `yaml:"csrf_token"`

	// Timeout is the per-request timeout. Defaults to 10s.
	Timeout Duration `yaml:"timeout"`

	// RetryAttempts is the total attempt ceiling for retryable failures.
	// Defaults to 3.
	RetryAttempts int `yaml:"retry_attempts"`

	// RetryBaseDelay is the base delay for linear retry backoff.
	// Defaults to 1s.
	RetryBaseDelay Duration `yaml:"retry_base_delay"`

	// MaxConcurrent bounds simultaneous in-flight requests. Defaults to 5.
	MaxConcurrent int `yaml:"max_concurrent"`

	// PollInterval is the live-update polling interval. Defaults to 30s;
	// must be at least 5s.
	PollInterval Duration `yaml:"poll_interval"`

	// PollMaxInterval caps the failure backoff growth of the poll
	// interval. Defaults to 5m.
	PollMaxInterval Duration `yaml:"poll_max_interval"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with
// environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded after parsing.
// Returns an error if the file cannot be read, parsed, or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in BaseURL and CSRFToken. Defaults
// are applied for every omitted numeric/duration field, then the result is
// validated.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	expanded, err := expandEnvVars(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("base_url: %w", err)
	}
	cfg.BaseURL = expanded

	expanded, err = expandEnvVars(cfg.CSRFToken)
	if err != nil {
		return nil, fmt.Errorf("csrf_token: %w", err)
	}
	cfg.CSRFToken = expanded

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in zero-valued fields.
func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = Duration(defaultTimeout)
	}
	if c.RetryAttempts == 0 {
		c.RetryAttempts = defaultRetryAttempts
	}
	if c.RetryBaseDelay == 0 {
		c.RetryBaseDelay = Duration(defaultRetryBaseDelay)
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = defaultMaxConcurrent
	}
	if c.PollInterval == 0 {
		c.PollInterval = Duration(defaultPollInterval)
	}
	if c.PollMaxInterval == 0 {
		c.PollMaxInterval = Duration(defaultPollMaxInterval)
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https, got %q", parsed.Scheme)
	}

	if c.Timeout.Duration() <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.RetryAttempts < 1 {
		return errors.New("retry_attempts must be at least 1")
	}
	if c.RetryBaseDelay.Duration() < 0 {
		return errors.New("retry_base_delay cannot be negative")
	}
	if c.MaxConcurrent < 1 {
		return errors.New("max_concurrent must be at least 1")
	}
	if c.PollInterval.Duration() < minPollInterval {
		return fmt.Errorf("poll_interval must be at least %s", minPollInterval)
	}
	if c.PollMaxInterval.Duration() < c.PollInterval.Duration() {
		return errors.New("poll_max_interval must be at least poll_interval")
	}
	return nil
}
