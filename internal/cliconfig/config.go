// Package cliconfig loads the configuration of the phaxio command.
package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/faxkit/phaxio-go/internal/api"
)

// Config holds CLI configuration for the phaxio command.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string

	CallbackURL   string
	CallbackToken string
	ListenAddr    string

	OutboxDir string

	Timeout     time.Duration
	Concurrency int

	LogLevel string
	LogFile  string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		BaseURL:     api.DefaultBaseURL,
		ListenAddr:  ":8080",
		Timeout:     api.DefaultTimeout,
		Concurrency: 4,
		LogLevel:    "info",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api-key is required (flag, PHAXIO_API_KEY or config file)")
	}
	if c.APISecret == "" {
		return fmt.Errorf("api-secret is required (flag, PHAXIO_API_SECRET or config file)")
	}

	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.BaseURL == "" {
		c.BaseURL = api.DefaultBaseURL
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	return nil
}

// Masked returns a copy safe to log.
func (c Config) Masked() Config {
	if c.APISecret != "" {
		c.APISecret = "*****"
	}
	if c.CallbackToken != "" {
		c.CallbackToken = "*****"
	}
	return c
}

// configSetter applies values only where the matching flag was not set
// explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses an environment value. Non-positive values are ignored.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}
