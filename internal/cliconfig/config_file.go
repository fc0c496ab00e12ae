package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML-friendly durations.
type FileConfig struct {
	BaseURL       string `toml:"base_url"`
	APIKey        string `toml:"api_key"`
	APISecret     string `toml:"api_secret"`
	CallbackURL   string `toml:"callback_url"`
	CallbackToken string `toml:"callback_token"`
	ListenAddr    string `toml:"listen_addr"`
	OutboxDir     string `toml:"outbox_dir"`
	Timeout       string `toml:"timeout"`
	Concurrency   int    `toml:"concurrency"`
	LogLevel      string `toml:"log_level"`
	LogFile       string `toml:"log_file"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.phaxio/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".phaxio", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies file values to cfg. Flags in changed take
// precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("base-url", fc.BaseURL, &cfg.BaseURL)
	s.setString("api-key", fc.APIKey, &cfg.APIKey)
	s.setString("api-secret", fc.APISecret, &cfg.APISecret)
	s.setString("callback-url", fc.CallbackURL, &cfg.CallbackURL)
	s.setString("callback-token", fc.CallbackToken, &cfg.CallbackToken)
	s.setString("addr", fc.ListenAddr, &cfg.ListenAddr)
	s.setString("dir", fc.OutboxDir, &cfg.OutboxDir)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)

	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}
	s.setInt("concurrency", fc.Concurrency, &cfg.Concurrency)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
