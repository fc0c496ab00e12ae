package cliconfig

import (
	"os"
)

// ApplyEnvConfig applies PHAXIO_* environment variables. Flags in changed
// take precedence.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("base-url", os.Getenv("PHAXIO_BASE_URL"), &cfg.BaseURL)
	s.setString("api-key", os.Getenv("PHAXIO_API_KEY"), &cfg.APIKey)
	s.setString("api-secret", os.Getenv("PHAXIO_API_SECRET"), &cfg.APISecret)
	s.setString("callback-url", os.Getenv("PHAXIO_CALLBACK_URL"), &cfg.CallbackURL)
	s.setString("callback-token", os.Getenv("PHAXIO_CALLBACK_TOKEN"), &cfg.CallbackToken)
	s.setString("addr", os.Getenv("PHAXIO_LISTEN_ADDR"), &cfg.ListenAddr)
	s.setString("dir", os.Getenv("PHAXIO_OUTBOX_DIR"), &cfg.OutboxDir)
	s.setString("log-level", os.Getenv("PHAXIO_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-file", os.Getenv("PHAXIO_LOG_FILE"), &cfg.LogFile)

	if err := s.setDuration("timeout", os.Getenv("PHAXIO_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setIntFromString("concurrency", os.Getenv("PHAXIO_CONCURRENCY"), &cfg.Concurrency); err != nil {
		return err
	}
	return nil
}
