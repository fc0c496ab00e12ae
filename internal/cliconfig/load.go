package cliconfig

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// Load resolves cfg from a .env file, the config file and PHAXIO_*
// variables, in that order of increasing precedence. Flags listed in changed
// always win. An empty cfgPath means DefaultConfigPath; a missing default
// file is not an error.
func Load(cfg *Config, cfgPath, envPath string, changed map[string]bool) error {
	if envPath != "" {
		// Existing environment variables are never overwritten.
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
	}

	path := cfgPath
	if path == "" {
		path = DefaultConfigPath()
	}
	if path != "" && (cfgPath != "" || FileExists(path)) {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}
	return cfg.Validate()
}
