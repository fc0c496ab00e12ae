package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	os.WriteFile(cfgPath, []byte(`
api_key = "file-key"
api_secret = "file-secret"
listen_addr = ":9000"
log_level = "warn"
`), 0o600)

	clearEnv(t)
	t.Setenv("PHAXIO_API_SECRET", "env-secret")
	t.Setenv("PHAXIO_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	cfg.LogLevel = "error"
	changed := map[string]bool{"log-level": true}

	if err := Load(&cfg, cfgPath, "", changed); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIKey != "file-key" {
		t.Errorf("APIKey = %s, want file value", cfg.APIKey)
	}
	if cfg.APISecret != "env-secret" {
		t.Errorf("APISecret = %s, want env value", cfg.APISecret)
	}
	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %s, want file value", cfg.ListenAddr)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %s, want flag value", cfg.LogLevel)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	os.WriteFile(envPath, []byte("PHAXIO_API_KEY=dotenv-key\nPHAXIO_API_SECRET=dotenv-secret\n"), 0o600)

	clearEnv(t)
	// Registered so the variables set by godotenv are restored afterwards.
	t.Setenv("PHAXIO_API_KEY", "")
	t.Setenv("PHAXIO_API_SECRET", "")
	os.Unsetenv("PHAXIO_API_KEY")
	os.Unsetenv("PHAXIO_API_SECRET")
	t.Setenv("HOME", dir)

	cfg := DefaultConfig()
	if err := Load(&cfg, "", envPath, map[string]bool{}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "dotenv-key" || cfg.APISecret != "dotenv-secret" {
		t.Errorf("credentials = %s/%s", cfg.APIKey, cfg.APISecret)
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	clearEnv(t)
	t.Setenv("HOME", dir)
	t.Setenv("PHAXIO_API_KEY", "k")
	t.Setenv("PHAXIO_API_SECRET", "s")

	cfg := DefaultConfig()
	if err := Load(&cfg, "", filepath.Join(dir, ".env"), map[string]bool{}); err != nil {
		t.Errorf("Load() error = %v, want nil for missing optional files", err)
	}

	cfg = DefaultConfig()
	if err := Load(&cfg, filepath.Join(dir, "nope.toml"), "", map[string]bool{}); err == nil {
		t.Error("Load() expected error for an explicit config path that does not exist")
	}
}

func TestLoad_RequiresCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	if err := Load(&cfg, "", "", map[string]bool{}); err == nil {
		t.Error("Load() expected error without credentials")
	}
}
