package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				APIKey:      "file-key",
				APISecret:   "file-secret",
				ListenAddr:  ":9090",
				OutboxDir:   "/var/spool/fax",
				Timeout:     "1m",
				Concurrency: 2,
			},
			changed: map[string]bool{},
			expected: Config{
				APIKey:      "file-key",
				APISecret:   "file-secret",
				ListenAddr:  ":9090",
				OutboxDir:   "/var/spool/fax",
				Timeout:     time.Minute,
				Concurrency: 2,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				APIKey:     "file-key",
				ListenAddr: ":9090",
			},
			changed: map[string]bool{"addr": true},
			initial: Config{ListenAddr: ":7000"},
			expected: Config{
				APIKey:     "file-key",
				ListenAddr: ":7000",
			},
		},
		{
			name:       "returns error for invalid duration",
			fileConfig: FileConfig{Timeout: "forever"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)
			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.TrimSpace(`
api_key = "file-key"
api_secret = "file-secret"
callback_url = "https://example.com/phaxio"
timeout = "45s"
concurrency = 3
`)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}
	if fc.APIKey != "file-key" || fc.CallbackURL != "https://example.com/phaxio" {
		t.Errorf("FileConfig = %+v", fc)
	}
	if fc.Timeout != "45s" || fc.Concurrency != 3 {
		t.Errorf("FileConfig = %+v", fc)
	}
}

func TestLoadFileConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("api_key = "), 0o600)

	if _, err := LoadFileConfig(path); err == nil {
		t.Error("LoadFileConfig() expected error for malformed TOML")
	}
	if _, err := LoadFileConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadFileConfig() expected error for missing file")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/fax")
	if got := DefaultConfigPath(); got != filepath.Join("/home/fax", ".phaxio", "config.toml") {
		t.Errorf("DefaultConfigPath() = %s", got)
	}
}

func TestFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x")
	if FileExists(path) {
		t.Error("FileExists() = true for missing file")
	}
	os.WriteFile(path, nil, 0o600)
	if !FileExists(path) {
		t.Error("FileExists() = false for existing file")
	}
}
