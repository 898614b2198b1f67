package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config rejected: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty source url", mutate: func(c *Config) { c.SourceURL = "" }},
		{name: "source url without host", mutate: func(c *Config) { c.SourceURL = "/just/a/path" }},
		{name: "empty user agent", mutate: func(c *Config) { c.UserAgent = "" }},
		{name: "empty listen addr", mutate: func(c *Config) { c.ListenAddr = "" }},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }},
		{name: "zero refresh interval", mutate: func(c *Config) { c.RefreshInterval = 0 }},
		{name: "negative max retries", mutate: func(c *Config) { c.MaxRetries = -1 }},
		{name: "negative retry backoff", mutate: func(c *Config) { c.RetryBackoff = -time.Second }},
		{name: "backoff above cap", mutate: func(c *Config) {
			c.RetryBackoff = 10 * time.Second
			c.RetryBackoffMax = time.Second
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate accepted invalid config")
			}
		})
	}
}

func TestLoadFileOverlaysValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("source_url: https://example.org/polls\nmax_retries: 5\nrefresh_interval: 1h\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := DefaultConfig()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.SourceURL != "https://example.org/polls" {
		t.Errorf("source url = %q", cfg.SourceURL)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("max retries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RefreshInterval != time.Hour {
		t.Errorf("refresh interval = %v, want 1h", cfg.RefreshInterval)
	}
	// Untouched fields keep their defaults.
	if cfg.ListenAddr != ":8000" {
		t.Errorf("listen addr = %q, want :8000", cfg.ListenAddr)
	}
}

func TestLoadFileErrors(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("LoadFile accepted a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("source_url: [unclosed"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := cfg.LoadFile(path); err == nil {
		t.Errorf("LoadFile accepted malformed YAML")
	}
}

func TestEnvHelpers(t *testing.T) {
	if _, ok := EnvString("POLLING_TEST_UNSET"); ok {
		t.Errorf("EnvString reported an unset variable as present")
	}

	t.Setenv("POLLING_TEST_STR", "hello")
	if v, ok := EnvString("POLLING_TEST_STR"); !ok || v != "hello" {
		t.Errorf("EnvString = %q, %v", v, ok)
	}

	t.Setenv("POLLING_TEST_INT", "7")
	if v, ok, err := EnvInt("POLLING_TEST_INT"); err != nil || !ok || v != 7 {
		t.Errorf("EnvInt = %d, %v, %v", v, ok, err)
	}
	t.Setenv("POLLING_TEST_INT", "seven")
	if _, _, err := EnvInt("POLLING_TEST_INT"); err == nil {
		t.Errorf("EnvInt accepted a non-integer")
	}

	t.Setenv("POLLING_TEST_DUR", "90s")
	if v, ok, err := EnvDuration("POLLING_TEST_DUR"); err != nil || !ok || v != 90*time.Second {
		t.Errorf("EnvDuration = %v, %v, %v", v, ok, err)
	}
	t.Setenv("POLLING_TEST_DUR", "soon")
	if _, _, err := EnvDuration("POLLING_TEST_DUR"); err == nil {
		t.Errorf("EnvDuration accepted a non-duration")
	}
}
