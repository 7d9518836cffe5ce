package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL() != "http://127.0.0.1:8000" {
		t.Fatalf("unexpected default url %q", cfg.APIBaseURL())
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Fatalf("unexpected default timeout %v", cfg.RequestTimeout())
	}
	if cfg.API.Mock {
		t.Fatalf("mock must default to off")
	}
	if cfg.LogLevel() != "info" {
		t.Fatalf("unexpected default level %q", cfg.LogLevel())
	}
}

func TestFileValuesApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[api]
url = "http://exam.local:9000/"
mock = true
request_timeout_ms = 2500

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL() != "http://exam.local:9000" {
		t.Fatalf("expected trimmed url, got %q", cfg.APIBaseURL())
	}
	if !cfg.API.Mock {
		t.Fatalf("expected mock enabled")
	}
	if cfg.RequestTimeout() != 2500*time.Millisecond {
		t.Fatalf("unexpected timeout %v", cfg.RequestTimeout())
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("unexpected level %q", cfg.LogLevel())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api]\nurl = \"http://from-file\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("EXAMDESK_API_URL", "http://from-env")
	t.Setenv("EXAMDESK_MOCK", "true")
	t.Setenv("EXAMDESK_REQUEST_TIMEOUT_MS", "500")
	t.Setenv("EXAMDESK_MOCK_LATENCY_MS", "10")
	t.Setenv("EXAMDESK_LOG_LEVEL", "warn")

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL() != "http://from-env" {
		t.Fatalf("env must win, got %q", cfg.APIBaseURL())
	}
	if !cfg.API.Mock || cfg.RequestTimeout() != 500*time.Millisecond || cfg.MockLatency() != 10*time.Millisecond {
		t.Fatalf("env overrides not applied: %+v", cfg.API)
	}
	if cfg.LogLevel() != "warn" {
		t.Fatalf("unexpected level %q", cfg.LogLevel())
	}
}

func TestInvalidEnvValuesIgnored(t *testing.T) {
	t.Setenv("EXAMDESK_MOCK", "definitely")
	t.Setenv("EXAMDESK_REQUEST_TIMEOUT_MS", "-5")

	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Mock {
		t.Fatalf("unparsable bool must be ignored")
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Fatalf("non-positive timeout must be ignored, got %v", cfg.RequestTimeout())
	}
}
