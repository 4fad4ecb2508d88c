package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tinytelemetry/logsearch/internal/model"
)

func TestLoadCLIConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadCLIConfig("")
	if err != nil {
		t.Fatalf("loadCLIConfig: %v", err)
	}
	if cfg.ServerURL != model.DefaultServerURL {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.DensityBuckets != 120 {
		t.Errorf("DensityBuckets = %d", cfg.DensityBuckets)
	}
	if cfg.RefreshInterval != 0 {
		t.Errorf("RefreshInterval = %v, want disabled", cfg.RefreshInterval)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadCLIConfig_FileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := defaultConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "server-url: http://logs.internal:8000\nview: errors\nrefresh-interval: 10s\ndensity-buckets: 80\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOGSEARCH_VIEW", "access")
	t.Setenv("LOGSEARCH_REVERSE_SCROLL_WHEEL", "true")

	cfg, err := loadCLIConfig("")
	if err != nil {
		t.Fatalf("loadCLIConfig: %v", err)
	}
	if cfg.ServerURL != "http://logs.internal:8000" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.View != "access" {
		t.Errorf("View = %q, env should win over file", cfg.View)
	}
	if cfg.RefreshInterval != 10*time.Second {
		t.Errorf("RefreshInterval = %v", cfg.RefreshInterval)
	}
	if cfg.DensityBuckets != 80 {
		t.Errorf("DensityBuckets = %d", cfg.DensityBuckets)
	}
	if !cfg.ReverseScrollWheel {
		t.Error("ReverseScrollWheel should come from env")
	}
}

func TestLoadCLIConfig_ExplicitPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.yml")
	if err := os.WriteFile(path, []byte("log-level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadCLIConfig(path)
	if err != nil {
		t.Fatalf("loadCLIConfig: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadCLIConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero buckets", "density-buckets: 0\n"},
		{"negative interval", "refresh-interval: -5s\n"},
		{"malformed yaml", "server-url: [unterminated\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			path := filepath.Join(t.TempDir(), "config.yml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := loadCLIConfig(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
