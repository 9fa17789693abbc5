package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "proptrack/internal/errors"
)

func TestLoadWritesTemplateOnFirstRun(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("template not written: %v", err)
	}
	if cfg.Storage.Path != filepath.Join(dir, "proptrack.db") {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Sync.DebounceSeconds != 2 || cfg.Logging.Level != "info" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.SyncEnabled() {
		t.Error("sync enabled without an endpoint")
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[storage]
path = "/tmp/custom.db"

[sync]
endpoint = "https://sync.example.com"
token = "secret"
debounce_seconds = 5

[logging]
level = "debug"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/custom.db" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if !cfg.SyncEnabled() || cfg.Sync.Token != "secret" {
		t.Errorf("sync config = %+v", cfg.Sync)
	}
	if cfg.Debounce() != 5*time.Second {
		t.Errorf("Debounce = %v", cfg.Debounce())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsEndpointWithoutToken(t *testing.T) {
	dir := t.TempDir()
	content := `
[sync]
endpoint = "https://sync.example.com"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected validation error for endpoint without token")
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROPTRACK_DB", "/tmp/env.db")
	t.Setenv("PROPTRACK_SYNC_ENDPOINT", "https://env.example.com")
	t.Setenv("PROPTRACK_SYNC_TOKEN", "env-token")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Path != "/tmp/env.db" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Sync.Endpoint != "https://env.example.com" || cfg.Sync.Token != "env-token" {
		t.Errorf("sync config = %+v", cfg.Sync)
	}
}

func TestValidateLogLevel(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "verbose"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown log level")
	}
	if !apperrors.Is(err, apperrors.ErrConfigInvalid) {
		t.Errorf("err = %v, want ErrConfigInvalid in chain", err)
	}
}
