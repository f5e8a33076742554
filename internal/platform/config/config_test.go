package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"neurocalm/internal/platform/config"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != config.StoreFile {
		t.Fatalf("expected file driver by default, got %q", cfg.StoreDriver)
	}
	if cfg.Gateway.DelayMinMs != 1500 || cfg.Gateway.DelayMaxMs != 0 {
		t.Fatalf("unexpected gateway defaults %+v", cfg.Gateway)
	}
	if cfg.DBPath != filepath.Join(dir, ".neurocalm", "neurocalm.db") {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
	if cfg.VerifyPassword {
		t.Fatalf("password verification must be opt-in")
	}
}

func TestLoadLayersFileEnvFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	yamlDoc := "store_driver: sqlite\ngateway:\n  delay_min_ms: 10\n  delay_max_ms: 20\nverify_password: true\n"
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte(yamlDoc), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("NEUROCALM_LOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("NEUROCALM_GATEWAY_DELAY_MIN_MS", "0")
	t.Setenv("NEUROCALM_GATEWAY_FAIL", "true")
	t.Cleanup(func() { _ = os.Unsetenv("NEUROCALM_LOG_LEVEL") })

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StoreDriver != config.StoreSQLite || !cfg.VerifyPassword {
		t.Fatalf("yaml layer not applied: %+v", cfg)
	}
	if cfg.Gateway.DelayMinMs != 0 || cfg.Gateway.DelayMaxMs != 20 || !cfg.Gateway.Fail {
		t.Fatalf("env layer not applied: %+v", cfg.Gateway)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf(".env layer not applied: %q", cfg.LogLevel)
	}
}

func TestLoadRejectsUnknownDriverAndEmptyDir(t *testing.T) {
	if _, err := config.Load(""); err == nil {
		t.Fatalf("empty data dir should fail")
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.FileName), []byte("store_driver: redis\n"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	if _, err := config.Load(dir); err == nil {
		t.Fatalf("unknown driver should fail")
	}
}
