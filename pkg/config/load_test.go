package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stc.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
engine:
  max_expression_length: 1024
cache:
  max_entries: 16
descriptors:
  dir: "./resources"
  watch: true
  debounce: "250ms"
journal:
  enabled: true
  driver: "memory"
  retention:
    days: 7
    prune_schedule: "*/5 * * * *"
server:
  listen_address: "0.0.0.0:9090"
  read_timeout: "60s"
telemetry:
  logging:
    level: "debug"
    format: "text"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Engine.MaxExpressionLength != 1024 {
		t.Errorf("expected max expression length %d, got %d", 1024, cfg.Engine.MaxExpressionLength)
	}
	if cfg.Cache.MaxEntries != 16 {
		t.Errorf("expected max entries %d, got %d", 16, cfg.Cache.MaxEntries)
	}
	if cfg.Descriptors.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce %v, got %v", 250*time.Millisecond, cfg.Descriptors.Debounce)
	}
	if cfg.Journal.Driver != "memory" || cfg.Journal.Retention.Days != 7 {
		t.Errorf("unexpected journal config %+v", cfg.Journal)
	}
	if cfg.Server.ListenAddress != "0.0.0.0:9090" {
		t.Errorf("expected listen address %q, got %q", "0.0.0.0:9090", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 60*time.Second {
		t.Errorf("expected read timeout %v, got %v", 60*time.Second, cfg.Server.ReadTimeout)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}
}

func TestLoadConfig_KeepsTrueDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  listen_address: \"127.0.0.1:1\"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !cfg.Cache.Enabled {
		t.Error("expected cache to stay enabled")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics to stay enabled")
	}
	if !cfg.Journal.WALMode {
		t.Error("expected WAL mode to stay enabled")
	}
	if cfg.Telemetry.Tracing.SampleRatio != 1.0 {
		t.Errorf("expected sample ratio 1.0, got %g", cfg.Telemetry.Tracing.SampleRatio)
	}
}

func TestLoadConfig_ExplicitFalse(t *testing.T) {
	path := writeConfig(t, "cache:\n  enabled: false\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Cache.Enabled {
		t.Error("expected cache to be disabled")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read configuration file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unterminated\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse configuration file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, "journal:\n  driver: \"postgres\"\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "journal.driver") {
		t.Errorf("expected error to name journal.driver, got %v", err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "telemetry:\n  logging:\n    level: \"info\"\n")

	t.Setenv("STC_LOG_LEVEL", "warn")
	t.Setenv("STC_LISTEN_ADDRESS", "0.0.0.0:7000")
	t.Setenv("STC_DESCRIPTOR_DIR", "/srv/stc")
	t.Setenv("STC_JOURNAL_ENABLED", "true")
	t.Setenv("STC_JOURNAL_DRIVER", "sqlite3")
	t.Setenv("STC_METRICS_ENABLED", "false")
	t.Setenv("STC_TRACING_ENABLED", "not-a-bool")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected logging level %q, got %q", "warn", cfg.Telemetry.Logging.Level)
	}
	if cfg.Server.ListenAddress != "0.0.0.0:7000" {
		t.Errorf("expected listen address %q, got %q", "0.0.0.0:7000", cfg.Server.ListenAddress)
	}
	if cfg.Descriptors.Dir != "/srv/stc" {
		t.Errorf("expected descriptor dir %q, got %q", "/srv/stc", cfg.Descriptors.Dir)
	}
	if !cfg.Journal.Enabled || cfg.Journal.Driver != "sqlite3" {
		t.Errorf("unexpected journal config %+v", cfg.Journal)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics to be disabled")
	}
	if cfg.Telemetry.Tracing.Enabled {
		t.Error("expected malformed boolean to be ignored")
	}
}

func TestLoadConfigWithEnvOverrides_NoFile(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := LoadConfigWithEnvOverrides(path)
		if err != nil {
			t.Fatalf("LoadConfigWithEnvOverrides(%q) error = %v", path, err)
		}
		if cfg.Server.ListenAddress != DefaultListenAddress {
			t.Errorf("expected default listen address, got %q", cfg.Server.ListenAddress)
		}
	}
}

func TestLoadConfigWithEnvOverrides_InvalidOverride(t *testing.T) {
	t.Setenv("STC_LOG_LEVEL", "verbose")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "after applying environment overrides") {
		t.Errorf("unexpected error: %v", err)
	}
}
