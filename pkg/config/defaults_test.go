package config

import "testing"

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Fatalf("default configuration is invalid: %v", err)
	}

	if cfg.Engine.MaxExpressionLength != DefaultMaxExpressionLength {
		t.Errorf("MaxExpressionLength = %d, want %d", cfg.Engine.MaxExpressionLength, DefaultMaxExpressionLength)
	}
	if !cfg.Cache.Enabled || cfg.Cache.MaxEntries != DefaultCacheMaxEntries {
		t.Errorf("unexpected cache defaults %+v", cfg.Cache)
	}
	if cfg.Journal.Enabled {
		t.Error("journal should be disabled by default")
	}
	if cfg.Journal.Driver != "sqlite" || cfg.Journal.Retention.PruneSchedule != "0 3 * * *" {
		t.Errorf("unexpected journal defaults %+v", cfg.Journal)
	}
	if cfg.Telemetry.Metrics.Namespace != "stc" {
		t.Errorf("Namespace = %q, want %q", cfg.Telemetry.Metrics.Namespace, "stc")
	}
	if cfg.Telemetry.Tracing.ServiceName != "stc-engine" {
		t.Errorf("ServiceName = %q, want %q", cfg.Telemetry.Tracing.ServiceName, "stc-engine")
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Server.ListenAddress = "0.0.0.0:1"
	ApplyDefaults(cfg)

	if cfg.Server.ListenAddress != "0.0.0.0:1" {
		t.Errorf("ApplyDefaults overwrote a set value: %q", cfg.Server.ListenAddress)
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) != len(DefaultDurationBuckets) {
		t.Errorf("got %d buckets, want %d", len(cfg.Telemetry.Metrics.DurationBuckets), len(DefaultDurationBuckets))
	}

	cfg.Telemetry.Metrics.DurationBuckets[0] = 42
	if DefaultDurationBuckets[0] == 42 {
		t.Error("ApplyDefaults shares the default bucket slice")
	}
}
