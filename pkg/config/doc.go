// Package config provides configuration management for the STC engine.
//
// Configuration is read from a YAML file decoded on top of the defaults,
// then overridden from the environment and validated.
//
//	cfg, err := config.LoadConfig("stc.yaml")
//	cfg, err := config.LoadConfigWithEnvOverrides("stc.yaml")
//
// # Environment Variable Overrides
//
//   - STC_LOG_LEVEL, STC_LOG_FORMAT
//   - STC_LISTEN_ADDRESS
//   - STC_DESCRIPTOR_DIR
//   - STC_JOURNAL_ENABLED, STC_JOURNAL_DRIVER, STC_JOURNAL_PATH
//   - STC_METRICS_ENABLED
//   - STC_TRACING_ENABLED, STC_TRACING_ENDPOINT
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Singleton Pattern
//
// Commands initialize the process-wide configuration once and read it back:
//
//	if err := config.Initialize(path); err != nil { ... }
//	cfg := config.GetConfig()
package config
