package config

import "time"

// Config is the root configuration structure for the STC engine.
// It contains all configuration sections for the engine, the parsed-tree
// cache, resource descriptors, the operation journal, the HTTP server and
// telemetry.
type Config struct {
	// Engine contains limits applied to every parse.
	Engine EngineConfig `yaml:"engine"`

	// Cache contains configuration for the parsed-tree cache.
	Cache CacheConfig `yaml:"cache"`

	// Descriptors contains configuration for the resource descriptor
	// registry including its source directory and watch mode.
	Descriptors DescriptorsConfig `yaml:"descriptors"`

	// Journal contains configuration for the operation journal including
	// backend selection and retention.
	Journal JournalConfig `yaml:"journal"`

	// Server contains HTTP server configuration including listen address
	// and timeouts.
	Server ServerConfig `yaml:"server"`

	// Telemetry contains configuration for observability including logging,
	// metrics, and distributed tracing.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// EngineConfig contains limits applied by the parsers.
type EngineConfig struct {
	// MaxExpressionLength is the maximum length in bytes of an STC-S
	// expression. 0 means unlimited.
	// Default: 65536
	MaxExpressionLength int `yaml:"max_expression_length"`

	// MaxDocumentBytes is the maximum size of an STC-X document.
	// Default: 4194304 (4MB)
	MaxDocumentBytes int64 `yaml:"max_document_bytes"`

	// SkipValidation disables the range checks run after a successful
	// STC-S parse (latitudes, radii, interval order).
	// Default: false
	SkipValidation bool `yaml:"skip_validation"`
}

// CacheConfig contains configuration for the parsed-tree cache.
type CacheConfig struct {
	// Enabled controls whether parsed trees are cached.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// MaxEntries bounds the number of cached trees. The least recently used
	// entry is evicted when the bound is reached.
	// Default: 1024
	MaxEntries int `yaml:"max_entries"`
}

// DescriptorsConfig contains configuration for the resource descriptor registry.
type DescriptorsConfig struct {
	// Dir is the directory holding *.stcs and *.xml descriptors. Empty
	// disables the registry.
	// Default: ""
	Dir string `yaml:"dir"`

	// Watch enables reloading descriptors when files in Dir change.
	// Default: false
	Watch bool `yaml:"watch"`

	// Debounce is the quiet period after the last file event before a
	// reload starts.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`
}

// JournalConfig contains configuration for the operation journal.
type JournalConfig struct {
	// Enabled controls whether verb invocations are recorded.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Driver selects the storage backend.
	// Options: "sqlite" (pure Go), "sqlite3" (cgo), "memory"
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// Path is the SQLite database file.
	// Default: "data/journal.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// WALMode enables Write-Ahead Logging mode.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// Retention contains retention policy configuration.
	Retention RetentionConfig `yaml:"retention"`
}

// RetentionConfig contains journal retention configuration.
type RetentionConfig struct {
	// Days is the number of days to retain records. 0 keeps records forever.
	// Default: 30
	Days int `yaml:"days"`

	// PruneSchedule is a cron expression for scheduling pruning.
	// Default: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string `yaml:"prune_schedule"`

	// MaxRecords is the maximum number of records to keep. 0 means unlimited.
	// Default: 0
	MaxRecords int64 `yaml:"max_records"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port for the server to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxBodyBytes limits request bodies.
	// Default: 1048576 (1MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Health contains health check configuration.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "stc"
	Namespace string `yaml:"namespace"`

	// DurationBuckets defines histogram buckets for operation duration (seconds).
	// Default: [0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP/gRPC collector endpoint.
	// Example: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "stc-engine"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the timeout for OTLP exports.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// HealthConfig contains health check endpoint configuration.
type HealthConfig struct {
	// LivenessPath is the path for the liveness probe endpoint.
	// Default: "/health"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath is the path for the readiness probe endpoint.
	// Default: "/ready"
	ReadinessPath string `yaml:"readiness_path"`

	// CheckTimeout is the timeout for individual component health checks.
	// Default: 5s
	CheckTimeout time.Duration `yaml:"check_timeout"`
}
