// Package metrics provides Prometheus metrics for the STC engine.
//
// # Metrics Categories
//
//   - Operation metrics: verb invocations, durations and failures by error kind
//   - Cache metrics: parsed-tree cache hits, misses, evictions and size
//   - Descriptor metrics: registry reloads and rejected descriptor files
//   - Journal metrics: inserts and retention pruning
//   - HTTP metrics: requests by route pattern and status code
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordOperation("conform", "", elapsed)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// Every metric name is prefixed with MetricsConfig.Namespace ("stc" by
// default).
package metrics
