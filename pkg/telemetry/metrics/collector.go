package metrics

import (
	"time"

	"mercator-hq/stc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Collector owns every Prometheus metric of the engine and the server.
// All Record methods are safe on a nil Collector and on a disabled one, so
// callers never need to check whether metrics are configured.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	operationMetrics  *OperationMetrics
	cacheMetrics      *CacheMetrics
	descriptorMetrics *DescriptorMetrics
	journalMetrics    *JournalMetrics
	httpMetrics       *HTTPMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	return &Collector{
		config:            cfg,
		registry:          registry,
		operationMetrics:  NewOperationMetrics(cfg, registry),
		cacheMetrics:      NewCacheMetrics(cfg, registry),
		descriptorMetrics: NewDescriptorMetrics(cfg, registry),
		journalMetrics:    NewJournalMetrics(cfg, registry),
		httpMetrics:       NewHTTPMetrics(cfg, registry),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordOperation records one verb invocation. kind is empty on success and
// the error kind ("parse", "xml", "not_implemented", "value", "internal")
// otherwise.
func (c *Collector) RecordOperation(operation, kind string, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.operationMetrics.Record(operation, kind, duration)
}

// RecordCacheHit records a cache hit.
func (c *Collector) RecordCacheHit(cacheName string) {
	if !c.enabled() {
		return
	}
	c.cacheMetrics.RecordHit(cacheName)
}

// RecordCacheMiss records a cache miss.
func (c *Collector) RecordCacheMiss(cacheName string) {
	if !c.enabled() {
		return
	}
	c.cacheMetrics.RecordMiss(cacheName)
}

// RecordCacheEviction records entries removed from a cache.
func (c *Collector) RecordCacheEviction(cacheName string) {
	if !c.enabled() {
		return
	}
	c.cacheMetrics.RecordEviction(cacheName)
}

// UpdateCacheSize updates the current size of a cache.
func (c *Collector) UpdateCacheSize(cacheName string, size int) {
	if !c.enabled() {
		return
	}
	c.cacheMetrics.UpdateSize(cacheName, size)
}

// RecordDescriptorReload records a registry reload and the number of
// descriptors it left loaded.
func (c *Collector) RecordDescriptorReload(success bool, loaded int) {
	if !c.enabled() {
		return
	}
	c.descriptorMetrics.RecordReload(success, loaded)
}

// RecordDescriptorFailure records a descriptor file that could not be parsed.
func (c *Collector) RecordDescriptorFailure(kind string) {
	if !c.enabled() {
		return
	}
	c.descriptorMetrics.RecordFailure(kind)
}

// RecordJournalWrite records the outcome of one journal insert.
func (c *Collector) RecordJournalWrite(success bool) {
	if !c.enabled() {
		return
	}
	c.journalMetrics.RecordWrite(success)
}

// RecordJournalPrune records a pruning run and the records it deleted.
func (c *Collector) RecordJournalPrune(deleted int64, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.journalMetrics.RecordPrune(deleted, duration)
}

// RecordHTTPRequest records a served HTTP request.
func (c *Collector) RecordHTTPRequest(route string, status int, duration time.Duration) {
	if !c.enabled() {
		return
	}
	c.httpMetrics.Record(route, status, duration)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
