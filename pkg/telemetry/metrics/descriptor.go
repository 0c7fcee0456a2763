package metrics

import (
	"time"

	"mercator-hq/stc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// DescriptorMetrics tracks the resource descriptor registry.
type DescriptorMetrics struct {
	reloadsTotal  *prometheus.CounterVec
	loaded        prometheus.Gauge
	failuresTotal *prometheus.CounterVec
}

// NewDescriptorMetrics creates and registers descriptor metrics with the provided registry.
func NewDescriptorMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *DescriptorMetrics {
	dm := &DescriptorMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "descriptor_reloads_total",
				Help:      "Total number of descriptor registry reloads",
			},
			[]string{"status"},
		),
		loaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "descriptors_loaded",
				Help:      "Number of resource descriptors currently loaded",
			},
		),
		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "descriptor_failures_total",
				Help:      "Total number of descriptor files rejected by error kind",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(dm.reloadsTotal, dm.loaded, dm.failuresTotal)
	return dm
}

// RecordReload records a reload.
func (dm *DescriptorMetrics) RecordReload(success bool, loaded int) {
	status := StatusSuccess
	if !success {
		status = StatusError
	}
	dm.reloadsTotal.WithLabelValues(status).Inc()
	dm.loaded.Set(float64(loaded))
}

// RecordFailure records a rejected descriptor file.
func (dm *DescriptorMetrics) RecordFailure(kind string) {
	dm.failuresTotal.WithLabelValues(kind).Inc()
}

// JournalMetrics tracks the operation journal.
type JournalMetrics struct {
	writesTotal   *prometheus.CounterVec
	prunedTotal   prometheus.Counter
	pruneDuration prometheus.Histogram
}

// NewJournalMetrics creates and registers journal metrics with the provided registry.
func NewJournalMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *JournalMetrics {
	jm := &JournalMetrics{
		writesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "journal_writes_total",
				Help:      "Total number of journal inserts",
			},
			[]string{"status"},
		),
		prunedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "journal_pruned_records_total",
				Help:      "Total number of journal records deleted by retention",
			},
		),
		pruneDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "journal_prune_duration_seconds",
				Help:      "Duration of journal pruning runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
	}

	registry.MustRegister(jm.writesTotal, jm.prunedTotal, jm.pruneDuration)
	return jm
}

// RecordWrite records one insert.
func (jm *JournalMetrics) RecordWrite(success bool) {
	status := StatusSuccess
	if !success {
		status = StatusError
	}
	jm.writesTotal.WithLabelValues(status).Inc()
}

// RecordPrune records one pruning run.
func (jm *JournalMetrics) RecordPrune(deleted int64, duration time.Duration) {
	jm.prunedTotal.Add(float64(deleted))
	jm.pruneDuration.Observe(duration.Seconds())
}
