package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mercator-hq/stc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:         true,
		Namespace:       "test",
		DurationBuckets: []float64{0.001, 0.01, 0.1, 1},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}

	defaulted := NewCollector(&config.MetricsConfig{Enabled: true}, nil)
	if defaulted.Registry() == nil {
		t.Fatal("expected a fresh registry")
	}
	if defaulted.config.Namespace != "stc" {
		t.Errorf("Namespace = %q, want %q", defaulted.config.Namespace, "stc")
	}
}

func TestCollector_RecordOperation(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordOperation("conform", "", 2*time.Millisecond)
	collector.RecordOperation("conform", "not_implemented", time.Millisecond)
	collector.RecordOperation("resprof", "parse", time.Millisecond)

	om := collector.operationMetrics
	if got := testutil.ToFloat64(om.operationsTotal.WithLabelValues("conform", StatusSuccess)); got != 1 {
		t.Errorf("conform success = %v, want 1", got)
	}
	if got := testutil.ToFloat64(om.operationsTotal.WithLabelValues("conform", StatusError)); got != 1 {
		t.Errorf("conform error = %v, want 1", got)
	}
	if got := testutil.ToFloat64(om.errorsTotal.WithLabelValues("resprof", "parse")); got != 1 {
		t.Errorf("resprof parse errors = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(om.operationDuration); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}

func TestCollector_CacheMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordCacheHit("trees")
	collector.RecordCacheHit("trees")
	collector.RecordCacheMiss("trees")
	collector.RecordCacheEviction("trees")
	collector.UpdateCacheSize("trees", 7)

	cm := collector.cacheMetrics
	if got := testutil.ToFloat64(cm.hitsTotal.WithLabelValues("trees")); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(cm.missesTotal.WithLabelValues("trees")); got != 1 {
		t.Errorf("misses = %v, want 1", got)
	}
	if got := testutil.ToFloat64(cm.evictionsTotal.WithLabelValues("trees")); got != 1 {
		t.Errorf("evictions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(cm.entries.WithLabelValues("trees")); got != 7 {
		t.Errorf("entries = %v, want 7", got)
	}
}

func TestCollector_DescriptorAndJournal(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordDescriptorReload(true, 3)
	collector.RecordDescriptorReload(false, 2)
	collector.RecordDescriptorFailure("parse")
	collector.RecordJournalWrite(true)
	collector.RecordJournalPrune(5, 10*time.Millisecond)
	collector.RecordJournalPrune(2, 10*time.Millisecond)

	dm := collector.descriptorMetrics
	if got := testutil.ToFloat64(dm.loaded); got != 2 {
		t.Errorf("loaded = %v, want 2", got)
	}
	if got := testutil.ToFloat64(dm.reloadsTotal.WithLabelValues(StatusError)); got != 1 {
		t.Errorf("failed reloads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(dm.failuresTotal.WithLabelValues("parse")); got != 1 {
		t.Errorf("failures = %v, want 1", got)
	}

	jm := collector.journalMetrics
	if got := testutil.ToFloat64(jm.prunedTotal); got != 7 {
		t.Errorf("pruned = %v, want 7", got)
	}
	if got := testutil.ToFloat64(jm.writesTotal.WithLabelValues(StatusSuccess)); got != 1 {
		t.Errorf("writes = %v, want 1", got)
	}
}

func TestCollector_HTTPMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordHTTPRequest("POST /v1/conform", 200, time.Millisecond)
	collector.RecordHTTPRequest("", 404, time.Millisecond)

	hm := collector.httpMetrics
	if got := testutil.ToFloat64(hm.requestsTotal.WithLabelValues("POST /v1/conform", "200")); got != 1 {
		t.Errorf("conform 200 = %v, want 1", got)
	}
	if got := testutil.ToFloat64(hm.requestsTotal.WithLabelValues("unmatched", "404")); got != 1 {
		t.Errorf("unmatched 404 = %v, want 1", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordOperation("conform", "", time.Millisecond)
	collector.RecordCacheHit("trees")

	if got := testutil.ToFloat64(collector.operationMetrics.operationsTotal.WithLabelValues("conform", StatusSuccess)); got != 0 {
		t.Errorf("disabled collector recorded %v operations", got)
	}
	if got := testutil.ToFloat64(collector.cacheMetrics.hitsTotal.WithLabelValues("trees")); got != 0 {
		t.Errorf("disabled collector recorded %v hits", got)
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var collector *Collector
	collector.RecordOperation("conform", "", time.Millisecond)
	collector.RecordCacheMiss("trees")
	collector.RecordDescriptorReload(true, 1)
	collector.RecordJournalPrune(1, time.Millisecond)
	collector.RecordHTTPRequest("GET /health", 200, time.Millisecond)
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordOperation("parsex", "", time.Millisecond)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `test_operations_total{operation="parsex",status="success"} 1`) {
		t.Errorf("metrics output missing operation counter:\n%s", rec.Body.String())
	}
}
