package metrics

import (
	"time"

	"mercator-hq/stc/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics tracks the dispatcher verbs.
//
// Metrics:
//   - stc_operations_total: invocations by operation and status
//   - stc_operation_duration_seconds: latency histogram by operation
//   - stc_operation_errors_total: failures by operation and error kind
type OperationMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec
}

// NewOperationMetrics creates and registers operation metrics with the provided registry.
func NewOperationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *OperationMetrics {
	om := &OperationMetrics{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "operations_total",
				Help:      "Total number of verb invocations",
			},
			[]string{"operation", "status"},
		),

		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of verb invocations in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"operation"},
		),

		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "operation_errors_total",
				Help:      "Total number of failed verb invocations by error kind",
			},
			[]string{"operation", "kind"},
		),
	}

	registry.MustRegister(
		om.operationsTotal,
		om.operationDuration,
		om.errorsTotal,
	)

	return om
}

// Record records a single invocation.
func (om *OperationMetrics) Record(operation, kind string, duration time.Duration) {
	status := StatusSuccess
	if kind != "" {
		status = StatusError
		om.errorsTotal.WithLabelValues(operation, kind).Inc()
	}
	om.operationsTotal.WithLabelValues(operation, status).Inc()
	om.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
