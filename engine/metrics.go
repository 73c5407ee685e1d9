package engine

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/sparqlpath/metric"
)

// engineMetrics holds Prometheus metrics for query execution.
type engineMetrics struct {
	queries       *prometheus.CounterVec   // By kind (read/update) and status (success/failure)
	queryDuration *prometheus.HistogramVec // By kind
	retries       *prometheus.CounterVec   // By kind
}

// newEngineMetrics creates and registers engine metrics with the provided registry.
func newEngineMetrics(registry *metric.MetricsRegistry) (*engineMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &engineMetrics{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sparqlpath",
			Subsystem: "engine",
			Name:      "queries_total",
			Help:      "Total number of executed queries",
		}, []string{"kind", "status"}),

		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sparqlpath",
			Subsystem: "engine",
			Name:      "query_duration_seconds",
			Help:      "Query round-trip duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
		}, []string{"kind"}),

		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sparqlpath",
			Subsystem: "engine",
			Name:      "retries_total",
			Help:      "Total number of retried query attempts",
		}, []string{"kind"}),
	}

	if err := registry.RegisterCounterVec("engine", "queries", m.queries); err != nil {
		return nil, err
	}
	if err := registry.RegisterHistogramVec("engine", "query_duration", m.queryDuration); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounterVec("engine", "retries", m.retries); err != nil {
		return nil, err
	}

	return m, nil
}

// recordQuery records the outcome and duration of one query execution.
func (m *engineMetrics) recordQuery(kind string, duration float64, err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}

	m.queries.WithLabelValues(kind, status).Inc()
	m.queryDuration.WithLabelValues(kind).Observe(duration)
}

// recordRetry counts one retried attempt.
func (m *engineMetrics) recordRetry(kind string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(kind).Inc()
}
