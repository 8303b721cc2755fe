// Package metrics exposes Prometheus metrics for the social API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors recorded by the server and seed tool.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	httpRequests      *prometheus.CounterVec
	seedRows          *prometheus.CounterVec
}

// New creates a registry with the API metrics and Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "social",
			Name:      "graphql_operations_total",
			Help:      "Resolved GraphQL fields by operation and status.",
		}, []string{"operation", "status"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "social",
			Name:      "graphql_operation_duration_seconds",
			Help:      "Time spent in GraphQL resolvers.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "social",
			Name:      "http_requests_total",
			Help:      "HTTP requests by path and status code.",
		}, []string{"path", "code"}),
		seedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "social",
			Name:      "seed_rows_total",
			Help:      "Rows handled by the seeder by entity and result.",
		}, []string{"entity", "result"}),
	}

	m.registry.MustRegister(
		m.operations,
		m.operationDuration,
		m.httpRequests,
		m.seedRows,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveOperation records one resolver call.
func (m *Metrics) ObserveOperation(operation, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveHTTP records one HTTP response.
func (m *Metrics) ObserveHTTP(path string, code int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

// ObserveSeedRow records one fixture row as "inserted" or "skipped".
func (m *Metrics) ObserveSeedRow(entity, result string) {
	if m == nil {
		return
	}
	m.seedRows.WithLabelValues(entity, result).Inc()
}
