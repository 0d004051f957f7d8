package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics handles metrics collection and reporting for the service.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	suggestionLatency *prometheus.HistogramVec
	parseFailures     prometheus.Counter
	matchesComputed   prometheus.Counter
}

// NewMetrics creates a new metrics collector with all collectors registered.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	suggestionLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "suggestion_latency_seconds",
			Help:    "Time taken by recommendation model calls",
			Buckets: prometheus.LinearBuckets(0, 5, 12), // 5-second buckets
		},
		[]string{"outcome"},
	)

	parseFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "suggestion_parse_failures_total",
			Help: "Model responses that failed tolerant JSON parsing",
		},
	)

	matchesComputed := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bar_matches_computed_total",
			Help: "Bar availability matching runs",
		},
	)

	for _, c := range []prometheus.Collector{httpRequests, suggestionLatency, parseFailures, matchesComputed} {
		registry.MustRegister(c)
	}

	return &Metrics{
		registry:          registry,
		httpRequests:      httpRequests,
		suggestionLatency: suggestionLatency,
		parseFailures:     parseFailures,
		matchesComputed:   matchesComputed,
	}
}

// Registry returns the prometheus registry backing the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, path, status string) {
	m.httpRequests.WithLabelValues(method, path, status).Inc()
}

// ObserveSuggestion records the latency and outcome of a model call.
func (m *Metrics) ObserveSuggestion(d time.Duration, outcome string) {
	m.suggestionLatency.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveParseFailure records a model response that could not be parsed.
func (m *Metrics) ObserveParseFailure() {
	m.parseFailures.Inc()
}

// ObserveMatch records one availability matching run.
func (m *Metrics) ObserveMatch() {
	m.matchesComputed.Inc()
}
