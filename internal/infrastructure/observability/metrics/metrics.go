// Package metrics holds the Prometheus collectors for the service.
// Route templates are used as path labels so lead IDs never become label
// values.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission and login outcomes.
const (
	ResultSuccess      = "success"
	ResultInvalid      = "invalid"
	ResultError        = "error"
	ResultUnauthorized = "unauthorized"
)

// UnmatchedPath labels requests that did not match any route.
const UnmatchedPath = "unmatched"

// Metrics owns a registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	submissionsTotal    *prometheus.CounterVec
	loginsTotal         *prometheus.CounterVec
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caseeval_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "caseeval_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		submissionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caseeval_submissions_total",
				Help: "Case evaluation submissions by outcome",
			},
			[]string{"result"},
		),
		loginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "caseeval_logins_total",
				Help: "Admin login attempts by outcome",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.submissionsTotal,
		m.loginsTotal,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	if path == "" {
		path = UnmatchedPath
	}
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// SubmissionRecorded counts a submission outcome.
func (m *Metrics) SubmissionRecorded(result string) {
	m.submissionsTotal.WithLabelValues(result).Inc()
}

// LoginAttempted counts a login outcome.
func (m *Metrics) LoginAttempted(result string) {
	m.loginsTotal.WithLabelValues(result).Inc()
}
