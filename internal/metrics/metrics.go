// Package metrics provides Prometheus metrics for the collaborator service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RequestsTotal        *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	ProviderCallsTotal   *prometheus.CounterVec
	ProjectsCreatedTotal prometheus.Counter

	registry *prometheus.Registry
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collaborator_requests_total",
				Help: "Total number of HTTP requests by endpoint and status.",
			},
			[]string{"endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "collaborator_request_duration_seconds",
				Help:    "Request processing duration by endpoint.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		ProviderCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "collaborator_provider_calls_total",
				Help: "Total completion provider calls by operation and status.",
			},
			[]string{"operation", "status"},
		),
		ProjectsCreatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "collaborator_projects_created_total",
				Help: "Total number of scaffolded projects.",
			},
		),
		registry: reg,
	}

	reg.MustRegister(m.RequestsTotal)
	reg.MustRegister(m.RequestDuration)
	reg.MustRegister(m.ProviderCallsTotal)
	reg.MustRegister(m.ProjectsCreatedTotal)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest increments the request counter.
func (m *Metrics) RecordRequest(endpoint, status string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(endpoint, status).Inc()
}

// ObserveDuration records request duration.
func (m *Metrics) ObserveDuration(endpoint string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(endpoint).Observe(seconds)
}

// RecordProviderCall increments the provider call counter.
func (m *Metrics) RecordProviderCall(operation, status string) {
	if m == nil {
		return
	}
	m.ProviderCallsTotal.WithLabelValues(operation, status).Inc()
}

// RecordProjectCreated increments the scaffolded project counter.
func (m *Metrics) RecordProjectCreated() {
	if m == nil {
		return
	}
	m.ProjectsCreatedTotal.Inc()
}
