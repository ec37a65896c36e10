package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "appointme"

// Metrics bundles the collectors the server exports on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
	BookingTransition *prometheus.CounterVec
	ChatbotResponses  *prometheus.CounterVec
	ReconcileRuns     *prometheus.CounterVec
}

// New creates a registry with process/go collectors plus the application metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BookingTransition: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Booking lifecycle transitions by action and outcome.",
		}, []string{"action", "outcome"}),
		ChatbotResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chatbot_responses_total",
			Help:      "Chatbot replies by response type.",
		}, []string{"type"}),
		ReconcileRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_reconcile_runs_total",
			Help:      "Availability reconciliation job runs by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.BookingTransition, m.ChatbotResponses, m.ReconcileRuns)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveBooking counts one lifecycle transition. Nil receivers are ignored.
func (m *Metrics) ObserveBooking(action string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.BookingTransition.WithLabelValues(action, outcome).Inc()
}

// ObserveChatbot counts one chatbot reply by type. Nil receivers are ignored.
func (m *Metrics) ObserveChatbot(responseType string) {
	if m == nil {
		return
	}
	m.ChatbotResponses.WithLabelValues(responseType).Inc()
}

// ObserveReconcile counts one reconciliation run. Nil receivers are ignored.
func (m *Metrics) ObserveReconcile(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ReconcileRuns.WithLabelValues(outcome).Inc()
}
