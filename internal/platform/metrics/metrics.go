package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds service-level Prometheus metrics.
type Metrics struct {
	// Mutation outcomes by operation and result ("ok", "validation",
	// "conflict", "not_found", "archived_client", "error").
	MutationsTotal *prometheus.CounterVec

	// Status transitions by new status.
	StatusTransitions *prometheus.CounterVec

	// HTTP request latency by route and status class.
	RequestDuration *prometheus.HistogramVec

	// Care-team events published, by type and sink result.
	EventsPublished *prometheus.CounterVec
}

// New creates and registers all service-level metrics.
func New() *Metrics {
	return &Metrics{
		MutationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careteam_mutations_total",
			Help: "Total care-team mutations by operation and result",
		}, []string{"operation", "result"}),

		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careteam_status_transitions_total",
			Help: "Total accepted client status transitions by new status",
		}, []string{"status"}),

		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "careteam_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status class",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "status"}),

		EventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careteam_events_published_total",
			Help: "Care-team events handed to the sink, by type and result",
		}, []string{"type", "result"}),
	}
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	m.RequestDuration.WithLabelValues(route, status).Observe(d.Seconds())
}

// RecordMutation records one mutation outcome.
func (m *Metrics) RecordMutation(operation, result string) {
	m.MutationsTotal.WithLabelValues(operation, result).Inc()
}
