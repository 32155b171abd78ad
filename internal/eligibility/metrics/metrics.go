package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the eligibility module.
type Metrics struct {
	// Verdict outcomes.
	Verdicts *prometheus.CounterVec

	// Signal gathering latencies by source.
	SignalLatency *prometheus.HistogramVec

	// Overall evaluation latency.
	EvaluateLatency prometheus.Histogram

	// Verdict cache hits and misses.
	CacheLookups *prometheus.CounterVec
}

// New creates a Metrics instance with all eligibility metrics registered.
func New() *Metrics {
	return &Metrics{
		Verdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careteam_eligibility_verdicts_total",
			Help: "Total eligibility verdicts by outcome",
		}, []string{"outcome"}),

		SignalLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "careteam_eligibility_signal_duration_seconds",
			Help:    "Duration of signal gathering by source",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}, []string{"source"}), // source: "restrictions", "preferences"

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "careteam_eligibility_evaluate_duration_seconds",
			Help:    "End-to-end eligibility evaluation duration",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		CacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "careteam_eligibility_cache_lookups_total",
			Help: "Verdict cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss", "error"
	}
}

// ObserveSignalLatency records one signal-gathering observation.
func (m *Metrics) ObserveSignalLatency(source string, d time.Duration) {
	m.SignalLatency.WithLabelValues(source).Observe(d.Seconds())
}

// RecordVerdict records one verdict outcome.
func (m *Metrics) RecordVerdict(outcome string) {
	m.Verdicts.WithLabelValues(outcome).Inc()
}

// RecordCacheLookup records one cache lookup result.
func (m *Metrics) RecordCacheLookup(result string) {
	m.CacheLookups.WithLabelValues(result).Inc()
}
