package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the zaken module.
type Metrics struct {
	// Status transitions by kind
	StatusTransitions *prometheus.CounterVec

	// Closure attempts by outcome
	ClosureOutcome *prometheus.CounterVec

	// Latency of the closure path including document probes and the
	// brondatum computation
	ClosureLatency prometheus.Histogram

	// Brondatum resolutions by afleidingswijze and outcome
	BrondatumResolutions *prometheus.CounterVec
}

// New creates a new Metrics instance with all zaken module metrics registered.
func New() *Metrics {
	return &Metrics{
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zaakregister_zaken_status_transitions_total",
			Help: "Total status transitions by kind",
		}, []string{"kind"}), // kind: "append", "close", "reopen"

		ClosureOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zaakregister_zaken_closures_total",
			Help: "Total zaak closure attempts by outcome",
		}, []string{"outcome"}), // outcome: "closed", "rejected", "error"

		ClosureLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "zaakregister_zaken_closure_duration_seconds",
			Help:    "Duration of zaak closures including document probes",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		BrondatumResolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zaakregister_zaken_brondatum_resolutions_total",
			Help: "Total brondatum resolutions by afleidingswijze and outcome",
		}, []string{"afleidingswijze", "outcome"}), // outcome: "resolved", "empty", "error"
	}
}

// IncrementTransition records a status transition.
func (m *Metrics) IncrementTransition(kind string) {
	if m != nil {
		m.StatusTransitions.WithLabelValues(kind).Inc()
	}
}

// IncrementClosure records the outcome of a closure attempt.
func (m *Metrics) IncrementClosure(outcome string) {
	if m != nil {
		m.ClosureOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveClosureLatency records the duration of a closure.
func (m *Metrics) ObserveClosureLatency(d time.Duration) {
	if m != nil {
		m.ClosureLatency.Observe(d.Seconds())
	}
}

// IncrementBrondatumResolution records a brondatum computation outcome.
func (m *Metrics) IncrementBrondatumResolution(afleidingswijze, outcome string) {
	if m != nil {
		m.BrondatumResolutions.WithLabelValues(afleidingswijze, outcome).Inc()
	}
}
