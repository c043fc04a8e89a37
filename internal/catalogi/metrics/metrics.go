package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the catalogi module.
type Metrics struct {
	// Publish attempts by resource and outcome
	PublishOutcome *prometheus.CounterVec

	// Latency of the full publish operation including snapshot validation
	PublishLatency prometheus.Histogram

	// Selectielijst lookups by outcome
	SelectielijstLookup *prometheus.CounterVec
}

// New creates a new Metrics instance with all catalogi module metrics registered.
func New() *Metrics {
	return &Metrics{
		PublishOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zaakregister_catalogi_publish_total",
			Help: "Total publish attempts by resource and outcome",
		}, []string{"resource", "outcome"}), // outcome: "published", "rejected", "error"

		PublishLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "zaakregister_catalogi_publish_duration_seconds",
			Help:    "Duration of publish operations including snapshot validation",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		SelectielijstLookup: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zaakregister_catalogi_selectielijst_lookups_total",
			Help: "Total selectielijst resultaat lookups by outcome",
		}, []string{"outcome"}), // outcome: "hit", "mismatch", "error"
	}
}

// IncrementPublish records a publish attempt outcome.
func (m *Metrics) IncrementPublish(resource, outcome string) {
	if m != nil {
		m.PublishOutcome.WithLabelValues(resource, outcome).Inc()
	}
}

// ObservePublishLatency records the duration of a publish operation.
func (m *Metrics) ObservePublishLatency(d time.Duration) {
	if m != nil {
		m.PublishLatency.Observe(d.Seconds())
	}
}

// IncrementSelectielijstLookup records a selectielijst lookup outcome.
func (m *Metrics) IncrementSelectielijstLookup(outcome string) {
	if m != nil {
		m.SelectielijstLookup.WithLabelValues(outcome).Inc()
	}
}
