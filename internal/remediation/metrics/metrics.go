package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the remediation module.
type Metrics struct {
	// Fix attempts by routine and outcome (fixed / rejected / fault)
	Attempts *prometheus.CounterVec

	// End-to-end fix attempt latency including the transaction
	AttemptLatency prometheus.Histogram
}

// New creates a Metrics instance with all remediation module metrics registered.
func New() *Metrics {
	return &Metrics{
		Attempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "preflight_remediation_attempts_total",
			Help: "Total fix attempts by routine and outcome",
		}, []string{"routine", "outcome"}), // outcome: "fixed", "rejected", "fault"

		AttemptLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "preflight_remediation_attempt_duration_seconds",
			Help:    "Duration of a full fix attempt including the transaction scope",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementAttempt records one fix attempt outcome.
func (m *Metrics) IncrementAttempt(routine, outcome string) {
	if m != nil {
		m.Attempts.WithLabelValues(routine, outcome).Inc()
	}
}

// ObserveAttemptLatency records the duration of one fix attempt.
func (m *Metrics) ObserveAttemptLatency(d time.Duration) {
	if m != nil {
		m.AttemptLatency.Observe(d.Seconds())
	}
}
