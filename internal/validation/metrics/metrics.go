package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the validation module.
type Metrics struct {
	// Evaluation runs by entity type and outcome (valid / invalid / error)
	Runs *prometheus.CounterVec

	// Findings raised by entity type and severity
	Findings *prometheus.CounterVec

	// Per-record evaluation latency by entity type
	EvaluateLatency *prometheus.HistogramVec
}

// New creates a Metrics instance with all validation module metrics registered.
func New() *Metrics {
	return &Metrics{
		Runs: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "preflight_validation_runs_total",
			Help: "Total evaluation runs by entity type and outcome",
		}, []string{"entity", "outcome"}), // outcome: "valid", "invalid", "error"

		Findings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "preflight_validation_findings_total",
			Help: "Total findings raised by entity type and severity",
		}, []string{"entity", "severity"}),

		EvaluateLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "preflight_validation_evaluate_duration_seconds",
			Help:    "Duration of a single record evaluation including lookups",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"entity"}),
	}
}

// IncrementRun records one evaluation run outcome.
func (m *Metrics) IncrementRun(entity, outcome string) {
	if m != nil {
		m.Runs.WithLabelValues(entity, outcome).Inc()
	}
}

// AddFindings records findings raised during one run.
func (m *Metrics) AddFindings(entity, severity string, n int) {
	if m != nil && n > 0 {
		m.Findings.WithLabelValues(entity, severity).Add(float64(n))
	}
}

// ObserveEvaluateLatency records a per-record evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(entity string, d time.Duration) {
	if m != nil {
		m.EvaluateLatency.WithLabelValues(entity).Observe(d.Seconds())
	}
}
