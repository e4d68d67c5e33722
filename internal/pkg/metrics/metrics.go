package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for payroll runs and timesheet approvals.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Preview generation latency by outcome
	PreviewLatency *prometheus.HistogramVec

	// Committed lines by outcome: "succeeded", "failed"
	CommitLines *prometheus.CounterVec

	// Runs by final status
	Runs *prometheus.CounterVec

	// Timesheet transitions by action and outcome
	TimesheetTransitions *prometheus.CounterVec

	// Lines flagged for review by flag
	FlaggedLines *prometheus.CounterVec
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on reg. Tests pass a fresh registry so
// repeated construction does not panic on duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PreviewLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "payroll_preview_duration_seconds",
			Help:    "Duration of payroll preview generation",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"outcome"}),

		CommitLines: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payroll_commit_lines_total",
			Help: "Payroll lines persisted by outcome",
		}, []string{"outcome"}),

		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payroll_runs_total",
			Help: "Payroll runs by resulting status",
		}, []string{"status"}),

		TimesheetTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "timesheet_transitions_total",
			Help: "Timesheet approval transitions by action and outcome",
		}, []string{"action", "outcome"}),

		FlaggedLines: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payroll_flagged_lines_total",
			Help: "Preview lines carrying a review flag",
		}, []string{"flag"}),
	}
}

func (m *Metrics) ObservePreview(outcome string, d time.Duration) {
	if m != nil {
		m.PreviewLatency.WithLabelValues(outcome).Observe(d.Seconds())
	}
}

func (m *Metrics) AddCommitLines(outcome string, n int) {
	if m != nil && n > 0 {
		m.CommitLines.WithLabelValues(outcome).Add(float64(n))
	}
}

func (m *Metrics) IncrementRun(status string) {
	if m != nil {
		m.Runs.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncrementTransition(action, outcome string) {
	if m != nil {
		m.TimesheetTransitions.WithLabelValues(action, outcome).Inc()
	}
}

func (m *Metrics) IncrementFlag(flag string) {
	if m != nil {
		m.FlaggedLines.WithLabelValues(flag).Inc()
	}
}
