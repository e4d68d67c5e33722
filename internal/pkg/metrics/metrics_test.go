package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := NewWith(prometheus.NewRegistry())

	m.AddCommitLines("succeeded", 3)
	m.AddCommitLines("failed", 0)
	m.IncrementRun("partial")
	m.IncrementTransition("approve", "ok")
	m.IncrementFlag("negative_net_pay")
	m.ObservePreview("ok", 20*time.Millisecond)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.CommitLines.WithLabelValues("succeeded")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.CommitLines.WithLabelValues("failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Runs.WithLabelValues("partial")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.TimesheetTransitions.WithLabelValues("approve", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FlaggedLines.WithLabelValues("negative_net_pay")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.AddCommitLines("succeeded", 1)
		m.IncrementRun("committed")
		m.IncrementTransition("reject", "ok")
		m.IncrementFlag("missing_rate")
		m.ObservePreview("error", time.Second)
	})
}
