package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveAnswer("tabular", "ok", 10*time.Millisecond)
	m.ObserveAnswer("tabular", "ok", 20*time.Millisecond)
	m.ObserveAnswer("external", "dependency_timeout", time.Second)
	m.SetDatasetRecords(12)
	m.SetSessions(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.answers.WithLabelValues("tabular", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.answers.WithLabelValues("external", "dependency_timeout")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.datasetRecords))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.activeSessions))
	assert.Equal(t, 2, testutil.CollectAndCount(m.answerDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAnswer("general", "ok", time.Millisecond)
	m.SetDatasetRecords(1)
	m.SetSessions(1)
}
