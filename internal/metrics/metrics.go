package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	answers        *prometheus.CounterVec
	answerDuration *prometheus.HistogramVec
	datasetRecords prometheus.Gauge
	activeSessions prometheus.Gauge
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// the server and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		answers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payroll_answers_total",
			Help: "Answers produced, by tool and reason.",
		}, []string{"tool", "reason"}),
		answerDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "payroll_answer_duration_seconds",
			Help:    "Time to answer a question, by tool.",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"tool"}),
		datasetRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "payroll_dataset_records",
			Help: "Payroll records loaded in memory.",
		}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "payroll_sessions",
			Help: "Conversation sessions held in memory.",
		}),
	}
}

func (m *Metrics) ObserveAnswer(tool, reason string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(tool, reason).Inc()
	m.answerDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

func (m *Metrics) SetDatasetRecords(n int) {
	if m == nil {
		return
	}
	m.datasetRecords.Set(float64(n))
}

func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}
