package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments of the run service.
type Metrics struct {
	RunsStarted  prometheus.Counter
	RunsFinished *prometheus.CounterVec
	RunDuration  prometheus.Histogram
}

// NewMetrics registers the run metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RunsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "raptr",
			Name:      "runs_started_total",
			Help:      "Optimization runs accepted by the service.",
		}),
		RunsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raptr",
			Name:      "runs_finished_total",
			Help:      "Optimization runs reaching a terminal state, by status.",
		}, []string{"status"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "raptr",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of completed optimization runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
		}),
	}
}
