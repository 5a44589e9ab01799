package factory

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/crillab/gophermachine/machine"
)

// Metrics records how many machines were solved, and how long it took.
// A nil *Metrics records nothing.
type Metrics struct {
	machines *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics returns metrics registered with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		machines: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gophermachine",
			Name:      "machines_total",
			Help:      "Number of machines processed, by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gophermachine",
			Name:      "solve_duration_seconds",
			Help:      "Time spent solving a single machine.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"strategy"}),
	}
}

func (m *Metrics) observe(strategy machine.Strategy, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.machines.WithLabelValues(strategy.String(), Classify(err)).Inc()
	if err == nil {
		m.duration.WithLabelValues(strategy.String()).Observe(d.Seconds())
	}
}
