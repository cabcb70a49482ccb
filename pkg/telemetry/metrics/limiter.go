package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LimiterMetrics tracks the per-client rate limiter.
type LimiterMetrics struct {
	decisions *prometheus.CounterVec
	clients   prometheus.Gauge
	swept     prometheus.Counter
}

// NewLimiterMetrics creates and registers rate limiter metrics.
func NewLimiterMetrics(namespace string, registry *prometheus.Registry) *LimiterMetrics {
	lm := &LimiterMetrics{
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ratelimit",
				Name:      "decisions_total",
				Help:      "Rate limit decisions (allowed, denied)",
			},
			[]string{"decision"},
		),

		clients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "ratelimit",
				Name:      "tracked_clients",
				Help:      "Client records held by the limiter after the last sweep",
			},
		),

		swept: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ratelimit",
				Name:      "swept_records_total",
				Help:      "Expired client records removed by the sweeper",
			},
		),
	}

	registry.MustRegister(
		lm.decisions,
		lm.clients,
		lm.swept,
	)

	return lm
}

// RecordDecision records one admission decision.
func (lm *LimiterMetrics) RecordDecision(allowed bool) {
	if allowed {
		lm.decisions.WithLabelValues("allowed").Inc()
		return
	}
	lm.decisions.WithLabelValues("denied").Inc()
}

// RecordSweep records the result of a sweep.
func (lm *LimiterMetrics) RecordSweep(removed, remaining int) {
	lm.swept.Add(float64(removed))
	lm.clients.Set(float64(remaining))
}
