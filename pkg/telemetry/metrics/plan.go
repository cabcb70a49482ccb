package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PlanMetrics tracks how model output was normalized into plans.
type PlanMetrics struct {
	outcomes *prometheus.CounterVec
	sections prometheus.Histogram
}

// NewPlanMetrics creates and registers plan normalization metrics.
func NewPlanMetrics(namespace string, registry *prometheus.Registry) *PlanMetrics {
	pm := &PlanMetrics{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "plan",
				Name:      "normalize_total",
				Help:      "Normalization results by outcome",
			},
			[]string{"outcome"},
		),

		sections: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "plan",
				Name:      "sections",
				Help:      "Number of sections in returned plans",
				Buckets:   prometheus.LinearBuckets(1, 1, 8),
			},
		),
	}

	registry.MustRegister(pm.outcomes, pm.sections)

	return pm
}

// Record records one normalization.
func (pm *PlanMetrics) Record(outcome string, sections int) {
	pm.outcomes.WithLabelValues(outcome).Inc()
	pm.sections.Observe(float64(sections))
}
