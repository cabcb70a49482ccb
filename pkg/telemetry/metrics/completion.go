package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CompletionMetrics tracks calls to the chat-completion API.
//
// Metrics:
//   - distill_completion_requests_total: Calls by model
//   - distill_completion_duration_seconds: Call latency
//   - distill_completion_errors_total: Failures by type
type CompletionMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

// NewCompletionMetrics creates and registers completion metrics.
func NewCompletionMetrics(namespace string, registry *prometheus.Registry) *CompletionMetrics {
	cm := &CompletionMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "completion",
				Name:      "requests_total",
				Help:      "Total number of chat-completion calls",
			},
			[]string{"model"},
		),

		// 100ms - 30s, the completion timeout ceiling
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "completion",
				Name:      "duration_seconds",
				Help:      "Chat-completion call latency in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"model"},
		),

		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "completion",
				Name:      "errors_total",
				Help:      "Total number of chat-completion failures by type",
			},
			[]string{"model", "error_type"},
		),
	}

	registry.MustRegister(
		cm.requests,
		cm.latency,
		cm.errors,
	)

	return cm
}

// Record records one call. An empty errorType means success.
func (cm *CompletionMetrics) Record(model string, duration time.Duration, errorType string) {
	cm.requests.WithLabelValues(model).Inc()
	cm.latency.WithLabelValues(model).Observe(duration.Seconds())
	if errorType != "" {
		cm.errors.WithLabelValues(model, errorType).Inc()
	}
}
