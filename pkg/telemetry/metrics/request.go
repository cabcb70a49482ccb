package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks distill endpoint traffic.
//
// Metrics:
//   - distill_http_requests_total: Requests by response status code
//   - distill_http_request_duration_seconds: Handler latency
//   - distill_http_rejections_total: Requests refused before the model call
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rejections      *prometheus.CounterVec
}

// NewRequestMetrics creates and registers request metrics with the provided registry.
func NewRequestMetrics(namespace string, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of distill requests by status code",
			},
			[]string{"code"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of distill requests in seconds",
				Buckets:   []float64{0.005, 0.05, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"code"},
		),

		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "rejections_total",
				Help:      "Requests rejected before the completion call, by reason",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.rejections,
	)

	return rm
}

// RecordRequest records one finished request.
func (rm *RequestMetrics) RecordRequest(status int, duration time.Duration) {
	code := strconv.Itoa(status)
	rm.requestsTotal.WithLabelValues(code).Inc()
	rm.requestDuration.WithLabelValues(code).Observe(duration.Seconds())
}

// RecordRejection records one rejected request.
func (rm *RequestMetrics) RecordRejection(reason string) {
	rm.rejections.WithLabelValues(reason).Inc()
}
