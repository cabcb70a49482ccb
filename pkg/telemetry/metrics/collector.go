package metrics

import (
	"time"

	"brainstormer-hq/distill/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Collector owns the Prometheus registry for the distill service and
// provides one entry point for every component that records metrics.
//
// All Record methods are safe to call on a nil *Collector, which lets
// handlers run without metrics when telemetry is disabled.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	requestMetrics    *RequestMetrics
	completionMetrics *CompletionMetrics
	limiterMetrics    *LimiterMetrics
	planMetrics       *PlanMetrics
}

// NewCollector creates a collector and registers all metric families. If
// registry is nil a fresh registry is created, with the Go runtime and
// process collectors attached.
//
// Example:
//
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
func NewCollector(cfg config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}

	c.requestMetrics = NewRequestMetrics(cfg.Namespace, registry)
	c.completionMetrics = NewCompletionMetrics(cfg.Namespace, registry)
	c.limiterMetrics = NewLimiterMetrics(cfg.Namespace, registry)
	c.planMetrics = NewPlanMetrics(cfg.Namespace, registry)

	return c
}

func (c *Collector) active() bool {
	return c != nil && c.config.Enabled
}

// RecordRequest records a finished distill request.
//
// Parameters:
//   - status: HTTP status code returned to the client
//   - duration: Total handler time
func (c *Collector) RecordRequest(status int, duration time.Duration) {
	if !c.active() {
		return
	}

	c.requestMetrics.RecordRequest(status, duration)
}

// RecordRejection records a request refused before reaching the model.
// Reason is one of "method", "credential", "body", "length".
func (c *Collector) RecordRejection(reason string) {
	if !c.active() {
		return
	}

	c.requestMetrics.RecordRejection(reason)
}

// RecordCompletion records one outbound model call. ErrorType is empty on
// success, otherwise one of "timeout", "upstream", "empty", "config".
func (c *Collector) RecordCompletion(model string, duration time.Duration, errorType string) {
	if !c.active() {
		return
	}

	c.completionMetrics.Record(model, duration, errorType)
}

// RecordRateLimit records an admission decision.
func (c *Collector) RecordRateLimit(allowed bool) {
	if !c.active() {
		return
	}

	c.limiterMetrics.RecordDecision(allowed)
}

// RecordSweep records a sweep of expired limiter records.
func (c *Collector) RecordSweep(removed, remaining int) {
	if !c.active() {
		return
	}

	c.limiterMetrics.RecordSweep(removed, remaining)
}

// RecordPlan records a normalization outcome and the resulting section count.
// Outcome is one of "ok", "fallback_appended", "malformed", "invalid_structure".
func (c *Collector) RecordPlan(outcome string, sections int) {
	if !c.active() {
		return
	}

	c.planMetrics.Record(outcome, sections)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
