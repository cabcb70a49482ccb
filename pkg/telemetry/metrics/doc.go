// Package metrics provides Prometheus metrics for the distill service.
//
// # Metrics Categories
//
//   - HTTP: request count and latency by status code, early rejections
//   - Completion: chat-completion calls, latency, and failures by type
//   - Rate limit: admission decisions, tracked clients, swept records
//   - Plan: normalization outcomes and section counts
//
// # Usage
//
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//
//	collector.RecordRateLimit(true)
//	collector.RecordCompletion("gpt-4o-mini", 1200*time.Millisecond, "")
//	collector.RecordPlan("ok", 3)
//	collector.RecordRequest(http.StatusOK, 1300*time.Millisecond)
//
//	mux.Handle("/metrics", collector.Handler())
//
// Every series is prefixed with the configured namespace ("distill" by
// default), for example distill_http_requests_total{code="200"}.
package metrics
