// Package telemetry holds the observability pieces of the distill service.
//
// # Components
//
//   - logging: slog construction, secret redaction, request-scoped fields
//   - metrics: Prometheus collectors for HTTP, completion, rate limiting and plans
//   - health: liveness, readiness and version endpoints
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics, nil)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
//	checker := health.New(0)
//	checker.RegisterCheck("credential", health.CredentialCheck(cred))
//	health.Register(mux, checker, version, commit, buildTime)
//
// Every collector method is safe to call on a nil *Collector, so callers
// built with metrics disabled need no guards.
package telemetry
