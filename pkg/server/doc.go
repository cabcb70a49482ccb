// # Routes
//
//	POST /api/distill   brain dump to plan
//	GET  /health        liveness
//	GET  /ready         readiness (API key resolvable, sweeper running)
//	GET  /version       build information
//	GET  /metrics       Prometheus metrics, when telemetry.metrics.enabled
//
// Every route is wrapped, outermost first, in recovery, request ID, access
// logging and CORS middleware.
//
// # Usage
//
//	cfg := config.GetConfig()
//
//	components, err := server.BuildComponents(cfg)
//	if err != nil {
//	    return err
//	}
//	defer components.Close()
//
//	srv := server.NewServer(cfg, components, server.BuildInfo{Version: version})
//	return srv.Start(ctx)
//
// Start blocks until the context is cancelled or SIGINT/SIGTERM arrives, then
// stops the rate limit sweeper and drains in-flight requests within
// server.shutdown_timeout.
package server
