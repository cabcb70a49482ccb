// Package health provides liveness, readiness, and version endpoints.
//
// Endpoints:
//
//   - /health: liveness, always 200 while the process runs
//   - /ready: readiness, 503 when any registered check fails
//   - /version: build information
//
// Usage:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("credential", health.CredentialCheck(cred))
//	checker.RegisterCheck("sweeper", health.SchedulerCheck("sweeper", sweeper.IsRunning))
//	health.Register(mux, checker, version, commit, buildTime)
//
// Checks run concurrently on every readiness request, each bounded by the
// checker's timeout.
package health
