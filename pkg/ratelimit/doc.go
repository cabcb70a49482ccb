// Package ratelimit provides per-client request throttling for the distill
// endpoint.
//
// # Fixed Window
//
// Each client key owns one record holding a counter and the instant its
// window ends. The first request from a key (or the first after the window
// ended) opens a fresh window; later requests increment the counter until it
// reaches the limit, after which requests are denied without touching the
// record:
//
//	limiter := ratelimit.NewFixedWindow(ratelimit.Config{Limit: 10, Window: time.Minute})
//	if !limiter.Allow(ratelimit.ClientKey(r)) {
//	    // 429
//	}
//
// # Eviction
//
// Expired records are replaced lazily on access. Keys that never come back
// are removed by Sweep, which a Sweeper runs on a cron schedule so memory
// stays bounded by the set of active clients.
//
// # Thread Safety
//
// FixedWindow guards its table with a single mutex. Concurrent requests from
// one key never exceed the limit within a window.
package ratelimit
