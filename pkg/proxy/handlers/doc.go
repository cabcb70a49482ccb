// Package handlers provides the HTTP handler for the distill endpoint.
//
// DistillHandler turns a brain dump into a plan:
//
//	POST /api/distill
//	{"text": "call mom, finish report, buy groceries"}
//
//	200 OK
//	{"sections": [{"id": "section-1-...", "title": "Errands", "items": [...]}]}
//
// Requests are checked in a fixed order and the first failure decides the
// response:
//
//  1. method must be POST (405)
//  2. the completion API key must be configured (503)
//  3. the body must be JSON with a non-empty string text (400)
//  4. text must not exceed the length limit (413)
//  5. the client must be within its rate limit (429)
//
// Only then is the model called. Upstream failures, timeouts and empty
// answers all become 500 with a fixed message; upstream detail is logged,
// never returned.
package handlers
