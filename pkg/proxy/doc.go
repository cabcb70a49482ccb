// Package proxy holds the HTTP plumbing shared by the distill endpoint:
// request parsing, JSON response writing, and the mapping from internal
// errors to client-facing error bodies.
//
// # Request validation
//
// ParseDistillRequest reads at most max_body_bytes, requires a JSON object
// with a non-empty string "text" field, and counts its length in Unicode
// characters. Every rejection is a *RequestError carrying the HTTP status
// and the exact message returned to the client:
//
//	400  {"error":"Invalid JSON body"}
//	400  {"error":"Missing or invalid text field"}
//	413  {"error":"Text exceeds maximum length of 20000 characters"}
//
// # Error mapping
//
// HandleError turns any error from the distill pipeline into a status and an
// ErrorResponse. Upstream details never reach the client; they are logged
// by the handler instead. A model reply that contains no parseable JSON is
// answered with a fallback plan alongside the error message:
//
//	status, body := proxy.HandleError(err)
//	_ = proxy.WriteError(w, status, body)
//
// Subpackages:
//   - handlers: the /api/distill handler
//   - middleware: recovery, request ID, access logging, CORS
//   - types: wire error bodies and messages
package proxy
