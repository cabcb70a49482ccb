// Package types defines the wire-level error body of the distill API.
//
// Every failure is a JSON object with a single human-readable message:
//
//	{"error": "Rate limit exceeded. Please try again later."}
//
// When the model's output could not be parsed, the body also carries a
// placeholder plan the client can render:
//
//	{"error": "Invalid response format", "fallback": {"sections": [...]}}
package types
