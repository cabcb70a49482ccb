package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"

	"brainstormer-hq/distill/pkg/distill"
	"brainstormer-hq/distill/pkg/proxy/types"
)

// WriteJSON writes v as a JSON body with the given status. Plans are
// per-request, so responses are marked uncacheable. HTML escaping is off
// because item text such as "Work & Projects" is returned to the caller
// byte for byte.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}
	return nil
}

// WritePlan writes a successful distill response.
func WritePlan(w http.ResponseWriter, plan distill.Plan) error {
	return WriteJSON(w, http.StatusOK, plan)
}

// WriteError writes an error body, including any fallback plan it carries.
func WriteError(w http.ResponseWriter, status int, body *types.ErrorResponse) error {
	return WriteJSON(w, status, body)
}
