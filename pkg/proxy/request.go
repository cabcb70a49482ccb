package proxy

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"brainstormer-hq/distill/pkg/distill"
	"brainstormer-hq/distill/pkg/proxy/types"

	"github.com/tidwall/gjson"
)

// RequestIDHeader is the HTTP header for request ID propagation.
const RequestIDHeader = "X-Request-ID"

// ParseDistillRequest reads and validates a distill request body.
//
// The body is capped at maxBodyBytes; exceeding the cap is reported as an
// oversized text since the only large field is text. Length is counted in
// characters (runes), not bytes. Unknown fields such as a client-supplied
// model are ignored.
func ParseDistillRequest(r *http.Request, maxBodyBytes int64, maxTextLength int) (distill.Request, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return distill.Request{}, &RequestError{
			Status:  http.StatusBadRequest,
			Message: types.MsgInvalidBody,
			Cause:   fmt.Errorf("failed to read request body: %w", err),
		}
	}

	if int64(len(body)) > maxBodyBytes {
		return distill.Request{}, &RequestError{
			Status:  http.StatusRequestEntityTooLarge,
			Message: types.TextTooLongMessage(maxTextLength),
			Cause:   fmt.Errorf("request body exceeds %d bytes", maxBodyBytes),
		}
	}

	if !gjson.ValidBytes(body) {
		return distill.Request{}, &RequestError{
			Status:  http.StatusBadRequest,
			Message: types.MsgInvalidBody,
			Cause:   errors.New("body is not valid JSON"),
		}
	}

	text := gjson.GetBytes(body, "text")
	if text.Type != gjson.String || text.Str == "" {
		return distill.Request{}, &RequestError{
			Status:  http.StatusBadRequest,
			Message: types.MsgInvalidText,
			Cause:   fmt.Errorf("text field has type %s", text.Type),
		}
	}

	if n := utf8.RuneCountInString(text.Str); n > maxTextLength {
		return distill.Request{}, &RequestError{
			Status:  http.StatusRequestEntityTooLarge,
			Message: types.TextTooLongMessage(maxTextLength),
			Cause:   fmt.Errorf("text has %d characters, limit %d", n, maxTextLength),
		}
	}

	return distill.Request{Text: text.Str}, nil
}

// RequestError is a request rejected by validation. Message is safe to
// return to the client; Cause is for logs only.
type RequestError struct {
	Status  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ToErrorResponse converts a RequestError to a response body.
func (e *RequestError) ToErrorResponse() *types.ErrorResponse {
	return types.NewErrorResponse(e.Message)
}
