package proxy

import (
	"errors"
	"net/http"

	"brainstormer-hq/distill/pkg/completion"
	"brainstormer-hq/distill/pkg/distill"
	"brainstormer-hq/distill/pkg/proxy/types"
)

// HandleError maps a pipeline error to a status code and client-facing body.
// Upstream messages are never copied into the body.
//
// Example usage:
//
//	if err != nil {
//	    status, errResp := HandleError(err)
//	    WriteError(w, status, errResp)
//	    return
//	}
func HandleError(err error) (int, *types.ErrorResponse) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status, reqErr.ToErrorResponse()
	}

	var upstreamErr *completion.UpstreamError
	if errors.As(err, &upstreamErr) {
		return http.StatusInternalServerError, types.NewErrorResponse(types.MsgAIProcessingFailed)
	}

	var timeoutErr *completion.TimeoutError
	if errors.As(err, &timeoutErr) {
		return http.StatusInternalServerError, types.NewErrorResponse(types.MsgAIProcessingFailed)
	}

	if errors.Is(err, completion.ErrEmptyResponse) {
		return http.StatusInternalServerError, types.NewErrorResponse(types.MsgNoAIResponse)
	}

	if errors.Is(err, distill.ErrMalformedOutput) {
		return http.StatusInternalServerError, types.NewFallbackResponse(types.MsgInvalidFormat, distill.ProcessingErrorPlan())
	}

	if errors.Is(err, distill.ErrInvalidStructure) {
		return http.StatusInternalServerError, types.NewErrorResponse(types.MsgInvalidStructure)
	}

	return http.StatusInternalServerError, types.NewErrorResponse(types.MsgInternalServerError)
}

// ErrorType returns a short label for metrics and logs.
func ErrorType(err error) string {
	var upstreamErr *completion.UpstreamError
	var timeoutErr *completion.TimeoutError
	var configErr *completion.ConfigError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &timeoutErr):
		return "timeout"
	case errors.As(err, &upstreamErr):
		return "upstream"
	case errors.Is(err, completion.ErrEmptyResponse):
		return "empty"
	case errors.As(err, &configErr):
		return "config"
	default:
		return "unknown"
	}
}
