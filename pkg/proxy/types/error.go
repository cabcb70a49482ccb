package types

import (
	"fmt"

	"brainstormer-hq/distill/pkg/distill"
)

// ErrorResponse is the body of every non-2xx response from the distill
// endpoint. Fallback is only set when the model answered with unparseable
// output and a placeholder plan is offered instead.
type ErrorResponse struct {
	Error    string        `json:"error"`
	Fallback *distill.Plan `json:"fallback,omitempty"`
}

// Fixed client-facing messages. Upstream text never replaces these.
const (
	MsgMethodNotAllowed    = "Method not allowed"
	MsgServiceUnavailable  = "Service unavailable"
	MsgInvalidBody         = "Invalid request body"
	MsgInvalidText         = "Missing or invalid text field"
	MsgRateLimited         = "Rate limit exceeded. Please try again later."
	MsgAIProcessingFailed  = "AI processing failed"
	MsgNoAIResponse        = "No response from AI"
	MsgInvalidFormat       = "Invalid response format"
	MsgInvalidStructure    = "Invalid response structure"
	MsgInternalServerError = "Internal server error"
	textTooLongMessageFmt  = "Text exceeds maximum length of %d characters"
)

// TextTooLongMessage formats the 413 message for the configured limit.
func TextTooLongMessage(limit int) string {
	return fmt.Sprintf(textTooLongMessageFmt, limit)
}

// NewErrorResponse creates an error body with the given message.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Error: message}
}

// NewFallbackResponse creates an error body carrying a placeholder plan.
func NewFallbackResponse(message string, plan distill.Plan) *ErrorResponse {
	return &ErrorResponse{Error: message, Fallback: &plan}
}
