// Package testutil provides HTTP fakes shared by package tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// ChatCompletionsPath is the path the openai-go client posts to when the
// base URL is OpenAIServer.BaseURL().
const ChatCompletionsPath = "/v1/chat/completions"

// MockResponse defines a canned reply.
type MockResponse struct {
	StatusCode int
	Body       interface{}
	Delay      time.Duration
	Headers    map[string]string
}

// RecordedRequest captures what the fake server received.
type RecordedRequest struct {
	Path          string
	Authorization string
	Body          []byte
}

// OpenAIServer is a fake chat completions endpoint.
type OpenAIServer struct {
	server   *httptest.Server
	response MockResponse
	requests []RecordedRequest
	mu       sync.Mutex
}

// NewOpenAIServer starts a fake server that answers 200 with an empty
// completion until SetResponse is called.
func NewOpenAIServer() *OpenAIServer {
	s := &OpenAIServer{
		response: MockResponse{StatusCode: http.StatusOK, Body: ChatCompletion("")},
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handler))
	return s
}

// BaseURL returns the value to configure as the completion base URL.
func (s *OpenAIServer) BaseURL() string {
	return s.server.URL + "/v1"
}

// Close shuts the server down.
func (s *OpenAIServer) Close() {
	s.server.Close()
}

// SetResponse replaces the canned reply.
func (s *OpenAIServer) SetResponse(response MockResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.response = response
}

// SetCompletion answers 200 with content as the assistant message.
func (s *OpenAIServer) SetCompletion(content string) {
	s.SetResponse(MockResponse{StatusCode: http.StatusOK, Body: ChatCompletion(content)})
}

// RequestCount returns the number of requests received.
func (s *OpenAIServer) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests)
}

// Requests returns a copy of the recorded requests.
func (s *OpenAIServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *OpenAIServer) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		Body:          body,
	})
	response := s.response
	s.mu.Unlock()

	if r.URL.Path != ChatCompletionsPath {
		http.NotFound(w, r)
		return
	}

	if response.Delay > 0 {
		select {
		case <-time.After(response.Delay):
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(response.StatusCode)

	switch v := response.Body.(type) {
	case nil:
	case string:
		_, _ = w.Write([]byte(v))
	case []byte:
		_, _ = w.Write(v)
	default:
		_ = json.NewEncoder(w).Encode(v)
	}
}

// ChatCompletion builds a chat completion body with a single choice.
func ChatCompletion(content string) map[string]interface{} {
	return map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "gpt-4o-mini",
		"choices": []map[string]interface{}{
			{
				"index": 0,
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]interface{}{
			"prompt_tokens":     10,
			"completion_tokens": 20,
			"total_tokens":      30,
		},
	}
}

// NoChoices builds a successful completion body without choices.
func NoChoices() map[string]interface{} {
	body := ChatCompletion("")
	body["choices"] = []map[string]interface{}{}
	return body
}

// ErrorResponse builds an API error reply.
func ErrorResponse(statusCode int, message string) MockResponse {
	return MockResponse{
		StatusCode: statusCode,
		Body: map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
				"type":    "server_error",
				"code":    fmt.Sprintf("%d", statusCode),
			},
		},
	}
}

// SlowResponse delays a valid completion by d.
func SlowResponse(content string, d time.Duration) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       ChatCompletion(content),
		Delay:      d,
	}
}
