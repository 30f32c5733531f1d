// Package inference provides clients for remote language-model endpoints.
package inference

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse is returned when a response body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed inference response")
	// ErrUnrecognizedShape is returned when a decoded body matches no known response layout.
	ErrUnrecognizedShape = errors.New("unrecognized inference response shape")
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a chat-style completion request.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// UserPrompt builds a request carrying one user message.
func UserPrompt(model, prompt string, maxTokens int, temperature float64) Request {
	return Request{
		Model:       model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// StatusError reports a non-success HTTP status from the inference endpoint.
type StatusError struct {
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference endpoint returned HTTP %d: %s", e.StatusCode, e.Body)
}
