package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// maxMessageSize caps the backend error text kept in an APIError.
const maxMessageSize = 512

var (
	// ErrEmptyCompletion is returned when the backend answered without text.
	ErrEmptyCompletion = errors.New("model returned an empty completion")

	// ErrUnknownProvider is returned by New for an unset or unknown provider kind.
	ErrUnknownProvider = errors.New("unknown model provider")
)

// APIError is a non-2xx response from a model backend.
type APIError struct {
	// Provider is the backend name, e.g. "anthropic".
	Provider string

	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error text reported by the backend, or the raw body.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s API returned status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s API returned status %d: %s", e.Provider, e.StatusCode, e.Message)
}

// newAPIError builds an APIError from the error body an SDK kept.
func newAPIError(provider string, status int, body string) *APIError {
	return &APIError{
		Provider:   provider,
		StatusCode: status,
		Message:    truncate(errorMessage(body), maxMessageSize),
	}
}

// errorMessage extracts the human readable text from an error body.
// Anthropic and OpenAI wrap it as {"error":{"message":...}}; some gateways
// send {"message":...} or {"error":"..."}. Anything else is returned as is.
func errorMessage(body string) string {
	body = strings.TrimSpace(body)

	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal([]byte(body), &nested) == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	var flat struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal([]byte(body), &flat) == nil {
		if flat.Message != "" {
			return flat.Message
		}
		if flat.Error != "" {
			return flat.Error
		}
	}
	return body
}

// truncate shortens s to at most n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
