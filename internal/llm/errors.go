package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when a client is built without a key.
var ErrMissingAPIKey = errors.New("API key is required")

// APIError is a non-2xx reply from the model endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d", e.StatusCode)
}

// FormatError means the reply lacked the candidate/content/part/text shape.
type FormatError struct {
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid response format: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid response format: %s", e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// ParseError means no JSON object could be decoded from the model text.
type ParseError struct {
	Message string
	Text    string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
