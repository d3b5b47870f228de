package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jrsteele09/tracker-web/internal/errors"
)

// HTTPError is a non-2xx answer from the backend.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
}

// Unwrap classifies the status so errors.Is(err, errors.ErrUnauthorized) and
// friends work on wrapped HTTP errors.
func (e *HTTPError) Unwrap() error {
	return errors.FromStatus(e.StatusCode)
}

// Message returns the backend's {"message": "..."} text, or the raw body.
func (e *HTTPError) Message() string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(e.Body))
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

// IsSessionInvalid reports whether err means the bearer token was rejected.
func IsSessionInvalid(err error) bool {
	return errors.Is(err, errors.ErrUnauthorized)
}
