package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrCircuitOpen is returned when the circuit breaker is open
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMalformedPayload is returned when a 200 response does not decode into
	// the expected schema or fails its validation
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrAccepted is returned when a call that expects a body gets a 202.
	// The backend took the request but there is nothing to decode.
	ErrAccepted = errors.New("accepted without body")
)

// APIError is a non-2xx response. Body carries the response text, which the
// backend uses as its error message.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("API error (status %d) %s %s: %s", e.StatusCode, e.Method, e.Path, msg)
}

// IsConflict reports a 409, e.g. creating a project that already exists.
func (e *APIError) IsConflict() bool {
	return e.StatusCode == http.StatusConflict
}

// IsNotFound reports a 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUpstreamAuthFailure reports the statuses the backend uses when its
// third-party auth provider fails (418 and 424).
func (e *APIError) IsUpstreamAuthFailure() bool {
	return e.StatusCode == http.StatusTeapot || e.StatusCode == http.StatusFailedDependency
}

// IsServerError reports a 5xx.
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an
// APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// AsAPIError unwraps err into an APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message    string
	retryAfter time.Duration
	cause      error
}

func (e *retryableError) Error() string {
	return e.message
}

func (e *retryableError) Unwrap() error {
	return e.cause
}
