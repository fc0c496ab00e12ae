// Package apierrors provides shared error types for the Phaxio client.
package apierrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("must configure api_key")

	// ErrMissingAPISecret is returned when no API secret is provided.
	ErrMissingAPISecret = errors.New("must configure api_secret")

	// ErrInvalidCallbackURL is returned when the callback URL is not absolute.
	ErrInvalidCallbackURL = errors.New("callback_url must be an absolute URL")

	// ErrCallbackNotConfigured is returned when a callback handler is requested
	// from a client without a callback URL.
	ErrCallbackNotConfigured = errors.New("callback_url is not configured")

	// ErrUnauthorized is returned when the API credentials are rejected.
	ErrUnauthorized = errors.New("invalid api_key or api_secret")

	// ErrNotFound is returned when the requested fax does not exist.
	ErrNotFound = errors.New("fax not found")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrRequestFailed is returned when the API answers with "success": false.
	ErrRequestFailed = errors.New("request was not successful")

	// ErrInvalidResponse is returned when the API response is not valid JSON.
	ErrInvalidResponse = errors.New("invalid API response")
)

// APIError represents a rejected request: an HTTP status >= 400 or a
// response body whose success flag is not true.
type APIError struct {
	StatusCode int
	Message    string
	// Body is the raw, unparsed response body.
	Body      []byte
	RequestID string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		if e.Message != "" {
			return fmt.Sprintf("API error %d: %s (request_id: %s)", e.StatusCode, e.Message, e.RequestID)
		}
		return fmt.Sprintf("API error %d (request_id: %s)", e.StatusCode, e.RequestID)
	}
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 404:
		return target == ErrNotFound
	case 429:
		return target == ErrRateLimited
	}
	if e.StatusCode < 400 {
		return target == ErrRequestFailed
	}
	return false
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ResponseError indicates the API answered with a body that could not be
// decoded as JSON.
type ResponseError struct {
	StatusCode int
	Body       []byte
	RequestID  string
	Err        error
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid API response (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("invalid API response (status %d)", e.StatusCode)
}

// Unwrap returns the underlying error.
func (e *ResponseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ResponseError) Is(target error) bool {
	return target == ErrInvalidResponse
}
