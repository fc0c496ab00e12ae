package phaxio

import (
	"github.com/faxkit/phaxio-go/internal/apierrors"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = apierrors.ErrMissingAPIKey

	// ErrMissingAPISecret is returned when no API secret is provided.
	ErrMissingAPISecret = apierrors.ErrMissingAPISecret

	// ErrInvalidCallbackURL is returned when the callback URL is not absolute.
	ErrInvalidCallbackURL = apierrors.ErrInvalidCallbackURL

	// ErrCallbackNotConfigured is returned by Middleware when the client has
	// no callback URL.
	ErrCallbackNotConfigured = apierrors.ErrCallbackNotConfigured

	// ErrUnauthorized is returned when the API credentials are rejected.
	ErrUnauthorized = apierrors.ErrUnauthorized

	// ErrNotFound is returned when the requested fax does not exist.
	ErrNotFound = apierrors.ErrNotFound

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = apierrors.ErrRateLimited

	// ErrRequestFailed is returned when the API answers with "success": false.
	ErrRequestFailed = apierrors.ErrRequestFailed

	// ErrInvalidResponse is returned when the API response is not valid JSON.
	ErrInvalidResponse = apierrors.ErrInvalidResponse
)

// APIError represents a rejected API request. Body holds the raw response.
type APIError = apierrors.APIError

// NetworkError represents a network-level failure. No response was received.
type NetworkError = apierrors.NetworkError

// ResponseError represents a response body that is not valid JSON.
type ResponseError = apierrors.ResponseError
