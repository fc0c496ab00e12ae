package phaxio

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/faxkit/phaxio-go/internal/api"
)

const (
	defaultBaseURL          = api.DefaultBaseURL
	defaultTimeout          = api.DefaultTimeout
	defaultMaxCallbackBytes = 1 << 20
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL          string
	httpClient       *http.Client
	timeout          time.Duration
	callbackURL      string
	callbackToken    string
	maxCallbackBytes int64
	logger           zerolog.Logger
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. Its own timeout applies and
// WithTimeout is ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the timeout of the default HTTP client.
// Default: 30 seconds
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithCallbackURL sets the URL Phaxio notifies when a fax completes. It is
// sent as callback_url with every fax and enables [Client.Middleware].
// The URL must be absolute.
func WithCallbackURL(url string) Option {
	return func(c *clientConfig) {
		c.callbackURL = url
	}
}

// WithCallbackToken enables signature verification of inbound callbacks
// using the account's callback token.
func WithCallbackToken(token string) Option {
	return func(c *clientConfig) {
		c.callbackToken = token
	}
}

// WithMaxCallbackBytes limits the size of an inbound callback body.
// Default: 1 MiB
func WithMaxCallbackBytes(n int64) Option {
	return func(c *clientConfig) {
		c.maxCallbackBytes = n
	}
}

// WithLogger sets the logger used for request and callback diagnostics.
// Default: zerolog.Nop()
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
