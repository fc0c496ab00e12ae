package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/faxkit/phaxio-go/internal/apierrors"
	"github.com/faxkit/phaxio-go/internal/form"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.phaxio.com/v1"
	DefaultTimeout = 30 * time.Second
)

// Version is the library version reported in the User-Agent header.
const Version = "0.4.0"

// UserAgent is sent with every request.
const UserAgent = "phaxio-go/" + Version

// maxResponseBytes caps how much of a response body is read into memory.
const maxResponseBytes = 10 << 20

// Config holds the API client configuration.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
	Timeout    time.Duration
	// Logger receives request diagnostics. The zero value discards them.
	Logger zerolog.Logger
}

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new API client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}
	if cfg.APISecret == "" {
		return nil, apierrors.ErrMissingAPISecret
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// authenticate appends the credential fields.
func (c *Client) authenticate(b *form.Builder) {
	b.Add("api_key", c.apiKey).Add("api_secret", c.apiSecret)
}

// PostForm sends the form built by b to path and interprets the response.
// Exactly one request is made; failures are never retried.
func (c *Client) PostForm(ctx context.Context, path string, b *form.Builder) (*Response, error) {
	url := c.baseURL + path
	requestID := uuid.NewString()

	body, contentType, err := b.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		if closer, ok := body.(io.Closer); ok {
			closer.Close()
		}
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("request_id", requestID).
			Str("path", path).
			Msg("phaxio request failed")
		return nil, &apierrors.NetworkError{Err: err, URL: url}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &apierrors.NetworkError{Err: fmt.Errorf("read response: %w", err), URL: url}
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("phaxio request")

	return interpret(resp.StatusCode, data, requestID)
}
