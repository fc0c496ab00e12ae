package phaxio

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/faxkit/phaxio-go/internal/api"
)

// Client is the Phaxio API client. It is safe for concurrent use; apart from
// the listener registry its configuration never changes after New.
type Client struct {
	apiClient        *api.Client
	callbackURL      *url.URL
	callbackToken    string
	maxCallbackBytes int64
	logger           zerolog.Logger

	// Listeners for the "sent" callback event
	subs *subscriptionManager
}

// SendResult is the outcome of a successful Send.
type SendResult struct {
	FaxID   int64
	Message string
	// Raw is the unparsed response body.
	Raw json.RawMessage
}

// FaxStatusResult is the outcome of a successful FaxStatus.
type FaxStatusResult struct {
	// Fax is nil when the response carried no data.
	Fax     *Fax
	Message string
	// Raw is the unparsed response body.
	Raw json.RawMessage
}

// New creates a new Phaxio client with the given credentials.
func New(apiKey, apiSecret string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if apiSecret == "" {
		return nil, ErrMissingAPISecret
	}

	cfg := &clientConfig{
		baseURL:          defaultBaseURL,
		timeout:          defaultTimeout,
		maxCallbackBytes: defaultMaxCallbackBytes,
		logger:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var callbackURL *url.URL
	if cfg.callbackURL != "" {
		u, err := parseCallbackURL(cfg.callbackURL)
		if err != nil {
			return nil, err
		}
		callbackURL = u
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:    cfg.baseURL,
		APIKey:     apiKey,
		APISecret:  apiSecret,
		HTTPClient: cfg.httpClient,
		Timeout:    cfg.timeout,
		Logger:     cfg.logger,
	})
	if err != nil {
		return nil, err //coverage:ignore
	}

	maxCallbackBytes := cfg.maxCallbackBytes
	if maxCallbackBytes <= 0 {
		maxCallbackBytes = defaultMaxCallbackBytes
	}

	return &Client{
		apiClient:        apiClient,
		callbackURL:      callbackURL,
		callbackToken:    cfg.callbackToken,
		maxCallbackBytes: maxCallbackBytes,
		logger:           cfg.logger,
		subs:             newSubscriptionManager(),
	}, nil
}

// parseCallbackURL accepts only absolute URLs with a host.
func parseCallbackURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCallbackURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidCallbackURL, raw)
	}
	return u, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}

// CallbackURL returns the normalized callback URL, or "" if none is configured.
func (c *Client) CallbackURL() string {
	if c.callbackURL == nil {
		return ""
	}
	return c.callbackURL.String()
}

// CallbackPath returns the path the Middleware handler should be mounted at,
// or "" if no callback URL is configured.
func (c *Client) CallbackPath() string {
	if c.callbackURL == nil {
		return ""
	}
	if c.callbackURL.Path == "" {
		return "/"
	}
	return c.callbackURL.Path
}

// Send queues a fax to phoneNumber. opts may be nil.
//
// Stream a document:
//
//	f, _ := os.Open("invoice.pdf")
//	defer f.Close()
//	res, err := client.Send(ctx, "1235551212", &phaxio.SendOptions{Stream: f})
//
// Send a URL through Phaxio's string_data option:
//
//	res, err := client.Send(ctx, "1235551212", &phaxio.SendOptions{
//	    StringData:     "http://example.com/some_document",
//	    StringDataType: "url",
//	})
//
// Any other sendFax parameter goes in Params and is forwarded unchanged.
func (c *Client) Send(ctx context.Context, phoneNumber string, opts *SendOptions) (*SendResult, error) {
	req := api.SendRequest{
		To:      phoneNumber,
		Options: opts.Fields(),
	}
	if c.callbackURL != nil {
		req.CallbackURL = c.callbackURL.String()
	}

	resp, err := c.apiClient.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	return &SendResult{
		FaxID:   resp.FaxID,
		Message: resp.Message,
		Raw:     resp.Raw,
	}, nil
}

// FaxStatus retrieves the current state of the fax with the given ID.
func (c *Client) FaxStatus(ctx context.Context, id int64) (*FaxStatusResult, error) {
	resp, err := c.apiClient.FaxStatus(ctx, id)
	if err != nil {
		return nil, err
	}

	return &FaxStatusResult{
		Fax:     faxFromDTO(resp.Fax),
		Message: resp.Message,
		Raw:     resp.Raw,
	}, nil
}
