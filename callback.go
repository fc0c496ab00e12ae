package phaxio

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/faxkit/phaxio-go/internal/api"
	"github.com/faxkit/phaxio-go/internal/callback"
)

// CallbackPayload is a decoded callback notification. The fax, is_test and
// success fields hold decoded JSON values (objects as map[string]any,
// numbers as float64); every other field holds its raw string.
type CallbackPayload map[string]any

// IsTest reports whether the callback concerns a test fax.
func (p CallbackPayload) IsTest() bool {
	v, _ := p["is_test"].(bool)
	return v
}

// Success reports whether the fax succeeded.
func (p CallbackPayload) Success() bool {
	v, _ := p["success"].(bool)
	return v
}

// Direction returns "sent" or "received" when Phaxio provides it.
func (p CallbackPayload) Direction() string {
	v, _ := p["direction"].(string)
	return v
}

// Fax decodes the fax field.
func (p CallbackPayload) Fax() (*Fax, error) {
	raw, ok := p["fax"]
	if !ok {
		return nil, errors.New("callback has no fax field")
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encode fax: %w", err) //coverage:ignore
	}
	var dto api.FaxDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("decode fax: %w", err)
	}
	return faxFromDTO(&dto), nil
}

// OnSent registers fn to receive every decoded callback. Listeners run
// synchronously on the request goroutine, in registration order, before the
// callback is acknowledged. The returned function unregisters fn and is safe
// to call more than once.
func (c *Client) OnSent(fn func(CallbackPayload)) (unsubscribe func()) {
	return c.subs.subscribe(fn)
}

// Middleware returns an http.Handler that accepts Phaxio callbacks. Mount it
// at CallbackPath on the server that serves the configured callback URL.
//
// The handler answers 200 with an empty body once the payload has been
// delivered to the OnSent listeners. A JSON field that fails to decode is
// answered with 400 and no event is emitted.
func (c *Client) Middleware() (http.Handler, error) {
	if c.callbackURL == nil {
		return nil, ErrCallbackNotConfigured
	}
	return http.HandlerFunc(c.handleCallback), nil
}

func (c *Client) handleCallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, c.maxCallbackBytes)

	values, err := callback.ReadForm(r)
	if err != nil {
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			status = http.StatusRequestEntityTooLarge
		case errors.Is(err, callback.ErrUnsupportedMediaType):
			status = http.StatusUnsupportedMediaType
		}
		c.logger.Warn().Err(err).Int("status", status).Msg("callback rejected")
		http.Error(w, err.Error(), status)
		return
	}

	if c.callbackToken != "" {
		sig := r.Header.Get(callback.SignatureHeader)
		if !callback.Verify(c.callbackToken, c.callbackURL.String(), values, sig) {
			c.logger.Warn().Msg("callback rejected: signature mismatch")
			http.Error(w, "invalid signature", http.StatusForbidden)
			return
		}
	}

	payload, err := callback.Decode(values)
	if err != nil {
		c.logger.Warn().Err(err).Msg("callback rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c.logger.Debug().
		Int("fields", len(payload)).
		Str("direction", CallbackPayload(payload).Direction()).
		Msg("callback received")

	c.subs.notify(CallbackPayload(payload))

	w.WriteHeader(http.StatusOK)
}
