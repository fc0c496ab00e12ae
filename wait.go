package phaxio

import (
	"context"
	"fmt"
	"time"

	"github.com/faxkit/phaxio-go/internal/poll"
)

// Fax statuses that are still changing.
var pendingStatuses = map[string]bool{
	"":             true,
	"queued":       true,
	"pendingbatch": true,
	"inprogress":   true,
}

// Done reports whether the fax has reached a final status such as
// "success", "failure" or "partialsuccess".
func (f *Fax) Done() bool {
	return f != nil && !pendingStatuses[f.Status]
}

// waitConfig holds WaitForFax options.
type waitConfig struct {
	backoff poll.Backoff
}

// WaitOption configures WaitForFax.
type WaitOption func(*waitConfig)

// WithPollInterval sets the first wait between status checks. Later waits
// grow by half each time, up to WithMaxPollInterval.
// Default: 2 seconds
func WithPollInterval(d time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.backoff.Initial = d
	}
}

// WithMaxPollInterval caps the wait between status checks.
// Default: 30 seconds
func WithMaxPollInterval(d time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.backoff.Max = d
	}
}

// WaitForFax polls FaxStatus until the fax is Done and returns it. The first
// failing status request ends the wait with its error; bound the total time
// with ctx.
func (c *Client) WaitForFax(ctx context.Context, id int64, opts ...WaitOption) (*Fax, error) {
	cfg := &waitConfig{
		backoff: poll.Backoff{Jitter: poll.DefaultJitterFactor},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var fax *Fax
	err := poll.Until(ctx, cfg.backoff, func(ctx context.Context) (bool, error) {
		res, err := c.FaxStatus(ctx, id)
		if err != nil {
			return false, err
		}
		if res.Fax == nil {
			return false, fmt.Errorf("fax status: response for %d carried no fax: %w", id, ErrInvalidResponse)
		}
		fax = res.Fax
		c.logger.Debug().Int64("fax_id", id).Str("status", fax.Status).Msg("polled fax status")
		return fax.Done(), nil
	})
	if err != nil {
		return nil, err
	}
	return fax, nil
}
