package api

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/faxkit/phaxio-go/internal/apierrors"
	"github.com/faxkit/phaxio-go/internal/form"
)

// faxIDPaths lists where /send responses have been seen to carry the fax ID.
var faxIDPaths = []string{"data.faxId", "faxId", "fax_id", "data.fax_id", "data.id"}

// Send queues a fax. Form entries are written in the order to, api_key,
// api_secret, callback_url, then the caller's fields.
func (c *Client) Send(ctx context.Context, req SendRequest) (*SendResponse, error) {
	split := form.Split(req.Options)

	b := form.NewBuilder(split.StreamMeta).Add("to", req.To)
	c.authenticate(b)
	if req.CallbackURL != "" {
		b.Add("callback_url", req.CallbackURL)
	}
	b.AddAll(split.FormFields)

	resp, err := c.PostForm(ctx, "/send", b)
	if err != nil {
		return nil, err
	}

	out := &SendResponse{
		Message: resp.Message,
		Raw:     json.RawMessage(resp.Raw),
	}
	for _, path := range faxIDPaths {
		if id := gjson.GetBytes(resp.Raw, path); id.Exists() {
			out.FaxID = id.Int()
			break
		}
	}
	return out, nil
}

// FaxStatus retrieves the state of a fax.
func (c *Client) FaxStatus(ctx context.Context, id int64) (*FaxStatusResponse, error) {
	b := form.NewBuilder(form.StreamMeta{}).Add("id", id)
	c.authenticate(b)

	resp, err := c.PostForm(ctx, "/faxStatus", b)
	if err != nil {
		return nil, err
	}

	out := &FaxStatusResponse{
		Message: resp.Message,
		Raw:     json.RawMessage(resp.Raw),
	}
	if len(resp.Data) > 0 {
		var fax FaxDTO
		if err := json.Unmarshal(resp.Data, &fax); err != nil {
			return nil, &apierrors.ResponseError{
				StatusCode: resp.StatusCode,
				Body:       resp.Raw,
				RequestID:  resp.RequestID,
				Err:        err,
			}
		}
		out.Fax = &fax
	}
	return out, nil
}
