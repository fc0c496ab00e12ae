package api

import (
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/faxkit/phaxio-go/internal/apierrors"
)

// Response is a successful API response.
type Response struct {
	StatusCode int
	Message    string
	// Data is the raw "data" member, if present.
	Data json.RawMessage
	// Raw is the complete response body.
	Raw       []byte
	RequestID string
}

// interpret decides whether a response is a success.
//
// A status >= 400 is always an *APIError, whatever the body holds. Below
// that, a body that is not JSON is a *ResponseError, and a body whose success
// member is not true is an *APIError carrying the raw body.
func interpret(status int, body []byte, requestID string) (*Response, error) {
	valid := gjson.ValidBytes(body)

	if status >= http.StatusBadRequest {
		apiErr := &apierrors.APIError{
			StatusCode: status,
			Body:       body,
			RequestID:  requestID,
		}
		if valid {
			apiErr.Message = gjson.GetBytes(body, "message").String()
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return nil, apiErr
	}

	if !valid {
		var v any
		return nil, &apierrors.ResponseError{
			StatusCode: status,
			Body:       body,
			RequestID:  requestID,
			Err:        json.Unmarshal(body, &v),
		}
	}

	parsed := gjson.ParseBytes(body)
	message := parsed.Get("message").String()

	if !parsed.Get("success").Bool() {
		return nil, &apierrors.APIError{
			StatusCode: status,
			Message:    message,
			Body:       body,
			RequestID:  requestID,
		}
	}

	resp := &Response{
		StatusCode: status,
		Message:    message,
		Raw:        body,
		RequestID:  requestID,
	}
	if data := parsed.Get("data"); data.Exists() {
		resp.Data = json.RawMessage(data.Raw)
	}
	return resp, nil
}
