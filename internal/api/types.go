package api

import (
	"encoding/json"

	"github.com/faxkit/phaxio-go/internal/form"
)

// SendRequest holds the inputs of a /send call.
type SendRequest struct {
	To string
	// CallbackURL is sent as callback_url when non-empty.
	CallbackURL string
	// Options are split into form fields and stream metadata.
	Options form.Fields
}

// SendResponse represents the /send response.
type SendResponse struct {
	FaxID   int64
	Message string
	Raw     json.RawMessage
}

// FaxStatusResponse represents the /faxStatus response.
type FaxStatusResponse struct {
	Fax     *FaxDTO
	Message string
	Raw     json.RawMessage
}

// FaxDTO is a fax as reported by /faxStatus and by callbacks.
type FaxDTO struct {
	ID          int64             `json:"id"`
	NumPages    int               `json:"num_pages"`
	Cost        int               `json:"cost"`
	Direction   string            `json:"direction"`
	Status      string            `json:"status"`
	IsTest      bool              `json:"is_test"`
	RequestedAt int64             `json:"requested_at"`
	CompletedAt int64             `json:"completed_at"`
	ErrorType   string            `json:"error_type,omitempty"`
	ErrorCode   string            `json:"error_code,omitempty"`
	ErrorID     int64             `json:"error_id,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Recipients  []RecipientDTO    `json:"recipients,omitempty"`
}

// RecipientDTO is a single destination of a sent fax.
type RecipientDTO struct {
	Number      string `json:"number"`
	Status      string `json:"status"`
	CompletedAt int64  `json:"completed_at"`
	ErrorType   string `json:"error_type,omitempty"`
	ErrorCode   string `json:"error_code,omitempty"`
	ErrorID     int64  `json:"error_id,omitempty"`
}
