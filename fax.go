package phaxio

import (
	"time"

	"github.com/faxkit/phaxio-go/internal/api"
)

// Fax is a fax as reported by FaxStatus and by callbacks.
type Fax struct {
	ID          int64
	Direction   string // "sent" or "received"
	Status      string
	IsTest      bool
	NumPages    int
	Cost        int // in cents
	RequestedAt time.Time
	CompletedAt time.Time
	ErrorType   string
	ErrorCode   string
	ErrorID     int64
	Tags        map[string]string
	Recipients  []Recipient
}

// Recipient is one destination of a sent fax.
type Recipient struct {
	Number      string
	Status      string
	CompletedAt time.Time
	ErrorType   string
	ErrorCode   string
	ErrorID     int64
}

func unixTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// faxFromDTO converts an API DTO to a public Fax type.
func faxFromDTO(dto *api.FaxDTO) *Fax {
	if dto == nil {
		return nil
	}

	f := &Fax{
		ID:          dto.ID,
		Direction:   dto.Direction,
		Status:      dto.Status,
		IsTest:      dto.IsTest,
		NumPages:    dto.NumPages,
		Cost:        dto.Cost,
		RequestedAt: unixTime(dto.RequestedAt),
		CompletedAt: unixTime(dto.CompletedAt),
		ErrorType:   dto.ErrorType,
		ErrorCode:   dto.ErrorCode,
		ErrorID:     dto.ErrorID,
		Tags:        dto.Tags,
	}

	f.Recipients = make([]Recipient, len(dto.Recipients))
	for i, r := range dto.Recipients {
		f.Recipients[i] = Recipient{
			Number:      r.Number,
			Status:      r.Status,
			CompletedAt: unixTime(r.CompletedAt),
			ErrorType:   r.ErrorType,
			ErrorCode:   r.ErrorCode,
			ErrorID:     r.ErrorID,
		}
	}

	return f
}
