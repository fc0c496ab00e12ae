package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	phaxio "github.com/faxkit/phaxio-go"
)

type recipientOutput struct {
	Number      string `json:"number"`
	Status      string `json:"status"`
	CompletedAt string `json:"completed_at,omitempty"`
	ErrorCode   string `json:"error_code,omitempty"`
}

type faxOutput struct {
	ID          int64             `json:"id"`
	Direction   string            `json:"direction,omitempty"`
	Status      string            `json:"status"`
	IsTest      bool              `json:"is_test"`
	NumPages    int               `json:"num_pages"`
	Cost        int               `json:"cost"`
	RequestedAt string            `json:"requested_at,omitempty"`
	CompletedAt string            `json:"completed_at,omitempty"`
	ErrorCode   string            `json:"error_code,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Recipients  []recipientOutput `json:"recipients,omitempty"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func convertFax(f *phaxio.Fax) faxOutput {
	out := faxOutput{
		ID:          f.ID,
		Direction:   f.Direction,
		Status:      f.Status,
		IsTest:      f.IsTest,
		NumPages:    f.NumPages,
		Cost:        f.Cost,
		RequestedAt: formatTime(f.RequestedAt),
		CompletedAt: formatTime(f.CompletedAt),
		ErrorCode:   f.ErrorCode,
		Tags:        f.Tags,
	}
	for _, r := range f.Recipients {
		out.Recipients = append(out.Recipients, recipientOutput{
			Number:      r.Number,
			Status:      r.Status,
			CompletedAt: formatTime(r.CompletedAt),
			ErrorCode:   r.ErrorCode,
		})
	}
	return out
}

func (a *app) statusCmd() *cobra.Command {
	var wait bool
	cmd := &cobra.Command{
		Use:   "status FAX_ID",
		Short: "Print the status of a fax",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), a.client, args[0], wait, a.io.Stdout)
		},
	}
	cmd.Flags().BoolVar(&wait, "wait", false, "poll until the fax reaches a final status")
	return cmd
}

func runStatus(ctx context.Context, client faxClient, rawID string, wait bool, out io.Writer) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid fax id %q", rawID)
	}

	var fax *phaxio.Fax
	if wait {
		fax, err = client.WaitForFax(ctx, id)
	} else {
		var res *phaxio.FaxStatusResult
		res, err = client.FaxStatus(ctx, id)
		if res != nil {
			fax = res.Fax
		}
	}
	if err != nil {
		return fmt.Errorf("fax status: %w", err)
	}
	if fax == nil {
		return fmt.Errorf("fax status: response for %d carried no fax", id)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(convertFax(fax)); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
