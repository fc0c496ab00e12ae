package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	phaxio "github.com/faxkit/phaxio-go"
)

type sendFlags struct {
	to             []string
	file           string
	stringData     string
	stringDataType string
	contentType    string
	params         []string
}

// sendOutput is printed once per recipient.
type sendOutput struct {
	To      string `json:"to"`
	FaxID   int64  `json:"fax_id,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (a *app) sendCmd() *cobra.Command {
	var f sendFlags
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a fax to one or more numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSend(cmd.Context(), a.client, f, a.cfg.Concurrency, a.io.Stdout, a.logger)
		},
	}

	cmd.Flags().StringArrayVar(&f.to, "to", nil, "destination number (repeatable)")
	cmd.Flags().StringVar(&f.file, "file", "", "document to fax")
	cmd.Flags().StringVar(&f.stringData, "string-data", "", "HTML, text or URL to fax instead of a file")
	cmd.Flags().StringVar(&f.stringDataType, "string-data-type", "", "type of --string-data: html, url or text")
	cmd.Flags().StringVar(&f.contentType, "content-type", "", "content type of --file (default: guessed from the extension)")
	cmd.Flags().StringArrayVar(&f.params, "param", nil, "extra sendFax parameter as name=value (repeatable)")
	return cmd
}

// runSend faxes the document to every recipient, at most concurrency at a
// time, and prints one line per recipient in completion order.
func runSend(ctx context.Context, client faxClient, f sendFlags, concurrency int, out io.Writer, logger zerolog.Logger) error {
	if len(f.to) == 0 {
		return errors.New("at least one --to is required")
	}
	if f.file == "" && f.stringData == "" {
		return errors.New("one of --file or --string-data is required")
	}
	params, err := parseParams(f.params)
	if err != nil {
		return err
	}

	enc := newLineEncoder(out)
	var failed atomic.Int32

	var g errgroup.Group
	g.SetLimit(max(concurrency, 1))
	for _, to := range f.to {
		g.Go(func() error {
			line := sendOutput{To: to}
			res, err := sendOne(ctx, client, to, f, params)
			if err != nil {
				failed.Add(1)
				line.Error = err.Error()
				logger.Error().Err(err).Str("to", to).Msg("send failed")
			} else {
				line.FaxID = res.FaxID
				line.Message = res.Message
				logger.Info().Str("to", to).Int64("fax_id", res.FaxID).Msg("fax queued")
			}
			return enc.encode(line)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d faxes failed", n, len(f.to))
	}
	return nil
}

// sendOne sends to a single number. Each call opens its own file handle so
// recipients can be served in parallel.
func sendOne(ctx context.Context, client faxClient, to string, f sendFlags, params phaxio.Params) (*phaxio.SendResult, error) {
	opts := &phaxio.SendOptions{
		ContentType:    f.contentType,
		StringData:     f.stringData,
		StringDataType: f.stringDataType,
		Params:         params,
	}

	if f.file != "" {
		file, err := os.Open(f.file)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		opts.Stream = file
		if opts.ContentType == "" {
			opts.ContentType = mime.TypeByExtension(filepath.Ext(f.file))
		}
	}

	return client.Send(ctx, to, opts)
}

// parseParams turns name=value pairs into sendFax parameters.
func parseParams(raw []string) (phaxio.Params, error) {
	var params phaxio.Params
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --param %q: want name=value", kv)
		}
		params = append(params, phaxio.Field{Name: strings.TrimSpace(name), Value: value})
	}
	return params, nil
}
