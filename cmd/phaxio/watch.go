package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/faxkit/phaxio-go/internal/outbox"
)

func (a *app) watchCmd() *cobra.Command {
	var to []string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Fax every file dropped into a directory",
		Long: "Watch a directory and fax every file once it stops changing. " +
			"Sent files move to sent/, files that could not be sent move to failed/.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.OutboxDir == "" {
				return errors.New("--dir is required (or PHAXIO_OUTBOX_DIR)")
			}
			if len(to) == 0 {
				return errors.New("at least one --to is required")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w, err := outbox.New(a.cfg.OutboxDir, faxFileHandler(a.client, to), outbox.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&a.cfg.OutboxDir, "dir", "", "directory to watch")
	cmd.Flags().StringArrayVar(&to, "to", nil, "destination number (repeatable)")
	return cmd
}

// faxFileHandler sends the file to every number. The file counts as failed
// if any recipient fails.
func faxFileHandler(client faxClient, to []string) outbox.Handler {
	return func(ctx context.Context, path string) error {
		var errs []error
		for _, n := range to {
			if _, err := sendOne(ctx, client, n, sendFlags{file: path}, nil); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", n, err))
			}
		}
		return errors.Join(errs...)
	}
}
