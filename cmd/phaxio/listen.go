package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	phaxio "github.com/faxkit/phaxio-go"
)

const shutdownTimeout = 5 * time.Second

func (a *app) listenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Serve the callback URL and print every callback as a JSON line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			router, unsubscribe, err := newCallbackRouter(a.client, a.io.Stdout, a.logger)
			if err != nil {
				return err
			}
			defer unsubscribe()

			return serve(ctx, a.cfg.ListenAddr, router, a.logger)
		},
	}
	cmd.Flags().StringVar(&a.cfg.ListenAddr, "addr", a.cfg.ListenAddr, "listen address")
	return cmd
}

// newCallbackRouter mounts the client's callback handler at its callback
// path and prints each payload to out.
func newCallbackRouter(client *phaxio.Client, out io.Writer, logger zerolog.Logger) (*gin.Engine, func(), error) {
	h, err := client.Middleware()
	if err != nil {
		return nil, nil, fmt.Errorf("listen: %w (set --callback-url)", err)
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), requestSizeLimit(maxCallbackBytes))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Any(client.CallbackPath(), gin.WrapH(h))

	enc := newLineEncoder(out)
	unsubscribe := client.OnSent(func(p phaxio.CallbackPayload) {
		if err := enc.encode(p); err != nil {
			logger.Warn().Err(err).Msg("write callback")
		}
	})
	return r, unsubscribe, nil
}

// requestSizeLimit caps request bodies; oversized reads fail with 413.
func requestSizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

func requestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// serve runs handler on addr until ctx is done, then shuts down gracefully.
func serve(ctx context.Context, addr string, handler http.Handler, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info().Str("addr", addr).Msg("listening for callbacks")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
