// Command phaxio sends faxes, queries their status and receives Phaxio
// callbacks from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	phaxio "github.com/faxkit/phaxio-go"
	"github.com/faxkit/phaxio-go/internal/cliconfig"
	"github.com/faxkit/phaxio-go/internal/logging"
)

// maxCallbackBytes bounds inbound callback bodies in listen.
const maxCallbackBytes = 1 << 20

var exampleUsage = strings.TrimSpace(`
  phaxio send --to 1235551212 --file invoice.pdf
  phaxio send --to 1235551212 --to 1235551313 --string-data "https://example.com/doc" --string-data-type url
  phaxio status 123456
  phaxio listen --addr :8080 --callback-url https://fax.example.com/phaxio
  phaxio watch --dir ~/outbox --to 1235551212
`)

// IO holds the streams used by the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultIO returns the process streams.
func DefaultIO() *IO {
	return &IO{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// faxClient is the part of *phaxio.Client used by send, status and watch.
type faxClient interface {
	Send(ctx context.Context, phoneNumber string, opts *phaxio.SendOptions) (*phaxio.SendResult, error)
	FaxStatus(ctx context.Context, id int64) (*phaxio.FaxStatusResult, error)
	WaitForFax(ctx context.Context, id int64, opts ...phaxio.WaitOption) (*phaxio.Fax, error)
}

// newClient builds the API client from the resolved configuration.
var newClient = func(cfg cliconfig.Config, logger zerolog.Logger) (*phaxio.Client, error) {
	opts := []phaxio.Option{
		phaxio.WithBaseURL(cfg.BaseURL),
		phaxio.WithTimeout(cfg.Timeout),
		phaxio.WithMaxCallbackBytes(maxCallbackBytes),
		phaxio.WithLogger(logger),
	}
	if cfg.CallbackURL != "" {
		opts = append(opts, phaxio.WithCallbackURL(cfg.CallbackURL))
	}
	if cfg.CallbackToken != "" {
		opts = append(opts, phaxio.WithCallbackToken(cfg.CallbackToken))
	}
	return phaxio.New(cfg.APIKey, cfg.APISecret, opts...)
}

// app is the state shared by all subcommands. It is filled in by setup
// before any RunE executes.
type app struct {
	io      *IO
	cfg     cliconfig.Config
	cfgPath string
	envPath string

	logger   zerolog.Logger
	closeLog func() error
	client   *phaxio.Client
}

func newApp(stdio *IO) *app {
	return &app{
		io:     stdio,
		cfg:    cliconfig.DefaultConfig(),
		logger: zerolog.Nop(),
	}
}

func run(args []string, stdio *IO) error {
	a := newApp(stdio)
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdio.Stdin)
	root.SetOut(stdio.Stdout)
	root.SetErr(stdio.Stderr)
	return root.ExecuteContext(context.Background())
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "phaxio",
		Short:             "Send faxes and receive callbacks through the Phaxio API",
		Example:           exampleUsage,
		Version:           fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.phaxio/config.toml)")
	f.StringVar(&a.envPath, "env-file", ".env", "dotenv file to load before reading PHAXIO_* variables")
	f.StringVar(&a.cfg.BaseURL, "base-url", a.cfg.BaseURL, "Phaxio API base URL")
	f.StringVar(&a.cfg.APIKey, "api-key", "", "Phaxio API key")
	f.StringVar(&a.cfg.APISecret, "api-secret", "", "Phaxio API secret")
	f.StringVar(&a.cfg.CallbackURL, "callback-url", "", "absolute URL Phaxio notifies when a fax completes")
	f.StringVar(&a.cfg.CallbackToken, "callback-token", "", "callback token used to verify callback signatures")
	f.DurationVar(&a.cfg.Timeout, "timeout", a.cfg.Timeout, "HTTP timeout")
	f.IntVar(&a.cfg.Concurrency, "concurrency", a.cfg.Concurrency, "maximum faxes sent in parallel")
	f.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")
	f.StringVar(&a.cfg.LogFile, "log-file", "", "write JSON logs to this file instead of stderr")

	root.AddCommand(
		a.sendCmd(),
		a.statusCmd(),
		a.listenCmd(),
		a.watchCmd(),
	)
	return root
}

// setup resolves the configuration and builds the logger and client.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if err := cliconfig.Load(&a.cfg, a.cfgPath, a.envPath, changed); err != nil {
		return err
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:   a.cfg.LogLevel,
		File:    a.cfg.LogFile,
		Console: a.io.Stderr,
	})
	if err != nil {
		return err
	}
	a.logger = logger
	a.closeLog = closeLog

	a.logger.Debug().Interface("config", a.cfg.Masked()).Msg("configuration")

	client, err := newClient(a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	a.client = client
	return nil
}

func (a *app) close() {
	if a.closeLog != nil {
		a.closeLog()
	}
}

// lineEncoder writes one JSON document per line. It is safe for concurrent use.
type lineEncoder struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func newLineEncoder(w io.Writer) *lineEncoder {
	return &lineEncoder{enc: json.NewEncoder(w)}
}

func (e *lineEncoder) encode(v any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enc.Encode(v)
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
