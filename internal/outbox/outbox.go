// Package outbox watches a directory and hands every file that settles in it
// to a handler, then files it under sent/ or failed/.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Subdirectories that receive processed files.
const (
	SentDir   = "sent"
	FailedDir = "failed"
)

// DefaultSettle is how long a file must stay unchanged before it is handled.
const DefaultSettle = 500 * time.Millisecond

// Handler processes one file. A nil error moves the file to sent/.
type Handler func(ctx context.Context, path string) error

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets the quiet period before a file is handled.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithLogger sets the logger. Default: zerolog.Nop()
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// Watcher feeds the files of one directory to a Handler.
type Watcher struct {
	dir     string
	handler Handler
	settle  time.Duration
	logger  zerolog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
	ready   chan string
}

// New creates a Watcher for dir.
func New(dir string, handler Handler, opts ...Option) (*Watcher, error) {
	if dir == "" {
		return nil, errors.New("outbox: directory is required")
	}
	if handler == nil {
		return nil, errors.New("outbox: handler is required")
	}

	w := &Watcher{
		dir:     filepath.Clean(dir),
		handler: handler,
		settle:  DefaultSettle,
		logger:  zerolog.Nop(),
		pending: make(map[string]*time.Timer),
		ready:   make(chan string, 64),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches the directory until ctx is cancelled. Files already present
// are handled as well. Files are handled one at a time.
func (w *Watcher) Run(ctx context.Context) error {
	for _, sub := range []string{SentDir, FailedDir} {
		if err := os.MkdirAll(filepath.Join(w.dir, sub), 0o755); err != nil {
			return fmt.Errorf("outbox: create %s: %w", sub, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("outbox: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("outbox: watch %s: %w", w.dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.work(ctx)
	}()
	defer func() {
		cancel()
		w.stopTimers()
		wg.Wait()
	}()

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("outbox: read %s: %w", w.dir, err)
	}
	for _, e := range entries {
		w.schedule(ctx, filepath.Join(w.dir, e.Name()))
	}

	w.logger.Info().Str("dir", w.dir).Msg("watching outbox")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			switch {
			case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
				w.schedule(ctx, event.Name)
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.cancel(event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("outbox watcher error")
		}
	}
}

// schedule (re)starts the settle timer of path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	if w.ignored(path) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		select {
		case w.ready <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

// ignored filters out hidden files and anything outside the top level.
func (w *Watcher) ignored(path string) bool {
	if filepath.Dir(path) != w.dir {
		return true
	}
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") || name == SentDir || name == FailedDir
}

func (w *Watcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-w.ready:
			w.process(ctx, path)
		}
	}
}

func (w *Watcher) process(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		// Already moved, removed, or a directory.
		return
	}

	log := w.logger.With().Str("file", filepath.Base(path)).Logger()

	dest := SentDir
	if err := w.handler(ctx, path); err != nil {
		if ctx.Err() != nil {
			// Left in place so it is retried on the next run.
			return
		}
		log.Error().Err(err).Msg("outbox file failed")
		dest = FailedDir
	} else {
		log.Info().Msg("outbox file sent")
	}

	target, err := w.move(path, dest)
	if err != nil {
		log.Error().Err(err).Msg("move outbox file")
		return
	}
	log.Debug().Str("to", target).Msg("outbox file moved")
}

// move renames path into the sub directory, suffixing the name if it is taken.
func (w *Watcher) move(path, sub string) (string, error) {
	name := filepath.Base(path)
	target := filepath.Join(w.dir, sub, name)
	if _, err := os.Stat(target); err == nil {
		ext := filepath.Ext(name)
		target = filepath.Join(w.dir, sub,
			fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), time.Now().UnixNano(), ext))
	}
	if err := os.Rename(path, target); err != nil {
		return "", err
	}
	return target, nil
}
