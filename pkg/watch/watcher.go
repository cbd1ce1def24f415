package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mercator-hq/ponyini/pkg/config"
)

// Watcher watches a pack root for pony.ini changes and calls back after a
// quiet period. Directories created while watching are added as they appear.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer

	mu       sync.RWMutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// Config contains configuration for the watcher.
type Config struct {
	// Path is the pack root to watch recursively.
	Path string

	// DebounceInterval is the quiet period after the last relevant event
	// before the callback runs.
	DebounceInterval time.Duration

	// Names lists the file base names whose changes trigger the callback.
	// Output files such as _pony.ini and config.json must not be listed, or
	// every run would trigger the next one.
	Names []string

	// SkipHidden ignores files and directories starting with a dot.
	SkipHidden bool
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() *Config {
	return &Config{
		DebounceInterval: config.DefaultWatchDebounce,
		Names:            []string{"pony.ini"},
		SkipHidden:       true,
	}
}

// NewWatcher creates a watcher. Call Stop to release it.
func NewWatcher(cfg *Config, logger *slog.Logger) (*Watcher, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fw,
		logger:   logger.With("component", "watcher"),
		config:   cfg,
		debounce: NewDebouncer(cfg.DebounceInterval),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called, running onChange
// after every burst of relevant events. Errors from onChange are logged and
// watching continues.
func (w *Watcher) Watch(ctx context.Context, onChange func(context.Context) error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	if err := w.addDirectory(w.config.Path); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	w.logger.Info("file watcher started",
		"path", w.config.Path,
		"debounce_ms", w.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			created := w.watchCreated(event)
			if !created && !w.shouldProcessEvent(event) {
				continue
			}

			w.logger.Debug("file event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			w.debounce.Trigger(func() {
				w.logger.Info("pack change detected", "path", event.Name)
				if err := onChange(ctx); err != nil {
					w.logger.Error("pack rebuild failed", "error", err)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Running reports whether Watch is active.
func (w *Watcher) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// Stop ends Watch, cancels a pending callback and releases the watcher.
// It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)

		w.mu.RLock()
		running := w.running
		w.mu.RUnlock()
		if running {
			<-w.doneCh
		}

		w.debounce.Stop()
		if cerr := w.watcher.Close(); cerr != nil {
			err = fmt.Errorf("failed to close watcher: %w", cerr)
		}
	})
	return err
}

// addDirectory adds dir and all its subdirectories to the watcher.
func (w *Watcher) addDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && w.hidden(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

// watchCreated starts watching a directory that appeared under the root and
// reports whether it did. A new pony directory counts as a change.
func (w *Watcher) watchCreated(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) || w.hidden(event.Name) {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return false
	}
	if err := w.addDirectory(event.Name); err != nil {
		w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
		return false
	}
	return true
}

// shouldProcessEvent determines if an event should trigger a rebuild.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if w.hidden(event.Name) {
		return false
	}

	base := filepath.Base(event.Name)
	for _, name := range w.config.Names {
		if base == name {
			return true
		}
	}
	return false
}

func (w *Watcher) hidden(path string) bool {
	return w.config.SkipHidden && strings.HasPrefix(filepath.Base(path), ".")
}
