package watcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/apriori"
	"github.com/PoorlyDefinedBehaviour/apriori-rule-learning/internal/dataset"
)

// DefaultDebounce is how long the watcher waits after the last change
// before reloading the file.
const DefaultDebounce = 250 * time.Millisecond

// MineFunc receives the freshly loaded transactions after every change.
type MineFunc func(ctx context.Context, transactions []apriori.Transaction[int64]) error

// Watcher reloads a transaction file on change and passes it to a MineFunc.
type Watcher struct {
	path     string
	mine     MineFunc
	logger   *slog.Logger
	debounce time.Duration
}

// New creates a Watcher for the file at path. logger may be nil.
func New(path string, mine MineFunc, logger *slog.Logger) (*Watcher, error) {
	if mine == nil {
		return nil, fmt.Errorf("mine func cannot be nil")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Watcher{
		path:     abs,
		mine:     mine,
		logger:   logger.With("file", abs),
		debounce: DefaultDebounce,
	}, nil
}

// SetDebounce changes the quiet period before a reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run processes the file once, then again after every change, until ctx is
// cancelled. It only returns an error if the filesystem watch cannot be set up.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.logger.Info("watching for changes")
	w.process(ctx)

	var timer *time.Timer
	var reload <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			w.logger.Debug("change detected", "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			reload = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("filesystem watcher error", "error", err)

		case <-reload:
			reload = nil
			w.process(ctx)
		}
	}
}

// process reloads the file and runs the callback, logging failures.
func (w *Watcher) process(ctx context.Context) {
	transactions, err := dataset.LoadFile(w.path)
	if err != nil {
		w.logger.Warn("failed to load transactions", "error", err)
		return
	}

	start := time.Now()
	if err := w.mine(ctx, transactions); err != nil {
		w.logger.Error("mining failed", "error", err)
		return
	}

	w.logger.Debug("mined transactions",
		"transactions", len(transactions),
		"took", time.Since(start))
}
