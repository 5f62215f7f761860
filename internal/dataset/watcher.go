package dataset

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/alexanderramin/depotnotes/internal/rules"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reloads a data directory whenever one of its files changes and
// publishes each successfully loaded bundle.
type Watcher struct {
	dir      string
	debounce time.Duration
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
	updates  chan *rules.Bundle

	mu      sync.Mutex
	pending bool
	last    time.Time
}

// NewWatcher watches dir. A zero debounce uses DefaultDebounce.
func NewWatcher(dir string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
		updates:  make(chan *rules.Bundle, 1),
	}, nil
}

// Updates delivers reloaded bundles. It is closed when Run returns.
func (w *Watcher) Updates() <-chan *rules.Bundle {
	return w.updates
}

// Run watches until ctx is cancelled. Editors often replace files rather
// than write them in place, so the directory is watched, not the files.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.updates)
	defer w.fsw.Close()

	if err := w.fsw.Add(w.dir); err != nil {
		return err
	}
	w.logger.Info("watching data dir", "dir", w.dir, "debounce", w.debounce)

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)

		case now := <-ticker.C:
			if w.due(now) {
				w.reload(ctx)
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !IsDataFile(filepath.Base(ev.Name)) {
		return
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return
	}
	w.mu.Lock()
	w.pending = true
	w.last = time.Now()
	w.mu.Unlock()
	w.logger.Debug("data file changed", "path", ev.Name, "op", ev.Op.String())
}

// due reports whether a pending change has been quiet for the debounce
// window, clearing the pending mark when it has.
func (w *Watcher) due(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.pending || now.Sub(w.last) < w.debounce {
		return false
	}
	w.pending = false
	return true
}

func (w *Watcher) reload(ctx context.Context) {
	b, err := Load(ctx, w.dir)
	if err != nil {
		w.logger.Error("reloading data dir; keeping previous data", "dir", w.dir, "error", err)
		return
	}
	w.logger.Info("data dir reloaded", "dir", w.dir)
	for _, problem := range b.Problems {
		w.logger.Warn("skipping malformed rule data", "dir", w.dir, "error", problem)
	}

	// Drop a stale, unread bundle so the newest always wins.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- b:
	case <-ctx.Done():
	}
}
