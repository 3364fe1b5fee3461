package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports chat exports that need (re-)analysis: every matched file
// once at start, then again whenever it is written, recreated or replaced.
type Watcher struct {
	fsw      *fsnotify.Watcher
	changes  chan string
	debounce time.Duration
	log      *zap.Logger

	mu    sync.RWMutex
	paths []string
}

// New creates a Watcher for the given glob patterns.
// Patterns are expanded once at startup; "**" matches across directories.
func New(patterns []string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		changes:  make(chan string, 64),
		debounce: debounce,
		log:      log,
	}

	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := expandGlob(pattern)
		if err != nil {
			log.Warn("failed to expand pattern", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil || seen[abs] {
				continue
			}
			if err := fsw.Add(abs); err != nil {
				log.Warn("cannot watch file", zap.String("path", abs), zap.Error(err))
				continue
			}
			seen[abs] = true
			w.paths = append(w.paths, abs)
		}
	}

	return w, nil
}

// Changes returns the channel of paths to analyze. It is closed when Start returns.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Paths returns the files being watched.
func (w *Watcher) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, len(w.paths))
	copy(out, w.paths)
	return out
}

// Count returns the number of watched files.
func (w *Watcher) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.paths)
}

// Start emits the initial paths and then listens for file events.
// It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	defer w.fsw.Close()
	defer close(w.changes)

	for _, p := range w.Paths() {
		if !w.emit(ctx, p) {
			return
		}
	}

	due := make(chan string)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	schedule := func(path string) {
		if t, ok := timers[path]; ok {
			t.Reset(w.debounce)
			return
		}
		timers[path] = time.AfterFunc(w.debounce, func() {
			select {
			case due <- path:
			case <-ctx.Done():
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.tracked(ev.Name) {
				continue
			}
			// Editors often save by rename, which drops the watch; the
			// debounced handler re-adds it once the file is back.
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				schedule(ev.Name)
			}

		case path := <-due:
			delete(timers, path)
			if _, err := os.Stat(path); err != nil {
				w.log.Warn("watched file is gone", zap.String("path", path), zap.Error(err))
				continue
			}
			if err := w.fsw.Add(path); err != nil && !errors.Is(err, fsnotify.ErrClosed) {
				w.log.Warn("cannot re-watch file", zap.String("path", path), zap.Error(err))
			}
			if !w.emit(ctx, path) {
				return
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) emit(ctx context.Context, path string) bool {
	select {
	case w.changes <- path:
		return true
	case <-ctx.Done():
		return false
	}
}

func (w *Watcher) tracked(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, p := range w.paths {
		if p == path {
			return true
		}
	}
	return false
}

// expandGlob resolves a glob pattern to matching file paths.
// Supports recursive patterns like exports/**/*.txt via doublestar.
func expandGlob(pattern string) ([]string, error) {
	return doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
}
