// Package watch re-runs a callback when plan files change on disk.
package watch

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 300 * time.Millisecond

// Func handles a changed file. Errors are logged and do not stop the watcher.
type Func func(path string) error

// Watcher watches a fixed set of files. Editors often replace files instead
// of writing them in place, so the parent directories are watched and events
// are filtered by path.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	fn       Func
	logger   *log.Logger
	files    map[string]bool

	pendingMu sync.Mutex
	pending   map[string]bool

	hashes map[string][32]byte
}

// New creates a watcher for paths. Watches are registered before New
// returns so no change after that is missed.
func New(paths []string, debounce time.Duration, fn Func, logger *log.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.New("no files to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		fn:       fn,
		logger:   logger,
		files:    make(map[string]bool),
		pending:  make(map[string]bool),
		hashes:   make(map[string][32]byte),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		w.files[abs] = true
		if data, err := os.ReadFile(abs); err == nil {
			w.hashes[abs] = sha256.Sum256(data)
		}
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		logger.Debug("watching directory", "path", dir)
	}

	return w, nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "err", err)

		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if !w.files[path] {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = true
	w.pendingMu.Unlock()

	w.logger.Debug("change detected", "path", path, "op", event.Op.String())
}

// flush runs fn once per changed file, in path order.
func (w *Watcher) flush(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]bool)
	w.pendingMu.Unlock()

	sort.Strings(paths)
	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}

		data, err := os.ReadFile(path)
		if err != nil {
			w.logger.Warn("failed to read changed file", "path", path, "err", err)
			continue
		}
		sum := sha256.Sum256(data)
		if old, ok := w.hashes[path]; ok && old == sum {
			continue
		}
		w.hashes[path] = sum

		if err := w.fn(path); err != nil {
			w.logger.Error("rebuild failed", "path", path, "err", err)
		}
	}
}
