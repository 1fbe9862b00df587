package forms

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a directory of YAML form definitions and reloads the
// store when files change, so definitions can be edited without a
// restart.
type Watcher struct {
	mu      sync.Mutex
	store   *Store
	dir     string
	watcher *fsnotify.Watcher
	active  bool
}

// NewWatcher creates a watcher bound to a store. Start must be called to
// begin monitoring.
func NewWatcher(store *Store, dir string) *Watcher {
	return &Watcher{
		store: store,
		dir:   dir,
	}
}

// Start begins monitoring the definitions directory. When hot reload is
// disabled or the directory does not exist, Start is a no-op.
func (w *Watcher) Start(ctx context.Context, enableHotReload bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !enableHotReload {
		slog.Info("Hot-reload disabled, skipping form definition watcher setup")
		return nil
	}

	if w.active {
		slog.Debug("Form definition watcher already active")
		return nil
	}

	if _, err := os.Stat(w.dir); os.IsNotExist(err) {
		slog.Debug("Forms directory does not exist, skipping watcher setup", "path", w.dir)
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}

	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch forms directory: %w", err)
	}

	w.watcher = watcher
	w.active = true

	go w.watchFiles(ctx)

	slog.Debug("Started file system watcher for form definitions", "directory", w.dir)
	return nil
}

// watchFiles handles file system events until the context is cancelled.
func (w *Watcher) watchFiles(ctx context.Context) {
	defer func() {
		w.mu.Lock()
		if w.watcher != nil {
			w.watcher.Close()
			w.watcher = nil
		}
		w.active = false
		w.mu.Unlock()
		slog.Info("Form definition watcher stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Form definition watcher context cancelled")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Form definition watcher error", "error", err)
		}
	}
}

// handleFileEvent processes individual file system events.
func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if !isDefinitionFile(event.Name) {
		return
	}

	slog.Debug("Form definition event", "event", event.Op.String(), "path", event.Name)

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write,
		event.Op&fsnotify.Create == fsnotify.Create:
		if err := w.store.LoadFile(event.Name); err != nil {
			slog.Error("Failed to reload form definition", "path", event.Name, "error", err)
			return
		}
		slog.Info("Reloaded form definition", "path", event.Name)

	case event.Op&fsnotify.Remove == fsnotify.Remove,
		event.Op&fsnotify.Rename == fsnotify.Rename:
		id := idFromPath(event.Name)
		w.store.Remove(id)
		slog.Info("Removed form definition", "path", event.Name, "form", id)
	}
}

// Stop shuts the watcher down if it is running.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		w.watcher.Close()
		w.watcher = nil
		w.active = false
		slog.Info("Form definition watcher stopped")
	}
}

// idFromPath derives the form ID from a definition file name. The
// convention is one form per file, named "<id>.yaml".
func idFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
