package watcher

import (
	"context"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/connector/internal/adapters/fs"
	"go.trai.ch/connector/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// Watcher implements ports.Watcher using fsnotify.
type Watcher struct {
	walker *fs.Walker
	logger ports.Logger
	window time.Duration
}

// NewWatcher creates a watcher that debounces events over window.
func NewWatcher(walker *fs.Walker, logger ports.Logger, window time.Duration) *Watcher {
	return &Watcher{
		walker: walker,
		logger: logger,
		window: window,
	}
}

// Watch adds every directory below roots and reports changed paths until ctx is done.
func (w *Watcher) Watch(ctx context.Context, roots []string, onChange func(paths []string)) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create file watcher")
	}
	defer fsWatcher.Close() //nolint:errcheck // Best effort close on shutdown

	for _, root := range roots {
		if err := w.addTree(fsWatcher, root); err != nil {
			return err
		}
	}

	debouncer := NewDebouncer(w.window, onChange)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			debouncer.Add(event.Name)

			// If a new directory was created, watch it and its subdirectories.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addTree(fsWatcher, event.Name)
				}
			}
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error(zerr.Wrap(err, "file watcher error"))
		}
	}
}

func (w *Watcher) addTree(fsWatcher *fsnotify.Watcher, root string) error {
	for dir := range w.walker.WalkDirs(root, nil) {
		if err := fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to watch directory"), "dir", dir)
		}
	}
	return nil
}

// relevant filters out attribute-only changes.
func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
