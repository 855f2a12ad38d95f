package preview

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ericfisherdev/happyplace/internal/logger"
)

// Watcher reloads a Store when its fixture files change and tells the hub.
type Watcher struct {
	store    *Store
	hub      *Hub
	log      *logger.Logger
	debounce time.Duration
}

// NewWatcher creates a watcher; hub may be nil.
func NewWatcher(store *Store, hub *Hub, log *logger.Logger) *Watcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Watcher{store: store, hub: hub, log: log, debounce: 150 * time.Millisecond}
}

// Run watches until ctx is done. Bursts of events within the debounce
// window cause one reload.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(w.store.Dir()); err != nil {
		return fmt.Errorf("watch %s: %w", w.store.Dir(), err)
	}
	w.log.With("dir", w.store.Dir()).Info("watching preview fixtures")

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !IsFixtureFile(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			pending[filepath.Base(ev.Name)] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.With("error", err.Error()).Warn("fixture watcher error")

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			sort.Strings(files)
			clear(pending)
			w.reload(files)
		}
	}
}

func (w *Watcher) reload(files []string) {
	msg := Message{Type: "reload", Files: files}
	if err := w.store.Reload(); err != nil {
		w.log.With("files", files).Error(err, "fixture reload failed")
		msg.Type = "error"
		msg.Error = err.Error()
	} else {
		w.log.WithFields(map[string]any{"files": files, "fixtures": len(w.store.All())}).Info("fixtures reloaded")
	}
	if w.hub != nil {
		w.hub.Broadcast(msg)
	}
}
