package loot

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/krakenpi/krakenpi/internal/logging"
)

// Watcher surfaces newly captured files as callbacks. Tools write their
// output into the loot tree, so a create event means fresh loot.
type Watcher struct {
	store  *Store
	onFile func(rel string)
	fs     *fsnotify.Watcher
}

// NewWatcher builds a watcher over the store's tree. onFile is invoked
// from the watch goroutine with the path relative to the loot root.
func NewWatcher(store *Store, onFile func(rel string)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create loot watcher: %w", err)
	}
	w := &Watcher{store: store, onFile: onFile, fs: fs}
	if err := fs.Add(store.Root); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch loot root: %w", err)
	}
	for _, sub := range Subdirs {
		if err := fs.Add(filepath.Join(store.Root, sub)); err != nil {
			fs.Close()
			return nil, fmt.Errorf("watch loot dir %s: %w", sub, err)
		}
	}
	return w, nil
}

// Run consumes events until ctx is cancelled. Always closes the
// underlying watcher on return.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fs.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			rel, err := filepath.Rel(w.store.Root, event.Name)
			if err != nil {
				rel = event.Name
			}
			w.onFile(rel)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logging.Error(fmt.Errorf("loot watcher: %w", err))
		}
	}
}
