// Package watch reports changes to the progress store made by other
// processes, so a long-running view can reload.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the store must be quiet before a change is
// reported. SQLite touches the database, WAL and SHM files in a burst.
const DefaultDebounce = 150 * time.Millisecond

// Change is a settled modification of the store.
type Change struct {
	File string // Last file touched in the burst
	At   time.Time
}

// Watcher monitors the directory holding a store file using fsnotify.
type Watcher struct {
	Path    string
	Changes <-chan Change // Read-only external channel

	changes  chan Change // Internal write channel
	done     chan struct{}
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher creates a watcher for the store file at path. A debounce of
// zero uses DefaultDebounce.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ch := make(chan Change, 1)
	return &Watcher{
		Path:     path,
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		debounce: debounce,
	}, nil
}

// Start begins watching. The store's directory must exist.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		w.watcher.Close()
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(w.Path), err)
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var (
		last    string
		pending time.Time
	)
	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit(last)
				}
				return
			}
			if !w.isStoreFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				last = event.Name
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				w.emit(last)
				pending = time.Time{}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next event still arrives.
		}
	}
}

// isStoreFile matches the store file and its sidecars (-wal, -shm,
// -journal, .lock).
func (w *Watcher) isStoreFile(name string) bool {
	return strings.HasPrefix(filepath.Base(name), filepath.Base(w.Path))
}

// emit delivers a change unless one is already waiting to be read; a
// waiting change already tells the reader to reload.
func (w *Watcher) emit(file string) {
	select {
	case w.changes <- Change{File: file, At: time.Now()}:
	default:
	}
}
