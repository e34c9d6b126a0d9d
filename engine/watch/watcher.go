// Package watch wraps fsnotify into a standalone, injectable collaborator,
// rather than embedding the watch loop inside the resource manager. The
// core itself stays single-threaded
// cooperative: the OS notifies on a background goroutine (unavoidable,
// that's how fsnotify works), but that goroutine only buffers events into
// a RingQueue. Nothing touches engine/resources state until the host
// calls Poll from its own frame loop.
package watch

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/nbrengine/engine/containers"
	"github.com/spaghettifunk/nbrengine/engine/core"
)

// Status is the kind of filesystem change a hot-reload callback receives
// alongside the changed path.
type Status int

const (
	StatusModified Status = iota
	StatusCreated
	StatusRemoved
)

// Event is one buffered filesystem notification.
type Event struct {
	Status Status
	Path   string
}

// Watcher wraps an fsnotify.Watcher, recursively watching directories and
// buffering events for synchronous draining via Poll.
type Watcher struct {
	fs *fsnotify.Watcher

	mu      sync.Mutex
	pending *containers.RingQueue

	done chan struct{}
}

// New starts the background fsnotify goroutine and returns a ready watcher.
func New() (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fs:      fs,
		pending: containers.NewRingQueue(64),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// AddRecursive watches dir and every subdirectory under it.
func (w *Watcher) AddRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.fs.Add(path)
		}
		return nil
	})
}

func (w *Watcher) run() {
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(e)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			core.LogError("watch: fsnotify error: %v", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(e fsnotify.Event) {
	var status Status
	switch {
	case e.Op&fsnotify.Remove != 0:
		status = StatusRemoved
	case e.Op&fsnotify.Create != 0:
		if info, err := os.Stat(e.Name); err == nil && info.IsDir() {
			if err := w.AddRecursive(e.Name); err != nil {
				core.LogWarn("watch: failed to watch new directory %s: %v", e.Name, err)
			}
			return
		}
		status = StatusCreated
	case e.Op&fsnotify.Write != 0:
		status = StatusModified
	default:
		return
	}

	w.mu.Lock()
	w.pending.Enqueue(Event{Status: status, Path: e.Name})
	w.mu.Unlock()
}

// Poll drains every buffered event and calls fn once per event, on the
// caller's goroutine. Intended to be called once per host frame.
func (w *Watcher) Poll(fn func(Event)) {
	for {
		w.mu.Lock()
		if w.pending.IsEmpty() {
			w.mu.Unlock()
			return
		}
		v, _ := w.pending.Dequeue()
		w.mu.Unlock()
		fn(v.(Event))
	}
}

// Close stops the background goroutine and releases the OS watch handles.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fs.Close()
}
