// Package watch re-runs a reconstruction whenever its source transcript file
// changes on disk. It exists for the CLI's --watch flag; nothing in the core
// pipeline depends on it.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceWindow = 300 * time.Millisecond

// Watcher watches a set of transcript files and invokes onChange with a
// file's path once its writes have settled.
type Watcher struct {
	fsw      *fsnotify.Watcher
	paths    map[string]bool // absolute transcript paths being watched
	onChange func(path string)

	mu          sync.Mutex
	debounceMap map[string]time.Time
	running     bool
	stopCh      chan struct{}
	doneCh      chan struct{}
}

// New builds a Watcher that calls onChange whenever a watched transcript
// file is written.
func New(onChange func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:         fsw,
		paths:       make(map[string]bool),
		onChange:    onChange,
		debounceMap: make(map[string]time.Time),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Add registers transcript paths to watch. fsnotify watches directories, not
// individual files (so editors that replace-by-rename are still caught), so
// this adds each path's parent directory.
func (w *Watcher) Add(paths ...string) error {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		w.paths[abs] = true
		if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}
	return nil
}

// Start begins the watch loop in a background goroutine. It returns
// immediately; call Stop to tear it down.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run(ctx)
}

// Stop halts the watch loop and closes the underlying fsnotify watcher. It
// blocks until the loop has fully exited.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	_ = w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-ticker.C:
			w.flushSettled()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}
	if !w.paths[abs] {
		return
	}

	w.mu.Lock()
	w.debounceMap[abs] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flushSettled() {
	w.mu.Lock()
	now := time.Now()
	var settled []string
	for path, seen := range w.debounceMap {
		if now.Sub(seen) >= debounceWindow {
			settled = append(settled, path)
			delete(w.debounceMap, path)
		}
	}
	w.mu.Unlock()

	for _, path := range settled {
		w.onChange(path)
	}
}
