package config

import (
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned by Watch after Close.
var ErrWatcherClosed = errors.New("config: watcher closed")

// Watcher reloads options when the config file changes on disk. The
// containing directory is watched rather than the file itself so that
// editors which replace the file by rename are still observed.
type Watcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	closed  bool
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher. Close must be called to release it.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher: fsw,
		done:    make(chan struct{}),
	}, nil
}

// Watch starts watching path and invokes onChange with the reloaded
// options after every write or create. Reload errors leave the previous
// options in effect and the callback is not invoked.
func (w *Watcher) Watch(path string, onChange func(Options)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.watcher.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.loop(absPath, onChange)
	return nil
}

func (w *Watcher) loop(path string, onChange func(Options)) {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Name != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			opts, err := Load(path)
			if err != nil {
				continue
			}
			onChange(opts)
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// Close stops all watches and releases the underlying watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
