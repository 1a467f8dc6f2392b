package watcher

import (
	"fmt"
	"path/filepath"
	"sync"

	"sqe/internal/ports"

	"github.com/fsnotify/fsnotify"
	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("sqe/watch")

var _ ports.FileWatcher = (*FsnotifyWatcher)(nil)

// FsnotifyWatcher watches the directory of a single file. Atomic saves replace the
// file's inode, so watching the file itself would go silent after the first save.
type FsnotifyWatcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	dir     string
	target  string
	events  chan string
	errors  chan error
	closed  chan struct{}
	once    sync.Once
}

func ProvideFsnotifyWatcher() (*FsnotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	fw := &FsnotifyWatcher{
		watcher: w,
		events:  make(chan string, 16),
		errors:  make(chan error, 4),
		closed:  make(chan struct{}),
	}
	go fw.watchLoop()
	return fw, nil
}

func (w *FsnotifyWatcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dir != dir {
		if w.dir != "" {
			_ = w.watcher.Remove(w.dir)
		}
		if err := w.watcher.Add(dir); err != nil {
			w.dir = ""
			w.target = ""
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.dir = dir
	}
	w.target = abs
	log.Debugw("watching", "path", abs)
	return nil
}

func (w *FsnotifyWatcher) Events() <-chan string {
	return w.events
}

func (w *FsnotifyWatcher) Errors() <-chan error {
	return w.errors
}

func (w *FsnotifyWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closed)
		err = w.watcher.Close()
	})
	return err
}

func (w *FsnotifyWatcher) currentTarget() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.target
}

func (w *FsnotifyWatcher) watchLoop() {
	for {
		select {
		case <-w.closed:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.currentTarget() {
				continue
			}
			select {
			case w.events <- event.Name:
			default:
				// A change notification is already pending; the consumer rechecks the file anyway.
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				log.Warnf("dropped watcher error: %v", err)
			}
		}
	}
}
