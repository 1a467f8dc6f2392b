package testutil

import (
	"sync"

	"sqe/internal/ports"
)

var _ ports.FileWatcher = (*FakeFileWatcher)(nil)

// FakeFileWatcher records watched paths; tests push events with Emit.
type FakeFileWatcher struct {
	mu      sync.Mutex
	watched []string
	events  chan string
	errors  chan error
	closed  bool
}

func NewFakeFileWatcher() *FakeFileWatcher {
	return &FakeFileWatcher{
		events: make(chan string, 16),
		errors: make(chan error, 1),
	}
}

func (w *FakeFileWatcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.watched = append(w.watched, path)
	return nil
}

func (w *FakeFileWatcher) Emit(path string) {
	w.events <- path
}

func (w *FakeFileWatcher) Events() <-chan string {
	return w.events
}

func (w *FakeFileWatcher) Errors() <-chan error {
	return w.errors
}

func (w *FakeFileWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *FakeFileWatcher) Watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.watched...)
}

func (w *FakeFileWatcher) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}
