package testutil

import (
	"os"
	"sync"

	"github.com/spf13/afero"
)

// FaultyFs wraps an afero.Fs, counts opens and reads, and fails renames or reads on demand.
type FaultyFs struct {
	afero.Fs

	mu        sync.Mutex
	opens     int
	reads     int
	renameErr error
	readErr   error
	failRead  int
	onOpen    func(name string)
}

func NewFaultyFs(base afero.Fs) *FaultyFs {
	return &FaultyFs{Fs: base}
}

// FailRenames makes every Rename return err.
func (f *FaultyFs) FailRenames(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renameErr = err
}

// FailReadsFrom makes the n-th read (1-based, counted across all files) and every
// read after it return err.
func (f *FaultyFs) FailReadsFrom(n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failRead = n
	f.readErr = err
}

// OnOpen runs fn after every successful open, before the file is returned.
func (f *FaultyFs) OnOpen(fn func(name string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onOpen = fn
}

func (f *FaultyFs) Opens() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

func (f *FaultyFs) Reads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func (f *FaultyFs) Open(name string) (afero.File, error) {
	return f.OpenFile(name, os.O_RDONLY, 0)
}

func (f *FaultyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	file, err := f.Fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.opens++
	onOpen := f.onOpen
	f.mu.Unlock()
	if onOpen != nil {
		onOpen(name)
	}
	return &faultyFile{File: file, fs: f}, nil
}

func (f *FaultyFs) Rename(oldName, newName string) error {
	f.mu.Lock()
	err := f.renameErr
	f.mu.Unlock()
	if err != nil {
		return &os.LinkError{Op: "rename", Old: oldName, New: newName, Err: err}
	}
	return f.Fs.Rename(oldName, newName)
}

func (f *FaultyFs) Name() string {
	return "FaultyFs"
}

func (f *FaultyFs) nextReadErr() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.failRead > 0 && f.reads >= f.failRead {
		return f.readErr
	}
	return nil
}

type faultyFile struct {
	afero.File
	fs *FaultyFs
}

func (f *faultyFile) Read(p []byte) (int, error) {
	if err := f.fs.nextReadErr(); err != nil {
		return 0, err
	}
	return f.File.Read(p)
}
