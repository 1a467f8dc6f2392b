package ports

import (
	"io"
	"os"
)

type AccessMode int

const (
	ReadWrite = iota
	ReadWriteExecute
	ReadAllWriteOwner
)

// File is an open file handle returned by a FileSystem.
type File interface {
	io.Reader
	io.Writer
	io.Closer
	Name() string
	Sync() error
}

type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, content []byte, accessMode AccessMode) error
	EnsureDirExists(path string) error
	FileExists(path string) (bool, error)

	Stat(path string) (os.FileInfo, error)
	Open(path string) (File, error)
	// CreateTemp creates a new file in dir whose name starts with pattern, like os.CreateTemp.
	CreateTemp(dir, pattern string) (File, error)
	Chmod(path string, mode os.FileMode) error
	Chown(path string, uid, gid int) error
	Rename(oldPath, newPath string) error
	Remove(path string) error
	// EvalSymlinks returns the path with symlinks resolved. Paths that do not exist
	// are returned unchanged.
	EvalSymlinks(path string) (string, error)
}
