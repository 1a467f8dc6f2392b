package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sqe/internal/ports"

	"github.com/spf13/afero"
)

var _ ports.FileSystem = (*OsFileSystem)(nil)

// OsFileSystem implements ports.FileSystem on top of an afero.Fs. Production code
// uses the OS filesystem; tests pass an in-memory or fault-injecting Fs.
type OsFileSystem struct {
	fs afero.Fs
}

func ProvideOsFileSystem() *OsFileSystem {
	return NewFileSystem(afero.NewOsFs())
}

func NewFileSystem(fs afero.Fs) *OsFileSystem {
	return &OsFileSystem{fs: fs}
}

func expandHome(path string) (string, error) {
	if len(path) > 0 && path[:1] == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

func (f *OsFileSystem) ReadFile(path string) ([]byte, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	return afero.ReadFile(f.fs, path)
}

func (f *OsFileSystem) WriteFile(path string, content []byte, accessMode ports.AccessMode) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}

	err = f.EnsureDirExists(path)
	if err != nil {
		return fmt.Errorf("failed to ensure directory exists: %w", err)
	}

	if err := afero.WriteFile(f.fs, path, content, getOsFileModeForAccessMode(accessMode)); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

func (f *OsFileSystem) EnsureDirExists(path string) error {
	if err := f.fs.MkdirAll(filepath.Dir(path), getOsFileModeForAccessMode(ports.ReadWriteExecute)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return nil
}

func (f *OsFileSystem) FileExists(path string) (bool, error) {
	path, err := expandHome(path)
	if err != nil {
		return false, err
	}

	_, err = f.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if file exists: %w", err)
}

func (f *OsFileSystem) Stat(path string) (os.FileInfo, error) {
	return f.fs.Stat(path)
}

func (f *OsFileSystem) Open(path string) (ports.File, error) {
	return f.fs.Open(path)
}

func (f *OsFileSystem) CreateTemp(dir, pattern string) (ports.File, error) {
	return afero.TempFile(f.fs, dir, pattern)
}

func (f *OsFileSystem) Chmod(path string, mode os.FileMode) error {
	return f.fs.Chmod(path, mode)
}

func (f *OsFileSystem) Chown(path string, uid, gid int) error {
	return f.fs.Chown(path, uid, gid)
}

func (f *OsFileSystem) Rename(oldPath, newPath string) error {
	return f.fs.Rename(oldPath, newPath)
}

func (f *OsFileSystem) Remove(path string) error {
	return f.fs.Remove(path)
}

func (f *OsFileSystem) EvalSymlinks(path string) (string, error) {
	if _, ok := f.fs.(*afero.OsFs); !ok {
		// Only the OS filesystem has symlinks worth resolving.
		return path, nil
	}
	resolved, err := filepath.EvalSymlinks(path)
	if errors.Is(err, os.ErrNotExist) {
		return path, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve symlinks: %w", err)
	}
	return resolved, nil
}

func getOsFileModeForAccessMode(accessMode ports.AccessMode) os.FileMode {
	switch accessMode {
	case ports.ReadWrite:
		return 0600
	case ports.ReadWriteExecute:
		return 0700
	case ports.ReadAllWriteOwner:
		return 0644
	default:
		return 0600
	}
}
