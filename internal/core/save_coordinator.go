package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"sqe/internal/core/domain"
	"sqe/internal/ports"

	logging "github.com/ipfs/go-log/v2"
)

var saveLog = logging.Logger("sqe/save")

const newFileMode os.FileMode = 0644

type SaveResult struct {
	Written bool
	Path    string
	Bytes   int
}

// SaveCoordinator writes the active buffer back with a write-then-rename, so the target
// is never seen half written. It never asks for elevation.
type SaveCoordinator struct {
	fileSystem  ports.FileSystem
	classifier  *PermissionClassifier
	accessProbe ports.AccessProbe
}

func ProvideSaveCoordinator(
	fileSystem ports.FileSystem,
	classifier *PermissionClassifier,
	accessProbe ports.AccessProbe,
) *SaveCoordinator {
	return &SaveCoordinator{
		fileSystem:  fileSystem,
		classifier:  classifier,
		accessProbe: accessProbe,
	}
}

// Save writes state's content to its active file. On failure the buffer stays dirty and
// the file on disk is unchanged. On success the dirty flag is cleared; the read-only
// state is left as it was.
func (s *SaveCoordinator) Save(state *domain.SessionState) (SaveResult, error) {
	if active := state.ActiveLoad(); active != nil {
		return SaveResult{}, &domain.BusyError{Operation: "save", ActivePath: active.Path}
	}
	path, ok := state.ActiveFile()
	if !ok {
		return SaveResult{}, domain.ErrNoActiveFile
	}
	content, _ := state.Content()

	target, err := s.fileSystem.EvalSymlinks(path)
	if err != nil {
		return SaveResult{}, &domain.SaveError{Path: path, Reason: domain.SaveWriteFailed, Cause: err}
	}

	// Permissions may have changed since the file was opened.
	verdict := s.classifier.Classify(target)
	target = verdict.Path
	mode := newFileMode
	var info os.FileInfo
	switch {
	case verdict.IsDirectory:
		return SaveResult{}, &domain.SaveError{Path: target, Reason: domain.SaveWriteFailed, Cause: errors.New("is a directory")}
	case !verdict.Exists:
		parent := s.classifier.Classify(filepath.Dir(target))
		if !parent.IsDirectory || !parent.Writable {
			return SaveResult{}, s.permissionDenied(target, parent)
		}
		saveLog.Infow("recreating file removed since it was opened", "path", target)
	case !verdict.Writable:
		return SaveResult{}, s.permissionDenied(target, verdict)
	default:
		info, err = s.fileSystem.Stat(target)
		if err != nil {
			return SaveResult{}, &domain.SaveError{Path: target, Reason: domain.SaveWriteFailed, Cause: err}
		}
		mode = info.Mode().Perm()
	}

	tmpPath, err := s.writeTemp(target, content, mode, info)
	if err != nil {
		return SaveResult{}, &domain.SaveError{Path: target, Reason: domain.SaveWriteFailed, Cause: err}
	}

	if err := s.fileSystem.Rename(tmpPath, target); err != nil {
		if removeErr := s.fileSystem.Remove(tmpPath); removeErr != nil {
			saveLog.Warnw("failed to remove temporary file", "path", tmpPath, "error", removeErr)
		}
		return SaveResult{}, &domain.SaveError{Path: target, Reason: domain.SaveAtomicRenameFailed, Cause: err}
	}

	state.MarkSaved(Digest(content))
	saveLog.Infow("saved", "path", target, "bytes", len(content))
	return SaveResult{Written: true, Path: target, Bytes: len(content)}, nil
}

// writeTemp writes content next to target and returns the temporary path. The
// temporary file is removed on any error.
func (s *SaveCoordinator) writeTemp(target string, content []byte, mode os.FileMode, original os.FileInfo) (string, error) {
	tmp, err := s.fileSystem.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".sqe-")
	if err != nil {
		return "", fmt.Errorf("create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func(cause error) (string, error) {
		_ = tmp.Close()
		if removeErr := s.fileSystem.Remove(tmpPath); removeErr != nil {
			saveLog.Warnw("failed to remove temporary file", "path", tmpPath, "error", removeErr)
		}
		return "", cause
	}

	if _, err := tmp.Write(content); err != nil {
		return cleanup(fmt.Errorf("write temporary file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("sync temporary file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return cleanup(fmt.Errorf("close temporary file: %w", err))
	}
	if err := s.fileSystem.Chmod(tmpPath, mode); err != nil {
		return cleanup(fmt.Errorf("set mode on temporary file: %w", err))
	}

	if original != nil {
		uid, gid, ok := s.accessProbe.Owner(original)
		if ok && uid != s.accessProbe.EffectiveUID() {
			// Only an elevated process can give the file back to its owner.
			if err := s.fileSystem.Chown(tmpPath, uid, gid); err != nil {
				saveLog.Debugw("could not preserve ownership", "path", target, "error", err)
			}
		}
	}
	return tmpPath, nil
}

func (s *SaveCoordinator) permissionDenied(target string, verdict domain.PathAccessVerdict) error {
	saveLog.Infow("save refused", "path", target, "reason", verdict.Reason.String())
	return &domain.SaveError{
		Path:   target,
		Reason: domain.SavePermissionDenied,
		Cause: &domain.PermissionDeniedError{
			Path:      target,
			Operation: "write",
			Cause:     errors.New(verdict.Reason.String()),
		},
	}
}
