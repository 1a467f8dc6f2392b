package domain

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// ErrLoadCancelled is returned by Advance once a session has been cancelled.
// It is a user action, not a failure worth surfacing loudly.
var ErrLoadCancelled = errors.New("load cancelled")

// ErrFileChanged is the cause of a LoadError when the file size on disk no longer
// matches the size the load started with.
var ErrFileChanged = errors.New("file changed while loading")

// ErrNoActiveFile is returned when an operation needs a file but the session has none.
var ErrNoActiveFile = errors.New("no active file")

// PermissionDeniedError reports that the OS refused a read or write.
type PermissionDeniedError struct {
	Path      string
	Operation string
	Cause     error
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: cannot %s %s", e.Operation, e.Path)
}

func (e *PermissionDeniedError) Unwrap() error { return e.Cause }

// FileTooLargeError rejects a load before any byte is read.
type FileTooLargeError struct {
	Path   string
	Limit  int64
	Actual int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf(
		"%s is too large to open (%s, limit %s)",
		e.Path,
		humanize.IBytes(uint64(e.Actual)),
		humanize.IBytes(uint64(e.Limit)),
	)
}

// EncodingError reports content that cannot be decoded as text.
type EncodingError struct {
	Path   string
	Offset int64
	Cause  error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s is not valid text near byte %d: %v", e.Path, e.Offset, e.Cause)
}

func (e *EncodingError) Unwrap() error { return e.Cause }

// LoadError aborts a load after it started. Partial content is always discarded.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error { return e.Cause }

// BusyError rejects an operation that conflicts with an active load on the same session.
type BusyError struct {
	Operation  string
	ActivePath string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("cannot %s while %s is still loading", e.Operation, e.ActivePath)
}

// RelaunchReason classifies a failed elevation attempt.
type RelaunchReason int

const (
	// RelaunchUserDenied means the prompt was shown and the user cancelled or failed it.
	RelaunchUserDenied RelaunchReason = iota
	// RelaunchPromptUnavailable means no interactive prompt could be shown.
	RelaunchPromptUnavailable
	// RelaunchSpawnUnavailable means the escalation program itself is missing.
	RelaunchSpawnUnavailable
)

func (r RelaunchReason) String() string {
	switch r {
	case RelaunchUserDenied:
		return "USER_DENIED"
	case RelaunchPromptUnavailable:
		return "PROMPT_UNAVAILABLE"
	case RelaunchSpawnUnavailable:
		return "SPAWN_UNAVAILABLE"
	default:
		return fmt.Sprintf("RelaunchReason(%d)", int(r))
	}
}

type RelaunchError struct {
	Reason RelaunchReason
	Cause  error
}

func (e *RelaunchError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("elevation failed: %s", e.Reason)
	}
	return fmt.Sprintf("elevation failed: %s: %v", e.Reason, e.Cause)
}

func (e *RelaunchError) Unwrap() error { return e.Cause }

// Recoverable reports whether the editor can keep running read-only.
func (e *RelaunchError) Recoverable() bool {
	return e.Reason != RelaunchSpawnUnavailable
}

type SaveReason int

const (
	SavePermissionDenied SaveReason = iota
	SaveWriteFailed
	SaveAtomicRenameFailed
)

func (r SaveReason) String() string {
	switch r {
	case SavePermissionDenied:
		return "PERMISSION_DENIED"
	case SaveWriteFailed:
		return "WRITE_FAILED"
	case SaveAtomicRenameFailed:
		return "ATOMIC_RENAME_FAILED"
	default:
		return fmt.Sprintf("SaveReason(%d)", int(r))
	}
}

// SaveError leaves the buffer dirty; the reason is meant to be shown to the user.
type SaveError struct {
	Path   string
	Reason SaveReason
	Cause  error
}

func (e *SaveError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("cannot save %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("cannot save %s: %s: %v", e.Path, e.Reason, e.Cause)
}

func (e *SaveError) Unwrap() error { return e.Cause }
