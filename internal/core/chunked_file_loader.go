package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"sqe/internal/core/domain"
	"sqe/internal/ports"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"
)

var loaderLog = logging.Logger("sqe/loader")

// Progress is reported after every Advance. BytesRead increases strictly until Done.
type Progress struct {
	Delta     int64
	BytesRead int64
	TotalSize int64
	Done      bool
}

func (p Progress) Fraction() float64 {
	if p.TotalSize <= 0 {
		return 1
	}
	return float64(p.BytesRead) / float64(p.TotalSize)
}

// ChunkedFileLoader reads files into a SessionState. Small files are read in one step,
// larger ones chunk by chunk from the interactive loop, and files above the maximum
// size are refused before they are opened.
type ChunkedFileLoader struct {
	fileSystem  ports.FileSystem
	classifier  *PermissionClassifier
	textDecoder TextDecoder
	limits      domain.LoadLimits
}

func ProvideChunkedFileLoader(
	fileSystem ports.FileSystem,
	classifier *PermissionClassifier,
	textDecoder TextDecoder,
	limits domain.LoadLimits,
) *ChunkedFileLoader {
	return &ChunkedFileLoader{
		fileSystem:  fileSystem,
		classifier:  classifier,
		textDecoder: textDecoder,
		limits:      limits,
	}
}

func (l *ChunkedFileLoader) Limits() domain.LoadLimits {
	return l.limits
}

// IsLarge reports whether a file of this size is loaded in chunks.
func (l *ChunkedFileLoader) IsLarge(size int64) bool {
	return size > l.limits.SyncLoadLimit
}

// LoadSync reads a whole file in one call. It is meant for files at or below the sync
// limit but accepts anything up to the maximum size.
func (l *ChunkedFileLoader) LoadSync(path string) ([]byte, domain.PathAccessVerdict, error) {
	verdict, size, err := l.preflight(path)
	if err != nil {
		return nil, verdict, err
	}

	f, err := l.fileSystem.Open(verdict.Path)
	if err != nil {
		return nil, verdict, openError(verdict.Path, err)
	}
	defer f.Close()

	content := make([]byte, size)
	if _, err := io.ReadFull(f, content); err != nil {
		return nil, verdict, &domain.LoadError{Path: verdict.Path, Cause: readError(verdict.Path, err)}
	}
	if err := expectEOF(f); err != nil {
		return nil, verdict, &domain.LoadError{Path: verdict.Path, Cause: readError(verdict.Path, err)}
	}
	if err := l.textDecoder.Validate(verdict.Path, content); err != nil {
		return nil, verdict, err
	}
	return content, verdict, nil
}

// BeginLoad starts a load into state. The active file stays untouched until the session
// completes, and nothing can be read from state.Content while it runs.
func (l *ChunkedFileLoader) BeginLoad(state *domain.SessionState, path string) (*domain.LoadSession, error) {
	if active := state.ActiveLoad(); active != nil {
		return nil, &domain.BusyError{Operation: "open " + path, ActivePath: active.Path}
	}

	verdict, size, err := l.preflight(path)
	if err != nil {
		return nil, err
	}

	f, err := l.fileSystem.Open(verdict.Path)
	if err != nil {
		return nil, openError(verdict.Path, err)
	}

	session := &domain.LoadSession{
		ID:        uuid.NewString(),
		Path:      verdict.Path,
		TotalSize: size,
		ChunkSize: size,
		Verdict:   verdict,
		Chunked:   l.IsLarge(size),
		Source:    f,
		Buffer:    make([]byte, 0, size),
	}
	if session.Chunked {
		session.ChunkSize = l.limits.ChunkSize
	}
	if err := state.AttachLoad(session); err != nil {
		_ = f.Close()
		return nil, err
	}

	loaderLog.Debugw("load started",
		"session", session.ID,
		"path", session.Path,
		"size", humanize.IBytes(uint64(size)),
		"chunked", session.Chunked,
	)
	return session, nil
}

// Advance reads the next chunk. The final call returns Done and installs the content
// in state. After a cancel it returns ErrLoadCancelled without reading; after a read or
// decode failure the session is discarded and state keeps its previous file.
func (l *ChunkedFileLoader) Advance(state *domain.SessionState, session *domain.LoadSession) (Progress, error) {
	progress := Progress{BytesRead: session.BytesRead, TotalSize: session.TotalSize}
	if session.Finished() {
		return progress, fmt.Errorf("load session %s is already finished", session.ID)
	}
	if session.Cancelled() {
		l.discard(state, session)
		loaderLog.Debugw("load cancelled", "session", session.ID, "bytesRead", session.BytesRead)
		return progress, domain.ErrLoadCancelled
	}

	n := min(session.ChunkSize, session.TotalSize-session.BytesRead)
	if n > 0 {
		start := len(session.Buffer)
		session.Buffer = session.Buffer[:start+int(n)]
		if _, err := io.ReadFull(session.Source, session.Buffer[start:]); err != nil {
			l.discard(state, session)
			loaderLog.Warnw("load failed", "session", session.ID, "path", session.Path, "error", err)
			return progress, &domain.LoadError{Path: session.Path, Cause: readError(session.Path, err)}
		}
		session.BytesRead += n
	}
	progress.Delta = n
	progress.BytesRead = session.BytesRead

	if session.BytesRead < session.TotalSize {
		return progress, nil
	}

	if err := expectEOF(session.Source); err != nil {
		l.discard(state, session)
		loaderLog.Warnw("load failed", "session", session.ID, "path", session.Path, "error", err)
		return progress, &domain.LoadError{Path: session.Path, Cause: readError(session.Path, err)}
	}

	content := session.Buffer
	if err := l.textDecoder.Validate(session.Path, content); err != nil {
		l.discard(state, session)
		return progress, err
	}
	_ = session.Source.Close()
	session.Source = nil
	session.Buffer = nil
	session.MarkFinished()
	state.CompleteLoad(session, content, Digest(content))
	progress.Done = true

	loaderLog.Debugw("load complete", "session", session.ID, "path", session.Path)
	return progress, nil
}

// Cancel stops the session at once and releases its file.
func (l *ChunkedFileLoader) Cancel(state *domain.SessionState, session *domain.LoadSession) {
	session.Cancel()
	if !session.Finished() {
		l.discard(state, session)
	}
}

// Open is the user-initiated switch to another file: a running load is cancelled first.
func (l *ChunkedFileLoader) Open(state *domain.SessionState, path string) (*domain.LoadSession, error) {
	if active := state.ActiveLoad(); active != nil {
		loaderLog.Debugw("cancelling active load for a new open", "session", active.ID, "path", active.Path)
		l.Cancel(state, active)
	}
	return l.BeginLoad(state, path)
}

// Drive advances session until it is done, calling onProgress after every chunk. The
// context is checked between chunks, never during one.
func (l *ChunkedFileLoader) Drive(
	ctx context.Context,
	state *domain.SessionState,
	session *domain.LoadSession,
	onProgress func(Progress),
) error {
	for {
		if ctx.Err() != nil {
			session.Cancel()
		}
		progress, err := l.Advance(state, session)
		if err != nil {
			return err
		}
		if onProgress != nil {
			onProgress(progress)
		}
		if progress.Done {
			return nil
		}
	}
}

// preflight classifies path and checks the size limit without opening the file.
func (l *ChunkedFileLoader) preflight(path string) (domain.PathAccessVerdict, int64, error) {
	verdict := l.classifier.Classify(path)
	switch {
	case !verdict.Exists:
		return verdict, 0, &domain.LoadError{Path: verdict.Path, Cause: os.ErrNotExist}
	case verdict.IsDirectory:
		return verdict, 0, &domain.LoadError{Path: verdict.Path, Cause: errors.New("is a directory")}
	case !verdict.Readable:
		return verdict, 0, &domain.PermissionDeniedError{Path: verdict.Path, Operation: "read"}
	}

	info, err := l.fileSystem.Stat(verdict.Path)
	if err != nil {
		return verdict, 0, &domain.LoadError{Path: verdict.Path, Cause: err}
	}
	size := info.Size()
	if size > l.limits.MaxFileSize {
		return verdict, size, &domain.FileTooLargeError{Path: verdict.Path, Limit: l.limits.MaxFileSize, Actual: size}
	}
	return verdict, size, nil
}

func (l *ChunkedFileLoader) discard(state *domain.SessionState, session *domain.LoadSession) {
	if session.Source != nil {
		_ = session.Source.Close()
		session.Source = nil
	}
	session.Buffer = nil
	session.MarkFinished()
	state.DetachLoad(session)
}

func openError(path string, err error) error {
	if errors.Is(err, os.ErrPermission) {
		return &domain.PermissionDeniedError{Path: path, Operation: "read", Cause: err}
	}
	return &domain.LoadError{Path: path, Cause: err}
}

func readError(path string, err error) error {
	if errors.Is(err, os.ErrPermission) {
		return &domain.PermissionDeniedError{Path: path, Operation: "read", Cause: err}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w, it shrank: %w", domain.ErrFileChanged, err)
	}
	return err
}

// expectEOF fails when r still has bytes after the size the load started with.
func expectEOF(r io.Reader) error {
	var extra [1]byte
	n, err := r.Read(extra[:])
	switch {
	case n > 0:
		return fmt.Errorf("%w, it grew", domain.ErrFileChanged)
	case err == nil, errors.Is(err, io.EOF):
		return nil
	default:
		return err
	}
}

// Digest identifies content on disk so external changes can be told apart from our own saves.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
