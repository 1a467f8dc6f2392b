package domain

import (
	"io"
	"sync/atomic"
)

// LoadSession is scoped to one file-open operation. It is created by the loader,
// advanced chunk by chunk from the interactive loop and discarded once it is
// finished, failed or cancelled.
type LoadSession struct {
	ID        string
	Path      string
	TotalSize int64
	BytesRead int64
	ChunkSize int64
	Verdict   PathAccessVerdict

	// Chunked is false for files at or below the sync limit; those complete in a single step.
	Chunked bool

	// Source and Buffer are owned by the loader while the session is active.
	Source io.ReadCloser
	Buffer []byte

	cancelled atomic.Bool
	finished  bool
}

// Cancel asks the loader to stop at the next chunk boundary. Safe to call
// repeatedly and from other goroutines.
func (s *LoadSession) Cancel() {
	s.cancelled.Store(true)
}

func (s *LoadSession) Cancelled() bool {
	return s.cancelled.Load()
}

// Finished reports whether the session reached a terminal state (done, failed or cancelled).
func (s *LoadSession) Finished() bool {
	return s.finished
}

func (s *LoadSession) MarkFinished() {
	s.finished = true
}

// Progress returns bytesRead / totalSize. An empty file is complete from the start.
func (s *LoadSession) Progress() float64 {
	if s.TotalSize <= 0 {
		return 1
	}
	return float64(s.BytesRead) / float64(s.TotalSize)
}
