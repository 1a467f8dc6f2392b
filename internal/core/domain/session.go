package domain

// LoadProgress is either a fraction in [0,1] of an active load, or Complete once
// the active file's content is valid.
type LoadProgress struct {
	Fraction float64
	Complete bool
}

// SessionState holds the active file of one editor process. It is owned by the
// interactive loop and mutated only through the loader (load), the save
// coordinator (save) and the edit loop (edits).
type SessionState struct {
	directoryRoot string
	elevated      bool

	activeFile         string
	verdict            PathAccessVerdict
	content            []byte
	hasContent         bool
	digest             string
	dirty              bool
	externallyModified bool

	load *LoadSession
}

// NewSessionState creates the session for a process. elevated is true when the
// process already runs with the privileges a relaunch would have obtained.
func NewSessionState(directoryRoot string, elevated bool) *SessionState {
	return &SessionState{
		directoryRoot: directoryRoot,
		elevated:      elevated,
	}
}

func (s *SessionState) DirectoryRoot() string {
	return s.directoryRoot
}

func (s *SessionState) IsElevated() bool {
	return s.elevated
}

// ActiveFile returns the path of the file whose content is currently valid.
func (s *SessionState) ActiveFile() (string, bool) {
	return s.activeFile, s.activeFile != ""
}

func (s *SessionState) Verdict() PathAccessVerdict {
	return s.verdict
}

// Content returns the active file's bytes. It is never available while a load is
// in progress, so nothing can render a buffer that is about to be replaced.
func (s *SessionState) Content() ([]byte, bool) {
	if s.load != nil || !s.hasContent {
		return nil, false
	}
	return s.content, true
}

// Digest is the sha256 of the content last loaded from or saved to disk.
func (s *SessionState) Digest() string {
	return s.digest
}

func (s *SessionState) LoadProgress() LoadProgress {
	if s.load != nil {
		return LoadProgress{Fraction: s.load.Progress()}
	}
	if s.hasContent {
		return LoadProgress{Fraction: 1, Complete: true}
	}
	return LoadProgress{}
}

// IsReadOnly is derived from the verdict and never stored.
func (s *SessionState) IsReadOnly() bool {
	return !s.verdict.Writable || (s.verdict.RequiresElevation && !s.elevated)
}

func (s *SessionState) IsDirty() bool {
	return s.dirty
}

// HasUnsavedChanges reports whether quitting or switching files would lose edits.
func (s *SessionState) HasUnsavedChanges() bool {
	return s.hasContent && s.dirty
}

func (s *SessionState) ExternallyModified() bool {
	return s.externallyModified
}

func (s *SessionState) ActiveLoad() *LoadSession {
	return s.load
}

func (s *SessionState) IsLoading() bool {
	return s.load != nil
}

// AttachLoad registers a new load. Only one load may be active per session.
func (s *SessionState) AttachLoad(load *LoadSession) error {
	if s.load != nil {
		return &BusyError{Operation: "open " + load.Path, ActivePath: s.load.Path}
	}
	s.load = load
	return nil
}

// DetachLoad drops a failed or cancelled load; the previous file stays as it was.
func (s *SessionState) DetachLoad(load *LoadSession) {
	if s.load == load {
		s.load = nil
	}
}

// CompleteLoad replaces the active file with the finished load's content.
func (s *SessionState) CompleteLoad(load *LoadSession, content []byte, digest string) {
	if s.load == load {
		s.load = nil
	}
	s.activeFile = load.Path
	s.verdict = load.Verdict
	s.content = content
	s.hasContent = true
	s.digest = digest
	s.dirty = false
	s.externallyModified = false
}

// Edit replaces the buffer content and marks the session dirty.
func (s *SessionState) Edit(content []byte) error {
	if s.load != nil {
		return &BusyError{Operation: "edit", ActivePath: s.load.Path}
	}
	if !s.hasContent {
		return ErrNoActiveFile
	}
	s.content = content
	s.dirty = true
	return nil
}

// MarkSaved records a successful save. It does not touch the verdict, so the
// read-only state is unchanged.
func (s *SessionState) MarkSaved(digest string) {
	s.digest = digest
	s.dirty = false
	s.externallyModified = false
}

func (s *SessionState) MarkExternallyModified() {
	s.externallyModified = true
}

// Close forgets the active file, e.g. after it was deleted.
func (s *SessionState) Close() {
	s.activeFile = ""
	s.verdict = PathAccessVerdict{}
	s.content = nil
	s.hasContent = false
	s.digest = ""
	s.dirty = false
	s.externallyModified = false
}
