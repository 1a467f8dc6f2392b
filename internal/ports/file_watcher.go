package ports

// FileWatcher reports changes to individual files.
type FileWatcher interface {
	// Watch starts reporting changes to path. Watching a new path replaces the previous one.
	Watch(path string) error
	// Events delivers the path of every watched file that was written, created or replaced.
	Events() <-chan string
	Errors() <-chan error
	Close() error
}
