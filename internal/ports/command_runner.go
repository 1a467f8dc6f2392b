package ports

// CommandRunner spawns external programs.
type CommandRunner interface {
	// RunInteractive executes a command with stdin, stdout, and stderr connected
	// to the terminal for interactive use. Returns error if command fails.
	RunInteractive(name string, args ...string) error
	// RunInteractiveInDir is RunInteractive with the working directory set to dir.
	RunInteractiveInDir(dir, name string, args ...string) error
	LookPath(name string) (string, error)
	// Executable returns the path of the running binary.
	Executable() (string, error)
}
