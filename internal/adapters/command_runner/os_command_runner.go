package command_runner

import (
	"os"
	"os/exec"
	"os/signal"

	"sqe/internal/ports"
)

var _ ports.CommandRunner = (*OsCommandRunner)(nil)

// OsCommandRunner executes commands using os/exec.
type OsCommandRunner struct{}

func ProvideOsCommandRunner() *OsCommandRunner {
	return &OsCommandRunner{}
}

func (r *OsCommandRunner) RunInteractive(name string, args ...string) error {
	return r.RunInteractiveInDir("", name, args...)
}

// RunInteractiveInDir runs the command on the current terminal and waits for it. Ctrl-C
// reaches the child through the terminal; this process ignores it until the child has
// exited, so an elevated child is never left behind without its parent.
func (r *OsCommandRunner) RunInteractiveInDir(dir, name string, args ...string) error {
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (r *OsCommandRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *OsCommandRunner) Executable() (string, error) {
	return os.Executable()
}
