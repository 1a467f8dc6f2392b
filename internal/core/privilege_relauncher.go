package core

import (
	"errors"
	"path/filepath"
	"strings"

	"sqe/internal/core/domain"
	"sqe/internal/ports"

	logging "github.com/ipfs/go-log/v2"
)

var relaunchLog = logging.Logger("sqe/relaunch")

// ElevatedMarker is added to the argv of the elevated child. A process started with it
// never relaunches again.
const ElevatedMarker = "--elevated"

// RelaunchRequest describes the elevated child process. It is built without side
// effects so the invocation can be checked without a privilege prompt.
type RelaunchRequest struct {
	Dir     string
	Program string
	Args    []string
}

// Handoff is returned once the elevated child ran. The caller exits 0 afterwards.
type Handoff struct {
	Request       RelaunchRequest
	ChildExitCode int
}

// BuildRelaunchRequest re-runs executable under elevationCommand with the original
// arguments in the original directory. Elevation flags are stripped and the marker is
// added exactly once. Anything after "--" is passed through untouched.
func BuildRelaunchRequest(elevationCommand string, argv []string, cwd, executable string) RelaunchRequest {
	args := []string{"--", executable, ElevatedMarker}
	for i, arg := range argv {
		if arg == "--" {
			args = append(args, argv[i:]...)
			break
		}
		if isElevationFlag(arg) {
			continue
		}
		args = append(args, arg)
	}
	return RelaunchRequest{
		Dir:     cwd,
		Program: elevationCommand,
		Args:    args,
	}
}

// HasElevatedMarker reports whether argv was produced by a previous relaunch.
func HasElevatedMarker(argv []string) bool {
	for _, arg := range argv {
		if arg == "--" {
			return false
		}
		if arg == ElevatedMarker || strings.HasPrefix(arg, ElevatedMarker+"=") {
			return true
		}
	}
	return false
}

func isElevationFlag(arg string) bool {
	switch {
	case arg == "-s", arg == "--sudo", strings.HasPrefix(arg, "--sudo="):
		return true
	case arg == ElevatedMarker, strings.HasPrefix(arg, ElevatedMarker+"="):
		return true
	}
	return false
}

type PrivilegeRelauncher struct {
	commandRunner ports.CommandRunner
	terminalInput ports.TerminalInput
	accessProbe   ports.AccessProbe
	command       string
}

func ProvidePrivilegeRelauncher(
	commandRunner ports.CommandRunner,
	terminalInput ports.TerminalInput,
	accessProbe ports.AccessProbe,
	elevation domain.Elevation,
) *PrivilegeRelauncher {
	return &PrivilegeRelauncher{
		commandRunner: commandRunner,
		terminalInput: terminalInput,
		accessProbe:   accessProbe,
		command:       elevation.Command,
	}
}

// AlreadyElevated reports whether relaunching would be pointless or loop.
func (r *PrivilegeRelauncher) AlreadyElevated(argv []string) bool {
	return HasElevatedMarker(argv) || r.accessProbe.IsElevated()
}

// Relaunch asks for credentials and runs the program again as the privileged identity,
// blocking until the child exits. It returns a nil Handoff when the process is already
// elevated. A RelaunchError that is Recoverable leaves the caller free to continue read-only.
func (r *PrivilegeRelauncher) Relaunch(argv []string, cwd string) (*Handoff, error) {
	if r.AlreadyElevated(argv) {
		relaunchLog.Debug("already elevated, not relaunching")
		return nil, nil
	}
	if !r.terminalInput.IsTerminal() {
		return nil, &domain.RelaunchError{
			Reason: domain.RelaunchPromptUnavailable,
			Cause:  errors.New("stdin is not a terminal"),
		}
	}

	program, err := r.commandRunner.LookPath(r.command)
	if err != nil {
		return nil, &domain.RelaunchError{Reason: domain.RelaunchSpawnUnavailable, Cause: err}
	}
	executable, err := r.commandRunner.Executable()
	if err != nil {
		return nil, &domain.RelaunchError{Reason: domain.RelaunchSpawnUnavailable, Cause: err}
	}

	// Prompt before spawning, so a cancelled prompt never starts the child at all.
	if filepath.Base(program) == "sudo" {
		if err := r.commandRunner.RunInteractive(program, "-v"); err != nil {
			return nil, &domain.RelaunchError{Reason: domain.RelaunchUserDenied, Cause: err}
		}
	}

	request := BuildRelaunchRequest(program, argv, cwd, executable)
	relaunchLog.Infow("relaunching", "program", request.Program, "args", request.Args, "dir", request.Dir)

	handoff := &Handoff{Request: request}
	err = r.commandRunner.RunInteractiveInDir(request.Dir, request.Program, request.Args...)
	if err != nil {
		var exitErr interface{ ExitCode() int }
		if !errors.As(err, &exitErr) {
			return nil, &domain.RelaunchError{Reason: domain.RelaunchSpawnUnavailable, Cause: err}
		}
		handoff.ChildExitCode = exitErr.ExitCode()
		relaunchLog.Warnw("elevated process exited with an error", "code", handoff.ChildExitCode)
	}
	return handoff, nil
}
