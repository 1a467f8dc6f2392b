package handler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"sqe/internal/cli/output"
	"sqe/internal/core"
	"sqe/internal/core/domain"
	"sqe/internal/ports"
)

// OpenRequest is the parsed command line of the editor.
type OpenRequest struct {
	Positional       []string
	Directory        string
	Sudo             bool
	Argv             []string
	WorkingDirectory string
}

// Target is the directory the session is rooted at and the optional file to open.
type Target struct {
	Directory string
	File      string
}

// ResolveTarget turns the positional arguments and the -d flag into a target. With two
// positionals they are directory and filename; an absolute filename moves the directory
// to its parent. -d replaces the positional directory, so a single positional is then the
// filename. Relative paths are resolved against cwd.
func ResolveTarget(positional []string, directoryFlag, cwd string) (Target, error) {
	var dir, file string
	switch {
	case directoryFlag != "" && len(positional) > 1:
		return Target{}, fmt.Errorf("too many arguments: with --directory only a filename may be given")
	case directoryFlag != "":
		dir = directoryFlag
		if len(positional) == 1 {
			file = positional[0]
		}
	case len(positional) > 2:
		return Target{}, fmt.Errorf("too many arguments: expected [directory] [filename]")
	case len(positional) == 2:
		dir, file = positional[0], positional[1]
	case len(positional) == 1:
		dir = positional[0]
	default:
		dir = cwd
	}

	if !filepath.IsAbs(dir) {
		dir = filepath.Join(cwd, dir)
	}
	dir = filepath.Clean(dir)
	if file == "" {
		return Target{Directory: dir}, nil
	}
	if filepath.IsAbs(file) {
		file = filepath.Clean(file)
		return Target{Directory: filepath.Dir(file), File: file}, nil
	}
	return Target{Directory: dir, File: filepath.Join(dir, file)}, nil
}

// OpenCommandHandler is the editor startup: resolve the target, relaunch with elevated
// privileges when asked to, load the initial file and hand over to the edit loop.
type OpenCommandHandler struct {
	classifier  *core.PermissionClassifier
	relauncher  *core.PrivilegeRelauncher
	accessProbe ports.AccessProbe
	watcher     ports.FileWatcher
	editLoop    *EditLoop
}

func ProvideOpenCommandHandler(
	classifier *core.PermissionClassifier,
	relauncher *core.PrivilegeRelauncher,
	accessProbe ports.AccessProbe,
	watcher ports.FileWatcher,
	editLoop *EditLoop,
) OpenCommandHandler {
	return OpenCommandHandler{
		classifier:  classifier,
		relauncher:  relauncher,
		accessProbe: accessProbe,
		watcher:     watcher,
		editLoop:    editLoop,
	}
}

// Handle returns nil after a normal session and after handing off to an elevated
// process. Errors are unrecoverable startup failures.
func (h *OpenCommandHandler) Handle(ctx context.Context, request OpenRequest) error {
	defer h.watcher.Close()

	target, err := ResolveTarget(request.Positional, request.Directory, request.WorkingDirectory)
	if err != nil {
		return err
	}
	dirVerdict := h.classifier.Classify(target.Directory)
	switch {
	case !dirVerdict.Exists:
		return fmt.Errorf("directory %s does not exist", target.Directory)
	case !dirVerdict.IsDirectory:
		return fmt.Errorf("%s is not a directory, pass its directory and name: sqe %s %s",
			target.Directory, filepath.Dir(target.Directory), filepath.Base(target.Directory))
	}

	if request.Sudo && !h.relauncher.AlreadyElevated(request.Argv) {
		handoff, err := h.relauncher.Relaunch(request.Argv, request.WorkingDirectory)
		var relaunchErr *domain.RelaunchError
		switch {
		case errors.As(err, &relaunchErr) && relaunchErr.Recoverable():
			output.PrintWarning(fmt.Sprintf("%v, continuing without elevation", err))
		case relaunchErr != nil && relaunchErr.Reason == domain.RelaunchSpawnUnavailable:
			return fmt.Errorf("%w (set elevation.command in the config file to this system's elevation program)", err)
		case err != nil:
			return err
		case handoff != nil:
			return nil
		}
	}

	state := domain.NewSessionState(target.Directory, h.accessProbe.IsElevated())
	if target.File != "" {
		h.openInitialFile(state, target.File)
	}
	return h.editLoop.Run(ctx, state)
}

func (h *OpenCommandHandler) openInitialFile(state *domain.SessionState, path string) {
	verdict := h.classifier.Classify(path)
	switch {
	case !verdict.Exists:
		output.PrintWarning(fmt.Sprintf("%s does not exist, create it with n %s", path, filepath.Base(path)))
		return
	case verdict.IsDirectory:
		output.PrintWarning(fmt.Sprintf("%s is a directory", path))
		return
	case !verdict.Readable:
		output.PrintError(fmt.Sprintf("cannot read %s: %s", path, verdict.Reason))
		if verdict.RequiresElevation && !state.IsElevated() {
			output.PrintInfo("restart with -s to open it")
		}
		return
	}
	h.editLoop.Open(state, path, false)
}
