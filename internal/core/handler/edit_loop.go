package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sqe/internal/cli/output"
	"sqe/internal/cli/progress"
	"sqe/internal/core"
	"sqe/internal/core/domain"
	"sqe/internal/ports"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("sqe/editor")

const helpText = `commands:
  p            print the buffer
  a TEXT       append a line
  d N          delete line N
  w            save
  o PATH       open a file (o! discards unsaved changes)
  n NAME       create an empty file and open it
  c            cancel the running load
  i            show file info
  q            quit (q! discards unsaved changes)
`

type inputLine struct {
	text string
	err  error
}

// EditLoop is the interactive shell around a SessionState. It reads one command per
// line and, while a large file is loading, advances the load by one chunk between
// commands so input is never blocked by a load.
type EditLoop struct {
	console       ports.Console
	terminalInput ports.TerminalInput
	fileSystem    ports.FileSystem
	watcher       ports.FileWatcher
	loader        *core.ChunkedFileLoader
	saver         *core.SaveCoordinator
	textDecoder   core.TextDecoder

	tracker *progress.LoadTracker
	done    bool
}

func ProvideEditLoop(
	console ports.Console,
	terminalInput ports.TerminalInput,
	fileSystem ports.FileSystem,
	watcher ports.FileWatcher,
	loader *core.ChunkedFileLoader,
	saver *core.SaveCoordinator,
	textDecoder core.TextDecoder,
) *EditLoop {
	return &EditLoop{
		console:       console,
		terminalInput: terminalInput,
		fileSystem:    fileSystem,
		watcher:       watcher,
		loader:        loader,
		saver:         saver,
		textDecoder:   textDecoder,
	}
}

// Run processes commands until quit, end of input or ctx is done.
func (l *EditLoop) Run(ctx context.Context, state *domain.SessionState) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer l.cancelLoad(state)
	l.done = false

	lines := make(chan inputLine)
	go l.readInput(ctx, lines)

	l.prompt(state)
	for !l.done {
		if state.IsLoading() {
			select {
			case in := <-lines:
				l.handleInput(state, in)
			case path := <-l.watcher.Events():
				l.checkExternalChange(state, path)
			case <-ctx.Done():
				l.interrupt(state)
				return nil
			default:
				l.step(state)
			}
			continue
		}

		select {
		case in := <-lines:
			l.handleInput(state, in)
		case path := <-l.watcher.Events():
			l.checkExternalChange(state, path)
		case err := <-l.watcher.Errors():
			log.Warnw("file watcher error", "error", err)
		case <-ctx.Done():
			l.interrupt(state)
			return nil
		}
	}
	return nil
}

func (l *EditLoop) readInput(ctx context.Context, lines chan<- inputLine) {
	for {
		text, err := l.console.ReadLine()
		select {
		case lines <- inputLine{text: text, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

func (l *EditLoop) handleInput(state *domain.SessionState, in inputLine) {
	if in.err != nil {
		if !errors.Is(in.err, io.EOF) {
			log.Warnw("reading input failed", "error", in.err)
		}
		if state.HasUnsavedChanges() {
			l.warn("input closed, unsaved changes discarded")
		}
		l.done = true
		return
	}
	l.Execute(state, in.text)
	if !l.done && !state.IsLoading() {
		l.prompt(state)
	}
}

func (l *EditLoop) interrupt(state *domain.SessionState) {
	if state.HasUnsavedChanges() {
		l.warn("interrupted, unsaved changes discarded")
	}
}

func (l *EditLoop) prompt(state *domain.SessionState) {
	if !l.terminalInput.IsTerminal() {
		return
	}
	name := "(no file)"
	if path, ok := state.ActiveFile(); ok {
		name = filepath.Base(path)
		if state.IsDirty() {
			name += " *"
		}
	}
	l.console.Printf("%s> ", name)
}

// Execute runs a single command line against state.
func (l *EditLoop) Execute(state *domain.SessionState, line string) {
	command, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "":
	case "p":
		l.print(state)
	case "a":
		l.edit(state, func(content []byte) ([]byte, error) { return appendLine(content, arg), nil })
	case "d":
		l.edit(state, func(content []byte) ([]byte, error) { return deleteLine(content, arg) })
	case "w":
		l.save(state)
	case "o", "o!":
		l.Open(state, arg, command == "o!")
	case "n":
		l.create(state, arg)
	case "c":
		if !state.IsLoading() {
			l.info("nothing is loading")
			return
		}
		l.cancelLoad(state)
	case "i":
		l.describe(state)
	case "q", "q!":
		if command == "q" && state.HasUnsavedChanges() {
			l.warn("unsaved changes, save with w or quit with q!")
			return
		}
		l.done = true
	case "h", "?":
		l.console.Printf("%s", helpText)
	default:
		l.fail(fmt.Errorf("unknown command %q, type h for help", command))
	}
}

// Open starts loading path. A running load is cancelled. Files up to the sync limit
// are complete when Open returns; larger ones continue from Run.
func (l *EditLoop) Open(state *domain.SessionState, path string, discardChanges bool) {
	if path == "" {
		l.fail(errors.New("usage: o PATH"))
		return
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(state.DirectoryRoot(), path)
	}
	if state.HasUnsavedChanges() && !discardChanges {
		l.warn("unsaved changes, save with w or open with o! to discard them")
		return
	}

	if state.IsLoading() {
		l.finishTracker(domain.ErrLoadCancelled, true)
	}
	session, err := l.loader.Open(state, path)
	if err != nil {
		l.fail(err)
		return
	}

	if !session.Chunked {
		l.step(state)
		return
	}
	l.warn(fmt.Sprintf("large file (%s), loading in the background; c cancels", output.Size(session.TotalSize)))
	l.tracker = progress.NewLoadTracker(l.console.Writer(), l.terminalInput.IsTerminal(), filepath.Base(session.Path), session.TotalSize)
	l.tracker.Start()
}

// step advances the active load by one chunk.
func (l *EditLoop) step(state *domain.SessionState) {
	session := state.ActiveLoad()
	if session == nil {
		return
	}
	result, err := l.loader.Advance(state, session)
	if l.tracker != nil {
		l.tracker.Update(result.BytesRead)
	}
	if err != nil {
		cancelled := errors.Is(err, domain.ErrLoadCancelled)
		l.finishTracker(err, cancelled)
		if !cancelled {
			l.fail(err)
		}
		l.prompt(state)
		return
	}
	if !result.Done {
		return
	}
	l.finishTracker(nil, false)
	l.opened(state)
	if session.Chunked {
		l.prompt(state)
	}
}

func (l *EditLoop) opened(state *domain.SessionState) {
	path, _ := state.ActiveFile()
	content, _ := state.Content()
	verdict := state.Verdict()

	if err := l.watcher.Watch(path); err != nil {
		log.Warnw("cannot watch file for external changes", "path", path, "error", err)
	}
	l.success(fmt.Sprintf("opened %s (%s, %s)", path, output.Size(int64(len(content))), verdict.Describe()))
	if state.IsReadOnly() {
		hint := "changes cannot be saved"
		if verdict.RequiresElevation && !state.IsElevated() {
			hint = "restart with -s to edit it"
		}
		l.warn(fmt.Sprintf("read-only: %s, %s", verdict.Reason, hint))
	}
}

func (l *EditLoop) cancelLoad(state *domain.SessionState) {
	session := state.ActiveLoad()
	if session == nil {
		return
	}
	l.loader.Cancel(state, session)
	l.finishTracker(domain.ErrLoadCancelled, true)
}

func (l *EditLoop) finishTracker(err error, cancelled bool) {
	if l.tracker == nil {
		return
	}
	l.tracker.Finish(err, cancelled)
	l.tracker = nil
}

func (l *EditLoop) create(state *domain.SessionState, name string) {
	if name == "" {
		l.fail(errors.New("usage: n NAME"))
		return
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(state.DirectoryRoot(), name)
	}
	if state.HasUnsavedChanges() {
		l.warn("unsaved changes, save with w before creating a file")
		return
	}
	exists, err := l.fileSystem.FileExists(path)
	if err != nil {
		l.fail(err)
		return
	}
	if exists {
		l.fail(fmt.Errorf("%s already exists", path))
		return
	}
	if err := l.fileSystem.WriteFile(path, nil, ports.ReadAllWriteOwner); err != nil {
		l.fail(&domain.PermissionDeniedError{Path: path, Operation: "create", Cause: err})
		return
	}
	l.Open(state, path, false)
}

func (l *EditLoop) print(state *domain.SessionState) {
	content, ok := state.Content()
	if !ok {
		l.describeLoad(state)
		return
	}
	path, _ := state.ActiveFile()
	text, err := l.textDecoder.Decode(path, content)
	if err != nil {
		l.fail(err)
		return
	}
	if text == "" {
		l.info("(empty)")
		return
	}
	for i, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		l.console.Printf("%4d  %s\n", i+1, line)
	}
}

func (l *EditLoop) edit(state *domain.SessionState, change func([]byte) ([]byte, error)) {
	content, ok := state.Content()
	if !ok {
		l.describeLoad(state)
		return
	}
	updated, err := change(content)
	if err != nil {
		l.fail(err)
		return
	}
	if err := state.Edit(updated); err != nil {
		l.fail(err)
	}
}

func (l *EditLoop) save(state *domain.SessionState) {
	result, err := l.saver.Save(state)
	if err != nil {
		l.fail(err)
		var saveErr *domain.SaveError
		if errors.As(err, &saveErr) && saveErr.Reason == domain.SavePermissionDenied && state.Verdict().RequiresElevation && !state.IsElevated() {
			l.info("restart with -s to save this file")
		}
		return
	}
	l.success(fmt.Sprintf("saved %s (%s)", result.Path, output.Size(int64(result.Bytes))))
}

func (l *EditLoop) describe(state *domain.SessionState) {
	path, ok := state.ActiveFile()
	if !ok {
		l.describeLoad(state)
		return
	}
	content, _ := state.Content()
	verdict := state.Verdict()
	l.console.Printf("file:      %s\n", path)
	l.console.Printf("size:      %s\n", output.Size(int64(len(content))))
	l.console.Printf("access:    %s\n", verdict.Describe())
	l.console.Printf("read-only: %t\n", state.IsReadOnly())
	l.console.Printf("modified:  %t\n", state.IsDirty())
	l.console.Printf("elevated:  %t\n", state.IsElevated())
	if state.ExternallyModified() {
		l.warn("the file changed on disk since it was loaded")
	}
}

func (l *EditLoop) describeLoad(state *domain.SessionState) {
	if load := state.ActiveLoad(); load != nil {
		l.info(fmt.Sprintf("still loading %s, %s", load.Path, output.Percent(load.Progress())))
		return
	}
	l.info("no file open, use o PATH")
}

// checkExternalChange compares the file on disk with the last loaded or saved content.
// Our own saves leave the digests equal and are never reported.
func (l *EditLoop) checkExternalChange(state *domain.SessionState, path string) {
	active, ok := state.ActiveFile()
	if !ok || state.IsLoading() || filepath.Clean(path) != active {
		return
	}
	data, err := l.fileSystem.ReadFile(active)
	if errors.Is(err, os.ErrNotExist) {
		l.warn(fmt.Sprintf("%s was deleted on disk, w writes it again", active))
		return
	}
	if err != nil {
		log.Debugw("cannot read changed file", "path", active, "error", err)
		return
	}
	if core.Digest(data) == state.Digest() || state.ExternallyModified() {
		return
	}
	state.MarkExternallyModified()
	l.warn(fmt.Sprintf("%s changed on disk, w overwrites it, o! %s reloads it", active, filepath.Base(active)))
}

func (l *EditLoop) success(message string) {
	l.console.Printf("%s", output.FormatSuccess(message))
}

func (l *EditLoop) info(message string) {
	l.console.Printf("%s", output.FormatInfo(message))
}

func (l *EditLoop) warn(message string) {
	l.console.Printf("%s", output.FormatWarning(message))
}

func (l *EditLoop) fail(err error) {
	l.console.Printf("%s", output.FormatError(err.Error()))
}

func appendLine(content []byte, line string) []byte {
	updated := make([]byte, 0, len(content)+len(line)+2)
	updated = append(updated, content...)
	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}
	updated = append(updated, line...)
	return append(updated, '\n')
}

func deleteLine(content []byte, arg string) ([]byte, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("usage: d N")
	}
	lines := bytes.SplitAfter(content, []byte("\n"))
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	if n < 1 || n > len(lines) {
		return nil, fmt.Errorf("line %d does not exist, the buffer has %d %s", n, len(lines), output.Plural(len(lines), "line", "lines"))
	}
	lines = append(lines[:n-1], lines[n:]...)
	return bytes.Join(lines, nil), nil
}
