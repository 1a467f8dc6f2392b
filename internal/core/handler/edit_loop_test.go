package handler

import (
	"context"
	"strings"
	"testing"

	"sqe/internal/adapters/filesystem"
	"sqe/internal/core"
	"sqe/internal/core/domain"
	"sqe/internal/testutil"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testUID = 1000

var editorLimits = domain.LoadLimits{SyncLoadLimit: 64, MaxFileSize: 4096, ChunkSize: 32}

func newProbe(owner int, writable bool) *testutil.MockAccessProbe {
	probe := new(testutil.MockAccessProbe)
	probe.On("Owner", mock.Anything).Return(owner, owner, true)
	probe.On("EffectiveUID").Return(testUID)
	probe.On("IsElevated").Return(false)
	probe.On("CanRead", mock.Anything).Return(true)
	probe.On("CanSearch", mock.Anything).Return(true)
	probe.On("CanWrite", "/work").Return(true)
	probe.On("CanWrite", mock.Anything).Return(writable)
	return probe
}

type editorFixture struct {
	fs         afero.Fs
	console    *testutil.FakeConsole
	watcher    *testutil.FakeFileWatcher
	terminal   *testutil.MockTerminalInput
	probe      *testutil.MockAccessProbe
	classifier *core.PermissionClassifier
	loader     *core.ChunkedFileLoader
	loop       *EditLoop
	state      *domain.SessionState
}

func newEditorFixture(t *testing.T, probe *testutil.MockAccessProbe, lines ...string) *editorFixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	if probe == nil {
		probe = newProbe(testUID, true)
	}
	memFs := afero.NewMemMapFs()
	require.NoError(t, memFs.MkdirAll("/work", 0755))
	fileSystem := filesystem.NewFileSystem(memFs)
	classifier := core.ProvidePermissionClassifier(fileSystem, probe, domain.Elevation{ProtectedPaths: []string{"/etc"}})
	loader := core.ProvideChunkedFileLoader(fileSystem, classifier, core.ProvideTextDecoder(), editorLimits)
	saver := core.ProvideSaveCoordinator(fileSystem, classifier, probe)
	terminal := new(testutil.MockTerminalInput)
	terminal.On("IsTerminal").Return(false)
	f := &editorFixture{
		fs:         memFs,
		console:    testutil.NewFakeConsole(lines...),
		watcher:    testutil.NewFakeFileWatcher(),
		terminal:   terminal,
		probe:      probe,
		classifier: classifier,
		loader:     loader,
		state:      domain.NewSessionState("/work", false),
	}
	f.loop = ProvideEditLoop(f.console, terminal, fileSystem, f.watcher, loader, saver, core.ProvideTextDecoder())
	return f
}

func (f *editorFixture) write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(f.fs, path, []byte(content), 0644))
}

func (f *editorFixture) read(t *testing.T, path string) string {
	t.Helper()
	data, err := afero.ReadFile(f.fs, path)
	require.NoError(t, err)
	return string(data)
}

func (f *editorFixture) finishLoad(t *testing.T) {
	t.Helper()
	for i := 0; i < 1000 && f.state.IsLoading(); i++ {
		f.loop.step(f.state)
	}
	require.False(t, f.state.IsLoading())
}

func TestEditLoop_EditAndSave(t *testing.T) {
	f := newEditorFixture(t, nil)
	f.write(t, "/work/notes.txt", "one\ntwo\nthree\n")

	f.loop.Execute(f.state, "o notes.txt")
	f.loop.Execute(f.state, "d 2")
	f.loop.Execute(f.state, "a four")
	f.loop.Execute(f.state, "p")
	assert.True(t, f.state.IsDirty())
	f.loop.Execute(f.state, "w")

	assert.Equal(t, "one\nthree\nfour\n", f.read(t, "/work/notes.txt"))
	assert.False(t, f.state.IsDirty())
	out := f.console.Output()
	assert.Contains(t, out, "+ opened /work/notes.txt (14 B, read-write)")
	assert.Contains(t, out, "   1  one\n   2  three\n   3  four\n")
	assert.Contains(t, out, "+ saved /work/notes.txt (15 B)")
	assert.Equal(t, []string{"/work/notes.txt"}, f.watcher.Watched())
}

func TestEditLoop_UnsavedChangesGuardOpenAndQuit(t *testing.T) {
	f := newEditorFixture(t, nil)
	f.write(t, "/work/a.txt", "a\n")
	f.write(t, "/work/b.txt", "b\n")
	f.loop.Execute(f.state, "o a.txt")
	f.loop.Execute(f.state, "a more")

	f.loop.Execute(f.state, "o b.txt")
	path, _ := f.state.ActiveFile()
	assert.Equal(t, "/work/a.txt", path)

	f.loop.Execute(f.state, "q")
	assert.False(t, f.loop.done)

	f.loop.Execute(f.state, "o! b.txt")
	path, _ = f.state.ActiveFile()
	assert.Equal(t, "/work/b.txt", path)
	assert.Equal(t, "a\n", f.read(t, "/work/a.txt"))

	f.loop.Execute(f.state, "q")
	assert.True(t, f.loop.done)
	assert.Equal(t, 2, strings.Count(f.console.Output(), "unsaved changes"))
}

func TestEditLoop_LargeFileLoadsBetweenCommands(t *testing.T) {
	f := newEditorFixture(t, nil)
	content := strings.Repeat("0123456789abcde\n", 20)
	f.write(t, "/work/big.txt", content)

	f.loop.Execute(f.state, "o big.txt")
	require.True(t, f.state.IsLoading())
	f.loop.Execute(f.state, "p")
	f.loop.Execute(f.state, "w")
	f.finishLoad(t)

	loaded, ok := f.state.Content()
	require.True(t, ok)
	assert.Equal(t, content, string(loaded))
	out := f.console.Output()
	assert.Contains(t, out, "! large file (320 B), loading in the background")
	assert.Contains(t, out, "* still loading /work/big.txt")
	assert.Contains(t, out, "x cannot save while /work/big.txt is still loading")
	assert.Contains(t, out, "+ big.txt loaded, 320 B")
	assert.Contains(t, out, "+ opened /work/big.txt (320 B, read-write)")
}

func TestEditLoop_CancelLoadKeepsPreviousFile(t *testing.T) {
	f := newEditorFixture(t, nil)
	f.write(t, "/work/small.txt", "small\n")
	f.write(t, "/work/big.txt", strings.Repeat("x", 1000))
	f.loop.Execute(f.state, "o small.txt")

	f.loop.Execute(f.state, "o big.txt")
	f.loop.step(f.state)
	f.loop.Execute(f.state, "c")

	assert.False(t, f.state.IsLoading())
	content, ok := f.state.Content()
	require.True(t, ok)
	assert.Equal(t, "small\n", string(content))
	assert.Contains(t, f.console.Output(), "! big.txt cancelled at 32 B")
}

func TestEditLoop_LoadFailuresAreReported(t *testing.T) {
	f := newEditorFixture(t, nil)
	f.write(t, "/work/huge.txt", strings.Repeat("x", 5000))
	f.write(t, "/work/blob.bin", "\xff\xfe\xfd\xfc")

	f.loop.Execute(f.state, "o huge.txt")
	f.loop.Execute(f.state, "o blob.bin")
	f.loop.Execute(f.state, "o missing.txt")

	_, ok := f.state.ActiveFile()
	assert.False(t, ok)
	out := f.console.Output()
	assert.Contains(t, out, "x /work/huge.txt is too large to open (4.9 KiB, limit 4.0 KiB)")
	assert.Contains(t, out, "x /work/blob.bin is not valid text")
	assert.Contains(t, out, "x failed to load /work/missing.txt")
}

func TestEditLoop_ReadOnlyFileCannotBeSaved(t *testing.T) {
	f := newEditorFixture(t, newProbe(0, false))
	f.write(t, "/work/root.conf", "key=value\n")

	f.loop.Execute(f.state, "o root.conf")
	assert.True(t, f.state.IsReadOnly())
	f.loop.Execute(f.state, "a other=1")
	f.loop.Execute(f.state, "w")

	assert.Equal(t, "key=value\n", f.read(t, "/work/root.conf"))
	assert.True(t, f.state.IsDirty())
	out := f.console.Output()
	assert.Contains(t, out, "! read-only: NOT_OWNER, restart with -s to edit it")
	assert.Contains(t, out, "PERMISSION_DENIED")
	assert.Contains(t, out, "* restart with -s to save this file")
}

func TestEditLoop_CreateNewFile(t *testing.T) {
	f := newEditorFixture(t, nil)

	f.loop.Execute(f.state, "n fresh.txt")
	f.loop.Execute(f.state, "a first line")
	f.loop.Execute(f.state, "w")
	f.loop.Execute(f.state, "n fresh.txt")

	assert.Equal(t, "first line\n", f.read(t, "/work/fresh.txt"))
	assert.Contains(t, f.console.Output(), "x /work/fresh.txt already exists")
}

func TestEditLoop_ExternalChangeDetection(t *testing.T) {
	f := newEditorFixture(t, nil)
	f.write(t, "/work/notes.txt", "v1\n")
	f.loop.Execute(f.state, "o notes.txt")

	f.loop.Execute(f.state, "a v2")
	f.loop.Execute(f.state, "w")
	f.loop.checkExternalChange(f.state, "/work/notes.txt")
	assert.False(t, f.state.ExternallyModified(), "own save is not an external change")

	f.write(t, "/work/notes.txt", "edited elsewhere\n")
	f.loop.checkExternalChange(f.state, "/work/other.txt")
	assert.False(t, f.state.ExternallyModified())
	f.loop.checkExternalChange(f.state, "/work/notes.txt")
	assert.True(t, f.state.ExternallyModified())

	require.NoError(t, f.fs.Remove("/work/notes.txt"))
	f.loop.checkExternalChange(f.state, "/work/notes.txt")
	assert.Contains(t, f.console.Output(), "! /work/notes.txt was deleted on disk")
}

func TestEditLoop_Commands(t *testing.T) {
	f := newEditorFixture(t, nil)
	f.write(t, "/work/notes.txt", "only\n")

	f.loop.Execute(f.state, "p")
	f.loop.Execute(f.state, "o notes.txt")
	f.loop.Execute(f.state, "d 5")
	f.loop.Execute(f.state, "d x")
	f.loop.Execute(f.state, "c")
	f.loop.Execute(f.state, "i")
	f.loop.Execute(f.state, "zz")
	f.loop.Execute(f.state, "h")

	out := f.console.Output()
	assert.Contains(t, out, "* no file open, use o PATH")
	assert.Contains(t, out, "x line 5 does not exist, the buffer has 1 line")
	assert.Contains(t, out, "x usage: d N")
	assert.Contains(t, out, "* nothing is loading")
	assert.Contains(t, out, "file:      /work/notes.txt")
	assert.Contains(t, out, "read-only: false")
	assert.Contains(t, out, `x unknown command "zz"`)
	assert.Contains(t, out, "commands:")
}

func TestEditLoop_Run(t *testing.T) {
	f := newEditorFixture(t, nil, "o notes.txt", "a hello", "w", "q")
	f.write(t, "/work/notes.txt", "")

	err := f.loop.Run(context.Background(), f.state)

	require.NoError(t, err)
	assert.Equal(t, "hello\n", f.read(t, "/work/notes.txt"))
	assert.True(t, f.loop.done)
}

func TestEditLoop_Run_EndOfInputDiscardsWithWarning(t *testing.T) {
	f := newEditorFixture(t, nil, "o notes.txt", "a hello")
	f.write(t, "/work/notes.txt", "")

	err := f.loop.Run(context.Background(), f.state)

	require.NoError(t, err)
	assert.Equal(t, "", f.read(t, "/work/notes.txt"))
	assert.Contains(t, f.console.Output(), "input closed, unsaved changes discarded")
}

func TestDeleteLine(t *testing.T) {
	tests := []struct {
		content string
		arg     string
		want    string
	}{
		{"a\nb\nc\n", "1", "b\nc\n"},
		{"a\nb\nc\n", "3", "a\nb\n"},
		{"a\nb", "2", "a\n"},
	}
	for _, tt := range tests {
		got, err := deleteLine([]byte(tt.content), tt.arg)
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(got))
	}
}

func TestAppendLine(t *testing.T) {
	assert.Equal(t, "x\n", string(appendLine(nil, "x")))
	assert.Equal(t, "a\nx\n", string(appendLine([]byte("a"), "x")))
	assert.Equal(t, "a\nx\n", string(appendLine([]byte("a\n"), "x")))
}

func TestEditLoop_Run_InterruptWarnsAboutUnsavedChanges(t *testing.T) {
	f := newEditorFixture(t, nil)
	f.console.BlockWhenEmpty()
	t.Cleanup(f.console.Release)
	f.write(t, "/work/notes.txt", "")
	f.loop.Execute(f.state, "o notes.txt")
	f.loop.Execute(f.state, "a hello")
	require.True(t, f.state.HasUnsavedChanges())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.loop.Run(ctx, f.state)

	require.NoError(t, err)
	assert.Equal(t, "", f.read(t, "/work/notes.txt"))
	assert.Contains(t, f.console.Output(), "interrupted, unsaved changes discarded")
}

func TestEditLoop_Run_InterruptWithoutChangesIsQuiet(t *testing.T) {
	f := newEditorFixture(t, nil)
	f.console.BlockWhenEmpty()
	t.Cleanup(f.console.Release)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.loop.Run(ctx, f.state)

	require.NoError(t, err)
	assert.NotContains(t, f.console.Output(), "unsaved")
}
