//go:build !windows

package command_runner

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOsCommandRunner_RunInteractiveInDir_UsesDirectory(t *testing.T) {
	dir := t.TempDir()
	sut := ProvideOsCommandRunner()

	err := sut.RunInteractiveInDir(dir, "sh", "-c", "pwd > where.txt")

	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "where.txt"))
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, resolved+"\n", string(data))
}

func TestOsCommandRunner_RunInteractive_ReportsExitCode(t *testing.T) {
	sut := ProvideOsCommandRunner()

	err := sut.RunInteractive("sh", "-c", "exit 3")

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestOsCommandRunner_LookPath(t *testing.T) {
	sut := ProvideOsCommandRunner()

	path, err := sut.LookPath("sh")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	_, err = sut.LookPath("sqe-no-such-program")
	assert.Error(t, err)

	exe, err := sut.Executable()
	require.NoError(t, err)
	assert.NotEmpty(t, exe)
}
