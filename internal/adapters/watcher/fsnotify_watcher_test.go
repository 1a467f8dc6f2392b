package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFsnotifyWatcher_ReportsWritesToWatchedFileOnly(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "watched.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(target, []byte("a"), 0600))
	sut, err := ProvideFsnotifyWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sut.Close() })
	require.NoError(t, sut.Watch(target))

	require.NoError(t, os.WriteFile(other, []byte("b"), 0600))
	require.NoError(t, os.WriteFile(target, []byte("changed"), 0600))

	select {
	case path := <-sut.Events():
		resolved, err := filepath.Abs(target)
		require.NoError(t, err)
		assert.Equal(t, resolved, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for watched file")
	}
}

func TestFsnotifyWatcher_CloseIsIdempotent(t *testing.T) {
	sut, err := ProvideFsnotifyWatcher()
	require.NoError(t, err)

	assert.NoError(t, sut.Close())
	assert.NoError(t, sut.Close())
}
