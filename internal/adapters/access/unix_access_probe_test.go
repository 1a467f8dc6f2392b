//go:build !windows

package access

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnixAccessProbe_ReadWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	sut := ProvideAccessProbe()

	assert.True(t, sut.CanRead(path))
	assert.True(t, sut.CanWrite(path))
	assert.True(t, sut.CanSearch(dir))
	assert.False(t, sut.CanRead(filepath.Join(dir, "missing")))
}

func TestUnixAccessProbe_ReadOnlyFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission bits")
	}
	path := filepath.Join(t.TempDir(), "ro.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0400))
	sut := ProvideAccessProbe()

	assert.True(t, sut.CanRead(path))
	assert.False(t, sut.CanWrite(path))
}

func TestUnixAccessProbe_Owner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owned.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	info, err := os.Stat(path)
	require.NoError(t, err)
	sut := ProvideAccessProbe()

	uid, _, ok := sut.Owner(info)

	require.True(t, ok)
	assert.Equal(t, os.Geteuid(), uid)
	assert.Equal(t, os.Geteuid(), sut.EffectiveUID())
	assert.Equal(t, os.Geteuid() == 0, sut.IsElevated())
}
