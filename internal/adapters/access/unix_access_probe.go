//go:build !windows

package access

import (
	"os"
	"syscall"

	"sqe/internal/ports"

	"golang.org/x/sys/unix"
)

var _ ports.AccessProbe = (*UnixAccessProbe)(nil)

// UnixAccessProbe answers access questions with access(2). Under sudo the real
// and effective uid are both root, so access(2) reflects the elevated identity.
type UnixAccessProbe struct{}

// Probe is the access probe of the current platform.
type Probe = UnixAccessProbe

func ProvideAccessProbe() *UnixAccessProbe {
	return &UnixAccessProbe{}
}

func (p *UnixAccessProbe) CanRead(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}

func (p *UnixAccessProbe) CanWrite(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}

func (p *UnixAccessProbe) CanSearch(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}

func (p *UnixAccessProbe) Owner(info os.FileInfo) (int, int, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}
	return int(stat.Uid), int(stat.Gid), true
}

func (p *UnixAccessProbe) EffectiveUID() int {
	return unix.Geteuid()
}

func (p *UnixAccessProbe) IsElevated() bool {
	return unix.Geteuid() == 0
}
