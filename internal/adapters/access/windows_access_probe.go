//go:build windows

package access

import (
	"os"

	"sqe/internal/ports"

	"golang.org/x/sys/windows"
)

var _ ports.AccessProbe = (*WindowsAccessProbe)(nil)

// WindowsAccessProbe approximates access checks by opening the path. Windows has
// no owner uid, so NOT_OWNER is never reported there.
type WindowsAccessProbe struct{}

// Probe is the access probe of the current platform.
type Probe = WindowsAccessProbe

func ProvideAccessProbe() *WindowsAccessProbe {
	return &WindowsAccessProbe{}
}

func (p *WindowsAccessProbe) CanRead(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

func (p *WindowsAccessProbe) CanWrite(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		f, err := os.CreateTemp(path, ".sqe-probe-*")
		if err != nil {
			return false
		}
		name := f.Name()
		_ = f.Close()
		_ = os.Remove(name)
		return true
	}
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

func (p *WindowsAccessProbe) CanSearch(path string) bool {
	return p.CanRead(path)
}

func (p *WindowsAccessProbe) Owner(os.FileInfo) (int, int, bool) {
	return 0, 0, false
}

func (p *WindowsAccessProbe) EffectiveUID() int {
	return -1
}

func (p *WindowsAccessProbe) IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
