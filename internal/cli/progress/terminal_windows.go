//go:build windows

package progress

import (
	"os"

	"golang.org/x/sys/windows"
)

// initTerminal enables Virtual Terminal Processing on the console behind f and
// reports whether ANSI sequences can be used.
func initTerminal(f *os.File) bool {
	handle := windows.Handle(f.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(handle, &mode); err != nil {
		return false
	}
	if err := windows.SetConsoleMode(handle, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		return false
	}
	return true
}
