//go:build !windows

package progress

import "os"

// initTerminal reports ANSI support; Unix terminals have it by default.
func initTerminal(*os.File) bool {
	return true
}
