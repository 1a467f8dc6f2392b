package ports

import "os"

// AccessProbe answers questions about what the current process identity may do.
// Answers reflect the filesystem at the time of the call and are never cached.
type AccessProbe interface {
	CanRead(path string) bool
	CanWrite(path string) bool
	// CanSearch reports whether a directory may be traversed.
	CanSearch(path string) bool
	// Owner returns the owning uid and gid recorded in info, if the platform has them.
	Owner(info os.FileInfo) (uid int, gid int, ok bool)
	EffectiveUID() int
	// IsElevated reports whether the process already runs as the privileged identity.
	IsElevated() bool
}
