package domain

import "fmt"

// AccessReason explains why a path is not writable by the current identity.
type AccessReason int

const (
	ReasonNone AccessReason = iota
	ReasonNotOwner
	ReasonNoWriteBit
	ReasonParentNotWritable
	ReasonPathMissing
)

func (r AccessReason) String() string {
	switch r {
	case ReasonNone:
		return "NONE"
	case ReasonNotOwner:
		return "NOT_OWNER"
	case ReasonNoWriteBit:
		return "NO_WRITE_BIT"
	case ReasonParentNotWritable:
		return "PARENT_NOT_WRITABLE"
	case ReasonPathMissing:
		return "PATH_MISSING"
	default:
		return fmt.Sprintf("AccessReason(%d)", int(r))
	}
}

// PathAccessVerdict is the result of classifying one path. It is a value: callers
// classify again instead of holding on to an old verdict across a save.
type PathAccessVerdict struct {
	Path              string
	Exists            bool
	IsDirectory       bool
	Readable          bool
	Writable          bool
	RequiresElevation bool
	Reason            AccessReason
}

// Describe returns a one-line summary suitable for status output.
func (v PathAccessVerdict) Describe() string {
	switch {
	case !v.Exists:
		return "does not exist"
	case v.Writable:
		return "read-write"
	case v.Readable && v.RequiresElevation:
		return fmt.Sprintf("read-only (%s, elevation available)", v.Reason)
	case v.Readable:
		return fmt.Sprintf("read-only (%s)", v.Reason)
	default:
		return fmt.Sprintf("no access (%s)", v.Reason)
	}
}
