package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"sqe/internal/core/domain"
	"sqe/internal/ports"

	logging "github.com/ipfs/go-log/v2"
)

var classifyLog = logging.Logger("sqe/classify")

// PermissionClassifier decides what the current identity may do with a path. It only
// reads filesystem metadata and never fails: missing access is reported in the verdict.
type PermissionClassifier struct {
	fileSystem     ports.FileSystem
	accessProbe    ports.AccessProbe
	protectedPaths []string
}

func ProvidePermissionClassifier(
	fileSystem ports.FileSystem,
	accessProbe ports.AccessProbe,
	elevation domain.Elevation,
) *PermissionClassifier {
	protected := make([]string, 0, len(elevation.ProtectedPaths))
	for _, p := range elevation.ProtectedPaths {
		protected = append(protected, filepath.Clean(p))
	}
	return &PermissionClassifier{
		fileSystem:     fileSystem,
		accessProbe:    accessProbe,
		protectedPaths: protected,
	}
}

func (c *PermissionClassifier) Classify(path string) domain.PathAccessVerdict {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	verdict := c.classify(abs)
	classifyLog.Debugw("classified",
		"path", abs,
		"exists", verdict.Exists,
		"readable", verdict.Readable,
		"writable", verdict.Writable,
		"requiresElevation", verdict.RequiresElevation,
		"reason", verdict.Reason.String(),
	)
	return verdict
}

func (c *PermissionClassifier) classify(path string) domain.PathAccessVerdict {
	verdict := domain.PathAccessVerdict{Path: path}

	info, err := c.fileSystem.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		verdict.Reason = domain.ReasonPathMissing
		return verdict
	}
	if err != nil {
		// The path is there but we may not even look at it, e.g. a parent without search permission.
		verdict.Exists = true
		verdict.Reason = domain.ReasonNotOwner
		verdict.RequiresElevation = !c.accessProbe.IsElevated()
		return verdict
	}
	verdict.Exists = true

	ownerDiffers := false
	if uid, _, ok := c.accessProbe.Owner(info); ok {
		ownerDiffers = uid != c.accessProbe.EffectiveUID()
	}

	var hasWriteBit bool
	if info.IsDir() {
		verdict.IsDirectory = true
		searchable := c.accessProbe.CanSearch(path)
		hasWriteBit = c.accessProbe.CanWrite(path)
		verdict.Readable = c.accessProbe.CanRead(path) && searchable
		verdict.Writable = hasWriteBit && searchable
	} else {
		parent := filepath.Dir(path)
		hasWriteBit = c.accessProbe.CanWrite(path)
		parentWritable := c.accessProbe.CanWrite(parent) && c.accessProbe.CanSearch(parent)
		verdict.Readable = c.accessProbe.CanRead(path)
		verdict.Writable = hasWriteBit && parentWritable
	}

	if verdict.Writable {
		return verdict
	}

	switch {
	case ownerDiffers:
		verdict.Reason = domain.ReasonNotOwner
	case !hasWriteBit:
		verdict.Reason = domain.ReasonNoWriteBit
	default:
		verdict.Reason = domain.ReasonParentNotWritable
	}
	verdict.RequiresElevation = !c.accessProbe.IsElevated() && (ownerDiffers || c.isProtected(path))
	return verdict
}

// isProtected reports whether path lies under a directory reserved for privileged configuration.
func (c *PermissionClassifier) isProtected(path string) bool {
	for _, prefix := range c.protectedPaths {
		if path == prefix || strings.HasPrefix(path, prefix+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
