package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"sqe/internal/cli/output"
	"sqe/internal/core"
	"sqe/internal/core/domain"
	"sqe/internal/ports"
)

// CheckCommandHandler prints the access verdict of each path and how the editor would load it.
type CheckCommandHandler struct {
	fileSystem ports.FileSystem
	classifier *core.PermissionClassifier
	loader     *core.ChunkedFileLoader
}

func ProvideCheckCommandHandler(
	fileSystem ports.FileSystem,
	classifier *core.PermissionClassifier,
	loader *core.ChunkedFileLoader,
) CheckCommandHandler {
	return CheckCommandHandler{
		fileSystem: fileSystem,
		classifier: classifier,
		loader:     loader,
	}
}

func (h *CheckCommandHandler) Handle(ctx context.Context, paths []string) error {
	missing := 0
	for i, path := range paths {
		if i > 0 {
			fmt.Fprintln(output.Stdout)
		}
		verdict := h.classifier.Classify(path)
		fmt.Fprintln(output.Stdout, output.Bold(verdict.Path))
		output.PrintField("access", verdict.Describe())
		if !verdict.Exists {
			missing++
			continue
		}
		output.PrintField("directory", strconv.FormatBool(verdict.IsDirectory))
		output.PrintField("readable", strconv.FormatBool(verdict.Readable))
		output.PrintField("writable", strconv.FormatBool(verdict.Writable))
		output.PrintField("requires elevation", strconv.FormatBool(verdict.RequiresElevation))
		output.PrintField("reason", verdict.Reason.String())
		if verdict.IsDirectory {
			continue
		}
		info, err := h.fileSystem.Stat(verdict.Path)
		if err != nil {
			continue
		}
		output.PrintField("size", output.Size(info.Size()))
		output.PrintField("load", h.loadMode(info.Size()))
		if verdict.Readable && info.Size() <= h.loader.Limits().MaxFileSize {
			output.PrintField("text", h.checkText(ctx, verdict.Path, info.Size()))
		}
	}

	if missing > 0 {
		return fmt.Errorf("%d %s not exist", missing, output.Plural(missing, "path does", "paths do"))
	}
	return nil
}

func (h *CheckCommandHandler) loadMode(size int64) string {
	limits := h.loader.Limits()
	switch {
	case size > limits.MaxFileSize:
		return fmt.Sprintf("rejected, above %s", output.Size(limits.MaxFileSize))
	case h.loader.IsLarge(size):
		chunks := (size + limits.ChunkSize - 1) / limits.ChunkSize
		return fmt.Sprintf("chunked, %d %s of %s", chunks, output.Plural(int(chunks), "chunk", "chunks"), output.Size(limits.ChunkSize))
	default:
		return "in one step"
	}
}

// checkText loads the file the way the editor would and reports whether it decodes.
func (h *CheckCommandHandler) checkText(ctx context.Context, path string, size int64) string {
	var content []byte
	var err error
	if h.loader.IsLarge(size) {
		state := domain.NewSessionState(filepath.Dir(path), false)
		var session *domain.LoadSession
		session, err = h.loader.BeginLoad(state, path)
		if err == nil {
			err = h.loader.Drive(ctx, state, session, nil)
		}
		content, _ = state.Content()
	} else {
		content, _, err = h.loader.LoadSync(path)
	}

	var encodingErr *domain.EncodingError
	switch {
	case errors.As(err, &encodingErr):
		return fmt.Sprintf("not valid UTF-8 near byte %d", encodingErr.Offset)
	case errors.Is(err, domain.ErrLoadCancelled):
		return "not checked, interrupted"
	case err != nil:
		return err.Error()
	}
	lines := bytes.Count(content, []byte("\n"))
	if len(content) > 0 && content[len(content)-1] != '\n' {
		lines++
	}
	return fmt.Sprintf("valid, %d %s", lines, output.Plural(lines, "line", "lines"))
}
