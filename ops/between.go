package ops

import (
	"context"

	"github.com/ferryfs/ferry"
)

// CopyBetween recursively copies every path in from on the src backend into
// the existing directory to on the dst backend. The two backends are fully
// independent; a single file transfer reads the whole content from src and
// writes it to dst in one buffered step (no streaming), which bounds
// practical use to files the host can hold in memory.
func CopyBetween(ctx context.Context, src, dst ferry.FSBackend, from []string, to string) error {
	t := &transfer{src: src, dst: dst, leafFn: copyBetween(src, dst)}
	return t.run(ctx, from, to)
}

// MoveBetween is CopyBetween followed by removal of the sources; each source
// file is removed after its content has been written successfully, and
// emptied source directories are removed in reverse discovery order.
func MoveBetween(ctx context.Context, src, dst ferry.FSBackend, from []string, to string) error {
	t := &transfer{src: src, dst: dst, leafFn: moveBetween(src, dst), move: true}
	return t.run(ctx, from, to)
}

// CopyBetweenWithProgress is CopyBetween with byte/file accounting and a
// caller-supplied conflict handler.
func CopyBetweenWithProgress(ctx context.Context, src, dst ferry.FSBackend, from []string, to string, handler ProgressFunc) error {
	t := &transfer{src: src, dst: dst, leafFn: copyBetween(src, dst), progress: handler}
	return t.run(ctx, from, to)
}

// MoveBetweenWithProgress is MoveBetween with byte/file accounting and a
// caller-supplied conflict handler.
func MoveBetweenWithProgress(ctx context.Context, src, dst ferry.FSBackend, from []string, to string, handler ProgressFunc) error {
	t := &transfer{src: src, dst: dst, leafFn: moveBetween(src, dst), move: true, progress: handler}
	return t.run(ctx, from, to)
}

func copyBetween(src, dst ferry.FSBackend) transferFunc {
	return func(ctx context.Context, from, to string, overwrite bool) error {
		contents, err := src.ReadFileContent(ctx, from)
		if err != nil {
			return err
		}
		return dst.CreateFile(ctx, to, overwrite, contents)
	}
}

func moveBetween(src, dst ferry.FSBackend) transferFunc {
	copyFn := copyBetween(src, dst)
	return func(ctx context.Context, from, to string, overwrite bool) error {
		if err := copyFn(ctx, from, to, overwrite); err != nil {
			return err
		}
		return src.RemoveFile(ctx, from)
	}
}
