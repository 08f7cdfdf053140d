package ops

import (
	"context"

	"github.com/ferryfs/ferry"
)

// Copy recursively copies every path in from into the existing directory to,
// all on a single backend. A destination collision is a fatal error; use
// CopyWithProgress for caller-mediated conflict resolution.
func Copy(ctx context.Context, b ferry.FSBackend, from []string, to string) error {
	t := &transfer{src: b, dst: b, leafFn: backendCopy(b)}
	return t.run(ctx, from, to)
}

// Move is Copy followed by removal of the sources: leaves are moved
// individually and emptied source directories are removed in reverse
// discovery order once the whole tree has been transferred.
func Move(ctx context.Context, b ferry.FSBackend, from []string, to string) error {
	t := &transfer{src: b, dst: b, leafFn: backendMove(b), move: true}
	return t.run(ctx, from, to)
}

// CopyWithProgress is Copy with byte/file accounting and a caller-supplied
// conflict handler; see ProgressFunc for the resolution protocol.
func CopyWithProgress(ctx context.Context, b ferry.FSBackend, from []string, to string, handler ProgressFunc) error {
	t := &transfer{src: b, dst: b, leafFn: backendCopy(b), progress: handler}
	return t.run(ctx, from, to)
}

// MoveWithProgress is Move with byte/file accounting and a caller-supplied
// conflict handler.
func MoveWithProgress(ctx context.Context, b ferry.FSBackend, from []string, to string, handler ProgressFunc) error {
	t := &transfer{src: b, dst: b, leafFn: backendMove(b), move: true, progress: handler}
	return t.run(ctx, from, to)
}

func backendCopy(b ferry.FSBackend) transferFunc {
	return func(ctx context.Context, from, to string, overwrite bool) error {
		return b.CopyFile(ctx, from, to, overwrite)
	}
}

func backendMove(b ferry.FSBackend) transferFunc {
	return func(ctx context.Context, from, to string, overwrite bool) error {
		return b.MoveFile(ctx, from, to, overwrite)
	}
}
