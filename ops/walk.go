package ops

import (
	"context"

	"github.com/ferryfs/ferry"
	"github.com/ferryfs/ferry/internal/pathutil"
)

// transferFunc carries a single leaf entry (file or symlink) from one path
// to another. The same signature covers single-backend moves and copies as
// well as the buffered read-then-write used between two backends.
type transferFunc func(ctx context.Context, from, to string, overwrite bool) error

// transfer drives the shared traversal behind every copy/move variant:
// leaves at the top level go straight into the destination root, directories
// are queued with their relative parent path and expanded layer by layer.
type transfer struct {
	src      ferry.FSBackend // type queries, listings, reads
	dst      ferry.FSBackend // existence check, directory creation, writes
	leafFn   transferFunc
	move     bool         // remove source directories once the tree is across
	progress ProgressFunc // nil for the fail-fast variants
	prog     TransitProgress
}

// queuedDir pairs a source directory with the parent path accumulated so
// far relative to the lowest directory of the originating input path.
type queuedDir struct {
	path    string
	parents string
}

func (t *transfer) run(ctx context.Context, from []string, to string) error {
	ok, err := t.dst.Exists(ctx, to)
	if err != nil {
		return err
	}
	if !ok {
		return &ferry.NonexistentError{Path: to}
	}

	if t.progress != nil {
		bytes, files, err := totalStats(ctx, t.src, from)
		if err != nil {
			return err
		}
		t.prog.TotalBytes = bytes
		t.prog.TotalFiles = files
	}

	var queue []queuedDir

	roots, err := t.src.RetrieveFiles(ctx, from)
	if err != nil {
		return err
	}
	for _, f := range roots {
		switch f.Metadata.Type {
		case ferry.TypeFile, ferry.TypeSymlink:
			aborted, err := t.leaf(ctx, f, to+"/"+f.Name)
			if err != nil {
				return err
			}
			if aborted {
				return nil
			}
		case ferry.TypeDir:
			queue = append(queue, queuedDir{path: f.Path, parents: "/"})
		default:
			return &ferry.FileTypeError{Type: f.Metadata.Type}
		}
	}

	var removeOrder []string
	for len(queue) > 0 {
		var next []queuedDir
		for _, dir := range queue {
			if err := ctx.Err(); err != nil {
				return err
			}

			name := pathutil.Basename(dir.path)
			destDir := to + dir.parents + name

			// A directory already present at the destination is reused.
			if err := t.dst.CreateDir(ctx, destDir); err != nil && !ferry.IsAlreadyExists(err) {
				return err
			}

			children, err := t.src.ReadDir(ctx, dir.path)
			if err != nil {
				return err
			}
			for _, f := range children {
				switch f.Metadata.Type {
				case ferry.TypeFile, ferry.TypeSymlink:
					aborted, err := t.leaf(ctx, f, destDir+"/"+f.Name)
					if err != nil {
						return err
					}
					if aborted {
						return nil
					}
				case ferry.TypeDir:
					next = append(next, queuedDir{
						path:    f.Path,
						parents: dir.parents + name + "/",
					})
				default:
					return &ferry.FileTypeError{Type: f.Metadata.Type}
				}
			}

			if t.move {
				removeOrder = append(removeOrder, dir.path)
			}
		}
		queue = next
	}

	// Source directories have emptied out by now; children before parents.
	for i := len(removeOrder) - 1; i >= 0; i-- {
		if err := t.src.RemoveDir(ctx, removeOrder[i]); err != nil {
			return err
		}
	}

	return nil
}

// leaf transfers a single file or symlink. Without a progress handler the
// first error is fatal; with one, the error is classified and routed through
// the conflict protocol. The returned bool reports an Abort decision.
func (t *transfer) leaf(ctx context.Context, f ferry.File, dest string) (aborted bool, err error) {
	attemptErr := t.leafFn(ctx, f.Path, dest, false)
	if t.progress == nil {
		return false, attemptErr
	}
	return t.notify(ctx, f, dest, attemptErr)
}
