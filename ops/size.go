// Package ops implements the tree-level operations — recursive copy, move,
// delete, and size aggregation — on top of the ferry.FSBackend capability
// contract. Every operation works against any conforming backend or pair of
// backends; nothing here knows about a concrete storage provider.
package ops

import (
	"context"

	"github.com/ferryfs/ferry"
)

// TotalSize returns the combined size in bytes of every non-directory entry
// reachable from paths, expanding directories breadth-first. It fails fast
// on the first backend error; no partial sum is returned.
func TotalSize(ctx context.Context, b ferry.FSBackend, paths []string) (uint64, error) {
	bytes, _, err := totalStats(ctx, b, paths)
	return bytes, err
}

// totalStats is TotalSize plus a count of the non-directory entries seen.
// The progress-tracked transfers use the pair to seed TotalBytes/TotalFiles.
func totalStats(ctx context.Context, b ferry.FSBackend, paths []string) (bytes, files uint64, err error) {
	var dirs []string

	roots, err := b.RetrieveFiles(ctx, paths)
	if err != nil {
		return 0, 0, err
	}
	for _, f := range roots {
		if f.Metadata.Type == ferry.TypeDir {
			dirs = append(dirs, f.Path)
		} else {
			bytes += sizeOf(f)
			files++
		}
	}

	for len(dirs) > 0 {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}

		var next []string
		for _, dir := range dirs {
			entries, err := b.ReadDir(ctx, dir)
			if err != nil {
				return 0, 0, err
			}
			for _, f := range entries {
				if f.Metadata.Type == ferry.TypeDir {
					next = append(next, f.Path)
				} else {
					bytes += sizeOf(f)
					files++
				}
			}
		}
		dirs = next
	}

	return bytes, files, nil
}

func sizeOf(f ferry.File) uint64 {
	if f.Metadata.Size == nil {
		return 0
	}
	return *f.Metadata.Size
}
