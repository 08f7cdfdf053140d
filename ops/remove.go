package ops

import (
	"context"

	"github.com/ferryfs/ferry"
)

// RemoveAll recursively deletes the files and directories rooted at each
// given path, leaving no empty shells behind. Non-directory entries are
// removed as they are discovered during a breadth-first descent; every
// visited directory is recorded and removed afterwards in reverse discovery
// order, so a directory is never deleted before its descendants.
func RemoveAll(ctx context.Context, b ferry.FSBackend, paths []string) error {
	var dirs []string

	for _, path := range paths {
		t, err := b.FileType(ctx, path)
		if err != nil {
			return err
		}
		if t == ferry.TypeDir {
			dirs = append(dirs, path)
			continue
		}
		if err := b.RemoveFile(ctx, path); err != nil {
			return err
		}
	}

	var visited []string
	for len(dirs) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		var next []string
		for _, dir := range dirs {
			entries, err := b.ReadDir(ctx, dir)
			if err != nil {
				return err
			}
			for _, f := range entries {
				if f.Metadata.Type == ferry.TypeDir {
					next = append(next, f.Path)
				} else if err := b.RemoveFile(ctx, f.Path); err != nil {
					return err
				}
			}
			visited = append(visited, dir)
		}
		dirs = next
	}

	for i := len(visited) - 1; i >= 0; i-- {
		if err := b.RemoveDir(ctx, visited[i]); err != nil {
			return err
		}
	}

	return nil
}
