//go:build darwin

package localfs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ferryfs/ferry"
)

// Trash moves each path into the user's ~/.Trash. Finder's "Put Back"
// metadata is not written; restoring is manual.
func (b *Backend) Trash(_ context.Context, paths []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return &ferry.TrashError{Path: "", Err: err}
	}
	trash := filepath.Join(home, ".Trash")

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return &ferry.TrashError{Path: path, Err: err}
		}

		name := filepath.Base(abs)
		dest := filepath.Join(trash, name)
		if _, err := os.Lstat(dest); err == nil {
			dest = filepath.Join(trash, name+"."+uuid.NewString()[:8])
		}

		if err := os.Rename(abs, dest); err != nil {
			return &ferry.TrashError{Path: path, Err: err}
		}
	}
	return nil
}
