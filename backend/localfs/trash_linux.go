//go:build linux

package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ferryfs/ferry"
)

// Trash moves each path into the XDG trash ($XDG_DATA_HOME/Trash, falling
// back to ~/.local/share/Trash), writing the .trashinfo record the desktop
// environment needs to restore or expire the entry. Name collisions inside
// the trash are resolved with a random suffix.
func (b *Backend) Trash(_ context.Context, paths []string) error {
	filesDir, infoDir, err := trashDirs()
	if err != nil {
		return &ferry.TrashError{Path: "", Err: err}
	}

	for _, path := range paths {
		if err := trashOne(path, filesDir, infoDir); err != nil {
			return &ferry.TrashError{Path: path, Err: err}
		}
	}
	return nil
}

func trashDirs() (filesDir, infoDir string, err error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	trash := filepath.Join(dataHome, "Trash")
	filesDir = filepath.Join(trash, "files")
	infoDir = filepath.Join(trash, "info")
	if err := os.MkdirAll(filesDir, 0o700); err != nil {
		return "", "", err
	}
	if err := os.MkdirAll(infoDir, 0o700); err != nil {
		return "", "", err
	}
	return filesDir, infoDir, nil
}

func trashOne(path, filesDir, infoDir string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(abs); err != nil {
		return err
	}

	name := trashName(filesDir, filepath.Base(abs))

	info := fmt.Sprintf(
		"[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		abs, time.Now().Format("2006-01-02T15:04:05"),
	)
	infoPath := filepath.Join(infoDir, name+".trashinfo")
	if err := os.WriteFile(infoPath, []byte(info), 0o600); err != nil {
		return err
	}

	if err := os.Rename(abs, filepath.Join(filesDir, name)); err != nil {
		// Roll back the orphaned info record.
		_ = os.Remove(infoPath)
		return err
	}
	return nil
}

// trashName returns base, or base with a random suffix when the trash
// already holds an entry of that name.
func trashName(filesDir, base string) string {
	if _, err := os.Lstat(filepath.Join(filesDir, base)); os.IsNotExist(err) {
		return base
	}
	return base + "." + uuid.NewString()[:8]
}
