// Package localfs implements the ferry.FSBackend contract against the host
// filesystem. Single-file copies go through internal/platform, which picks
// the fastest copy syscall the kernel offers.
package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ferryfs/ferry"
	"github.com/ferryfs/ferry/internal/pathutil"
	"github.com/ferryfs/ferry/internal/platform"
)

// Compile-time interface check.
var _ ferry.FSBackend = (*Backend)(nil)

// Backend operates on absolute host paths. It carries no connection state;
// the zero value is usable.
type Backend struct{}

// New returns a backend for the host filesystem.
func New() *Backend {
	return &Backend{}
}

// Disconnect is a no-op for the host filesystem.
func (b *Backend) Disconnect(context.Context) error { return nil }

func (b *Backend) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (b *Backend) FileType(_ context.Context, path string) (ferry.FileType, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return ferry.TypeUnknown, mapPathErr(path, err)
	}
	return ferry.FileTypeFromMode(info.Mode()), nil
}

func (b *Backend) RetrieveFiles(_ context.Context, paths []string) ([]ferry.File, error) {
	files := make([]ferry.File, 0, len(paths))
	for _, path := range paths {
		info, err := os.Lstat(path)
		if err != nil {
			return nil, mapPathErr(path, err)
		}
		f, err := ferry.NewFile(path, metadataFromInfo(info))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (b *Backend) ReadFileContent(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mapPathErr(path, err)
	}
	return data, nil
}

func (b *Backend) ReadDir(_ context.Context, path string) ([]ferry.File, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, mapPathErr(path, err)
	}

	files := make([]ferry.File, 0, len(entries))
	for _, d := range entries {
		info, err := d.Info()
		if err != nil {
			// Entry vanished between listing and stat.
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		f, err := ferry.NewFile(filepath.Join(path, d.Name()), metadataFromInfo(info))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (b *Backend) CreateFile(_ context.Context, path string, overwrite bool, contents []byte) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return mapPathErr(path, err)
	}
	if _, err := f.Write(contents); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (b *Backend) CreateDir(_ context.Context, path string) error {
	if err := os.Mkdir(path, 0o755); err != nil {
		return mapPathErr(path, err)
	}
	return nil
}

func (b *Backend) RenameFile(ctx context.Context, path, newName string, overwrite bool) error {
	return b.MoveFile(ctx, path, pathutil.Dirname(path)+"/"+newName, overwrite)
}

func (b *Backend) MoveFile(_ context.Context, from, to string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Lstat(to); err == nil {
			return &ferry.AlreadyExistsError{Path: to}
		}
	}
	if err := os.Rename(from, to); err != nil {
		return mapPathErr(from, err)
	}
	return nil
}

func (b *Backend) CopyFile(_ context.Context, from, to string, overwrite bool) error {
	info, err := os.Lstat(from)
	if err != nil {
		return mapPathErr(from, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return copySymlink(from, to, overwrite)
	}
	if !info.Mode().IsRegular() {
		return &ferry.FileTypeError{Type: ferry.FileTypeFromMode(info.Mode())}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	dst, err := os.OpenFile(to, flags, info.Mode().Perm())
	if err != nil {
		return mapPathErr(to, err)
	}

	result, err := platform.CopyFile(platform.CopyFileParams{
		DstFd:   dst,
		SrcPath: from,
		SrcSize: info.Size(),
	})
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("copy %s (%s): %w", from, result.Method, err)
	}
	return nil
}

func copySymlink(from, to string, overwrite bool) error {
	target, err := os.Readlink(from)
	if err != nil {
		return err
	}
	if overwrite {
		_ = os.Remove(to)
	} else if _, err := os.Lstat(to); err == nil {
		return &ferry.AlreadyExistsError{Path: to}
	}
	return os.Symlink(target, to)
}

func (b *Backend) RemoveFile(_ context.Context, path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return mapPathErr(path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("remove %s: is a directory", path)
	}
	return os.Remove(path)
}

// RemoveDir deletes a single empty directory; recursion belongs to the
// engine, which deletes children first.
func (b *Backend) RemoveDir(_ context.Context, path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return mapPathErr(path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("rmdir %s: not a directory", path)
	}
	return os.Remove(path)
}

func (b *Backend) SetUnixPermissions(_ context.Context, path string, mode uint32) error {
	if err := os.Chmod(path, os.FileMode(mode&0o777)); err != nil {
		return mapPathErr(path, err)
	}
	return nil
}

// mapPathErr converts os-level errors into the backend taxonomy so callers
// can match with the ferry predicates.
func mapPathErr(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return &ferry.NonexistentError{Path: path}
	case os.IsExist(err):
		return &ferry.AlreadyExistsError{Path: path}
	default:
		return err
	}
}
