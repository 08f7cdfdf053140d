// Package sftpfs implements the ferry.FSBackend contract over SFTP. One
// backend owns one SSH connection plus one SFTP session on top of it.
package sftpfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sort"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"github.com/ferryfs/ferry"
)

// Compile-time interface check.
var _ ferry.FSBackend = (*Backend)(nil)

// Backend talks to a remote host over SFTP. Paths are absolute remote paths
// with forward slashes.
type Backend struct {
	ssh    *ssh.Client
	client *sftp.Client
}

// Connect dials host over SSH and opens an SFTP session on the connection.
// The caller must call Disconnect when done.
func Connect(ctx context.Context, host string, opts DialOpts) (*Backend, error) {
	sshClient, err := dialSSH(ctx, host, opts)
	if err != nil {
		return nil, err
	}
	client, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, fmt.Errorf("sftp session: %w", err)
	}
	return &Backend{ssh: sshClient, client: client}, nil
}

// Disconnect closes the SFTP session and the SSH connection beneath it.
func (b *Backend) Disconnect(context.Context) error {
	err := b.client.Close()
	if sshErr := b.ssh.Close(); sshErr != nil && err == nil {
		err = sshErr
	}
	return err
}

func (b *Backend) Exists(_ context.Context, path string) (bool, error) {
	if _, err := b.client.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (b *Backend) FileType(_ context.Context, path string) (ferry.FileType, error) {
	info, err := b.client.Lstat(path)
	if err != nil {
		return ferry.TypeUnknown, mapSFTPErr(path, err)
	}
	return ferry.FileTypeFromMode(info.Mode()), nil
}

func (b *Backend) RetrieveFiles(_ context.Context, paths []string) ([]ferry.File, error) {
	files := make([]ferry.File, 0, len(paths))
	for _, p := range paths {
		info, err := b.client.Lstat(p)
		if err != nil {
			return nil, mapSFTPErr(p, err)
		}
		f, err := ferry.NewFile(p, metadataFromInfo(info))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (b *Backend) ReadFileContent(_ context.Context, path string) ([]byte, error) {
	f, err := b.client.Open(path)
	if err != nil {
		return nil, mapSFTPErr(path, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (b *Backend) ReadDir(_ context.Context, dir string) ([]ferry.File, error) {
	infos, err := b.client.ReadDir(dir)
	if err != nil {
		return nil, mapSFTPErr(dir, err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	files := make([]ferry.File, 0, len(infos))
	for _, info := range infos {
		f, err := ferry.NewFile(path.Join(dir, info.Name()), metadataFromInfo(info))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (b *Backend) CreateFile(_ context.Context, path string, overwrite bool, contents []byte) error {
	// The SFTP open flags alone cannot report "exists" distinctly on every
	// server, so the occupancy check happens up front.
	if !overwrite {
		if _, err := b.client.Lstat(path); err == nil {
			return &ferry.AlreadyExistsError{Path: path}
		}
	}

	f, err := b.client.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return mapSFTPErr(path, err)
	}
	if _, err := f.Write(contents); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (b *Backend) CreateDir(_ context.Context, path string) error {
	if _, err := b.client.Lstat(path); err == nil {
		return &ferry.AlreadyExistsError{Path: path}
	}
	if err := b.client.Mkdir(path); err != nil {
		return mapSFTPErr(path, err)
	}
	return nil
}

func (b *Backend) RenameFile(ctx context.Context, p, newName string, overwrite bool) error {
	return b.MoveFile(ctx, p, path.Join(path.Dir(p), newName), overwrite)
}

func (b *Backend) MoveFile(_ context.Context, from, to string, overwrite bool) error {
	if _, err := b.client.Lstat(to); err == nil {
		if !overwrite {
			return &ferry.AlreadyExistsError{Path: to}
		}
		// SFTP rename fails if the target exists; remove first.
		if err := b.client.Remove(to); err != nil {
			return err
		}
	}
	if err := b.client.Rename(from, to); err != nil {
		return mapSFTPErr(from, err)
	}
	return nil
}

// CopyFile duplicates a remote file on the same host by streaming it through
// this client; the bytes make a round trip, SFTP has no server-side copy.
func (b *Backend) CopyFile(_ context.Context, from, to string, overwrite bool) error {
	info, err := b.client.Lstat(from)
	if err != nil {
		return mapSFTPErr(from, err)
	}

	if _, err := b.client.Lstat(to); err == nil {
		if !overwrite {
			return &ferry.AlreadyExistsError{Path: to}
		}
		if err := b.client.Remove(to); err != nil {
			return err
		}
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := b.client.ReadLink(from)
		if err != nil {
			return err
		}
		return b.client.Symlink(target, to)
	}

	src, err := b.client.Open(from)
	if err != nil {
		return mapSFTPErr(from, err)
	}
	defer src.Close()

	dst, err := b.client.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return mapSFTPErr(to, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	return b.client.Chmod(to, info.Mode().Perm())
}

func (b *Backend) RemoveFile(_ context.Context, path string) error {
	info, err := b.client.Lstat(path)
	if err != nil {
		return mapSFTPErr(path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("remove %s: is a directory", path)
	}
	return b.client.Remove(path)
}

func (b *Backend) RemoveDir(_ context.Context, path string) error {
	info, err := b.client.Lstat(path)
	if err != nil {
		return mapSFTPErr(path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("rmdir %s: not a directory", path)
	}
	return b.client.RemoveDirectory(path)
}

// Trash is unsupported: SFTP exposes no trash convention.
func (b *Backend) Trash(context.Context, []string) error {
	return &ferry.UnsupportedError{Op: "trash", Backend: "SFTP"}
}

func (b *Backend) SetUnixPermissions(_ context.Context, path string, mode uint32) error {
	if err := b.client.Chmod(path, os.FileMode(mode&0o777)); err != nil {
		return mapSFTPErr(path, err)
	}
	return nil
}

func mapSFTPErr(path string, err error) error {
	if os.IsNotExist(err) {
		return &ferry.NonexistentError{Path: path}
	}
	if os.IsExist(err) {
		return &ferry.AlreadyExistsError{Path: path}
	}
	return err
}
