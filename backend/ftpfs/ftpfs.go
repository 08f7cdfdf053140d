// Package ftpfs implements the ferry.FSBackend contract over FTP. The
// protocol serializes transfers on the control connection, so a mutex guards
// every operation; concurrent callers queue rather than corrupt the session.
package ftpfs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/ferryfs/ferry"
)

// Compile-time interface check.
var _ ferry.FSBackend = (*Backend)(nil)

// Backend talks to one FTP server over a single control connection.
type Backend struct {
	mu   sync.Mutex
	conn *ftp.ServerConn
}

// Opts configures an FTP connection.
type Opts struct {
	User     string // empty = "anonymous"
	Password string
	Timeout  time.Duration // dial timeout; 0 = library default
}

// Connect dials addr (host:port) and logs in. The caller must call
// Disconnect when done.
func Connect(ctx context.Context, addr string, opts Opts) (*Backend, error) {
	dialOpts := []ftp.DialOption{ftp.DialWithContext(ctx)}
	if opts.Timeout > 0 {
		dialOpts = append(dialOpts, ftp.DialWithTimeout(opts.Timeout))
	}
	conn, err := ftp.Dial(addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("ftp dial %s: %w", addr, err)
	}

	user := opts.User
	if user == "" {
		user = "anonymous"
	}
	if err := conn.Login(user, opts.Password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("ftp login %s@%s: %w", user, addr, err)
	}
	return &Backend{conn: conn}, nil
}

// Disconnect sends QUIT and closes the control connection.
func (b *Backend) Disconnect(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn.Quit()
}

// statEntry resolves path to its directory entry. MLST is tried first; on
// servers without it the parent listing is searched instead. Callers hold mu.
func (b *Backend) statEntry(p string) (*ftp.Entry, error) {
	if p == "/" {
		return &ftp.Entry{Name: "/", Type: ftp.EntryTypeFolder}, nil
	}

	if entry, err := b.conn.GetEntry(p); err == nil {
		entry.Name = path.Base(p)
		return entry, nil
	}

	entries, err := b.conn.List(path.Dir(p))
	if err != nil {
		return nil, &ferry.NonexistentError{Path: p}
	}
	name := path.Base(p)
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, &ferry.NonexistentError{Path: p}
}

func (b *Backend) Exists(_ context.Context, path string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.statEntry(path); err != nil {
		if ferry.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (b *Backend) FileType(_ context.Context, path string) (ferry.FileType, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entry, err := b.statEntry(path)
	if err != nil {
		return ferry.TypeUnknown, err
	}
	return typeFromEntry(entry.Type), nil
}

func (b *Backend) RetrieveFiles(_ context.Context, paths []string) ([]ferry.File, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	files := make([]ferry.File, 0, len(paths))
	for _, p := range paths {
		entry, err := b.statEntry(p)
		if err != nil {
			return nil, err
		}
		f, err := entryToFile(p, entry)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (b *Backend) ReadFileContent(_ context.Context, path string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.readAll(path)
}

// readAll fetches the whole file. Callers hold mu.
func (b *Backend) readAll(path string) ([]byte, error) {
	resp, err := b.conn.Retr(path)
	if err != nil {
		return nil, fmt.Errorf("ftp retr %s: %w", path, err)
	}
	data, err := io.ReadAll(resp)
	if cerr := resp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *Backend) ReadDir(_ context.Context, dir string) ([]ferry.File, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, err := b.conn.List(dir)
	if err != nil {
		return nil, fmt.Errorf("ftp list %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	files := make([]ferry.File, 0, len(entries))
	for _, e := range entries {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		f, err := entryToFile(path.Join(dir, e.Name), e)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func (b *Backend) CreateFile(_ context.Context, path string, overwrite bool, contents []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// STOR truncates unconditionally, so occupancy is checked up front.
	if !overwrite {
		if _, err := b.statEntry(path); err == nil {
			return &ferry.AlreadyExistsError{Path: path}
		}
	}
	if err := b.conn.Stor(path, bytes.NewReader(contents)); err != nil {
		return fmt.Errorf("ftp stor %s: %w", path, err)
	}
	return nil
}

func (b *Backend) CreateDir(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.statEntry(path); err == nil {
		return &ferry.AlreadyExistsError{Path: path}
	}
	if err := b.conn.MakeDir(path); err != nil {
		return fmt.Errorf("ftp mkd %s: %w", path, err)
	}
	return nil
}

func (b *Backend) RenameFile(ctx context.Context, p, newName string, overwrite bool) error {
	return b.MoveFile(ctx, p, path.Join(path.Dir(p), newName), overwrite)
}

func (b *Backend) MoveFile(_ context.Context, from, to string, overwrite bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.statEntry(to); err == nil {
		if !overwrite {
			return &ferry.AlreadyExistsError{Path: to}
		}
		if err := b.conn.Delete(to); err != nil {
			return fmt.Errorf("ftp dele %s: %w", to, err)
		}
	}
	if err := b.conn.Rename(from, to); err != nil {
		return fmt.Errorf("ftp rename %s: %w", from, err)
	}
	return nil
}

// CopyFile duplicates a remote file by pulling it through this client and
// storing it back; FTP has no server-side copy.
func (b *Backend) CopyFile(_ context.Context, from, to string, overwrite bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !overwrite {
		if _, err := b.statEntry(to); err == nil {
			return &ferry.AlreadyExistsError{Path: to}
		}
	}
	data, err := b.readAll(from)
	if err != nil {
		return err
	}
	if err := b.conn.Stor(to, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("ftp stor %s: %w", to, err)
	}
	return nil
}

func (b *Backend) RemoveFile(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, err := b.statEntry(path)
	if err != nil {
		return err
	}
	if entry.Type == ftp.EntryTypeFolder {
		return fmt.Errorf("remove %s: is a directory", path)
	}
	if err := b.conn.Delete(path); err != nil {
		return fmt.Errorf("ftp dele %s: %w", path, err)
	}
	return nil
}

func (b *Backend) RemoveDir(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, err := b.statEntry(path)
	if err != nil {
		return err
	}
	if entry.Type != ftp.EntryTypeFolder {
		return fmt.Errorf("rmd %s: not a directory", path)
	}
	if err := b.conn.RemoveDir(path); err != nil {
		return fmt.Errorf("ftp rmd %s: %w", path, err)
	}
	return nil
}

// Trash is unsupported: FTP exposes no trash convention.
func (b *Backend) Trash(context.Context, []string) error {
	return &ferry.UnsupportedError{Op: "trash", Backend: "FTP"}
}

// SetUnixPermissions is unsupported: chmod is not part of the FTP protocol.
func (b *Backend) SetUnixPermissions(context.Context, string, uint32) error {
	return &ferry.UnsupportedError{Op: "set permissions", Backend: "FTP"}
}
