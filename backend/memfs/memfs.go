// Package memfs provides an in-memory ferry.FSBackend. It backs the engine
// tests — every ops algorithm is exercised against it without touching disk
// or network — and doubles as a scratch filesystem for embedding callers.
package memfs

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ferryfs/ferry"
	"github.com/ferryfs/ferry/internal/pathutil"
)

// Compile-time interface check.
var _ ferry.FSBackend = (*Backend)(nil)

type node struct {
	typ      ferry.FileType
	contents []byte
	children map[string]*node
	mode     uint32
	modified time.Time
}

func (n *node) clone() *node {
	c := &node{
		typ:      n.typ,
		mode:     n.mode,
		modified: n.modified,
		contents: append([]byte(nil), n.contents...),
	}
	if n.children != nil {
		c.children = make(map[string]*node, len(n.children))
		for name, child := range n.children {
			c.children[name] = child.clone()
		}
	}
	return c
}

// Backend is a thread-safe in-memory filesystem tree rooted at "/".
type Backend struct {
	mu   sync.Mutex
	root *node
}

// New returns an empty backend containing only the root directory.
func New() *Backend {
	return &Backend{root: newDir()}
}

func newDir() *node {
	return &node{
		typ:      ferry.TypeDir,
		children: map[string]*node{},
		mode:     0o755,
		modified: time.Now(),
	}
}

func split(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// lookup resolves path to a node. Callers hold mu.
func (b *Backend) lookup(path string) (*node, error) {
	n := b.root
	for _, seg := range split(path) {
		child, ok := n.children[seg]
		if !ok {
			return nil, &ferry.NonexistentError{Path: path}
		}
		n = child
	}
	return n, nil
}

// parent resolves the directory containing path and the final name segment.
func (b *Backend) parent(path string) (*node, string, error) {
	segments := split(path)
	if len(segments) == 0 {
		return nil, "", ferry.ErrNoFileName
	}
	name := segments[len(segments)-1]
	dir := b.root
	for _, seg := range segments[:len(segments)-1] {
		child, ok := dir.children[seg]
		if !ok || child.typ != ferry.TypeDir {
			return nil, "", &ferry.NonexistentError{Path: pathutil.Dirname(path)}
		}
		dir = child
	}
	return dir, name, nil
}

func (b *Backend) fileAt(path string, n *node) (ferry.File, error) {
	md := ferry.Metadata{
		Type:     n.typ,
		ReadOnly: n.mode&0o200 == 0,
	}
	modified := n.modified
	md.Modified = &modified
	perms := ferry.PermissionsFromMode(n.mode)
	md.Permissions = &perms
	if n.typ == ferry.TypeFile {
		size := uint64(len(n.contents))
		md.Size = &size
	}
	return ferry.NewFile(path, md)
}

// Disconnect is a no-op; the tree lives as long as the Backend value.
func (b *Backend) Disconnect(context.Context) error { return nil }

func (b *Backend) Exists(_ context.Context, path string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.lookup(path)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (b *Backend) FileType(_ context.Context, path string) (ferry.FileType, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, err := b.lookup(path)
	if err != nil {
		return ferry.TypeUnknown, err
	}
	return n.typ, nil
}

func (b *Backend) RetrieveFiles(_ context.Context, paths []string) ([]ferry.File, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	files := make([]ferry.File, 0, len(paths))
	for _, path := range paths {
		n, err := b.lookup(path)
		if err != nil {
			return nil, err
		}
		f, err := b.fileAt(path, n)
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
	n, err := b.lookup(path)
	if err != nil {
		return nil, err
	}
	if n.typ == ferry.TypeDir {
		return nil, fmt.Errorf("read %s: is a directory", path)
	}
	return append([]byte(nil), n.contents...), nil
}

func (b *Backend) ReadDir(_ context.Context, path string) ([]ferry.File, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, err := b.lookup(path)
	if err != nil {
		return nil, err
	}
	if n.typ != ferry.TypeDir {
		return nil, fmt.Errorf("readdir %s: not a directory", path)
	}

	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)

	files := make([]ferry.File, 0, len(names))
	for _, name := range names {
		f, err := b.fileAt(strings.TrimSuffix(path, "/")+"/"+name, n.children[name])
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
	dir, name, err := b.parent(path)
	if err != nil {
		return err
	}
	if _, ok := dir.children[name]; ok && !overwrite {
		return &ferry.AlreadyExistsError{Path: path}
	}
	dir.children[name] = &node{
		typ:      ferry.TypeFile,
		contents: append([]byte(nil), contents...),
		mode:     0o644,
		modified: time.Now(),
	}
	return nil
}

func (b *Backend) CreateDir(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	dir, name, err := b.parent(path)
	if err != nil {
		return err
	}
	if _, ok := dir.children[name]; ok {
		return &ferry.AlreadyExistsError{Path: path}
	}
	dir.children[name] = newDir()
	return nil
}

func (b *Backend) RenameFile(_ context.Context, path, newName string, overwrite bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	dir, name, err := b.parent(path)
	if err != nil {
		return err
	}
	n, ok := dir.children[name]
	if !ok {
		return &ferry.NonexistentError{Path: path}
	}
	if _, occupied := dir.children[newName]; occupied && !overwrite {
		return &ferry.AlreadyExistsError{Path: pathutil.Dirname(path) + "/" + newName}
	}
	delete(dir.children, name)
	dir.children[newName] = n
	return nil
}

func (b *Backend) MoveFile(_ context.Context, from, to string, overwrite bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.relocate(from, to, overwrite, false)
}

func (b *Backend) CopyFile(_ context.Context, from, to string, overwrite bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.relocate(from, to, overwrite, true)
}

// relocate detaches (or clones) the node at from and attaches it at to.
// Callers hold mu.
func (b *Backend) relocate(from, to string, overwrite, keepSource bool) error {
	srcDir, srcName, err := b.parent(from)
	if err != nil {
		return err
	}
	n, ok := srcDir.children[srcName]
	if !ok {
		return &ferry.NonexistentError{Path: from}
	}

	dstDir, dstName, err := b.parent(to)
	if err != nil {
		return err
	}
	if _, occupied := dstDir.children[dstName]; occupied && !overwrite {
		return &ferry.AlreadyExistsError{Path: to}
	}

	if keepSource {
		dstDir.children[dstName] = n.clone()
	} else {
		delete(srcDir.children, srcName)
		dstDir.children[dstName] = n
	}
	return nil
}

func (b *Backend) RemoveFile(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	dir, name, err := b.parent(path)
	if err != nil {
		return err
	}
	n, ok := dir.children[name]
	if !ok {
		return &ferry.NonexistentError{Path: path}
	}
	if n.typ == ferry.TypeDir {
		return fmt.Errorf("remove %s: is a directory", path)
	}
	delete(dir.children, name)
	return nil
}

func (b *Backend) RemoveDir(_ context.Context, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	dir, name, err := b.parent(path)
	if err != nil {
		return err
	}
	n, ok := dir.children[name]
	if !ok {
		return &ferry.NonexistentError{Path: path}
	}
	if n.typ != ferry.TypeDir {
		return fmt.Errorf("rmdir %s: not a directory", path)
	}
	if len(n.children) > 0 {
		return fmt.Errorf("rmdir %s: directory not empty", path)
	}
	delete(dir.children, name)
	return nil
}

// Trash always fails: an in-memory tree has no recoverable trash store.
func (b *Backend) Trash(_ context.Context, paths []string) error {
	return &ferry.UnsupportedError{Op: "trash", Backend: "memfs"}
}

func (b *Backend) SetUnixPermissions(_ context.Context, path string, mode uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, err := b.lookup(path)
	if err != nil {
		return err
	}
	n.mode = mode & 0o777
	return nil
}

// Mknod plants an entry of an arbitrary type, including the special types
// no contract operation can create. Tests use it to exercise the engine's
// refusal paths.
func (b *Backend) Mknod(path string, typ ferry.FileType) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	dir, name, err := b.parent(path)
	if err != nil {
		return err
	}
	if _, ok := dir.children[name]; ok {
		return &ferry.AlreadyExistsError{Path: path}
	}
	n := &node{typ: typ, mode: 0o644, modified: time.Now()}
	if typ == ferry.TypeDir {
		n = newDir()
	}
	dir.children[name] = n
	return nil
}
