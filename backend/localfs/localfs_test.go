package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferryfs/ferry"
)

func TestCreateAndReadFile(t *testing.T) {
	ctx := context.Background()
	b := New()
	path := filepath.Join(t.TempDir(), "hello.txt")

	require.NoError(t, b.CreateFile(ctx, path, false, []byte("hi")))

	data, err := b.ReadFileContent(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), data)

	err = b.CreateFile(ctx, path, false, []byte("other"))
	assert.True(t, ferry.IsAlreadyExists(err))

	require.NoError(t, b.CreateFile(ctx, path, true, []byte("other")))
	data, err = b.ReadFileContent(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("other"), data)
}

func TestRetrieveFilesMetadata(t *testing.T) {
	ctx := context.Background()
	b := New()
	dir := t.TempDir()
	path := filepath.Join(dir, "report.PDF")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o640))

	files, err := b.RetrieveFiles(ctx, []string{path})
	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	assert.Equal(t, "report.PDF", f.Name)
	assert.Equal(t, "pdf", f.Extension)
	assert.Equal(t, ferry.TypeFile, f.Metadata.Type)
	require.NotNil(t, f.Metadata.Size)
	assert.Equal(t, uint64(5), *f.Metadata.Size)
	require.NotNil(t, f.Metadata.Modified)
	require.NotNil(t, f.Metadata.Permissions)
	assert.Equal(t, uint32(0o640), f.Metadata.Permissions.Mode())
	assert.False(t, f.Metadata.ReadOnly)

	_, err = b.RetrieveFiles(ctx, []string{filepath.Join(dir, "absent")})
	assert.True(t, ferry.IsNotExist(err))
}

func TestReadDir(t *testing.T) {
	ctx := context.Background()
	b := New()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), []byte("bb"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("a"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	entries, err := b.ReadDir(ctx, dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, filepath.Join(dir, "a"), entries[0].Path)
	assert.Equal(t, ferry.TypeDir, entries[2].Metadata.Type)
}

func TestCopyFile(t *testing.T) {
	ctx := context.Background()
	b := New()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o600))

	require.NoError(t, b.CopyFile(ctx, src, dst, false))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	err = b.CopyFile(ctx, src, dst, false)
	assert.True(t, ferry.IsAlreadyExists(err))

	require.NoError(t, os.WriteFile(src, []byte("changed"), 0o600))
	require.NoError(t, b.CopyFile(ctx, src, dst, true))
	data, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("changed"), data)
}

func TestCopySymlink(t *testing.T) {
	ctx := context.Background()
	b := New()
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	copied := filepath.Join(dir, "copied")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, b.CopyFile(ctx, link, copied, false))

	got, err := os.Readlink(copied)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	ft, err := b.FileType(ctx, copied)
	require.NoError(t, err)
	assert.Equal(t, ferry.TypeSymlink, ft)
}

func TestMoveAndRename(t *testing.T) {
	ctx := context.Background()
	b := New()
	dir := t.TempDir()
	src := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(src, []byte("m"), 0o644))

	require.NoError(t, b.RenameFile(ctx, src, "g", false))
	renamed := filepath.Join(dir, "g")
	ok, err := b.Exists(ctx, src)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	moved := filepath.Join(dir, "sub", "g")
	require.NoError(t, b.MoveFile(ctx, renamed, moved, false))

	data, err := os.ReadFile(moved)
	require.NoError(t, err)
	assert.Equal(t, []byte("m"), data)

	require.NoError(t, os.WriteFile(renamed, []byte("again"), 0o644))
	err = b.MoveFile(ctx, renamed, moved, false)
	assert.True(t, ferry.IsAlreadyExists(err))
}

func TestRemoveSemantics(t *testing.T) {
	ctx := context.Background()
	b := New()
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	file := filepath.Join(sub, "f")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.Error(t, b.RemoveFile(ctx, sub))
	assert.Error(t, b.RemoveDir(ctx, sub)) // not empty
	assert.Error(t, b.RemoveDir(ctx, file))

	require.NoError(t, b.RemoveFile(ctx, file))
	require.NoError(t, b.RemoveDir(ctx, sub))

	ok, err := b.Exists(ctx, sub)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetUnixPermissions(t *testing.T) {
	ctx := context.Background()
	b := New()
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	require.NoError(t, b.SetUnixPermissions(ctx, path, 0o400))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o400), info.Mode().Perm())

	files, err := b.RetrieveFiles(ctx, []string{path})
	require.NoError(t, err)
	assert.True(t, files[0].Metadata.ReadOnly)
}

func TestCreateDir(t *testing.T) {
	ctx := context.Background()
	b := New()
	dir := t.TempDir()

	sub := filepath.Join(dir, "sub")
	require.NoError(t, b.CreateDir(ctx, sub))

	err := b.CreateDir(ctx, sub)
	assert.True(t, ferry.IsAlreadyExists(err))

	err = b.CreateDir(ctx, filepath.Join(dir, "missing", "deep"))
	assert.True(t, ferry.IsNotExist(err))
}
