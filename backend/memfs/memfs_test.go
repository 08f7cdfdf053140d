package memfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferryfs/ferry"
)

func TestCreateAndReadFile(t *testing.T) {
	ctx := context.Background()
	b := New()

	require.NoError(t, b.CreateFile(ctx, "/hello.txt", false, []byte("hi")))

	data, err := b.ReadFileContent(ctx, "/hello.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), data)

	ok, err := b.Exists(ctx, "/hello.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	ft, err := b.FileType(ctx, "/hello.txt")
	require.NoError(t, err)
	assert.Equal(t, ferry.TypeFile, ft)
}

func TestCreateFileOverwriteSemantics(t *testing.T) {
	ctx := context.Background()
	b := New()

	require.NoError(t, b.CreateFile(ctx, "/f", false, []byte("one")))

	err := b.CreateFile(ctx, "/f", false, []byte("two"))
	assert.True(t, ferry.IsAlreadyExists(err))

	// Contents are untouched after the refused write.
	data, err := b.ReadFileContent(ctx, "/f")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), data)

	require.NoError(t, b.CreateFile(ctx, "/f", true, []byte("two")))
	data, err = b.ReadFileContent(ctx, "/f")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)
}

func TestCreateDirRequiresParent(t *testing.T) {
	ctx := context.Background()
	b := New()

	err := b.CreateDir(ctx, "/a/b")
	assert.True(t, ferry.IsNotExist(err))

	require.NoError(t, b.CreateDir(ctx, "/a"))
	require.NoError(t, b.CreateDir(ctx, "/a/b"))

	err = b.CreateDir(ctx, "/a")
	assert.True(t, ferry.IsAlreadyExists(err))
}

func TestReadDirSortedWithMetadata(t *testing.T) {
	ctx := context.Background()
	b := New()

	require.NoError(t, b.CreateDir(ctx, "/d"))
	require.NoError(t, b.CreateFile(ctx, "/d/b.txt", false, []byte("bb")))
	require.NoError(t, b.CreateFile(ctx, "/d/a.txt", false, []byte("a")))
	require.NoError(t, b.CreateDir(ctx, "/d/sub"))

	entries, err := b.ReadDir(ctx, "/d")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "/d/a.txt", entries[0].Path)
	assert.Equal(t, "a.txt", entries[0].Name)
	assert.Equal(t, "txt", entries[0].Extension)
	require.NotNil(t, entries[0].Metadata.Size)
	assert.Equal(t, uint64(1), *entries[0].Metadata.Size)

	assert.Equal(t, ferry.TypeDir, entries[2].Metadata.Type)
	assert.Nil(t, entries[2].Metadata.Size)
}

func TestRenameMoveCopy(t *testing.T) {
	ctx := context.Background()
	b := New()

	require.NoError(t, b.CreateDir(ctx, "/d"))
	require.NoError(t, b.CreateFile(ctx, "/f", false, []byte("payload")))

	require.NoError(t, b.RenameFile(ctx, "/f", "g", false))
	ok, _ := b.Exists(ctx, "/f")
	assert.False(t, ok)

	require.NoError(t, b.MoveFile(ctx, "/g", "/d/g", false))
	ok, _ = b.Exists(ctx, "/g")
	assert.False(t, ok)

	require.NoError(t, b.CopyFile(ctx, "/d/g", "/d/h", false))
	src, err := b.ReadFileContent(ctx, "/d/g")
	require.NoError(t, err)
	dst, err := b.ReadFileContent(ctx, "/d/h")
	require.NoError(t, err)
	assert.Equal(t, src, dst)

	err = b.CopyFile(ctx, "/d/g", "/d/h", false)
	assert.True(t, ferry.IsAlreadyExists(err))
}

func TestRemoveDirNonRecursive(t *testing.T) {
	ctx := context.Background()
	b := New()

	require.NoError(t, b.CreateDir(ctx, "/d"))
	require.NoError(t, b.CreateFile(ctx, "/d/f", false, nil))

	assert.Error(t, b.RemoveDir(ctx, "/d"))

	require.NoError(t, b.RemoveFile(ctx, "/d/f"))
	require.NoError(t, b.RemoveDir(ctx, "/d"))
}

func TestRemoveFileRefusesDir(t *testing.T) {
	ctx := context.Background()
	b := New()
	require.NoError(t, b.CreateDir(ctx, "/d"))
	assert.Error(t, b.RemoveFile(ctx, "/d"))
}

func TestTrashUnsupported(t *testing.T) {
	b := New()
	err := b.Trash(context.Background(), []string{"/x"})
	assert.True(t, ferry.IsUnsupported(err))
}

func TestSetUnixPermissions(t *testing.T) {
	ctx := context.Background()
	b := New()
	require.NoError(t, b.CreateFile(ctx, "/f", false, nil))
	require.NoError(t, b.SetUnixPermissions(ctx, "/f", 0o400))

	files, err := b.RetrieveFiles(ctx, []string{"/f"})
	require.NoError(t, err)
	require.NotNil(t, files[0].Metadata.Permissions)
	assert.True(t, files[0].Metadata.ReadOnly)
	assert.Equal(t, uint32(0o400), files[0].Metadata.Permissions.Mode())
}

func TestMknodSpecialTypes(t *testing.T) {
	ctx := context.Background()
	b := New()
	require.NoError(t, b.Mknod("/sock", ferry.TypeSocket))

	ft, err := b.FileType(ctx, "/sock")
	require.NoError(t, err)
	assert.Equal(t, ferry.TypeSocket, ft)
}
