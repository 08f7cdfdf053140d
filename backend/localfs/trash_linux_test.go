//go:build linux

package localfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrashMovesIntoXDGStore(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	dir := t.TempDir()
	path := filepath.Join(dir, "doomed.txt")
	require.NoError(t, os.WriteFile(path, []byte("bye"), 0o644))

	b := New()
	require.NoError(t, b.Trash(context.Background(), []string{path}))

	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err))

	trashed := filepath.Join(dataHome, "Trash", "files", "doomed.txt")
	data, err := os.ReadFile(trashed)
	require.NoError(t, err)
	assert.Equal(t, []byte("bye"), data)

	info, err := os.ReadFile(filepath.Join(dataHome, "Trash", "info", "doomed.txt.trashinfo"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(info), "[Trash Info]\n"))
	assert.Contains(t, string(info), "Path="+path)
	assert.Contains(t, string(info), "DeletionDate=")
}

func TestTrashCollisionGetsSuffix(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	dir := t.TempDir()
	b := New()
	ctx := context.Background()

	first := filepath.Join(dir, "same")
	require.NoError(t, os.WriteFile(first, []byte("1"), 0o644))
	require.NoError(t, b.Trash(ctx, []string{first}))

	second := filepath.Join(dir, "same")
	require.NoError(t, os.WriteFile(second, []byte("2"), 0o644))
	require.NoError(t, b.Trash(ctx, []string{second}))

	entries, err := os.ReadDir(filepath.Join(dataHome, "Trash", "files"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestTrashMissingPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	b := New()
	err := b.Trash(context.Background(), []string{filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}
