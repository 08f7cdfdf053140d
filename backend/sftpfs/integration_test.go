//go:build integration

package sftpfs

import (
	"context"
	"os"
	"path"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferryfs/ferry"
	"github.com/ferryfs/ferry/ops"
)

// These tests run against a live SFTP server. Set FERRY_SFTP_HOST,
// FERRY_SFTP_USER, FERRY_SFTP_PASSWORD, and FERRY_SFTP_ROOT (a writable
// remote directory), then run with -tags integration.
func dialTestBackend(t *testing.T) (*Backend, string) {
	t.Helper()
	host := os.Getenv("FERRY_SFTP_HOST")
	if host == "" {
		t.Skip("FERRY_SFTP_HOST not set")
	}
	root := os.Getenv("FERRY_SFTP_ROOT")
	require.NotEmpty(t, root, "FERRY_SFTP_ROOT must be set")

	b, err := Connect(context.Background(), host, DialOpts{
		User:     os.Getenv("FERRY_SFTP_USER"),
		Password: os.Getenv("FERRY_SFTP_PASSWORD"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Disconnect(context.Background()) })

	// A fresh scratch directory per test run.
	scratch := path.Join(root, "ferry-test-"+uuid.NewString()[:8])
	require.NoError(t, b.CreateDir(context.Background(), scratch))
	t.Cleanup(func() { _ = ops.RemoveAll(context.Background(), b, []string{scratch}) })
	return b, scratch
}

func TestRemoteRoundTrip(t *testing.T) {
	ctx := context.Background()
	b, scratch := dialTestBackend(t)

	file := path.Join(scratch, "hello.txt")
	require.NoError(t, b.CreateFile(ctx, file, false, []byte("over the wire")))

	data, err := b.ReadFileContent(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, []byte("over the wire"), data)

	err = b.CreateFile(ctx, file, false, []byte("no"))
	assert.True(t, ferry.IsAlreadyExists(err))

	files, err := b.RetrieveFiles(ctx, []string{file})
	require.NoError(t, err)
	require.NotNil(t, files[0].Metadata.Size)
	assert.Equal(t, uint64(13), *files[0].Metadata.Size)
}

func TestRemoteTreeCopyAndRemove(t *testing.T) {
	ctx := context.Background()
	b, scratch := dialTestBackend(t)

	src := path.Join(scratch, "src")
	dst := path.Join(scratch, "dst")
	require.NoError(t, b.CreateDir(ctx, src))
	require.NoError(t, b.CreateDir(ctx, path.Join(src, "sub")))
	require.NoError(t, b.CreateFile(ctx, path.Join(src, "f1"), false, []byte("1234")))
	require.NoError(t, b.CreateFile(ctx, path.Join(src, "sub", "f2"), false, []byte("123456")))
	require.NoError(t, b.CreateDir(ctx, dst))

	total, err := ops.TotalSize(ctx, b, []string{src})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), total)

	require.NoError(t, ops.Copy(ctx, b, []string{src}, dst))
	data, err := b.ReadFileContent(ctx, path.Join(dst, "src", "sub", "f2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("123456"), data)

	require.NoError(t, ops.RemoveAll(ctx, b, []string{src}))
	ok, err := b.Exists(ctx, src)
	require.NoError(t, err)
	assert.False(t, ok)
}
