//go:build integration

package ftpfs

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

// These tests run against a live FTP server. Set FERRY_FTP_ADDR (host:port),
// FERRY_FTP_USER, FERRY_FTP_PASSWORD, and FERRY_FTP_ROOT (a writable remote
// directory), then run with -tags integration.
func dialTestBackend(t *testing.T) (*Backend, string) {
	t.Helper()
	addr := os.Getenv("FERRY_FTP_ADDR")
	if addr == "" {
		t.Skip("FERRY_FTP_ADDR not set")
	}
	root := os.Getenv("FERRY_FTP_ROOT")
	require.NotEmpty(t, root, "FERRY_FTP_ROOT must be set")

	b, err := Connect(context.Background(), addr, Opts{
		User:     os.Getenv("FERRY_FTP_USER"),
		Password: os.Getenv("FERRY_FTP_PASSWORD"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Disconnect(context.Background()) })

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

	require.NoError(t, b.CopyFile(ctx, file, path.Join(scratch, "copy.txt"), false))
	copied, err := b.ReadFileContent(ctx, path.Join(scratch, "copy.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("over the wire"), copied)
}

func TestRemoteUnsupportedOperations(t *testing.T) {
	ctx := context.Background()
	b, scratch := dialTestBackend(t)

	assert.True(t, ferry.IsUnsupported(b.Trash(ctx, []string{scratch})))
	assert.True(t, ferry.IsUnsupported(b.SetUnixPermissions(ctx, scratch, 0o755)))
}
