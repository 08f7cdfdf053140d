package ops_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ferryfs/ferry"
	"github.com/ferryfs/ferry/backend/memfs"
)

func mustMkdir(t *testing.T, b ferry.FSBackend, path string) {
	t.Helper()
	require.NoError(t, b.CreateDir(context.Background(), path))
}

func mustCreate(t *testing.T, b ferry.FSBackend, path, contents string) {
	t.Helper()
	require.NoError(t, b.CreateFile(context.Background(), path, false, []byte(contents)))
}

func readString(t *testing.T, b ferry.FSBackend, path string) string {
	t.Helper()
	data, err := b.ReadFileContent(context.Background(), path)
	require.NoError(t, err)
	return string(data)
}

func pathExists(t *testing.T, b ferry.FSBackend, path string) bool {
	t.Helper()
	ok, err := b.Exists(context.Background(), path)
	require.NoError(t, err)
	return ok
}

// seedSourceTree populates b with the standard two-level source tree:
//
//	/a/file1    (4 bytes)
//	/a/b/file2  (6 bytes)
func seedSourceTree(t *testing.T, b *memfs.Backend) {
	t.Helper()
	mustMkdir(t, b, "/a")
	mustMkdir(t, b, "/a/b")
	mustCreate(t, b, "/a/file1", "1234")
	mustCreate(t, b, "/a/b/file2", "123456")
}

// recorder wraps a backend and logs the order of its destructive calls, so
// tests can assert post-order deletion.
type recorder struct {
	ferry.FSBackend
	mu    sync.Mutex
	calls []string
}

func (r *recorder) log(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *recorder) RemoveFile(ctx context.Context, path string) error {
	r.log("file " + path)
	return r.FSBackend.RemoveFile(ctx, path)
}

func (r *recorder) RemoveDir(ctx context.Context, path string) error {
	r.log("dir " + path)
	return r.FSBackend.RemoveDir(ctx, path)
}

// callIndex returns the position of call in the recorded sequence, or -1.
func (r *recorder) callIndex(call string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.calls {
		if c == call {
			return i
		}
	}
	return -1
}
