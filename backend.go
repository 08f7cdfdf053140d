// Package ferry defines the capability contract every storage backend
// implements, plus the backend-agnostic data model and error taxonomy
// shared by the backends and the transfer engine in ops.
//
// Paths are absolute, slash-separated, UTF-8 strings interpreted by the
// owning backend. The engine never assumes two backends share a path space.
package ferry

import "context"

// FSBackend is the set of primitive, non-recursive operations a storage
// provider must expose. Recursion, conflict policy, and progress reporting
// live entirely in the ops package; a backend only ever sees single entries.
//
// Every mutating call taking overwrite=false must fail with an
// already-exists error (per IsAlreadyExists) when the destination is
// occupied — never silently succeed or silently overwrite. Each call is
// atomic from the caller's perspective.
type FSBackend interface {
	// Disconnect releases the backend's underlying connection or handles.
	Disconnect(ctx context.Context) error

	// Exists reports whether path refers to any entry.
	Exists(ctx context.Context, path string) (bool, error)

	// FileType returns the type of the entry at path.
	FileType(ctx context.Context, path string) (FileType, error)

	// RetrieveFiles returns a metadata snapshot for each given path.
	// Fails with ErrNoFileName or ErrNotUTF8 when a path cannot be
	// decomposed into a name.
	RetrieveFiles(ctx context.Context, paths []string) ([]File, error)

	// ReadFileContent returns the full contents of the file at path.
	ReadFileContent(ctx context.Context, path string) ([]byte, error)

	// ReadDir lists the immediate children of a directory, one level deep,
	// in backend-native order.
	ReadDir(ctx context.Context, path string) ([]File, error)

	// CreateFile creates a file at path holding contents (which may be nil).
	CreateFile(ctx context.Context, path string, overwrite bool, contents []byte) error

	// CreateDir creates a single directory. The parent must already exist.
	CreateDir(ctx context.Context, path string) error

	// RenameFile gives the entry at path a new name within its directory.
	RenameFile(ctx context.Context, path, newName string, overwrite bool) error

	// MoveFile relocates a single non-directory entry.
	MoveFile(ctx context.Context, from, to string, overwrite bool) error

	// CopyFile duplicates a single non-directory entry.
	CopyFile(ctx context.Context, from, to string, overwrite bool) error

	// RemoveFile deletes a single non-directory entry.
	RemoveFile(ctx context.Context, path string) error

	// RemoveDir deletes a directory. It is non-recursive and fails when the
	// directory is not empty.
	RemoveDir(ctx context.Context, path string) error

	// Trash moves the given entries to a recoverable trash store. Backends
	// and platforms without one fail with an UnsupportedError.
	Trash(ctx context.Context, paths []string) error

	// SetUnixPermissions applies a Unix mode to path. Backends without a
	// Unix permission model fail with an UnsupportedError.
	SetUnixPermissions(ctx context.Context, path string, mode uint32) error
}
