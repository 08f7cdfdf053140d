package ferry

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNoFileName reports a path that does not end in a usable name segment.
	ErrNoFileName = errors.New("path has no file name")

	// ErrNotUTF8 reports a path that is not valid UTF-8.
	ErrNotUTF8 = errors.New("path is not valid UTF-8")
)

// AlreadyExistsError reports a destination that is already occupied.
type AlreadyExistsError struct {
	Path string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("file %q already exists", e.Path)
}

// NonexistentError reports a path that refers to nothing.
type NonexistentError struct {
	Path string
}

func (e *NonexistentError) Error() string {
	return fmt.Sprintf("file %q does not exist", e.Path)
}

// FileTypeError reports an entry the transfer engine cannot carry
// (sockets, fifos, devices, unknown types).
type FileTypeError struct {
	Type FileType
}

func (e *FileTypeError) Error() string {
	return fmt.Sprintf("cannot copy or move file of type %s", e.Type)
}

// UnsupportedError reports an operation a backend or platform cannot perform.
type UnsupportedError struct {
	Op      string
	Backend string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("operation %q is unsupported on %s", e.Op, e.Backend)
}

// TrashError wraps a failure to move an entry to the trash store.
type TrashError struct {
	Path string
	Err  error
}

func (e *TrashError) Error() string {
	return fmt.Sprintf("trash %q: %v", e.Path, e.Err)
}

func (e *TrashError) Unwrap() error { return e.Err }

// IsAlreadyExists reports whether err describes an occupied destination.
// It recognizes both the engine taxonomy and the fs.ErrExist family that
// backends may propagate from native calls.
func IsAlreadyExists(err error) bool {
	var exists *AlreadyExistsError
	return errors.As(err, &exists) || errors.Is(err, fs.ErrExist)
}

// IsNotExist reports whether err describes a missing entry.
func IsNotExist(err error) bool {
	var nonexistent *NonexistentError
	return errors.As(err, &nonexistent) || errors.Is(err, fs.ErrNotExist)
}

// IsUnsupported reports whether err describes an unsupported operation.
func IsUnsupported(err error) bool {
	var unsupported *UnsupportedError
	return errors.As(err, &unsupported) || errors.Is(err, errors.ErrUnsupported)
}
