package ferry

import (
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ferryfs/ferry/internal/pathutil"
)

// FileType identifies the kind of filesystem entry. The transfer engine
// carries TypeFile and TypeSymlink as leaves, recurses into TypeDir, and
// refuses everything else.
type FileType int

const (
	TypeFile FileType = iota
	TypeDir
	TypeSymlink
	TypeSocket
	TypeFifo
	TypeCharDevice
	TypeBlockDevice
	TypeUnknown
)

var fileTypeNames = [...]string{
	TypeFile:        "file",
	TypeDir:         "dir",
	TypeSymlink:     "symlink",
	TypeSocket:      "socket",
	TypeFifo:        "fifo",
	TypeCharDevice:  "char_device",
	TypeBlockDevice: "block_device",
	TypeUnknown:     "unknown",
}

func (t FileType) String() string {
	if int(t) < len(fileTypeNames) {
		return fileTypeNames[t]
	}
	return "unknown"
}

// Transferable reports whether entries of this type can be carried as
// leaves by the transfer engine.
func (t FileType) Transferable() bool {
	return t == TypeFile || t == TypeSymlink
}

// FileTypeFromMode maps an os.FileMode onto the FileType taxonomy.
// ModeCharDevice implies ModeDevice, so it is checked first.
func FileTypeFromMode(mode os.FileMode) FileType {
	switch {
	case mode.IsRegular():
		return TypeFile
	case mode.IsDir():
		return TypeDir
	case mode&os.ModeSymlink != 0:
		return TypeSymlink
	case mode&os.ModeSocket != 0:
		return TypeSocket
	case mode&os.ModeNamedPipe != 0:
		return TypeFifo
	case mode&os.ModeCharDevice != 0:
		return TypeCharDevice
	case mode&os.ModeDevice != 0:
		return TypeBlockDevice
	default:
		return TypeUnknown
	}
}

// Metadata is a backend-agnostic snapshot of an entry's attributes.
// Pointer fields are nil when the backend or platform cannot supply them
// (FTP rarely exposes access time, for example). Size is only meaningful
// when Type is TypeFile.
type Metadata struct {
	Type        FileType
	Modified    *time.Time
	Accessed    *time.Time
	Created     *time.Time
	Size        *uint64
	ReadOnly    bool
	Permissions *UnixPermissions
}

// File describes a single filesystem entry as reported by a backend.
// It is an owned snapshot: it never refers back to backend resources and
// has no identity beyond Path.
type File struct {
	Path      string
	Name      string
	Extension string // lower-cased, "" when Name has no dot suffix
	Metadata  Metadata
}

// NewFile builds a File for path from a metadata snapshot, deriving Name
// and Extension from the final path segment. Fails with ErrNotUTF8 or
// ErrNoFileName when the path cannot be decomposed.
func NewFile(path string, md Metadata) (File, error) {
	if !utf8.ValidString(path) {
		return File{}, ErrNotUTF8
	}
	name := pathutil.Basename(path)
	if name == "" || name == "/" {
		return File{}, ErrNoFileName
	}
	return File{
		Path:      path,
		Name:      name,
		Extension: Extension(name),
		Metadata:  md,
	}, nil
}

// Extension returns the lower-cased suffix after the last '.' of name, or
// "" when there is none. A leading dot alone (".bashrc") is not a suffix.
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}
