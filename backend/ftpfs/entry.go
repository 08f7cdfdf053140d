package ftpfs

import (
	"github.com/jlaffaye/ftp"

	"github.com/ferryfs/ferry"
)

func typeFromEntry(t ftp.EntryType) ferry.FileType {
	switch t {
	case ftp.EntryTypeFile:
		return ferry.TypeFile
	case ftp.EntryTypeFolder:
		return ferry.TypeDir
	case ftp.EntryTypeLink:
		return ferry.TypeSymlink
	default:
		return ferry.TypeUnknown
	}
}

// entryToFile converts a directory listing entry into the backend-agnostic
// model. FTP listings carry no permission bits or access time, so those
// fields stay nil.
func entryToFile(path string, e *ftp.Entry) (ferry.File, error) {
	md := ferry.Metadata{Type: typeFromEntry(e.Type)}

	if !e.Time.IsZero() {
		modified := e.Time
		md.Modified = &modified
	}
	if md.Type == ferry.TypeFile {
		size := e.Size
		md.Size = &size
	}
	return ferry.NewFile(path, md)
}
