package localfs

import (
	"os"
	"time"

	"github.com/ferryfs/ferry"
)

// metadataFromInfo builds the backend-agnostic metadata snapshot from an
// Lstat result. Access and creation times come from the platform-specific
// stat structure and stay nil where the OS does not track them.
func metadataFromInfo(info os.FileInfo) ferry.Metadata {
	md := ferry.Metadata{
		Type:     ferry.FileTypeFromMode(info.Mode()),
		ReadOnly: info.Mode().Perm()&0o200 == 0,
	}

	modified := info.ModTime()
	md.Modified = &modified
	md.Accessed = accessedTime(info)
	md.Created = createdTime(info)

	perms := ferry.PermissionsFromMode(uint32(info.Mode().Perm()))
	md.Permissions = &perms

	if md.Type == ferry.TypeFile {
		size := uint64(info.Size())
		md.Size = &size
	}
	return md
}

func timePtr(sec, nsec int64) *time.Time {
	t := time.Unix(sec, nsec)
	return &t
}
