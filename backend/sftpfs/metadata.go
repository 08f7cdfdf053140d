package sftpfs

import (
	"os"
	"time"

	"github.com/pkg/sftp"

	"github.com/ferryfs/ferry"
)

// metadataFromInfo converts an SFTP stat result into the backend-agnostic
// snapshot. The protocol carries no creation time; access time is present
// when the server fills the underlying FileStat.
func metadataFromInfo(info os.FileInfo) ferry.Metadata {
	md := ferry.Metadata{
		Type:     ferry.FileTypeFromMode(info.Mode()),
		ReadOnly: info.Mode().Perm()&0o200 == 0,
	}

	modified := info.ModTime()
	md.Modified = &modified

	if stat, ok := info.Sys().(*sftp.FileStat); ok && stat.Atime != 0 {
		accessed := time.Unix(int64(stat.Atime), 0)
		md.Accessed = &accessed
	}

	perms := ferry.PermissionsFromMode(uint32(info.Mode().Perm()))
	md.Permissions = &perms

	if md.Type == ferry.TypeFile {
		size := uint64(info.Size())
		md.Size = &size
	}
	return md
}
