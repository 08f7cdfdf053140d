package ferry

const (
	ownerRead  uint32 = 0o400
	ownerWrite uint32 = 0o200
	ownerExec  uint32 = 0o100
	groupRead  uint32 = 0o040
	groupWrite uint32 = 0o020
	groupExec  uint32 = 0o010
	otherRead  uint32 = 0o004
	otherWrite uint32 = 0o002
	otherExec  uint32 = 0o001
)

// UnixActions is one rwx triple of a Unix permission set.
type UnixActions struct {
	Read    bool
	Write   bool
	Execute bool
}

// UnixPermissions is the structured owner/group/other permission triple.
type UnixPermissions struct {
	Owner UnixActions
	Group UnixActions
	Other UnixActions
}

// PermissionsFromMode decodes the lower nine bits of a Unix mode.
func PermissionsFromMode(mode uint32) UnixPermissions {
	return UnixPermissions{
		Owner: UnixActions{
			Read:    mode&ownerRead != 0,
			Write:   mode&ownerWrite != 0,
			Execute: mode&ownerExec != 0,
		},
		Group: UnixActions{
			Read:    mode&groupRead != 0,
			Write:   mode&groupWrite != 0,
			Execute: mode&groupExec != 0,
		},
		Other: UnixActions{
			Read:    mode&otherRead != 0,
			Write:   mode&otherWrite != 0,
			Execute: mode&otherExec != 0,
		},
	}
}

// Mode re-encodes the triple as Unix mode bits.
func (p UnixPermissions) Mode() uint32 {
	var mode uint32
	set := func(on bool, bit uint32) {
		if on {
			mode |= bit
		}
	}
	set(p.Owner.Read, ownerRead)
	set(p.Owner.Write, ownerWrite)
	set(p.Owner.Execute, ownerExec)
	set(p.Group.Read, groupRead)
	set(p.Group.Write, groupWrite)
	set(p.Group.Execute, groupExec)
	set(p.Other.Read, otherRead)
	set(p.Other.Write, otherWrite)
	set(p.Other.Execute, otherExec)
	return mode
}
