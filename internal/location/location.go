// Package location parses CLI path arguments into a scheme, host, and
// remote path, so commands can decide which backend to dial.
package location

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
)

// Scheme identifies the backend family a location belongs to.
type Scheme string

const (
	SchemeLocal Scheme = "local"
	SchemeSFTP  Scheme = "sftp"
	SchemeFTP   Scheme = "ftp"
)

// Location represents a parsed source or destination argument.
type Location struct {
	Scheme Scheme
	Host   string
	User   string
	Path   string
	Port   int
}

// IsRemote returns true if the location refers to a remote host.
func (l Location) IsRemote() bool {
	return l.Scheme != SchemeLocal
}

// Addr returns host:port with the scheme's default port filled in.
func (l Location) Addr() string {
	port := l.Port
	if port == 0 {
		switch l.Scheme {
		case SchemeFTP:
			port = 21
		case SchemeSFTP:
			port = 22
		}
	}
	return fmt.Sprintf("%s:%d", l.Host, port)
}

// String returns a human-readable representation.
func (l Location) String() string {
	switch {
	case !l.IsRemote():
		return l.Path
	case l.Scheme == SchemeFTP:
		if l.User != "" {
			return fmt.Sprintf("ftp://%s@%s%s", l.User, l.Host, l.Path)
		}
		return fmt.Sprintf("ftp://%s%s", l.Host, l.Path)
	case l.User != "":
		return fmt.Sprintf("%s@%s:%s", l.User, l.Host, l.Path)
	default:
		return fmt.Sprintf("%s:%s", l.Host, l.Path)
	}
}

// Parse parses a CLI argument into a Location.
//
// Supported formats:
//   - /absolute/path              → local
//   - relative/path               → local
//   - host:path                   → SFTP remote (current user)
//   - user@host:path              → SFTP remote
//   - sftp://user@host:port/path  → SFTP remote
//   - ftp://user@host:port/path   → FTP remote
//
// Ambiguity rule: a bare word with no colon is always local. A string
// containing ":" is only treated as remote if the part before the colon
// contains no path separators (so "/foo:bar" and "./host:path" are local).
func Parse(arg string) Location {
	if strings.HasPrefix(arg, "ftp://") || strings.HasPrefix(arg, "sftp://") {
		return parseURL(arg)
	}

	// Absolute paths and paths starting with . are always local.
	if filepath.IsAbs(arg) || strings.HasPrefix(arg, "./") || strings.HasPrefix(arg, "../") {
		return Location{Scheme: SchemeLocal, Path: arg}
	}

	colonIdx := strings.IndexByte(arg, ':')
	if colonIdx < 0 {
		return Location{Scheme: SchemeLocal, Path: arg}
	}

	hostPart := arg[:colonIdx]
	pathPart := arg[colonIdx+1:]

	// A path separator before the colon means a local path with a colon in
	// it (e.g., "dir/file:with:colons").
	if strings.ContainsRune(hostPart, filepath.Separator) || strings.ContainsRune(hostPart, '/') {
		return Location{Scheme: SchemeLocal, Path: arg}
	}
	if hostPart == "" {
		return Location{Scheme: SchemeLocal, Path: arg}
	}

	var user, host string
	if atIdx := strings.LastIndexByte(hostPart, '@'); atIdx >= 0 {
		user = hostPart[:atIdx]
		host = hostPart[atIdx+1:]
	} else {
		host = hostPart
	}
	if host == "" {
		return Location{Scheme: SchemeLocal, Path: arg}
	}

	return Location{
		Scheme: SchemeSFTP,
		Host:   host,
		User:   user,
		Path:   pathPart,
	}
}

// parseURL parses ftp://[user@]host[:port]/path and the sftp equivalent.
func parseURL(raw string) Location {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{Scheme: SchemeLocal, Path: raw}
	}

	host := u.Hostname()
	if host == "" {
		return Location{Scheme: SchemeLocal, Path: raw}
	}

	port := 0
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return Location{Scheme: SchemeLocal, Path: raw}
		}
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	var user string
	if u.User != nil {
		user = u.User.Username()
	}

	scheme := SchemeFTP
	if u.Scheme == "sftp" {
		scheme = SchemeSFTP
	}

	return Location{
		Scheme: scheme,
		Host:   host,
		User:   user,
		Path:   path,
		Port:   port,
	}
}
