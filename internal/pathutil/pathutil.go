// Package pathutil provides pure helpers over slash-separated paths.
// Unlike path.Base/path.Dir these preserve the caller's path verbatim
// (no cleaning), which matters for backends where "a//b" and "a/b" are
// distinct identifiers.
package pathutil

import "strings"

// Basename returns the final non-empty segment of path. The root path "/"
// is returned as-is. Safe over multi-byte text: '/' is a single byte in
// UTF-8, so byte-wise splitting never lands inside a rune.
func Basename(path string) string {
	if path == "/" {
		return path
	}
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}

// Dirname returns path truncated before its final '/' — the parent-path
// prefix of Basename. Returns "" when path contains no separator.
func Dirname(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return ""
	}
	return path[:idx]
}
