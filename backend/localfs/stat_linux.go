//go:build linux

package localfs

import (
	"os"
	"syscall"
	"time"
)

func accessedTime(info os.FileInfo) *time.Time {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return timePtr(stat.Atim.Sec, stat.Atim.Nsec)
	}
	return nil
}

// createdTime is nil on Linux: birth time lives in statx(2), which the
// standard stat result does not carry.
func createdTime(os.FileInfo) *time.Time { return nil }
