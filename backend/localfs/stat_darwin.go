//go:build darwin

package localfs

import (
	"os"
	"syscall"
	"time"
)

func accessedTime(info os.FileInfo) *time.Time {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return timePtr(stat.Atimespec.Sec, stat.Atimespec.Nsec)
	}
	return nil
}

func createdTime(info os.FileInfo) *time.Time {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return timePtr(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec)
	}
	return nil
}
