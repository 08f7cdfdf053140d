//go:build !linux && !darwin

package localfs

import (
	"os"
	"time"
)

func accessedTime(os.FileInfo) *time.Time { return nil }
func createdTime(os.FileInfo) *time.Time  { return nil }
