//go:build !linux && !darwin

package localfs

import (
	"context"

	"github.com/ferryfs/ferry"
)

// Trash is unsupported: no portable trash convention exists here.
func (b *Backend) Trash(context.Context, []string) error {
	return &ferry.UnsupportedError{Op: "trash", Backend: "local filesystem"}
}
