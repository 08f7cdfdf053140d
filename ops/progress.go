package ops

import (
	"context"

	"github.com/ferryfs/ferry"
)

// TransitKind says why the progress handler is being invoked.
type TransitKind int

const (
	// TransitNormal reports a successfully transferred leaf.
	TransitNormal TransitKind = iota
	// TransitExists reports a destination collision awaiting a decision.
	TransitExists
	// TransitOther reports a transfer failure that is not a collision.
	TransitOther
)

// TransferConflict identifies the collision that triggered TransitExists.
type TransferConflict struct {
	FileType    ferry.FileType
	Origin      string
	Destination string
}

// TransitState describes the condition of the current item. Conflict is set
// only for TransitExists, Err only for TransitOther.
type TransitState struct {
	Kind     TransitKind
	Conflict *TransferConflict
	Err      error
}

// TransitProgress is the running account of a progress-tracked transfer.
// The engine mutates it in place; handlers receive a snapshot per item and
// must treat it as read-only. It lives for one operation and is never
// persisted.
type TransitProgress struct {
	ProcessedBytes uint64
	TotalBytes     uint64
	ProcessedFiles uint64
	TotalFiles     uint64
	State          TransitState
}

// TransitProgressResponse is the handler's verdict on the current item.
type TransitProgressResponse int

const (
	// ContinueOrAbort re-raises the stored error when the state is a
	// conflict or failure, and continues otherwise. It exists for callers
	// that do not discriminate states.
	ContinueOrAbort TransitProgressResponse = iota
	// Skip proceeds to the next item without retrying.
	Skip
	// Overwrite retries the same transfer with overwrite enabled.
	Overwrite
	// Abort stops the whole operation immediately. Partial completion is
	// not an error: the operation returns nil.
	Abort
)

// ProgressFunc receives a progress snapshot after every attempted leaf
// transfer and returns the caller's decision. The traversal blocks until
// the handler returns, so a handler may wait on user input.
type ProgressFunc func(TransitProgress) TransitProgressResponse

// notify classifies the outcome of one leaf transfer, invokes the handler,
// and applies its decision. The returned bool reports an Abort.
func (t *transfer) notify(ctx context.Context, f ferry.File, dest string, attemptErr error) (aborted bool, err error) {
	switch {
	case attemptErr == nil:
		t.prog.State = TransitState{Kind: TransitNormal}
		t.advance(f)
	case ferry.IsAlreadyExists(attemptErr):
		t.prog.State = TransitState{
			Kind: TransitExists,
			Conflict: &TransferConflict{
				FileType:    f.Metadata.Type,
				Origin:      f.Path,
				Destination: dest,
			},
		}
	default:
		t.prog.State = TransitState{Kind: TransitOther, Err: attemptErr}
	}

	response := t.progress(t.prog)

	if t.prog.State.Kind == TransitNormal {
		// Nothing to resolve; only Abort is meaningful here.
		return response == Abort, nil
	}

	switch response {
	case ContinueOrAbort:
		if t.prog.State.Kind == TransitExists {
			return false, &ferry.AlreadyExistsError{Path: dest}
		}
		return false, attemptErr
	case Skip:
		return false, nil
	case Overwrite:
		if err := t.leafFn(ctx, f.Path, dest, true); err != nil {
			return false, err
		}
		t.advance(f)
		return false, nil
	case Abort:
		return true, nil
	}

	return false, attemptErr
}

func (t *transfer) advance(f ferry.File) {
	t.prog.ProcessedBytes += sizeOf(f)
	t.prog.ProcessedFiles++
}
