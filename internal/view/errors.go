package view

import "errors"

// Errors reported by the view layer. All are detected synchronously at the
// call that triggered them; none are retried.
var (
	// ErrDimensionMismatch reports an index list whose dimension count does
	// not match the parent's rank at construction.
	ErrDimensionMismatch = errors.New("index count does not match container rank")

	// ErrOutOfBounds reports an out-of-range coordinate on the checked
	// access path. The unchecked path performs no such validation.
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrNonStridedView reports a stride or offset request on a view whose
	// indices do not form uniform-step ranges.
	ErrNonStridedView = errors.New("view is not strided")

	// ErrReindexArity reports an index-list composition where the outer
	// list requests more dimensions than the inner list supplies. It
	// indicates a defect in the caller, not user error.
	ErrReindexArity = errors.New("reindex: outer indices exceed inner indices")
)

// errNoCollapse signals that an index-list composition cannot be flattened
// and the caller must keep two indirection layers. Never returned to users.
var errNoCollapse = errors.New("reindex: composition cannot be collapsed")
