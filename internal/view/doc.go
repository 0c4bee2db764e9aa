// Package view implements lazy, zero-copy views into N-dimensional
// containers.
//
// A View selects a subset of a parent container's elements through a list
// of per-dimension indices (scalars, ranges, full selections, or index
// arrays). It shares the parent's storage: no element is copied at
// construction, and writes through a view mutate the parent.
//
// At construction every view is classified once: views whose index list
// matches a strided pattern support O(1) linear addressing through a
// precomputed offset and stride (the "fast" path); everything else goes
// through per-dimension coordinate translation. Views of views collapse
// into a single indirection layer where possible (see Reindex).
//
// The package performs no locking. Any number of readers may share a
// parent, but writers require caller-provided synchronization, as with
// direct container access.
package view
