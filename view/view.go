// Copyright 2025 Strided. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package view provides the public API for lazy, zero-copy views into
// N-dimensional containers.
//
// A View selects a subset of a parent container's elements through
// per-dimension indices and shares its storage: construction copies
// nothing, writes propagate to the parent. Views are classified once at
// construction into fast (O(1) offset+stride addressing) or generic
// (cartesian) access paths.
//
// Example:
//
//	m, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	col, _ := view.New[float32](m, view.All{}, view.Scalar(0))
//	col.SetAt(0, 1) // m is now [[1,2],[0,4]]
package view

import (
	"github.com/strided-ml/strided/internal/tensor"
	"github.com/strided-ml/strided/internal/view"
)

// Index is a canonical per-dimension selector.
type Index = view.Index

// Scalar selects a single position along one dimension.
type Scalar = view.Scalar

// All selects an entire dimension, like a bare colon.
type All = view.All

// Range selects Len positions starting at Start with uniform Step.
type Range = view.Range

// List selects explicit positions along one dimension.
type List = view.List

// Coords selects elements by explicit rank-N coordinates.
type Coords = view.Coords

// Plan is the construction-time addressing classification of a view.
type Plan = view.Plan

// Container is the storage boundary consumed by views.
type Container[T tensor.DType] = view.Container[T]

// View is a lazy, zero-copy selection of a parent container's elements.
type View[T tensor.DType] = view.View[T]

// Spanned is anything that can report the backing storage it touches.
type Spanned = view.Spanned

// Errors reported by the view layer.
var (
	ErrDimensionMismatch = view.ErrDimensionMismatch
	ErrOutOfBounds       = view.ErrOutOfBounds
	ErrNonStridedView    = view.ErrNonStridedView
	ErrReindexArity      = view.ErrReindexArity
)

// New constructs a view of parent selecting the elements described by
// indices.
func New[T tensor.DType](parent Container[T], indices ...Index) (*View[T], error) {
	return view.New[T](parent, indices...)
}

// Reindex composes a view's index list with a further selection into a
// single index list against the view's parent.
func Reindex(outer, inner []Index) ([]Index, error) {
	return view.Reindex(outer, inner)
}

// MayAlias reports whether two expressions may reference overlapping
// storage.
func MayAlias(a, b Spanned) bool {
	return view.MayAlias(a, b)
}

// Compact materializes a defensive, non-aliasing dense copy of a view.
func Compact[T tensor.DType](v *View[T]) (*View[T], error) {
	return view.Compact(v)
}
