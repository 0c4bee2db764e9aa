// Copyright 2025 Strided. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense storage containers
// that back strided views.
//
// A RawTensor owns a reference-counted byte buffer plus its geometry
// (shape, row-major strides, dtype); Typed wraps it in a generic,
// type-safe element accessor suitable as a view parent.
//
// Example:
//
//	m, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	m.StoreAt(9, 1, 0)
package tensor

import (
	"github.com/strided-ml/strided/internal/tensor"
)

// DType is a constraint for supported element data types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = tensor.DType

// DataType represents the runtime data type of a container.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Shape represents the dimensions of a container.
// Example: Shape{2, 3, 4} represents a 3D container with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the low-level dense container representation.
type RawTensor = tensor.RawTensor

// Typed is a generic, type-safe element accessor over a RawTensor.
type Typed[T DType] = tensor.Typed[T]

// StorageID is an opaque handle identifying a backing buffer.
type StorageID = tensor.StorageID

// Span is a storage identity: a buffer plus the element extent touched
// within it.
type Span = tensor.Span

// NewRaw creates a new RawTensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// AsTyped wraps a RawTensor in a typed accessor.
func AsTyped[T DType](raw *RawTensor) (*Typed[T], error) {
	return tensor.AsTyped[T](raw)
}

// NewTyped allocates a dense container with the given shape and returns
// its typed accessor.
func NewTyped[T DType](shape Shape) (*Typed[T], error) {
	return tensor.NewTyped[T](shape)
}

// FromSlice allocates a dense container and copies data into it.
func FromSlice[T DType](data []T, shape Shape) (*Typed[T], error) {
	return tensor.FromSlice(data, shape)
}

// Infer returns the DataType corresponding to a generic element type T.
func Infer[T DType](dummy T) DataType {
	return tensor.Infer(dummy)
}
