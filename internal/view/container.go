package view

import "github.com/strided-ml/strided/internal/tensor"

// Container is the storage boundary consumed by views.
//
// A container exposes its logical geometry (rank, shape, per-dimension
// strides) and element access in two styles: linear (a single flat index
// in the container's own row-major element order) and cartesian (one
// coordinate per dimension). Linear reports whether linear access is O(1);
// implementations must still accept LoadLinear/StoreLinear when it is
// false, at whatever cost coordinate translation requires.
//
// Stride(d) is the stride of dimension d in the container's own linear
// address space, i.e. the space LoadLinear and StoreLinear consume.
//
// Load/Store methods perform no bounds checking.
type Container[T tensor.DType] interface {
	Rank() int
	Shape() tensor.Shape
	Stride(d int) int
	Linear() bool

	LoadLinear(i int) T
	StoreLinear(i int, value T)
	LoadAt(coord ...int) T
	StoreAt(value T, coord ...int)

	StorageSpans() []tensor.Span
}

// Compile-time checks: the dense accessor and views themselves satisfy the
// container boundary (a view can be the parent of another view).
var (
	_ Container[float32] = (*tensor.Typed[float32])(nil)
	_ Container[float32] = (*View[float32])(nil)
	_ Container[float32] = (*rankAdapter[float32])(nil)
)
