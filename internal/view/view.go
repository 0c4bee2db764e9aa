package view

import (
	"fmt"

	"github.com/strided-ml/strided/internal/tensor"
)

// View is a lazy, zero-copy selection of a parent container's elements.
//
// A view shares the parent's storage: construction copies no element data,
// and StoreAt/SetAt propagate writes to the parent. The descriptor itself
// (indices, classification, offset, stride) is immutable after New; only
// element values in the shared storage change.
//
// Views implement Container, so a view can serve as the parent of another
// view. Slice collapses such chains where possible.
type View[T tensor.DType] struct {
	parent  Container[T]
	indices []Index
	shape   tensor.Shape
	vstride []int // row-major strides of shape (the view's own linear space)

	fast       bool
	contiguous bool
	offset     int // valid iff fast
	stride     int // valid iff fast
}

// New constructs a view of parent selecting the elements described by
// indices.
//
// The dimensions consumed by the index list must match the parent's rank,
// with two accommodations mirroring convenient indexing:
//
//   - redundant trailing All or Scalar(0) selectors beyond the parent's
//     rank are dropped;
//   - when a Coords index makes the consumed-dimension count disagree with
//     the rank, the parent is wrapped in a logical rank adapter
//     (no copying) rather than failing.
//
// Any other mismatch fails with ErrDimensionMismatch.
//
// Index positions are NOT validated against the parent's bounds: an
// out-of-range index list leads to undefined reads and writes through the
// unchecked access path. Callers that want safety use the checked entry
// points (At, SetAt), which validate against the view's shape.
func New[T tensor.DType](parent Container[T], indices ...Index) (*View[T], error) {
	idx := append([]Index(nil), indices...)
	rank := parent.Rank()

	need := consumedDims(idx)
	for need > rank && len(idx) > 0 && redundantTrailing(idx[len(idx)-1]) {
		need -= consumed(idx[len(idx)-1])
		idx = idx[:len(idx)-1]
	}

	if need != rank {
		if !hasCoords(idx) {
			return nil, fmt.Errorf("%w: %d index dimensions for rank-%d container",
				ErrDimensionMismatch, need, rank)
		}
		adapted, err := adaptRank(parent, need)
		if err != nil {
			return nil, err
		}
		parent = adapted
	}

	shape := viewShape(parent.Shape(), idx)
	v := &View[T]{
		parent:  parent,
		indices: idx,
		shape:   shape,
		vstride: shape.ComputeStrides(),
	}

	p := plan(parent, idx)
	v.fast = p.Fast
	v.contiguous = p.Contiguous
	if v.fast {
		v.offset = linearOffset(parent, idx)
		v.stride = linearStride(parent, idx)
	}
	return v, nil
}

// redundantTrailing reports whether an index provably selects the sole
// position of a phantom trailing dimension.
func redundantTrailing(ix Index) bool {
	switch ix := ix.(type) {
	case All:
		return true
	case Scalar:
		return int(ix) == 0
	default:
		return false
	}
}

// viewShape computes the shape of the view: one dimension per non-scalar
// index, sized by how many positions it selects.
func viewShape(pshape tensor.Shape, idx []Index) tensor.Shape {
	shape := make(tensor.Shape, 0, len(pshape))
	d := 0
	for _, ix := range idx {
		if _, ok := ix.(Scalar); !ok {
			shape = append(shape, selLen(ix, pshape[d]))
		}
		d += consumed(ix)
	}
	return shape
}

// Parent returns the container the view selects from.
func (v *View[T]) Parent() Container[T] {
	return v.parent
}

// Indices returns the view's index list. The returned slice must not be
// modified.
func (v *View[T]) Indices() []Index {
	return v.indices
}

// Rank returns the number of dimensions of the view.
func (v *View[T]) Rank() int {
	return len(v.shape)
}

// Shape returns the view's shape.
func (v *View[T]) Shape() tensor.Shape {
	return v.shape
}

// NumElements returns the total number of elements the view selects.
func (v *View[T]) NumElements() int {
	return v.shape.NumElements()
}

// IsFast reports whether the view supports O(1) linear addressing via the
// precomputed offset and stride.
func (v *View[T]) IsFast() bool {
	return v.fast
}

// IsContiguous reports whether the view's elements occupy consecutive
// storage (unit stride). Contiguous implies fast.
func (v *View[T]) IsContiguous() bool {
	return v.contiguous
}

// Plan returns the view's construction-time addressing classification.
func (v *View[T]) Plan() Plan {
	return Plan{Fast: v.fast, Contiguous: v.contiguous}
}

// LinearAccess returns the precomputed offset and stride of a fast view:
// element i of the view lives at parent linear address offset + stride*i.
// Fails with ErrNonStridedView for views on the generic path.
func (v *View[T]) LinearAccess() (offset, stride int, err error) {
	if !v.fast {
		return 0, 0, fmt.Errorf("%w: view was classified for cartesian addressing", ErrNonStridedView)
	}
	return v.offset, v.stride, nil
}

// Strides returns the view's per-dimension strides into the parent's
// linear address space. Fails with ErrNonStridedView if any selecting
// index is an index array.
func (v *View[T]) Strides() ([]int, error) {
	return dimStrides(v.parent, v.indices)
}

// Stride returns the stride of dimension d in the view's own linear
// element space (row-major over its shape), satisfying Container. For
// strides into the parent's storage, use Strides.
func (v *View[T]) Stride(d int) int {
	return v.vstride[d]
}

// Linear reports whether the view supports O(1) linear addressing,
// satisfying Container.
func (v *View[T]) Linear() bool {
	return v.fast
}

// parentCoord translates a view coordinate into a parent coordinate,
// writing into dst (which must have parent.Rank() entries).
func (v *View[T]) parentCoord(coord, dst []int) {
	k := 0 // cursor into coord
	d := 0 // cursor into parent dimensions
	for _, ix := range v.indices {
		switch ix := ix.(type) {
		case Scalar:
			dst[d] = int(ix)
			d++
		case All:
			dst[d] = coord[k]
			k++
			d++
		case Range:
			dst[d] = ix.Start + ix.Step*coord[k]
			k++
			d++
		case List:
			dst[d] = ix[coord[k]]
			k++
			d++
		case Coords:
			copy(dst[d:d+ix.Rank], ix.Points[coord[k]])
			k++
			d += ix.Rank
		}
	}
}

// LoadAt returns the element at the given view coordinate.
// No bounds checking is performed; out-of-range coordinates are undefined
// behavior. Use At for checked access.
func (v *View[T]) LoadAt(coord ...int) T {
	dst := make([]int, v.parent.Rank())
	v.parentCoord(coord, dst)
	return v.parent.LoadAt(dst...)
}

// StoreAt sets the element at the given view coordinate, writing through
// to the shared parent storage. No bounds checking is performed.
func (v *View[T]) StoreAt(value T, coord ...int) {
	dst := make([]int, v.parent.Rank())
	v.parentCoord(coord, dst)
	v.parent.StoreAt(value, dst...)
}

// LoadLinear returns element i of the view in row-major order. O(1) for
// fast views; generic views pay a coordinate translation.
func (v *View[T]) LoadLinear(i int) T {
	if v.fast {
		// stride is 1 for contiguous views
		return v.parent.LoadLinear(v.offset + v.stride*i)
	}
	coord := make([]int, len(v.shape))
	v.shape.Unravel(i, coord)
	return v.LoadAt(coord...)
}

// StoreLinear sets element i of the view in row-major order.
func (v *View[T]) StoreLinear(i int, value T) {
	if v.fast {
		v.parent.StoreLinear(v.offset+v.stride*i, value)
		return
	}
	coord := make([]int, len(v.shape))
	v.shape.Unravel(i, coord)
	v.StoreAt(value, coord...)
}

// At returns the element at the given coordinate, validating it against
// the view's shape first. Fails with ErrOutOfBounds for out-of-range
// coordinates and ErrDimensionMismatch for a wrong coordinate count.
func (v *View[T]) At(coord ...int) (T, error) {
	var zero T
	if err := v.check(coord); err != nil {
		return zero, err
	}
	return v.LoadAt(coord...), nil
}

// SetAt sets the element at the given coordinate, validating it against
// the view's shape first.
func (v *View[T]) SetAt(value T, coord ...int) error {
	if err := v.check(coord); err != nil {
		return err
	}
	v.StoreAt(value, coord...)
	return nil
}

// check validates a coordinate against the view's shape.
func (v *View[T]) check(coord []int) error {
	if len(coord) != len(v.shape) {
		return fmt.Errorf("%w: %d coordinates for rank-%d view", ErrDimensionMismatch, len(coord), len(v.shape))
	}
	for k, c := range coord {
		if c < 0 || c >= v.shape[k] {
			return fmt.Errorf("%w: coordinate %d out of range for dimension %d (size %d)",
				ErrOutOfBounds, c, k, v.shape[k])
		}
	}
	return nil
}

// String returns a human-readable representation of the view.
func (v *View[T]) String() string {
	mode := "cartesian"
	switch {
	case v.contiguous:
		mode = "contiguous"
	case v.fast:
		mode = "strided"
	}
	return fmt.Sprintf("View%v{%v, %s}", v.shape, v.indices, mode)
}

// rankAdapter presents a container under a different logical rank without
// copying, so a Coords index list can consume a dimension count the
// parent's natural rank does not offer. Extra dimensions are appended as
// size 1; a lower rank merges the trailing dimensions into one.
type rankAdapter[T tensor.DType] struct {
	parent Container[T]
	shape  tensor.Shape
	stride []int
}

func adaptRank[T tensor.DType](parent Container[T], rank int) (Container[T], error) {
	pshape := parent.Shape()
	var shape tensor.Shape
	switch {
	case rank >= len(pshape):
		shape = pshape.Clone()
		for len(shape) < rank {
			shape = append(shape, 1)
		}
	case rank == 0:
		if pshape.NumElements() != 1 {
			return nil, fmt.Errorf("%w: cannot view rank-%d container through 0 dimensions",
				ErrDimensionMismatch, len(pshape))
		}
		shape = tensor.Shape{}
	default:
		shape = pshape[:rank].Clone()
		tail := 1
		for _, dim := range pshape[rank-1:] {
			tail *= dim
		}
		shape[rank-1] = tail
	}

	// Dense parents regroup through a zero-copy Reshape of their shared
	// storage; layered parents go through the generic adapter.
	if dense, ok := parent.(*tensor.Typed[T]); ok {
		raw, err := dense.Raw().Reshape(shape)
		if err != nil {
			return nil, err
		}
		return tensor.AsTyped[T](raw)
	}

	return &rankAdapter[T]{
		parent: parent,
		shape:  shape,
		stride: shape.ComputeStrides(),
	}, nil
}

func (r *rankAdapter[T]) Rank() int { return len(r.shape) }

func (r *rankAdapter[T]) Shape() tensor.Shape { return r.shape }

func (r *rankAdapter[T]) Stride(d int) int { return r.stride[d] }

func (r *rankAdapter[T]) Linear() bool { return r.parent.Linear() }

// LoadLinear delegates directly: the adapter reorders no elements, it only
// regroups them, so the linear element order is the parent's.
func (r *rankAdapter[T]) LoadLinear(i int) T { return r.parent.LoadLinear(i) }

func (r *rankAdapter[T]) StoreLinear(i int, value T) { r.parent.StoreLinear(i, value) }

func (r *rankAdapter[T]) LoadAt(coord ...int) T {
	return r.parent.LoadLinear(r.ravel(coord))
}

func (r *rankAdapter[T]) StoreAt(value T, coord ...int) {
	r.parent.StoreLinear(r.ravel(coord), value)
}

func (r *rankAdapter[T]) StorageSpans() []tensor.Span { return r.parent.StorageSpans() }

func (r *rankAdapter[T]) ravel(coord []int) int {
	if len(coord) != len(r.stride) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(r.stride), len(coord)))
	}
	i := 0
	for d, c := range coord {
		i += c * r.stride[d]
	}
	return i
}
