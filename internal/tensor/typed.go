package tensor

import "fmt"

// Typed is a generic, type-safe element accessor over a RawTensor.
//
// It is the dense container handed to the view layer: it exposes rank,
// shape, per-dimension strides, and linear as well as cartesian element
// access over the shared backing buffer (zero-copy).
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)
//	m, _ := tensor.AsTyped[float32](raw)
//	m.StoreAt(1.5, 0, 2)
//	v := m.LoadLinear(2) // 1.5
type Typed[T DType] struct {
	raw  *RawTensor
	data []T
}

// AsTyped wraps a RawTensor in a typed accessor.
// Fails if T does not match the container's runtime data type.
func AsTyped[T DType](raw *RawTensor) (*Typed[T], error) {
	var dummy T
	if dtype := Infer(dummy); dtype != raw.DType() {
		return nil, fmt.Errorf("container dtype is %s, not %s", raw.DType(), dtype)
	}
	return &Typed[T]{raw: raw, data: dataOf[T](raw)}, nil
}

// NewTyped allocates a dense container with the given shape and returns its
// typed accessor. Memory is zero-initialized.
func NewTyped[T DType](shape Shape) (*Typed[T], error) {
	var dummy T
	raw, err := NewRaw(shape, Infer(dummy))
	if err != nil {
		return nil, err
	}
	return &Typed[T]{raw: raw, data: dataOf[T](raw)}, nil
}

// FromSlice allocates a dense container and copies data into it.
func FromSlice[T DType](data []T, shape Shape) (*Typed[T], error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	t, err := NewTyped[T](shape)
	if err != nil {
		return nil, err
	}
	copy(t.data, data)
	return t, nil
}

// dataOf returns a typed slice view of the raw data (zero-copy).
func dataOf[T DType](raw *RawTensor) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(raw.AsFloat32()).([]T)
	case float64:
		return any(raw.AsFloat64()).([]T)
	case int32:
		return any(raw.AsInt32()).([]T)
	case int64:
		return any(raw.AsInt64()).([]T)
	case uint8:
		return any(raw.AsUint8()).([]T)
	case bool:
		return any(raw.AsBool()).([]T)
	default:
		panic("unsupported type")
	}
}

// Raw returns the underlying RawTensor.
func (t *Typed[T]) Raw() *RawTensor {
	return t.raw
}

// Data returns the typed slice backing the container.
// WARNING: Modifications to the returned slice modify the container.
func (t *Typed[T]) Data() []T {
	return t.data
}

// Rank returns the number of dimensions.
func (t *Typed[T]) Rank() int {
	return t.raw.Rank()
}

// Shape returns the container's shape.
func (t *Typed[T]) Shape() Shape {
	return t.raw.Shape()
}

// Stride returns the memory stride of dimension d.
func (t *Typed[T]) Stride(d int) int {
	return t.raw.Strides()[d]
}

// Linear reports the addressing style: dense containers always support
// O(1) linear addressing.
func (t *Typed[T]) Linear() bool {
	return true
}

// LoadLinear returns the element at the given linear index.
// No bounds checking is performed.
func (t *Typed[T]) LoadLinear(i int) T {
	return t.data[i]
}

// StoreLinear sets the element at the given linear index.
// No bounds checking is performed.
func (t *Typed[T]) StoreLinear(i int, value T) {
	t.data[i] = value
}

// LoadAt returns the element at the given multi-dimensional coordinate.
// No bounds checking is performed.
func (t *Typed[T]) LoadAt(coord ...int) T {
	return t.data[t.linearize(coord)]
}

// StoreAt sets the element at the given multi-dimensional coordinate.
// No bounds checking is performed.
func (t *Typed[T]) StoreAt(value T, coord ...int) {
	t.data[t.linearize(coord)] = value
}

// StorageSpans returns the storage identities backing this container: a
// single span covering the whole buffer.
func (t *Typed[T]) StorageSpans() []Span {
	return []Span{{ID: t.raw.ID(), Lo: 0, Hi: t.raw.NumElements()}}
}

// linearize computes the flat index for a coordinate using strides.
func (t *Typed[T]) linearize(coord []int) int {
	strides := t.raw.Strides()
	if len(coord) != len(strides) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(strides), len(coord)))
	}
	offset := 0
	for i, idx := range coord {
		offset += idx * strides[i]
	}
	return offset
}
