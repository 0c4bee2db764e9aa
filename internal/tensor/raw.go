package tensor

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// StorageID is an opaque handle identifying a backing buffer.
type StorageID uintptr

// Span is a storage identity: a backing buffer plus the half-open element
// extent touched within it. Two expressions may alias only if their span
// sets intersect.
type Span struct {
	ID     StorageID
	Lo, Hi int
}

// Overlaps reports whether two spans touch common storage.
func (s Span) Overlaps(o Span) bool {
	return s.ID != 0 && s.ID == o.ID && s.Lo < o.Hi && o.Lo < s.Hi
}

// storageBuffer is a reference-counted shared buffer. Many containers and
// views may reference the same buffer; it is deallocated when the last
// reference drops.
type storageBuffer struct {
	data     []byte
	refCount atomic.Int32
	mu       sync.Mutex // For safe deallocation
}

// newStorageBuffer creates a new reference-counted buffer with refCount = 1.
func newStorageBuffer(size int) *storageBuffer {
	buf := &storageBuffer{
		data: make([]byte, size),
	}
	buf.refCount.Store(1)
	return buf
}

// addRef increments the reference count (for Clone operations).
func (sb *storageBuffer) addRef() {
	sb.refCount.Add(1)
}

// release decrements the reference count and deallocates if it reaches 0.
func (sb *storageBuffer) release() {
	if sb.refCount.Add(-1) == 0 {
		sb.mu.Lock()
		defer sb.mu.Unlock()
		sb.data = nil
	}
}

// isUnique returns true if this buffer has only one reference.
func (sb *storageBuffer) isUnique() bool {
	return sb.refCount.Load() == 1
}

// id returns the storage identity of the buffer.
func (sb *storageBuffer) id() StorageID {
	if len(sb.data) == 0 {
		return 0
	}
	return StorageID(uintptr(unsafe.Pointer(&sb.data[0])))
}

// RawTensor is the low-level dense container representation.
// It uses reference-counted shared buffers so that views and clones can
// share storage without copying.
type RawTensor struct {
	buffer *storageBuffer // Shared reference-counted buffer
	shape  Shape          // Container dimensions
	stride []int          // Memory strides (row-major)
	dtype  DataType       // Runtime type information
	offset int            // Byte offset for slicing/views
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated but not initialized (contains zeros).
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	numElements := shape.NumElements()
	byteSize := numElements * dtype.Size()

	return &RawTensor{
		buffer: newStorageBuffer(byteSize),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		offset: 0,
	}, nil
}

// Shape returns the container's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the container's memory strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// Rank returns the number of dimensions.
func (r *RawTensor) Rank() int {
	return len(r.shape)
}

// DType returns the container's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// ID returns the storage identity of the container's backing buffer.
func (r *RawTensor) ID() StorageID {
	return r.buffer.id()
}

// Data returns the raw byte slice.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.buffer.data[r.offset:]
}

// AsFloat32 interprets the data as []float32.
// Panics if the container's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("container dtype is %s, not float32", r.dtype))
	}
	data := r.buffer.data[r.offset:]
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the container's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("container dtype is %s, not float64", r.dtype))
	}
	data := r.buffer.data[r.offset:]
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsInt32 interprets the data as []int32.
// Panics if the container's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("container dtype is %s, not int32", r.dtype))
	}
	data := r.buffer.data[r.offset:]
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsInt64 interprets the data as []int64.
// Panics if the container's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 {
	if r.dtype != Int64 {
		panic(fmt.Sprintf("container dtype is %s, not int64", r.dtype))
	}
	data := r.buffer.data[r.offset:]
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*int64)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsUint8 interprets the data as []uint8.
// Panics if the container's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	if r.dtype != Uint8 {
		panic(fmt.Sprintf("container dtype is %s, not uint8", r.dtype))
	}
	return r.buffer.data[r.offset:] // Already []byte = []uint8
}

// AsBool interprets the data as []bool.
// Panics if the container's dtype is not Bool.
func (r *RawTensor) AsBool() []bool {
	if r.dtype != Bool {
		panic(fmt.Sprintf("container dtype is %s, not bool", r.dtype))
	}
	data := r.buffer.data[r.offset:]
	if len(data) == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy performance, bounds checked by NumElements()
	return unsafe.Slice((*bool)(unsafe.Pointer(&data[0])), r.NumElements())
}

// Clone creates a shallow copy of the RawTensor (shares buffer with
// reference counting). Element data is shared, not copied.
func (r *RawTensor) Clone() *RawTensor {
	r.buffer.addRef() // Increment reference count
	return &RawTensor{
		buffer: r.buffer, // Share the same buffer
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...), // Copy strides
		dtype:  r.dtype,
		offset: r.offset,
	}
}

// Reshape returns a logical view of the same storage with a different shape.
// The new shape must cover the same number of elements; no data is copied.
func (r *RawTensor) Reshape(shape Shape) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != r.NumElements() {
		return nil, fmt.Errorf("cannot reshape %v (%d elements) to %v (%d elements)",
			r.shape, r.NumElements(), shape, shape.NumElements())
	}

	r.buffer.addRef()
	return &RawTensor{
		buffer: r.buffer,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  r.dtype,
		offset: r.offset,
	}, nil
}

// Release decrements the reference count and deallocates if it reaches 0.
func (r *RawTensor) Release() {
	r.buffer.release()
}

// IsUnique returns true if this container is the only reference to the buffer.
func (r *RawTensor) IsUnique() bool {
	return r.buffer.isUnique()
}

// String returns a human-readable representation of the container.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor[%s]%v", r.dtype, r.shape)
}
