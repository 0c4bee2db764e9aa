package view

import (
	"unsafe"

	"github.com/strided-ml/strided/internal/tensor"
)

// Spanned is anything that can report the backing storage it touches.
// Both containers and views satisfy it.
type Spanned interface {
	StorageSpans() []tensor.Span
}

// StorageSpans returns the storage identities the view touches: the
// extent of parent storage its indices can address, plus the backing
// arrays of every array-valued index. Scalars and ranges carry no storage
// of their own.
//
// When the parent is a dense container the data span is trimmed to the
// exact element extent between the view's lowest and highest addresses;
// for layered parents the parent's own spans are reported unchanged,
// which is conservative but never misses an overlap.
func (v *View[T]) StorageSpans() []tensor.Span {
	var spans []tensor.Span
	if dense, ok := v.parent.(*tensor.Typed[T]); ok {
		if lo, hi, nonempty := v.extent(); nonempty {
			base := dense.StorageSpans()[0]
			spans = append(spans, tensor.Span{ID: base.ID, Lo: base.Lo + lo, Hi: base.Lo + hi})
		}
	} else {
		spans = append(spans, v.parent.StorageSpans()...)
	}
	for _, ix := range v.indices {
		spans = append(spans, indexSpans(ix)...)
	}
	return spans
}

// extent computes the lowest and highest (half-open) linear parent
// addresses the view can touch. Each dimension contributes its extreme
// selected positions independently; nonempty is false when some index
// selects nothing.
func (v *View[T]) extent() (lo, hi int, nonempty bool) {
	d := 0
	for _, ix := range v.indices {
		stride := 0
		if _, ok := ix.(Coords); !ok {
			stride = v.parent.Stride(d)
		}
		switch ix := ix.(type) {
		case Scalar:
			lo += int(ix) * stride
			hi += int(ix) * stride
		case All:
			hi += (v.parent.Shape()[d] - 1) * stride
		case Range:
			if ix.Len == 0 {
				return 0, 0, false
			}
			a := ix.Start * stride
			b := (ix.Start + ix.Step*(ix.Len-1)) * stride
			lo += min(a, b)
			hi += max(a, b)
		case List:
			if len(ix) == 0 {
				return 0, 0, false
			}
			a, b := ix[0], ix[0]
			for _, p := range ix[1:] {
				a = min(a, p)
				b = max(b, p)
			}
			lo += a * stride
			hi += b * stride
		case Coords:
			if len(ix.Points) == 0 {
				return 0, 0, false
			}
			for j := 0; j < ix.Rank; j++ {
				js := v.parent.Stride(d + j)
				a, b := ix.Points[0][j], ix.Points[0][j]
				for _, p := range ix.Points[1:] {
					a = min(a, p[j])
					b = max(b, p[j])
				}
				lo += a * js
				hi += b * js
			}
		}
		d += consumed(ix)
	}
	return lo, hi + 1, true
}

// indexSpans returns the storage identity of an array-valued index, keyed
// by the address of its backing array.
func indexSpans(ix Index) []tensor.Span {
	switch ix := ix.(type) {
	case List:
		if len(ix) == 0 {
			return nil
		}
		id := tensor.StorageID(uintptr(unsafe.Pointer(&ix[0])))
		return []tensor.Span{{ID: id, Lo: 0, Hi: len(ix)}}
	case Coords:
		if len(ix.Points) == 0 {
			return nil
		}
		id := tensor.StorageID(uintptr(unsafe.Pointer(&ix.Points[0])))
		return []tensor.Span{{ID: id, Lo: 0, Hi: len(ix.Points)}}
	default:
		return nil
	}
}

// MayAlias reports whether two expressions may reference overlapping
// storage, i.e. whether their span sets intersect. A false result
// guarantees independence; a true result is conservative.
func MayAlias(a, b Spanned) bool {
	bs := b.StorageSpans()
	for _, sa := range a.StorageSpans() {
		for _, sb := range bs {
			if sa.Overlaps(sb) {
				return true
			}
		}
	}
	return false
}

// Compact materializes a defensive copy of the view: a minimally-sized
// dense container holding exactly the elements the view addresses, read
// through the view's own access path. The returned view covers the whole
// private buffer, shares nothing with the original, and is safe to use as
// the input or output of an operation that cannot tolerate aliasing.
func Compact[T tensor.DType](v *View[T]) (*View[T], error) {
	dense, err := tensor.NewTyped[T](v.Shape().Clone())
	if err != nil {
		return nil, err
	}

	n := v.NumElements()
	for i := 0; i < n; i++ {
		dense.StoreLinear(i, v.LoadLinear(i))
	}

	full := make([]Index, v.Rank())
	for k := range full {
		full[k] = All{}
	}
	return New[T](dense, full...)
}
