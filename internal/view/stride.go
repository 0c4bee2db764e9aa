package view

import (
	"fmt"

	"github.com/strided-ml/strided/internal/tensor"
)

// linearStride computes the access stride of a fast view: the parent
// stride of the innermost non-scalar dimension, scaled by that index's
// step. A view with only scalar indices degenerates to stride 1.
//
// Only defined for index lists the classifier accepted; List and Coords
// indices have no uniform stride.
func linearStride[T tensor.DType](parent Container[T], idx []Index) int {
	stride := 1
	d := 0
	for _, ix := range idx {
		switch ix := ix.(type) {
		case Scalar:
			d++
		case All:
			stride = parent.Stride(d)
			d++
		case Range:
			stride = parent.Stride(d) * ix.Step
			d++
		default:
			panic(fmt.Sprintf("linearStride: non-strided index %s", ix))
		}
	}
	return stride
}

// linearOffset computes the linear address of the view's first logical
// element within the parent: the sum over dimensions of the index's start
// position times the parent stride.
func linearOffset[T tensor.DType](parent Container[T], idx []Index) int {
	offset := 0
	d := 0
	for _, ix := range idx {
		switch ix := ix.(type) {
		case Scalar:
			offset += int(ix) * parent.Stride(d)
			d++
		case All:
			d++
		case Range:
			offset += ix.Start * parent.Stride(d)
			d++
		default:
			panic(fmt.Sprintf("linearOffset: non-strided index %s", ix))
		}
	}
	return offset
}

// dimStrides computes the view's per-dimension strides into the parent's
// linear address space: the parent stride scaled by the index step for
// each dimension the view keeps. Fails with ErrNonStridedView when any
// selecting index is not a uniform-step range.
func dimStrides[T tensor.DType](parent Container[T], idx []Index) ([]int, error) {
	strides := make([]int, 0, parent.Rank())
	d := 0
	for _, ix := range idx {
		switch ix := ix.(type) {
		case Scalar:
			d++
		case All:
			strides = append(strides, parent.Stride(d))
			d++
		case Range:
			strides = append(strides, parent.Stride(d)*ix.Step)
			d++
		default:
			return nil, fmt.Errorf("%w: index %s has no uniform step", ErrNonStridedView, ix)
		}
	}
	return strides, nil
}
