package view

import (
	"errors"
	"fmt"
)

// Reindex composes a view's index list (outer) with a further selection
// applied to that view (inner) into a single index list against the
// view's parent, so a view of a view costs one indirection layer, not two.
//
// The outer list is walked left to right against a cursor into the inner
// list:
//
//   - an outer Scalar already dropped its dimension: it is kept verbatim
//     and consumes no inner index;
//   - an outer All is the identity along its dimension: the next inner
//     index substitutes verbatim;
//   - an outer Range or List is gathered through the next inner index,
//     result[k] = outer[inner[k]];
//   - an inner Coords may substitute verbatim only when every outer
//     dimension it spans is All.
//
// Compositions involving an outer Coords (or an inner Coords landing on
// non-All outer indices) cannot be expressed as a flat substitution;
// Reindex reports errNoCollapse and Slice keeps the two-layer view
// instead. Exhausting the inner list early, or leaving part of it
// unconsumed, fails with ErrReindexArity: correct callers never do either.
func Reindex(outer, inner []Index) ([]Index, error) {
	out := make([]Index, 0, len(outer))
	i := 0 // cursor into outer
	c := 0 // cursor into inner
	for i < len(outer) {
		ox := outer[i]

		if _, ok := ox.(Scalar); ok {
			out = append(out, ox)
			i++
			continue
		}
		if _, ok := ox.(Coords); ok {
			return nil, errNoCollapse
		}

		if c >= len(inner) {
			return nil, fmt.Errorf("%w: outer %v, inner %v", ErrReindexArity, outer, inner)
		}
		in := inner[c]

		if cr, ok := in.(Coords); ok {
			// A rank-N coordinate list re-selects N view dimensions at
			// once; verbatim substitution is sound only across N
			// identity (All) outer indices.
			for k := 0; k < cr.Rank; k++ {
				if i+k >= len(outer) {
					return nil, fmt.Errorf("%w: outer %v, inner %v", ErrReindexArity, outer, inner)
				}
				if _, ok := outer[i+k].(All); !ok {
					return nil, errNoCollapse
				}
			}
			out = append(out, cr)
			i += cr.Rank
			c++
			continue
		}

		composed, err := gather(ox, in)
		if err != nil {
			return nil, err
		}
		out = append(out, composed)
		i++
		c++
	}
	if c != len(inner) {
		return nil, fmt.Errorf("%w: %d inner indices unconsumed", ErrReindexArity, len(inner)-c)
	}
	return out, nil
}

// gather applies an outer selector to an inner one: the composed index
// selects, along the parent dimension, the outer positions that the inner
// index picks from the view dimension.
func gather(outer, inner Index) (Index, error) {
	if _, ok := inner.(All); ok {
		return outer, nil
	}

	switch o := outer.(type) {
	case All:
		return inner, nil
	case Range:
		switch in := inner.(type) {
		case Scalar:
			return Scalar(o.Start + o.Step*int(in)), nil
		case Range:
			return Range{Start: o.Start + o.Step*in.Start, Step: o.Step * in.Step, Len: in.Len}, nil
		case List:
			out := make(List, len(in))
			for k, p := range in {
				out[k] = o.Start + o.Step*p
			}
			return out, nil
		}
	case List:
		switch in := inner.(type) {
		case Scalar:
			return Scalar(o[in]), nil
		case Range:
			out := make(List, in.Len)
			for k := 0; k < in.Len; k++ {
				out[k] = o[in.Start+in.Step*k]
			}
			return out, nil
		case List:
			out := make(List, len(in))
			for k, p := range in {
				out[k] = o[p]
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("reindex: cannot compose %s with %s", outer, inner)
}

// Slice constructs a view of this view. Where the index lists compose, the
// result selects directly from this view's parent (a single indirection
// layer); in the Coords cases Reindex cannot flatten, the result keeps
// this view as its parent. Either way the elements read and written are
// identical.
func (v *View[T]) Slice(indices ...Index) (*View[T], error) {
	if need := consumedDims(indices); need != v.Rank() {
		return nil, fmt.Errorf("%w: %d index dimensions for rank-%d view",
			ErrDimensionMismatch, need, v.Rank())
	}
	combined, err := Reindex(v.indices, indices)
	if errors.Is(err, errNoCollapse) {
		return New[T](Container[T](v), indices...)
	}
	if err != nil {
		return nil, err
	}
	return New[T](v.parent, combined...)
}
