package view

import "github.com/strided-ml/strided/internal/tensor"

// Plan is the construction-time addressing classification of an index
// list. Fast views are addressable by a single linear index through a
// precomputed offset and stride; contiguous views additionally occupy
// consecutive storage (stride 1), so the multiply can be elided.
type Plan struct {
	Fast       bool
	Contiguous bool
}

// classify decides whether an index list over a row-major parent supports
// O(1) linear addressing.
//
// The decision is structural (index types, not values), with one value
// refinement: a Range followed by full selections must have unit step.
// Scanning from the innermost (last) dimension outward:
//
//   - trailing Scalars only contribute to the offset;
//   - then a run of All selections;
//   - then at most one Range (unit-step if any All followed it);
//   - everything outward of that must be Scalar.
//
// List and Coords indices anywhere, or a parent without O(1) linear
// addressing, force the generic path.
func classify(idx []Index, parentLinear bool) bool {
	if !parentLinear {
		return false
	}

	i := len(idx) - 1
	for i >= 0 {
		if _, ok := idx[i].(Scalar); !ok {
			break
		}
		i--
	}

	sawAll := false
	for i >= 0 {
		if _, ok := idx[i].(All); !ok {
			break
		}
		sawAll = true
		i--
	}

	if i >= 0 {
		if r, ok := idx[i].(Range); ok {
			if sawAll && r.Step != 1 {
				return false
			}
			i--
		}
	}

	for ; i >= 0; i-- {
		if _, ok := idx[i].(Scalar); !ok {
			return false
		}
	}
	return true
}

// plan classifies an index list and, for fast views, derives contiguity
// from the computed stride. Contiguity is an optimization hint: it never
// changes which elements a view addresses.
func plan[T tensor.DType](parent Container[T], idx []Index) Plan {
	p := Plan{Fast: classify(idx, parent.Linear())}
	if p.Fast {
		p.Contiguous = linearStride(parent, idx) == 1
	}
	return p
}
