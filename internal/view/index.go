package view

import (
	"fmt"
	"strings"
)

// Index is a canonical per-dimension selector. The variant set is closed:
// Scalar, All, Range, List, and Coords. Index canonicalization (negative
// indices, booleans, end-relative forms) happens outside this package;
// views only ever see these five forms.
type Index interface {
	fmt.Stringer
	isIndex()
}

// Scalar selects a single position along one dimension. The dimension is
// dropped from the view's shape.
type Scalar int

func (Scalar) isIndex() {}

func (s Scalar) String() string { return fmt.Sprintf("%d", int(s)) }

// All selects an entire dimension, like a bare colon.
type All struct{}

func (All) isIndex() {}

func (All) String() string { return ":" }

// Range selects Len positions starting at Start with uniform Step.
// Step must be non-zero; canonical ranges have Len >= 0.
type Range struct {
	Start, Step, Len int
}

func (Range) isIndex() {}

func (r Range) String() string { return fmt.Sprintf("%d:%d:%d", r.Start, r.Step, r.Len) }

// List selects explicit positions along one dimension. Unlike Range, the
// positions need not be uniformly spaced, so List views never support
// strided addressing.
type List []int

func (List) isIndex() {}

func (l List) String() string {
	parts := make([]string, len(l))
	for i, p := range l {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Coords selects elements by explicit rank-N coordinates. A single Coords
// index consumes N parent dimensions and contributes one view dimension
// (one position per point).
type Coords struct {
	Rank   int
	Points [][]int
}

func (Coords) isIndex() {}

func (c Coords) String() string { return fmt.Sprintf("coords(%d)×%d", c.Rank, len(c.Points)) }

// consumed returns the number of parent dimensions the index covers.
func consumed(ix Index) int {
	if c, ok := ix.(Coords); ok {
		return c.Rank
	}
	return 1
}

// consumedDims sums consumed over an index list.
func consumedDims(idx []Index) int {
	n := 0
	for _, ix := range idx {
		n += consumed(ix)
	}
	return n
}

// hasCoords reports whether any index in the list is a Coords selector.
func hasCoords(idx []Index) bool {
	for _, ix := range idx {
		if _, ok := ix.(Coords); ok {
			return true
		}
	}
	return false
}

// selLen returns the number of positions the index selects; axisLen
// resolves All.
func selLen(ix Index, axisLen int) int {
	switch ix := ix.(type) {
	case Scalar:
		return 1
	case All:
		return axisLen
	case Range:
		return ix.Len
	case List:
		return len(ix)
	case Coords:
		return len(ix.Points)
	default:
		panic(fmt.Sprintf("unknown index variant %T", ix))
	}
}
