package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strided-ml/strided/internal/tensor"
)

// flatten reads every element of the view in row-major order through the
// checked path.
func flatten(t *testing.T, v *View[float32]) []float32 {
	t.Helper()
	out := make([]float32, v.NumElements())
	coord := make([]int, v.Rank())
	for i := range out {
		v.Shape().Unravel(i, coord)
		val, err := v.At(coord...)
		require.NoError(t, err)
		out[i] = val
	}
	return out
}

func TestNewDimensionMismatch(t *testing.T) {
	parent := seq(t, tensor.Shape{3, 4})

	_, err := New[float32](parent, All{})
	assert.ErrorIs(t, err, ErrDimensionMismatch, "one index short")

	_, err = New[float32](parent, All{}, All{}, Scalar(1))
	assert.ErrorIs(t, err, ErrDimensionMismatch, "one non-redundant index long")
}

func TestNewDropsRedundantTrailing(t *testing.T) {
	parent := seq(t, tensor.Shape{2, 3})

	v, err := New[float32](parent, All{}, All{}, All{})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, v.Shape())

	v, err = New[float32](parent, All{}, All{}, Scalar(0))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, v.Shape())
	assert.True(t, v.IsContiguous())
}

func TestColumnViewScenario(t *testing.T) {
	// parent = [[1,2],[3,4]]; first column through (All, Scalar(0)).
	parent, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)

	v, err := New[float32](parent, All{}, Scalar(0))
	require.NoError(t, err)
	assert.True(t, v.IsFast())
	assert.False(t, v.IsContiguous())
	assert.Equal(t, Plan{Fast: true}, v.Plan())
	assert.Equal(t, tensor.Shape{2}, v.Shape())
	assert.Equal(t, []float32{1, 3}, flatten(t, v))

	// Writing through the view mutates the parent: [[0,2],[0,4]].
	require.NoError(t, v.SetAt(0, 0))
	require.NoError(t, v.SetAt(0, 1))
	assert.Equal(t, []float32{0, 2, 0, 4}, parent.Data())
}

func TestEnumerationMatchesDirectIndexing(t *testing.T) {
	parent := seq(t, tensor.Shape{3, 4}) // values 0..11, value == linear address

	tests := []struct {
		name     string
		indices  []Index
		expected []float32
	}{
		{"column", []Index{All{}, Scalar(2)}, []float32{2, 6, 10}},
		{"row slice", []Index{Scalar(1), Range{1, 2, 2}}, []float32{5, 7}},
		{"list by range", []Index{List{2, 0}, Range{0, 3, 2}}, []float32{8, 11, 0, 3}},
		{"range by list", []Index{Range{0, 1, 2}, List{3, 1}}, []float32{3, 1, 7, 5}},
		{"full", []Index{All{}, All{}}, []float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{"coords", []Index{Coords{Rank: 2, Points: [][]int{{0, 1}, {2, 3}, {1, 0}}}}, []float32{1, 11, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New[float32](parent, tt.indices...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, flatten(t, v))

			// LoadLinear enumerates the same elements in the same order,
			// whichever path the classifier picked.
			for i, want := range tt.expected {
				assert.Equal(t, want, v.LoadLinear(i), "element %d", i)
			}
		})
	}
}

func TestFastPathAgreesWithGenericPath(t *testing.T) {
	parent := seq(t, tensor.Shape{4, 4})

	fastCases := [][]Index{
		{All{}, Scalar(1)},
		{Scalar(2), All{}},
		{Scalar(0), Range{1, 1, 3}},
		{Range{0, 2, 2}, Scalar(3)},
		{Range{1, 1, 3}, All{}},
		{All{}, All{}},
	}

	for _, indices := range fastCases {
		v, err := New[float32](parent, indices...)
		require.NoError(t, err)
		require.True(t, v.IsFast(), "indices %v", indices)

		offset, stride, err := v.LinearAccess()
		require.NoError(t, err)

		coord := make([]int, v.Rank())
		for i := 0; i < v.NumElements(); i++ {
			v.Shape().Unravel(i, coord)
			generic := v.LoadAt(coord...)
			assert.Equal(t, generic, v.LoadLinear(i), "indices %v element %d", indices, i)
			assert.Equal(t, generic, parent.LoadLinear(offset+stride*i), "indices %v element %d via raw arithmetic", indices, i)
		}
	}
}

func TestZeroRankView(t *testing.T) {
	parent, err := tensor.FromSlice([]float32{7}, tensor.Shape{})
	require.NoError(t, err)

	v, err := New[float32](parent)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Rank())
	assert.True(t, v.IsFast())
	assert.True(t, v.IsContiguous())

	got, err := v.At()
	require.NoError(t, err)
	assert.Equal(t, float32(7), got)

	require.NoError(t, v.SetAt(9))
	assert.Equal(t, float32(9), parent.LoadLinear(0))
}

func TestCheckedAccess(t *testing.T) {
	v, err := New[float32](seq(t, tensor.Shape{3, 4}), All{}, All{})
	require.NoError(t, err)

	_, err = v.At(5, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = v.At(0, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = v.At(1)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	assert.ErrorIs(t, v.SetAt(0, 0, 4), ErrOutOfBounds)
}

func TestCoordsRankAdapter(t *testing.T) {
	// A rank-2 coordinate list against a rank-3 parent: the parent is
	// logically regrouped to 2 dimensions (trailing dims merged) without
	// copying.
	parent := seq(t, tensor.Shape{2, 3, 4})

	pts := [][]int{{0, 0}, {1, 11}, {1, 3}}
	v, err := New[float32](parent, Coords{Rank: 2, Points: pts})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{3}, v.Shape())
	assert.False(t, v.IsFast())
	assert.Equal(t, []float32{0, 23, 15}, flatten(t, v))

	// A dense parent regroups through a zero-copy reshape of its storage.
	merged, ok := v.Parent().(*tensor.Typed[float32])
	require.True(t, ok)
	assert.Equal(t, tensor.Shape{2, 12}, merged.Shape())
	assert.Equal(t, parent.Raw().ID(), merged.Raw().ID())

	// Writes still land in the original storage.
	require.NoError(t, v.SetAt(-1, 1))
	assert.Equal(t, float32(-1), parent.LoadLinear(23))
}

func TestCoordsRankAdapterLayeredParent(t *testing.T) {
	// A non-dense parent cannot reshape its storage; the regrouping goes
	// through the generic adapter instead.
	base := seq(t, tensor.Shape{2, 3, 4})
	inner, err := New[float32](base, All{}, Range{0, 1, 3}, All{})
	require.NoError(t, err)

	pts := [][]int{{0, 0}, {1, 11}}
	v, err := New[float32](inner, Coords{Rank: 2, Points: pts})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2}, v.Shape())
	assert.Equal(t, []float32{0, 23}, flatten(t, v))

	require.NoError(t, v.SetAt(-1, 1))
	assert.Equal(t, float32(-1), base.LoadLinear(23))
}

func TestStrides(t *testing.T) {
	parent := seq(t, tensor.Shape{3, 4})

	v, err := New[float32](parent, All{}, Range{1, 2, 2})
	require.NoError(t, err)
	strides, err := v.Strides()
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, strides)

	lv, err := New[float32](parent, List{0, 2}, All{})
	require.NoError(t, err)
	_, err = lv.Strides()
	assert.ErrorIs(t, err, ErrNonStridedView)

	_, _, err = lv.LinearAccess()
	assert.ErrorIs(t, err, ErrNonStridedView)
}
