package grids

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mkDescriptor(t *testing.T, offset, stride []int) Descriptor {
	d, err := NewDescriptor(offset, stride)
	require.NoError(t, err)
	return d
}

func TestArray(t *testing.T) {
	d := mkDescriptor(t, []int{10, 20}, []int{2, 3})
	require.Equal(t, []int32{10, 23}, Array[int32](d, Coordinate{0, 1}))
	require.Equal(t, []int32{12, 20}, Array[int32](d, Coordinate{1, 0}))
	require.Equal(t, []float64{14, 26}, Array[float64](d, Coordinate{2, 2}))

	// Rank 1 arrays work too.
	d = mkDescriptor(t, []int{5}, []int{4})
	require.Equal(t, []int32{17}, Array[int32](d, Coordinate{3}))
}

// TestVectorIsReversedArray pins down the vector layout: vectors are the
// exact index-reversal of arrays. The kernel side orders vector components as
// the transpose of the array convention, so this asymmetry is deliberate and
// must never be "fixed" to match Array.
func TestVectorIsReversedArray(t *testing.T) {
	d := mkDescriptor(t, []int{10, 20}, []int{2, 3})
	require.Equal(t, []int32{23, 10}, Vector[int32](d, Coordinate{0, 1}))

	d = mkDescriptor(t, []int{1, 2, 3}, []int{10, 100, 1000})
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			for z := 0; z < 3; z++ {
				coord := Coordinate{x, y, z}
				array := Array[int64](d, coord)
				vector := Vector[int64](d, coord)
				require.Len(t, vector, len(array))
				for i := range array {
					require.Equal(t, array[len(array)-1-i], vector[i],
						"vector must be the index-reversal of array at coord %v", coord)
				}
			}
		}
	}
}

func TestScalar(t *testing.T) {
	d := mkDescriptor(t, []int{5}, []int{4})
	require.Equal(t, int32(17), Scalar[int32](d, Coordinate{3}))
	require.Equal(t, float32(5), Scalar[float32](d, Coordinate{0}))

	// Scalar materialization requires rank 1.
	d2 := mkDescriptor(t, []int{10, 20}, []int{2, 3})
	require.Panics(t, func() { Scalar[int32](d2, Coordinate{0, 1}) })
}

func TestRankDisagreementPanics(t *testing.T) {
	d := mkDescriptor(t, []int{10, 20}, []int{2, 3})
	require.Panics(t, func() { Array[int32](d, Coordinate{0}) })
	require.Panics(t, func() { Vector[int32](d, Coordinate{0, 1, 2}) })
}

func TestBroadcastStride(t *testing.T) {
	// Zero stride on all axes but one: plain formula, no special-casing.
	d := mkDescriptor(t, []int{7, 0}, []int{0, 5})
	require.Equal(t, []int32{7, 0}, Array[int32](d, Coordinate{9, 0}))
	require.Equal(t, []int32{7, 15}, Array[int32](d, Coordinate{3, 3}))
}

func TestTruncatingCasts(t *testing.T) {
	// Out-of-range components wrap the way Go integer conversions do, they
	// don't saturate.
	d := mkDescriptor(t, []int{300}, []int{1})
	require.Equal(t, int8(44), Scalar[int8](d, Coordinate{0}))

	d = mkDescriptor(t, []int{-1}, []int{1})
	require.Equal(t, uint8(255), Scalar[uint8](d, Coordinate{0}))
	require.Equal(t, []uint16{65535}, Array[uint16](d, Coordinate{0}))
}
