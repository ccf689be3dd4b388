package binding

import (
	"sync"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/gridfn/gridfn/types/grids"
	"github.com/gridfn/gridfn/types/reprs"
)

func TestBindArray(t *testing.T) {
	b, err := Bind("idx", reprs.ArrayOf(dtypes.Int32, 2), DimWildcard, []int{10, 20}, []int{2, 3})
	require.NoError(t, err)
	require.Equal(t, "idx", b.Name())
	require.Equal(t, reprs.ArrayOf(dtypes.Int32, 2), b.Repr())
	require.Equal(t, 2, b.Rank())
	require.Equal(t, []int32{10, 23}, b.Materialize(grids.Coordinate{0, 1}))
	require.Equal(t, []int32{16, 29}, b.Materialize(grids.Coordinate{3, 3}))
}

func TestBindVector(t *testing.T) {
	b, err := Bind("idx", reprs.VectorOf(dtypes.Int32, 2), 2, []int{10, 20}, []int{2, 3})
	require.NoError(t, err)
	// Vector components are reverse-ordered relative to the array layout.
	require.Equal(t, []int32{23, 10}, b.Materialize(grids.Coordinate{0, 1}))
}

func TestBindScalar(t *testing.T) {
	b, err := Bind("i", reprs.ScalarOf(dtypes.Int64), DimWildcard, []int{5}, []int{4})
	require.NoError(t, err)
	require.Equal(t, int64(17), b.Materialize(grids.Coordinate{3}))
	require.Equal(t, int64(5), b.Materialize(grids.Coordinate{0}))

	// The same descriptor binds as a 1-element array as well.
	b, err = Bind("i", reprs.ArrayOf(dtypes.Int64, 1), DimWildcard, []int{5}, []int{4})
	require.NoError(t, err)
	require.Equal(t, []int64{17}, b.Materialize(grids.Coordinate{3}))
}

func TestBindFloat16(t *testing.T) {
	b, err := Bind("uv", reprs.VectorOf(dtypes.Float16, 2), DimWildcard, []int{10, 20}, []int{2, 3})
	require.NoError(t, err)
	want := []float16.Float16{float16.Fromfloat32(23), float16.Fromfloat32(10)}
	require.Equal(t, want, b.Materialize(grids.Coordinate{0, 1}))
}

func TestBindBFloat16(t *testing.T) {
	b, err := Bind("uv", reprs.ArrayOf(dtypes.BFloat16, 2), DimWildcard, []int{10, 20}, []int{2, 3})
	require.NoError(t, err)
	want := []bfloat16.BFloat16{bfloat16.FromFloat32(10), bfloat16.FromFloat32(23)}
	require.Equal(t, want, b.Materialize(grids.Coordinate{0, 1}))
}

func TestBindArityMismatch(t *testing.T) {
	// Offset and stride lengths disagree: nothing is constructed.
	b, err := Bind("idx", reprs.ArrayOf(dtypes.Int32, 2), DimWildcard, []int{10, 20}, []int{2, 3, 4})
	require.Error(t, err)
	require.True(t, errors.Is(err, grids.ErrArityMismatch))
	require.Nil(t, b)

	// Descriptor rank must agree with the resolved dimension.
	b, err = Bind("idx", reprs.ArrayOf(dtypes.Int32, 2), DimWildcard, []int{1, 2, 3}, []int{1, 2, 3})
	require.Error(t, err)
	require.True(t, errors.Is(err, grids.ErrArityMismatch))
	require.Nil(t, b)
}

func TestBindScalarOnRank2Rejected(t *testing.T) {
	// Scalar materialization of a 2-dimensional argument is rejected at bind
	// time, before any value is computed.
	b, err := Bind("idx", reprs.ScalarOf(dtypes.Int32), 2, []int{10, 20}, []int{2, 3})
	require.Error(t, err)
	var unsupported *UnsupportedVectorizationError
	require.True(t, errors.As(err, &unsupported))
	require.Nil(t, b)
}

// TestBindMalformedScalarRejected: a hand-built scalar Repr claiming a
// natural dimension other than 1 must fail at bind time. Letting it through
// would defer the failure to Materialize, breaking the promise that
// materialization never fails once a binding exists.
func TestBindMalformedScalarRejected(t *testing.T) {
	malformed := reprs.Repr{Kind: reprs.KindScalar, DType: dtypes.Int32, Dim: 5}
	offset := []int{0, 1, 2, 3, 4}
	stride := []int{1, 1, 1, 1, 1}
	for _, dim := range []int{DimWildcard, 1, 5} {
		b, err := Bind("hole", malformed, dim, offset, stride)
		require.Error(t, err)
		var unsupported *UnsupportedVectorizationError
		require.True(t, errors.As(err, &unsupported))
		require.Nil(t, b)
	}
}

func TestBindUnsupportedVectorization(t *testing.T) {
	b, err := Bind("flags", reprs.VectorOf(dtypes.Bool, 2), DimWildcard, []int{0, 0}, []int{1, 1})
	require.Error(t, err)
	var unsupported *UnsupportedVectorizationError
	require.True(t, errors.As(err, &unsupported))
	require.Nil(t, b)
}

// TestMaterializeConcurrent exercises the no-state-between-calls contract:
// one binding, many goroutines, each with its own coordinate.
func TestMaterializeConcurrent(t *testing.T) {
	b, err := Bind("idx", reprs.ArrayOf(dtypes.Int64, 2), DimWildcard, []int{0, 0}, []int{100, 1})
	require.NoError(t, err)
	var wg sync.WaitGroup
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			wg.Add(1)
			go func(x, y int) {
				defer wg.Done()
				got := b.Materialize(grids.Coordinate{x, y}).([]int64)
				// assert, not require: t.FailNow can't run off the test goroutine.
				assert.Equal(t, []int64{int64(100 * x), int64(y)}, got)
			}(x, y)
		}
	}
	wg.Wait()
}
