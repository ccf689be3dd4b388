// Copyright 2025-2026 The GridFn Authors. SPDX-License-Identifier: Apache-2.0

package binding

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/gridfn/gridfn/types/grids"
	"github.com/gridfn/gridfn/types/reprs"
)

// materializeFn is the per-binding frozen materializer: given the invocation
// coordinate it returns the argument value, a T or []T for the binding's
// element type. Selected once at bind time; no shape or dtype decisions are
// left for invocation time.
type materializeFn func(t grids.Coordinate) any

// newMaterializer picks the materializer for the resolved representation r
// over descriptor d. Kind and dtype dispatch happen here, once; the returned
// closure only runs the addressing arithmetic and the element conversion.
func newMaterializer(d grids.Descriptor, r reprs.Repr) (materializeFn, error) {
	switch r.DType {
	case dtypes.Int8:
		return kindMaterializer[int8](d, r.Kind)
	case dtypes.Int16:
		return kindMaterializer[int16](d, r.Kind)
	case dtypes.Int32:
		return kindMaterializer[int32](d, r.Kind)
	case dtypes.Int64:
		return kindMaterializer[int64](d, r.Kind)
	case dtypes.Uint8:
		return kindMaterializer[uint8](d, r.Kind)
	case dtypes.Uint16:
		return kindMaterializer[uint16](d, r.Kind)
	case dtypes.Uint32:
		return kindMaterializer[uint32](d, r.Kind)
	case dtypes.Uint64:
		return kindMaterializer[uint64](d, r.Kind)
	case dtypes.Float32:
		return kindMaterializer[float32](d, r.Kind)
	case dtypes.Float64:
		return kindMaterializer[float64](d, r.Kind)
	case dtypes.Float16:
		// Float16 is a bit-field type in Go, converted through float32.
		return convertedMaterializer(d, r.Kind, func(v int) float16.Float16 {
			return float16.Fromfloat32(float32(v))
		})
	case dtypes.BFloat16:
		return convertedMaterializer(d, r.Kind, func(v int) bfloat16.BFloat16 {
			return bfloat16.FromFloat32(float32(v))
		})
	default:
		return nil, errors.Errorf("binding: no materializer for element dtype %s", r.DType)
	}
}

func kindMaterializer[T grids.Numeric](d grids.Descriptor, kind reprs.Kind) (materializeFn, error) {
	switch kind {
	case reprs.KindScalar:
		return func(t grids.Coordinate) any { return grids.Scalar[T](d, t) }, nil
	case reprs.KindArray:
		return func(t grids.Coordinate) any { return grids.Array[T](d, t) }, nil
	case reprs.KindVector:
		return func(t grids.Coordinate) any { return grids.Vector[T](d, t) }, nil
	default:
		return nil, errors.Errorf("binding: no materializer for representation kind %s", kind)
	}
}

// convertedMaterializer serves element types that cannot take Go's plain
// numeric conversion from int: each component goes through conv instead. The
// layout rules are the same as the grids materializers, including the vector
// reversal.
func convertedMaterializer[T any](d grids.Descriptor, kind reprs.Kind, conv func(v int) T) (materializeFn, error) {
	n := d.Rank()
	switch kind {
	case reprs.KindScalar:
		return func(t grids.Coordinate) any {
			// Scalar resolution guarantees rank 1; reuse the checked path.
			return conv(grids.Scalar[int](d, t))
		}, nil
	case reprs.KindArray:
		return func(t grids.Coordinate) any {
			components := grids.Array[int](d, t)
			out := make([]T, n)
			for axis, v := range components {
				out[axis] = conv(v)
			}
			return out
		}, nil
	case reprs.KindVector:
		return func(t grids.Coordinate) any {
			components := grids.Vector[int](d, t)
			out := make([]T, n)
			for i, v := range components {
				out[i] = conv(v)
			}
			return out
		}, nil
	default:
		return nil, errors.Errorf("binding: no materializer for representation kind %s", kind)
	}
}
