// Copyright 2025-2026 The GridFn Authors. SPDX-License-Identifier: Apache-2.0

package grids

import (
	"github.com/gomlx/exceptions"
	"golang.org/x/exp/constraints"
)

// Numeric are the Go element types the materializers convert components to.
// Float16 and BFloat16 destinations are handled by the binding layer, which
// converts through float32 -- they are bit-field types in Go and must not
// take the plain numeric conversion below.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// checkRanks panics if the coordinate doesn't have one index per descriptor
// axis. Bindings established through gridfn/binding can never trip this.
func checkRanks(d Descriptor, t Coordinate) {
	if d.Rank() != len(t) {
		exceptions.Panicf("grids: coordinate %v has %d indices, descriptor %s has rank %d",
			t, len(t), d, d.Rank())
	}
}

// Array materializes the components of d at coordinate t in ascending axis
// order: out[i] = T(offset[i] + t[i]*stride[i]).
//
// The conversion to T follows Go's conversion rules for the destination type,
// so integer destinations truncate (wrap) out-of-range components.
func Array[T Numeric](d Descriptor, t Coordinate) []T {
	checkRanks(d, t)
	out := make([]T, d.Rank())
	for axis := range out {
		out[axis] = T(d.Component(axis, t))
	}
	return out
}

// Vector materializes the components of d at coordinate t in descending axis
// order: out[N-1-i] = T(offset[i] + t[i]*stride[i]).
//
// Vector is the exact index-reversal of Array. The vector representation on
// the kernel side orders components as the transpose of the array convention,
// so axis 0 lands in the last component. The asymmetry is load-bearing.
func Vector[T Numeric](d Descriptor, t Coordinate) []T {
	checkRanks(d, t)
	n := d.Rank()
	out := make([]T, n)
	for axis := 0; axis < n; axis++ {
		out[n-1-axis] = T(d.Component(axis, t))
	}
	return out
}

// Scalar materializes the single component of a rank-1 descriptor:
// T(offset[0] + t[0]*stride[0]).
//
// It panics if d has rank != 1. The binding layer only selects scalar
// materialization for rank-1 descriptors, so bound parameters cannot reach
// the panic.
func Scalar[T Numeric](d Descriptor, t Coordinate) T {
	if d.Rank() != 1 {
		exceptions.Panicf("grids.Scalar: descriptor %s has rank %d, scalar materialization requires rank 1",
			d, d.Rank())
	}
	checkRanks(d, t)
	return T(d.Component(0, t))
}
