// Copyright 2025-2026 The GridFn Authors. SPDX-License-Identifier: Apache-2.0

// Package grids defines the Descriptor and Coordinate types and the value
// materializers that derive per-invocation arguments from them.
//
// A kernel is dispatched over an N-dimensional grid: every point of the grid
// is one invocation, identified by a Coordinate. A Descriptor holds a per-axis
// (offset, stride) pair, and the materializers combine the two into the value
// handed to the kernel, one component per axis:
//
//	vᵢ = offset[i] + t[i]*stride[i]
//
// The component values can be laid out in three shapes, selected at bind time
// by the binding package (see gridfn/binding) and never re-decided per
// invocation:
//
//   - Array: components in ascending axis order.
//   - Vector: components in descending axis order. The reversal is the vector
//     component-ordering convention of the kernel side of the system, the
//     transpose of the array convention. It is deliberate; do not "fix" it.
//   - Scalar: the single component of a rank-1 descriptor.
//
// ## Glossary
//
//   - Grid: the N-dimensional index space a kernel is dispatched over.
//   - Rank: number of axes of a grid or descriptor.
//   - Coordinate: the N indices identifying one invocation within the grid.
//   - Broadcast: a zero stride on an axis, making the component constant
//     across that axis. Negative strides (reversed iteration) are equally
//     legal; this layer enforces no bounds beyond rank agreement.
//
// Materializers are pure functions of (Descriptor, Coordinate): no state, no
// error paths, safe to call from any number of goroutines concurrently.
// Rank disagreement between a Descriptor and a Coordinate is an API misuse
// and panics with a stack trace (see github.com/gomlx/exceptions); the
// binding layer guarantees it cannot happen for a successfully bound
// parameter.
package grids

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrArityMismatch is returned (wrapped) by NewDescriptor when the offset and
// stride sequences disagree in length, or when the rank would be zero.
var ErrArityMismatch = errors.New("arity mismatch")

// Descriptor holds the addressing parameters of one grid-bound kernel
// argument: an offset and a stride per grid axis.
//
// It is immutable after construction and shared read-only across all
// invocations of a binding, so it requires no synchronization.
type Descriptor struct {
	offset, stride []int
}

// Coordinate identifies one invocation within the dispatch grid: one
// non-negative index per grid axis. It is produced by the dispatch runtime
// and only borrowed by materializers for the duration of a call.
type Coordinate []int

// NewDescriptor builds a Descriptor from one offset and one stride per axis.
//
// Both sequences must have the same non-zero length; otherwise it returns an
// error wrapping ErrArityMismatch and no Descriptor is constructed. The
// values themselves are unconstrained: zero strides broadcast an axis and
// negative strides iterate it in reverse.
func NewDescriptor(offset, stride []int) (Descriptor, error) {
	if len(offset) != len(stride) {
		return Descriptor{}, errors.Wrapf(ErrArityMismatch,
			"grids.NewDescriptor: %d offsets and %d strides", len(offset), len(stride))
	}
	if len(offset) == 0 {
		return Descriptor{}, errors.Wrap(ErrArityMismatch,
			"grids.NewDescriptor: rank must be at least 1")
	}
	d := Descriptor{
		offset: make([]int, len(offset)),
		stride: make([]int, len(stride)),
	}
	copy(d.offset, offset)
	copy(d.stride, stride)
	return d, nil
}

// Ok reports whether the Descriptor was properly constructed -- the zero
// Descriptor{} is not valid.
func (d Descriptor) Ok() bool { return len(d.offset) > 0 }

// Rank returns the number of grid axes the Descriptor addresses.
func (d Descriptor) Rank() int { return len(d.offset) }

// Offset returns the base value of the given axis.
func (d Descriptor) Offset(axis int) int { return d.offset[axis] }

// Stride returns the per-step multiplier of the given axis.
func (d Descriptor) Stride(axis int) int { return d.stride[axis] }

// Component computes the derived value of one axis for the coordinate t:
// offset[axis] + t[axis]*stride[axis].
func (d Descriptor) Component(axis int, t Coordinate) int {
	return d.offset[axis] + t[axis]*d.stride[axis]
}

// String implements fmt.Stringer, pretty-prints the per-axis pairs.
func (d Descriptor) String() string {
	parts := make([]string, 0, d.Rank())
	for axis := range d.offset {
		parts = append(parts, fmt.Sprintf("%d:%+d", d.offset[axis], d.stride[axis]))
	}
	return fmt.Sprintf("grid[%s]", strings.Join(parts, " "))
}
