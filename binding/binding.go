// Copyright 2025-2026 The GridFn Authors. SPDX-License-Identifier: Apache-2.0

// Package binding resolves kernel parameters to their bound representation
// and freezes, per parameter, the materializer that produces its value for
// every invocation of a launch.
//
// Binding happens once per kernel parameter, before any invocation runs:
//
//  1. Vectorize maps the parameter's declared type and the caller-requested
//     dimensionality (possibly DimWildcard) to the concrete representation
//     type, or fails with UnsupportedVectorizationError.
//  2. The grid Descriptor is built from the caller's offset/stride pairs,
//     which must agree with each other and with the resolved dimension
//     (grids.ErrArityMismatch otherwise).
//  3. The materializer matching (representation kind, element dtype) is
//     selected and captured in the Binding.
//
// After Bind succeeds nothing can fail anymore: Binding.Materialize is a pure
// function of the invocation coordinate, callable concurrently, with no shape
// or dtype branching left on the invocation path. All failure modes surface
// as errors from Bind, naming the parameter type and requested dimension, and
// no partial Binding is ever returned.
package binding

import (
	"fmt"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gridfn/gridfn/types/grids"
	"github.com/gridfn/gridfn/types/reprs"
)

// Binding is one successfully bound kernel parameter: the resolved
// representation type, the immutable grid Descriptor, and the frozen
// materializer. Create it with Bind.
//
// A Binding is immutable and safe for concurrent use by any number of
// invocations.
type Binding struct {
	name        string
	param       reprs.Repr
	requested   int
	repr        reprs.Repr
	descriptor  grids.Descriptor
	materialize materializeFn
}

// Bind establishes the binding of one kernel parameter.
//
// p is the parameter's declared type, dim the requested dimensionality
// (DimWildcard for p's natural dimension), and offset/stride the per-axis
// addressing pairs, one per dimension of the resolved representation.
//
// Errors: *UnsupportedVectorizationError when no resolution rule matches
// (p, dim); an error wrapping grids.ErrArityMismatch when offset and stride
// disagree in length or don't match the resolved dimension. Both are bind
// time failures -- once Bind returns a Binding, materialization cannot fail.
func Bind(name string, p reprs.Repr, dim int, offset, stride []int) (*Binding, error) {
	repr, err := Vectorize(p, dim)
	if err != nil {
		return nil, errors.WithMessagef(err, "binding %q", name)
	}
	descriptor, err := grids.NewDescriptor(offset, stride)
	if err != nil {
		return nil, errors.WithMessagef(err, "binding %q as %s", name, repr)
	}
	if descriptor.Rank() != repr.Dim {
		return nil, errors.Wrapf(grids.ErrArityMismatch,
			"binding %q: descriptor rank %d does not agree with representation %s",
			name, descriptor.Rank(), repr)
	}
	materialize, err := newMaterializer(descriptor, repr)
	if err != nil {
		return nil, errors.WithMessagef(err, "binding %q", name)
	}
	b := &Binding{
		name:        name,
		param:       p,
		requested:   dim,
		repr:        repr,
		descriptor:  descriptor,
		materialize: materialize,
	}
	klog.V(1).Infof("bound %s", b)
	return b, nil
}

// Name returns the parameter name the binding was created with.
func (b *Binding) Name() string { return b.name }

// Repr returns the resolved representation type.
func (b *Binding) Repr() reprs.Repr { return b.repr }

// Descriptor returns the binding's grid descriptor.
func (b *Binding) Descriptor() grids.Descriptor { return b.descriptor }

// Rank returns the number of grid axes the binding addresses.
func (b *Binding) Rank() int { return b.descriptor.Rank() }

// Materialize produces the parameter's value for the invocation at coordinate
// t: a T for scalar bindings and a []T for array and vector bindings, where T
// is the Go type of the binding's element dtype.
//
// It never fails, holds no state between calls, and may be called from any
// number of invocations concurrently.
func (b *Binding) Materialize(t grids.Coordinate) any {
	return b.materialize(t)
}

// String implements fmt.Stringer.
func (b *Binding) String() string {
	return fmt.Sprintf("%q: %s over %s", b.name, b.repr, b.descriptor)
}
