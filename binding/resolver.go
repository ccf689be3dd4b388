// Copyright 2025-2026 The GridFn Authors. SPDX-License-Identifier: Apache-2.0

package binding

import (
	"fmt"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"

	"github.com/gridfn/gridfn/types"
	"github.com/gridfn/gridfn/types/reprs"
)

// DimWildcard requests the parameter type's own natural dimension instead of
// a specific count. Any other requested dimension must be >= 1.
const DimWildcard = -1

// BindableDTypes are the element dtypes a grid argument can be bound as.
// Components are integers converted to the element type on materialization,
// so booleans, complex numbers and non-numeric dtypes are out.
var BindableDTypes = types.SetWith(
	dtypes.Int8,
	dtypes.Int16,
	dtypes.Int32,
	dtypes.Int64,
	dtypes.Uint8,
	dtypes.Uint16,
	dtypes.Uint32,
	dtypes.Uint64,
	dtypes.Float16,
	dtypes.BFloat16,
	dtypes.Float32,
	dtypes.Float64,
)

// UnsupportedVectorizationError reports that no resolution rule matches the
// (parameter type, requested dimension) combination. It is produced at bind
// time, before any invocation runs.
type UnsupportedVectorizationError struct {
	Param reprs.Repr
	Dim   int
}

// Error implements the error interface, naming the offending parameter type
// and requested dimension.
func (e *UnsupportedVectorizationError) Error() string {
	dim := fmt.Sprintf("%d", e.Dim)
	if e.Dim == DimWildcard {
		dim = "wildcard"
	}
	return fmt.Sprintf("unsupported vectorization of parameter type %s with requested dimension %s", e.Param, dim)
}

// Vectorize resolves the representation type a kernel parameter of type p
// must be bound as when the caller requests dimensionality dim (DimWildcard
// meaning p's own natural dimension).
//
// The rules, first match wins:
//
//  1. p is an N-element array type and dim is N or wildcard: p itself.
//  2. p is an N-element vector type and dim is N or wildcard: p itself.
//  3. p is a scalar numeric type and dim is 1 or wildcard: p itself.
//  4. Anything else fails with *UnsupportedVectorizationError.
//
// Vectorize is deterministic and is consulted once per parameter binding,
// never per invocation: its result fixes which materializer runs for every
// invocation of the launch.
func Vectorize(p reprs.Repr, dim int) (reprs.Repr, error) {
	if dim != DimWildcard && dim < 1 {
		return reprs.Repr{}, errors.WithStack(&UnsupportedVectorizationError{Param: p, Dim: dim})
	}
	if !BindableDTypes.Has(p.DType) {
		return reprs.Repr{}, errors.WithStack(&UnsupportedVectorizationError{Param: p, Dim: dim})
	}
	switch p.Kind {
	case reprs.KindArray, reprs.KindVector:
		if p.Dim >= 1 && (dim == p.Dim || dim == DimWildcard) {
			return p, nil
		}
	case reprs.KindScalar:
		// A scalar's natural dimension is 1; a hand-built Repr claiming
		// otherwise must fail here, not at materialization time.
		if p.Dim == 1 && (dim == 1 || dim == DimWildcard) {
			return p, nil
		}
	}
	return reprs.Repr{}, errors.WithStack(&UnsupportedVectorizationError{Param: p, Dim: dim})
}
