// Copyright 2025-2026 The GridFn Authors. SPDX-License-Identifier: Apache-2.0

// Package reprs defines the representation types a kernel parameter can be
// bound as: a scalar, a fixed-size ordered array, or a fixed-size vector of
// some element DType.
//
// A Repr plays two roles. As a parameter type it describes what a kernel
// declares ("vector<float32,3>"); as a representation type it is the result
// of vectorization resolution (see gridfn/binding), the concrete shape the
// grid materializers (see gridfn/types/grids) lay values out in. The two
// coincide whenever resolution succeeds, which is why this package owns the
// single type for both.
//
// DType is the element-type vocabulary of github.com/gomlx/gopjrt/dtypes.
package reprs

import (
	"fmt"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// Kind enumerates the three representation shapes a parameter can take.
type Kind int

const (
	KindInvalid Kind = iota

	// KindScalar is a single element, natural dimension 1.
	KindScalar

	// KindArray is a fixed-size ordered array: materialized components keep
	// ascending axis order.
	KindArray

	// KindVector is a fixed-size vector: materialized components are laid out
	// in reverse axis order, the component convention of the kernel side.
	KindVector
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	case KindVector:
		return "vector"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Repr is a representation type: shape kind, element DType and natural
// dimension. Use ScalarOf, ArrayOf or VectorOf to build one.
//
// For KindScalar the natural dimension is always 1. A zero Repr{} is invalid.
type Repr struct {
	Kind  Kind
	DType dtypes.DType
	Dim   int
}

// ScalarOf returns the scalar representation type of the given element dtype.
func ScalarOf(dtype dtypes.DType) Repr {
	return Repr{Kind: KindScalar, DType: dtype, Dim: 1}
}

// ArrayOf returns the dim-element ordered-array representation type of the
// given element dtype. It panics if dim < 1.
func ArrayOf(dtype dtypes.DType, dim int) Repr {
	if dim < 1 {
		exceptions.Panicf("reprs.ArrayOf(%s, %d): dimension must be at least 1", dtype, dim)
	}
	return Repr{Kind: KindArray, DType: dtype, Dim: dim}
}

// VectorOf returns the dim-element vector representation type of the given
// element dtype. It panics if dim < 1.
func VectorOf(dtype dtypes.DType, dim int) Repr {
	if dim < 1 {
		exceptions.Panicf("reprs.VectorOf(%s, %d): dimension must be at least 1", dtype, dim)
	}
	return Repr{Kind: KindVector, DType: dtype, Dim: dim}
}

// Ok reports whether the Repr was built by one of the constructors.
func (r Repr) Ok() bool {
	return r.Kind != KindInvalid && r.DType != dtypes.InvalidDType && r.Dim >= 1
}

// String implements fmt.Stringer, printing the type the way the kernel side
// declares it, e.g. "float32", "array<int32,2>", "vector<float16,3>".
func (r Repr) String() string {
	switch r.Kind {
	case KindScalar:
		return r.DType.String()
	case KindArray:
		return fmt.Sprintf("array<%s,%d>", r.DType, r.Dim)
	case KindVector:
		return fmt.Sprintf("vector<%s,%d>", r.DType, r.Dim)
	default:
		return fmt.Sprintf("invalid<%s,%d>", r.DType, r.Dim)
	}
}
