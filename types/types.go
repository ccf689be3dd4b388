// Copyright 2025-2026 The GridFn Authors. SPDX-License-Identifier: Apache-2.0

// Package types is the top-level directory for GridFn's core types -- see the
// sub-packages grids and reprs.
//
// The package itself provides Set, used by the binding layer to declare its
// resolution rule sets.
package types

// Set implements a set of the comparable type T.
type Set[T comparable] map[T]struct{}

// SetWith creates a Set[T] holding the given elements.
func SetWith[T comparable](elements ...T) Set[T] {
	s := make(Set[T], len(elements))
	s.Insert(elements...)
	return s
}

// Has returns true if the set contains key.
func (s Set[T]) Has(key T) bool {
	_, found := s[key]
	return found
}

// Insert adds keys to the set.
func (s Set[T]) Insert(keys ...T) {
	for _, key := range keys {
		s[key] = struct{}{}
	}
}
