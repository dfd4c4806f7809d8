// SPDX-License-Identifier: MIT
package types

type (
	// Set holds unique values of a comparable type.
	Set[T comparable] map[T]struct{}
)

// NewSet instantiates a Set holding values.
func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for index := range values {
		s[values[index]] = struct{}{}
	}

	return s
}

// Add a value to the Set; false indicates the value was already present.
func (s Set[T]) Add(value T) (added bool) {
	if _, ok := s[value]; ok {
		return
	}

	s[value], added = struct{}{}, true

	return
}

// Has checks for a value's membership in the Set.
func (s Set[T]) Has(value T) (ok bool) {
	_, ok = s[value]
	return
}

// Len retrieves the number of values in the Set.
func (s Set[T]) Len() int { return len(s) }
