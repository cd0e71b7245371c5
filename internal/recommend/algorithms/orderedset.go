// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package algorithms

// OrderedSet is a set that remembers insertion order.
type OrderedSet[T comparable] struct {
	items   []T
	members map[T]struct{}
}

// NewOrderedSet creates an empty set sized for capacity elements.
func NewOrderedSet[T comparable](capacity int) *OrderedSet[T] {
	return &OrderedSet[T]{
		items:   make([]T, 0, capacity),
		members: make(map[T]struct{}, capacity),
	}
}

// Add inserts v unless present and reports whether it was inserted.
func (s *OrderedSet[T]) Add(v T) bool {
	if _, ok := s.members[v]; ok {
		return false
	}
	s.members[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

// AddAll inserts every element of vs in order.
func (s *OrderedSet[T]) AddAll(vs ...T) {
	for _, v := range vs {
		s.Add(v)
	}
}

// Has reports whether v is in the set.
func (s *OrderedSet[T]) Has(v T) bool {
	_, ok := s.members[v]
	return ok
}

// Len returns the number of elements.
func (s *OrderedSet[T]) Len() int {
	return len(s.items)
}

// Items returns the elements in insertion order. The slice is a copy.
func (s *OrderedSet[T]) Items() []T {
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}
