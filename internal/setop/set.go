// Package setop provides lazy set algebra. A View combines two sets with a
// binary operation without copying them: queries are answered from the
// backing sets on demand, and mutations write through to them.
package setop

import (
	"iter"
	"maps"
)

// Set is a mutable set of comparable elements. HashSet and View both
// implement it, so views can be stacked on other views.
type Set[E comparable] interface {
	Contains(e E) bool
	Len() int
	All() iter.Seq[E]
	// Add inserts e and reports whether the set changed.
	Add(e E) bool
	// Remove deletes e and reports whether the set changed.
	Remove(e E) bool
	Clear()
}

// HashSet is a map-backed Set. The zero value is an empty set ready to use.
type HashSet[E comparable] struct {
	data map[E]struct{}
}

// NewHashSet returns a HashSet holding items.
func NewHashSet[E comparable](items ...E) *HashSet[E] {
	s := &HashSet[E]{data: make(map[E]struct{}, len(items))}
	for _, e := range items {
		s.data[e] = struct{}{}
	}
	return s
}

func (s *HashSet[E]) m() map[E]struct{} {
	if s.data == nil {
		s.data = make(map[E]struct{})
	}
	return s.data
}

// Contains reports whether e is in the set.
func (s *HashSet[E]) Contains(e E) bool {
	_, ok := s.data[e]
	return ok
}

// Len returns the number of elements.
func (s *HashSet[E]) Len() int { return len(s.data) }

// All iterates the elements in unspecified order.
func (s *HashSet[E]) All() iter.Seq[E] { return maps.Keys(s.data) }

// Add inserts e and reports whether it was absent.
func (s *HashSet[E]) Add(e E) bool {
	if s.Contains(e) {
		return false
	}
	s.m()[e] = struct{}{}
	return true
}

// Remove deletes e and reports whether it was present.
func (s *HashSet[E]) Remove(e E) bool {
	if !s.Contains(e) {
		return false
	}
	delete(s.data, e)
	return true
}

// Clear removes every element.
func (s *HashSet[E]) Clear() { clear(s.data) }

// Materialize copies the current members of s into a new HashSet.
func Materialize[E comparable](s Set[E]) *HashSet[E] {
	out := &HashSet[E]{data: make(map[E]struct{}, s.Len())}
	for e := range s.All() {
		out.data[e] = struct{}{}
	}
	return out
}

// Slice returns the current members of s in iteration order.
func Slice[E comparable](s Set[E]) []E {
	out := make([]E, 0, s.Len())
	for e := range s.All() {
		out = append(out, e)
	}
	return out
}
