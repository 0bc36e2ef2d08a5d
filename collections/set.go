package collections

import "github.com/arsenfield/reactive"

// Set is an unordered collection of comparable keys backed by a single
// reactive state cell.
type Set[K comparable] struct {
	cell *reactive.State[map[K]struct{}]
}

// NewSet creates a set seeded with keys.
func NewSet[K comparable](keys ...K) *Set[K] {
	m := make(map[K]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return &Set[K]{cell: reactive.NewState(m)}
}

// Has reports whether k is a member, tracked like any other cell read.
func (s *Set[K]) Has(k K) bool {
	_, ok := s.cell.Read()[k]
	return ok
}

// Len returns the current size without creating a dependency edge.
func (s *Set[K]) Len() int { return len(s.cell.Peek()) }

// Add inserts k. A no-op (no notification) if k is already a member.
func (s *Set[K]) Add(k K) {
	cur := s.cell.Peek()
	if _, ok := cur[k]; ok {
		return
	}
	next := make(map[K]struct{}, len(cur)+1)
	for existing := range cur {
		next[existing] = struct{}{}
	}
	next[k] = struct{}{}
	s.cell.Write(next)
}

// Remove deletes k. A no-op (no notification) if k was not a member.
func (s *Set[K]) Remove(k K) {
	cur := s.cell.Peek()
	if _, ok := cur[k]; !ok {
		return
	}
	next := make(map[K]struct{}, len(cur)-1)
	for existing := range cur {
		if existing != k {
			next[existing] = struct{}{}
		}
	}
	s.cell.Write(next)
}
