package collections

import "github.com/arsenfield/reactive"

// Map is a keyed collection backed by a single reactive state cell.
type Map[K comparable, V any] struct {
	cell *reactive.State[map[K]V]
}

// NewMap creates a map seeded with the given entries.
func NewMap[K comparable, V any](entries map[K]V) *Map[K, V] {
	m := make(map[K]V, len(entries))
	for k, v := range entries {
		m[k] = v
	}
	return &Map[K, V]{cell: reactive.NewState(m)}
}

// Get returns the value for k and whether it was present, tracked like
// any other cell read.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.cell.Read()[k]
	return v, ok
}

// Len returns the current size without creating a dependency edge.
func (m *Map[K, V]) Len() int { return len(m.cell.Peek()) }

// Set inserts or overwrites the value at k and notifies subscribers.
func (m *Map[K, V]) Set(k K, v V) {
	cur := m.cell.Peek()
	next := make(map[K]V, len(cur)+1)
	for existing, ev := range cur {
		next[existing] = ev
	}
	next[k] = v
	m.cell.Write(next)
}

// Delete removes k. A no-op (no notification) if k was not present.
func (m *Map[K, V]) Delete(k K) {
	cur := m.cell.Peek()
	if _, ok := cur[k]; !ok {
		return
	}
	next := make(map[K]V, len(cur)-1)
	for existing, ev := range cur {
		if existing != k {
			next[existing] = ev
		}
	}
	m.cell.Write(next)
}
