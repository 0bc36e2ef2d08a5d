// Package collections wraps ordered/keyed containers in a single state
// cell, so each mutation method (append, delete, set) notifies subscribers
// exactly once without callers having to rebuild and Write a whole new
// container themselves. Most methods copy the container, apply the change
// and Write the copy; List.Set alone mutates in place and calls Trigger.
// The bookkeeping here is plain slice/map
// manipulation, not a borrowed container library: nothing in the
// supporting example pack offers a generic one, so this follows the
// hand-rolled style of manual slice bookkeeping (index search, in-place
// splice) rather than reaching for reflection-based helpers.
package collections

import "github.com/arsenfield/reactive"

// List is an ordered, index-addressable sequence backed by a single
// reactive state cell.
type List[T any] struct {
	cell *reactive.State[[]T]
}

// NewList creates a list seeded with items (copied, not aliased).
func NewList[T any](items ...T) *List[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	return &List[T]{cell: reactive.NewState(cp)}
}

// Read returns the current contents, tracked like any other cell read.
// The returned slice must be treated as read-only by the caller; mutate
// through the List's own methods instead.
func (l *List[T]) Read() []T { return l.cell.Read() }

// Peek is Read without creating a dependency edge.
func (l *List[T]) Peek() []T { return l.cell.Peek() }

// Len returns the current length without creating a dependency edge.
func (l *List[T]) Len() int { return len(l.cell.Peek()) }

// Append adds items to the end and notifies subscribers.
func (l *List[T]) Append(items ...T) {
	cur := l.cell.Peek()
	next := make([]T, len(cur)+len(items))
	copy(next, cur)
	copy(next[len(cur):], items)
	l.cell.Write(next)
}

// RemoveAt deletes the item at index i and notifies subscribers. Out of
// range indices are a no-op.
func (l *List[T]) RemoveAt(i int) {
	cur := l.cell.Peek()
	if i < 0 || i >= len(cur) {
		return
	}
	next := make([]T, 0, len(cur)-1)
	next = append(next, cur[:i]...)
	next = append(next, cur[i+1:]...)
	l.cell.Write(next)
}

// Set replaces the item at index i in place and notifies subscribers via
// Trigger, since the backing slice's identity doesn't change. Out of range
// indices are a no-op.
func (l *List[T]) Set(i int, v T) {
	cur := l.cell.Peek()
	if i < 0 || i >= len(cur) {
		return
	}
	cur[i] = v
	l.cell.Trigger()
}
