package reactive

import "github.com/arsenfield/reactive/internal"

// State is a plain mutable value cell, the leaf of the dependency graph.
type State[T any] struct {
	node *internal.Node
}

// NewState creates a state cell on the calling goroutine's runtime.
func NewState[T any](initial T) *State[T] {
	return &State[T]{node: currentRuntime().NewState(initial)}
}

// Read returns the current value, tracking the read against whatever
// Derived or Effect is currently running.
func (s *State[T]) Read() T {
	return s.node.ReadState().(T)
}

// Peek returns the current value without creating a dependency edge.
func (s *State[T]) Peek() T {
	return s.node.PeekState().(T)
}

// Write stores v. If v equals the current value (via ==, falling back to
// "changed" for non-comparable dynamic contents) this is a no-op; writing
// a genuinely different value propagates to dependents, running affected
// effects synchronously unless a Batch is open.
func (s *State[T]) Write(v T) {
	s.node.WriteState(v)
}

// Trigger forces propagation as though the value changed, even though it
// did not. Use this after mutating a value in place (e.g. appending to a
// slice held in the cell) that the engine has no way to compare.
func (s *State[T]) Trigger() {
	s.node.TriggerState()
}

// HasSubscribers reports whether anything currently depends on s.
func (s *State[T]) HasSubscribers() bool {
	return s.node.HasSubscribers()
}

// Node exposes the underlying graph node for debug-gated introspection
// (see debug.go). Not for use on the hot path.
func (s *State[T]) Node() *internal.Node { return s.node }
