package reactive

import "github.com/arsenfield/reactive/internal"

// Derived is a read-only cell whose value is a pure function of other
// cells, evaluated lazily and memoized: it recomputes only when validation
// finds that one of its tracked dependencies actually changed, and it
// propagates to its own subscribers only when the recomputed value itself
// differs from the cached one (glitch-free memoization).
type Derived[T any] struct {
	node *internal.Node
}

// NewDerived creates a derived cell. compute receives the previous value
// and whether there was one (false on the very first call); it must be
// pure — reads of other cells inside it are tracked, but it must not
// write to any cell or otherwise cause side effects.
func NewDerived[T any](compute func(prev T, ok bool) T) *Derived[T] {
	node := currentRuntime().NewDerived(func(prev any, ok bool) any {
		var p T
		if ok {
			p = prev.(T)
		}
		return compute(p, ok)
	})
	return &Derived[T]{node: node}
}

// Read validates and, if necessary, recomputes the cell, tracks the read
// against the active subscriber, and returns the value.
func (d *Derived[T]) Read() T {
	return d.node.ReadDerived().(T)
}

// Peek validates the cell without tracking the read.
func (d *Derived[T]) Peek() T {
	return d.node.PeekDerived().(T)
}

// HasSubscribers reports whether anything currently depends on d.
func (d *Derived[T]) HasSubscribers() bool {
	return d.node.HasSubscribers()
}

// Node exposes the underlying graph node for debug-gated introspection.
func (d *Derived[T]) Node() *internal.Node { return d.node }
