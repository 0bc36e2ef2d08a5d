package internal

// NewState creates a state cell holding initial, owned by r.
func (r *Runtime) NewState(initial any) *Node {
	n := &Node{
		Flags:    FlagMutable,
		Value:    initial,
		HasValue: true,
		runtime:  r,
	}
	r.observer.OnNodeCreate(n)
	return n
}

// ReadState returns n's current value, creating or refreshing a dependency
// edge to the active subscriber if one is running.
func (n *Node) ReadState() any {
	if sub := n.runtime.activeSub(); sub != nil {
		link := sub.trackDep(n)
		link.SeenValue = n.Value
	}
	return n.Value
}

// PeekState returns n's current value without creating an edge.
func (n *Node) PeekState() any {
	return n.Value
}

// WriteState stores v if it differs from the current value (by
// valuesEqual) and, if so, propagates and flushes (or defers the flush to
// the enclosing batch). A write to a disposed cell is a no-op.
func (n *Node) WriteState(v any) {
	if n.disposed {
		return
	}
	if n.HasValue && valuesEqual(n.Value, v) {
		return
	}
	n.Value = v
	n.HasValue = true
	propagate(n)
	n.runtime.maybeFlush()
}

// TriggerState forces propagation as if the value changed, even though it
// did not — for in-place mutation of values the engine doesn't (and can't
// generically) inspect.
func (n *Node) TriggerState() {
	if n.disposed {
		return
	}
	propagate(n)
	n.runtime.maybeFlush()
}

// HasSubscribers reports whether any node currently depends on n.
func (n *Node) HasSubscribers() bool {
	return n.SubsHead != nil
}
