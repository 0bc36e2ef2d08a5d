package internal

// NewDerived creates a derived (computed) cell whose value is produced by
// compute. It starts DIRTY: the first Read or Peek triggers the initial
// recompute lazily rather than eagerly at construction.
func (r *Runtime) NewDerived(compute func(prev any, ok bool) any) *Node {
	n := &Node{
		Flags:   FlagWatching | FlagRecomputed | FlagDirty,
		Compute: compute,
		runtime: r,
	}
	r.observer.OnNodeCreate(n)
	return n
}

// ReadDerived validates n (recomputing if necessary), tracks the read
// against the active subscriber if one is running, and returns the cached
// value.
func (n *Node) ReadDerived() any {
	validate(n)
	if sub := n.runtime.activeSub(); sub != nil {
		link := sub.trackDep(n)
		link.SeenValue = n.Value
	}
	return n.Value
}

// PeekDerived validates n and returns the cached value without tracking.
func (n *Node) PeekDerived() any {
	validate(n)
	return n.Value
}
