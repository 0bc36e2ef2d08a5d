package internal

// NodeFlags is the bitset the engine uses as the sole source of truth for a
// node's kind and its current propagation state. See the node model and the
// flag table in the design doc.
type NodeFlags uint16

const (
	FlagNone NodeFlags = 0

	// Kind bits. Set once at construction and never cleared for the life of
	// the node.
	FlagMutable    NodeFlags = 1 << iota // state cell: plain mutable value
	FlagWatching                         // has a compute or action and maintains a dep list
	FlagRecomputed                       // derived cell: has a cached value
	FlagSideEffect                       // effect: runs an action, never depended upon
	FlagScope                            // scope: groups effects for bulk teardown

	// Propagation-state bits. Mutated continuously as the graph is written
	// to and flushed.
	FlagTracking // node is currently executing its compute/action
	FlagNotified // node has been placed into a pending-effect queue
	FlagDirty    // dependency values are known to have changed; recompute required
	FlagPending  // a dependency may have changed; needs check-dirty validation
)

func (f NodeFlags) Has(flag NodeFlags) bool {
	return f&flag != 0
}

func (f *NodeFlags) set(flag NodeFlags) {
	*f |= flag
}

func (f *NodeFlags) clear(flag NodeFlags) {
	*f &^= flag
}
