package internal

import "github.com/google/uuid"

// Observer is the debug-gated introspection hook collaborators may attach
// per-runtime. There is no logging in the core itself; everything here is
// opt-in and costs nothing when unset (the default Runtime.observer is the
// noopObserver below).
type Observer interface {
	OnNodeCreate(n *Node)
	OnRecompute(n *Node, err error)
	OnDispose(n *Node)
	OnError(n *Node, err error)
}

type noopObserver struct{}

func (noopObserver) OnNodeCreate(*Node)          {}
func (noopObserver) OnRecompute(*Node, error)    {}
func (noopObserver) OnDispose(*Node)             {}
func (noopObserver) OnError(*Node, error)        {}

// DebugID lazily assigns and returns a stable identifier for n, used only
// in Observer callbacks and debug tree rendering, never on the hot path.
func (n *Node) DebugID() string {
	if n.debugID == "" {
		n.debugID = uuid.NewString()
	}
	return n.debugID
}
