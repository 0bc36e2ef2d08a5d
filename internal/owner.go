package internal

// Owner is the internal representation of a scope: a Node (FlagScope) plus
// the cleanup and panic-catcher bookkeeping a scope needs. Root effects
// (those created with no scope active) belong to a runtime's implicit root
// owner, so every effect always has one to register with.
type Owner struct {
	*Node

	cleanups []func()
	catchers []func(any)
}

func newOwner(r *Runtime) *Owner {
	o := &Owner{
		Node: &Node{Flags: FlagScope, runtime: r},
	}
	o.Node.owner = o
	r.observer.OnNodeCreate(o.Node)
	return o
}

// AddChild registers child (an effect cell or a nested scope) as belonging
// to o, so that disposing o disposes child.
func (o *Owner) AddChild(child *Node) {
	o.addChild(child)
}

// OnCleanup registers fn to run when o is disposed, after all of o's
// children have already been disposed.
func (o *Owner) OnCleanup(fn func()) {
	o.cleanups = append(o.cleanups, fn)
}

// OnError registers fn as o's panic handler: a panic from an effect owned
// (directly or transitively) by o is routed here instead of propagating to
// the runtime's Flush caller, unless no ancestor has one registered.
func (o *Owner) OnError(fn func(any)) {
	o.catchers = append(o.catchers, fn)
}

// Dispose stops every child (effect or nested scope) of o, then runs o's
// own cleanup callbacks in reverse registration order, then detaches o
// from its own parent scope if any. Idempotent.
func (o *Owner) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true

	for _, child := range o.children() {
		disposeNode(child)
	}
	o.ownedChildren = nil

	cleanups := o.cleanups
	o.cleanups = nil
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.detachFromScope()
	o.runtime.observer.OnDispose(o.Node)
}

// disposeNode stops an effect cell, or disposes a nested scope through its
// owning *Owner value (every FlagScope node's owner field points back to
// the *Owner that created it).
func disposeNode(n *Node) {
	if n.IsScope() {
		n.owner.Dispose()
		return
	}
	stopEffect(n)
}

// stopEffect disposes e's owned children, unlinks every dep edge of e,
// detaches it from its owner's child list, runs any pending cleanup, and
// marks it disposed so a still-queued run is skipped rather than executed
// (§5: "the disposed node is simply skipped when the queue encounters
// it"). Idempotent.
func stopEffect(e *Node) {
	if e.disposed {
		return
	}
	e.disposed = true

	disposeOwnedChildren(e)
	e.clearDeps()
	e.detachFromScope()
	e.Flags.clear(FlagNotified)

	if e.Cleanup != nil {
		cleanup := e.Cleanup
		e.Cleanup = nil
		cleanup()
	}
	e.runtime.observer.OnDispose(e)
}

// disposeOwnedChildren tears down every effect or nested scope n owns,
// clearing the list first so re-entrant registration during teardown
// starts clean. Called whenever n is about to become stale: when it is
// freshly notified (propagate) and when it is itself stopped or disposed,
// so a child never outlives the run that created it by more than one
// notification.
func disposeOwnedChildren(n *Node) {
	children := n.ownedChildren
	if len(children) == 0 {
		return
	}
	n.ownedChildren = nil
	for _, child := range children {
		disposeNode(child)
	}
}

// dispatchToErrorBoundary walks up e's owner chain looking for a
// registered OnError catcher. Returns true if one handled the panic.
func dispatchToErrorBoundary(e *Node, caught any) bool {
	owner := e.ownerNode
	for owner != nil {
		if o := owner.owner; o != nil && len(o.catchers) > 0 {
			for _, catcher := range o.catchers {
				catcher(caught)
			}
			return true
		}
		owner = owner.ownerNode
	}
	return false
}
