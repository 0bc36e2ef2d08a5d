package internal

// Node is the representation shared by every graph entity: state cells,
// derived cells, effect cells, and scopes. Which of those a Node is is
// encoded entirely in its Flags; there is no separate tag field.
//
// A Node reaches other nodes only through Links (see link.go). There is no
// arena or index table: a Node is just a Go struct kept alive by whatever
// still references it, either a public handle or an edge endpoint of a live
// node.
type Node struct {
	Flags NodeFlags

	// Subscription edges: DepsHead/DepsTail enumerate what this node reads
	// from (only meaningful when Flags.Has(FlagWatching)); SubsHead/SubsTail
	// enumerate who reads from this node (only meaningful for state/derived
	// cells; an effect's subs list stays empty, per spec, since nothing may
	// depend on one). Scope/effect ownership of child nodes is tracked
	// separately, in ownerNode/ownedChildren below, so it never collides
	// with an owning effect's own DepsHead-based read tracking.
	DepsHead, DepsTail *Link
	SubsHead, SubsTail *Link

	// oldDepsHead is the dependency list as of the start of the current
	// tracked run, consumed by trackDep as the run re-establishes it. Only
	// meaningful while Flags.Has(FlagTracking).
	oldDepsHead *Link

	// Value slots. State and derived cells use Value/HasValue; derived cells
	// additionally keep the function producing it.
	Value    any
	HasValue bool

	// Compute produces a derived cell's value from the previous one (ok is
	// false on the first call). Only set on derived cells.
	Compute func(prev any, ok bool) any

	// Action runs an effect's body. Only set on effect cells. Cleanup, if
	// non-nil, runs immediately before the next Action call and on Stop.
	Action  func()
	Cleanup func()

	// EffectClass distinguishes render effects from user effects for queue
	// ordering purposes. Meaningless unless Flags.Has(FlagSideEffect).
	EffectClass EffectClass

	// ownerNode is the scope or effect that owns this node, nil for a
	// root-level node or for state/derived cells (which aren't owned). An
	// effect becomes the owner of any effect or scope created while it is
	// the active subscriber (see Runtime.registerChild), so that a stale
	// child is torn down the moment its owner is invalidated rather than
	// lingering until the owner happens to rerun.
	ownerNode *Node

	// ownedChildren lists the effects and nested scopes this node owns, in
	// creation order. Meaningful only for scope and effect nodes.
	ownedChildren []*Node

	// owner points back at the *Owner wrapping this Node, set only for
	// FlagScope nodes.
	owner *Owner

	// disposed marks an effect or scope that has been stopped; a queue pop
	// of a disposed effect is skipped rather than run. State and derived
	// cells are never marked disposed.
	disposed bool

	runtime *Runtime

	// debugID is lazily assigned the first time DebugID is called on this
	// node (by an Observer, DebugTree or devtools). Empty otherwise.
	debugID string
}

// EffectClass is the supplemented render/user effect priority band (see
// DESIGN.md's module ledger entry for batch controller).
type EffectClass uint8

const (
	EffectClassUser EffectClass = iota
	EffectClassRender
)

// IsState reports whether n is a plain mutable state cell.
func (n *Node) IsState() bool { return n.Flags.Has(FlagMutable) }

// IsDerived reports whether n is a derived (computed) cell.
func (n *Node) IsDerived() bool { return n.Flags.Has(FlagRecomputed) }

// IsEffect reports whether n is an effect cell.
func (n *Node) IsEffect() bool { return n.Flags.Has(FlagSideEffect) }

// IsScope reports whether n is a scope.
func (n *Node) IsScope() bool { return n.Flags.Has(FlagScope) }

// clearDeps unlinks every edge in n's dependency list from both endpoints.
// Used on disposal, and before a derived/effect cell that is being removed
// rather than re-run needs to stop being tracked by anything it read from.
func (n *Node) clearDeps() {
	for l := n.DepsHead; l != nil; {
		next := l.NextDep
		l.Dep.removeSubLink(l)
		l = next
	}
	n.DepsHead = nil
	n.DepsTail = nil
}

// addChild registers child (an effect or nested scope) as belonging to n,
// a scope or an owning effect. This is plain ownership bookkeeping kept
// separate from n's own Deps/Subs lists: an owning effect still needs its
// DepsHead/DepsTail for its own tracked reads, so child membership cannot
// reuse that list the way a pure scope (which tracks nothing) safely can.
func (n *Node) addChild(child *Node) {
	n.ownedChildren = append(n.ownedChildren, child)
	child.ownerNode = n
}

// detachFromScope removes child from its owner's child list, if any.
func (child *Node) detachFromScope() {
	parent := child.ownerNode
	if parent == nil {
		return
	}
	siblings := parent.ownedChildren
	for i, c := range siblings {
		if c == child {
			parent.ownedChildren = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	child.ownerNode = nil
}

// children returns the effects and nested scopes n owns, in creation order.
func (n *Node) children() []*Node {
	return n.ownedChildren
}

// Deps returns the nodes n currently depends on, in read order. Debug-
// gated introspection only; not for use on the hot path.
func (n *Node) Deps() []*Node {
	var out []*Node
	for l := n.DepsHead; l != nil; l = l.NextDep {
		out = append(out, l.Dep)
	}
	return out
}

// Subs returns the nodes currently subscribed to n. Debug-gated
// introspection only; not for use on the hot path.
func (n *Node) Subs() []*Node {
	var out []*Node
	for l := n.SubsHead; l != nil; l = l.NextSub {
		out = append(out, l.Sub)
	}
	return out
}
