package internal

// Link is an edge between a subscriber (Sub) and something it reads (Dep).
// It sits in two doubly-linked lists at once: Dep's subscriber list
// (PrevSub/NextSub) and Sub's dependency list (PrevDep/NextDep).
type Link struct {
	Dep *Node
	Sub *Node

	PrevDep, NextDep *Link
	PrevSub, NextSub *Link

	// SeenValue is the dependency's value as last observed along this edge,
	// set by the reader immediately after tracking the read. check-dirty
	// (validate) compares it against the dependency's current value.
	SeenValue any
}

// appendDepLink appends link to the tail of sub's dependency list. It does
// not touch the dep side; callers that are establishing a real subscription
// edge must also call appendSubLink on the dependency.
func (sub *Node) appendDepLink(link *Link) {
	link.Sub = sub
	link.PrevDep = sub.DepsTail
	link.NextDep = nil

	if sub.DepsTail != nil {
		sub.DepsTail.NextDep = link
	} else {
		sub.DepsHead = link
	}
	sub.DepsTail = link
}

// appendSubLink appends link to the tail of dep's subscriber list.
func (dep *Node) appendSubLink(link *Link) {
	link.Dep = dep
	link.PrevSub = dep.SubsTail
	link.NextSub = nil

	if dep.SubsTail != nil {
		dep.SubsTail.NextSub = link
	} else {
		dep.SubsHead = link
	}
	dep.SubsTail = link
}

// removeSubLink unlinks link from dep's subscriber list. The caller is
// responsible for ensuring link is not also reachable from some
// dependency list afterward (trackDep/endTrack/clearDeps handle that).
func (dep *Node) removeSubLink(link *Link) {
	if link.PrevSub != nil {
		link.PrevSub.NextSub = link.NextSub
	} else {
		dep.SubsHead = link.NextSub
	}
	if link.NextSub != nil {
		link.NextSub.PrevSub = link.PrevSub
	} else {
		dep.SubsTail = link.PrevSub
	}
	link.PrevSub, link.NextSub = nil, nil
}

// beginTrack starts a tracked run for sub: spec §4.5's edge lifecycle is
// realized here as an old-list/new-list rebuild rather than an in-place
// cursor splice. The existing dependency list becomes the "old" list that
// trackDep consumes edge by edge as the run re-reads its dependencies;
// sub's dependency list is reset to empty and rebuilt in read order.
func (sub *Node) beginTrack() {
	sub.Flags.set(FlagTracking)
	sub.oldDepsHead = sub.DepsHead
	sub.DepsHead = nil
	sub.DepsTail = nil
}

// trackDep records a read of dep during sub's tracked run. If dep was read
// in the same relative position last run, the existing edge is reused at
// zero allocation cost; if it was a dependency last run but out of order,
// the existing edge is found and reused; otherwise a new edge is allocated.
func (sub *Node) trackDep(dep *Node) *Link {
	// Duplicate read of the same dependency immediately after the previous
	// one: already at the tail of the new list, nothing to do.
	if sub.DepsTail != nil && sub.DepsTail.Dep == dep {
		return sub.DepsTail
	}

	// Fast path: dep is next in the old list, in the same order as before.
	if sub.oldDepsHead != nil && sub.oldDepsHead.Dep == dep {
		link := sub.oldDepsHead
		sub.oldDepsHead = link.NextDep
		sub.appendDepLink(link)
		return link
	}

	// Dep was read last run, but not in this position: find and reuse its
	// edge, preserving its subscriber-list identity.
	var prev *Link
	for l := sub.oldDepsHead; l != nil; prev, l = l, l.NextDep {
		if l.Dep == dep {
			if prev == nil {
				sub.oldDepsHead = l.NextDep
			} else {
				prev.NextDep = l.NextDep
			}
			sub.appendDepLink(l)
			return l
		}
	}

	// Repeat read of a dependency already read earlier in this run: its
	// edge is already in the new list, so reuse it rather than duplicate it.
	for l := sub.DepsHead; l != nil; l = l.NextDep {
		if l.Dep == dep {
			return l
		}
	}

	// Genuinely new dependency: allocate an edge and register it on dep.
	link := &Link{}
	sub.appendDepLink(link)
	dep.appendSubLink(link)
	return link
}

// endTrack finishes a tracked run: whatever remains in the old list wasn't
// read this run and is unlinked from its dependency's subscriber list. This
// is how a conditional dependency disappears from the graph the moment a
// run stops reading it.
func (sub *Node) endTrack() {
	for l := sub.oldDepsHead; l != nil; {
		next := l.NextDep
		l.Dep.removeSubLink(l)
		l = next
	}
	sub.oldDepsHead = nil
	sub.Flags.clear(FlagTracking)
}
