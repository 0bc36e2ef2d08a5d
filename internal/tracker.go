package internal

// Tracker holds the active-subscriber and active-scope references for one
// Runtime, realized as plain fields rather than explicit stacks: save-on-
// entry/restore-on-exit is provided by the Go call stack itself (each
// caller holds the previous value in a local and restores it on return),
// exactly as spec §4.8 describes. Unlike the teacher's version, there is
// no mutex here: a Runtime is owned by exactly one goroutine for its
// entire life (see runtime.go), so nothing else could race with it.
type Tracker struct {
	sub   *Node
	scope *Owner

	untracking bool
}

func newTracker(root *Owner) *Tracker {
	return &Tracker{scope: root}
}

// activeSub returns the current tracking subscriber, or nil if untracked
// or nothing is running.
func (t *Tracker) activeSub() *Node {
	if t.untracking {
		return nil
	}
	return t.sub
}

// setActiveSub installs sub as the active subscriber and returns the
// previous one, for the caller to restore.
func (t *Tracker) setActiveSub(sub *Node) *Node {
	prev := t.sub
	t.sub = sub
	return prev
}

// activeScope returns the innermost currently active scope.
func (t *Tracker) activeScope() *Owner {
	return t.scope
}

// setActiveScope installs o as the active scope and returns the previous
// one, for the caller to restore.
func (t *Tracker) setActiveScope(o *Owner) *Owner {
	prev := t.scope
	t.scope = o
	return prev
}

// untrack runs fn with tracking suspended: reads inside create no edges,
// regardless of nesting depth.
func (t *Tracker) untrack(fn func()) {
	prev := t.untracking
	t.untracking = true
	defer func() { t.untracking = prev }()
	fn()
}
