package internal

// NewEffect creates an effect cell running action, registers it with its
// owner (the innermost currently-running effect, else the active scope,
// else the runtime's implicit root scope), and runs it once immediately.
func (r *Runtime) NewEffect(action func(), class EffectClass) *Node {
	n := &Node{
		Flags:       FlagWatching | FlagSideEffect,
		Action:      action,
		EffectClass: class,
		runtime:     r,
	}
	r.observer.OnNodeCreate(n)
	r.registerChild(n)
	runEffect(n)
	return n
}

// StopEffect stops e: see stopEffect in owner.go.
func (n *Node) StopEffect() {
	stopEffect(n)
}

// RegisterCleanup records fn as the cleanup for the currently running
// effect (the active subscriber, if it is one). It is a no-op outside of
// an effect's action.
func (r *Runtime) RegisterCleanup(fn func()) {
	sub := r.activeSub()
	if sub == nil || !sub.IsEffect() {
		return
	}
	sub.Cleanup = fn
}
