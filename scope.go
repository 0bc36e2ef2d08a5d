package reactive

import "github.com/arsenfield/reactive/internal"

// ScopeHandle groups the effects (and nested scopes) created while it was
// the active scope, for collective teardown.
type ScopeHandle struct {
	owner *internal.Owner
}

// NewScope creates a scope, makes it the active scope for the duration of
// setup, and returns a handle to stop everything it collected.
func NewScope(setup func()) *ScopeHandle {
	return &ScopeHandle{owner: currentRuntime().NewScope(setup)}
}

// Stop disposes every effect and nested scope this scope collected, then
// runs this scope's own cleanup callbacks. Idempotent.
func (s *ScopeHandle) Stop() {
	s.owner.Dispose()
}

// OnCleanup registers fn to run when s is stopped, after all of its
// children have already been disposed.
func (s *ScopeHandle) OnCleanup(fn func()) {
	s.owner.OnCleanup(fn)
}

// OnError registers fn as s's panic handler: a panic from an effect owned
// (directly or transitively) by s, with no inner scope already handling
// it, is routed here instead of propagating out of Flush.
func (s *ScopeHandle) OnError(fn func(any)) {
	s.owner.OnError(fn)
}
