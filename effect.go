package reactive

import "github.com/arsenfield/reactive/internal"

// EffectHandle controls a running effect created by NewEffect or
// NewRenderEffect.
type EffectHandle struct {
	node *internal.Node
}

// NewEffect creates and immediately runs a user effect: action runs once
// now, tracking whatever cells it reads, and re-runs whenever any of them
// change. It is owned by the effect currently running, if any, else by the
// active scope (see NewScope), else by the runtime's implicit root scope;
// its owner stops it on disposal.
func NewEffect(action func()) *EffectHandle {
	return &EffectHandle{node: currentRuntime().NewEffect(action, internal.EffectClassUser)}
}

// NewRenderEffect is like NewEffect, but belongs to the render effect
// queue: within one flush, all render effects run before any user effect,
// though each band is still strict FIFO among its own members.
func NewRenderEffect(action func()) *EffectHandle {
	return &EffectHandle{node: currentRuntime().NewEffect(action, internal.EffectClassRender)}
}

// Stop unlinks e's dependency edges, removes it from its scope, and
// prevents any already-queued run from executing. Idempotent.
func (e *EffectHandle) Stop() {
	e.node.StopEffect()
}

// OnCleanup registers fn to run immediately before the currently running
// effect's next re-run, and when it is stopped (directly or via scope
// disposal). Calling it outside of a running effect's action is a no-op.
func OnCleanup(fn func()) {
	currentRuntime().RegisterCleanup(fn)
}
