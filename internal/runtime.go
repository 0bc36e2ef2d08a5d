package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

// maxFlushRounds bounds the number of render/user round-trips a single
// Flush will attempt before concluding a cycle exists and giving up rather
// than looping forever (spec §7 CycleTermination: "the engine must at
// minimum terminate rather than loop forever").
const maxFlushRounds = 10_000

var runtimes sync.Map // goroutine id (int64) -> *Runtime

// GetRuntime returns the calling goroutine's Runtime, creating one on
// first use. Every goroutine that creates a state cell, derived cell, or
// effect gets its own private graph: two goroutines never share one, so
// there is no cross-goroutine locking to get wrong (spec §5).
func GetRuntime() *Runtime {
	gid := goid.Get()
	if v, ok := runtimes.Load(gid); ok {
		return v.(*Runtime)
	}
	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// Runtime is one goroutine's private reactive graph: tracking context,
// batch depth, and the two effect queues.
type Runtime struct {
	tracker *Tracker
	root    *Owner

	// batchDepth counts nested Batch/StartBatch calls. Writes made at any
	// depth > 0 still propagate immediately (dirty marking and effect
	// enqueuing are not deferred); only the effect queues wait for depth to
	// return to zero, so a batch's net effect is that dependents see every
	// write but effects run once after the outermost batch completes rather
	// than once per write.
	batchDepth int

	renderQueue *EffectQueue
	userQueue   *EffectQueue

	renderSettled []func()
	userSettled   []func()
	settled       []func()

	flushing bool

	observer Observer
}

// NewRuntime constructs a standalone Runtime. Most callers should use
// GetRuntime instead; this is exposed for tests and for hosts that want an
// explicit graph rather than the implicit per-goroutine one.
func NewRuntime() *Runtime {
	r := &Runtime{
		renderQueue: newEffectQueue(),
		userQueue:   newEffectQueue(),
		observer:    noopObserver{},
	}
	r.root = newOwner(r)
	r.tracker = newTracker(r.root)
	return r
}

func (r *Runtime) SetObserver(o Observer) {
	if o == nil {
		o = noopObserver{}
	}
	r.observer = o
}

func (r *Runtime) Observer() Observer { return r.observer }

func (r *Runtime) RootScope() *Owner { return r.root }

func (r *Runtime) activeSub() *Node                { return r.tracker.activeSub() }
func (r *Runtime) activeScope() *Owner             { return r.tracker.activeScope() }
func (r *Runtime) setActiveSub(n *Node) *Node      { return r.tracker.setActiveSub(n) }
func (r *Runtime) setActiveScope(o *Owner) *Owner  { return r.tracker.setActiveScope(o) }

// SetActiveSub is the public low-level primitive: install n as the active
// subscriber and return the previous one, for the caller to restore.
func (r *Runtime) SetActiveSub(n *Node) *Node { return r.setActiveSub(n) }

// Untrack runs fn with the active subscriber suspended.
func (r *Runtime) Untrack(fn func()) {
	r.tracker.untrack(fn)
}

// NewScope creates a nested scope, makes it active for the duration of
// setup, registers it with its owner (see registerChild: the running
// effect, if any, else the currently active scope), and returns its
// handle.
func (r *Runtime) NewScope(setup func()) *Owner {
	o := newOwner(r)
	r.registerChild(o.Node)

	prev := r.setActiveScope(o)
	defer r.setActiveScope(prev)

	setup()
	return o
}

// registerChild attaches child (a freshly created effect or scope) to
// whichever node should own it: the innermost currently-running effect, if
// any, else the active scope. An effect created inside another effect's
// action is owned by that effect rather than by the ambient scope, so it
// is torn down the moment its owner is invalidated (see
// disposeOwnedChildren) instead of outliving it until the scope itself is
// disposed.
func (r *Runtime) registerChild(child *Node) {
	if owner := r.activeSub(); owner != nil && owner.IsEffect() {
		owner.addChild(child)
		return
	}
	r.activeScope().AddChild(child)
}

func (r *Runtime) enqueueEffect(n *Node) {
	if n.EffectClass == EffectClassRender {
		r.renderQueue.Push(n)
	} else {
		r.userQueue.Push(n)
	}
}

func (r *Runtime) reportCycle(n *Node) {
	r.observer.OnError(n, &CycleError{Node: n})
}

// IsBatching reports whether a Batch/StartBatch is currently open.
func (r *Runtime) IsBatching() bool {
	return r.batchDepth > 0
}

// maybeFlush flushes immediately unless a batch is currently open, in
// which case the eventual EndBatch/Batch completion will flush instead.
func (r *Runtime) maybeFlush() {
	if r.IsBatching() {
		return
	}
	r.Flush()
}

// Batch runs fn with batch depth incremented by one, flushing once if
// depth returns to zero as a result.
func (r *Runtime) Batch(fn func()) {
	r.batchDepth++
	defer func() {
		r.batchDepth--
		if r.batchDepth == 0 {
			r.Flush()
		}
	}()

	fn()
}

func (r *Runtime) StartBatch() { r.batchDepth++ }

// EndBatch decrements batch depth directly, for collaborators using the
// explicit StartBatch/EndBatch pair instead of the Batch(fn) form. It
// saturates at zero rather than going negative; an unmatched EndBatch is
// reported as ErrBatchMismatch — through the same debug observer channel
// used for CycleError — rather than panicking, since a library whose
// teardown path can panic is hostile to a caller already unwinding from
// another error.
func (r *Runtime) EndBatch() error {
	if r.batchDepth == 0 {
		r.observer.OnError(nil, &BatchMismatchError{})
		return ErrBatchMismatch
	}
	r.batchDepth--
	if r.batchDepth == 0 {
		r.Flush()
	}
	return nil
}

// Flush drains the render queue then the user queue, repeating while
// either still has work (a run in one queue can schedule work in either),
// until both are empty. Settlement callbacks registered against a given
// queue fire once that queue has been drained to exhaustion for the first
// time since they were registered; OnSettled fires once only after both
// queues are simultaneously empty.
func (r *Runtime) Flush() {
	if r.flushing {
		return
	}
	r.flushing = true
	defer func() { r.flushing = false }()

	renderSettledFired := len(r.renderSettled) == 0
	userSettledFired := len(r.userSettled) == 0

	rounds := 0
	for !r.renderQueue.Empty() || !r.userQueue.Empty() {
		rounds++
		if rounds > maxFlushRounds {
			r.reportCycle(nil)
			break
		}

		r.renderQueue.drain(r.runQueuedEffect)
		if !renderSettledFired {
			renderSettledFired = true
			r.fireCallbacks(&r.renderSettled)
		}

		r.userQueue.drain(r.runQueuedEffect)
		if !userSettledFired {
			userSettledFired = true
			r.fireCallbacks(&r.userSettled)
		}
	}

	if !renderSettledFired {
		r.fireCallbacks(&r.renderSettled)
	}
	if !userSettledFired {
		r.fireCallbacks(&r.userSettled)
	}
	r.fireCallbacks(&r.settled)
}

func (r *Runtime) runQueuedEffect(n *Node) {
	if n.disposed {
		return
	}
	runEffect(n)
}

func (r *Runtime) fireCallbacks(list *[]func()) {
	cbs := *list
	*list = nil
	for _, cb := range cbs {
		cb()
	}
}

// OnSettled registers a one-shot callback for the next point at which a
// flush has fully drained both effect queues.
func (r *Runtime) OnSettled(fn func()) { r.settled = append(r.settled, fn) }

// OnRenderSettled registers a one-shot callback for the next time the
// render effect queue is drained to exhaustion.
func (r *Runtime) OnRenderSettled(fn func()) { r.renderSettled = append(r.renderSettled, fn) }

// OnUserSettled registers a one-shot callback for the next time the user
// effect queue is drained to exhaustion.
func (r *Runtime) OnUserSettled(fn func()) { r.userSettled = append(r.userSettled, fn) }
