package internal

// propagate walks source's subscriber list after a write or a changed
// recompute, marking derived subscribers PENDING (recursing into their own
// subscribers only the first time they go from CLEAN to PENDING) and
// pushing effect subscribers onto their runtime's pending queue.
func propagate(source *Node) {
	for l := source.SubsHead; l != nil; l = l.NextSub {
		s := l.Sub

		if s.IsEffect() {
			if !s.Flags.Has(FlagNotified) {
				s.Flags.set(FlagNotified)
				// s is now guaranteed to rerun before this flush completes,
				// so whatever it owns from its last run is already stale.
				// Disposing it here rather than at rerun time means an
				// owned child already sitting in the pending queue (from an
				// earlier, unrelated notification) is found disposed and
				// skipped when its turn comes, instead of running with data
				// from a run its owner has already invalidated.
				disposeOwnedChildren(s)
				s.runtime.enqueueEffect(s)
			}
			continue
		}

		if !s.IsDerived() {
			// scope membership links never appear on a subs list being
			// propagated from, but guard anyway rather than mis-treat one.
			continue
		}

		if s.Flags.Has(FlagTracking) {
			// s is re-entering itself through a cycle: treat as no new
			// information rather than recursing forever.
			s.runtime.reportCycle(s)
			continue
		}

		if s.Flags.Has(FlagPending) || s.Flags.Has(FlagDirty) {
			continue // already informed of uncertainty
		}

		s.Flags.set(FlagPending)
		propagate(s)
	}
}

// validate resolves a PENDING or DIRTY derived cell to CLEAN (leaving
// cached value untouched) or DIRTY-then-recomputed, per spec §4.3. A CLEAN
// cell with a cached value returns immediately.
func validate(d *Node) {
	if d.Flags.Has(FlagTracking) {
		// d is re-entering itself through a cycle of direct reads rather
		// than a write-triggered propagation: same rule as propagate's
		// FlagTracking guard above, applied on the read path. Leave d's
		// cached value as-is rather than recursing into recompute again.
		d.runtime.reportCycle(d)
		return
	}

	if !d.Flags.Has(FlagPending) && !d.Flags.Has(FlagDirty) {
		return
	}

	if d.Flags.Has(FlagDirty) {
		recompute(d)
		return
	}

	changed := false
	for l := d.DepsHead; l != nil; l = l.NextDep {
		e := l.Dep
		if e.Flags.Has(FlagWatching) {
			validate(e)
		}
		if !valuesEqual(e.Value, l.SeenValue) {
			changed = true
			break
		}
	}

	if changed {
		d.Flags.set(FlagDirty)
		recompute(d)
		return
	}

	d.Flags.clear(FlagPending)
}

// recompute re-runs a derived cell's compute function, rebuilding its dep
// list, and propagates to its own subscribers only if the result changed
// (glitch-free memoization). A panic from Compute leaves the cached value
// untouched, leaves the cell DIRTY so the next read retries, and re-panics
// (wrapped) after the engine's own invariants are restored — there is no
// caller to swallow a derived cell's error into, unlike an effect's.
func recompute(d *Node) {
	r := d.runtime
	prevSub := r.setActiveSub(d)
	d.beginTrack()

	var result any
	var caught any
	func() {
		defer func() { caught = recover() }()
		result = d.Compute(d.Value, d.HasValue)
	}()

	d.endTrack()
	r.setActiveSub(prevSub)

	if caught != nil {
		d.Flags.set(FlagDirty)
		err := &UserComputeError{Panic: caught}
		r.observer.OnRecompute(d, err)
		panic(err)
	}

	prevValue, prevOK := d.Value, d.HasValue
	d.Value = result
	d.HasValue = true
	d.Flags.clear(FlagDirty)
	d.Flags.clear(FlagPending)

	r.observer.OnRecompute(d, nil)

	if !prevOK || !valuesEqual(prevValue, result) {
		propagate(d)
	}
}

// runEffect runs an effect cell's action, first running any pending
// cleanup registered by the previous run. Panics are recovered here (not
// re-panicked to the point that scheduled the effect, which is generally
// unrelated code) and routed to the nearest ancestor scope's error
// boundary; with none registered, the panic is re-raised out of Flush.
func runEffect(e *Node) {
	e.Flags.clear(FlagNotified)

	if e.Cleanup != nil {
		cleanup := e.Cleanup
		e.Cleanup = nil
		cleanup()
	}

	r := e.runtime
	prevSub := r.setActiveSub(e)
	e.beginTrack()

	var caught any
	func() {
		defer func() { caught = recover() }()
		e.Action()
	}()

	e.endTrack()
	r.setActiveSub(prevSub)

	if caught != nil {
		r.observer.OnError(e, &UserComputeError{Panic: caught})
		if !dispatchToErrorBoundary(e, caught) {
			panic(caught)
		}
	}
}

// valuesEqual compares two dynamically-typed values using Go's built-in
// equality, degrading to "not equal" (never panicking) for dynamic types
// that aren't comparable — such a value is always treated as changed,
// which is safe (it just forgoes the glitch-free short-circuit for that
// one comparison) rather than surprising.
func valuesEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
