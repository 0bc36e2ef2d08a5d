package reactive

// Batch defers effect flushing until fn (and any nested Batch/StartBatch
// it contains) returns: writes inside still propagate immediately to
// derived cells, but affected effects run only once, after the outermost
// batch completes, instead of once per write.
func Batch(fn func()) {
	currentRuntime().Batch(fn)
}

// StartBatch increments the current runtime's batch depth. Pair with
// EndBatch; prefer Batch(fn) unless the batch's extent can't be expressed
// as a single function call.
func StartBatch() {
	currentRuntime().StartBatch()
}

// EndBatch decrements the current runtime's batch depth, flushing if it
// reaches zero. Calling it with depth already at zero returns
// ErrBatchMismatch rather than panicking or going negative.
func EndBatch() error {
	return currentRuntime().EndBatch()
}

// OnSettled registers a one-shot callback for the next point at which a
// flush on the current runtime has fully drained both effect queues.
func OnSettled(fn func()) {
	currentRuntime().OnSettled(fn)
}

// OnRenderSettled registers a one-shot callback for the next time the
// current runtime's render effect queue is drained to exhaustion.
func OnRenderSettled(fn func()) {
	currentRuntime().OnRenderSettled(fn)
}

// OnUserSettled registers a one-shot callback for the next time the
// current runtime's user effect queue is drained to exhaustion.
func OnUserSettled(fn func()) {
	currentRuntime().OnUserSettled(fn)
}
