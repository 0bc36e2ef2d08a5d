// Package reactive is a fine-grained reactive-signals runtime: state
// cells, derived cells, and effects kept in sync through a dependency
// graph that tracks exact per-value dependencies and recomputes only what
// actually changed.
//
// A goroutine that creates a State, Derived, or Effect owns a private
// graph for its entire lifetime; nothing is shared across goroutines, so
// there is no locking on the hot path. Reads inside a Derived's compute
// function or an Effect's action are tracked automatically; writes
// propagate synchronously, and affected effects run before the write
// returns unless a Batch is open.
package reactive

import "github.com/arsenfield/reactive/internal"

func currentRuntime() *internal.Runtime {
	return internal.GetRuntime()
}
