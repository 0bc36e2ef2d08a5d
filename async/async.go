// Package async adapts a cancellable, retryable operation into the
// three-state (Loading/Data/Failed) shape a reactive cell can hold. The
// core forbids mutating one graph from more than one goroutine (see
// reactive's package doc); rather than hand the cell to a background
// goroutine, Run drives the state transitions from the caller's own
// goroutine, blocking through retries exactly like an ordinary call.
package async

import (
	"context"
	"errors"
	"time"

	"github.com/arsenfield/reactive"
)

// Status is the three-state lifecycle of an asynchronous value.
type Status int

const (
	Loading Status = iota
	Data
	Failed
)

// Result is the value a State[Result[T]] holds while wrapping async work.
type Result[T any] struct {
	Status Status
	Value  T
	Err    error
}

// Policy configures retry behavior for Run. A zero Policy performs no
// retries: one attempt, no backoff.
type Policy struct {
	MaxAttempts int
	Backoff     func(attempt int) time.Duration
}

// Run creates a state cell holding Loading, then calls fn (retrying per
// policy on non-cancellation errors), writing Data or Failed into the same
// cell before returning. Because the write happens on the calling
// goroutine, Run must be called from whatever goroutine owns the runtime
// that will read the returned cell.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error), policy Policy) *reactive.State[Result[T]] {
	cell := reactive.NewState(Result[T]{Status: Loading})

	attempts := policy.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && policy.Backoff != nil {
			timer := time.NewTimer(policy.Backoff(attempt))
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				cell.Write(Result[T]{Status: Failed, Err: ctx.Err()})
				return cell
			}
		}

		if err := ctx.Err(); err != nil && attempt > 0 {
			cell.Write(Result[T]{Status: Failed, Err: err})
			return cell
		}

		value, err := fn(ctx)
		if err == nil {
			cell.Write(Result[T]{Status: Data, Value: value})
			return cell
		}
		lastErr = err
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
	}

	cell.Write(Result[T]{Status: Failed, Err: lastErr})
	return cell
}
