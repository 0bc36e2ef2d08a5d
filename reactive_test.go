package reactive

import (
	"errors"
	"fmt"
	"testing"

	"github.com/arsenfield/reactive/internal"
	"github.com/stretchr/testify/assert"
)

func TestState(t *testing.T) {
	t.Run("no-change idempotence", func(t *testing.T) {
		a := NewState(5)
		runs := 0
		NewEffect(func() {
			a.Read()
			runs++
		})
		assert.Equal(t, 1, runs)

		a.Write(5)
		assert.Equal(t, 1, runs, "writing the same value must not re-run subscribers")
	})

	t.Run("trigger forces propagation even with no value change", func(t *testing.T) {
		a := NewState([]int{1, 2, 3})
		runs := 0
		NewEffect(func() {
			a.Read()
			runs++
		})
		assert.Equal(t, 1, runs)

		a.Trigger()
		assert.Equal(t, 2, runs)
	})

	t.Run("peek never creates an edge", func(t *testing.T) {
		a := NewState(1)
		runs := 0
		NewEffect(func() {
			a.Peek()
			runs++
		})
		assert.Equal(t, 1, runs)

		a.Write(2)
		assert.Equal(t, 1, runs, "peek must not subscribe the effect")
	})
}

func TestDerivedDiamond(t *testing.T) {
	s := NewState(1)
	l := NewDerived(func(prev int, ok bool) int { return s.Read() * 2 })
	r := NewDerived(func(prev int, ok bool) int { return s.Read() * 3 })

	dRuns := 0
	d := NewDerived(func(prev int, ok bool) int {
		dRuns++
		return l.Read() + r.Read()
	})

	bRuns := 0
	var seen int
	NewEffect(func() {
		seen = d.Read()
		bRuns++
	})
	assert.Equal(t, 5, seen)
	assert.Equal(t, 1, dRuns)

	s.Write(2)
	assert.Equal(t, 10, seen)
	assert.Equal(t, 2, dRuns, "d must recompute exactly once for the write, not once per path")
	assert.Equal(t, 2, bRuns)
}

func TestGlitchFreeMemoization(t *testing.T) {
	s := NewState(1)
	aRuns := 0
	a := NewDerived(func(prev int, ok bool) int {
		aRuns++
		return s.Read() * 0 // always 0
	})
	bRuns := 0
	b := NewDerived(func(prev int, ok bool) int {
		bRuns++
		return a.Read() + 1
	})

	assert.Equal(t, 0, a.Read())
	_ = b.Read()
	assert.Equal(t, 1, aRuns)
	assert.Equal(t, 1, bRuns)

	s.Write(10)
	assert.Equal(t, 0, a.Read())
	_ = b.Read()
	assert.Equal(t, 2, aRuns, "a revalidates since its dep changed")
	assert.Equal(t, 1, bRuns, "b must not recompute: a's value didn't actually change")
}

func TestConditionalDependencyRetraction(t *testing.T) {
	cond := NewState(true)
	a := NewState(1)
	b := NewState(2)
	runs := 0

	NewEffect(func() {
		if cond.Read() {
			a.Read()
		} else {
			b.Read()
		}
		runs++
	})
	assert.Equal(t, 1, runs)

	b.Write(20)
	assert.Equal(t, 1, runs, "b is not read on this branch: must not notify")

	cond.Write(false)
	assert.Equal(t, 2, runs)

	a.Write(100)
	assert.Equal(t, 2, runs, "a is no longer read: must not notify after retraction")

	b.Write(30)
	assert.Equal(t, 3, runs)
}

func TestEdgeSymmetry(t *testing.T) {
	a := NewState(1)
	var dNode *internal.Node
	d := NewDerived(func(prev int, ok bool) int { return a.Read() + 1 })
	dNode = d.Node()
	NewEffect(func() {
		d.Read()
	})

	aNode := a.Node()
	assert.Contains(t, aNode.Subs(), dNode)
	assert.Contains(t, dNode.Deps(), aNode)

	for _, sub := range aNode.Subs() {
		assert.Contains(t, sub.Deps(), aNode)
	}
}

func TestBatchSingleRunPerBatch(t *testing.T) {
	a := NewState(1)
	b := NewState(2)
	runs := 0

	NewEffect(func() {
		a.Read()
		b.Read()
		runs++
	})
	assert.Equal(t, 1, runs)

	Batch(func() {
		a.Write(10)
		b.Write(20)
		a.Write(11)
	})
	assert.Equal(t, 2, runs, "a batch of writes must cause exactly one run")
}

func TestEffectCleanupTotality(t *testing.T) {
	a := NewState(1)
	log := []string{}

	e := NewEffect(func() {
		log = append(log, fmt.Sprintf("run %d", a.Read()))
		OnCleanup(func() { log = append(log, "cleanup") })
	})

	assert.Equal(t, []string{"run 1"}, log)

	node := e.node
	assert.NotEmpty(t, node.Deps())

	e.Stop()
	assert.Equal(t, []string{"run 1", "cleanup"}, log)
	assert.Empty(t, node.Deps())

	a.Write(2)
	assert.Equal(t, []string{"run 1", "cleanup"}, log, "a stopped effect must not re-run")
}

func TestScopeCleanupTotality(t *testing.T) {
	a := NewState(1)
	log := []string{}

	var inner *internal.Node
	scope := NewScope(func() {
		e := NewEffect(func() {
			log = append(log, fmt.Sprintf("run %d", a.Read()))
		})
		inner = e.node
	})

	assert.Equal(t, []string{"run 1"}, log)

	scope.Stop()
	assert.Empty(t, inner.Deps())

	a.Write(2)
	assert.Equal(t, []string{"run 1"}, log, "disposing the scope must stop its effects")
}

func TestOwnerErrorBoundary(t *testing.T) {
	t.Run("catches a panic from a directly owned effect", func(t *testing.T) {
		// The handle only exists once NewScope returns, so the effect panics
		// on a later write rather than during setup.
		var caught any
		fail := NewState(false)
		scope := NewScope(func() {
			NewEffect(func() {
				if fail.Read() {
					panic(errors.New("boom"))
				}
			})
		})
		scope.OnError(func(e any) { caught = e })
		fail.Write(true)

		assert.EqualError(t, caught.(error), "boom")
	})

	t.Run("catches a panic from a transitively owned nested scope", func(t *testing.T) {
		var caught any
		fail := NewState(false)
		outer := NewScope(func() {
			NewScope(func() {
				NewEffect(func() {
					if fail.Read() {
						panic("nested boom")
					}
				})
			})
		})
		outer.OnError(func(e any) { caught = e })
		fail.Write(true)

		assert.Equal(t, "nested boom", caught)
	})

	t.Run("a closer catcher wins over an outer one", func(t *testing.T) {
		var outerCaught, innerCaught any
		var inner *ScopeHandle
		fail := NewState(false)
		outer := NewScope(func() {
			inner = NewScope(func() {
				NewEffect(func() {
					if fail.Read() {
						panic("inner boom")
					}
				})
			})
		})
		outer.OnError(func(e any) { outerCaught = e })
		inner.OnError(func(e any) { innerCaught = e })
		fail.Write(true)

		assert.Equal(t, "inner boom", innerCaught)
		assert.Nil(t, outerCaught, "the inner boundary must handle it before it reaches the outer one")
	})

	t.Run("panics uncaught when no boundary is registered", func(t *testing.T) {
		var panicked any
		func() {
			defer func() { panicked = recover() }()
			NewScope(func() {
				NewEffect(func() {
					panic("unhandled")
				})
			})
		}()
		assert.Equal(t, "unhandled", panicked)
	})
}

func TestRenderVsUserEffectOrdering(t *testing.T) {
	a := NewState(0)
	order := []string{}

	NewRenderEffect(func() {
		a.Read()
		order = append(order, "render")
	})
	NewEffect(func() {
		a.Read()
		order = append(order, "user")
	})

	order = order[:0]
	a.Write(1)
	assert.Equal(t, []string{"render", "user"}, order, "render effects run before user effects in the same flush")
}

func TestNestedEffectOuterFirst(t *testing.T) {
	a := NewState(1)
	b := NewState(1)
	assertionFired := false

	NewEffect(func() {
		if a.Read() != 0 {
			NewEffect(func() {
				b.Read()
				if a.Read() == 0 {
					assertionFired = true
				}
			})
		}
	})

	Batch(func() {
		b.Write(0)
		a.Write(0)
	})

	assert.False(t, assertionFired, "outer must invalidate its stale child before it can observe inconsistent state")
}

func TestOnSettled(t *testing.T) {
	t.Run("fires once both queues are drained", func(t *testing.T) {
		a := NewState(0)
		log := []string{}

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", a.Read()))
		})

		OnSettled(func() { log = append(log, "settled") })

		a.Write(10)

		assert.Equal(t, []string{"changed 0", "changed 10", "settled"}, log)
	})

	t.Run("user effect writing back does not fire settled early", func(t *testing.T) {
		a := NewState(0)
		b := NewState(0)
		log := []string{}

		NewEffect(func() {
			av := a.Read()
			log = append(log, fmt.Sprintf("a %d", av))
			if av != 0 {
				b.Write(av * 2)
			}
		})
		NewEffect(func() {
			log = append(log, fmt.Sprintf("b %d", b.Read()))
		})

		log = log[:0]
		OnSettled(func() { log = append(log, "settled") })

		a.Write(5)

		assert.Equal(t, []string{"a 5", "b 10", "settled"}, log)
	})
}

// cycleCapturingObserver records how many times a CycleError is reported,
// for asserting that a cycle was broken via the observer channel rather
// than silently swallowed.
type cycleCapturingObserver struct {
	cycles *int
}

func (cycleCapturingObserver) OnNodeCreate(*internal.Node)       {}
func (cycleCapturingObserver) OnRecompute(*internal.Node, error) {}
func (cycleCapturingObserver) OnDispose(*internal.Node)          {}

func (o cycleCapturingObserver) OnError(n *internal.Node, err error) {
	var ce *internal.CycleError
	if errors.As(err, &ce) {
		*o.cycles++
	}
}

func TestCycleDetection(t *testing.T) {
	t.Run("a cycle discovered through direct reads during recompute is broken, not recursed forever", func(t *testing.T) {
		cycles := 0
		SetObserver(cycleCapturingObserver{cycles: &cycles})
		defer SetObserver(nil)

		// d and e don't depend on each other until toggle flips: this lets
		// both reach a real cached value first, so the cycle below is
		// discovered purely through validate's re-entrant FlagTracking
		// check rather than tangled up with a derived cell's very first,
		// still-unset value.
		toggle := NewState(false)
		var d, e *Derived[int]
		d = NewDerived(func(prev int, ok bool) int {
			if toggle.Read() {
				return e.Read() + 1
			}
			return 1
		})
		e = NewDerived(func(prev int, ok bool) int {
			return d.Read() + 1
		})

		assert.Equal(t, 1, d.Read())
		assert.Equal(t, 2, e.Read())

		toggle.Write(true)

		// d now depends on e and e depends on d: reading d re-enters d
		// through e's recompute while d is still FlagTracking. Before the
		// validate guard, this recursed until the goroutine's stack
		// overflowed (an unrecoverable Go fatal error); with the guard, d
		// resolves using e's last cached value and the cycle is reported.
		assert.Equal(t, 3, d.Read(), "d must resolve rather than recurse forever once it cycles through e")
		assert.GreaterOrEqual(t, cycles, 1, "the cycle must be reported through the observer")
	})
}

func TestEndBatchMismatch(t *testing.T) {
	t.Run("an unmatched EndBatch is reported through the observer instead of panicking", func(t *testing.T) {
		var reported error
		SetObserver(observerFunc(func(n *internal.Node, err error) { reported = err }))
		defer SetObserver(nil)

		err := EndBatch()

		assert.ErrorIs(t, err, internal.ErrBatchMismatch)
		var mismatch *internal.BatchMismatchError
		assert.ErrorAs(t, reported, &mismatch, "the mismatch must be reported through the observer, not just returned")
	})
}

// observerFunc adapts a single OnError callback into an internal.Observer,
// for tests that only care about the error-reporting channel.
type observerFunc func(n *internal.Node, err error)

func (observerFunc) OnNodeCreate(*internal.Node)       {}
func (observerFunc) OnRecompute(*internal.Node, error) {}
func (observerFunc) OnDispose(*internal.Node)          {}
func (f observerFunc) OnError(n *internal.Node, err error) { f(n, err) }
