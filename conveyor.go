package conveyor

import (
	"context"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/andriiyaremenko/conveyor/internal"
)

// Engine merges a dynamic set of belts into one consumable sequence.
//
// Inlet belts feed their items through the handler; outlet belts are
// merged verbatim. Belts may be registered at any point, including from
// within the handler itself while a run is in progress. The merged
// sequence ends once every belt is exhausted, or with the failures
// accumulated by the round that observed them.
type Engine[T, C, U any] struct {
	handler Handler[T, C, U]

	mu       sync.Mutex
	runCtx   context.Context
	backlog  []func(context.Context)
	pending  []event[T, C, U]
	failures []error
	live     int
	started  bool
	finished bool

	ready    chan struct{}
	consumed atomic.Bool
}

// Returns new *Engine driven by handler.
// Handler panics are recovered and reported as handler failures.
func New[T, C, U any](handler Handler[T, C, U]) *Engine[T, C, U] {
	return &Engine[T, C, U]{
		handler: withRecovery(handler),
		ready:   make(chan struct{}, 1),
	}
}

// Add registers an inlet belt. Convenience equivalent of AddInlet.
func (e *Engine[T, C, U]) Add(belt Belt[T], bc C) {
	e.AddInlet(belt, bc)
}

// AddInlet registers a belt whose items pass through the handler, each
// paired with the belt context bc. Registration is safe at any time,
// including from within the handler while a round is being drained.
// Belts registered after the conveyor finished are ignored.
func (e *Engine[T, C, U]) AddInlet(belt Belt[T], bc C) {
	e.addInlet(belt, bc)
}

// addInlet reports whether the belt joined the conveyor; a finished
// conveyor accepts no belts.
func (e *Engine[T, C, U]) addInlet(belt Belt[T], bc C) bool {
	b := &inletBelt[T, C]{src: belt, bc: bc}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished {
		return false
	}

	e.live++

	if !e.started {
		e.backlog = append(e.backlog, func(ctx context.Context) { e.pullInlet(ctx, b) })

		return true
	}

	e.pullInlet(e.runCtx, b)

	return true
}

// AddOutlet registers a belt whose items are yielded verbatim, bypassing
// the handler. Same registration rules as AddInlet.
func (e *Engine[T, C, U]) AddOutlet(belt Belt[U]) {
	b := &outletBelt[U]{src: belt}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished {
		return
	}

	e.live++

	if !e.started {
		e.backlog = append(e.backlog, func(ctx context.Context) { e.pullOutlet(ctx, b) })

		return
	}

	e.pullOutlet(e.runCtx, b)
}

// All returns the merged output of the conveyor as a single lazy
// sequence, driven by consuming it. Values are produced approximately
// in completion order across belts; a belt's own items always keep
// their order. Once a round accumulates failures, the round's values
// are delivered first and every failure follows as a (zero, error)
// pair, ending the sequence.
//
// The sequence is consumed at most once; further calls produce a single
// (zero, ErrConsumed) pair. Canceling ctx ends the sequence with
// ctx.Err().
func (e *Engine[T, C, U]) All(ctx context.Context) iter.Seq2[U, error] {
	return func(yield func(U, error) bool) {
		if !e.consumed.CompareAndSwap(false, true) {
			yield(internal.ZeroValue[U](), ErrConsumed)

			return
		}

		e.mu.Lock()
		e.runCtx = ctx
		e.started = true
		for _, pull := range e.backlog {
			pull(ctx)
		}
		e.backlog = nil
		e.mu.Unlock()

		for {
			e.mu.Lock()
			if e.live == 0 {
				e.settle(yield)

				return
			}
			e.mu.Unlock()

			select {
			case <-e.ready:
			case <-ctx.Done():
				e.mu.Lock()
				e.finished = true
				e.mu.Unlock()

				yield(internal.ZeroValue[U](), ctx.Err())

				return
			}

			e.mu.Lock()
			batch := e.pending
			e.pending = nil
			e.mu.Unlock()

			for i := range batch {
				if !e.process(ctx, &batch[i], yield) {
					e.mu.Lock()
					e.finished = true
					e.mu.Unlock()

					return
				}
			}

			e.mu.Lock()
			if len(e.failures) != 0 {
				e.settle(yield)

				return
			}
			e.mu.Unlock()
		}
	}
}

// settle ends the run and replays every accumulated failure one by one.
// Called with e.mu held; releases it.
func (e *Engine[T, C, U]) settle(yield func(U, error) bool) {
	failures := e.failures
	e.failures = nil
	e.finished = true
	e.mu.Unlock()

	for _, err := range failures {
		if !yield(internal.ZeroValue[U](), err) {
			return
		}
	}
}

// process consumes one queued event. Inlet items go through the
// handler: a scalar result is yielded in place, a fed belt joins the
// conveyor as an outlet. Outlet items are yielded verbatim. The
// originating belt is pulled again afterwards, except that a failed
// handler retires its belt. Returns false once the consumer stopped
// iterating.
func (e *Engine[T, C, U]) process(ctx context.Context, ev *event[T, C, U], yield func(U, error) bool) bool {
	switch ev.role {
	case Inlet:
		st, err := e.handler(ctx, ev.item, ev.inlet.bc)
		if err != nil {
			e.mu.Lock()
			e.failures = append(e.failures, NewError(err, ev.item))
			e.live--
			e.mu.Unlock()

			return true
		}

		if st.feed {
			e.AddOutlet(st.belt)
		} else if !yield(st.value, nil) {
			return false
		}

		e.pullInlet(ctx, ev.inlet)
	case Outlet:
		if !yield(ev.out, nil) {
			return false
		}

		e.pullOutlet(ctx, ev.outlet)
	}

	return true
}

// inletBelt is the engine's handle on one registered inlet: the source
// plus the belt context handed to the handler with every item.
type inletBelt[T, C any] struct {
	src Belt[T]
	bc  C
}

type outletBelt[U any] struct {
	src Belt[U]
}

// pullInlet asynchronously pulls the next item of b and records the
// outcome: an item joins the pending queue, end-of-belt and failures
// retire the belt. Always resolves the round signal; failures are
// captured, never thrown.
func (e *Engine[T, C, U]) pullInlet(ctx context.Context, b *inletBelt[T, C]) {
	go func() {
		v, ok, err := next(ctx, b.src)

		e.mu.Lock()
		switch {
		case err != nil:
			e.failures = append(e.failures, NewBeltError(Inlet, err))
			e.live--
		case !ok:
			e.live--
		default:
			e.pending = append(e.pending, event[T, C, U]{role: Inlet, inlet: b, item: v})
		}
		e.mu.Unlock()

		e.wake()
	}()
}

// pullOutlet is pullInlet for outlet belts.
func (e *Engine[T, C, U]) pullOutlet(ctx context.Context, b *outletBelt[U]) {
	go func() {
		v, ok, err := next(ctx, b.src)

		e.mu.Lock()
		switch {
		case err != nil:
			e.failures = append(e.failures, NewBeltError(Outlet, err))
			e.live--
		case !ok:
			e.live--
		default:
			e.pending = append(e.pending, event[T, C, U]{role: Outlet, outlet: b, out: v})
		}
		e.mu.Unlock()

		e.wake()
	}()
}

// wake resolves the round signal. Concurrent wakes collapse into a
// single token; the merge loop's receive doubles as the per-round
// reset.
func (e *Engine[T, C, U]) wake() {
	select {
	case e.ready <- struct{}{}:
	default:
	}
}
