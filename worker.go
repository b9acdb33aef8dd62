package conveyor

import (
	"context"
	"errors"
	"iter"
	"sync/atomic"
)

var ErrWorkerStopped = errors.New("conveyor worker is stopped")

// Asynchronous conveyor.
type Worker[T, C any] interface {
	// Registers belt and returns ErrWorkerStopped if the Worker is
	// stopped or the conveyor already finished.
	Handle(belt Belt[T], bc C) error
	// Returns false if Worker was stopped.
	IsRunning() bool
}

// Returns Worker feeding belts to engine.
// eventSink receives the merged output of the conveyor; consumption
// starts once the first belt arrives, either staged on the engine
// beforehand or registered through Handle. The Worker keeps accepting
// belts until the conveyor finishes or ctx is canceled.
func NewWorker[T, C, U any](ctx context.Context, eventSink func(iter.Seq2[U, error]), engine *Engine[T, C, U]) Worker[T, C] {
	w := &worker[T, C, U]{
		ctx:       ctx,
		eventSink: eventSink,
		engine:    engine,
	}

	w.start()

	return w
}

type worker[T, C, U any] struct {
	ctx       context.Context
	engine    *Engine[T, C, U]
	beltPipe  chan registration[T, C]
	eventSink func(iter.Seq2[U, error])
	started   atomic.Bool
	done      chan struct{}
}

type registration[T, C any] struct {
	belt     Belt[T]
	bc       C
	accepted chan bool
}

func (w *worker[T, C, U]) Handle(belt Belt[T], bc C) error {
	if !w.started.Load() {
		return ErrWorkerStopped
	}

	accepted := make(chan bool, 1)

	select {
	case w.beltPipe <- registration[T, C]{belt: belt, bc: bc, accepted: accepted}:
		if !<-accepted {
			return ErrWorkerStopped
		}

		return nil
	case <-w.ctx.Done():
		return ErrWorkerStopped
	case <-w.done:
		return ErrWorkerStopped
	}
}

func (w *worker[T, C, U]) IsRunning() bool {
	return w.started.Load()
}

func (w *worker[T, C, U]) start() {
	if w.started.Load() {
		return
	}

	w.beltPipe = make(chan registration[T, C])
	w.done = make(chan struct{})
	w.started.Store(true)

	go func() {
		defer close(w.done)
		defer w.started.Store(false)

		if !w.hasStagedBelts() {
			select {
			case <-w.ctx.Done():
				return
			case r := <-w.beltPipe:
				r.accepted <- w.engine.addInlet(r.belt, r.bc)
			}
		}

		drained := make(chan struct{})
		go func() {
			w.eventSink(w.engine.All(w.ctx))
			close(drained)
		}()

		for {
			select {
			case <-w.ctx.Done():
				<-drained

				return
			case <-drained:
				return
			case r := <-w.beltPipe:
				r.accepted <- w.engine.addInlet(r.belt, r.bc)
			}
		}
	}()
}

func (w *worker[T, C, U]) hasStagedBelts() bool {
	w.engine.mu.Lock()
	defer w.engine.mu.Unlock()

	return w.engine.live > 0
}
