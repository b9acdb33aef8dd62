package conveyor

import (
	"context"
	"fmt"
)

// Handler is called for every item an inlet belt produces, along with the
// belt context supplied at registration. It decides what the conveyor does
// with the item: Yield a single result or Feed a whole belt of results.
// A returned error retires the originating inlet belt.
type Handler[T, C, U any] func(context.Context, T, C) (Step[U], error)

// Step is the outcome of handling one item: either a single value to yield
// or a belt to merge into the output. The zero Step yields a zero value.
type Step[U any] struct {
	belt  Belt[U]
	value U
	feed  bool
}

// Returns Step that yields v to the consumer.
func Yield[U any](v U) Step[U] {
	return Step[U]{value: v}
}

// Returns Step that merges every item of belt into the output.
// The belt joins the conveyor as an outlet; its items bypass the handler.
func Feed[U any](belt Belt[U]) Step[U] {
	return Step[U]{belt: belt, feed: true}
}

// Handler that yields same item it receives without changes.
func PassThrough[T, C any]() Handler[T, C, T] {
	return func(ctx context.Context, v T, bc C) (Step[T], error) {
		return Yield(v), nil
	}
}

// HandleFunc returns Handler that applies handle to every item,
// ignoring the belt context.
func HandleFunc[C, T, U any](handle Handle[T, U]) Handler[T, C, U] {
	return func(ctx context.Context, v T, bc C) (Step[U], error) {
		u, err := handle(ctx, v)
		if err != nil {
			return Step[U]{}, err
		}

		return Yield(u), nil
	}
}

func withRecovery[T, C, U any, H Handler[T, C, U]](handle H) H {
	return func(ctx context.Context, v T, bc C) (st Step[U], err error) {
		defer func() {
			if r := recover(); r != nil {
				st = Step[U]{}
				err = fmt.Errorf("recovered from panic: %v", r)
			}
		}()

		return handle(ctx, v, bc)
	}
}
