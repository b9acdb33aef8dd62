package conveyor

import (
	"context"
	"fmt"

	"github.com/andriiyaremenko/conveyor/internal"
)

// Belt is an external source of asynchronously produced items, pulled
// one item at a time.
//
// Next returns the next item, false once the belt is exhausted, or an
// error if the belt failed. A belt that reported false or an error is
// never pulled again. The conveyor keeps at most one outstanding Next
// call per belt, so implementations are never pulled concurrently.
type Belt[T any] interface {
	Next(ctx context.Context) (T, bool, error)
}

// BeltFunc adapts a function to the Belt interface.
type BeltFunc[T any] func(ctx context.Context) (T, bool, error)

func (fn BeltFunc[T]) Next(ctx context.Context) (T, bool, error) {
	return fn(ctx)
}

// FromSlice returns a Belt producing every element of items in order.
func FromSlice[T any](items []T) Belt[T] {
	return &sliceBelt[T]{items: items}
}

// FromValues returns a Belt producing every value in order.
func FromValues[T any](values ...T) Belt[T] {
	return FromSlice(values)
}

// FromChan returns a Belt producing every value received from ch.
// The belt ends when ch is closed and fails with ctx.Err() if ctx is
// canceled while a receive is blocked.
func FromChan[T any](ch <-chan T) Belt[T] {
	return BeltFunc[T](func(ctx context.Context) (T, bool, error) {
		select {
		case v, ok := <-ch:
			if !ok {
				return internal.ZeroValue[T](), false, nil
			}

			return v, true, nil
		case <-ctx.Done():
			return internal.ZeroValue[T](), false, ctx.Err()
		}
	})
}

type sliceBelt[T any] struct {
	items []T
	next  int
}

func (b *sliceBelt[T]) Next(context.Context) (T, bool, error) {
	if b.next >= len(b.items) {
		return internal.ZeroValue[T](), false, nil
	}

	v := b.items[b.next]
	b.next++

	return v, true, nil
}

// next pulls a single item from belt, converting a panic into a pull
// failure so that nothing escapes the pull goroutine.
func next[T any](ctx context.Context, belt Belt[T]) (v T, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			v = internal.ZeroValue[T]()
			ok = false
			err = fmt.Errorf("recovered from panic: %v", r)
		}
	}()

	return belt.Next(ctx)
}
