package conveyor

import (
	"context"

	"github.com/andriiyaremenko/conveyor/internal"
)

// Handle transforms a single item into a single result.
// Lift it into a Handler with HandleFunc to drive a conveyor with it.
type Handle[T, U any] func(context.Context, T) (U, error)

// Constructs Handle from function, that has no error output.
func LiftOk[T, U any, Fn func(context.Context, T) U](fn Fn) Handle[T, U] {
	return func(ctx context.Context, v T) (U, error) {
		return fn(ctx, v), nil
	}
}

// Constructs Handle from function, that has no context input.
func LiftNoContext[T, U any, Fn func(T) (U, error)](fn Fn) Handle[T, U] {
	return func(_ context.Context, v T) (U, error) {
		return fn(v)
	}
}

// Combines two Handles into one with input type T and output type N.
// The second Handle is not called when the first one fails.
func AppendHandle[T, U, N any, H1 Handle[T, U], H2 Handle[U, N]](h1 H1, h2 H2) Handle[T, N] {
	return func(ctx context.Context, v T) (N, error) {
		u, err := h1(ctx, v)
		if err != nil {
			return internal.ZeroValue[N](), err
		}

		return h2(ctx, u)
	}
}

// Combines a Handle and error Handle into one with input type T and output type U.
// The error Handle receives the failure wrapped in *Error[T] carrying the
// input, and may turn it into a result to keep the conveyor moving.
func AppendErrHandle[T, U any, H Handle[T, U], ErrH Handle[error, U]](h H, errH ErrH) Handle[T, U] {
	return func(ctx context.Context, v T) (U, error) {
		u, err := h(ctx, v)
		if err != nil {
			return errH(ctx, NewError(err, v))
		}

		return u, nil
	}
}
