package conveyor

import (
	"errors"
	"fmt"

	"github.com/andriiyaremenko/conveyor/internal"
)

var (
	_ error = new(Error[any])
	_ error = new(BeltError)

	// ErrConsumed is reported when a conveyor is consumed a second time.
	// A conveyor is single-pass; construct a new Engine to run again.
	ErrConsumed = errors.New("conveyor was already consumed")
)

// Returns new *Error[T] caused by err while processing payload.
func NewError[T any](err error, payload T) *Error[T] {
	return &Error[T]{Payload: payload, cause: err}
}

// Error is a failure bound to the payload that caused it.
// The conveyor wraps every handler failure in *Error[T] carrying the
// inlet item the handler was called with.
type Error[T any] struct {
	Payload T

	cause error
}

// Implementation of error.
func (err *Error[T]) Error() string {
	return fmt.Sprintf("error processing %s: %s", internal.TypeName[T](), err.cause)
}

// Returns underlying error.
func (err *Error[T]) Unwrap() error {
	return err.cause
}

// Returns new *BeltError for a failed pull of a belt with the given role.
func NewBeltError(role Role, err error) *BeltError {
	return &BeltError{Role: role, cause: err}
}

// BeltError is a failure raised by a belt pull instead of an item.
// The failed belt is retired: it is never pulled again.
type BeltError struct {
	Role Role

	cause error
}

// Implementation of error.
func (err *BeltError) Error() string {
	return fmt.Sprintf("%s belt failed: %s", err.Role, err.cause)
}

// Returns underlying error.
func (err *BeltError) Unwrap() error {
	return err.cause
}
