package conveyor

import "iter"

// ErrorPolicy decides what happens to errors encountered while
// consuming a conveyor result.
type ErrorPolicy func(error) error

// ErrorPolicy that stops consumption on first encountered error.
func NoError(err error) error {
	return err
}

// Returns ErrorPolicy that skips errors, reporting each one to skip.
func SkipErrors(skip func(error)) ErrorPolicy {
	return func(err error) error {
		skip(err)

		return nil
	}
}

// Reduce folds every value of result into a single value using reduce.
// Errors are routed through policy; once policy returns a non-nil
// error, the fold stops and that error is returned along with the
// aggregate so far.
func Reduce[T, U any](result iter.Seq2[T, error], seed U, reduce func(U, T) U, policy ErrorPolicy) (U, error) {
	for v, err := range result {
		if err != nil {
			if err = policy(err); err != nil {
				return seed, err
			}

			continue
		}

		seed = reduce(seed, v)
	}

	return seed, nil
}

// ForEach calls fn for every value of result along with the value's
// index. Errors are routed through policy; once policy returns a
// non-nil error, consumption stops and that error is returned.
func ForEach[T any](result iter.Seq2[T, error], fn func(int, T), policy ErrorPolicy) error {
	i := 0
	for v, err := range result {
		if err != nil {
			if err = policy(err); err != nil {
				return err
			}

			continue
		}

		fn(i, v)
		i++
	}

	return nil
}

// Interrupt consumes result until fn returns true.
// Returns whether fn interrupted the consumption.
func Interrupt[T any](result iter.Seq2[T, error], fn func(T, error) bool) bool {
	for v, err := range result {
		if fn(v, err) {
			return true
		}
	}

	return false
}

// Will collect only errors if there is any.
// Will exhaust result.
func Errors[T any](result iter.Seq2[T, error]) []error {
	errs := make([]error, 0, 1)
	for _, err := range result {
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// Will return on first encountered error or nil.
func FirstError[T any](result iter.Seq2[T, error]) error {
	for _, err := range result {
		if err != nil {
			return err
		}
	}

	return nil
}
