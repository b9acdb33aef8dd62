package internal

import "reflect"

func ZeroValue[T any]() T {
	var zero T
	return zero
}

func TypeName[T any]() string {
	t := reflect.TypeOf((*T)(nil))
	return t.Elem().Name()
}
