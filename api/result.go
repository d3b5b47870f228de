package api

// Result holds the outcome of one branch of a fan-out so each branch can fail
// on its own.
type Result[T any] struct {
	Value T
	Err   error
}

func Capture[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Err: err}
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}
