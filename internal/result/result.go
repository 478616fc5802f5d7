// Package result provides the two-variant outcome container used by the
// service and repository layers. Expected failures travel inside a Result
// instead of a bare error so that call sites compose them uniformly: the
// first failing step short-circuits everything after it.
package result

// Result holds either a value or an error, never both.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Err wraps a failure. The error must be non-nil.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsOk reports whether the result carries a value.
func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// IsErr reports whether the result carries an error.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Value returns the carried value. For error results it returns the zero
// value; callers are expected to check IsErr first.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the carried error, or nil for successful results.
func (r Result[T]) Err() error {
	return r.err
}

// Unpack converts the result back to the conventional (value, error) pair
// for call sites at the module boundary.
func (r Result[T]) Unpack() (T, error) {
	return r.value, r.err
}
