// result.go: value-or-error returns.
//
// States:
//   - Result[T]: Success(value) | Failure(non-Nil Error).
//   - Void:      Success | Failure(non-Nil Error); it is a bare handle where
//                Nil means success.
//
// Contract:
//   - Building a failure from Nil panics.
//   - Result.Value on a failure and Result.Err on a success panic.
//   - Get is the Go-idiomatic accessor that never panics.
package xgxchain

// Result holds either a T or a non-Nil Error.
type Result[T any] struct {
	val T
	err Error
}

// Ok returns a successful Result holding v.
func Ok[T any](v T) Result[T] {
	return Result[T]{val: v}
}

// Fail returns a failed Result holding err's share. It panics if err is Nil.
func Fail[T any](err Error) Result[T] {
	if err.IsNil() {
		panic("xgxchain: Fail called with a Nil error")
	}
	return Result[T]{err: err}
}

// OK reports whether r holds a value.
func (r Result[T]) OK() bool { return r.err.IsNil() }

// Value returns the held value. It panics if r is a failure.
func (r Result[T]) Value() T {
	if !r.err.IsNil() {
		panic("xgxchain: Value called on a failed Result: " + r.err.Message())
	}
	return r.val
}

// Err returns a new share of the held error. It panics if r is a success.
func (r Result[T]) Err() Error {
	if r.err.IsNil() {
		panic("xgxchain: Err called on a successful Result")
	}
	return r.err.Copy()
}

// Get returns the value and a plain error that is nil on success.
func (r Result[T]) Get() (T, error) {
	return r.val, r.err.Err()
}

// Release returns the share held by a failed Result. It is a no-op on
// success.
func (r *Result[T]) Release() { r.err.Release() }

// Void is a Result without a value.
type Void struct {
	err Error
}

// Success returns a successful Void.
func Success() Void { return Void{} }

// Failure returns a failed Void holding err's share. It panics if err is
// Nil.
func Failure(err Error) Void {
	if err.IsNil() {
		panic("xgxchain: Failure called with a Nil error")
	}
	return Void{err: err}
}

// OK reports whether v is a success.
func (v Void) OK() bool { return v.err.IsNil() }

// Err returns a new share of the held error, Nil on success.
func (v Void) Err() Error { return v.err.Copy() }

// Release returns the share held by a failed Void.
func (v *Void) Release() { v.err.Release() }
