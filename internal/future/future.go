// Package future implements single-assignment results whose callbacks run as
// tasks on a loop.Loop.
//
// Resolvers may be called from any goroutine: settlement is posted to the
// loop. Registration methods (Then, Catch, OnSettle) and the accessors must be
// used from the loop goroutine.
package future

import (
	"errors"

	"github.com/atomicstack/popstack/internal/loop"
)

// Void is the value type for futures that only signal completion.
type Void = struct{}

type status int

const (
	statusPending status = iota
	statusResolved
	statusRejected
)

// Future is the eventual result of an asynchronous step.
type Future[T any] struct {
	loop      *loop.Loop
	status    status
	value     T
	err       error
	callbacks []func(T, error)
}

// New returns a pending future with its resolve and reject functions. Only
// the first settlement wins.
func New[T any](l *loop.Loop) (*Future[T], func(T), func(error)) {
	f := &Future[T]{loop: l}
	resolve := func(v T) {
		l.Post(func() { f.settle(v, nil) })
	}
	reject := func(err error) {
		if err == nil {
			err = errors.New("future: rejected with nil error")
		}
		l.Post(func() {
			var zero T
			f.settle(zero, err)
		})
	}
	return f, resolve, reject
}

// Resolved returns an already-resolved future.
func Resolved[T any](l *loop.Loop, v T) *Future[T] {
	return &Future[T]{loop: l, status: statusResolved, value: v}
}

// Rejected returns an already-rejected future.
func Rejected[T any](l *loop.Loop, err error) *Future[T] {
	return &Future[T]{loop: l, status: statusRejected, err: err}
}

// Done returns a resolved Void future.
func Done(l *loop.Loop) *Future[Void] {
	return Resolved(l, Void{})
}

func (f *Future[T]) settle(v T, err error) {
	if f.status != statusPending {
		return
	}
	if err != nil {
		f.status = statusRejected
		f.err = err
	} else {
		f.status = statusResolved
		f.value = v
	}
	callbacks := f.callbacks
	f.callbacks = nil
	for _, cb := range callbacks {
		cb(f.value, f.err)
	}
}

// OnSettle registers cb for either outcome. Callbacks registered on a settled
// future are posted to the loop rather than called inline.
func (f *Future[T]) OnSettle(cb func(T, error)) *Future[T] {
	if cb == nil {
		return f
	}
	if f.status == statusPending {
		f.callbacks = append(f.callbacks, cb)
		return f
	}
	v, err := f.value, f.err
	f.loop.Post(func() { cb(v, err) })
	return f
}

// Then registers cb for the resolved outcome.
func (f *Future[T]) Then(cb func(T)) *Future[T] {
	return f.OnSettle(func(v T, err error) {
		if err == nil {
			cb(v)
		}
	})
}

// Catch registers cb for the rejected outcome.
func (f *Future[T]) Catch(cb func(error)) *Future[T] {
	return f.OnSettle(func(_ T, err error) {
		if err != nil {
			cb(err)
		}
	})
}

// Settled reports whether the future has an outcome.
func (f *Future[T]) Settled() bool {
	return f.status != statusPending
}

// Result returns the outcome. It is only meaningful once Settled is true.
func (f *Future[T]) Result() (T, error) {
	return f.value, f.err
}

// Err returns the rejection error, if any.
func (f *Future[T]) Err() error {
	return f.err
}

// All resolves once every input resolved, or rejects with the first
// rejection.
func All[T any](l *loop.Loop, fs ...*Future[T]) *Future[[]T] {
	if len(fs) == 0 {
		return Resolved[[]T](l, nil)
	}
	out, resolve, reject := New[[]T](l)
	values := make([]T, len(fs))
	remaining := len(fs)
	failed := false
	for i, f := range fs {
		f.OnSettle(func(v T, err error) {
			if failed {
				return
			}
			if err != nil {
				failed = true
				reject(err)
				return
			}
			values[i] = v
			remaining--
			if remaining == 0 {
				resolve(values)
			}
		})
	}
	return out
}
