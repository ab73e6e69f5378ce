// Package mock provides test doubles for push interfaces using function fields.
package mock

import "github.com/fwojciec/push"

// Interface compliance checks.
var (
	_ push.Subscriber[int]  = (*Subscriber[int])(nil)
	_ push.Stream[int]      = (*Stream[int])(nil)
	_ push.AsyncStream[int] = (*AsyncStream[int])(nil)
)

// Subscriber is a test double for push.Subscriber.
// Set the function fields for the methods you need. NextFn panics when nil
// to catch missing setup. ThrowFn and ReturnFn are nil-safe (terminal
// no-op) because most tests only exercise the value path.
type Subscriber[T any] struct {
	NextFn   func(v T) push.Result
	ThrowFn  func(err error) push.Result
	ReturnFn func(v any) push.Result
}

// Next delegates to NextFn.
func (s *Subscriber[T]) Next(v T) push.Result {
	return s.NextFn(v)
}

// Throw delegates to ThrowFn. Returns a terminal Result when ThrowFn is nil.
func (s *Subscriber[T]) Throw(err error) push.Result {
	if s.ThrowFn == nil {
		return push.Result{Done: true}
	}
	return s.ThrowFn(err)
}

// Return delegates to ReturnFn. Returns a terminal Result when ReturnFn is nil.
func (s *Subscriber[T]) Return(v any) push.Result {
	if s.ReturnFn == nil {
		return push.Result{Done: true}
	}
	return s.ReturnFn(v)
}

// Stream is a test double for push.Stream.
// Set ConnectFn before calling Connect.
type Stream[T any] struct {
	ConnectFn func(sub push.Subscriber[T])
}

// Connect delegates to ConnectFn.
func (s *Stream[T]) Connect(sub push.Subscriber[T]) {
	s.ConnectFn(sub)
}

// AsyncStream is a test double for push.AsyncStream.
// Set ConnectAsyncFn before calling ConnectAsync.
type AsyncStream[T any] struct {
	ConnectAsyncFn func(sub push.Subscriber[T])
}

// ConnectAsync delegates to ConnectAsyncFn.
func (s *AsyncStream[T]) ConnectAsync(sub push.Subscriber[T]) {
	s.ConnectAsyncFn(sub)
}
