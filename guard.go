package push

import "sync/atomic"

// Safe wraps sub with the termination discipline every connection relies on:
// after the first terminal exchange, every further call is a no-op returning
// a terminal Result and sub is never called again.
//
// Producers use it so a subscriber that misbehaves after termination cannot
// provoke double delivery; subscribers use it to avoid carrying their own
// "already done" flag.
func Safe[T any](sub Subscriber[T]) Subscriber[T] {
	return &safeSubscriber[T]{sub: sub}
}

type safeSubscriber[T any] struct {
	sub  Subscriber[T]
	done atomic.Bool
}

// Interface compliance check.
var _ Subscriber[int] = (*safeSubscriber[int])(nil)

func (s *safeSubscriber[T]) Next(v T) Result {
	if s.done.Load() {
		return Result{Done: true}
	}
	r := s.sub.Next(v)
	if r.Done {
		s.done.Store(true)
	}
	return r
}

func (s *safeSubscriber[T]) Throw(err error) Result {
	if s.done.Swap(true) {
		return Result{Done: true}
	}
	r := s.sub.Throw(err)
	r.Done = true
	return r
}

func (s *safeSubscriber[T]) Return(v any) Result {
	if s.done.Swap(true) {
		return Result{Done: true}
	}
	r := s.sub.Return(v)
	r.Done = true
	return r
}
