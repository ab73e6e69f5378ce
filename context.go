package push

import (
	"context"
	"sync/atomic"
)

// WithContext decorates sub with an external cancellation collaborator: once
// ctx is done, the next producer call delivers ctx's error to sub and every
// call after that returns a terminal Result.
//
// The protocol itself has no caller-side abort on a live connection; this is
// the sanctioned way to layer timeouts and cancellation on top, by having
// the subscriber synthesize the terminal Result.
func WithContext[T any](ctx context.Context, sub Subscriber[T]) Subscriber[T] {
	return &ctxSubscriber[T]{ctx: ctx, sub: Safe(sub)}
}

type ctxSubscriber[T any] struct {
	ctx       context.Context
	sub       Subscriber[T]
	cancelled atomic.Bool
}

// Interface compliance check.
var _ Subscriber[int] = (*ctxSubscriber[int])(nil)

func (s *ctxSubscriber[T]) Next(v T) Result {
	if err := s.ctx.Err(); err != nil {
		return s.cancel(err)
	}
	return s.sub.Next(v)
}

func (s *ctxSubscriber[T]) Throw(err error) Result {
	if cerr := s.ctx.Err(); cerr != nil {
		return s.cancel(cerr)
	}
	return s.sub.Throw(err)
}

func (s *ctxSubscriber[T]) Return(v any) Result {
	if cerr := s.ctx.Err(); cerr != nil {
		return s.cancel(cerr)
	}
	return s.sub.Return(v)
}

// cancel delivers the context error to the inner subscriber exactly once
// and reports terminal from then on.
func (s *ctxSubscriber[T]) cancel(err error) Result {
	if !s.cancelled.Swap(true) {
		s.sub.Throw(err)
	}
	return Result{Done: true}
}
