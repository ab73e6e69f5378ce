package push

import (
	"context"
	"sync"
)

// Each consumes a synchronous stream with a sequential loop body, one value
// per call. Returning false from the body stops consuming: the in-flight
// exchange replies with a terminal Result and the producer emits nothing
// further.
//
// Each returns the stream's final value (the payload of a producer Return)
// and its error (the payload of a producer Throw). Errors arising inside the
// body are the caller's own: signal early exit with false and carry the
// error in a captured variable; nothing is forwarded to the producer. A body
// panic terminates the connection and re-raises at the Each call site.
func Each[T any](src Stream[T], body func(v T) bool) (any, error) {
	loop := &loopSubscriber[T]{body: body}
	src.Connect(loop)
	if loop.panicked {
		panic(loop.panicValue)
	}
	return loop.ret, loop.err
}

// EachAsync consumes an asynchronous stream, blocking the caller until the
// connection terminates. The body may block before acknowledging; the
// producer resumes emission only after it returns.
//
// Cancelling ctx abandons the loop: EachAsync returns ctx.Err() and every
// later producer call on the connection receives a terminal Result.
func EachAsync[T any](ctx context.Context, src AsyncStream[T], body func(v T) bool) (any, error) {
	loop := &loopSubscriber[T]{body: body}
	done := make(chan struct{})
	src.ConnectAsync(WithContext[T](ctx, &notifySubscriber[T]{inner: loop, done: done}))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
	}
	if loop.panicked {
		panic(loop.panicValue)
	}
	return loop.ret, loop.err
}

// loopSubscriber is the generic subscriber behind Each: Next runs the loop
// body once and maps its verdict onto the Result.
type loopSubscriber[T any] struct {
	body       func(v T) bool
	done       bool
	ret        any
	err        error
	panicked   bool
	panicValue any
}

// Interface compliance check.
var _ Subscriber[int] = (*loopSubscriber[int])(nil)

func (s *loopSubscriber[T]) Next(v T) (r Result) {
	if s.done {
		return Result{Done: true}
	}
	defer func() {
		if p := recover(); p != nil {
			// Terminate the connection first, then re-raise at the
			// loop site. The producer sees an ordinary early stop,
			// never the body's failure.
			s.done = true
			s.panicked = true
			s.panicValue = p
			r = Result{Done: true}
		}
	}()
	if !s.body(v) {
		s.done = true
		return Result{Done: true}
	}
	return Result{}
}

func (s *loopSubscriber[T]) Throw(err error) Result {
	if !s.done {
		s.done = true
		s.err = err
	}
	return Result{Done: true}
}

func (s *loopSubscriber[T]) Return(v any) Result {
	if !s.done {
		s.done = true
		s.ret = v
	}
	return Result{Done: true}
}

// notifySubscriber closes done after the first terminal exchange so a
// blocked EachAsync caller can resume.
type notifySubscriber[T any] struct {
	inner Subscriber[T]
	done  chan struct{}
	once  sync.Once
}

func (s *notifySubscriber[T]) Next(v T) Result {
	r := s.inner.Next(v)
	if r.Done {
		s.close()
	}
	return r
}

func (s *notifySubscriber[T]) Throw(err error) Result {
	r := s.inner.Throw(err)
	s.close()
	return r
}

func (s *notifySubscriber[T]) Return(v any) Result {
	r := s.inner.Return(v)
	s.close()
	return r
}

func (s *notifySubscriber[T]) close() {
	s.once.Do(func() { close(s.done) })
}
