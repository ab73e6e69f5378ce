package push

import (
	"fmt"
	"iter"
	"slices"
)

// This file is the pull→push coercion layer: it adapts sources that hand
// out values on demand into streams that push them. The reverse direction
// is deliberately not provided. Safely stopping a push producer from the
// pull side needs an external cancellation mechanism, so a pull view over
// an AsyncStream cannot honor the termination contract on its own; consume
// push sources with Each or EachAsync instead.

// FromSeq adapts a pull sequence into a synchronous Stream. Each pulled
// value is forwarded through Next; exhaustion becomes one Return. A
// terminal Result stops pulling, which ends the source's own loop so its
// cleanup runs.
func FromSeq[T any](seq iter.Seq[T]) Stream[T] {
	return seqStream[T]{seq: seq}
}

// FromSeq2 adapts an error-aware pull sequence into a synchronous Stream.
// A non-nil error from the source stops pulling and is forwarded through
// one Throw.
func FromSeq2[T any](seq iter.Seq2[T, error]) Stream[T] {
	return seq2Stream[T]{seq: seq}
}

// Of returns a Stream that emits the given values, then returns.
func Of[T any](vs ...T) Stream[T] {
	return FromSeq(slices.Values(vs))
}

// FromChan adapts a channel into an AsyncStream. Receiving is the blocking
// pull; a closed channel is exhaustion.
func FromChan[T any](ch <-chan T) AsyncStream[T] {
	return chanStream[T]{ch: ch}
}

// From coerces an arbitrary value into a Stream. It accepts a Stream[T]
// (returned as-is), an iter.Seq[T] or iter.Seq2[T, error] in either named
// or unnamed form, or a []T. Anything else carries no streamable
// capability and fails with ErrNotStreamable.
func From[T any](src any) (Stream[T], error) {
	switch s := src.(type) {
	case Stream[T]:
		return s, nil
	case iter.Seq[T]:
		return FromSeq(s), nil
	case func(func(T) bool):
		return FromSeq(iter.Seq[T](s)), nil
	case iter.Seq2[T, error]:
		return FromSeq2(s), nil
	case func(func(T, error) bool):
		return FromSeq2(iter.Seq2[T, error](s)), nil
	case []T:
		return Of(s...), nil
	}
	return nil, fmt.Errorf("push: cannot stream %T: %w", src, ErrNotStreamable)
}

type seqStream[T any] struct {
	seq iter.Seq[T]
}

// Interface compliance check.
var _ Stream[int] = seqStream[int]{}

func (s seqStream[T]) Connect(sub Subscriber[T]) {
	sub = Safe(sub)
	for v := range s.seq {
		if sub.Next(v).Done {
			return
		}
	}
	sub.Return(nil)
}

type seq2Stream[T any] struct {
	seq iter.Seq2[T, error]
}

// Interface compliance check.
var _ Stream[int] = seq2Stream[int]{}

func (s seq2Stream[T]) Connect(sub Subscriber[T]) {
	sub = Safe(sub)
	for v, err := range s.seq {
		if err != nil {
			sub.Throw(err)
			return
		}
		if sub.Next(v).Done {
			return
		}
	}
	sub.Return(nil)
}

type chanStream[T any] struct {
	ch <-chan T
}

// Interface compliance check.
var _ AsyncStream[int] = chanStream[int]{}

func (s chanStream[T]) ConnectAsync(sub Subscriber[T]) {
	safe := Safe(sub)
	go func() {
		for v := range s.ch {
			if safe.Next(v).Done {
				return
			}
		}
		safe.Return(nil)
	}()
}
