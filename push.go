// Package push implements a push-based stream protocol: the structural dual
// of a pull-based iterator. A Stream actively delivers values to a Subscriber
// and honors the Result each delivery returns, so a consumer can acknowledge,
// apply backpressure, or terminate the connection from inside the exchange.
//
// Producers come in exactly two shapes. Stream is the synchronous one:
// Connect emits on the caller's goroutine and returns only once the
// connection has terminated. AsyncStream is the asynchronous one:
// ConnectAsync returns immediately and the producer drives the connection
// from its own goroutine, where subscriber methods are free to block.
//
// On either variant a connection terminates exactly once, through exactly one
// of three exchanges: a terminal Result returned from Next (consumer-initiated
// early stop), one Throw call (producer failure), or one Return call (graceful
// completion). After that the connection is inert: further subscriber calls
// are no-ops that report terminal.
package push

// Result is the reply to every Subscriber method call.
//
// Done reports that the connection is terminated: the producer must perform
// no further emission after observing it. Value carries the acknowledgement
// payload for Next replies. It is purely advisory feedback to the producer
// (remaining buffer capacity, for example) and may always be ignored.
type Result struct {
	Done  bool
	Value any
}

// Subscriber is the consumer side of a connection.
//
// Every method returns a Result. Once any exchange on a connection has been
// terminal, implementations must treat further calls as no-ops that return a
// terminal Result with no side effects. Safe wraps an implementation with
// that discipline.
type Subscriber[T any] interface {
	// Next delivers one emitted value. The Result's Value is the
	// acknowledgement payload handed back to the producer.
	Next(v T) Result

	// Throw delivers a fatal producer-side error, terminating the
	// connection. Idempotent after termination.
	Throw(err error) Result

	// Return signals graceful completion with an optional final value,
	// terminating the connection. Idempotent after termination.
	Return(v any) Result
}

// Stream is a synchronous push producer.
//
// Connect begins emitting by calling sub's methods on the caller's goroutine
// and returns once the connection has terminated. The producer must stop the
// instant any call returns a terminal Result, and must end the connection
// with exactly one Throw or Return when it stops for a reason of its own;
// it calls neither if the subscriber terminated first.
//
// Connect never panics with a producer error: failures are delivered through
// Throw.
type Stream[T any] interface {
	Connect(sub Subscriber[T])
}

// AsyncStream is an asynchronous push producer.
//
// ConnectAsync returns immediately; emission happens on a goroutine owned by
// the producer, under the same termination contract as Stream.Connect.
// Subscriber methods may block, and the producer must observe each call's
// Result before the next emission: there is never more than one exchange in
// flight on a connection.
type AsyncStream[T any] interface {
	ConnectAsync(sub Subscriber[T])
}

// Async adapts a synchronous stream to the asynchronous capability by
// driving the connection on its own goroutine.
func Async[T any](s Stream[T]) AsyncStream[T] {
	return asyncAdapter[T]{s: s}
}

type asyncAdapter[T any] struct {
	s Stream[T]
}

func (a asyncAdapter[T]) ConnectAsync(sub Subscriber[T]) {
	go a.s.Connect(sub)
}
