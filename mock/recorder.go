package mock

import "github.com/fwojciec/push"

// Interface compliance check.
var _ push.Subscriber[int] = (*Recorder[int])(nil)

// Recorder is a subscriber that records every call it receives, including
// calls arriving after termination, so tests can assert the exact protocol
// exchange on a connection.
//
// Zero value records until the producer terminates. Set StopAfter to return
// a terminal Result once that many values have arrived; set Ack to control
// the acknowledgement payload handed back from Next.
type Recorder[T any] struct {
	StopAfter int
	Ack       any

	Calls  []string // "next", "throw", "return" in arrival order
	Values []T
	Err    error // payload of the terminating Throw, if any
	Ret    any   // payload of the terminating Return, if any
	Done   bool
}

// Next records the value. After termination it is a no-op that still
// records the (contract-violating) call.
func (r *Recorder[T]) Next(v T) push.Result {
	r.Calls = append(r.Calls, "next")
	if r.Done {
		return push.Result{Done: true}
	}
	r.Values = append(r.Values, v)
	if r.StopAfter > 0 && len(r.Values) >= r.StopAfter {
		r.Done = true
		return push.Result{Done: true}
	}
	return push.Result{Value: r.Ack}
}

// Throw records the error.
func (r *Recorder[T]) Throw(err error) push.Result {
	r.Calls = append(r.Calls, "throw")
	if !r.Done {
		r.Done = true
		r.Err = err
	}
	return push.Result{Done: true}
}

// Return records the final value.
func (r *Recorder[T]) Return(v any) push.Result {
	r.Calls = append(r.Calls, "return")
	if !r.Done {
		r.Done = true
		r.Ret = v
	}
	return push.Result{Done: true}
}
