package push

import "fmt"

// EmitterOption configures a single emitter stream.
type EmitterOption func(*emitterConfig)

type emitterConfig struct {
	unhandled UnhandledFunc
}

// WithUnhandled overrides the process-wide unhandled-error handler for this
// emitter. Tests use it to capture errors that outlive the connection.
func WithUnhandled(fn UnhandledFunc) EmitterOption {
	return func(c *emitterConfig) {
		c.unhandled = fn
	}
}

// Emitter returns a synchronous Stream authored by body.
//
// The body emits through e and finishes by returning a final value or an
// error. Connect drives the body to completion on the caller's goroutine and
// performs the terminal exchange itself: a nil error becomes exactly one
// Return with the final value, a non-nil error exactly one Throw. A body
// panic is caught and delivered through Throw as well; it never escapes
// Connect.
//
// If the subscriber terminates the connection, the pending Yield or From
// call unwinds the body immediately. Deferred cleanup in the body still
// runs, so resources scoped to the connection are released on every path.
func Emitter[T any](body func(e *Emit[T]) (any, error), opts ...EmitterOption) Stream[T] {
	return emitterStream[T]{body: body, cfg: emitterOptions(opts)}
}

// AsyncEmitter returns an AsyncStream authored by body. Same contract as
// Emitter, but ConnectAsync returns immediately and the body runs on its
// own goroutine, where subscriber calls may block.
func AsyncEmitter[T any](body func(e *Emit[T]) (any, error), opts ...EmitterOption) AsyncStream[T] {
	return asyncEmitterStream[T]{body: body, cfg: emitterOptions(opts)}
}

func emitterOptions(opts []EmitterOption) emitterConfig {
	var cfg emitterConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

type emitterStream[T any] struct {
	body func(e *Emit[T]) (any, error)
	cfg  emitterConfig
}

func (s emitterStream[T]) Connect(sub Subscriber[T]) {
	drive(s.body, sub, s.cfg)
}

type asyncEmitterStream[T any] struct {
	body func(e *Emit[T]) (any, error)
	cfg  emitterConfig
}

func (s asyncEmitterStream[T]) ConnectAsync(sub Subscriber[T]) {
	go drive(s.body, sub, s.cfg)
}

// Interface compliance checks.
var (
	_ Stream[int]      = emitterStream[int]{}
	_ AsyncStream[int] = asyncEmitterStream[int]{}
)

// stopEmitting unwinds an emitter body once its subscriber has terminated
// the connection. Bodies that recover must re-panic it.
type stopEmitting struct{}

// Emit is the emission capability handed to an emitter body. It is only
// valid for the duration of that body's connection.
type Emit[T any] struct {
	sub     Subscriber[T]
	stopped bool
	report  UnhandledFunc
}

// Yield emits one value and suspends the body until the subscriber replies.
// It returns the acknowledgement payload from the subscriber's Result.
//
// If the reply is terminal, Yield does not return: the body unwinds without
// executing further code, running only its deferred cleanup.
func (e *Emit[T]) Yield(v T) any {
	if e.stopped {
		panic(stopEmitting{})
	}
	r := e.sub.Next(v)
	if r.Done {
		e.stopped = true
		panic(stopEmitting{})
	}
	return r.Value
}

// From delegates emission to src until it terminates, forwarding its values
// to this connection's subscriber. It resumes with src's return value, or
// with src's error so the body can handle failure at the delegation site.
//
// If the outer subscriber terminates the connection during delegation, the
// nested stream is stopped with a terminal Result and From unwinds the body
// like a terminal Yield.
func (e *Emit[T]) From(src Stream[T]) (any, error) {
	if e.stopped {
		panic(stopEmitting{})
	}
	d := &delegation[T]{outer: e}
	src.Connect(d)
	return e.resume(d)
}

// FromAsync delegates to an asynchronous stream, blocking the body until
// the nested connection terminates. Same contract as From.
func (e *Emit[T]) FromAsync(src AsyncStream[T]) (any, error) {
	if e.stopped {
		panic(stopEmitting{})
	}
	d := &delegation[T]{outer: e}
	done := make(chan struct{})
	src.ConnectAsync(&notifySubscriber[T]{inner: d, done: done})
	<-done
	return e.resume(d)
}

func (e *Emit[T]) resume(d *delegation[T]) (any, error) {
	if e.stopped {
		// Outer termination wins the race: a nested failure that
		// arrives after it has no observer left.
		if d.err != nil {
			e.unhandled(d.err)
		}
		panic(stopEmitting{})
	}
	return d.ret, d.err
}

func (e *Emit[T]) unhandled(err error) {
	if e.report != nil {
		e.report(err)
		return
	}
	reportUnhandled(err)
}

// delegation proxies the outer connection to a nested stream, intercepting
// the nested terminal exchange so it resumes the delegating body instead of
// terminating the outer connection.
type delegation[T any] struct {
	outer *Emit[T]
	done  bool
	ret   any
	err   error
}

// Interface compliance check.
var _ Subscriber[int] = (*delegation[int])(nil)

func (d *delegation[T]) Next(v T) Result {
	if d.done || d.outer.stopped {
		return Result{Done: true}
	}
	r := d.outer.sub.Next(v)
	if r.Done {
		d.outer.stopped = true
	}
	return r
}

func (d *delegation[T]) Throw(err error) Result {
	if !d.done {
		d.done = true
		d.err = err
	}
	return Result{Done: true}
}

func (d *delegation[T]) Return(v any) Result {
	if !d.done {
		d.done = true
		d.ret = v
	}
	return Result{Done: true}
}

func drive[T any](body func(e *Emit[T]) (any, error), sub Subscriber[T], cfg emitterConfig) {
	e := &Emit[T]{sub: Safe(sub), report: cfg.unhandled}
	ret, err := runBody(body, e)
	switch {
	case err != nil && e.stopped:
		// The connection is already terminated; nothing can observe
		// the failure through the protocol.
		e.unhandled(err)
	case err != nil:
		e.sub.Throw(err)
	case !e.stopped:
		e.sub.Return(ret)
	}
}

func runBody[T any](body func(e *Emit[T]) (any, error), e *Emit[T]) (ret any, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(stopEmitting); ok {
			e.stopped = true
			ret, err = nil, nil
			return
		}
		ret, err = nil, fmt.Errorf("push: emitter panicked: %v", r)
	}()
	return body(e)
}
