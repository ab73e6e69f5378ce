// Package bubbletea bridges push streams into a Bubble Tea program: Forward
// turns a connection's exchanges into messages, and Viewer is a ready-made
// model that displays a stream of lines as they arrive.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/push"
)

// ValueMsg carries one streamed value into the program.
type ValueMsg[T any] struct {
	Value T
}

// ErrMsg reports that the connection terminated with a producer failure.
type ErrMsg struct {
	Err error
}

// DoneMsg reports graceful completion, carrying the stream's final value.
type DoneMsg struct {
	Value any
}

// Forward connects src and forwards every exchange to send as a message.
// It returns immediately; cancel ctx to stop consuming before the stream
// terminates on its own. send is typically (*tea.Program).Send.
func Forward[T any](ctx context.Context, src push.AsyncStream[T], send func(tea.Msg)) {
	src.ConnectAsync(push.WithContext[T](ctx, &forwarder[T]{send: send}))
}

type forwarder[T any] struct {
	send func(tea.Msg)
}

// Interface compliance check.
var _ push.Subscriber[int] = (*forwarder[int])(nil)

func (f *forwarder[T]) Next(v T) push.Result {
	f.send(ValueMsg[T]{Value: v})
	return push.Result{}
}

func (f *forwarder[T]) Throw(err error) push.Result {
	f.send(ErrMsg{Err: err})
	return push.Result{Done: true}
}

func (f *forwarder[T]) Return(v any) push.Result {
	f.send(DoneMsg{Value: v})
	return push.Result{Done: true}
}
