package push

import (
	"fmt"
	"os"
	"sync/atomic"
)

// UnhandledFunc receives producer errors that no subscriber can observe,
// such as an emitter failing after its only subscriber already terminated
// the connection.
type UnhandledFunc func(error)

var unhandledHook atomic.Value // UnhandledFunc

// SetUnhandled installs the process-wide handler for unobservable producer
// errors. It is meant to be called once at program start. Passing nil
// restores the default, which writes the error to stderr.
//
// Emitters accept WithUnhandled to override the handler per stream, which
// is the right tool for tests.
func SetUnhandled(fn UnhandledFunc) {
	unhandledHook.Store(fn)
}

func reportUnhandled(err error) {
	if fn, ok := unhandledHook.Load().(UnhandledFunc); ok && fn != nil {
		fn(err)
		return
	}
	fmt.Fprintf(os.Stderr, "push: unhandled stream error: %v\n", err)
}
