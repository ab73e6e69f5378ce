package push

import "errors"

// ErrNotStreamable indicates a value passed to From exposes neither a
// push nor a pull capability.
var ErrNotStreamable = errors.New("not streamable")
