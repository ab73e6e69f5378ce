// Package fs exposes filesystem walks as push streams.
package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/push"
)

// Glob returns a stream of file paths under fsys matching a doublestar
// pattern (** is supported for recursive matching). Directories are not
// emitted. An invalid pattern or a walk failure is delivered through Throw;
// a terminal Result stops the walk immediately.
func Glob(fsys iofs.FS, pattern string) push.Stream[string] {
	return globStream{fsys: fsys, pattern: pattern}
}

type globStream struct {
	fsys    iofs.FS
	pattern string
}

// Interface compliance check.
var _ push.Stream[string] = globStream{}

// errStopWalk aborts GlobWalk once the subscriber has terminated.
var errStopWalk = errors.New("stop walk")

func (s globStream) Connect(sub push.Subscriber[string]) {
	safe := push.Safe(sub)

	if !doublestar.ValidatePattern(s.pattern) {
		safe.Throw(fmt.Errorf("fs: invalid glob pattern %q", s.pattern))
		return
	}

	err := doublestar.GlobWalk(s.fsys, s.pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		if safe.Next(path).Done {
			return errStopWalk
		}
		return nil
	})
	if errors.Is(err, errStopWalk) {
		return
	}
	if err != nil {
		safe.Throw(fmt.Errorf("fs: %w", err))
		return
	}
	safe.Return(nil)
}
