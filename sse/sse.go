// Package sse exposes a server-sent-events feed as a push stream.
package sse

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/push"
)

// Event is a single server-sent event.
type Event struct {
	Type string
	Data string
}

// Events returns a synchronous stream of events parsed from r. Connect
// reads until r is exhausted (Return), a read error occurs (Throw), or the
// subscriber terminates.
func Events(r io.Reader) push.Stream[Event] {
	return eventStream{r: r}
}

// Stream returns an asynchronous stream of events parsed from rc. The
// reader is closed exactly once, on whichever path first terminates the
// connection.
func Stream(rc io.ReadCloser) push.AsyncStream[Event] {
	return asyncEventStream{rc: rc}
}

type eventStream struct {
	r io.Reader
}

// Interface compliance check.
var _ push.Stream[Event] = eventStream{}

func (s eventStream) Connect(sub push.Subscriber[Event]) {
	parse(s.r, push.Safe(sub))
}

type asyncEventStream struct {
	rc io.ReadCloser
}

// Interface compliance check.
var _ push.AsyncStream[Event] = asyncEventStream{}

func (s asyncEventStream) ConnectAsync(sub push.Subscriber[Event]) {
	safe := push.Safe(sub)
	go func() {
		defer s.rc.Close()
		parse(s.rc, safe)
	}()
}

// parse reads SSE frames from r and feeds them to sub, honoring the
// termination contract.
func parse(r io.Reader, sub push.Subscriber[Event]) {
	scanner := bufio.NewScanner(r)
	var eventType string
	var dataBuf strings.Builder

	flush := func() (Event, bool) {
		if dataBuf.Len() == 0 {
			return Event{}, false
		}
		ev := Event{Type: eventType, Data: dataBuf.String()}
		eventType = ""
		dataBuf.Reset()
		return ev, true
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			// Empty line signals end of event.
			ev, ok := flush()
			if !ok {
				continue
			}
			if sub.Next(ev).Done {
				return
			}
			continue
		}

		if strings.HasPrefix(line, "event: ") {
			eventType = strings.TrimPrefix(line, "event: ")
		} else if strings.HasPrefix(line, "data: ") {
			if dataBuf.Len() > 0 {
				dataBuf.WriteByte('\n')
			}
			dataBuf.WriteString(strings.TrimPrefix(line, "data: "))
		}
		// Ignore comments (lines starting with ':') and unknown fields.
	}

	if err := scanner.Err(); err != nil {
		sub.Throw(fmt.Errorf("sse: %w", err))
		return
	}

	// Scanner exhausted without error = EOF; deliver a trailing frame
	// that was not terminated by a blank line.
	if ev, ok := flush(); ok {
		if sub.Next(ev).Done {
			return
		}
	}
	sub.Return(nil)
}
