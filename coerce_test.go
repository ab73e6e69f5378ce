package push_test

import (
	"context"
	"iter"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/push"
	"github.com/fwojciec/push/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestOf_RoundTrip(t *testing.T) {
	t.Parallel()
	rec := &mock.Recorder[int]{}
	push.Of(1, 2, 3).Connect(rec)

	assert.Equal(t, []int{1, 2, 3}, rec.Values)
	assert.Equal(t, []string{"next", "next", "next", "return"}, rec.Calls)
	assert.Nil(t, rec.Ret)
}

func TestOf_EarlyStop(t *testing.T) {
	t.Parallel()
	rec := &mock.Recorder[int]{StopAfter: 1}
	push.Of(1, 2, 3).Connect(rec)

	// The producer honors the terminal Result: 2 and 3 are never emitted
	// and no separate terminal exchange follows.
	assert.Equal(t, []int{1}, rec.Values)
	assert.Equal(t, []string{"next"}, rec.Calls)
}

func TestFromSeq_SourceCleanupRuns(t *testing.T) {
	t.Parallel()
	cleaned := false
	seq := iter.Seq[int](func(yield func(int) bool) {
		defer func() { cleaned = true }()
		for i := 1; ; i++ {
			if !yield(i) {
				return
			}
		}
	})

	rec := &mock.Recorder[int]{StopAfter: 2}
	push.FromSeq(seq).Connect(rec)

	assert.Equal(t, []int{1, 2}, rec.Values)
	assert.True(t, cleaned, "terminal Result must end the source's own loop")
}

func TestFromSeq2_ErrorBecomesThrow(t *testing.T) {
	t.Parallel()
	seq := iter.Seq2[int, error](func(yield func(int, error) bool) {
		if !yield(1, nil) {
			return
		}
		yield(0, errBoom)
	})

	rec := &mock.Recorder[int]{}
	push.FromSeq2(seq).Connect(rec)

	assert.Equal(t, []int{1}, rec.Values)
	assert.Equal(t, []string{"next", "throw"}, rec.Calls)
	assert.ErrorIs(t, rec.Err, errBoom)
}

func TestFromChan_DrainsAndReturns(t *testing.T) {
	t.Parallel()
	ch := make(chan string, 3)
	ch <- "a"
	ch <- "b"
	close(ch)

	var got []string
	ret, err := push.EachAsync(context.Background(), push.FromChan(ch), func(v string) bool {
		got = append(got, v)
		return true
	})
	require.NoError(t, err)
	assert.Nil(t, ret)
	assert.Equal(t, []string{"a", "b"}, got)
}

// TestFromChan_SingleOutstandingEmission checks that the producer never
// overlaps exchanges: Next is not re-entered while a prior call on the same
// connection is still in flight.
func TestFromChan_SingleOutstandingEmission(t *testing.T) {
	t.Parallel()
	ch := make(chan int)
	go func() {
		for i := range 10 {
			ch <- i
		}
		close(ch)
	}()

	var inFlight, maxInFlight atomic.Int32
	done := make(chan struct{})
	sub := &mock.Subscriber[int]{
		NextFn: func(int) push.Result {
			n := inFlight.Add(1)
			if n > maxInFlight.Load() {
				maxInFlight.Store(n)
			}
			time.Sleep(time.Millisecond)
			inFlight.Add(-1)
			return push.Result{}
		},
		ReturnFn: func(any) push.Result {
			close(done)
			return push.Result{Done: true}
		},
	}
	push.FromChan(ch).ConnectAsync(sub)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not terminate")
	}
	assert.Equal(t, int32(1), maxInFlight.Load())
}

func TestFrom_Capabilities(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  any
	}{
		{name: "stream", src: push.Of(1, 2)},
		{name: "seq func", src: func(yield func(int) bool) { yield(1); yield(2) }},
		{name: "seq2 func", src: func(yield func(int, error) bool) { yield(1, nil); yield(2, nil) }},
		{name: "slice", src: []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := push.From[int](tt.src)
			require.NoError(t, err)

			rec := &mock.Recorder[int]{}
			s.Connect(rec)
			assert.Equal(t, []int{1, 2}, rec.Values)
		})
	}
}

func TestFrom_NotStreamable(t *testing.T) {
	t.Parallel()
	_, err := push.From[int](42)
	require.Error(t, err)
	assert.ErrorIs(t, err, push.ErrNotStreamable)
	assert.Contains(t, err.Error(), "int")
}

// TestCoercion_RoundTripProperty pushes arbitrary slices through the
// coercion layer and checks the exchange is always next*len + one return.
func TestCoercion_RoundTripProperty(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		vs := rapid.SliceOfN(rapid.Int(), 0, 50).Draw(t, "vs")

		rec := &mock.Recorder[int]{}
		push.Of(vs...).Connect(rec)

		assert.True(t, slices.Equal(vs, rec.Values))
		assert.Equal(t, len(vs)+1, len(rec.Calls))
		assert.Equal(t, "return", rec.Calls[len(rec.Calls)-1])
	})
}
