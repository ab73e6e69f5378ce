package push_test

import (
	"context"
	"testing"

	"github.com/fwojciec/push"
	"github.com/fwojciec/push/mock"
	"github.com/stretchr/testify/assert"
)

func TestWithContext_PassesThroughWhileLive(t *testing.T) {
	t.Parallel()
	rec := &mock.Recorder[int]{}
	sub := push.WithContext[int](context.Background(), rec)

	assert.False(t, sub.Next(1).Done)
	assert.True(t, sub.Return("done").Done)
	assert.Equal(t, []string{"next", "return"}, rec.Calls)
}

func TestWithContext_SynthesizesTerminalAfterCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	rec := &mock.Recorder[int]{}
	sub := push.WithContext[int](ctx, rec)

	assert.False(t, sub.Next(1).Done)
	cancel()

	// Every exchange after cancellation reports terminal to the producer;
	// the consumer is informed exactly once, with the context's error.
	assert.True(t, sub.Next(2).Done)
	assert.True(t, sub.Next(3).Done)
	assert.Equal(t, []int{1}, rec.Values)
	assert.Equal(t, []string{"next", "throw"}, rec.Calls)
	assert.ErrorIs(t, rec.Err, context.Canceled)
}

func TestWithContext_CancelBeatsProducerTermination(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &mock.Recorder[int]{}
	sub := push.WithContext[int](ctx, rec)

	assert.True(t, sub.Return("late").Done)
	assert.Equal(t, []string{"throw"}, rec.Calls)
	assert.ErrorIs(t, rec.Err, context.Canceled)
}
