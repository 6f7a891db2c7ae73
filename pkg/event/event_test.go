package event_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hpfoods/hpfoods-api/pkg/event"
)

func TestFireRunsListenersInOrder(t *testing.T) {
	t.Cleanup(event.Flush)

	var got []string
	event.Listen(event.OrderCreated, func(_ context.Context, p any) error {
		got = append(got, "first:"+p.(string))
		return nil
	})
	event.Listen(event.OrderCreated, func(_ context.Context, p any) error {
		got = append(got, "second:"+p.(string))
		return nil
	})

	assert.NoError(t, event.Fire(context.Background(), event.OrderCreated, "7"))
	assert.Equal(t, []string{"first:7", "second:7"}, got)
}

func TestFireStopsAtFirstError(t *testing.T) {
	t.Cleanup(event.Flush)

	boom := errors.New("boom")
	called := false
	event.Listen("x", func(context.Context, any) error { return boom })
	event.Listen("x", func(context.Context, any) error { called = true; return nil })

	assert.ErrorIs(t, event.Fire(context.Background(), "x", nil), boom)
	assert.False(t, called)
}

func TestFireAsyncSurvivesPanicsAndCancellation(t *testing.T) {
	t.Cleanup(event.Flush)

	var ran atomic.Int32
	event.Listen("x", func(context.Context, any) error { panic("listener bug") })
	event.Listen("x", func(ctx context.Context, _ any) error {
		if ctx.Err() == nil {
			ran.Add(1)
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	event.FireAsync(ctx, "x", nil)
	event.Wait()

	assert.Equal(t, int32(1), ran.Load())
}

func TestFireWithoutListeners(t *testing.T) {
	t.Cleanup(event.Flush)
	assert.NoError(t, event.Fire(context.Background(), "nobody", nil))
	event.FireAsync(context.Background(), "nobody", nil)
	event.Wait()
}
