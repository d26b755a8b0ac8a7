package domain

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandQueue_RunsOneCommandAtATime(t *testing.T) {
	queue := NewCommandQueue()
	defer queue.Close()

	var (
		running atomic.Int32
		overlap atomic.Bool
		total   atomic.Int32
		wg      sync.WaitGroup
	)

	for range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			err := queue.Do(context.Background(), func(context.Context) error {
				if running.Add(1) > 1 {
					overlap.Store(true)
				}
				defer running.Add(-1)

				total.Add(1)

				return nil
			})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	assert.False(t, overlap.Load())
	assert.Equal(t, int32(20), total.Load())
}

func TestCommandQueue_ReturnsCommandError(t *testing.T) {
	queue := NewCommandQueue()
	defer queue.Close()

	boom := errors.New("boom")

	err := queue.Do(context.Background(), func(context.Context) error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestCommandQueue_CanceledContext(t *testing.T) {
	queue := NewCommandQueue()
	defer queue.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := queue.Do(ctx, func(context.Context) error {
		ran = true
		return nil
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}

func TestCommandQueue_RecoversPanics(t *testing.T) {
	queue := NewCommandQueue()
	defer queue.Close()

	err := queue.Do(context.Background(), func(context.Context) error { panic("bad command") })
	require.Error(t, err)

	require.NoError(t, queue.Do(context.Background(), func(context.Context) error { return nil }))
}

func TestCommandQueue_Closed(t *testing.T) {
	queue := NewCommandQueue()
	queue.Close()
	queue.Close()

	err := queue.Do(context.Background(), func(context.Context) error { return nil })
	require.ErrorIs(t, err, ErrQueueClosed)
}

func TestSubmit(t *testing.T) {
	queue := NewCommandQueue()
	defer queue.Close()

	value, err := Submit(context.Background(), queue, func(context.Context) (string, error) {
		return "done", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "done", value)
}
