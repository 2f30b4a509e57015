package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionQueueFIFO(t *testing.T) {
	q := NewDecisionQueue()

	_, ok := q.TryPop()
	assert.False(t, ok)

	require.NoError(t, q.Push(Hit))
	require.NoError(t, q.Push(Hold))
	assert.Equal(t, 2, q.Len())

	d, ok := q.TryPop()
	require.True(t, ok)
	assert.Equal(t, Hit, d)

	d, ok = q.TryPop()
	require.True(t, ok)
	assert.Equal(t, Hold, d)

	_, ok = q.TryPop()
	assert.False(t, ok)
}

func TestDecisionQueueWait(t *testing.T) {
	t.Run("returns when a decision arrives", func(t *testing.T) {
		q := NewDecisionQueue()
		done := make(chan error, 1)
		go func() { done <- q.Wait(context.Background()) }()

		require.NoError(t, q.Push(Hit))
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("Wait did not return after Push")
		}
		assert.Equal(t, 1, q.Len(), "Wait does not consume")
	})

	t.Run("returns immediately when pending", func(t *testing.T) {
		q := NewDecisionQueue()
		require.NoError(t, q.Push(Hold))
		assert.NoError(t, q.Wait(context.Background()))
	})

	t.Run("context cancellation", func(t *testing.T) {
		q := NewDecisionQueue()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, q.Wait(ctx), context.Canceled)
	})

	t.Run("closed and drained", func(t *testing.T) {
		q := NewDecisionQueue()
		require.NoError(t, q.Push(Hit))
		q.Close()

		assert.NoError(t, q.Wait(context.Background()), "queued decisions survive close")
		_, ok := q.TryPop()
		require.True(t, ok)
		assert.ErrorIs(t, q.Wait(context.Background()), ErrQueueClosed)
		assert.ErrorIs(t, q.Push(Hit), ErrQueueClosed)
	})
}

func TestDecisionQueueConcurrent(t *testing.T) {
	q := NewDecisionQueue()
	const producers, perProducer = 8, 50

	var wg sync.WaitGroup
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perProducer {
				assert.NoError(t, q.Push(Hit))
			}
		}()
	}

	popped := 0
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		for popped < producers*perProducer {
			if err := q.Wait(context.Background()); err != nil {
				return
			}
			if _, ok := q.TryPop(); ok {
				popped++
			}
		}
	}()

	wg.Wait()
	select {
	case <-consumerDone:
	case <-time.After(5 * time.Second):
		t.Fatal("consumer did not drain the queue")
	}
	assert.Equal(t, producers*perProducer, popped)
	assert.Equal(t, 0, q.Len())
}
