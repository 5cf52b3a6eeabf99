package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestProduceConsumeFIFO(t *testing.T) {
	q := New[string]()
	q.Produce("a")
	q.Produce("b")

	v, ok := q.Consume()
	require.True(t, ok)
	require.Equal(t, "a", v)

	v, ok = q.Consume()
	require.True(t, ok)
	require.Equal(t, "b", v)

	_, ok = q.Consume()
	require.False(t, ok)
}

func TestProduceDropsOldestPastCap(t *testing.T) {
	q := New[int]()
	const total = maxLen + 10
	for i := 0; i < total; i++ {
		q.Produce(i)
	}
	// The oldest entry is only dropped once the queue would otherwise
	// exceed maxLen+1 entries, matching the original's "pop front only
	// when len() > 1000, then push" ordering.
	require.Equal(t, maxLen+1, q.Len())

	v, ok := q.Consume()
	require.True(t, ok)
	require.Equal(t, total-(maxLen+1), v, "only entries older than the steady-state window should have been dropped")
}

func TestConsumeBlockingReturnsOnceProduced(t *testing.T) {
	q := New[string]()
	ctx := context.Background()

	done := make(chan string, 1)
	go func() {
		v, ok := q.ConsumeBlocking(ctx)
		if ok {
			done <- v
		} else {
			done <- ""
		}
	}()

	time.Sleep(5 * time.Millisecond)
	q.Produce("hello")

	select {
	case v := <-done:
		require.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("ConsumeBlocking never returned")
	}
}

func TestConsumeBlockingReturnsOnContextCancel(t *testing.T) {
	q := New[string]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := q.ConsumeBlocking(ctx)
	require.False(t, ok)
}
