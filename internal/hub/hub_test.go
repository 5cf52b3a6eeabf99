package hub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tandemchess/internal/move"
	"tandemchess/internal/tandem"
)

func TestRegisterUnregister(t *testing.T) {
	h := New(nil)
	id, q := h.Register()
	require.NotEmpty(t, id)
	require.Equal(t, 1, h.registry.count())

	h.Broadcast("hello")
	msg, ok := q.Consume()
	require.True(t, ok)
	require.Equal(t, "hello", msg)

	h.Unregister(id)
	require.Equal(t, 0, h.registry.count())
}

func TestSendToUnknownClientReturnsFalse(t *testing.T) {
	h := New(nil)
	require.False(t, h.SendTo("does-not-exist", "hi"))
}

func TestBroadcastReachesAllClients(t *testing.T) {
	h := New(nil)
	_, q1 := h.Register()
	_, q2 := h.Register()

	h.Broadcast("state")

	_, ok1 := q1.Consume()
	_, ok2 := q2.Consume()
	require.True(t, ok1)
	require.True(t, ok2)
}

func TestRunBroadcastsOnClockChange(t *testing.T) {
	tick := int64(1000) // above zero: a zero lastSync means "not yet synchronized"
	game := tandem.New(tandem.WithClock(func() int64 { return tick }))
	parsed := move.Parse("1;W;e2;e4;;")
	require.Equal(t, move.Move, parsed.Kind)
	require.True(t, game.MovePiece(parsed.Move))
	game.ShouldUpdate() // establish the synchronization baseline

	h := New(nil)
	_, q := h.Register()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx, game)

	tick += 1000
	require.Eventually(t, func() bool {
		_, ok := q.Consume()
		return ok
	}, time.Second, 5*time.Millisecond)
}
