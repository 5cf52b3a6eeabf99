package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"tandemchess/internal/hub"
	"tandemchess/internal/tandem"
)

func startTestServer(t *testing.T) (string, *tandem.Game) {
	t.Helper()
	game := tandem.New()
	h := hub.New(nil)
	srv := New(h, game, nil)

	httpSrv := httptest.NewServer(srv)
	t.Cleanup(httpSrv.Close)

	wsURL := "ws" + strings.TrimPrefix(httpSrv.URL, "http")
	return wsURL, game
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Every connection first receives the current state as its initial
	// sync; consume it so each test reads only the frames it provokes.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(data), `"valid":true`)
	return conn
}

func TestAcceptedMoveBroadcastsToAllClients(t *testing.T) {
	url, _ := startTestServer(t)
	a := dial(t, url)
	b := dial(t, url)

	require.NoError(t, a.WriteMessage(websocket.TextMessage, []byte("1;W;e2;e4;;")))

	for _, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		require.Contains(t, string(data), `"valid":true`)
	}
}

func TestRejectedMoveEchoesOnlyToSender(t *testing.T) {
	url, _ := startTestServer(t)
	a := dial(t, url)
	b := dial(t, url)

	// e2-e5 is not a legal pawn move: rejected.
	require.NoError(t, a.WriteMessage(websocket.TextMessage, []byte("1;W;e2;e5;;")))

	a.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := a.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(data), `"valid":false`)

	b.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = b.ReadMessage()
	require.Error(t, err, "b should not receive anything for a rejected move")
}

func TestResetBroadcastsFreshState(t *testing.T) {
	url, _ := startTestServer(t)
	a := dial(t, url)

	require.NoError(t, a.WriteMessage(websocket.TextMessage, []byte("1;W;e2;e4;;")))
	a.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := a.ReadMessage()
	require.NoError(t, err)

	require.NoError(t, a.WriteMessage(websocket.TextMessage, []byte("Reset Game")))
	_, data, err := a.ReadMessage()
	require.NoError(t, err)
	require.Contains(t, string(data), "rnbqkbnr")
}

func TestMalformedFrameIsIgnored(t *testing.T) {
	url, _ := startTestServer(t)
	a := dial(t, url)

	require.NoError(t, a.WriteMessage(websocket.TextMessage, []byte("not a valid frame")))
	a.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err := a.ReadMessage()
	require.Error(t, err, "malformed frames produce no response")
}
