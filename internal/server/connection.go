package server

import (
	"context"

	"github.com/gorilla/websocket"

	"tandemchess/internal/move"
	"tandemchess/internal/queue"
)

// handleConnection registers the client, spins up its writer goroutine,
// and reads frames until the connection closes.
func (s *Server) handleConnection(conn *websocket.Conn) {
	clientID, outbound := s.hub.Register()
	outbound.Produce(s.game.Snapshot(true))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go s.writeLoop(ctx, cancel, conn, clientID, outbound)

	s.readLoop(conn, clientID)

	cancel()
	s.hub.Unregister(clientID)
	conn.Close()
}

func (s *Server) readLoop(conn *websocket.Conn, clientID string) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		s.dispatch(clientID, string(data))
	}
}

func (s *Server) dispatch(clientID, raw string) {
	parsed := move.Parse(raw)
	switch parsed.Kind {
	case move.Reset:
		s.game.Reset()
		s.hub.Broadcast(s.game.Snapshot(true))
	case move.Move:
		if s.game.MovePiece(parsed.Move) {
			s.hub.Broadcast(s.game.Snapshot(true))
			return
		}
		s.logger.Debugw("move rejected", "client_id", clientID,
			"board", parsed.Move.Board, "source", parsed.Move.Source, "target", parsed.Move.Target)
		s.hub.SendTo(clientID, s.game.Snapshot(false))
	case move.Invalid:
		// Malformed frames are dropped silently, per the wire protocol.
	}
}

// writeLoop drains clientID's outbound queue until ctx is cancelled or a
// write fails. A failed write means the peer is gone: the writer scrubs
// its own client id out of the hub before exiting, so a dead connection
// never accumulates an unbounded backlog of undelivered broadcasts.
func (s *Server) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, clientID string, outbound *queue.Queue[string]) {
	for {
		msg, ok := outbound.ConsumeBlocking(ctx)
		if !ok {
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			s.hub.Unregister(clientID)
			cancel()
			conn.Close()
			return
		}
	}
}
