// Package server implements the tandem connection handler: it upgrades
// every incoming request to a websocket, regardless of path, and pairs
// it with a reader goroutine (dispatching parsed client frames into the
// shared game) and a writer goroutine (draining that client's outbound
// queue). There is no routing table — any connection is an equal peer,
// matching the wire protocol's "no path routing" rule.
package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"tandemchess/internal/hub"
	"tandemchess/internal/tandem"
)

// Server upgrades websocket connections and dispatches their frames
// against a shared tandem game and broadcast hub.
type Server struct {
	upgrader websocket.Upgrader
	hub      *hub.Hub
	game     *tandem.Game
	logger   *zap.SugaredLogger
}

// New returns a Server wired to the given hub and game.
func New(h *hub.Hub, g *tandem.Game, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Server{
		// Any origin is accepted: the wire protocol has no concept of
		// browser-origin trust, and the oracle-level contract makes no
		// mention of CORS.
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		hub:      h,
		game:     g,
		logger:   logger,
	}
}

// ServeHTTP upgrades the request and blocks for the lifetime of the
// connection. It is safe to mount at any path, or at "/" with no mux at
// all, since it never inspects r.URL.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debugw("upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}
	s.handleConnection(conn)
}
