// Package hub fans out tandem game snapshots to every connected client
// and drives the clock-tick broadcaster. The client registry is guarded
// by its own lock, always acquired after any tandem.Game lock has
// already been released — the hub never calls into tandem while holding
// its own registry lock, so the two locks never nest.
package hub

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tandemchess/internal/queue"
	"tandemchess/internal/tandem"
)

// tickInterval is how often the broadcaster checks the game clock.
const tickInterval = 50 * time.Millisecond

// idleHeartbeatPolls is how many consecutive no-change ticks elapse
// before the hub broadcasts anyway, so a silently stalled connection
// still gets a periodic snapshot.
const idleHeartbeatPolls = 100

// Hub owns the set of connected clients and their outbound message
// queues. The zero value is not usable; construct with New.
type Hub struct {
	registry *registry
	logger   *zap.SugaredLogger
}

// New returns an empty hub. logger may be nil, in which case log calls
// are silently dropped.
func New(logger *zap.SugaredLogger) *Hub {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Hub{registry: newRegistry(), logger: logger}
}

// Register creates a new client with a fresh id and outbound queue.
func (h *Hub) Register() (clientID string, outbound *queue.Queue[string]) {
	clientID = uuid.NewString()
	outbound = queue.New[string]()
	h.registry.add(clientID, outbound)
	h.logger.Infow("client connected", "client_id", clientID)
	return clientID, outbound
}

// Unregister removes a client from the registry. It is safe to call more
// than once for the same id.
func (h *Hub) Unregister(clientID string) {
	h.registry.remove(clientID)
	h.logger.Infow("client disconnected", "client_id", clientID)
}

// Broadcast enqueues msg on every currently-registered client's queue.
func (h *Hub) Broadcast(msg string) {
	for _, q := range h.registry.snapshot() {
		q.Produce(msg)
	}
}

// SendTo enqueues msg for a single client, reporting whether that client
// is still registered.
func (h *Hub) SendTo(clientID, msg string) bool {
	q, ok := h.registry.get(clientID)
	if !ok {
		return false
	}
	q.Produce(msg)
	return true
}

// Run drives the clock-tick broadcaster until ctx is done: every
// tickInterval it asks the game whether the displayed clock changed and
// broadcasts a fresh snapshot if so, falling back to an unconditional
// heartbeat broadcast every idleHeartbeatPolls ticks so a game whose
// displayed clocks do not change (e.g. one not yet started, or finished)
// still reaches reconnecting clients.
func (h *Hub) Run(ctx context.Context, game *tandem.Game) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	idle := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if game.ShouldUpdate() {
				h.Broadcast(game.Snapshot(true))
				idle = 0
				continue
			}
			idle++
			if idle >= idleHeartbeatPolls {
				h.Broadcast(game.Snapshot(true))
				idle = 0
			}
		}
	}
}
