// Package ws adapts the WebSocket transport to the chat coordinator: it
// owns the connection table, assigns connection ids, runs per-connection
// read/write pumps, and delivers the coordinator's outbound events.
package ws

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lvmingyin/react-chat/internal/chat"
	"github.com/lvmingyin/react-chat/internal/metrics"
)

// Dispatcher consumes the per-connection inbound event stream. The
// coordinator implements it.
type Dispatcher interface {
	Connect(connID string)
	Dispatch(connID string, ev chat.InboundEvent)
}

// Hub tracks all live WebSocket clients by connection id and implements
// chat.Transport. Clients whose send buffer fills are dropped rather than
// allowed to stall fan-out.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  zerolog.Logger
}

// NewHub returns an empty hub.
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger.With().Str("component", "ws").Logger(),
	}
}

// Send marshals the event and queues it on the target connection. The
// payload is serialized before Send returns, so callers holding a lock
// over the payload's data get a consistent snapshot. Unknown connection
// ids are ignored.
func (h *Hub) Send(connID string, ev chat.OutboundEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error().Err(err).Str("event", ev.Event).Msg("marshal outbound event")
		return
	}

	h.mu.RLock()
	c, ok := h.clients[connID]
	if !ok || c.closed {
		h.mu.RUnlock()
		return
	}
	select {
	case c.send <- payload:
		h.mu.RUnlock()
		return
	default:
	}
	h.mu.RUnlock()

	// Send buffer full: the client is too slow to keep.
	metrics.SlowClientsDropped.Inc()
	h.logger.Warn().Str("conn", connID).Msg("dropping slow client")
	h.remove(c)
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c.id] = c
	total := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug().Str("conn", c.id).Int("total", total).Msg("client registered")
}

// remove unregisters a client and closes its send channel. Safe to call
// more than once per client; the channel is closed exactly once. The
// closed flag is flipped under the write lock so no concurrent Send can
// push into a closed channel.
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c.id)
	c.closed = true
	total := len(h.clients)
	h.mu.Unlock()

	close(c.send)
	h.logger.Debug().Str("conn", c.id).Int("total", total).Msg("client unregistered")
}

// Shutdown closes every live connection. Read pumps observe the closed
// sockets, synthesize disconnect events, and unregister themselves.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		_ = c.conn.Close()
	}
	h.logger.Info().Int("count", len(clients)).Msg("closed client connections")
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
