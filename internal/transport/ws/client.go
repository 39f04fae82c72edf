package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lvmingyin/react-chat/internal/chat"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 8 * 1024
)

// Client is one live WebSocket connection.
type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	closed bool // guarded by hub.mu
	logger zerolog.Logger
}

func newClient(id string, hub *Hub, conn *websocket.Conn) *Client {
	conn.SetReadLimit(maxMessageSize)
	return &Client{
		id:     id,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		logger: hub.logger.With().Str("conn", id).Logger(),
	}
}

// readPump reads frames off the socket and feeds them to the dispatcher.
// When the connection closes, for any reason, it synthesizes the
// disconnect event and unregisters the client.
func (c *Client) readPump(d Dispatcher) {
	defer func() {
		d.Dispatch(c.id, chat.DisconnectEvent{})
		c.hub.remove(c)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Msg("websocket read error")
			}
			return
		}

		var f chat.Frame
		if err := json.Unmarshal(raw, &f); err != nil {
			c.logger.Warn().Err(err).Msg("malformed frame")
			continue
		}
		ev, err := chat.ParseInbound(f)
		if err != nil {
			c.logger.Warn().Err(err).Msg("unparseable event")
			continue
		}
		d.Dispatch(c.id, ev)
	}
}

// writePump drains the send channel onto the socket and keeps the
// connection alive with periodic pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
