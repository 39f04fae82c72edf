package ws

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lvmingyin/react-chat/internal/config"
)

// Handler returns the HTTP handler that upgrades requests to WebSocket
// connections and wires them into the dispatcher. Each connection gets a
// fresh opaque id; the dispatcher sees Connect before any events.
func Handler(hub *Hub, d Dispatcher, cfg *config.Config) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return cfg.OriginAllowed(r.Header.Get("Origin"))
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
			return
		}

		client := newClient(uuid.NewString(), hub, conn)
		hub.add(client)
		d.Connect(client.id)

		go client.writePump()
		go client.readPump(d)
	}
}
