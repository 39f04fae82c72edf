// Package chat provides a Go client for the react-chat WebSocket event
// protocol.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a connected chat client. Events arriving from the server are
// delivered on the Events channel until the connection closes.
type Client struct {
	conn   *websocket.Conn
	events chan ServerEvent
	done   chan struct{}
}

// Dial connects to a chat server. serverURL accepts http(s) or ws(s)
// schemes; the /ws path is appended if missing.
func Dial(ctx context.Context, serverURL string) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	if !strings.HasSuffix(u.Path, "/ws") {
		u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.String(), err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	c := &Client{
		conn:   conn,
		events: make(chan ServerEvent, 64),
		done:   make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Events returns the channel of server events. It is closed when the
// connection ends.
func (c *Client) Events() <-chan ServerEvent {
	return c.events
}

// Login binds a display name to this connection.
func (c *Client) Login(username string) error {
	return c.emit("login", map[string]string{"username": username})
}

// Join enters the named room, leaving the current one if any.
func (c *Client) Join(roomName string) error {
	return c.emit("user join", map[string]string{"chatName": roomName})
}

// CreateRoom creates a new room with the given icon. It does not join it.
func (c *Client) CreateRoom(roomName, icon string) error {
	return c.emit("create chat", map[string]string{"chatName": roomName, "icon": icon})
}

// Send posts a message into a room.
func (c *Client) Send(roomName, body string) error {
	return c.emit("new message", map[string]string{"chatName": roomName, "message": body})
}

// LoadRoomInfo requests a room's metadata and message history. The reply
// arrives as a RoomInfo server event.
func (c *Client) LoadRoomInfo(roomName string) error {
	return c.emit("loadChatInfo", map[string]string{"chatName": roomName})
}

// Close shuts the connection down.
func (c *Client) Close() error {
	deadline := time.Now().Add(time.Second)
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	err := c.conn.Close()
	<-c.done
	return err
}

func (c *Client) emit(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.conn.WriteJSON(frame{Event: event, Data: data})
}

func (c *Client) readLoop() {
	defer func() {
		close(c.events)
		close(c.done)
	}()

	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			return
		}
		ev, err := parseServerEvent(f)
		if err != nil {
			continue
		}
		select {
		case c.events <- ev:
		default:
			// Drop rather than block the read loop; the protocol is
			// best-effort.
		}
	}
}
