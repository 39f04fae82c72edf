// Package chat implements the session/room coordinator: per-connection
// identity, room membership transitions, per-room message history, and
// event fan-out to self, room, or all connections.
package chat

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lvmingyin/react-chat/internal/metrics"
	"github.com/lvmingyin/react-chat/internal/models"
)

// Transport delivers one outbound event to one live connection. Send must
// not block; implementations marshal the payload before returning so the
// coordinator's lock covers snapshot consistency.
type Transport interface {
	Send(connID string, ev OutboundEvent)
}

// Coordinator owns all chat state and processes one inbound event to
// completion before the next. A single mutex serializes every operation,
// which keeps member counts, current-room pointers, and room audiences in
// exact sync.
type Coordinator struct {
	mu        sync.Mutex
	transport Transport
	logger    zerolog.Logger

	conns     *ConnectionRegistry
	rooms     *RoomRegistry
	log       *MessageLog
	connected map[string]struct{}            // every live connection
	audiences map[string]map[string]struct{} // room name -> connection ids
}

// NewCoordinator returns a coordinator preloaded with the demo lobby.
func NewCoordinator(t Transport, logger zerolog.Logger) *Coordinator {
	c := &Coordinator{
		transport: t,
		logger:    logger.With().Str("component", "coordinator").Logger(),
		conns:     NewConnectionRegistry(),
		rooms:     NewRoomRegistry(),
		log:       NewMessageLog(),
		connected: make(map[string]struct{}),
		audiences: make(map[string]map[string]struct{}),
	}
	c.seed()
	return c
}

// seed preloads the demo fixture: one room with a single welcome message.
func (c *Coordinator) seed() {
	const lobby = "lobby"
	if _, err := c.rooms.Create(lobby, "/images/rooms/lobby.png"); err != nil {
		return
	}
	c.log.Append(lobby, models.Message{
		Username: "react-chat",
		UserID:   "0",
		Body:     "Welcome to the lobby.",
		Kind:     models.KindNormal,
	})
}

// Connect registers a new live connection and sends it the current room
// directory. The transport must call this exactly once per connection,
// before delivering any events for it.
func (c *Coordinator) Connect(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.connected[connID] = struct{}{}
	metrics.ActiveConnections.Inc()
	c.logger.Debug().Str("conn", connID).Msg("connection opened")

	c.transport.Send(connID, OutboundEvent{
		Event: EvConnected,
		Data:  ConnectedData{ChatMap: c.rooms.Snapshot()},
	})
}

// Dispatch processes one inbound event to completion. Events from
// connections with no logged-in user are silently ignored, matching the
// policy that every room event resolves the acting user first.
func (c *Coordinator) Dispatch(connID string, ev InboundEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	metrics.EventsProcessed.WithLabelValues(ev.EventName()).Inc()

	switch e := ev.(type) {
	case *LoginEvent:
		c.login(connID, e)
	case *JoinEvent:
		c.join(connID, e)
	case *CreateRoomEvent:
		c.createRoom(connID, e)
	case *MessageEvent:
		c.postMessage(connID, e)
	case *RoomInfoEvent:
		c.roomInfo(connID, e)
	case DisconnectEvent:
		c.disconnect(connID)
	}
}

func (c *Coordinator) login(connID string, e *LoginEvent) {
	// Re-login replaces the identity; a connection that was in a room
	// leaves it first so memberCount and the audience stay in sync.
	if prev, ok := c.conns.Get(connID); ok {
		if prev.CurrRoom != "" {
			c.leaveCurrentRoom(connID, prev)
		}
	} else {
		metrics.UsersLoggedIn.Inc()
	}
	user := &models.User{ID: connID, Username: e.Username}
	c.conns.Set(connID, user)
	c.logger.Info().Str("conn", connID).Str("username", e.Username).Msg("user logged in")
	c.sendSelf(connID, Action{Type: ActionLoginIn, Data: user})
}

func (c *Coordinator) join(connID string, e *JoinEvent) {
	user, ok := c.conns.Get(connID)
	if !ok {
		return
	}
	room, err := c.lookupRoom(e.RoomName)
	if err != nil {
		c.sendSelf(connID, Action{Type: ActionJoinFailed, Message: err.Error()})
		return
	}

	if user.CurrRoom != "" {
		c.leaveCurrentRoom(connID, user)
	}

	c.rooms.IncrementMembers(e.RoomName)
	c.broadcastRoom(e.RoomName, connID, Action{
		Type: ActionUserJoin,
		Data: MembershipData{Chat: room, User: user},
	})
	user.CurrRoom = e.RoomName
	c.joinAudience(e.RoomName, connID)

	c.logger.Info().Str("conn", connID).Str("room", e.RoomName).Msg("user joined room")
	c.sendSelf(connID, Action{
		Type: ActionJoinSuccess,
		Data: JoinSuccessData{
			Chat:     room,
			User:     user,
			ChatName: e.RoomName,
			Messages: c.log.List(e.RoomName),
		},
	})
}

// leaveCurrentRoom performs the implicit leave: decrement the previous
// room's member count, tell the remaining members, and drop the
// connection from that room's audience. Count mutation and broadcast are
// one atomic step under the coordinator lock.
func (c *Coordinator) leaveCurrentRoom(connID string, user *models.User) {
	prevName := user.CurrRoom
	prev, ok := c.rooms.Get(prevName)
	if !ok {
		return
	}
	c.rooms.DecrementMembers(prevName)
	c.broadcastRoom(prevName, connID, Action{
		Type: ActionUserLeft,
		Data: MembershipData{Chat: prev, User: user},
	})
	c.leaveAudience(prevName, connID)
	user.CurrRoom = ""
}

func (c *Coordinator) createRoom(connID string, e *CreateRoomEvent) {
	if _, ok := c.conns.Get(connID); !ok {
		return
	}
	room, err := c.rooms.Create(e.RoomName, e.Icon)
	if err != nil {
		c.sendSelf(connID, Action{
			Type:    ActionCreateChatFailed,
			Message: fmt.Sprintf("a room named %q already exists", e.RoomName),
		})
		return
	}
	metrics.RoomsCreated.Inc()
	c.logger.Info().Str("conn", connID).Str("room", e.RoomName).Msg("room created")

	// Creation is global news: the creator and everyone else get the
	// same event. The creator is not auto-joined.
	success := Action{Type: ActionCreateChatSuccess, Data: room}
	c.sendSelf(connID, success)
	c.broadcastAll(connID, success)
}

func (c *Coordinator) postMessage(connID string, e *MessageEvent) {
	user, ok := c.conns.Get(connID)
	if !ok {
		return
	}
	// Posting is not restricted to the sender's current room, but the
	// room has to exist.
	if _, err := c.lookupRoom(e.RoomName); err != nil {
		c.sendSelf(connID, Action{Type: ActionMessageFailed, Message: err.Error()})
		return
	}

	msg := c.log.Append(e.RoomName, models.Message{
		Username: user.Username,
		UserID:   connID,
		Body:     e.Body,
		Kind:     models.KindNormal,
	})
	metrics.MessagesPosted.Inc()
	c.broadcastRoom(e.RoomName, connID, Action{Type: ActionNewMessage, Data: msg})
}

func (c *Coordinator) roomInfo(connID string, e *RoomInfoEvent) {
	if _, ok := c.conns.Get(connID); !ok {
		return
	}
	if e.RoomName == "" {
		return
	}
	room, _ := c.rooms.Get(e.RoomName)
	c.transport.Send(connID, OutboundEvent{
		Event: EvRoomInfo,
		Data: RoomInfoData{
			Messages: c.log.List(e.RoomName),
			Chat:     room,
		},
	})
}

func (c *Coordinator) disconnect(connID string) {
	if user, ok := c.conns.Get(connID); ok {
		if user.CurrRoom != "" {
			c.leaveCurrentRoom(connID, user)
		}
		c.conns.Remove(connID)
		metrics.UsersLoggedIn.Dec()
	}
	if _, ok := c.connected[connID]; ok {
		delete(c.connected, connID)
		metrics.ActiveConnections.Dec()
	}
	c.logger.Debug().Str("conn", connID).Msg("connection closed")
}

// RoomDirectory returns a snapshot of all rooms keyed by name.
func (c *Coordinator) RoomDirectory() map[string]models.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rooms.Snapshot()
}

// Stats returns the current connection, user, and room counts.
func (c *Coordinator) Stats() (connections, users, rooms int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.connected), c.conns.Len(), c.rooms.Len()
}

func (c *Coordinator) sendSelf(connID string, a Action) {
	metrics.Broadcasts.WithLabelValues("self").Inc()
	c.transport.Send(connID, OutboundEvent{Event: EvAction, Data: a})
}

// broadcastRoom sends an action to every member of a room except the
// originating connection.
func (c *Coordinator) broadcastRoom(roomName, exceptConnID string, a Action) {
	metrics.Broadcasts.WithLabelValues("room").Inc()
	for connID := range c.audiences[roomName] {
		if connID == exceptConnID {
			continue
		}
		c.transport.Send(connID, OutboundEvent{Event: EvAction, Data: a})
	}
}

// broadcastAll sends an action to every live connection except the
// originating one.
func (c *Coordinator) broadcastAll(exceptConnID string, a Action) {
	metrics.Broadcasts.WithLabelValues("all").Inc()
	for connID := range c.connected {
		if connID == exceptConnID {
			continue
		}
		c.transport.Send(connID, OutboundEvent{Event: EvAction, Data: a})
	}
}

// lookupRoom resolves a room name, failing with ErrRoomNotFound for
// unknown names.
func (c *Coordinator) lookupRoom(name string) (*models.Room, error) {
	room, ok := c.rooms.Get(name)
	if !ok {
		return nil, fmt.Errorf("no room named %q: %w", name, ErrRoomNotFound)
	}
	return room, nil
}

func (c *Coordinator) joinAudience(roomName, connID string) {
	if c.audiences[roomName] == nil {
		c.audiences[roomName] = make(map[string]struct{})
	}
	c.audiences[roomName][connID] = struct{}{}
}

func (c *Coordinator) leaveAudience(roomName, connID string) {
	delete(c.audiences[roomName], connID)
}
