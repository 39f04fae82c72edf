package chat

import (
	"encoding/json"
	"fmt"

	"github.com/lvmingyin/react-chat/internal/models"
)

// Inbound event names as they appear on the wire.
const (
	EvLogin      = "login"
	EvJoin       = "user join"
	EvCreateRoom = "create chat"
	EvMessage    = "new message"
	EvRoomInfo   = "loadChatInfo"
	EvDisconnect = "disconnect"
)

// Outbound event names.
const (
	EvConnected = "connected"
	EvAction    = "action"
)

// Action types carried inside the action envelope.
const (
	ActionLoginIn           = "LOGIN_IN"
	ActionUserLeft          = "USER_LEFT"
	ActionUserJoin          = "USER_JOIN"
	ActionJoinSuccess       = "JOIN_SUCCESS"
	ActionJoinFailed        = "JOIN_FAILED"
	ActionCreateChatFailed  = "CREATE_CHAT_FAILED"
	ActionCreateChatSuccess = "CREATE_CHAT_SUCCESS"
	ActionNewMessage        = "NEW_MESSAGE"
	ActionMessageFailed     = "MESSAGE_FAILED"
)

// InboundEvent is the closed set of events a connection can deliver to
// the coordinator. Exactly one concrete type exists per wire event.
type InboundEvent interface {
	// EventName returns the wire name of the event.
	EventName() string
}

// LoginEvent binds a display name to the connection.
type LoginEvent struct {
	Username string `json:"username"`
}

// JoinEvent moves the connection into a room, leaving its previous room
// first if it had one.
type JoinEvent struct {
	RoomName string `json:"chatName"`
}

// CreateRoomEvent creates a new named room with an icon.
type CreateRoomEvent struct {
	RoomName string `json:"chatName"`
	Icon     string `json:"icon"`
}

// MessageEvent posts a message into a room.
type MessageEvent struct {
	RoomName string `json:"chatName"`
	Body     string `json:"message"`
}

// RoomInfoEvent asks for a room's metadata and history.
type RoomInfoEvent struct {
	RoomName string `json:"chatName"`
}

// DisconnectEvent is synthesized by the transport when the connection
// closes; it never arrives as a frame.
type DisconnectEvent struct{}

func (LoginEvent) EventName() string      { return EvLogin }
func (JoinEvent) EventName() string       { return EvJoin }
func (CreateRoomEvent) EventName() string { return EvCreateRoom }
func (MessageEvent) EventName() string    { return EvMessage }
func (RoomInfoEvent) EventName() string   { return EvRoomInfo }
func (DisconnectEvent) EventName() string { return EvDisconnect }

// Frame is the JSON envelope exchanged on the wire in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ParseInbound decodes a wire frame into its typed inbound event.
func ParseInbound(f Frame) (InboundEvent, error) {
	decode := func(v InboundEvent) (InboundEvent, error) {
		if len(f.Data) == 0 {
			return v, nil
		}
		if err := json.Unmarshal(f.Data, v); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", f.Event, err)
		}
		return v, nil
	}

	switch f.Event {
	case EvLogin:
		return decode(&LoginEvent{})
	case EvJoin:
		return decode(&JoinEvent{})
	case EvCreateRoom:
		return decode(&CreateRoomEvent{})
	case EvMessage:
		return decode(&MessageEvent{})
	case EvRoomInfo:
		return decode(&RoomInfoEvent{})
	default:
		return nil, fmt.Errorf("unknown event %q", f.Event)
	}
}

// OutboundEvent is one event addressed to a single connection. Payload is
// marshaled by the transport at send time, while the coordinator still
// holds its lock, so fan-out sees a consistent snapshot.
type OutboundEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Action is the envelope used to notify clients of state transitions.
type Action struct {
	Type    string `json:"type"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"` // human-readable failure reason
}

// ConnectedData is the room directory delivered once at connect time.
type ConnectedData struct {
	ChatMap map[string]models.Room `json:"chatMap"`
}

// MembershipData accompanies USER_JOIN and USER_LEFT actions.
type MembershipData struct {
	Chat *models.Room `json:"chat"`
	User *models.User `json:"user"`
}

// JoinSuccessData accompanies JOIN_SUCCESS.
type JoinSuccessData struct {
	Chat     *models.Room     `json:"chat"`
	User     *models.User     `json:"user"`
	ChatName string           `json:"chatName"`
	Messages []models.Message `json:"messages"`
}

// RoomInfoData is the reply to a loadChatInfo request.
type RoomInfoData struct {
	Messages []models.Message `json:"messages"`
	Chat     *models.Room     `json:"chat"`
}
