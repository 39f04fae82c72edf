package chat

import (
	"encoding/json"
	"fmt"
)

// Room is a chat room as seen on the wire.
type Room struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	MemberCount int    `json:"userNum"`
}

// User is a logged-in identity as seen on the wire.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	CurrRoom string `json:"currChat"`
}

// Message is one chat message as seen on the wire.
type Message struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	UserID   string `json:"userId"`
	RoomName string `json:"chatName"`
	Body     string `json:"message"`
	Kind     int    `json:"type"`
	Time     int64  `json:"time"`
}

// Action is the state-transition envelope the server emits.
type Action struct {
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// Action types.
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

// ConnectedData carries the room directory sent once at connect time.
type ConnectedData struct {
	ChatMap map[string]Room `json:"chatMap"`
}

// RoomInfoData is the reply to LoadRoomInfo.
type RoomInfoData struct {
	Messages []Message `json:"messages"`
	Chat     *Room     `json:"chat"`
}

// MembershipData accompanies USER_JOIN and USER_LEFT actions.
type MembershipData struct {
	Chat *Room `json:"chat"`
	User *User `json:"user"`
}

// JoinSuccessData accompanies JOIN_SUCCESS.
type JoinSuccessData struct {
	Chat     *Room     `json:"chat"`
	User     *User     `json:"user"`
	ChatName string    `json:"chatName"`
	Messages []Message `json:"messages"`
}

// ServerEvent is one event received from the server. Exactly one of the
// payload fields is set, according to Name.
type ServerEvent struct {
	Name      string // "connected", "action", or "loadChatInfo"
	Connected *ConnectedData
	Action    *Action
	RoomInfo  *RoomInfoData
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func parseServerEvent(f frame) (ServerEvent, error) {
	ev := ServerEvent{Name: f.Event}
	switch f.Event {
	case "connected":
		ev.Connected = &ConnectedData{}
		return ev, json.Unmarshal(f.Data, ev.Connected)
	case "action":
		ev.Action = &Action{}
		return ev, json.Unmarshal(f.Data, ev.Action)
	case "loadChatInfo":
		ev.RoomInfo = &RoomInfoData{}
		return ev, json.Unmarshal(f.Data, ev.RoomInfo)
	default:
		return ev, fmt.Errorf("unknown server event %q", f.Event)
	}
}
