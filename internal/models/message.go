package models

// MessageKind categorizes a chat message.
type MessageKind int

const (
	// KindNormal is a regular user-authored message.
	KindNormal MessageKind = iota
	// KindSystem is a server-generated notice.
	KindSystem
)

// Message is one chat utterance, immutable once appended to a room's log.
type Message struct {
	ID       string      `json:"id"` // ULID
	Username string      `json:"username"`
	UserID   string      `json:"userId"` // author's connection id
	RoomName string      `json:"chatName"`
	Body     string      `json:"message"`
	Kind     MessageKind `json:"type"`
	Time     int64       `json:"time"` // Unix ms, assigned at append time
}
