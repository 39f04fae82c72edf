package chat

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lvmingyin/react-chat/internal/models"
)

// MessageLog keeps the ordered message history of every room. History is
// append-only for the life of the process. Callers are responsible for
// only appending to rooms that exist.
type MessageLog struct {
	history map[string][]models.Message
	now     func() time.Time
	last    int64 // last stamp handed out, Unix ms
}

// NewMessageLog returns an empty log using the wall clock.
func NewMessageLog() *MessageLog {
	return &MessageLog{
		history: make(map[string][]models.Message),
		now:     time.Now,
	}
}

// Append assigns the message an id and a timestamp and stores it at the
// end of the room's history. Timestamps are monotonically non-decreasing
// per process even if the wall clock steps backwards. The stored message
// is returned.
func (l *MessageLog) Append(roomName string, m models.Message) models.Message {
	m.ID = ulid.Make().String()
	m.RoomName = roomName
	m.Time = l.stamp()
	l.history[roomName] = append(l.history[roomName], m)
	return m
}

// List returns the room's history in append order. The returned slice is
// a copy; it is never nil.
func (l *MessageLog) List(roomName string) []models.Message {
	msgs := l.history[roomName]
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	return out
}

func (l *MessageLog) stamp() int64 {
	ts := l.now().UnixMilli()
	if ts < l.last {
		ts = l.last
	}
	l.last = ts
	return ts
}
