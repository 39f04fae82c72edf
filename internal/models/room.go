package models

// Room is a named chat channel. Name and Icon are immutable once the room
// is created; MemberCount tracks how many connections currently have this
// room as their current room.
type Room struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	MemberCount int    `json:"userNum"`
}
