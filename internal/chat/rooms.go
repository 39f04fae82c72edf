package chat

import (
	"fmt"

	"github.com/lvmingyin/react-chat/internal/models"
)

// RoomRegistry maps room names to room metadata. Rooms are never deleted.
// Like ConnectionRegistry it holds no lock of its own; the Coordinator
// serializes access.
type RoomRegistry struct {
	rooms map[string]*models.Room
}

// NewRoomRegistry returns an empty registry.
func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[string]*models.Room)}
}

// Exists reports whether a room with the given name exists.
func (r *RoomRegistry) Exists(name string) bool {
	_, ok := r.rooms[name]
	return ok
}

// Create inserts a new room with zero members. It fails with
// ErrDuplicateRoom if the name is already taken.
func (r *RoomRegistry) Create(name, icon string) (*models.Room, error) {
	if _, ok := r.rooms[name]; ok {
		return nil, fmt.Errorf("create room %q: %w", name, ErrDuplicateRoom)
	}
	room := &models.Room{Name: name, Icon: icon}
	r.rooms[name] = room
	return room, nil
}

// Get returns the room with the given name, if any.
func (r *RoomRegistry) Get(name string) (*models.Room, bool) {
	room, ok := r.rooms[name]
	return room, ok
}

// IncrementMembers adds one to a room's member count.
func (r *RoomRegistry) IncrementMembers(name string) {
	if room, ok := r.rooms[name]; ok {
		room.MemberCount++
	}
}

// DecrementMembers subtracts one from a room's member count. Callers must
// only decrement rooms they previously incremented; the count never goes
// below zero.
func (r *RoomRegistry) DecrementMembers(name string) {
	if room, ok := r.rooms[name]; ok && room.MemberCount > 0 {
		room.MemberCount--
	}
}

// Snapshot returns a copy of the full room directory keyed by name.
func (r *RoomRegistry) Snapshot() map[string]models.Room {
	out := make(map[string]models.Room, len(r.rooms))
	for name, room := range r.rooms {
		out[name] = *room
	}
	return out
}

// Len returns the number of rooms.
func (r *RoomRegistry) Len() int {
	return len(r.rooms)
}
