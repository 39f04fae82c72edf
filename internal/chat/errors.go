package chat

import "errors"

var (
	// ErrDuplicateRoom is returned when creating a room whose name is taken.
	ErrDuplicateRoom = errors.New("room already exists")
	// ErrRoomNotFound is returned when an operation names an unknown room.
	ErrRoomNotFound = errors.New("room not found")
)
