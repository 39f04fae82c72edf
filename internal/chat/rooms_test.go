package chat

import (
	"errors"
	"testing"
)

func TestRoomRegistryCreate(t *testing.T) {
	r := NewRoomRegistry()

	room, err := r.Create("room2", "icon.png")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if room.Name != "room2" || room.Icon != "icon.png" {
		t.Errorf("Create() = %+v, want name room2 icon icon.png", room)
	}
	if room.MemberCount != 0 {
		t.Errorf("new room MemberCount = %d, want 0", room.MemberCount)
	}
	if !r.Exists("room2") {
		t.Error("Exists(room2) = false after Create")
	}
}

func TestRoomRegistryDuplicate(t *testing.T) {
	r := NewRoomRegistry()

	if _, err := r.Create("room2", "a.png"); err != nil {
		t.Fatal(err)
	}
	r.IncrementMembers("room2")

	_, err := r.Create("room2", "b.png")
	if !errors.Is(err, ErrDuplicateRoom) {
		t.Fatalf("second Create() error = %v, want ErrDuplicateRoom", err)
	}

	// Existing metadata must be untouched.
	room, _ := r.Get("room2")
	if room.Icon != "a.png" || room.MemberCount != 1 {
		t.Errorf("room after failed create = %+v, want icon a.png count 1", room)
	}
}

func TestRoomRegistryMemberCount(t *testing.T) {
	r := NewRoomRegistry()
	if _, err := r.Create("room2", "icon.png"); err != nil {
		t.Fatal(err)
	}

	r.IncrementMembers("room2")
	r.IncrementMembers("room2")
	r.DecrementMembers("room2")

	room, _ := r.Get("room2")
	if room.MemberCount != 1 {
		t.Errorf("MemberCount = %d, want 1", room.MemberCount)
	}

	// Never below zero, even if misused.
	r.DecrementMembers("room2")
	r.DecrementMembers("room2")
	room, _ = r.Get("room2")
	if room.MemberCount != 0 {
		t.Errorf("MemberCount = %d, want 0", room.MemberCount)
	}
}

func TestRoomRegistrySnapshotIsCopy(t *testing.T) {
	r := NewRoomRegistry()
	if _, err := r.Create("room2", "icon.png"); err != nil {
		t.Fatal(err)
	}

	snap := r.Snapshot()
	entry := snap["room2"]
	entry.MemberCount = 99
	snap["room2"] = entry

	room, _ := r.Get("room2")
	if room.MemberCount != 0 {
		t.Error("mutating a snapshot leaked into the registry")
	}
}
