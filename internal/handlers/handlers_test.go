package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lvmingyin/react-chat/internal/chat"
)

type nopTransport struct{}

func (nopTransport) Send(string, chat.OutboundEvent) {}

func newTestHandler(t *testing.T) (*Handler, *chat.Coordinator) {
	t.Helper()
	coord := chat.NewCoordinator(nopTransport{}, zerolog.Nop())
	return NewHandler(coord), coord
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Status = %q, want healthy", resp.Status)
	}
	if resp.Rooms != 1 {
		t.Errorf("Rooms = %d, want 1 (seeded lobby)", resp.Rooms)
	}
	if resp.Connections != 0 || resp.Users != 0 {
		t.Errorf("Connections/Users = %d/%d, want 0/0", resp.Connections, resp.Users)
	}
}

func TestListRooms(t *testing.T) {
	h, coord := newTestHandler(t)

	coord.Connect("a")
	coord.Dispatch("a", &chat.LoginEvent{Username: "alice"})
	coord.Dispatch("a", &chat.CreateRoomEvent{RoomName: "room2", Icon: "icon.png"})
	coord.Dispatch("a", &chat.JoinEvent{RoomName: "room2"})

	w := httptest.NewRecorder()
	h.ListRooms(w, httptest.NewRequest(http.MethodGet, "/rooms", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var resp RoomListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 {
		t.Fatalf("Total = %d, want 2", resp.Total)
	}
	room2, ok := resp.ChatMap["room2"]
	if !ok {
		t.Fatal("room2 missing from directory")
	}
	if room2.MemberCount != 1 || room2.Icon != "icon.png" {
		t.Errorf("room2 = %+v, want 1 member, icon.png", room2)
	}
}
