package handlers

import (
	"net/http"

	"github.com/lvmingyin/react-chat/internal/models"
)

// RoomListResponse represents the room directory response. ChatMap is the
// same snapshot new connections receive in the `connected` event.
type RoomListResponse struct {
	ChatMap map[string]models.Room `json:"chatMap"`
	Total   int                    `json:"total"`
}

// ListRooms handles the room directory endpoint.
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.coord.RoomDirectory()

	h.JSON(w, http.StatusOK, RoomListResponse{
		ChatMap: rooms,
		Total:   len(rooms),
	})
}
