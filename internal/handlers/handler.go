package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lvmingyin/react-chat/internal/chat"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	coord *chat.Coordinator
	start time.Time
}

// NewHandler creates a new Handler backed by the given coordinator.
func NewHandler(coord *chat.Coordinator) *Handler {
	return &Handler{coord: coord, start: time.Now()}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
