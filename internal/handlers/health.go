package handlers

import (
	"net/http"
	"time"
)

const version = "1.0.0"

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	Connections int    `json:"connections"`
	Users       int    `json:"users"`
	Rooms       int    `json:"rooms"`
	Timestamp   string `json:"timestamp"`
}

// Health handles the health check endpoint. All state is in-process, so
// there are no dependency checks; the document reports live counts.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	conns, users, rooms := h.coord.Stats()

	h.JSON(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Version:     version,
		Uptime:      time.Since(h.start).Round(time.Second).String(),
		Connections: conns,
		Users:       users,
		Rooms:       rooms,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})
}
