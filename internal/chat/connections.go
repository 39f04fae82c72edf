package chat

import "github.com/lvmingyin/react-chat/internal/models"

// ConnectionRegistry maps live connection ids to their logged-in users.
// It performs no validation and no locking; the owning Coordinator
// serializes all access.
type ConnectionRegistry struct {
	users map[string]*models.User
}

// NewConnectionRegistry returns an empty registry.
func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{users: make(map[string]*models.User)}
}

// Set registers or replaces the user bound to a connection.
func (r *ConnectionRegistry) Set(connID string, u *models.User) {
	r.users[connID] = u
}

// Get returns the user bound to a connection, if any.
func (r *ConnectionRegistry) Get(connID string) (*models.User, bool) {
	u, ok := r.users[connID]
	return u, ok
}

// Remove deletes the entry for a connection. Removing an absent entry is
// a no-op.
func (r *ConnectionRegistry) Remove(connID string) {
	delete(r.users, connID)
}

// Len returns the number of logged-in connections.
func (r *ConnectionRegistry) Len() int {
	return len(r.users)
}
