package models

// User is an identity bound to one active connection. The ID is the
// connection id assigned by the transport and becomes invalid once the
// connection closes.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	CurrRoom string `json:"currChat"` // empty means not in any room
}
