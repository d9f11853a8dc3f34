package models

// User is a single credential record. Records are immutable once the provider
// that owns them has been handed to a server.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
