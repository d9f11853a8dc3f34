package interfaces

import "github.com/portside/ftpd/models"

// UserProvider is the credential store consumed by the server. Implementations
// are loaded once at startup and must be read-only afterwards; the server never
// mutates them.
type UserProvider interface {
	// Lookup returns the record for an exact username match.
	Lookup(username string) (models.User, bool)

	// Verify reports whether the password matches the stored credential.
	Verify(username, password string) bool
}
