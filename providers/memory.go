package providers

import (
	"github.com/portside/ftpd/models"
)

// Memory is an in-process credential table. Register every user before the
// server starts; the table is not safe for concurrent mutation and the server
// only ever reads from it.
type Memory struct {
	scheme string
	users  map[string]models.User
}

// NewMemory creates an empty table using the given hashing scheme
// (HashPlain, HashSHA256 or HashBcrypt).
func NewMemory(scheme string) *Memory {
	if scheme == "" {
		scheme = HashPlain
	}
	return &Memory{
		scheme: scheme,
		users:  make(map[string]models.User),
	}
}

// Register adds a user record. The password is stored as given, so for hashed
// schemes it must already be the hash.
func (m *Memory) Register(user models.User) {
	m.users[user.Username] = user
}

func (m *Memory) Lookup(username string) (models.User, bool) {
	u, ok := m.users[username]
	return u, ok
}

func (m *Memory) Verify(username, password string) bool {
	u, ok := m.users[username]
	if !ok {
		return false
	}
	return verifyPassword(m.scheme, u.Password, password)
}
