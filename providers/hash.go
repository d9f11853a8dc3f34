package providers

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// Hashing schemes understood by the providers. Plain is the default and matches
// the flat-file format the server historically shipped with.
const (
	HashPlain  = "plain"
	HashSHA256 = "sha256"
	HashBcrypt = "bcrypt"
)

func verifyPassword(scheme, stored, given string) bool {
	switch scheme {
	case HashSHA256:
		sum := sha256.Sum256([]byte(given))
		return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(stored)) == 1
	case HashBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	default:
		return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
	}
}
