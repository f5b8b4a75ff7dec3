// Package password wraps bcrypt hashing behind the two operations the rest
// of the system is allowed to perform: hash a new password and verify a
// candidate against a stored hash.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// maxBytes is bcrypt's input limit; bytes past it never affect the hash, so
// both Hash and Verify truncate identically.
const maxBytes = 72

var ErrEmptyPassword = errors.New("password must not be empty")

// Hash returns a salted bcrypt hash of raw. Output differs between calls for
// the same input; use Verify to compare.
func Hash(raw string) (string, error) {
	if raw == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword(truncate(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether raw matches the stored hash. Any failure, including
// a malformed hash, reads as a mismatch.
func Verify(raw, hash string) bool {
	if raw == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(raw)) == nil
}

func truncate(raw string) []byte {
	b := []byte(raw)
	if len(b) > maxBytes {
		b = b[:maxBytes]
	}
	return b
}
