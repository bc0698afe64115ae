package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// hashCost is fixed at build time; it is not negotiated per call.
const hashCost = bcrypt.DefaultCost

// ErrEmptyPassword is returned when a caller tries to hash a blank password.
var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword derives a salted bcrypt hash. Each call draws a fresh salt, so
// equal passwords produce different hashes that all verify.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether password matches hash. A malformed hash is a
// mismatch, never an error: login code treats both identically anyway. The
// underlying comparison is bcrypt's constant-time check.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
