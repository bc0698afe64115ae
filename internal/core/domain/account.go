package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountExists is returned when a signup collides with an existing email.
	ErrAccountExists = errors.New("account already exists")
	// ErrAccountNotFound is returned when no account matches the lookup key.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidCredentials covers both unknown-email and wrong-password login
	// failures. The two cases are deliberately indistinguishable so the login
	// endpoint cannot be used to enumerate registered emails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmptyCommand is returned when a command request carries no text.
	ErrEmptyCommand = errors.New("command must not be empty")
)

// Account models a registered user. The password hash is write-only: it never
// appears in JSON output and is never handed back to API callers.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
