package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
//
// The bucket list is not embedded here: it lives in its own table keyed by
// (user_id, place_id) and is loaded through the storage layer. Entries are
// owned exclusively by their user and never shared across users.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique). Used for login.
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized in API responses.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}

// NewUser creates a User with a fresh ID and creation timestamp.
func NewUser(name, email, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
