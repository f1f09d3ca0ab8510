package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered login account.
//
// Users authenticate against the API; they are distinct from Person,
// which identifies a ledger participant. A single account may manage a
// ledger with any number of people in it.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique, lowercased).
	Email string

	// DisplayName is the name shown for the account.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never expose this outside the auth and storage layers.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last account change.
	UpdatedAt int64
}

// NewUser builds a user with a fresh ID and creation timestamps.
// The email is normalized to lower case so lookups are case-insensitive.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
