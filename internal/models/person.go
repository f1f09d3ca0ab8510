package models

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// maxNameLen bounds person display names.
const maxNameLen = 100

var (
	// ErrNameRequired is returned when a person has no display name.
	ErrNameRequired = errors.New("name is required")

	// ErrNameTooLong is returned when a display name exceeds maxNameLen runes.
	ErrNameTooLong = errors.New("name is too long")
)

// Person represents a participant in the shared ledger.
//
// People are the names expenses are split between. They are not login
// accounts; see User for authentication.
type Person struct {
	// ID is the unique identifier for the person (UUID format).
	ID string

	// Name is the display name (e.g., "Alice").
	// Names are unique within the ledger.
	Name string

	// CreatedAt is the Unix timestamp when the person was added.
	CreatedAt int64
}

// Validate checks that the person can be persisted.
func (p *Person) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return ErrNameTooLong
	}
	return nil
}
