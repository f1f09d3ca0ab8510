// Package auth provides account registration, credential checking and
// session tokens for the API.
//
// The two halves are deliberately separate: Authenticator answers who
// a credential belongs to, JWTManager turns that answer into a bearer
// token the middleware can verify without touching storage.
package auth

import (
	"context"

	"github.com/splitpot/splitpot/internal/models"
)

// Authenticator registers and verifies accounts. Implementations own
// the credential format; callers pass it through opaquely, so a
// passkey or OAuth implementation could replace the password one
// without the service layer noticing.
type Authenticator interface {
	// Register creates an account from an email, a display name and a
	// credential the implementation knows how to verify later.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the account the credential belongs to. The
	// error never reveals whether the email or the credential was the
	// wrong half.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects credentials that would not be
	// accepted at registration time.
	ValidateCredential(credential string) error
}
