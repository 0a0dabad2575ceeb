// Package auth implements account registration, login, and session
// tokens for the Wanderlust API.
package auth

import (
	"context"

	"github.com/Ritpra93/wanderlust/internal/models"
)

// Authenticator is the credential scheme behind registration and login.
// The service layer depends on this interface, not on the scheme, so
// email/password could give way to passkeys or OAuth without touching
// the services.
type Authenticator interface {
	// Register creates an account from an email, display name, and
	// credential in the scheme's format.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching
	// user. Failures do not reveal whether the email is registered.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
