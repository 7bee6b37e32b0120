package auth

import (
	"context"

	"github.com/mmynk/expenseflow/internal/models"
)

// Authenticator registers users and verifies their credentials. The credential format
// depends on the implementation.
type Authenticator interface {
	// Register creates a user account. The returned user has its ID assigned.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user owning email if credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential reports whether credential is acceptable for registration.
	ValidateCredential(credential string) error
}
