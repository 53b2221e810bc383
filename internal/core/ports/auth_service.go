package ports

import (
	"context"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
)

type AuthService interface {
	// Authenticate verifies the credential pair and, on success, binds the
	// identity into the caller's session. Unknown-user and wrong-password
	// failures are indistinguishable (both domain.ErrInvalidCredentials).
	Authenticate(ctx context.Context, binder SessionBinder, username, password string) (*domain.SessionIdentity, error)

	// Register creates an account and places it in the named group.
	Register(ctx context.Context, username, password, group string) (*domain.User, error)

	// Logout unbinds the session identity and invalidates the container.
	Logout(ctx context.Context, binder SessionBinder) error
}

// Authorizer answers group-membership questions for access-control decisions.
type Authorizer interface {
	// IsInGroup never errors: absence of the user or group is a negative
	// authorization result, not a failure.
	IsInGroup(ctx context.Context, userID int64, group string) bool

	// PrimaryGroup returns the first membership in insertion order, or
	// domain.ErrNoMembership when the user belongs to no group.
	PrimaryGroup(ctx context.Context, userID int64) (*domain.Group, error)
}
