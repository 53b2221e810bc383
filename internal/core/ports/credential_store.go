package ports

import (
	"context"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
)

// SeedUser pairs a default account with the seed group it belongs to.
// PasswordHash must already be hashed; plaintext never reaches the store.
type SeedUser struct {
	Username     string
	PasswordHash string
	Group        string
}

// CredentialStore defines the persistence contract for users, groups, and
// memberships. Implementations must enforce username/name uniqueness at the
// storage level so duplicate detection is atomic, never check-then-insert.
type CredentialStore interface {
	// EnsureSchema idempotently creates the relations if absent. Safe to
	// invoke concurrently by multiple instances at startup.
	EnsureSchema(ctx context.Context) error

	// SeedDefaults inserts the given groups and accounts only when not
	// already present, keyed by unique name/username. Repeated invocation
	// must not fail or duplicate rows.
	SeedDefaults(ctx context.Context, groups []string, users []SeedUser) error

	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindGroupByName(ctx context.Context, name string) (*domain.Group, error)

	// InsertUser creates a user and returns its id. Fails with
	// domain.ErrUserExists when the username is already taken.
	InsertUser(ctx context.Context, username, passwordHash string) (int64, error)

	// AddMembership is idempotent: inserting an existing pair is a no-op.
	AddMembership(ctx context.Context, userID, groupID int64) error

	// MembershipsOf returns the user's groups in membership insertion order;
	// the head of the sequence is the primary group candidate.
	MembershipsOf(ctx context.Context, userID int64) ([]domain.Group, error)

	// IsMember reports whether the user belongs to the named group. Unknown
	// users or groups read as false, not as an error.
	IsMember(ctx context.Context, userID int64, groupName string) (bool, error)
}
