package ports

import (
	"context"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
)

// SessionContainer is the external per-client key-value store holding the
// bound identity between requests. The core only ever touches this key space;
// transport (cookies, expiry policy) belongs to the container's owner.
type SessionContainer interface {
	// ID returns the container's current identifier, or "" once destroyed.
	ID() string

	// Get returns the value for key and whether it was present. A destroyed
	// container reports every key as absent.
	Get(ctx context.Context, key string) (string, bool, error)

	Set(ctx context.Context, key, value string) error

	// RegenerateID swaps the container onto a fresh identifier, carrying
	// existing state over. Called on login to prevent session fixation.
	RegenerateID(ctx context.Context) error

	// Destroy clears all state and invalidates the container. Subsequent
	// reads return nothing even if the same container value is reused.
	Destroy(ctx context.Context) error
}

// SessionManager opens the container for a given identifier. An empty or
// unknown id yields a fresh, empty container.
type SessionManager interface {
	Open(ctx context.Context, id string) (SessionContainer, error)
}

// SessionBinder maps an authenticated identity onto a session container and
// tears it down on logout.
type SessionBinder interface {
	// Bind rotates the container's identifier, then stores the identity.
	Bind(ctx context.Context, identity domain.SessionIdentity) error

	// CurrentIdentity returns the bound principal, or nil when the session
	// is anonymous.
	CurrentIdentity(ctx context.Context) (*domain.SessionIdentity, error)

	IsAuthenticated(ctx context.Context) bool

	// Unbind destroys the underlying container.
	Unbind(ctx context.Context) error
}
