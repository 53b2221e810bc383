package ports

import "context"

// LoginThrottle counts failed login attempts per username and reports when a
// username has exceeded its allowance. Counters decay on their own; Reset
// clears one eagerly after a successful login.
type LoginThrottle interface {
	// TooManyFailures reports whether the username is currently locked out.
	TooManyFailures(ctx context.Context, username string) (bool, error)

	// RecordFailure adds one failed attempt for the username.
	RecordFailure(ctx context.Context, username string) error

	// Reset discards the username's failure count.
	Reset(ctx context.Context, username string) error
}
