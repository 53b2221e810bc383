package domain

import "errors"

// ErrStorageUnavailable signals the credential store cannot be opened or
// reached in time. Fatal at startup; there is no degraded mode.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrUserExists is the registration conflict for an already-taken username.
var ErrUserExists = errors.New("username already exists")

// ErrInvalidCredentials covers both "no such user" and "wrong password".
// Callers must never be able to tell the two apart.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrInvalidInput rejects malformed authentication input (empty username
// after trimming, empty password, unknown registration group).
var ErrInvalidInput = errors.New("invalid input")

// ErrTooManyAttempts rejects a login while the username is locked out after
// repeated failures. The lock clears on its own when the window expires.
var ErrTooManyAttempts = errors.New("too many failed login attempts")

// Lookup misses. Internal: handlers translate these into booleans or generic
// failures, never into raw errors shown to end users.
var ErrUserNotFound = errors.New("user not found")
var ErrGroupNotFound = errors.New("group not found")
var ErrNoMembership = errors.New("user has no group membership")
