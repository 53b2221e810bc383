package service

import (
	"context"
	"errors"
	"strings"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
	"github.com/barangan-student/siaa-project09/internal/core/ports"
	"github.com/barangan-student/siaa-project09/internal/pkg/password"
)

// dummyHash is a well-formed bcrypt digest of a throwaway string. When the
// username does not exist, Authenticate still verifies the supplied password
// against it so the unknown-user path costs one full comparison and cannot be
// told apart from a wrong password by timing.
const dummyHash = "$2a$10$Ro0CUfOqk6cXEKf3dyaM7OhSCvnwM9s4wIX9JeLapehKK5YdLxKcm"

// AuthService implements credential verification, registration, and logout.
type AuthService struct {
	store    ports.CredentialStore
	hasher   password.Hasher
	throttle ports.LoginThrottle
}

// NewAuthService wires the credential store, hasher and failed-login throttle.
// A nil throttle disables lockout entirely.
func NewAuthService(store ports.CredentialStore, hasher password.Hasher, throttle ports.LoginThrottle) *AuthService {
	return &AuthService{store: store, hasher: hasher, throttle: throttle}
}

// normalizeUsername trims surrounding whitespace. Case and interior Unicode
// are preserved: usernames are case-sensitive.
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

func (s *AuthService) Authenticate(ctx context.Context, binder ports.SessionBinder, username, plaintext string) (*domain.SessionIdentity, error) {
	username = normalizeUsername(username)
	if username == "" || plaintext == "" {
		return nil, domain.ErrInvalidInput
	}

	if s.throttle != nil {
		// Throttle errors fail open.
		if locked, err := s.throttle.TooManyFailures(ctx, username); err == nil && locked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.store.FindUserByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.hasher.Verify(plaintext, dummyHash)
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		_ = s.throttle.Reset(ctx, username)
	}

	identity := domain.SessionIdentity{UserID: user.ID, Username: user.Username}
	if err := binder.Bind(ctx, identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle != nil {
		_ = s.throttle.RecordFailure(ctx, username)
	}
}

// Register creates the account and its membership in the chosen group. The
// group is resolved first so a bad group name never leaves a user row behind,
// and a duplicate username fails before any membership is written.
func (s *AuthService) Register(ctx context.Context, username, plaintext, group string) (*domain.User, error) {
	username = normalizeUsername(username)
	if username == "" || plaintext == "" || group == "" {
		return nil, domain.ErrInvalidInput
	}

	grp, err := s.store.FindGroupByName(ctx, group)
	if errors.Is(err, domain.ErrGroupNotFound) {
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	id, err := s.store.InsertUser(ctx, username, hash)
	if err != nil {
		return nil, err
	}
	if err := s.store.AddMembership(ctx, id, grp.ID); err != nil {
		return nil, err
	}

	return &domain.User{ID: id, Username: username, PasswordHash: hash}, nil
}

func (s *AuthService) Logout(ctx context.Context, binder ports.SessionBinder) error {
	return binder.Unbind(ctx)
}
