package service

import (
	"context"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
	"github.com/barangan-student/siaa-project09/internal/core/ports"
)

// AuthzService answers group-membership queries against the credential store.
type AuthzService struct {
	store ports.CredentialStore
}

func NewAuthzService(store ports.CredentialStore) *AuthzService {
	return &AuthzService{store: store}
}

// IsInGroup reports whether the user belongs to the named group. Nonexistent
// users and groups read as false: absence is a negative authorization result,
// never an error surfaced to the caller.
func (s *AuthzService) IsInGroup(ctx context.Context, userID int64, group string) bool {
	ok, err := s.store.IsMember(ctx, userID, group)
	if err != nil {
		return false
	}
	return ok
}

// PrimaryGroup returns the user's first membership in insertion order. This
// is the group the original login flow routes on.
func (s *AuthzService) PrimaryGroup(ctx context.Context, userID int64) (*domain.Group, error) {
	groups, err := s.store.MembershipsOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, domain.ErrNoMembership
	}
	return &groups[0], nil
}
