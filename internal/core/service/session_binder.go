package service

import (
	"context"
	"strconv"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
	"github.com/barangan-student/siaa-project09/internal/core/ports"
)

// Keys written into the session container. At most one identity is bound per
// container.
const (
	sessionKeyUserID   = "user_id"
	sessionKeyUsername = "username"
)

// SessionBinder maps an authenticated identity onto one session container for
// the duration of a request.
type SessionBinder struct {
	sess ports.SessionContainer
}

func NewSessionBinder(sess ports.SessionContainer) *SessionBinder {
	return &SessionBinder{sess: sess}
}

// Bind rotates the container identifier before writing the identity, so a
// pre-login session id fixed by an attacker never survives authentication.
func (b *SessionBinder) Bind(ctx context.Context, identity domain.SessionIdentity) error {
	if err := b.sess.RegenerateID(ctx); err != nil {
		return err
	}
	if err := b.sess.Set(ctx, sessionKeyUserID, strconv.FormatInt(identity.UserID, 10)); err != nil {
		return err
	}
	return b.sess.Set(ctx, sessionKeyUsername, identity.Username)
}

// CurrentIdentity returns the bound principal, or nil for an anonymous or
// torn-down session. An unparsable user_id value reads as anonymous rather
// than failing the request.
func (b *SessionBinder) CurrentIdentity(ctx context.Context) (*domain.SessionIdentity, error) {
	raw, ok, err := b.sess.Get(ctx, sessionKeyUserID)
	if err != nil || !ok {
		return nil, err
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, nil
	}
	username, _, err := b.sess.Get(ctx, sessionKeyUsername)
	if err != nil {
		return nil, err
	}
	return &domain.SessionIdentity{UserID: userID, Username: username}, nil
}

func (b *SessionBinder) IsAuthenticated(ctx context.Context) bool {
	identity, err := b.CurrentIdentity(ctx)
	return err == nil && identity != nil
}

// Unbind clears all session state and invalidates the container.
func (b *SessionBinder) Unbind(ctx context.Context) error {
	return b.sess.Destroy(ctx)
}
