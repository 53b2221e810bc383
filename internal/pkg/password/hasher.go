// Package password provides one-way salted hashing and constant-time
// verification of credentials. The digest is self-describing (algorithm,
// cost, and salt travel inside the encoded string), so verification never
// needs a separately stored salt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher is the hashing contract consumed by the authentication service.
type Hasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. Comparison cost does
	// not depend on where the mismatch occurs.
	Verify(plaintext, hash string) bool
}

// BcryptHasher hashes with bcrypt, a deliberately slow adaptive scheme.
// The zero cost falls back to bcrypt.DefaultCost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given work factor. Costs outside
// bcrypt's supported range are replaced with the default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("password hash: %w", err)
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
