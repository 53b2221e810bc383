package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, plaintext := range []string{"password", "s3cret!", "päss wörd", "日本語パスワード"} {
		hash, err := h.Hash(plaintext)
		if err != nil {
			t.Fatalf("hash %q: %v", plaintext, err)
		}
		if !h.Verify(plaintext, hash) {
			t.Fatalf("verify failed for %q", plaintext)
		}
		if h.Verify(plaintext+"x", hash) {
			t.Fatalf("verify accepted wrong password for %q", plaintext)
		}
	}
}

func TestBcryptHasher_HashIsSelfDescribing(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	// Algorithm, cost, and salt are all encoded in the digest string.
	if !strings.HasPrefix(hash, "$2a$") {
		t.Fatalf("expected bcrypt-encoded digest, got %q", hash)
	}

	// Hashing the same plaintext twice salts differently.
	again, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == again {
		t.Fatal("expected distinct salts for repeated hashes")
	}
}

func TestBcryptHasher_VerifyRejectsGarbageHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatal("verify accepted a malformed hash")
	}
	if h.Verify("anything", "") {
		t.Fatal("verify accepted an empty hash")
	}
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	// Out-of-range costs fall back to the default rather than failing later.
	for _, cost := range []int{-1, 0, 99} {
		h := NewBcryptHasher(cost)
		if h.cost != bcrypt.DefaultCost {
			t.Fatalf("cost %d: expected default cost %d, got %d", cost, bcrypt.DefaultCost, h.cost)
		}
	}
}
