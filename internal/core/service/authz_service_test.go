package service

import (
	"context"
	"errors"
	"testing"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
)

func TestAuthzService_IsInGroup(t *testing.T) {
	store := newStubStore()
	admin := store.addGroup(domain.GroupAdmin)
	store.addGroup(domain.GroupEmployee)

	userID, _ := store.InsertUser(context.Background(), "root", "hash")
	_ = store.AddMembership(context.Background(), userID, admin.ID)

	authz := NewAuthzService(store)

	if !authz.IsInGroup(context.Background(), userID, domain.GroupAdmin) {
		t.Fatal("expected admin membership")
	}
	if authz.IsInGroup(context.Background(), userID, domain.GroupEmployee) {
		t.Fatal("did not expect employee membership")
	}
	// Unknown user and unknown group are negative results, not errors.
	if authz.IsInGroup(context.Background(), 9999999, domain.GroupAdmin) {
		t.Fatal("unknown user must not be authorized")
	}
	if authz.IsInGroup(context.Background(), userID, "NoSuchGroup") {
		t.Fatal("unknown group must not be authorized")
	}
}

func TestAuthzService_IsInGroup_StoreFailureReadsAsDenied(t *testing.T) {
	store := newStubStore()
	store.failWith = errors.New("boom")

	if NewAuthzService(store).IsInGroup(context.Background(), 1, domain.GroupAdmin) {
		t.Fatal("store failure must read as not authorized")
	}
}

func TestAuthzService_PrimaryGroup_InsertionOrder(t *testing.T) {
	store := newStubStore()
	employee := store.addGroup(domain.GroupEmployee)
	admin := store.addGroup(domain.GroupAdmin)

	userID, _ := store.InsertUser(context.Background(), "heidi", "hash")
	_ = store.AddMembership(context.Background(), userID, employee.ID)
	_ = store.AddMembership(context.Background(), userID, admin.ID)

	g, err := NewAuthzService(store).PrimaryGroup(context.Background(), userID)
	if err != nil {
		t.Fatalf("primary group: %v", err)
	}
	if g.Name != domain.GroupEmployee {
		t.Fatalf("expected first-inserted membership %q as primary, got %q", domain.GroupEmployee, g.Name)
	}
}

func TestAuthzService_PrimaryGroup_NoMembership(t *testing.T) {
	store := newStubStore()
	userID, _ := store.InsertUser(context.Background(), "ivan", "hash")

	if _, err := NewAuthzService(store).PrimaryGroup(context.Background(), userID); err != domain.ErrNoMembership {
		t.Fatalf("expected ErrNoMembership, got %v", err)
	}
}
