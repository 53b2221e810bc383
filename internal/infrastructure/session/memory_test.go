package session

import (
	"context"
	"testing"
)

func TestMemoryContainer_SetGet(t *testing.T) {
	mgr := NewMemoryManager()
	sess, err := mgr.Open(context.Background(), "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if sess.ID() == "" {
		t.Fatal("expected a generated session id")
	}

	if err := sess.Set(context.Background(), "user_id", "42"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := sess.Get(context.Background(), "user_id")
	if err != nil || !ok || v != "42" {
		t.Fatalf("get: v=%q ok=%v err=%v", v, ok, err)
	}

	_, ok, err = sess.Get(context.Background(), "missing")
	if err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryContainer_ReopenSeesState(t *testing.T) {
	mgr := NewMemoryManager()
	first, _ := mgr.Open(context.Background(), "")
	_ = first.Set(context.Background(), "username", "alice")

	second, _ := mgr.Open(context.Background(), first.ID())
	v, ok, err := second.Get(context.Background(), "username")
	if err != nil || !ok || v != "alice" {
		t.Fatalf("expected state visible on reopen, got v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestMemoryContainer_RegenerateIDCarriesState(t *testing.T) {
	mgr := NewMemoryManager()
	sess, _ := mgr.Open(context.Background(), "")
	old := sess.ID()
	_ = sess.Set(context.Background(), "user_id", "7")

	if err := sess.RegenerateID(context.Background()); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if sess.ID() == old {
		t.Fatal("expected a fresh id")
	}

	v, ok, _ := sess.Get(context.Background(), "user_id")
	if !ok || v != "7" {
		t.Fatalf("expected state carried to new id, got v=%q ok=%v", v, ok)
	}

	// The old identifier stops resolving.
	stale, _ := mgr.Open(context.Background(), old)
	if _, ok, _ := stale.Get(context.Background(), "user_id"); ok {
		t.Fatal("old session id must not resolve after regeneration")
	}
}

func TestMemoryContainer_Destroy(t *testing.T) {
	mgr := NewMemoryManager()
	sess, _ := mgr.Open(context.Background(), "")
	id := sess.ID()
	_ = sess.Set(context.Background(), "user_id", "9")

	if err := sess.Destroy(context.Background()); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if sess.ID() != "" {
		t.Fatal("destroyed container must report an empty id")
	}
	// Reads on the destroyed container value report absence.
	if _, ok, _ := sess.Get(context.Background(), "user_id"); ok {
		t.Fatal("destroyed container must not return state")
	}
	// Writes are rejected.
	if err := sess.Set(context.Background(), "user_id", "10"); err == nil {
		t.Fatal("expected set on destroyed container to fail")
	}
	// The backing state is gone for everyone.
	reopened, _ := mgr.Open(context.Background(), id)
	if _, ok, _ := reopened.Get(context.Background(), "user_id"); ok {
		t.Fatal("destroyed state must not survive a reopen")
	}
	// Destroying twice is harmless.
	if err := sess.Destroy(context.Background()); err != nil {
		t.Fatalf("second destroy: %v", err)
	}
}
