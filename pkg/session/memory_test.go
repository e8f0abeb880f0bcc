package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(Options{TTL: time.Hour})

	token, err := store.Create(context.Background(), Session{UserID: 7, UserName: "Layla", IsAdmin: false})
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	sess, err := store.Get(context.Background(), token)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if sess == nil {
		t.Fatalf("expected session to exist")
	}
	if sess.UserID != 7 || sess.UserName != "Layla" || sess.IsAdmin {
		t.Fatalf("unexpected session %+v", sess)
	}
}

func TestMemoryStoreUnknownTokenIsAnonymous(t *testing.T) {
	store := NewMemoryStore(Options{})

	sess, err := store.Get(context.Background(), "no-such-token")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected nil session for unknown token")
	}

	sess, err = store.Get(context.Background(), "")
	if err != nil || sess != nil {
		t.Fatalf("expected anonymous for empty token, got %+v %v", sess, err)
	}
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore(Options{})

	token, err := store.Create(context.Background(), Session{UserID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.Delete(context.Background(), token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(context.Background(), token); err != nil {
		t.Fatalf("second delete: %v", err)
	}

	sess, err := store.Get(context.Background(), token)
	if err != nil || sess != nil {
		t.Fatalf("expected session gone, got %+v %v", sess, err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(Options{TTL: time.Minute})
	current := time.Now()
	store.now = func() time.Time { return current }

	token, err := store.Create(context.Background(), Session{UserID: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	current = current.Add(2 * time.Minute)

	sess, err := store.Get(context.Background(), token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected expired session to be treated as anonymous")
	}
}

func TestNewTokenIsOpaqueAndUnique(t *testing.T) {
	first, err := NewToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	second, err := NewToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if first == second {
		t.Fatalf("expected unique tokens")
	}
	if len(first) < 40 {
		t.Fatalf("token too short: %q", first)
	}
}
