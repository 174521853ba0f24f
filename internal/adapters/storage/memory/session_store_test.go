package memory

import (
	"context"
	"testing"
	"time"
)

func TestSessionStore_SetGetDeleteAndExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	s := NewSessionStore(time.Hour)
	s.now = func() time.Time { return now }

	if err := s.Set(ctx, "abc:auth_token", "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok, _ := s.Get(ctx, "abc:auth_token"); !ok || v != "tok" {
		t.Fatalf("expected tok, got %q %v", v, ok)
	}

	now = now.Add(2 * time.Hour)
	if _, ok, _ := s.Get(ctx, "abc:auth_token"); ok {
		t.Fatalf("expected entry to be expired")
	}
	if n := s.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept entry, got %d", n)
	}

	_ = s.Set(ctx, "a", "1")
	_ = s.Set(ctx, "b", "2")
	_ = s.Delete(ctx, "a", "b", "missing")
	if _, ok, _ := s.Get(ctx, "b"); ok {
		t.Fatalf("expected b deleted")
	}
	if err := s.Set(ctx, " ", "x"); err == nil {
		t.Fatalf("expected error for blank key")
	}
}
