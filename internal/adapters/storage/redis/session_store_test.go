package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

func TestOpen_InvalidURL(t *testing.T) {
	if _, err := Open(context.Background(), "http://not-redis", time.Minute); err == nil {
		t.Fatalf("expected error for non redis url")
	}
}

func TestSessionStore_UnreachableServerReportsError(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	s := New(rdb, time.Minute)
	defer s.Close()

	if _, _, err := s.Get(context.Background(), "abc:auth_token"); err == nil {
		t.Fatalf("expected error from unreachable redis")
	}
	if err := s.Set(context.Background(), "", "x"); err == nil {
		t.Fatalf("expected error for blank key")
	}
	if err := s.Delete(context.Background()); err != nil {
		t.Fatalf("Delete without keys must be a no-op, got %v", err)
	}
}
