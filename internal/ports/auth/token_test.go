package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "42",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	if !TokenExpired(signed(t, now.Add(-time.Minute)), now) {
		t.Fatalf("expected expired jwt")
	}
	if TokenExpired(signed(t, now.Add(time.Hour)), now) {
		t.Fatalf("expected valid jwt")
	}
	if TokenExpired("12|plainSanctumToken", now) {
		t.Fatalf("opaque tokens are never expired client-side")
	}
	if TokenExpired("", now) {
		t.Fatalf("empty token is not 'expired'")
	}
}
