package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pet-care-dashboard/internal/ports/auth"
)

// StoreSession implementa auth.Session sobre un auth.Store, con prefijo por sesión
// (cookie del dashboard o perfil del CLI).
type StoreSession struct {
	store  auth.Store
	prefix string
}

func NewStoreSession(store auth.Store, prefix string) *StoreSession {
	return &StoreSession{store: store, prefix: strings.TrimSpace(prefix)}
}

func (s *StoreSession) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s *StoreSession) Token(ctx context.Context) (string, error) {
	v, ok, err := s.store.Get(ctx, s.key(auth.TokenKey))
	if err != nil {
		return "", fmt.Errorf("%w: %w", auth.ErrStoreUnavailable, err)
	}
	if !ok {
		return "", nil
	}
	return v, nil
}

func (s *StoreSession) SetToken(ctx context.Context, token string) error {
	if err := s.store.Set(ctx, s.key(auth.TokenKey), token); err != nil {
		return fmt.Errorf("%w: %w", auth.ErrStoreUnavailable, err)
	}
	return nil
}

// User devuelve nil si no hay usuario cacheado o si el valor guardado está corrupto.
func (s *StoreSession) User(ctx context.Context) (*auth.User, error) {
	v, ok, err := s.store.Get(ctx, s.key(auth.UserKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", auth.ErrStoreUnavailable, err)
	}
	if !ok || v == "" {
		return nil, nil
	}
	var u auth.User
	if err := json.Unmarshal([]byte(v), &u); err != nil {
		return nil, nil
	}
	return &u, nil
}

func (s *StoreSession) SetUser(ctx context.Context, u *auth.User) error {
	if u == nil {
		return s.store.Delete(ctx, s.key(auth.UserKey))
	}
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := s.store.Set(ctx, s.key(auth.UserKey), string(b)); err != nil {
		return fmt.Errorf("%w: %w", auth.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *StoreSession) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key(auth.TokenKey), s.key(auth.UserKey)); err != nil {
		return fmt.Errorf("%w: %w", auth.ErrStoreUnavailable, err)
	}
	return nil
}
