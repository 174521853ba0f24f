package auth

import (
	"context"
	"errors"
)

// Claves fijas, equivalentes al storage del navegador.
const (
	TokenKey = "auth_token"
	UserKey  = "user"
)

var ErrStoreUnavailable = errors.New("session store unavailable")

// Session es el contexto de sesión que se inyecta al gateway.
// Token lo leen todas las llamadas; SetToken/Clear solo login/logout/401.
type Session interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	User(ctx context.Context) (*User, error)
	SetUser(ctx context.Context, u *User) error
	Clear(ctx context.Context) error
}

// Store es un key/value simple. Get devuelve ok=false si la clave no existe.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}
