// Package redis guarda las sesiones del dashboard en Redis, con TTL por clave.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

const defaultPrefix = "petcare:"

type SessionStore struct {
	rdb    goredis.UniversalClient
	ttl    time.Duration
	prefix string
}

// Open parsea una URL redis:// y verifica la conexión.
func Open(ctx context.Context, url string, ttl time.Duration) (*SessionStore, error) {
	opts, err := goredis.ParseURL(strings.TrimSpace(url))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return New(rdb, ttl), nil
}

func New(rdb goredis.UniversalClient, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl, prefix: defaultPrefix}
}

func (s *SessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Set renueva el TTL en cada escritura; ttl <= 0 no expira.
func (s *SessionStore) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key required")
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	return s.rdb.Set(ctx, s.prefix+key, value, ttl).Err()
}

func (s *SessionStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, s.prefix+k)
	}
	return s.rdb.Del(ctx, full...).Err()
}

func (s *SessionStore) Close() error {
	return s.rdb.Close()
}
