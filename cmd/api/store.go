package main

import (
	"context"
	"database/sql"
	"time"

	"pet-care-dashboard/internal/adapters/storage/file"
	"pet-care-dashboard/internal/adapters/storage/memory"
	"pet-care-dashboard/internal/adapters/storage/postgres"
	"pet-care-dashboard/internal/adapters/storage/redis"
	"pet-care-dashboard/internal/config"
	"pet-care-dashboard/internal/platform/logger"
	"pet-care-dashboard/internal/ports/auth"
)

const sweepInterval = 5 * time.Minute

// sessionStore agrupa el store elegido con su limpieza periódica y su cierre.
type sessionStore struct {
	auth.Store
	sweep func(ctx context.Context)
	close func()
}

func openStore(ctx context.Context, cfg config.Config, log logger.Logger) (sessionStore, error) {
	ttl := cfg.SessionTTL.Std()

	switch cfg.SessionBackend {
	case config.SessionRedis:
		s, err := redis.Open(ctx, cfg.RedisURL, ttl)
		if err != nil {
			return sessionStore{}, err
		}
		// redis vence las claves solo
		return sessionStore{Store: s, close: func() { _ = s.Close() }}, nil

	case config.SessionPostgres:
		db, err := postgres.Open(ctx, cfg.DBDSN)
		if err != nil {
			return sessionStore{}, err
		}
		s := postgres.NewSessionStore(db, ttl)
		if err := s.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return sessionStore{}, err
		}
		return sessionStore{
			Store: s,
			sweep: func(ctx context.Context) {
				every(ctx, sweepInterval, func() {
					if n, err := s.Sweep(ctx); err != nil {
						log.Warn("session sweep failed", map[string]any{"err": err})
					} else if n > 0 {
						log.Debug("expired sessions removed", map[string]any{"count": n})
					}
				})
			},
			close: func() { closeDB(db, log) },
		}, nil

	case config.SessionFile:
		path := cfg.SessionFile
		if path == "" {
			p, err := file.DefaultPath()
			if err != nil {
				return sessionStore{}, err
			}
			path = p
		}
		return sessionStore{Store: file.NewSessionStore(path), close: func() {}}, nil

	default:
		s := memory.NewSessionStore(ttl)
		return sessionStore{
			Store: s,
			sweep: func(ctx context.Context) {
				every(ctx, sweepInterval, func() { s.Sweep() })
			},
			close: func() {},
		}, nil
	}
}

func every(ctx context.Context, d time.Duration, f func()) {
	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			f()
		}
	}
}

func closeDB(db *sql.DB, log logger.Logger) {
	if err := db.Close(); err != nil {
		log.Warn("close db failed", map[string]any{"err": err})
	}
}
