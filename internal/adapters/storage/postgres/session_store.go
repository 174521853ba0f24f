package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

const schema = `
CREATE TABLE IF NOT EXISTS dashboard_kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	expires_at TIMESTAMPTZ NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// SessionStore implementa auth.Store sobre la tabla dashboard_kv.
type SessionStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewSessionStore(db *sql.DB, ttl time.Duration) *SessionStore {
	return &SessionStore{db: db, ttl: ttl, now: time.Now}
}

// EnsureSchema crea la tabla si no existe.
func (s *SessionStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *SessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT value
		FROM dashboard_kv
		WHERE key = $1
		  AND (expires_at IS NULL OR expires_at > $2)
	`, key, s.now().UTC())

	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (s *SessionStore) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("key required")
	}

	now := s.now().UTC()
	var exp sql.NullTime
	if s.ttl > 0 {
		exp = sql.NullTime{Time: now.Add(s.ttl), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO dashboard_kv (key, value, expires_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at
	`, key, value, exp, now)
	return err
}

func (s *SessionStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, `DELETE FROM dashboard_kv WHERE key = $1`, k); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Sweep borra filas vencidas.
func (s *SessionStore) Sweep(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM dashboard_kv
		WHERE expires_at IS NOT NULL AND expires_at <= $1
	`, s.now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
