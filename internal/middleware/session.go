package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const SessionCookie = "petcare_session"

type ctxKey string

const sessionKey ctxKey = "session_id"

type SessionOptions struct {
	// Secure marca la cookie solo-HTTPS (producción detrás de TLS).
	Secure bool
	MaxAge time.Duration
}

// Session asegura que cada request tenga un id de sesión del dashboard.
// Si la cookie falta o no es un uuid válido se emite una nueva.
func Session(opts SessionOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(SessionCookie); err == nil {
				if u, err := uuid.Parse(c.Value); err == nil {
					id = u.String()
				}
			}

			if id == "" {
				id = uuid.NewString()
				c := &http.Cookie{
					Name:     SessionCookie,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				}
				if opts.MaxAge > 0 {
					c.MaxAge = int(opts.MaxAge.Seconds())
				}
				http.SetCookie(w, c)
			}

			ctx := context.WithValue(r.Context(), sessionKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionKey).(string)
	return id, ok && id != ""
}

// WithSessionID es para tests y para el CLI, que no pasan por la cookie.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}
