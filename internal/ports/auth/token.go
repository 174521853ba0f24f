package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpired reporta true solo si el token es un JWT con exp en el pasado.
// Tokens opacos (p.ej. Sanctum "id|hash") nunca se consideran expirados acá;
// la expiración real la detecta el 401 del backend.
func TokenExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}
