package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// timeNow is a test seam.
var timeNow = time.Now

// TokenExpired reports whether a persisted token is a JWT whose exp claim
// has passed. The token is treated as opaque otherwise: anything that does
// not parse as a JWT, or carries no exp claim, is assumed still valid and
// left for the backend to judge.
func TokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(timeNow())
}
