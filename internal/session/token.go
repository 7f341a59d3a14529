package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiresAt reads the exp claim of a JWT access token without verifying
// its signature. The token stays opaque for all authentication decisions;
// the expiry is only reported in the session status for the dashboard.
func ExpiresAt(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token carries an exp claim in the past.
// Tokens without a readable expiry are never reported as expired.
func Expired(token string) bool {
	exp, ok := ExpiresAt(token)
	if !ok {
		return false
	}
	return time.Now().After(exp)
}
