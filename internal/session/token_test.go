package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"sub": "operator", "exp": exp.Unix()})

	got, ok := ExpiresAt(token)
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestExpiresAt_NoClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "operator"})

	_, ok := ExpiresAt(token)
	assert.False(t, ok)
}

func TestExpiresAt_NotAJWT(t *testing.T) {
	_, ok := ExpiresAt("opaque-session-token")
	assert.False(t, ok)
}

func TestExpired(t *testing.T) {
	past := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})
	future := signedToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Minute).Unix()})

	assert.True(t, Expired(past))
	assert.False(t, Expired(future))
	assert.False(t, Expired("opaque-session-token"), "unreadable tokens are never reported expired")
}
