package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/stq-dashboard-go/internal/gateway"
	"github.com/jengzang/stq-dashboard-go/internal/models"
	"github.com/jengzang/stq-dashboard-go/internal/session"
)

// authPlatform emulates the platform's user endpoints with a single
// valid access token that can be rotated through the refresh endpoint.
type authPlatform struct {
	mu      sync.Mutex
	access  string
	refresh string

	refreshCalls atomic.Int32
}

func (p *authPlatform) currentAccess() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.access
}

func (p *authPlatform) setAccess(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.access = token
}

func (p *authPlatform) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/users/login/", func(w http.ResponseWriter, r *http.Request) {
		var form models.LoginForm
		if json.NewDecoder(r.Body).Decode(&form) != nil || form.Email != "op@example.com" || form.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(models.AuthResult{
			User:    models.User{Username: "operator", Email: form.Email},
			Access:  p.currentAccess(),
			Refresh: p.refresh,
		})
	})

	mux.HandleFunc("/api/users/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		p.refreshCalls.Add(1)
		var payload struct {
			Refresh string `json:"refresh"`
		}
		if json.NewDecoder(r.Body).Decode(&payload) != nil || payload.Refresh != p.refresh {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		rotated := "rotated-" + p.currentAccess()
		p.setAccess(rotated)
		json.NewEncoder(w).Encode(map[string]string{"access": rotated})
	})

	mux.HandleFunc("/api/users/me/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+p.currentAccess() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(models.User{Username: "operator", Role: "operator"})
	})

	return mux
}

func TestAuthAPI_LoginThenCurrentUser(t *testing.T) {
	platform := &authPlatform{access: "access-1", refresh: "refresh-1"}
	server := httptest.NewServer(platform.handler())
	defer server.Close()

	store := session.NewMemoryStore()
	gw := gateway.NewClient(server.URL, store, time.Second)
	api := NewAuthAPI(gw)

	result, err := api.Login(context.Background(), models.LoginForm{Email: "op@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "operator", result.User.Username)

	sess := store.Get()
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "access-1", sess.AccessToken)
	assert.Equal(t, "refresh-1", sess.RefreshToken)

	user, err := api.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "operator", user.Username)
	assert.Equal(t, int32(0), platform.refreshCalls.Load())
}

func TestAuthAPI_ExpiredTokenRecoveredTransparently(t *testing.T) {
	platform := &authPlatform{access: "access-1", refresh: "refresh-1"}
	server := httptest.NewServer(platform.handler())
	defer server.Close()

	store := session.NewMemoryStore()
	gw := gateway.NewClient(server.URL, store, time.Second)
	api := NewAuthAPI(gw)

	_, err := api.Login(context.Background(), models.LoginForm{Email: "op@example.com", Password: "secret"})
	require.NoError(t, err)

	// 平台端令牌轮换后，本地的 access token 随即失效
	platform.setAccess("access-2")

	user, err := api.CurrentUser(context.Background())
	require.NoError(t, err, "the caller never observes the expiry")
	assert.Equal(t, "operator", user.Username)

	assert.Equal(t, int32(1), platform.refreshCalls.Load())
	sess := store.Get()
	assert.Equal(t, "rotated-access-2", sess.AccessToken)
	assert.Equal(t, "refresh-1", sess.RefreshToken)
}

func TestAuthAPI_BadCredentials(t *testing.T) {
	platform := &authPlatform{access: "access-1", refresh: "refresh-1"}
	server := httptest.NewServer(platform.handler())
	defer server.Close()

	store := session.NewMemoryStore()
	api := NewAuthAPI(gateway.NewClient(server.URL, store, time.Second))

	_, err := api.Login(context.Background(), models.LoginForm{Email: "op@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.False(t, store.Get().IsAuthenticated, "failed login leaves no session behind")
}

func TestAuthAPI_Logout(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Set("access", "refresh"))

	api := NewAuthAPI(gateway.NewClient("http://unused", store, time.Second))
	require.NoError(t, api.Logout())
	assert.False(t, store.Get().IsAuthenticated)
}
