package platform

import (
	"context"

	"github.com/jengzang/stq-dashboard-go/internal/gateway"
	"github.com/jengzang/stq-dashboard-go/internal/models"
)

// 用户相关端点
const (
	loginPath       = "/api/users/login/"
	registerPath    = "/api/users/register/"
	currentUserPath = "/api/users/me/"
)

// AuthAPI wraps the platform's user endpoints. Login and register are
// the only unauthenticated calls; both store the returned token pair.
type AuthAPI struct {
	gw *gateway.Client
}

// NewAuthAPI creates the auth client
func NewAuthAPI(gw *gateway.Client) *AuthAPI {
	return &AuthAPI{gw: gw}
}

// Login exchanges credentials for a token pair and persists it
func (a *AuthAPI) Login(ctx context.Context, form models.LoginForm) (*models.AuthResult, error) {
	var result models.AuthResult
	if err := a.gw.PostJSON(ctx, loginPath, form, &result); err != nil {
		return nil, err
	}
	if err := a.gw.Store().Set(result.Access, result.Refresh); err != nil {
		return nil, err
	}
	return &result, nil
}

// Register creates an account and persists the returned token pair
func (a *AuthAPI) Register(ctx context.Context, form models.RegisterForm) (*models.AuthResult, error) {
	var result models.AuthResult
	if err := a.gw.PostJSON(ctx, registerPath, form, &result); err != nil {
		return nil, err
	}
	if err := a.gw.Store().Set(result.Access, result.Refresh); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout clears the local session. The platform keeps no server-side
// session state beyond token validity.
func (a *AuthAPI) Logout() error {
	return a.gw.Store().Clear()
}

// CurrentUser fetches the authenticated account
func (a *AuthAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := a.gw.GetJSON(ctx, currentUserPath, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
