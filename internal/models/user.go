package models

// User is a platform account as returned by /api/users/me/
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"` // admin, user, operator
	CreatedAt string `json:"created_at"`
	LastLogin string `json:"last_login"`
}

// AuthResult is the login/register response: the account plus both tokens
type AuthResult struct {
	User    User   `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginForm are the credentials sent to /api/users/login/
type LoginForm struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterForm are the fields sent to /api/users/register/
type RegisterForm struct {
	Email     string `json:"email" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
}

// SessionStatus is the local session view exposed to the dashboard.
// ExpiresAt is read from the access token's claims without verification
// and is display-only.
type SessionStatus struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	ExpiresAt       string `json:"expires_at,omitempty"`
	Expired         bool   `json:"expired,omitempty"`
}
