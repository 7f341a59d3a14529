package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/stq-dashboard-go/internal/models"
	"github.com/jengzang/stq-dashboard-go/internal/platform"
	"github.com/jengzang/stq-dashboard-go/internal/session"
	"github.com/jengzang/stq-dashboard-go/pkg/response"
)

// SessionHandler handles the local session endpoints
type SessionHandler struct {
	auth  *platform.AuthAPI
	store session.Store
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(auth *platform.AuthAPI, store session.Store) *SessionHandler {
	return &SessionHandler{auth: auth, store: store}
}

// Login handles POST /api/session/login
func (h *SessionHandler) Login(c *gin.Context) {
	var form models.LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid login payload")
		return
	}

	result, err := h.auth.Login(c.Request.Context(), form)
	if err != nil {
		writeGatewayError(c, err)
		return
	}

	response.Success(c, result.User)
}

// Register handles POST /api/session/register
func (h *SessionHandler) Register(c *gin.Context) {
	var form models.RegisterForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid registration payload")
		return
	}
	if form.Password != form.Password2 {
		response.BadRequest(c, "Passwords do not match")
		return
	}

	result, err := h.auth.Register(c.Request.Context(), form)
	if err != nil {
		writeGatewayError(c, err)
		return
	}

	response.Success(c, result.User)
}

// Logout handles POST /api/session/logout
func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(); err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, nil)
}

// Status handles GET /api/session
func (h *SessionHandler) Status(c *gin.Context) {
	sess := h.store.Get()

	status := models.SessionStatus{IsAuthenticated: sess.IsAuthenticated}
	if sess.AccessToken != "" {
		if exp, ok := session.ExpiresAt(sess.AccessToken); ok {
			status.ExpiresAt = exp.Format(time.RFC3339)
			status.Expired = session.Expired(sess.AccessToken)
		}
	}

	response.Success(c, status)
}

// CurrentUser handles GET /api/session/user
func (h *SessionHandler) CurrentUser(c *gin.Context) {
	user, err := h.auth.CurrentUser(c.Request.Context())
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	response.Success(c, user)
}
