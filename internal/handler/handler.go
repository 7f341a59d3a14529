package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/stq-dashboard-go/internal/gateway"
	"github.com/jengzang/stq-dashboard-go/pkg/response"
)

// writeGatewayError maps a failed platform call onto the local surface.
// Terminal auth failures become 401 so the dashboard redirects to login;
// upstream client/server errors keep their status; transport failures
// become 504.
func writeGatewayError(c *gin.Context, err error) {
	ge, ok := gateway.AsError(err)
	if !ok {
		response.InternalError(c, err.Error())
		return
	}

	switch ge.Kind {
	case gateway.ErrAuth:
		response.Unauthorized(c, "session expired, please log in again")
	case gateway.ErrTransport:
		response.Error(c, 504, gateway.UpstreamMessage(err))
	default:
		response.UpstreamError(c, ge.Status, gateway.UpstreamMessage(err))
	}
}
