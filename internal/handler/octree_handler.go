package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/stq-dashboard-go/internal/platform"
	"github.com/jengzang/stq-dashboard-go/pkg/response"
)

// OctreeHandler proxies octree index maintenance
type OctreeHandler struct {
	octree *platform.OctreeAPI
}

// NewOctreeHandler creates a new octree handler
func NewOctreeHandler(octree *platform.OctreeAPI) *OctreeHandler {
	return &OctreeHandler{octree: octree}
}

// Migrate handles POST /api/octree/migration
func (h *OctreeHandler) Migrate(c *gin.Context) {
	result, err := h.octree.Migrate(c.Request.Context())
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	response.Success(c, result)
}

// MigrateTrajectory handles POST /api/octree/trajectory-migration
func (h *OctreeHandler) MigrateTrajectory(c *gin.Context) {
	result, err := h.octree.MigrateTrajectory(c.Request.Context())
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	response.Success(c, result)
}

// Nodes handles GET /api/octree/nodes
func (h *OctreeHandler) Nodes(c *gin.Context) {
	nodes, err := h.octree.Nodes(c.Request.Context())
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	response.Success(c, nodes)
}
