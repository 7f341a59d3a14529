package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/stq-dashboard-go/internal/models"
	"github.com/jengzang/stq-dashboard-go/internal/platform"
	"github.com/jengzang/stq-dashboard-go/internal/repository"
	"github.com/jengzang/stq-dashboard-go/pkg/response"
)

// FogHandler proxies the fog server management pages
type FogHandler struct {
	fog     *platform.FogAPI
	history *repository.FogStatsRepository
}

// NewFogHandler creates a new fog handler
func NewFogHandler(fog *platform.FogAPI, history *repository.FogStatsRepository) *FogHandler {
	return &FogHandler{fog: fog, history: history}
}

// List handles GET /api/fog-servers
func (h *FogHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	servers, err := h.fog.List(c.Request.Context(), page, pageSize)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	response.Success(c, servers)
}

// Create handles POST /api/fog-servers
func (h *FogHandler) Create(c *gin.Context) {
	var form models.FogServerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid fog server payload")
		return
	}

	server, err := h.fog.Create(c.Request.Context(), form)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	response.Success(c, server)
}

// Update handles PUT /api/fog-servers/:id
func (h *FogHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var form models.FogServerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid fog server payload")
		return
	}

	server, err := h.fog.Update(c.Request.Context(), id, form)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	response.Success(c, server)
}

// Delete handles DELETE /api/fog-servers/:id
func (h *FogHandler) Delete(c *gin.Context) {
	if err := h.fog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeGatewayError(c, err)
		return
	}
	response.Success(c, nil)
}

// Stats handles GET /api/fog-servers/stats
func (h *FogHandler) Stats(c *gin.Context) {
	stats, err := h.fog.Stats(c.Request.Context())
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	response.Success(c, stats)
}

// StatsHistory handles GET /api/fog-servers/stats/history
func (h *FogHandler) StatsHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	snapshots, err := h.history.Recent(limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"data":  snapshots,
		"count": len(snapshots),
	})
}

// TriggerGrouping handles POST /api/fog-servers/grouping
func (h *FogHandler) TriggerGrouping(c *gin.Context) {
	var req models.GroupingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Select at least one server for grouping")
		return
	}

	result, err := h.fog.TriggerGrouping(c.Request.Context(), req)
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	response.Success(c, result)
}

// TaskStatus handles GET /api/fog-servers/task/:id
func (h *FogHandler) TaskStatus(c *gin.Context) {
	status, err := h.fog.TaskStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	response.Success(c, status)
}
