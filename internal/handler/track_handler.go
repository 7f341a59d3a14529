package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/stq-dashboard-go/internal/models"
	"github.com/jengzang/stq-dashboard-go/internal/platform"
	"github.com/jengzang/stq-dashboard-go/pkg/response"
)

// TrackHandler proxies the track dataset pages
type TrackHandler struct {
	tracks *platform.TracksAPI
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(tracks *platform.TracksAPI) *TrackHandler {
	return &TrackHandler{tracks: tracks}
}

// List handles GET /api/tracks
func (h *TrackHandler) List(c *gin.Context) {
	var params models.TrackListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 100
	}
	if params.PageSize > 1000 {
		params.PageSize = 1000
	}

	page, err := h.tracks.List(c.Request.Context(), params)
	if err != nil {
		writeGatewayError(c, err)
		return
	}

	response.Success(c, page)
}

// Statistics handles GET /api/tracks/statistics
func (h *TrackHandler) Statistics(c *gin.Context) {
	stats, err := h.tracks.Statistics(c.Request.Context())
	if err != nil {
		writeGatewayError(c, err)
		return
	}
	response.Success(c, stats)
}

// Export handles GET /api/tracks/export?format=csv|json
func (h *TrackHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "json" {
		response.BadRequest(c, "Unsupported export format")
		return
	}

	data, contentType, err := h.tracks.Export(c.Request.Context(), format)
	if err != nil {
		writeGatewayError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=tracks."+format)
	c.Data(200, contentType, data)
}

// Import handles POST /api/tracks/import (multipart upload)
func (h *TrackHandler) Import(c *gin.Context) {
	format := c.DefaultPostForm("format", "csv")
	if format != "csv" && format != "json" {
		response.BadRequest(c, "Unsupported import format")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing upload file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	defer file.Close()

	if err := h.tracks.Import(c.Request.Context(), format, fileHeader.Filename, file); err != nil {
		writeGatewayError(c, err)
		return
	}

	response.Success(c, gin.H{"filename": fileHeader.Filename})
}

// Delete handles DELETE /api/tracks/:id
func (h *TrackHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, "Missing track ID")
		return
	}

	if err := h.tracks.Delete(c.Request.Context(), id); err != nil {
		writeGatewayError(c, err)
		return
	}

	response.Success(c, nil)
}
