package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/stq-dashboard-go/internal/middleware"
	"github.com/jengzang/stq-dashboard-go/internal/models"
	"github.com/jengzang/stq-dashboard-go/internal/platform"
	"github.com/jengzang/stq-dashboard-go/internal/query"
	"github.com/jengzang/stq-dashboard-go/internal/repository"
	"github.com/jengzang/stq-dashboard-go/internal/spatial"
	"github.com/jengzang/stq-dashboard-go/pkg/response"
)

// QueryHandler handles trajectory query submission
type QueryHandler struct {
	queries   *platform.QueryAPI
	log       *repository.QueryLogRepository
	maxSpanKm float64
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(queries *platform.QueryAPI, log *repository.QueryLogRepository, maxSpanKm float64) *QueryHandler {
	return &QueryHandler{queries: queries, log: log, maxSpanKm: maxSpanKm}
}

// queryFilterForm is one dashboard filter. DeriveMorton asks the gateway
// to compute a Morton range from the point range client-side, matching
// what the platform's index expects.
type queryFilterForm struct {
	Keyword      int                `json:"keyword"`
	MortonRange  *query.MortonRange `json:"morton_range"`
	GridRange    *query.GridRange   `json:"grid_range"`
	PointRange   *query.PointRange  `json:"point_range"`
	DeriveMorton bool               `json:"derive_morton"`
}

// queryForm is the dashboard query payload
type queryForm struct {
	Queries   []queryFilterForm `json:"queries" binding:"required,min=1"`
	TimeSpan  int               `json:"time_span" binding:"required,gt=0"`
	Algorithm string            `json:"algorithm"`
}

// Process handles POST /api/query
func (h *QueryHandler) Process(c *gin.Context) {
	var form queryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, "Invalid query payload")
		return
	}

	req := query.Request{
		TimeSpan:  form.TimeSpan,
		Algorithm: form.Algorithm,
	}

	for _, f := range form.Queries {
		filter := query.Filter{
			Keyword:     f.Keyword,
			MortonRange: f.MortonRange,
			GridRange:   f.GridRange,
			PointRange:  f.PointRange,
		}

		if pr := f.PointRange; pr != nil {
			// 空间范围过大的查询直接拒绝，避免拖垮平台
			if span := spatial.SpanKm(pr.LatMin, pr.LonMin, pr.LatMax, pr.LonMax); span > h.maxSpanKm {
				response.BadRequest(c, "Query spatial range is too large")
				return
			}
			if f.DeriveMorton && filter.MortonRange == nil {
				min, max := spatial.MortonRange(pr.LatMin, pr.LonMin, pr.TimeMin, pr.LatMax, pr.LonMax, pr.TimeMax)
				filter.MortonRange = &query.MortonRange{Min: min, Max: max}
			}
		}

		req.Queries = append(req.Queries, filter)
	}

	start := time.Now()
	result, err := h.queries.Process(c.Request.Context(), req)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	h.record(c, req, result, time.Since(start))
	response.Success(c, result)
}

// History handles GET /api/query/history
func (h *QueryHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	entries, err := h.log.Recent(limit)
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	response.Success(c, gin.H{
		"data":  entries,
		"count": len(entries),
	})
}

// record stores the executed query in the local log; failures only log
func (h *QueryHandler) record(c *gin.Context, req query.Request, result query.Response, elapsed time.Duration) {
	entry := models.QueryLogEntry{
		RequestID:  middleware.RequestID(c),
		Endpoint:   query.Endpoint(req.Algorithm),
		Algorithm:  req.Algorithm,
		Filters:    len(req.Queries),
		TimeSpan:   req.TimeSpan,
		Status:     result.Status,
		TotalCount: result.Data.TotalCount,
		DurationMs: elapsed.Milliseconds(),
	}
	if err := h.log.Insert(entry); err != nil {
		c.Error(err)
	}
}
