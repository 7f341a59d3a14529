package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/stq-dashboard-go/internal/database"
	"github.com/jengzang/stq-dashboard-go/internal/gateway"
	"github.com/jengzang/stq-dashboard-go/internal/models"
	"github.com/jengzang/stq-dashboard-go/internal/platform"
	"github.com/jengzang/stq-dashboard-go/internal/repository"
	"github.com/jengzang/stq-dashboard-go/internal/session"
)

// newQueryRouter wires a query handler against a fake platform upstream
// and a throwaway state database.
func newQueryRouter(t *testing.T, upstream http.HandlerFunc) (*gin.Engine, *repository.QueryLogRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "state.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gw := gateway.NewClient(server.URL, session.NewMemoryStore(), time.Second)
	repo := repository.NewQueryLogRepository(db)
	h := NewQueryHandler(platform.NewQueryAPI(gw), repo, 2000)

	router := gin.New()
	router.POST("/api/query", h.Process)
	router.GET("/api/query/history", h.History)
	return router, repo
}

func postQuery(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestQueryHandler_Process(t *testing.T) {
	var captured map[string]interface{}
	router, repo := newQueryRouter(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{"status":"success","data":{"valid_trajectories":[[{"decrypted_traj_id":"t1","decrypted_date":"2024-01-01","rid":"r1"}]],"total_count":1}}`))
	})

	w := postQuery(router, `{"queries":[{"keyword":3}],"time_span":86400}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Code int `json:"code"`
		Data struct {
			Status string `json:"status"`
			Data   struct {
				TotalCount int `json:"total_count"`
			} `json:"data"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 0, envelope.Code)
	assert.Equal(t, "success", envelope.Data.Status)
	assert.Equal(t, 1, envelope.Data.Data.TotalCount)

	// 执行记录写入本地查询日志
	entries, err := repo.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/api/query/process/", entries[0].Endpoint)
	assert.Equal(t, "success", entries[0].Status)
	assert.Equal(t, 1, entries[0].TotalCount)
}

func TestQueryHandler_RejectsOversizedSpan(t *testing.T) {
	router, _ := newQueryRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("oversized queries must not reach the platform")
	})

	body := `{"queries":[{"keyword":1,"point_range":{"lat_min":-50,"lon_min":-100,"time_min":0,"lat_max":50,"lon_max":100,"time_max":86400}}],"time_span":86400}`
	w := postQuery(router, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryHandler_DerivesMortonRange(t *testing.T) {
	var captured struct {
		Queries []struct {
			MortonRange *struct {
				Min string `json:"min"`
				Max string `json:"max"`
			} `json:"morton_range"`
		} `json:"queries"`
	}
	router, _ := newQueryRouter(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{"status":"success","data":{"valid_trajectories":[],"total_count":0}}`))
	})

	body := `{"queries":[{"keyword":1,"derive_morton":true,"point_range":{"lat_min":1,"lon_min":1,"time_min":10000,"lat_max":2,"lon_max":2,"time_max":170000}}],"time_span":86400}`
	w := postQuery(router, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.Len(t, captured.Queries, 1)
	require.NotNil(t, captured.Queries[0].MortonRange)
	assert.Equal(t, "5,0", captured.Queries[0].MortonRange.Min)
	assert.Equal(t, "6,1", captured.Queries[0].MortonRange.Max)
}

func TestQueryHandler_InvalidPayload(t *testing.T) {
	router, _ := newQueryRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid payloads must not reach the platform")
	})

	assert.Equal(t, http.StatusBadRequest, postQuery(router, `{"queries":[],"time_span":86400}`).Code)
	assert.Equal(t, http.StatusBadRequest, postQuery(router, `{"queries":[{"keyword":1}],"time_span":0}`).Code)
	assert.Equal(t, http.StatusBadRequest, postQuery(router, `not json`).Code)
}

func modelsEntry(requestID string) models.QueryLogEntry {
	return models.QueryLogEntry{
		RequestID: requestID,
		Endpoint:  "/api/query/process/",
		Algorithm: "auto",
		Status:    "success",
	}
}

func TestQueryHandler_History(t *testing.T) {
	router, repo := newQueryRouter(t, func(w http.ResponseWriter, r *http.Request) {})
	require.NoError(t, repo.Insert(modelsEntry("req-1")))
	require.NoError(t, repo.Insert(modelsEntry("req-2")))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/query/history?limit=10", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Data.Count)
}
