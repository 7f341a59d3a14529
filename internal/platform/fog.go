package platform

import (
	"context"
	"net/url"
	"strconv"

	"github.com/jengzang/stq-dashboard-go/internal/gateway"
	"github.com/jengzang/stq-dashboard-go/internal/models"
	"github.com/jengzang/stq-dashboard-go/pkg/cache"
)

// 雾服务器管理端点
const (
	fogServersPath   = "/api/fog-management/servers/"
	fogStatsPath     = "/api/fog-management/servers/stats/"
	fogGroupingPath  = "/api/fog-management/servers/grouping/"
	fogTaskPath      = "/api/fog-management/servers/task/"
	fogStatsCacheKey = "stq:fog:stats"
	defaultStrategy  = "frequency_greedy"
)

// FogAPI wraps the platform's fog server management endpoints
type FogAPI struct {
	gw    *gateway.Client
	cache *cache.Cache
}

// NewFogAPI creates the fog management client; cache may be nil
func NewFogAPI(gw *gateway.Client, c *cache.Cache) *FogAPI {
	return &FogAPI{gw: gw, cache: c}
}

// List fetches a page of fog servers
func (f *FogAPI) List(ctx context.Context, page, pageSize int) (*models.FogServerPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		query.Set("page_size", strconv.Itoa(pageSize))
	}

	var result models.FogServerPage
	err := withRetry(ctx, "fog server list", func() error {
		return f.gw.GetJSON(ctx, fogServersPath, query, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Stats fetches the aggregate fog statistics, preferring a recent cached
// copy
func (f *FogAPI) Stats(ctx context.Context) (*models.FogServerStats, error) {
	var stats models.FogServerStats
	if f.cache.GetJSON(ctx, fogStatsCacheKey, &stats) {
		return &stats, nil
	}

	err := withRetry(ctx, "fog server stats", func() error {
		return f.gw.GetJSON(ctx, fogStatsPath, nil, &stats)
	})
	if err != nil {
		return nil, err
	}

	f.cache.SetJSON(ctx, fogStatsCacheKey, &stats)
	return &stats, nil
}

// Create registers a new fog server
func (f *FogAPI) Create(ctx context.Context, form models.FogServerForm) (*models.FogServer, error) {
	var server models.FogServer
	if err := f.gw.PostJSON(ctx, fogServersPath, form, &server); err != nil {
		return nil, err
	}
	return &server, nil
}

// Update rewrites a fog server's writable fields
func (f *FogAPI) Update(ctx context.Context, id string, form models.FogServerForm) (*models.FogServer, error) {
	var server models.FogServer
	if err := f.gw.PutJSON(ctx, fogServersPath+id+"/", form, &server); err != nil {
		return nil, err
	}
	return &server, nil
}

// Delete removes a fog server. The platform rejects deletion while the
// server still holds assigned keywords.
func (f *FogAPI) Delete(ctx context.Context, id string) error {
	return f.gw.Delete(ctx, fogServersPath+id+"/")
}

// TriggerGrouping starts keyword grouping across the selected servers
func (f *FogAPI) TriggerGrouping(ctx context.Context, req models.GroupingRequest) (*models.GroupingResult, error) {
	if req.Strategy == "" {
		req.Strategy = defaultStrategy
	}
	var result models.GroupingResult
	if err := f.gw.PostJSON(ctx, fogGroupingPath, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TaskStatus polls an asynchronous grouping task
func (f *FogAPI) TaskStatus(ctx context.Context, taskID string) (*models.TaskStatus, error) {
	var status models.TaskStatus
	if err := f.gw.GetJSON(ctx, fogTaskPath+taskID+"/", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
