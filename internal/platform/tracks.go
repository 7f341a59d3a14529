package platform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jengzang/stq-dashboard-go/internal/gateway"
	"github.com/jengzang/stq-dashboard-go/internal/models"
	"github.com/jengzang/stq-dashboard-go/pkg/cache"
)

// 轨迹数据端点
const (
	tracksPath      = "/api/data-management/tracks/"
	trackStatsPath  = "/api/data-management/tracks/statistics/"
	trackExportCSV  = "/api/data-management/tracks/export_csv/"
	trackExportJSON = "/api/data-management/tracks/export_json/"
	trackImportCSV  = "/api/data-management/tracks/import_csv/"
	trackImportJSON = "/api/data-management/tracks/import_json/"
	statsCacheKey   = "stq:tracks:statistics"
)

// TracksAPI wraps the platform's track dataset endpoints
type TracksAPI struct {
	gw    *gateway.Client
	cache *cache.Cache
}

// NewTracksAPI creates the tracks client; cache may be nil
func NewTracksAPI(gw *gateway.Client, c *cache.Cache) *TracksAPI {
	return &TracksAPI{gw: gw, cache: c}
}

// List fetches a page of track points
func (t *TracksAPI) List(ctx context.Context, params models.TrackListParams) (*models.TrackPage, error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(params.PageSize))
	}
	if params.Keyword != "" {
		query.Set("keyword", params.Keyword)
	}
	if params.DateStart != "" {
		query.Set("date_start", params.DateStart)
	}
	if params.DateEnd != "" {
		query.Set("date_end", params.DateEnd)
	}

	var page models.TrackPage
	err := withRetry(ctx, "track list", func() error {
		return t.gw.GetJSON(ctx, tracksPath, query, &page)
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Statistics fetches the dataset summary, serving a recent cached copy
// when available
func (t *TracksAPI) Statistics(ctx context.Context) (*models.TrackStatistics, error) {
	var stats models.TrackStatistics
	if t.cache.GetJSON(ctx, statsCacheKey, &stats) {
		return &stats, nil
	}

	err := withRetry(ctx, "track statistics", func() error {
		return t.gw.GetJSON(ctx, trackStatsPath, nil, &stats)
	})
	if err != nil {
		return nil, err
	}

	t.cache.SetJSON(ctx, statsCacheKey, &stats)
	return &stats, nil
}

// Export downloads the dataset in the requested format (csv or json)
func (t *TracksAPI) Export(ctx context.Context, format string) ([]byte, string, error) {
	path := trackExportCSV
	contentType := "text/csv"
	if format == "json" {
		path = trackExportJSON
		contentType = "application/json"
	}

	resp, err := t.gw.Do(ctx, &gateway.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, "", err
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		contentType = ct
	}
	return resp.Body, contentType, nil
}

// Import uploads a dataset file as multipart form data
func (t *TracksAPI) Import(ctx context.Context, format, filename string, file io.Reader) error {
	path := trackImportCSV
	if format == "json" {
		path = trackImportJSON
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish upload: %w", err)
	}

	_, err = t.gw.Do(ctx, &gateway.Request{
		Method:      http.MethodPost,
		Path:        path,
		Raw:         buf.Bytes(),
		ContentType: writer.FormDataContentType(),
	})
	return err
}

// Delete removes one track point
func (t *TracksAPI) Delete(ctx context.Context, id string) error {
	return t.gw.Delete(ctx, tracksPath+id+"/")
}
