package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/stq-dashboard-go/internal/models"
)

// QueryLogRepository handles database operations for the local query log
type QueryLogRepository struct {
	db *sql.DB
}

// NewQueryLogRepository creates a new query log repository
func NewQueryLogRepository(db *sql.DB) *QueryLogRepository {
	return &QueryLogRepository{db: db}
}

// Insert records one executed dashboard query
func (r *QueryLogRepository) Insert(entry models.QueryLogEntry) error {
	_, err := r.db.Exec(`
		INSERT INTO query_log (request_id, endpoint, algorithm, filters, time_span, status, total_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.RequestID, entry.Endpoint, entry.Algorithm, entry.Filters, entry.TimeSpan,
		entry.Status, entry.TotalCount, entry.DurationMs)
	if err != nil {
		return fmt.Errorf("failed to insert query log: %w", err)
	}
	return nil
}

// Recent returns the latest entries, newest first
func (r *QueryLogRepository) Recent(limit int) ([]models.QueryLogEntry, error) {
	if limit < 1 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	rows, err := r.db.Query(`
		SELECT id, request_id, endpoint, algorithm, filters, time_span, status, total_count, duration_ms, created_at
		FROM query_log ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query log: %w", err)
	}
	defer rows.Close()

	var entries []models.QueryLogEntry
	for rows.Next() {
		var e models.QueryLogEntry
		if err := rows.Scan(&e.ID, &e.RequestID, &e.Endpoint, &e.Algorithm, &e.Filters,
			&e.TimeSpan, &e.Status, &e.TotalCount, &e.DurationMs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan query log entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
