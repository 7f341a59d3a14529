package repository

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/stq-dashboard-go/internal/models"
)

// FogStatsRepository persists collected fog statistics snapshots for the
// dashboard's history charts
type FogStatsRepository struct {
	db *sql.DB
}

// NewFogStatsRepository creates a new fog stats repository
func NewFogStatsRepository(db *sql.DB) *FogStatsRepository {
	return &FogStatsRepository{db: db}
}

// Insert stores one statistics sample
func (r *FogStatsRepository) Insert(stats models.FogServerStats) error {
	_, err := r.db.Exec(`
		INSERT INTO fog_stats_history (total_servers, online_servers, total_keywords, average_load)
		VALUES (?, ?, ?, ?)
	`, stats.TotalServers, stats.OnlineServers, stats.TotalKeywords, stats.AverageLoad)
	if err != nil {
		return fmt.Errorf("failed to insert fog stats snapshot: %w", err)
	}
	return nil
}

// Recent returns the latest snapshots, newest first
func (r *FogStatsRepository) Recent(limit int) ([]models.FogStatsSnapshot, error) {
	if limit < 1 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	rows, err := r.db.Query(`
		SELECT id, total_servers, online_servers, total_keywords, average_load, collected_at
		FROM fog_stats_history ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query fog stats history: %w", err)
	}
	defer rows.Close()

	var snapshots []models.FogStatsSnapshot
	for rows.Next() {
		var s models.FogStatsSnapshot
		if err := rows.Scan(&s.ID, &s.TotalServers, &s.OnlineServers, &s.TotalKeywords,
			&s.AverageLoad, &s.CollectedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fog stats snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}
