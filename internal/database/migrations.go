package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations 本地状态库的全部结构，按版本顺序执行
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_credentials",
		SQL: `
			CREATE TABLE IF NOT EXISTS credentials (
				key        TEXT PRIMARY KEY,
				value      TEXT NOT NULL,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		Version: 2,
		Name:    "create_query_log",
		SQL: `
			CREATE TABLE IF NOT EXISTS query_log (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				request_id  TEXT NOT NULL,
				endpoint    TEXT NOT NULL,
				algorithm   TEXT NOT NULL DEFAULT '',
				filters     INTEGER NOT NULL DEFAULT 0,
				time_span   INTEGER NOT NULL DEFAULT 0,
				status      TEXT NOT NULL,
				total_count INTEGER NOT NULL DEFAULT 0,
				duration_ms INTEGER NOT NULL DEFAULT 0,
				created_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
	{
		Version: 3,
		Name:    "create_fog_stats_history",
		SQL: `
			CREATE TABLE IF NOT EXISTS fog_stats_history (
				id             INTEGER PRIMARY KEY AUTOINCREMENT,
				total_servers  INTEGER NOT NULL,
				online_servers INTEGER NOT NULL,
				total_keywords INTEGER NOT NULL,
				average_load   REAL NOT NULL,
				collected_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`,
	},
}

// Migrate applies all pending migrations
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if _, err := db.Exec(m.SQL); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}
		if _, err := db.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return nil
}

// initMigrationsTable creates the migrations tracking table
func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// appliedMigrations returns the set of applied migration versions
func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}
