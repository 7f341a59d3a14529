package models

// QueryLogEntry is one recorded dashboard query, kept locally so
// operators can review recent activity
type QueryLogEntry struct {
	ID         int64  `json:"id"`
	RequestID  string `json:"request_id"`
	Endpoint   string `json:"endpoint"`
	Algorithm  string `json:"algorithm"`
	Filters    int    `json:"filters"`
	TimeSpan   int    `json:"time_span"`
	Status     string `json:"status"`
	TotalCount int    `json:"total_count"`
	DurationMs int64  `json:"duration_ms"`
	CreatedAt  string `json:"created_at"`
}

// OctreeMigrationResult is the outcome of a migration trigger
type OctreeMigrationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
