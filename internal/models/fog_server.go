package models

// FogServer is a secondary query-processing endpoint managed through the
// dashboard. Keywords arrives from the platform either as a list or a
// comma-joined string depending on the serializer in use.
type FogServer struct {
	ID              string      `json:"id"`
	ServiceEndpoint string      `json:"service_endpoint"`
	Keywords        interface{} `json:"keywords"`
	KeywordLoad     float64     `json:"keyword_load"`
	Status          string      `json:"status"` // online, offline, maintenance
	CreatedAt       string      `json:"created_at"`
	UpdatedAt       string      `json:"updated_at"`
}

// FogServerPage is the platform's paginated server listing
type FogServerPage struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  []FogServer `json:"results"`
}

// FogServerForm are the writable fields of a fog server
type FogServerForm struct {
	ServiceEndpoint string `json:"service_endpoint" binding:"required"`
	Status          string `json:"status" binding:"required,oneof=online offline maintenance"`
}

// FogServerStats is the aggregate view shown on the fog page
type FogServerStats struct {
	TotalServers  int     `json:"total_servers"`
	OnlineServers int     `json:"online_servers"`
	TotalKeywords int     `json:"total_keywords"`
	AverageLoad   float64 `json:"average_load"`
}

// GroupingRequest triggers keyword grouping across selected servers
type GroupingRequest struct {
	ServerIDs []string `json:"server_ids" binding:"required,min=1"`
	Strategy  string   `json:"strategy"`
}

// GroupingResult is the platform's grouping outcome
type GroupingResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TaskStatus is the state of an asynchronous platform task
type TaskStatus struct {
	Status string      `json:"status"`
	Result interface{} `json:"result,omitempty"`
	Info   string      `json:"info,omitempty"`
}

// FogStatsSnapshot is one collected statistics sample kept locally for
// the dashboard's history charts
type FogStatsSnapshot struct {
	ID            int64   `json:"id"`
	TotalServers  int     `json:"total_servers"`
	OnlineServers int     `json:"online_servers"`
	TotalKeywords int     `json:"total_keywords"`
	AverageLoad   float64 `json:"average_load"`
	CollectedAt   string  `json:"collected_at"`
}
