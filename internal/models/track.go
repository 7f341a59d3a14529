package models

// Track is one trajectory point in the platform's dataset
type Track struct {
	TrackID   string  `json:"track_id"`
	PointID   string  `json:"point_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Date      int64   `json:"date"`
	Time      int64   `json:"time"`
	Keyword   string  `json:"keyword"`
}

// TrackPage is the platform's paginated track listing
type TrackPage struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Track `json:"results"`
}

// TrackListParams are the supported listing filters
type TrackListParams struct {
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	Keyword   string `form:"keyword"`
	DateStart string `form:"date_start"`
	DateEnd   string `form:"date_end"`
}

// TrackStatistics is the dataset summary shown on the data page
type TrackStatistics struct {
	TotalPoints   int      `json:"total_points"`
	TotalKeywords int      `json:"total_keywords"`
	KeywordsList  []string `json:"keywords_list"`
}
