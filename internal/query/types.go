package query

// MortonRange is a space-filling-curve encoded spatial filter
type MortonRange struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// GridRange is a 3D octree grid filter
type GridRange struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MinZ float64 `json:"min_z"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
	MaxZ float64 `json:"max_z"`
}

// PointRange is a lat/lon/time bounding filter
type PointRange struct {
	LatMin  float64 `json:"lat_min"`
	LonMin  float64 `json:"lon_min"`
	TimeMin float64 `json:"time_min"`
	LatMax  float64 `json:"lat_max"`
	LonMax  float64 `json:"lon_max"`
	TimeMax float64 `json:"time_max"`
}

// Filter is one query item: a required keyword plus any combination of
// the three spatial/temporal shapes. How multiple shapes combine is the
// server's decision, not the client's.
type Filter struct {
	Keyword     int          `json:"keyword"`
	MortonRange *MortonRange `json:"morton_range,omitempty"`
	GridRange   *GridRange   `json:"grid_range,omitempty"`
	PointRange  *PointRange  `json:"point_range,omitempty"`
}

// Request is a multi-filter trajectory query
type Request struct {
	Queries   []Filter `json:"queries"`
	TimeSpan  int      `json:"time_span"`
	Algorithm string   `json:"algorithm,omitempty"`
}

// ResultRow is one decrypted trajectory record
type ResultRow struct {
	DecryptedTrajID string `json:"decrypted_traj_id"`
	DecryptedDate   string `json:"decrypted_date"`
	RID             string `json:"rid"`
}

// StepDetails is the open detail map of an execution step. Beyond the
// status and message keys, every extra field is a display-only counter.
type StepDetails map[string]interface{}

// Status returns the step status when present (success, error, warning)
func (d StepDetails) Status() string {
	s, _ := d["status"].(string)
	return s
}

// Message returns the step message when present
func (d StepDetails) Message() string {
	m, _ := d["message"].(string)
	return m
}

// StepTrace is one server-emitted record of a query pipeline stage,
// e.g. cloud vs fog processing. Consumed read-only by the dashboard.
type StepTrace struct {
	Step      string      `json:"step"`
	Details   StepDetails `json:"details"`
	Timestamp string      `json:"timestamp"`
}

// ResultData is the payload of a query response
type ResultData struct {
	ValidTrajectories [][]ResultRow `json:"valid_trajectories"`
	TotalCount        int           `json:"total_count"`
	Steps             []StepTrace   `json:"steps,omitempty"`
}

// Response is a well-shaped query result. The normalizer guarantees that
// every caller receives one, whatever the server sent back.
type Response struct {
	Status  string     `json:"status"`
	Message string     `json:"message,omitempty"`
	Data    ResultData `json:"data"`
	// Steps at the top level is the fallback location used by error responses
	Steps []StepTrace `json:"steps,omitempty"`
}
