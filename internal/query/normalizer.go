package query

import (
	"encoding/json"
	"fmt"
)

// 算法与查询端点的对应关系
const (
	EndpointProcess    = "/api/query/process/"
	EndpointTraversal  = "/api/query/api/trajectory/traversal"
	EndpointTrajectory = "/api/query/api/trajectory"
)

// 缺省字段的占位格式，按行在分组内的位置填充
const placeholderDate = "unknown"

// Endpoint selects the query endpoint for an algorithm: empty or "auto"
// means the default processing pipeline, "traversal" the traversal
// implementation, and any other named algorithm the generic trajectory
// endpoint.
func Endpoint(algorithm string) string {
	switch algorithm {
	case "", "auto":
		return EndpointProcess
	case "traversal":
		return EndpointTraversal
	default:
		return EndpointTrajectory
	}
}

// rawResponse mirrors Response but leaves the trajectory list undecoded
// so malformed shapes can be repaired instead of failing the decode.
type rawResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    *rawData    `json:"data"`
	Steps   []StepTrace `json:"steps"`
}

type rawData struct {
	ValidTrajectories json.RawMessage `json:"valid_trajectories"`
	TotalCount        int             `json:"total_count"`
	Steps             []StepTrace     `json:"steps"`
}

// Normalize decodes a raw query response body and repairs its shape.
// Servers occasionally return non-list trajectory containers, null rows
// or rows with missing fields; those are filled in place rather than
// surfaced as errors. Normalizing an already well-formed response is a
// no-op.
func Normalize(body []byte) Response {
	var raw rawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return Fallback(fmt.Sprintf("malformed query response: %v", err))
	}

	resp := Response{
		Status:  raw.Status,
		Message: raw.Message,
		Steps:   raw.Steps,
		Data: ResultData{
			ValidTrajectories: [][]ResultRow{},
		},
	}

	if raw.Data == nil {
		return resp
	}
	resp.Data.TotalCount = raw.Data.TotalCount
	resp.Data.Steps = raw.Data.Steps

	if raw.Status != "success" {
		// 非 success 响应不做修复，只保证轨迹列表非空指针
		var groups [][]ResultRow
		if json.Unmarshal(raw.Data.ValidTrajectories, &groups) == nil && groups != nil {
			resp.Data.ValidTrajectories = groups
		}
		return resp
	}

	resp.Data.ValidTrajectories = repairGroups(raw.Data.ValidTrajectories)
	return resp
}

// Fallback synthesizes a terminal error response for a transport failure
// so query callers always receive a well-shaped result.
func Fallback(message string) Response {
	if message == "" {
		message = "query processing failed"
	}
	return Response{
		Status:  "error",
		Message: message,
		Data: ResultData{
			ValidTrajectories: [][]ResultRow{},
		},
	}
}

// repairGroups coerces the trajectory container to a list of lists
func repairGroups(raw json.RawMessage) [][]ResultRow {
	var groups []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &groups) != nil {
		return [][]ResultRow{}
	}

	repaired := make([][]ResultRow, 0, len(groups))
	for _, group := range groups {
		repaired = append(repaired, repairGroup(group))
	}
	return repaired
}

// repairGroup coerces one group to a list and fills defective rows
func repairGroup(raw json.RawMessage) []ResultRow {
	var rows []json.RawMessage
	if json.Unmarshal(raw, &rows) != nil {
		return []ResultRow{}
	}

	repaired := make([]ResultRow, 0, len(rows))
	for i, row := range rows {
		repaired = append(repaired, repairRow(row, i))
	}
	return repaired
}

// repairRow fills missing fields using the row's position in its group
func repairRow(raw json.RawMessage, index int) ResultRow {
	var row ResultRow
	// null 或无法解析的行整体合成
	if err := json.Unmarshal(raw, &row); err != nil || string(raw) == "null" {
		row = ResultRow{}
	}

	if row.DecryptedTrajID == "" {
		row.DecryptedTrajID = fmt.Sprintf("traj_%d", index)
	}
	if row.DecryptedDate == "" {
		row.DecryptedDate = placeholderDate
	}
	if row.RID == "" {
		row.RID = fmt.Sprintf("rid_%d", index)
	}
	return row
}
