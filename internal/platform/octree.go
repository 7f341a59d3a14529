package platform

import (
	"context"

	"github.com/jengzang/stq-dashboard-go/internal/gateway"
	"github.com/jengzang/stq-dashboard-go/internal/models"
)

// 八叉树与数据迁移端点
const (
	octreeMigrationPath     = "/api/data-management/octree/migration/"
	trajectoryMigrationPath = "/api/data-management/trajectory/migration/"
	octreeNodesPath         = "/api/gko/octree-nodes"
)

// OctreeAPI wraps the octree index maintenance endpoints
type OctreeAPI struct {
	gw *gateway.Client
}

// NewOctreeAPI creates the octree client
func NewOctreeAPI(gw *gateway.Client) *OctreeAPI {
	return &OctreeAPI{gw: gw}
}

// migrationResult is the platform's raw trigger response
type migrationResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Migrate triggers an octree index rebuild
func (o *OctreeAPI) Migrate(ctx context.Context) (*models.OctreeMigrationResult, error) {
	return o.trigger(ctx, octreeMigrationPath)
}

// MigrateTrajectory redistributes trajectory points across the index
func (o *OctreeAPI) MigrateTrajectory(ctx context.Context) (*models.OctreeMigrationResult, error) {
	return o.trigger(ctx, trajectoryMigrationPath)
}

func (o *OctreeAPI) trigger(ctx context.Context, path string) (*models.OctreeMigrationResult, error) {
	var raw migrationResult
	err := o.gw.PostJSON(ctx, path, map[string]bool{"confirm": true}, &raw)
	if err != nil {
		if gateway.IsAuth(err) {
			return nil, err
		}
		// 其他失败作为结果返回，页面直接展示消息
		return &models.OctreeMigrationResult{
			Success: false,
			Message: gateway.UpstreamMessage(err),
		}, nil
	}
	return &models.OctreeMigrationResult{
		Success: raw.Status == "success",
		Message: raw.Message,
	}, nil
}

// Nodes fetches the octree node set for visualization
func (o *OctreeAPI) Nodes(ctx context.Context) (interface{}, error) {
	var nodes interface{}
	if err := o.gw.GetJSON(ctx, octreeNodesPath, nil, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}
