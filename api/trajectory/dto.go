// Package trajectoryapi provides structures and handlers for planning,
// inspecting and deleting wall coverage trajectories.
package trajectoryapi

import (
	"time"

	"github.com/akeshari98/wall-robot-control-system/planner"
	"github.com/akeshari98/wall-robot-control-system/trajectory"
)

// ObstacleDTO is an axis-aligned exclusion rectangle of a plan request.
type ObstacleDTO struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" binding:"required"`
	Height float64 `json:"height" binding:"required"`
}

// WallConfigDTO describes the wall of a plan request.
type WallConfigDTO struct {
	Width     float64       `json:"width" binding:"required"`
	Height    float64       `json:"height" binding:"required"`
	Obstacles []ObstacleDTO `json:"obstacles"`
}

// PlanRequest represents a request to plan and store a new trajectory.
type PlanRequest struct {
	Name       string        `json:"name" binding:"required"`
	WallConfig WallConfigDTO `json:"wall_config" binding:"required"`
}

// PlanResponse summarizes a newly created trajectory.
type PlanResponse struct {
	ID            string  `json:"id"`
	Message       string  `json:"message"`
	Status        string  `json:"status"`
	PathPoints    int     `json:"path_points"`
	ExecutionTime float64 `json:"execution_time"`
}

// TrajectoryResponse is the full stored record, path data included.
type TrajectoryResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	WallWidth     float64            `json:"wall_width"`
	WallHeight    float64            `json:"wall_height"`
	Obstacles     []planner.Obstacle `json:"obstacles"`
	PathData      []planner.Point    `json:"path_data"`
	Status        string             `json:"status"`
	PathLength    float64            `json:"path_length"`
	ExecutionTime float64            `json:"execution_time"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SummaryResponse is one entry of a trajectory listing.
type SummaryResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	WallWidth     float64   `json:"wall_width"`
	WallHeight    float64   `json:"wall_height"`
	ExecutionTime float64   `json:"execution_time"`
	CreatedAt     time.Time `json:"created_at"`
}

func (r WallConfigDTO) toWallConfig() planner.WallConfig {
	obstacles := make([]planner.Obstacle, 0, len(r.Obstacles))
	for _, obs := range r.Obstacles {
		obstacles = append(obstacles, planner.Obstacle{
			X:      obs.X,
			Y:      obs.Y,
			Width:  obs.Width,
			Height: obs.Height,
		})
	}
	return planner.WallConfig{
		Width:     r.Width,
		Height:    r.Height,
		Obstacles: obstacles,
	}
}

func toTrajectoryResponse(t *trajectory.Trajectory) *TrajectoryResponse {
	return &TrajectoryResponse{
		ID:            t.ID.String(),
		Name:          t.Name,
		WallWidth:     t.WallWidth,
		WallHeight:    t.WallHeight,
		Obstacles:     t.Obstacles,
		PathData:      t.PathData,
		Status:        string(t.Status),
		PathLength:    t.PathLength,
		ExecutionTime: t.ExecutionTime,
		CreatedAt:     t.CreatedAt,
	}
}

func toSummaryResponse(s trajectory.Summary) SummaryResponse {
	return SummaryResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		WallWidth:     s.WallWidth,
		WallHeight:    s.WallHeight,
		ExecutionTime: s.ExecutionTime,
		CreatedAt:     s.CreatedAt,
	}
}
