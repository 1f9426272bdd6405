// Package trajectory holds the persisted planning result and its
// lifecycle events.
package trajectory

import (
	"errors"
	"time"

	"github.com/akeshari98/wall-robot-control-system/planner"
	"github.com/google/uuid"
)

const maxNameLength = 120

// ErrNotFound reports an unknown trajectory id.
var ErrNotFound = errors.New("trajectory not found")

// Trajectory is the stored record for one planning request. It is
// immutable after assembly; only the persistence layer owns it afterwards.
type Trajectory struct {
	ID            uuid.UUID          `bson:"_id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	WallWidth     float64            `bson:"wallWidth" json:"wall_width"`
	WallHeight    float64            `bson:"wallHeight" json:"wall_height"`
	Obstacles     []planner.Obstacle `bson:"obstacles" json:"obstacles"`
	PathData      []planner.Point    `bson:"pathData" json:"path_data"`
	Status        planner.Status     `bson:"status" json:"status"`
	PathLength    float64            `bson:"pathLength" json:"path_length"`
	ExecutionTime float64            `bson:"executionTime" json:"execution_time"`
	CreatedAt     time.Time          `bson:"createdAt" json:"created_at"`
}

// Summary is the listing projection of a Trajectory, without path data.
type Summary struct {
	ID            uuid.UUID `bson:"_id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	WallWidth     float64   `bson:"wallWidth" json:"wall_width"`
	WallHeight    float64   `bson:"wallHeight" json:"wall_height"`
	ExecutionTime float64   `bson:"executionTime" json:"execution_time"`
	CreatedAt     time.Time `bson:"createdAt" json:"created_at"`
}

// Config holds parameters for creating a Trajectory from an assembled
// coverage path.
type Config struct {
	ID   uuid.UUID
	Name string
	Wall planner.WallConfig
	Path *planner.CoveragePath
}

// New creates a Trajectory from a planning result.
func New(config Config) (*Trajectory, error) {
	if err := validateName(config.Name); err != nil {
		return nil, err
	}
	if config.Path == nil {
		return nil, errors.New("missing coverage path")
	}

	return &Trajectory{
		ID:            config.ID,
		Name:          config.Name,
		WallWidth:     config.Wall.Width,
		WallHeight:    config.Wall.Height,
		Obstacles:     config.Wall.Obstacles,
		PathData:      config.Path.Points,
		Status:        config.Path.Status,
		PathLength:    config.Path.Length,
		ExecutionTime: config.Path.ExecutionTime,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// Summarize returns the listing projection of the trajectory.
func (t *Trajectory) Summarize() Summary {
	return Summary{
		ID:            t.ID,
		Name:          t.Name,
		WallWidth:     t.WallWidth,
		WallHeight:    t.WallHeight,
		ExecutionTime: t.ExecutionTime,
		CreatedAt:     t.CreatedAt,
	}
}

func validateName(name string) error {
	if name == "" {
		return errors.New("trajectory name must not be empty")
	}
	if len(name) > maxNameLength {
		return errors.New("trajectory name too long")
	}
	return nil
}
