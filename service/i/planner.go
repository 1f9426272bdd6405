package i

import (
	"context"

	"github.com/akeshari98/wall-robot-control-system/planner"
	"github.com/akeshari98/wall-robot-control-system/trajectory"
	"github.com/google/uuid"
)

// CoveragePlanner is the request-facing surface of the planning service.
type CoveragePlanner interface {
	// Plan runs the full pipeline for a wall config, stores the result
	// and publishes a created event. Fails with the planner error
	// taxonomy for invalid input or failed searches.
	Plan(ctx context.Context, name string, wall planner.WallConfig) (*trajectory.Trajectory, error)

	// Inspect retrieves a stored trajectory, path data included, for
	// replay. Returns trajectory.ErrNotFound for an unknown id.
	Inspect(ctx context.Context, id uuid.UUID) (*trajectory.Trajectory, error)

	// Enumerate lists stored trajectory summaries, newest first.
	Enumerate(ctx context.Context) ([]trajectory.Summary, error)

	// Delete removes a stored trajectory and publishes a deleted event.
	// Returns trajectory.ErrNotFound for an unknown id.
	Delete(ctx context.Context, id uuid.UUID) error
}
