package i

import (
	"context"

	"github.com/akeshari98/wall-robot-control-system/identity"
	"github.com/akeshari98/wall-robot-control-system/trajectory"
	"github.com/google/uuid"
)

// TrajectoryRepo defines the narrow persistence capability for planned
// trajectories. The planning core is storage agnostic; only the request
// handling layer holds one of these.
type TrajectoryRepo interface {
	// Save stores a newly assembled trajectory.
	Save(ctx context.Context, t *trajectory.Trajectory) error

	// ByID retrieves a trajectory, path data included, by its unique ID.
	// Returns trajectory.ErrNotFound for an unknown id.
	ByID(ctx context.Context, id uuid.UUID) (*trajectory.Trajectory, error)

	// List retrieves summaries of all stored trajectories, newest first.
	List(ctx context.Context) ([]trajectory.Summary, error)

	// Delete removes a trajectory and returns the removed record.
	// Returns trajectory.ErrNotFound for an unknown id.
	Delete(ctx context.Context, id uuid.UUID) (*trajectory.Trajectory, error)
}

// OperatorRepo defines the interface for operator account persistence.
type OperatorRepo interface {
	// Save inserts or updates an operator in the repository.
	Save(ctx context.Context, op *identity.Operator) error

	// ByID retrieves an operator by their unique ID.
	ByID(ctx context.Context, id uuid.UUID) (*identity.Operator, error)

	// ByUsername retrieves an operator by their username.
	ByUsername(ctx context.Context, username string) (*identity.Operator, error)
}
