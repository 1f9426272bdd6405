package planner

import "errors"

// Failure taxonomy for the planning pipeline. Validation failures are
// returned before any search runs; search failures are terminal for the
// affected segment. All of them are plain result values, never panics.
var (
	// ErrInvalidConfig reports a wall with non-positive dimensions or a
	// non-positive grid resolution.
	ErrInvalidConfig = errors.New("invalid wall config")

	// ErrInvalidObstacle reports an obstacle with non-positive dimensions
	// or one not fully contained in the wall.
	ErrInvalidObstacle = errors.New("invalid obstacle")

	// ErrUnreachable reports that no route exists between two cells.
	ErrUnreachable = errors.New("goal unreachable")

	// ErrSearchTimeout reports that a segment search exceeded its
	// node-expansion cap.
	ErrSearchTimeout = errors.New("search timed out")
)
