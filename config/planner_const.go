package config

import "time"

// Planning constants shared by every pipeline stage. Resolution and the
// safety margin materially change which obstacle layouts are reachable,
// so they are fixed here rather than taken per request.
const (
	// GridResolution is the cell size, in wall units, used to rasterize
	// a wall into the traversability grid.
	GridResolution = 0.05

	// ObstacleSafetyMargin is the number of extra cells blocked around
	// every rasterized obstacle. Zero: cells are blocked only where they
	// overlap an obstacle rectangle.
	ObstacleSafetyMargin = 0

	// MaxExpandedNodes caps the number of nodes a single segment search
	// may finalize before it is aborted as timed out.
	MaxExpandedNodes = 250_000

	// RobotSpeed is the nominal travel speed, in wall units per second,
	// used to turn a path length into an execution time estimate.
	RobotSpeed = 0.5

	// RedisChannel is the pub/sub channel trajectory lifecycle events
	// are published on.
	RedisChannel = "robot_updates"

	// PlanLockTTL bounds how long a trajectory name stays locked while a
	// planning request for it is in flight.
	PlanLockTTL = 30 * time.Second
)
