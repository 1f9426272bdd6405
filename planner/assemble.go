package planner

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Defaults applied when AssembleOptions fields are unset.
const (
	defaultMaxExpandedNodes = 250_000
	defaultRobotSpeed       = 0.5
)

// Status is the aggregate outcome of assembling a coverage path.
type Status string

const (
	// StatusComplete means every consecutive waypoint pair was connected.
	StatusComplete Status = "complete"
	// StatusPartial means at least one waypoint pair was unreachable and
	// the path has coverage gaps.
	StatusPartial Status = "partial"
	// StatusNoCoverage means the wall has no free cells to visit.
	StatusNoCoverage Status = "no_coverage"
)

// CoveragePath is the assembled trajectory for one planning request.
type CoveragePath struct {
	// Points is the ordered path in wall coordinates. Within a connected
	// stretch, consecutive points are never farther apart than one
	// diagonal grid step.
	Points []Point
	// Length is the total traveled distance, summed over connected
	// stretches only; gaps contribute nothing.
	Length float64
	// ExecutionTime estimates the traversal duration as Length divided
	// by the nominal robot speed. It is a physical estimate, not the
	// planning wall-clock time, so it is deterministic for a given input.
	ExecutionTime float64
	Status        Status
	// Gaps counts the waypoint pairs that were skipped as unreachable.
	Gaps int
}

// AssembleOptions tunes the assembly stage. A nil options value or zero
// field selects the default.
type AssembleOptions struct {
	// MaxExpandedNodes caps node expansion per segment search.
	MaxExpandedNodes int
	// RobotSpeed is the nominal travel speed used for ExecutionTime.
	RobotSpeed float64
	// Start is the cell the sweep begins from, typically the grid's
	// first free cell. When nil, the sweep begins at the first waypoint;
	// the first run is then entered at its far end and not traversed.
	Start *CellPosition
}

// Assemble searches a path between each consecutive waypoint pair and
// stitches the segments into one coverage path, deduplicating the shared
// boundary cell between adjacent segments. A waypoint positioned over a
// blocked cell, or off the grid entirely, is dropped before stitching
// rather than failing the request.
//
// An unreachable pair does not abort the request: it is recorded as a
// gap, assembly continues with the next pair, and the result carries
// StatusPartial. If no pair at all is connectable, ErrUnreachable is
// returned for the whole request. A segment exceeding the expansion cap
// aborts the remaining assembly with ErrSearchTimeout; a partial path is
// never returned as if it were complete. Cancellation of ctx is checked
// between segment searches and inside each search.
func Assemble(ctx context.Context, grid *Grid, waypoints []Waypoint, opts *AssembleOptions) (*CoveragePath, error) {
	if opts == nil {
		opts = &AssembleOptions{}
	}
	maxExpansions := opts.MaxExpandedNodes
	if maxExpansions <= 0 {
		maxExpansions = defaultMaxExpandedNodes
	}
	speed := opts.RobotSpeed
	if speed <= 0 {
		speed = defaultRobotSpeed
	}

	// Waypoint positions anchor the origin corner of their cell, so the
	// cell lookup samples the interior to keep the shared corner of four
	// cells from resolving to a neighbor.
	usable := make([]Waypoint, 0, len(waypoints))
	for _, wp := range waypoints {
		cell := grid.CellAt(wp.X+grid.Resolution/2, wp.Y+grid.Resolution/2)
		if grid.Blocked(cell) {
			continue
		}
		usable = append(usable, wp)
	}
	waypoints = usable

	if len(waypoints) == 0 {
		return &CoveragePath{Points: []Point{}, Status: StatusNoCoverage}, nil
	}
	if opts.Start != nil && *opts.Start != waypoints[0].Cell {
		waypoints = append([]Waypoint{waypointAt(grid, *opts.Start)}, waypoints...)
	}

	result := &CoveragePath{Status: StatusComplete}
	if len(waypoints) == 1 {
		result.Points = []Point{grid.WorldPos(waypoints[0].Cell)}
		return result, nil
	}

	connected := 0
	var lastCell CellPosition
	haveLast := false

	for i := 0; i < len(waypoints)-1; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cells, err := FindPath(ctx, grid, waypoints[i].Cell, waypoints[i+1].Cell, maxExpansions)
		switch {
		case errors.Is(err, ErrUnreachable):
			result.Gaps++
			result.Status = StatusPartial
			continue
		case err != nil:
			return nil, err
		}
		connected++

		for j, cell := range cells {
			if j == 0 && haveLast && cell == lastCell {
				continue // shared boundary cell with the previous segment
			}
			point := grid.WorldPos(cell)
			if j > 0 {
				// Within one segment; a gap between segments enters at
				// j == 0 and contributes no traveled distance.
				prev := result.Points[len(result.Points)-1]
				result.Length += math.Hypot(point[0]-prev[0], point[1]-prev[1])
			}
			result.Points = append(result.Points, point)
		}
		lastCell = cells[len(cells)-1]
		haveLast = true
	}

	if connected == 0 {
		return nil, fmt.Errorf("%w: no waypoint pair connectable", ErrUnreachable)
	}

	result.ExecutionTime = result.Length / speed
	return result, nil
}
