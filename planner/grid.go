// Package planner implements the coverage planning pipeline: rasterizing a
// wall into a traversability grid, sequencing coverage waypoints over it,
// searching collision-free segments between them with A*, and assembling
// the segments into one trajectory. Every stage is a pure function of its
// input; nothing here holds state across invocations.
package planner

import (
	"fmt"
	"math"
)

// Obstacle is an axis-aligned rectangular exclusion zone within a wall.
type Obstacle struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// WallConfig describes the rectangular surface to cover and its obstacles.
type WallConfig struct {
	Width     float64    `json:"width" bson:"width"`
	Height    float64    `json:"height" bson:"height"`
	Obstacles []Obstacle `json:"obstacles" bson:"obstacles"`
}

// CellPosition identifies a single grid cell.
type CellPosition struct {
	Row int
	Col int
}

// Point is a planar (x, y) coordinate in wall units. It marshals as a
// two-element array, which is the wire and storage layout for path data.
type Point [2]float64

// Grid is the traversability discretization of a wall at a fixed
// resolution. It is immutable once built.
type Grid struct {
	Rows       int
	Cols       int
	Resolution float64

	blocked []bool // row-major
}

// InBounds reports whether pos refers to a cell of the grid.
func (g *Grid) InBounds(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < g.Rows && pos.Col >= 0 && pos.Col < g.Cols
}

// Blocked reports whether the cell at pos overlaps an obstacle. Out of
// bounds positions are treated as blocked.
func (g *Grid) Blocked(pos CellPosition) bool {
	if !g.InBounds(pos) {
		return true
	}
	return g.blocked[pos.Row*g.Cols+pos.Col]
}

// WorldPos maps a cell to the wall coordinate of its origin corner.
func (g *Grid) WorldPos(pos CellPosition) Point {
	return Point{float64(pos.Col) * g.Resolution, float64(pos.Row) * g.Resolution}
}

// CellAt maps a wall coordinate to the cell containing it.
func (g *Grid) CellAt(x, y float64) CellPosition {
	return CellPosition{
		Row: int(math.Floor(y / g.Resolution)),
		Col: int(math.Floor(x / g.Resolution)),
	}
}

// FirstFreeCell returns the first unblocked cell in row-major scan order,
// the deterministic home position a coverage sweep starts from. The
// second return value is false when every cell is blocked.
func (g *Grid) FirstFreeCell() (CellPosition, bool) {
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if !g.blocked[row*g.Cols+col] {
				return CellPosition{Row: row, Col: col}, true
			}
		}
	}
	return CellPosition{}, false
}

// FreeCells counts the unblocked cells of the grid.
func (g *Grid) FreeCells() int {
	free := 0
	for _, b := range g.blocked {
		if !b {
			free++
		}
	}
	return free
}

// BuildGrid rasterizes a wall and its obstacles into a traversability
// grid of ceil(height/resolution) rows by ceil(width/resolution) columns.
// Rasterization is conservative: any cell whose area overlaps an obstacle
// rectangle is blocked, plus margin extra cells around it on every side.
//
// Returns ErrInvalidConfig for a non-positive resolution or wall, and
// ErrInvalidObstacle, identifying the obstacle by index, for an obstacle
// with non-positive dimensions or one not fully contained in the wall.
func BuildGrid(cfg WallConfig, resolution float64, margin int) (*Grid, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("%w: resolution must be positive, got %v", ErrInvalidConfig, resolution)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: wall dimensions must be positive, got %vx%v", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	if margin < 0 {
		margin = 0
	}

	grid := &Grid{
		Rows:       int(math.Ceil(cfg.Height / resolution)),
		Cols:       int(math.Ceil(cfg.Width / resolution)),
		Resolution: resolution,
	}
	grid.blocked = make([]bool, grid.Rows*grid.Cols)

	for idx, obs := range cfg.Obstacles {
		if obs.Width <= 0 || obs.Height <= 0 {
			return nil, fmt.Errorf("%w: obstacle %d has non-positive dimensions %vx%v", ErrInvalidObstacle, idx, obs.Width, obs.Height)
		}
		if obs.X < 0 || obs.Y < 0 || obs.X+obs.Width > cfg.Width || obs.Y+obs.Height > cfg.Height {
			return nil, fmt.Errorf("%w: obstacle %d is not fully contained in the wall", ErrInvalidObstacle, idx)
		}
		grid.markObstacle(obs, margin)
	}

	return grid, nil
}

// markObstacle blocks every cell whose area overlaps the obstacle
// rectangle. A cell covers the half-open square [col·r, (col+1)·r) x
// [row·r, (row+1)·r), so a touching edge with zero overlap area does not
// block the cell.
func (g *Grid) markObstacle(obs Obstacle, margin int) {
	colStart := int(math.Floor(obs.X/g.Resolution)) - margin
	colEnd := int(math.Ceil((obs.X+obs.Width)/g.Resolution)) - 1 + margin
	rowStart := int(math.Floor(obs.Y/g.Resolution)) - margin
	rowEnd := int(math.Ceil((obs.Y+obs.Height)/g.Resolution)) - 1 + margin

	colStart = max(colStart, 0)
	rowStart = max(rowStart, 0)
	colEnd = min(colEnd, g.Cols-1)
	rowEnd = min(rowEnd, g.Rows-1)

	for row := rowStart; row <= rowEnd; row++ {
		for col := colStart; col <= colEnd; col++ {
			g.blocked[row*g.Cols+col] = true
		}
	}
}
