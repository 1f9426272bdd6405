package planner

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assembleWall(t *testing.T, cfg WallConfig, resolution float64, opts *AssembleOptions) (*Grid, *CoveragePath, error) {
	t.Helper()
	grid, err := BuildGrid(cfg, resolution, 0)
	require.NoError(t, err)
	if opts == nil {
		opts = &AssembleOptions{}
	}
	if start, ok := grid.FirstFreeCell(); ok {
		opts.Start = &start
	}
	result, err := Assemble(context.Background(), grid, Sequence(grid), opts)
	return grid, result, err
}

func TestAssemble(t *testing.T) {
	t.Run("open wall is swept row by row", func(t *testing.T) {
		grid, result, err := assembleWall(t, WallConfig{Width: 1, Height: 1}, 0.1, nil)
		require.NoError(t, err)

		assert.Equal(t, StatusComplete, result.Status)
		assert.Zero(t, result.Gaps)

		// A serpentine sweep travels roughly the wall width once per row.
		expected := float64(grid.Rows) * 1.0
		assert.InDelta(t, expected, result.Length, 1.0)

		// Consecutive points never exceed one diagonal grid step.
		maxStep := grid.Resolution*math.Sqrt2 + 1e-9
		for i := 1; i < len(result.Points); i++ {
			dx := result.Points[i][0] - result.Points[i-1][0]
			dy := result.Points[i][1] - result.Points[i-1][1]
			assert.LessOrEqual(t, math.Hypot(dx, dy), maxStep)
		}

		assert.InDelta(t, result.Length/0.5, result.ExecutionTime, 1e-9)
	})

	t.Run("avoids a rasterized obstacle", func(t *testing.T) {
		cfg := WallConfig{
			Width: 5, Height: 5,
			Obstacles: []Obstacle{{X: 2.0, Y: 2.0, Width: 0.5, Height: 0.5}},
		}
		_, result, err := assembleWall(t, cfg, 0.1, nil)
		require.NoError(t, err, "the obstacle does not partition the wall")

		assert.Equal(t, StatusComplete, result.Status)
		for _, p := range result.Points {
			inside := p[0] >= 2.0 && p[0] < 2.5 && p[1] >= 2.0 && p[1] < 2.5
			assert.False(t, inside, "path enters the blocked range at (%v,%v)", p[0], p[1])
		}
	})

	t.Run("fully blocked wall yields an empty no-coverage result", func(t *testing.T) {
		cfg := WallConfig{
			Width: 1, Height: 1,
			Obstacles: []Obstacle{{X: 0, Y: 0, Width: 1, Height: 1}},
		}
		_, result, err := assembleWall(t, cfg, 0.1, nil)
		require.NoError(t, err)

		assert.Equal(t, StatusNoCoverage, result.Status)
		assert.Empty(t, result.Points)
		assert.Zero(t, result.Length)
	})

	t.Run("partition degrades to partial coverage", func(t *testing.T) {
		// A full-width obstacle splits the wall into a top and a bottom
		// region with no connecting route.
		cfg := WallConfig{
			Width: 1, Height: 1,
			Obstacles: []Obstacle{{X: 0, Y: 0.4, Width: 1, Height: 0.1}},
		}
		_, result, err := assembleWall(t, cfg, 0.1, nil)
		require.NoError(t, err)

		assert.Equal(t, StatusPartial, result.Status)
		assert.Equal(t, 1, result.Gaps)
		assert.NotEmpty(t, result.Points)
	})

	t.Run("reports unreachable when no waypoint pair connects", func(t *testing.T) {
		// A blocked middle row and middle column isolate all four
		// corner cells from each other.
		cfg := WallConfig{
			Width: 0.3, Height: 0.3,
			Obstacles: []Obstacle{
				{X: 0, Y: 0.1, Width: 0.3, Height: 0.1},
				{X: 0.1, Y: 0, Width: 0.1, Height: 0.3},
			},
		}
		_, _, err := assembleWall(t, cfg, 0.1, nil)
		assert.ErrorIs(t, err, ErrUnreachable)
	})

	t.Run("segment timeout aborts the whole assembly", func(t *testing.T) {
		_, _, err := assembleWall(t, WallConfig{Width: 1, Height: 1}, 0.1, &AssembleOptions{MaxExpandedNodes: 1})
		assert.ErrorIs(t, err, ErrSearchTimeout)
	})

	t.Run("single free cell yields a one-point complete path", func(t *testing.T) {
		_, result, err := assembleWall(t, WallConfig{Width: 0.1, Height: 0.1}, 0.1, nil)
		require.NoError(t, err)

		assert.Equal(t, StatusComplete, result.Status)
		assert.Len(t, result.Points, 1)
		assert.Zero(t, result.Length)
	})

	t.Run("identical input yields byte-identical path data", func(t *testing.T) {
		cfg := WallConfig{
			Width: 2, Height: 2,
			Obstacles: []Obstacle{
				{X: 0.5, Y: 0.5, Width: 0.3, Height: 0.8},
				{X: 1.4, Y: 1.0, Width: 0.2, Height: 0.5},
			},
		}

		_, first, err := assembleWall(t, cfg, 0.1, nil)
		require.NoError(t, err)
		_, second, err := assembleWall(t, cfg, 0.1, nil)
		require.NoError(t, err)

		firstJSON, err := json.Marshal(first.Points)
		require.NoError(t, err)
		secondJSON, err := json.Marshal(second.Points)
		require.NoError(t, err)
		assert.Equal(t, firstJSON, secondJSON)
	})

	t.Run("stops between segments when the context is canceled", func(t *testing.T) {
		grid, err := BuildGrid(WallConfig{Width: 1, Height: 1}, 0.1, 0)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = Assemble(ctx, grid, Sequence(grid), nil)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("drops waypoints positioned over blocked or off-grid cells", func(t *testing.T) {
		cfg := WallConfig{
			Width: 0.5, Height: 0.5,
			Obstacles: []Obstacle{{X: 0.2, Y: 0.2, Width: 0.1, Height: 0.1}},
		}
		grid, err := BuildGrid(cfg, 0.1, 0)
		require.NoError(t, err)

		waypoints := []Waypoint{
			waypointAt(grid, CellPosition{Row: 0, Col: 0}),
			waypointAt(grid, CellPosition{Row: 2, Col: 2}), // over the obstacle
			{Cell: CellPosition{Row: 9, Col: 9}, X: 0.9, Y: 0.9}, // off the grid
			waypointAt(grid, CellPosition{Row: 4, Col: 0}),
		}
		result, err := Assemble(context.Background(), grid, waypoints, nil)
		require.NoError(t, err)

		assert.Equal(t, StatusComplete, result.Status)
		assert.Zero(t, result.Gaps)
		for _, p := range result.Points {
			onBlocked := p[0] >= 0.2 && p[0] < 0.3 && p[1] >= 0.2 && p[1] < 0.3
			assert.False(t, onBlocked, "path visits the dropped waypoint at (%v,%v)", p[0], p[1])
			assert.Less(t, p[0], 0.5)
			assert.Less(t, p[1], 0.5)
		}
	})

	t.Run("no waypoints is a valid empty result", func(t *testing.T) {
		grid, err := BuildGrid(WallConfig{Width: 1, Height: 1}, 0.1, 0)
		require.NoError(t, err)

		result, err := Assemble(context.Background(), grid, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, StatusNoCoverage, result.Status)
		assert.Empty(t, result.Points)
	})
}
