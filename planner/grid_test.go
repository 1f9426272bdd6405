package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGrid(t *testing.T) {
	t.Run("rejects non-positive wall dimensions", func(t *testing.T) {
		_, err := BuildGrid(WallConfig{Width: 0, Height: 5}, 0.1, 0)
		assert.ErrorIs(t, err, ErrInvalidConfig)

		_, err = BuildGrid(WallConfig{Width: 5, Height: -1}, 0.1, 0)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("rejects non-positive resolution", func(t *testing.T) {
		_, err := BuildGrid(WallConfig{Width: 5, Height: 5}, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("rejects obstacle with non-positive dimensions", func(t *testing.T) {
		cfg := WallConfig{
			Width: 5, Height: 5,
			Obstacles: []Obstacle{{X: 1, Y: 1, Width: 0, Height: 1}},
		}
		_, err := BuildGrid(cfg, 0.1, 0)
		assert.ErrorIs(t, err, ErrInvalidObstacle)
	})

	t.Run("rejects obstacle outside the wall", func(t *testing.T) {
		cfg := WallConfig{
			Width: 5, Height: 5,
			Obstacles: []Obstacle{{X: 4.8, Y: 1, Width: 0.5, Height: 0.5}},
		}
		_, err := BuildGrid(cfg, 0.1, 0)
		assert.ErrorIs(t, err, ErrInvalidObstacle)
	})

	t.Run("grid size rounds wall dimensions up", func(t *testing.T) {
		grid, err := BuildGrid(WallConfig{Width: 1.01, Height: 1}, 0.1, 0)
		require.NoError(t, err)
		assert.Equal(t, 11, grid.Cols)
		assert.Equal(t, 10, grid.Rows)
	})

	t.Run("rasterizes obstacle conservatively", func(t *testing.T) {
		cfg := WallConfig{
			Width: 5, Height: 5,
			Obstacles: []Obstacle{{X: 2.0, Y: 2.0, Width: 0.5, Height: 0.5}},
		}
		grid, err := BuildGrid(cfg, 0.1, 0)
		require.NoError(t, err)

		// The obstacle covers [2.0, 2.5) x [2.0, 2.5): exactly cells
		// 20..24 in both axes.
		for row := 20; row <= 24; row++ {
			for col := 20; col <= 24; col++ {
				assert.True(t, grid.Blocked(CellPosition{Row: row, Col: col}))
			}
		}
		assert.False(t, grid.Blocked(CellPosition{Row: 19, Col: 22}))
		assert.False(t, grid.Blocked(CellPosition{Row: 25, Col: 22}))
		assert.False(t, grid.Blocked(CellPosition{Row: 22, Col: 19}))
		assert.False(t, grid.Blocked(CellPosition{Row: 22, Col: 25}))
	})

	t.Run("partial overlap blocks the whole cell", func(t *testing.T) {
		cfg := WallConfig{
			Width: 1, Height: 1,
			Obstacles: []Obstacle{{X: 0.05, Y: 0.05, Width: 0.01, Height: 0.01}},
		}
		grid, err := BuildGrid(cfg, 0.1, 0)
		require.NoError(t, err)

		assert.True(t, grid.Blocked(CellPosition{Row: 0, Col: 0}))
		assert.Equal(t, grid.Rows*grid.Cols-1, grid.FreeCells())
	})

	t.Run("safety margin expands the blocked region", func(t *testing.T) {
		cfg := WallConfig{
			Width: 1, Height: 1,
			Obstacles: []Obstacle{{X: 0.4, Y: 0.4, Width: 0.1, Height: 0.1}},
		}
		grid, err := BuildGrid(cfg, 0.1, 1)
		require.NoError(t, err)

		for row := 3; row <= 5; row++ {
			for col := 3; col <= 5; col++ {
				assert.True(t, grid.Blocked(CellPosition{Row: row, Col: col}))
			}
		}
		assert.False(t, grid.Blocked(CellPosition{Row: 2, Col: 4}))
	})

	t.Run("obstacle filling the wall blocks every cell", func(t *testing.T) {
		cfg := WallConfig{
			Width: 1, Height: 1,
			Obstacles: []Obstacle{{X: 0, Y: 0, Width: 1, Height: 1}},
		}
		grid, err := BuildGrid(cfg, 0.1, 0)
		require.NoError(t, err)
		assert.Zero(t, grid.FreeCells())
	})

	t.Run("out of bounds cells read as blocked", func(t *testing.T) {
		grid, err := BuildGrid(WallConfig{Width: 1, Height: 1}, 0.1, 0)
		require.NoError(t, err)
		assert.True(t, grid.Blocked(CellPosition{Row: -1, Col: 0}))
		assert.True(t, grid.Blocked(CellPosition{Row: 0, Col: 10}))
	})
}

func TestGridCoordinateMapping(t *testing.T) {
	grid, err := BuildGrid(WallConfig{Width: 2, Height: 1}, 0.5, 0)
	require.NoError(t, err)

	assert.Equal(t, Point{1.5, 0.5}, grid.WorldPos(CellPosition{Row: 1, Col: 3}))
	assert.Equal(t, CellPosition{Row: 1, Col: 3}, grid.CellAt(1.5, 0.5))
	assert.Equal(t, CellPosition{Row: 0, Col: 0}, grid.CellAt(0.49, 0.49))
}
