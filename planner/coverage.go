package planner

// Waypoint is a target the coverage scan wants visited, used as an A*
// start or goal endpoint. It always maps to an unblocked cell.
type Waypoint struct {
	Cell CellPosition
	X    float64
	Y    float64
}

// Sequence produces the boustrophedon coverage order for a grid. Rows are
// scanned top to bottom, alternating direction (left to right on even row
// indices, right to left on odd). Within a row, one waypoint is emitted
// per maximal run of contiguous free cells, at the run's far end in the
// row's travel direction; blocked runs are skipped entirely.
//
// A fully blocked grid yields an empty sequence, which downstream stages
// treat as a valid "no coverage possible" result.
func Sequence(grid *Grid) []Waypoint {
	var waypoints []Waypoint

	for row := 0; row < grid.Rows; row++ {
		col, step := 0, 1
		if row%2 == 1 {
			col, step = grid.Cols-1, -1
		}

		inRun := false
		var runEnd CellPosition
		for ; col >= 0 && col < grid.Cols; col += step {
			pos := CellPosition{Row: row, Col: col}
			if grid.Blocked(pos) {
				if inRun {
					waypoints = append(waypoints, waypointAt(grid, runEnd))
					inRun = false
				}
				continue
			}
			runEnd = pos
			inRun = true
		}
		if inRun {
			waypoints = append(waypoints, waypointAt(grid, runEnd))
		}
	}

	return waypoints
}

func waypointAt(grid *Grid, cell CellPosition) Waypoint {
	world := grid.WorldPos(cell)
	return Waypoint{Cell: cell, X: world[0], Y: world[1]}
}
