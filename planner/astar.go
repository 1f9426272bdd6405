package planner

import (
	"container/heap"
	"context"
	"fmt"
	"math"
)

// Movement model: 8-connected. Orthogonal steps cost one resolution unit,
// diagonal steps cost sqrt(2) resolution units. The order of this table is
// part of the determinism contract: neighbors are always generated, and
// therefore first inserted into the frontier, in this sequence.
var neighborSteps = [8]struct {
	dRow, dCol int
	diagonal   bool
}{
	{-1, 0, false},
	{1, 0, false},
	{0, -1, false},
	{0, 1, false},
	{-1, -1, true},
	{-1, 1, true},
	{1, -1, true},
	{1, 1, true},
}

// searchNode is the per-cell search state. Nodes live in an arena keyed
// by cell coordinate for the duration of one FindPath call and are not
// retained after the path is reconstructed.
type searchNode struct {
	cell   CellPosition
	g      float64 // cost from start
	h      float64 // heuristic estimate to goal
	f      float64 // g + h
	parent *searchNode

	heapIndex int
	seq       int // insertion order, final frontier tie break
	closed    bool
}

// frontier is a priority queue ordered by f, ties broken by smaller h,
// further ties by insertion order. The tie break makes the search output
// reproducible across runs with identical input.
type frontier []*searchNode

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	if q[i].h != q[j].h {
		return q[i].h < q[j].h
	}
	return q[i].seq < q[j].seq
}

func (q frontier) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].heapIndex = i
	q[j].heapIndex = j
}

func (q *frontier) Push(x any) {
	node := x.(*searchNode)
	node.heapIndex = len(*q)
	*q = append(*q, node)
}

func (q *frontier) Pop() any {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return node
}

// heuristic is the Euclidean distance between two cells scaled to step
// costs. It is admissible and consistent for the 8-connected model with
// sqrt(2) diagonal cost, so the search is cost optimal and popped f
// values are non-decreasing.
func heuristic(from, to CellPosition, resolution float64) float64 {
	dRow := float64(from.Row - to.Row)
	dCol := float64(from.Col - to.Col)
	return math.Sqrt(dRow*dRow+dCol*dCol) * resolution
}

// FindPath runs A* over the grid from start to goal and returns the
// cost-optimal cell sequence, both endpoints included. It fails with
// ErrUnreachable when the frontier empties before the goal is reached and
// with ErrSearchTimeout when more than maxExpansions nodes have been
// finalized, so a pathological layout cannot expand unboundedly. Both
// endpoints must be in-bounds, unblocked cells.
func FindPath(ctx context.Context, grid *Grid, start, goal CellPosition, maxExpansions int) ([]CellPosition, error) {
	if maxExpansions <= 0 {
		maxExpansions = defaultMaxExpandedNodes
	}
	if !grid.InBounds(start) || !grid.InBounds(goal) {
		return nil, fmt.Errorf("%w: search endpoints (%d,%d)->(%d,%d) outside %dx%d grid",
			ErrInvalidConfig, start.Row, start.Col, goal.Row, goal.Col, grid.Rows, grid.Cols)
	}
	if grid.Blocked(start) {
		return nil, fmt.Errorf("%w: start cell (%d,%d) is blocked", ErrInvalidObstacle, start.Row, start.Col)
	}
	if grid.Blocked(goal) {
		return nil, fmt.Errorf("%w: goal cell (%d,%d) is blocked", ErrInvalidObstacle, goal.Row, goal.Col)
	}

	arena := map[CellPosition]*searchNode{}
	open := make(frontier, 0, 64)
	heap.Init(&open)

	seq := 0
	startNode := &searchNode{cell: start, h: heuristic(start, goal, grid.Resolution), seq: seq}
	startNode.f = startNode.h
	arena[start] = startNode
	heap.Push(&open, startNode)

	expanded := 0
	for open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := heap.Pop(&open).(*searchNode)
		current.closed = true

		if current.cell == goal {
			return reconstructPath(current), nil
		}

		expanded++
		if expanded > maxExpansions {
			return nil, fmt.Errorf("%w: expansion cap %d exceeded", ErrSearchTimeout, maxExpansions)
		}

		for _, step := range neighborSteps {
			next := CellPosition{Row: current.cell.Row + step.dRow, Col: current.cell.Col + step.dCol}
			if grid.Blocked(next) {
				continue
			}

			stepCost := grid.Resolution
			if step.diagonal {
				stepCost *= math.Sqrt2
			}
			tentative := current.g + stepCost

			node, seen := arena[next]
			if !seen {
				seq++
				node = &searchNode{
					cell:   next,
					g:      tentative,
					h:      heuristic(next, goal, grid.Resolution),
					parent: current,
					seq:    seq,
				}
				node.f = node.g + node.h
				arena[next] = node
				heap.Push(&open, node)
				continue
			}
			if node.closed || tentative >= node.g {
				continue
			}
			// Found a cheaper route to a cell still in the frontier:
			// relax it in place rather than pushing a duplicate.
			node.g = tentative
			node.f = tentative + node.h
			node.parent = current
			heap.Fix(&open, node.heapIndex)
		}
	}

	return nil, fmt.Errorf("%w: no route from (%d,%d) to (%d,%d)",
		ErrUnreachable, start.Row, start.Col, goal.Row, goal.Col)
}

// reconstructPath walks parent links iteratively, so deep paths on large
// grids cannot overflow the stack, and returns cells start first.
func reconstructPath(goal *searchNode) []CellPosition {
	var cells []CellPosition
	for node := goal; node != nil; node = node.parent {
		cells = append(cells, node.cell)
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}
