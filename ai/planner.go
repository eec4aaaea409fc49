// Package ai holds the path planners that steer autonomous snakes.
package ai

import (
	"errors"
	"fmt"

	"snake-search/game/types"

	"github.com/zyedidia/generic/mapset"
	"golang.org/x/exp/slices"
)

// ErrPathNotFound is returned when the obstacles disconnect start from goal
var ErrPathNotFound = errors.New("path not found")

// Planner computes a cell path from start to goal around the given obstacles.
//
// The returned path starts at start, ends at goal, every consecutive pair is a grid
// neighbour and no cell repeats. The goal is always enterable, even when it is a
// member of obstacles.
type Planner interface {
	FindPath(start, goal types.Cell, obstacles mapset.Set[types.Cell]) ([]types.Cell, error)
}

// New returns the planner matching the strategy, or nil for human agents
func New(strategy types.Strategy, grid types.Grid) Planner {
	switch strategy {
	case types.BFS:
		return NewBFS(grid)
	case types.AStar:
		return NewAStar(grid)
	default:
		return nil
	}
}

func checkEndpoints(grid types.Grid, start, goal types.Cell) error {
	if grid.Size <= 0 {
		return fmt.Errorf("invalid grid size %d", grid.Size)
	}
	if !grid.Contains(start) {
		return fmt.Errorf("start %v outside %dx%d grid", start, grid.Size, grid.Size)
	}
	if !grid.Contains(goal) {
		return fmt.Errorf("goal %v outside %dx%d grid", goal, grid.Size, grid.Size)
	}
	return nil
}

func notFound(start, goal types.Cell) error {
	return fmt.Errorf("%v -> %v: %w", start, goal, ErrPathNotFound)
}

// blocked reports whether the search may not enter c
func blocked(c, goal types.Cell, obstacles mapset.Set[types.Cell]) bool {
	return c != goal && obstacles.Has(c)
}

// tracePath follows parent indices from goal back to start and returns the path
// in start-to-goal order. The parent of start must be -1.
func tracePath(grid types.Grid, goal int, parentOf func(int) int) []types.Cell {
	path := make([]types.Cell, 0, 16)
	for i := goal; i != -1; i = parentOf(i) {
		path = append(path, grid.CellAt(i))
	}
	slices.Reverse(path)
	return path
}
