package ai

import (
	"snake-search/game/types"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// BFS finds shortest paths in step count with a breadth-first search
type BFS struct {
	Grid types.Grid
}

func NewBFS(grid types.Grid) *BFS {
	return &BFS{Grid: grid}
}

// FindPath returns the first path found to goal, which is optimal in edge count.
// Neighbours are enqueued in the grid's canonical order so replays are reproducible.
func (b *BFS) FindPath(start, goal types.Cell, obstacles mapset.Set[types.Cell]) ([]types.Cell, error) {
	if err := checkEndpoints(b.Grid, start, goal); err != nil {
		return nil, err
	}
	if start == goal {
		return []types.Cell{start}, nil
	}

	size := b.Grid.Cells()
	parent := make([]int, size)
	explored := make([]bool, size)

	startIdx := b.Grid.Index(start)
	goalIdx := b.Grid.Index(goal)
	parent[startIdx] = -1
	explored[startIdx] = true

	frontier := queue.New[types.Cell]()
	frontier.Enqueue(start)

	for !frontier.Empty() {
		current := frontier.Dequeue()
		currentIdx := b.Grid.Index(current)

		for _, d := range types.Directions() {
			next := b.Grid.Step(current, d)
			nextIdx := b.Grid.Index(next)
			if explored[nextIdx] || blocked(next, goal, obstacles) {
				continue
			}
			explored[nextIdx] = true
			parent[nextIdx] = currentIdx

			// First discovery of the goal is already a shortest path
			if nextIdx == goalIdx {
				return tracePath(b.Grid, goalIdx, func(i int) int { return parent[i] }), nil
			}
			frontier.Enqueue(next)
		}
	}

	return nil, notFound(start, goal)
}
