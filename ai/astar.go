package ai

import (
	"snake-search/game/types"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

// Heuristic estimates the remaining step count from a cell to the goal
type Heuristic func(from, goal types.Cell) int

// AStar is a best-first search ordered by f = g + h.
//
// The default heuristic is the raw Manhattan distance, which ignores the wrap-around
// and can overestimate near the edges, so paths are always valid but not always
// shortest. Use Grid.WrappedDistance as Heuristic for optimal paths.
type AStar struct {
	Grid      types.Grid
	Heuristic Heuristic
}

func NewAStar(grid types.Grid) *AStar {
	return &AStar{Grid: grid, Heuristic: types.Manhattan}
}

type nodeState uint8

const (
	unseen nodeState = iota
	open
	closed
)

// searchNode lives in a per-call arena indexed by flat cell index
type searchNode struct {
	parent int
	g, h   int
	seq    int // insertion sequence of the live open-list key
	state  nodeState
}

func (n *searchNode) f() int {
	return n.g + n.h
}

type openKey struct {
	idx  int
	f, h int
	seq  int
}

// lower f first, then lower h, then earlier insertion
func lessKey(a, b openKey) bool {
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

// FindPath expands cells by lowest f until the goal is taken off the open list.
//
// A neighbour that is already open keeps its entry unless the new path improves its
// g, in which case parent, g and key are updated in the arena. Keys superseded by an
// update are skipped when popped.
func (a *AStar) FindPath(start, goal types.Cell, obstacles mapset.Set[types.Cell]) ([]types.Cell, error) {
	if err := checkEndpoints(a.Grid, start, goal); err != nil {
		return nil, err
	}
	if start == goal {
		return []types.Cell{start}, nil
	}

	h := a.Heuristic
	if h == nil {
		h = types.Manhattan
	}

	nodes := make([]searchNode, a.Grid.Cells())
	openList := heap.New[openKey](lessKey)
	seq := 0

	startIdx := a.Grid.Index(start)
	goalIdx := a.Grid.Index(goal)
	nodes[startIdx] = searchNode{parent: -1, g: 0, h: h(start, goal), seq: seq, state: open}
	openList.Push(openKey{idx: startIdx, f: nodes[startIdx].f(), h: nodes[startIdx].h, seq: seq})

	for openList.Size() > 0 {
		key, _ := openList.Pop()
		current := &nodes[key.idx]
		if current.state != open || key.seq != current.seq {
			continue // Stale entry
		}
		if key.idx == goalIdx {
			return tracePath(a.Grid, goalIdx, func(i int) int { return nodes[i].parent }), nil
		}
		current.state = closed

		cell := a.Grid.CellAt(key.idx)
		for _, d := range types.Directions() {
			next := a.Grid.Step(cell, d)
			if blocked(next, goal, obstacles) {
				continue
			}
			nextIdx := a.Grid.Index(next)
			n := &nodes[nextIdx]
			if n.state == closed {
				continue
			}

			g := current.g + 1
			if n.state == open && g >= n.g {
				continue
			}

			seq++
			if n.state == unseen {
				n.h = h(next, goal)
			}
			n.parent = key.idx
			n.g = g
			n.seq = seq
			n.state = open
			openList.Push(openKey{idx: nextIdx, f: n.f(), h: n.h, seq: seq})
		}
	}

	return nil, notFound(start, goal)
}
