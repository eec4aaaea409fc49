package types

import "github.com/zyedidia/generic/mapset"

// Grid is the toroidal arena: Size squares per side, coordinates in [0, Size)
type Grid struct {
	Size int
}

// NewGrid returns a square toroidal grid
func NewGrid(size int) Grid {
	return Grid{Size: size}
}

// Cells returns the number of squares in the arena
func (g Grid) Cells() int {
	return g.Size * g.Size
}

// Contains reports whether c lies inside the arena without wrapping
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.Size && c.Y >= 0 && c.Y < g.Size
}

// Wrap folds each axis of c back into [0, Size)
func (g Grid) Wrap(c Cell) Cell {
	return Cell{X: wrapAxis(c.X, g.Size), Y: wrapAxis(c.Y, g.Size)}
}

func wrapAxis(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Step returns the wrapped neighbour of c along d. Obstacles are not consulted.
func (g Grid) Step(c Cell, d Direction) Cell {
	return g.Wrap(c.Add(d.ToPoint()))
}

// Neighbors returns the wrapped neighbours of c that are not in obstacles, in the
// canonical order right, down, left, up. The zero Set means no obstacles.
func (g Grid) Neighbors(c Cell, obstacles mapset.Set[Cell]) []Cell {
	out := make([]Cell, 0, 4)
	for _, d := range neighborOrder {
		next := g.Step(c, d)
		if obstacles.Has(next) {
			continue
		}
		out = append(out, next)
	}
	return out
}

// DirectionBetween returns the move that takes a to b in one wrapped step
func (g Grid) DirectionBetween(a, b Cell) (Direction, bool) {
	for _, d := range neighborOrder {
		if g.Step(a, d) == b {
			return d, true
		}
	}
	return NONE, false
}

// Index flattens c into [0, Size*Size) for arena lookups
func (g Grid) Index(c Cell) int {
	return c.Y*g.Size + c.X
}

// CellAt is the inverse of Index
func (g Grid) CellAt(i int) Cell {
	return Cell{X: i % g.Size, Y: i / g.Size}
}

// WrappedDistance computes the Manhattan distance between two cells taking the
// wrap-around into account
func (g Grid) WrappedDistance(a, b Cell) int {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)

	if dx > g.Size/2 {
		dx = g.Size - dx
	}
	if dy > g.Size/2 {
		dy = g.Size - dy
	}

	return dx + dy
}

// Manhattan is the raw (unwrapped) Manhattan distance
func Manhattan(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
