package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
)

func TestNeighborsWrapAroundClosure(t *testing.T) {
	for _, n := range []int{3, 4, 5, 10, 20} {
		g := NewGrid(n)
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				c := Cell{X: x, Y: y}
				got := g.Neighbors(c, mapset.Set[Cell]{})
				require.Len(t, got, 4, "cell %v on %dx%d", c, n, n)

				seen := mapset.New[Cell]()
				for _, nb := range got {
					assert.True(t, g.Contains(nb), "neighbour %v of %v out of range", nb, c)
					assert.Equal(t, 1, g.WrappedDistance(c, nb))
					seen.Put(nb)
				}
				assert.Equal(t, 4, seen.Size(), "neighbours of %v not distinct", c)
			}
		}
	}
}

func TestNeighborsCanonicalOrder(t *testing.T) {
	g := NewGrid(5)

	got := g.Neighbors(Cell{X: 2, Y: 2}, mapset.Set[Cell]{})
	assert.Equal(t, []Cell{{3, 2}, {2, 3}, {1, 2}, {2, 1}}, got)

	// corner wraps on both axes
	got = g.Neighbors(Cell{X: 0, Y: 0}, mapset.Set[Cell]{})
	assert.Equal(t, []Cell{{1, 0}, {0, 1}, {4, 0}, {0, 4}}, got)

	got = g.Neighbors(Cell{X: 4, Y: 4}, mapset.Set[Cell]{})
	assert.Equal(t, []Cell{{0, 4}, {4, 0}, {3, 4}, {4, 3}}, got)
}

func TestNeighborsSkipsObstacles(t *testing.T) {
	g := NewGrid(5)
	obstacles := mapset.Of(Cell{X: 3, Y: 2}, Cell{X: 2, Y: 1}, Cell{X: 0, Y: 0})

	got := g.Neighbors(Cell{X: 2, Y: 2}, obstacles)
	assert.Equal(t, []Cell{{2, 3}, {1, 2}}, got)

	// obstacle reached through the wrap
	got = g.Neighbors(Cell{X: 4, Y: 0}, obstacles)
	assert.NotContains(t, got, Cell{X: 0, Y: 0})
	assert.Len(t, got, 3)
}

func TestWrap(t *testing.T) {
	g := NewGrid(20)
	tests := []struct {
		in, want Cell
	}{
		{Cell{-1, 5}, Cell{19, 5}},
		{Cell{20, 5}, Cell{0, 5}},
		{Cell{5, -1}, Cell{5, 19}},
		{Cell{5, 20}, Cell{5, 0}},
		{Cell{-21, 41}, Cell{19, 1}},
		{Cell{7, 7}, Cell{7, 7}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.Wrap(tt.in), "wrap %v", tt.in)
	}
}

func TestStepIgnoresObstacles(t *testing.T) {
	g := NewGrid(5)
	assert.Equal(t, Cell{X: 0, Y: 2}, g.Step(Cell{X: 4, Y: 2}, RIGHT))
	assert.Equal(t, Cell{X: 4, Y: 2}, g.Step(Cell{X: 0, Y: 2}, LEFT))
	assert.Equal(t, Cell{X: 2, Y: 4}, g.Step(Cell{X: 2, Y: 0}, UP))
	assert.Equal(t, Cell{X: 2, Y: 0}, g.Step(Cell{X: 2, Y: 4}, DOWN))
}

func TestDirectionBetween(t *testing.T) {
	g := NewGrid(5)

	d, ok := g.DirectionBetween(Cell{4, 1}, Cell{0, 1})
	require.True(t, ok)
	assert.Equal(t, RIGHT, d)

	d, ok = g.DirectionBetween(Cell{1, 0}, Cell{1, 4})
	require.True(t, ok)
	assert.Equal(t, UP, d)

	_, ok = g.DirectionBetween(Cell{1, 1}, Cell{3, 1})
	assert.False(t, ok)
	_, ok = g.DirectionBetween(Cell{1, 1}, Cell{2, 2})
	assert.False(t, ok)
	_, ok = g.DirectionBetween(Cell{1, 1}, Cell{1, 1})
	assert.False(t, ok)
}

func TestWrappedDistance(t *testing.T) {
	g := NewGrid(10)
	assert.Equal(t, 0, g.WrappedDistance(Cell{3, 3}, Cell{3, 3}))
	assert.Equal(t, 1, g.WrappedDistance(Cell{0, 0}, Cell{9, 0}))
	assert.Equal(t, 2, g.WrappedDistance(Cell{0, 0}, Cell{9, 9}))
	assert.Equal(t, 10, g.WrappedDistance(Cell{0, 0}, Cell{5, 5}))
	assert.Equal(t, 9, Manhattan(Cell{0, 0}, Cell{9, 0}))
}

func TestIndexRoundTrip(t *testing.T) {
	g := NewGrid(7)
	for i := 0; i < g.Cells(); i++ {
		assert.Equal(t, i, g.Index(g.CellAt(i)))
	}
}

func TestDirectionHelpers(t *testing.T) {
	for _, d := range Directions() {
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.NotEqual(t, d, d.Opposite())
		assert.Equal(t, d, d.TurnLeft().TurnRight())

		back, ok := FromDelta(d.ToPoint())
		require.True(t, ok)
		assert.Equal(t, d, back)

		parsed, err := ParseDirection(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	}
	assert.Equal(t, LEFT, RIGHT.Opposite())
	assert.Equal(t, DOWN, UP.Opposite())

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}

func TestParseStrategy(t *testing.T) {
	for name, want := range map[string]Strategy{"human": Human, "BFS": BFS, " astar ": AStar, "a*": AStar} {
		got, err := ParseStrategy(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
	}
	_, err := ParseStrategy("dijkstra")
	assert.Error(t, err)

	assert.True(t, BFS.Autonomous())
	assert.True(t, AStar.Autonomous())
	assert.False(t, Human.Autonomous())
}
