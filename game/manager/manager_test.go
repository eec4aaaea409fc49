package manager

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"snake-search/game/entity"
	"snake-search/game/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"
	"golang.org/x/exp/rand"
)

func newSnake(head types.Cell, grid types.Grid) *entity.Snake {
	return entity.NewSnake(head, 3, types.Human, grid, entity.Color{})
}

func TestCheckCollision(t *testing.T) {
	grid := types.NewGrid(5)
	walls := mapset.Of(types.Cell{X: 3, Y: 2})
	cm := NewCollisionManager(grid, walls)

	s := newSnake(types.Cell{X: 2, Y: 2}, grid)
	other := newSnake(types.Cell{X: 2, Y: 4}, grid)
	snakes := []*entity.Snake{s, other}

	assert.Equal(t, entity.WallCollision, cm.CheckCollision(types.Cell{X: 3, Y: 2}, s, snakes))
	assert.Equal(t, entity.SelfCollision, cm.CheckCollision(types.Cell{X: 1, Y: 2}, s, snakes))
	assert.Equal(t, entity.SnakeCollision, cm.CheckCollision(types.Cell{X: 1, Y: 4}, s, snakes))
	assert.Equal(t, entity.NoCollision, cm.CheckCollision(types.Cell{X: 2, Y: 1}, s, snakes))

	other.Kill(entity.WallCollision)
	assert.Equal(t, entity.NoCollision, cm.CheckCollision(types.Cell{X: 1, Y: 4}, s, snakes))
}

func TestCheckCollisionTail(t *testing.T) {
	grid := types.NewGrid(5)
	cm := NewCollisionManager(grid, mapset.New[types.Cell]())
	s := newSnake(types.Cell{X: 2, Y: 2}, grid)
	tail := s.GetTail()

	assert.Equal(t, entity.NoCollision, cm.CheckCollision(tail, s, []*entity.Snake{s}))

	s.Growing = true
	assert.Equal(t, entity.SelfCollision, cm.CheckCollision(tail, s, []*entity.Snake{s}))
}

func TestObstacles(t *testing.T) {
	grid := types.NewGrid(5)
	cm := NewCollisionManager(grid, mapset.Of(types.Cell{X: 0, Y: 0}))
	a := newSnake(types.Cell{X: 2, Y: 2}, grid)
	b := newSnake(types.Cell{X: 2, Y: 4}, grid)

	obstacles := cm.Obstacles([]*entity.Snake{a, b})
	assert.Equal(t, 7, obstacles.Size())

	b.Kill(entity.SelfCollision)
	obstacles = cm.Obstacles([]*entity.Snake{a, b})
	assert.Equal(t, 4, obstacles.Size())
	assert.False(t, cm.Walls().Has(types.Cell{X: 2, Y: 2}), "obstacle set must not alias walls")
}

func TestGenerateFoodAvoidsOccupiedCells(t *testing.T) {
	grid := types.NewGrid(5)
	walls := mapset.Of(types.Cell{X: 0, Y: 0}, types.Cell{X: 4, Y: 4})
	cm := NewCollisionManager(grid, walls)
	fm := NewFoodManager(grid, cm, rand.New(rand.NewSource(7)), 1, 0)
	snakes := []*entity.Snake{newSnake(types.Cell{X: 2, Y: 2}, grid)}

	for i := 0; i < 200; i++ {
		c, err := fm.GenerateFood(snakes)
		require.NoError(t, err)
		assert.True(t, grid.Contains(c))
		assert.False(t, walls.Has(c))
		assert.False(t, snakes[0].Occupies(c))
	}
}

func TestGenerateFoodFallbackScan(t *testing.T) {
	grid := types.NewGrid(3)
	walls := mapset.New[types.Cell]()
	for i := 0; i < grid.Cells(); i++ {
		walls.Put(grid.CellAt(i))
	}
	free := types.Cell{X: 1, Y: 2}
	walls.Remove(free)

	cm := NewCollisionManager(grid, walls)
	// one attempt is almost never enough, so the scan has to find the only free cell
	fm := NewFoodManager(grid, cm, rand.New(rand.NewSource(1)), 1, 1)
	c, err := fm.GenerateFood(nil)
	require.NoError(t, err)
	assert.Equal(t, free, c)
}

func TestGenerateFoodExhausted(t *testing.T) {
	grid := types.NewGrid(3)
	walls := mapset.New[types.Cell]()
	for i := 0; i < grid.Cells(); i++ {
		walls.Put(grid.CellAt(i))
	}
	fm := NewFoodManager(grid, NewCollisionManager(grid, walls), rand.New(rand.NewSource(1)), 1, 0)

	err := fm.Respawn(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFoodPlacementExhausted))
}

func TestPlaceFood(t *testing.T) {
	grid := types.NewGrid(5)
	cm := NewCollisionManager(grid, mapset.Of(types.Cell{X: 4, Y: 4}))
	fm := NewFoodManager(grid, cm, rand.New(rand.NewSource(1)), 2, 0)
	snakes := []*entity.Snake{newSnake(types.Cell{X: 2, Y: 2}, grid)}

	require.NoError(t, fm.Place(types.Cell{X: 4, Y: 2}, snakes))
	assert.Equal(t, Food{Cell: types.Cell{X: 4, Y: 2}, Reward: 2}, fm.Food())

	assert.Error(t, fm.Place(types.Cell{X: 4, Y: 4}, snakes))
	assert.Error(t, fm.Place(types.Cell{X: 1, Y: 2}, snakes))
	assert.Error(t, fm.Place(types.Cell{X: 5, Y: 0}, snakes))
	assert.Equal(t, types.Cell{X: 4, Y: 2}, fm.Food().Cell)
}

func TestStartPositions(t *testing.T) {
	grid := types.NewGrid(20)
	assert.Equal(t, []types.Cell{{X: 10, Y: 10}}, StartPositions(grid, 1))
	assert.Equal(t, []types.Cell{{X: 10, Y: 6}, {X: 10, Y: 13}}, StartPositions(grid, 2))
	assert.Equal(t, []types.Cell{{X: 10, Y: 5}, {X: 10, Y: 10}, {X: 10, Y: 15}}, StartPositions(grid, 3))
}

func TestInitializePopulation(t *testing.T) {
	grid := types.NewGrid(20)
	strategies := []types.Strategy{types.Human, types.BFS, types.AStar}
	pm := NewPopulationManager(grid, strategies, 4, 2, rand.New(rand.NewSource(3)))
	pm.InitializePopulation()

	snakes := pm.GetSnakes()
	require.Len(t, snakes, 3)
	for i, s := range snakes {
		assert.Equal(t, strategies[i], s.Strategy)
		assert.Equal(t, 4, s.Len())
		assert.Same(t, s, pm.Find(s.ID))
		assert.True(t, pm.Contains(s))
	}
	assert.Equal(t, 2, snakes[0].Input.Cap())
	assert.Equal(t, entity.Color{G: 255}, snakes[0].Color)
	assert.Equal(t, 3, pm.AliveCount())

	snakes[0].Kill(entity.WallCollision)
	snakes[1].Kill(entity.SelfCollision)
	assert.False(t, pm.IsAllSnakesDead())
	snakes[2].Kill(entity.SnakeCollision)
	assert.True(t, pm.IsAllSnakesDead())
	assert.Nil(t, pm.Find("missing"))

	pm.InitializePopulation()
	assert.Equal(t, 3, pm.AliveCount())
	assert.False(t, pm.Contains(snakes[0]))
}

func TestStateManagerAggregates(t *testing.T) {
	sm := NewStateManager()
	assert.Zero(t, sm.GetAverageScore())
	assert.Zero(t, sm.GetMedianScore())

	now := time.Now()
	for _, r := range []GameRecord{
		{Strategy: types.BFS, Score: 4, StartTime: now, EndTime: now.Add(8 * time.Second)},
		{Strategy: types.AStar, Score: 10},
		{Strategy: types.BFS, Score: 1},
		{Strategy: types.Human, Score: 3},
	} {
		sm.AddGame(r)
	}

	assert.Equal(t, 10, sm.GetHighScore())
	assert.Equal(t, 4, sm.GetGamesPlayed())
	assert.Equal(t, []int{4, 10, 1, 3}, sm.GetScoreHistory())
	assert.InDelta(t, 4.5, sm.GetAverageScore(), 1e-9)
	assert.InDelta(t, 3.5, sm.GetMedianScore(), 1e-9)
	assert.InDelta(t, 2.5, sm.GetAverageScore(types.BFS), 1e-9)
	assert.InDelta(t, 10, sm.GetMedianScore(types.AStar), 1e-9)
	assert.InDelta(t, 2, sm.GetAverageDuration(), 1e-9)
	assert.InDelta(t, 8, sm.GetMaxDuration(), 1e-9)
}

func TestStateManagerPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats", "scores.json")

	sm := NewStateManager()
	require.NoError(t, sm.LoadStats(path), "missing file is not an error")
	sm.AddGame(GameRecord{AgentID: "a", Strategy: types.AStar, Score: 7, Length: 10, Ticks: 120})
	sm.AddGame(GameRecord{AgentID: "b", Strategy: types.Human, Score: 2})
	require.NoError(t, sm.SaveStats(path))

	loaded := NewStateManager()
	require.NoError(t, loaded.LoadStats(path))
	assert.Equal(t, 7, loaded.GetHighScore())
	require.Len(t, loaded.GetGames(), 2)
	assert.Equal(t, types.AStar, loaded.GetGames()[0].Strategy)
	assert.Equal(t, 120, loaded.GetGames()[0].Ticks)
}
