package manager

import (
	"snake-search/game/entity"
	"snake-search/game/types"

	"golang.org/x/exp/rand"
)

// PopulationManager owns the session's snakes in their fixed tick order
type PopulationManager struct {
	grid          types.Grid
	strategies    []types.Strategy
	bodyLength    int
	inputCapacity int
	rng           *rand.Rand
	snakes        []*entity.Snake
}

func NewPopulationManager(grid types.Grid, strategies []types.Strategy, bodyLength, inputCapacity int, rng *rand.Rand) *PopulationManager {
	return &PopulationManager{
		grid:          grid,
		strategies:    strategies,
		bodyLength:    bodyLength,
		inputCapacity: inputCapacity,
		rng:           rng,
	}
}

// StartPositions returns the head cell of every snake: centred for a single snake,
// spread evenly down the middle column otherwise
func StartPositions(grid types.Grid, count int) []types.Cell {
	positions := make([]types.Cell, count)
	mid := grid.Size / 2
	for i := 0; i < count; i++ {
		y := mid
		if count > 1 {
			y = grid.Size * (i + 1) / (count + 1)
		}
		positions[i] = types.Cell{X: mid, Y: y}
	}
	return positions
}

// InitializePopulation replaces every snake with a fresh one
func (pm *PopulationManager) InitializePopulation() {
	positions := StartPositions(pm.grid, len(pm.strategies))
	pm.snakes = make([]*entity.Snake, len(pm.strategies))
	for i, strategy := range pm.strategies {
		snake := entity.NewSnake(positions[i], pm.bodyLength, strategy, pm.grid, pm.generateColor(i))
		snake.SetInputCapacity(pm.inputCapacity)
		pm.snakes[i] = snake
	}
}

func (pm *PopulationManager) GetSnakes() []*entity.Snake {
	return pm.snakes
}

// Find returns the snake with the given id
func (pm *PopulationManager) Find(id string) *entity.Snake {
	for _, snake := range pm.snakes {
		if snake.ID == id {
			return snake
		}
	}
	return nil
}

func (pm *PopulationManager) Contains(snake *entity.Snake) bool {
	for _, s := range pm.snakes {
		if s == snake {
			return true
		}
	}
	return false
}

func (pm *PopulationManager) IsAllSnakesDead() bool {
	for _, snake := range pm.snakes {
		if snake.Alive {
			return false
		}
	}
	return true
}

// AliveCount returns how many snakes are still moving
func (pm *PopulationManager) AliveCount() int {
	n := 0
	for _, snake := range pm.snakes {
		if snake.Alive {
			n++
		}
	}
	return n
}

// generateColor keeps the first snake the classic green and randomises the rest
func (pm *PopulationManager) generateColor(i int) entity.Color {
	if i == 0 {
		return entity.Color{R: 0, G: 255, B: 0}
	}
	return entity.Color{
		R: uint8(pm.rng.Intn(200) + 55),
		G: uint8(pm.rng.Intn(200) + 55),
		B: uint8(pm.rng.Intn(200) + 55),
	}
}
