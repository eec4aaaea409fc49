package manager

import (
	"errors"
	"fmt"

	"snake-search/game/entity"
	"snake-search/game/types"

	"golang.org/x/exp/rand"
)

// ErrFoodPlacementExhausted means no free cell is left for the food
var ErrFoodPlacementExhausted = errors.New("food placement exhausted")

// Food is the single apple on the board
type Food struct {
	Cell   types.Cell
	Reward int
}

type FoodManager struct {
	grid         types.Grid
	food         Food
	rng          *rand.Rand
	maxAttempts  int
	collisionMgr *CollisionManager
}

// NewFoodManager creates a food manager. maxAttempts bounds the rejection sampling
// loop before falling back to a scan of the free cells.
func NewFoodManager(grid types.Grid, collisionMgr *CollisionManager, rng *rand.Rand, reward, maxAttempts int) *FoodManager {
	if maxAttempts <= 0 {
		maxAttempts = grid.Cells()
	}
	return &FoodManager{
		grid:         grid,
		food:         Food{Reward: reward},
		rng:          rng,
		maxAttempts:  maxAttempts,
		collisionMgr: collisionMgr,
	}
}

func (fm *FoodManager) Food() Food {
	return fm.food
}

// Respawn moves the food to a uniformly random cell free of walls and live snakes
func (fm *FoodManager) Respawn(snakes []*entity.Snake) error {
	cell, err := fm.GenerateFood(snakes)
	if err != nil {
		return err
	}
	fm.food.Cell = cell
	return nil
}

// Place puts the food on a specific free cell
func (fm *FoodManager) Place(cell types.Cell, snakes []*entity.Snake) error {
	if !fm.collisionMgr.ValidateSpawnPosition(cell, snakes) {
		return fmt.Errorf("food cell %v is not free", cell)
	}
	fm.food.Cell = cell
	return nil
}

// GenerateFood samples random cells until one is free. After maxAttempts misses the
// free cells are enumerated and one is drawn from them, so a crowded board neither
// spins nor gives up early.
func (fm *FoodManager) GenerateFood(snakes []*entity.Snake) (types.Cell, error) {
	for attempt := 0; attempt < fm.maxAttempts; attempt++ {
		food := types.Cell{
			X: fm.rng.Intn(fm.grid.Size),
			Y: fm.rng.Intn(fm.grid.Size),
		}
		if fm.collisionMgr.ValidateSpawnPosition(food, snakes) {
			return food, nil
		}
	}

	free := make([]types.Cell, 0)
	for i := 0; i < fm.grid.Cells(); i++ {
		c := fm.grid.CellAt(i)
		if fm.collisionMgr.ValidateSpawnPosition(c, snakes) {
			free = append(free, c)
		}
	}
	if len(free) == 0 {
		return types.Cell{}, fmt.Errorf("%dx%d grid is full: %w", fm.grid.Size, fm.grid.Size, ErrFoodPlacementExhausted)
	}
	return free[fm.rng.Intn(len(free))], nil
}
