package manager

import (
	"snake-search/game/entity"
	"snake-search/game/types"

	"github.com/zyedidia/generic/mapset"
)

type CollisionManager struct {
	grid  types.Grid
	walls mapset.Set[types.Cell]
}

func NewCollisionManager(grid types.Grid, walls mapset.Set[types.Cell]) *CollisionManager {
	return &CollisionManager{
		grid:  grid,
		walls: walls,
	}
}

// CheckCollision classifies what newHead would hit if snake moved there this tick
func (cm *CollisionManager) CheckCollision(newHead types.Cell, snake *entity.Snake, snakes []*entity.Snake) entity.CollisionType {
	if cm.isWallCollision(newHead) {
		return entity.WallCollision
	}
	if cm.isSelfCollision(newHead, snake) {
		return entity.SelfCollision
	}
	if other := cm.isSnakeCollision(newHead, snakes, snake); other != nil {
		return entity.SnakeCollision
	}
	return entity.NoCollision
}

func (cm *CollisionManager) isWallCollision(pos types.Cell) bool {
	return cm.walls.Has(pos)
}

// isSelfCollision ignores the tail cell, which is vacated during the same move,
// unless the snake is growing and keeps it
func (cm *CollisionManager) isSelfCollision(pos types.Cell, snake *entity.Snake) bool {
	body := snake.Body
	if !snake.Growing && len(body) > 0 {
		body = body[:len(body)-1]
	}
	for _, p := range body {
		if p == pos {
			return true
		}
	}
	return false
}

// isSnakeCollision returns the other live snake whose body contains pos
func (cm *CollisionManager) isSnakeCollision(pos types.Cell, snakes []*entity.Snake, currentSnake *entity.Snake) *entity.Snake {
	for _, snake := range snakes {
		if snake == nil || snake == currentSnake || !snake.Alive {
			continue
		}
		if snake.Occupies(pos) {
			return snake
		}
	}
	return nil
}

// Obstacles builds a fresh planning obstacle set: walls plus every live body
func (cm *CollisionManager) Obstacles(snakes []*entity.Snake) mapset.Set[types.Cell] {
	obstacles := mapset.New[types.Cell]()
	cm.walls.Each(func(c types.Cell) {
		obstacles.Put(c)
	})
	for _, snake := range snakes {
		if snake == nil || !snake.Alive {
			continue
		}
		snake.AddBodyTo(obstacles)
	}
	return obstacles
}

// ValidateSpawnPosition checks that pos is free of walls and live snakes
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Cell, snakes []*entity.Snake) bool {
	if !cm.grid.Contains(pos) || cm.isWallCollision(pos) {
		return false
	}
	for _, snake := range snakes {
		if snake == nil || !snake.Alive {
			continue
		}
		if snake.Occupies(pos) {
			return false
		}
	}
	return true
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Cell, food types.Cell) bool {
	return pos == food
}

// Walls returns the wall set shared with the session
func (cm *CollisionManager) Walls() mapset.Set[types.Cell] {
	return cm.walls
}
