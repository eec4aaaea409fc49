package entity

import (
	"snake-search/game/types"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

type Color struct {
	R, G, B uint8
}

// CollisionType represents what a snake ran into
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
	SnakeCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	case SnakeCollision:
		return "snake"
	default:
		return "none"
	}
}

// Snake is one agent: its body (head first), heading and score. Human snakes are
// fed through Input, autonomous ones drain Plan.
type Snake struct {
	ID                string
	Strategy          types.Strategy
	Body              []types.Cell
	Direction         types.Direction
	Points            int
	Moves             int
	Alive             bool
	Growing           bool
	Input             *InputQueue
	Plan              *PlanQueue
	Color             Color
	LastCollisionType CollisionType
}

// NewSnake lays out a horizontal body of the given length with its head on start,
// facing right
func NewSnake(start types.Cell, length int, strategy types.Strategy, grid types.Grid, color Color) *Snake {
	if length < 1 {
		length = 1
	}
	body := make([]types.Cell, 0, length)
	for i := 0; i < length; i++ {
		body = append(body, grid.Wrap(types.Cell{X: start.X - i, Y: start.Y}))
	}

	s := &Snake{
		ID:        uuid.New().String(),
		Strategy:  strategy,
		Body:      body,
		Direction: types.RIGHT,
		Alive:     true,
		Color:     color,
	}
	if strategy.Autonomous() {
		s.Plan = NewPlanQueue()
	} else {
		s.Input = NewInputQueue(types.DefaultInputCapacity)
	}
	return s
}

func (s *Snake) GetHead() types.Cell {
	return s.Body[0]
}

func (s *Snake) GetTail() types.Cell {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Move pushes the new head and drops the tail unless the snake is growing
func (s *Snake) Move(newHead types.Cell) {
	s.Body = append(s.Body, types.Cell{})
	copy(s.Body[1:], s.Body[:len(s.Body)-1])
	s.Body[0] = newHead
	s.Moves++

	if s.Growing {
		s.Growing = false
		return
	}
	s.RemoveTail()
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 0 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// Occupies reports whether any body cell equals c
func (s *Snake) Occupies(c types.Cell) bool {
	for _, p := range s.Body {
		if p == c {
			return true
		}
	}
	return false
}

// AddBodyTo puts every body cell into set
func (s *Snake) AddBodyTo(set mapset.Set[types.Cell]) {
	for _, p := range s.Body {
		set.Put(p)
	}
}

// NextDirection picks the move for this tick. Human snakes drain their input
// queue; autonomous snakes pop their plan and keep going straight when it is empty.
func (s *Snake) NextDirection() types.Direction {
	if s.Strategy.Autonomous() {
		if s.Plan == nil {
			return s.Direction
		}
		d, err := s.Plan.Pop()
		if err != nil {
			return s.Direction
		}
		return d
	}
	if s.Input == nil {
		return s.Direction
	}
	return s.Input.PopOrDefault(s.Direction)
}

// SetInputCapacity replaces the human input queue with one of the given size
func (s *Snake) SetInputCapacity(capacity int) {
	if s.Strategy.Autonomous() {
		return
	}
	s.Input = NewInputQueue(capacity)
}

// Kill marks the snake dead without touching its body
func (s *Snake) Kill(reason CollisionType) {
	s.Alive = false
	s.LastCollisionType = reason
}
