package types

import (
	"fmt"
	"strings"
)

// Cell is a grid coordinate
type Cell struct {
	X, Y int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the raw (unwrapped) sum of two cells
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Strategy selects how an agent decides its next direction
type Strategy int

const (
	Human Strategy = iota
	BFS
	AStar
)

func (s Strategy) String() string {
	switch s {
	case Human:
		return "human"
	case BFS:
		return "bfs"
	case AStar:
		return "astar"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Autonomous reports whether the strategy steers itself with a planner
func (s Strategy) Autonomous() bool {
	return s == BFS || s == AStar
}

// ParseStrategy converts "human", "bfs" or "astar" (case-insensitive) into a Strategy
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "human", "player":
		return Human, nil
	case "bfs":
		return BFS, nil
	case "astar", "a*":
		return AStar, nil
	}
	return Human, fmt.Errorf("unknown strategy %q", name)
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Game constants
const (
	DefaultGridSize      = 20 // Squares per arena side
	DefaultBodyLength    = 3
	DefaultFoodReward    = 1
	DefaultInputCapacity = 4 // Buffered key presses per human agent
)
