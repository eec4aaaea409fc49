package types

import "fmt"

// Direction is one of the four cardinal moves
type Direction int

const (
	NONE  Direction = iota // 0
	UP                     // 1
	RIGHT                  // 2
	DOWN                   // 3
	LEFT                   // 4
)

// ToPoint converts a Direction into its unit displacement vector
func (d Direction) ToPoint() Cell {
	switch d {
	case UP:
		return Cell{X: 0, Y: -1} // Y grows downwards
	case RIGHT:
		return Cell{X: 1, Y: 0}
	case DOWN:
		return Cell{X: 0, Y: 1}
	case LEFT:
		return Cell{X: -1, Y: 0}
	default:
		return Cell{X: 0, Y: 0}
	}
}

// Opposite returns the reversed direction (left<->right, up<->down)
func (d Direction) Opposite() Direction {
	switch d {
	case UP:
		return DOWN
	case RIGHT:
		return LEFT
	case DOWN:
		return UP
	case LEFT:
		return RIGHT
	default:
		return NONE
	}
}

// TurnLeft returns the direction after a counter-clockwise quarter turn
func (d Direction) TurnLeft() Direction {
	switch d {
	case UP:
		return LEFT
	case RIGHT:
		return UP
	case DOWN:
		return RIGHT
	case LEFT:
		return DOWN
	default:
		return d
	}
}

// TurnRight returns the direction after a clockwise quarter turn
func (d Direction) TurnRight() Direction {
	switch d {
	case UP:
		return RIGHT
	case RIGHT:
		return DOWN
	case DOWN:
		return LEFT
	case LEFT:
		return UP
	default:
		return d
	}
}

// Valid reports whether d is one of the four moves
func (d Direction) Valid() bool {
	return d >= UP && d <= LEFT
}

func (d Direction) String() string {
	switch d {
	case UP:
		return "up"
	case RIGHT:
		return "right"
	case DOWN:
		return "down"
	case LEFT:
		return "left"
	case NONE:
		return "none"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection converts "left", "right", "up" or "down" into a Direction
func ParseDirection(name string) (Direction, error) {
	switch name {
	case "up":
		return UP, nil
	case "right":
		return RIGHT, nil
	case "down":
		return DOWN, nil
	case "left":
		return LEFT, nil
	}
	return NONE, fmt.Errorf("unknown direction %q", name)
}

// FromDelta maps a unit vector back to its direction. ok is false for any other vector.
func FromDelta(delta Cell) (Direction, bool) {
	switch delta {
	case Cell{X: 0, Y: -1}:
		return UP, true
	case Cell{X: 1, Y: 0}:
		return RIGHT, true
	case Cell{X: 0, Y: 1}:
		return DOWN, true
	case Cell{X: -1, Y: 0}:
		return LEFT, true
	}
	return NONE, false
}

// canonical expansion order used by every search: +x, +y, -x, -y
var neighborOrder = [4]Direction{RIGHT, DOWN, LEFT, UP}

// Directions returns the four moves in canonical expansion order
func Directions() [4]Direction {
	return neighborOrder
}
