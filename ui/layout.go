package ui

import "snake-search/game/types"

// Layout maps grid cells to screen pixels
type Layout struct {
	CellSize int32
	OffsetX  int32
	OffsetY  int32
	Size     int
}

// NewLayout fits a size x size grid into a width x height area, square cells,
// centred vertically with padding on the left
func NewLayout(width, height int32, size int, padding int32) Layout {
	if size <= 0 {
		return Layout{}
	}
	cell := min((width-padding*2)/int32(size), (height-padding*2)/int32(size))
	if cell < 1 {
		cell = 1
	}
	l := Layout{CellSize: cell, Size: size, OffsetX: padding}
	l.OffsetY = (height - l.Height()) / 2
	return l
}

func (l Layout) Width() int32 {
	return l.CellSize * int32(l.Size)
}

func (l Layout) Height() int32 {
	return l.CellSize * int32(l.Size)
}

// CellOrigin returns the top-left pixel of c
func (l Layout) CellOrigin(c types.Cell) (int32, int32) {
	return l.OffsetX + int32(c.X)*l.CellSize, l.OffsetY + int32(c.Y)*l.CellSize
}

// HeadingTriangle returns the three corners of the arrow drawn on the head,
// counter-clockwise as raylib expects
func (l Layout) HeadingTriangle(head types.Cell, d types.Direction) [3][2]float32 {
	x0, y0 := l.CellOrigin(head)
	x, y := float32(x0), float32(y0)
	s := float32(l.CellSize)
	h := s / 2

	switch d {
	case types.LEFT:
		return [3][2]float32{{x, y + h}, {x + h, y + s}, {x + h, y}}
	case types.DOWN:
		return [3][2]float32{{x + h, y + s}, {x + s, y + h}, {x, y + h}}
	case types.UP:
		return [3][2]float32{{x + h, y}, {x, y + h}, {x + s, y + h}}
	default: // Right
		return [3][2]float32{{x + s, y + h}, {x + h, y}, {x + h, y + s}}
	}
}
