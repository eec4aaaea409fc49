package ui

import (
	"testing"

	"snake-search/game/types"

	"github.com/stretchr/testify/assert"
)

func TestNewLayout(t *testing.T) {
	l := NewLayout(1020, 800, 20, 10)
	assert.Equal(t, int32(39), l.CellSize)
	assert.Equal(t, int32(780), l.Width())
	assert.Equal(t, int32(10), l.OffsetX)
	assert.Equal(t, int32(10), l.OffsetY)

	x, y := l.CellOrigin(types.Cell{X: 2, Y: 3})
	assert.Equal(t, int32(10+2*39), x)
	assert.Equal(t, int32(10+3*39), y)

	assert.Equal(t, Layout{}, NewLayout(100, 100, 0, 10))
	assert.Equal(t, int32(1), NewLayout(10, 10, 50, 2).CellSize)
}

func TestHeadingTrianglePointsForward(t *testing.T) {
	l := Layout{CellSize: 10, Size: 5}
	head := types.Cell{X: 1, Y: 1}

	tip := func(d types.Direction) [2]float32 {
		return l.HeadingTriangle(head, d)[0]
	}
	assert.Equal(t, [2]float32{20, 15}, tip(types.RIGHT))
	assert.Equal(t, [2]float32{10, 15}, tip(types.LEFT))
	assert.Equal(t, [2]float32{15, 20}, tip(types.DOWN))
	assert.Equal(t, [2]float32{15, 10}, tip(types.UP))
}
