package entity

import (
	"errors"
	"fmt"

	"snake-search/game/types"

	"github.com/zyedidia/generic/queue"
)

var (
	// ErrEmptyQueue is returned by PlanQueue.Pop when nothing is queued
	ErrEmptyQueue = errors.New("direction queue is empty")
	// ErrInvalidPathSegment means a path handed to Fill has two consecutive cells
	// that are not one wrapped step apart
	ErrInvalidPathSegment = errors.New("invalid path segment")
)

// InputQueue buffers human key presses. It never blocks: presses arriving while
// the queue is full are dropped.
type InputQueue struct {
	buf      []types.Direction
	capacity int
}

func NewInputQueue(capacity int) *InputQueue {
	if capacity <= 0 {
		capacity = types.DefaultInputCapacity
	}
	return &InputQueue{
		buf:      make([]types.Direction, 0, capacity),
		capacity: capacity,
	}
}

// Push enqueues d unless the queue is full, d is not a move, or d reverses current.
// It reports whether d was kept.
func (q *InputQueue) Push(d, current types.Direction) bool {
	if !d.Valid() || d == current.Opposite() {
		return false
	}
	if len(q.buf) >= q.capacity {
		return false
	}
	q.buf = append(q.buf, d)
	return true
}

// PopOrDefault dequeues the next direction, falling back to current when the queue
// is empty. A queued reversal of current is consumed and ignored.
func (q *InputQueue) PopOrDefault(current types.Direction) types.Direction {
	if len(q.buf) == 0 {
		return current
	}
	next := q.buf[0]
	q.buf = q.buf[1:]
	if next == current.Opposite() {
		return current
	}
	return next
}

func (q *InputQueue) Len() int {
	return len(q.buf)
}

func (q *InputQueue) Cap() int {
	return q.capacity
}

func (q *InputQueue) Clear() {
	q.buf = q.buf[:0]
}

// PlanQueue holds the moves of a planned path, drained one per tick
type PlanQueue struct {
	moves *queue.Queue[types.Direction]
	size  int
}

func NewPlanQueue() *PlanQueue {
	return &PlanQueue{moves: queue.New[types.Direction]()}
}

// Fill replaces the queue content with the moves that walk path on grid.
// A segment that is not a single wrapped step fails with ErrInvalidPathSegment and
// leaves the queue empty.
func (q *PlanQueue) Fill(path []types.Cell, grid types.Grid) error {
	q.Clear()

	moves := make([]types.Direction, 0, len(path))
	for i := 1; i < len(path); i++ {
		d, ok := grid.DirectionBetween(path[i-1], path[i])
		if !ok {
			return fmt.Errorf("step %d %v -> %v: %w", i, path[i-1], path[i], ErrInvalidPathSegment)
		}
		moves = append(moves, d)
	}

	for _, d := range moves {
		q.moves.Enqueue(d)
	}
	q.size = len(moves)
	return nil
}

// Pop removes the next planned move
func (q *PlanQueue) Pop() (types.Direction, error) {
	if q.moves.Empty() {
		return types.NONE, ErrEmptyQueue
	}
	q.size--
	return q.moves.Dequeue(), nil
}

func (q *PlanQueue) Len() int {
	return q.size
}

func (q *PlanQueue) Empty() bool {
	return q.moves.Empty()
}

func (q *PlanQueue) Clear() {
	q.moves = queue.New[types.Direction]()
	q.size = 0
}

// Directions returns a copy of the queued moves, next move first
func (q *PlanQueue) Directions() []types.Direction {
	out := make([]types.Direction, 0, q.size)
	if q.moves.Empty() {
		return out
	}
	q.moves.Each(func(d types.Direction) {
		out = append(out, d)
	})
	return out
}
