// Package game runs the tick-by-tick snake simulation on a toroidal grid.
package game

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"snake-search/ai"
	"snake-search/game/entity"
	"snake-search/game/manager"
	"snake-search/game/types"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
	"golang.org/x/exp/rand"
)

// ErrUnknownAgent is returned for an agent index outside the roster
var ErrUnknownAgent = errors.New("unknown agent")

// TickOutcome is what happened to an agent during one tick
type TickOutcome int

const (
	Alive TickOutcome = iota
	Died
)

func (o TickOutcome) String() string {
	if o == Died {
		return "died"
	}
	return "alive"
}

// Snapshot is a read-only copy of one agent
type Snapshot struct {
	ID        string
	Strategy  types.Strategy
	Body      []types.Cell
	Direction types.Direction
	Points    int
	Alive     bool
	Growing   bool
	Collision entity.CollisionType
	Plan      []types.Direction
}

type Option func(*Session)

// WithLogger sends session events to l. Sessions are silent by default.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlanner overrides the planner used by every agent with the given strategy
func WithPlanner(strategy types.Strategy, p ai.Planner) Option {
	return func(s *Session) {
		s.planners[strategy] = p
	}
}

// Session owns one simulation: the grid, the agents and the food. It is not safe
// for concurrent use; agents are ticked one after the other in roster order.
type Session struct {
	UUID      string
	StartTime time.Time

	cfg           Config
	grid          types.Grid
	collisionMgr  *manager.CollisionManager
	foodMgr       *manager.FoodManager
	populationMgr *manager.PopulationManager
	planners      map[types.Strategy]ai.Planner
	logger        *log.Logger

	// stuck remembers agents whose last plan found no path, so the log is not
	// flooded while they retry every tick
	stuck map[string]bool
	ended map[string]time.Time
}

// NewSession validates cfg and builds the agents and the first food item
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))
	grid := types.NewGrid(cfg.Size)
	collisionMgr := manager.NewCollisionManager(grid, cfg.wallSet())

	s := &Session{
		UUID:          uuid.New().String(),
		cfg:           cfg,
		grid:          grid,
		collisionMgr:  collisionMgr,
		foodMgr:       manager.NewFoodManager(grid, collisionMgr, rng, cfg.FoodReward, cfg.MaxPlacementAttempts),
		populationMgr: manager.NewPopulationManager(grid, cfg.Strategies, cfg.BodyLength, cfg.InputCapacity, rng),
		planners:      make(map[types.Strategy]ai.Planner),
		logger:        log.New(io.Discard, "", 0),
	}
	for _, strategy := range cfg.Strategies {
		if !strategy.Autonomous() {
			continue
		}
		p := ai.New(strategy, grid)
		if astar, ok := p.(*ai.AStar); ok && cfg.WrappedHeuristic {
			astar.Heuristic = grid.WrappedDistance
		}
		s.planners[strategy] = p
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.reset(); err != nil {
		return nil, err
	}
	s.logger.Printf("session %s: %dx%d grid, %d agents, seed %d", s.UUID, cfg.Size, cfg.Size, len(cfg.Strategies), seed)
	return s, nil
}

func (s *Session) reset() error {
	s.StartTime = time.Now()
	s.stuck = make(map[string]bool)
	s.ended = make(map[string]time.Time)
	s.populationMgr.InitializePopulation()
	if err := s.foodMgr.Respawn(s.snakes()); err != nil {
		return fmt.Errorf("initial food: %w", err)
	}
	return nil
}

// Restart rebuilds every agent and the food with the same config
func (s *Session) Restart() error {
	if err := s.reset(); err != nil {
		return err
	}
	s.logger.Printf("session %s restarted", s.UUID)
	return nil
}

func (s *Session) snakes() []*entity.Snake {
	return s.populationMgr.GetSnakes()
}

func (s *Session) agent(i int) (*entity.Snake, error) {
	snakes := s.snakes()
	if i < 0 || i >= len(snakes) {
		return nil, fmt.Errorf("agent %d of %d: %w", i, len(snakes), ErrUnknownAgent)
	}
	return snakes[i], nil
}

// Agents returns the roster size
func (s *Session) Agents() int {
	return len(s.snakes())
}

func (s *Session) Grid() types.Grid {
	return s.grid
}

// Tick advances agent i by one step. Collisions are reported as Died, never as
// errors; an error means the session can not continue.
func (s *Session) Tick(i int) (TickOutcome, error) {
	snake, err := s.agent(i)
	if err != nil {
		return Died, err
	}
	if !snake.Alive {
		return Died, nil
	}

	if snake.Strategy.Autonomous() && snake.Plan.Empty() {
		if err := s.replan(snake); err != nil {
			return Alive, err
		}
	}
	dir := snake.NextDirection()

	newHead := s.grid.Step(snake.GetHead(), dir)
	if collision := s.collisionMgr.CheckCollision(newHead, snake, s.snakes()); collision != entity.NoCollision {
		snake.Kill(collision)
		s.ended[snake.ID] = time.Now()
		s.logger.Printf("agent %d (%s) hit %s at %v with %d points", i, snake.Strategy, collision, newHead, snake.Points)
		return Died, nil
	}

	snake.Direction = dir
	snake.Move(newHead)

	food := s.foodMgr.Food()
	if !s.collisionMgr.IsFoodCollision(newHead, food.Cell) {
		return Alive, nil
	}
	snake.Growing = true
	snake.Points += food.Reward
	if err := s.foodMgr.Respawn(s.snakes()); err != nil {
		s.logger.Printf("agent %d ate the last free cell: %v", i, err)
		return Alive, fmt.Errorf("agent %d: %w", i, err)
	}
	if err := s.replanAll(); err != nil {
		return Alive, err
	}
	return Alive, nil
}

// TickAll ticks every agent in roster order and stops at the first fatal error
func (s *Session) TickAll() ([]TickOutcome, error) {
	outcomes := make([]TickOutcome, 0, s.Agents())
	for i := range s.snakes() {
		outcome, err := s.Tick(i)
		outcomes = append(outcomes, outcome)
		if err != nil {
			return outcomes, err
		}
	}
	return outcomes, nil
}

// Over reports whether every agent is dead
func (s *Session) Over() bool {
	return s.populationMgr.IsAllSnakesDead()
}

// replan routes snake from its head to the food around walls and every live body.
// No path leaves the plan empty so the snake goes straight and retries next tick.
func (s *Session) replan(snake *entity.Snake) error {
	planner := s.planners[snake.Strategy]
	if planner == nil {
		return fmt.Errorf("no planner for %s", snake.Strategy)
	}

	goal := s.foodMgr.Food().Cell
	path, err := planner.FindPath(snake.GetHead(), goal, s.obstacles())
	if errors.Is(err, ai.ErrPathNotFound) {
		snake.Plan.Clear()
		if !s.stuck[snake.ID] {
			s.logger.Printf("agent %s (%s): food at %v unreachable, going straight", snake.ID, snake.Strategy, goal)
		}
		s.stuck[snake.ID] = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("plan for %s: %w", snake.ID, err)
	}
	delete(s.stuck, snake.ID)

	if err := snake.Plan.Fill(path, s.grid); err != nil {
		return fmt.Errorf("plan for %s: %w", snake.ID, err)
	}
	return nil
}

// replanAll points every live autonomous agent at the current food
func (s *Session) replanAll() error {
	for _, snake := range s.snakes() {
		if !snake.Alive || !snake.Strategy.Autonomous() {
			continue
		}
		if err := s.replan(snake); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) obstacles() mapset.Set[types.Cell] {
	return s.collisionMgr.Obstacles(s.snakes())
}

// PushInput queues a direction for human agent i. It reports whether the
// direction was kept; reversals, invalid moves and presses on a full queue are dropped.
func (s *Session) PushInput(i int, dir types.Direction) bool {
	snake, err := s.agent(i)
	if err != nil || !snake.Alive || snake.Input == nil {
		return false
	}
	return snake.Input.Push(dir, snake.Direction)
}

// SetFood moves the food to a free cell and replans the autonomous agents
func (s *Session) SetFood(cell types.Cell) error {
	if err := s.foodMgr.Place(cell, s.snakes()); err != nil {
		return err
	}
	return s.replanAll()
}

func (s *Session) FoodCell() types.Cell {
	return s.foodMgr.Food().Cell
}

// WallCells returns the walls in row-major order
func (s *Session) WallCells() []types.Cell {
	walls := s.collisionMgr.Walls()
	out := make([]types.Cell, 0, walls.Size())
	for i := 0; i < s.grid.Cells(); i++ {
		if c := s.grid.CellAt(i); walls.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Session) Snapshot(i int) (Snapshot, error) {
	snake, err := s.agent(i)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{
		ID:        snake.ID,
		Strategy:  snake.Strategy,
		Body:      append([]types.Cell(nil), snake.Body...),
		Direction: snake.Direction,
		Points:    snake.Points,
		Alive:     snake.Alive,
		Growing:   snake.Growing,
		Collision: snake.LastCollisionType,
	}
	if snake.Plan != nil {
		snap.Plan = snake.Plan.Directions()
	}
	return snap, nil
}

func (s *Session) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, s.Agents())
	for i := range s.snakes() {
		snap, _ := s.Snapshot(i)
		out = append(out, snap)
	}
	return out
}

// Colors returns the display colour of every agent in roster order
func (s *Session) Colors() []entity.Color {
	out := make([]entity.Color, 0, s.Agents())
	for _, snake := range s.snakes() {
		out = append(out, snake.Color)
	}
	return out
}

// Records summarises the current game of every agent for the score history.
// Agents still alive are recorded as ending now.
func (s *Session) Records() []manager.GameRecord {
	now := time.Now()
	out := make([]manager.GameRecord, 0, s.Agents())
	for _, snake := range s.snakes() {
		end, ok := s.ended[snake.ID]
		if !ok {
			end = now
		}
		out = append(out, manager.GameRecord{
			AgentID:   snake.ID,
			Strategy:  snake.Strategy,
			Score:     snake.Points,
			Length:    snake.Len(),
			Ticks:     snake.Moves,
			StartTime: s.StartTime,
			EndTime:   end,
		})
	}
	return out
}
