package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"snake-search/game/manager"
	"snake-search/game/types"

	"github.com/zyedidia/generic/mapset"
)

// ErrInvalidConfig is returned by Validate and NewSession for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Config holds everything needed to build a Session
type Config struct {
	Size          int              `json:"size"`
	BodyLength    int              `json:"bodyLength"`
	Walls         []types.Cell     `json:"walls"`
	Strategies    []types.Strategy `json:"strategies"`
	FoodReward    int              `json:"foodReward"`
	InputCapacity int              `json:"inputCapacity"`
	// Seed drives food placement; 0 picks one from the clock
	Seed                 uint64 `json:"seed"`
	MaxPlacementAttempts int    `json:"maxPlacementAttempts"`
	// WrappedHeuristic makes A* use the toroidal distance instead of raw Manhattan
	WrappedHeuristic bool `json:"wrappedHeuristic"`
}

// wallOffsets are the obstacle cells relative to the arena centre
var wallOffsets = []types.Cell{
	{X: -2, Y: -3},
	{X: 0, Y: 7},
	{X: -5, Y: 0},
	{X: 4, Y: 5},
}

// DefaultWalls places the classic four wall cells around the centre of a size x size arena
func DefaultWalls(size int) []types.Cell {
	if size < 1 {
		return nil
	}
	grid := types.NewGrid(size)
	centre := types.Cell{X: size / 2, Y: size / 2}
	walls := make([]types.Cell, 0, len(wallOffsets))
	for _, off := range wallOffsets {
		walls = append(walls, grid.Wrap(centre.Add(off)))
	}
	return walls
}

func DefaultConfig() Config {
	return Config{
		Size:          types.DefaultGridSize,
		BodyLength:    types.DefaultBodyLength,
		Walls:         DefaultWalls(types.DefaultGridSize),
		Strategies:    []types.Strategy{types.Human},
		FoodReward:    types.DefaultFoodReward,
		InputCapacity: types.DefaultInputCapacity,
	}
}

// Validate checks the config and the initial layout it produces: walls inside the
// grid, and no starting body overlapping a wall or another body.
func (c Config) Validate() error {
	if c.Size < 3 {
		return fmt.Errorf("%w: grid size %d, need at least 3", ErrInvalidConfig, c.Size)
	}
	if c.BodyLength < 1 || c.BodyLength > c.Size {
		return fmt.Errorf("%w: body length %d on a %d grid", ErrInvalidConfig, c.BodyLength, c.Size)
	}
	if len(c.Strategies) == 0 {
		return fmt.Errorf("%w: no agents", ErrInvalidConfig)
	}
	for _, s := range c.Strategies {
		if s != types.Human && !s.Autonomous() {
			return fmt.Errorf("%w: unknown strategy %v", ErrInvalidConfig, s)
		}
	}
	if c.FoodReward < 0 {
		return fmt.Errorf("%w: negative food reward %d", ErrInvalidConfig, c.FoodReward)
	}
	if c.InputCapacity < 0 || c.MaxPlacementAttempts < 0 {
		return fmt.Errorf("%w: negative capacity or attempt bound", ErrInvalidConfig)
	}

	grid := types.NewGrid(c.Size)
	walls := mapset.New[types.Cell]()
	for _, w := range c.Walls {
		if !grid.Contains(w) {
			return fmt.Errorf("%w: wall %v outside %dx%d grid", ErrInvalidConfig, w, c.Size, c.Size)
		}
		walls.Put(w)
	}

	occupied := mapset.New[types.Cell]()
	for i, head := range manager.StartPositions(grid, len(c.Strategies)) {
		for k := 0; k < c.BodyLength; k++ {
			cell := grid.Wrap(types.Cell{X: head.X - k, Y: head.Y})
			if walls.Has(cell) {
				return fmt.Errorf("%w: agent %d starts on wall %v", ErrInvalidConfig, i, cell)
			}
			if occupied.Has(cell) {
				return fmt.Errorf("%w: agent %d starts on another agent at %v", ErrInvalidConfig, i, cell)
			}
			occupied.Put(cell)
		}
	}
	return nil
}

// wallSet converts the wall list into the set shared by the managers
func (c Config) wallSet() mapset.Set[types.Cell] {
	walls := mapset.New[types.Cell]()
	for _, w := range c.Walls {
		walls.Put(w)
	}
	return walls
}

// LoadConfig reads a JSON config on top of DefaultConfig and validates it
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	// walls follow the grid size unless the file lists its own
	var probe struct {
		Walls json.RawMessage `json:"walls"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Walls == nil {
		cfg.Walls = DefaultWalls(cfg.Size)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
