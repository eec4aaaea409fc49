package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"snake-search/game"
	"snake-search/game/manager"
	"snake-search/game/types"
	"snake-search/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// keyBindings steer the first and second human agents
var keyBindings = []map[int32]types.Direction{
	{rl.KeyRight: types.RIGHT, rl.KeyDown: types.DOWN, rl.KeyLeft: types.LEFT, rl.KeyUp: types.UP},
	{rl.KeyD: types.RIGHT, rl.KeyS: types.DOWN, rl.KeyA: types.LEFT, rl.KeyW: types.UP},
}

func main() {
	size := flag.Int("size", types.DefaultGridSize, "Squares per arena side")
	speed := flag.Int("speed", 120, "Tick interval in milliseconds (lower = faster)")
	strategy := flag.String("strategy", "human", "Comma separated agent strategies: human, bfs, astar")
	agents := flag.Int("agents", 0, "Number of agents; the last strategy fills the rest")
	seed := flag.Uint64("seed", 0, "Food placement seed (0 = random)")
	configPath := flag.String("config", "", "JSON session config, overrides size/strategy/agents/seed")
	statsPath := flag.String("stats", "data/stats.json", "Score history file")
	headless := flag.Int("headless", 0, "Play this many games without a window and exit")
	workers := flag.Int("workers", runtime.NumCPU(), "Parallel games in headless mode")
	maxTicks := flag.Int("ticks", 5000, "Tick limit per headless game (0 = none)")
	flag.Parse()

	logger := log.New(os.Stderr, "snake: ", log.LstdFlags)

	cfg, err := buildConfig(*configPath, *size, *strategy, *agents, *seed)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	stats := manager.NewStateManager()
	if err := stats.LoadStats(*statsPath); err != nil {
		logger.Printf("load stats: %v", err)
	}

	if *headless > 0 {
		runHeadless(cfg, *headless, *maxTicks, *workers, stats, *statsPath, logger)
		return
	}

	session, err := game.NewSession(cfg, game.WithLogger(logger))
	if err != nil {
		logger.Fatalf("new session: %v", err)
	}

	rl.InitWindow(1280, 800, "Snake - BFS / A*")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	renderer := ui.NewRenderer()
	scene := ui.StartScene
	recorded := false
	lastUpdate := time.Now()
	updateInterval := time.Duration(*speed) * time.Millisecond

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		if rl.IsWindowResized() {
			renderer.UpdateDimensions()
		}

		switch scene {
		case ui.StartScene:
			if rl.IsKeyPressed(rl.KeyEnter) {
				if err := session.Restart(); err != nil {
					logger.Fatalf("restart: %v", err)
				}
				recorded = false
				scene = ui.GameScene
				lastUpdate = time.Now()
			}

		case ui.GameScene:
			if session.Over() {
				if !recorded {
					recordGames(session, stats, *statsPath, logger)
					recorded = true
				}
				if rl.IsKeyPressed(rl.KeyEnter) {
					scene = ui.StartScene
				}
				break
			}

			handleInput(session)
			if time.Since(lastUpdate) >= updateInterval {
				lastUpdate = time.Now()
				if _, err := session.TickAll(); err != nil {
					if errors.Is(err, manager.ErrFoodPlacementExhausted) {
						logger.Printf("arena full: %v", err)
					} else {
						logger.Printf("tick: %v", err)
					}
					recordGames(session, stats, *statsPath, logger)
					recorded = true
					scene = ui.StartScene
				}
			}
		}

		renderer.Draw(scene, session, stats)
	}

	if scene == ui.GameScene && !recorded {
		recordGames(session, stats, *statsPath, logger)
	}
}

// runHeadless plays games in parallel until done or interrupted, then saves the history
func runHeadless(cfg game.Config, games, maxTicks, workers int, stats *manager.StateManager, statsPath string, logger *log.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	runner := game.NewBatchRunner(cfg, games, maxTicks, workers, stats, logger)
	if err := runner.Run(ctx); err != nil {
		logger.Printf("batch: %v", err)
	}
	if err := stats.SaveStats(statsPath); err != nil {
		logger.Printf("save stats: %v", err)
	}

	logger.Printf("%d games in %v", runner.Completed(), time.Since(start).Round(time.Millisecond))
	for _, s := range cfg.Strategies {
		logger.Printf("%s: avg %.2f, median %.1f", s, stats.GetAverageScore(s), stats.GetMedianScore(s))
	}
	logger.Printf("high score %d over %d games", stats.GetHighScore(), stats.GetGamesPlayed())
}

// handleInput forwards pressed keys to the human agents in roster order
func handleInput(session *game.Session) {
	human := 0
	for i, snap := range session.Snapshots() {
		if snap.Strategy != types.Human {
			continue
		}
		if human >= len(keyBindings) {
			return
		}
		for key, dir := range keyBindings[human] {
			if rl.IsKeyPressed(key) {
				session.PushInput(i, dir)
			}
		}
		human++
	}
}

func recordGames(session *game.Session, stats *manager.StateManager, path string, logger *log.Logger) {
	for _, record := range session.Records() {
		stats.AddGame(record)
	}
	if err := stats.SaveStats(path); err != nil {
		logger.Printf("save stats: %v", err)
	}
}

func buildConfig(path string, size int, strategy string, agents int, seed uint64) (game.Config, error) {
	if path != "" {
		return game.LoadConfig(path)
	}

	cfg := game.DefaultConfig()
	cfg.Size = size
	cfg.Walls = game.DefaultWalls(size)
	cfg.Seed = seed

	strategies, err := parseStrategies(strategy, agents)
	if err != nil {
		return cfg, err
	}
	cfg.Strategies = strategies
	return cfg, cfg.Validate()
}

func parseStrategies(list string, agents int) ([]types.Strategy, error) {
	var strategies []types.Strategy
	for _, name := range strings.Split(list, ",") {
		s, err := types.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	for len(strategies) < agents {
		strategies = append(strategies, strategies[len(strategies)-1])
	}
	if agents > 0 && len(strategies) > agents {
		strategies = strategies[:agents]
	}
	return strategies, nil
}
