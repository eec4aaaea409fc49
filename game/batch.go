package game

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"snake-search/game/manager"

	"golang.org/x/sync/semaphore"
)

// BatchRunner plays many independent sessions without a window and feeds every
// finished game into a StateManager. Sessions run in parallel, each on its own
// goroutine; a single session is still ticked sequentially.
type BatchRunner struct {
	cfg      Config
	games    int
	maxTicks int
	workers  int64
	stats    *manager.StateManager
	logger   *log.Logger

	mu      sync.Mutex
	results int
}

// NewBatchRunner prepares games sessions of cfg. Game i uses seed cfg.Seed+i when a
// seed is set. maxTicks <= 0 means a game only ends when every agent is dead.
func NewBatchRunner(cfg Config, games, maxTicks, workers int, stats *manager.StateManager, logger *log.Logger) *BatchRunner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &BatchRunner{
		cfg:      cfg,
		games:    games,
		maxTicks: maxTicks,
		workers:  int64(workers),
		stats:    stats,
		logger:   logger,
	}
}

// Run blocks until every game finished, ctx is cancelled or a session fails
func (b *BatchRunner) Run(ctx context.Context) error {
	if err := b.cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := semaphore.NewWeighted(b.workers)
	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	for i := 0; i < b.games; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(game int) {
			defer wg.Done()
			defer sem.Release(1)
			if err := b.play(ctx, game); err != nil {
				errOnce.Do(func() {
					firstErr = err
					cancel()
				})
			}
		}(i)
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

func (b *BatchRunner) play(ctx context.Context, game int) error {
	cfg := b.cfg
	if cfg.Seed != 0 {
		cfg.Seed += uint64(game)
	}
	s, err := NewSession(cfg)
	if err != nil {
		return err
	}

	for tick := 0; !s.Over() && (b.maxTicks <= 0 || tick < b.maxTicks); tick++ {
		if ctx.Err() != nil {
			return nil
		}
		if _, err := s.TickAll(); err != nil {
			// a full board ends the game, it does not fail the batch
			if errors.Is(err, manager.ErrFoodPlacementExhausted) {
				break
			}
			return err
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, record := range s.Records() {
		b.stats.AddGame(record)
	}
	b.results++
	b.logger.Printf("game %d/%d finished, score %d", b.results, b.games, s.Records()[0].Score)
	return nil
}

// Completed returns how many games have been recorded so far
func (b *BatchRunner) Completed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.results
}
