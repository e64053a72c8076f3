// Package bench plays headless autopilot games to compare the strategies.
package bench

import (
	"context"
	"log/slog"
	"time"

	"snake-autopilot/game"
	"snake-autopilot/game/manager"
	"snake-autopilot/game/types"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Games      int
	Size       int
	MaxTicks   int
	Seed       uint64
	Algorithms []types.Algorithm
	Metrics    *game.Metrics
	Logger     *slog.Logger
}

// Run plays opts.Games games for every algorithm, one goroutine per algorithm. Each
// goroutine has its own engine and food sampler, seeded from opts.Seed.
func Run(ctx context.Context, opts Options) (*manager.GameStats, error) {
	if opts.Games < 1 {
		return nil, errors.Errorf("games must be positive, got %d", opts.Games)
	}
	if opts.Size < game.MinGridSize {
		return nil, errors.Errorf("grid size %d is below %d", opts.Size, game.MinGridSize)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	algorithms := opts.Algorithms
	if len(algorithms) == 0 {
		algorithms = types.Algorithms[:]
	}

	stats := manager.NewGameStats()
	g, ctx := errgroup.WithContext(ctx)
	for i, alg := range algorithms {
		seed := opts.Seed + uint64(i)
		g.Go(func() error {
			logger := opts.Logger.With("algorithm", alg)
			engine := game.NewEngine(seed, opts.Metrics, logger)

			for n := 0; n < opts.Games; n++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				rec, err := Play(engine, opts.Size, alg, opts.MaxTicks)
				if err != nil {
					return err
				}
				stats.AddGame(rec)
				logger.Debug("game finished", "game", n+1, "score", rec.Score, "ticks", rec.Ticks, "collision", rec.Collision)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}
	return stats, nil
}

// Play runs one autopilot game to the end. The game stops on death, after maxTicks
// ticks (0 means no limit), or when a single free cell is left: eating there would fill
// the board and food placement would never return.
func Play(engine *game.Engine, size int, alg types.Algorithm, maxTicks int) (manager.GameRecord, error) {
	state, err := engine.NewGame(size, game.Settings{Autopilot: true, Algorithm: alg})
	if err != nil {
		return manager.GameRecord{}, err
	}
	state.Running = true

	start := time.Now()
	full := size*size - 1
	for state.Alive && state.Snake.Len() < full && (maxTicks == 0 || state.Tick < maxTicks) {
		state, _ = engine.Tick(state)
	}
	return manager.GameRecord{
		Algorithm: alg,
		Score:     state.Score,
		Ticks:     state.Tick,
		Collision: state.Collision,
		Filled:    state.Alive && state.Snake.Len() >= full,
		Duration:  time.Since(start),
	}, nil
}
