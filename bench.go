package main

import (
	"fmt"
	"strings"

	"snake-autopilot/bench"
	"snake-autopilot/game/types"

	"github.com/spf13/cobra"
)

var (
	benchGames    int
	benchMaxTicks int
	benchOnly     []string
	benchOut      string

	benchCmd = &cobra.Command{
		Use:   "bench",
		Short: "Play headless autopilot games and compare the algorithms",
		RunE:  runBench,
	}
)

func init() {
	benchCmd.Flags().IntVar(&benchGames, "games", 20, "games per algorithm")
	benchCmd.Flags().IntVar(&benchMaxTicks, "max-ticks", 20000, "stop a game after this many ticks, 0 for no limit")
	benchCmd.Flags().StringSliceVar(&benchOnly, "only", nil, "algorithms to run, all by default")
	benchCmd.Flags().StringVar(&benchOut, "out", "", "write every game record to this JSON file")
}

func runBench(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}

	var algorithms []types.Algorithm
	for _, name := range benchOnly {
		alg, err := types.ParseAlgorithm(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		algorithms = append(algorithms, alg)
	}

	ctx, cancel := signalContext()
	defer cancel()
	a.serveMetrics(ctx)

	a.logger.Info("bench started", "games", benchGames, "size", a.cfg.GridSize, "seed", a.cfg.Seed)
	stats, err := bench.Run(ctx, bench.Options{
		Games:      benchGames,
		Size:       a.cfg.GridSize,
		MaxTicks:   benchMaxTicks,
		Seed:       a.cfg.Seed,
		Algorithms: algorithms,
		Metrics:    a.metrics,
		Logger:     a.logger,
	})
	if err != nil {
		return err
	}

	if benchOut != "" {
		if err := stats.SaveToFile(benchOut); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), bench.Report(stats.Summaries()))
	return nil
}
