package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"snake-autopilot/config"
	"snake-autopilot/game"
	"snake-autopilot/game/manager"
	"snake-autopilot/game/types"
	"snake-autopilot/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	logLevel    string
	metricsAddr string

	gridSize  int
	algorithm string
	speed     int
	autopilot bool
	seed      uint64

	rootCmd = &cobra.Command{
		Use:          "snake-autopilot",
		Short:        "Snake with a path-finding autopilot",
		Long:         `Play snake in a window or a terminal, or let the autopilot play it with BFS, greedy best-first, A* or a Hamiltonian cycle.`,
		SilenceUsage: true,
	}
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	flags.IntVar(&gridSize, "size", config.DefaultGridSize, "grid size: 10, 20, 30, 40 or 50")
	flags.StringVar(&algorithm, "algorithm", types.BreadthFirst.String(), "autopilot algorithm: bfs, greedy, astar, hamiltonian")
	flags.IntVar(&speed, "speed", config.DefaultSpeed, "speed: 0, 25, 50, 75 or 100")
	flags.BoolVar(&autopilot, "autopilot", false, "start with the autopilot on")
	flags.Uint64Var(&seed, "seed", 0, "food placement seed, 0 for a time based one")

	rootCmd.AddCommand(playCmd, termCmd, benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app is what every subcommand needs: the merged config, a logger and the metrics.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *game.Metrics
}

// setup loads the config file and applies the flags the user set on top of it.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if flags.Changed("size") {
		cfg.GridSize = gridSize
	}
	if flags.Changed("algorithm") {
		if err := cfg.Algorithm.UnmarshalText([]byte(algorithm)); err != nil {
			return nil, err
		}
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("autopilot") {
		cfg.Autopilot = autopilot
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		metrics:  game.NewMetrics(registry),
	}, nil
}

// serveMetrics exposes the registry until ctx ends. It does nothing without an address.
func (a *app) serveMetrics(ctx context.Context) {
	if a.cfg.MetricsAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: a.cfg.MetricsAddr, Handler: mux}

	go func() {
		a.logger.Info("serving metrics", "addr", a.cfg.MetricsAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("metrics server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()
}

// newSession builds the runner for the interactive front ends.
func (a *app) newSession() (*game.Runner, error) {
	scores, err := manager.NewStateManager(a.cfg.ScoresFile)
	if err != nil {
		return nil, err
	}
	engine := game.NewEngine(a.cfg.Seed, a.metrics, a.logger)
	state, err := engine.NewGame(a.cfg.GridSize, game.Settings{
		Autopilot: a.cfg.Autopilot,
		Algorithm: a.cfg.Algorithm,
		Speed:     a.cfg.Speed,
	})
	if err != nil {
		return nil, err
	}
	return game.NewRunner(engine, state, scores, a.logger.With("session", state.ID)), nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
