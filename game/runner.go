package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"snake-autopilot/config"
	"snake-autopilot/game/manager"
)

// Runner owns the live game. A single goroutine (Run) applies ticks and commands, so
// they never overlap; everyone else talks to it through channels.
type Runner struct {
	engine *Engine
	scores *manager.StateManager
	logger *slog.Logger

	commands  chan Command
	snapshots chan Snapshot // buffer of 1, latest wins

	mutex  sync.RWMutex
	state  *State
	notice string
}

// NewRunner wraps an initial state. scores may be nil, in which case nothing is
// recorded.
func NewRunner(engine *Engine, initial *State, scores *manager.StateManager, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		engine:    engine,
		scores:    scores,
		logger:    logger.With("component", "runner"),
		commands:  make(chan Command, 16),
		snapshots: make(chan Snapshot, 1),
		state:     initial,
	}
}

// Send queues a command for the next loop iteration.
func (r *Runner) Send(ctx context.Context, cmd Command) error {
	select {
	case r.commands <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshots delivers the latest view after every change. Stale views are dropped.
func (r *Runner) Snapshots() <-chan Snapshot {
	return r.snapshots
}

// State returns the current state. The caller must not modify it.
func (r *Runner) State() *State {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.state
}

// Run drives the game until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	speed := r.State().Settings.Speed
	ticker := time.NewTicker(config.TickInterval(speed))
	defer ticker.Stop()

	r.logger.Info("session started", "session", r.State().ID, "size", r.State().Size())
	r.publish()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-r.commands:
			r.apply(cmd)
			if s := r.State().Settings.Speed; s != speed {
				speed = s
				ticker.Reset(config.TickInterval(speed))
			}
			r.publish()
		case <-ticker.C:
			if r.step() {
				r.publish()
			}
		}
	}
}

func (r *Runner) apply(cmd Command) {
	next, err := r.engine.Apply(r.State(), cmd)

	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.state = next
	r.notice = ""
	if err != nil {
		r.notice = err.Error()
		r.logger.Warn("command rejected", "command", commandName(cmd), "error", err)
	}
}

// step runs one tick and reports whether anything changed.
func (r *Runner) step() bool {
	current := r.State()
	next, out := r.engine.Tick(current)
	if next == current {
		return false
	}

	if out.Died {
		r.logger.Info("snake died",
			"session", next.ID,
			"kind", out.Collision,
			"score", next.Score,
			"ticks", next.Tick,
			"autopilot", next.AutopilotUsed)
		r.record(next)
	}

	// scores are saved before the death becomes visible
	r.mutex.Lock()
	r.state = next
	r.mutex.Unlock()
	return true
}

func (r *Runner) record(s *State) {
	if r.scores == nil {
		return
	}
	raised, err := r.scores.Record(s.Score, s.AutopilotUsed)
	if err != nil {
		r.logger.Error("failed to save scores", "error", err)
		return
	}
	if raised {
		r.logger.Info("new best score", "score", s.Score, "autopilot", s.AutopilotUsed)
	}
}

func (r *Runner) best() manager.Scores {
	if r.scores == nil {
		return manager.Scores{}
	}
	return r.scores.GetScores()
}

func (r *Runner) publish() {
	r.mutex.RLock()
	snap := NewSnapshot(r.state, r.best())
	snap.Notice = r.notice
	r.mutex.RUnlock()

	// drop a view the renderer has not picked up yet
	select {
	case <-r.snapshots:
	default:
	}
	select {
	case r.snapshots <- snap:
	default:
	}
}

func commandName(cmd Command) string {
	switch c := cmd.(type) {
	case Steer:
		return "steer " + c.Direction.String()
	case ToggleRun:
		return "toggle"
	case Reset:
		return "reset"
	case SetAutopilot:
		return "autopilot"
	case SetAlgorithm:
		return "algorithm " + c.Algorithm.String()
	case SetSpeed:
		return "speed"
	case SetGridSize:
		return "grid size"
	}
	return "unknown"
}
