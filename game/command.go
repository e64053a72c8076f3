package game

import (
	"snake-autopilot/config"
	"snake-autopilot/game/types"

	"github.com/pkg/errors"
)

// Command is a player action. Commands are applied between ticks by the runner.
type Command interface {
	apply(e *Engine, s *State) (*State, error)
}

// Steer asks for a new heading. Rejected changes are silently dropped.
type Steer struct {
	Direction types.Direction
}

// ToggleRun pauses or resumes a live game and starts a new one after a death.
type ToggleRun struct{}

// Reset starts a new paused game on the same board.
type Reset struct{}

type SetAutopilot struct {
	On bool
}

type SetAlgorithm struct {
	Algorithm types.Algorithm
}

type SetSpeed struct {
	Speed int
}

// SetGridSize starts a new game on a board of the given size. It is refused while the
// game is running.
type SetGridSize struct {
	Size int
}

// Apply runs a command against s and returns the new state. On error s is returned
// unchanged.
func (e *Engine) Apply(s *State, cmd Command) (*State, error) {
	return cmd.apply(e, s)
}

func (c Steer) apply(e *Engine, s *State) (*State, error) {
	next, _ := e.Steer(s, c.Direction)
	return next, nil
}

func (ToggleRun) apply(e *Engine, s *State) (*State, error) {
	if !s.Alive {
		next, err := e.Restart(s)
		if err != nil {
			return s, err
		}
		next.Running = true
		e.logger.Info("new game", "session", next.ID, "size", next.Size())
		return next, nil
	}
	next := s.Clone()
	next.Running = !s.Running
	return next, nil
}

func (Reset) apply(e *Engine, s *State) (*State, error) {
	next, err := e.Restart(s)
	if err != nil {
		return s, err
	}
	e.logger.Info("game reset", "session", next.ID, "size", next.Size())
	return next, nil
}

func (c SetAutopilot) apply(e *Engine, s *State) (*State, error) {
	next := s.Clone()
	next.Settings.Autopilot = c.On
	if !c.On {
		next.Route, next.Visited = nil, nil
	}
	return next, nil
}

func (c SetAlgorithm) apply(e *Engine, s *State) (*State, error) {
	known := false
	for _, alg := range types.Algorithms {
		known = known || alg == c.Algorithm
	}
	if !known {
		return s, errors.Errorf("unknown algorithm %d", int(c.Algorithm))
	}
	next := s.Clone()
	next.Settings.Algorithm = c.Algorithm
	next.Route, next.Visited = nil, nil
	return next, nil
}

func (c SetSpeed) apply(e *Engine, s *State) (*State, error) {
	if config.Difficulty(c.Speed) == "" {
		return s, errors.Wrapf(config.ErrInvalidSpeed, "got %d", c.Speed)
	}
	next := s.Clone()
	next.Settings.Speed = c.Speed
	return next, nil
}

func (c SetGridSize) apply(e *Engine, s *State) (*State, error) {
	if s.Running {
		return s, ErrRunning
	}
	if !config.ValidGridSize(c.Size) {
		return s, errors.Wrapf(config.ErrInvalidGridSize, "got %d", c.Size)
	}
	if c.Size == s.Size() {
		return s, nil
	}
	next, err := e.NewGame(c.Size, s.Settings)
	if err != nil {
		return s, err
	}
	e.logger.Info("grid resized", "session", next.ID, "size", c.Size, "cycle", next.Order != nil)
	return next, nil
}
