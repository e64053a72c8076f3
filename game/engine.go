package game

import (
	"log/slog"
	"time"

	"snake-autopilot/ai"
	"snake-autopilot/game/manager"
	"snake-autopilot/game/types"
	"snake-autopilot/pathfinding"
)

// Outcome reports what a single move did.
type Outcome struct {
	Moved     bool
	Ate       bool
	Died      bool
	Collision types.CollisionType
}

// Engine applies moves and commands to states. It is not safe for concurrent use: the
// food sampler is shared by every state it produces.
type Engine struct {
	pilot   *ai.Autopilot
	food    *manager.FoodManager
	metrics *Metrics
	logger  *slog.Logger
	// orders caches one cycle per grid size, nil when the size has none.
	orders map[int]*pathfinding.Order
}

func NewEngine(seed uint64, metrics *Metrics, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		pilot:   ai.NewAutopilot(logger),
		food:    manager.NewFoodManager(seed),
		metrics: metrics,
		logger:  logger,
		orders:  make(map[int]*pathfinding.Order),
	}
}

// NewGame builds the cycle for size and returns a fresh, paused game.
func (e *Engine) NewGame(size int, settings Settings) (*State, error) {
	return NewState(size, settings, e.BuildOrder(size), e.food)
}

// Restart returns a fresh game on the same board with the same settings and order.
func (e *Engine) Restart(s *State) (*State, error) {
	return NewState(s.Size(), s.Settings, s.Order, e.food)
}

// BuildOrder returns the Hamiltonian cycle for size, computing it on first use. It
// returns nil when there is none.
func (e *Engine) BuildOrder(size int) *pathfinding.Order {
	if order, ok := e.orders[size]; ok {
		return order
	}

	start := time.Now()
	order, ok := pathfinding.BuildHamiltonian(size)
	elapsed := time.Since(start)
	e.metrics.built(elapsed)
	e.orders[size] = order

	if !ok {
		e.logger.Warn("no hamiltonian cycle", "size", size, "elapsed", elapsed)
		return nil
	}
	e.logger.Debug("hamiltonian cycle built", "size", size, "elapsed", elapsed)
	return order
}

// Tick runs one step of a running game: it releases the steering lock, lets the
// autopilot choose the heading when it is on, and advances the snake.
func (e *Engine) Tick(s *State) (*State, Outcome) {
	if !s.Alive || !s.Running {
		return s, Outcome{}
	}

	next := s.Clone()
	next.steerLocked = false
	next.Tick++
	e.metrics.tick()

	if next.Settings.Autopilot {
		dec := e.pilot.Decide(ai.Situation{
			Head:      next.Snake.GetHead(),
			Food:      next.Food,
			Heading:   next.Heading,
			Grid:      next.Grid,
			Order:     next.Order,
			Algorithm: next.Settings.Algorithm,
		})
		e.metrics.searched(next.Settings.Algorithm, dec.Expanded, dec.Fallback)
		next.Heading = dec.Direction
		next.Route = dec.Route
		next.Visited = dec.Visited
		next.AutopilotUsed = true
	}

	return e.move(next, next.Heading)
}

// Advance moves the snake one cell in dir and returns the resulting state. s is left as
// it was.
func (e *Engine) Advance(s *State, dir types.Direction) (*State, Outcome) {
	if !s.Alive {
		return s, Outcome{}
	}
	return e.move(s.Clone(), dir)
}

// move applies one step to a state the caller owns. A reversal is not filtered here: the
// head lands on the neck and the game ends with a self collision.
func (e *Engine) move(s *State, dir types.Direction) (*State, Outcome) {
	s.Heading = dir
	head := s.Snake.GetHead().Add(dir)

	// the tail is still on the grid here, so running into it is a collision
	if kind := manager.CheckCollision(s.Grid, head); kind != types.NoCollision {
		s.Alive = false
		s.Running = false
		s.Collision = kind
		e.metrics.died(kind)
		return s, Outcome{Died: true, Collision: kind}
	}

	if manager.IsFoodCollision(s.Grid, head) {
		s.Snake.Move(head)
		s.Grid.Set(head, types.Snake)
		s.Score++
		e.metrics.ate()
		s.Food = e.food.PlaceFood(s.Grid)
		return s, Outcome{Moved: true, Ate: true}
	}

	s.Snake.Move(head)
	s.Grid.Set(head, types.Snake)
	s.Grid.Set(s.Snake.RemoveTail(), types.Empty)
	return s, Outcome{Moved: true}
}

// Steer changes the heading if the move is allowed: the snake is alive, no change was
// accepted yet this tick, and dir is neither the current heading nor its reverse.
func (e *Engine) Steer(s *State, dir types.Direction) (*State, bool) {
	if !s.Alive || s.steerLocked || dir == types.None {
		return s, false
	}
	if dir == s.Heading || dir == s.Heading.Opposite() {
		return s, false
	}
	next := s.Clone()
	next.Heading = dir
	next.steerLocked = true
	return next, true
}
