// Package ai decides the next move of the snake when the autopilot is engaged.
package ai

import (
	"log/slog"

	"snake-autopilot/game/types"
	"snake-autopilot/pathfinding"
)

// Situation is everything the autopilot looks at for one tick.
type Situation struct {
	Head      types.Position
	Food      types.Position
	Heading   types.Direction
	Grid      pathfinding.Grid
	Order     *pathfinding.Order
	Algorithm types.Algorithm
}

// Decision is the chosen direction plus the search trace for the overlay.
type Decision struct {
	Direction types.Direction
	Route     []types.Position
	Visited   []types.Position
	Expanded  int
	// Fallback is set when no route to the food existed and the survival move was used.
	Fallback bool
}

type Autopilot struct {
	logger *slog.Logger
}

func NewAutopilot(logger *slog.Logger) *Autopilot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Autopilot{logger: logger}
}

// Decide picks the direction for the coming tick. It never returns types.None.
func (a *Autopilot) Decide(s Situation) Decision {
	if s.Algorithm == types.Hamiltonian {
		return Decision{Direction: a.followCycle(s)}
	}

	strategy, ok := pathfinding.For(s.Algorithm)
	if !ok {
		strategy = pathfinding.BreadthFirst{}
	}
	res := strategy.FindRoute(s.Head, s.Food, s.Grid)
	if res.Found() {
		return Decision{
			Direction: types.DirectionTo(s.Head, res.Route[0]),
			Route:     res.Route,
			Visited:   res.Visited,
			Expanded:  res.Expanded,
		}
	}

	d := a.survive(s)
	a.logger.Debug("no route to food, survival move",
		"algorithm", s.Algorithm, "head", s.Head, "food", s.Food, "direction", d)
	return Decision{
		Direction: d,
		Route:     res.Route,
		Visited:   res.Visited,
		Expanded:  res.Expanded,
		Fallback:  true,
	}
}

// survive looks at the neighbors in up, down, left, right order. A candidate must be on
// the grid, off the snake and not a reversal. Each is scored by how many cells a
// breadth-first search from it reaches, and only a strictly larger count replaces the
// current pick. The running best starts at zero and the first candidate always reaches
// itself, so the first qualifying neighbor is the one taken.
func (a *Autopilot) survive(s Situation) types.Direction {
	best := 0
	choice := types.None
	for _, d := range types.Directions {
		if d == s.Heading.Opposite() {
			continue
		}
		next := s.Head.Add(d)
		if !next.In(s.Grid.Size()) || s.Grid.At(next) == types.Snake {
			continue
		}
		reach := len(pathfinding.BreadthFirst{}.FindRoute(next, s.Food, s.Grid).Visited)
		if reach > best {
			best = reach
			choice = d
			break
		}
	}
	if choice == types.None {
		return s.Heading
	}
	return choice
}

// followCycle steps to the neighbor holding the next order value. With no order
// (the grid has no cycle) the heading is kept; with no matching neighbor it goes right.
func (a *Autopilot) followCycle(s Situation) types.Direction {
	if s.Order == nil {
		return s.Heading
	}
	total := s.Order.Size() * s.Order.Size()
	next := s.Order.At(s.Head)%total + 1
	for _, d := range types.Directions {
		p := s.Head.Add(d)
		if p.In(s.Order.Size()) && s.Order.At(p) == next {
			return d
		}
	}
	return types.Right
}
