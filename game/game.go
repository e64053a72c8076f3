// Package game runs snake sessions: the state, the engine that advances it one tick at a
// time, and the runner that drives the engine from a ticker and keyboard commands.
package game

import (
	"snake-autopilot/game/entity"
	"snake-autopilot/game/manager"
	"snake-autopilot/game/types"
	"snake-autopilot/pathfinding"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrRunning       = errors.New("grid size cannot change while the game is running")
	ErrInvalidLayout = errors.New("invalid layout")
)

// MinGridSize is the smallest board that fits the starting snake.
const MinGridSize = 3

// Settings are the player's choices. They survive resets.
type Settings struct {
	Autopilot bool
	Algorithm types.Algorithm
	Speed     int
}

// State is one game session. The engine never mutates a State it is given; it clones it
// and returns the clone.
type State struct {
	ID       uuid.UUID
	Settings Settings

	Grid    *entity.Grid
	Snake   *entity.Snake
	Food    types.Position
	Heading types.Direction

	Score     int
	Tick      int
	Alive     bool
	Running   bool
	Collision types.CollisionType
	// AutopilotUsed is set once the autopilot has steered in this session.
	AutopilotUsed bool

	// Route and Visited come from the last autopilot search, for the overlay.
	Route   []types.Position
	Visited []types.Position
	// Order is shared between clones and never modified. Nil when the size has no cycle
	// or it was not built.
	Order *pathfinding.Order

	steerLocked bool
}

// NewState sets up a fresh game: a three-segment snake in the middle of the board heading
// left, and one food item.
func NewState(size int, settings Settings, order *pathfinding.Order, food *manager.FoodManager) (*State, error) {
	if size < MinGridSize {
		return nil, errors.Errorf("grid size %d is below %d", size, MinGridSize)
	}
	mid := size / 2
	body := []types.Position{
		{Row: mid, Col: mid - 1},
		{Row: mid, Col: mid},
		{Row: mid, Col: mid + 1},
	}

	s := &State{
		ID:       uuid.New(),
		Settings: settings,
		Grid:     entity.NewGrid(size),
		Snake:    entity.NewSnake(body),
		Heading:  types.Left,
		Alive:    true,
		Order:    order,
	}
	for _, p := range body {
		s.Grid.Set(p, types.Snake)
	}
	s.Food = food.PlaceFood(s.Grid)
	return s, nil
}

// FromLayout builds a running state from a given snake (head first) and food position.
// It is meant for replays and tests.
func FromLayout(size int, body []types.Position, food types.Position, settings Settings) (*State, error) {
	if size < MinGridSize {
		return nil, errors.Wrapf(ErrInvalidLayout, "grid size %d", size)
	}
	if len(body) < 2 {
		return nil, errors.Wrap(ErrInvalidLayout, "snake needs at least two segments")
	}

	grid := entity.NewGrid(size)
	for i, p := range body {
		if !grid.In(p) {
			return nil, errors.Wrapf(ErrInvalidLayout, "segment %d at %v is off the grid", i, p)
		}
		if grid.At(p) == types.Snake {
			return nil, errors.Wrapf(ErrInvalidLayout, "segment %d at %v overlaps the body", i, p)
		}
		if i > 0 && !body[i-1].Adjacent(p) {
			return nil, errors.Wrapf(ErrInvalidLayout, "segment %d at %v is detached", i, p)
		}
		grid.Set(p, types.Snake)
	}
	if !manager.ValidateSpawnPosition(grid, food) {
		return nil, errors.Wrapf(ErrInvalidLayout, "food at %v is not on an empty cell", food)
	}
	grid.Set(food, types.Food)

	snake := entity.NewSnake(body)
	return &State{
		ID:       uuid.New(),
		Settings: settings,
		Grid:     grid,
		Snake:    snake,
		Food:     food,
		Heading:  snake.Heading(),
		Alive:    true,
		Running:  true,
	}, nil
}

func (s *State) Size() int {
	return s.Grid.Size()
}

// Clone deep copies everything but the order.
func (s *State) Clone() *State {
	c := *s
	c.Grid = s.Grid.Clone()
	c.Snake = s.Snake.Clone()
	c.Route = append([]types.Position(nil), s.Route...)
	c.Visited = append([]types.Position(nil), s.Visited...)
	return &c
}
