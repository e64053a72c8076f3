package game

import (
	"snake-autopilot/config"
	"snake-autopilot/game/manager"
	"snake-autopilot/game/types"
	"snake-autopilot/pathfinding"
)

// Snapshot is a read-only copy of a state for renderers.
type Snapshot struct {
	Session   string
	Size      int
	Cells     [][]types.Cell
	Body      []types.Position
	Food      types.Position
	Heading   types.Direction
	Route     []types.Position
	Visited   []types.Position
	Order     *pathfinding.Order
	Score     int
	Best      manager.Scores
	Tick      int
	Alive     bool
	Running   bool
	Collision types.CollisionType
	Settings  Settings
	// Difficulty is the label of the current speed.
	Difficulty string
	// Notice is the last command error, if any.
	Notice string
}

func NewSnapshot(s *State, best manager.Scores) Snapshot {
	return Snapshot{
		Session:    s.ID.String(),
		Size:       s.Size(),
		Cells:      s.Grid.Rows(),
		Body:       append([]types.Position(nil), s.Snake.Body...),
		Food:       s.Food,
		Heading:    s.Heading,
		Route:      append([]types.Position(nil), s.Route...),
		Visited:    append([]types.Position(nil), s.Visited...),
		Order:      s.Order,
		Score:      s.Score,
		Best:       best,
		Tick:       s.Tick,
		Alive:      s.Alive,
		Running:    s.Running,
		Collision:  s.Collision,
		Settings:   s.Settings,
		Difficulty: config.Difficulty(s.Settings.Speed),
	}
}
