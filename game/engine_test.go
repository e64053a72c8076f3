package game

import (
	"testing"

	"snake-autopilot/config"
	"snake-autopilot/game/types"
	"snake-autopilot/logging"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(r, c int) types.Position {
	return types.Position{Row: r, Col: c}
}

func newEngine() *Engine {
	return NewEngine(1, nil, logging.Discard())
}

func layout(t *testing.T, size int, food types.Position, body ...types.Position) *State {
	t.Helper()
	s, err := FromLayout(size, body, food, Settings{Speed: config.DefaultSpeed})
	require.NoError(t, err)
	return s
}

func TestNewState_StartingLayout(t *testing.T) {
	s, err := newEngine().NewGame(10, Settings{Algorithm: types.AStar})
	require.NoError(t, err)

	assert.Equal(t, []types.Position{pos(5, 4), pos(5, 5), pos(5, 6)}, s.Snake.Body)
	assert.Equal(t, types.Left, s.Heading)
	assert.True(t, s.Alive)
	assert.False(t, s.Running)
	assert.Zero(t, s.Score)
	assert.Equal(t, types.AStar, s.Settings.Algorithm)

	assert.Equal(t, 3, s.Grid.Count(types.Snake))
	assert.Equal(t, 1, s.Grid.Count(types.Food))
	assert.Equal(t, types.Food, s.Grid.At(s.Food))
	require.NotNil(t, s.Order)
	assert.NoError(t, s.Order.Validate())
}

func TestNewState_TooSmall(t *testing.T) {
	_, err := newEngine().NewGame(2, Settings{})
	assert.Error(t, err)
}

func TestFromLayout_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body []types.Position
		food types.Position
	}{
		{"off grid", []types.Position{pos(0, 0), pos(-1, 0)}, pos(3, 3)},
		{"detached", []types.Position{pos(0, 0), pos(0, 2)}, pos(3, 3)},
		{"overlap", []types.Position{pos(0, 0), pos(0, 1), pos(0, 0)}, pos(3, 3)},
		{"food on body", []types.Position{pos(0, 0), pos(0, 1)}, pos(0, 1)},
		{"too short", []types.Position{pos(0, 0)}, pos(3, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLayout(5, tt.body, tt.food, Settings{})
			assert.True(t, errors.Is(err, ErrInvalidLayout), "got %v", err)
		})
	}
}

func TestAdvance_BoundaryDeath(t *testing.T) {
	s := layout(t, 10, pos(5, 5), pos(0, 0), pos(0, 1), pos(0, 2))
	before := s.Grid.Rows()

	next, out := newEngine().Advance(s, types.Up)

	assert.True(t, out.Died)
	assert.False(t, out.Moved)
	assert.Equal(t, types.WallCollision, out.Collision)
	assert.False(t, next.Alive)
	assert.False(t, next.Running)
	assert.Equal(t, types.WallCollision, next.Collision)
	assert.Equal(t, "boundary", next.Collision.String())

	// the move is not applied
	assert.Equal(t, before, next.Grid.Rows())
	assert.Equal(t, []types.Position{pos(0, 0), pos(0, 1), pos(0, 2)}, next.Snake.Body)
	// the input state is untouched
	assert.True(t, s.Alive)
}

func TestAdvance_SelfCollision(t *testing.T) {
	s := layout(t, 6, pos(5, 5), pos(1, 1), pos(1, 2), pos(2, 2), pos(2, 1), pos(3, 1))
	before := s.Grid.Rows()

	next, out := newEngine().Advance(s, types.Down)

	assert.True(t, out.Died)
	assert.Equal(t, types.SelfCollision, next.Collision)
	assert.Equal(t, before, next.Grid.Rows())
}

func TestAdvance_IntoTailIsCollision(t *testing.T) {
	s := layout(t, 6, pos(5, 5), pos(1, 1), pos(1, 2), pos(2, 2), pos(2, 1))

	_, out := newEngine().Advance(s, types.Down)
	assert.True(t, out.Died)
	assert.Equal(t, types.SelfCollision, out.Collision)
}

func TestAdvance_ReversalHitsNeck(t *testing.T) {
	s := layout(t, 5, pos(0, 0), pos(2, 2), pos(2, 3), pos(2, 4))

	before := s.Clone()

	next, out := newEngine().Advance(s, types.Right)
	assert.True(t, out.Died)
	assert.False(t, out.Moved)
	assert.Equal(t, types.SelfCollision, out.Collision)
	assert.False(t, next.Alive)

	// the board is left as it was and the input state is untouched
	assert.Equal(t, before.Snake.Body, next.Snake.Body)
	assert.Equal(t, before.Grid.Rows(), next.Grid.Rows())
	assert.True(t, s.Alive)
	assert.Equal(t, types.Left, s.Heading)
}

func TestAdvance_EatsAndGrows(t *testing.T) {
	s := layout(t, 5, pos(2, 1), pos(2, 2), pos(2, 3), pos(2, 4))

	next, out := newEngine().Advance(s, types.Left)

	assert.True(t, out.Ate)
	assert.Equal(t, 1, next.Score)
	assert.Equal(t, 4, next.Snake.Len())
	assert.Equal(t, pos(2, 1), next.Snake.GetHead())
	assert.Equal(t, types.Snake, next.Grid.At(pos(2, 4)), "tail stays on a meal")
	assert.Equal(t, 4, next.Grid.Count(types.Snake))
	assert.Equal(t, 1, next.Grid.Count(types.Food))
	assert.Equal(t, types.Food, next.Grid.At(next.Food))
	assert.NotEqual(t, pos(2, 1), next.Food)

	assert.Zero(t, s.Score)
	assert.Equal(t, 3, s.Snake.Len())
}

func TestAdvance_EmptyMove(t *testing.T) {
	s := layout(t, 5, pos(0, 0), pos(2, 2), pos(2, 3), pos(2, 4))
	emptyBefore := s.Grid.Count(types.Empty)

	next, out := newEngine().Advance(s, types.Up)

	assert.True(t, out.Moved)
	assert.False(t, out.Ate)
	assert.Equal(t, []types.Position{pos(1, 2), pos(2, 2), pos(2, 3)}, next.Snake.Body)
	assert.Equal(t, types.Empty, next.Grid.At(pos(2, 4)))
	assert.Equal(t, types.Snake, next.Grid.At(pos(1, 2)))
	assert.Equal(t, emptyBefore, next.Grid.Count(types.Empty))
	assert.Equal(t, types.Up, next.Heading)
}

func TestAdvance_DeadStateIsFinal(t *testing.T) {
	e := newEngine()
	s := layout(t, 5, pos(4, 4), pos(0, 0), pos(0, 1), pos(0, 2))
	dead, _ := e.Advance(s, types.Up)

	again, out := e.Advance(dead, types.Down)
	assert.Same(t, dead, again)
	assert.Equal(t, Outcome{}, out)
}

func TestSteer(t *testing.T) {
	e := newEngine()
	s := layout(t, 6, pos(0, 0), pos(3, 2), pos(3, 3), pos(3, 4))
	require.Equal(t, types.Left, s.Heading)

	_, ok := e.Steer(s, types.Left)
	assert.False(t, ok, "same heading")
	_, ok = e.Steer(s, types.Right)
	assert.False(t, ok, "reversal")
	_, ok = e.Steer(s, types.None)
	assert.False(t, ok)

	up, ok := e.Steer(s, types.Up)
	require.True(t, ok)
	assert.Equal(t, types.Up, up.Heading)
	assert.Equal(t, types.Left, s.Heading)

	_, ok = e.Steer(up, types.Left)
	assert.False(t, ok, "one change per tick")

	ticked, _ := e.Tick(up)
	assert.Equal(t, pos(2, 2), ticked.Snake.GetHead())
	left, ok := e.Steer(ticked, types.Left)
	require.True(t, ok, "lock clears on the next tick")
	assert.Equal(t, types.Left, left.Heading)

	dead, _ := e.Advance(s, types.Right)
	_, ok = e.Steer(dead, types.Up)
	assert.False(t, ok, "dead snakes do not turn")
}

func TestTick_PausedDoesNothing(t *testing.T) {
	e := newEngine()
	s, err := e.NewGame(10, Settings{})
	require.NoError(t, err)

	next, out := e.Tick(s)
	assert.Same(t, s, next)
	assert.Equal(t, Outcome{}, out)
}

func TestTick_Autopilot(t *testing.T) {
	e := newEngine()
	s := layout(t, 6, pos(0, 2), pos(3, 2), pos(3, 3), pos(3, 4))
	s.Settings.Autopilot = true
	s.Settings.Algorithm = types.BreadthFirst

	next, out := e.Tick(s)
	assert.True(t, out.Moved)
	assert.Equal(t, types.Up, next.Heading)
	assert.Equal(t, pos(2, 2), next.Snake.GetHead())
	assert.True(t, next.AutopilotUsed)
	assert.Equal(t, []types.Position{pos(2, 2), pos(1, 2), pos(0, 2)}, next.Route)
	assert.NotEmpty(t, next.Visited)
	assert.Equal(t, 1, next.Tick)
	assert.False(t, s.AutopilotUsed)
}

func TestTick_AutopilotEatsUntilTheFoodMoves(t *testing.T) {
	e := newEngine()
	s, err := e.NewGame(10, Settings{Autopilot: true, Algorithm: types.AStar})
	require.NoError(t, err)
	s.Running = true

	for i := 0; i < 50 && s.Score == 0 && s.Alive; i++ {
		s, _ = e.Tick(s)
	}
	assert.True(t, s.Alive)
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, 4, s.Snake.Len())
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	e := NewEngine(1, m, logging.Discard())

	s := layout(t, 5, pos(2, 1), pos(2, 2), pos(2, 3), pos(2, 4))
	s.Settings.Autopilot = true
	s, _ = e.Tick(s)
	s, _ = e.Advance(s, types.Right)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ticks))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.foodEaten))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.deaths.WithLabelValues("self")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.fallbacks))
	assert.Equal(t, 1, testutil.CollectAndCount(m.expandedNodes, "snake_search_expanded_nodes"))

	e.BuildOrder(4)
	assert.Equal(t, 1, testutil.CollectAndCount(m.hamiltonBuilds, "snake_hamiltonian_build_seconds"))
	assert.False(t, s.Alive)
}
