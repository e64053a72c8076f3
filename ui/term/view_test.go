package term

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"snake-autopilot/game"
	"snake-autopilot/game/manager"
	"snake-autopilot/game/types"
	"snake-autopilot/logging"
	"snake-autopilot/pathfinding"
	"snake-autopilot/ui/keys"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 30)
	t.Cleanup(screen.Fini)
	return screen
}

func runeAt(screen tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func line(screen tcell.SimulationScreen, y int) string {
	var b strings.Builder
	w, _ := screen.Size()
	for x := 0; x < w; x++ {
		b.WriteRune(runeAt(screen, x, y))
	}
	return strings.TrimRight(b.String(), " ")
}

func pos(r, c int) types.Position {
	return types.Position{Row: r, Col: c}
}

func TestView_Draw(t *testing.T) {
	screen := simScreen(t)
	view := NewView(screen)

	view.Draw(game.Snapshot{
		Size:       4,
		Body:       []types.Position{pos(1, 1), pos(1, 2), pos(1, 3)},
		Heading:    types.Left,
		Food:       pos(3, 0),
		Route:      []types.Position{pos(2, 1), pos(3, 1)},
		Score:      3,
		Best:       manager.Scores{Manual: 7, Autopilot: 12},
		Alive:      true,
		Running:    true,
		Difficulty: "Easy",
		Settings:   game.Settings{Autopilot: true, Algorithm: types.AStar},
	})

	assert.Equal(t, "Score 3  Best 7  Autopilot best 12", line(screen, 0))
	assert.Contains(t, line(screen, 1), "A* Search")
	assert.Contains(t, line(screen, 1), "Easy")
	// long lines are clipped at the screen edge
	assert.True(t, strings.HasPrefix(types.AStar.Description(), line(screen, 2)))
	assert.NotEmpty(t, line(screen, 2))
	assert.True(t, strings.HasPrefix(keys.Help, line(screen, 3)))

	// cells are two columns wide inside a one character border, below the header
	cellRune := func(p types.Position) rune {
		return runeAt(screen, 1+p.Col*2, headerRows+1+p.Row)
	}
	assert.Equal(t, '<', cellRune(pos(1, 1)))
	assert.Equal(t, 'o', cellRune(pos(1, 2)))
	assert.Equal(t, 'o', cellRune(pos(1, 3)))
	assert.Equal(t, '*', cellRune(pos(3, 0)))
	assert.Equal(t, '+', cellRune(pos(2, 1)))
	assert.Equal(t, '|', runeAt(screen, 0, headerRows+1))
	assert.Equal(t, '·', cellRune(pos(0, 0)))
}

func TestView_GridlinesToggle(t *testing.T) {
	screen := simScreen(t)
	view := NewView(screen)
	snap := game.Snapshot{Size: 4, Body: []types.Position{pos(0, 0)}, Food: pos(3, 3), Alive: true}
	empty := func() rune { return runeAt(screen, 1+2*2, headerRows+1+2) }

	view.Draw(snap)
	assert.Equal(t, '·', empty())

	view.Gridlines = false
	view.Draw(snap)
	assert.Equal(t, ' ', empty())
	assert.Equal(t, '*', runeAt(screen, 1+3*2, headerRows+1+3))
}

func TestView_DrawOrderAndGameOver(t *testing.T) {
	screen := simScreen(t)
	view := NewView(screen)
	order, ok := pathfinding.BuildHamiltonian(4)
	require.True(t, ok)

	view.Draw(game.Snapshot{
		Size:      4,
		Body:      []types.Position{pos(0, 0), pos(0, 1), pos(0, 2)},
		Heading:   types.Left,
		Food:      pos(3, 3),
		Order:     order,
		Collision: types.WallCollision,
		Settings:  game.Settings{Algorithm: types.Hamiltonian},
	})

	// order 16 at (1,0) shows its last digit
	assert.Equal(t, '6', runeAt(screen, 1, headerRows+2))
	assert.Contains(t, line(screen, headerRows+4+2), "Game over (boundary)")

	view.Overlay = false
	view.Gridlines = false
	view.Draw(game.Snapshot{Size: 4, Body: []types.Position{pos(0, 0)}, Food: pos(3, 3), Order: order, Alive: true,
		Settings: game.Settings{Algorithm: types.Hamiltonian}})
	assert.Equal(t, ' ', runeAt(screen, 1, headerRows+2))
	assert.Contains(t, line(screen, headerRows+4+2), "Paused")
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, keys.Up, KeyFor(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)))
	assert.Equal(t, keys.Right, KeyFor(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)))
	assert.Equal(t, keys.Quit, KeyFor(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.Equal(t, keys.Toggle, KeyFor(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.Equal(t, keys.Autopilot, KeyFor(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))
	assert.Equal(t, keys.None, KeyFor(tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone)))
}

func TestRun_KeysReachTheRunner(t *testing.T) {
	screen := simScreen(t)

	engine := game.NewEngine(1, nil, logging.Discard())
	state, err := engine.NewGame(10, game.Settings{Speed: 0})
	require.NoError(t, err)
	scores, err := manager.NewStateManager(filepath.Join(t.TempDir(), "scores.json"))
	require.NoError(t, err)
	runner := game.NewRunner(engine, state, scores, logging.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = runner.Run(ctx) }()

	done := make(chan error, 1)
	go func() { done <- Run(ctx, screen, runner) }()

	// wait for the first frame so the key map sees the real settings
	require.Eventually(t, func() bool {
		return strings.HasPrefix(line(screen, 0), "Score 0")
	}, time.Second, time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'p', tcell.ModNone)
	require.Eventually(t, func() bool {
		return runner.State().Settings.Autopilot
	}, time.Second, time.Millisecond)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("view did not quit")
	}
}
