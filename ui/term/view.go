// Package term plays the game in a terminal.
package term

import (
	"context"
	"fmt"
	"strconv"

	"snake-autopilot/game"
	"snake-autopilot/game/types"
	"snake-autopilot/ui/keys"

	"github.com/gdamore/tcell/v2"
)

const headerRows = 4

var (
	defStyle     = tcell.StyleDefault
	snakeStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	headStyle    = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	foodStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	routeStyle   = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue)
	visitedStyle = tcell.StyleDefault.Foreground(tcell.ColorNavy)
	dimStyle     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

var headGlyphs = map[types.Direction]rune{
	types.Up:    '^',
	types.Down:  'v',
	types.Left:  '<',
	types.Right: '>',
}

// View draws snapshots on a tcell screen, two columns per cell.
type View struct {
	screen    tcell.Screen
	Overlay   bool
	Gridlines bool
}

func NewView(screen tcell.Screen) *View {
	return &View{screen: screen, Overlay: true, Gridlines: true}
}

func (v *View) put(x, y int, r rune, style tcell.Style) {
	v.screen.SetContent(x, y, r, nil, style)
}

func (v *View) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		v.put(x+i, y, r, style)
	}
}

// cell writes a board cell at row, col of the grid.
func (v *View) cell(p types.Position, r rune, style tcell.Style) {
	x, y := 1+p.Col*2, headerRows+1+p.Row
	v.put(x, y, r, style)
	v.put(x+1, y, ' ', style)
}

func (v *View) Draw(snap game.Snapshot) {
	v.screen.Clear()
	if snap.Size == 0 {
		v.screen.Show()
		return
	}

	pilot := "off"
	if snap.Settings.Autopilot {
		pilot = "on"
	}
	v.text(0, 0, fmt.Sprintf("Score %d  Best %d  Autopilot best %d",
		snap.Score, snap.Best.Manual, snap.Best.Autopilot), defStyle)
	v.text(0, 1, fmt.Sprintf("Autopilot %s  %s  %s  %dx%d",
		pilot, snap.Settings.Algorithm.Title(), snap.Difficulty, snap.Size, snap.Size), defStyle)
	v.text(0, 2, snap.Settings.Algorithm.Description(), dimStyle)
	status := keys.Help
	if snap.Notice != "" {
		status = snap.Notice
	}
	v.text(0, 3, status, dimStyle)

	v.drawBorder(snap.Size)
	if v.Gridlines {
		for r := 0; r < snap.Size; r++ {
			for c := 0; c < snap.Size; c++ {
				v.cell(types.Position{Row: r, Col: c}, '·', dimStyle)
			}
		}
	}

	if v.Overlay {
		if snap.Settings.Algorithm == types.Hamiltonian {
			v.drawOrder(snap)
		} else {
			for _, p := range snap.Visited {
				v.cell(p, '.', visitedStyle)
			}
			for _, p := range snap.Route {
				v.cell(p, '+', routeStyle)
			}
		}
	}

	v.cell(snap.Food, '*', foodStyle)
	for i := len(snap.Body) - 1; i > 0; i-- {
		v.cell(snap.Body[i], 'o', snakeStyle)
	}
	if len(snap.Body) > 0 {
		glyph, ok := headGlyphs[snap.Heading]
		if !ok {
			glyph = '@'
		}
		v.cell(snap.Body[0], glyph, headStyle)
	}

	bottom := headerRows + snap.Size + 2
	switch {
	case !snap.Alive:
		v.text(0, bottom, fmt.Sprintf("Game over (%s). Space to restart.", snap.Collision), defStyle)
	case !snap.Running:
		v.text(0, bottom, "Paused. Space to start.", defStyle)
	}

	v.screen.Show()
}

func (v *View) drawBorder(size int) {
	top, bottom := headerRows, headerRows+size+1
	right := size*2 + 1
	for x := 0; x <= right; x++ {
		v.put(x, top, '-', dimStyle)
		v.put(x, bottom, '-', dimStyle)
	}
	for y := top + 1; y < bottom; y++ {
		v.put(0, y, '|', dimStyle)
		v.put(right, y, '|', dimStyle)
	}
}

// drawOrder shows the last digit of each order value, enough to follow the cycle.
func (v *View) drawOrder(snap game.Snapshot) {
	if snap.Order == nil {
		return
	}
	for r := 0; r < snap.Size; r++ {
		for c := 0; c < snap.Size; c++ {
			p := types.Position{Row: r, Col: c}
			digits := strconv.Itoa(snap.Order.At(p))
			v.cell(p, rune(digits[len(digits)-1]), dimStyle)
		}
	}
}

// KeyFor translates a tcell key event.
func KeyFor(ev *tcell.EventKey) keys.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return keys.Up
	case tcell.KeyDown:
		return keys.Down
	case tcell.KeyLeft:
		return keys.Left
	case tcell.KeyRight:
		return keys.Right
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return keys.Quit
	case tcell.KeyRune:
		return keys.FromRune(ev.Rune())
	}
	return keys.None
}

// Run forwards key presses to the runner and draws its snapshots until the player quits
// or ctx ends. The caller owns the screen's Init and Fini.
func Run(ctx context.Context, screen tcell.Screen, runner *game.Runner) error {
	view := NewView(screen)
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	var last game.Snapshot
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap := <-runner.Snapshots():
			last = snap
			view.Draw(last)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				view.Draw(last)
			case *tcell.EventKey:
				k := KeyFor(ev)
				switch k {
				case keys.Quit:
					return nil
				case keys.Overlay:
					view.Overlay = !view.Overlay
					view.Draw(last)
					continue
				case keys.Gridlines:
					view.Gridlines = !view.Gridlines
					view.Draw(last)
					continue
				}
				if cmd, ok := keys.CommandFor(k, last); ok {
					if err := runner.Send(ctx, cmd); err != nil {
						return nil
					}
				}
			}
		}
	}
}
