// Package keys maps player keys to game commands. Both front ends translate their own
// key events into a Key and share this table.
package keys

import (
	"snake-autopilot/config"
	"snake-autopilot/game"
	"snake-autopilot/game/types"
)

type Key int

const (
	None Key = iota
	Up
	Down
	Left
	Right
	Toggle
	Reset
	Autopilot
	Algorithm1
	Algorithm2
	Algorithm3
	Algorithm4
	Faster
	Slower
	GridUp
	GridDown
	Overlay
	Gridlines
	Quit
)

var runes = map[rune]Key{
	'w': Up, 'k': Up,
	's': Down, 'j': Down,
	'a': Left, 'h': Left,
	'd': Right, 'l': Right,
	' ': Toggle,
	'r': Reset,
	'p': Autopilot,
	'1': Algorithm1,
	'2': Algorithm2,
	'3': Algorithm3,
	'4': Algorithm4,
	'+': Faster, '=': Faster,
	'-': Slower,
	']': GridUp,
	'[': GridDown,
	'g': Overlay,
	'v': Gridlines,
	'q': Quit,
}

// FromRune maps a typed character, case-insensitively for letters.
func FromRune(r rune) Key {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	return runes[r]
}

// CommandFor returns the game command for k given the current view. Overlay, Gridlines
// and Quit are handled by the front end and have no command.
func CommandFor(k Key, snap game.Snapshot) (game.Command, bool) {
	switch k {
	case Up:
		return game.Steer{Direction: types.Up}, true
	case Down:
		return game.Steer{Direction: types.Down}, true
	case Left:
		return game.Steer{Direction: types.Left}, true
	case Right:
		return game.Steer{Direction: types.Right}, true
	case Toggle:
		return game.ToggleRun{}, true
	case Reset:
		return game.Reset{}, true
	case Autopilot:
		return game.SetAutopilot{On: !snap.Settings.Autopilot}, true
	case Algorithm1, Algorithm2, Algorithm3, Algorithm4:
		return game.SetAlgorithm{Algorithm: types.Algorithms[k-Algorithm1]}, true
	case Faster:
		return game.SetSpeed{Speed: config.Step(config.Speeds, snap.Settings.Speed, 1)}, true
	case Slower:
		return game.SetSpeed{Speed: config.Step(config.Speeds, snap.Settings.Speed, -1)}, true
	case GridUp:
		return game.SetGridSize{Size: config.Step(config.GridSizes, snap.Size, 1)}, true
	case GridDown:
		return game.SetGridSize{Size: config.Step(config.GridSizes, snap.Size, -1)}, true
	}
	return nil, false
}

// Help lists the bindings for status lines.
const Help = "wasd/hjkl steer  space run  r reset  p autopilot  1-4 algorithm  +/- speed  [/] size  g overlay  v gridlines  q quit"
