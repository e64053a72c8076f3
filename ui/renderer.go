// Package ui draws snapshots in a raylib window and turns key presses into commands.
package ui

import (
	"fmt"
	"strconv"

	"snake-autopilot/game"
	"snake-autopilot/game/types"
	"snake-autopilot/ui/keys"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding = 10
	headerLines   = 4
)

var (
	visitedColor = rl.Color{R: 40, G: 60, B: 110, A: 255}
	routeColor   = rl.Color{R: 70, G: 130, B: 200, A: 255}
	snakeColor   = rl.Color{R: 60, G: 180, B: 75, A: 255}
	headColor    = rl.Color{R: 90, G: 235, B: 100, A: 255}
	lineColor    = rl.Color{R: 50, G: 50, B: 50, A: 255}
)

type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32

	// Overlay toggles the search trace or, for the Hamiltonian strategy, the cycle order.
	Overlay   bool
	Gridlines bool
}

func NewRenderer() *Renderer {
	r := &Renderer{Overlay: true, Gridlines: true}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())
}

// PollKeys drains the keys pressed since the last frame.
func PollKeys() []keys.Key {
	var pressed []keys.Key
	arrows := map[int32]keys.Key{
		rl.KeyUp:    keys.Up,
		rl.KeyDown:  keys.Down,
		rl.KeyLeft:  keys.Left,
		rl.KeyRight: keys.Right,
	}
	for code, k := range arrows {
		if rl.IsKeyPressed(code) {
			pressed = append(pressed, k)
		}
	}
	for ch := rl.GetCharPressed(); ch != 0; ch = rl.GetCharPressed() {
		if k := keys.FromRune(ch); k != keys.None {
			pressed = append(pressed, k)
		}
	}
	return pressed
}

func (r *Renderer) Draw(snap game.Snapshot) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/40, 20)
	lineHeight := fontSize + 4
	header := lineHeight * headerLines

	availableWidth := r.screenWidth - borderPadding*2
	availableHeight := r.screenHeight - borderPadding*3 - header
	r.cellSize = max(min(availableWidth, availableHeight)/int32(snap.Size), 1)

	r.totalGridWidth = r.cellSize * int32(snap.Size)
	r.totalGridHeight = r.cellSize * int32(snap.Size)
	r.offsetX = (r.screenWidth - r.totalGridWidth) / 2
	r.offsetY = borderPadding*2 + header

	r.drawHeader(snap, fontSize, lineHeight)

	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.DarkGray)
	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, rl.Black)

	if r.Overlay {
		if snap.Settings.Algorithm == types.Hamiltonian {
			r.drawOrder(snap)
		} else {
			r.drawTrace(snap)
		}
	}

	rl.DrawRectangle(r.cellX(snap.Food), r.cellY(snap.Food), r.cellSize, r.cellSize, rl.Red)
	r.drawSnake(snap)
	if r.Gridlines && r.cellSize > 2 {
		r.drawGridlines(snap.Size)
	}

	if !snap.Alive {
		msg := fmt.Sprintf("Game over (%s) - space to restart", snap.Collision)
		r.drawCentered(msg, fontSize, rl.White)
	} else if !snap.Running {
		r.drawCentered("Paused - space to start", fontSize, rl.White)
	}

	rl.EndDrawing()
}

func (r *Renderer) cellX(p types.Position) int32 {
	return r.offsetX + int32(p.Col)*r.cellSize
}

func (r *Renderer) cellY(p types.Position) int32 {
	return r.offsetY + int32(p.Row)*r.cellSize
}

func (r *Renderer) drawHeader(snap game.Snapshot, fontSize, lineHeight int32) {
	x, y := int32(borderPadding), int32(borderPadding)
	pilot := "off"
	if snap.Settings.Autopilot {
		pilot = "on"
	}
	rl.DrawText(fmt.Sprintf("Score: %d   Best: %d   Autopilot best: %d",
		snap.Score, snap.Best.Manual, snap.Best.Autopilot), x, y, fontSize, rl.White)
	rl.DrawText(fmt.Sprintf("Autopilot: %s   Algorithm: %s   Speed: %s   Grid: %dx%d",
		pilot, snap.Settings.Algorithm.Title(), snap.Difficulty, snap.Size, snap.Size), x, y+lineHeight, fontSize, rl.LightGray)

	rl.DrawText(snap.Settings.Algorithm.Description(), x, y+lineHeight*2, fontSize, rl.Gray)

	status := keys.Help
	if snap.Notice != "" {
		status = snap.Notice
	}
	rl.DrawText(status, x, y+lineHeight*3, fontSize, rl.Gray)
}

func (r *Renderer) drawGridlines(size int) {
	for i := int32(1); i < int32(size); i++ {
		x := r.offsetX + i*r.cellSize
		y := r.offsetY + i*r.cellSize
		rl.DrawLine(x, r.offsetY, x, r.offsetY+r.totalGridHeight, lineColor)
		rl.DrawLine(r.offsetX, y, r.offsetX+r.totalGridWidth, y, lineColor)
	}
}

func (r *Renderer) drawTrace(snap game.Snapshot) {
	for _, p := range snap.Visited {
		rl.DrawRectangle(r.cellX(p), r.cellY(p), r.cellSize, r.cellSize, visitedColor)
	}
	for _, p := range snap.Route {
		rl.DrawRectangle(r.cellX(p), r.cellY(p), r.cellSize, r.cellSize, routeColor)
	}
}

func (r *Renderer) drawOrder(snap game.Snapshot) {
	if snap.Order == nil || r.cellSize < 12 {
		return
	}
	fontSize := r.cellSize / 3
	for row := 0; row < snap.Size; row++ {
		for col := 0; col < snap.Size; col++ {
			p := types.Position{Row: row, Col: col}
			rl.DrawText(strconv.Itoa(snap.Order.At(p)), r.cellX(p)+2, r.cellY(p)+2, fontSize, rl.DarkGray)
		}
	}
}

func (r *Renderer) drawSnake(snap game.Snapshot) {
	for i := len(snap.Body) - 1; i >= 0; i-- {
		p := snap.Body[i]
		color := snakeColor
		if i == 0 {
			color = headColor
		}
		rl.DrawRectangle(r.cellX(p), r.cellY(p), r.cellSize, r.cellSize, color)
	}
	if len(snap.Body) > 0 {
		r.drawHeadArrow(snap.Body[0], snap.Heading)
	}
}

// drawHeadArrow points a triangle from the head in the direction of travel.
func (r *Renderer) drawHeadArrow(head types.Position, heading types.Direction) {
	x, y := float32(r.cellX(head)), float32(r.cellY(head))
	size := float32(r.cellSize)
	half := size / 2

	var a, b, c rl.Vector2
	switch heading {
	case types.Right:
		a, b, c = rl.Vector2{X: x + size, Y: y + half}, rl.Vector2{X: x + half, Y: y}, rl.Vector2{X: x + half, Y: y + size}
	case types.Left:
		a, b, c = rl.Vector2{X: x, Y: y + half}, rl.Vector2{X: x + half, Y: y + size}, rl.Vector2{X: x + half, Y: y}
	case types.Down:
		a, b, c = rl.Vector2{X: x + half, Y: y + size}, rl.Vector2{X: x + size, Y: y + half}, rl.Vector2{X: x, Y: y + half}
	default:
		a, b, c = rl.Vector2{X: x + half, Y: y}, rl.Vector2{X: x, Y: y + half}, rl.Vector2{X: x + size, Y: y + half}
	}
	rl.DrawTriangle(a, b, c, rl.Yellow)
}

func (r *Renderer) drawCentered(text string, fontSize int32, color rl.Color) {
	width := rl.MeasureText(text, fontSize)
	rl.DrawText(text,
		r.offsetX+(r.totalGridWidth-width)/2,
		r.offsetY+r.totalGridHeight/2-fontSize/2,
		fontSize, color)
}
