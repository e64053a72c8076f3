package entity

import "snake-autopilot/game/types"

// Grid is the authoritative occupancy of a square play field.
type Grid struct {
	size  int
	cells []types.Cell
}

func NewGrid(size int) *Grid {
	return &Grid{
		size:  size,
		cells: make([]types.Cell, size*size),
	}
}

func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) In(p types.Position) bool {
	return p.In(g.size)
}

// At returns the state of an in-bounds cell. Out-of-bounds positions read as Empty;
// callers check In first.
func (g *Grid) At(p types.Position) types.Cell {
	if !g.In(p) {
		return types.Empty
	}
	return g.cells[p.Row*g.size+p.Col]
}

func (g *Grid) Set(p types.Position, c types.Cell) {
	g.cells[p.Row*g.size+p.Col] = c
}

// Neighbors returns the in-bounds cells adjacent to p in up, down, left, right order.
func (g *Grid) Neighbors(p types.Position) []types.Position {
	out := make([]types.Position, 0, 4)
	for _, d := range types.Directions {
		if n := p.Add(d); g.In(n) {
			out = append(out, n)
		}
	}
	return out
}

// Count returns how many cells hold c.
func (g *Grid) Count(c types.Cell) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Rows copies the grid into a row-major matrix for renderers.
func (g *Grid) Rows() [][]types.Cell {
	rows := make([][]types.Cell, g.size)
	for r := range rows {
		rows[r] = make([]types.Cell, g.size)
		copy(rows[r], g.cells[r*g.size:(r+1)*g.size])
	}
	return rows
}

func (g *Grid) Clone() *Grid {
	cells := make([]types.Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{size: g.size, cells: cells}
}
