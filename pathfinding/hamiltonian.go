package pathfinding

import (
	"fmt"

	"snake-autopilot/game/types"
)

// Order numbers every cell of a grid with its position along a Hamiltonian cycle,
// starting at 1. Zero means unassigned.
type Order struct {
	size   int
	values []int
}

func newOrder(size int) *Order {
	return &Order{size: size, values: make([]int, size*size)}
}

func (o *Order) Size() int {
	return o.size
}

// At returns the order value of p, or 0 if p is off the grid.
func (o *Order) At(p types.Position) int {
	if !p.In(o.size) {
		return 0
	}
	return o.values[p.Row*o.size+p.Col]
}

func (o *Order) set(p types.Position, v int) {
	o.values[p.Row*o.size+p.Col] = v
}

// Rows copies the order into a row-major matrix for overlays.
func (o *Order) Rows() [][]int {
	rows := make([][]int, o.size)
	for r := range rows {
		rows[r] = make([]int, o.size)
		copy(rows[r], o.values[r*o.size:(r+1)*o.size])
	}
	return rows
}

// Validate checks that the order is a bijection onto [1, size²] in which consecutive
// values, and the last and first values, sit on adjacent cells.
func (o *Order) Validate() error {
	total := o.size * o.size
	cells := make([]types.Position, total+1)
	found := make([]bool, total+1)
	for r := 0; r < o.size; r++ {
		for c := 0; c < o.size; c++ {
			p := types.Position{Row: r, Col: c}
			v := o.At(p)
			if v < 1 || v > total {
				return fmt.Errorf("cell %v has order %d outside [1, %d]", p, v, total)
			}
			if found[v] {
				return fmt.Errorf("order %d assigned twice", v)
			}
			found[v] = true
			cells[v] = p
		}
	}
	for v := 1; v <= total; v++ {
		next := v%total + 1
		if !cells[v].Adjacent(cells[next]) {
			return fmt.Errorf("order %d at %v is not adjacent to order %d at %v", v, cells[v], next, cells[next])
		}
	}
	return nil
}

// hamiltonDirs is the preference order tried at every step of the cycle search.
var hamiltonDirs = [4]types.Direction{types.Right, types.Down, types.Left, types.Up}

type frame struct {
	pos   types.Position
	depth int
	next  int // index into hamiltonDirs of the next direction to try
}

// BuildHamiltonian runs a backtracking depth-first search from the top-left cell and
// returns the first closed tour it finds. The search is exhaustive: on grids without a
// cycle (any odd size) it only returns after every self-avoiding walk has been tried.
func BuildHamiltonian(size int) (*Order, bool) {
	if size < 1 {
		return nil, false
	}
	total := size * size
	start := types.Position{}
	order := newOrder(size)

	order.set(start, 1)
	stack := []frame{{pos: start, depth: 1}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.depth == total {
			if top.pos.Adjacent(start) {
				return order, true
			}
			order.set(top.pos, 0)
			stack = stack[:len(stack)-1]
			continue
		}
		if top.next == len(hamiltonDirs) {
			order.set(top.pos, 0)
			stack = stack[:len(stack)-1]
			continue
		}

		d := hamiltonDirs[top.next]
		top.next++
		step := top.pos.Add(d)
		if !step.In(size) || order.At(step) != 0 {
			continue
		}
		order.set(step, top.depth+1)
		stack = append(stack, frame{pos: step, depth: top.depth + 1})
	}
	return nil, false
}
