// Package pathfinding implements the route searches the autopilot chooses from and the
// Hamiltonian cycle builder.
//
// The three searches share one traversal skeleton and differ only in the order the
// frontier hands nodes back: FIFO for breadth-first, Manhattan distance for greedy
// best-first, path length plus Manhattan distance for A*. A cell is marked visited the
// first time it is pushed and is never pushed again, even if a cheaper path to it shows
// up later.
package pathfinding

import (
	"container/heap"

	"snake-autopilot/game/types"
)

// Grid is the read-only occupancy view a search needs.
type Grid interface {
	Size() int
	At(p types.Position) types.Cell
	Neighbors(p types.Position) []types.Position
}

// Result is the output of a single search. Route runs from the first step after the
// start through the goal and is empty when the goal is unreachable. Visited holds every
// discovered cell except the goal, in discovery order.
type Result struct {
	Route    []types.Position
	Visited  []types.Position
	Expanded int
}

func (r Result) Found() bool {
	return len(r.Route) > 0
}

// Strategy finds a route from start to goal over grid.
type Strategy interface {
	Algorithm() types.Algorithm
	FindRoute(start, goal types.Position, grid Grid) Result
}

type BreadthFirst struct{}

func (BreadthFirst) Algorithm() types.Algorithm { return types.BreadthFirst }

func (BreadthFirst) FindRoute(start, goal types.Position, grid Grid) Result {
	return search(start, goal, grid, &fifo{})
}

// GreedyBestFirst ignores the distance already travelled and can settle for long routes.
type GreedyBestFirst struct{}

func (GreedyBestFirst) Algorithm() types.Algorithm { return types.GreedyBestFirst }

func (GreedyBestFirst) FindRoute(start, goal types.Position, grid Grid) Result {
	return search(start, goal, grid, &ranked{cost: func(n node) int {
		return types.Manhattan(n.pos, goal)
	}})
}

type AStar struct{}

func (AStar) Algorithm() types.Algorithm { return types.AStar }

func (AStar) FindRoute(start, goal types.Position, grid Grid) Result {
	return search(start, goal, grid, &ranked{cost: func(n node) int {
		return n.depth + types.Manhattan(n.pos, goal)
	}})
}

// For returns the search strategy behind alg. Hamiltonian has none.
func For(alg types.Algorithm) (Strategy, bool) {
	switch alg {
	case types.BreadthFirst:
		return BreadthFirst{}, true
	case types.GreedyBestFirst:
		return GreedyBestFirst{}, true
	case types.AStar:
		return AStar{}, true
	default:
		return nil, false
	}
}

type node struct {
	pos    types.Position
	depth  int
	parent int // index into the search's node arena, -1 for the start
	seq    int
}

type frontier interface {
	push(n node)
	pop() node
	len() int
}

func search(start, goal types.Position, grid Grid, open frontier) Result {
	size := grid.Size()
	seen := make([]bool, size*size)
	index := func(p types.Position) int { return p.Row*size + p.Col }

	var arena []node
	var res Result
	discover := func(n node) {
		n.seq = len(arena)
		arena = append(arena, n)
		seen[index(n.pos)] = true
		if n.pos != goal {
			res.Visited = append(res.Visited, n.pos)
		}
		open.push(n)
	}

	discover(node{pos: start, parent: -1})
	for open.len() > 0 {
		current := open.pop()
		res.Expanded++
		if current.pos == goal {
			res.Route = routeTo(arena, current)
			return res
		}
		for _, next := range grid.Neighbors(current.pos) {
			if seen[index(next)] || grid.At(next) == types.Snake {
				continue
			}
			discover(node{pos: next, depth: current.depth + 1, parent: current.seq})
		}
	}
	return res
}

// routeTo walks parent links back to the start, which is left out of the route.
func routeTo(arena []node, end node) []types.Position {
	route := make([]types.Position, end.depth)
	for n := end; n.parent >= 0; n = arena[n.parent] {
		route[n.depth-1] = n.pos
	}
	return route
}

type fifo struct {
	items []node
	head  int
}

func (q *fifo) push(n node) { q.items = append(q.items, n) }

func (q *fifo) pop() node {
	n := q.items[q.head]
	q.head++
	return n
}

func (q *fifo) len() int { return len(q.items) - q.head }

// ranked pops the lowest cost first; equal costs come out in insertion order.
type ranked struct {
	cost  func(node) int
	items rankedHeap
}

func (q *ranked) push(n node) {
	heap.Push(&q.items, rankedItem{node: n, cost: q.cost(n)})
}

func (q *ranked) pop() node {
	return heap.Pop(&q.items).(rankedItem).node
}

func (q *ranked) len() int { return q.items.Len() }

type rankedItem struct {
	node
	cost int
}

type rankedHeap []rankedItem

func (h rankedHeap) Len() int { return len(h) }
func (h rankedHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h rankedHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *rankedHeap) Push(x interface{}) {
	*h = append(*h, x.(rankedItem))
}
func (h *rankedHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
