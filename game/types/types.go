package types

import "fmt"

// Position is a grid coordinate. Row grows downwards, Col grows to the right.
type Position struct {
	Row, Col int
}

// Add returns the position one step away in direction d.
func (p Position) Add(d Direction) Position {
	delta := d.Delta()
	return Position{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// In reports whether p lies on a size x size grid.
func (p Position) In(size int) bool {
	return p.Row >= 0 && p.Row < size && p.Col >= 0 && p.Col < size
}

// Adjacent reports whether p and q share an edge.
func (p Position) Adjacent(q Position) bool {
	return Manhattan(p, q) == 1
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Manhattan returns the sum of the absolute row and column differences.
func Manhattan(a, b Position) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Direction is one of the four cardinal moves.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Directions is the fixed neighbor enumeration order shared by every search.
var Directions = [4]Direction{Up, Down, Left, Right}

// Delta returns the displacement of a single step.
func (d Direction) Delta() Position {
	switch d {
	case Up:
		return Position{Row: -1}
	case Down:
		return Position{Row: 1}
	case Left:
		return Position{Col: -1}
	case Right:
		return Position{Col: 1}
	default:
		return Position{}
	}
}

// Opposite returns the reversal of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// DirectionTo returns the direction of the step from one position to the next.
// Anything that is not up, down or left is reported as right.
func DirectionTo(from, to Position) Direction {
	switch {
	case from.Row > to.Row && from.Col == to.Col:
		return Up
	case from.Row < to.Row && from.Col == to.Col:
		return Down
	case from.Row == to.Row && from.Col > to.Col:
		return Left
	default:
		return Right
	}
}

// Cell is the occupancy of a single grid cell.
type Cell int

const (
	Empty Cell = iota
	Snake
	Food
)

func (c Cell) String() string {
	switch c {
	case Snake:
		return "snake"
	case Food:
		return "food"
	default:
		return "empty"
	}
}

// Algorithm selects the autopilot navigation strategy.
type Algorithm int

const (
	BreadthFirst Algorithm = iota
	GreedyBestFirst
	AStar
	Hamiltonian
)

// Algorithms lists every strategy in menu order.
var Algorithms = [4]Algorithm{BreadthFirst, GreedyBestFirst, AStar, Hamiltonian}

var algorithmNames = map[Algorithm]string{
	BreadthFirst:    "bfs",
	GreedyBestFirst: "greedy",
	AStar:           "astar",
	Hamiltonian:     "hamiltonian",
}

var algorithmTitles = map[Algorithm]string{
	BreadthFirst:    "Breadth First Search",
	GreedyBestFirst: "Best First Search",
	AStar:           "A* Search",
	Hamiltonian:     "Hamiltonian Cycle",
}

var algorithmDescriptions = map[Algorithm]string{
	BreadthFirst:    "Explores outward ring by ring. Always finds a shortest route but expands the most cells.",
	GreedyBestFirst: "Chases whichever open cell is closest to the food. Fastest search, routes are not always shortest.",
	AStar:           "Orders cells by steps taken plus distance left. Shortest routes with far fewer expansions than BFS.",
	Hamiltonian:     "Follows one precomputed cycle through every cell. Slow to watch, but never traps itself.",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// Title is the human readable name shown in the UI.
func (a Algorithm) Title() string {
	return algorithmTitles[a]
}

// Description is the one-line summary shown under the algorithm menu.
func (a Algorithm) Description() string {
	return algorithmDescriptions[a]
}

// ParseAlgorithm accepts the short names produced by String.
func ParseAlgorithm(s string) (Algorithm, error) {
	for alg, name := range algorithmNames {
		if name == s {
			return alg, nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q", s)
}

// MarshalText lets algorithms appear by name in config files.
func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (a *Algorithm) UnmarshalText(text []byte) error {
	alg, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = alg
	return nil
}

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "boundary"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

func (c CollisionType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
