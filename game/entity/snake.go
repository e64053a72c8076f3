package entity

import "snake-autopilot/game/types"

// Snake keeps its body head first.
type Snake struct {
	Body []types.Position
}

func NewSnake(body []types.Position) *Snake {
	b := make([]types.Position, len(body))
	copy(b, body)
	return &Snake{Body: b}
}

// Move prepends a new head. The tail stays until RemoveTail is called.
func (s *Snake) Move(newHead types.Position) {
	s.Body = append(s.Body, types.Position{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

// RemoveTail drops the last segment and returns it.
func (s *Snake) RemoveTail() types.Position {
	tail := s.Body[len(s.Body)-1]
	s.Body = s.Body[:len(s.Body)-1]
	return tail
}

func (s *Snake) GetHead() types.Position {
	return s.Body[0]
}

func (s *Snake) GetTail() types.Position {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Heading infers the direction of travel from the head and the segment behind it.
func (s *Snake) Heading() types.Direction {
	if len(s.Body) < 2 {
		return types.None
	}
	return types.DirectionTo(s.Body[1], s.Body[0])
}

// Contains reports whether p is one of the live segments.
func (s *Snake) Contains(p types.Position) bool {
	for _, part := range s.Body {
		if part == p {
			return true
		}
	}
	return false
}

func (s *Snake) Clone() *Snake {
	return NewSnake(s.Body)
}
