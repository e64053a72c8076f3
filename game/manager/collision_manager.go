package manager

import (
	"snake-autopilot/game/entity"
	"snake-autopilot/game/types"
)

// CheckCollision classifies a prospective head position. Walls are checked before the
// body, so a move that leaves the grid is always a boundary death.
func CheckCollision(grid *entity.Grid, pos types.Position) types.CollisionType {
	if isWallCollision(grid, pos) {
		return types.WallCollision
	}
	if grid.At(pos) == types.Snake {
		return types.SelfCollision
	}
	return types.NoCollision
}

func isWallCollision(grid *entity.Grid, pos types.Position) bool {
	return !grid.In(pos)
}

// IsFoodCollision reports whether moving onto pos eats the food.
func IsFoodCollision(grid *entity.Grid, pos types.Position) bool {
	return grid.In(pos) && grid.At(pos) == types.Food
}

// ValidateSpawnPosition checks if a position can receive food.
func ValidateSpawnPosition(grid *entity.Grid, pos types.Position) bool {
	return grid.In(pos) && grid.At(pos) == types.Empty
}
